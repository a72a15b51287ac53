package main

import (
	"fmt"
	"runtime"

	"github.com/spf13/cobra"

	"github.com/dshills/segments/internal/match"
	"github.com/dshills/segments/internal/script"
	"github.com/dshills/segments/internal/split"
)

func newCutCmd(a *app) *cobra.Command {
	var size, overlap int
	cmd := &cobra.Command{
		Use:   "cut FILE",
		Short: "Cut the input into fixed-size pieces",
		Long: `Cut the input into consecutive pieces of --size elements. With --overlap,
each piece after the first starts --overlap elements before the previous one
ended.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.dispatch(cmd, args[0], handlers{
				runes:     func(in input[rune]) error { return cut(a.out, in, size, overlap) },
				graphemes: func(in input[string]) error { return cut(a.out, in, size, overlap) },
				bytes:     func(in input[byte]) error { return cut(a.out, in, size, overlap) },
			})
		},
	}
	cmd.Flags().IntVarP(&size, "size", "n", 80, "Piece length")
	cmd.Flags().IntVar(&overlap, "overlap", 0, "Elements shared by consecutive pieces")
	return cmd
}

func cut[T comparable](p *printer, in input[T], size, overlap int) error {
	var c *split.Cursor[T]
	var err error
	if overlap == 0 {
		c, err = split.CutUp(in.seg, size)
	} else {
		c, err = split.CutAndSplice(in.seg, size, overlap)
	}
	if err != nil {
		return err
	}
	return printCursor(p, in, c)
}

func newDiceCmd(a *app) *cobra.Command {
	var pieceLen, skip int
	var invert bool
	cmd := &cobra.Command{
		Use:   "dice FILE",
		Short: "Take --piece elements, skip --skip, repeat",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.dispatch(cmd, args[0], handlers{
				runes:     func(in input[rune]) error { return dice(a.out, in, pieceLen, skip, invert) },
				graphemes: func(in input[string]) error { return dice(a.out, in, pieceLen, skip, invert) },
				bytes:     func(in input[byte]) error { return dice(a.out, in, pieceLen, skip, invert) },
			})
		},
	}
	cmd.Flags().IntVar(&pieceLen, "piece", 1, "Elements taken per step")
	cmd.Flags().IntVar(&skip, "skip", 1, "Elements skipped per step")
	cmd.Flags().BoolVar(&invert, "invert", false, "Print the skipped pieces instead")
	return cmd
}

func dice[T comparable](p *printer, in input[T], pieceLen, skip int, invert bool) error {
	c, err := split.Dice(in.seg, pieceLen, skip, invert)
	if err != nil {
		return err
	}
	return printCursor(p, in, c)
}

func newSplitCmd(a *app) *cobra.Command {
	var scriptPath string
	cmd := &cobra.Command{
		Use:   "split FILE",
		Short: "Split the input with a Lua split(text, offset) function",
		Long: `Split the input with a Lua script defining split(text, offset). The
function receives the start of the unconsumed text and its offset and returns
the length of the next piece.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			state := script.New(script.WithLogger(a.log))
			defer state.Close()
			if err := state.DoFile(scriptPath); err != nil {
				return err
			}
			fn, err := state.Splitter()
			if err != nil {
				return err
			}
			return a.dispatch(cmd, args[0], runeOnly(func(in input[rune]) error {
				c, err := split.Split(in.seg, fn)
				if err != nil {
					return err
				}
				return printCursor(a.out, in, c)
			}))
		},
	}
	cmd.Flags().StringVar(&scriptPath, "script", "", "Lua file defining split(text, offset)")
	_ = cmd.MarkFlagRequired("script")
	return cmd
}

func newWhereCmd(a *app) *cobra.Command {
	var class string
	cmd := &cobra.Command{
		Use:   "where FILE",
		Short: "Print every maximal run of elements in --class",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cls, err := match.NewClass(class)
			if err != nil {
				return err
			}
			return a.dispatch(cmd, args[0], handlers{
				runes:     func(in input[rune]) error { return where(a.out, in, cls) },
				graphemes: func(in input[string]) error { return where(a.out, in, cls) },
				bytes:     func(in input[byte]) error { return where(a.out, in, cls) },
			})
		},
	}
	cmd.Flags().StringVar(&class, "class", "", `Character class, e.g. "\d" or "[a-z_]"`)
	_ = cmd.MarkFlagRequired("class")
	return cmd
}

func where[T comparable](p *printer, in input[T], cls *match.Class) error {
	c, err := split.Where(in.seg, 0, in.unit.Class(cls))
	if err != nil {
		return err
	}
	return printCursor(p, in, c)
}

func newCountCmd(a *app) *cobra.Command {
	var class string
	var invert bool
	cmd := &cobra.Command{
		Use:   "count FILE",
		Short: "Count the elements in --class",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cls, err := match.NewClass(class)
			if err != nil {
				return err
			}
			return a.dispatch(cmd, args[0], handlers{
				runes:     func(in input[rune]) error { return count(a.out, in, cls, invert) },
				graphemes: func(in input[string]) error { return count(a.out, in, cls, invert) },
				bytes:     func(in input[byte]) error { return count(a.out, in, cls, invert) },
			})
		},
	}
	cmd.Flags().StringVar(&class, "class", "", `Character class, e.g. "\s"`)
	cmd.Flags().BoolVar(&invert, "invert", false, "Count the elements outside the class")
	_ = cmd.MarkFlagRequired("class")
	return cmd
}

func count[T comparable](p *printer, in input[T], cls *match.Class, invert bool) error {
	n, err := split.CountMatching(in.seg, in.unit.Class(cls), invert)
	if err != nil {
		return err
	}
	return p.Count(n)
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Show version information",
		Args:  cobra.NoArgs,
		// Version output does not depend on configuration.
		PersistentPreRunE: func(*cobra.Command, []string) error { return nil },
		RunE: func(cmd *cobra.Command, _ []string) error {
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "segscan %s\n", version)
			fmt.Fprintf(out, "Commit: %s\n", commit)
			fmt.Fprintf(out, "Built: %s\n", date)
			fmt.Fprintf(out, "Go version: %s\n", runtime.Version())
			return nil
		},
	}
}

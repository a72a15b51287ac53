package main

import (
	"fmt"
	"io"
	"os"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/dshills/segments/internal/config"
)

// app is the state shared by every subcommand once the root command has
// resolved configuration.
type app struct {
	cfgPath string
	cfg     *config.Config
	log     zerolog.Logger
	out     *printer
}

func newRootCmd() *cobra.Command {
	a := &app{log: zerolog.Nop()}

	root := &cobra.Command{
		Use:   "segscan",
		Short: "Cut, dice, split and tokenize files as segment views",
		Long: `segscan reads a file (or stdin with "-") as a sequence of runes, grapheme
clusters or bytes and prints the segments produced by one of its algorithms.

Settings come from built-in defaults, an optional TOML or YAML config file,
SEGSCAN_ environment variables and finally command line flags.`,
		SilenceUsage:      true,
		SilenceErrors:     true,
		PersistentPreRunE: a.setup,
	}

	pf := root.PersistentFlags()
	pf.StringVarP(&a.cfgPath, "config", "c", "", "Path to a TOML or YAML config file")
	pf.String("log-level", "", "Log level: debug, info, warn, error")
	pf.String("format", "", "Output format: text, json")
	pf.String("unit", "", "Element unit: rune, grapheme, byte")
	pf.Bool("no-color", false, "Disable colored output")

	root.AddCommand(
		newCutCmd(a),
		newDiceCmd(a),
		newSplitCmd(a),
		newWhereCmd(a),
		newCountCmd(a),
		newTokensCmd(a),
		newVersionCmd(),
	)
	return root
}

// setup loads configuration, applies flag overrides and configures logging
// and output.
func (a *app) setup(cmd *cobra.Command, _ []string) error {
	flags := cmd.Flags()
	level, _ := flags.GetString("log-level")

	bootstrap := zerolog.InfoLevel
	if lvl, err := zerolog.ParseLevel(level); err == nil && level != "" {
		bootstrap = lvl
	}
	a.log = newLogger(cmd.ErrOrStderr(), bootstrap, false)

	cfg, err := config.NewLoader(config.WithLogger(a.log)).Load(a.cfgPath)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	if flags.Changed("log-level") {
		cfg.Log.Level = level
	}
	if flags.Changed("format") {
		cfg.Output.Format, _ = flags.GetString("format")
	}
	if flags.Changed("unit") {
		cfg.Input.Unit, _ = flags.GetString("unit")
	}
	if noColor, _ := flags.GetBool("no-color"); noColor {
		off := false
		cfg.Output.Color = &off
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	a.cfg = cfg
	useColor := cfg.ColorEnabled(isTerminal(cmd.OutOrStdout()))
	a.log = newLogger(cmd.ErrOrStderr(), cfg.LogLevel(), useColor && isTerminal(cmd.ErrOrStderr()))
	log.Logger = a.log
	a.out = newPrinter(cmd.OutOrStdout(), cfg.Output.Format, useColor)

	a.log.Debug().
		Str("unit", cfg.Input.Unit).
		Str("format", cfg.Output.Format).
		Bool("color", useColor).
		Msg("configured")
	return nil
}

func newLogger(w io.Writer, level zerolog.Level, useColor bool) zerolog.Logger {
	return zerolog.New(zerolog.ConsoleWriter{Out: w, NoColor: !useColor}).
		Level(level).
		With().
		Timestamp().
		Logger()
}

// isTerminal reports whether w is a terminal.
func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}

package main

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/cobra"

	"github.com/dshills/segments/internal/config"
	"github.com/dshills/segments/internal/lexer"
	"github.com/dshills/segments/internal/script"
)

func newTokensCmd(a *app) *cobra.Command {
	var watch bool
	cmd := &cobra.Command{
		Use:   "tokens FILE",
		Short: "Tokenize the input with the configured lexer rules",
		Long: `Tokenize the input with the lexer rules from the config file. Elements no
rule matches go to the Lua factionalize(text, offset) function when
lexer.script is set, otherwise to the fallback faction.

With --watch the file is tokenized again every time it is written.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			run := func() error { return a.tokens(cmd, args[0]) }
			if !watch {
				return run()
			}
			if args[0] == "-" {
				return errors.New("cannot watch stdin")
			}
			return a.watch(cmd.Context(), args[0], run)
		},
	}
	cmd.Flags().BoolVarP(&watch, "watch", "w", false, "Re-tokenize whenever the file changes")
	return cmd
}

func (a *app) tokens(cmd *cobra.Command, path string) error {
	specs := ruleSpecs(a.cfg.Lexer)

	return a.dispatch(cmd, path, handlers{
		runes: func(in input[rune]) error {
			opts := []lexer.Option[rune]{
				lexer.WithFallback[rune](a.cfg.Lexer.Fallback),
				lexer.WithLogger[rune](a.log),
			}
			if a.cfg.Lexer.Script != "" {
				state := script.New(script.WithLogger(a.log))
				defer state.Close()
				if err := state.DoFile(a.cfg.Lexer.Script); err != nil {
					return err
				}
				fn, err := state.Factionalizer()
				if err != nil {
					return err
				}
				opts = append(opts, lexer.WithFallbackFunc[rune](fn))
			}
			return tokenize(a.out, in, specs, opts...)
		},
		graphemes: func(in input[string]) error {
			if a.cfg.Lexer.Script != "" {
				return fmt.Errorf("lexer.script: %w", errRuneOnly)
			}
			return tokenize(a.out, in, specs,
				lexer.WithFallback[string](a.cfg.Lexer.Fallback),
				lexer.WithLogger[string](a.log))
		},
		bytes: func(in input[byte]) error {
			if a.cfg.Lexer.Script != "" {
				return fmt.Errorf("lexer.script: %w", errRuneOnly)
			}
			return tokenize(a.out, in, specs,
				lexer.WithFallback[byte](a.cfg.Lexer.Fallback),
				lexer.WithLogger[byte](a.log))
		},
	})
}

func ruleSpecs(cfg config.LexerConfig) []lexer.Spec {
	specs := make([]lexer.Spec, len(cfg.Rules))
	for i, r := range cfg.Rules {
		specs[i] = lexer.Spec{Name: r.Name, Class: r.Class, Literal: r.Literal, Merge: r.Merges()}
	}
	return specs
}

func tokenize[T comparable](p *printer, in input[T], specs []lexer.Spec, opts ...lexer.Option[T]) error {
	lx, err := lexer.New(in.unit, specs, opts...)
	if err != nil {
		return err
	}
	c, err := lx.Tokens(in.seg)
	if err != nil {
		return err
	}
	for tok := range c.All() {
		text, err := in.text(tok.Segment)
		if err != nil {
			return err
		}
		if err := p.Print(piece{Offset: tok.Offset(), Length: tok.Len(), Faction: tok.Faction, Text: text}); err != nil {
			return err
		}
	}
	return c.Err()
}

// watch runs fn once and then again after every write to path, until ctx is
// done. The parent directory is watched so editors that replace the file on
// save are still seen.
func (a *app) watch(ctx context.Context, path string, fn func() error) error {
	abs, err := filepath.Abs(path)
	if err != nil {
		return err
	}

	w, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("creating watcher: %w", err)
	}
	defer w.Close()
	if err := w.Add(filepath.Dir(abs)); err != nil {
		return fmt.Errorf("watching %s: %w", path, err)
	}

	if err := fn(); err != nil {
		return err
	}
	for {
		select {
		case <-ctx.Done():
			return nil
		case ev, ok := <-w.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(ev.Name) != abs || !(ev.Has(fsnotify.Write) || ev.Has(fsnotify.Create)) {
				continue
			}
			a.log.Debug().Str("path", ev.Name).Str("op", ev.Op.String()).Msg("input changed")
			if err := fn(); err != nil {
				a.log.Error().Err(err).Msg("tokenize")
			}
		case err, ok := <-w.Errors:
			if !ok {
				return nil
			}
			a.log.Warn().Err(err).Msg("watcher")
		}
	}
}

package main

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/dshills/segments/internal/config"
	"github.com/dshills/segments/internal/lexer"
	"github.com/dshills/segments/internal/segment"
	"github.com/dshills/segments/internal/seq"
	"github.com/dshills/segments/internal/split"
)

// errRuneOnly is returned by commands that drive Lua callbacks, which only
// see rune input.
var errRuneOnly = errors.New("command requires unit rune")

// input is a file loaded as a backing sequence of one unit.
type input[T comparable] struct {
	seg  segment.Segment[T]
	text func(segment.Segment[T]) (string, error)
	unit lexer.Unit[T]
}

func runeInput(data []byte) input[rune] {
	return input[rune]{
		seg:  segment.New[rune](seq.Runes(string(data))),
		text: seq.String,
		unit: lexer.Runes,
	}
}

func graphemeInput(data []byte) input[string] {
	return input[string]{
		seg:  segment.New[string](seq.Graphemes(string(data))),
		text: seq.GraphemeString,
		unit: lexer.Graphemes,
	}
}

func byteInput(data []byte) input[byte] {
	return input[byte]{
		seg:  segment.New[byte](seq.Bytes(data)),
		text: seq.BytesString,
		unit: lexer.Bytes,
	}
}

// handlers holds one instantiation of a command body per unit.
type handlers struct {
	runes     func(input[rune]) error
	graphemes func(input[string]) error
	bytes     func(input[byte]) error
}

// runeOnly rejects the non-rune units.
func runeOnly(fn func(input[rune]) error) handlers {
	return handlers{
		runes:     fn,
		graphemes: func(input[string]) error { return errRuneOnly },
		bytes:     func(input[byte]) error { return errRuneOnly },
	}
}

// readInput reads path, or stdin when path is "-".
func readInput(cmd *cobra.Command, path string) ([]byte, error) {
	if path == "-" {
		data, err := io.ReadAll(cmd.InOrStdin())
		if err != nil {
			return nil, fmt.Errorf("reading stdin: %w", err)
		}
		return data, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading input: %w", err)
	}
	return data, nil
}

// dispatch loads path and runs the handler for the configured unit.
func (a *app) dispatch(cmd *cobra.Command, path string, h handlers) error {
	data, err := readInput(cmd, path)
	if err != nil {
		return err
	}
	a.log.Debug().Str("input", path).Int("bytes", len(data)).Str("unit", a.cfg.Input.Unit).Msg("input loaded")

	switch a.cfg.Input.Unit {
	case config.UnitGrapheme:
		return h.graphemes(graphemeInput(data))
	case config.UnitByte:
		return h.bytes(byteInput(data))
	default:
		return h.runes(runeInput(data))
	}
}

// printCursor prints every segment c yields.
func printCursor[T comparable](p *printer, in input[T], c *split.Cursor[T]) error {
	for s := range c.All() {
		text, err := in.text(s)
		if err != nil {
			return err
		}
		if err := p.Print(piece{Offset: s.Offset(), Length: s.Len(), Text: text}); err != nil {
			return err
		}
	}
	return c.Err()
}

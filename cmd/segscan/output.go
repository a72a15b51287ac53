package main

import (
	"fmt"
	"io"
	"strconv"

	"github.com/fatih/color"
	"github.com/tidwall/sjson"

	"github.com/dshills/segments/internal/config"
)

// piece is one printed segment. Offset and Length are in input units.
type piece struct {
	Offset  int
	Length  int
	Faction string
	Text    string
}

// palette assigns faction colors in order of first appearance.
var palette = []color.Attribute{
	color.FgHiBlue,
	color.FgHiGreen,
	color.FgHiYellow,
	color.FgHiMagenta,
	color.FgHiCyan,
	color.FgHiRed,
	color.FgBlue,
	color.FgGreen,
}

// printer writes pieces as aligned text or JSON lines.
type printer struct {
	w      io.Writer
	json   bool
	color  bool
	dim    *color.Color
	styles map[string]*color.Color
}

func newPrinter(w io.Writer, format string, useColor bool) *printer {
	p := &printer{
		w:      w,
		json:   format == config.FormatJSON,
		color:  useColor,
		dim:    color.New(color.Faint),
		styles: make(map[string]*color.Color),
	}
	p.apply(p.dim)
	return p
}

// Print writes one piece.
func (p *printer) Print(pc piece) error {
	if p.json {
		return p.writeJSON(pc)
	}

	pos := p.dim.Sprintf("%6d %5d", pc.Offset, pc.Length)
	text := strconv.Quote(pc.Text)
	var err error
	if pc.Faction == "" {
		_, err = fmt.Fprintf(p.w, "%s  %s\n", pos, text)
	} else {
		_, err = fmt.Fprintf(p.w, "%s  %s  %s\n", pos, p.style(pc.Faction).Sprintf("%-10s", pc.Faction), text)
	}
	return err
}

// Count writes a single count result.
func (p *printer) Count(n int) error {
	if p.json {
		line, err := sjson.Set("", "count", n)
		if err != nil {
			return err
		}
		_, err = fmt.Fprintln(p.w, line)
		return err
	}
	_, err := fmt.Fprintln(p.w, n)
	return err
}

func (p *printer) writeJSON(pc piece) error {
	line, err := sjson.Set("", "offset", pc.Offset)
	if err != nil {
		return err
	}
	if line, err = sjson.Set(line, "length", pc.Length); err != nil {
		return err
	}
	if pc.Faction != "" {
		if line, err = sjson.Set(line, "faction", pc.Faction); err != nil {
			return err
		}
	}
	if line, err = sjson.Set(line, "text", pc.Text); err != nil {
		return err
	}
	_, err = fmt.Fprintln(p.w, line)
	return err
}

func (p *printer) style(faction string) *color.Color {
	if c, ok := p.styles[faction]; ok {
		return c
	}
	c := color.New(palette[len(p.styles)%len(palette)])
	p.apply(c)
	p.styles[faction] = c
	return c
}

// apply overrides color's global terminal detection with the configured
// setting.
func (p *printer) apply(c *color.Color) {
	if p.color {
		c.EnableColor()
	} else {
		c.DisableColor()
	}
}

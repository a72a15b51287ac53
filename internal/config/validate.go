package config

import (
	"errors"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/dshills/segments/internal/match"
)

// Validate checks every setting and returns all problems joined. Each one is
// a *ValidationError matching ErrValidationFailed.
func (c *Config) Validate() error {
	var errs []error
	add := func(path, msg string, v any) {
		errs = append(errs, &ValidationError{Path: path, Message: msg, Value: v})
	}

	if lvl, err := zerolog.ParseLevel(c.Log.Level); err != nil || lvl == zerolog.NoLevel {
		add("log.level", "unknown log level", c.Log.Level)
	}

	switch c.Input.Unit {
	case UnitRune, UnitGrapheme, UnitByte:
	default:
		add("input.unit", "must be rune, grapheme or byte", c.Input.Unit)
	}

	switch c.Output.Format {
	case FormatText, FormatJSON:
	default:
		add("output.format", "must be text or json", c.Output.Format)
	}

	seen := make(map[string]bool, len(c.Lexer.Rules))
	for i, r := range c.Lexer.Rules {
		path := fmt.Sprintf("lexer.rules[%d]", i)
		if r.Name == "" {
			add(path+".name", "required", r.Name)
		} else if seen[r.Name] {
			add(path+".name", "duplicate rule name", r.Name)
		}
		seen[r.Name] = true

		switch {
		case r.Class == "" && r.Literal == "":
			add(path, "needs a class or a literal", r.Name)
		case r.Class != "" && r.Literal != "":
			add(path, "class and literal are exclusive", r.Name)
		case r.Class != "":
			if _, err := match.NewClass(r.Class); err != nil {
				add(path+".class", err.Error(), r.Class)
			}
		}
	}

	if c.Lexer.Fallback == "" {
		add("lexer.fallback", "required", c.Lexer.Fallback)
	}

	return errors.Join(errs...)
}

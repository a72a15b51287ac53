// Package config loads segscan settings from a TOML or YAML file and
// SEGSCAN_ environment variables.
//
// Sources are applied in increasing priority:
//
//  1. Built-in defaults
//  2. Config file (.toml, .yaml or .yml; a missing file is skipped)
//  3. Environment variables
//
// Command line flags are applied by the caller on top of the result.
package config

import (
	"github.com/rs/zerolog"
)

// Input units.
const (
	UnitRune     = "rune"
	UnitGrapheme = "grapheme"
	UnitByte     = "byte"
)

// Output formats.
const (
	FormatText = "text"
	FormatJSON = "json"
)

// DefaultFallback is the faction given to elements no lexer rule matches.
const DefaultFallback = "other"

// Config is the complete segscan configuration.
type Config struct {
	Log    LogConfig    `toml:"log" yaml:"log"`
	Input  InputConfig  `toml:"input" yaml:"input"`
	Output OutputConfig `toml:"output" yaml:"output"`
	Lexer  LexerConfig  `toml:"lexer" yaml:"lexer"`
}

// LogConfig controls diagnostics written to stderr.
type LogConfig struct {
	// Level is a zerolog level name: debug, info, warn or error.
	Level string `toml:"level" yaml:"level"`
}

// InputConfig controls how input files are turned into backing sequences.
type InputConfig struct {
	// Unit is the element type: rune, grapheme or byte.
	Unit string `toml:"unit" yaml:"unit"`
}

// OutputConfig controls how segments are printed.
type OutputConfig struct {
	// Format is text or json.
	Format string `toml:"format" yaml:"format"`
	// Color forces colored text output on or off. Nil means color only when
	// stdout is a terminal.
	Color *bool `toml:"color" yaml:"color"`
}

// LexerConfig describes the rules used by the tokens command.
type LexerConfig struct {
	Rules []Rule `toml:"rules" yaml:"rules"`
	// Fallback is the faction for elements no rule matches.
	Fallback string `toml:"fallback" yaml:"fallback"`
	// Script is a Lua file defining factionalize(text, offset), consulted
	// for elements no rule matches.
	Script string `toml:"script" yaml:"script"`
}

// Rule assigns a faction to elements matching a character class or to an
// exact literal.
type Rule struct {
	Name    string `toml:"name" yaml:"name"`
	Class   string `toml:"class" yaml:"class"`
	Literal string `toml:"literal" yaml:"literal"`
	// Merge joins adjacent class matches into one span. Defaults to true.
	Merge *bool `toml:"merge" yaml:"merge"`
}

// Merges reports whether adjacent matches of r are joined.
func (r Rule) Merges() bool {
	return r.Merge == nil || *r.Merge
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		Log:    LogConfig{Level: zerolog.LevelInfoValue},
		Input:  InputConfig{Unit: UnitRune},
		Output: OutputConfig{Format: FormatText},
		Lexer: LexerConfig{
			Fallback: DefaultFallback,
			Rules: []Rule{
				{Name: "word", Class: `[\p{L}\p{N}_]`},
				{Name: "space", Class: `\s`},
				{Name: "punct", Class: `\p{P}|\p{S}`, Merge: boolPtr(false)},
			},
		},
	}
}

// LogLevel returns the parsed log level. Validate guarantees it parses.
func (c *Config) LogLevel() zerolog.Level {
	lvl, err := zerolog.ParseLevel(c.Log.Level)
	if err != nil {
		return zerolog.InfoLevel
	}
	return lvl
}

// ColorEnabled resolves Output.Color against whether stdout is a terminal.
func (c *Config) ColorEnabled(tty bool) bool {
	if c.Output.Color != nil {
		return *c.Output.Color
	}
	return tty
}

func boolPtr(b bool) *bool {
	return &b
}

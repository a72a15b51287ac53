// Package lexer turns an ordered list of rules into a faction.Factionalizer,
// the tokenizer front end used by segscan tokens.
//
// Rules are tried in order at each position. A literal rule matches when the
// remainder starts with its literal and always produces a span of exactly that
// length. A class rule matches a single element; with Merge set, adjacent
// matches of the same rule join into one span. Elements no rule matches go to
// the fallback function if one is set, otherwise to the fallback faction,
// merged.
package lexer

import (
	"errors"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/dshills/segments/internal/faction"
	"github.com/dshills/segments/internal/match"
	"github.com/dshills/segments/internal/segment"
	"github.com/dshills/segments/internal/seq"
)

// ErrInvalidRule is returned when a rule spec cannot be compiled.
var ErrInvalidRule = errors.New("invalid lexer rule")

// DefaultFallback is the faction for unmatched elements.
const DefaultFallback = "other"

// Spec describes a rule before compilation. Exactly one of Class and Literal
// is set.
type Spec struct {
	Name    string
	Class   string
	Literal string
	Merge   bool
}

// Unit adapts class patterns and literals to an element type.
type Unit[T comparable] struct {
	// Class converts a compiled class into a matcher over T.
	Class func(*match.Class) segment.Matcher[T]
	// Literal splits a literal into elements.
	Literal func(string) []T
}

// Units for the element types segscan reads.
var (
	Runes = Unit[rune]{
		Class:   func(c *match.Class) segment.Matcher[rune] { return c },
		Literal: func(s string) []rune { return []rune(s) },
	}
	Graphemes = Unit[string]{
		Class:   (*match.Class).Graphemes,
		Literal: func(s string) []string { return seq.Graphemes(s).Items() },
	}
	Bytes = Unit[byte]{
		Class:   (*match.Class).Bytes,
		Literal: func(s string) []byte { return []byte(s) },
	}
)

type rule[T comparable] struct {
	name    string
	matcher segment.Matcher[T]
	literal segment.Segment[T]
	merge   bool
}

// Lexer classifies elements by rule. It holds no per-input state and can be
// shared by concurrent Tokens calls if its fallback function can.
type Lexer[T comparable] struct {
	rules      []rule[T]
	fallback   string
	fallbackFn faction.Factionalizer[T, string]
	logger     zerolog.Logger
}

// Option configures a Lexer.
type Option[T comparable] func(*Lexer[T])

// WithFallback sets the faction for elements no rule matches.
func WithFallback[T comparable](name string) Option[T] {
	return func(l *Lexer[T]) {
		l.fallback = name
	}
}

// WithFallbackFunc consults fn for elements no rule matches, typically a Lua
// factionalize function.
func WithFallbackFunc[T comparable](fn faction.Factionalizer[T, string]) Option[T] {
	return func(l *Lexer[T]) {
		l.fallbackFn = fn
	}
}

// WithLogger sets the logger used for debug events.
func WithLogger[T comparable](logger zerolog.Logger) Option[T] {
	return func(l *Lexer[T]) {
		l.logger = logger
	}
}

// New compiles specs for unit.
func New[T comparable](unit Unit[T], specs []Spec, opts ...Option[T]) (*Lexer[T], error) {
	l := &Lexer[T]{
		fallback: DefaultFallback,
		logger:   zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(l)
	}
	if l.fallback == "" {
		return nil, fmt.Errorf("%w: empty fallback faction", ErrInvalidRule)
	}

	l.rules = make([]rule[T], 0, len(specs))
	for i, sp := range specs {
		r, err := compile(unit, sp)
		if err != nil {
			return nil, fmt.Errorf("rule %d: %w", i, err)
		}
		l.rules = append(l.rules, r)
	}

	l.logger.Debug().
		Int("rules", len(l.rules)).
		Str("fallback", l.fallback).
		Bool("fallback_func", l.fallbackFn != nil).
		Msg("lexer compiled")
	return l, nil
}

func compile[T comparable](unit Unit[T], sp Spec) (rule[T], error) {
	if sp.Name == "" {
		return rule[T]{}, fmt.Errorf("%w: missing name", ErrInvalidRule)
	}
	switch {
	case sp.Class != "" && sp.Literal != "":
		return rule[T]{}, fmt.Errorf("%w %q: class and literal are exclusive", ErrInvalidRule, sp.Name)
	case sp.Class != "":
		c, err := match.NewClass(sp.Class)
		if err != nil {
			return rule[T]{}, fmt.Errorf("%w %q: %w", ErrInvalidRule, sp.Name, err)
		}
		return rule[T]{name: sp.Name, matcher: unit.Class(c), merge: sp.Merge}, nil
	case sp.Literal != "":
		lit := unit.Literal(sp.Literal)
		return rule[T]{name: sp.Name, literal: segment.New[T](seq.Wrap(lit))}, nil
	}
	return rule[T]{}, fmt.Errorf("%w %q: needs a class or a literal", ErrInvalidRule, sp.Name)
}

// Tokens returns a cursor over the factions of s.
func (l *Lexer[T]) Tokens(s segment.Segment[T]) (*faction.Cursor[T, string], error) {
	return faction.Factionalize(s, l.Factionalizer())
}

// Factionalizer exposes the rule set for use with faction.Factionalize.
func (l *Lexer[T]) Factionalizer() faction.Factionalizer[T, string] {
	return l.classify
}

func (l *Lexer[T]) classify(rest segment.Segment[T]) (string, faction.Consumption, error) {
	first, err := rest.At(0)
	if err != nil {
		return "", faction.Consumption{}, err
	}

	for _, r := range l.rules {
		if r.matcher == nil {
			ok, err := segment.HasPrefix(rest, r.literal)
			if err != nil {
				return "", faction.Consumption{}, err
			}
			if ok {
				return r.name, faction.Take(r.literal.Len()), nil
			}
			continue
		}
		if r.matcher.Match(first) {
			if r.merge {
				return r.name, faction.Merge(), nil
			}
			return r.name, faction.Take(1), nil
		}
	}

	if l.fallbackFn != nil {
		return l.fallbackFn(rest)
	}
	return l.fallback, faction.Merge(), nil
}

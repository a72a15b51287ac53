package match

import (
	"errors"
	"fmt"
	"time"
	"unicode/utf8"

	"github.com/dlclark/regexp2"

	"github.com/dshills/segments/internal/segment"
)

// ErrInvalidClass is returned when a character class pattern does not compile.
var ErrInvalidClass = errors.New("invalid character class")

// matchTimeout bounds a single evaluation of a class pattern.
const matchTimeout = 100 * time.Millisecond

// Class matches runes, or whole grapheme clusters, against a regular
// expression such as `[a-z_]`, `\d` or `\p{L}`. The pattern must match the
// entire element.
//
// A Class is immutable after construction and safe for concurrent use.
type Class struct {
	pattern string
	re      *regexp2.Regexp
	ascii   [utf8.RuneSelf]bool
}

// NewClass compiles pattern. RE2 syntax is tried first, falling back to the
// full .NET-compatible syntax for constructs RE2 lacks.
func NewClass(pattern string) (*Class, error) {
	if pattern == "" {
		return nil, fmt.Errorf("%w: empty pattern", ErrInvalidClass)
	}
	anchored := `\A(?:` + pattern + `)\z`
	re, err := regexp2.Compile(anchored, regexp2.RE2)
	if err != nil {
		re, err = regexp2.Compile(anchored, regexp2.None)
		if err != nil {
			return nil, fmt.Errorf("%w %q: %w", ErrInvalidClass, pattern, err)
		}
	}
	re.MatchTimeout = matchTimeout

	c := &Class{pattern: pattern, re: re}
	for r := range rune(utf8.RuneSelf) {
		c.ascii[r] = c.matchString(string(r))
	}
	return c, nil
}

// MustClass is like NewClass but panics if pattern does not compile. It is
// meant for package-level matchers with constant patterns.
func MustClass(pattern string) *Class {
	c, err := NewClass(pattern)
	if err != nil {
		panic(err)
	}
	return c
}

// Pattern returns the source pattern.
func (c *Class) Pattern() string {
	return c.pattern
}

// Match reports whether r belongs to the class.
func (c *Class) Match(r rune) bool {
	if r >= 0 && r < utf8.RuneSelf {
		return c.ascii[r]
	}
	return c.matchString(string(r))
}

// MatchString reports whether s, taken as one element, belongs to the class.
func (c *Class) MatchString(s string) bool {
	if len(s) == 1 && s[0] < utf8.RuneSelf {
		return c.ascii[s[0]]
	}
	return c.matchString(s)
}

// Graphemes returns a matcher over grapheme-cluster elements.
func (c *Class) Graphemes() segment.Matcher[string] {
	return segment.MatchFunc[string](c.MatchString)
}

// Bytes returns a matcher over byte elements; each byte is taken as the rune
// of the same value.
func (c *Class) Bytes() segment.Matcher[byte] {
	return segment.MatchFunc[byte](func(b byte) bool { return c.Match(rune(b)) })
}

// matchString treats evaluation errors (timeouts) as a non-match.
func (c *Class) matchString(s string) bool {
	ok, err := c.re.MatchString(s)
	return err == nil && ok
}

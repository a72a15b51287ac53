// Package match provides element matchers for segment scanning: generic
// combinators and regular-expression character classes over runes and
// grapheme clusters.
package match

import (
	"slices"

	"github.com/dshills/segments/internal/segment"
)

// Func adapts f to segment.Matcher.
func Func[T any](f func(T) bool) segment.Matcher[T] {
	return segment.MatchFunc[T](f)
}

// Not inverts m.
func Not[T any](m segment.Matcher[T]) segment.Matcher[T] {
	return segment.MatchFunc[T](func(v T) bool { return !m.Match(v) })
}

// Any matches when at least one of ms matches. With no matchers it matches
// nothing.
func Any[T any](ms ...segment.Matcher[T]) segment.Matcher[T] {
	return segment.MatchFunc[T](func(v T) bool {
		for _, m := range ms {
			if m.Match(v) {
				return true
			}
		}
		return false
	})
}

// All matches when every one of ms matches. With no matchers it matches
// everything.
func All[T any](ms ...segment.Matcher[T]) segment.Matcher[T] {
	return segment.MatchFunc[T](func(v T) bool {
		for _, m := range ms {
			if !m.Match(v) {
				return false
			}
		}
		return true
	})
}

// Equal matches any of the given values.
func Equal[T comparable](vs ...T) segment.Matcher[T] {
	vs = slices.Clone(vs)
	return segment.MatchFunc[T](func(v T) bool {
		return slices.Contains(vs, v)
	})
}

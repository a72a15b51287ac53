package split

import (
	"iter"

	"github.com/dshills/segments/internal/segment"
)

// Elements lazily yields the elements of a Segment that a matcher accepts, or
// with invert set, rejects.
type Elements[T any] struct {
	src    source[T]
	m      segment.Matcher[T]
	invert bool

	pos  int
	n    int
	cur  T
	err  error
	done bool
}

// Matching returns a cursor over the elements of s that m matches (or, with
// invert, does not match).
func Matching[T any](s segment.Segment[T], m segment.Matcher[T], invert bool) (*Elements[T], error) {
	if segment.IsNilMatcher(m) {
		return nil, invalid("nil matcher")
	}
	return &Elements[T]{src: newSource(s), m: m, invert: invert, n: s.Len()}, nil
}

// Next advances to the next accepted element.
func (e *Elements[T]) Next() bool {
	if e.done {
		return false
	}
	if err := e.src.check(); err != nil {
		e.err = err
		e.done = true
		return false
	}
	for e.pos < e.n {
		v, err := e.src.seg.At(e.pos)
		e.pos++
		if err != nil {
			e.err = err
			e.done = true
			return false
		}
		if e.m.Match(v) != e.invert {
			e.cur = v
			return true
		}
	}
	e.done = true
	return false
}

// Value returns the current element.
func (e *Elements[T]) Value() T {
	return e.cur
}

// Err returns the error that stopped the cursor, if any.
func (e *Elements[T]) Err() error {
	return e.err
}

// Reset rewinds to the first element.
func (e *Elements[T]) Reset() {
	var zero T
	e.pos = 0
	e.cur = zero
	e.err = nil
	e.done = false
}

// All rewinds the cursor and returns an iterator over the accepted elements.
func (e *Elements[T]) All() iter.Seq[T] {
	return func(yield func(T) bool) {
		e.Reset()
		for e.Next() {
			if !yield(e.cur) {
				return
			}
		}
	}
}

// CountMatching counts the elements of s that m matches (or, with invert, does
// not match).
func CountMatching[T any](s segment.Segment[T], m segment.Matcher[T], invert bool) (int, error) {
	if segment.IsNilMatcher(m) {
		return 0, invalid("nil matcher")
	}
	count := 0
	err := s.Each(func(_ int, v T) bool {
		if m.Match(v) != invert {
			count++
		}
		return true
	})
	return count, err
}

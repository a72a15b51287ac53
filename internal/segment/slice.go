package segment

import (
	"fmt"

	"github.com/dshills/segments/internal/extent"
)

// Sub returns the sub-view at e, relative to the start of s. An open-ended e
// runs to the end of s.
func (s Segment[T]) Sub(e extent.Extent) (Segment[T], error) {
	n := s.Len()
	e = e.Resolve(n)
	if !e.IsValid(n) {
		return Segment[T]{}, fmt.Errorf("%w: %s in view of length %d", ErrOutOfRange, e, n)
	}
	return s.derive(e), nil
}

// SubExtent returns the sub-view of length elements starting at offset.
func (s Segment[T]) SubExtent(offset, length int) (Segment[T], error) {
	return s.Sub(extent.New(offset, length))
}

// From returns the sub-view from offset to the end of s.
func (s Segment[T]) From(offset int) (Segment[T], error) {
	return s.Sub(extent.NewToEnd(offset))
}

// To returns the sub-view from the start of s up to, not including, offset.
func (s Segment[T]) To(offset int) (Segment[T], error) {
	return s.Sub(extent.NewToStart(offset))
}

// Prefix returns the first n elements of s.
func (s Segment[T]) Prefix(n int) (Segment[T], error) {
	return s.Sub(extent.New(0, n))
}

// Suffix returns the last n elements of s.
func (s Segment[T]) Suffix(n int) (Segment[T], error) {
	return s.Sub(extent.New(s.Len()-n, n))
}

// Range returns the sub-view [start, end) relative to s.
func (s Segment[T]) Range(start, end int) (Segment[T], error) {
	n := s.Len()
	if !extent.IsValidRange(start, end, n) {
		return Segment[T]{}, fmt.Errorf("%w: [%d:%d) in view of length %d", ErrOutOfRange, start, end, n)
	}
	return s.derive(extent.New(start, end-start)), nil
}

// RangeInclusive returns the sub-view [start, end] relative to s.
func (s Segment[T]) RangeInclusive(start, end int) (Segment[T], error) {
	e, err := extent.NewRangeInclusive(start, end)
	if err != nil {
		return Segment[T]{}, err
	}
	return s.Sub(e)
}

// FromEnd returns the relative extent of the single element n positions from
// the end, 1-based.
func (s Segment[T]) FromEnd(n int) (extent.Extent, error) {
	l := s.Len()
	if n <= 0 || n > l {
		return extent.Empty, fmt.Errorf("%w: from-end index %d in view of length %d", ErrOutOfRange, n, l)
	}
	return extent.New(l-n, 1), nil
}

// Truncate returns s shortened to at most maxLen elements.
func (s Segment[T]) Truncate(maxLen int) Segment[T] {
	return s.derive(extent.New(0, s.Len()).Truncate(maxLen))
}

// ChangeLength returns s with its length adjusted by delta. The new view must
// still fit the backing.
func (s Segment[T]) ChangeLength(delta int) (Segment[T], error) {
	e, err := s.Extent().ChangeLength(delta)
	if err != nil {
		return Segment[T]{}, err
	}
	if total := lenOf(s.backing); !e.IsValid(total) {
		return Segment[T]{}, fmt.Errorf("%w: %s in sequence of length %d", ErrOutOfRange, e, total)
	}
	return Segment[T]{backing: s.backing, ext: e, version: s.version}, nil
}

// Bisect splits s at k, clamped to [0, Len], into two adjacent views.
func (s Segment[T]) Bisect(k int) (Segment[T], Segment[T]) {
	a, b := extent.New(0, s.Len()).Bisect(k)
	return s.derive(a), s.derive(b)
}

// CleaveStart returns the first n elements of s, clamped.
func (s Segment[T]) CleaveStart(n int) Segment[T] {
	a, _ := s.Bisect(n)
	return a
}

// CleaveEnd returns the last n elements of s, clamped.
func (s Segment[T]) CleaveEnd(n int) Segment[T] {
	_, b := s.Bisect(s.Len() - clampLen(n, s.Len()))
	return b
}

// ChopOffStart returns s without its first n elements, clamped.
func (s Segment[T]) ChopOffStart(n int) Segment[T] {
	_, b := s.Bisect(n)
	return b
}

// ChopOffEnd returns s without its last n elements, clamped.
func (s Segment[T]) ChopOffEnd(n int) Segment[T] {
	a, _ := s.Bisect(s.Len() - clampLen(n, s.Len()))
	return a
}

// SeverStart splits off the first n elements, clamped, returning them and the
// remainder.
func (s Segment[T]) SeverStart(n int) (start, rest Segment[T]) {
	return s.Bisect(n)
}

// SeverEnd splits off the last n elements, clamped, returning them and the
// remainder.
func (s Segment[T]) SeverEnd(n int) (end, rest Segment[T]) {
	rest, end = s.Bisect(s.Len() - clampLen(n, s.Len()))
	return end, rest
}

// Sever splits s into the part before e, e itself and the part after e. The
// relative extent e is first clipped to s.
func (s Segment[T]) Sever(e extent.Extent) (before, middle, after Segment[T]) {
	n := s.Len()
	e = extent.Constrain(e.Resolve(n), extent.New(0, n))
	before = s.derive(extent.New(0, e.Offset()))
	middle = s.derive(e)
	after = s.derive(extent.New(e.End(), n-e.End()))
	return before, middle, after
}

func clampLen(n, l int) int {
	return min(max(n, 0), max(l, 0))
}

package segment

import (
	"fmt"

	"github.com/dshills/segments/internal/extent"
)

// Remove returns s without the length elements starting at the relative offset.
// Removing from either boundary only narrows the view; removing from the
// interior joins the two remaining pieces into a new backing sequence.
func (s Segment[T]) Remove(offset, length int) (Segment[T], error) {
	return s.RemoveExtent(extent.New(offset, length))
}

// RemoveExtent is Remove with a relative extent.
func (s Segment[T]) RemoveExtent(e extent.Extent) (Segment[T], error) {
	n := s.Len()
	e = e.Resolve(n)
	if !e.IsValid(n) {
		return Segment[T]{}, fmt.Errorf("%w: remove %s from view of length %d", ErrOutOfRange, e, n)
	}
	switch {
	case e.IsEmpty():
		return s, nil
	case e.Offset() == 0:
		return s.derive(extent.New(e.Len(), n-e.Len())), nil
	case e.End() == n:
		return s.derive(extent.New(0, n-e.Len())), nil
	}
	head := s.derive(extent.New(0, e.Offset()))
	tail := s.derive(extent.New(e.End(), n-e.End()))
	return s.concat(head, tail)
}

// Replace returns a new view in which the relative extent e of s is replaced
// by the elements of repl. The result has a fresh backing unless repl is empty
// and the edit reduces to a boundary removal. The first of s and repl that has
// a backing supplies the concatenation.
func (s Segment[T]) Replace(e extent.Extent, repl Segment[T]) (Segment[T], error) {
	n := s.Len()
	e = e.Resolve(n)
	if !e.IsValid(n) {
		return Segment[T]{}, fmt.Errorf("%w: replace %s in view of length %d", ErrOutOfRange, e, n)
	}
	if repl.IsEmpty() {
		return s.RemoveExtent(e)
	}
	head := s.derive(extent.New(0, e.Offset()))
	tail := s.derive(extent.New(e.End(), n-e.End()))
	return Concatenate(head, repl, tail)
}

// Insert returns a new view with src inserted before the relative offset at.
func (s Segment[T]) Insert(at int, src Segment[T]) (Segment[T], error) {
	return s.Replace(extent.New(at, 0), src)
}

// Materialize copies the elements of the view into a new, independent backing
// sequence of the same kind.
func (s Segment[T]) Materialize() (Sequence[T], error) {
	if s.backing == nil {
		return nil, ErrNoBacking
	}
	if err := s.Check(); err != nil {
		return nil, err
	}
	r := s.Extent()
	return s.backing.Slice(r.Offset(), r.Len()), nil
}

// CopyTo copies every element of s into the start of dst and returns the number
// of elements copied. dst must be at least as long as s. Overlapping views are
// handled.
func (s Segment[T]) CopyTo(dst Segment[T]) (int, error) {
	if err := dst.Check(); err != nil {
		return 0, err
	}
	if dst.Len() < s.Len() {
		return 0, fmt.Errorf("%w: copy %d elements into view of length %d", ErrOutOfRange, s.Len(), dst.Len())
	}
	items, err := s.Items()
	if err != nil {
		return 0, err
	}
	off := dst.Extent().Offset()
	for i, v := range items {
		dst.backing.Put(off+i, v)
	}
	return len(items), nil
}

// Reverse reverses the elements of the view in place.
func (s Segment[T]) Reverse() error {
	if err := s.Check(); err != nil {
		return err
	}
	r := s.Extent()
	for i, j := r.Offset(), r.End()-1; i < j; i, j = i+1, j-1 {
		a, b := s.backing.Get(i), s.backing.Get(j)
		s.backing.Put(i, b)
		s.backing.Put(j, a)
	}
	return nil
}

// Concatenate joins parts into a new backing sequence and returns a view of all
// of it. The first part with a backing supplies the concatenation; empty
// leading zero Segments are skipped. With no usable part the zero Segment is
// returned.
func Concatenate[T any](parts ...Segment[T]) (Segment[T], error) {
	for _, p := range parts {
		if p.backing != nil {
			return p.concat(parts...)
		}
		if !p.IsEmpty() {
			return Segment[T]{}, ErrNoBacking
		}
	}
	return Segment[T]{}, nil
}

func (s Segment[T]) concat(parts ...Segment[T]) (Segment[T], error) {
	if s.backing == nil {
		return Segment[T]{}, ErrNoBacking
	}
	for _, p := range parts {
		if p.backing == nil {
			continue
		}
		if err := p.Check(); err != nil {
			return Segment[T]{}, err
		}
	}
	seq, err := s.backing.Concat(parts...)
	if err != nil {
		return Segment[T]{}, fmt.Errorf("concatenate: %w", err)
	}
	return New(seq), nil
}

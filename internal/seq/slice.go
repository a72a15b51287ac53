// Package seq provides fixed-length backing sequences for segment views: a
// generic slice adapter plus rune, byte and grapheme-cluster views of text.
package seq

import (
	"github.com/dshills/segments/internal/segment"
)

// Slice is a fixed-length Sequence backed by a Go slice. Its length never
// changes, so views over it never go stale.
type Slice[T any] struct {
	items []T
}

// Of returns a Slice holding a copy of items.
func Of[T any](items ...T) *Slice[T] {
	return &Slice[T]{items: append([]T(nil), items...)}
}

// Wrap returns a Slice that shares items. Writes through segment views are
// visible in items and vice versa.
func Wrap[T any](items []T) *Slice[T] {
	return &Slice[T]{items: items}
}

// Len returns the number of elements.
func (s *Slice[T]) Len() int {
	return len(s.items)
}

// Get returns the element at i.
func (s *Slice[T]) Get(i int) T {
	return s.items[i]
}

// Put stores v at i.
func (s *Slice[T]) Put(i int, v T) {
	s.items[i] = v
}

// Items returns the underlying slice.
func (s *Slice[T]) Items() []T {
	return s.items
}

// Slice returns a copy of [offset, offset+length).
func (s *Slice[T]) Slice(offset, length int) segment.Sequence[T] {
	return Of(s.items[offset : offset+length]...)
}

// Concat returns a new Slice holding the elements of every part in order.
func (s *Slice[T]) Concat(parts ...segment.Segment[T]) (segment.Sequence[T], error) {
	items, err := Collect(parts...)
	if err != nil {
		return nil, err
	}
	return &Slice[T]{items: items}, nil
}

// Collect copies the elements of every part, in order, into one slice.
func Collect[T any](parts ...segment.Segment[T]) ([]T, error) {
	n := 0
	for _, p := range parts {
		n += max(p.Len(), 0)
	}
	out := make([]T, 0, n)
	for _, p := range parts {
		items, err := p.Items()
		if err != nil {
			return nil, err
		}
		out = append(out, items...)
	}
	return out, nil
}

// Package builder provides Builder, a growable buffer with offset-addressed
// structural edits that hands out segment views of its own contents.
package builder

import (
	"fmt"
	"slices"
	"sync/atomic"

	"github.com/dshills/segments/internal/extent"
	"github.com/dshills/segments/internal/segment"
)

// versionCounter generates version stamps shared by all builders, so a stamp
// never repeats even across Reset.
var versionCounter uint64

var errNilMatcher = fmt.Errorf("%w: nil matcher", segment.ErrInvalidArgument)

func nextVersion() uint64 {
	return atomic.AddUint64(&versionCounter, 1)
}

// Builder is a mutable, growable sequence of T. It implements
// segment.Sequence and segment.Versioned: every mutation that changes the
// length moves to a new version, and views taken
// before it fail with segment.ErrStaleView. Writes through Set do not.
//
// A Builder is not safe for concurrent use.
type Builder[T any] struct {
	items   []T
	version uint64
}

// New creates an empty Builder with room for capacity elements.
func New[T any](capacity int) *Builder[T] {
	return &Builder[T]{
		items:   make([]T, 0, max(capacity, 0)),
		version: nextVersion(),
	}
}

// From creates a Builder holding a copy of items.
func From[T any](items ...T) *Builder[T] {
	b := New[T](len(items))
	b.items = append(b.items, items...)
	return b
}

// Len returns the number of elements.
func (b *Builder[T]) Len() int {
	return len(b.items)
}

// Cap returns the number of elements the builder can hold without reallocating.
func (b *Builder[T]) Cap() int {
	return cap(b.items)
}

// Grow ensures room for n more elements without changing the length.
func (b *Builder[T]) Grow(n int) {
	if n > 0 {
		b.items = slices.Grow(b.items, n)
	}
}

// Version returns the current structural version.
func (b *Builder[T]) Version() uint64 {
	return b.version
}

// Get returns the element at i without bounds checking beyond the slice's own.
func (b *Builder[T]) Get(i int) T {
	return b.items[i]
}

// Put stores v at i without bounds checking beyond the slice's own.
func (b *Builder[T]) Put(i int, v T) {
	b.items[i] = v
}

// At returns the element at i.
func (b *Builder[T]) At(i int) (T, error) {
	if i < 0 || i >= len(b.items) {
		var zero T
		return zero, b.outOfRange(i)
	}
	return b.items[i], nil
}

// Set stores v at i. Set is not a structural mutation.
func (b *Builder[T]) Set(i int, v T) error {
	if i < 0 || i >= len(b.items) {
		return b.outOfRange(i)
	}
	b.items[i] = v
	return nil
}

// Items returns a copy of the contents.
func (b *Builder[T]) Items() []T {
	return slices.Clone(b.items)
}

// View returns a view of the current contents. It goes stale on the next
// structural mutation.
func (b *Builder[T]) View() segment.Segment[T] {
	return segment.Of[T](b, extent.New(0, len(b.items)))
}

// ViewExtent returns a view of length elements starting at offset.
func (b *Builder[T]) ViewExtent(offset, length int) (segment.Segment[T], error) {
	return segment.NewExtent[T](b, offset, length)
}

// AppendItem appends a single element.
func (b *Builder[T]) AppendItem(v T) {
	b.items = append(b.items, v)
	b.touch()
}

// AppendItems appends items and returns the number added.
func (b *Builder[T]) AppendItems(items ...T) int {
	if len(items) == 0 {
		return 0
	}
	b.items = append(b.items, items...)
	b.touch()
	return len(items)
}

// Append appends the elements viewed by src, which may view b itself.
func (b *Builder[T]) Append(src segment.Segment[T]) (int, error) {
	items, err := src.Items()
	if err != nil {
		return 0, err
	}
	return b.AppendItems(items...), nil
}

// InsertItem inserts v before index at.
func (b *Builder[T]) InsertItem(at int, v T) error {
	_, err := b.InsertItems(at, v)
	return err
}

// InsertItems inserts items before index at and returns the number added.
func (b *Builder[T]) InsertItems(at int, items ...T) (int, error) {
	if at < 0 || at > len(b.items) {
		return 0, b.outOfRange(at)
	}
	if len(items) == 0 {
		return 0, nil
	}
	b.items = slices.Insert(b.items, at, items...)
	b.touch()
	return len(items), nil
}

// Insert inserts the elements viewed by src before index at.
func (b *Builder[T]) Insert(at int, src segment.Segment[T]) (int, error) {
	items, err := src.Items()
	if err != nil {
		return 0, err
	}
	return b.InsertItems(at, items...)
}

// RemoveAt removes the element at i.
func (b *Builder[T]) RemoveAt(i int) error {
	return b.Remove(i, 1)
}

// Remove removes length elements starting at offset.
func (b *Builder[T]) Remove(offset, length int) error {
	if !extent.IsValid(offset, length, len(b.items)) {
		return fmt.Errorf("%w: remove [%d for %d] from builder of length %d",
			segment.ErrOutOfRange, offset, length, len(b.items))
	}
	if length == 0 {
		return nil
	}
	b.items = slices.Delete(b.items, offset, offset+length)
	b.touch()
	return nil
}

// Replace replaces length elements starting at offset with the elements viewed
// by src. When src has exactly length elements they are written in place and,
// as with Set, existing views stay valid.
func (b *Builder[T]) Replace(offset, length int, src segment.Segment[T]) error {
	if !extent.IsValid(offset, length, len(b.items)) {
		return fmt.Errorf("%w: replace [%d for %d] in builder of length %d",
			segment.ErrOutOfRange, offset, length, len(b.items))
	}
	items, err := src.Items()
	if err != nil {
		return err
	}
	if len(items) == length {
		copy(b.items[offset:], items)
		return nil
	}
	b.items = slices.Replace(b.items, offset, offset+length, items...)
	b.touch()
	return nil
}

// RemoveAll removes every element m matches and returns how many were removed.
func (b *Builder[T]) RemoveAll(m segment.Matcher[T]) (int, error) {
	if segment.IsNilMatcher(m) {
		return 0, errNilMatcher
	}
	before := len(b.items)
	b.items = slices.DeleteFunc(b.items, m.Match)
	removed := before - len(b.items)
	if removed > 0 {
		b.touch()
	}
	return removed, nil
}

// Index returns the index of the first element m matches, or -1.
func (b *Builder[T]) Index(m segment.Matcher[T]) (int, error) {
	if segment.IsNilMatcher(m) {
		return -1, errNilMatcher
	}
	return slices.IndexFunc(b.items, m.Match), nil
}

// Truncate shrinks the builder to n elements, keeping its capacity.
func (b *Builder[T]) Truncate(n int) error {
	if n < 0 || n > len(b.items) {
		return fmt.Errorf("%w: truncate to %d, builder length %d", segment.ErrOutOfRange, n, len(b.items))
	}
	if n == len(b.items) {
		return nil
	}
	clear(b.items[n:])
	b.items = b.items[:n]
	b.touch()
	return nil
}

// Reset empties the builder, keeping its capacity.
func (b *Builder[T]) Reset() {
	_ = b.Truncate(0)
}

// Slice returns a new Builder holding a copy of [offset, offset+length).
func (b *Builder[T]) Slice(offset, length int) segment.Sequence[T] {
	return From(b.items[offset : offset+length]...)
}

// Concat returns a new Builder holding the elements of every part in order.
func (b *Builder[T]) Concat(parts ...segment.Segment[T]) (segment.Sequence[T], error) {
	n := 0
	for _, p := range parts {
		n += max(p.Len(), 0)
	}
	out := New[T](n)
	for _, p := range parts {
		if _, err := out.Append(p); err != nil {
			return nil, err
		}
	}
	return out, nil
}

func (b *Builder[T]) touch() {
	b.version = nextVersion()
}

func (b *Builder[T]) outOfRange(i int) error {
	return fmt.Errorf("%w: index %d in builder of length %d", segment.ErrOutOfRange, i, len(b.items))
}

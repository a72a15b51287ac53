package split

import (
	"fmt"
	"iter"

	"github.com/dshills/segments/internal/extent"
	"github.com/dshills/segments/internal/segment"
)

// stepFunc produces the next piece as (source index, extent relative to that
// source). ok is false once the scan is complete.
type stepFunc func() (src int, e extent.Extent, ok bool, err error)

// source is one input of a cursor plus the backing length recorded when the
// cursor was created.
type source[T any] struct {
	seg        segment.Segment[T]
	backingLen int
}

func newSource[T any](s segment.Segment[T]) source[T] {
	return source[T]{seg: s, backingLen: backingLen(s)}
}

func (s source[T]) check() error {
	if err := s.seg.Check(); err != nil {
		return err
	}
	if n := backingLen(s.seg); n != s.backingLen {
		return fmt.Errorf("%w: backing length changed from %d to %d during iteration",
			segment.ErrStaleView, s.backingLen, n)
	}
	return nil
}

// Cursor lazily produces sub-views of one or more source Segments in
// ascending offset order. Use it like a scanner:
//
//	c, err := split.CutUp(seg, 4)
//	if err != nil {
//		return err
//	}
//	for c.Next() {
//		piece := c.Segment()
//		...
//	}
//	if err := c.Err(); err != nil {
//		return err
//	}
//
// A Cursor is not safe for concurrent use. It stops with segment.ErrStaleView
// if a source's backing changes length mid-iteration.
type Cursor[T any] struct {
	sources []source[T]
	step    stepFunc
	rewind  func()

	cur  segment.Segment[T]
	err  error
	done bool
}

func newCursor[T any](step stepFunc, rewind func(), srcs ...segment.Segment[T]) *Cursor[T] {
	c := &Cursor[T]{step: step, rewind: rewind}
	for _, s := range srcs {
		c.sources = append(c.sources, newSource(s))
	}
	return c
}

// Next advances to the next piece. It returns false when the scan is complete
// or has failed; check Err to tell the two apart.
func (c *Cursor[T]) Next() bool {
	if c.done {
		return false
	}
	for _, s := range c.sources {
		if err := s.check(); err != nil {
			return c.fail(err)
		}
	}
	idx, e, ok, err := c.step()
	if err != nil {
		return c.fail(err)
	}
	if !ok {
		c.done = true
		c.cur = segment.Segment[T]{}
		return false
	}
	cur, err := c.sources[idx].seg.Sub(e)
	if err != nil {
		return c.fail(err)
	}
	c.cur = cur
	return true
}

// Segment returns the current piece.
func (c *Cursor[T]) Segment() segment.Segment[T] {
	return c.cur
}

// Err returns the error that stopped the cursor, if any.
func (c *Cursor[T]) Err() error {
	return c.err
}

// Reset rewinds the cursor to the start of its sources and clears any error.
// Backing lengths recorded at creation are kept, so a source that has since
// changed length fails the next call to Next.
func (c *Cursor[T]) Reset() {
	c.rewind()
	c.cur = segment.Segment[T]{}
	c.err = nil
	c.done = false
}

// All rewinds the cursor and returns an iterator over its pieces. Check Err
// after the loop.
func (c *Cursor[T]) All() iter.Seq[segment.Segment[T]] {
	return func(yield func(segment.Segment[T]) bool) {
		c.Reset()
		for c.Next() {
			if !yield(c.cur) {
				return
			}
		}
	}
}

// Collect rewinds the cursor and gathers every remaining piece.
func (c *Cursor[T]) Collect() ([]segment.Segment[T], error) {
	var out []segment.Segment[T]
	for s := range c.All() {
		out = append(out, s)
	}
	return out, c.err
}

func (c *Cursor[T]) fail(err error) bool {
	c.err = err
	c.done = true
	c.cur = segment.Segment[T]{}
	return false
}

func backingLen[T any](s segment.Segment[T]) int {
	if b := s.Backing(); b != nil {
		return b.Len()
	}
	return 0
}

// advance moves pos forward by d without passing n.
func advance(pos, d, n int) int {
	if d >= n-pos {
		return n
	}
	return pos + d
}

func invalid(format string, args ...any) error {
	return fmt.Errorf("%w: "+format, append([]any{segment.ErrInvalidArgument}, args...)...)
}

// Package faction classifies the elements of a segment into contiguous,
// tagged spans ("factions"), the first stage of a tokenizer.
package faction

import (
	"fmt"
	"iter"

	"github.com/dshills/segments/internal/segment"
)

// Segment is a view tagged with the faction it was classified as. Two tagged
// segments are equal when their views are Equal and their factions match.
type Segment[T any, F comparable] struct {
	segment.Segment[T]
	Faction F
}

// Equal reports whether both the view and the faction match.
func (s Segment[T, F]) Equal(other Segment[T, F]) bool {
	return s.Faction == other.Faction && s.Segment.Equal(other.Segment)
}

// Consumption tells Factionalize how many elements a classification covers.
// Build one with Take or Merge.
type Consumption struct {
	n     int
	merge bool
}

// Take consumes exactly n elements as one span. Spans taken this way are never
// merged with their neighbors.
func Take(n int) Consumption {
	return Consumption{n: n}
}

// Merge consumes one element and merges it with an immediately preceding run
// of the same faction that was also produced by Merge.
func Merge() Consumption {
	return Consumption{n: 1, merge: true}
}

// Len returns the number of elements consumed.
func (c Consumption) Len() int {
	return c.n
}

// IsMerge reports whether c is the merge signal.
func (c Consumption) IsMerge() bool {
	return c.merge
}

// Factionalizer classifies the start of the not yet consumed remainder.
type Factionalizer[T any, F comparable] func(remaining segment.Segment[T]) (F, Consumption, error)

type result[F comparable] struct {
	at      int
	faction F
	consume Consumption
	err     error
}

// Cursor lazily yields the tagged spans of a Segment. A Cursor is not safe
// for concurrent use.
type Cursor[T any, F comparable] struct {
	src        segment.Segment[T]
	fn         Factionalizer[T, F]
	n          int
	backingLen int

	pos     int
	pending *result[F]
	cur     Segment[T, F]
	err     error
	done    bool
}

// Factionalize returns a cursor that repeatedly calls fn on the remainder of
// s and yields one tagged span per explicit Take, or per run of Merge results
// sharing a faction.
func Factionalize[T any, F comparable](s segment.Segment[T], fn Factionalizer[T, F]) (*Cursor[T, F], error) {
	if fn == nil {
		return nil, fmt.Errorf("%w: nil factionalizer", segment.ErrInvalidArgument)
	}
	return &Cursor[T, F]{
		src:        s,
		fn:         fn,
		n:          s.Len(),
		backingLen: backingLen(s),
	}, nil
}

// Next advances to the next span.
func (c *Cursor[T, F]) Next() bool {
	if c.done {
		return false
	}
	if err := c.check(); err != nil {
		return c.fail(err)
	}
	if c.pos >= c.n {
		c.done = true
		c.cur = Segment[T, F]{}
		return false
	}

	r := c.classify(c.pos)
	if r.err != nil {
		return c.fail(r.err)
	}

	start, end := c.pos, c.pos+1
	if r.consume.merge {
		for end < c.n {
			next := c.classify(end)
			if next.err == nil && next.consume.merge && next.faction == r.faction {
				end++
				continue
			}
			c.pending = &next
			break
		}
	} else {
		if r.consume.n <= 0 {
			return c.fail(fmt.Errorf("%w: factionalizer consumed %d at offset %d",
				segment.ErrInvalidArgument, r.consume.n, c.pos))
		}
		end = start + min(r.consume.n, c.n-start)
	}

	view, err := c.src.Range(start, end)
	if err != nil {
		return c.fail(err)
	}
	c.cur = Segment[T, F]{Segment: view, Faction: r.faction}
	c.pos = end
	return true
}

// Segment returns the current tagged span.
func (c *Cursor[T, F]) Segment() Segment[T, F] {
	return c.cur
}

// Err returns the error that stopped the cursor, if any.
func (c *Cursor[T, F]) Err() error {
	return c.err
}

// Reset rewinds the cursor to the start of its source.
func (c *Cursor[T, F]) Reset() {
	c.pos = 0
	c.pending = nil
	c.cur = Segment[T, F]{}
	c.err = nil
	c.done = false
}

// All rewinds the cursor and returns an iterator over the tagged spans.
func (c *Cursor[T, F]) All() iter.Seq[Segment[T, F]] {
	return func(yield func(Segment[T, F]) bool) {
		c.Reset()
		for c.Next() {
			if !yield(c.cur) {
				return
			}
		}
	}
}

// Collect rewinds the cursor and gathers every span.
func (c *Cursor[T, F]) Collect() ([]Segment[T, F], error) {
	var out []Segment[T, F]
	for s := range c.All() {
		out = append(out, s)
	}
	return out, c.err
}

// classify returns the factionalizer's verdict at relative offset at, reusing a
// lookahead result when one is pending for that offset.
func (c *Cursor[T, F]) classify(at int) result[F] {
	if p := c.pending; p != nil {
		c.pending = nil
		if p.at == at {
			return *p
		}
	}
	r := result[F]{at: at}
	rest, err := c.src.From(at)
	if err != nil {
		r.err = err
		return r
	}
	r.faction, r.consume, r.err = c.fn(rest)
	return r
}

func (c *Cursor[T, F]) check() error {
	if err := c.src.Check(); err != nil {
		return err
	}
	if n := backingLen(c.src); n != c.backingLen {
		return fmt.Errorf("%w: backing length changed from %d to %d during iteration",
			segment.ErrStaleView, c.backingLen, n)
	}
	return nil
}

func (c *Cursor[T, F]) fail(err error) bool {
	c.err = err
	c.done = true
	c.cur = Segment[T, F]{}
	return false
}

func backingLen[T any](s segment.Segment[T]) int {
	if b := s.Backing(); b != nil {
		return b.Len()
	}
	return 0
}

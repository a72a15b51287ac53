package split

import (
	"github.com/dshills/segments/internal/extent"
	"github.com/dshills/segments/internal/segment"
)

// Splitter receives the not yet consumed remainder of a Segment and returns the
// length of the next piece. Results larger than the remainder are clamped; a
// result of zero or less stops the scan with ErrInvalidArgument.
type Splitter[T any] func(remaining segment.Segment[T]) (int, error)

// Split cuts s into variable-length pieces chosen by fn.
func Split[T any](s segment.Segment[T], fn Splitter[T]) (*Cursor[T], error) {
	if fn == nil {
		return nil, invalid("nil splitter")
	}
	n := s.Len()
	pos := 0
	step := func() (int, extent.Extent, bool, error) {
		if pos >= n {
			return 0, extent.Empty, false, nil
		}
		rest, err := s.From(pos)
		if err != nil {
			return 0, extent.Empty, false, err
		}
		l, err := fn(rest)
		if err != nil {
			return 0, extent.Empty, false, err
		}
		if l <= 0 {
			return 0, extent.Empty, false, invalid("splitter returned %d at offset %d", l, pos)
		}
		e := extent.New(pos, min(l, n-pos))
		pos = e.End()
		return 0, e, true, nil
	}
	return newCursor(step, func() { pos = 0 }, s), nil
}

// Where emits every maximal run of consecutive elements m matches, starting the
// search at the relative offset start.
func Where[T any](s segment.Segment[T], start int, m segment.Matcher[T]) (*Cursor[T], error) {
	if segment.IsNilMatcher(m) {
		return nil, invalid("nil matcher")
	}
	n := s.Len()
	if start < 0 || start > n {
		return nil, invalid("start %d in view of length %d", start, n)
	}
	pos := start
	step := func() (int, extent.Extent, bool, error) {
		if pos >= n {
			return 0, extent.Empty, false, nil
		}
		gap, err := s.ScanUntil(pos, m)
		if err != nil {
			return 0, extent.Empty, false, err
		}
		if gap.End() >= n {
			pos = n
			return 0, extent.Empty, false, nil
		}
		run, err := s.ScanWhile(gap.End(), m)
		if err != nil {
			return 0, extent.Empty, false, err
		}
		pos = run.End()
		return 0, run, true, nil
	}
	return newCursor(step, func() { pos = start }, s), nil
}

// Interleave takes pieces of pieceLen elements from each input in turn until
// every input is exhausted. Exhausted inputs are skipped.
func Interleave[T any](pieceLen int, segs ...segment.Segment[T]) (*Cursor[T], error) {
	if pieceLen <= 0 {
		return nil, invalid("piece length %d", pieceLen)
	}
	lens := make([]int, len(segs))
	for i, s := range segs {
		lens[i] = s.Len()
	}
	pos := make([]int, len(segs))
	next := 0
	step := func() (int, extent.Extent, bool, error) {
		for range segs {
			i := next
			next = (next + 1) % len(segs)
			if pos[i] >= lens[i] {
				continue
			}
			e := extent.New(pos[i], min(pieceLen, lens[i]-pos[i]))
			pos[i] = e.End()
			return i, e, true, nil
		}
		return 0, extent.Empty, false, nil
	}
	rewind := func() {
		clear(pos)
		next = 0
	}
	return newCursor(step, rewind, segs...), nil
}

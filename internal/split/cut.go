package split

import (
	"github.com/dshills/segments/internal/extent"
	"github.com/dshills/segments/internal/segment"
)

// CutUp cuts s into consecutive, non-overlapping pieces of pieceLen elements.
// The last piece is shorter when pieceLen does not divide Len.
func CutUp[T any](s segment.Segment[T], pieceLen int) (*Cursor[T], error) {
	if pieceLen <= 0 {
		return nil, invalid("piece length %d", pieceLen)
	}
	n := s.Len()
	pos := 0
	step := func() (int, extent.Extent, bool, error) {
		if pos >= n {
			return 0, extent.Empty, false, nil
		}
		e := extent.New(pos, min(pieceLen, n-pos))
		pos = e.End()
		return 0, e, true, nil
	}
	return newCursor(step, func() { pos = 0 }, s), nil
}

// CutAndSplice emits a sliding window of pieceLen elements, advancing by
// pieceLen-overlap each step, so neighboring pieces share overlap elements.
// Windows keep starting until the start passes the end of s, so the trailing
// windows may be shorter than pieceLen.
func CutAndSplice[T any](s segment.Segment[T], pieceLen, overlap int) (*Cursor[T], error) {
	if pieceLen <= 0 {
		return nil, invalid("piece length %d", pieceLen)
	}
	if overlap < 0 || overlap >= pieceLen {
		return nil, invalid("overlap %d for piece length %d", overlap, pieceLen)
	}
	n := s.Len()
	stride := pieceLen - overlap
	pos := 0
	step := func() (int, extent.Extent, bool, error) {
		if pos >= n {
			return 0, extent.Empty, false, nil
		}
		e := extent.New(pos, min(pieceLen, n-pos))
		pos = advance(pos, stride, n)
		return 0, e, true, nil
	}
	return newCursor(step, func() { pos = 0 }, s), nil
}

// Dice alternately takes pieceLen elements and skips skipLen elements. With
// invert set it emits the skipped spans instead, so the two modes together
// cover every element of s exactly once.
func Dice[T any](s segment.Segment[T], pieceLen, skipLen int, invert bool) (*Cursor[T], error) {
	if pieceLen <= 0 {
		return nil, invalid("piece length %d", pieceLen)
	}
	if skipLen < 0 {
		return nil, invalid("skip length %d", skipLen)
	}
	n := s.Len()
	pos := 0
	take, drop := pieceLen, skipLen
	if invert {
		take, drop = skipLen, pieceLen
		pos = min(pieceLen, n)
	}
	step := func() (int, extent.Extent, bool, error) {
		if pos >= n || take == 0 {
			return 0, extent.Empty, false, nil
		}
		e := extent.New(pos, min(take, n-pos))
		pos = advance(e.End(), drop, n)
		return 0, e, true, nil
	}
	rewind := func() {
		pos = 0
		if invert {
			pos = min(pieceLen, n)
		}
	}
	return newCursor(step, rewind, s), nil
}

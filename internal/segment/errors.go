package segment

import (
	"errors"

	"github.com/dshills/segments/internal/extent"
)

// Errors returned by segment operations.
var (
	// ErrStaleView indicates access through a view whose backing sequence was
	// structurally mutated after the view was taken.
	ErrStaleView = errors.New("stale view")

	// ErrNoBacking indicates an operation that needs a backing sequence was
	// called on a zero Segment.
	ErrNoBacking = errors.New("segment has no backing sequence")

	ErrInvalidRange       = extent.ErrInvalidRange
	ErrOutOfRange         = extent.ErrOutOfRange
	ErrArithmeticOverflow = extent.ErrArithmeticOverflow
	ErrInvalidArgument    = extent.ErrInvalidArgument
)

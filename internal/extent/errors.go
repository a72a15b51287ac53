package extent

import "errors"

// Errors returned by extent and view operations.
var (
	// ErrInvalidRange indicates a malformed start/end or offset/length pair.
	ErrInvalidRange = errors.New("invalid range")

	// ErrOutOfRange indicates an access or sub-extent outside the current bounds.
	ErrOutOfRange = errors.New("out of range")

	// ErrArithmeticOverflow indicates offset or length arithmetic left the int range.
	ErrArithmeticOverflow = errors.New("arithmetic overflow")

	// ErrInvalidArgument indicates a parameter that violates its precondition.
	ErrInvalidArgument = errors.New("invalid argument")
)

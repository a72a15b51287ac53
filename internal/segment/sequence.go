package segment

import "reflect"

// Sequence is the capability a concrete store must expose to be viewable by a
// Segment. Get and Put are unchecked: callers (Segment, Builder) validate the
// index first, and implementations may panic on out-of-range access the way
// slice indexing does.
//
// Implementations should be pointer types so that Segment equality can compare
// backing identity.
type Sequence[T any] interface {
	// Len returns the current number of elements.
	Len() int

	// Get returns the element at index i.
	Get(i int) T

	// Put stores v at index i.
	Put(i int, v T)

	// Concat returns a new, independent sequence holding the elements of every
	// part in order.
	Concat(parts ...Segment[T]) (Sequence[T], error)

	// Slice returns a new, independent copy of [offset, offset+length).
	Slice(offset, length int) Sequence[T]
}

// Versioned is implemented by sequences that can change length. Version must
// change on every structural mutation; a Segment taken before the change then
// fails access with ErrStaleView.
type Versioned interface {
	Version() uint64
}

// Matcher is a predicate over elements. Matchers are expected to be stateless
// and safe to share.
type Matcher[T any] interface {
	Match(v T) bool
}

// IsNilMatcher reports whether m is nil, including a nil MatchFunc or nil
// pointer held in a non-nil interface.
func IsNilMatcher[T any](m Matcher[T]) bool {
	if m == nil {
		return true
	}
	switch v := reflect.ValueOf(m); v.Kind() {
	case reflect.Func, reflect.Pointer, reflect.Map, reflect.Slice, reflect.Chan, reflect.Interface:
		return v.IsNil()
	}
	return false
}

// MatchFunc adapts an ordinary function to the Matcher interface.
type MatchFunc[T any] func(v T) bool

// Match calls f(v).
func (f MatchFunc[T]) Match(v T) bool {
	return f(v)
}

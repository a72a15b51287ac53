package segment

import (
	"fmt"
	"reflect"

	"github.com/dshills/segments/internal/extent"
)

// Segment is a lightweight, copyable view of a contiguous run of a backing
// Sequence. It stores the backing reference and an absolute Extent; it never
// owns or copies elements. Writes through a Segment are visible to every other
// view of the same backing.
//
// The zero Segment has no backing and is empty.
type Segment[T any] struct {
	backing Sequence[T]
	ext     extent.Extent
	version uint64
}

// New returns a view of the entire backing sequence. The view tracks the
// backing's length: if the backing grows or shrinks so does Len.
func New[T any](backing Sequence[T]) Segment[T] {
	return Of(backing, extent.Entire())
}

// Of returns a view of e within backing without validating e. Access through an
// invalid view fails with ErrOutOfRange.
func Of[T any](backing Sequence[T], e extent.Extent) Segment[T] {
	return Segment[T]{backing: backing, ext: e, version: versionOf(backing)}
}

// FromExtent returns a view of e within backing.
func FromExtent[T any](backing Sequence[T], e extent.Extent) (Segment[T], error) {
	total := lenOf(backing)
	e = e.Resolve(total)
	if !e.IsValid(total) {
		return Segment[T]{}, fmt.Errorf("%w: %s in sequence of length %d", ErrOutOfRange, e, total)
	}
	return Of(backing, e), nil
}

// NewAt returns a view of backing from offset to its end.
func NewAt[T any](backing Sequence[T], offset int) (Segment[T], error) {
	total := lenOf(backing)
	if offset < 0 || offset > total {
		return Segment[T]{}, fmt.Errorf("%w: offset %d in sequence of length %d", ErrOutOfRange, offset, total)
	}
	return Of(backing, extent.New(offset, total-offset)), nil
}

// NewExtent returns a view of length elements of backing starting at offset.
func NewExtent[T any](backing Sequence[T], offset, length int) (Segment[T], error) {
	return FromExtent(backing, extent.New(offset, length))
}

// NewPrefix returns a view of the first n elements of backing.
func NewPrefix[T any](backing Sequence[T], n int) (Segment[T], error) {
	return FromExtent(backing, extent.New(0, n))
}

// NewSuffix returns a view of the last n elements of backing.
func NewSuffix[T any](backing Sequence[T], n int) (Segment[T], error) {
	total := lenOf(backing)
	return FromExtent(backing, extent.New(total-n, n))
}

// NewRange returns a view of [start, end) within backing.
func NewRange[T any](backing Sequence[T], start, end int) (Segment[T], error) {
	total := lenOf(backing)
	if !extent.IsValidRange(start, end, total) {
		return Segment[T]{}, fmt.Errorf("%w: [%d:%d) in sequence of length %d", ErrOutOfRange, start, end, total)
	}
	return Of(backing, extent.New(start, end-start)), nil
}

// NewRangeInclusive returns a view of [start, end] within backing.
func NewRangeInclusive[T any](backing Sequence[T], start, end int) (Segment[T], error) {
	e, err := extent.NewRangeInclusive(start, end)
	if err != nil {
		return Segment[T]{}, err
	}
	return FromExtent(backing, e)
}

// Backing returns the sequence this view reads from.
func (s Segment[T]) Backing() Sequence[T] {
	return s.backing
}

// Extent returns the absolute extent of the view within its backing, with an
// open-ended extent resolved against the backing's current length.
func (s Segment[T]) Extent() extent.Extent {
	return s.ext.Resolve(lenOf(s.backing))
}

// Offset returns the absolute start of the view within its backing.
func (s Segment[T]) Offset() int {
	return s.ext.Offset()
}

// Len returns the number of elements in the view.
func (s Segment[T]) Len() int {
	return s.Extent().Len()
}

// End returns the absolute end of the view within its backing.
func (s Segment[T]) End() int {
	return s.Extent().End()
}

// IsEmpty reports whether the view has no elements.
func (s Segment[T]) IsEmpty() bool {
	return s.Len() <= 0
}

// Check reports whether the view may be read. It fails with ErrStaleView when
// the backing was structurally mutated after the view was taken, and with
// ErrOutOfRange when the extent no longer fits the backing.
func (s Segment[T]) Check() error {
	if v, ok := s.backing.(Versioned); ok && v.Version() != s.version {
		return fmt.Errorf("%w: view %s taken at version %d, backing at %d",
			ErrStaleView, s.ext, s.version, v.Version())
	}
	total := lenOf(s.backing)
	if e := s.ext.Resolve(total); !e.IsValid(total) {
		return fmt.Errorf("%w: %s in sequence of length %d", ErrOutOfRange, e, total)
	}
	return nil
}

// At returns the element at index i of the view.
func (s Segment[T]) At(i int) (T, error) {
	var zero T
	r, err := s.index(i)
	if err != nil {
		return zero, err
	}
	return s.backing.Get(r), nil
}

// Set stores v at index i of the view, writing through to the backing.
func (s Segment[T]) Set(i int, v T) error {
	r, err := s.index(i)
	if err != nil {
		return err
	}
	s.backing.Put(r, v)
	return nil
}

// AtOr returns the element at index i, or def when i is out of range or the
// view cannot be read.
func (s Segment[T]) AtOr(i int, def T) T {
	v, err := s.At(i)
	if err != nil {
		return def
	}
	return v
}

// First returns the first element of the view.
func (s Segment[T]) First() (T, bool) {
	v, err := s.At(0)
	return v, err == nil
}

// Last returns the last element of the view.
func (s Segment[T]) Last() (T, bool) {
	v, err := s.At(s.Len() - 1)
	return v, err == nil
}

// AtReverse returns the element at index i counting from the end of the view,
// so AtReverse(0) is the last element.
func (s Segment[T]) AtReverse(i int) (T, error) {
	return s.At(s.Len() - 1 - i)
}

// SetReverse stores v at index i counting from the end of the view.
func (s Segment[T]) SetReverse(i int, v T) error {
	return s.Set(s.Len()-1-i, v)
}

// AtFromEnd returns the n-th element from the end, 1-based: AtFromEnd(1) is the
// last element. n must be in [1, Len].
func (s Segment[T]) AtFromEnd(n int) (T, error) {
	if n <= 0 {
		var zero T
		return zero, fmt.Errorf("%w: from-end index %d", ErrOutOfRange, n)
	}
	return s.At(s.Len() - n)
}

// SetFromEnd stores v at the n-th element from the end, 1-based.
func (s Segment[T]) SetFromEnd(n int, v T) error {
	if n <= 0 {
		return fmt.Errorf("%w: from-end index %d", ErrOutOfRange, n)
	}
	return s.Set(s.Len()-n, v)
}

// InReverse returns an accessor that reads the same elements last to first.
func (s Segment[T]) InReverse() Reversed[T] {
	return Reversed[T]{seg: s}
}

// Each calls fn for every element in order until fn returns false.
func (s Segment[T]) Each(fn func(i int, v T) bool) error {
	if err := s.Check(); err != nil {
		return err
	}
	r := s.Extent()
	for i := range r.Len() {
		if !fn(i, s.backing.Get(r.Offset()+i)) {
			return nil
		}
	}
	return nil
}

// Items copies the elements of the view into a new slice.
func (s Segment[T]) Items() ([]T, error) {
	if err := s.Check(); err != nil {
		return nil, err
	}
	r := s.Extent()
	out := make([]T, r.Len())
	for i := range out {
		out[i] = s.backing.Get(r.Offset() + i)
	}
	return out, nil
}

// Equal reports whether both views share the same backing and cover the same
// extent. Element values are not compared; see SequenceEqual.
func (s Segment[T]) Equal(other Segment[T]) bool {
	return sameBacking(s.backing, other.backing) && s.Extent() == other.Extent()
}

// Hash is consistent with Equal: equal views hash alike. Backings that are not
// pointers contribute nothing beyond their extent.
func (s Segment[T]) Hash() uint64 {
	h := s.Extent().Hash()
	if s.backing != nil {
		if v := reflect.ValueOf(s.backing); v.Kind() == reflect.Pointer {
			h ^= uint64(v.Pointer()) * 0x9e3779b97f4a7c15
		}
	}
	return h
}

// String describes the view's extent.
func (s Segment[T]) String() string {
	return "segment" + s.Extent().String()
}

// index maps a view-relative index to a backing index after checking the view.
func (s Segment[T]) index(i int) (int, error) {
	if err := s.Check(); err != nil {
		return 0, err
	}
	r := s.Extent()
	if i < 0 || i >= r.Len() {
		return 0, fmt.Errorf("%w: index %d in view of length %d", ErrOutOfRange, i, r.Len())
	}
	return r.Offset() + i, nil
}

// derive returns a view of the relative extent e, inheriting the version stamp.
func (s Segment[T]) derive(e extent.Extent) Segment[T] {
	return Segment[T]{
		backing: s.backing,
		ext:     extent.New(s.Offset()+e.Offset(), e.Len()),
		version: s.version,
	}
}

func lenOf[T any](b Sequence[T]) int {
	if b == nil {
		return 0
	}
	return b.Len()
}

func versionOf[T any](b Sequence[T]) uint64 {
	if v, ok := b.(Versioned); ok {
		return v.Version()
	}
	return 0
}

func sameBacking[T any](a, b Sequence[T]) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	ta := reflect.TypeOf(a)
	if ta != reflect.TypeOf(b) {
		return false
	}
	if ta.Comparable() {
		return a == b
	}
	va, vb := reflect.ValueOf(a), reflect.ValueOf(b)
	switch ta.Kind() {
	case reflect.Slice:
		return va.Len() == vb.Len() && va.Pointer() == vb.Pointer()
	case reflect.Map, reflect.Func:
		return va.Pointer() == vb.Pointer()
	}
	return false
}

// Reversed reads a Segment back to front. Index 0 is the view's last element.
type Reversed[T any] struct {
	seg Segment[T]
}

// Segment returns the underlying forward view.
func (r Reversed[T]) Segment() Segment[T] {
	return r.seg
}

// Len returns the number of elements.
func (r Reversed[T]) Len() int {
	return r.seg.Len()
}

// At returns the i-th element counting from the end.
func (r Reversed[T]) At(i int) (T, error) {
	return r.seg.AtReverse(i)
}

// Set stores v at the i-th element counting from the end.
func (r Reversed[T]) Set(i int, v T) error {
	return r.seg.SetReverse(i, v)
}

// Items copies the elements last to first into a new slice.
func (r Reversed[T]) Items() ([]T, error) {
	items, err := r.seg.Items()
	if err != nil {
		return nil, err
	}
	for i, j := 0, len(items)-1; i < j; i, j = i+1, j-1 {
		items[i], items[j] = items[j], items[i]
	}
	return items, nil
}

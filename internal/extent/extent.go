package extent

import (
	"cmp"
	"fmt"
	"math"
)

// Open is the length sentinel of an open-ended extent. An open-ended extent
// runs to the end of whatever sequence it is later resolved against.
const Open = math.MaxInt

// Extent is an immutable half-open interval [Offset, Offset+Len).
// It holds coordinates only and never references any data.
//
// The zero value is the empty extent at offset 0.
type Extent struct {
	offset int
	length int
}

// Empty is the empty extent at offset 0.
var Empty = Extent{}

// New creates an extent from an offset and a length.
// No validation is performed; use IsValid against a concrete length.
func New(offset, length int) Extent {
	return Extent{offset: offset, length: length}
}

// NewRange creates an extent covering [start, end).
func NewRange(start, end int) (Extent, error) {
	if start < 0 || start > end {
		return Extent{}, fmt.Errorf("%w: [%d:%d)", ErrInvalidRange, start, end)
	}
	return Extent{offset: start, length: end - start}, nil
}

// NewRangeInclusive creates an extent covering [start, end].
func NewRangeInclusive(start, end int) (Extent, error) {
	if start < 0 || start > end {
		return Extent{}, fmt.Errorf("%w: [%d:%d]", ErrInvalidRange, start, end)
	}
	if end == math.MaxInt {
		return Extent{}, fmt.Errorf("%w: inclusive end %d", ErrArithmeticOverflow, end)
	}
	return Extent{offset: start, length: end - start + 1}, nil
}

// NewToEnd creates an open-ended extent starting at start.
func NewToEnd(start int) Extent {
	return Extent{offset: start, length: Open}
}

// NewToStart creates the extent [0, offset).
func NewToStart(offset int) Extent {
	return Extent{offset: 0, length: offset}
}

// Entire returns the open-ended extent starting at 0, meaning "the whole sequence".
func Entire() Extent {
	return Extent{offset: 0, length: Open}
}

// Offset returns the start of the extent.
func (e Extent) Offset() int {
	return e.offset
}

// Len returns the length of the extent. Open-ended extents report Open.
func (e Extent) Len() int {
	return e.length
}

// End returns Offset+Len. The sum saturates at math.MaxInt, which is what an
// open-ended extent reports.
func (e Extent) End() int {
	end, ok := addInt(e.offset, e.length)
	if !ok {
		if e.length > 0 {
			return math.MaxInt
		}
		return math.MinInt
	}
	return end
}

// IsEmpty reports whether the extent covers no positions.
func (e Extent) IsEmpty() bool {
	return e.length <= 0
}

// IsToEnd reports whether the extent is open-ended.
func (e Extent) IsToEnd() bool {
	return e.length == Open
}

// IsEntire reports whether the extent means "the whole sequence".
func (e Extent) IsEntire() bool {
	return e.offset == 0 && e.length == Open
}

// Truncate clamps the length down to max(maxLen, 0). It never fails.
func (e Extent) Truncate(maxLen int) Extent {
	if maxLen < 0 {
		maxLen = 0
	}
	if maxLen < e.length {
		return Extent{offset: e.offset, length: maxLen}
	}
	return e
}

// Prefix returns the first n positions of the extent, with n clamped to [0, Len].
func (e Extent) Prefix(n int) Extent {
	return Extent{offset: e.offset, length: clamp(n, 0, max(e.length, 0))}
}

// ChangeLength adds delta to the length.
func (e Extent) ChangeLength(delta int) (Extent, error) {
	n, ok := addInt(e.length, delta)
	if !ok || n < 0 {
		return Extent{}, fmt.Errorf("%w: length %d%+d", ErrArithmeticOverflow, e.length, delta)
	}
	return Extent{offset: e.offset, length: n}, nil
}

// Move translates the extent forwards by delta positions.
func (e Extent) Move(delta int) (Extent, error) {
	off, ok := addInt(e.offset, delta)
	if !ok {
		return Extent{}, fmt.Errorf("%w: offset %d%+d", ErrArithmeticOverflow, e.offset, delta)
	}
	return Extent{offset: off, length: e.length}, nil
}

// MoveBackwards translates the extent backwards by delta positions.
func (e Extent) MoveBackwards(delta int) (Extent, error) {
	off, ok := subInt(e.offset, delta)
	if !ok {
		return Extent{}, fmt.Errorf("%w: offset %d-%d", ErrArithmeticOverflow, e.offset, delta)
	}
	return Extent{offset: off, length: e.length}, nil
}

// MoveTo places the extent at offset, keeping its length. An open-ended extent
// stays open-ended; otherwise the new end must be representable.
func (e Extent) MoveTo(offset int) (Extent, error) {
	if !e.IsToEnd() {
		if _, ok := addInt(offset, e.length); !ok {
			return Extent{}, fmt.Errorf("%w: offset %d length %d", ErrArithmeticOverflow, offset, e.length)
		}
	}
	return Extent{offset: offset, length: e.length}, nil
}

// Bisect splits the extent at k (clamped to [0, Len]) into a prefix and a suffix.
// The suffix of an open-ended extent stays open-ended.
func (e Extent) Bisect(k int) (Extent, Extent) {
	k = clamp(k, 0, max(e.length, 0))
	a := Extent{offset: e.offset, length: k}
	if e.IsToEnd() {
		return a, Extent{offset: e.offset + k, length: Open}
	}
	return a, Extent{offset: e.offset + k, length: e.length - k}
}

// Resolve turns an open-ended extent into a concrete one against total.
// Concrete extents are returned unchanged.
func (e Extent) Resolve(total int) Extent {
	if !e.IsToEnd() {
		return e
	}
	return Extent{offset: e.offset, length: max(total-e.offset, 0)}
}

// IsValid reports whether the extent fits inside a sequence of length total.
func (e Extent) IsValid(total int) bool {
	return IsValid(e.offset, e.length, total)
}

// Validate clamps the extent into [0, total]. It never fails.
func (e Extent) Validate(total int) Extent {
	if total < 0 {
		total = 0
	}
	off := clamp(e.offset, 0, total)
	end := clamp(e.End(), off, total)
	return Extent{offset: off, length: end - off}
}

// Intersects reports whether the two extents share at least one position.
func (e Extent) Intersects(other Extent) bool {
	return max(e.offset, other.offset) < min(e.End(), other.End())
}

// Contains reports whether other lies entirely within e.
func (e Extent) Contains(other Extent) bool {
	return other.offset >= e.offset && other.End() <= e.End()
}

// Constrain clips e to fit inside enclosure. See the package function.
func (e Extent) Constrain(enclosure Extent) Extent {
	return Constrain(e, enclosure)
}

// Compare orders extents by offset, then by length.
// It returns -1, 0 or +1.
func (e Extent) Compare(other Extent) int {
	return Compare(e, other)
}

// Hash mixes offset and length into a 64-bit hash. Swapped offset/length
// pairs hash differently.
func (e Extent) Hash() uint64 {
	h := mix64(uint64(e.offset))
	return mix64(h ^ (uint64(e.length) + 0x9e3779b97f4a7c15 + (h << 6) + (h >> 2)))
}

// String renders the extent as [offset:end) or [offset:..) when open-ended.
func (e Extent) String() string {
	if e.IsToEnd() {
		return fmt.Sprintf("[%d:..)", e.offset)
	}
	return fmt.Sprintf("[%d:%d)", e.offset, e.End())
}

// IsValid reports whether (offset, length) fits inside a sequence of length
// total: 0 <= offset, offset+length <= total, with no overflow of the sum.
func IsValid(offset, length, total int) bool {
	if offset < 0 || length < 0 || total < 0 {
		return false
	}
	end, ok := addInt(offset, length)
	return ok && offset <= total && end <= total
}

// IsValidRange reports whether [start, end) fits inside a sequence of length total.
// An empty but otherwise valid range is valid.
func IsValidRange(start, end, total int) bool {
	return start >= 0 && end >= start && total >= 0 && end <= total
}

// Intersection returns the overlap of a and b, or Empty when they do not overlap.
func Intersection(a, b Extent) Extent {
	start := max(a.offset, b.offset)
	end := min(a.End(), b.End())
	if start < end {
		if a.IsToEnd() && b.IsToEnd() {
			return Extent{offset: start, length: Open}
		}
		return Extent{offset: start, length: end - start}
	}
	return Empty
}

// Union returns the smallest extent covering both a and b, including any gap
// between them. If either is open-ended so is the result.
func Union(a, b Extent) Extent {
	off := min(a.offset, b.offset)
	if a.IsToEnd() || b.IsToEnd() {
		return Extent{offset: off, length: Open}
	}
	end := max(a.End(), b.End())
	n, ok := subInt(end, off)
	if !ok {
		n = Open
	}
	return Extent{offset: off, length: n}
}

// Constrain clips e to fit inside enclosure. Overlapping extents yield their
// intersection; an extent wholly before the enclosure yields an empty extent at
// enclosure's offset, and one wholly after yields an empty extent at its end.
func Constrain(e, enclosure Extent) Extent {
	lo, hi := enclosure.offset, enclosure.End()
	if hi < lo {
		hi = lo
	}
	off := clamp(e.offset, lo, hi)
	if e.IsToEnd() && enclosure.IsToEnd() {
		return Extent{offset: off, length: Open}
	}
	end := clamp(e.End(), off, hi)
	return Extent{offset: off, length: end - off}
}

// Subtract returns a with every position of b removed. The result has up to
// two pieces: (a, Empty) when disjoint, (Empty, Empty) when b covers a, a single
// remaining prefix or suffix plus Empty, or (before, after) when b is strictly
// inside a.
func Subtract(a, b Extent) (Extent, Extent) {
	sect := Intersection(a, b)
	if sect.IsEmpty() {
		return a, Empty
	}
	before := Extent{offset: a.offset, length: sect.offset - a.offset}
	var after Extent
	switch {
	case a.IsToEnd() && !sect.IsToEnd():
		after = Extent{offset: sect.End(), length: Open}
	default:
		after = Extent{offset: sect.End(), length: a.End() - sect.End()}
	}
	switch {
	case before.IsEmpty() && after.IsEmpty():
		return Empty, Empty
	case before.IsEmpty():
		return after, Empty
	case after.IsEmpty():
		return before, Empty
	}
	return before, after
}

// SymmetricDifference returns the positions covered by exactly one of a and b.
// Normally the result is (a minus the intersection, b minus the intersection).
// When either extent contains the other, the slots no longer follow the
// arguments: both hold pieces of the outer extent, as (before, after) in
// position order, whichever of a or b is the outer one.
func SymmetricDifference(a, b Extent) (Extent, Extent) {
	if !a.Intersects(b) {
		return a, b
	}
	if a.Contains(b) {
		return Subtract(a, b)
	}
	if b.Contains(a) {
		return Subtract(b, a)
	}
	x, _ := Subtract(a, b)
	y, _ := Subtract(b, a)
	return x, y
}

// Compare orders extents lexicographically by (offset, length).
func Compare(a, b Extent) int {
	if c := cmp.Compare(a.offset, b.offset); c != 0 {
		return c
	}
	return cmp.Compare(a.length, b.length)
}

func addInt(a, b int) (int, bool) {
	c := a + b
	if (b > 0 && c < a) || (b < 0 && c > a) {
		return 0, false
	}
	return c, true
}

func subInt(a, b int) (int, bool) {
	c := a - b
	if (b > 0 && c > a) || (b < 0 && c < a) {
		return 0, false
	}
	return c, true
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// mix64 is the splitmix64 finalizer.
func mix64(x uint64) uint64 {
	x ^= x >> 30
	x *= 0xbf58476d1ce4e5b9
	x ^= x >> 27
	x *= 0x94d049bb133111eb
	x ^= x >> 31
	return x
}

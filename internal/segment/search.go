package segment

import (
	"cmp"
	"slices"
)

// SequenceEqual reports whether a and b hold equal elements in the same order.
func SequenceEqual[T comparable](a, b Segment[T]) (bool, error) {
	x, err := a.Items()
	if err != nil {
		return false, err
	}
	y, err := b.Items()
	if err != nil {
		return false, err
	}
	return slices.Equal(x, y), nil
}

// HasPrefix reports whether s begins with the elements of prefix.
func HasPrefix[T comparable](s, prefix Segment[T]) (bool, error) {
	if prefix.Len() > s.Len() {
		return false, nil
	}
	head, err := s.Prefix(prefix.Len())
	if err != nil {
		return false, err
	}
	return SequenceEqual(head, prefix)
}

// HasSuffix reports whether s ends with the elements of suffix.
func HasSuffix[T comparable](s, suffix Segment[T]) (bool, error) {
	if suffix.Len() > s.Len() {
		return false, nil
	}
	tail, err := s.Suffix(suffix.Len())
	if err != nil {
		return false, err
	}
	return SequenceEqual(tail, suffix)
}

// Index returns the relative offset of the first occurrence of needle in s, or
// -1. An empty needle is found at 0.
func Index[T comparable](s, needle Segment[T]) (int, error) {
	hay, pat, err := itemsOf(s, needle)
	if err != nil {
		return -1, err
	}
	for i := 0; i+len(pat) <= len(hay); i++ {
		if slices.Equal(hay[i:i+len(pat)], pat) {
			return i, nil
		}
	}
	return -1, nil
}

// LastIndex returns the relative offset of the last occurrence of needle in s,
// or -1. An empty needle is found at Len.
func LastIndex[T comparable](s, needle Segment[T]) (int, error) {
	hay, pat, err := itemsOf(s, needle)
	if err != nil {
		return -1, err
	}
	for i := len(hay) - len(pat); i >= 0; i-- {
		if slices.Equal(hay[i:i+len(pat)], pat) {
			return i, nil
		}
	}
	return -1, nil
}

// Contains reports whether needle occurs in s.
func Contains[T comparable](s, needle Segment[T]) (bool, error) {
	i, err := Index(s, needle)
	return i >= 0, err
}

// RemoveFirst returns s without the first occurrence of needle. If needle does
// not occur s is returned unchanged.
func RemoveFirst[T comparable](s, needle Segment[T]) (Segment[T], error) {
	i, err := Index(s, needle)
	if err != nil || i < 0 {
		return s, err
	}
	return s.Remove(i, needle.Len())
}

// RemoveLast returns s without the last occurrence of needle. If needle does
// not occur s is returned unchanged.
func RemoveLast[T comparable](s, needle Segment[T]) (Segment[T], error) {
	i, err := LastIndex(s, needle)
	if err != nil || i < 0 {
		return s, err
	}
	return s.Remove(i, needle.Len())
}

// Compare compares a and b lexicographically, returning -1, 0 or +1.
func Compare[T cmp.Ordered](a, b Segment[T]) (int, error) {
	x, y, err := itemsOf(a, b)
	if err != nil {
		return 0, err
	}
	return slices.Compare(x, y), nil
}

// Sort sorts the elements of s in place, writing through to the backing.
func Sort[T cmp.Ordered](s Segment[T]) error {
	return SortFunc(s, cmp.Compare[T])
}

// SortFunc sorts the elements of s in place using compare. The sort is stable.
func SortFunc[T any](s Segment[T], compare func(a, b T) int) error {
	items, err := s.Items()
	if err != nil {
		return err
	}
	slices.SortStableFunc(items, compare)
	off := s.Extent().Offset()
	for i, v := range items {
		s.backing.Put(off+i, v)
	}
	return nil
}

// BinarySearch searches the sorted view s for v. It returns the position where
// v is or would be inserted, and whether it was found.
func BinarySearch[T cmp.Ordered](s Segment[T], v T) (int, bool, error) {
	if err := s.Check(); err != nil {
		return 0, false, err
	}
	r := s.Extent()
	lo, hi := 0, r.Len()
	for lo < hi {
		mid := int(uint(lo+hi) >> 1)
		if cmp.Less(s.backing.Get(r.Offset()+mid), v) {
			lo = mid + 1
		} else {
			hi = mid
		}
	}
	found := lo < r.Len() && cmp.Compare(s.backing.Get(r.Offset()+lo), v) == 0
	return lo, found, nil
}

func itemsOf[T any](a, b Segment[T]) ([]T, []T, error) {
	x, err := a.Items()
	if err != nil {
		return nil, nil, err
	}
	y, err := b.Items()
	if err != nil {
		return nil, nil, err
	}
	return x, y, nil
}

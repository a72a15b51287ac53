// Package segment provides Segment, a copyable, non-owning view of a
// contiguous run of elements in a backing Sequence.
//
// A Segment is (backing, extent). Element reads and writes go straight to the
// backing, so two views over the same backing observe each other's writes.
// Sub-views, clamping splits (CleaveStart, ChopOffEnd, Sever, Bisect) and
// boundary removals never copy; Concatenate, Replace, Insert and interior
// Remove build a new backing through the Sequence's Concat capability.
//
// Backings that can change length implement Versioned. A view records the
// backing's version when it is taken and fails every later access with
// ErrStaleView once the backing has been structurally mutated.
//
// Basic usage:
//
//	s := segment.New(seq.Of(1, 2, 3, 4, 5))
//	mid, _ := s.Range(1, 4)            // 2 3 4
//	head, rest := s.SeverStart(2)       // 1 2 | 3 4 5
//	_ = mid.Set(0, 20)                  // s now reads 1 20 3 4 5
//	joined, _ := segment.Concatenate(rest, head)
//
// Segments are not safe for concurrent mutation of the same backing.
package segment

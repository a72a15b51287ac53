// Package extent provides an immutable half-open interval type and the interval
// algebra built on it.
//
// An Extent is a pair (offset, length) describing positions
// [offset, offset+length). It never references data; validity is always
// checked against a concrete total length supplied by the caller.
//
// Key features:
//   - Overflow-safe arithmetic: Move, ChangeLength and friends fail with
//     ErrArithmeticOverflow instead of wrapping
//   - Open-ended extents (length Open) that resolve against any total length
//   - Intersection, Union, Subtract, SymmetricDifference, Constrain, Validate
//   - A total order (Compare) suitable for sorted containers
//
// Basic usage:
//
//	a, _ := extent.NewRange(2, 32)   // [2:32)
//	b := extent.New(20, 9)           // [20:29)
//	s := extent.Intersection(a, b)   // [20:29)
//	u := extent.Union(a, b)          // [2:32)
//	x, y := extent.Subtract(a, b)    // [2:20), [29:32)
//
// Operations that merely clamp (Truncate, Prefix, Bisect, Validate, Constrain)
// never fail.
package extent

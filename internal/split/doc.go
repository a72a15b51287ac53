// Package split implements the lazy splitting and scanning algorithms over
// segments: CutUp, CutAndSplice, Dice, Split, Where, Interleave and the
// element filters Matching and CountMatching.
//
// Every constructor validates its parameters immediately and returns
// segment.ErrInvalidArgument before any piece is produced. The returned
// cursor then yields sub-views on demand, in ascending offset order, and can
// be rewound with Reset or ranged over with All:
//
//	c, err := split.Dice(seg, 3, 1, false)
//	if err != nil {
//		return err
//	}
//	for piece := range c.All() {
//		fmt.Println(piece)
//	}
//	return c.Err()
//
// Cursors record each source's backing length when created and stop with
// segment.ErrStaleView if it changes.
package split

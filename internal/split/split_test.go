package split

import (
	"errors"
	"testing"
	"testing/quick"
	"unicode"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dshills/segments/internal/builder"
	"github.com/dshills/segments/internal/extent"
	"github.com/dshills/segments/internal/segment"
	"github.com/dshills/segments/internal/seq"
)

func ints(n int) segment.Segment[int] {
	items := make([]int, n)
	for i := range items {
		items[i] = i
	}
	return segment.New[int](seq.Wrap(items))
}

func text(s string) segment.Segment[rune] {
	return segment.New[rune](seq.Runes(s))
}

func extents[T any](t *testing.T, c *Cursor[T]) []extent.Extent {
	t.Helper()
	pieces, err := c.Collect()
	require.NoError(t, err)
	out := make([]extent.Extent, len(pieces))
	for i, p := range pieces {
		out[i] = p.Extent()
	}
	return out
}

func strs(t *testing.T, c *Cursor[rune]) []string {
	t.Helper()
	var out []string
	for p := range c.All() {
		s, err := seq.String(p)
		require.NoError(t, err)
		out = append(out, s)
	}
	require.NoError(t, c.Err())
	return out
}

func TestInvalidArguments(t *testing.T) {
	s := ints(5)
	tests := []struct {
		name string
		err  error
	}{
		{"cut zero", func() error { _, err := CutUp(s, 0); return err }()},
		{"splice zero", func() error { _, err := CutAndSplice(s, 0, 0); return err }()},
		{"splice overlap too big", func() error { _, err := CutAndSplice(s, 3, 3); return err }()},
		{"splice negative overlap", func() error { _, err := CutAndSplice(s, 3, -1); return err }()},
		{"dice zero", func() error { _, err := Dice(s, 0, 1, false); return err }()},
		{"dice negative skip", func() error { _, err := Dice(s, 1, -1, true); return err }()},
		{"split nil", func() error { _, err := Split[int](s, nil); return err }()},
		{"where nil", func() error { _, err := Where[int](s, 0, nil); return err }()},
		{"where bad start", func() error {
			_, err := Where[int](s, 6, segment.MatchFunc[int](func(int) bool { return true }))
			return err
		}()},
		{"interleave zero", func() error { _, err := Interleave(0, s); return err }()},
		{"matching nil", func() error { _, err := Matching[int](s, nil, false); return err }()},
		{"count nil", func() error { _, err := CountMatching[int](s, nil, false); return err }()},
		{"where nil func", func() error { _, err := Where(s, 0, segment.MatchFunc[int](nil)); return err }()},
		{"matching nil func", func() error { _, err := Matching(s, segment.MatchFunc[int](nil), false); return err }()},
		{"count nil func", func() error { _, err := CountMatching(s, segment.MatchFunc[int](nil), true); return err }()},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.ErrorIs(t, tt.err, segment.ErrInvalidArgument)
		})
	}
}

func TestCutUp(t *testing.T) {
	c, err := CutUp(ints(10), 4)
	require.NoError(t, err)
	assert.Equal(t, []extent.Extent{extent.New(0, 4), extent.New(4, 4), extent.New(8, 2)}, extents(t, c))

	c, err = CutUp(ints(0), 4)
	require.NoError(t, err)
	assert.Empty(t, extents(t, c))
}

func TestCutUpProperty(t *testing.T) {
	f := func(l uint8, k uint8) bool {
		n, size := int(l), int(k%16)+1
		s := ints(n)
		c, err := CutUp(s, size)
		if err != nil {
			return false
		}
		pieces, err := c.Collect()
		if err != nil {
			return false
		}
		if len(pieces) != (n+size-1)/size {
			return false
		}
		var joined []int
		for i, p := range pieces {
			if i < len(pieces)-1 && p.Len() != size {
				return false
			}
			items, err := p.Items()
			if err != nil {
				return false
			}
			joined = append(joined, items...)
		}
		want, _ := s.Items()
		return len(joined) == len(want) && (n == 0 || assert.ObjectsAreEqual(want, joined))
	}
	if err := quick.Check(f, nil); err != nil {
		t.Error(err)
	}
}

func TestCutAndSplice(t *testing.T) {
	tests := []struct {
		name          string
		n, size, over int
		want          []extent.Extent
	}{
		{"even", 30, 20, 10, []extent.Extent{extent.New(0, 20), extent.New(10, 20), extent.New(20, 10)}},
		{"ragged", 25, 10, 3, []extent.Extent{extent.New(0, 10), extent.New(7, 10), extent.New(14, 10), extent.New(21, 4)}},
		{"no overlap", 6, 3, 0, []extent.Extent{extent.New(0, 3), extent.New(3, 3)}},
		{"short tails", 10, 4, 2, []extent.Extent{extent.New(0, 4), extent.New(2, 4), extent.New(4, 4), extent.New(6, 4), extent.New(8, 2)}},
		{"short input", 4, 10, 5, []extent.Extent{extent.New(0, 4)}},
		{"empty", 0, 3, 1, []extent.Extent{}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, err := CutAndSplice(ints(tt.n), tt.size, tt.over)
			require.NoError(t, err)
			got := extents(t, c)
			assert.Len(t, got, len(tt.want))
			for i := range tt.want {
				assert.Equal(t, tt.want[i], got[i])
			}
		})
	}
}

func TestDice(t *testing.T) {
	s := ints(10)

	c, err := Dice(s, 3, 2, false)
	require.NoError(t, err)
	assert.Equal(t, []extent.Extent{extent.New(0, 3), extent.New(5, 3)}, extents(t, c))

	c, err = Dice(s, 3, 2, true)
	require.NoError(t, err)
	assert.Equal(t, []extent.Extent{extent.New(3, 2), extent.New(8, 2)}, extents(t, c))

	c, err = Dice(s, 3, 0, true)
	require.NoError(t, err)
	assert.Empty(t, extents(t, c))
}

func TestDiceComplementProperty(t *testing.T) {
	f := func(l, p, k uint8) bool {
		n, piece, skip := int(l), int(p%8)+1, int(k%8)
		s := ints(n)
		kept, err := Dice(s, piece, skip, false)
		if err != nil {
			return false
		}
		skipped, err := Dice(s, piece, skip, true)
		if err != nil {
			return false
		}
		a, err := kept.Collect()
		if err != nil {
			return false
		}
		b, err := skipped.Collect()
		if err != nil {
			return false
		}

		seen := make([]int, n)
		for _, p := range append(a, b...) {
			e := p.Extent()
			for i := e.Offset(); i < e.End(); i++ {
				seen[i]++
			}
		}
		for _, c := range seen {
			if c != 1 {
				return false
			}
		}
		// Kept and skipped pieces alternate in ascending order.
		for i := range b {
			if b[i].Offset() != a[i].End() {
				return false
			}
		}
		return true
	}
	if err := quick.Check(f, nil); err != nil {
		t.Error(err)
	}
}

func TestSplit(t *testing.T) {
	words := func(rest segment.Segment[rune]) (int, error) {
		e, err := rest.ScanUntil(0, segment.MatchFunc[rune](unicode.IsSpace))
		if err != nil {
			return 0, err
		}
		return e.Len() + 1, nil
	}
	c, err := Split(text("ab cde f"), words)
	require.NoError(t, err)
	assert.Equal(t, []string{"ab ", "cde ", "f"}, strs(t, c))

	zero := func(segment.Segment[rune]) (int, error) { return 0, nil }
	c, err = Split(text("abc"), zero)
	require.NoError(t, err)
	assert.False(t, c.Next())
	assert.ErrorIs(t, c.Err(), segment.ErrInvalidArgument)

	boom := errors.New("boom")
	failing := func(segment.Segment[rune]) (int, error) { return 0, boom }
	c, err = Split(text("abc"), failing)
	require.NoError(t, err)
	assert.False(t, c.Next())
	assert.ErrorIs(t, c.Err(), boom)

	c, err = Split(text(""), zero)
	require.NoError(t, err)
	assert.False(t, c.Next())
	assert.NoError(t, c.Err())
}

func TestWhere(t *testing.T) {
	digit := segment.MatchFunc[rune](unicode.IsDigit)

	c, err := Where(text("a12bc345d6"), 0, digit)
	require.NoError(t, err)
	assert.Equal(t, []string{"12", "345", "6"}, strs(t, c))

	c, err = Where(text("a12bc345d6"), 2, digit)
	require.NoError(t, err)
	assert.Equal(t, []string{"2", "345", "6"}, strs(t, c))

	c, err = Where(text("abc"), 0, digit)
	require.NoError(t, err)
	assert.Empty(t, strs(t, c))
}

func TestInterleave(t *testing.T) {
	a := text("aaaaa")
	b := text("bb")
	c := text("cccc")

	cur, err := Interleave(2, a, b, c)
	require.NoError(t, err)
	assert.Equal(t, []string{"aa", "bb", "cc", "aa", "cc", "a"}, strs(t, cur))

	cur, err = Interleave[rune](2)
	require.NoError(t, err)
	assert.False(t, cur.Next())
}

func TestResetRestarts(t *testing.T) {
	c, err := CutUp(ints(5), 2)
	require.NoError(t, err)
	first := extents(t, c)
	second := extents(t, c)
	assert.Equal(t, first, second)

	require.True(t, c.Next())
	require.True(t, c.Next())
	c.Reset()
	require.True(t, c.Next())
	assert.Equal(t, extent.New(0, 2), c.Segment().Extent())
}

func TestStaleBacking(t *testing.T) {
	b := builder.From(1, 2, 3, 4, 5, 6)
	c, err := CutUp(b.View(), 2)
	require.NoError(t, err)

	require.True(t, c.Next())
	b.AppendItem(7)
	assert.False(t, c.Next())
	assert.ErrorIs(t, c.Err(), segment.ErrStaleView)

	// Length changes in a non-versioned backing are caught too.
	grow := &growing{items: []int{1, 2, 3, 4}}
	c, err = CutUp(segment.New[int](grow), 1)
	require.NoError(t, err)
	require.True(t, c.Next())
	grow.items = append(grow.items, 5)
	assert.False(t, c.Next())
	assert.ErrorIs(t, c.Err(), segment.ErrStaleView)
}

// growing is an unversioned backing whose length can change under a view.
type growing struct {
	items []int
}

func (g *growing) Len() int { return len(g.items) }
func (g *growing) Get(i int) int { return g.items[i] }
func (g *growing) Put(i int, v int) { g.items[i] = v }

func (g *growing) Concat(parts ...segment.Segment[int]) (segment.Sequence[int], error) {
	items, err := seq.Collect(parts...)
	return seq.Wrap(items), err
}

func (g *growing) Slice(offset, length int) segment.Sequence[int] {
	return seq.Of(g.items[offset : offset+length]...)
}

func TestMatching(t *testing.T) {
	even := segment.MatchFunc[int](func(v int) bool { return v%2 == 0 })
	s := ints(7)

	m, err := Matching(s, even, false)
	require.NoError(t, err)
	var got []int
	for v := range m.All() {
		got = append(got, v)
	}
	require.NoError(t, m.Err())
	assert.Equal(t, []int{0, 2, 4, 6}, got)

	m, err = Matching(s, even, true)
	require.NoError(t, err)
	got = got[:0]
	for m.Next() {
		got = append(got, m.Value())
	}
	assert.Equal(t, []int{1, 3, 5}, got)

	n, err := CountMatching(s, even, false)
	require.NoError(t, err)
	assert.Equal(t, 4, n)
	n, err = CountMatching(s, even, true)
	require.NoError(t, err)
	assert.Equal(t, 3, n)
}

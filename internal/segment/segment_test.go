package segment_test

import (
	"testing"
	"testing/quick"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dshills/segments/internal/extent"
	"github.com/dshills/segments/internal/segment"
	"github.com/dshills/segments/internal/seq"
)

func ints(n int) *seq.Slice[int] {
	items := make([]int, n)
	for i := range items {
		items[i] = i
	}
	return seq.Wrap(items)
}

func items[T any](t *testing.T, s segment.Segment[T]) []T {
	t.Helper()
	out, err := s.Items()
	require.NoError(t, err)
	return out
}

func TestConstructors(t *testing.T) {
	b := ints(10)

	tests := []struct {
		name    string
		build   func() (segment.Segment[int], error)
		want    extent.Extent
		wantErr error
	}{
		{"at", func() (segment.Segment[int], error) { return segment.NewAt[int](b, 4) }, extent.New(4, 6), nil},
		{"at end", func() (segment.Segment[int], error) { return segment.NewAt[int](b, 10) }, extent.New(10, 0), nil},
		{"at past end", func() (segment.Segment[int], error) { return segment.NewAt[int](b, 11) }, extent.Empty, segment.ErrOutOfRange},
		{"extent", func() (segment.Segment[int], error) { return segment.NewExtent[int](b, 2, 5) }, extent.New(2, 5), nil},
		{"extent too long", func() (segment.Segment[int], error) { return segment.NewExtent[int](b, 8, 5) }, extent.Empty, segment.ErrOutOfRange},
		{"from extent", func() (segment.Segment[int], error) { return segment.FromExtent[int](b, extent.NewToEnd(7)) }, extent.New(7, 3), nil},
		{"prefix", func() (segment.Segment[int], error) { return segment.NewPrefix[int](b, 3) }, extent.New(0, 3), nil},
		{"prefix too long", func() (segment.Segment[int], error) { return segment.NewPrefix[int](b, 11) }, extent.Empty, segment.ErrOutOfRange},
		{"suffix", func() (segment.Segment[int], error) { return segment.NewSuffix[int](b, 3) }, extent.New(7, 3), nil},
		{"suffix negative", func() (segment.Segment[int], error) { return segment.NewSuffix[int](b, -1) }, extent.Empty, segment.ErrOutOfRange},
		{"range", func() (segment.Segment[int], error) { return segment.NewRange[int](b, 3, 6) }, extent.New(3, 3), nil},
		{"range reversed", func() (segment.Segment[int], error) { return segment.NewRange[int](b, 6, 3) }, extent.Empty, segment.ErrOutOfRange},
		{"range inclusive", func() (segment.Segment[int], error) { return segment.NewRangeInclusive[int](b, 3, 6) }, extent.New(3, 4), nil},
		{"range inclusive past end", func() (segment.Segment[int], error) { return segment.NewRangeInclusive[int](b, 3, 10) }, extent.Empty, segment.ErrOutOfRange},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, err := tt.build()
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, s.Extent())
			assert.NoError(t, s.Check())
		})
	}
}

func TestLazyConstructor(t *testing.T) {
	b := ints(3)
	s := segment.Of[int](b, extent.New(2, 5))
	assert.Equal(t, 5, s.Len())

	_, err := s.At(0)
	assert.ErrorIs(t, err, segment.ErrOutOfRange)
	assert.ErrorIs(t, s.Check(), segment.ErrOutOfRange)
}

func TestEntireTracksBacking(t *testing.T) {
	s := segment.New[int](ints(4))
	assert.Equal(t, extent.New(0, 4), s.Extent())
	assert.Equal(t, 4, s.Len())
	assert.Equal(t, []int{0, 1, 2, 3}, items(t, s))

	var zero segment.Segment[int]
	assert.True(t, zero.IsEmpty())
	assert.NoError(t, zero.Check())
	assert.Empty(t, items(t, zero))
}

func TestIndexing(t *testing.T) {
	s, err := segment.NewExtent[int](ints(10), 3, 4) // 3 4 5 6
	require.NoError(t, err)

	v, err := s.At(0)
	require.NoError(t, err)
	assert.Equal(t, 3, v)

	_, err = s.At(4)
	assert.ErrorIs(t, err, segment.ErrOutOfRange)
	_, err = s.At(-1)
	assert.ErrorIs(t, err, segment.ErrOutOfRange)

	v, err = s.AtReverse(0)
	require.NoError(t, err)
	assert.Equal(t, 6, v)

	v, err = s.AtFromEnd(1)
	require.NoError(t, err)
	assert.Equal(t, 6, v)
	v, err = s.AtFromEnd(4)
	require.NoError(t, err)
	assert.Equal(t, 3, v)
	_, err = s.AtFromEnd(0)
	assert.ErrorIs(t, err, segment.ErrOutOfRange)
	_, err = s.AtFromEnd(5)
	assert.ErrorIs(t, err, segment.ErrOutOfRange)

	assert.Equal(t, -1, s.AtOr(9, -1))

	first, ok := s.First()
	assert.True(t, ok)
	assert.Equal(t, 3, first)
	last, ok := s.Last()
	assert.True(t, ok)
	assert.Equal(t, 6, last)

	var zero segment.Segment[int]
	_, ok = zero.First()
	assert.False(t, ok)
}

func TestWriteThroughAliasing(t *testing.T) {
	b := ints(10)
	a, err := segment.NewRange[int](b, 2, 8)
	require.NoError(t, err)
	c, err := segment.NewRange[int](b, 5, 10)
	require.NoError(t, err)

	require.NoError(t, a.Set(4, 600)) // absolute index 6
	v, err := c.At(1)
	require.NoError(t, err)
	assert.Equal(t, 600, v)

	require.NoError(t, c.SetReverse(0, 900)) // absolute index 9
	assert.Equal(t, 900, b.Get(9))

	require.NoError(t, c.SetFromEnd(5, 500)) // absolute index 5
	v, err = a.At(3)
	require.NoError(t, err)
	assert.Equal(t, 500, v)
}

func TestInReverse(t *testing.T) {
	s, err := segment.NewRange[int](ints(6), 1, 5) // 1 2 3 4
	require.NoError(t, err)
	r := s.InReverse()

	assert.Equal(t, 4, r.Len())
	got, err := r.Items()
	require.NoError(t, err)
	assert.Equal(t, []int{4, 3, 2, 1}, got)

	require.NoError(t, r.Set(0, 40))
	assert.Equal(t, []int{1, 2, 3, 40}, items(t, s))
	assert.Equal(t, s, r.Segment())
}

func TestSubViewsAreRelative(t *testing.T) {
	s, err := segment.NewRange[int](ints(20), 5, 15)
	require.NoError(t, err)

	sub, err := s.SubExtent(2, 3)
	require.NoError(t, err)
	assert.Equal(t, extent.New(7, 3), sub.Extent())

	tests := []struct {
		name    string
		get     func() (segment.Segment[int], error)
		want    []int
		wantErr bool
	}{
		{"from", func() (segment.Segment[int], error) { return s.From(7) }, []int{12, 13, 14}, false},
		{"from end", func() (segment.Segment[int], error) { return s.From(10) }, []int{}, false},
		{"from past end", func() (segment.Segment[int], error) { return s.From(11) }, nil, true},
		{"to", func() (segment.Segment[int], error) { return s.To(2) }, []int{5, 6}, false},
		{"prefix", func() (segment.Segment[int], error) { return s.Prefix(3) }, []int{5, 6, 7}, false},
		{"suffix", func() (segment.Segment[int], error) { return s.Suffix(2) }, []int{13, 14}, false},
		{"suffix too long", func() (segment.Segment[int], error) { return s.Suffix(11) }, nil, true},
		{"range", func() (segment.Segment[int], error) { return s.Range(1, 3) }, []int{6, 7}, false},
		{"range past end", func() (segment.Segment[int], error) { return s.Range(8, 11) }, nil, true},
		{"range inclusive", func() (segment.Segment[int], error) { return s.RangeInclusive(1, 3) }, []int{6, 7, 8}, false},
		{"sub open", func() (segment.Segment[int], error) { return s.Sub(extent.NewToEnd(8)) }, []int{13, 14}, false},
		{"sub negative", func() (segment.Segment[int], error) { return s.Sub(extent.New(-1, 2)) }, nil, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := tt.get()
			if tt.wantErr {
				assert.ErrorIs(t, err, segment.ErrOutOfRange)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, items(t, got))
		})
	}

	e, err := s.FromEnd(1)
	require.NoError(t, err)
	assert.Equal(t, extent.New(9, 1), e)
	_, err = s.FromEnd(11)
	assert.ErrorIs(t, err, segment.ErrOutOfRange)
}

func TestCleaveAndChop(t *testing.T) {
	s := segment.New[int](ints(10))

	head := s.CleaveStart(3)
	rest := s.ChopOffStart(3)
	assert.Equal(t, extent.New(0, 3), head.Extent())
	assert.Equal(t, extent.New(3, 7), rest.Extent())

	assert.Equal(t, []int{7, 8, 9}, items(t, s.CleaveEnd(3)))
	assert.Equal(t, []int{0, 1, 2, 3, 4, 5, 6}, items(t, s.ChopOffEnd(3)))

	// Clamped, never failing.
	assert.Equal(t, 10, s.CleaveStart(50).Len())
	assert.Equal(t, 0, s.CleaveStart(-5).Len())
	assert.Equal(t, 0, s.ChopOffStart(50).Len())
	assert.Equal(t, 10, s.CleaveEnd(50).Len())
	assert.Equal(t, 0, s.ChopOffEnd(50).Len())
	assert.Equal(t, 4, s.Truncate(4).Len())
	assert.Equal(t, 0, s.Truncate(-4).Len())

	start, remainder := s.SeverStart(4)
	assert.Equal(t, []int{0, 1, 2, 3}, items(t, start))
	assert.Equal(t, []int{4, 5, 6, 7, 8, 9}, items(t, remainder))

	end, remainder := s.SeverEnd(4)
	assert.Equal(t, []int{6, 7, 8, 9}, items(t, end))
	assert.Equal(t, []int{0, 1, 2, 3, 4, 5}, items(t, remainder))

	before, middle, after := s.Sever(extent.New(2, 3))
	assert.Equal(t, []int{0, 1}, items(t, before))
	assert.Equal(t, []int{2, 3, 4}, items(t, middle))
	assert.Equal(t, []int{5, 6, 7, 8, 9}, items(t, after))

	before, middle, after = s.Sever(extent.New(8, 30))
	assert.Equal(t, 8, before.Len())
	assert.Equal(t, []int{8, 9}, items(t, middle))
	assert.Equal(t, 0, after.Len())
}

func TestBisectProperty(t *testing.T) {
	s, err := segment.NewRange[int](ints(64), 7, 40)
	require.NoError(t, err)

	f := func(k int16) bool {
		a, b := s.Bisect(int(k))
		return a.Len()+b.Len() == s.Len() &&
			a.Offset() == s.Offset() &&
			a.End() == b.Offset() &&
			b.End() == s.End()
	}
	if err := quick.Check(f, nil); err != nil {
		t.Error(err)
	}
}

func TestChangeLength(t *testing.T) {
	s, err := segment.NewExtent[int](ints(10), 2, 3)
	require.NoError(t, err)

	grown, err := s.ChangeLength(4)
	require.NoError(t, err)
	assert.Equal(t, extent.New(2, 7), grown.Extent())

	_, err = s.ChangeLength(6)
	assert.ErrorIs(t, err, segment.ErrOutOfRange)
	_, err = s.ChangeLength(-4)
	assert.ErrorIs(t, err, segment.ErrArithmeticOverflow)
}

func TestEqual(t *testing.T) {
	b := ints(5)
	other := ints(5)

	a1, _ := segment.NewRange[int](b, 1, 3)
	a2, _ := segment.NewRange[int](b, 1, 3)
	a3, _ := segment.NewRange[int](b, 1, 4)
	o1, _ := segment.NewRange[int](other, 1, 3)

	assert.True(t, a1.Equal(a2))
	assert.False(t, a1.Equal(a3))
	assert.False(t, a1.Equal(o1), "value-equal but distinct backings")

	whole, _ := segment.NewExtent[int](b, 0, 5)
	assert.True(t, segment.New[int](b).Equal(whole))

	assert.Equal(t, a1.Hash(), a2.Hash())
	assert.Equal(t, whole.Hash(), segment.New[int](b).Hash())
	assert.NotEqual(t, a1.Hash(), o1.Hash())
}

func TestString(t *testing.T) {
	s, err := segment.NewExtent[int](ints(10), 2, 3)
	require.NoError(t, err)
	assert.Equal(t, "segment[2:5)", s.String())
}

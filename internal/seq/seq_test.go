package seq

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dshills/segments/internal/segment"
)

func TestOfCopiesWrapShares(t *testing.T) {
	src := []int{1, 2, 3}

	copied := Of(src...)
	copied.Put(0, 10)
	assert.Equal(t, 1, src[0])

	shared := Wrap(src)
	shared.Put(0, 10)
	assert.Equal(t, 10, src[0])
	assert.Equal(t, 3, shared.Len())
}

func TestSliceAndConcat(t *testing.T) {
	s := Of(1, 2, 3, 4, 5)

	part := s.Slice(1, 3)
	assert.Equal(t, []int{2, 3, 4}, part.(*Slice[int]).Items())

	a, err := segment.NewRange[int](s, 0, 2)
	require.NoError(t, err)
	b, err := segment.NewRange[int](s, 3, 5)
	require.NoError(t, err)

	joined, err := s.Concat(a, b)
	require.NoError(t, err)
	assert.Equal(t, []int{1, 2, 4, 5}, joined.(*Slice[int]).Items())
}

func TestRunes(t *testing.T) {
	s := segment.New[rune](Runes("héllo"))
	assert.Equal(t, 5, s.Len())

	sub, err := s.Range(1, 3)
	require.NoError(t, err)
	text, err := String(sub)
	require.NoError(t, err)
	assert.Equal(t, "él", text)
}

func TestBytes(t *testing.T) {
	b := []byte("abc")
	s := segment.New[byte](Bytes(b))
	require.NoError(t, s.Set(0, 'x'))
	assert.Equal(t, "xbc", string(b))

	text, err := BytesString(s)
	require.NoError(t, err)
	assert.Equal(t, "xbc", text)
}

func TestGraphemes(t *testing.T) {
	tests := []struct {
		name  string
		in    string
		count int
		width int
	}{
		{"ascii", "abc", 3, 3},
		{"combining", "e\u0301x", 2, 2},
		{"flag", "🇩🇪!", 2, 3},
		{"empty", "", 0, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := segment.New[string](Graphemes(tt.in))
			assert.Equal(t, tt.count, s.Len())

			text, err := GraphemeString(s)
			require.NoError(t, err)
			assert.Equal(t, tt.in, text)

			w, err := Width(s)
			require.NoError(t, err)
			assert.Equal(t, tt.width, w)
		})
	}
}

func TestCollect(t *testing.T) {
	s := Of('a', 'b', 'c')
	got, err := Collect(segment.New[rune](s), segment.Segment[rune]{}, segment.New[rune](s))
	require.NoError(t, err)
	assert.Equal(t, []rune("abcabc"), got)
}

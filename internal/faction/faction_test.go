package faction

import (
	"errors"
	"testing"
	"unicode"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dshills/segments/internal/builder"
	"github.com/dshills/segments/internal/segment"
	"github.com/dshills/segments/internal/seq"
)

type kind int

const (
	letter kind = iota
	digit
	other
)

func (k kind) String() string {
	return [...]string{"letter", "digit", "other"}[k]
}

func classify(rest segment.Segment[rune]) (kind, Consumption, error) {
	r, err := rest.At(0)
	if err != nil {
		return other, Consumption{}, err
	}
	switch {
	case unicode.IsLetter(r):
		return letter, Merge(), nil
	case unicode.IsDigit(r):
		return digit, Merge(), nil
	}
	return other, Take(1), nil
}

type span struct {
	kind kind
	text string
}

func spans(t *testing.T, c *Cursor[rune, kind]) []span {
	t.Helper()
	var out []span
	for s := range c.All() {
		text, err := seq.String(s.Segment)
		require.NoError(t, err)
		out = append(out, span{s.Faction, text})
	}
	require.NoError(t, c.Err())
	return out
}

func runes(s string) segment.Segment[rune] {
	return segment.New[rune](seq.Runes(s))
}

func TestFactionalizeMergesRuns(t *testing.T) {
	c, err := Factionalize(runes("aa11bb"), classify)
	require.NoError(t, err)

	pieces, err := c.Collect()
	require.NoError(t, err)
	require.Len(t, pieces, 3)

	wantKinds := []kind{letter, digit, letter}
	for i, p := range pieces {
		assert.Equal(t, wantKinds[i], p.Faction)
		assert.Equal(t, 2, p.Len())
		assert.Equal(t, 2*i, p.Offset())
	}
}

func TestFactionalize(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want []span
	}{
		{"empty", "", nil},
		{"single", "x", []span{{letter, "x"}}},
		{"taken spans never merge", "a..b", []span{{letter, "a"}, {other, "."}, {other, "."}, {letter, "b"}}},
		{"mixed", "ab12 c", []span{{letter, "ab"}, {digit, "12"}, {other, " "}, {letter, "c"}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, err := Factionalize(runes(tt.in), classify)
			require.NoError(t, err)
			assert.Equal(t, tt.want, spans(t, c))
		})
	}
}

func TestExplicitLengths(t *testing.T) {
	// Quoted strings are taken whole; everything else merges.
	quoted := func(rest segment.Segment[rune]) (string, Consumption, error) {
		r, _ := rest.At(0)
		if r != '"' {
			return "word", Merge(), nil
		}
		quote, err := rest.ScanUntil(1, segment.MatchFunc[rune](func(r rune) bool { return r == '"' }))
		if err != nil {
			return "", Consumption{}, err
		}
		return "string", Take(quote.End() + 1), nil
	}

	c, err := Factionalize(runes(`ab"c d"ef"gh`), quoted)
	require.NoError(t, err)

	var got []string
	for s := range c.All() {
		text, err := seq.String(s.Segment)
		require.NoError(t, err)
		got = append(got, s.Faction+":"+text)
	}
	require.NoError(t, c.Err())
	assert.Equal(t, []string{`word:ab`, `string:"c d"`, `word:ef`, `string:"gh`}, got)
}

func TestFactionalizerErrors(t *testing.T) {
	_, err := Factionalize[rune, kind](runes("a"), nil)
	assert.ErrorIs(t, err, segment.ErrInvalidArgument)

	zero := func(segment.Segment[rune]) (kind, Consumption, error) { return other, Take(0), nil }
	c, err := Factionalize(runes("abc"), zero)
	require.NoError(t, err)
	assert.False(t, c.Next())
	assert.ErrorIs(t, c.Err(), segment.ErrInvalidArgument)

	// A failure during merge lookahead is reported after the run it ended.
	boom := errors.New("boom")
	calls := 0
	flaky := func(segment.Segment[rune]) (kind, Consumption, error) {
		calls++
		if calls == 3 {
			return other, Consumption{}, boom
		}
		return letter, Merge(), nil
	}
	c, err = Factionalize(runes("abcd"), flaky)
	require.NoError(t, err)
	require.True(t, c.Next())
	assert.Equal(t, 2, c.Segment().Len())
	assert.False(t, c.Next())
	assert.ErrorIs(t, c.Err(), boom)
}

func TestFactionalizerCalledOncePerPosition(t *testing.T) {
	var seen []int
	track := func(rest segment.Segment[rune]) (kind, Consumption, error) {
		seen = append(seen, rest.Offset())
		return classify(rest)
	}
	c, err := Factionalize(runes("ab1"), track)
	require.NoError(t, err)
	_, err = c.Collect()
	require.NoError(t, err)
	assert.Equal(t, []int{0, 1, 2}, seen)
}

func TestStaleSource(t *testing.T) {
	b := builder.From([]rune("aa11")...)
	c, err := Factionalize(b.View(), classify)
	require.NoError(t, err)

	require.True(t, c.Next())
	b.AppendItem('x')
	assert.False(t, c.Next())
	assert.ErrorIs(t, c.Err(), segment.ErrStaleView)
}

func TestTaggedSegmentEqual(t *testing.T) {
	s := runes("abc")
	a := Segment[rune, kind]{Segment: s, Faction: letter}
	b := Segment[rune, kind]{Segment: s, Faction: letter}
	c := Segment[rune, kind]{Segment: s, Faction: digit}
	assert.True(t, a.Equal(b))
	assert.False(t, a.Equal(c))
}

package seq

import (
	"strings"

	"github.com/rivo/uniseg"

	"github.com/dshills/segments/internal/segment"
)

// Runes returns a Slice of the runes of s.
func Runes(s string) *Slice[rune] {
	return Wrap([]rune(s))
}

// Bytes returns a Slice sharing b.
func Bytes(b []byte) *Slice[byte] {
	return Wrap(b)
}

// Graphemes returns a Slice of the extended grapheme clusters of s, so that a
// user-perceived character such as "é" or a flag emoji is one element.
func Graphemes(s string) *Slice[string] {
	items := make([]string, 0, uniseg.GraphemeClusterCount(s))
	g := uniseg.NewGraphemes(s)
	for g.Next() {
		items = append(items, g.Str())
	}
	return Wrap(items)
}

// String returns the text of a rune view.
func String(seg segment.Segment[rune]) (string, error) {
	runes, err := seg.Items()
	if err != nil {
		return "", err
	}
	return string(runes), nil
}

// BytesString returns the text of a byte view.
func BytesString(seg segment.Segment[byte]) (string, error) {
	b, err := seg.Items()
	if err != nil {
		return "", err
	}
	return string(b), nil
}

// GraphemeString returns the text of a grapheme view.
func GraphemeString(seg segment.Segment[string]) (string, error) {
	clusters, err := seg.Items()
	if err != nil {
		return "", err
	}
	return strings.Join(clusters, ""), nil
}

// Width returns the monospace display width of a grapheme view.
func Width(seg segment.Segment[string]) (int, error) {
	s, err := GraphemeString(seg)
	if err != nil {
		return 0, err
	}
	return uniseg.StringWidth(s), nil
}

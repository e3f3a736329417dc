package grapheme

import "github.com/mattn/go-runewidth"

// supplementaryWideStart marks where the supplementary planes switch to an
// unconditional two-column policy. Everything from the Enclosed Alphanumeric
// Supplement upward (regional indicators, emoji, symbols) renders wide in
// practice regardless of what the legacy width tables say.
const supplementaryWideStart = 0x1F100

var (
	narrowWidth = &runewidth.Condition{EastAsianWidth: false}
	eastAsian   = &runewidth.Condition{EastAsianWidth: true}
)

// IsEmojiOrWideSymbol reports whether r always occupies two columns,
// independent of the East Asian ambiguous policy. The grid writer and the
// classifier both call this, so a cell written wide is always read wide.
func IsEmojiOrWideSymbol(r rune) bool {
	if r >= supplementaryWideStart {
		return true
	}
	return inRanges(r, emojiPresentation)
}

// RuneWidth returns the display width of r in columns (0, 1 or 2).
// ambiguousWide selects the East Asian ambiguous policy: when true,
// ambiguous-width characters (box drawing, some Greek and Cyrillic) count
// as two columns.
func RuneWidth(r rune, ambiguousWide bool) int {
	if r == 0 {
		return 0
	}
	if IsEmojiOrWideSymbol(r) {
		return 2
	}
	cond := narrowWidth
	if ambiguousWide {
		cond = eastAsian
	}
	return cond.RuneWidth(r)
}

// StringWidth returns the total display width of s, segmented by grapheme
// cluster so that joined sequences (ZWJ emoji, flags, modifiers) count once.
func StringWidth(s string, ambiguousWide bool) int {
	total := 0
	for _, c := range Segment(s, ambiguousWide) {
		total += c.Width
	}
	return total
}

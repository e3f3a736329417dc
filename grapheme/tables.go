// Copyright © 2026 Texelgrid contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: grapheme/tables.go
// Summary: Sorted rune range tables shared by the classifier and width logic.

package grapheme

// runeRange is an inclusive range of code points.
type runeRange struct {
	lo, hi rune
}

// inRanges reports whether r falls inside a sorted, non-overlapping table.
// Binary search keeps lookups cheap even on the hot write path.
func inRanges(r rune, table []runeRange) bool {
	lo, hi := 0, len(table)-1
	for lo <= hi {
		mid := (lo + hi) / 2
		switch {
		case r < table[mid].lo:
			hi = mid - 1
		case r > table[mid].hi:
			lo = mid + 1
		default:
			return true
		}
	}
	return false
}

// emojiPresentation lists BMP code points that terminals render with emoji
// presentation (two columns) even without a variation selector. This is the
// single source of truth: the grid writer lays continuation cells down for
// exactly the same set the classifier reports as wide.
//
// Derived from the Emoji_Presentation=Yes property, BMP portion only; the
// supplementary planes are handled wholesale in IsEmojiOrWideSymbol.
var emojiPresentation = []runeRange{
	{0x231A, 0x231B}, // watch, hourglass
	{0x25FD, 0x25FE}, // small squares
	{0x2614, 0x2615}, // umbrella, hot beverage
	{0x2648, 0x2653}, // zodiac
	{0x267F, 0x267F}, // wheelchair
	{0x2693, 0x2693}, // anchor
	{0x26A1, 0x26A1},
	{0x26AA, 0x26AB},
	{0x26BD, 0x26BE},
	{0x26C4, 0x26C5},
	{0x26CE, 0x26CE},
	{0x26D4, 0x26D4},
	{0x26EA, 0x26EA},
	{0x26F2, 0x26F3},
	{0x26F5, 0x26F5},
	{0x26FA, 0x26FA},
	{0x26FD, 0x26FD},
	{0x2705, 0x2705},
	{0x270A, 0x270B},
	{0x2728, 0x2728},
	{0x274C, 0x274C},
	{0x274E, 0x274E},
	{0x2753, 0x2755},
	{0x2757, 0x2757},
	{0x2795, 0x2797},
	{0x27B0, 0x27B0},
	{0x27BF, 0x27BF},
	{0x2B1B, 0x2B1C},
	{0x2B50, 0x2B50},
	{0x2B55, 0x2B55},
}

// mathAlphanumeric covers the Mathematical Alphanumeric Symbols block
// (styled letters and digits such as 𝐀, 𝕊, 𝟟). Narrow, but classified so
// word selection treats them as letters rather than punctuation.
var mathAlphanumeric = []runeRange{
	{0x1D400, 0x1D7FF},
}

// technicalSymbols covers the media-control portion of Miscellaneous
// Technical (⏩ through ⏿). Width follows the East Asian policy; the class
// tag lets callers keep them out of emoji-only handling.
var technicalSymbols = []runeRange{
	{0x23E9, 0x23FF},
}

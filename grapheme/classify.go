// Copyright © 2026 Texelgrid contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: grapheme/classify.go
// Summary: Per-cell character classification for grid rows.

// Package grapheme answers the two questions a cell grid keeps asking about
// text: how many columns does this character take, and where does the
// grapheme cluster around this cell begin and end. It wraps go-runewidth for
// the base width tables and uniseg for cluster segmentation, layering the
// terminal-specific rules (emoji presentation, variation selectors, flag
// pairs, skin tones) on top.
package grapheme

import "unicode/utf16"

// Class tags characters that need special handling downstream. Word
// selection treats math alphanumerics as letters; renderers may restrict
// font fallback by class.
type Class int

const (
	ClassNone      Class = iota
	ClassMathAlnum       // Mathematical Alphanumeric Symbols (𝐀..𝟿)
	ClassTechnical       // media controls in Miscellaneous Technical (⏩..⏿)
	ClassEmoji           // emoji-presentation symbols
)

func (c Class) String() string {
	switch c {
	case ClassMathAlnum:
		return "math-alnum"
	case ClassTechnical:
		return "technical"
	case ClassEmoji:
		return "emoji"
	default:
		return "none"
	}
}

const (
	vs15 = 0xFE0E // text presentation selector
	vs16 = 0xFE0F // emoji presentation selector
)

// Analysis describes the character occupying a given cell: its decoded code
// point, the cell span it covers and the columns it renders to.
type Analysis struct {
	Rune      rune  // decoded code point (surrogate halves joined)
	Start     int   // column of the lead cell
	Cells     int   // cells occupied, continuation and selector cells included
	Width     int   // rendered columns
	Class     Class
	Variation rune  // 0xFE0F, 0xFE0E, or 0
}

// Wide reports whether the character renders across two columns.
func (a Analysis) Wide() bool { return a.Width == 2 }

// End returns the column one past the character's last cell.
func (a Analysis) End() int { return a.Start + a.Cells }

// Classify inspects the character at col in a row of cell runes. Rune 0
// marks a continuation cell; Classify steps back to the lead cell, joins
// surrogate halves that a foreign writer may have split across cells, and
// applies any trailing variation selector. Out-of-range columns clamp, and a
// lone surrogate half degrades to a single narrow cell rather than failing.
func Classify(cells []rune, col int, ambiguousWide bool) Analysis {
	if len(cells) == 0 {
		return Analysis{Width: 1, Cells: 1}
	}
	if col < 0 {
		col = 0
	}
	if col >= len(cells) {
		col = len(cells) - 1
	}
	for col > 0 && (cells[col] == 0 || isVariationSelector(cells[col]) || isLowSurrogate(cells[col])) {
		col--
	}

	r := cells[col]
	a := Analysis{Rune: r, Start: col, Cells: 1}
	if r == 0 {
		a.Width = 1
		return a
	}

	next := col + 1
	if utf16.IsSurrogate(r) {
		if isHighSurrogate(r) && next < len(cells) && isLowSurrogate(cells[next]) {
			a.Rune = utf16.DecodeRune(r, cells[next])
			a.Cells = 2
			next++
		} else {
			a.Width = 1
			return a
		}
	}

	for next < len(cells) && cells[next] == 0 {
		a.Cells++
		next++
	}
	if next < len(cells) && isVariationSelector(cells[next]) {
		a.Variation = cells[next]
		a.Cells++
	}

	a.Class = classOf(a.Rune)
	a.Width = RuneWidth(a.Rune, ambiguousWide)
	switch a.Variation {
	case vs16:
		a.Width = 2
	case vs15:
		a.Width = 1
	}
	if a.Width < 1 {
		a.Width = 1
	}
	return a
}

func classOf(r rune) Class {
	switch {
	case inRanges(r, mathAlphanumeric):
		return ClassMathAlnum
	case inRanges(r, technicalSymbols):
		return ClassTechnical
	case inRanges(r, emojiPresentation), r >= 0x1F000 && r <= 0x1FAFF:
		return ClassEmoji
	}
	return ClassNone
}

func isVariationSelector(r rune) bool { return r == vs15 || r == vs16 }
func isHighSurrogate(r rune) bool     { return r >= 0xD800 && r <= 0xDBFF }
func isLowSurrogate(r rune) bool      { return r >= 0xDC00 && r <= 0xDFFF }

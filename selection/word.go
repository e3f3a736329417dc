// Copyright © 2026 Texelgrid contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: selection/word.go
// Summary: Double-click word selection.

package selection

import (
	"strings"

	"github.com/framegrace/texelgrid/grapheme"
)

// isWordRune reports whether r belongs to a word under the configured
// separator set. Styled math letters and other exotic symbols count as word
// characters unless explicitly listed as separators.
func (e *Engine) isWordRune(r rune) bool {
	if r == 0 || r == ' ' || r == '\t' {
		return false
	}
	return !strings.ContainsRune(e.cfg.WordSeparators, r)
}

// WordAt returns the bounds of the word under p on its physical row. A
// click on a separator selects just that character's cells. Bounds land on
// grapheme cluster edges, so a word ending in a flag or emoji includes both
// of its cells.
func (e *Engine) WordAt(p Point) (start, end Point, ok bool) {
	runes, ok := e.buf.RunesAt(p.Line)
	if !ok || len(runes) == 0 {
		return Point{}, Point{}, false
	}
	amb := e.buf.AmbiguousWide()
	here := grapheme.Classify(runes, p.Col, amb)
	start = Point{Line: p.Line, Col: here.Start}
	end = Point{Line: p.Line, Col: here.End() - 1}
	if !e.isWordRune(here.Rune) {
		return start, end, true
	}
	for start.Col > 0 {
		prev := grapheme.Classify(runes, start.Col-1, amb)
		if !e.isWordRune(prev.Rune) {
			break
		}
		start.Col = prev.Start
	}
	for end.Col+1 < len(runes) {
		next := grapheme.Classify(runes, end.Col+1, amb)
		if !e.isWordRune(next.Rune) {
			break
		}
		end.Col = next.End() - 1
	}
	return start, end, true
}

// Word returns the text of the word under p.
func (e *Engine) Word(p Point) (string, bool) {
	start, end, ok := e.WordAt(p)
	if !ok {
		return "", false
	}
	return e.ExtractText(start, end, ModeNormal), true
}

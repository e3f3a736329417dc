// Copyright © 2026 Texelgrid contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: grid/line.go
// Summary: Line is one physical row of cells with a content version.

package grid

import "strings"

// Line is an ordered row of exactly width cells. Wrapped marks the row as
// the continuation of the previous row's logical line, which lets selection
// reassemble logical lines without re-wrapping anything.
//
// The version counter bumps on every content change and never on movement
// between the live region and scrollback, so a selection anchor can tell
// "this line was edited" apart from "this line scrolled".
type Line struct {
	cells   []Cell
	wrapped bool
	version uint64
}

func newLine(width int) *Line {
	l := &Line{cells: make([]Cell, width)}
	for i := range l.cells {
		l.cells[i] = EmptyCell()
	}
	return l
}

// Version returns the line's content version.
func (l *Line) Version() uint64 { return l.version }

// Wrapped reports whether the line continues the previous row.
func (l *Line) Wrapped() bool { return l.wrapped }

func (l *Line) setWrapped(w bool) {
	if l.wrapped != w {
		l.wrapped = w
		l.version++
	}
}

func (l *Line) width() int { return len(l.cells) }

// cellCopy returns a copy of the row's cells.
func (l *Line) cellCopy() []Cell {
	out := make([]Cell, len(l.cells))
	copy(out, l.cells)
	return out
}

// runes returns one rune per cell: the lead rune of each character, 0 for
// continuation cells. This is the view the classifier works on.
func (l *Line) runes() []rune {
	out := make([]rune, len(l.cells))
	for i, c := range l.cells {
		out[i] = c.Rune
	}
	return out
}

// text extracts the row's visible content, continuation cells skipped and
// combining runes included. Control characters that leaked into cells are
// dropped rather than copied out.
func (l *Line) text() string {
	buf := make([]rune, 0, len(l.cells))
	for _, c := range l.cells {
		if c.Rune != 0 && c.Rune < ' ' {
			continue
		}
		buf = c.AppendRunes(buf)
	}
	return strings.TrimRight(string(buf), " ")
}

// clearSpan blanks [from, to) without touching styles outside the span.
func (l *Line) clearSpan(from, to int) {
	for i := from; i < to && i < len(l.cells); i++ {
		if i >= 0 {
			l.cells[i] = EmptyCell()
		}
	}
}

// healAt repairs the cell pair around col before an overwrite: writing over
// half of a wide character blanks the orphaned other half.
func (l *Line) healAt(col int) {
	if col < 0 || col >= len(l.cells) {
		return
	}
	if l.cells[col].Continuation() && col > 0 && l.cells[col-1].Wide {
		l.cells[col-1] = EmptyCell()
	}
	if l.cells[col].Wide && col+1 < len(l.cells) {
		l.cells[col+1] = EmptyCell()
	}
}

// resizeTo pads or truncates the row to width cells. A wide character cut
// at the new boundary is blanked instead of leaving a dangling lead.
func (l *Line) resizeTo(width int) {
	if width == len(l.cells) {
		return
	}
	if width < len(l.cells) {
		if width > 0 && l.cells[width-1].Wide {
			l.cells[width-1] = EmptyCell()
		}
		l.cells = l.cells[:width]
	} else {
		for len(l.cells) < width {
			l.cells = append(l.cells, EmptyCell())
		}
	}
	l.version++
}

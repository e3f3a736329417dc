// Copyright © 2026 Texelgrid contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: grid/cell.go
// Summary: Cell and Style types for the character grid.

package grid

import "github.com/gdamore/tcell/v2"

// Style is the per-cell rendering style. The grid never inspects it; it is
// carried opaquely from writer to reader so any tcell attribute survives a
// round trip through scrollback.
type Style = tcell.Style

// DefaultStyle is the style of blank cells.
var DefaultStyle = tcell.StyleDefault

// Cell is one column of one row. A two-column character occupies a lead
// cell (Wide set) followed by a continuation cell whose Rune is 0. Runes
// beyond the first of a grapheme cluster (ZWJ sequences, combining marks,
// variation selectors) ride on the lead cell's Comb slice, following the
// tcell content model.
type Cell struct {
	Rune  rune
	Comb  []rune
	Style Style
	Wide  bool
}

// Continuation reports whether the cell is the trailing half of a wide
// character.
func (c Cell) Continuation() bool { return c.Rune == 0 }

// Blank reports whether the cell holds no visible content.
func (c Cell) Blank() bool { return c.Rune == ' ' && len(c.Comb) == 0 }

// EmptyCell returns a blank cell in the default style.
func EmptyCell() Cell { return Cell{Rune: ' ', Style: DefaultStyle} }

// AppendRunes appends the cell's text content to dst. Continuation cells
// contribute nothing; an unwritten cell contributes its space.
func (c Cell) AppendRunes(dst []rune) []rune {
	if c.Rune == 0 {
		return dst
	}
	dst = append(dst, c.Rune)
	return append(dst, c.Comb...)
}

// Copyright © 2026 Texelgrid contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: selection/logical.go
// Summary: Line and logical-line selection over wrap chains.

package selection

// LineAt returns the full physical row containing p.
func (e *Engine) LineAt(p Point) (start, end Point, ok bool) {
	if p.Line < 0 || p.Line >= e.buf.TotalLines() {
		return Point{}, Point{}, false
	}
	return Point{Line: p.Line, Col: 0},
		Point{Line: p.Line, Col: e.buf.Width() - 1}, true
}

// LogicalLineAt returns the full logical line containing p: the chain of
// rows linked by wrap flags, from the row where the line began through its
// last continuation. Triple-click on any fragment of a wrapped command
// selects the whole command.
func (e *Engine) LogicalLineAt(p Point) (start, end Point, ok bool) {
	first, last, ok := e.logicalRows(p.Line)
	if !ok {
		return Point{}, Point{}, false
	}
	return Point{Line: first, Col: 0},
		Point{Line: last, Col: e.buf.Width() - 1}, true
}

// logicalRows walks the wrap chain around a row. A row's wrap flag means
// "continues the row above", so the chain start is the first row without
// the flag and the chain end is the last row whose successor carries it.
func (e *Engine) logicalRows(line int) (first, last int, ok bool) {
	total := e.buf.TotalLines()
	if line < 0 || line >= total {
		return 0, 0, false
	}
	first = line
	for first > 0 && e.buf.WrappedAt(first) {
		first--
	}
	last = line
	for last+1 < total && e.buf.WrappedAt(last+1) {
		last++
	}
	return first, last, true
}

// logicalRunes flattens a logical line into runes plus, for each rune, the
// cell position of the cluster it came from. Continuation cells contribute
// nothing; combining runes map to their lead cell.
func (e *Engine) logicalRunes(line int) (runes []rune, pos []Point, first int, ok bool) {
	first, last, ok := e.logicalRows(line)
	if !ok {
		return nil, nil, 0, false
	}
	for row := first; row <= last; row++ {
		cells, found := e.buf.CellsAt(row)
		if !found {
			continue
		}
		for col, c := range cells {
			if c.Rune == 0 || c.Rune < ' ' {
				continue
			}
			before := len(runes)
			runes = c.AppendRunes(runes)
			for i := before; i < len(runes); i++ {
				pos = append(pos, Point{Line: row, Col: col})
			}
		}
	}
	return runes, pos, first, true
}

// Copyright © 2026 Texelgrid contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: grid/snapshot.go
// Summary: Copy-on-read views of buffer content for renderers.

package grid

// Snapshot is an immutable copy of the live region plus the addressing
// facts a renderer or scrollback view needs. It is safe to hold across
// further buffer mutation; it simply describes the moment it was taken.
type Snapshot struct {
	Width      int
	Height     int
	Rows       [][]Cell
	Wrapped    []bool
	Versions   []uint64
	HistoryLen int
	Version    int64
}

// Snapshot copies the live region under the read lock.
func (b *Buffer) Snapshot() *Snapshot {
	b.mu.RLock()
	defer b.mu.RUnlock()
	s := &Snapshot{
		Width:      b.width,
		Height:     b.height,
		Rows:       make([][]Cell, b.height),
		Wrapped:    make([]bool, b.height),
		Versions:   make([]uint64, b.height),
		HistoryLen: b.ringSize,
		Version:    b.version,
	}
	for i, ref := range b.live {
		line := b.arena.get(ref)
		if line == nil {
			s.Rows[i] = make([]Cell, b.width)
			continue
		}
		s.Rows[i] = line.cellCopy()
		s.Wrapped[i] = line.wrapped
		s.Versions[i] = line.version
	}
	return s
}

// Range copies the rows in the linear index range [from, to). Out-of-range
// portions are clipped; a fully out-of-range request returns nil. This is
// the access path for scrolled-back views, which mix history and live rows.
func (b *Buffer) Range(from, to int) [][]Cell {
	b.mu.RLock()
	defer b.mu.RUnlock()
	total := b.ringSize + b.height
	if from < 0 {
		from = 0
	}
	if to > total {
		to = total
	}
	if from >= to {
		return nil
	}
	out := make([][]Cell, 0, to-from)
	for i := from; i < to; i++ {
		line := b.lineAtLocked(i)
		if line == nil {
			out = append(out, make([]Cell, b.width))
			continue
		}
		out = append(out, line.cellCopy())
	}
	return out
}

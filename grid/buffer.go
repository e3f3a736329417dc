// Copyright © 2026 Texelgrid contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: grid/buffer.go
// Summary: Buffer is the central store for grid content.
//
// Architecture:
//
//	             index 0
//	┌───────────────────────────┐
//	│  scrollback ring          │  committed lines, oldest first,
//	│  (bounded, batch-evicted) │  evicted from the front when full
//	├───────────────────────────┤
//	│  live region              │  height rows the writer mutates
//	└───────────────────────────┘
//	             index TotalLines()-1
//
// Every line lives in a slot arena and is addressed two ways: by a linear
// index (scrollback first, then live) that shifts as content scrolls, and
// by a LineRef that sticks to the line itself until eviction. Selection
// anchors hold LineRefs; rendering uses indices.
//
// All exported methods are safe for concurrent use. Readers get copies,
// never internal slices.

package grid

import (
	"sync"

	"github.com/framegrace/texelgrid/grapheme"
)

// Buffer stores a live cell grid plus bounded scrollback.
type Buffer struct {
	mu sync.RWMutex

	width, height int
	arena         lineArena
	live          []LineRef

	ring          []LineRef // fixed-capacity ring of committed lines
	ringHead      int
	ringSize      int
	maxScrollback int
	evictionBatch int
	globalOffset  int64 // lines evicted so far; global index of ring[head]

	version       int64
	ambiguousWide bool
	dirty         *DirtyTracker

	debugLog func(format string, args ...interface{})
	onCommit func(global int64, text string)
	onEvict  func(global int64)
}

// New creates a width×height buffer. Dimensions clamp to at least 1.
func New(width, height int, opts ...Option) *Buffer {
	if width < 1 {
		width = 1
	}
	if height < 1 {
		height = 1
	}
	b := &Buffer{
		width:         width,
		height:        height,
		maxScrollback: DefaultScrollback,
		evictionBatch: DefaultEvictionBatch,
		dirty:         NewDirtyTracker(),
	}
	for _, opt := range opts {
		opt(b)
	}
	b.ring = make([]LineRef, b.maxScrollback)
	b.live = make([]LineRef, height)
	for i := range b.live {
		b.live[i] = b.arena.alloc(width)
	}
	b.dirty.MarkAll()
	return b
}

// Width returns the grid width in columns.
func (b *Buffer) Width() int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.width
}

// Height returns the live region height in rows.
func (b *Buffer) Height() int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.height
}

// HistoryLen returns the number of scrollback lines currently held.
func (b *Buffer) HistoryLen() int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.ringSize
}

// TotalLines returns the addressable line count: scrollback plus live.
func (b *Buffer) TotalLines() int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.ringSize + b.height
}

// Version returns the buffer-wide content version. It bumps on every
// mutation, including scrolls.
func (b *Buffer) Version() int64 {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.version
}

// GlobalOffset returns the count of lines evicted so far. The stable global
// index of scrollback line i is GlobalOffset()+i.
func (b *Buffer) GlobalOffset() int64 {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.globalOffset
}

// AmbiguousWide reports the East Asian ambiguous width policy.
func (b *Buffer) AmbiguousWide() bool {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.ambiguousWide
}

// CollectDirty drains the dirty row set. See DirtyTracker.Collect.
func (b *Buffer) CollectDirty() ([]int, bool) {
	return b.dirty.Collect()
}

// lineAtLocked resolves a linear index to its line, or nil when out of
// range. Caller holds at least the read lock.
func (b *Buffer) lineAtLocked(index int) *Line {
	if index < 0 {
		return nil
	}
	if index < b.ringSize {
		return b.arena.get(b.ring[(b.ringHead+index)%len(b.ring)])
	}
	index -= b.ringSize
	if index < b.height {
		return b.arena.get(b.live[index])
	}
	return nil
}

func (b *Buffer) refAtLocked(index int) LineRef {
	if index < 0 {
		return InvalidRef
	}
	if index < b.ringSize {
		return b.ring[(b.ringHead+index)%len(b.ring)]
	}
	index -= b.ringSize
	if index < b.height {
		return b.live[index]
	}
	return InvalidRef
}

// CellsAt returns a copy of the cells at a linear index.
func (b *Buffer) CellsAt(index int) ([]Cell, bool) {
	b.mu.RLock()
	defer b.mu.RUnlock()
	l := b.lineAtLocked(index)
	if l == nil {
		return nil, false
	}
	return l.cellCopy(), true
}

// RunesAt returns one rune per cell at a linear index, 0 marking
// continuation cells. This is the classifier's input.
func (b *Buffer) RunesAt(index int) ([]rune, bool) {
	b.mu.RLock()
	defer b.mu.RUnlock()
	l := b.lineAtLocked(index)
	if l == nil {
		return nil, false
	}
	return l.runes(), true
}

// TextAt extracts a line's visible text, trailing blanks trimmed.
func (b *Buffer) TextAt(index int) (string, bool) {
	b.mu.RLock()
	defer b.mu.RUnlock()
	l := b.lineAtLocked(index)
	if l == nil {
		return "", false
	}
	return l.text(), true
}

// WrappedAt reports whether the line at index continues the previous line.
func (b *Buffer) WrappedAt(index int) bool {
	b.mu.RLock()
	defer b.mu.RUnlock()
	l := b.lineAtLocked(index)
	return l != nil && l.wrapped
}

// VersionAt returns the content version of the line at index.
func (b *Buffer) VersionAt(index int) (uint64, bool) {
	b.mu.RLock()
	defer b.mu.RUnlock()
	l := b.lineAtLocked(index)
	if l == nil {
		return 0, false
	}
	return l.version, true
}

// RefAt returns the stable handle of the line at a linear index.
func (b *Buffer) RefAt(index int) (LineRef, bool) {
	b.mu.RLock()
	defer b.mu.RUnlock()
	ref := b.refAtLocked(index)
	return ref, ref.Valid()
}

// Refs returns the current line sequence as refs, scrollback first. The
// slice is a copy; it describes the moment of the call.
func (b *Buffer) Refs() []LineRef {
	b.mu.RLock()
	defer b.mu.RUnlock()
	out := make([]LineRef, 0, b.ringSize+b.height)
	for i := 0; i < b.ringSize; i++ {
		out = append(out, b.ring[(b.ringHead+i)%len(b.ring)])
	}
	out = append(out, b.live...)
	return out
}

// Resolve maps a ref back to its current linear index. It returns false
// once the line has been evicted.
func (b *Buffer) Resolve(ref LineRef) (int, bool) {
	b.mu.RLock()
	defer b.mu.RUnlock()
	if b.arena.get(ref) == nil {
		return 0, false
	}
	for i := 0; i < b.ringSize; i++ {
		if b.ring[(b.ringHead+i)%len(b.ring)] == ref {
			return i, true
		}
	}
	for i, r := range b.live {
		if r == ref {
			return b.ringSize + i, true
		}
	}
	return 0, false
}

// VersionOf returns the content version of the line a ref points at, or
// false when the ref is stale.
func (b *Buffer) VersionOf(ref LineRef) (uint64, bool) {
	b.mu.RLock()
	defer b.mu.RUnlock()
	l := b.arena.get(ref)
	if l == nil {
		return 0, false
	}
	return l.version, true
}

// --- Mutation ---

// WriteString writes s on a live row starting at col, segmented by grapheme
// cluster. Wide clusters lay down a lead cell plus a continuation cell; a
// cluster that would cross the right edge is dropped (no auto-wrap at this
// layer). Overwriting half of an existing wide character blanks the orphaned
// half. Returns the column after the last cell written.
func (b *Buffer) WriteString(row, col int, s string, style Style) int {
	b.mu.Lock()
	defer b.mu.Unlock()
	row = clampInt(row, 0, b.height-1)
	if col < 0 {
		col = 0
	}
	line := b.arena.get(b.live[row])
	if line == nil || col >= b.width {
		return col
	}
	changed := false
	for _, cl := range grapheme.Segment(s, b.ambiguousWide) {
		w := cl.Width
		if w < 1 {
			w = 1
		}
		if col+w > b.width {
			break
		}
		line.healAt(col)
		line.healAt(col + w - 1)
		lead := Cell{Rune: cl.Runes[0], Style: style, Wide: w == 2}
		if len(cl.Runes) > 1 {
			lead.Comb = append([]rune(nil), cl.Runes[1:]...)
		}
		line.cells[col] = lead
		if w == 2 {
			line.cells[col+1] = Cell{Style: style}
		}
		col += w
		changed = true
	}
	if changed {
		line.version++
		b.version++
		b.dirty.MarkRow(row)
	}
	return col
}

// SetCell stores a single cell on a live row, healing any wide pair it
// lands on.
func (b *Buffer) SetCell(row, col int, c Cell) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if row < 0 || row >= b.height || col < 0 || col >= b.width {
		return
	}
	line := b.arena.get(b.live[row])
	if line == nil {
		return
	}
	line.healAt(col)
	line.cells[col] = c
	line.version++
	b.version++
	b.dirty.MarkRow(row)
}

// SetWrapped marks a live row as a soft continuation of the row above.
func (b *Buffer) SetWrapped(row int, wrapped bool) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if row < 0 || row >= b.height {
		return
	}
	if line := b.arena.get(b.live[row]); line != nil {
		line.setWrapped(wrapped)
		b.version++
	}
}

// Scroll commits the top n live rows to scrollback and feeds fresh blank
// rows in at the bottom. Line identity is preserved: refs held on the
// committed rows keep resolving until eviction.
func (b *Buffer) Scroll(n int) {
	if n <= 0 {
		return
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	if n > b.height {
		n = b.height
	}
	for i := 0; i < n; i++ {
		b.commitLocked(b.live[0])
		copy(b.live, b.live[1:])
		b.live[b.height-1] = b.arena.alloc(b.width)
	}
	b.version++
	b.dirty.MarkAll()
}

// commitLocked appends a live line to the scrollback ring, evicting a batch
// of the oldest lines first when the ring is full.
func (b *Buffer) commitLocked(ref LineRef) {
	if b.maxScrollback == 0 {
		b.arena.release(ref)
		return
	}
	if b.ringSize == len(b.ring) {
		b.evictLocked()
	}
	global := b.globalOffset + int64(b.ringSize)
	b.ring[(b.ringHead+b.ringSize)%len(b.ring)] = ref
	b.ringSize++
	if b.onCommit != nil {
		if line := b.arena.get(ref); line != nil {
			b.onCommit(global, line.text())
		}
	}
}

func (b *Buffer) evictLocked() {
	batch := b.evictionBatch
	if batch > b.ringSize {
		batch = b.ringSize
	}
	for i := 0; i < batch; i++ {
		ref := b.ring[b.ringHead]
		b.ring[b.ringHead] = InvalidRef
		b.arena.release(ref)
		b.ringHead = (b.ringHead + 1) % len(b.ring)
		b.ringSize--
		if b.onEvict != nil {
			b.onEvict(b.globalOffset)
		}
		b.globalOffset++
	}
	if b.debugLog != nil {
		b.debugLog("evicted %d lines, global offset now %d", batch, b.globalOffset)
	}
}

// ClearLine blanks a live row.
func (b *Buffer) ClearLine(row int) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if row < 0 || row >= b.height {
		return
	}
	if line := b.arena.get(b.live[row]); line != nil {
		line.clearSpan(0, b.width)
		line.setWrapped(false)
		line.version++
		b.version++
		b.dirty.MarkRow(row)
	}
}

// Clear blanks the whole live region. Scrollback is untouched.
func (b *Buffer) Clear() {
	b.mu.Lock()
	defer b.mu.Unlock()
	for _, ref := range b.live {
		if line := b.arena.get(ref); line != nil {
			line.clearSpan(0, b.width)
			line.wrapped = false
			line.version++
		}
	}
	b.version++
	b.dirty.MarkAll()
}

// Resize changes the live grid dimensions. Live rows pad or truncate to the
// new width; a shrink in height commits the excess top rows to scrollback,
// a growth adds blank rows at the bottom. Scrollback rows keep the width
// they were committed at.
func (b *Buffer) Resize(width, height int) {
	if width < 1 {
		width = 1
	}
	if height < 1 {
		height = 1
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	if width != b.width {
		for _, ref := range b.live {
			if line := b.arena.get(ref); line != nil {
				line.resizeTo(width)
			}
		}
		b.width = width
	}
	for height < b.height {
		b.commitLocked(b.live[0])
		copy(b.live, b.live[1:])
		b.live = b.live[:b.height-1]
		b.height--
	}
	for height > b.height {
		b.live = append(b.live, b.arena.alloc(b.width))
		b.height++
	}
	b.version++
	b.dirty.MarkAll()
}

func clampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

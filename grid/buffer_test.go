package grid

import (
	"fmt"
	"testing"
)

// --- DirtyTracker Tests ---

func TestDirtyTracker_MarkAndCollect(t *testing.T) {
	d := NewDirtyTracker()
	d.Collect() // drain the initial state
	d.MarkRow(2)
	d.MarkRow(5)
	rows, all := d.Collect()
	if all {
		t.Error("expected partial dirt, got full redraw")
	}
	if len(rows) != 2 {
		t.Errorf("got %d dirty rows, want 2", len(rows))
	}
	rows, all = d.Collect()
	if all || len(rows) != 0 {
		t.Errorf("tracker not reset: rows=%v all=%v", rows, all)
	}
}

func TestDirtyTracker_MarkAllWins(t *testing.T) {
	d := NewDirtyTracker()
	d.MarkRow(1)
	d.MarkAll()
	d.MarkRow(3)
	rows, all := d.Collect()
	if !all {
		t.Error("expected full redraw")
	}
	if len(rows) != 0 {
		t.Errorf("rows should be empty with all set, got %v", rows)
	}
}

// --- Write Tests ---

func TestBuffer_WriteString(t *testing.T) {
	b := New(20, 4)
	next := b.WriteString(0, 0, "hello", DefaultStyle)
	if next != 5 {
		t.Errorf("next col = %d, want 5", next)
	}
	text, ok := b.TextAt(b.HistoryLen() + 0)
	if !ok || text != "hello" {
		t.Errorf("TextAt = %q, %v", text, ok)
	}
}

func TestBuffer_WriteWide(t *testing.T) {
	b := New(10, 2)
	next := b.WriteString(0, 0, "a世b", DefaultStyle)
	if next != 4 {
		t.Errorf("next col = %d, want 4", next)
	}
	runes, _ := b.RunesAt(0)
	want := []rune{'a', '世', 0, 'b'}
	for i, r := range want {
		if runes[i] != r {
			t.Errorf("cell %d = %#x, want %#x", i, runes[i], r)
		}
	}
	cells, _ := b.CellsAt(0)
	if !cells[1].Wide {
		t.Error("lead cell not marked wide")
	}
	if !cells[2].Continuation() {
		t.Error("cell after wide lead is not a continuation")
	}
}

func TestBuffer_WriteCluster(t *testing.T) {
	// A ZWJ family is one cluster: one lead cell with the trailing runes on
	// Comb, one continuation cell.
	family := "\U0001F468‍\U0001F469‍\U0001F466"
	b := New(10, 1)
	next := b.WriteString(0, 0, family, DefaultStyle)
	if next != 2 {
		t.Errorf("next col = %d, want 2", next)
	}
	cells, _ := b.CellsAt(0)
	if cells[0].Rune != 0x1F468 || len(cells[0].Comb) != 4 {
		t.Errorf("lead cell = %+v", cells[0])
	}
	// Round trip: extraction rebuilds the full sequence.
	text, _ := b.TextAt(0)
	if text != family {
		t.Errorf("TextAt = %q, want the original sequence", text)
	}
}

func TestBuffer_WriteFlagOccupiesTwoCells(t *testing.T) {
	b := New(10, 1)
	b.WriteString(0, 4, "\U0001F1EF\U0001F1F5", DefaultStyle)
	cells, _ := b.CellsAt(0)
	if !cells[4].Wide || !cells[5].Continuation() {
		t.Errorf("flag at cols 4-5: lead=%+v cont=%+v", cells[4], cells[5])
	}
	if cells[6].Rune != ' ' {
		t.Errorf("cell 6 should stay blank, got %+v", cells[6])
	}
}

func TestBuffer_TruncateAtRightEdge(t *testing.T) {
	b := New(5, 1)
	next := b.WriteString(0, 4, "世", DefaultStyle)
	if next != 4 {
		t.Errorf("wide char at last column should be dropped, next = %d", next)
	}
	next = b.WriteString(0, 3, "ab", DefaultStyle)
	if next != 5 {
		t.Errorf("next = %d, want 5", next)
	}
}

func TestBuffer_OverwriteHealsWidePair(t *testing.T) {
	b := New(10, 1)
	b.WriteString(0, 0, "世", DefaultStyle)
	// Overwrite the continuation half: the lead must blank.
	b.WriteString(0, 1, "x", DefaultStyle)
	runes, _ := b.RunesAt(0)
	if runes[0] != ' ' {
		t.Errorf("orphaned lead = %#x, want blank", runes[0])
	}
	if runes[1] != 'x' {
		t.Errorf("cell 1 = %#x, want 'x'", runes[1])
	}

	b.ClearLine(0)
	b.WriteString(0, 2, "界", DefaultStyle)
	// Overwrite the lead: the continuation must blank.
	b.WriteString(0, 2, "y", DefaultStyle)
	runes, _ = b.RunesAt(0)
	if runes[3] != ' ' {
		t.Errorf("orphaned continuation = %#x, want blank", runes[3])
	}
}

func TestBuffer_VersionBumpsOnWrite(t *testing.T) {
	b := New(10, 2)
	v0, _ := b.VersionAt(0)
	bv0 := b.Version()
	b.WriteString(0, 0, "x", DefaultStyle)
	v1, _ := b.VersionAt(0)
	if v1 <= v0 {
		t.Errorf("line version did not bump: %d -> %d", v0, v1)
	}
	if b.Version() <= bv0 {
		t.Error("buffer version did not bump")
	}
	// Writing on row 0 must not touch row 1's version.
	w0, _ := b.VersionAt(1)
	b.WriteString(0, 0, "y", DefaultStyle)
	w1, _ := b.VersionAt(1)
	if w0 != w1 {
		t.Error("unrelated line version changed")
	}
}

// --- Scroll and Eviction Tests ---

func TestBuffer_ScrollPreservesIdentity(t *testing.T) {
	b := New(10, 3)
	b.WriteString(0, 0, "first", DefaultStyle)
	ref, _ := b.RefAt(0)
	b.Scroll(1)
	// The line moved into scrollback; the ref still resolves to it.
	idx, ok := b.Resolve(ref)
	if !ok {
		t.Fatal("ref went stale after scroll")
	}
	if idx != 0 {
		t.Errorf("resolved index = %d, want 0", idx)
	}
	text, _ := b.TextAt(idx)
	if text != "first" {
		t.Errorf("scrolled line text = %q", text)
	}
	if b.HistoryLen() != 1 {
		t.Errorf("history len = %d, want 1", b.HistoryLen())
	}
}

func TestBuffer_ScrollFeedsBlankRows(t *testing.T) {
	b := New(10, 2)
	b.WriteString(1, 0, "bottom", DefaultStyle)
	b.Scroll(1)
	// Old row 1 is the new row 0; new row 1 is blank.
	text, _ := b.TextAt(b.HistoryLen() + 0)
	if text != "bottom" {
		t.Errorf("row 0 = %q, want %q", text, "bottom")
	}
	text, _ = b.TextAt(b.HistoryLen() + 1)
	if text != "" {
		t.Errorf("fresh row = %q, want empty", text)
	}
}

func TestBuffer_EvictionInvalidatesRefs(t *testing.T) {
	b := New(10, 1, WithScrollback(4), WithEvictionBatch(2))
	b.WriteString(0, 0, "line0", DefaultStyle)
	ref, _ := b.RefAt(0)
	// Fill scrollback past capacity: 4 committed fills the ring, the fifth
	// commit evicts a batch of 2 including line0.
	for i := 0; i < 5; i++ {
		b.Scroll(1)
		b.WriteString(0, 0, fmt.Sprintf("line%d", i+1), DefaultStyle)
	}
	if _, ok := b.Resolve(ref); ok {
		t.Error("evicted line's ref still resolves")
	}
	if b.HistoryLen() != 3 {
		t.Errorf("history len = %d, want 3 (4 - batch 2 + 1)", b.HistoryLen())
	}
	if b.GlobalOffset() != 2 {
		t.Errorf("global offset = %d, want 2", b.GlobalOffset())
	}
}

func TestBuffer_SlotRecyclingDoesNotAliasStaleRefs(t *testing.T) {
	b := New(10, 1, WithScrollback(2), WithEvictionBatch(1))
	b.WriteString(0, 0, "old", DefaultStyle)
	ref, _ := b.RefAt(0)
	// Scroll far enough that the slot is recycled for new lines.
	for i := 0; i < 10; i++ {
		b.Scroll(1)
	}
	if _, ok := b.VersionOf(ref); ok {
		t.Error("stale ref resolved against a recycled slot")
	}
}

func TestBuffer_CommitAndEvictHooks(t *testing.T) {
	var commits []int64
	var evicts []int64
	b := New(10, 1,
		WithScrollback(2), WithEvictionBatch(1),
		WithCommitHook(func(g int64, _ string) { commits = append(commits, g) }),
		WithEvictHook(func(g int64) { evicts = append(evicts, g) }),
	)
	for i := 0; i < 4; i++ {
		b.Scroll(1)
	}
	want := []int64{0, 1, 2, 3}
	if len(commits) != 4 {
		t.Fatalf("commits = %v, want %v", commits, want)
	}
	for i, g := range want {
		if commits[i] != g {
			t.Errorf("commit %d = %d, want %d", i, commits[i], g)
		}
	}
	// Commits 3 and 4 each evicted one line: globals 0 then 1.
	if len(evicts) != 2 || evicts[0] != 0 || evicts[1] != 1 {
		t.Errorf("evicts = %v, want [0 1]", evicts)
	}
}

// --- Snapshot Tests ---

func TestBuffer_SnapshotIsIsolated(t *testing.T) {
	b := New(10, 2)
	b.WriteString(0, 0, "before", DefaultStyle)
	snap := b.Snapshot()
	b.WriteString(0, 0, "after!", DefaultStyle)
	if snap.Rows[0][0].Rune != 'b' {
		t.Errorf("snapshot mutated: %c", snap.Rows[0][0].Rune)
	}
	if snap.Width != 10 || snap.Height != 2 {
		t.Errorf("snapshot dims %dx%d", snap.Width, snap.Height)
	}
}

func TestBuffer_RangeSpansHistoryAndLive(t *testing.T) {
	b := New(10, 2)
	b.WriteString(0, 0, "one", DefaultStyle)
	b.Scroll(1)
	b.WriteString(1, 0, "two", DefaultStyle)
	rows := b.Range(0, b.TotalLines())
	if len(rows) != 3 {
		t.Fatalf("got %d rows, want 3", len(rows))
	}
	if rows[0][0].Rune != 'o' {
		t.Errorf("history row 0 starts with %c", rows[0][0].Rune)
	}
	if got := b.Range(50, 60); got != nil {
		t.Errorf("out-of-range Range = %v, want nil", got)
	}
}

// --- Resize Tests ---

func TestBuffer_ResizeWidth(t *testing.T) {
	b := New(10, 2)
	b.WriteString(0, 0, "abcdefgh世", DefaultStyle)
	b.Resize(9, 2)
	runes, _ := b.RunesAt(0)
	if len(runes) != 9 {
		t.Fatalf("width = %d, want 9", len(runes))
	}
	// 世's lead sat at col 8 with its continuation at col 9: the cut pair
	// must blank, not dangle.
	if runes[8] != ' ' {
		t.Errorf("cut wide lead = %#x, want blank", runes[8])
	}
}

func TestBuffer_ResizeHeight(t *testing.T) {
	b := New(10, 4)
	b.WriteString(0, 0, "top", DefaultStyle)
	b.Resize(10, 2)
	if b.Height() != 2 {
		t.Errorf("height = %d, want 2", b.Height())
	}
	// The shrunk-away top row moved to scrollback, not the void.
	if b.HistoryLen() != 2 {
		t.Errorf("history len = %d, want 2", b.HistoryLen())
	}
	text, _ := b.TextAt(0)
	if text != "top" {
		t.Errorf("committed row = %q, want %q", text, "top")
	}
	b.Resize(10, 5)
	if b.Height() != 5 {
		t.Errorf("height after grow = %d", b.Height())
	}
}

func TestBuffer_ClampedConstruction(t *testing.T) {
	b := New(0, -3)
	if b.Width() != 1 || b.Height() != 1 {
		t.Errorf("dims = %dx%d, want 1x1", b.Width(), b.Height())
	}
}

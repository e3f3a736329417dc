package grid

import "sync"

// DirtyTracker accumulates live rows that changed since the last collect,
// so a renderer can redraw only what moved. Scroll and resize mark
// everything; per-cell writes mark their row.
type DirtyTracker struct {
	mu   sync.Mutex
	rows map[int]struct{}
	all  bool
}

func NewDirtyTracker() *DirtyTracker {
	return &DirtyTracker{rows: make(map[int]struct{})}
}

// MarkRow records a single dirty row.
func (d *DirtyTracker) MarkRow(row int) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if !d.all {
		d.rows[row] = struct{}{}
	}
}

// MarkAll records a full-screen change.
func (d *DirtyTracker) MarkAll() {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.all = true
	clear(d.rows)
}

// Collect returns the dirty rows (nil when everything is dirty) and whether
// a full redraw is needed, then resets the tracker.
func (d *DirtyTracker) Collect() (rows []int, all bool) {
	d.mu.Lock()
	defer d.mu.Unlock()
	all = d.all
	if !all {
		rows = make([]int, 0, len(d.rows))
		for r := range d.rows {
			rows = append(rows, r)
		}
	}
	d.all = false
	clear(d.rows)
	return rows, all
}

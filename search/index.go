// Copyright © 2026 Texelgrid contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: search/index.go
// Summary: In-memory SQLite FTS5 index over committed scrollback lines.
//
// Provides substring search over scrollback with:
//   - Async batch indexing so heavy output never blocks the writer
//   - Trigram tokenizing for arbitrary substring matches
//   - Deletion in step with scrollback eviction

// Package search maintains a queryable index of everything that has scrolled
// off into history. The index lives entirely in memory: it is rebuilt with
// the buffer and dies with it, keeping the core free of persisted state.
package search

import (
	"database/sql"
	"fmt"
	"log"
	"strings"
	"sync"
	"time"

	_ "modernc.org/sqlite"

	"github.com/framegrace/texelgrid/grid"
)

// Index is the query surface over committed lines.
type Index interface {
	// IndexLine queues a line for indexing under its stable global index.
	IndexLine(global int64, text string) error

	// DeleteLine removes a line, typically because eviction dropped it.
	// Stale matches pointing at recycled lines are worse than no matches.
	DeleteLine(global int64) error

	// Search returns up to limit matches for a literal substring query,
	// newest lines first.
	Search(query string, limit int) ([]Result, error)

	// Flush blocks until every queued line is searchable.
	Flush() error

	// Close flushes and releases the database.
	Close() error
}

// Result is a single matching line.
type Result struct {
	GlobalLine int64
	Content    string
	// Column is the rune offset of the first case-insensitive occurrence
	// of the query in Content, or -1 when the tokenizer matched a form the
	// plain scan does not find.
	Column int
}

// Config tunes the indexing pipeline.
type Config struct {
	// DSN selects the database. The default is an in-memory database that
	// dies with the index.
	DSN string
	// BatchSize is the number of queued lines written per transaction.
	BatchSize int
	// BatchTimeout bounds how long a partial batch may sit unflushed.
	BatchTimeout time.Duration
	// ChannelBuffer is the async queue depth. When the queue is full,
	// lines are dropped rather than stalling the writer.
	ChannelBuffer int
}

// DefaultConfig returns sensible defaults.
func DefaultConfig() Config {
	return Config{
		DSN:           ":memory:?_pragma=temp_store(MEMORY)",
		BatchSize:     100,
		BatchTimeout:  5 * time.Second,
		ChannelBuffer: 1000,
	}
}

func (c Config) withDefaults() Config {
	d := DefaultConfig()
	if c.DSN == "" {
		c.DSN = d.DSN
	}
	if c.BatchSize <= 0 {
		c.BatchSize = d.BatchSize
	}
	if c.BatchTimeout <= 0 {
		c.BatchTimeout = d.BatchTimeout
	}
	if c.ChannelBuffer <= 0 {
		c.ChannelBuffer = d.ChannelBuffer
	}
	return c
}

type indexEntry struct {
	global int64
	text   string
}

// SQLiteIndex implements Index on an in-memory SQLite database with an FTS5
// trigram table for substring matching.
type SQLiteIndex struct {
	config Config
	db     *sql.DB

	batchChan chan indexEntry
	stopCh    chan struct{}
	doneCh    chan struct{}
	flushCh   chan chan struct{}

	mu sync.RWMutex
	// deleted holds ids removed while still queued. A DeleteLine can land
	// before the batch flush that would insert the line; the flusher
	// consumes the tombstone instead of resurrecting the line.
	deleted map[int64]struct{}
}

const schema = `
CREATE TABLE IF NOT EXISTS lines (
    id INTEGER PRIMARY KEY,           -- global line index
    content TEXT NOT NULL
);

-- Trigram tokenizing enables matching any substring, not just word
-- prefixes: "ls -la", partial paths, fragments of URLs.
CREATE VIRTUAL TABLE IF NOT EXISTS lines_fts USING fts5(
    content,
    content='lines',
    content_rowid='id',
    tokenize='trigram'
);

CREATE TRIGGER IF NOT EXISTS lines_ai AFTER INSERT ON lines BEGIN
    INSERT INTO lines_fts(rowid, content) VALUES (new.id, new.content);
END;

CREATE TRIGGER IF NOT EXISTS lines_au AFTER UPDATE ON lines BEGIN
    INSERT INTO lines_fts(lines_fts, rowid, content) VALUES ('delete', old.id, old.content);
    INSERT INTO lines_fts(rowid, content) VALUES (new.id, new.content);
END;

CREATE TRIGGER IF NOT EXISTS lines_ad AFTER DELETE ON lines BEGIN
    INSERT INTO lines_fts(lines_fts, rowid, content) VALUES ('delete', old.id, old.content);
END;
`

// NewIndex creates an in-memory index with default configuration.
func NewIndex() (*SQLiteIndex, error) {
	return NewIndexWithConfig(Config{})
}

// NewIndexWithConfig creates an index on the configured DSN.
func NewIndexWithConfig(config Config) (*SQLiteIndex, error) {
	config = config.withDefaults()

	db, err := sql.Open("sqlite", config.DSN)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	// Each pooled connection to a :memory: DSN would get its own private
	// database; pin the pool to one connection so they all see the same data.
	db.SetMaxOpenConns(1)

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to create schema: %w", err)
	}

	ix := &SQLiteIndex{
		config:    config,
		db:        db,
		batchChan: make(chan indexEntry, config.ChannelBuffer),
		stopCh:    make(chan struct{}),
		doneCh:    make(chan struct{}),
		flushCh:   make(chan chan struct{}),
		deleted:   make(map[int64]struct{}),
	}
	go ix.batchIndexer()
	return ix, nil
}

// BufferHooks returns grid options that keep an index in step with a
// buffer: lines entering scrollback get indexed, evicted lines get removed.
func BufferHooks(ix Index) []grid.Option {
	return []grid.Option{
		grid.WithCommitHook(func(global int64, text string) {
			ix.IndexLine(global, text)
		}),
		grid.WithEvictHook(func(global int64) {
			ix.DeleteLine(global)
		}),
	}
}

// batchIndexer batches queued entries and flushes on size, timeout, or
// explicit request.
func (ix *SQLiteIndex) batchIndexer() {
	defer close(ix.doneCh)

	batch := make([]indexEntry, 0, ix.config.BatchSize)
	timer := time.NewTimer(ix.config.BatchTimeout)
	defer timer.Stop()

	flush := func() {
		if len(batch) == 0 {
			return
		}
		ix.flushBatch(batch)
		batch = batch[:0]
	}

	for {
		select {
		case entry := <-ix.batchChan:
			batch = append(batch, entry)
			if len(batch) >= ix.config.BatchSize {
				flush()
				timer.Reset(ix.config.BatchTimeout)
			}

		case <-timer.C:
			flush()
			timer.Reset(ix.config.BatchTimeout)

		case done := <-ix.flushCh:
			// Drain the queue before acknowledging.
			draining := true
			for draining {
				select {
				case entry := <-ix.batchChan:
					batch = append(batch, entry)
				default:
					draining = false
				}
			}
			flush()
			ix.clearTombstones()
			close(done)

		case <-ix.stopCh:
			for {
				select {
				case entry := <-ix.batchChan:
					batch = append(batch, entry)
				default:
					flush()
					ix.clearTombstones()
					return
				}
			}
		}
	}
}

func (ix *SQLiteIndex) flushBatch(batch []indexEntry) {
	ix.mu.Lock()
	defer ix.mu.Unlock()

	tx, err := ix.db.Begin()
	if err != nil {
		log.Printf("[SEARCH] failed to begin transaction: %v", err)
		return
	}
	stmt, err := tx.Prepare("INSERT OR REPLACE INTO lines (id, content) VALUES (?, ?)")
	if err != nil {
		log.Printf("[SEARCH] failed to prepare statement: %v", err)
		tx.Rollback()
		return
	}
	defer stmt.Close()

	for _, e := range batch {
		if _, tombstoned := ix.deleted[e.global]; tombstoned {
			delete(ix.deleted, e.global)
			continue
		}
		if _, err := stmt.Exec(e.global, e.text); err != nil {
			log.Printf("[SEARCH] failed to insert line %d: %v", e.global, err)
			tx.Rollback()
			return
		}
	}
	if err := tx.Commit(); err != nil {
		log.Printf("[SEARCH] failed to commit batch: %v", err)
	}
}

// clearTombstones is called after the queue has been fully drained: no
// remaining tombstone can refer to a queued line, so they can all go.
func (ix *SQLiteIndex) clearTombstones() {
	ix.mu.Lock()
	defer ix.mu.Unlock()
	clear(ix.deleted)
}

// IndexLine queues a line. Blank lines are not worth indexing.
func (ix *SQLiteIndex) IndexLine(global int64, text string) error {
	if text == "" {
		return nil
	}
	select {
	case ix.batchChan <- indexEntry{global: global, text: text}:
	default:
		// Queue full under a flood of output: drop rather than stall the
		// write path. The line is still in scrollback, just unsearchable.
	}
	return nil
}

// DeleteLine removes a line from the index, whether it has been flushed
// yet or not.
func (ix *SQLiteIndex) DeleteLine(global int64) error {
	ix.mu.Lock()
	defer ix.mu.Unlock()
	ix.deleted[global] = struct{}{}
	_, err := ix.db.Exec("DELETE FROM lines WHERE id = ?", global)
	return err
}

// Search runs a literal substring query, newest lines first. Queries
// shorter than three characters use LIKE, since the trigram tokenizer
// cannot form a trigram from them.
func (ix *SQLiteIndex) Search(query string, limit int) ([]Result, error) {
	if query == "" {
		return nil, nil
	}
	if limit <= 0 {
		limit = 100
	}

	ix.mu.RLock()
	defer ix.mu.RUnlock()

	var rows *sql.Rows
	var err error
	if len(query) < 3 {
		pattern := "%" + strings.ReplaceAll(strings.ReplaceAll(query, "%", `\%`), "_", `\_`) + "%"
		rows, err = ix.db.Query(`
			SELECT id, content FROM lines
			WHERE content LIKE ? ESCAPE '\'
			ORDER BY id DESC LIMIT ?`, pattern, limit)
	} else {
		// Double-quoting makes FTS5 treat the query as a literal string,
		// so "ls -la" does not parse as a NOT clause.
		quoted := `"` + strings.ReplaceAll(query, `"`, `""`) + `"`
		rows, err = ix.db.Query(`
			SELECT l.id, l.content
			FROM lines_fts JOIN lines l ON l.id = lines_fts.rowid
			WHERE lines_fts MATCH ?
			ORDER BY l.id DESC LIMIT ?`, quoted, limit)
	}
	if err != nil {
		return nil, fmt.Errorf("search failed: %w", err)
	}
	defer rows.Close()

	var results []Result
	for rows.Next() {
		var r Result
		if err := rows.Scan(&r.GlobalLine, &r.Content); err != nil {
			continue
		}
		r.Column = matchColumn(r.Content, query)
		results = append(results, r)
	}
	return results, rows.Err()
}

// matchColumn locates the first case-insensitive occurrence of query in
// content, as a rune offset.
func matchColumn(content, query string) int {
	idx := strings.Index(strings.ToLower(content), strings.ToLower(query))
	if idx < 0 {
		return -1
	}
	return len([]rune(content[:idx]))
}

// Flush blocks until all queued lines are searchable.
func (ix *SQLiteIndex) Flush() error {
	done := make(chan struct{})
	select {
	case ix.flushCh <- done:
		<-done
	case <-ix.stopCh:
	}
	return nil
}

// Close flushes pending writes and closes the database.
func (ix *SQLiteIndex) Close() error {
	close(ix.stopCh)
	<-ix.doneCh
	return ix.db.Close()
}

var _ Index = (*SQLiteIndex)(nil)

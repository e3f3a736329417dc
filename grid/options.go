package grid

// Defaults for buffer construction. Eviction runs in batches so the steady
// state under heavy output is an occasional small sweep, not per-line work.
const (
	DefaultScrollback    = 10000
	DefaultEvictionBatch = 64
)

// Option configures a Buffer at construction time.
type Option func(*Buffer)

// WithScrollback caps the number of history lines kept. Zero disables
// scrollback entirely.
func WithScrollback(n int) Option {
	return func(b *Buffer) {
		if n >= 0 {
			b.maxScrollback = n
		}
	}
}

// WithEvictionBatch sets how many of the oldest history lines are dropped
// at once when the scrollback cap is hit.
func WithEvictionBatch(n int) Option {
	return func(b *Buffer) {
		if n > 0 {
			b.evictionBatch = n
		}
	}
}

// WithAmbiguousWide makes East Asian ambiguous-width characters occupy two
// columns.
func WithAmbiguousWide(on bool) Option {
	return func(b *Buffer) { b.ambiguousWide = on }
}

// WithDebugLog installs a logging callback for internal diagnostics.
func WithDebugLog(fn func(format string, args ...interface{})) Option {
	return func(b *Buffer) { b.debugLog = fn }
}

// WithCommitHook is called, under the buffer lock, each time a live line
// enters scrollback. global is the line's stable global index.
func WithCommitHook(fn func(global int64, text string)) Option {
	return func(b *Buffer) { b.onCommit = fn }
}

// WithEvictHook is called, under the buffer lock, for each history line
// dropped by eviction.
func WithEvictHook(fn func(global int64)) Option {
	return func(b *Buffer) { b.onEvict = fn }
}

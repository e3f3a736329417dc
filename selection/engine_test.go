package selection

import (
	"testing"

	"github.com/framegrace/texelgrid/grid"
)

func newTestBuffer(t *testing.T, width, height int, lines ...string) *grid.Buffer {
	t.Helper()
	b := grid.New(width, height)
	for i, line := range lines {
		if i >= height {
			t.Fatalf("too many lines for height %d", height)
		}
		b.WriteString(i, 0, line, grid.DefaultStyle)
	}
	return b
}

// --- ExtractText Tests ---

func TestEngine_ExtractText_SingleLine(t *testing.T) {
	b := newTestBuffer(t, 20, 2, "Hello World")
	e := NewEngine(b, Config{})
	got := e.ExtractText(Point{0, 0}, Point{0, 4}, ModeNormal)
	if got != "Hello" {
		t.Errorf("got %q, want %q", got, "Hello")
	}
	got = e.ExtractText(Point{0, 6}, Point{0, 10}, ModeNormal)
	if got != "World" {
		t.Errorf("got %q, want %q", got, "World")
	}
}

func TestEngine_ExtractText_OrderIndependent(t *testing.T) {
	b := newTestBuffer(t, 20, 3, "first line", "second", "third")
	e := NewEngine(b, Config{})
	fwd := e.ExtractTextTrimmed(Point{0, 2}, Point{2, 3}, ModeNormal)
	rev := e.ExtractTextTrimmed(Point{2, 3}, Point{0, 2}, ModeNormal)
	if fwd != rev {
		t.Errorf("order changed result: %q vs %q", fwd, rev)
	}
	if fwd != "rst line\nsecond\nthir" {
		t.Errorf("got %q", fwd)
	}
}

func TestEngine_ExtractText_KeepsTrailingPadding(t *testing.T) {
	b := newTestBuffer(t, 10, 1, "ab")
	e := NewEngine(b, Config{})
	// Cells past the written content are blanks and extract as blanks.
	got := e.ExtractText(Point{0, 0}, Point{0, 5}, ModeNormal)
	if got != "ab    " {
		t.Errorf("got %q, want %q", got, "ab    ")
	}
}

func TestEngine_ExtractTextTrimmed_StripsTrailingBlanks(t *testing.T) {
	b := newTestBuffer(t, 20, 2, "short", "next")
	e := NewEngine(b, Config{})
	got := e.ExtractTextTrimmed(Point{0, 0}, Point{1, 3}, ModeNormal)
	if got != "short\nnext" {
		t.Errorf("got %q", got)
	}
	// The raw form keeps the padding out to the right edge.
	raw := e.ExtractText(Point{0, 0}, Point{1, 3}, ModeNormal)
	if raw != "short               \nnext" {
		t.Errorf("raw = %q", raw)
	}
}

func TestEngine_ExtractText_SnapsWideChars(t *testing.T) {
	b := newTestBuffer(t, 20, 1, "a世b")
	e := NewEngine(b, Config{})
	// 世 occupies cols 1-2. Starting on the continuation cell must still
	// include the whole character.
	got := e.ExtractText(Point{0, 2}, Point{0, 3}, ModeNormal)
	if got != "世b" {
		t.Errorf("got %q, want %q", got, "世b")
	}
	// Ending on the lead cell includes the whole character too.
	got = e.ExtractText(Point{0, 0}, Point{0, 1}, ModeNormal)
	if got != "a世" {
		t.Errorf("got %q, want %q", got, "a世")
	}
}

func TestEngine_ExtractText_EmojiRoundTrip(t *testing.T) {
	family := "\U0001F468‍\U0001F469‍\U0001F466"
	b := newTestBuffer(t, 20, 1, "hi "+family+"!")
	e := NewEngine(b, Config{})
	got := e.ExtractText(Point{0, 0}, Point{0, 5}, ModeNormal)
	if got != "hi "+family+"!" {
		t.Errorf("ZWJ sequence did not round-trip: %q", got)
	}
}

func TestEngine_ExtractText_FlagAtColumns(t *testing.T) {
	b := grid.New(20, 1)
	b.WriteString(0, 0, "err: ", grid.DefaultStyle)
	b.WriteString(0, 5, "\U0001F1EF\U0001F1F5 jp", grid.DefaultStyle)
	e := NewEngine(b, Config{})
	// The flag occupies cols 5-6; grabbing either column yields the pair.
	got := e.ExtractText(Point{0, 6}, Point{0, 6}, ModeNormal)
	if got != "\U0001F1EF\U0001F1F5" {
		t.Errorf("got %q, want the flag pair", got)
	}
}

func TestEngine_ExtractText_WrappedRowsStillJoinWithNewlines(t *testing.T) {
	// The wrap flag drives logical-line expansion, not extraction: every
	// row boundary in a normal-mode selection is a newline.
	b := grid.New(10, 3)
	b.WriteString(0, 0, "long comma", grid.DefaultStyle)
	b.WriteString(1, 0, "nd here", grid.DefaultStyle)
	b.SetWrapped(1, true)
	b.WriteString(2, 0, "prompt", grid.DefaultStyle)
	e := NewEngine(b, Config{})
	got := e.ExtractTextTrimmed(Point{0, 0}, Point{2, 5}, ModeNormal)
	if got != "long comma\nnd here\nprompt" {
		t.Errorf("got %q", got)
	}
}

func TestEngine_ExtractText_BlockMode(t *testing.T) {
	b := newTestBuffer(t, 20, 3, "aaaa bbbb", "cccc dddd", "eeee ffff")
	e := NewEngine(b, Config{})
	// Row slices concatenate with no separator.
	got := e.ExtractText(Point{0, 5}, Point{2, 8}, ModeBlock)
	if got != "bbbbddddffff" {
		t.Errorf("block = %q", got)
	}
	// Corner order must not matter for the rectangle either.
	rev := e.ExtractText(Point{2, 8}, Point{0, 5}, ModeBlock)
	if rev != got {
		t.Errorf("block order changed result: %q vs %q", rev, got)
	}
}

func TestEngine_ExtractTextTrimmed_BlockMode(t *testing.T) {
	b := newTestBuffer(t, 20, 2, "one", "second")
	e := NewEngine(b, Config{})
	// Column slice 0-5 covers padding on the short row; the trimmed form
	// drops it per row before concatenating.
	if got := e.ExtractText(Point{0, 0}, Point{1, 5}, ModeBlock); got != "one   second" {
		t.Errorf("raw block = %q", got)
	}
	if got := e.ExtractTextTrimmed(Point{0, 0}, Point{1, 5}, ModeBlock); got != "onesecond" {
		t.Errorf("trimmed block = %q", got)
	}
}

func TestEngine_ExtractText_Clamps(t *testing.T) {
	b := newTestBuffer(t, 10, 2, "abc")
	e := NewEngine(b, Config{})
	got := e.ExtractTextTrimmed(Point{-5, -5}, Point{99, 99}, ModeNormal)
	if got != "abc\n" {
		t.Errorf("clamped extract = %q", got)
	}
}

// --- Word Selection Tests ---

func TestEngine_WordAt(t *testing.T) {
	b := newTestBuffer(t, 40, 1, "run make test-all now")
	e := NewEngine(b, Config{})
	start, end, ok := e.WordAt(Point{0, 10})
	if !ok {
		t.Fatal("WordAt failed")
	}
	if start.Col != 9 || end.Col != 16 {
		t.Errorf("bounds = %d-%d, want 9-16 (test-all)", start.Col, end.Col)
	}
	if text, _ := e.Word(Point{0, 10}); text != "test-all" {
		t.Errorf("word = %q", text)
	}
}

func TestEngine_WordAt_Separator(t *testing.T) {
	b := newTestBuffer(t, 40, 1, "a=b")
	e := NewEngine(b, Config{})
	start, end, _ := e.WordAt(Point{0, 1})
	if start.Col != 1 || end.Col != 1 {
		t.Errorf("separator selection = %d-%d, want the single cell", start.Col, end.Col)
	}
}

func TestEngine_WordAt_MathAlnum(t *testing.T) {
	// 𝕊𝕖𝕥 is styled letters: one word, not punctuation soup.
	word := "\U0001D54A\U0001D556\U0001D565"
	b := newTestBuffer(t, 40, 1, "x "+word+" y")
	e := NewEngine(b, Config{})
	text, ok := e.Word(Point{0, 3})
	if !ok || text != word {
		t.Errorf("word = %q, want %q", text, word)
	}
}

func TestEngine_WordAt_EndsOnWideChar(t *testing.T) {
	b := newTestBuffer(t, 40, 1, "dir名 x")
	e := NewEngine(b, Config{})
	start, end, _ := e.WordAt(Point{0, 0})
	if start.Col != 0 || end.Col != 4 {
		t.Errorf("bounds = %d-%d, want 0-4 (both cells of 名)", start.Col, end.Col)
	}
}

// --- Line Selection Tests ---

func TestEngine_LogicalLineAt(t *testing.T) {
	b := grid.New(10, 4)
	b.WriteString(0, 0, "before", grid.DefaultStyle)
	b.WriteString(1, 0, "wrapped co", grid.DefaultStyle)
	b.WriteString(2, 0, "mmand", grid.DefaultStyle)
	b.SetWrapped(2, true)
	b.WriteString(3, 0, "after", grid.DefaultStyle)
	e := NewEngine(b, Config{})

	// Click on either fragment selects the whole chain.
	for _, click := range []Point{{1, 3}, {2, 2}} {
		start, end, ok := e.LogicalLineAt(click)
		if !ok {
			t.Fatalf("LogicalLineAt(%v) failed", click)
		}
		if start.Line != 1 || end.Line != 2 {
			t.Errorf("click %v: rows %d-%d, want 1-2", click, start.Line, end.Line)
		}
	}
	if got := e.ExtractTextTrimmed(Point{1, 0}, Point{2, 9}, ModeNormal); got != "wrapped co\nmmand" {
		t.Errorf("logical line text = %q", got)
	}
}

func TestEngine_LineAt(t *testing.T) {
	b := newTestBuffer(t, 10, 2, "one", "two")
	e := NewEngine(b, Config{})
	start, end, ok := e.LineAt(Point{1, 5})
	if !ok || start != (Point{1, 0}) || end != (Point{1, 9}) {
		t.Errorf("LineAt = %v-%v", start, end)
	}
}

// --- GraphemeBounds Tests ---

func TestEngine_GraphemeBounds(t *testing.T) {
	b := newTestBuffer(t, 20, 1, "a世b")
	e := NewEngine(b, Config{})
	for _, col := range []int{1, 2} {
		start, end, ok := e.GraphemeBounds(Point{0, col})
		if !ok || start != 1 || end != 2 {
			t.Errorf("col %d: bounds %d-%d, want 1-2", col, start, end)
		}
	}
	start, end, _ := e.GraphemeBounds(Point{0, 3})
	if start != 3 || end != 3 {
		t.Errorf("narrow bounds %d-%d, want 3-3", start, end)
	}
}

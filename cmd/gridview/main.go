// Copyright © 2026 Texelgrid contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: cmd/gridview/main.go
// Summary: Demo pager: feeds text through the grid core with mouse
// selection and scrollback search.
package main

import (
	"bufio"
	"flag"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/gdamore/tcell/v2"

	"github.com/framegrace/texelgrid/config"
	"github.com/framegrace/texelgrid/grapheme"
	"github.com/framegrace/texelgrid/grid"
	"github.com/framegrace/texelgrid/search"
	"github.com/framegrace/texelgrid/selection"
)

func main() {
	configPath := flag.String("config", "", "path to JSON config")
	flag.Parse()

	cfg := config.New()
	if *configPath != "" {
		loaded, err := config.LoadFile(*configPath)
		if err != nil {
			log.Fatalf("config: %v", err)
		}
		cfg = loaded
	}

	input := os.Stdin
	if flag.NArg() > 0 {
		f, err := os.Open(flag.Arg(0))
		if err != nil {
			log.Fatalf("open: %v", err)
		}
		defer f.Close()
		input = f
	}

	screen, err := tcell.NewScreen()
	if err != nil {
		log.Fatalf("screen: %v", err)
	}
	if err := screen.Init(); err != nil {
		log.Fatalf("screen init: %v", err)
	}
	defer screen.Fini()
	screen.EnableMouse()

	v, err := newViewer(screen, cfg)
	if err != nil {
		screen.Fini()
		log.Fatalf("viewer: %v", err)
	}
	defer v.close()

	v.feed(input)
	v.run()

	screen.Fini()
	if v.lastCopy != "" {
		fmt.Print(v.lastCopy)
	}
}

type viewer struct {
	screen   tcell.Screen
	buf      *grid.Buffer
	machine  *selection.Machine
	index    *search.SQLiteIndex
	amb      bool
	offset   int // lines scrolled back from the bottom
	status   string
	lastCopy string
}

func newViewer(screen tcell.Screen, cfg config.Config) (*viewer, error) {
	w, h := screen.Size()
	opts := cfg.GridOptions()

	var ix *search.SQLiteIndex
	if cfg.SearchEnabled() {
		var err error
		ix, err = search.NewIndexWithConfig(cfg.SearchConfig())
		if err != nil {
			return nil, err
		}
		opts = append(opts, search.BufferHooks(ix)...)
	}

	buf := grid.New(w, h, opts...)
	engine := selection.NewEngine(buf, cfg.SelectionConfig())
	return &viewer{
		screen:  screen,
		buf:     buf,
		machine: selection.NewMachine(engine),
		index:   ix,
		amb:     buf.AmbiguousWide(),
	}, nil
}

func (v *viewer) close() {
	if v.index != nil {
		v.index.Close()
	}
}

// feed writes each input line onto the bottom row, scrolling as it goes and
// wrapping long lines with the wrap flag set so logical-line selection
// works.
func (v *viewer) feed(f *os.File) {
	width := v.buf.Width()
	bottom := v.buf.Height() - 1
	sc := bufio.NewScanner(f)
	sc.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for sc.Scan() {
		col := 0
		for _, cl := range grapheme.Segment(sc.Text(), v.amb) {
			w := cl.Width
			if w < 1 {
				w = 1
			}
			if col+w > width {
				v.buf.Scroll(1)
				v.buf.SetWrapped(bottom, true)
				col = 0
			}
			col = v.buf.WriteString(bottom, col, cl.Text, grid.DefaultStyle)
		}
		v.buf.Scroll(1)
	}
}

// top returns the linear index of the first visible row.
func (v *viewer) top() int {
	t := v.buf.TotalLines() - v.buf.Height() - v.offset
	if t < 0 {
		t = 0
	}
	return t
}

func (v *viewer) run() {
	for {
		v.render()
		switch ev := v.screen.PollEvent().(type) {
		case *tcell.EventResize:
			w, h := v.screen.Size()
			v.buf.Resize(w, h)
			v.screen.Sync()
		case *tcell.EventKey:
			switch {
			case ev.Key() == tcell.KeyEscape && v.machine.Active():
				v.machine.Cancel()
			case ev.Key() == tcell.KeyEscape, ev.Rune() == 'q', ev.Key() == tcell.KeyCtrlC:
				return
			case ev.Key() == tcell.KeyUp:
				v.scrollBy(1)
			case ev.Key() == tcell.KeyDown:
				v.scrollBy(-1)
			case ev.Key() == tcell.KeyPgUp:
				v.scrollBy(v.buf.Height())
			case ev.Key() == tcell.KeyPgDn:
				v.scrollBy(-v.buf.Height())
			case ev.Rune() == '/':
				v.search()
			}
		case *tcell.EventMouse:
			v.mouse(ev)
		}
	}
}

func (v *viewer) scrollBy(n int) {
	limit := v.buf.HistoryLen()
	v.offset += n
	if v.offset < 0 {
		v.offset = 0
	}
	if v.offset > limit {
		v.offset = limit
	}
}

func (v *viewer) mouse(ev *tcell.EventMouse) {
	x, y := ev.Position()
	p := selection.Point{Line: v.top() + y, Col: x}
	switch {
	case ev.Buttons()&tcell.WheelUp != 0:
		v.scrollBy(3)
	case ev.Buttons()&tcell.WheelDown != 0:
		v.scrollBy(-3)
	case ev.Buttons()&tcell.Button1 != 0:
		if v.machine.State() == selection.StateDragging ||
			v.machine.State() == selection.StateMultiClickHeld {
			v.machine.MouseMove(p)
		} else {
			v.machine.MouseDown(p, ev.Modifiers(), time.Now())
		}
	default:
		if text, ok := v.machine.MouseUp(p, time.Now()); ok {
			v.lastCopy = text
			v.status = fmt.Sprintf("copied %d chars", len([]rune(text)))
		}
	}
}

// search prompts for a query on the status line and jumps to the newest
// match in scrollback.
func (v *viewer) search() {
	query := v.prompt("/")
	if query == "" || v.index == nil {
		return
	}
	v.index.Flush()
	results, err := v.index.Search(query, 1)
	if err != nil {
		v.status = fmt.Sprintf("search: %v", err)
		return
	}
	if len(results) == 0 {
		v.status = "no match"
		return
	}
	// Convert the stable global index to today's linear index.
	line := int(results[0].GlobalLine - v.buf.GlobalOffset())
	v.offset = v.buf.TotalLines() - v.buf.Height() - line
	if v.offset < 0 {
		v.offset = 0
	}
	v.status = fmt.Sprintf("match at line %d col %d", results[0].GlobalLine, results[0].Column)
}

func (v *viewer) prompt(prefix string) string {
	input := []rune{}
	for {
		v.status = prefix + string(input)
		v.render()
		ev, ok := v.screen.PollEvent().(*tcell.EventKey)
		if !ok {
			continue
		}
		switch ev.Key() {
		case tcell.KeyEnter:
			v.status = ""
			return string(input)
		case tcell.KeyEscape:
			v.status = ""
			return ""
		case tcell.KeyBackspace, tcell.KeyBackspace2:
			if len(input) > 0 {
				input = input[:len(input)-1]
			}
		default:
			if ev.Rune() != 0 {
				input = append(input, ev.Rune())
			}
		}
	}
}

func (v *viewer) render() {
	v.screen.Clear()
	top := v.top()
	rows := v.buf.Range(top, top+v.buf.Height())
	selStart, selEnd, haveSel := v.machine.Range()
	for y, row := range rows {
		line := top + y
		for x := 0; x < len(row); x++ {
			c := row[x]
			if c.Continuation() {
				continue
			}
			style := c.Style
			if haveSel && inSelection(selStart, selEnd, v.machine.Mode(), line, x) {
				style = style.Reverse(true)
			}
			v.screen.SetContent(x, y, c.Rune, c.Comb, style)
		}
	}
	if v.status != "" {
		w, h := v.screen.Size()
		st := tcell.StyleDefault.Reverse(true)
		for i, r := range []rune(v.status) {
			if i >= w {
				break
			}
			v.screen.SetContent(i, h-1, r, nil, st)
		}
	}
	v.screen.Show()
}

func inSelection(start, end selection.Point, mode selection.Mode, line, col int) bool {
	if line < start.Line || line > end.Line {
		return false
	}
	if mode == selection.ModeBlock {
		lo, hi := start.Col, end.Col
		if hi < lo {
			lo, hi = hi, lo
		}
		return col >= lo && col <= hi
	}
	if line == start.Line && col < start.Col {
		return false
	}
	if line == end.Line && col > end.Col {
		return false
	}
	return true
}

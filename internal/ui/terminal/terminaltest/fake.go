// Package terminaltest provides an in-memory terminal for tests.
package terminaltest

import (
	"errors"
	"io"
	"strings"
	"sync"
	"unicode/utf8"

	"github.com/kk-code-lab/navipage/internal/ui/terminal"
)

type cell struct {
	r  rune
	fg terminal.Color
}

// Fake is a terminal.Terminal backed by a character grid. Line wrapping is
// off, as on the real terminal: writes past the right edge are dropped.
type Fake struct {
	mu sync.Mutex

	rows, cols int
	grid       [][]cell
	col, row   int // 1-indexed cursor
	fg         terminal.Color

	keys      []int
	typeahead []int
	lines     []string

	Raw           bool
	CursorVisible bool
	Restores      int
	Clears        int
	Flushes       int
	Discards      int
	Modes         []string

	Shell    []string
	Commands [][]string

	// OnReadKey runs as each scripted key is delivered.
	OnReadKey func(f *Fake, key int)
	// OnShell runs in place of the shell; it may draw on the fake.
	OnShell func(f *Fake, command string) int
	// OnCommand decides each RunCommand result. Nil means every command
	// fails to start.
	OnCommand func(argv []string) (int, error)

	interrupted bool
}

var _ terminal.Terminal = (*Fake)(nil)

// New returns a rows x cols fake in the active mode with keys queued.
func New(rows, cols int, keys ...int) *Fake {
	f := &Fake{Raw: true, CursorVisible: true, fg: terminal.Default}
	f.Resize(rows, cols)
	f.keys = keys
	return f
}

// Keys converts a string to a key script.
func Keys(s string) []int {
	out := make([]int, 0, len(s))
	for i := 0; i < len(s); i++ {
		out = append(out, int(s[i]))
	}
	return out
}

// Resize changes the reported size and clears the grid.
func (f *Fake) Resize(rows, cols int) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.rows, f.cols = rows, cols
	f.grid = make([][]cell, max(rows, 0))
	for i := range f.grid {
		f.grid[i] = blankRow(cols)
	}
	f.col, f.row = 1, 1
}

func blankRow(cols int) []cell {
	row := make([]cell, max(cols, 0))
	for i := range row {
		row[i] = cell{r: ' ', fg: terminal.Default}
	}
	return row
}

// PushKeys appends keys to the script.
func (f *Fake) PushKeys(keys ...int) {
	f.mu.Lock()
	f.keys = append(f.keys, keys...)
	f.mu.Unlock()
}

// PushTypeahead queues keys that were typed ahead of the script. They are
// read first and DiscardInput drops them.
func (f *Fake) PushTypeahead(keys ...int) {
	f.mu.Lock()
	f.typeahead = append(f.typeahead, keys...)
	f.mu.Unlock()
}

// PushLines queues answers for ReadLine.
func (f *Fake) PushLines(lines ...string) {
	f.mu.Lock()
	f.lines = append(f.lines, lines...)
	f.mu.Unlock()
}

// Row returns screen row r (1-indexed) with trailing blanks removed.
func (f *Fake) Row(r int) string {
	f.mu.Lock()
	defer f.mu.Unlock()
	if r < 1 || r > len(f.grid) {
		return ""
	}
	var b strings.Builder
	for _, c := range f.grid[r-1] {
		b.WriteRune(c.r)
	}
	return strings.TrimRight(b.String(), " ")
}

// RowColor returns the foreground of the first cell of row r.
func (f *Fake) RowColor(r int) terminal.Color {
	f.mu.Lock()
	defer f.mu.Unlock()
	if r < 1 || r > len(f.grid) || len(f.grid[r-1]) == 0 {
		return terminal.Default
	}
	return f.grid[r-1][0].fg
}

// Cursor returns the 1-indexed cursor position.
func (f *Fake) Cursor() (col, row int) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.col, f.row
}

func (f *Fake) Rows() int { return f.rows }
func (f *Fake) Cols() int { return f.cols }

func (f *Fake) ClearScreen() {
	f.mu.Lock()
	defer f.mu.Unlock()
	for i := range f.grid {
		f.grid[i] = blankRow(f.cols)
	}
	f.col, f.row = 1, 1
	f.Clears++
}

func (f *Fake) MoveCursor(col, row int) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.col, f.row = max(col, 1), max(row, 1)
}

func (f *Fake) ClearLine() {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.row >= 1 && f.row <= len(f.grid) {
		f.grid[f.row-1] = blankRow(f.cols)
	}
}

func (f *Fake) SetColor(fg Color) {
	f.mu.Lock()
	f.fg = fg
	f.mu.Unlock()
}

func (f *Fake) SetColors(fg, _ Color) { f.SetColor(fg) }
func (f *Fake) ResetColor()           { f.SetColor(terminal.Default) }

func (f *Fake) HideCursor() {
	f.mu.Lock()
	f.CursorVisible = false
	f.mu.Unlock()
}

func (f *Fake) ShowCursor() {
	f.mu.Lock()
	f.CursorVisible = true
	f.mu.Unlock()
}

func (f *Fake) Flush() error {
	f.mu.Lock()
	f.Flushes++
	f.mu.Unlock()
	return nil
}

func (f *Fake) WriteString(s string) (int, error) { return f.Write([]byte(s)) }

// Color is re-exported so helpers read naturally.
type Color = terminal.Color

// Write places text at the cursor. A newline moves to column 1 of the next
// row; the bottom row does not scroll.
func (f *Fake) Write(p []byte) (int, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for s := p; len(s) > 0; {
		r, size := utf8.DecodeRune(s)
		s = s[size:]
		switch r {
		case '\n':
			f.col = 1
			if f.row < f.rows {
				f.row++
			}
		case '\r':
			f.col = 1
		default:
			if f.row >= 1 && f.row <= len(f.grid) && f.col >= 1 && f.col <= f.cols {
				f.grid[f.row-1][f.col-1] = cell{r: r, fg: f.fg}
				f.col++
			}
		}
	}
	return len(p), nil
}

func (f *Fake) EnterRaw() error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.Raw = true
	f.Modes = append(f.Modes, "raw")
	return nil
}

func (f *Fake) LeaveRaw() error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.Raw = false
	f.Modes = append(f.Modes, "cooked")
	return nil
}

func (f *Fake) DiscardInput() error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.typeahead = nil
	f.Discards++
	return nil
}

func (f *Fake) Restore() error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.Raw = false
	f.CursorVisible = true
	f.Restores++
	return nil
}

// ReadKey pops the next typeahead or scripted key. An exhausted script
// reads as io.EOF. A real terminal in cooked mode would not return a single
// key, so reads outside raw mode fail with ErrCookedRead.
func (f *Fake) ReadKey() (int, error) {
	f.mu.Lock()
	if f.interrupted {
		f.interrupted = false
		f.mu.Unlock()
		return 0, terminal.ErrInterrupted
	}
	if !f.Raw {
		f.mu.Unlock()
		return 0, ErrCookedRead
	}
	var k int
	switch {
	case len(f.typeahead) > 0:
		k = f.typeahead[0]
		f.typeahead = f.typeahead[1:]
	case len(f.keys) > 0:
		k = f.keys[0]
		f.keys = f.keys[1:]
	default:
		f.mu.Unlock()
		return 0, io.EOF
	}
	hook := f.OnReadKey
	f.mu.Unlock()

	if hook != nil {
		hook(f, k)
	}
	return k, nil
}

// ReadLine writes prompt and pops the next scripted line. An exhausted
// script reads as ErrCancelled.
func (f *Fake) ReadLine(prompt string) (string, error) {
	_, _ = f.WriteString(prompt)
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.interrupted {
		f.interrupted = false
		return "", terminal.ErrInterrupted
	}
	if len(f.lines) == 0 {
		return "", terminal.ErrCancelled
	}
	line := f.lines[0]
	f.lines = f.lines[1:]
	return line, nil
}

func (f *Fake) RunShell(command string) (int, error) {
	f.mu.Lock()
	f.Shell = append(f.Shell, command)
	hook := f.OnShell
	f.mu.Unlock()
	if hook != nil {
		return hook(f, command), nil
	}
	return 0, nil
}

func (f *Fake) RunCommand(argv ...string) (int, error) {
	f.mu.Lock()
	f.Commands = append(f.Commands, append([]string(nil), argv...))
	hook := f.OnCommand
	f.mu.Unlock()
	if hook != nil {
		return hook(argv)
	}
	return -1, errCommandUnavailable
}

// Interrupt makes the next read return terminal.ErrInterrupted.
func (f *Fake) Interrupt() {
	f.mu.Lock()
	f.interrupted = true
	f.mu.Unlock()
}

var errCommandUnavailable = errors.New("command unavailable")

// ErrCookedRead is returned by ReadKey when the fake is not in raw mode.
var ErrCookedRead = errors.New("key read in cooked mode")

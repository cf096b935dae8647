package render

import (
	"strings"
	"testing"

	statepkg "github.com/kk-code-lab/navipage/internal/state"
	"github.com/kk-code-lab/navipage/internal/ui/terminal"
	"github.com/kk-code-lab/navipage/internal/ui/terminal/terminaltest"
)

func newState(rows int, buffers ...*statepkg.Buffer) *statepkg.AppState {
	return &statepkg.AppState{
		Buffers: statepkg.NewBufferList(buffers),
		Rows:    rows,
	}
}

func TestRenderDrawsLinesAndStatus(t *testing.T) {
	screen := terminaltest.New(24, 80)
	state := newState(24, statepkg.NewBuffer("A", []byte("a\nb\nc\n")))

	if err := NewRenderer(screen).Render(state); err != nil {
		t.Fatalf("Render: %v", err)
	}

	for i, want := range []string{"a", "b", "c", ""} {
		if got := screen.Row(i + 1); got != want {
			t.Fatalf("row %d = %q, want %q", i+1, got, want)
		}
	}
	if got := screen.Row(24); got != "#1/1 A  Press 'i' for help." {
		t.Fatalf("status = %q", got)
	}
	if screen.Flushes == 0 {
		t.Fatal("render must flush")
	}
}

func TestRenderLineNumbers(t *testing.T) {
	screen := terminaltest.New(24, 80)
	state := newState(24, statepkg.NewBuffer("A", []byte("a\nb\nc\n")))
	state.Flags.Numbers = true

	if err := NewRenderer(screen).Render(state); err != nil {
		t.Fatalf("Render: %v", err)
	}
	for i, want := range []string{"  1 a", "  2 b", "  3 c"} {
		if got := screen.Row(i + 1); got != want {
			t.Fatalf("row %d = %q, want %q", i+1, got, want)
		}
	}
}

func TestRenderScrolledWindow(t *testing.T) {
	var content strings.Builder
	for i := 0; i < 100; i++ {
		if i > 0 {
			content.WriteByte('\n')
		}
		content.WriteString(string(rune('0' + i%10)))
	}
	buf := statepkg.NewBuffer("digits", []byte(content.String()))
	buf.ScrollToBottom(10)

	screen := terminaltest.New(10, 40)
	if err := NewRenderer(screen).Render(newState(10, buf)); err != nil {
		t.Fatalf("Render: %v", err)
	}
	if got := screen.Row(9); got != "9" {
		t.Fatalf("last printable row = %q, want the final line", got)
	}
	if col, row := screen.Cursor(); row != 10 || col == 1 {
		t.Fatalf("cursor should end on the status row after the text, got %d,%d", col, row)
	}
	if !strings.HasPrefix(screen.Row(10), "#1/1 digits") {
		t.Fatalf("status = %q", screen.Row(10))
	}
}

func TestRenderClearsRowsBelowShortBuffer(t *testing.T) {
	screen := terminaltest.New(6, 40)
	r := NewRenderer(screen)
	long := statepkg.NewBuffer("long", []byte("1\n2\n3\n4\n5\n"))
	short := statepkg.NewBuffer("short", []byte("x"))
	state := newState(6, long, short)

	if err := r.Render(state); err != nil {
		t.Fatalf("Render: %v", err)
	}
	_ = state.Buffers.Next()
	if err := r.Render(state); err != nil {
		t.Fatalf("Render: %v", err)
	}

	if got := screen.Row(1); got != "x" {
		t.Fatalf("row 1 = %q", got)
	}
	for row := 2; row < 6; row++ {
		if got := screen.Row(row); got != "" {
			t.Fatalf("row %d should be blank, got %q", row, got)
		}
	}
	if !strings.HasPrefix(screen.Row(6), "#2/2 short") {
		t.Fatalf("status = %q", screen.Row(6))
	}
}

func TestStatusIsTruncatedToWidth(t *testing.T) {
	screen := terminaltest.New(5, 12)
	state := newState(5, statepkg.NewBuffer("20210101.txt", []byte("a\n")))

	if err := NewRenderer(screen).Render(state); err != nil {
		t.Fatalf("Render: %v", err)
	}
	if got := screen.Row(5); got != "#1/1 2021010" {
		t.Fatalf("status = %q", got)
	}
}

func TestRenderWithoutPrintableRowsDrawsOnlyStatus(t *testing.T) {
	for _, rows := range []int{-1, 1} {
		screen := terminaltest.New(max(rows, 1), 40)
		state := newState(rows, statepkg.NewBuffer("A", []byte("a\nb\n")))
		if err := NewRenderer(screen).Render(state); err != nil {
			t.Fatalf("Render: %v", err)
		}
		if got := screen.Row(1); !strings.HasPrefix(got, "#1/1 A") {
			t.Fatalf("rows=%d: row 1 = %q, want the status bar", rows, got)
		}
	}
}

func TestStatusPathIsSanitized(t *testing.T) {
	if got := statusPath("bad\x1b[2Jname"); got != "bad?[2Jname" {
		t.Fatalf("statusPath = %q", got)
	}
	if got := statusPath("e\u0301.txt"); got != "\u00e9.txt" {
		t.Fatalf("statusPath should compose, got %q", got)
	}
}

func TestNoticeUsesNoticeColor(t *testing.T) {
	screen := terminaltest.New(5, 60)
	r := NewRenderer(screen)
	if err := r.Notice(5, "Find help online at https://example.invalid."); err != nil {
		t.Fatalf("Notice: %v", err)
	}
	if got := screen.Row(5); got != "Find help online at https://example.invalid." {
		t.Fatalf("notice = %q", got)
	}
	if screen.RowColor(5) != terminal.Yellow {
		t.Fatalf("notice color = %v", screen.RowColor(5))
	}
}

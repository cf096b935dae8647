package render

import (
	"bytes"

	statepkg "github.com/kk-code-lab/navipage/internal/state"
	textutil "github.com/kk-code-lab/navipage/internal/textutil"
	"github.com/kk-code-lab/navipage/internal/ui/terminal"
)

// Renderer paints the current buffer and the status bar.
type Renderer struct {
	screen terminal.Screen
	theme  ColorTheme
}

// NewRenderer creates a new renderer
func NewRenderer(screen terminal.Screen) *Renderer {
	return &Renderer{
		screen: screen,
		theme:  GetColorTheme(),
	}
}

// Render repaints every row from state. Color is reset first because a
// child process may have left attributes behind.
func (r *Renderer) Render(state *statepkg.AppState) error {
	buf := state.CurrentBuffer()
	rows := state.Rows

	r.screen.ResetColor()
	r.screen.MoveCursor(1, 1)

	n := min(buf.VisibleLines(rows), buf.LineCount()-buf.Top())
	for i := 0; i < n; i++ {
		r.drawLine(buf, buf.Top()+i, i+1, rows, state.Flags.Numbers)
	}
	for row := n + 1; row < rows; row++ {
		r.screen.MoveCursor(1, row)
		r.screen.ClearLine()
	}

	r.drawStatus(state)
	return r.screen.Flush()
}

func (r *Renderer) drawLine(buf *statepkg.Buffer, index, row, rows int, numbers bool) {
	r.screen.MoveCursor(1, row)
	r.screen.ClearLine()
	if numbers {
		_, _ = r.screen.WriteString(formatLineNumber(index))
	}
	line := buf.Line(index)
	_, _ = r.screen.Write(line)
	if !bytes.HasSuffix(line, []byte{'\n'}) && row < rows-1 {
		_, _ = r.screen.WriteString("\n")
	}
}

func (r *Renderer) drawStatus(state *statepkg.AppState) {
	r.moveToStatusRow(state.Rows)
	r.screen.ResetColor()
	if r.theme.StatusFg != terminal.Default || r.theme.StatusBg != terminal.Default {
		r.screen.SetColors(r.theme.StatusFg, r.theme.StatusBg)
	}
	r.writeClipped(formatStatus(state))
}

// StatusRow is where the status bar lives for a terminal of rows rows.
func StatusRow(rows int) int {
	return max(rows, 1)
}

func (r *Renderer) moveToStatusRow(rows int) {
	r.screen.MoveCursor(1, StatusRow(rows))
	r.screen.ClearLine()
}

// writeClipped writes text cut to the terminal width so the row never wraps.
func (r *Renderer) writeClipped(text string) {
	_, _ = r.screen.WriteString(textutil.TruncateToWidth(text, r.screen.Cols()))
}

// ClearStatus blanks the status row and leaves the cursor at its start.
func (r *Renderer) ClearStatus(rows int) {
	r.moveToStatusRow(rows)
}

// Prompt clears the status row and writes prompt in the prompt color. The
// color stays active so typed input echoes in it.
func (r *Renderer) Prompt(rows int) {
	r.moveToStatusRow(rows)
	r.screen.SetColor(r.theme.PromptFg)
}

// Notice replaces the status row with msg in the notice color and flushes.
func (r *Renderer) Notice(rows int, msg string) error {
	r.moveToStatusRow(rows)
	r.screen.SetColor(r.theme.NoticeFg)
	r.writeClipped(msg)
	return r.screen.Flush()
}

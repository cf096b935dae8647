package render

import (
	"fmt"

	statepkg "github.com/kk-code-lab/navipage/internal/state"
	textutil "github.com/kk-code-lab/navipage/internal/textutil"
	"golang.org/x/text/unicode/norm"
)

const helpHint = "Press 'i' for help."

// formatStatus builds "#<n>/<total> <path>  Press 'i' for help.".
func formatStatus(state *statepkg.AppState) string {
	list := state.Buffers
	buf := list.Current()
	return fmt.Sprintf("#%d/%d %s  %s", list.Index()+1, list.Len(), statusPath(buf.Path), helpHint)
}

// statusPath makes a file name safe to print on one row: composed form, no
// control characters.
func statusPath(path string) string {
	return textutil.SanitizeTerminalText(norm.NFC.String(path))
}

// formatLineNumber renders the gutter for 0-based line i.
func formatLineNumber(i int) string {
	return fmt.Sprintf("%3d ", i+1)
}

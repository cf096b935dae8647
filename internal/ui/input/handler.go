package input

import (
	statepkg "github.com/kk-code-lab/navipage/internal/state"
	"github.com/kk-code-lab/navipage/internal/ui/terminal"
)

// InputHandler converts raw keys to Actions
type InputHandler struct {
	actionChan chan statepkg.Action
	rows       func() int
}

// NewInputHandler creates a new input handler. rows is consulted when the
// user asks for a refresh.
func NewInputHandler(actionChan chan statepkg.Action, rows func() int) *InputHandler {
	return &InputHandler{
		actionChan: actionChan,
		rows:       rows,
	}
}

// ProcessKey emits the Action bound to key. It returns false once the user
// asked to quit and true otherwise; unbound keys emit nothing.
func (ih *InputHandler) ProcessKey(key int) bool {
	switch key {
	case 'q':
		ih.actionChan <- statepkg.QuitAction{}
		return false

	// Scrolling
	case 'g':
		ih.actionChan <- statepkg.ScrollTopAction{}
	case 'G':
		ih.actionChan <- statepkg.ScrollBottomAction{}
	case 'j', terminal.KeyCtrlE:
		ih.actionChan <- statepkg.ScrollAction{Delta: 1}
	case 'k', terminal.KeyCtrlY:
		ih.actionChan <- statepkg.ScrollAction{Delta: -1}

	// Buffers
	case 'h':
		ih.actionChan <- statepkg.BufferPrevAction{}
	case 'H':
		ih.actionChan <- statepkg.BufferFirstAction{}
	case 'l':
		ih.actionChan <- statepkg.BufferNextAction{}
	case 'L':
		ih.actionChan <- statepkg.BufferLastAction{}

	// View
	case 'N':
		ih.actionChan <- statepkg.ToggleNumbersAction{}
	case 'r':
		rows := -1
		if ih.rows != nil {
			rows = ih.rows()
		}
		ih.actionChan <- statepkg.RefreshAction{Rows: rows}

	case 'i':
		ih.actionChan <- statepkg.HelpAction{}
	case '!':
		ih.actionChan <- statepkg.CommandPromptAction{}
	}
	return true
}

package state

// Action is the base interface for all state mutations
type Action interface{}

// ===== SCROLL ACTIONS =====

type ScrollAction struct {
	Delta int // +1 down (j, ^E), -1 up (k, ^Y)
}
type ScrollTopAction struct{}
type ScrollBottomAction struct{}

// ===== BUFFER ACTIONS =====

type BufferFirstAction struct{}
type BufferLastAction struct{}
type BufferPrevAction struct{}
type BufferNextAction struct{}

// ===== VIEW ACTIONS =====

type ToggleNumbersAction struct{}

// RefreshAction re-reads the terminal size and repaints.
type RefreshAction struct {
	Rows int
}

// ===== APPLICATION ACTIONS =====
// Handled by the application, never by the reducer.

type QuitAction struct{}
type HelpAction struct{}
type CommandPromptAction struct{}

package state

import (
	"errors"
	"fmt"
)

// StateReducer applies viewer actions to an AppState.
type StateReducer struct{}

func NewStateReducer() *StateReducer {
	return &StateReducer{}
}

// Reduce applies action to state. It reports whether the screen must be
// repainted. Rejected moves (past either end of a buffer or of the list)
// change nothing and report false with a nil error.
func (r *StateReducer) Reduce(state *AppState, action Action) (bool, error) {
	if state == nil || state.Buffers == nil || state.Buffers.Len() == 0 {
		return false, errors.New("no buffers loaded")
	}

	buf := state.CurrentBuffer()

	switch a := action.(type) {

	// ===== SCROLL =====

	case ScrollAction:
		return accepted(buf.Scroll(a.Delta, state.Rows))

	case ScrollTopAction:
		if state.Rows < 2 {
			return false, nil
		}
		buf.ScrollToTop()
		return true, nil

	case ScrollBottomAction:
		if state.Rows < 2 {
			return false, nil
		}
		buf.ScrollToBottom(state.Rows)
		return true, nil

	// ===== BUFFERS =====

	case BufferFirstAction:
		return accepted(state.Buffers.First())

	case BufferLastAction:
		return accepted(state.Buffers.Last())

	case BufferPrevAction:
		return accepted(state.Buffers.Prev())

	case BufferNextAction:
		return accepted(state.Buffers.Next())

	// ===== VIEW =====

	case ToggleNumbersAction:
		state.Flags.Numbers = !state.Flags.Numbers
		return true, nil

	case RefreshAction:
		state.Rows = a.Rows
		for i := 0; i < state.Buffers.Len(); i++ {
			state.Buffers.At(i).Clamp(state.Rows)
		}
		return true, nil
	}

	return false, fmt.Errorf("unhandled action %T", action)
}

// accepted turns a navigation result into the reducer's (repaint, error) pair.
func accepted(err error) (bool, error) {
	if err == nil {
		return true, nil
	}
	var rangeErr *RangeError
	if errors.As(err, &rangeErr) {
		return false, nil
	}
	return false, err
}

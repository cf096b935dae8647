package state

import (
	"bytes"
	"testing"
)

func newTestState(rows int, contents ...string) *AppState {
	buffers := make([]*Buffer, len(contents))
	for i, c := range contents {
		buffers[i] = NewBuffer(string(rune('A'+i)), []byte(c))
	}
	return &AppState{
		Buffers: NewBufferList(buffers),
		Rows:    rows,
	}
}

func TestReduceScroll(t *testing.T) {
	state := newTestState(10, string(bytes.Repeat([]byte("x\n"), 20)))
	reducer := NewStateReducer()

	changed, err := reducer.Reduce(state, ScrollAction{Delta: 1})
	if err != nil || !changed {
		t.Fatalf("scroll down: changed=%v err=%v", changed, err)
	}
	if state.CurrentBuffer().Top() != 1 {
		t.Fatalf("top = %d", state.CurrentBuffer().Top())
	}

	changed, err = reducer.Reduce(state, ScrollAction{Delta: -1})
	if err != nil || !changed {
		t.Fatalf("scroll up: changed=%v err=%v", changed, err)
	}

	changed, err = reducer.Reduce(state, ScrollAction{Delta: -1})
	if err != nil || changed {
		t.Fatalf("rejected scroll should be silent: changed=%v err=%v", changed, err)
	}
}

func TestReduceTopBottom(t *testing.T) {
	state := newTestState(10, string(bytes.Repeat([]byte("x\n"), 20)))
	reducer := NewStateReducer()

	if _, err := reducer.Reduce(state, ScrollBottomAction{}); err != nil {
		t.Fatalf("bottom: %v", err)
	}
	if got := state.CurrentBuffer().Top(); got != 11 {
		t.Fatalf("bottom top = %d, want 11", got)
	}
	if _, err := reducer.Reduce(state, ScrollTopAction{}); err != nil {
		t.Fatalf("top: %v", err)
	}
	if got := state.CurrentBuffer().Top(); got != 0 {
		t.Fatalf("top = %d, want 0", got)
	}
}

func TestReduceScrollIgnoredOnTinyTerminal(t *testing.T) {
	state := newTestState(1, string(bytes.Repeat([]byte("x\n"), 20)))
	reducer := NewStateReducer()
	for _, action := range []Action{ScrollAction{Delta: 1}, ScrollTopAction{}, ScrollBottomAction{}} {
		changed, err := reducer.Reduce(state, action)
		if err != nil || changed {
			t.Fatalf("%T on 1-row terminal: changed=%v err=%v", action, changed, err)
		}
	}
}

func TestReduceBufferNavigation(t *testing.T) {
	state := newTestState(24, "a\n", "b\n", "c\n")
	reducer := NewStateReducer()

	steps := []struct {
		action  Action
		want    int
		changed bool
	}{
		{BufferNextAction{}, 1, true},
		{BufferNextAction{}, 2, true},
		{BufferNextAction{}, 2, false},
		{BufferFirstAction{}, 0, true},
		{BufferPrevAction{}, 0, false},
		{BufferLastAction{}, 2, true},
	}
	for i, step := range steps {
		changed, err := reducer.Reduce(state, step.action)
		if err != nil {
			t.Fatalf("step %d: %v", i, err)
		}
		if changed != step.changed || state.Buffers.Index() != step.want {
			t.Fatalf("step %d (%T): changed=%v index=%d, want %v %d",
				i, step.action, changed, state.Buffers.Index(), step.changed, step.want)
		}
	}
}

func TestReduceScrollKeepsPerBufferTop(t *testing.T) {
	state := newTestState(5, string(bytes.Repeat([]byte("x\n"), 20)), "b\n")
	reducer := NewStateReducer()

	_, _ = reducer.Reduce(state, ScrollAction{Delta: 1})
	_, _ = reducer.Reduce(state, ScrollAction{Delta: 1})
	_, _ = reducer.Reduce(state, BufferNextAction{})
	_, _ = reducer.Reduce(state, BufferPrevAction{})
	if got := state.CurrentBuffer().Top(); got != 2 {
		t.Fatalf("top after switching back = %d, want 2", got)
	}
}

func TestReduceToggleNumbers(t *testing.T) {
	state := newTestState(24, "a\n")
	reducer := NewStateReducer()
	for i, want := range []bool{true, false} {
		changed, err := reducer.Reduce(state, ToggleNumbersAction{})
		if err != nil || !changed {
			t.Fatalf("toggle %d: changed=%v err=%v", i, changed, err)
		}
		if state.Flags.Numbers != want {
			t.Fatalf("toggle %d: numbers=%v", i, state.Flags.Numbers)
		}
	}
}

func TestReduceRefreshClampsEveryBuffer(t *testing.T) {
	state := newTestState(5, string(bytes.Repeat([]byte("x\n"), 20)))
	reducer := NewStateReducer()
	_, _ = reducer.Reduce(state, ScrollBottomAction{})

	changed, err := reducer.Reduce(state, RefreshAction{Rows: 30})
	if err != nil || !changed {
		t.Fatalf("refresh: changed=%v err=%v", changed, err)
	}
	if state.Rows != 30 || state.CurrentBuffer().Top() != 0 {
		t.Fatalf("rows=%d top=%d", state.Rows, state.CurrentBuffer().Top())
	}
}

func TestReduceRejectsApplicationActions(t *testing.T) {
	state := newTestState(24, "a\n")
	if _, err := NewStateReducer().Reduce(state, QuitAction{}); err == nil {
		t.Fatalf("QuitAction belongs to the application and should not reduce")
	}
}

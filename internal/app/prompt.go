package app

import (
	"errors"

	"github.com/kk-code-lab/navipage/internal/diag"
	"github.com/kk-code-lab/navipage/internal/ui/terminal"
)

const shellPrompt = "!"

// commandPrompt reads a shell command on the status row and runs it with the
// terminal in its saved mode. The pause afterwards reads one key in the
// active mode; anything typed beyond that key is dropped.
func (app *Application) commandPrompt() {
	rows := app.state.Rows

	app.renderer.ClearStatus(rows)
	app.leaveRaw()

	app.renderer.Prompt(rows)
	line, err := app.term.ReadLine(shellPrompt)
	switch {
	case errors.Is(err, terminal.ErrInterrupted):
		app.handlePendingSignals()
		if app.shouldQuit {
			return
		}
	case err != nil && !errors.Is(err, terminal.ErrCancelled):
		app.log.Warnf("cannot read command: %s", diag.Reason(err))
	case err == nil && line != "":
		app.runShell(line)
	}

	if err := app.term.EnterRaw(); err != nil {
		app.log.Warnf("cannot enter raw mode: %s", diag.Reason(err))
	}
	_ = app.renderer.Notice(rows, app.log.Program()+": press any key to return.")
	if _, ok := app.readKey(); !ok {
		return
	}
	if err := app.term.DiscardInput(); err != nil {
		app.log.Warnf("cannot discard input: %s", diag.Reason(err))
	}

	app.term.HideCursor()
	app.term.ResetColor()
	app.render()
}

func (app *Application) runShell(line string) {
	app.childRunning.Store(true)
	status, err := app.term.RunShell(line)
	app.childRunning.Store(false)
	if err != nil {
		app.log.Warn("cannot run", diag.ErrorSubject(line), err)
		return
	}
	app.log.Debugf("shell exited with status %d", status)
}

// leaveRaw hands the terminal to the line editor or a child.
func (app *Application) leaveRaw() {
	if err := app.term.LeaveRaw(); err != nil {
		app.log.Warnf("cannot leave raw mode: %s", diag.Reason(err))
	}
	app.term.ShowCursor()
	_ = app.term.Flush()
}

// enterRaw takes the terminal back for the viewer.
func (app *Application) enterRaw() {
	if err := app.term.EnterRaw(); err != nil {
		app.log.Warnf("cannot enter raw mode: %s", diag.Reason(err))
	}
	app.term.HideCursor()
	app.term.ResetColor()
}

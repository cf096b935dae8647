package app

import (
	"errors"

	"github.com/kk-code-lab/navipage/internal/diag"
	statepkg "github.com/kk-code-lab/navipage/internal/state"
	"github.com/kk-code-lab/navipage/internal/ui/terminal"
)

// Run draws the first buffer and dispatches keys until the user quits or a
// signal arrives. It returns the process exit code; the caller still owns
// Close.
func (app *Application) Run() int {
	app.state.Rows = app.term.Rows()
	app.state.Cols = app.term.Cols()
	app.dumpDebug()

	app.term.HideCursor()
	app.term.ClearScreen()
	app.render()
	if !app.drawn {
		app.drawn = true
		app.addExitHook(app.printTrailingNewline)
	}

	for !app.shouldQuit {
		key, ok := app.readKey()
		if !ok {
			break
		}
		if !app.input.ProcessKey(key) {
			app.shouldQuit = true
		}
		app.processActions()
	}
	return app.exitCode
}

// readKey blocks for one key, handling any signal that woke it. It reports
// false when the loop must stop.
func (app *Application) readKey() (int, bool) {
	for {
		key, err := app.term.ReadKey()
		if errors.Is(err, terminal.ErrInterrupted) {
			app.handlePendingSignals()
			if app.shouldQuit {
				return 0, false
			}
			continue
		}
		if err != nil {
			app.log.Warnf("cannot read key: %s", diag.Reason(err))
			app.exitCode = 1
			app.shouldQuit = true
			return 0, false
		}
		// A signal may land between the read and this check.
		app.handlePendingSignals()
		if app.shouldQuit {
			return 0, false
		}
		return key, true
	}
}

// processActions drains the actions emitted for the last key.
func (app *Application) processActions() {
	for {
		select {
		case action := <-app.actionCh:
			app.handleAction(action)
		default:
			return
		}
	}
}

func (app *Application) handleAction(action statepkg.Action) {
	switch action.(type) {
	case statepkg.QuitAction:
		app.shouldQuit = true
		return
	case statepkg.HelpAction:
		app.showHelp()
		return
	case statepkg.CommandPromptAction:
		app.commandPrompt()
		return
	}

	repaint, err := app.reducer.Reduce(app.state, action)
	if err != nil {
		app.log.Debugf("%v", err)
		return
	}
	if _, ok := action.(statepkg.RefreshAction); ok {
		app.state.Cols = app.term.Cols()
	}
	if repaint {
		app.render()
	}
}

func (app *Application) render() {
	if err := app.renderer.Render(app.state); err != nil {
		app.log.Debugf("render: %v", err)
	}
}

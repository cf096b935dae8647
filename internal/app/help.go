package app

import (
	"fmt"
	"strings"
)

// showHelp runs each help command until one exits cleanly. When all fail
// the status row points at the online documentation.
func (app *Application) showHelp() {
	shown := false
	for _, argv := range app.cfg.HelpCommands {
		if len(argv) == 0 {
			continue
		}
		if app.runHelpCommand(argv) {
			shown = true
			break
		}
		if app.shouldQuit {
			return
		}
	}

	app.render()
	if !shown {
		msg := fmt.Sprintf("Find help online at %s.", app.cfg.HelpURL)
		_ = app.renderer.Notice(app.state.Rows, msg)
	}
}

func (app *Application) runHelpCommand(argv []string) bool {
	app.term.ClearScreen()
	app.leaveRaw()

	app.childRunning.Store(true)
	status, err := app.term.RunCommand(argv...)
	app.childRunning.Store(false)

	app.enterRaw()
	app.handlePendingSignals()

	if err != nil {
		app.log.Debugf("help: %s: %v", strings.Join(argv, " "), err)
		return false
	}
	app.log.Debugf("help: %s exited with status %d", strings.Join(argv, " "), status)
	return status == 0
}

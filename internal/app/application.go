package app

import (
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"sync"
	"sync/atomic"

	"github.com/kk-code-lab/navipage/internal/diag"
	fsutil "github.com/kk-code-lab/navipage/internal/fs"
	statepkg "github.com/kk-code-lab/navipage/internal/state"
	"github.com/kk-code-lab/navipage/internal/ui/input"
	renderui "github.com/kk-code-lab/navipage/internal/ui/render"
	"github.com/kk-code-lab/navipage/internal/ui/terminal"
)

// Config is everything the viewer needs from the command line and
// environment.
type Config struct {
	ProgramName  string
	Paths        []string
	Flags        statepkg.Flags
	HelpCommands [][]string
	HelpURL      string
	Stderr       io.Writer
}

// Application represents the running app.
type Application struct {
	term     terminal.Terminal
	state    *statepkg.AppState
	reducer  *statepkg.StateReducer
	renderer *renderui.Renderer
	input    *input.InputHandler
	actionCh chan statepkg.Action
	log      *diag.Reporter
	cfg      Config

	sigCh        chan os.Signal
	pending      chan os.Signal
	childRunning atomic.Bool
	watchDone    chan struct{}

	exitHooks  []func()
	closeOnce  sync.Once
	drawn      bool
	shouldQuit bool
	exitCode   int
}

// NewApplication installs signal handling, opens the terminal with open and
// loads every path in cfg. Unreadable files become error buffers; only
// state.ErrOutOfMemory and terminal failures are returned. On error the
// terminal has already been restored.
func NewApplication(cfg Config, open func() (terminal.Terminal, error)) (*Application, error) {
	if len(cfg.Paths) == 0 {
		return nil, errors.New("no files to display")
	}
	if cfg.ProgramName == "" {
		cfg.ProgramName = "navipage"
	}
	if cfg.HelpURL == "" {
		cfg.HelpURL = HelpURL
	}
	if cfg.Stderr == nil {
		cfg.Stderr = os.Stderr
	}

	app := &Application{
		cfg:       cfg,
		log:       diag.NewReporter(cfg.Stderr, cfg.ProgramName, cfg.Flags.Debug),
		reducer:   statepkg.NewStateReducer(),
		actionCh:  make(chan statepkg.Action, 1),
		sigCh:     make(chan os.Signal, 4),
		pending:   make(chan os.Signal, 4),
		watchDone: make(chan struct{}),
	}
	signal.Notify(app.sigCh, append(exitSignals(), contSignals()...)...)

	term, err := open()
	if err != nil {
		app.stopSignals()
		return nil, err
	}
	app.term = term
	app.addExitHook(app.restoreTerminal)
	go app.watchSignals()

	buffers := make([]*statepkg.Buffer, 0, len(cfg.Paths))
	for _, path := range cfg.Paths {
		buf, err := statepkg.LoadBuffer(cfg.ProgramName, path)
		if err != nil {
			app.Close()
			return nil, err
		}
		buffers = append(buffers, buf)
	}

	app.state = &statepkg.AppState{
		Buffers: statepkg.NewBufferList(buffers),
		Flags:   cfg.Flags,
	}
	app.renderer = renderui.NewRenderer(term)
	app.input = input.NewInputHandler(app.actionCh, term.Rows)
	return app, nil
}

// State exposes the viewer state.
func (app *Application) State() *statepkg.AppState {
	return app.state
}

func (app *Application) addExitHook(hook func()) {
	app.exitHooks = append(app.exitHooks, hook)
}

// Close runs the exit hooks in reverse registration order and stops signal
// delivery. Safe to call more than once.
func (app *Application) Close() {
	app.closeOnce.Do(func() {
		for i := len(app.exitHooks) - 1; i >= 0; i-- {
			app.exitHooks[i]()
		}
		app.stopSignals()
	})
}

func (app *Application) restoreTerminal() {
	var err error
	if closer, ok := app.term.(io.Closer); ok {
		err = closer.Close()
	} else {
		err = app.term.Restore()
	}
	if err != nil {
		app.log.Warnf("cannot restore terminal: %s", diag.Reason(err))
	}
}

// printTrailingNewline leaves the shell prompt on a fresh line.
func (app *Application) printTrailingNewline() {
	_, _ = app.term.WriteString("\n")
	_ = app.term.Flush()
}

func (app *Application) stopSignals() {
	signal.Stop(app.sigCh)
	select {
	case <-app.watchDone:
	default:
		close(app.watchDone)
	}
}

// watchSignals forwards signals to the loop and wakes any blocked read.
// Interrupt and quit are left to a running child.
func (app *Application) watchSignals() {
	for {
		select {
		case <-app.watchDone:
			return
		case sig := <-app.sigCh:
			if childSignal(sig) && app.childRunning.Load() {
				continue
			}
			select {
			case app.pending <- sig:
			default:
			}
			app.term.Interrupt()
		}
	}
}

// handlePendingSignals acts on every recorded signal. A continue signal
// reinstalls the active mode and repaints; any other ends the loop.
func (app *Application) handlePendingSignals() {
	for {
		select {
		case sig := <-app.pending:
			if isContSignal(sig) {
				app.resumeAfterStop()
				continue
			}
			app.log.Debugf("caught signal %v", sig)
			app.exitCode = exitCodeForSignal(sig)
			app.shouldQuit = true
		default:
			return
		}
	}
}

func (app *Application) resumeAfterStop() {
	if err := app.term.EnterRaw(); err != nil {
		app.log.Warnf("cannot resume: %s", diag.Reason(err))
		return
	}
	app.term.HideCursor()
	app.render()
}

// dumpDebug writes the -d diagnostics.
func (app *Application) dumpDebug() {
	if !app.log.Debugging() {
		return
	}
	list := app.state.Buffers
	app.log.Debugf("buffers: %d", list.Len())
	for i := 0; i < list.Len(); i++ {
		buf := list.At(i)
		line := fmt.Sprintf("%s: length %d, lines %d", buf.Path, buf.Len(), buf.LineCount())
		if enc := buf.Encoding(); enc != fsutil.EncodingUnknown {
			line += ", encoding " + enc.String()
		}
		if err := buf.LoadErr(); err != nil {
			line += ", error " + diag.Reason(err)
		}
		app.log.Debugf("%s", line)
	}
	app.log.Debugf("rows: %d, cols: %d", app.state.Rows, app.state.Cols)
}

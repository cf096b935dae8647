// Package terminal talks to the controlling terminal: mode switches, cursor
// and color control, key and line input, and handing the tty to children.
package terminal

import (
	"errors"
	"io"

	"github.com/gdamore/tcell/v2"
)

var (
	// ErrUnavailable means the controlling terminal could not be opened or
	// its attributes could not be changed.
	ErrUnavailable = errors.New("terminal unavailable")
	// ErrInterrupted is returned by a blocked read woken by Interrupt.
	ErrInterrupted = errors.New("read interrupted")
	// ErrCancelled is returned by ReadLine when input ends before a line.
	ErrCancelled = errors.New("input cancelled")
)

// Color is a palette entry.
type Color = tcell.Color

const (
	Default = tcell.ColorDefault
	Black   = tcell.ColorBlack
	Red     = tcell.ColorRed
	Green   = tcell.ColorGreen
	Yellow  = tcell.ColorYellow
	Blue    = tcell.ColorBlue
	White   = tcell.ColorWhite
)

// Raw key values that callers match on.
const (
	KeyCtrlC  = 0x03
	KeyCtrlE  = 0x05
	KeyCtrlY  = 0x19
	KeyEscape = 0x1b
)

// Screen is the drawing surface. Rows and columns are 1-indexed.
type Screen interface {
	io.Writer
	io.StringWriter

	Rows() int
	Cols() int
	ClearScreen()
	MoveCursor(col, row int)
	ClearLine()
	SetColor(fg Color)
	SetColors(fg, bg Color)
	ResetColor()
	HideCursor()
	ShowCursor()
	Flush() error
}

// Terminal is the full capability the viewer runs on.
type Terminal interface {
	Screen

	// EnterRaw installs the active mode: no echo, no line buffering.
	EnterRaw() error
	// LeaveRaw reinstalls the saved mode so a line can be typed.
	LeaveRaw() error
	// Restore reinstalls the saved mode and visible defaults. Idempotent.
	Restore() error
	// DiscardInput drops keys typed but not yet read.
	DiscardInput() error

	// ReadKey blocks until one key arrives from the controlling terminal.
	ReadKey() (int, error)
	// ReadLine prints prompt and reads a line without its terminator.
	ReadLine(prompt string) (string, error)
	// RunShell runs command through the user's shell and waits for it.
	RunShell(command string) (int, error)
	// RunCommand runs argv directly and waits for it.
	RunCommand(argv ...string) (int, error)

	// Interrupt wakes a blocked ReadKey or ReadLine with ErrInterrupted.
	// Safe to call from any goroutine.
	Interrupt()
}

//go:build linux || darwin || dragonfly || freebsd || netbsd || openbsd

package terminal

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"
	"strings"
	"sync"

	"github.com/kk-code-lab/navipage/internal/shellsetup"
	"golang.org/x/sys/unix"
	"golang.org/x/term"
)

const ttyPath = "/dev/tty"

var termGetSize = term.GetSize

var _ Terminal = (*TTY)(nil)

// TTY drives the controlling terminal. Output goes to standard output so it
// can be captured; keys and lines are always read from /dev/tty.
type TTY struct {
	tty    *os.File
	out    *os.File
	reader *bufio.Reader
	writer *bufio.Writer
	seq    *sequences

	saved  *term.State
	active *unix.Termios

	cancelR *os.File
	cancelW *os.File

	mu       sync.Mutex
	restored bool
}

// Open opens the controlling terminal, snapshots its mode and installs the
// active mode. termName selects the escape sequences; empty means $TERM.
func Open(termName string) (*TTY, error) {
	if termName == "" {
		termName = os.Getenv("TERM")
	}

	tty, err := os.OpenFile(ttyPath, os.O_RDWR, 0)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	return newTTY(tty, os.Stdout, termName)
}

// newTTY takes ownership of tty and closes it on failure.
func newTTY(tty, out *os.File, termName string) (*TTY, error) {
	fd := int(tty.Fd())

	saved, err := term.GetState(fd)
	if err != nil {
		_ = tty.Close()
		return nil, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	mode, err := unix.IoctlGetTermios(fd, ioctlGetTermios)
	if err != nil {
		_ = tty.Close()
		return nil, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	active := *mode
	active.Lflag &^= unix.ECHO | unix.ICANON
	active.Cc[unix.VMIN] = 1
	active.Cc[unix.VTIME] = 0

	cancelR, cancelW, err := os.Pipe()
	if err != nil {
		_ = tty.Close()
		return nil, err
	}

	t := &TTY{
		tty:     tty,
		out:     out,
		reader:  bufio.NewReader(tty),
		writer:  bufio.NewWriter(out),
		seq:     loadSequences(termName),
		saved:   saved,
		active:  &active,
		cancelR: cancelR,
		cancelW: cancelW,
	}
	if err := t.EnterRaw(); err != nil {
		t.closeFiles()
		return nil, err
	}
	t.writeString(t.seq.noAutoWrap)
	return t, nil
}

// EnterRaw installs the active mode computed when the terminal was opened.
// Whatever a child changed in between is overwritten.
func (t *TTY) EnterRaw() error {
	if err := t.setMode(ioctlSetTermios); err != nil {
		return err
	}
	t.mu.Lock()
	t.restored = false
	t.mu.Unlock()
	return nil
}

// DiscardInput drops typeahead, both what is buffered here and what the
// kernel holds, and leaves the terminal in the active mode.
func (t *TTY) DiscardInput() error {
	_, _ = t.reader.Discard(t.reader.Buffered())
	return t.setMode(ioctlSetTermiosFlush)
}

func (t *TTY) setMode(req uint) error {
	mode := *t.active
	if err := unix.IoctlSetTermios(int(t.tty.Fd()), req, &mode); err != nil {
		return fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	return nil
}

// LeaveRaw reinstalls the saved mode.
func (t *TTY) LeaveRaw() error {
	if err := term.Restore(int(t.tty.Fd()), t.saved); err != nil {
		return fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	return nil
}

// Restore reinstalls the saved mode, shows the cursor, resets attributes and
// turns line wrapping back on. Only the first call after EnterRaw acts.
func (t *TTY) Restore() error {
	t.mu.Lock()
	if t.restored {
		t.mu.Unlock()
		return nil
	}
	t.restored = true
	t.mu.Unlock()

	t.writeString(t.seq.showCursor)
	t.writeString(t.seq.attrOff)
	t.writeString(t.seq.autoWrap)
	flushErr := t.writer.Flush()
	if err := t.LeaveRaw(); err != nil {
		return err
	}
	return flushErr
}

// Close restores the terminal and releases its files.
func (t *TTY) Close() error {
	err := t.Restore()
	t.closeFiles()
	return err
}

func (t *TTY) closeFiles() {
	_ = t.cancelW.Close()
	_ = t.cancelR.Close()
	_ = t.tty.Close()
}

// Rows returns the terminal height, or -1 when it cannot be queried.
func (t *TTY) Rows() int {
	_, rows := t.size()
	return rows
}

// Cols returns the terminal width, or -1 when it cannot be queried.
func (t *TTY) Cols() int {
	cols, _ := t.size()
	return cols
}

func (t *TTY) size() (int, int) {
	for _, f := range []*os.File{t.out, t.tty} {
		cols, rows, err := termGetSize(int(f.Fd()))
		if err == nil && rows > 0 {
			return cols, rows
		}
	}
	return -1, -1
}

func (t *TTY) writeString(s string) {
	_, _ = t.writer.WriteString(s)
}

func (t *TTY) Write(p []byte) (int, error) {
	return t.writer.Write(p)
}

func (t *TTY) WriteString(s string) (int, error) {
	return t.writer.WriteString(s)
}

func (t *TTY) Flush() error {
	return t.writer.Flush()
}

func (t *TTY) ClearScreen()            { t.writeString(t.seq.clear) }
func (t *TTY) MoveCursor(col, row int) { t.writeString(t.seq.moveTo(col, row)) }
func (t *TTY) ClearLine()              { t.writeString(t.seq.clearToLine) }
func (t *TTY) SetColor(fg Color)       { t.writeString(t.seq.color(fg, Default)) }
func (t *TTY) SetColors(fg, bg Color)  { t.writeString(t.seq.color(fg, bg)) }
func (t *TTY) ResetColor()             { t.writeString(t.seq.attrOff) }
func (t *TTY) HideCursor()             { t.writeString(t.seq.hideCursor) }
func (t *TTY) ShowCursor()             { t.writeString(t.seq.showCursor) }

// Interrupt wakes the reader blocked in ReadKey or ReadLine.
func (t *TTY) Interrupt() {
	_, _ = t.cancelW.Write([]byte{1})
}

// ReadKey returns one key. Escape sequences such as arrow keys are consumed
// whole and reported as KeyEscape.
func (t *TTY) ReadKey() (int, error) {
	if err := t.Flush(); err != nil {
		return 0, err
	}
	b, err := t.readByte()
	if err != nil {
		return 0, err
	}
	if b == KeyEscape {
		t.skipEscapeSequence()
	}
	return int(b), nil
}

// skipEscapeSequence drops the rest of a CSI or SS3 sequence that arrived in
// the same read as its ESC.
func (t *TTY) skipEscapeSequence() {
	if t.reader.Buffered() == 0 {
		return
	}
	next, err := t.reader.Peek(1)
	if err != nil || (next[0] != '[' && next[0] != 'O') {
		return
	}
	_, _ = t.reader.ReadByte()
	for t.reader.Buffered() > 0 {
		c, err := t.reader.ReadByte()
		if err != nil || (c >= 0x40 && c <= 0x7e) {
			return
		}
	}
}

// ReadLine prints prompt and reads one line in the terminal's current mode.
// Callers leave raw mode first so the kernel line editor handles echo and
// erase.
func (t *TTY) ReadLine(prompt string) (string, error) {
	t.writeString(prompt)
	if err := t.Flush(); err != nil {
		return "", err
	}

	var line strings.Builder
	for {
		b, err := t.readByte()
		switch {
		case errors.Is(err, io.EOF):
			if line.Len() == 0 {
				return "", ErrCancelled
			}
			return line.String(), nil
		case err != nil:
			return "", err
		case b == '\n':
			return strings.TrimSuffix(line.String(), "\r"), nil
		}
		line.WriteByte(b)
	}
}

// readByte waits for the tty or the cancel pipe, whichever is ready first.
func (t *TTY) readByte() (byte, error) {
	if t.reader.Buffered() > 0 {
		return t.reader.ReadByte()
	}

	ttyFd := int(t.tty.Fd())
	cancelFd := int(t.cancelR.Fd())
	for {
		var readfds unix.FdSet
		readfds.Set(ttyFd)
		readfds.Set(cancelFd)
		n, err := unix.Select(max(ttyFd, cancelFd)+1, &readfds, nil, nil, nil)
		if err == unix.EINTR {
			continue
		}
		if err != nil {
			return 0, err
		}
		if n == 0 {
			continue
		}
		if readfds.IsSet(cancelFd) {
			var drain [1]byte
			_, _ = t.cancelR.Read(drain[:])
			return 0, ErrInterrupted
		}
		if readfds.IsSet(ttyFd) {
			return t.reader.ReadByte()
		}
	}
}

// RunShell runs command through the user's shell with the tty as input.
func (t *TTY) RunShell(command string) (int, error) {
	return t.run(shellsetup.Command(command))
}

// RunCommand runs argv with the tty as input.
func (t *TTY) RunCommand(argv ...string) (int, error) {
	if len(argv) == 0 {
		return -1, errors.New("empty command")
	}
	return t.run(exec.Command(argv[0], argv[1:]...))
}

func (t *TTY) run(cmd *exec.Cmd) (int, error) {
	if err := t.Flush(); err != nil {
		return -1, err
	}
	cmd.Stdin = t.tty
	cmd.Stdout = t.out
	cmd.Stderr = os.Stderr
	if err := cmd.Start(); err != nil {
		return -1, err
	}
	return shellsetup.ExitStatus(cmd.Wait()), nil
}

//go:build !(linux || darwin || dragonfly || freebsd || netbsd || openbsd)

package terminal

// TTY is unavailable on this platform.
type TTY struct {
	Terminal
}

// Open always fails: the viewer needs a POSIX controlling terminal.
func Open(string) (*TTY, error) {
	return nil, ErrUnavailable
}

func (t *TTY) Close() error { return nil }

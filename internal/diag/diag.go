// Package diag formats user-facing diagnostics and the debug dump.
//
// Every message has the shape "<prog>: <action> <subject>: <reason>", where
// reason is the system's description of the underlying condition.
package diag

import (
	"errors"
	"fmt"
	"io"
	"log"
	"os"
	"strings"
)

// Reason returns the innermost system error text for err, so that
// "open /x: no such file or directory" reports as "no such file or directory".
func Reason(err error) string {
	if err == nil {
		return ""
	}
	var pathErr *os.PathError
	if errors.As(err, &pathErr) {
		return Reason(pathErr.Err)
	}
	var linkErr *os.LinkError
	if errors.As(err, &linkErr) {
		return Reason(linkErr.Err)
	}
	var sysErr *os.SyscallError
	if errors.As(err, &sysErr) {
		return Reason(sysErr.Err)
	}
	return err.Error()
}

// Message builds a newline-terminated diagnostic line.
func Message(prog, action, subject string, err error) string {
	var b strings.Builder
	b.WriteString(prog)
	b.WriteString(": ")
	b.WriteString(action)
	if subject != "" {
		b.WriteByte(' ')
		b.WriteString(subject)
	}
	if err != nil {
		b.WriteString(": ")
		b.WriteString(Reason(err))
	}
	b.WriteByte('\n')
	return b.String()
}

// Reporter writes diagnostics for one program invocation.
type Reporter struct {
	prog   string
	logger *log.Logger
	debug  bool
}

// NewReporter returns a Reporter writing to w with the program name as prefix.
func NewReporter(w io.Writer, prog string, debug bool) *Reporter {
	if w == nil {
		w = os.Stderr
	}
	return &Reporter{
		prog:   prog,
		logger: log.New(w, prog+": ", 0),
		debug:  debug,
	}
}

// Program returns the name diagnostics are prefixed with.
func (r *Reporter) Program() string {
	return r.prog
}

// Warn reports a recoverable failure.
func (r *Reporter) Warn(action, subject string, err error) {
	msg := Message(r.prog, action, subject, err)
	r.logger.Print(strings.TrimPrefix(msg, r.prog+": "))
}

// Warnf reports a free-form recoverable condition.
func (r *Reporter) Warnf(format string, args ...any) {
	r.logger.Printf(format, args...)
}

// Debugf writes only when debug output was requested.
func (r *Reporter) Debugf(format string, args ...any) {
	if !r.debug {
		return
	}
	r.logger.Printf("debug: "+format, args...)
}

// Debugging reports whether debug output is enabled.
func (r *Reporter) Debugging() bool {
	return r.debug
}

// Fatal formats err as a startup failure line ready to print.
func (r *Reporter) Fatal(action, subject string, err error) string {
	return Message(r.prog, action, subject, err)
}

// ErrorSubject quotes a path the way discovery warnings do.
func ErrorSubject(path string) string {
	return fmt.Sprintf("'%s'", path)
}

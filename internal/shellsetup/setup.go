// Package shellsetup resolves the user's shell and builds commands that run a
// line of shell text, for the '!' prompt and the NAVIPAGE_SH hook.
package shellsetup

import (
	"os"
	"os/exec"
	"path"
	"runtime"
	"strings"
)

const defaultUnixShell = "/bin/sh"

// Resolve returns the shell executable to use: $SHELL when set, otherwise the
// platform default.
func Resolve() string {
	return resolveInternal(runtime.GOOS, os.Getenv)
}

func resolveInternal(goos string, getenv func(string) string) string {
	if shell := strings.TrimSpace(getenv("SHELL")); shell != "" {
		return extractExecutable(shell)
	}
	if strings.EqualFold(goos, "windows") {
		if comspec := strings.TrimSpace(getenv("COMSPEC")); comspec != "" {
			return extractExecutable(comspec)
		}
		return "cmd.exe"
	}
	return defaultUnixShell
}

// Args returns argv that makes shell execute line.
func Args(shell, line string) []string {
	switch canonicalShellName(normalizeShellName(shell)) {
	case "pwsh":
		return []string{shell, "-NoProfile", "-Command", line}
	case "cmd":
		return []string{shell, "/C", line}
	default:
		return []string{shell, "-c", line}
	}
}

// Command builds an *exec.Cmd running line through the resolved shell. The
// caller wires stdio.
func Command(line string) *exec.Cmd {
	args := Args(Resolve(), line)
	return exec.Command(args[0], args[1:]...)
}

// ExitStatus extracts the child's exit status from the error returned by
// (*exec.Cmd).Run: 0 on success, the child's code on exit, -1 when the
// child could not be started or was killed.
func ExitStatus(err error) int {
	if err == nil {
		return 0
	}
	if exitErr, ok := err.(*exec.ExitError); ok {
		return exitErr.ExitCode()
	}
	return -1
}

func canonicalShellName(name string) string {
	switch name {
	case "powershell":
		return "pwsh"
	default:
		return name
	}
}

func normalizeShellName(value string) string {
	value = strings.TrimSpace(value)
	if value == "" {
		return ""
	}

	value = extractExecutable(value)
	if value == "" {
		return ""
	}

	value = strings.Trim(value, `"'`)
	value = strings.ReplaceAll(value, "\\", "/")
	base := path.Base(value)
	base = strings.ToLower(base)
	base = strings.TrimSuffix(base, ".exe")
	return strings.TrimSpace(base)
}

func extractExecutable(value string) string {
	value = strings.TrimSpace(value)
	if value == "" {
		return ""
	}

	if strings.HasPrefix(value, "\"") {
		value = value[1:]
		if idx := strings.IndexRune(value, '"'); idx >= 0 {
			return value[:idx]
		}
		return value
	}

	if strings.HasPrefix(value, "'") {
		value = value[1:]
		if idx := strings.IndexRune(value, '\''); idx >= 0 {
			return value[:idx]
		}
		return value
	}

	if idx := strings.IndexAny(value, " \t"); idx >= 0 {
		return value[:idx]
	}

	return value
}

package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/kk-code-lab/navipage/internal/ui/terminal"
	"github.com/kk-code-lab/navipage/internal/ui/terminal/terminaltest"
)

func envMap(values map[string]string) func(string) string {
	return func(key string) string {
		return values[key]
	}
}

func stubTerminal(t *testing.T, fake *terminaltest.Fake) *bool {
	t.Helper()
	opened := false
	original := openTerminal
	t.Cleanup(func() { openTerminal = original })
	openTerminal = func(string) (terminal.Terminal, error) {
		opened = true
		return fake, nil
	}
	return &opened
}

func TestRunWithoutFilesPrintsUsage(t *testing.T) {
	opened := stubTerminal(t, terminaltest.New(24, 80))
	var stdout, stderr bytes.Buffer

	code := run([]string{"navipage"}, &stdout, &stderr, envMap(nil))
	if code == 0 {
		t.Fatal("expected a failure exit code")
	}
	if !strings.HasPrefix(stdout.String(), "Usage: navipage [-dhnrsv] files...") {
		t.Fatalf("stdout = %q", stdout.String())
	}
	if *opened {
		t.Fatal("terminal must not be touched without files")
	}
}

func TestRunHelpAndVersion(t *testing.T) {
	var stdout, stderr bytes.Buffer
	if code := run([]string{"navipage", "-h"}, &stdout, &stderr, envMap(nil)); code != 0 {
		t.Fatalf("-h exit code = %d", code)
	}
	if !strings.Contains(stdout.String(), "-r  Infinitely recurse in directories.") {
		t.Fatalf("usage = %q", stdout.String())
	}

	stdout.Reset()
	original := version
	t.Cleanup(func() { version = original })
	version = "1.2.3"
	if code := run([]string{"navipage", "-v"}, &stdout, &stderr, envMap(nil)); code != 0 {
		t.Fatalf("-v exit code = %d", code)
	}
	if stdout.String() != "navipage 1.2.3\n" {
		t.Fatalf("version = %q", stdout.String())
	}
}

func TestRunInvalidOption(t *testing.T) {
	var stdout, stderr bytes.Buffer
	if code := run([]string{"navipage", "-x"}, &stdout, &stderr, envMap(nil)); code != 1 {
		t.Fatalf("exit code = %d", code)
	}
	if !strings.HasPrefix(stderr.String(), "navipage: invalid option -- 'x'\nUsage: ") {
		t.Fatalf("stderr = %q", stderr.String())
	}
	if stdout.Len() != 0 {
		t.Fatalf("stdout should be empty, got %q", stdout.String())
	}
}

func TestRunUsesNavipageDirNewestFirst(t *testing.T) {
	dir := t.TempDir()
	for _, name := range []string{"20210101.txt", "20211231.txt", "sub/20210615.txt"} {
		path := filepath.Join(dir, name)
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			t.Fatalf("mkdir: %v", err)
		}
		if err := os.WriteFile(path, []byte(name+"\n"), 0o644); err != nil {
			t.Fatalf("write: %v", err)
		}
	}

	fake := terminaltest.New(24, 200, terminaltest.Keys("lq")...)
	stubTerminal(t, fake)
	var stdout, stderr bytes.Buffer

	code := run([]string{"navipage"}, &stdout, &stderr, envMap(map[string]string{"NAVIPAGE_DIR": dir}))
	if code != 0 {
		t.Fatalf("exit code = %d, stderr=%q", code, stderr.String())
	}
	if got := fake.Row(1); got != "sub/20210615.txt" {
		t.Fatalf("second newest file should be on screen, row 1 = %q", got)
	}
	want := "#2/3 " + filepath.Join(dir, "sub", "20210615.txt") + "  Press 'i' for help."
	if got := fake.Row(24); got != want {
		t.Fatalf("status = %q, want %q", got, want)
	}
	if fake.Restores != 1 {
		t.Fatalf("terminal restored %d times", fake.Restores)
	}
}

func TestRunWarnsAboutUnreadablePaths(t *testing.T) {
	stubTerminal(t, terminaltest.New(24, 80))
	missing := filepath.Join(t.TempDir(), "missing")
	var stdout, stderr bytes.Buffer

	if code := run([]string{"navipage", missing}, &stdout, &stderr, envMap(nil)); code != 1 {
		t.Fatalf("exit code = %d", code)
	}
	want := "navipage: cannot stat '" + missing + "': no such file or directory\n"
	if stderr.String() != want {
		t.Fatalf("stderr = %q, want %q", stderr.String(), want)
	}
}

func TestRunReportsTerminalFailure(t *testing.T) {
	original := openTerminal
	t.Cleanup(func() { openTerminal = original })
	openTerminal = func(string) (terminal.Terminal, error) {
		return nil, terminal.ErrUnavailable
	}
	path := filepath.Join(t.TempDir(), "a.txt")
	if err := os.WriteFile(path, []byte("a\n"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	var stdout, stderr bytes.Buffer

	if code := run([]string{"navipage", path}, &stdout, &stderr, envMap(nil)); code != 1 {
		t.Fatalf("exit code = %d", code)
	}
	want := "navipage: cannot open terminal: " + terminal.ErrUnavailable.Error() + "\n"
	if stderr.String() != want {
		t.Fatalf("stderr = %q, want %q", stderr.String(), want)
	}
}

func TestRunStartupScriptBeforeDiscovery(t *testing.T) {
	dir := t.TempDir()
	target := filepath.Join(dir, "20220101.txt")

	fake := terminaltest.New(24, 200, terminaltest.Keys("q")...)
	stubTerminal(t, fake)
	var stdout, stderr bytes.Buffer

	env := envMap(map[string]string{"NAVIPAGE_SH": "echo created > '" + target + "'"})
	code := run([]string{"navipage", "-s", dir}, &stdout, &stderr, env)
	if code != 0 {
		t.Fatalf("exit code = %d, stderr=%q", code, stderr.String())
	}
	if got := fake.Row(1); got != "created" {
		t.Fatalf("file written by NAVIPAGE_SH should be shown, row 1 = %q", got)
	}
}

func TestRunStartupScriptUnset(t *testing.T) {
	stubTerminal(t, terminaltest.New(24, 80))
	var stdout, stderr bytes.Buffer

	run([]string{"navipage", "-s"}, &stdout, &stderr, envMap(nil))
	if !strings.Contains(stderr.String(), "navipage: -s specified but NAVIPAGE_SH is not set") {
		t.Fatalf("stderr = %q", stderr.String())
	}
}

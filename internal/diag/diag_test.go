package diag

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func TestMessageUsesInnermostReason(t *testing.T) {
	missing := filepath.Join(t.TempDir(), "nope.txt")
	_, err := os.Open(missing)
	if err == nil {
		t.Fatalf("expected open error for %s", missing)
	}

	got := Message("navipage", "cannot open", missing, err)
	want := "navipage: cannot open " + missing + ": no such file or directory\n"
	if got != want {
		t.Fatalf("Message() = %q, want %q", got, want)
	}
}

func TestMessageWithoutError(t *testing.T) {
	got := Message("navipage", "-r not specified; omitting directory", "'x'", nil)
	if got != "navipage: -r not specified; omitting directory 'x'\n" {
		t.Fatalf("unexpected message %q", got)
	}
}

func TestReasonPlainError(t *testing.T) {
	if got := Reason(errors.New("boom")); got != "boom" {
		t.Fatalf("Reason() = %q", got)
	}
	if got := Reason(nil); got != "" {
		t.Fatalf("Reason(nil) = %q", got)
	}
}

func TestReporterDebugOnlyWhenEnabled(t *testing.T) {
	var out bytes.Buffer
	quiet := NewReporter(&out, "navipage", false)
	quiet.Debugf("files: %d", 3)
	if out.Len() != 0 {
		t.Fatalf("expected no debug output, got %q", out.String())
	}

	loud := NewReporter(&out, "navipage", true)
	loud.Debugf("files: %d", 3)
	if out.String() != "navipage: debug: files: 3\n" {
		t.Fatalf("unexpected debug output %q", out.String())
	}
}

func TestReporterWarn(t *testing.T) {
	var out bytes.Buffer
	r := NewReporter(&out, "navipage", false)
	r.Warn("cannot stat", ErrorSubject("a b"), errors.New("permission denied"))
	if out.String() != "navipage: cannot stat 'a b': permission denied\n" {
		t.Fatalf("unexpected warning %q", out.String())
	}
}

func TestReporterFatalFormatsWithoutWriting(t *testing.T) {
	var out bytes.Buffer
	r := NewReporter(&out, "navipage", false)

	got := r.Fatal("error:", "out of memory", nil)
	if got != "navipage: error: out of memory\n" {
		t.Fatalf("Fatal() = %q", got)
	}
	if out.Len() != 0 {
		t.Fatalf("Fatal should not write, got %q", out.String())
	}
	if r.Program() != "navipage" {
		t.Fatalf("Program() = %q", r.Program())
	}
}

package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"runtime/debug"

	apppkg "github.com/kk-code-lab/navipage/internal/app"
	"github.com/kk-code-lab/navipage/internal/diag"
	fsutil "github.com/kk-code-lab/navipage/internal/fs"
	"github.com/kk-code-lab/navipage/internal/shellsetup"
	statepkg "github.com/kk-code-lab/navipage/internal/state"
	"github.com/kk-code-lab/navipage/internal/ui/terminal"
)

const programName = "navipage"

// version is overridden at link time with -X main.version=...
var version = ""

var openTerminal = func(termName string) (terminal.Terminal, error) {
	tty, err := terminal.Open(termName)
	if err != nil {
		return nil, err
	}
	return tty, nil
}

func main() {
	os.Exit(run(os.Args, os.Stdout, os.Stderr, os.Getenv))
}

func run(args []string, stdout, stderr io.Writer, getenv func(string) string) int {
	prog := programName
	if len(args) > 0 && args[0] != "" {
		prog = filepath.Base(args[0])
	}
	var rest []string
	if len(args) > 1 {
		rest = args[1:]
	}

	opts, err := parseArgs(rest)
	if err != nil {
		fmt.Fprintf(stderr, "%s: %v\n", prog, err)
		printUsage(stderr, prog, apppkg.HelpURL)
		return 1
	}
	if opts.help {
		printUsage(stdout, prog, apppkg.HelpURL)
		return 0
	}
	if opts.version {
		fmt.Fprintf(stdout, "%s %s\n", programName, buildVersion())
		return 0
	}

	log := diag.NewReporter(stderr, prog, opts.debug)

	if opts.script {
		runStartupScript(getenv("NAVIPAGE_SH"), stdout, stderr, log)
	}

	paths := discoverFiles(opts, getenv, log)
	if len(paths) == 0 {
		printUsage(stdout, prog, apppkg.HelpURL)
		return 1
	}
	fsutil.SortNewestFirst(paths)

	if log.Debugging() {
		log.Debugf("files: %d", len(paths))
		for _, path := range paths {
			log.Debugf("  %s", path)
		}
	}

	cfg := apppkg.Config{
		ProgramName: prog,
		Paths:       paths,
		Flags: statepkg.Flags{
			Debug:       opts.debug,
			Numbers:     opts.numbers,
			RecurseMore: opts.recurse,
			RunScript:   opts.script,
		},
		HelpCommands: apppkg.DefaultHelpCommands(),
		HelpURL:      apppkg.HelpURL,
		Stderr:       stderr,
	}
	application, err := apppkg.NewApplication(cfg, func() (terminal.Terminal, error) {
		return openTerminal(getenv("TERM"))
	})
	if err != nil {
		if errors.Is(err, statepkg.ErrOutOfMemory) {
			fmt.Fprint(stderr, log.Fatal("error:", "out of memory", nil))
		} else {
			fmt.Fprint(stderr, log.Fatal("cannot open", "terminal", err))
		}
		return 1
	}
	defer application.Close()

	return application.Run()
}

// discoverFiles expands the operands, or $NAVIPAGE_DIR when there are none.
func discoverFiles(opts options, getenv func(string) string, log *diag.Reporter) []string {
	warn := func(w fsutil.Warning) {
		log.Warn(w.Action, diag.ErrorSubject(w.Path), w.Err)
	}
	if len(opts.paths) > 0 {
		return fsutil.Discover(opts.paths, fsutil.DiscoverOptions{
			RecurseMore: opts.recurse,
			Warn:        warn,
		})
	}
	if dir := getenv("NAVIPAGE_DIR"); dir != "" {
		return fsutil.DiscoverTree(dir, warn)
	}
	return nil
}

// runStartupScript runs $NAVIPAGE_SH through the shell before any file is
// read. Failures are reported and otherwise ignored.
func runStartupScript(script string, stdout, stderr io.Writer, log *diag.Reporter) {
	if script == "" {
		log.Warnf("-s specified but NAVIPAGE_SH is not set")
		return
	}
	cmd := shellsetup.Command(script)
	cmd.Stdin = os.Stdin
	cmd.Stdout = stdout
	cmd.Stderr = stderr
	err := cmd.Run()
	switch status := shellsetup.ExitStatus(err); {
	case status < 0:
		log.Warn("cannot run", diag.ErrorSubject(script), err)
	case status > 0:
		log.Warnf("NAVIPAGE_SH exited with status %d", status)
	}
}

func buildVersion() string {
	if version != "" {
		return version
	}
	if info, ok := debug.ReadBuildInfo(); ok && info.Main.Version != "" && info.Main.Version != "(devel)" {
		return info.Main.Version
	}
	return "devel"
}

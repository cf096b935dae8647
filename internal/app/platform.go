package app

import (
	"os"
	"os/exec"
	"path/filepath"
	"runtime"
	"strings"
	"unicode"
)

const (
	manualName = "navipage"
	manualFile = "./navipage.1"
	readmeFile = "README.md"

	// HelpURL is shown when no local help could be displayed.
	HelpURL = "https://github.com/kk-code-lab/navipage"
)

// DefaultHelpCommands lists the ways 'i' tries to show help, in order: the
// installed manual, the manual next to the binary's sources, then README.md
// in $PAGER.
func DefaultHelpCommands() [][]string {
	return helpCommandsInternal(runtime.GOOS, os.Getenv, exec.LookPath)
}

func helpCommandsInternal(goos string, getenv func(string) string, lookPath func(string) (string, error)) [][]string {
	pager := detectPagerCommand(goos, getenv("PAGER"), lookPath)
	readme := append(append([]string(nil), pager...), readmeFile)
	return [][]string{
		{"man", manualName},
		{"man", manualFile},
		readme,
	}
}

// parseCommandLine splits a $PAGER-style value into argv, honoring single
// and double quotes.
func parseCommandLine(cmd string) []string {
	cmd = strings.TrimSpace(cmd)
	if cmd == "" {
		return nil
	}

	var args []string
	var current strings.Builder
	inSingle := false
	inDouble := false

	for _, r := range cmd {
		switch r {
		case '\'':
			if inDouble {
				current.WriteRune(r)
			} else {
				inSingle = !inSingle
			}
			continue
		case '"':
			if inSingle {
				current.WriteRune(r)
			} else {
				inDouble = !inDouble
			}
			continue
		default:
			if !inSingle && !inDouble && unicode.IsSpace(r) {
				if current.Len() > 0 {
					args = append(args, current.String())
					current.Reset()
				}
				continue
			}
			current.WriteRune(r)
		}
	}

	if current.Len() > 0 {
		args = append(args, current.String())
	}

	if len(args) > 0 {
		args[0] = expandUserPath(args[0])
	}

	return args
}

func expandUserPath(path string) string {
	if path == "" || path[0] != '~' {
		return path
	}

	if len(path) == 1 {
		if home, err := os.UserHomeDir(); err == nil {
			return home
		}
		return path
	}

	sep := path[1]
	if sep != '/' && sep != '\\' {
		return path
	}

	home, err := os.UserHomeDir()
	if err != nil {
		return path
	}

	return filepath.Join(home, path[2:])
}

func detectPagerCommand(goos string, pagerEnv string, lookPath func(string) (string, error)) []string {
	pagerEnv = strings.TrimSpace(pagerEnv)
	if pagerEnv != "" {
		if args := parseCommandLine(pagerEnv); len(args) > 0 {
			return args
		}
	}
	return defaultPagerCommand(goos, lookPath)
}

func defaultPagerCommand(goos string, lookPath func(string) (string, error)) []string {
	if strings.EqualFold(goos, "windows") {
		candidates := []string{"more.com", "more"}
		if lookPath != nil {
			for _, candidate := range candidates {
				if path, err := lookPath(candidate); err == nil && path != "" {
					return []string{path}
				}
			}
		}
		return []string{"cmd", "/C", "type"}
	}
	if lookPath != nil {
		if _, err := lookPath("less"); err != nil {
			if path, err := lookPath("more"); err == nil && path != "" {
				return []string{path}
			}
		}
	}
	return []string{"less"}
}

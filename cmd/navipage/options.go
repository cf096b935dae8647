package main

import (
	"fmt"
	"io"
)

const usageText = `Usage: %s [-dhnrsv] files...
Options:
    -d  Enable debug output.
    -h  Print this help and exit.
    -n  Show line numbers.
    -r  Infinitely recurse in directories.
    -s  Run $NAVIPAGE_SH before reading files.
    -v  Print version and exit.
Environment:
    NAVIPAGE_DIR  Directory read when no files are given.
    NAVIPAGE_SH   Command run by -s.
For examples, see README.md or %s.
`

type options struct {
	debug   bool
	help    bool
	numbers bool
	recurse bool
	script  bool
	version bool
	paths   []string
}

type optionError struct {
	opt byte
}

func (e *optionError) Error() string {
	return fmt.Sprintf("invalid option -- '%c'", e.opt)
}

// parseArgs reads short options the way getopt(3) does with "dhnrsv":
// clusters are allowed, "--" ends options and so does the first operand.
func parseArgs(args []string) (options, error) {
	var opts options
	i := 0
	for ; i < len(args); i++ {
		arg := args[i]
		if arg == "--" {
			i++
			break
		}
		if len(arg) < 2 || arg[0] != '-' {
			break
		}
		for j := 1; j < len(arg); j++ {
			switch arg[j] {
			case 'd':
				opts.debug = true
			case 'h':
				opts.help = true
			case 'n':
				opts.numbers = true
			case 'r':
				opts.recurse = true
			case 's':
				opts.script = true
			case 'v':
				opts.version = true
			default:
				return opts, &optionError{opt: arg[j]}
			}
		}
	}
	opts.paths = append([]string(nil), args[i:]...)
	return opts, nil
}

func printUsage(w io.Writer, prog, url string) {
	fmt.Fprintf(w, usageText, prog, url)
}

//go:build !windows

package app

import (
	"os"
	"syscall"
)

func exitSignals() []os.Signal {
	return []os.Signal{syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT, syscall.SIGHUP}
}

func contSignals() []os.Signal {
	return []os.Signal{syscall.SIGCONT}
}

// childSignal reports signals the terminal also delivers to a foreground
// child; they belong to the child while it runs.
func childSignal(sig os.Signal) bool {
	return sig == syscall.SIGINT || sig == syscall.SIGQUIT
}

func isContSignal(sig os.Signal) bool {
	return sig == syscall.SIGCONT
}

// exitCodeForSignal: hangup is a failure, everything else a clean quit.
func exitCodeForSignal(sig os.Signal) int {
	if sig == syscall.SIGHUP {
		return 1
	}
	return 0
}

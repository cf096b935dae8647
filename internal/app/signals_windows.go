//go:build windows

package app

import "os"

func exitSignals() []os.Signal {
	return []os.Signal{os.Interrupt}
}

func contSignals() []os.Signal {
	return nil
}

func childSignal(sig os.Signal) bool {
	return sig == os.Interrupt
}

func isContSignal(os.Signal) bool {
	return false
}

func exitCodeForSignal(os.Signal) int {
	return 0
}

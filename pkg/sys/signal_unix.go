//go:build unix

package sys

import (
	"os"
	"os/signal"
	"syscall"
)

func notifySignals() chan os.Signal {
	sigCh := make(chan os.Signal, sigsChanBufferSize)
	signal.Notify(sigCh, syscall.SIGWINCH,
		syscall.SIGINT, syscall.SIGTERM, syscall.SIGHUP)
	return sigCh
}

func stopSignals(ch chan os.Signal) {
	signal.Stop(ch)
}

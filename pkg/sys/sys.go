// Package sys provides the terminal and signal utilities used by the gallery
// app.
package sys

import (
	"os"

	"github.com/mattn/go-isatty"
)

const sigsChanBufferSize = 256

// WinSize is the size of a terminal, in cells and, when the terminal reports
// it, in pixels. Pixel fields are 0 when unknown.
type WinSize struct {
	Rows, Cols       int
	XPixels, YPixels int
}

// NotifySignals returns a channel on which the signals relevant to an
// interactive app get delivered: window size changes and termination requests.
func NotifySignals() chan os.Signal { return notifySignals() }

// StopSignals stops delivery of signals to a channel returned by
// NotifySignals.
func StopSignals(ch chan os.Signal) { stopSignals(ch) }

// SIGWINCH is the window size change signal.
const SIGWINCH = sigWINCH

// GetWinSize queries the size of the terminal referenced by the given file.
func GetWinSize(file *os.File) (WinSize, error) { return getWinSize(file) }

// IsATTY determines whether the given file is a terminal.
func IsATTY(fd uintptr) bool {
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}

package cli

import (
	"fmt"
	"os"
	"sync"

	"github.com/elves/gallery/pkg/cli/term"
	"github.com/elves/gallery/pkg/sys"
	xterm "golang.org/x/term"
)

// TTY is the type the terminal dependency of the app needs to satisfy.
type TTY interface {
	// Setup sets up the terminal for the CLI app.
	//
	// This method returns a restore function that undoes the setup, and any
	// error during setup. It only returns fatal errors that make the terminal
	// unsuitable for later operations.
	//
	// This method should be called before any other method is called.
	Setup() (restore func() error, err error)

	// ReadEvent reads a terminal event.
	ReadEvent() (term.Event, error)
	// CloseReader releases resources allocated for reading terminal events.
	CloseReader()

	// Size returns the height and width of the terminal, in cells.
	Size() (h, w int)
	// ViewportWidth returns the width of the terminal in pixels, or
	// gallery.UnknownWidth if it cannot be determined.
	ViewportWidth() int

	// ResetBuffer resets the current buffer to nil without actuating any redraw.
	ResetBuffer()
	// UpdateBuffer updates the current buffer and draw it to the terminal.
	UpdateBuffer(bufNotes, bufMain *term.Buffer, full bool) error

	// NotifySignals start relaying signals and returns a channel on which
	// signals are delivered.
	NotifySignals() <-chan os.Signal
	// StopSignals stops the relaying of signals. After this function returns,
	// the channel returned by NotifySignals will no longer deliver signals.
	StopSignals()
}

// DefaultCellWidth is the assumed width of a terminal cell in pixels, used
// when the terminal does not report its size in pixels.
const DefaultCellWidth = 8

type aTTY struct {
	in, out   *os.File
	cellWidth int

	rMutex sync.Mutex
	r      term.Reader

	w     term.Writer
	sigCh chan os.Signal
}

// NewTTY returns a new TTY from input and output terminal files. The cell
// width is used to estimate the viewport width when the terminal does not
// report it; a non-positive value means DefaultCellWidth.
func NewTTY(in, out *os.File, cellWidth int) TTY {
	if cellWidth <= 0 {
		cellWidth = DefaultCellWidth
	}
	return &aTTY{in: in, out: out, cellWidth: cellWidth, w: term.NewWriter(out)}
}

func (t *aTTY) Setup() (func() error, error) {
	fd := int(t.in.Fd())
	state, err := xterm.MakeRaw(fd)
	if err != nil {
		return nil, fmt.Errorf("set up raw mode: %w", err)
	}
	restoreRaw := func() error { return xterm.Restore(fd, state) }
	// Raw mode turns off output processing, which the writer relies on.
	if err := sys.EnableOutputProcessing(t.out); err != nil {
		logger.Println("enable output processing:", err)
	}
	r, err := term.NewReader(t.in)
	if err != nil {
		restoreRaw()
		return nil, err
	}
	t.rMutex.Lock()
	t.r = r
	t.rMutex.Unlock()

	t.w.HideCursor()
	return func() error {
		t.w.ShowCursor()
		return restoreRaw()
	}, nil
}

func (t *aTTY) ReadEvent() (term.Event, error) {
	t.rMutex.Lock()
	r := t.r
	t.rMutex.Unlock()
	if r == nil {
		return nil, term.ErrStopped
	}
	return r.ReadEvent()
}

func (t *aTTY) CloseReader() {
	t.rMutex.Lock()
	defer t.rMutex.Unlock()
	if t.r != nil {
		t.r.Close()
	}
	t.r = nil
}

func (t *aTTY) Size() (h, w int) {
	size, err := sys.GetWinSize(t.out)
	if err != nil {
		logger.Println("get window size:", err)
		return 24, 80
	}
	return size.Rows, size.Cols
}

func (t *aTTY) ViewportWidth() int {
	size, err := sys.GetWinSize(t.out)
	if err != nil {
		logger.Println("get window size:", err)
		return viewportWidthOf(sys.WinSize{}, t.cellWidth)
	}
	return viewportWidthOf(size, t.cellWidth)
}

func (t *aTTY) ResetBuffer() {
	t.w.ResetBuffer()
}

func (t *aTTY) UpdateBuffer(bufNotes, bufMain *term.Buffer, full bool) error {
	return t.w.UpdateBuffer(bufNotes, bufMain, full)
}

func (t *aTTY) NotifySignals() <-chan os.Signal {
	t.sigCh = sys.NotifySignals()
	return t.sigCh
}

func (t *aTTY) StopSignals() {
	sys.StopSignals(t.sigCh)
	close(t.sigCh)
	t.sigCh = nil
}

package cli

import (
	"errors"
	"sync"

	"github.com/elves/gallery/pkg/gallery"
	"github.com/elves/gallery/pkg/logutil"
	"github.com/elves/gallery/pkg/sys"
)

var logger = logutil.GetLogger("[cli] ")

// Returns the width of the viewport in pixels. Terminals that do not report
// their size in pixels are assumed to have cells cellWidth pixels wide.
func viewportWidthOf(size sys.WinSize, cellWidth int) int {
	switch {
	case size.XPixels > 0:
		return size.XPixels
	case size.Cols > 0 && cellWidth > 0:
		return size.Cols * cellWidth
	default:
		return gallery.UnknownWidth
	}
}

// ErrWatchActive is returned when acquiring a ViewportWatch that is already
// acquired.
var ErrWatchActive = errors.New("viewport watch already active")

// ViewportWatch is a subscription to the width of the viewport. While
// acquired, it delivers the width to its callback once upon acquisition and
// again after every change reported with Changed.
type ViewportWatch struct {
	measure func() int
	onWidth func(int)

	mutex  sync.Mutex
	active bool
	last   int
}

// NewViewportWatch creates a new ViewportWatch that is not yet acquired.
func NewViewportWatch(measure func() int, onWidth func(int)) *ViewportWatch {
	return &ViewportWatch{measure: measure, onWidth: onWidth, last: gallery.UnknownWidth}
}

// Acquire activates the watch and delivers the current width.
func (w *ViewportWatch) Acquire() error {
	w.mutex.Lock()
	if w.active {
		w.mutex.Unlock()
		return ErrWatchActive
	}
	w.active = true
	w.mutex.Unlock()
	w.deliver()
	return nil
}

// Changed re-measures the viewport and delivers the width. It does nothing
// when the watch is not acquired.
func (w *ViewportWatch) Changed() {
	if w.Active() {
		w.deliver()
	}
}

// Release deactivates the watch. Releasing a watch that is not acquired does
// nothing.
func (w *ViewportWatch) Release() {
	w.mutex.Lock()
	defer w.mutex.Unlock()
	w.active = false
}

// Active returns whether the watch is acquired.
func (w *ViewportWatch) Active() bool {
	w.mutex.Lock()
	defer w.mutex.Unlock()
	return w.active
}

// Last returns the last delivered width, or gallery.UnknownWidth if nothing
// has been delivered.
func (w *ViewportWatch) Last() int {
	w.mutex.Lock()
	defer w.mutex.Unlock()
	return w.last
}

func (w *ViewportWatch) deliver() {
	width := w.measure()
	logger.Println("viewport width", width)
	w.mutex.Lock()
	w.last = width
	w.mutex.Unlock()
	if w.onWidth != nil {
		w.onWidth(width)
	}
}

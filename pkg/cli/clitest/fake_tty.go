package clitest

import (
	"os"
	"reflect"
	"sync"
	"testing"
	"time"

	"github.com/elves/gallery/pkg/cli"
	"github.com/elves/gallery/pkg/cli/term"
	"github.com/elves/gallery/pkg/sys"
	"github.com/elves/gallery/pkg/testutil"
)

// Capacity of the channels of a fake terminal. Tests that produce more events,
// signals or buffer updates than this will block.
const fakeTTYCap = 4096

// Initial size of a fake terminal.
const (
	FakeTTYHeight = 20
	FakeTTYWidth  = 50
	// Initial viewport width in pixels, wide enough for four items.
	FakeTTYViewportWidth = 1200
)

// A cli.TTY that never touches a real terminal. Events and signals are fed
// through channels, and buffer updates are recorded.
type fakeTTY struct {
	setup func() (func() error, error)

	eventMutex  sync.Mutex
	eventCh     chan term.Event
	eventClosed bool

	sigCh chan os.Signal

	bufMutex          sync.RWMutex
	bufCh, notesBufCh chan *term.Buffer
	bufs, notesBufs   []*term.Buffer

	sizeMutex     sync.RWMutex
	height, width int
	viewportWidth int
	measures      int
}

// NewFakeTTY creates a fake terminal of FakeTTYHeight rows and FakeTTYWidth
// columns, with a viewport FakeTTYViewportWidth pixels wide, and a handle for
// controlling it.
func NewFakeTTY() (cli.TTY, TTYCtrl) {
	tty := &fakeTTY{
		eventCh:    make(chan term.Event, fakeTTYCap),
		sigCh:      make(chan os.Signal, fakeTTYCap),
		bufCh:      make(chan *term.Buffer, fakeTTYCap),
		notesBufCh: make(chan *term.Buffer, fakeTTYCap),
		height:     FakeTTYHeight, width: FakeTTYWidth,
		viewportWidth: FakeTTYViewportWidth,
	}
	return tty, TTYCtrl{tty}
}

func (t *fakeTTY) Setup() (func() error, error) {
	if t.setup == nil {
		return func() error { return nil }, nil
	}
	return t.setup()
}

func (t *fakeTTY) Size() (h, w int) {
	t.sizeMutex.RLock()
	defer t.sizeMutex.RUnlock()
	return t.height, t.width
}

func (t *fakeTTY) ViewportWidth() int {
	t.sizeMutex.Lock()
	defer t.sizeMutex.Unlock()
	t.measures++
	return t.viewportWidth
}

func (t *fakeTTY) ReadEvent() (term.Event, error) {
	event, ok := <-t.eventCh
	if !ok {
		return nil, term.ErrStopped
	}
	return event, nil
}

func (t *fakeTTY) CloseReader() {
	t.eventMutex.Lock()
	defer t.eventMutex.Unlock()
	close(t.eventCh)
	t.eventClosed = true
}

// Records a nil buffer.
func (t *fakeTTY) ResetBuffer() {
	t.bufMutex.Lock()
	defer t.bufMutex.Unlock()
	t.bufs = append(t.bufs, nil)
	t.bufCh <- nil
}

func (t *fakeTTY) UpdateBuffer(bufNotes, buf *term.Buffer, _ bool) error {
	t.bufMutex.Lock()
	defer t.bufMutex.Unlock()
	t.notesBufs = append(t.notesBufs, bufNotes)
	t.notesBufCh <- bufNotes
	t.bufs = append(t.bufs, buf)
	t.bufCh <- buf
	return nil
}

func (t *fakeTTY) NotifySignals() <-chan os.Signal { return t.sigCh }

func (t *fakeTTY) StopSignals() { close(t.sigCh) }

// TTYCtrl controls a fake terminal.
type TTYCtrl struct{ *fakeTTY }

// SetSetup sets the return values of the Setup method.
func (t TTYCtrl) SetSetup(restore func() error, err error) {
	t.setup = func() (func() error, error) { return restore, err }
}

// SetSize sets the size in cells.
func (t TTYCtrl) SetSize(h, w int) {
	t.sizeMutex.Lock()
	defer t.sizeMutex.Unlock()
	t.height, t.width = h, w
}

// SetViewportWidth sets the viewport width in pixels.
func (t TTYCtrl) SetViewportWidth(px int) {
	t.sizeMutex.Lock()
	defer t.sizeMutex.Unlock()
	t.viewportWidth = px
}

// Resize emulates the user resizing the terminal window: it sets both the size
// in cells and the viewport width in pixels, and sends SIGWINCH.
func (t TTYCtrl) Resize(h, w, px int) {
	t.sizeMutex.Lock()
	t.height, t.width, t.viewportWidth = h, w, px
	t.sizeMutex.Unlock()
	t.InjectSignal(sys.SIGWINCH)
}

// Measures returns how many times the viewport width has been measured.
func (t TTYCtrl) Measures() int {
	t.sizeMutex.RLock()
	defer t.sizeMutex.RUnlock()
	return t.measures
}

// Inject injects events. Events injected after the reader is closed are
// dropped.
func (t TTYCtrl) Inject(events ...term.Event) {
	t.eventMutex.Lock()
	defer t.eventMutex.Unlock()
	if t.eventClosed {
		return
	}
	for _, event := range events {
		t.eventCh <- event
	}
}

// InjectSignal injects signals.
func (t TTYCtrl) InjectSignal(sigs ...os.Signal) {
	for _, sig := range sigs {
		t.sigCh <- sig
	}
}

// TestBuffer verifies that a buffer will appear within 100ms, and aborts the
// test if it doesn't.
func (t TTYCtrl) TestBuffer(tt *testing.T, b *term.Buffer) {
	tt.Helper()
	if waitBuffer(b, t.bufCh) {
		return
	}
	tt.Logf("wanted buffer not shown:\n%s", b.TTYString())
	for i, buf := range nonNil(t.BufferHistory()) {
		tt.Logf("#%d:\n%s", i, buf.TTYString())
	}
	tt.FailNow()
}

// TestNotesBuffer is like TestBuffer, but for the notes buffer.
func (t TTYCtrl) TestNotesBuffer(tt *testing.T, b *term.Buffer) {
	tt.Helper()
	if waitBuffer(b, t.notesBufCh) {
		return
	}
	tt.Logf("wanted notes buffer not shown:\n%s", b.TTYString())
	for i, buf := range nonNil(t.NotesBufferHistory()) {
		tt.Logf("#%d:\n%s", i, buf.TTYString())
	}
	tt.FailNow()
}

// BufferHistory returns all buffers that have appeared.
func (t TTYCtrl) BufferHistory() []*term.Buffer {
	t.bufMutex.RLock()
	defer t.bufMutex.RUnlock()
	return append([]*term.Buffer(nil), t.bufs...)
}

// LastBuffer returns the last buffer that has appeared, or nil.
func (t TTYCtrl) LastBuffer() *term.Buffer { return last(t.BufferHistory()) }

// NotesBufferHistory returns all notes buffers that have appeared.
func (t TTYCtrl) NotesBufferHistory() []*term.Buffer {
	t.bufMutex.RLock()
	defer t.bufMutex.RUnlock()
	return append([]*term.Buffer(nil), t.notesBufs...)
}

// LastNotesBuffer returns the last notes buffer that has appeared, or nil.
func (t TTYCtrl) LastNotesBuffer() *term.Buffer { return last(t.NotesBufferHistory()) }

func last(bufs []*term.Buffer) *term.Buffer {
	if len(bufs) == 0 {
		return nil
	}
	return bufs[len(bufs)-1]
}

func nonNil(bufs []*term.Buffer) []*term.Buffer {
	var filtered []*term.Buffer
	for _, buf := range bufs {
		if buf != nil {
			filtered = append(filtered, buf)
		}
	}
	return filtered
}

func waitBuffer(want *term.Buffer, ch <-chan *term.Buffer) bool {
	timeout := time.After(testutil.Scaled(100 * time.Millisecond))
	for {
		select {
		case buf := <-ch:
			if reflect.DeepEqual(buf, want) {
				return true
			}
		case <-timeout:
			return false
		}
	}
}

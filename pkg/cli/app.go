// Package cli implements a generic terminal app hosting a single widget.
package cli

import (
	"os"
	"sync"
	"syscall"

	"github.com/elves/gallery/pkg/cli/term"
	"github.com/elves/gallery/pkg/cli/tk"
	"github.com/elves/gallery/pkg/errutil"
	"github.com/elves/gallery/pkg/sys"
	"github.com/elves/gallery/pkg/ui"
)

// App represents a CLI app.
type App interface {
	// Run sets up the terminal and runs an event loop until the app quits. It
	// returns any fatal error, including errors restoring the terminal. This
	// function is not re-entrant.
	Run() error

	// MutateState mutates the state of the app.
	MutateState(f func(*State))
	// CopyState returns a copy of the a state.
	CopyState() State

	// Widget returns the main widget.
	Widget() tk.Widget
	// ViewportWidth returns the width of the viewport in pixels as last
	// measured, or gallery.UnknownWidth if it has not been measured.
	ViewportWidth() int

	// Quit causes the event loop to exit. If this method is called when an
	// event is being handled, the event loop will exit after the handler
	// returns.
	Quit()
	// Do schedules a function to be called on the event loop, followed by a
	// redraw. It is used to deliver results computed on other goroutines.
	Do(f func())

	// Redraw requests a redraw. It never blocks and can be called regardless of
	// whether the App is active or not.
	Redraw()
	// RedrawFull requests a full redraw. It never blocks and can be called
	// regardless of whether the App is active or not.
	RedrawFull()
	// Notify adds a note and requests a redraw.
	Notify(note ui.Text)
}

type app struct {
	loop    *loop
	reqRead chan struct{}
	watch   *ViewportWatch

	TTY            TTY
	MaxHeight      func() int
	Status         func() ui.Text
	GlobalBindings tk.Bindings

	StateMutex sync.RWMutex
	State      State

	widget tk.Widget
}

// State represents mutable state of an App.
type State struct {
	// Notes that have been added since the last redraw.
	Notes []ui.Text
}

// NewApp creates a new App from the given AppSpec.
func NewApp(spec AppSpec) App {
	lp := newLoop()
	a := app{
		loop:           lp,
		TTY:            spec.TTY,
		MaxHeight:      spec.MaxHeight,
		Status:         spec.Status,
		GlobalBindings: spec.GlobalBindings,
		State:          spec.State,
		widget:         spec.Widget,
	}
	if a.TTY == nil {
		a.TTY = NewTTY(os.Stdin, os.Stderr, DefaultCellWidth)
	}
	if a.MaxHeight == nil {
		a.MaxHeight = func() int { return -1 }
	}
	if a.Status == nil {
		a.Status = func() ui.Text { return nil }
	}
	if a.GlobalBindings == nil {
		a.GlobalBindings = tk.DummyBindings{}
	}
	if a.widget == nil {
		a.widget = tk.Empty{}
	}
	onViewport := spec.OnViewport
	if onViewport == nil {
		onViewport = func(int) {}
	}
	a.watch = NewViewportWatch(a.TTY.ViewportWidth, onViewport)
	lp.HandleCb(a.handle)
	lp.RedrawCb(a.redraw)
	return &a
}

func (a *app) MutateState(f func(*State)) {
	a.StateMutex.Lock()
	defer a.StateMutex.Unlock()
	f(&a.State)
}

func (a *app) CopyState() State {
	a.StateMutex.RLock()
	defer a.StateMutex.RUnlock()
	return State{append([]ui.Text(nil), a.State.Notes...)}
}

func (a *app) Widget() tk.Widget { return a.widget }

func (a *app) ViewportWidth() int { return a.watch.Last() }

func (a *app) handle(e event) {
	switch e := e.(type) {
	case os.Signal:
		switch e {
		case syscall.SIGHUP, syscall.SIGINT, syscall.SIGTERM:
			logger.Println("quitting on signal", e)
			a.loop.Return(nil)
		case sys.SIGWINCH:
			a.watch.Changed()
			a.RedrawFull()
		}
	case func():
		e()
	case term.Event:
		switch e := e.(type) {
		case term.FatalErrorEvent:
			a.loop.Return(e.Err)
			return
		case term.NonfatalErrorEvent:
			logger.Println("nonfatal read error:", e.Err)
		default:
			a.handleTermEvent(e)
		}
		if !a.loop.HasReturned() {
			a.reqRead <- struct{}{}
		}
	}
}

func (a *app) handleTermEvent(e term.Event) {
	handled := a.widget.Handle(e)
	if !handled {
		handled = a.GlobalBindings.Handle(a.widget, e)
	}
	if !handled {
		if k, ok := e.(term.KeyEvent); ok {
			a.Notify(ui.T("Unbound key: " + ui.Key(k).String()))
		}
	}
}

func (a *app) redraw(flag redrawFlag) {
	// Get the dimensions available.
	height, width := a.TTY.Size()
	if maxHeight := a.MaxHeight(); maxHeight > 0 && maxHeight < height {
		height = maxHeight
	}

	var notes []ui.Text
	a.MutateState(func(s *State) {
		notes = s.Notes
		s.Notes = nil
	})

	bufNotes := renderNotes(notes, width)
	bufMain := renderApp(a.widget, a.Status(), width, height)
	if flag&finalRedraw != 0 {
		// Insert a newline after the buffer and position the cursor there.
		bufMain.ExtendDown(term.NewBuffer(width), true)
		a.updateBuffer(bufNotes, bufMain, flag&fullRedraw != 0)
		a.TTY.ResetBuffer()
	} else {
		a.updateBuffer(bufNotes, bufMain, flag&fullRedraw != 0)
	}
}

func (a *app) updateBuffer(bufNotes, bufMain *term.Buffer, full bool) {
	if err := a.TTY.UpdateBuffer(bufNotes, bufMain, full); err != nil {
		logger.Println("update buffer:", err)
	}
}

// Renders notes. This does not respect height so that overflow notes end up in
// the scrollback buffer.
func renderNotes(notes []ui.Text, width int) *term.Buffer {
	if len(notes) == 0 {
		return nil
	}
	bb := term.NewBufferBuilder(width)
	for i, note := range notes {
		if i > 0 {
			bb.Newline()
		}
		bb.WriteStyled(note)
	}
	return bb.Buffer()
}

// Renders the main widget, and the status line under it if non-empty. The
// status line takes precedence when the height is too small for both.
func renderApp(w tk.Widget, status ui.Text, width, height int) *term.Buffer {
	if len(status) == 0 {
		return w.Render(width, height)
	}
	bufStatus := term.NewBufferBuilder(width).WriteStyled(status).Buffer()
	bufStatus.TrimToLines(0, 1)
	if height <= 1 {
		return bufStatus
	}
	buf := w.Render(width, height-1)
	buf.ExtendDown(bufStatus, false)
	return buf
}

func (a *app) Run() (err error) {
	restore, err := a.TTY.Setup()
	if err != nil {
		return err
	}
	defer func() { err = errutil.Multi(err, restore()) }()

	if err := a.watch.Acquire(); err != nil {
		return err
	}
	defer a.watch.Release()

	var wg sync.WaitGroup
	defer wg.Wait()

	a.reqRead = make(chan struct{}, 1)
	a.reqRead <- struct{}{}
	defer close(a.reqRead)
	defer a.TTY.CloseReader()
	wg.Add(1)
	go func() {
		defer wg.Done()
		a.relayEvents()
	}()

	sigCh := a.TTY.NotifySignals()
	defer a.TTY.StopSignals()
	wg.Add(1)
	go func() {
		defer wg.Done()
		for sig := range sigCh {
			a.loop.Input(sig)
		}
	}()

	return a.loop.Run()
}

// Reads one event from the terminal each time handle asks for one, until the
// reader is closed or fails fatally.
func (a *app) relayEvents() {
	for range a.reqRead {
		event, err := a.TTY.ReadEvent()
		switch {
		case err == nil:
			a.loop.Input(event)
		case err == term.ErrStopped:
			return
		case term.IsReadErrorRecoverable(err):
			a.loop.Input(term.NonfatalErrorEvent{Err: err})
		default:
			a.loop.Input(term.FatalErrorEvent{Err: err})
			return
		}
	}
}

func (a *app) Quit() {
	a.loop.Return(nil)
}

func (a *app) Do(f func()) {
	a.loop.Input(f)
}

func (a *app) Redraw() {
	a.loop.Redraw(false)
}

func (a *app) RedrawFull() {
	a.loop.Redraw(true)
}

func (a *app) Notify(note ui.Text) {
	a.MutateState(func(s *State) { s.Notes = append(s.Notes, note) })
	a.Redraw()
}

package clitest

import (
	"github.com/elves/gallery/pkg/cli"
	"github.com/elves/gallery/pkg/cli/term"
	"github.com/elves/gallery/pkg/ui"
)

// Fixture is a test fixture suitable for testing an App.
type Fixture struct {
	App   cli.App
	TTY   TTYCtrl
	width int
	errCh <-chan error
}

// Setup sets up a test fixture. It contains an App whose TTY is a fake one,
// and runs the App in a separate goroutine.
func Setup(fns ...func(*cli.AppSpec, TTYCtrl)) *Fixture {
	tty, ttyCtrl := NewFakeTTY()
	spec := cli.AppSpec{}
	for _, fn := range fns {
		fn(&spec, ttyCtrl)
	}
	spec.TTY = tty
	app := cli.NewApp(spec)
	errCh := make(chan error, 1)
	go func() { errCh <- app.Run() }()
	_, width := tty.Size()
	return &Fixture{app, ttyCtrl, width, errCh}
}

// WithSpec takes a function that operates on *cli.AppSpec, and wraps it into a
// form suitable for passing to Setup.
func WithSpec(f func(*cli.AppSpec)) func(*cli.AppSpec, TTYCtrl) {
	return func(spec *cli.AppSpec, _ TTYCtrl) { f(spec) }
}

// WithTTY takes a function that operates on TTYCtrl, and wraps it to a form
// suitable for passing to Setup.
func WithTTY(f func(TTYCtrl)) func(*cli.AppSpec, TTYCtrl) {
	return func(_ *cli.AppSpec, tty TTYCtrl) { f(tty) }
}

// Wait waits for Run to finish, and returns its return value.
func (f *Fixture) Wait() error {
	return <-f.errCh
}

// Stop stops the App and waits for Run to finish.
func (f *Fixture) Stop() {
	f.App.Quit()
	f.Wait()
}

// NewBufferBuilder returns a BufferBuilder as wide as the terminal.
func (f *Fixture) NewBufferBuilder() *term.BufferBuilder {
	return term.NewBufferBuilder(f.width)
}

// Keys returns key events for the given keys.
func Keys(keys ...ui.Key) []term.Event {
	events := make([]term.Event, len(keys))
	for i, k := range keys {
		events[i] = term.KeyEvent(k)
	}
	return events
}

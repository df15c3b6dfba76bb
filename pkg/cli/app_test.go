package cli_test

import (
	"errors"
	"syscall"
	"testing"
	"time"

	. "github.com/elves/gallery/pkg/cli"
	. "github.com/elves/gallery/pkg/cli/clitest"
	"github.com/elves/gallery/pkg/cli/term"
	"github.com/elves/gallery/pkg/cli/tk"
	"github.com/elves/gallery/pkg/gallery"
	"github.com/elves/gallery/pkg/testutil"
	"github.com/elves/gallery/pkg/ui"
)

func bb() *term.BufferBuilder { return term.NewBufferBuilder(FakeTTYWidth) }

func withLabel(s string) func(*AppSpec, TTYCtrl) {
	return WithSpec(func(spec *AppSpec) { spec.Widget = tk.Label{Content: ui.T(s)} })
}

// Lifecycle aspects.

func TestRun_AbortsWhenTTYSetupReturnsError(t *testing.T) {
	ttySetupErr := errors.New("a fake error")
	f := Setup(WithTTY(func(tty TTYCtrl) {
		tty.SetSetup(func() error { return nil }, ttySetupErr)
	}))

	err := f.Wait()

	if err != ttySetupErr {
		t.Errorf("Run returns error %v, want %v", err, ttySetupErr)
	}
}

func TestRun_RestoresTTYBeforeReturning(t *testing.T) {
	restoreCalled := 0
	f := Setup(WithTTY(func(tty TTYCtrl) {
		tty.SetSetup(func() error { restoreCalled++; return nil }, nil)
	}))

	f.Stop()

	if restoreCalled != 1 {
		t.Errorf("Restore callback called %d times, want once", restoreCalled)
	}
}

func TestRun_ReturnsErrorFromRestore(t *testing.T) {
	restoreErr := errors.New("cannot restore")
	f := Setup(WithTTY(func(tty TTYCtrl) {
		tty.SetSetup(func() error { return restoreErr }, nil)
	}))

	f.App.Quit()
	err := f.Wait()

	if !errors.Is(err, restoreErr) {
		t.Errorf("Run returns error %v, want %v", err, restoreErr)
	}
}

func TestRun_ShowsWidgetAndStatusLine(t *testing.T) {
	f := Setup(withLabel("label"), WithSpec(func(spec *AppSpec) {
		spec.Status = func() ui.Text { return ui.T("status", ui.Inverse) }
	}))
	defer f.Stop()

	f.TTY.TestBuffer(t,
		bb().Write("label").Newline().Write("status", ui.Inverse).Buffer())
}

func TestRun_StatusLineTakesPrecedenceWithOneLine(t *testing.T) {
	f := Setup(withLabel("label"), WithSpec(func(spec *AppSpec) {
		spec.Status = func() ui.Text { return ui.T("status") }
		spec.MaxHeight = func() int { return 1 }
	}))
	defer f.Stop()

	f.TTY.TestBuffer(t, bb().Write("status").Buffer())
}

func TestRun_RespectsMaxHeight(t *testing.T) {
	f := Setup(withLabel("1\n2\n3"), WithSpec(func(spec *AppSpec) {
		spec.MaxHeight = func() int { return 2 }
	}))
	defer f.Stop()

	f.TTY.TestBuffer(t, bb().Write("1").Newline().Write("2").Buffer())
}

func TestRun_FinalRedraw(t *testing.T) {
	f := Setup(withLabel("label"))

	// Wait until the stable state.
	f.TTY.TestBuffer(t, bb().Write("label").Buffer())

	f.Stop()

	// Final redraw puts the cursor on a new line.
	f.TTY.TestBuffer(t, bb().Write("label").Newline().SetDotHere().Buffer())
}

// Signals.

func TestRun_QuitsOnTerminatingSignals(t *testing.T) {
	for _, sig := range []syscall.Signal{syscall.SIGHUP, syscall.SIGINT, syscall.SIGTERM} {
		t.Run(sig.String(), func(t *testing.T) {
			f := Setup(withLabel("label"))
			f.TTY.TestBuffer(t, bb().Write("label").Buffer())

			f.TTY.InjectSignal(sig)

			if err := f.Wait(); err != nil {
				t.Errorf("Run returns error %v, want nil", err)
			}
		})
	}
}

func TestRun_MeasuresViewportOnStartAndSIGWINCH(t *testing.T) {
	widthCh := make(chan int, 10)
	f := Setup(WithSpec(func(spec *AppSpec) {
		spec.OnViewport = func(w int) { widthCh <- w }
	}))
	defer f.Stop()

	if w := receive(t, widthCh); w != FakeTTYViewportWidth {
		t.Errorf("got initial width %v, want %v", w, FakeTTYViewportWidth)
	}

	f.TTY.Resize(FakeTTYHeight, FakeTTYWidth, 500)

	if w := receive(t, widthCh); w != 500 {
		t.Errorf("got width %v after SIGWINCH, want 500", w)
	}
	if w := f.App.ViewportWidth(); w != 500 {
		t.Errorf("ViewportWidth -> %v, want 500", w)
	}
	if n := f.TTY.Measures(); n != 2 {
		t.Errorf("viewport measured %v times, want 2", n)
	}
}

func TestRun_RedrawsOnSIGWINCH(t *testing.T) {
	f := Setup(withLabel("1234567890"))
	defer f.Stop()

	f.TTY.TestBuffer(t, bb().Write("1234567890").Buffer())

	f.TTY.Resize(24, 4, 32)

	// Test that the app has redrawn using the new width.
	f.TTY.TestBuffer(t, term.NewBufferBuilder(4).Write("1234567890").Buffer())
}

// Events.

func TestRun_LetsWidgetHandleEvents(t *testing.T) {
	stateCh := make(chan gallery.WindowState, 10)
	var g tk.Gallery[string]
	f := Setup(WithSpec(func(spec *AppSpec) {
		g = tk.NewGallery(tk.GallerySpec[string]{
			Items:    gallery.Present([]string{"A", "B", "C", "D", "E"}),
			OnChange: func(s gallery.WindowState) { stateCh <- s },
		})
		spec.Widget = g
		spec.OnViewport = g.Resize
	}))
	defer f.Stop()

	// The initial items are reported when the widget is created. The initial
	// measurement reports nothing, since the initial amount is also four.
	receive(t, stateCh)
	f.TTY.Inject(term.K(ui.Right))

	want := gallery.WindowState{
		Index: 1, DisplayAmount: gallery.Four, Len: 5, Phase: gallery.Populated}
	if s := receive(t, stateCh); s != want {
		t.Errorf("got state %v, want %v", s, want)
	}
}

func TestRun_UsesGlobalBindingsForUnhandledKeys(t *testing.T) {
	var app App
	f := Setup(WithSpec(func(spec *AppSpec) {
		spec.GlobalBindings = tk.MapBindings{
			term.K('q'): func(tk.Widget) { app.Quit() },
		}
	}))
	app = f.App

	f.TTY.Inject(term.K('q'))

	if err := f.Wait(); err != nil {
		t.Errorf("Run returns error %v, want nil", err)
	}
}

func TestRun_NotifiesUnboundKeys(t *testing.T) {
	f := Setup()
	defer f.Stop()

	f.TTY.Inject(term.K('x'))

	f.TTY.TestNotesBuffer(t, bb().Write("Unbound key: x").Buffer())
}

func TestRun_ReturnsFatalReadErrors(t *testing.T) {
	readErr := errors.New("read error")
	f := Setup()

	f.TTY.Inject(term.FatalErrorEvent{Err: readErr})

	if err := f.Wait(); err != readErr {
		t.Errorf("Run returns error %v, want %v", err, readErr)
	}
}

func TestRun_KeepsRunningOnNonfatalReadErrors(t *testing.T) {
	f := Setup()
	defer f.Stop()

	f.TTY.Inject(term.NonfatalErrorEvent{Err: errors.New("bad sequence")},
		term.K('x'))

	// The key after the error is still handled.
	f.TTY.TestNotesBuffer(t, bb().Write("Unbound key: x").Buffer())
}

// API.

func TestDo_RunsFunctionAndRedraws(t *testing.T) {
	label := &mutableLabel{content: "old"}
	f := Setup(WithSpec(func(spec *AppSpec) { spec.Widget = label }))
	defer f.Stop()

	f.TTY.TestBuffer(t, bb().Write("old").Buffer())

	f.App.Do(func() { label.content = "new" })

	f.TTY.TestBuffer(t, bb().Write("new").Buffer())
}

func TestNotify(t *testing.T) {
	f := Setup()
	defer f.Stop()

	f.App.Do(func() {
		f.App.Notify(ui.T("note"))
		f.App.Notify(ui.T("note 2"))
	})

	f.TTY.TestNotesBuffer(t, bb().Write("note").Newline().Write("note 2").Buffer())
	if notes := f.App.CopyState().Notes; len(notes) != 0 {
		t.Errorf("got notes %v after redraw, want none", notes)
	}
}

func TestWidget_DefaultsToEmpty(t *testing.T) {
	app := NewApp(AppSpec{TTY: fakeTTY()})
	if _, ok := app.Widget().(tk.Empty); !ok {
		t.Errorf("Widget -> %v, want tk.Empty", app.Widget())
	}
	if w := app.ViewportWidth(); w != gallery.UnknownWidth {
		t.Errorf("ViewportWidth before Run -> %v, want %v", w, gallery.UnknownWidth)
	}
}

// Helpers.

func fakeTTY() TTY {
	tty, _ := NewFakeTTY()
	return tty
}

// A label whose content is only touched on the event loop.
type mutableLabel struct{ content string }

func (l *mutableLabel) Render(width, height int) *term.Buffer {
	return tk.Label{Content: ui.T(l.content)}.Render(width, height)
}

func (l *mutableLabel) MaxHeight(width, height int) int { return 1 }

func (l *mutableLabel) Handle(term.Event) bool { return false }

func receive[T any](t *testing.T, ch <-chan T) T {
	t.Helper()
	select {
	case v := <-ch:
		return v
	case <-time.After(testutil.Scaled(time.Second)):
		t.Fatalf("timed out")
		panic("unreachable")
	}
}

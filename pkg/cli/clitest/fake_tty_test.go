package clitest

import (
	"os"
	"reflect"
	"testing"

	"github.com/elves/gallery/pkg/cli/term"
	"github.com/elves/gallery/pkg/sys"
)

func TestFakeTTY_Setup(t *testing.T) {
	tty, ttyCtrl := NewFakeTTY()
	restoreCalled := 0
	ttyCtrl.SetSetup(func() error { restoreCalled++; return nil }, nil)

	restore, err := tty.Setup()
	if err != nil {
		t.Errorf("Setup -> error %v, want nil", err)
	}
	if err := restore(); err != nil {
		t.Errorf("restore -> error %v, want nil", err)
	}
	if restoreCalled != 1 {
		t.Errorf("Setup did not return restore")
	}
}

func TestFakeTTY_Size(t *testing.T) {
	tty, ttyCtrl := NewFakeTTY()
	ttyCtrl.SetSize(20, 30)
	h, w := tty.Size()
	if h != 20 || w != 30 {
		t.Errorf("Size -> (%v, %v), want (20, 30)", h, w)
	}
}

func TestFakeTTY_ViewportWidth(t *testing.T) {
	tty, ttyCtrl := NewFakeTTY()
	if w := tty.ViewportWidth(); w != FakeTTYViewportWidth {
		t.Errorf("ViewportWidth -> %v, want %v", w, FakeTTYViewportWidth)
	}
	ttyCtrl.SetViewportWidth(640)
	if w := tty.ViewportWidth(); w != 640 {
		t.Errorf("ViewportWidth -> %v, want 640", w)
	}
}

func TestFakeTTY_Events(t *testing.T) {
	tty, ttyCtrl := NewFakeTTY()
	ttyCtrl.Inject(term.K('a'), term.K('b'))
	if event, err := tty.ReadEvent(); event != term.K('a') || err != nil {
		t.Errorf("Got (%v, %v), want (%v, nil)", event, err, term.K('a'))
	}
	if event, err := tty.ReadEvent(); event != term.K('b') || err != nil {
		t.Errorf("Got (%v, %v), want (%v, nil)", event, err, term.K('b'))
	}
}

func TestFakeTTY_Signals(t *testing.T) {
	tty, ttyCtrl := NewFakeTTY()
	signals := tty.NotifySignals()
	ttyCtrl.InjectSignal(os.Interrupt, os.Kill)
	signal := <-signals
	if signal != os.Interrupt {
		t.Errorf("Got signal %v, want %v", signal, os.Interrupt)
	}
	signal = <-signals
	if signal != os.Kill {
		t.Errorf("Got signal %v, want %v", signal, os.Kill)
	}
}

func TestFakeTTY_Buffer(t *testing.T) {
	bufNotes1 := term.NewBufferBuilder(10).Write("notes 1").Buffer()
	buf1 := term.NewBufferBuilder(10).Write("buf 1").Buffer()
	bufNotes2 := term.NewBufferBuilder(10).Write("notes 2").Buffer()
	buf2 := term.NewBufferBuilder(10).Write("buf 2").Buffer()
	bufNotes3 := term.NewBufferBuilder(10).Write("notes 3").Buffer()
	buf3 := term.NewBufferBuilder(10).Write("buf 3").Buffer()

	tty, ttyCtrl := NewFakeTTY()

	if ttyCtrl.LastNotesBuffer() != nil {
		t.Errorf("LastNotesBuffer -> %v, want nil", ttyCtrl.LastNotesBuffer())
	}
	if ttyCtrl.LastBuffer() != nil {
		t.Errorf("LastBuffer -> %v, want nil", ttyCtrl.LastBuffer())
	}

	tty.UpdateBuffer(bufNotes1, buf1, true)
	if ttyCtrl.LastNotesBuffer() != bufNotes1 {
		t.Errorf("LastBuffer -> %v, want %v", ttyCtrl.LastNotesBuffer(), bufNotes1)
	}
	if ttyCtrl.LastBuffer() != buf1 {
		t.Errorf("LastBuffer -> %v, want %v", ttyCtrl.LastBuffer(), buf1)
	}
	ttyCtrl.TestBuffer(t, buf1)
	ttyCtrl.TestNotesBuffer(t, bufNotes1)

	tty.UpdateBuffer(bufNotes2, buf2, true)
	if ttyCtrl.LastNotesBuffer() != bufNotes2 {
		t.Errorf("LastBuffer -> %v, want %v", ttyCtrl.LastNotesBuffer(), bufNotes2)
	}
	if ttyCtrl.LastBuffer() != buf2 {
		t.Errorf("LastBuffer -> %v, want %v", ttyCtrl.LastBuffer(), buf2)
	}
	ttyCtrl.TestBuffer(t, buf2)
	ttyCtrl.TestNotesBuffer(t, bufNotes2)

	// Test Test{,Notes}Buffer
	tty.UpdateBuffer(bufNotes3, buf3, true)
	ttyCtrl.TestBuffer(t, buf3)
	ttyCtrl.TestNotesBuffer(t, bufNotes3)
	// Cannot test the failure branch as that will fail the test

	wantBufs := []*term.Buffer{buf1, buf2, buf3}
	wantNotesBufs := []*term.Buffer{bufNotes1, bufNotes2, bufNotes3}
	if !reflect.DeepEqual(ttyCtrl.BufferHistory(), wantBufs) {
		t.Errorf("BufferHistory did not return {buf1, buf2}")
	}
	if !reflect.DeepEqual(ttyCtrl.NotesBufferHistory(), wantNotesBufs) {
		t.Errorf("NotesBufferHistory did not return {bufNotes1, bufNotes2}")
	}
}

func TestFakeTTY_ReadEventAfterCloseReader(t *testing.T) {
	tty, ttyCtrl := NewFakeTTY()
	tty.CloseReader()
	// Injecting after closing is a no-op.
	ttyCtrl.Inject(term.K('a'))
	if _, err := tty.ReadEvent(); err != term.ErrStopped {
		t.Errorf("ReadEvent -> error %v, want %v", err, term.ErrStopped)
	}
}

func TestFakeTTY_Resize(t *testing.T) {
	tty, ttyCtrl := NewFakeTTY()
	signals := tty.NotifySignals()
	ttyCtrl.Resize(10, 40, 320)

	if sig := <-signals; sig != sys.SIGWINCH {
		t.Errorf("Got signal %v, want SIGWINCH", sig)
	}
	if h, w := tty.Size(); h != 10 || w != 40 {
		t.Errorf("Size -> (%v, %v), want (10, 40)", h, w)
	}
	if w := tty.ViewportWidth(); w != 320 {
		t.Errorf("ViewportWidth -> %v, want 320", w)
	}
}

func TestFakeTTY_Measures(t *testing.T) {
	tty, ttyCtrl := NewFakeTTY()
	if n := ttyCtrl.Measures(); n != 0 {
		t.Errorf("Measures -> %v initially, want 0", n)
	}
	tty.ViewportWidth()
	tty.ViewportWidth()
	if n := ttyCtrl.Measures(); n != 2 {
		t.Errorf("Measures -> %v, want 2", n)
	}
}

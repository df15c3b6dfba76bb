package term

import "github.com/elves/gallery/pkg/ui"

// Event represents an event that can be read from the terminal.
type Event interface {
	isEvent()
}

// KeyEvent represents a key press.
type KeyEvent ui.Key

// K constructs a new KeyEvent.
func K(r rune, mods ...ui.Mod) KeyEvent {
	return KeyEvent(ui.K(r, mods...))
}

// FatalErrorEvent represents an error that affects the Reader's ability to
// continue reading events. After sending a FatalErrorEvent, the Reader makes no
// more attempts at continuing to read events and wait for Stop to be called.
type FatalErrorEvent struct{ Err error }

// NonfatalErrorEvent represents an error that can be gradually recovered. After
// sending a NonfatalErrorEvent, the Reader will continue to read events. Note
// that one anamoly in the terminal might cause multiple NonfatalErrorEvent's to
// be sent.
type NonfatalErrorEvent struct{ Err error }

func (KeyEvent) isEvent()           {}
func (FatalErrorEvent) isEvent()    {}
func (NonfatalErrorEvent) isEvent() {}

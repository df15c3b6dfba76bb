package cli

import (
	"github.com/elves/gallery/pkg/cli/tk"
	"github.com/elves/gallery/pkg/ui"
)

// AppSpec specifies the configuration and initial state for an App.
type AppSpec struct {
	// The terminal. Defaults to a TTY on stdin and stderr.
	TTY TTY
	// The main widget. Defaults to an empty widget.
	Widget tk.Widget
	// A function returning the status line shown under the main widget. If nil
	// or if it returns an empty text, no status line is shown.
	Status func() ui.Text
	// A function called with the width of the viewport in pixels, once when
	// the app starts to run and again every time the terminal is resized.
	OnViewport func(widthPx int)
	// Bindings consulted when the main widget does not handle a key.
	GlobalBindings tk.Bindings
	// A function returning the maximum height of the app. A non-positive value
	// means no limit other than the height of the terminal.
	MaxHeight func() int
	// Initial state.
	State State
}

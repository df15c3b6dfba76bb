package viewer

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/elves/gallery/pkg/cli"
	"github.com/elves/gallery/pkg/cli/term"
	"github.com/elves/gallery/pkg/cli/tk"
	"github.com/elves/gallery/pkg/errutil"
	"github.com/elves/gallery/pkg/gallery"
	"github.com/elves/gallery/pkg/prog"
	"github.com/elves/gallery/pkg/source"
	"github.com/elves/gallery/pkg/store"
	"github.com/elves/gallery/pkg/sys"
	"github.com/elves/gallery/pkg/ui"
)

// DefaultDemo is the demo shown when neither a file nor a database is given.
const DefaultDemo = "strings"

// DefaultQuitKeys are the keys that quit the gallery when the config file
// does not name any.
var DefaultQuitKeys = []ui.Key{ui.K('q'), ui.K('C', ui.Ctrl), ui.K('D', ui.Ctrl)}

// ErrNotTerminal is returned when the program is run without a terminal.
var ErrNotTerminal = errors.New("stdin and stderr must be terminals")

// Program shows a gallery in the terminal. The items come from the file
// given as the argument, a bucket of a store, or a demo, in that order of
// preference.
type Program struct {
	// If non-nil, used instead of a terminal on stdin and stderr.
	TTY cli.TTY
}

func (p Program) Run(fds [3]*os.File, f *prog.Flags, args []string) (err error) {
	if len(args) > 1 {
		return prog.BadUsage("at most one file may be given")
	}
	s, err := Resolve(f)
	if err != nil {
		return err
	}
	tty := p.TTY
	if tty == nil {
		if !sys.IsATTY(fds[0].Fd()) || !sys.IsATTY(fds[2].Fd()) {
			return ErrNotTerminal
		}
		tty = cli.NewTTY(fds[0], fds[2], s.CellWidth)
	}

	switch {
	case len(args) == 1:
		file, err := os.Open(args[0])
		if err != nil {
			return err
		}
		defer file.Close()
		return Show(tty, s, source.Lines(file), nil)
	case s.DB != "":
		if s.Bucket == "" {
			return prog.BadUsage("-db requires -bucket")
		}
		st, err := store.NewStore(s.DB)
		if err != nil {
			return err
		}
		defer func() { err = errutil.Multi(err, st.Close()) }()
		return Show(tty, s, source.Store(st, s.Bucket), nil)
	default:
		name := s.Demo
		if name == "" {
			name = DefaultDemo
		}
		d, ok := source.FindDemo(name)
		if !ok {
			return prog.BadUsage(fmt.Sprintf("unknown demo %q, want one of %v",
				name, source.DemoNames()))
		}
		if d.Inset {
			s.Variant = tk.Inset
		}
		return Show(tty, s, d.Source(), d.Render)
	}
}

// Show runs an app showing a gallery of items loaded from src, until the user
// quits. A nil render shows items as they are.
func Show[T any](tty cli.TTY, s Settings, src source.Source[T], render func(T) ui.Text) error {
	keys, err := gallery.ParseKeyFunc[T](s.Keys)
	if err != nil {
		return prog.BadUsage(err.Error())
	}
	g := tk.NewGallery(tk.GallerySpec[T]{
		RenderItem:  render,
		ItemStyling: s.ItemStyling,
		Variant:     s.Variant,
		Keys:        keys,
		LoadingText: placeholder(s.LoadingText),
		EmptyText:   placeholder(s.EmptyText),
		OnChange: func(state gallery.WindowState) {
			logger.Println("window:", state)
		},
	})

	var app cli.App
	quit := func(tk.Widget) { app.Quit() }
	quitKeys := s.QuitKeys
	if len(quitKeys) == 0 {
		quitKeys = DefaultQuitKeys
	}
	bindings := make(tk.MapBindings, len(quitKeys))
	for _, k := range quitKeys {
		bindings[term.KeyEvent(k)] = quit
	}
	app = cli.NewApp(cli.AppSpec{
		TTY:        tty,
		Widget:     g,
		OnViewport: g.Resize,
		Status: func() ui.Text {
			return StatusLine(g.CopyState(), app.ViewportWidth(), s.StatusStyling)
		},
		GlobalBindings: bindings,
	})

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	source.Start(ctx, src,
		func(items gallery.Items[T]) {
			app.Do(func() { g.SetItems(items) })
		},
		func(err error) {
			app.Do(func() {
				app.Notify(ui.T("cannot load items: "+err.Error(), ui.FgRed))
			})
		})

	return app.Run()
}

func placeholder(s string) ui.Text {
	if s == "" {
		return nil
	}
	return ui.T(s)
}

// StatusLine describes the state of a gallery: the 1-based position of the
// first visible item and the number of items, the display amount, and the
// tier of the viewport width. A nil styling defaults to ui.FgBrightBlack.
func StatusLine(s gallery.WindowState, widthPx int, styling ui.Styling) ui.Text {
	if styling == nil {
		styling = ui.FgBrightBlack
	}
	var pos string
	switch s.Phase {
	case gallery.Loading:
		pos = "loading"
	case gallery.Empty:
		pos = "0/0"
	default:
		pos = fmt.Sprintf("%d/%d", s.Index+1, s.Len)
	}
	return ui.T(fmt.Sprintf("%s · %s · %s", pos, s.DisplayAmount, gallery.TierOf(widthPx)),
		styling)
}

package tk

import (
	"fmt"
	"reflect"
	"strings"
	"sync"

	"github.com/elves/gallery/pkg/cli/term"
	"github.com/elves/gallery/pkg/gallery"
	"github.com/elves/gallery/pkg/ui"
	"github.com/elves/gallery/pkg/wcwidth"
)

// Gallery is a horizontally paginated carousel. It shows a window of items
// side by side, as many as the viewport width allows, with controls to move
// the window one item at a time.
type Gallery[T any] interface {
	Widget
	// CopyState returns a copy of the state of the underlying window.
	CopyState() gallery.WindowState
	// Entries returns the visible items paired with their keys.
	Entries() []gallery.Entry[T]
	// SetItems replaces the items. The current position is kept as far as the
	// new list allows.
	SetItems(items gallery.Items[T])
	// Resize reclassifies the viewport from its width in pixels.
	Resize(widthPx int)
	// GoLeft and GoRight move the window by one item, returning whether it has
	// moved.
	GoLeft() bool
	GoRight() bool
	// GoFirst and GoLast move the window to either end, returning whether it
	// has moved.
	GoFirst() bool
	GoLast() bool
}

// GallerySpec specifies the configuration and initial state for Gallery.
type GallerySpec[T any] struct {
	// Key bindings, consulted before the builtin keys.
	Bindings Bindings
	// Initial items. The zero value is an absent list, shown as loading.
	Items gallery.Items[T]
	// A function to render an item. If nil, ui.Text and string items are shown
	// as they are and other items are formatted with fmt.Sprint.
	RenderItem func(T) ui.Text
	// Styling applied on top of rendered items.
	ItemStyling ui.Styling
	// Visual variant.
	Variant Variant
	// Strategy to derive keys of items. A rendered item is reused across
	// renders as long as both its key and the item itself stay the same.
	// Defaults to gallery.NaturalKeys.
	Keys gallery.KeyFunc[T]
	// Placeholders for the loading and empty phases. Default to "Loading..."
	// and "No items to show".
	LoadingText ui.Text
	EmptyText   ui.Text
	// A function called after every change of the window state.
	OnChange func(gallery.WindowState)
}

// Variant is the visual variant of a Gallery.
type Variant int

// Possible values of Variant.
const (
	// Items span the full width.
	Full Variant = iota
	// Items are inset from both sides and framed.
	Inset
)

var variantNames = [...]string{Full: "full", Inset: "inset"}

func (v Variant) String() string {
	if 0 <= v && int(v) < len(variantNames) {
		return variantNames[v]
	}
	return fmt.Sprintf("!(bad variant %d)", int(v))
}

// ParseVariant parses the name of a Variant.
func ParseVariant(s string) (Variant, error) {
	for i, name := range variantNames {
		if s == name {
			return Variant(i), nil
		}
	}
	return Full, fmt.Errorf("unknown variant %q, want one of %v", s, variantNames)
}

type galleryWidget[T any] struct {
	GallerySpec[T]
	window *gallery.Window[T]

	cacheMutex sync.Mutex
	cacheWidth int
	cache      map[string]renderedItem[T]
}

type renderedItem[T any] struct {
	item T
	buf  *term.Buffer
}

// NewGallery creates a new Gallery from the given spec. The viewport width is
// unknown until Resize is called.
func NewGallery[T any](spec GallerySpec[T]) Gallery[T] {
	if spec.Bindings == nil {
		spec.Bindings = DummyBindings{}
	}
	if spec.RenderItem == nil {
		spec.RenderItem = renderItemAsIs[T]
	}
	if spec.Keys == nil {
		spec.Keys = gallery.NaturalKeys[T]
	}
	if spec.LoadingText == nil {
		spec.LoadingText = ui.T("Loading...")
	}
	if spec.EmptyText == nil {
		spec.EmptyText = ui.T("No items to show")
	}
	window := gallery.NewWindow[T]()
	window.OnChange = spec.OnChange
	window.SetItems(spec.Items)
	return &galleryWidget[T]{GallerySpec: spec, window: window}
}

func renderItemAsIs[T any](item T) ui.Text {
	switch item := any(item).(type) {
	case ui.Text:
		return item
	case string:
		return ui.T(item)
	default:
		return ui.T(fmt.Sprint(item))
	}
}

const (
	galleryControlWidth = 2
	galleryColGap       = 2
	galleryInsetMargin  = 2
)

var (
	galleryLeftControl  = ui.T("<", ui.Bold)
	galleryRightControl = ui.T(">", ui.Bold)
	galleryFrameStyling = ui.FgBrightBlack
)

func (w *galleryWidget[T]) Render(width, height int) *term.Buffer {
	v := w.window.View(w.Keys)
	switch v.Phase {
	case gallery.Loading:
		return Label{Content: w.LoadingText}.Render(width, height)
	case gallery.Empty:
		return Label{Content: w.EmptyText}.Render(width, height)
	}

	margin := 0
	if w.Variant == Inset {
		margin = galleryInsetMargin
	}
	// Both are 0 when the width is too small for the layout, which is then
	// cropped.
	innerWidth := max(width-2*margin, 0)
	contentWidth := max(innerWidth-2*galleryControlWidth, 0)
	n := int(v.DisplayAmount)
	colWidth := max((contentWidth-galleryColGap*(n-1))/n, 1)

	showScrollbar := (v.CanGoLeft || v.CanGoRight) && contentWidth > 0
	contentHeight := height
	if showScrollbar {
		contentHeight--
	}
	if w.Variant == Inset {
		contentHeight -= 2
	}
	contentHeight = max(contentHeight, 1)

	cols := w.renderEntries(v.Entries, colWidth, contentHeight)
	rows := 1
	for _, col := range cols {
		rows = max(rows, len(col.Lines))
	}

	buf := controlColumn(v.CanGoLeft, galleryLeftControl, rows, false)
	for i, col := range cols {
		if i > 0 {
			buf.Width += galleryColGap
		}
		buf.ExtendRight(col, false)
	}
	buf.Width = galleryControlWidth + contentWidth
	buf.ExtendRight(controlColumn(v.CanGoRight, galleryRightControl, rows, true), false)

	if showScrollbar {
		scrollbar := HScrollbar{Total: v.Len, Low: v.Index, High: v.Index + len(v.Entries)}
		line := term.NewBuffer(galleryControlWidth)
		line.ExtendRight(scrollbar.Render(contentWidth, 1), false)
		buf.ExtendDown(line, false)
	}

	if margin > 0 {
		body := blankColumn(margin, len(buf.Lines))
		body.ExtendRight(buf, false)
		buf = body
		if innerWidth > 0 {
			frame := term.NewBufferBuilder(width).WriteSpaces(margin).
				Write(strings.Repeat("─", innerWidth), galleryFrameStyling).Buffer()
			buf = cloneBuffer(frame).ExtendDown(body, false).ExtendDown(frame, false)
		}
	}

	buf.Width = width
	cropToWidth(buf)
	buf.TrimToLines(0, height)
	return buf
}

// Renders the visible entries, reusing the buffers of entries rendered last
// time with the same key, the same item and the same column width.
func (w *galleryWidget[T]) renderEntries(entries []gallery.Entry[T], colWidth, height int) []*term.Buffer {
	w.cacheMutex.Lock()
	defer w.cacheMutex.Unlock()
	if w.cacheWidth != colWidth {
		w.cache = nil
		w.cacheWidth = colWidth
	}
	cache := make(map[string]renderedItem[T], len(entries))
	cols := make([]*term.Buffer, len(entries))
	for i, entry := range entries {
		r, ok := w.cache[entry.Key]
		if !ok || !reflect.DeepEqual(r.item, entry.Item) {
			r = renderedItem[T]{entry.Item, term.NewBufferBuilder(colWidth).
				WriteStyled(w.renderItem(entry.Item)).Buffer()}
		}
		cache[entry.Key] = r
		buf := r.buf
		cols[i] = &term.Buffer{
			Width: colWidth, Lines: buf.Lines[:min(len(buf.Lines), height)]}
	}
	w.cache = cache
	return cols
}

func (w *galleryWidget[T]) renderItem(item T) ui.Text {
	t := w.RenderItem(item)
	if w.ItemStyling != nil {
		t = ui.StyleText(t, w.ItemStyling)
	}
	return t
}

func controlColumn(enabled bool, control ui.Text, rows int, alignRight bool) *term.Buffer {
	bb := term.NewBufferBuilder(galleryControlWidth)
	mid := (rows - 1) / 2
	for i := 0; i < rows; i++ {
		if i > 0 {
			bb.Newline()
		}
		if i == mid && enabled {
			if alignRight {
				bb.WriteSpaces(galleryControlWidth - control.Width())
			}
			bb.WriteStyled(control)
		}
	}
	return bb.Buffer()
}

func blankColumn(width, rows int) *term.Buffer {
	bb := term.NewBufferBuilder(width)
	for i := 1; i < rows; i++ {
		bb.Newline()
	}
	return bb.Buffer()
}

func cloneBuffer(b *term.Buffer) *term.Buffer {
	lines := make([][]term.Cell, len(b.Lines))
	for i, line := range b.Lines {
		lines[i] = append([]term.Cell(nil), line...)
	}
	return &term.Buffer{Width: b.Width, Lines: lines, Dot: b.Dot}
}

// Crops lines that are wider than the buffer, which only happens when the
// width is too small to fit the layout.
func cropToWidth(b *term.Buffer) {
	for i, line := range b.Lines {
		w := 0
		for j, cell := range line {
			w += wcwidth.Of(cell.Text)
			if w > b.Width {
				b.Lines[i] = line[:j]
				break
			}
		}
	}
}

func (w *galleryWidget[T]) MaxHeight(width, height int) int {
	return len(w.Render(width, height).Lines)
}

func (w *galleryWidget[T]) Handle(event term.Event) bool {
	if w.Bindings.Handle(w, event) {
		return true
	}

	switch event {
	case term.K(ui.Left), term.K('h'):
		w.window.GoLeft()
		return true
	case term.K(ui.Right), term.K('l'):
		w.window.GoRight()
		return true
	case term.K(ui.Home):
		w.window.GoFirst()
		return true
	case term.K(ui.End):
		w.window.GoLast()
		return true
	}
	return false
}

func (w *galleryWidget[T]) CopyState() gallery.WindowState { return w.window.CopyState() }

func (w *galleryWidget[T]) Entries() []gallery.Entry[T] { return w.window.Entries(w.Keys) }

func (w *galleryWidget[T]) SetItems(items gallery.Items[T]) { w.window.SetItems(items) }

func (w *galleryWidget[T]) Resize(widthPx int) { w.window.Resize(widthPx) }

func (w *galleryWidget[T]) GoLeft() bool { return w.window.GoLeft() }

func (w *galleryWidget[T]) GoRight() bool { return w.window.GoRight() }

func (w *galleryWidget[T]) GoFirst() bool { return w.window.GoFirst() }

func (w *galleryWidget[T]) GoLast() bool { return w.window.GoLast() }

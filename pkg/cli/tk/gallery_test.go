package tk

import (
	"reflect"
	"strings"
	"testing"

	"github.com/elves/gallery/pkg/cli/term"
	"github.com/elves/gallery/pkg/gallery"
	"github.com/elves/gallery/pkg/ui"
	"github.com/elves/gallery/pkg/wcwidth"
)

var (
	threeItems = gallery.Present([]string{"A", "B", "C"})
	fiveItems  = gallery.Present([]string{"A", "B", "C", "D", "E"})
)

func newGallery(spec GallerySpec[string], widthPx int) Gallery[string] {
	g := NewGallery(spec)
	g.Resize(widthPx)
	return g
}

func movedRight(g Gallery[string]) Gallery[string] {
	g.GoRight()
	return g
}

// Renders g once before replacing its items, so that stale rendered items
// would show up in the next render.
func renderedThenSet(g Gallery[string], items gallery.Items[string]) Gallery[string] {
	g.Render(24, 3)
	g.SetItems(items)
	return g
}

func thumb(n int) ui.Text     { return ui.T(strings.Repeat(" ", n), ui.FgMagenta, ui.Inverse) }
func trough(n int) ui.Text    { return ui.T(strings.Repeat("━", n), ui.FgMagenta) }
func frameLine(n int) ui.Text { return ui.T(strings.Repeat("─", n), ui.FgBrightBlack) }

var galleryRenderTests = []renderTest{
	{
		Name:  "loading placeholder when items are absent",
		Given: NewGallery(GallerySpec[string]{}),
		Width: 20, Height: 3,
		Want: bb(20).Write("Loading..."),
	},
	{
		Name:  "empty placeholder when items are empty",
		Given: NewGallery(GallerySpec[string]{Items: gallery.Present([]string{})}),
		Width: 20, Height: 3,
		Want: bb(20).Write("No items to show"),
	},
	{
		Name: "custom placeholders",
		Given: NewGallery(GallerySpec[string]{
			LoadingText: ui.T("wait", ui.Italic)}),
		Width: 20, Height: 3,
		Want: bb(20).Write("wait", ui.Italic),
	},
	{
		Name:  "no controls when all items fit",
		Given: newGallery(GallerySpec[string]{Items: threeItems}, 1200),
		Width: 24, Height: 3,
		Want: bb(24).Write("  A    B    C         "),
	},
	{
		Name: "new items with the same keys are rendered anew",
		Given: renderedThenSet(
			newGallery(GallerySpec[string]{Items: threeItems}, 1200),
			gallery.Present([]string{"X", "Y", "Z"})),
		Width: 24, Height: 3,
		Want: bb(24).Write("  X    Y    Z         "),
	},
	{
		Name:  "right control and scrollbar at the left end",
		Given: newGallery(GallerySpec[string]{Items: fiveItems}, 1200),
		Width: 24, Height: 3,
		Want: bb(24).Write("  A    B    C    D     ").Write(">", ui.Bold).
			Newline().Write("  ").WriteStyled(thumb(16)).WriteStyled(trough(4)),
	},
	{
		Name:  "left control and scrollbar at the right end",
		Given: movedRight(newGallery(GallerySpec[string]{Items: fiveItems}, 1200)),
		Width: 24, Height: 3,
		Want: bb(24).Write("<", ui.Bold).Write(" B    C    D    E    ").
			Newline().Write("  ").WriteStyled(trough(4)).WriteStyled(thumb(16)),
	},
	{
		Name:  "both controls in the middle",
		Given: movedRight(newGallery(GallerySpec[string]{Items: fiveItems}, 500)),
		Width: 10, Height: 3,
		Want: bb(10).Write("<", ui.Bold).Write(" B      ").Write(">", ui.Bold).
			Newline().Write("  ").WriteStyled(trough(1)).
			WriteStyled(thumb(1)).WriteStyled(trough(4)),
	},
	{
		Name: "items wrap within columns",
		Given: newGallery(GallerySpec[string]{
			Items: gallery.Present([]string{"hello world"})}, 500),
		Width: 10, Height: 3,
		Want: bb(10).Write("  hello ").Newline().Write("  world "),
	},
	{
		Name: "items cropped to height",
		Given: newGallery(GallerySpec[string]{
			Items: gallery.Present([]string{"hello world"})}, 500),
		Width: 10, Height: 1,
		Want: bb(10).Write("  hello "),
	},
	{
		Name: "custom item renderer",
		Given: newGallery(GallerySpec[string]{
			Items: threeItems,
			RenderItem: func(s string) ui.Text {
				return ui.T(strings.ToLower(s), ui.FgRed)
			}}, 1200),
		Width: 24, Height: 3,
		Want: bb(24).Write("  ").Write("a", ui.FgRed).Write("    ").
			Write("b", ui.FgRed).Write("    ").Write("c", ui.FgRed).
			Write("         "),
	},
	{
		Name: "item styling",
		Given: newGallery(GallerySpec[string]{
			Items: threeItems, ItemStyling: ui.Bold}, 1200),
		Width: 24, Height: 3,
		Want: bb(24).Write("  ").Write("A", ui.Bold).Write("    ").
			Write("B", ui.Bold).Write("    ").Write("C", ui.Bold).
			Write("         "),
	},
	{
		Name: "inset variant",
		Given: newGallery(GallerySpec[string]{
			Items: threeItems, Variant: Inset}, 1200),
		Width: 28, Height: 5,
		Want: bb(28).WriteSpaces(2).WriteStyled(frameLine(24)).
			Newline().Write("    A    B    C         ").
			Newline().WriteSpaces(2).WriteStyled(frameLine(24)),
	},
	{
		Name:  "full variant narrower than the controls is cropped",
		Given: newGallery(GallerySpec[string]{Items: fiveItems}, 1200),
		Width: 3, Height: 3,
		Want: bb(3).Write("  A"),
	},
	{
		Name:  "full variant with zero width",
		Given: newGallery(GallerySpec[string]{Items: fiveItems}, 1200),
		Width: 0, Height: 3,
		Want: bb(0),
	},
	{
		Name: "inset variant narrower than the controls keeps the frame",
		Given: newGallery(GallerySpec[string]{
			Items: fiveItems, Variant: Inset}, 1200),
		Width: 7, Height: 5,
		Want: bb(7).WriteSpaces(2).WriteStyled(frameLine(3)).
			Newline().Write("    A  ").
			Newline().WriteSpaces(2).WriteStyled(frameLine(3)),
	},
	{
		Name: "inset variant narrower than the margins drops the frame",
		Given: newGallery(GallerySpec[string]{
			Items: fiveItems, Variant: Inset}, 1200),
		Width: 3, Height: 5,
		Want: bb(3).Write("   "),
	},
	{
		Name: "inset variant with zero width",
		Given: newGallery(GallerySpec[string]{
			Items: fiveItems, Variant: Inset}, 1200),
		Width: 0, Height: 5,
		Want: bb(0),
	},
}

func TestGallery_Render(t *testing.T) {
	testRender(t, galleryRenderTests)
}

func TestGallery_RenderFitsNarrowWidths(t *testing.T) {
	for _, variant := range []Variant{Full, Inset} {
		for _, widthPx := range []int{500, 800, 1200} {
			g := movedRight(newGallery(GallerySpec[string]{
				Items: fiveItems, Variant: variant}, widthPx))
			for width := 0; width <= 12; width++ {
				buf := g.Render(width, 5)
				if buf.Width != width || len(buf.Lines) > 5 {
					t.Errorf("%v at %dpx: Render(%d, 5) has width %d and %d lines",
						variant, widthPx, width, buf.Width, len(buf.Lines))
				}
				for i, line := range buf.Lines {
					if w := lineWidth(line); w > width {
						t.Errorf("%v at %dpx: line %d of Render(%d, 5) is %d wide",
							variant, widthPx, i, width, w)
					}
				}
			}
		}
	}
}

func lineWidth(line []term.Cell) int {
	w := 0
	for _, cell := range line {
		w += wcwidth.Of(cell.Text)
	}
	return w
}

func TestGallery_RenderNonStringItems(t *testing.T) {
	g := NewGallery(GallerySpec[int]{Items: gallery.Present([]int{10, 20})})
	g.Resize(500)
	buf := g.Render(10, 1)
	want := bb(10).Write("  10     ").Write(">", ui.Bold).Buffer()
	if !reflect.DeepEqual(buf, want) {
		t.Errorf("Buffer mismatch")
		t.Logf("Got: %s", buf.TTYString())
		t.Logf("Want: %s", want.TTYString())
	}
}

func TestGallery_MaxHeight(t *testing.T) {
	g := newGallery(GallerySpec[string]{Items: fiveItems}, 1200)
	if h := g.MaxHeight(24, 10); h != 2 {
		t.Errorf("got max height %v, want 2", h)
	}
	loading := NewGallery(GallerySpec[string]{})
	if h := loading.MaxHeight(24, 10); h != 1 {
		t.Errorf("got max height %v for loading, want 1", h)
	}
}

func TestGallery_ReusesRenderedItemsWithStableKeys(t *testing.T) {
	calls := 0
	renderItem := func(s string) ui.Text {
		calls++
		return ui.T(s)
	}

	stable := newGallery(GallerySpec[string]{
		Items: fiveItems, RenderItem: renderItem}, 1200)
	stable.Render(24, 3)
	stable.Render(24, 3)
	if calls != 4 {
		t.Errorf("got %d calls with stable keys, want 4", calls)
	}
	stable.GoRight()
	stable.Render(24, 3)
	if calls != 5 {
		t.Errorf("got %d calls after moving, want 5", calls)
	}

	calls = 0
	random := newGallery(GallerySpec[string]{
		Items: fiveItems, RenderItem: renderItem,
		Keys: gallery.RandomKeys[string]}, 1200)
	random.Render(24, 3)
	random.Render(24, 3)
	if calls != 8 {
		t.Errorf("got %d calls with random keys, want 8", calls)
	}
}

func TestGallery_RerendersItemsChangedUnderTheSameKey(t *testing.T) {
	calls := 0
	renderItem := func(s string) ui.Text {
		calls++
		return ui.T(s)
	}
	g := newGallery(GallerySpec[string]{
		Items: threeItems, RenderItem: renderItem}, 1200)
	g.Render(24, 3)
	g.SetItems(gallery.Present([]string{"A", "Y", "C"}))
	g.Render(24, 3)
	if calls != 4 {
		t.Errorf("got %d calls, want 4", calls)
	}
}

func TestGallery_Entries(t *testing.T) {
	g := newGallery(GallerySpec[string]{
		Items: fiveItems, Keys: gallery.PositionKeys[string]}, 800)
	g.GoRight()
	want := []gallery.Entry[string]{{Key: "1", Item: "B"}, {Key: "2", Item: "C"}}
	if got := g.Entries(); !reflect.DeepEqual(got, want) {
		t.Errorf("got entries %v, want %v", got, want)
	}
}

func TestGallery_OnChange(t *testing.T) {
	var states []gallery.WindowState
	g := NewGallery(GallerySpec[string]{
		OnChange: func(s gallery.WindowState) { states = append(states, s) }})
	g.SetItems(fiveItems)
	g.Resize(500)
	g.Handle(term.K(ui.Right))

	want := []gallery.WindowState{
		{Index: 0, DisplayAmount: gallery.Four, Len: 5, Phase: gallery.Populated},
		{Index: 0, DisplayAmount: gallery.One, Len: 5, Phase: gallery.Populated},
		{Index: 1, DisplayAmount: gallery.One, Len: 5, Phase: gallery.Populated},
	}
	if !reflect.DeepEqual(states, want) {
		t.Errorf("got states %v, want %v", states, want)
	}
}

func TestGallery_EndAndHomeChangeOnce(t *testing.T) {
	var states []gallery.WindowState
	g := newGallery(GallerySpec[string]{
		Items:    gallery.Present(make([]string, 1000)),
		OnChange: func(s gallery.WindowState) { states = append(states, s) }}, 500)
	states = nil
	g.Handle(term.K(ui.End))
	g.Handle(term.K(ui.End))
	g.Handle(term.K(ui.Home))

	want := []gallery.WindowState{
		{Index: 999, DisplayAmount: gallery.One, Len: 1000, Phase: gallery.Populated},
		{Index: 0, DisplayAmount: gallery.One, Len: 1000, Phase: gallery.Populated},
	}
	if !reflect.DeepEqual(states, want) {
		t.Errorf("got states %v, want %v", states, want)
	}
}

func wantIndex(i int) func(*testing.T, Handler) {
	return func(t *testing.T, h Handler) {
		t.Helper()
		if got := h.(Gallery[string]).CopyState().Index; got != i {
			t.Errorf("got index %v, want %v", got, i)
		}
	}
}

func TestGallery_Handle(t *testing.T) {
	newSmall := func() Handler {
		return newGallery(GallerySpec[string]{Items: fiveItems}, 500)
	}
	testHandle(t, []handleTest{
		{
			Name:  "Right moves right",
			Given: newSmall,
			Event: term.K(ui.Right),
			Check: wantIndex(1),
		},
		{
			Name:   "l moves right and h moves left",
			Given:  newSmall,
			Events: []term.Event{term.K('l'), term.K('l'), term.K('h')},
			Check:  wantIndex(1),
		},
		{
			Name:  "Left at the left end is handled as a no-op",
			Given: newSmall,
			Event: term.K(ui.Left),
			Check: wantIndex(0),
		},
		{
			Name:  "End jumps to the right end",
			Given: newSmall,
			Event: term.K(ui.End),
			Check: wantIndex(4),
		},
		{
			Name:   "Home jumps to the left end",
			Given:  newSmall,
			Events: []term.Event{term.K(ui.End), term.K(ui.Home)},
			Check:  wantIndex(0),
		},
		{
			Name:          "unbound key",
			Given:         newSmall,
			Event:         term.K('x'),
			WantUnhandled: true,
		},
		{
			Name: "bindings take precedence",
			Given: func() Handler {
				return newGallery(GallerySpec[string]{
					Items: fiveItems,
					Bindings: MapBindings{
						term.K(ui.Right): func(w Widget) {
							w.(Gallery[string]).GoRight()
							w.(Gallery[string]).GoRight()
						},
					}}, 500)
			},
			Event: term.K(ui.Right),
			Check: wantIndex(2),
		},
	})
}

func TestParseVariant(t *testing.T) {
	for _, v := range []Variant{Full, Inset} {
		got, err := ParseVariant(v.String())
		if got != v || err != nil {
			t.Errorf("ParseVariant(%q) -> (%v, %v)", v.String(), got, err)
		}
	}
	if _, err := ParseVariant("bad"); err == nil {
		t.Errorf("ParseVariant(bad) returned nil error")
	}
	if s := Variant(5).String(); s != "!(bad variant 5)" {
		t.Errorf("got %q", s)
	}
}

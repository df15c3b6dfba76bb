package tk

import (
	"reflect"
	"testing"

	"github.com/elves/gallery/pkg/cli/term"
	"github.com/elves/gallery/pkg/ui"
)

var layoutRenderTests = []struct {
	name     string
	renderer Renderer
	width    int
	height   int
	wantBuf  *term.BufferBuilder
}{
	{
		"empty widget",
		Empty{},
		10, 24,
		bb(10),
	},
	{
		"Label showing all",
		Label{ui.T("label")},
		10, 24,
		bb(10).Write("label"),
	},
	{
		"Label cropping",
		Label{ui.T("label")},
		4, 1,
		bb(4).Write("labe"),
	},
	{
		"HScrollbar showing full thumb",
		HScrollbar{4, 0, 3},
		2, 10,
		bb(2).WriteStyled(hscrollbarThumb).WriteStyled(hscrollbarThumb),
	},
	{
		"HScrollbar showing thumb in first half",
		HScrollbar{4, 0, 1},
		2, 10,
		bb(2).WriteStyled(hscrollbarThumb).WriteStyled(hscrollbarTrough),
	},
	{
		"HScrollbar showing a minimal 1-size thumb at beginning",
		HScrollbar{4, 0, 0},
		2, 10,
		bb(2).WriteStyled(hscrollbarThumb).WriteStyled(hscrollbarTrough),
	},
	{
		"HScrollbar showing a minimal 1-size thumb at end",
		HScrollbar{4, 3, 3},
		2, 10,
		bb(2).WriteStyled(hscrollbarTrough).WriteStyled(hscrollbarThumb),
	},
	{
		"HScrollbar showing a window in the middle",
		HScrollbar{5, 1, 4},
		5, 10,
		bb(5).WriteStyled(hscrollbarTrough).
			WriteStyled(hscrollbarThumb).WriteStyled(hscrollbarThumb).
			WriteStyled(hscrollbarThumb).WriteStyled(hscrollbarTrough),
	},
}

func TestLayout_Render(t *testing.T) {
	for _, test := range layoutRenderTests {
		t.Run(test.name, func(t *testing.T) {
			buf := test.renderer.Render(test.width, test.height)
			wantBuf := test.wantBuf.Buffer()
			if !reflect.DeepEqual(buf, wantBuf) {
				t.Errorf("got buf %v, want %v", buf, wantBuf)
			}
		})
	}
}

var nopHandlers = []Handler{
	Empty{}, Label{ui.T("label")},
}

func TestLabel_MaxHeight(t *testing.T) {
	if h := (Label{ui.T("abcdef")}).MaxHeight(4, 10); h != 2 {
		t.Errorf("got max height %v, want 2", h)
	}
	if h := (Empty{}).MaxHeight(4, 10); h != 1 {
		t.Errorf("got max height %v, want 1", h)
	}
}

func TestLayout_Handle(t *testing.T) {
	for _, handler := range nopHandlers {
		handled := handler.Handle(term.K('a'))
		if handled {
			t.Errorf("%v handles event when it shouldn't", handler)
		}
	}
}

package tk

import (
	"github.com/elves/gallery/pkg/cli/term"
	"github.com/elves/gallery/pkg/ui"
)

// HScrollbar is a Renderer for a horizontal scrollbar. It shows which part
// [Low, High) of Total items is visible.
type HScrollbar struct {
	Total int
	Low   int
	High  int
}

var (
	hscrollbarThumb  = ui.T(" ", ui.FgMagenta, ui.Inverse)
	hscrollbarTrough = ui.T("━", ui.FgMagenta)
)

// Render renders the scrollbar onto a single line of the given width.
func (h HScrollbar) Render(width, height int) *term.Buffer {
	width = max(width, 0)
	posLow, posHigh := findScrollInterval(h.Total, h.Low, h.High, width)
	bb := term.NewBufferBuilder(width)
	for i := 0; i < width; i++ {
		if posLow <= i && i < posHigh {
			bb.WriteStyled(hscrollbarThumb)
		} else {
			bb.WriteStyled(hscrollbarTrough)
		}
	}
	return bb.Buffer()
}

func findScrollInterval(n, low, high, size int) (int, int) {
	f := func(i int) int {
		return int(float64(i)/float64(n)*float64(size) + 0.5)
	}
	scrollLow, scrollHigh := f(low), f(high)
	if scrollLow == scrollHigh {
		if scrollHigh == size {
			scrollLow--
		} else {
			scrollHigh++
		}
	}
	return scrollLow, scrollHigh
}

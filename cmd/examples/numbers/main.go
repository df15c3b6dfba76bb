// A test program for the cli package, showing a gallery of numbers.
package main

import (
	"fmt"
	"strconv"

	"github.com/elves/gallery/pkg/cli"
	"github.com/elves/gallery/pkg/cli/term"
	"github.com/elves/gallery/pkg/cli/tk"
	"github.com/elves/gallery/pkg/gallery"
	"github.com/elves/gallery/pkg/ui"
)

func main() {
	numbers := make([]int, 20)
	for i := range numbers {
		numbers[i] = i * i
	}

	var app cli.App
	g := tk.NewGallery(tk.GallerySpec[int]{
		Items: gallery.Present(numbers),
		RenderItem: func(n int) ui.Text {
			if n%2 == 0 {
				return ui.T(strconv.Itoa(n), ui.FgGreen)
			}
			return ui.T(strconv.Itoa(n), ui.FgBlue)
		},
		Variant: tk.Inset,
		Bindings: tk.MapBindings{
			term.K('x'): func(tk.Widget) { app.Quit() },
		},
	})
	app = cli.NewApp(cli.AppSpec{Widget: g, OnViewport: g.Resize})

	err := app.Run()
	fmt.Println("index:", g.CopyState().Index)
	if err != nil {
		fmt.Println("err", err)
	}
}

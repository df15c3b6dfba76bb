// Gallery shows a horizontally paginated carousel of items in the terminal.
// The number of items shown side by side follows the width of the terminal.
package main

import (
	"os"

	"github.com/elves/gallery/pkg/buildinfo"
	"github.com/elves/gallery/pkg/pprof"
	"github.com/elves/gallery/pkg/prog"
	"github.com/elves/gallery/pkg/viewer"
)

func main() {
	os.Exit(prog.Run(
		[3]*os.File{os.Stdin, os.Stdout, os.Stderr}, os.Args,
		pprof.Wrap(prog.Composite(
			buildinfo.Program{}, viewer.ListDemosProgram{},
			viewer.ListBucketsProgram{}, viewer.AddProgram{},
			viewer.Program{}))))
}

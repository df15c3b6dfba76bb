// Package prog provides the entry point to the gallery program. It parses
// flags, sets up logging and runs the first suitable subprogram.
package prog

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/elves/gallery/pkg/logutil"
)

// Flags keeps command-line flags.
type Flags struct {
	Log, Config string

	CPUProfile, AllocsProfile string

	Help, Version, BuildInfo, JSON bool

	Demo      string
	ListDemos bool
	Inset     bool
	Keys      string
	CellWidth int

	DB, Bucket, Add string
	ListBuckets     bool
}

func newFlagSet(f *Flags) *flag.FlagSet {
	fs := flag.NewFlagSet("gallery", flag.ContinueOnError)
	// Error and usage will be printed explicitly.
	fs.SetOutput(io.Discard)

	fs.StringVar(&f.Log, "log", "", "a file to write debug log to")
	fs.StringVar(&f.Config, "config", "", "path to the config file; defaults to $GALLERY_CONFIG or ~/.config/gallery/config.yaml")

	fs.StringVar(&f.CPUProfile, "cpuprofile", "", "write CPU profile to file")
	fs.StringVar(&f.AllocsProfile, "allocsprofile", "", "write memory allocation profile to file")

	fs.BoolVar(&f.Help, "help", false, "show usage help and quit")
	fs.BoolVar(&f.Version, "version", false, "show version and quit")
	fs.BoolVar(&f.BuildInfo, "buildinfo", false, "show build info and quit")
	fs.BoolVar(&f.JSON, "json", false, "show output in JSON; useful with -buildinfo")

	fs.StringVar(&f.Demo, "demo", "", "name of the demo to show; see -list-demos")
	fs.BoolVar(&f.ListDemos, "list-demos", false, "list demos and quit")
	fs.BoolVar(&f.Inset, "inset", false, "use the inset variant")
	fs.StringVar(&f.Keys, "keys", "", "key strategy: natural, position or random")
	fs.IntVar(&f.CellWidth, "cell-width", 0, "width of a terminal cell in pixels, used when the terminal does not report its size in pixels")

	fs.StringVar(&f.DB, "db", "", "path to the database to show items from")
	fs.StringVar(&f.Bucket, "bucket", "", "bucket of the database to show items from")
	fs.StringVar(&f.Add, "add", "", "add an item with the given text to the bucket and quit")
	fs.BoolVar(&f.ListBuckets, "list-buckets", false, "list the buckets of the database and quit")

	return fs
}

func usage(out io.Writer, fs *flag.FlagSet) {
	fmt.Fprintln(out, "Usage: gallery [flags] [file]")
	fmt.Fprintln(out, "Supported flags:")
	fs.SetOutput(out)
	fs.PrintDefaults()
}

// Run parses command-line flags and runs the first applicable subprogram. It
// returns the exit status of the program.
func Run(fds [3]*os.File, args []string, p Program) int {
	f := &Flags{}
	fs := newFlagSet(f)
	err := fs.Parse(args[1:])
	if err != nil {
		if err == flag.ErrHelp {
			// (*flag.FlagSet).Parse returns ErrHelp when -h or -help was
			// requested but *not* defined. The program defines -help, but not
			// -h; so this means that -h has been requested. Handle this by
			// printing the same message as an undefined flag.
			fmt.Fprintln(fds[2], "flag provided but not defined: -h")
		} else {
			fmt.Fprintln(fds[2], err)
		}
		usage(fds[2], fs)
		return 2
	}

	if f.Log != "" {
		err = logutil.SetOutputFile(f.Log)
		if err != nil {
			fmt.Fprintln(fds[2], err)
		}
		defer logutil.SetOutput(io.Discard)
	}

	if f.Help {
		usage(fds[1], fs)
		return 0
	}

	err = p.Run(fds, f, fs.Args())
	if err == nil {
		return 0
	}
	if msg := err.Error(); msg != "" {
		fmt.Fprintln(fds[2], msg)
	}
	var (
		badUsage badUsageError
		exit     exitError
	)
	switch {
	case errors.As(err, &badUsage):
		usage(fds[2], fs)
	case errors.As(err, &exit):
		return exit.exit
	}
	return 2
}

// Composite returns a Program that tries each of the given programs,
// terminating at the first one that doesn't return ErrNotSuitable.
func Composite(programs ...Program) Program {
	return compositeProgram(programs)
}

type compositeProgram []Program

func (cp compositeProgram) Run(fds [3]*os.File, f *Flags, args []string) error {
	for _, p := range cp {
		err := p.Run(fds, f, args)
		if err != ErrNotSuitable {
			return err
		}
	}
	// If we have reached here, all subprograms have returned ErrNotSuitable
	return ErrNotSuitable
}

// ErrNotSuitable is a special error that may be returned by Program.Run, to
// signify that this Program should not be run. It is useful when a Program is
// used in Composite.
var ErrNotSuitable = errors.New("internal error: no suitable subprogram")

// BadUsage returns a special error that may be returned by Program.Run. It
// causes the main function to print out a message, the usage information and
// exit with 2.
func BadUsage(msg string) error { return badUsageError{msg} }

type badUsageError struct{ msg string }

func (e badUsageError) Error() string { return e.msg }

// Exit returns a special error that may be returned by Program.Run. It causes
// the main function to exit with the given code without printing any error
// messages. Exit(0) returns nil.
func Exit(exit int) error {
	if exit == 0 {
		return nil
	}
	return exitError{exit}
}

type exitError struct{ exit int }

func (e exitError) Error() string { return "" }

// Program represents a subprogram.
type Program interface {
	// Run runs the subprogram.
	Run(fds [3]*os.File, f *Flags, args []string) error
}

// Package pprof adds profiling support to the gallery program.
package pprof

import (
	"fmt"
	"os"
	"runtime/pprof"

	"github.com/elves/gallery/pkg/prog"
)

// Wrap returns a Program that runs p, writing the profiles requested by the
// -cpuprofile and -allocsprofile flags.
func Wrap(p prog.Program) prog.Program { return program{p} }

type program struct{ inner prog.Program }

func (p program) Run(fds [3]*os.File, f *prog.Flags, args []string) error {
	if f.CPUProfile != "" {
		out, err := os.Create(f.CPUProfile)
		if err != nil {
			fmt.Fprintln(fds[2], "Warning: cannot create CPU profile:", err)
			fmt.Fprintln(fds[2], "Continuing without CPU profiling.")
		} else {
			pprof.StartCPUProfile(out)
			defer func() {
				pprof.StopCPUProfile()
				out.Close()
			}()
		}
	}
	if f.AllocsProfile != "" {
		out, err := os.Create(f.AllocsProfile)
		if err != nil {
			fmt.Fprintln(fds[2], "Warning: cannot create memory allocation profile:", err)
			fmt.Fprintln(fds[2], "Continuing without memory allocation profiling.")
		} else {
			defer func() {
				pprof.Lookup("allocs").WriteTo(out, 0)
				out.Close()
			}()
		}
	}
	return p.inner.Run(fds, f, args)
}

//go:build linux || darwin || freebsd || netbsd || openbsd || dragonfly

package sys

import (
	"os"

	"golang.org/x/sys/unix"
)

// EnableOutputProcessing turns on output post-processing of a terminal, so
// that "\n" also returns the cursor to the first column. Raw mode as set up by
// golang.org/x/term turns it off.
func EnableOutputProcessing(file *os.File) error {
	fd := int(file.Fd())
	t, err := unix.IoctlGetTermios(fd, ioctlReadTermios)
	if err != nil {
		return err
	}
	t.Oflag |= unix.OPOST | unix.ONLCR
	return unix.IoctlSetTermios(fd, ioctlWriteTermios, t)
}

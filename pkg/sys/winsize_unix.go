//go:build unix

package sys

import (
	"os"

	"golang.org/x/sys/unix"
)

const sigWINCH = unix.SIGWINCH

func getWinSize(file *os.File) (WinSize, error) {
	ws, err := unix.IoctlGetWinsize(int(file.Fd()), unix.TIOCGWINSZ)
	if err != nil {
		return WinSize{}, err
	}
	size := WinSize{
		Rows: int(ws.Row), Cols: int(ws.Col),
		XPixels: int(ws.Xpixel), YPixels: int(ws.Ypixel)}
	// Pick up a reasonable value for rows and cols if they equal zero in
	// special cases, e.g. serial console.
	if size.Cols == 0 {
		size.Cols = 80
	}
	if size.Rows == 0 {
		size.Rows = 24
	}
	return size, nil
}

//go:build unix && !(linux || darwin || freebsd || netbsd || openbsd || dragonfly)

package sys

import "os"

// EnableOutputProcessing does nothing on this platform.
func EnableOutputProcessing(file *os.File) error { return nil }

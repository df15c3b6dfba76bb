// Package wcwidth provides utilities for determining the column width of
// characters when displayed on the terminal.
package wcwidth

import (
	"strings"
	"sync"

	"github.com/rivo/uniseg"
)

var (
	overrideMutex sync.RWMutex
	override      = map[rune]int{}
)

// OfRune returns the column width of a rune.
func OfRune(r rune) int {
	overrideMutex.RLock()
	w, ok := override[r]
	overrideMutex.RUnlock()
	if ok {
		return w
	}
	return uniseg.StringWidth(string(r))
}

// Of returns the column width of a string, assuming no soft line breaks.
func Of(s string) int {
	w := 0
	for _, r := range s {
		w += OfRune(r)
	}
	return w
}

// Override overrides the column width of a rune to be a specific non-negative
// value. OfRune will return the new value. A negative width removes the
// override.
func Override(r rune, w int) {
	if w < 0 {
		Unoverride(r)
		return
	}
	overrideMutex.Lock()
	defer overrideMutex.Unlock()
	override[r] = w
}

// Unoverride removes the column width override of a rune.
func Unoverride(r rune) {
	overrideMutex.Lock()
	defer overrideMutex.Unlock()
	delete(override, r)
}

// Trim trims the string s so that it has a width of at most wmax.
func Trim(s string, wmax int) string {
	w := 0
	for i, r := range s {
		w += OfRune(r)
		if w > wmax {
			return s[:i]
		}
	}
	return s
}

// Force forces the string s to the given width by trimming and padding.
func Force(s string, width int) string {
	w := 0
	for i, r := range s {
		w0 := OfRune(r)
		w += w0
		if w > width {
			w -= w0
			s = s[:i]
			break
		}
	}
	return s + strings.Repeat(" ", width-w)
}

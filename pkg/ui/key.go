package ui

import (
	"fmt"
	"strings"
)

// Key represents a single keyboard input, typically assembled from a escape
// sequence.
type Key struct {
	Rune rune
	Mod  Mod
}

// K constructs a new Key.
func K(r rune, mods ...Mod) Key {
	var mod Mod
	for _, m := range mods {
		mod |= m
	}
	return Key{r, mod}
}

// Default is used in the key binding table to indicate a default binding.
var Default = Key{DefaultBindingRune, 0}

// Mod represents a modifier key.
type Mod byte

// Values for Mod.
const (
	// Shift is the shift modifier. It is only applied to special keys (e.g.
	// Shift-F1). For instance 'A' and '@' which are typically entered with the
	// shift key pressed, are not considered to be shift-modified.
	Shift Mod = 1 << iota
	// Alt is the alt modifier, traditionally known as the meta modifier.
	Alt
	Ctrl
)

const functionKeyOffset = 1000

// Special negative runes to represent function keys, used in the Rune field
// of the Key struct. This also has a few function names that are aliases for
// simple runes. See keyNames below for mapping these values to strings.
const (
	// DefaultBindingRune is a special value to represent a default binding.
	DefaultBindingRune rune = iota - functionKeyOffset

	F1
	F2
	F3
	F4
	F5
	F6
	F7
	F8
	F9
	F10
	F11
	F12

	Up
	Down
	Right
	Left

	Home
	Insert
	Delete
	End
	PageUp
	PageDown

	Tab       = '\t'
	Enter     = '\n'
	Backspace = 0x7f
	Space     = ' '
	// Esc is the escape key.
	Esc = 0x1b
)

var functionKeyNames = [...]string{
	"Default",
	"F1", "F2", "F3", "F4", "F5", "F6", "F7", "F8", "F9", "F10", "F11", "F12",
	"Up", "Down", "Right", "Left",
	"Home", "Insert", "Delete", "End", "PageUp", "PageDown",
}

var keyNames = map[rune]string{
	Tab: "Tab", Enter: "Enter", Backspace: "Backspace",
	Space: "Space", Esc: "Esc",
}

func (k Key) String() string {
	var b strings.Builder
	if k.Mod&Ctrl != 0 {
		b.WriteString("Ctrl-")
	}
	if k.Mod&Alt != 0 {
		b.WriteString("Alt-")
	}
	if k.Mod&Shift != 0 {
		b.WriteString("Shift-")
	}

	if k.Rune < 0 {
		i := int(k.Rune + functionKeyOffset)
		if i < 0 || i >= len(functionKeyNames) {
			fmt.Fprintf(&b, "(bad function key %d)", k.Rune)
		} else {
			b.WriteString(functionKeyNames[i])
		}
	} else if name, ok := keyNames[k.Rune]; ok {
		b.WriteString(name)
	} else {
		b.WriteRune(k.Rune)
	}
	return b.String()
}

var modByName = map[string]Mod{
	"shift": Shift,
	"alt":   Alt, "a": Alt, "meta": Alt, "m": Alt,
	"ctrl": Ctrl, "c": Ctrl, "control": Ctrl,
}

// ParseKey parses a symbolic key such as "Left", "Ctrl-C" or "l". The
// modifiers and the key name are separated by "-" or "+".
func ParseKey(s string) (Key, error) {
	var k Key
	for {
		i := strings.IndexAny(s, "+-")
		if i <= 0 || i == len(s)-1 {
			break
		}
		mod, ok := modByName[strings.ToLower(s[:i])]
		if !ok {
			return Key{}, fmt.Errorf("bad modifier: %s", strings.ToLower(s[:i]))
		}
		k.Mod |= mod
		s = s[i+1:]
	}

	if len([]rune(s)) == 1 {
		k.Rune = []rune(s)[0]
		if k.Mod&Ctrl != 0 && 'a' <= k.Rune && k.Rune <= 'z' {
			// Ctrl- keys are case-insensitive.
			k.Rune += 'A' - 'a'
		}
		return k, nil
	}
	for i, name := range functionKeyNames {
		if s == name {
			k.Rune = rune(i - functionKeyOffset)
			return k, nil
		}
	}
	for r, name := range keyNames {
		if s == name {
			k.Rune = r
			return k, nil
		}
	}
	return Key{}, fmt.Errorf("bad key: %s", s)
}

//go:build unix

package term

import (
	"os"
	"time"
	"unicode/utf8"

	"github.com/elves/gallery/pkg/ui"
)

// reader reads terminal escape sequences and decodes them into events.
type reader struct {
	fr fileReader
}

func newReader(f *os.File) (*reader, error) {
	fr, err := newFileReader(f)
	if err != nil {
		return nil, err
	}
	return &reader{fr}, nil
}

func (rd *reader) ReadEvent() (Event, error) {
	return readEvent(rd.fr)
}

func (rd *reader) Close() {
	rd.fr.Stop()
	rd.fr.Close()
}

// Used by keyDecoder.next to signal end of current sequence.
const runeEndOfSeq rune = -1

// Timeout for bytes in escape sequences. Modern terminal emulators send escape
// sequences very fast, so 10ms is more than sufficient. SSH connections on a
// slow link might be problematic though.
var keySeqTimeout = 10 * time.Millisecond

// keyDecoder accumulates the runes of one key sequence.
type keyDecoder struct {
	rd  byteReaderWithTimeout
	seq string
}

// next reads a rune within keySeqTimeout, returning runeEndOfSeq on any error.
func (d *keyDecoder) next() rune {
	r, err := readRune(d.rd, keySeqTimeout)
	if err != nil {
		return runeEndOfSeq
	}
	d.seq += string(r)
	return r
}

func (d *keyDecoder) bad(msg string) error {
	return seqError{msg, d.seq}
}

func readEvent(rd byteReaderWithTimeout) (Event, error) {
	r, err := readRune(rd, -1)
	if err != nil {
		return nil, err
	}
	if r != 0x1b {
		return KeyEvent(ctrlModify(r)), nil
	}

	d := &keyDecoder{rd: rd, seq: string(r)}
	r2 := d.next()
	// rxvt and derivatives prepend another ESC to a CSI-style or G3-style
	// sequence to signal Alt.
	alt := false
	if r2 == 0x1b {
		alt = true
		r2 = d.next()
	}
	var k ui.Key
	switch r2 {
	case runeEndOfSeq:
		// A lone Escape.
		return K('[', ui.Ctrl), nil
	case '[':
		k, err = d.csi()
	case 'O':
		k, err = d.g3()
	default:
		// Alt-modified key, possibly also modified by Ctrl.
		k = ctrlModify(r2)
		k.Mod |= ui.Alt
	}
	if err != nil {
		return nil, err
	}
	if alt {
		k.Mod |= ui.Alt
	}
	return KeyEvent(k), nil
}

// csi decodes the rest of a CSI sequence, after "\033[".
func (d *keyDecoder) csi() (ui.Key, error) {
	r := d.next()
	if r == runeEndOfSeq {
		return ui.K('[', ui.Alt), nil
	}
	var nums []int
	for {
		switch {
		case r == ';':
			if len(nums) == 0 {
				nums = append(nums, 0)
			}
			nums = append(nums, 0)
		case '0' <= r && r <= '9':
			if len(nums) == 0 {
				nums = append(nums, 0)
			}
			nums[len(nums)-1] = nums[len(nums)-1]*10 + int(r-'0')
		case r == runeEndOfSeq:
			return ui.Key{}, d.bad("incomplete CSI")
		default:
			k := parseCSI(nums, r)
			if k == (ui.Key{}) {
				return k, d.bad("bad CSI")
			}
			return k, nil
		}
		r = d.next()
	}
}

// g3 decodes the rest of a G3 sequence, after "\033O".
func (d *keyDecoder) g3() (ui.Key, error) {
	r := d.next()
	if r == runeEndOfSeq {
		// Nothing follows after 'O'. Taken as Alt-O.
		return ui.K('O', ui.Alt), nil
	}
	if k, ok := g3Seq[r]; ok {
		return k, nil
	}
	return ui.Key{}, d.bad("bad G3")
}

// readRune reads a UTF-8-encoded rune. A negative timeout means no timeout.
func readRune(rd byteReaderWithTimeout, timeout time.Duration) (rune, error) {
	leader, err := rd.ReadByteWithTimeout(timeout)
	if err != nil {
		return runeEndOfSeq, err
	}
	if leader < utf8.RuneSelf {
		return rune(leader), nil
	}
	var n int
	switch {
	case leader>>5 == 0x6:
		n = 2
	case leader>>4 == 0xe:
		n = 3
	case leader>>3 == 0x1e:
		n = 4
	default:
		return utf8.RuneError, nil
	}
	buf := []byte{leader}
	for len(buf) < n {
		b, err := rd.ReadByteWithTimeout(keySeqTimeout)
		if err != nil {
			return runeEndOfSeq, err
		}
		buf = append(buf, b)
	}
	r, _ := utf8.DecodeRune(buf)
	return r, nil
}

// Determines whether a rune corresponds to a Ctrl-modified key and returns the
// ui.Key the rune represents.
func ctrlModify(r rune) ui.Key {
	switch r {
	case 0x0:
		return ui.K('`', ui.Ctrl) // ^@
	case 0x1e:
		return ui.K('6', ui.Ctrl) // ^^
	case 0x1f:
		return ui.K('/', ui.Ctrl) // ^_
	case ui.Tab, ui.Enter, ui.Backspace: // ^I ^J ^?
		// Ambiguous Ctrl keys; prefer the non-Ctrl form as they are more likely.
		return ui.K(r)
	case '\r':
		return ui.K(ui.Enter)
	default:
		if 0x1 <= r && r <= 0x1d {
			return ui.K(r+0x40, ui.Ctrl)
		}
	}
	return ui.K(r)
}

// G3-style key sequences: \eO followed by exactly one character.
var g3Seq = map[rune]ui.Key{
	'A': ui.K(ui.Up), 'B': ui.K(ui.Down), 'C': ui.K(ui.Right), 'D': ui.K(ui.Left),
	'H': ui.K(ui.Home), 'F': ui.K(ui.End),
	'P': ui.K(ui.F1), 'Q': ui.K(ui.F2), 'R': ui.K(ui.F3), 'S': ui.K(ui.F4),
}

// CSI-style key sequences identified by the last rune. When modified, two
// numerical arguments are added, the first always being 1 and the second
// identifying the modifier. For instance, \e[1;5C is Ctrl-Right.
var csiSeqByLast = map[rune]ui.Key{
	'A': ui.K(ui.Up), 'B': ui.K(ui.Down), 'C': ui.K(ui.Right), 'D': ui.K(ui.Left),
	'H': ui.K(ui.Home), 'F': ui.K(ui.End),
	'Z': ui.K(ui.Tab, ui.Shift),
}

// CSI-style key sequences ending with '~', with one or two numerical
// arguments. The first identifies the key, the optional second the modifier.
var csiSeqTilde = map[int]rune{
	1: ui.Home, 2: ui.Insert, 3: ui.Delete, 4: ui.End,
	5: ui.PageUp, 6: ui.PageDown, 7: ui.Home, 8: ui.End,
}

func parseCSI(nums []int, last rune) ui.Key {
	if k, ok := csiSeqByLast[last]; ok {
		switch {
		case len(nums) == 0:
			return k
		case len(nums) == 2 && nums[0] == 1:
			return xtermModify(k, nums[1])
		}
		return ui.Key{}
	}
	if last == '~' && (len(nums) == 1 || len(nums) == 2) {
		if r, ok := csiSeqTilde[nums[0]]; ok {
			if len(nums) == 1 {
				return ui.K(r)
			}
			return xtermModify(ui.K(r), nums[1])
		}
	}
	return ui.Key{}
}

func xtermModify(k ui.Key, mod int) ui.Key {
	if mod < 0 || mod > 16 {
		return ui.Key{}
	}
	if mod == 0 {
		return k
	}
	modFlags := mod - 1
	if modFlags&0x1 != 0 {
		k.Mod |= ui.Shift
	}
	if modFlags&0x2 != 0 {
		k.Mod |= ui.Alt
	}
	if modFlags&0x4 != 0 {
		k.Mod |= ui.Ctrl
	}
	if modFlags&0x8 != 0 {
		// Meta is conflated with Alt.
		k.Mod |= ui.Alt
	}
	return k
}

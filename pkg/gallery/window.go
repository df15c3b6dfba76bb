// Package gallery implements the state of a horizontally paginated carousel:
// classifying the viewport into a display amount, and keeping a clamped index
// into a list of items that may still be loading.
package gallery

import (
	"fmt"
	"sync"

	"github.com/elves/gallery/pkg/logutil"
)

var logger = logutil.GetLogger("[gallery] ")

// Items is an ordered list of items that may be absent. An absent list means
// the items are still loading; a present list may be empty.
type Items[T any] struct {
	values  []T
	present bool
}

// Absent returns an absent list.
func Absent[T any]() Items[T] { return Items[T]{} }

// Present returns a present list holding the given values. A nil slice makes
// a present empty list.
func Present[T any](values []T) Items[T] { return Items[T]{values, true} }

// IsPresent returns whether the list is present.
func (it Items[T]) IsPresent() bool { return it.present }

// Len returns the number of items, 0 for an absent list.
func (it Items[T]) Len() int { return len(it.values) }

// Values returns the items. It is nil for an absent list.
func (it Items[T]) Values() []T { return it.values }

// Phase is the rendering phase of a Window.
type Phase int

// Possible values of Phase.
const (
	// The list is absent.
	Loading Phase = iota
	// The list is present and empty.
	Empty
	// The list is present and not empty.
	Populated
)

var phaseNames = [...]string{Loading: "loading", Empty: "empty", Populated: "populated"}

func (p Phase) String() string {
	if 0 <= p && int(p) < len(phaseNames) {
		return phaseNames[p]
	}
	return fmt.Sprintf("!(bad phase %d)", int(p))
}

func phaseOf[T any](items Items[T]) Phase {
	switch {
	case !items.present:
		return Loading
	case len(items.values) == 0:
		return Empty
	default:
		return Populated
	}
}

// WindowState is a snapshot of the observable state of a Window.
type WindowState struct {
	Index         int
	DisplayAmount DisplayAmount
	Len           int
	Phase         Phase
}

func (s WindowState) String() string {
	return fmt.Sprintf("%s %d/%d %s", s.Phase, s.Index, s.Len, s.DisplayAmount)
}

// Window keeps the index of the first visible item of a list, and the number
// of items visible at once. All methods are safe for concurrent use.
type Window[T any] struct {
	// OnChange, if non-nil, is called after every transition that changes the
	// state, with the new state. It is called without holding the lock.
	OnChange func(WindowState)

	mutex  sync.RWMutex
	index  int
	amount DisplayAmount
	items  Items[T]
	width  int
}

// NewWindow creates a Window with absent items and an unknown viewport width.
func NewWindow[T any]() *Window[T] {
	return &Window[T]{amount: Classify(UnknownWidth), width: UnknownWidth}
}

// Update applies a new list of items and viewport width. While the list is
// absent, the index and display amount are left untouched. Otherwise the
// display amount is reclassified and the index is clamped to the new bounds;
// it is never reset.
func (w *Window[T]) Update(items Items[T], widthPx int) {
	w.mutate(func() { w.update(items, widthPx) })
}

// SetItems is like Update with the last viewport width.
func (w *Window[T]) SetItems(items Items[T]) {
	w.mutate(func() { w.update(items, w.width) })
}

// Resize is like Update with the last items.
func (w *Window[T]) Resize(widthPx int) {
	w.mutate(func() { w.update(w.items, widthPx) })
}

func (w *Window[T]) update(items Items[T], widthPx int) {
	w.items, w.width = items, widthPx
	if !items.present {
		return
	}
	w.amount = Classify(widthPx)
	w.index = min(w.index, max(items.Len()-int(w.amount), 0))
}

// CanGoLeft returns whether there are items hidden to the left.
func (w *Window[T]) CanGoLeft() bool {
	w.mutex.RLock()
	defer w.mutex.RUnlock()
	return w.canGoLeft()
}

// CanGoRight returns whether there are items hidden to the right.
func (w *Window[T]) CanGoRight() bool {
	w.mutex.RLock()
	defer w.mutex.RUnlock()
	return w.canGoRight()
}

func (w *Window[T]) canGoLeft() bool {
	return w.items.Len() > int(w.amount) && w.index > 0
}

func (w *Window[T]) canGoRight() bool {
	return w.items.Len() > int(w.amount) &&
		w.index < w.items.Len()-int(w.amount)
}

// GoLeft moves the window one item to the left. It does nothing and returns
// false if CanGoLeft is false.
func (w *Window[T]) GoLeft() bool {
	moved := false
	w.mutate(func() {
		if w.canGoLeft() {
			w.index--
			moved = true
		}
	})
	return moved
}

// GoRight moves the window one item to the right. It does nothing and returns
// false if CanGoRight is false.
func (w *Window[T]) GoRight() bool {
	moved := false
	w.mutate(func() {
		if w.canGoRight() {
			w.index++
			moved = true
		}
	})
	return moved
}

// GoFirst moves the window to the left end in one step. It does nothing and
// returns false if CanGoLeft is false.
func (w *Window[T]) GoFirst() bool {
	moved := false
	w.mutate(func() {
		if w.canGoLeft() {
			w.index = 0
			moved = true
		}
	})
	return moved
}

// GoLast moves the window to the right end in one step. It does nothing and
// returns false if CanGoRight is false.
func (w *Window[T]) GoLast() bool {
	moved := false
	w.mutate(func() {
		if w.canGoRight() {
			w.index = w.items.Len() - int(w.amount)
			moved = true
		}
	})
	return moved
}

// Visible returns the visible items. It is nil when the list is absent.
func (w *Window[T]) Visible() []T {
	w.mutex.RLock()
	defer w.mutex.RUnlock()
	lo, hi := w.bounds()
	return w.items.values[lo:hi]
}

// Entries returns the visible items paired with their keys. A nil keys uses
// NaturalKeys.
func (w *Window[T]) Entries(keys KeyFunc[T]) []Entry[T] {
	return w.View(keys).Entries
}

// View is a consistent snapshot of a Window, holding everything needed to
// render it.
type View[T any] struct {
	WindowState
	CanGoLeft  bool
	CanGoRight bool
	Entries    []Entry[T]
}

// View returns a snapshot of the window, with the visible items paired with
// their keys. A nil keys uses NaturalKeys.
func (w *Window[T]) View(keys KeyFunc[T]) View[T] {
	if keys == nil {
		keys = NaturalKeys[T]
	}
	w.mutex.RLock()
	v := View[T]{
		WindowState: w.state(),
		CanGoLeft:   w.canGoLeft(), CanGoRight: w.canGoRight()}
	lo, hi := w.bounds()
	visible := w.items.values[lo:hi]
	w.mutex.RUnlock()

	v.Entries = make([]Entry[T], len(visible))
	for i, item := range visible {
		v.Entries[i] = Entry[T]{keys(item, lo+i), item}
	}
	return v
}

func (w *Window[T]) bounds() (int, int) {
	n := w.items.Len()
	return min(w.index, n), min(w.index+int(w.amount), n)
}

// Phase returns the current phase.
func (w *Window[T]) Phase() Phase {
	w.mutex.RLock()
	defer w.mutex.RUnlock()
	return phaseOf(w.items)
}

// Width returns the last viewport width.
func (w *Window[T]) Width() int {
	w.mutex.RLock()
	defer w.mutex.RUnlock()
	return w.width
}

// CopyState returns a snapshot of the current state.
func (w *Window[T]) CopyState() WindowState {
	w.mutex.RLock()
	defer w.mutex.RUnlock()
	return w.state()
}

func (w *Window[T]) state() WindowState {
	return WindowState{w.index, w.amount, w.items.Len(), phaseOf(w.items)}
}

func (w *Window[T]) mutate(f func()) {
	w.mutex.Lock()
	old := w.state()
	f()
	s := w.state()
	w.mutex.Unlock()
	if s != old {
		logger.Printf("%v -> %v", old, s)
		if w.OnChange != nil {
			w.OnChange(s)
		}
	}
}

package gallery

import (
	"fmt"
	"strconv"

	"github.com/google/uuid"
)

// Identifier is implemented by items that carry a natural identity.
type Identifier interface {
	ID() string
}

// Entry pairs a visible item with the key that identifies it for rendering.
type Entry[T any] struct {
	Key  string
	Item T
}

// KeyFunc derives the identity key of an item. The pos argument is the
// position of the item in the full list, not in the visible slice.
type KeyFunc[T any] func(item T, pos int) string

// NaturalKeys uses the ID of items implementing Identifier, and the position
// for all other items.
func NaturalKeys[T any](item T, pos int) string {
	if id, ok := naturalID(item); ok {
		return id
	}
	return PositionKeys(item, pos)
}

// PositionKeys uses the position of the item in the full list.
func PositionKeys[T any](_ T, pos int) string {
	return strconv.Itoa(pos)
}

// RandomKeys uses the ID of items implementing Identifier, and a freshly
// generated UUID for all other items. Keys of items without an ID change on
// every call.
func RandomKeys[T any](item T, _ int) string {
	if id, ok := naturalID(item); ok {
		return id
	}
	return uuid.NewString()
}

func naturalID(item any) (string, bool) {
	if id, ok := item.(Identifier); ok && id.ID() != "" {
		return id.ID(), true
	}
	return "", false
}

// KeyFuncNames lists the names accepted by ParseKeyFunc.
var KeyFuncNames = []string{"natural", "position", "random"}

// ParseKeyFunc returns the key strategy with the given name.
func ParseKeyFunc[T any](name string) (KeyFunc[T], error) {
	switch name {
	case "", "natural":
		return NaturalKeys[T], nil
	case "position":
		return PositionKeys[T], nil
	case "random":
		return RandomKeys[T], nil
	default:
		return nil, fmt.Errorf("unknown key strategy %q, want one of %v",
			name, KeyFuncNames)
	}
}

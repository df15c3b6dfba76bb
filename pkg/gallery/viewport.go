package gallery

import "fmt"

// DisplayAmount is the number of items shown side by side. It is always one
// of One, Two and Four.
type DisplayAmount int

// Possible values of DisplayAmount.
const (
	One  DisplayAmount = 1
	Two  DisplayAmount = 2
	Four DisplayAmount = 4
)

func (a DisplayAmount) String() string {
	return fmt.Sprintf("%d up", int(a))
}

// Breakpoints of the viewport width, in pixels. Both are inclusive upper
// bounds of their tiers.
const (
	SmallMaxPx  = 640
	MediumMaxPx = 1007
)

// UnknownWidth is the viewport width used when it could not be measured. It
// classifies into the largest tier.
const UnknownWidth = -1

// Tier is a named range of viewport widths.
type Tier int

// Possible values of Tier.
const (
	Small Tier = iota
	Medium
	Large
)

var tierNames = [...]string{Small: "small", Medium: "medium", Large: "large"}

func (t Tier) String() string {
	if 0 <= t && int(t) < len(tierNames) {
		return tierNames[t]
	}
	return fmt.Sprintf("!(bad tier %d)", int(t))
}

// TierOf returns the tier of a viewport width. A negative width means the
// width is unknown and falls into Large.
func TierOf(widthPx int) Tier {
	switch {
	case widthPx < 0:
		return Large
	case widthPx <= SmallMaxPx:
		return Small
	case widthPx <= MediumMaxPx:
		return Medium
	default:
		return Large
	}
}

// Amount returns the display amount of the tier.
func (t Tier) Amount() DisplayAmount {
	switch t {
	case Small:
		return One
	case Medium:
		return Two
	default:
		return Four
	}
}

// Classify maps a viewport width in pixels to a display amount.
func Classify(widthPx int) DisplayAmount {
	return TierOf(widthPx).Amount()
}

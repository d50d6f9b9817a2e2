package border

import (
	"fmt"
	"math"
)

// Borders holds the detected border depth of each side in pixels.
type Borders struct {
	Top    int `json:"top"`
	Right  int `json:"right"`
	Bottom int `json:"bottom"`
	Left   int `json:"left"`
}

// HasBorders reports whether any side has a non-zero border.
func (b Borders) HasBorders() bool {
	return b.Top > 0 || b.Right > 0 || b.Bottom > 0 || b.Left > 0
}

// Side returns the depth of one side.
func (b Borders) Side(s Side) int {
	switch s.normalize() {
	case Top:
		return b.Top
	case Right:
		return b.Right
	case Bottom:
		return b.Bottom
	default:
		return b.Left
	}
}

// Set stores the depth of one side.
func (b *Borders) Set(s Side, depth int) {
	switch s.normalize() {
	case Top:
		b.Top = depth
	case Right:
		b.Right = depth
	case Bottom:
		b.Bottom = depth
	default:
		b.Left = depth
	}
}

// Min returns the per-side minimum of b and o.
func (b Borders) Min(o Borders) Borders {
	return Borders{
		Top:    min(b.Top, o.Top),
		Right:  min(b.Right, o.Right),
		Bottom: min(b.Bottom, o.Bottom),
		Left:   min(b.Left, o.Left),
	}
}

// Scale multiplies every side by m and rounds half to even.
func (b Borders) Scale(m float64) Borders {
	if m == 1 {
		return b
	}
	s := func(v int) int { return int(math.RoundToEven(float64(v) * m)) }
	return Borders{
		Top:    s(b.Top),
		Right:  s(b.Right),
		Bottom: s(b.Bottom),
		Left:   s(b.Left),
	}
}

func (b Borders) String() string {
	return fmt.Sprintf("(%d, %d, %d, %d)", b.Top, b.Right, b.Bottom, b.Left)
}

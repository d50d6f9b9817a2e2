package border

import "fmt"

// Side identifies one edge of an image. The numeric value is the number of
// counter-clockwise quarter turns Rotate applies to bring that edge to the top.
type Side int

const (
	Top Side = iota
	Right
	Bottom
	Left
)

// Sides lists the four sides in Borders order.
func Sides() [4]Side {
	return [4]Side{Top, Right, Bottom, Left}
}

func (s Side) normalize() Side {
	return ((s % 4) + 4) % 4
}

func (s Side) String() string {
	switch s {
	case Top:
		return "top"
	case Right:
		return "right"
	case Bottom:
		return "bottom"
	case Left:
		return "left"
	default:
		return fmt.Sprintf("Side(%d)", int(s))
	}
}

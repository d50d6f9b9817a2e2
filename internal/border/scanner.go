package border

import (
	"math"
	"math/rand/v2"

	"github.com/ironsheep/enimda-mcp/internal/entropy"
)

// window returns the search depth for a dimension of n pixels.
func window(indent float64, n int) int {
	return int(math.RoundToEven(indent * float64(n)))
}

// ScanRotated measures the border on the top rows of a grid that has already
// been rotated so the side of interest is row 0.
//
// The returned depth is in rows of g and never exceeds the search window
// round(indent * g.Height). A grid whose whole window is flat returns the
// window depth itself.
func ScanRotated(g Grid, opts Options) int {
	height := window(opts.Indent, g.Height)
	if g.Width == 0 || height == 0 {
		return 0
	}

	limit := opts.MaxIterations
	if limit <= 0 {
		limit = height + 1
	}

	border := 0
	for i := 0; i < limit && border < height; i++ {
		if firstInformative(g, border, height) == 0 {
			// Nothing but margin left inside the window.
			border = height
			break
		}

		sub := bestCut(g, border, height, opts.Threshold)
		if sub == 0 || sub == border {
			break
		}
		border = sub

		if opts.Fast {
			break
		}
	}
	return border
}

// firstInformative returns the smallest start in (border, height] such that
// rows [border, start) hold more than one distinct value, or 0 when every row
// up to height is a single value.
func firstInformative(g Grid, border, height int) int {
	var h entropy.Histogram
	for start := border + 1; start <= height; start++ {
		h.Add(g.Row(start - 1))
		if h.Distinct() > 1 {
			return start
		}
	}
	return 0
}

// bestCut evaluates candidate cuts from height down to border+1 and returns
// the one whose margin/interior entropy ratio is lowest and below threshold,
// or 0 when none qualifies. Ties keep the deepest candidate.
func bestCut(g Grid, border, height int, threshold float64) int {
	sub := 0
	delta := threshold
	for center := height; center > border; center-- {
		upper := entropy.Shannon(g.Band(border, center))
		lower := entropy.Shannon(g.Band(center, 2*center-border))

		diff := delta
		if lower != 0 {
			diff = upper / lower
		}

		if diff < delta && diff < threshold {
			sub = center
			delta = diff
		}
	}
	return sub
}

// sampleColumns picks n distinct random column indices out of width, or nil
// when n does not reduce the grid.
func sampleColumns(rng *rand.Rand, width, n int) []int {
	if n <= 0 || n >= width {
		return nil
	}
	return rng.Perm(width)[:n]
}

// scanSide rotates a frame, applies the optional column sample and measures
// one side.
func scanSide(frame Grid, side Side, columns []int, opts Options) int {
	rot := frame
	if side.normalize() != Top {
		rot = Rotate(frame, side)
	}
	if columns != nil {
		rot = rot.Columns(columns)
	}
	return ScanRotated(rot, opts)
}

package imaging

import (
	"github.com/anthonynsimon/bild/effect"
	"github.com/disintegration/imaging"

	"github.com/ironsheep/enimda-mcp/internal/border"
)

// Analysis holds the grayscale grids a border scan runs on.
type Analysis struct {
	// Frames holds one grid per decoded frame at analysis resolution.
	Frames []border.Grid

	// Multiplier converts depths measured on Frames back to original pixels.
	// It is 1.0 when no resizing happened.
	Multiplier float64

	// Width and Height are the analysis resolution.
	Width  int
	Height int
}

// Prepare shrinks every frame of img to fit within size×size (when size is
// positive and smaller than either dimension) using nearest-neighbor
// sampling, converts it to grayscale and returns the analysis grids.
//
// Nearest-neighbor keeps flat margins perfectly flat; smoothing filters would
// blend the margin edge into the content and blur the entropy step.
func Prepare(img *Image, size int) *Analysis {
	bounds := img.Bounds()
	w, h := bounds.Dx(), bounds.Dy()

	resize := size > 0 && (size < w || size < h)

	a := &Analysis{
		Frames:     make([]border.Grid, 0, len(img.Frames)),
		Multiplier: 1.0,
		Width:      w,
		Height:     h,
	}

	for _, frame := range img.Frames {
		src := frame
		if resize {
			src = imaging.Fit(frame, size, size, imaging.NearestNeighbor)
		}
		a.Frames = append(a.Frames, border.GridFromGray(effect.Grayscale(src)))
	}

	if resize && len(a.Frames) > 0 {
		a.Width, a.Height = a.Frames[0].Width, a.Frames[0].Height
		if w > h {
			a.Multiplier = float64(w) / float64(a.Width)
		} else {
			a.Multiplier = float64(h) / float64(a.Height)
		}
	}

	return a
}

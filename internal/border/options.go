package border

import (
	"errors"
	"fmt"
	"math"
)

// ErrInvalidOptions is returned when scan options are rejected before scanning.
var ErrInvalidOptions = errors.New("invalid scan options")

// Options controls a border scan.
//
// Use DefaultOptions as a starting point; the zero value is not valid.
type Options struct {
	// Threshold is the maximum upper/lower entropy ratio accepted as a border.
	// Lower values demand more contrast between margin and content. (0, 1].
	Threshold float64 `json:"threshold"`

	// Indent bounds the search depth as a fraction of the scanned dimension. (0, 1].
	Indent float64 `json:"indent"`

	// Fast stops after the first refinement; otherwise refinement repeats
	// until it converges or reaches the Indent bound.
	Fast bool `json:"fast"`

	// RowSample caps the number of image rows analyzed for the left and right
	// sides. 0 analyzes every row.
	RowSample int `json:"row_sample"`

	// ColumnSample caps the number of image columns analyzed for the top and
	// bottom sides. 0 analyzes every column.
	ColumnSample int `json:"column_sample"`

	// Frames is the fraction of frames analyzed for animated images. (0, 1].
	Frames float64 `json:"frames"`

	// MaxFrames caps the number of analyzed frames. 0 means no cap.
	MaxFrames int `json:"max_frames"`

	// MaxIterations bounds the refinement loop. 0 uses the search window
	// height plus one, which is enough for the loop to converge.
	MaxIterations int `json:"max_iterations"`

	// Workers limits concurrent side scans. 0 uses runtime.GOMAXPROCS(0).
	Workers int `json:"workers"`
}

// DefaultOptions returns the default scan options: threshold 0.5, indent 0.25,
// fast mode, no sampling.
func DefaultOptions() Options {
	return Options{
		Threshold: 0.5,
		Indent:    0.25,
		Fast:      true,
		Frames:    1.0,
	}
}

// Validate checks every field and returns an error wrapping ErrInvalidOptions
// for the first invalid one.
func (o Options) Validate() error {
	if !inUnitRange(o.Threshold) {
		return fmt.Errorf("%w: threshold %v outside (0, 1]", ErrInvalidOptions, o.Threshold)
	}
	if !inUnitRange(o.Indent) {
		return fmt.Errorf("%w: indent %v outside (0, 1]", ErrInvalidOptions, o.Indent)
	}
	if !inUnitRange(o.Frames) {
		return fmt.Errorf("%w: frames %v outside (0, 1]", ErrInvalidOptions, o.Frames)
	}
	if o.RowSample < 0 {
		return fmt.Errorf("%w: negative row sample %d", ErrInvalidOptions, o.RowSample)
	}
	if o.ColumnSample < 0 {
		return fmt.Errorf("%w: negative column sample %d", ErrInvalidOptions, o.ColumnSample)
	}
	if o.MaxFrames < 0 {
		return fmt.Errorf("%w: negative max frames %d", ErrInvalidOptions, o.MaxFrames)
	}
	if o.MaxIterations < 0 {
		return fmt.Errorf("%w: negative max iterations %d", ErrInvalidOptions, o.MaxIterations)
	}
	if o.Workers < 0 {
		return fmt.Errorf("%w: negative workers %d", ErrInvalidOptions, o.Workers)
	}
	return nil
}

// sample returns the column cap that applies to a side's rotated grid.
func (o Options) sample(side Side) int {
	switch side.normalize() {
	case Top, Bottom:
		return o.ColumnSample
	default:
		return o.RowSample
	}
}

func inUnitRange(v float64) bool {
	return !math.IsNaN(v) && v > 0 && v <= 1
}

package border

import (
	"fmt"
	"image"
)

// Grid is a row-major grid of 8-bit intensity values for one frame.
//
// A Grid is treated as immutable once built; Band returns views into Pix
// rather than copies.
type Grid struct {
	Width  int
	Height int
	Pix    []uint8
}

// NewGrid allocates a zero-filled grid.
func NewGrid(width, height int) Grid {
	if width < 0 || height < 0 {
		panic(fmt.Sprintf("border: negative grid size %dx%d", width, height))
	}
	return Grid{
		Width:  width,
		Height: height,
		Pix:    make([]uint8, width*height),
	}
}

// GridFromGray copies a grayscale image into a Grid. The image's bounds are
// translated so that Bounds().Min maps to (0,0).
func GridFromGray(img *image.Gray) Grid {
	b := img.Bounds()
	g := NewGrid(b.Dx(), b.Dy())
	for y := 0; y < g.Height; y++ {
		off := img.PixOffset(b.Min.X, b.Min.Y+y)
		copy(g.Pix[y*g.Width:(y+1)*g.Width], img.Pix[off:off+g.Width])
	}
	return g
}

// At returns the intensity at column x, row y.
func (g Grid) At(x, y int) uint8 {
	return g.Pix[y*g.Width+x]
}

// Set writes the intensity at column x, row y.
func (g Grid) Set(x, y int, v uint8) {
	g.Pix[y*g.Width+x] = v
}

// Row returns row y.
func (g Grid) Row(y int) []uint8 {
	return g.Pix[y*g.Width : (y+1)*g.Width]
}

// Band returns the pixels of rows [top, bottom) flattened in row order.
// Both ends are clamped to the grid; an empty or inverted range yields nil.
func (g Grid) Band(top, bottom int) []uint8 {
	top = clamp(top, 0, g.Height)
	bottom = clamp(bottom, 0, g.Height)
	if top >= bottom {
		return nil
	}
	return g.Pix[top*g.Width : bottom*g.Width]
}

// Columns returns a new grid made of the listed columns, in the given order.
func (g Grid) Columns(idx []int) Grid {
	out := NewGrid(len(idx), g.Height)
	for y := 0; y < g.Height; y++ {
		row := g.Row(y)
		dst := out.Row(y)
		for i, x := range idx {
			dst[i] = row[x]
		}
	}
	return out
}

// Rotate returns g rotated counter-clockwise by side*90°, so that the given
// side of the original grid becomes row 0 of the result. Sides outside 0-3
// are taken modulo 4.
//
// The inverse of Rotate(g, s) is Rotate(·, 4-s).
func Rotate(g Grid, side Side) Grid {
	k := side.normalize()
	if k == Top {
		out := NewGrid(g.Width, g.Height)
		copy(out.Pix, g.Pix)
		return out
	}

	w, h := g.Width, g.Height
	var out Grid
	switch k {
	case Right:
		// out[i][j] = g[j][w-1-i]
		out = NewGrid(h, w)
		for i := 0; i < w; i++ {
			for j := 0; j < h; j++ {
				out.Pix[i*h+j] = g.Pix[j*w+(w-1-i)]
			}
		}
	case Bottom:
		// out[i][j] = g[h-1-i][w-1-j]
		out = NewGrid(w, h)
		n := len(g.Pix)
		for i := 0; i < n; i++ {
			out.Pix[i] = g.Pix[n-1-i]
		}
	case Left:
		// out[i][j] = g[h-1-j][i]
		out = NewGrid(h, w)
		for i := 0; i < w; i++ {
			for j := 0; j < h; j++ {
				out.Pix[i*h+j] = g.Pix[(h-1-j)*w+i]
			}
		}
	}
	return out
}

func clamp(val, min, max int) int {
	if val < min {
		return min
	}
	if val > max {
		return max
	}
	return val
}

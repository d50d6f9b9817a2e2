package imaging

import (
	"bytes"
	"image"
	"image/color"
	"image/color/palette"
	"image/gif"
	"math/rand/v2"
	"testing"
)

// createInMemoryImage creates an in-memory image filled with a single color.
func createInMemoryImage(width, height int, c color.Color) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, width, height))
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			img.Set(x, y, c)
		}
	}
	return img
}

// createPatternImage creates an image with four colored quadrants:
// red top-left, green top-right, blue bottom-left, white bottom-right.
func createPatternImage(width, height int) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, width, height))
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			var c color.Color
			if x < width/2 && y < height/2 {
				c = color.RGBA{255, 0, 0, 255}
			} else if x >= width/2 && y < height/2 {
				c = color.RGBA{0, 255, 0, 255}
			} else if x < width/2 && y >= height/2 {
				c = color.RGBA{0, 0, 255, 255}
			} else {
				c = color.RGBA{255, 255, 255, 255}
			}
			img.Set(x, y, c)
		}
	}
	return img
}

// createBorderedImage creates random-noise content surrounded by a matte of
// the given color and depths (top, right, bottom, left).
func createBorderedImage(width, height int, matte color.Color, top, right, bottom, left int, seed uint64) *image.RGBA {
	rng := rand.New(rand.NewPCG(seed, seed+7))
	img := image.NewRGBA(image.Rect(0, 0, width, height))
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			if y < top || y >= height-bottom || x < left || x >= width-right {
				img.Set(x, y, matte)
				continue
			}
			v := uint8(rng.IntN(256))
			img.Set(x, y, color.RGBA{v, uint8(rng.IntN(256)), 255 - v, 255})
		}
	}
	return img
}

// still wraps one frame into an Image.
func still(frame image.Image) *Image {
	return &Image{Frames: []image.Image{frame}, Format: "png"}
}

// encodeTestGIF encodes paletted frames as an animated GIF.
func encodeTestGIF(t *testing.T, frames []*image.Paletted, delays []int) []byte {
	t.Helper()
	var buf bytes.Buffer
	g := &gif.GIF{Image: frames, Delay: delays}
	if err := gif.EncodeAll(&buf, g); err != nil {
		t.Fatalf("failed to encode gif: %v", err)
	}
	return buf.Bytes()
}

// solidPaletted returns a paletted frame filled with palette index idx.
func solidPaletted(r image.Rectangle, idx uint8) *image.Paletted {
	p := image.NewPaletted(r, palette.WebSafe)
	for i := range p.Pix {
		p.Pix[i] = idx
	}
	return p
}

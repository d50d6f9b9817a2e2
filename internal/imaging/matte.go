package imaging

import (
	"image"
	"math"
	"strings"

	colorful "github.com/lucasb-eyer/go-colorful"

	"github.com/ironsheep/enimda-mcp/internal/border"
)

// RGBColor represents an RGB color with 8-bit components.
type RGBColor struct {
	R uint8 `json:"r"` // Red component (0-255)
	G uint8 `json:"g"` // Green component (0-255)
	B uint8 `json:"b"` // Blue component (0-255)
}

// HSLColor represents a color in HSL (Hue, Saturation, Lightness) color space.
type HSLColor struct {
	H int `json:"h"` // Hue: 0-360 degrees (0=red, 120=green, 240=blue)
	S int `json:"s"` // Saturation: 0-100 percent (0=gray, 100=vivid)
	L int `json:"l"` // Lightness: 0-100 percent (0=black, 50=normal, 100=white)
}

// MarginColor describes the dominant color of one detected margin.
type MarginColor struct {
	// Side is "top", "right", "bottom" or "left".
	Side string `json:"side"`

	// Depth is the border depth in pixels.
	Depth int `json:"depth"`

	// Hex is the dominant (quantized) color as "#RRGGBB".
	Hex string `json:"hex"`

	RGB RGBColor `json:"rgb"`
	HSL HSLColor `json:"hsl"`

	// Coverage is the percentage of margin pixels with the dominant color (0-100).
	Coverage float64 `json:"coverage"`
}

// MarginColorsResult lists the margins found on an image, in side order.
type MarginColorsResult struct {
	Borders border.Borders `json:"borders"`
	Margins []MarginColor  `json:"margins"`
}

// MarginColors reports the dominant color of every non-zero margin on the
// first frame of img.
//
// # Color Quantization
//
// To group near-identical colors (JPEG noise in a black letterbox, for
// example), each RGB component is quantized as:
//
//	quantized = (original / 16) * 16
//
// so colors within 16 units of each other per component share a bucket.
func MarginColors(img *Image, b border.Borders) (*MarginColorsResult, error) {
	frame := img.Frames[0]
	bounds := frame.Bounds()
	if _, err := ContentRect(bounds, b); err != nil {
		return nil, err
	}

	result := &MarginColorsResult{Borders: b, Margins: []MarginColor{}}
	for _, side := range border.Sides() {
		depth := b.Side(side)
		if depth == 0 {
			continue
		}
		region := marginRect(bounds, side, depth)
		rgb, coverage := dominantColor(frame, region)

		c := colorful.Color{
			R: float64(rgb.R) / 255.0,
			G: float64(rgb.G) / 255.0,
			B: float64(rgb.B) / 255.0,
		}
		h, s, l := c.Hsl()
		if math.IsNaN(h) {
			h = 0
		}

		result.Margins = append(result.Margins, MarginColor{
			Side:     side.String(),
			Depth:    depth,
			Hex:      strings.ToUpper(c.Hex()),
			RGB:      rgb,
			HSL:      HSLColor{H: int(h), S: int(s * 100), L: int(l * 100)},
			Coverage: math.Round(coverage*1000) / 10,
		})
	}
	return result, nil
}

// marginRect returns the band of depth pixels along one side.
func marginRect(bounds image.Rectangle, side border.Side, depth int) image.Rectangle {
	switch side {
	case border.Top:
		return image.Rect(bounds.Min.X, bounds.Min.Y, bounds.Max.X, bounds.Min.Y+depth)
	case border.Right:
		return image.Rect(bounds.Max.X-depth, bounds.Min.Y, bounds.Max.X, bounds.Max.Y)
	case border.Bottom:
		return image.Rect(bounds.Min.X, bounds.Max.Y-depth, bounds.Max.X, bounds.Max.Y)
	default:
		return image.Rect(bounds.Min.X, bounds.Min.Y, bounds.Min.X+depth, bounds.Max.Y)
	}
}

// dominantColor returns the most frequent quantized color in region and the
// fraction of pixels it covers.
func dominantColor(img image.Image, region image.Rectangle) (RGBColor, float64) {
	counts := make(map[RGBColor]int)
	total := 0
	for y := region.Min.Y; y < region.Max.Y; y++ {
		for x := region.Min.X; x < region.Max.X; x++ {
			r, g, b, _ := img.At(x, y).RGBA()
			key := RGBColor{
				R: uint8((r >> 8) / 16 * 16),
				G: uint8((g >> 8) / 16 * 16),
				B: uint8((b >> 8) / 16 * 16),
			}
			counts[key]++
			total++
		}
	}

	var best RGBColor
	bestCount := -1
	for c, n := range counts {
		// Break ties by value so the result does not depend on map order.
		if n > bestCount || (n == bestCount && less(c, best)) {
			best, bestCount = c, n
		}
	}
	if total == 0 {
		return best, 0
	}
	return best, float64(bestCount) / float64(total)
}

func less(a, b RGBColor) bool {
	if a.R != b.R {
		return a.R < b.R
	}
	if a.G != b.G {
		return a.G < b.G
	}
	return a.B < b.B
}

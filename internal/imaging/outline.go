package imaging

import (
	"fmt"
	"image"
	"image/color"
	"strconv"
	"strings"

	"github.com/disintegration/imaging"
	colorful "github.com/lucasb-eyer/go-colorful"

	"github.com/ironsheep/enimda-mcp/internal/border"
)

// DefaultOutlineColor is used when no outline color is given or it cannot be parsed.
const DefaultOutlineColor = "#FF0000"

// Dash pattern of the guide lines, in pixels.
const (
	dashOn  = 4
	dashOff = 4
)

// OutlineResult contains the outlined image data
type OutlineResult struct {
	Width       int            `json:"width"`
	Height      int            `json:"height"`
	Borders     border.Borders `json:"borders"`
	ImageBase64 string         `json:"image_base64"`
	MimeType    string         `json:"mime_type"`
	SavedPath   string         `json:"saved_path,omitempty"`
}

// OutlineBorders draws dotted guide lines along the inner edge of every
// non-zero border on every frame of img. Lines span the whole image. Sides
// without a border are left untouched.
func OutlineBorders(img *Image, b border.Borders, colorHex string) (*Image, error) {
	lineColor, err := parseHexColor(colorHex)
	if err != nil {
		lineColor, _ = parseHexColor(DefaultOutlineColor)
	}

	frames := make([]image.Image, 0, len(img.Frames))
	for i, frame := range img.Frames {
		bounds := frame.Bounds()
		if _, err := ContentRect(bounds, b); err != nil {
			return nil, fmt.Errorf("frame %d: %w", i, err)
		}

		// imaging.Clone rebases the frame to (0,0).
		canvas := imaging.Clone(frame)
		w, h := bounds.Dx(), bounds.Dy()

		if b.Top > 0 {
			drawDashedH(canvas, b.Top, w, lineColor)
		}
		if b.Bottom > 0 {
			drawDashedH(canvas, h-1-b.Bottom, w, lineColor)
		}
		if b.Left > 0 {
			drawDashedV(canvas, b.Left, h, lineColor)
		}
		if b.Right > 0 {
			drawDashedV(canvas, w-1-b.Right, h, lineColor)
		}
		frames = append(frames, canvas)
	}

	out := img.withFrames(frames)
	if len(img.Palettes) > 0 {
		out.Palettes = make([]color.Palette, len(img.Palettes))
		for i, pal := range img.Palettes {
			out.Palettes[i] = withColor(pal, lineColor)
		}
	}
	return out, nil
}

// withColor returns a copy of pal that holds c exactly. A full palette gives
// up the entry nearest to c. Empty palettes are returned as is.
func withColor(pal color.Palette, c color.NRGBA) color.Palette {
	if len(pal) == 0 {
		return pal
	}
	cr, cg, cb, ca := c.RGBA()
	for _, p := range pal {
		if r, g, b, a := p.RGBA(); r == cr && g == cg && b == cb && a == ca {
			return pal
		}
	}

	out := make(color.Palette, len(pal), max(len(pal)+1, 256))
	copy(out, pal)
	if len(out) < 256 {
		return append(out, c)
	}
	out[out.Index(c)] = c
	return out
}

// Outline draws the guide lines and returns the result encoded for transport.
// When outputPath is set the result is also written there.
func Outline(img *Image, b border.Borders, colorHex, outputPath string) (*OutlineResult, error) {
	outlined, err := OutlineBorders(img, b, colorHex)
	if err != nil {
		return nil, err
	}

	if outputPath != "" {
		if err := Save(outlined, outputPath); err != nil {
			return nil, err
		}
	}

	data, mime, err := EncodeBase64(outlined)
	if err != nil {
		return nil, fmt.Errorf("failed to encode outlined image: %w", err)
	}

	bounds := outlined.Bounds()
	return &OutlineResult{
		Width:       bounds.Dx(),
		Height:      bounds.Dy(),
		Borders:     b,
		ImageBase64: data,
		MimeType:    mime,
		SavedPath:   outputPath,
	}, nil
}

func drawDashedH(img *image.NRGBA, y, width int, c color.NRGBA) {
	for x := 0; x < width; x++ {
		if x%(dashOn+dashOff) < dashOn {
			img.SetNRGBA(x, y, c)
		}
	}
}

func drawDashedV(img *image.NRGBA, x, height int, c color.NRGBA) {
	for y := 0; y < height; y++ {
		if y%(dashOn+dashOff) < dashOn {
			img.SetNRGBA(x, y, c)
		}
	}
}

// parseHexColor parses "#RGB", "#RRGGBB" or "#RRGGBBAA".
func parseHexColor(hex string) (color.NRGBA, error) {
	if len(hex) == 0 {
		return color.NRGBA{}, fmt.Errorf("empty color string")
	}
	if !strings.HasPrefix(hex, "#") {
		hex = "#" + hex
	}

	alpha := uint8(255)
	if len(hex) == 9 {
		a, err := strconv.ParseUint(hex[7:], 16, 8)
		if err != nil {
			return color.NRGBA{}, fmt.Errorf("invalid alpha in %q: %w", hex, err)
		}
		alpha = uint8(a)
		hex = hex[:7]
	}

	c, err := colorful.Hex(hex)
	if err != nil {
		return color.NRGBA{}, fmt.Errorf("invalid hex color %q: %w", hex, err)
	}
	r, g, b := c.RGB255()
	return color.NRGBA{R: r, G: g, B: b, A: alpha}, nil
}

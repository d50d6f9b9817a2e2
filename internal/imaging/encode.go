package imaging

import (
	"bytes"
	"encoding/base64"
	"fmt"
	"image"
	"image/color/palette"
	"image/draw"
	"image/gif"
	"io"
	"os"

	"github.com/disintegration/imaging"
)

// Encode writes img in the given format ("png", "jpeg", "gif", "bmp" or
// "tiff"). Animated images written as GIF keep all frames; other formats
// receive the first frame only.
func Encode(w io.Writer, img *Image, format string) error {
	f, err := imaging.FormatFromExtension(format)
	if err != nil {
		return fmt.Errorf("unsupported output format %q: %w", format, err)
	}
	if f == imaging.GIF && img.Animated() {
		return gif.EncodeAll(w, toGIF(img))
	}
	return imaging.Encode(w, img.Frames[0], f, imaging.JPEGQuality(95))
}

// Save writes img to path, choosing the format from the file extension.
func Save(img *Image, path string) error {
	f, err := imaging.FormatFromFilename(path)
	if err != nil {
		return fmt.Errorf("unsupported output file %q: %w", path, err)
	}
	if f != imaging.GIF || !img.Animated() {
		if err := imaging.Save(img.Frames[0], path, imaging.JPEGQuality(95)); err != nil {
			return fmt.Errorf("failed to save image: %w", err)
		}
		return nil
	}

	out, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create output file: %w", err)
	}
	if err := gif.EncodeAll(out, toGIF(img)); err != nil {
		out.Close()
		return fmt.Errorf("failed to encode gif: %w", err)
	}
	if err := out.Close(); err != nil {
		return fmt.Errorf("failed to close output file: %w", err)
	}
	return nil
}

// EncodeBase64 encodes img as base64 for transport: animated images as GIF,
// still images as PNG. It returns the data and its MIME type.
func EncodeBase64(img *Image) (string, string, error) {
	format, mime := "png", "image/png"
	if img.Animated() {
		format, mime = "gif", "image/gif"
	}

	var buf bytes.Buffer
	if err := Encode(&buf, img, format); err != nil {
		return "", "", err
	}
	return base64.StdEncoding.EncodeToString(buf.Bytes()), mime, nil
}

// toGIF maps every frame back onto its source palette (Plan 9 for frames
// without one) for gif.EncodeAll.
func toGIF(img *Image) *gif.GIF {
	g := &gif.GIF{
		Image:     make([]*image.Paletted, len(img.Frames)),
		Delay:     make([]int, len(img.Frames)),
		LoopCount: img.LoopCount,
	}
	for i, frame := range img.Frames {
		pal := palette.Plan9
		if i < len(img.Palettes) && len(img.Palettes[i]) > 0 {
			pal = img.Palettes[i]
		}
		bounds := frame.Bounds()
		p := image.NewPaletted(image.Rect(0, 0, bounds.Dx(), bounds.Dy()), pal)
		draw.Draw(p, p.Bounds(), frame, bounds.Min, draw.Src)
		g.Image[i] = p
		if i < len(img.Delays) {
			g.Delay[i] = img.Delays[i]
		}
	}
	return g
}

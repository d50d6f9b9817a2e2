package imaging

import (
	"bytes"
	"encoding/base64"
	"errors"
	"image"
	"image/color"
	"image/png"
	"path/filepath"
	"testing"

	"github.com/ironsheep/enimda-mcp/internal/border"
)

func TestContentRect(t *testing.T) {
	bounds := image.Rect(0, 0, 100, 80)

	tests := []struct {
		name    string
		b       border.Borders
		want    image.Rectangle
		wantErr bool
	}{
		{"no borders", border.Borders{}, bounds, false},
		{"all sides", border.Borders{Top: 5, Right: 10, Bottom: 15, Left: 20}, image.Rect(20, 5, 90, 65), false},
		{"leaves one pixel", border.Borders{Top: 79, Left: 99}, image.Rect(99, 79, 100, 80), false},
		{"horizontal overlap", border.Borders{Left: 50, Right: 50}, image.Rectangle{}, true},
		{"vertical overlap", border.Borders{Top: 60, Bottom: 30}, image.Rectangle{}, true},
		{"negative", border.Borders{Top: -1}, image.Rectangle{}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ContentRect(bounds, tt.b)
			if (err != nil) != tt.wantErr {
				t.Fatalf("error: got %v, wantErr %v", err, tt.wantErr)
			}
			if got != tt.want {
				t.Errorf("got %v, want %v", got, tt.want)
			}
		})
	}
}

func TestContentRect_NoContentError(t *testing.T) {
	_, err := ContentRect(image.Rect(0, 0, 10, 10), border.Borders{Top: 10})
	if !errors.Is(err, ErrNoContent) {
		t.Errorf("got %v, want ErrNoContent", err)
	}
}

func TestCropBorders(t *testing.T) {
	img := still(createBorderedImage(100, 80, color.RGBA{0, 0, 0, 255}, 5, 10, 15, 20, 2))
	b := border.Borders{Top: 5, Right: 10, Bottom: 15, Left: 20}

	cropped, err := CropBorders(img, b)
	if err != nil {
		t.Fatalf("CropBorders failed: %v", err)
	}

	bounds := cropped.Bounds()
	if bounds.Dx() != 70 || bounds.Dy() != 60 {
		t.Fatalf("dimensions: got %dx%d, want 70x60", bounds.Dx(), bounds.Dy())
	}

	// The first cropped pixel is the first content pixel of the original.
	r1, g1, b1, _ := cropped.Frames[0].At(bounds.Min.X, bounds.Min.Y).RGBA()
	r2, g2, b2, _ := img.Frames[0].At(20, 5).RGBA()
	if r1 != r2 || g1 != g2 || b1 != b2 {
		t.Error("cropped origin does not match original content origin")
	}

	// The source image is left untouched.
	if img.Bounds().Dx() != 100 {
		t.Error("CropBorders modified the source image")
	}
}

func TestCropBorders_AllFrames(t *testing.T) {
	img := &Image{
		Frames: []image.Image{
			createInMemoryImage(40, 30, color.RGBA{255, 0, 0, 255}),
			createInMemoryImage(40, 30, color.RGBA{0, 255, 0, 255}),
		},
		Delays: []int{10, 20},
		Format: "gif",
	}

	cropped, err := CropBorders(img, border.Borders{Top: 2, Right: 3, Bottom: 4, Left: 5})
	if err != nil {
		t.Fatalf("CropBorders failed: %v", err)
	}
	if len(cropped.Frames) != 2 {
		t.Fatalf("frames: got %d, want 2", len(cropped.Frames))
	}
	for i, f := range cropped.Frames {
		if f.Bounds().Dx() != 32 || f.Bounds().Dy() != 24 {
			t.Errorf("frame %d: got %dx%d, want 32x24", i, f.Bounds().Dx(), f.Bounds().Dy())
		}
	}
	if cropped.Delays[1] != 20 {
		t.Errorf("delays not preserved: %v", cropped.Delays)
	}
}

func TestCropBorders_NoContent(t *testing.T) {
	img := still(createInMemoryImage(10, 10, color.White))
	if _, err := CropBorders(img, border.Borders{Left: 6, Right: 4}); !errors.Is(err, ErrNoContent) {
		t.Errorf("got %v, want ErrNoContent", err)
	}
}

func TestCrop(t *testing.T) {
	img := still(createPatternImage(100, 100))

	result, err := Crop(img, border.Borders{Right: 50, Bottom: 50}, "")
	if err != nil {
		t.Fatalf("Crop failed: %v", err)
	}

	if result.Width != 50 || result.Height != 50 {
		t.Errorf("dimensions: got %dx%d, want 50x50", result.Width, result.Height)
	}
	if result.MimeType != "image/png" {
		t.Errorf("MimeType: got %s, want image/png", result.MimeType)
	}

	decoded, err := base64.StdEncoding.DecodeString(result.ImageBase64)
	if err != nil {
		t.Fatalf("failed to decode base64: %v", err)
	}
	croppedImg, err := png.Decode(bytes.NewReader(decoded))
	if err != nil {
		t.Fatalf("failed to decode PNG: %v", err)
	}

	// Top-left quadrant of the pattern is red.
	r, g, b, _ := croppedImg.At(25, 25).RGBA()
	if uint8(r>>8) != 255 || uint8(g>>8) != 0 || uint8(b>>8) != 0 {
		t.Errorf("cropped image color: got (%d,%d,%d), want (255,0,0)", r>>8, g>>8, b>>8)
	}
}

func TestCrop_SavesOutput(t *testing.T) {
	img := still(createPatternImage(60, 40))
	out := filepath.Join(t.TempDir(), "cropped.png")

	result, err := Crop(img, border.Borders{Top: 10, Left: 20}, out)
	if err != nil {
		t.Fatalf("Crop failed: %v", err)
	}
	if result.SavedPath != out {
		t.Errorf("SavedPath: got %q, want %q", result.SavedPath, out)
	}

	info, err := LoadImageInfo(NewImageCache(0), out)
	if err != nil {
		t.Fatalf("saved file unreadable: %v", err)
	}
	if info.Width != 40 || info.Height != 30 {
		t.Errorf("saved dimensions: got %dx%d, want 40x30", info.Width, info.Height)
	}
}

package imaging

import (
	"errors"
	"fmt"
	"image"

	"github.com/disintegration/imaging"

	"github.com/ironsheep/enimda-mcp/internal/border"
)

// ErrNoContent is returned when borders leave no pixels to keep.
var ErrNoContent = errors.New("borders leave no content")

// CropResult contains the cropped image data
type CropResult struct {
	Width       int            `json:"width"`
	Height      int            `json:"height"`
	Borders     border.Borders `json:"borders"`
	ImageBase64 string         `json:"image_base64"`
	MimeType    string         `json:"mime_type"`
	SavedPath   string         `json:"saved_path,omitempty"`
}

// ContentRect returns the region left inside the borders of an image with the
// given bounds.
func ContentRect(bounds image.Rectangle, b border.Borders) (image.Rectangle, error) {
	if b.Top < 0 || b.Right < 0 || b.Bottom < 0 || b.Left < 0 {
		return image.Rectangle{}, fmt.Errorf("negative border %v", b)
	}
	r := image.Rect(
		bounds.Min.X+b.Left,
		bounds.Min.Y+b.Top,
		bounds.Max.X-b.Right,
		bounds.Max.Y-b.Bottom,
	)
	if r.Dx() <= 0 || r.Dy() <= 0 {
		return image.Rectangle{}, fmt.Errorf("%w: borders %v on %dx%d image",
			ErrNoContent, b, bounds.Dx(), bounds.Dy())
	}
	return r, nil
}

// CropBorders removes the given borders from every frame of img.
func CropBorders(img *Image, b border.Borders) (*Image, error) {
	frames := make([]image.Image, 0, len(img.Frames))
	for i, frame := range img.Frames {
		r, err := ContentRect(frame.Bounds(), b)
		if err != nil {
			return nil, fmt.Errorf("frame %d: %w", i, err)
		}
		frames = append(frames, imaging.Crop(frame, r))
	}
	return img.withFrames(frames), nil
}

// Crop removes the given borders and returns the result encoded for
// transport. When outputPath is set the result is also written there.
func Crop(img *Image, b border.Borders, outputPath string) (*CropResult, error) {
	cropped, err := CropBorders(img, b)
	if err != nil {
		return nil, err
	}

	if outputPath != "" {
		if err := Save(cropped, outputPath); err != nil {
			return nil, err
		}
	}

	data, mime, err := EncodeBase64(cropped)
	if err != nil {
		return nil, fmt.Errorf("failed to encode cropped image: %w", err)
	}

	bounds := cropped.Bounds()
	return &CropResult{
		Width:       bounds.Dx(),
		Height:      bounds.Dy(),
		Borders:     b,
		ImageBase64: data,
		MimeType:    mime,
		SavedPath:   outputPath,
	}, nil
}

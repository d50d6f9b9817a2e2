package imaging

import (
	"bytes"
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"image/gif"
	_ "image/jpeg" // Register JPEG format decoder
	_ "image/png"  // Register PNG format decoder
	"io"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/disintegration/imaging"
	_ "golang.org/x/image/bmp"  // Register BMP format decoder
	_ "golang.org/x/image/tiff" // Register TIFF format decoder
	_ "golang.org/x/image/webp" // Register WebP format decoder
)

// Image is a decoded still or animated image.
//
// Frames always holds at least one frame. For GIF input every frame is the
// full logical screen after compositing, so all frames share one size.
type Image struct {
	// Frames are the decoded frames in display order.
	Frames []image.Image

	// Delays are per-frame delays in 100ths of a second (GIF only).
	Delays []int

	// Palettes are the source palettes of GIF frames, used when re-encoding.
	Palettes []color.Palette

	// LoopCount is the GIF loop count (0 loops forever).
	LoopCount int

	// Format is the name of the decoder that read the image, e.g. "png" or "gif".
	Format string
}

// Bounds returns the bounds of the first frame.
func (im *Image) Bounds() image.Rectangle {
	return im.Frames[0].Bounds()
}

// Animated reports whether the image has more than one frame.
func (im *Image) Animated() bool {
	return len(im.Frames) > 1
}

// withFrames returns a copy of im's metadata carrying new frames.
func (im *Image) withFrames(frames []image.Image) *Image {
	return &Image{
		Frames:    frames,
		Delays:    im.Delays,
		Palettes:  im.Palettes,
		LoopCount: im.LoopCount,
		Format:    im.Format,
	}
}

// Decode reads a still or animated image from r. A positive limit caps the
// number of GIF frames kept.
func Decode(r io.Reader, limit int) (*Image, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("failed to read image: %w", err)
	}

	_, format, err := image.DecodeConfig(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("failed to decode image: %w", err)
	}

	if format == "gif" {
		g, err := gif.DecodeAll(bytes.NewReader(data))
		if err != nil {
			return nil, fmt.Errorf("failed to decode image: %w", err)
		}
		return fromGIF(g, limit), nil
	}

	img, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("failed to decode image: %w", err)
	}
	return &Image{Frames: []image.Image{img}, Format: format}, nil
}

// fromGIF composites the frames of g onto its logical screen.
func fromGIF(g *gif.GIF, limit int) *Image {
	screen := image.Rect(0, 0, g.Config.Width, g.Config.Height)
	if screen.Empty() {
		for _, p := range g.Image {
			screen = screen.Union(p.Bounds())
		}
	}

	n := len(g.Image)
	if limit > 0 && limit < n {
		n = limit
	}

	out := &Image{
		Frames:    make([]image.Image, 0, n),
		Delays:    make([]int, 0, n),
		Palettes:  make([]color.Palette, 0, n),
		LoopCount: g.LoopCount,
		Format:    "gif",
	}

	canvas := image.NewNRGBA(screen)
	for i := 0; i < n; i++ {
		frame := g.Image[i]

		var disposal byte
		if i < len(g.Disposal) {
			disposal = g.Disposal[i]
		}
		var previous *image.NRGBA
		if disposal == gif.DisposalPrevious {
			previous = imaging.Clone(canvas)
		}

		draw.Draw(canvas, frame.Bounds(), frame, frame.Bounds().Min, draw.Over)
		out.Frames = append(out.Frames, imaging.Clone(canvas))
		out.Palettes = append(out.Palettes, frame.Palette)
		delay := 0
		if i < len(g.Delay) {
			delay = g.Delay[i]
		}
		out.Delays = append(out.Delays, delay)

		switch disposal {
		case gif.DisposalBackground:
			draw.Draw(canvas, frame.Bounds(), image.Transparent, image.Point{}, draw.Src)
		case gif.DisposalPrevious:
			canvas = previous
		}
	}
	return out
}

// ImageCache provides thread-safe caching of loaded images to avoid redundant disk reads.
//
// The cache stores decoded images keyed by their file path together with the
// file's modification time and size. Load re-stats the file on every call and
// decodes it again when either has changed, so a file rewritten in place is
// never served stale.
//
// # Memory Management
//
// Animated images keep every decoded frame in memory. Use a frame limit for
// long animations, and Evict() to release an entry.
type ImageCache struct {
	mu         sync.RWMutex
	images     map[string]cacheEntry
	frameLimit int
}

type cacheEntry struct {
	img     *Image
	modTime time.Time
	size    int64
}

// NewImageCache creates an empty cache that keeps at most frameLimit frames
// of animated images. A limit of 0 keeps every frame.
func NewImageCache(frameLimit int) *ImageCache {
	return &ImageCache{
		images:     make(map[string]cacheEntry),
		frameLimit: frameLimit,
	}
}

// Load retrieves an image from the cache or loads it from disk if not cached
// or if the file changed since it was cached.
//
// The image is cached using the exact path string provided. Different paths to
// the same file (e.g., relative vs absolute) result in separate cache entries.
//
// # Errors
//
//   - Returns error if the file does not exist or cannot be read
//   - Returns error if the file is not a supported image
func (c *ImageCache) Load(path string) (*Image, error) {
	stat, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open image: %w", err)
	}

	c.mu.RLock()
	entry, ok := c.images[path]
	c.mu.RUnlock()
	if ok && entry.modTime.Equal(stat.ModTime()) && entry.size == stat.Size() {
		return entry.img, nil
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open image: %w", err)
	}
	defer f.Close()

	img, err := Decode(f, c.frameLimit)
	if err != nil {
		return nil, err
	}

	c.mu.Lock()
	c.images[path] = cacheEntry{img: img, modTime: stat.ModTime(), size: stat.Size()}
	c.mu.Unlock()

	return img, nil
}

// Evict removes a specific image from the cache by its path.
func (c *ImageCache) Evict(path string) {
	c.mu.Lock()
	delete(c.images, path)
	c.mu.Unlock()
}

// ImageInfo contains metadata about a loaded image file.
type ImageInfo struct {
	// Width is the image width in pixels.
	Width int `json:"width"`

	// Height is the image height in pixels.
	Height int `json:"height"`

	// Format is the format implied by the file extension: "png", "jpeg",
	// "gif", "bmp", "tiff", "webp" or "unknown".
	Format string `json:"format"`

	// FrameCount is the number of decoded frames (1 for still images).
	FrameCount int `json:"frame_count"`

	// Animated is true when the image has more than one frame.
	Animated bool `json:"animated"`

	// FileSizeBytes is the size of the image file on disk in bytes.
	FileSizeBytes int64 `json:"file_size_bytes"`
}

// LoadImageInfo loads an image and returns metadata about it.
//
// The format is determined by file extension; the frame count reflects the
// cache's frame limit.
func LoadImageInfo(cache *ImageCache, path string) (*ImageInfo, error) {
	img, err := cache.Load(path)
	if err != nil {
		return nil, err
	}

	stat, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("failed to stat file: %w", err)
	}

	bounds := img.Bounds()
	return &ImageInfo{
		Width:         bounds.Dx(),
		Height:        bounds.Dy(),
		Format:        formatFromExt(path),
		FrameCount:    len(img.Frames),
		Animated:      img.Animated(),
		FileSizeBytes: stat.Size(),
	}, nil
}

func formatFromExt(path string) string {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".png":
		return "png"
	case ".jpg", ".jpeg":
		return "jpeg"
	case ".gif":
		return "gif"
	case ".bmp":
		return "bmp"
	case ".tif", ".tiff":
		return "tiff"
	case ".webp":
		return "webp"
	default:
		return "unknown"
	}
}

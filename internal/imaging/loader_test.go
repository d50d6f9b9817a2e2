package imaging

import (
	"bytes"
	"image"
	"image/color"
	"image/color/palette"
	"image/png"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"
)

// createTestImage creates a simple test image file and returns its path.
// The caller is responsible for removing the file.
func createTestImage(t *testing.T, width, height int, c color.Color) string {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, width, height))
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			img.Set(x, y, c)
		}
	}

	tmpFile, err := os.CreateTemp("", "test-image-*.png")
	if err != nil {
		t.Fatalf("failed to create temp file: %v", err)
	}
	defer tmpFile.Close()

	if err := png.Encode(tmpFile, img); err != nil {
		os.Remove(tmpFile.Name())
		t.Fatalf("failed to encode image: %v", err)
	}

	return tmpFile.Name()
}

// createBorderedTestImage writes a black-matted noise image to a temp PNG
// file and returns its path.
func createBorderedTestImage(t *testing.T, width, height, top, right, bottom, left int) string {
	t.Helper()
	img := createBorderedImage(width, height, color.RGBA{0, 0, 0, 255}, top, right, bottom, left, 1)

	path := filepath.Join(t.TempDir(), "bordered.png")
	f, err := os.Create(path)
	if err != nil {
		t.Fatalf("failed to create file: %v", err)
	}
	defer f.Close()

	if err := png.Encode(f, img); err != nil {
		t.Fatalf("failed to encode image: %v", err)
	}

	return path
}

func TestNewImageCache(t *testing.T) {
	cache := NewImageCache(0)
	if cache == nil {
		t.Fatal("NewImageCache returned nil")
	}
	if cache.images == nil {
		t.Fatal("NewImageCache did not initialize images map")
	}
}

func TestImageCache_Load(t *testing.T) {
	cache := NewImageCache(0)
	imgPath := createTestImage(t, 100, 100, color.RGBA{255, 0, 0, 255})
	defer os.Remove(imgPath)

	// First load
	img1, err := cache.Load(imgPath)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if img1 == nil {
		t.Fatal("Load returned nil image")
	}

	bounds := img1.Bounds()
	if bounds.Dx() != 100 || bounds.Dy() != 100 {
		t.Errorf("unexpected dimensions: got %dx%d, want 100x100", bounds.Dx(), bounds.Dy())
	}

	// Second load should return cached image
	img2, err := cache.Load(imgPath)
	if err != nil {
		t.Fatalf("second Load failed: %v", err)
	}
	if img1 != img2 {
		t.Error("second Load did not return cached image")
	}
}

func TestImageCache_Load_NonExistent(t *testing.T) {
	cache := NewImageCache(0)
	_, err := cache.Load("/nonexistent/path/to/image.png")
	if err == nil {
		t.Error("Load should fail for non-existent file")
	}
}

func TestImageCache_Load_InvalidImage(t *testing.T) {
	cache := NewImageCache(0)

	// Create a file with invalid image data
	tmpFile, err := os.CreateTemp("", "invalid-image-*.png")
	if err != nil {
		t.Fatalf("failed to create temp file: %v", err)
	}
	tmpFile.WriteString("not an image")
	tmpFile.Close()
	defer os.Remove(tmpFile.Name())

	_, err = cache.Load(tmpFile.Name())
	if err == nil {
		t.Error("Load should fail for invalid image data")
	}
}

func TestImageCache_Load_FileChanged(t *testing.T) {
	cache := NewImageCache(0)
	imgPath := createTestImage(t, 50, 50, color.RGBA{0, 255, 0, 255})
	defer os.Remove(imgPath)

	first, err := cache.Load(imgPath)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	// Overwrite the file in place with a smaller image and a later mtime.
	replacement := image.NewRGBA(image.Rect(0, 0, 30, 20))
	var buf bytes.Buffer
	if err := png.Encode(&buf, replacement); err != nil {
		t.Fatalf("failed to encode image: %v", err)
	}
	if err := os.WriteFile(imgPath, buf.Bytes(), 0o644); err != nil {
		t.Fatalf("failed to rewrite image: %v", err)
	}
	later := time.Now().Add(2 * time.Second)
	if err := os.Chtimes(imgPath, later, later); err != nil {
		t.Fatalf("failed to touch image: %v", err)
	}

	second, err := cache.Load(imgPath)
	if err != nil {
		t.Fatalf("second Load failed: %v", err)
	}
	if second == first {
		t.Fatal("Load returned the stale cached image after the file changed")
	}
	if b := second.Bounds(); b.Dx() != 30 || b.Dy() != 20 {
		t.Errorf("reloaded dimensions: got %dx%d, want 30x20", b.Dx(), b.Dy())
	}

	third, err := cache.Load(imgPath)
	if err != nil {
		t.Fatalf("third Load failed: %v", err)
	}
	if third != second {
		t.Error("unchanged file was decoded again")
	}
}

func TestImageCache_Evict(t *testing.T) {
	cache := NewImageCache(0)
	imgPath := createTestImage(t, 50, 50, color.RGBA{0, 0, 255, 255})
	defer os.Remove(imgPath)

	// Load image
	_, err := cache.Load(imgPath)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	// Evict
	cache.Evict(imgPath)

	// Verify image is evicted
	cache.mu.RLock()
	_, exists := cache.images[imgPath]
	cache.mu.RUnlock()

	if exists {
		t.Error("Evict did not remove image from cache")
	}
}

func TestImageCache_Evict_NonExistent(t *testing.T) {
	cache := NewImageCache(0)
	// Should not panic
	cache.Evict("/nonexistent/path")
}

func TestImageCache_ConcurrentAccess(t *testing.T) {
	cache := NewImageCache(0)
	imgPath := createTestImage(t, 50, 50, color.RGBA{128, 128, 128, 255})
	defer os.Remove(imgPath)

	var wg sync.WaitGroup
	errors := make(chan error, 100)

	// Concurrent loads
	for i := 0; i < 100; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := cache.Load(imgPath)
			if err != nil {
				errors <- err
			}
		}()
	}

	wg.Wait()
	close(errors)

	for err := range errors {
		t.Errorf("concurrent Load error: %v", err)
	}
}

func TestLoadImageInfo(t *testing.T) {
	cache := NewImageCache(0)
	imgPath := createTestImage(t, 200, 150, color.RGBA{255, 128, 64, 255})
	defer os.Remove(imgPath)

	info, err := LoadImageInfo(cache, imgPath)
	if err != nil {
		t.Fatalf("LoadImageInfo failed: %v", err)
	}

	if info.Width != 200 {
		t.Errorf("Width: got %d, want 200", info.Width)
	}
	if info.Height != 150 {
		t.Errorf("Height: got %d, want 150", info.Height)
	}
	if info.Format != "png" {
		t.Errorf("Format: got %s, want png", info.Format)
	}
	if info.FileSizeBytes <= 0 {
		t.Error("FileSizeBytes should be positive")
	}
	if info.FrameCount != 1 || info.Animated {
		t.Errorf("still image: got %d frames, animated=%v", info.FrameCount, info.Animated)
	}
}

func TestLoadImageInfo_FormatDetection(t *testing.T) {
	cache := NewImageCache(0)

	tests := []struct {
		ext    string
		format string
	}{
		{".png", "png"},
		{".jpg", "jpeg"},
		{".jpeg", "jpeg"},
		{".gif", "gif"},
		{".bmp", "bmp"},
		{".TIFF", "tiff"},
		{".webp", "webp"},
		{".xyz", "unknown"},
	}

	for _, tt := range tests {
		t.Run(tt.ext, func(t *testing.T) {
			// Create a temp file with specific extension
			tmpDir := os.TempDir()
			tmpPath := filepath.Join(tmpDir, "test-format"+tt.ext)

			// Create a valid PNG regardless of extension
			img := image.NewRGBA(image.Rect(0, 0, 10, 10))
			f, err := os.Create(tmpPath)
			if err != nil {
				t.Fatalf("failed to create file: %v", err)
			}
			png.Encode(f, img)
			f.Close()
			defer os.Remove(tmpPath)

			info, err := LoadImageInfo(cache, tmpPath)
			if err != nil {
				t.Fatalf("LoadImageInfo failed: %v", err)
			}

			if info.Format != tt.format {
				t.Errorf("Format for %s: got %s, want %s", tt.ext, info.Format, tt.format)
			}
		})
	}
}

func TestLoadImageInfo_NonExistent(t *testing.T) {
	cache := NewImageCache(0)
	_, err := LoadImageInfo(cache, "/nonexistent/image.png")
	if err == nil {
		t.Error("LoadImageInfo should fail for non-existent file")
	}
}

func TestDecode_AnimatedGIF(t *testing.T) {
	screen := image.Rect(0, 0, 20, 10)
	data := encodeTestGIF(t, []*image.Paletted{
		solidPaletted(screen, 0),
		// Partial frame over the left half only.
		solidPaletted(image.Rect(0, 0, 10, 10), 5),
		solidPaletted(screen, 10),
	}, []int{10, 20, 30})

	img, err := Decode(bytes.NewReader(data), 0)
	if err != nil {
		t.Fatalf("Decode failed: %v", err)
	}

	if img.Format != "gif" {
		t.Errorf("Format: got %s, want gif", img.Format)
	}
	if len(img.Frames) != 3 || !img.Animated() {
		t.Fatalf("frames: got %d, want 3", len(img.Frames))
	}
	for i, f := range img.Frames {
		if f.Bounds() != screen {
			t.Errorf("frame %d bounds: got %v, want %v", i, f.Bounds(), screen)
		}
	}
	if img.Delays[1] != 20 {
		t.Errorf("delay: got %d, want 20", img.Delays[1])
	}

	// The partial frame is composited over the first one.
	left := color.NRGBAModel.Convert(img.Frames[1].At(2, 2)).(color.NRGBA)
	right := color.NRGBAModel.Convert(img.Frames[1].At(15, 2)).(color.NRGBA)
	wantLeft := color.NRGBAModel.Convert(palette.WebSafe[5]).(color.NRGBA)
	wantRight := color.NRGBAModel.Convert(palette.WebSafe[0]).(color.NRGBA)
	if left != wantLeft || right != wantRight {
		t.Errorf("composited frame: left %v right %v, want %v and %v", left, right, wantLeft, wantRight)
	}
}

func TestDecode_FrameLimit(t *testing.T) {
	screen := image.Rect(0, 0, 8, 8)
	data := encodeTestGIF(t, []*image.Paletted{
		solidPaletted(screen, 0),
		solidPaletted(screen, 1),
		solidPaletted(screen, 2),
		solidPaletted(screen, 3),
	}, []int{5, 5, 5, 5})

	img, err := Decode(bytes.NewReader(data), 2)
	if err != nil {
		t.Fatalf("Decode failed: %v", err)
	}
	if len(img.Frames) != 2 || len(img.Delays) != 2 || len(img.Palettes) != 2 {
		t.Errorf("limit 2: got %d frames, %d delays, %d palettes",
			len(img.Frames), len(img.Delays), len(img.Palettes))
	}
}

func TestDecode_Invalid(t *testing.T) {
	if _, err := Decode(strings.NewReader("not an image"), 0); err == nil {
		t.Error("Decode should fail for invalid data")
	}
}

func TestImageCache_FrameLimit(t *testing.T) {
	screen := image.Rect(0, 0, 8, 8)
	data := encodeTestGIF(t, []*image.Paletted{
		solidPaletted(screen, 0),
		solidPaletted(screen, 1),
		solidPaletted(screen, 2),
	}, []int{5, 5, 5})

	path := filepath.Join(t.TempDir(), "anim.gif")
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatalf("failed to write gif: %v", err)
	}

	info, err := LoadImageInfo(NewImageCache(1), path)
	if err != nil {
		t.Fatalf("LoadImageInfo failed: %v", err)
	}
	if info.FrameCount != 1 || info.Animated {
		t.Errorf("limited cache: got %d frames, animated=%v", info.FrameCount, info.Animated)
	}

	info, err = LoadImageInfo(NewImageCache(0), path)
	if err != nil {
		t.Fatalf("LoadImageInfo failed: %v", err)
	}
	if info.FrameCount != 3 || !info.Animated {
		t.Errorf("unlimited cache: got %d frames, animated=%v", info.FrameCount, info.Animated)
	}
}

// Package imaging loads, prepares and edits images around the border detector.
//
// It is the imaging collaborator of package border: it decodes still and
// animated images into full-canvas frames, shrinks and converts them into
// grayscale analysis grids, and applies detected borders back to the original
// frames by cropping or by drawing dotted guide lines.
//
// # Coordinate System
//
// All pixel coordinates in this package are 0-based:
//   - X: horizontal position (0 = leftmost pixel)
//   - Y: vertical position (0 = topmost pixel)
//   - For regions, (x1,y1) is inclusive (top-left), (x2,y2) is exclusive (bottom-right)
//
// Border depths are counted in pixels from each edge of the original image,
// as returned by border.Borders.
//
// # Animated Images
//
// GIF files are decoded with every frame composited onto the logical screen
// so each Frames entry is a complete picture. Delays, palettes
// and the loop count are kept so edited animations can be written back with
// gif.EncodeAll.
//
// # Thread Safety
//
// The ImageCache type is safe for concurrent use. Images returned by the cache
// are shared and must not be modified; the editing functions in this package
// always return new images.
//
// # Formats
//
// PNG, JPEG and GIF are decoded by the standard library; BMP, TIFF and WebP
// decoders are registered from golang.org/x/image. Output supports PNG, JPEG,
// GIF, BMP and TIFF.
package imaging

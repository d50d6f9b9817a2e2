// Package border finds uniform borders (letterboxing, mattes, padding) around
// the content of still and animated images.
//
// Detection works on grayscale pixel grids and compares the Shannon entropy of
// a candidate margin band with the entropy of an equally wide band just inside
// it. A margin is accepted when its entropy is markedly lower than the
// interior's, i.e. when the ratio upper/lower falls below the configured
// threshold.
//
// # Sides and Rotation
//
// All four sides are scanned with the same top-of-grid logic. Rotate turns a
// grid counter-clockwise by side*90° so the side of interest becomes row 0:
//
//	Top    (0): no rotation
//	Right  (1): 90° counter-clockwise, rotated columns are image rows
//	Bottom (2): 180°
//	Left   (3): 270° counter-clockwise, rotated columns are image rows
//
// The depth measured on the rotated grid is the depth of that absolute side,
// so no offset translation is required on the way back. Rotating by side and
// then by 4-side returns the original grid.
//
// # Frames
//
// Detector.Scan runs the per-side scan on every selected frame and keeps the
// minimum depth per side: a margin must be present in every analyzed frame.
// The minimum is rescaled by the size multiplier back into the coordinate
// space of the original image.
//
// # Randomness
//
// Frame and column sampling draw from a *rand.Rand owned by the Detector.
// Inject one with WithRand or WithSeed for reproducible results; sampling sets
// are drawn before any work is scheduled, so results do not depend on
// goroutine ordering.
package border

// Package imaging moves pixels between image files and topology masks.
//
// It decodes source images (with a path-keyed cache), binarizes them into
// topology.Mask values, renders masks and label grids back to PNG, and crops
// the source image around a region's bounding box. The topology package never
// touches files or image.Image values; everything that does lives here.
//
// # Coordinate System
//
// Masks are indexed (row, col). Row r, column c of a mask built by Binarize is
// image pixel (Min.X+c, Min.Y+r). Rendered images always start at (0, 0).
//
// # Binarization
//
// A pixel is foreground when its luminance is at least BinarizeOptions.Threshold.
// The default threshold of 127 selects pixels strictly brighter than 126. Set
// Invert for dark strokes on a light background.
// Fully transparent pixels are background under either polarity.
//
// # Thread Safety
//
// ImageCache is safe for concurrent use. All other functions are stateless.
//
// # Error Handling
//
// Functions return errors for:
//   - File I/O and decode failures while loading
//   - Empty images and scales that leave no pixels (wrapping topology.ErrInvalidParameter)
//   - Crop boxes outside the image
//   - PNG encoding failures
package imaging

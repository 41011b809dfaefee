package imaging

import (
	"fmt"
	"image"
	"image/color"

	"github.com/anthonynsimon/bild/effect"
	"github.com/anthonynsimon/bild/segment"
	"github.com/disintegration/imaging"

	"github.com/ironsheep/image-topology-mcp/internal/topology"
)

// DefaultThreshold marks a pixel foreground when its luminance is at least
// 127, i.e. strictly brighter than 126.
const DefaultThreshold = 127

// BinarizeOptions controls how a decoded image becomes a mask.
type BinarizeOptions struct {
	// Threshold is the minimum luminance (0-255) of a foreground pixel.
	Threshold uint8

	// Invert swaps light and dark before thresholding, for dark ink on a
	// light background.
	Invert bool
}

// DefaultBinarizeOptions returns the fixed-threshold, non-inverted defaults.
func DefaultBinarizeOptions() BinarizeOptions {
	return BinarizeOptions{Threshold: DefaultThreshold}
}

// Binarize converts an image to a topology.Mask.
//
// The image is flattened onto an opaque backdrop, reduced to luminance,
// optionally inverted, then thresholded. Mask row r and column c correspond to
// image pixel (Min.X+c, Min.Y+r).
//
// The backdrop is black, or white when Invert is set, so fully transparent
// pixels are always background and partially transparent ones blend toward
// background.
func Binarize(img image.Image, opts BinarizeOptions) (*topology.Mask, error) {
	bounds := img.Bounds()
	if bounds.Empty() {
		return nil, fmt.Errorf("%w: image has no pixels", topology.ErrInvalidParameter)
	}

	backdrop := color.Black
	if opts.Invert {
		backdrop = color.White
	}
	flat := imaging.Overlay(imaging.New(bounds.Dx(), bounds.Dy(), backdrop), img, image.Pt(0, 0), 1.0)

	var src image.Image = imaging.Grayscale(flat)
	if opts.Invert {
		src = effect.Invert(src)
	}
	bw := segment.Threshold(src, opts.Threshold)

	mask, err := topology.NewMask(bounds.Dy(), bounds.Dx())
	if err != nil {
		return nil, err
	}
	for r := 0; r < mask.Rows; r++ {
		row := bw.Pix[r*bw.Stride : r*bw.Stride+mask.Cols]
		for c, v := range row {
			mask.Pix[r*mask.Cols+c] = v != 0
		}
	}
	return mask, nil
}

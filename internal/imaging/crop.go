package imaging

import (
	"bytes"
	"encoding/base64"
	"fmt"
	"image"
	"image/png"

	"github.com/disintegration/imaging"

	"github.com/ironsheep/image-topology-mcp/internal/topology"
)

// CropResult contains the cropped source image data
type CropResult struct {
	Width       int    `json:"width"`
	Height      int    `json:"height"`
	ImageBase64 string `json:"image_base64"`
	MimeType    string `json:"mime_type"`
}

// CropRegion cuts the source image down to a region's bounding box. The box is
// in mask coordinates (rows/cols, inclusive) relative to the image origin.
func CropRegion(img image.Image, box topology.BoundingBox, scale float64) (*CropResult, error) {
	bounds := img.Bounds()

	if box.MinRow < 0 || box.MinCol < 0 || box.MaxRow >= bounds.Dy() || box.MaxCol >= bounds.Dx() {
		return nil, fmt.Errorf("crop box (%d,%d)-(%d,%d) outside %dx%d image",
			box.MinRow, box.MinCol, box.MaxRow, box.MaxCol, bounds.Dy(), bounds.Dx())
	}
	if box.MinRow > box.MaxRow || box.MinCol > box.MaxCol {
		return nil, fmt.Errorf("invalid crop box: min corner must not exceed max corner")
	}

	rect := image.Rect(
		bounds.Min.X+box.MinCol, bounds.Min.Y+box.MinRow,
		bounds.Min.X+box.MaxCol+1, bounds.Min.Y+box.MaxRow+1,
	)
	cropped := imaging.Crop(img, rect)

	if scale != 1.0 && scale > 0 {
		newWidth := int(float64(cropped.Bounds().Dx()) * scale)
		newHeight := int(float64(cropped.Bounds().Dy()) * scale)
		if newWidth < 1 || newHeight < 1 {
			return nil, fmt.Errorf("scale %.3f leaves an empty image", scale)
		}
		cropped = imaging.Resize(cropped, newWidth, newHeight, imaging.Lanczos)
	}

	var buf bytes.Buffer
	if err := png.Encode(&buf, cropped); err != nil {
		return nil, fmt.Errorf("failed to encode cropped image: %w", err)
	}

	return &CropResult{
		Width:       cropped.Bounds().Dx(),
		Height:      cropped.Bounds().Dy(),
		ImageBase64: base64.StdEncoding.EncodeToString(buf.Bytes()),
		MimeType:    "image/png",
	}, nil
}

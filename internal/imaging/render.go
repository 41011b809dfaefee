package imaging

import (
	"bytes"
	"encoding/base64"
	"fmt"
	"image"
	"image/color"
	"image/png"
	"math"

	"github.com/disintegration/imaging"
	colorful "github.com/lucasb-eyer/go-colorful"

	"github.com/ironsheep/image-topology-mcp/internal/topology"
)

// MaskImageResult contains a rendered mask encoded as base64 PNG.
type MaskImageResult struct {
	Width       int    `json:"width"`
	Height      int    `json:"height"`
	ImageBase64 string `json:"image_base64"`
	MimeType    string `json:"mime_type"`
}

// LabelImageResult contains a rendered label grid plus the color assigned to
// each label, indexed from label 1.
type LabelImageResult struct {
	Width       int      `json:"width"`
	Height      int      `json:"height"`
	ImageBase64 string   `json:"image_base64"`
	MimeType    string   `json:"mime_type"`
	Palette     []string `json:"palette"`
}

// MaskToGray renders foreground as white (255) and background as black (0).
func MaskToGray(m *topology.Mask) *image.Gray {
	img := image.NewGray(image.Rect(0, 0, m.Cols, m.Rows))
	for r := 0; r < m.Rows; r++ {
		for c := 0; c < m.Cols; c++ {
			if m.Pix[r*m.Cols+c] {
				img.Pix[r*img.Stride+c] = 0xFF
			}
		}
	}
	return img
}

// EncodeMask renders a mask as PNG. A scale other than 1 resizes the output
// with nearest-neighbor sampling so cells stay crisp.
func EncodeMask(m *topology.Mask, scale float64) (*MaskImageResult, error) {
	if m == nil || m.Rows < 1 || m.Cols < 1 {
		return nil, fmt.Errorf("%w: nothing to render", topology.ErrInvalidParameter)
	}
	out, err := encodePNG(MaskToGray(m), scale)
	if err != nil {
		return nil, err
	}
	return &MaskImageResult{
		Width:       out.width,
		Height:      out.height,
		ImageBase64: out.data,
		MimeType:    "image/png",
	}, nil
}

// LabelPalette returns n colors with hues stepped by the golden angle, so
// consecutive labels are far apart on the color wheel. The result depends only
// on n.
func LabelPalette(n int) []colorful.Color {
	palette := make([]colorful.Color, n)
	for i := range palette {
		hue := math.Mod(float64(i)*137.508, 360)
		palette[i] = colorful.Hsv(hue, 0.65, 0.95)
	}
	return palette
}

// LabelsToRGBA renders background black and label k with palette color k-1.
func LabelsToRGBA(g *topology.LabelGrid) (*image.NRGBA, []colorful.Color) {
	palette := LabelPalette(g.Count)
	img := image.NewNRGBA(image.Rect(0, 0, g.Cols, g.Rows))
	for r := 0; r < g.Rows; r++ {
		for c := 0; c < g.Cols; c++ {
			var col color.NRGBA
			col.A = 0xFF
			if l := g.Labels[r*g.Cols+c]; l > 0 && l <= len(palette) {
				col.R, col.G, col.B = palette[l-1].Clamped().RGB255()
			}
			img.SetNRGBA(c, r, col)
		}
	}
	return img, palette
}

// EncodeLabels renders a label grid as a color PNG.
func EncodeLabels(g *topology.LabelGrid, scale float64) (*LabelImageResult, error) {
	if g == nil || g.Rows < 1 || g.Cols < 1 {
		return nil, fmt.Errorf("%w: nothing to render", topology.ErrInvalidParameter)
	}
	img, palette := LabelsToRGBA(g)
	out, err := encodePNG(img, scale)
	if err != nil {
		return nil, err
	}
	hex := make([]string, len(palette))
	for i, c := range palette {
		hex[i] = c.Clamped().Hex()
	}
	return &LabelImageResult{
		Width:       out.width,
		Height:      out.height,
		ImageBase64: out.data,
		MimeType:    "image/png",
		Palette:     hex,
	}, nil
}

type encoded struct {
	width, height int
	data          string
}

func encodePNG(img image.Image, scale float64) (*encoded, error) {
	if scale != 1.0 && scale > 0 {
		newWidth := int(float64(img.Bounds().Dx()) * scale)
		newHeight := int(float64(img.Bounds().Dy()) * scale)
		if newWidth < 1 || newHeight < 1 {
			return nil, fmt.Errorf("%w: scale %.3f leaves an empty image", topology.ErrInvalidParameter, scale)
		}
		img = imaging.Resize(img, newWidth, newHeight, imaging.NearestNeighbor)
	}

	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return nil, fmt.Errorf("failed to encode image: %w", err)
	}
	return &encoded{
		width:  img.Bounds().Dx(),
		height: img.Bounds().Dy(),
		data:   base64.StdEncoding.EncodeToString(buf.Bytes()),
	}, nil
}

package imaging

import (
	"bytes"
	"encoding/base64"
	"image"
	"image/png"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ironsheep/image-topology-mcp/internal/topology"
)

func decodePNG(t *testing.T, data string) image.Image {
	t.Helper()
	raw, err := base64.StdEncoding.DecodeString(data)
	require.NoError(t, err)
	img, err := png.Decode(bytes.NewReader(raw))
	require.NoError(t, err)
	return img
}

func TestEncodeMask_RoundTrip(t *testing.T) {
	mask := topology.MustParse(
		"#...",
		".##.",
		"...#",
	)
	res, err := EncodeMask(mask, 1.0)
	require.NoError(t, err)
	assert.Equal(t, 4, res.Width)
	assert.Equal(t, 3, res.Height)
	assert.Equal(t, "image/png", res.MimeType)

	back, err := Binarize(decodePNG(t, res.ImageBase64), DefaultBinarizeOptions())
	require.NoError(t, err)
	assert.True(t, back.Equal(mask), "got %v", back.Strings())
}

func TestEncodeMask_Scale(t *testing.T) {
	mask := topology.MustParse("#.", ".#")
	res, err := EncodeMask(mask, 3.0)
	require.NoError(t, err)
	assert.Equal(t, 6, res.Width)
	assert.Equal(t, 6, res.Height)

	back, err := Binarize(decodePNG(t, res.ImageBase64), DefaultBinarizeOptions())
	require.NoError(t, err)
	assert.Equal(t, []string{
		"###...",
		"###...",
		"###...",
		"...###",
		"...###",
		"...###",
	}, back.Strings())

	_, err = EncodeMask(mask, 0.1)
	assert.ErrorIs(t, err, topology.ErrInvalidParameter)

	_, err = EncodeMask(nil, 1.0)
	assert.ErrorIs(t, err, topology.ErrInvalidParameter)
}

func TestLabelPalette(t *testing.T) {
	a := LabelPalette(12)
	b := LabelPalette(12)
	assert.Equal(t, a, b)

	seen := make(map[string]bool)
	for _, c := range a {
		seen[c.Clamped().Hex()] = true
	}
	assert.Len(t, seen, 12, "palette colors should be distinct")
	assert.Empty(t, LabelPalette(0))
}

func TestEncodeLabels(t *testing.T) {
	mask := topology.MustParse(
		"#..#",
		"#..#",
	)
	grid, err := topology.Label(mask)
	require.NoError(t, err)

	res, err := EncodeLabels(grid, 1.0)
	require.NoError(t, err)
	require.Len(t, res.Palette, 2)
	assert.NotEqual(t, res.Palette[0], res.Palette[1])

	img := decodePNG(t, res.ImageBase64)
	r, g, b, _ := img.At(1, 0).RGBA()
	assert.Zero(t, r+g+b, "background should be black")

	c1 := img.At(0, 0)
	c2 := img.At(3, 0)
	assert.Equal(t, c1, img.At(0, 1))
	assert.NotEqual(t, c1, c2)

	_, err = EncodeLabels(nil, 1.0)
	assert.ErrorIs(t, err, topology.ErrInvalidParameter)
}

package imaging

import (
	"image"
	"image/color"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ironsheep/image-topology-mcp/internal/topology"
)

func TestCropRegion(t *testing.T) {
	img := createImageFromRows(
		"......",
		"..##..",
		"..###.",
		"......",
	)
	regions, err := topology.RegionProps(mustBinarize(t, img))
	require.NoError(t, err)
	require.Len(t, regions, 1)

	res, err := CropRegion(img, regions[0].Box, 1.0)
	require.NoError(t, err)
	assert.Equal(t, 3, res.Width)
	assert.Equal(t, 2, res.Height)
	assert.Equal(t, "image/png", res.MimeType)

	back := mustBinarize(t, decodePNG(t, res.ImageBase64))
	assert.Equal(t, regions[0].Mask.Strings(), back.Strings())
}

func TestCropRegion_OffsetImage(t *testing.T) {
	full := createInMemoryImage(10, 10, color.Black)
	full.Set(5, 6, color.White)
	sub := full.SubImage(image.Rect(4, 4, 10, 10))

	box := topology.BoundingBox{MinRow: 2, MinCol: 1, MaxRow: 2, MaxCol: 1}
	res, err := CropRegion(sub, box, 1.0)
	require.NoError(t, err)
	back := mustBinarize(t, decodePNG(t, res.ImageBase64))
	assert.Equal(t, []string{"#"}, back.Strings())
}

func TestCropRegion_Scale(t *testing.T) {
	img := createInMemoryImage(20, 20, color.White)
	res, err := CropRegion(img, topology.BoundingBox{MinRow: 0, MinCol: 0, MaxRow: 9, MaxCol: 4}, 2.0)
	require.NoError(t, err)
	assert.Equal(t, 10, res.Width)
	assert.Equal(t, 20, res.Height)
}

func TestCropRegion_Invalid(t *testing.T) {
	img := createInMemoryImage(10, 10, color.White)
	tests := []struct {
		name string
		box  topology.BoundingBox
	}{
		{"negative", topology.BoundingBox{MinRow: -1, MinCol: 0, MaxRow: 2, MaxCol: 2}},
		{"past bottom", topology.BoundingBox{MinRow: 0, MinCol: 0, MaxRow: 10, MaxCol: 2}},
		{"past right", topology.BoundingBox{MinRow: 0, MinCol: 0, MaxRow: 2, MaxCol: 10}},
		{"inverted", topology.BoundingBox{MinRow: 5, MinCol: 0, MaxRow: 2, MaxCol: 2}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := CropRegion(img, tt.box, 1.0)
			assert.Error(t, err)
		})
	}
}

func mustBinarize(t *testing.T, img image.Image) *topology.Mask {
	t.Helper()
	m, err := Binarize(img, DefaultBinarizeOptions())
	require.NoError(t, err)
	return m
}

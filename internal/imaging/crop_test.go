package imaging

import (
	"bytes"
	"encoding/base64"
	"image"
	"image/color"
	"image/png"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ironsheep/distance-tools-mcp/internal/distancing"
)

// twoPeople is a white 200×100 frame with a red figure on the left and a
// blue figure on the right.
func twoPeople() *image.RGBA {
	img := newFrame(200, 100, color.White)
	for y := 20; y < 80; y++ {
		for x := 30; x < 50; x++ {
			img.Set(x, y, color.RGBA{255, 0, 0, 255})
		}
		for x := 150; x < 170; x++ {
			img.Set(x, y, color.RGBA{0, 0, 255, 255})
		}
	}
	return img
}

func decodeCrop(t *testing.T, r *CropResult) image.Image {
	t.Helper()
	data, err := base64.StdEncoding.DecodeString(r.ImageBase64)
	require.NoError(t, err)
	img, err := png.Decode(bytes.NewReader(data))
	require.NoError(t, err)
	return img
}

func TestBoxRegion(t *testing.T) {
	bounds := image.Rect(0, 0, 200, 100)

	tests := []struct {
		name    string
		box     distancing.BoundingBox
		padding int
		want    Region
	}{
		{"exact", distancing.Box(20, 30, 80, 50), 0, Region{30, 20, 50, 80}},
		{"fractional edges grow outward", distancing.Box(20.4, 30.6, 79.2, 49.1), 0, Region{30, 20, 50, 80}},
		{"padded", distancing.Box(20, 30, 80, 50), 5, Region{25, 15, 55, 85}},
		{"reversed corners", distancing.Box(80, 50, 20, 30), 0, Region{30, 20, 50, 80}},
		{"clamped", distancing.Box(-10, -10, 120, 250), 0, Region{0, 0, 200, 100}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, BoxRegion(tt.box, tt.padding, bounds))
		})
	}
}

func TestCropDetection(t *testing.T) {
	img := twoPeople()

	result, err := CropDetection(img, distancing.Box(20, 150, 80, 170), 0, 1.0)
	require.NoError(t, err)
	assert.Equal(t, 20, result.Width)
	assert.Equal(t, 60, result.Height)
	assert.Equal(t, "image/png", result.MimeType)
	assert.Equal(t, Region{150, 20, 170, 80}, result.Region)

	crop := decodeCrop(t, result)
	r, g, b, _ := crop.At(10, 30).RGBA()
	assert.Equal(t, [3]uint32{0, 0, 0xffff}, [3]uint32{r, g, b})
}

func TestCropDetection_PaddingAndScale(t *testing.T) {
	img := twoPeople()

	result, err := CropDetection(img, distancing.Box(20, 30, 80, 50), 10, 2.0)
	require.NoError(t, err)
	assert.Equal(t, Region{20, 10, 60, 90}, result.Region)
	assert.Equal(t, 80, result.Width)
	assert.Equal(t, 160, result.Height)

	result, err = CropDetection(img, distancing.Box(20, 30, 80, 50), 0, 0)
	require.NoError(t, err)
	assert.Equal(t, 20, result.Width)
}

func TestCropDetection_Errors(t *testing.T) {
	img := twoPeople()

	tests := []struct {
		name    string
		box     distancing.BoundingBox
		padding int
		scale   float64
	}{
		{"outside frame", distancing.Box(200, 300, 260, 320), 0, 1},
		{"zero area", distancing.Box(20, 30, 20, 50), 0, 1},
		{"negative padding", distancing.Box(20, 30, 80, 50), -1, 1},
		{"scale too small", distancing.Box(20, 30, 80, 50), 0, 0.001},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := CropDetection(img, tt.box, tt.padding, tt.scale)
			assert.Error(t, err)
		})
	}
}

func TestCheckBoxes(t *testing.T) {
	img := twoPeople()
	boxes := []distancing.BoundingBox{
		distancing.Box(20, 30, 80, 50),
		distancing.Box(-5, 10, 40, 30),
		distancing.Box(0, 0, 100, 200),
		distancing.Box(50, 180, 90, 210),
	}

	check := CheckBoxes(img, boxes)
	assert.Equal(t, 200, check.ImageWidth)
	assert.Equal(t, 100, check.ImageHeight)
	assert.Equal(t, []int{1, 3}, check.OutOfBounds)

	assert.Empty(t, CheckBoxes(img, nil).OutOfBounds)
}

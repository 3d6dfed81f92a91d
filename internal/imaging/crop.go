package imaging

import (
	"bytes"
	"encoding/base64"
	"fmt"
	"image"
	"image/png"
	"math"

	"github.com/disintegration/imaging"

	"github.com/ironsheep/distance-tools-mcp/internal/distancing"
)

// CropResult contains one detection cut out of its frame.
type CropResult struct {
	// Region is the pixel rectangle actually cropped, after padding and
	// clamping to the frame.
	Region      Region `json:"region"`
	Width       int    `json:"width"`
	Height      int    `json:"height"`
	ImageBase64 string `json:"image_base64"`
	MimeType    string `json:"mime_type"`
}

// Region is an integer pixel rectangle; (X1,Y1) inclusive, (X2,Y2) exclusive.
type Region struct {
	X1 int `json:"x1"`
	Y1 int `json:"y1"`
	X2 int `json:"x2"`
	Y2 int `json:"y2"`
}

// BoxRegion converts a detection box into the pixel rectangle that covers it,
// grown by padding pixels on every side and clamped to bounds.
func BoxRegion(box distancing.BoundingBox, padding int, bounds image.Rectangle) Region {
	x1 := int(math.Floor(math.Min(box.Left, box.Right))) - padding
	y1 := int(math.Floor(math.Min(box.Top, box.Bottom))) - padding
	x2 := int(math.Ceil(math.Max(box.Left, box.Right))) + padding
	y2 := int(math.Ceil(math.Max(box.Top, box.Bottom))) + padding

	return Region{
		X1: clamp(x1, bounds.Min.X, bounds.Max.X),
		Y1: clamp(y1, bounds.Min.Y, bounds.Max.Y),
		X2: clamp(x2, bounds.Min.X, bounds.Max.X),
		Y2: clamp(y2, bounds.Min.Y, bounds.Max.Y),
	}
}

// CropDetection extracts the area under one detection box as a PNG.
//
// Parameters:
//   - img: The frame the detection came from.
//   - box: The detection, in the frame's pixel coordinates.
//   - padding: Extra pixels added on every side before clamping (>= 0).
//   - scale: Resize factor for the crop, e.g. 2.0 to double it. 0 or 1
//     leaves it unchanged.
//
// Returns:
//   - *CropResult: The cropped region and its base64-encoded PNG.
//   - error: Non-nil if the crop cannot be produced.
//
// # Errors
//
//   - ErrInvalidBox (from distancing) if a coordinate is NaN or infinite
//   - Returns error if padding is negative
//   - Returns error if the padded box does not overlap the frame
//   - Returns error if scale shrinks the crop below one pixel
func CropDetection(img image.Image, box distancing.BoundingBox, padding int, scale float64) (*CropResult, error) {
	if err := box.Validate(); err != nil {
		return nil, err
	}
	if padding < 0 {
		return nil, fmt.Errorf("padding must be >= 0, got %d", padding)
	}

	r := BoxRegion(box, padding, img.Bounds())
	if r.X1 >= r.X2 || r.Y1 >= r.Y2 {
		return nil, fmt.Errorf("box %v does not overlap image bounds %v", box, img.Bounds())
	}

	cropped := imaging.Crop(img, image.Rect(r.X1, r.Y1, r.X2, r.Y2))

	if scale != 1.0 && scale > 0 {
		newWidth := int(float64(cropped.Bounds().Dx()) * scale)
		newHeight := int(float64(cropped.Bounds().Dy()) * scale)
		if newWidth < 1 || newHeight < 1 {
			return nil, fmt.Errorf("scale %.3f shrinks crop below one pixel", scale)
		}
		cropped = imaging.Resize(cropped, newWidth, newHeight, imaging.Lanczos)
	}

	var buf bytes.Buffer
	if err := png.Encode(&buf, cropped); err != nil {
		return nil, fmt.Errorf("failed to encode cropped image: %w", err)
	}

	return &CropResult{
		Region:      r,
		Width:       cropped.Bounds().Dx(),
		Height:      cropped.Bounds().Dy(),
		ImageBase64: base64.StdEncoding.EncodeToString(buf.Bytes()),
		MimeType:    "image/png",
	}, nil
}

// BoundsCheck lists the detections that extend past the frame edges.
type BoundsCheck struct {
	ImageWidth  int   `json:"image_width"`
	ImageHeight int   `json:"image_height"`
	OutOfBounds []int `json:"out_of_bounds"`
}

// CheckBoxes reports, by index, every box not fully inside img.
//
// Parameters:
//   - img: The frame the boxes were detected in.
//   - boxes: Detections in list order.
//
// Returns:
//   - *BoundsCheck: The frame size and the indexes of boxes that spill past
//     any edge. OutOfBounds is empty, never nil, when all boxes fit.
//
// Detectors sometimes emit boxes that spill past the frame; the estimators
// still accept them, so the result is advisory.
func CheckBoxes(img image.Image, boxes []distancing.BoundingBox) *BoundsCheck {
	b := img.Bounds()
	minX, minY := float64(b.Min.X), float64(b.Min.Y)
	maxX, maxY := float64(b.Max.X), float64(b.Max.Y)

	check := &BoundsCheck{
		ImageWidth:  b.Dx(),
		ImageHeight: b.Dy(),
		OutOfBounds: []int{},
	}
	for i, box := range boxes {
		if math.Min(box.Left, box.Right) < minX || math.Max(box.Left, box.Right) > maxX ||
			math.Min(box.Top, box.Bottom) < minY || math.Max(box.Top, box.Bottom) > maxY {
			check.OutOfBounds = append(check.OutOfBounds, i)
		}
	}
	return check
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

package distancing

import (
	"bytes"
	"encoding/json"
	"fmt"
	"math"
)

// BoundingBox is an axis-aligned detection rectangle in pixel coordinates.
//
// Top <= Bottom and Left <= Right are expected but not required; Traits uses
// absolute differences so reversed corners still yield non-negative sizes.
//
// In JSON a box is either an object with top/left/bottom/right keys or the
// detector-style 4-tuple [top, left, bottom, right].
type BoundingBox struct {
	Top    float64 `json:"top" jsonschema:"top edge Y coordinate in pixels"`
	Left   float64 `json:"left" jsonschema:"left edge X coordinate in pixels"`
	Bottom float64 `json:"bottom" jsonschema:"bottom edge Y coordinate in pixels"`
	Right  float64 `json:"right" jsonschema:"right edge X coordinate in pixels"`
}

// Box builds a BoundingBox from detector order (y1, x1, y2, x2).
func Box(top, left, bottom, right float64) BoundingBox {
	return BoundingBox{Top: top, Left: left, Bottom: bottom, Right: right}
}

// UnmarshalJSON accepts both the object and the 4-tuple encoding.
func (b *BoundingBox) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) > 0 && data[0] == '[' {
		var tuple []float64
		if err := json.Unmarshal(data, &tuple); err != nil {
			return err
		}
		if len(tuple) != 4 {
			return fmt.Errorf("%w: expected 4 coordinates, got %d", ErrInvalidBox, len(tuple))
		}
		*b = Box(tuple[0], tuple[1], tuple[2], tuple[3])
		return nil
	}

	type plain BoundingBox
	var p plain
	if err := json.Unmarshal(data, &p); err != nil {
		return err
	}
	*b = BoundingBox(p)
	return nil
}

// Validate reports whether every coordinate is a finite number.
func (b BoundingBox) Validate() error {
	for _, v := range [4]float64{b.Top, b.Left, b.Bottom, b.Right} {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return fmt.Errorf("%w: non-finite coordinate in %v", ErrInvalidBox, b)
		}
	}
	return nil
}

// Traits are the per-box quantities every estimator works from.
type Traits struct {
	Height  float64 `json:"height"`
	Width   float64 `json:"width"`
	CenterX float64 `json:"center_x"`
	CenterY float64 `json:"center_y"`
}

// Area is the apparent size of the box in square pixels.
func (t Traits) Area() float64 {
	return t.Height * t.Width
}

// ExtractTraits derives height, width and center from a box.
//
// Height and width are absolute differences, so they are never negative.
// ExtractTraits does not validate; use ExtractAll for untrusted input.
func ExtractTraits(b BoundingBox) Traits {
	return Traits{
		Height:  math.Abs(b.Bottom - b.Top),
		Width:   math.Abs(b.Right - b.Left),
		CenterX: (b.Left + b.Right) / 2,
		CenterY: (b.Top + b.Bottom) / 2,
	}
}

// ExtractAll validates boxes and returns their traits aligned by index.
//
// Parameters:
//   - boxes: Detections in list order; the index is each box's identity in
//     every later matrix and pair.
//
// Returns:
//   - []Traits: One entry per box, same order.
//   - error: Non-nil if any box is unusable.
//
// # Errors
//
//   - ErrInvalidBox if a coordinate is NaN or infinite
//   - ErrInvalidBox if the box is so large that its height, width, area or
//     center overflows float64
func ExtractAll(boxes []BoundingBox) ([]Traits, error) {
	out := make([]Traits, len(boxes))
	for i, b := range boxes {
		if err := b.Validate(); err != nil {
			return nil, fmt.Errorf("box %d: %w", i, err)
		}
		t := ExtractTraits(b)
		if !t.finite() {
			return nil, fmt.Errorf("box %d: %w: size overflows in %v", i, ErrInvalidBox, b)
		}
		out[i] = t
	}
	return out, nil
}

func (t Traits) finite() bool {
	for _, v := range [5]float64{t.Height, t.Width, t.CenterX, t.CenterY, t.Area()} {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return false
		}
	}
	return true
}

func centerDistance(a, b Traits) float64 {
	return math.Hypot(a.CenterX-b.CenterX, a.CenterY-b.CenterY)
}

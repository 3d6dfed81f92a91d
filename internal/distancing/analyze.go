package distancing

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
)

// Report is the full outcome of analyzing one frame's detections.
type Report struct {
	Strategy   Strategy      `json:"strategy"`
	Detections int           `json:"detections"`
	Traits     []Traits      `json:"traits"`
	Estimate   *Estimate     `json:"estimate"`
	Violations *ViolationSet `json:"violations"`
}

// Analyze runs boxes through trait extraction, the chosen estimator and the
// violation counter.
//
// Parameters:
//   - boxes: One frame's detections; list position is each box's id.
//   - strategy: SimpleAverage or DepthRatio.
//   - opts: Reference height and safety threshold, in feet.
//
// Returns:
//   - *Report: Traits, the estimate and every too-close pair (I < J).
//   - error: Non-nil if nothing could be estimated.
//
// # Errors
//
//   - ErrEmptyInput for an empty frame; callers usually report it as
//     "no detections" rather than a failure
//   - ErrInvalidBox, ErrDegenerateInput from the estimator
//   - ErrInvalidOptions, ErrUnknownStrategy from NewEstimator
func Analyze(boxes []BoundingBox, strategy Strategy, opts Options) (*Report, error) {
	estimator, err := NewEstimator(strategy, opts)
	if err != nil {
		return nil, err
	}

	est, err := estimator.Estimate(boxes)
	if err != nil {
		return nil, err
	}

	violations, err := est.Violations()
	if err != nil {
		return nil, fmt.Errorf("counting violations: %w", err)
	}

	return &Report{
		Strategy:   strategy,
		Detections: len(boxes),
		Traits:     est.Traits(),
		Estimate:   est,
		Violations: violations,
	}, nil
}

// DecodeBoxes reads one JSON box list document.
//
// The document is either a bare list or an object with exactly one key,
// "boxes", holding the list:
//
//	[[0, 0, 10, 10], {"top": 0, "left": 10, "bottom": 10, "right": 20}]
//	{"boxes": [[0, 0, 10, 10]]}
//
// Each box is an object or a [top, left, bottom, right] tuple. An empty list
// is valid and yields no boxes.
//
// # Errors
//
//   - ErrInvalidInput if the document is neither shape, the object lacks
//     "boxes" or carries other keys
//   - ErrInvalidBox if a tuple does not have exactly 4 coordinates
//   - A json error for syntax errors
func DecodeBoxes(r io.Reader) ([]BoundingBox, error) {
	var raw json.RawMessage
	if err := json.NewDecoder(r).Decode(&raw); err != nil {
		return nil, fmt.Errorf("decoding boxes: %w", err)
	}

	raw = bytes.TrimSpace(raw)
	switch raw[0] {
	case '[':
		var boxes []BoundingBox
		if err := json.Unmarshal(raw, &boxes); err != nil {
			return nil, fmt.Errorf("decoding boxes: %w", err)
		}
		return boxes, nil

	case '{':
		var wrapped struct {
			Boxes *[]BoundingBox `json:"boxes"`
		}
		dec := json.NewDecoder(bytes.NewReader(raw))
		dec.DisallowUnknownFields()
		if err := dec.Decode(&wrapped); err != nil {
			if errors.Is(err, ErrInvalidBox) {
				return nil, fmt.Errorf("decoding boxes: %w", err)
			}
			return nil, fmt.Errorf("decoding boxes: %w: %w", ErrInvalidInput, err)
		}
		if wrapped.Boxes == nil {
			return nil, fmt.Errorf("decoding boxes: %w: missing \"boxes\" list", ErrInvalidInput)
		}
		return *wrapped.Boxes, nil

	default:
		return nil, fmt.Errorf("decoding boxes: %w: got %s, want a list or {\"boxes\": [...]}", ErrInvalidInput, raw)
	}
}

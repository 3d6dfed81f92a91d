package distancing

import (
	"fmt"
	"math"
	"strings"
)

// Reference values used when no configuration overrides them.
const (
	DefaultAvgHeightFt = 5.4
	DefaultThresholdFt = 6.0
)

// Options holds the physical assumptions shared by every estimator.
type Options struct {
	// AvgHeightFt is the assumed real-world height of a person.
	AvgHeightFt float64 `json:"avg_height_ft"`

	// ThresholdFt is the minimum safe separation.
	ThresholdFt float64 `json:"threshold_ft"`
}

// DefaultOptions returns the 5.4 ft person / 6 ft separation assumptions.
func DefaultOptions() Options {
	return Options{
		AvgHeightFt: DefaultAvgHeightFt,
		ThresholdFt: DefaultThresholdFt,
	}
}

// Validate rejects non-positive or non-finite values.
func (o Options) Validate() error {
	if !(o.AvgHeightFt > 0) || math.IsInf(o.AvgHeightFt, 0) {
		return fmt.Errorf("%w: avg height %v ft", ErrInvalidOptions, o.AvgHeightFt)
	}
	if !(o.ThresholdFt > 0) || math.IsInf(o.ThresholdFt, 0) {
		return fmt.Errorf("%w: threshold %v ft", ErrInvalidOptions, o.ThresholdFt)
	}
	return nil
}

// Strategy names an estimator.
type Strategy string

const (
	// SimpleAverage scales pixel distances by one global feet-per-pixel ratio.
	SimpleAverage Strategy = "simple-average"

	// DepthRatio corrects pixel distances with per-pair apparent size cues.
	DepthRatio Strategy = "depth-ratio"
)

// Strategies lists every supported strategy name.
func Strategies() []Strategy {
	return []Strategy{SimpleAverage, DepthRatio}
}

// ParseStrategy resolves a strategy name. "0", the legacy method selector,
// means DepthRatio; an empty name means SimpleAverage.
func ParseStrategy(name string) (Strategy, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", string(SimpleAverage), "simple":
		return SimpleAverage, nil
	case string(DepthRatio), "depth", "0":
		return DepthRatio, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownStrategy, name)
	}
}

// Unit tells how the values of an Estimate's Distances are expressed.
type Unit string

const (
	UnitFeet  Unit = "ft"
	UnitRatio Unit = "ratio"
)

// Estimator turns a box set into a pairwise distance estimate.
type Estimator interface {
	Strategy() Strategy
	Estimate(boxes []BoundingBox) (*Estimate, error)
}

// NewEstimator returns the estimator for strategy.
//
// Parameters:
//   - strategy: SimpleAverage or DepthRatio (see ParseStrategy for names).
//   - opts: Reference height and threshold; DefaultOptions for 5.4 ft / 6 ft.
//
// Returns:
//   - Estimator: Stateless and safe for concurrent use.
//   - error: Non-nil if opts or strategy is unusable.
//
// # Errors
//
//   - ErrInvalidOptions if a value is non-positive or non-finite
//   - ErrUnknownStrategy for any other strategy
func NewEstimator(strategy Strategy, opts Options) (Estimator, error) {
	if err := opts.Validate(); err != nil {
		return nil, err
	}
	switch strategy {
	case SimpleAverage:
		return &simpleAverageEstimator{opts: opts}, nil
	case DepthRatio:
		return &depthRatioEstimator{opts: opts}, nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownStrategy, strategy)
	}
}

// Estimate is the result of running one estimator over a box set.
type Estimate struct {
	Strategy Strategy `json:"strategy"`

	// Unit is UnitFeet for SimpleAverage and UnitRatio for DepthRatio.
	Unit Unit `json:"unit"`

	// Threshold is the value Distances are compared against, in Unit.
	Threshold float64 `json:"threshold"`

	// Distances is the matrix violations are counted from.
	Distances *PairwiseMatrix `json:"distances"`

	// PixelDistances is the raw center-to-center distance in pixels.
	PixelDistances *PairwiseMatrix `json:"pixel_distances"`

	// AverageDistance is the mean off-diagonal distance in feet. Only the
	// simple-average strategy sets it, and only for two or more boxes.
	AverageDistance *float64 `json:"average_distance,omitempty"`

	traits []Traits
	rule   Rule
}

// Traits returns the per-box traits the estimate was computed from, aligned
// with the matrix indexes.
func (e *Estimate) Traits() []Traits {
	return e.traits
}

// Violations counts the pairs of this estimate that are too close.
func (e *Estimate) Violations() (*ViolationSet, error) {
	if e == nil {
		return nil, ErrNoDistanceData
	}
	return Count(e.Distances, e.Threshold, e.rule)
}

func checkBoxes(boxes []BoundingBox) ([]Traits, error) {
	if len(boxes) == 0 {
		return nil, ErrEmptyInput
	}
	return ExtractAll(boxes)
}

// checkFinite rejects matrices where a distance overflowed, which happens
// only for boxes near the float64 limits.
func checkFinite(ms ...*PairwiseMatrix) error {
	for _, m := range ms {
		if !m.finite() {
			return fmt.Errorf("%w: distances exceed the float64 range", ErrDegenerateInput)
		}
	}
	return nil
}

func pixelDistances(traits []Traits) *PairwiseMatrix {
	return newPairwise(len(traits), func(i, j int) float64 {
		if i == j {
			return 0
		}
		return centerDistance(traits[i], traits[j])
	})
}

package distancing

import (
	"fmt"
	"math"
)

type depthRatioEstimator struct {
	opts Options
}

func (e *depthRatioEstimator) Strategy() Strategy { return DepthRatio }

// Estimate computes, for every pair, the center distance in units of the
// pair's mean box height, damped by how much the two box areas differ.
// Boxes of very different apparent size are probably at different depths,
// so their similarity factor pulls the ratio towards zero.
//
// The result is dimensionless and is compared against ThresholdFt/AvgHeightFt.
func (e *depthRatioEstimator) Estimate(boxes []BoundingBox) (*Estimate, error) {
	traits, err := checkBoxes(boxes)
	if err != nil {
		return nil, err
	}

	for i, t := range traits {
		if t.Area() == 0 {
			return nil, fmt.Errorf("%w: box %d has zero area", ErrDegenerateInput, i)
		}
	}

	pixels := pixelDistances(traits)
	ratios := newPairwise(len(traits), func(i, j int) float64 {
		if i == j {
			return 0
		}
		// Areas were checked above, so the error is always nil.
		similarity, _ := DepthSimilarity(traits[i], traits[j])
		avgHeight := (traits[i].Height + traits[j].Height) / 2
		return similarity * pixels.At(i, j) / avgHeight
	})
	if err := checkFinite(pixels, ratios); err != nil {
		return nil, err
	}

	return &Estimate{
		Strategy:       DepthRatio,
		Unit:           UnitRatio,
		Threshold:      e.opts.ThresholdFt / e.opts.AvgHeightFt,
		Distances:      ratios,
		PixelDistances: pixels,
		traits:         traits,
		rule:           AtOrBelowNonZero,
	}, nil
}

// DepthSimilarity is the area-ratio factor of two boxes, in (0, 1].
// It is 1 when the areas match and approaches 0 as they diverge.
func DepthSimilarity(a, b Traits) (float64, error) {
	areaA, areaB := a.Area(), b.Area()
	if areaA == 0 || areaB == 0 {
		return 0, fmt.Errorf("%w: zero-area box", ErrDegenerateInput)
	}
	return math.Min(areaA/areaB, areaB/areaA), nil
}

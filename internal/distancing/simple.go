package distancing

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/stat"
)

type simpleAverageEstimator struct {
	opts Options
}

func (e *simpleAverageEstimator) Strategy() Strategy { return SimpleAverage }

// Estimate derives one feet-per-pixel scale from the mean box height and
// applies it to every center-to-center pixel distance.
func (e *simpleAverageEstimator) Estimate(boxes []BoundingBox) (*Estimate, error) {
	traits, err := checkBoxes(boxes)
	if err != nil {
		return nil, err
	}

	heights := make([]float64, len(traits))
	for i, t := range traits {
		heights[i] = t.Height
	}
	avgHeightPx := stat.Mean(heights, nil)
	if avgHeightPx == 0 {
		return nil, fmt.Errorf("%w: mean box height is zero", ErrDegenerateInput)
	}
	scale := e.opts.AvgHeightFt / avgHeightPx

	pixels := pixelDistances(traits)
	feet := newPairwise(len(traits), func(i, j int) float64 {
		return pixels.At(i, j) * scale
	})
	if err := checkFinite(pixels, feet); err != nil {
		return nil, err
	}

	est := &Estimate{
		Strategy:       SimpleAverage,
		Unit:           UnitFeet,
		Threshold:      e.opts.ThresholdFt,
		Distances:      feet,
		PixelDistances: pixels,
		traits:         traits,
		rule:           Below,
	}

	// The diagonal is zero, so summing the full matrix and dividing by the
	// number of ordered off-diagonal pairs gives their mean.
	if n := float64(len(traits)); n > 1 {
		avg := feet.Sum() / (n*n - n)
		if math.IsInf(avg, 0) {
			return nil, fmt.Errorf("%w: average distance exceeds the float64 range", ErrDegenerateInput)
		}
		est.AverageDistance = &avg
	}

	return est, nil
}

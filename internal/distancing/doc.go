// Package distancing estimates whether detected people are standing too close
// together, using nothing but their 2D bounding boxes.
//
// There is no depth sensor and no camera calibration. Instead each estimator
// leans on a reference assumption: an average person is about 5.4 ft tall, so
// a box's pixel height says roughly how many pixels make a foot at that box's
// position in the frame.
//
// # Pipeline
//
//  1. Traits: each box yields its height, width and center (ExtractTraits).
//  2. Estimate: an Estimator builds an N×N PairwiseMatrix from the traits.
//  3. Violations: Count walks the strict upper triangle of the matrix and
//     reports every unordered pair (i, j), i < j, that is too close.
//
// Analyze runs all three steps.
//
// # Strategies
//
// SimpleAverage computes one feet-per-pixel scale from the mean box height and
// reports distances in feet, compared with ThresholdFt using a strict "<".
//
// DepthRatio works per pair. The center distance is divided by the pair's mean
// height, then multiplied by the ratio of the smaller box area to the larger.
// The result is dimensionless and is compared with ThresholdFt/AvgHeightFt
// (6/5.4 by default) using "<=", with a small tolerance at the boundary. A
// ratio of exactly zero means coincident centers and is never flagged.
//
// # Coordinates
//
// Boxes use detector order [top, left, bottom, right] in pixels with the origin
// at the top-left corner. Position in the input slice is a box's identity;
// every pair index refers back to it.
//
// # Errors
//
// Estimators return ErrEmptyInput for an empty box set and ErrDegenerateInput
// when geometry would divide by zero (all heights zero, or a zero-area box for
// DepthRatio). The counter returns ErrNoDistanceData for a nil matrix. A single
// box is valid input: its matrix is [[0]], it has no violations, and its
// AverageDistance is left unset.
package distancing

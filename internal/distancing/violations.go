package distancing

import (
	"gonum.org/v1/gonum/floats/scalar"
)

// Tolerances for treating a distance ratio as equal to its threshold.
const (
	closeAbsTol = 1e-8
	closeRelTol = 1e-5
)

// Rule decides whether a single pairwise value is a violation.
type Rule func(value, threshold float64) bool

// Below flags values strictly under the threshold. Used for distances in feet.
func Below(value, threshold float64) bool {
	return value < threshold
}

// AtOrBelowNonZero flags values at or under the threshold, allowing for
// rounding at the boundary. Zero marks coincident centers and is never flagged.
func AtOrBelowNonZero(value, threshold float64) bool {
	if value == 0 {
		return false
	}
	return value <= threshold || scalar.EqualWithinAbsOrRel(value, threshold, closeAbsTol, closeRelTol)
}

// Pair identifies two boxes by position, with I < J.
type Pair struct {
	I int `json:"i"`
	J int `json:"j"`
}

// ViolationSet lists each too-close unordered pair once.
type ViolationSet struct {
	Count int    `json:"count"`
	Pairs []Pair `json:"pairs"`
}

// Count walks the strict upper triangle of m and collects the pairs rule flags.
//
// Parameters:
//   - m: Pairwise values; the diagonal is ignored.
//   - threshold: Compared against each value, in the matrix's unit.
//   - rule: Decides a single pair. A nil rule means Below.
//
// Returns:
//   - *ViolationSet: Each flagged pair once, I < J, in row-major order.
//   - error: ErrNoDistanceData if m is nil.
func Count(m *PairwiseMatrix, threshold float64, rule Rule) (*ViolationSet, error) {
	if m == nil {
		return nil, ErrNoDistanceData
	}
	if rule == nil {
		rule = Below
	}

	set := &ViolationSet{Pairs: []Pair{}}
	n := m.Len()
	for i := 0; i < n; i++ {
		for j := i + 1; j < n; j++ {
			if rule(m.At(i, j), threshold) {
				set.Pairs = append(set.Pairs, Pair{I: i, J: j})
			}
		}
	}
	set.Count = len(set.Pairs)
	return set, nil
}

// CountViolations counts pairs closer than thresholdFt in a precomputed
// distance matrix in feet. A nil matrix yields ErrNoDistanceData.
func CountViolations(distances [][]float64, thresholdFt float64) (*ViolationSet, error) {
	m, err := NewPairwiseMatrix(distances)
	if err != nil {
		return nil, err
	}
	return Count(m, thresholdFt, Below)
}

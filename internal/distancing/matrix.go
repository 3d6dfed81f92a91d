package distancing

import (
	"encoding/json"
	"fmt"
	"math"
	"runtime"

	"golang.org/x/sync/errgroup"
	"gonum.org/v1/gonum/mat"
)

// parallelRows is the box count from which pairwise matrices are filled by
// several goroutines. Below it the scheduling overhead outweighs the work.
const parallelRows = 256

// PairwiseMatrix is a symmetric N×N matrix indexed by box position.
// The diagonal holds self-distances and is never reported.
type PairwiseMatrix struct {
	sym *mat.SymDense
}

// newPairwise fills the upper triangle (diagonal included) from f.
// Rows are independent, so large inputs are sharded by row.
func newPairwise(n int, f func(i, j int) float64) *PairwiseMatrix {
	if n == 0 {
		return &PairwiseMatrix{}
	}
	sym := mat.NewSymDense(n, nil)

	fillRow := func(i int) {
		for j := i; j < n; j++ {
			sym.SetSym(i, j, f(i, j))
		}
	}

	if n < parallelRows {
		for i := 0; i < n; i++ {
			fillRow(i)
		}
		return &PairwiseMatrix{sym: sym}
	}

	var g errgroup.Group
	g.SetLimit(runtime.GOMAXPROCS(0))
	for i := 0; i < n; i++ {
		g.Go(func() error {
			fillRow(i)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		panic(err)
	}

	return &PairwiseMatrix{sym: sym}
}

// NewPairwiseMatrix builds a matrix from caller-supplied rows. Only the upper
// triangle is read; the lower triangle is taken as its mirror.
func NewPairwiseMatrix(rows [][]float64) (*PairwiseMatrix, error) {
	if rows == nil {
		return nil, ErrNoDistanceData
	}
	n := len(rows)
	for i, row := range rows {
		if len(row) != n {
			return nil, fmt.Errorf("%w: row %d has %d columns, want %d", ErrNotSquare, i, len(row), n)
		}
	}
	return newPairwise(n, func(i, j int) float64 { return rows[i][j] }), nil
}

// Len returns N.
func (m *PairwiseMatrix) Len() int {
	if m == nil || m.sym == nil {
		return 0
	}
	n, _ := m.sym.Dims()
	return n
}

// At returns the value for boxes i and j.
func (m *PairwiseMatrix) At(i, j int) float64 {
	return m.sym.At(i, j)
}

// Sum adds every cell of the full matrix, both triangles and the diagonal.
func (m *PairwiseMatrix) Sum() float64 {
	if m.Len() == 0 {
		return 0
	}
	return mat.Sum(m.sym)
}

// Rows copies the matrix out as a dense slice of rows.
func (m *PairwiseMatrix) Rows() [][]float64 {
	n := m.Len()
	rows := make([][]float64, n)
	for i := range rows {
		rows[i] = make([]float64, n)
		for j := range rows[i] {
			rows[i][j] = m.sym.At(i, j)
		}
	}
	return rows
}

// finite reports whether every cell is a finite number.
func (m *PairwiseMatrix) finite() bool {
	n := m.Len()
	for i := 0; i < n; i++ {
		for j := i; j < n; j++ {
			v := m.sym.At(i, j)
			if math.IsNaN(v) || math.IsInf(v, 0) {
				return false
			}
		}
	}
	return true
}

// MarshalJSON encodes the matrix as an array of rows.
func (m *PairwiseMatrix) MarshalJSON() ([]byte, error) {
	return json.Marshal(m.Rows())
}

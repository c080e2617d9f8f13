// Package raster holds helpers for the row-major grids every planning stage
// works over. Grids are gonum dense matrices; cell (r, c) is At(r, c).
package raster

import (
	"math"
	"sort"

	"github.com/rotisserie/eris"
	"gonum.org/v1/gonum/mat"

	"github.com/mr1hm/go-evac-planner/internal/models"
)

var (
	ErrShape     = eris.New("raster: shape mismatch")
	ErrEmpty     = eris.New("raster: empty grid")
	ErrNotFinite = eris.New("raster: non-finite value")
)

// SameShape reports an error unless every grid has the dimensions of the
// first one. Nil grids are treated as empty.
func SameShape(grids ...mat.Matrix) error {
	if len(grids) == 0 {
		return nil
	}
	r0, c0 := Dims(grids[0])
	for i, g := range grids[1:] {
		r, c := Dims(g)
		if r != r0 || c != c0 {
			return eris.Wrapf(ErrShape, "grid %d is %dx%d, want %dx%d", i+1, r, c, r0, c0)
		}
	}
	return nil
}

// Dims is m.Dims that tolerates a nil *mat.Dense.
func Dims(m mat.Matrix) (int, int) {
	if m == nil {
		return 0, 0
	}
	if d, ok := m.(*mat.Dense); ok && d == nil {
		return 0, 0
	}
	return m.Dims()
}

// Values returns a copy of the grid's cells in row-major order.
func Values(m mat.Matrix) []float64 {
	r, c := Dims(m)
	out := make([]float64, 0, r*c)
	for i := 0; i < r; i++ {
		for j := 0; j < c; j++ {
			out = append(out, m.At(i, j))
		}
	}
	return out
}

// CheckFinite returns ErrNotFinite naming the first NaN or ±Inf cell.
func CheckFinite(m mat.Matrix) error {
	r, c := Dims(m)
	for i := 0; i < r; i++ {
		for j := 0; j < c; j++ {
			if v := m.At(i, j); math.IsNaN(v) || math.IsInf(v, 0) {
				return eris.Wrapf(ErrNotFinite, "cell (%d, %d) is %v", i, j, v)
			}
		}
	}
	return nil
}

// Contains reports whether cell lies inside a rows x cols grid.
func Contains(rows, cols int, cell models.Cell) bool {
	return cell.Row >= 0 && cell.Row < rows && cell.Col >= 0 && cell.Col < cols
}

// Positive returns the cells with a value > 0 in raster scan order.
func Positive(m mat.Matrix) []models.Cell {
	r, c := Dims(m)
	var cells []models.Cell
	for i := 0; i < r; i++ {
		for j := 0; j < c; j++ {
			if m.At(i, j) > 0 {
				cells = append(cells, models.Cell{Row: i, Col: j})
			}
		}
	}
	return cells
}

// Percentile returns the p-th percentile (0..100) of the grid's values using
// linear interpolation between closest ranks: with the n values sorted, the
// rank is h = (n-1)*p/100 and the result interpolates x[floor(h)] and
// x[floor(h)+1].
func Percentile(m mat.Matrix, p float64) (float64, error) {
	vals := Values(m)
	if len(vals) == 0 {
		return 0, ErrEmpty
	}
	if p < 0 || p > 100 || math.IsNaN(p) {
		return 0, eris.Errorf("raster: percentile %v out of range [0, 100]", p)
	}
	sort.Float64s(vals)

	h := float64(len(vals)-1) * p / 100
	lo := int(math.Floor(h))
	hi := lo + 1
	if hi >= len(vals) {
		return vals[lo], nil
	}
	frac := h - float64(lo)
	a, b := vals[lo], vals[hi]
	if a == b {
		return a, nil
	}
	return a + frac*(b-a), nil
}

// Shape returns the common dimensions of grids. It fails with ErrEmpty when
// the first grid is nil or has no cells, and with ErrShape on a mismatch.
func Shape(grids ...mat.Matrix) (int, int, error) {
	if len(grids) == 0 {
		return 0, 0, ErrEmpty
	}
	r, c := Dims(grids[0])
	if r == 0 || c == 0 {
		return 0, 0, ErrEmpty
	}
	if err := SameShape(grids...); err != nil {
		return 0, 0, err
	}
	return r, c, nil
}

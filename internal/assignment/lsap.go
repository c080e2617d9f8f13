// Package assignment solves the rectangular linear sum assignment problem:
// given an n x m cost matrix, pick min(n, m) cells, at most one per row and
// column, minimizing (or maximizing) the total cost.
//
// The solver is the shortest augmenting path method of Jonker and Volgenant
// as formulated for rectangular problems by Crouse, with no initialization
// heuristics. It runs in O(n^2 m) for n <= m.
package assignment

import (
	"math"
	"sort"

	"github.com/rotisserie/eris"
	"gonum.org/v1/gonum/mat"
)

var (
	// ErrNotMatrix is returned when the cost input is not two-dimensional.
	ErrNotMatrix = eris.New("assignment: cost must be a 2-d matrix")
	// ErrInvalidCost is returned for NaN costs, or -Inf (+Inf when maximizing).
	ErrInvalidCost = eris.New("assignment: cost matrix contains invalid numeric entries")
	// ErrInfeasible is returned when no complete assignment has finite cost.
	ErrInfeasible = eris.New("assignment: cost matrix is infeasible")
)

// Result holds the chosen pairs. Rows is sorted ascending and Cols[k] is the
// column assigned to Rows[k].
type Result struct {
	Rows []int
	Cols []int
}

// Pairs returns the result as a row to column map.
func (r Result) Pairs() map[int]int {
	out := make(map[int]int, len(r.Rows))
	for k, row := range r.Rows {
		out[row] = r.Cols[k]
	}
	return out
}

// Cost sums cost over the chosen pairs.
func (r Result) Cost(cost mat.Matrix) float64 {
	total := 0.0
	for k, row := range r.Rows {
		total += cost.At(row, r.Cols[k])
	}
	return total
}

// SolveArray solves a problem given as flat row-major data and an explicit
// shape. Any shape other than two dimensions is rejected with ErrNotMatrix.
func SolveArray(data []float64, shape []int, maximize bool) (Result, error) {
	if len(shape) != 2 {
		return Result{}, eris.Wrapf(ErrNotMatrix, "got %d-d input of shape %v", len(shape), shape)
	}
	nr, nc := shape[0], shape[1]
	if nr < 0 || nc < 0 || nr*nc != len(data) {
		return Result{}, eris.Wrapf(ErrNotMatrix, "shape %v does not match %d values", shape, len(data))
	}
	return solve(nr, nc, append([]float64(nil), data...), maximize)
}

// Solve solves the problem for cost. A nil cost yields an empty result.
func Solve(cost mat.Matrix, maximize bool) (Result, error) {
	if cost == nil {
		return Result{}, nil
	}
	if d, ok := cost.(*mat.Dense); ok && d == nil {
		return Result{}, nil
	}
	nr, nc := cost.Dims()
	data := make([]float64, 0, nr*nc)
	for i := 0; i < nr; i++ {
		for j := 0; j < nc; j++ {
			data = append(data, cost.At(i, j))
		}
	}
	return solve(nr, nc, data, maximize)
}

// solve owns data and may modify it.
func solve(nr, nc int, data []float64, maximize bool) (Result, error) {
	if nr == 0 || nc == 0 {
		return Result{}, nil
	}

	transposed := nr > nc
	if transposed {
		data = transpose(nr, nc, data)
		nr, nc = nc, nr
	}
	if maximize {
		for i := range data {
			data[i] = -data[i]
		}
	}
	for k, v := range data {
		if math.IsNaN(v) || math.IsInf(v, -1) {
			return Result{}, eris.Wrapf(ErrInvalidCost, "entry %d", k)
		}
	}

	col4row, err := augment(nr, nc, data)
	if err != nil {
		return Result{}, err
	}

	res := Result{Rows: make([]int, nr), Cols: make([]int, nr)}
	if !transposed {
		for i := 0; i < nr; i++ {
			res.Rows[i] = i
			res.Cols[i] = col4row[i]
		}
		return res, nil
	}

	// Rows of the transposed problem are the original columns.
	order := make([]int, nr)
	for i := range order {
		order[i] = i
	}
	sort.Slice(order, func(a, b int) bool { return col4row[order[a]] < col4row[order[b]] })
	for k, i := range order {
		res.Rows[k] = col4row[i]
		res.Cols[k] = i
	}
	return res, nil
}

func transpose(nr, nc int, data []float64) []float64 {
	out := make([]float64, len(data))
	for i := 0; i < nr; i++ {
		for j := 0; j < nc; j++ {
			out[j*nr+i] = data[i*nc+j]
		}
	}
	return out
}

// augment assigns every row (nr <= nc) one at a time along a shortest
// augmenting path, maintaining dual variables u and v.
func augment(nr, nc int, cost []float64) ([]int, error) {
	u := make([]float64, nr)
	v := make([]float64, nc)
	spc := make([]float64, nc)
	path := make([]int, nc)
	col4row := make([]int, nr)
	row4col := make([]int, nc)
	sr := make([]bool, nr)
	sc := make([]bool, nc)
	remaining := make([]int, nc)

	for i := range col4row {
		col4row[i] = -1
	}
	for j := range row4col {
		row4col[j] = -1
		path[j] = -1
	}

	for cur := 0; cur < nr; cur++ {
		minVal := 0.0
		for j := 0; j < nc; j++ {
			remaining[j] = nc - j - 1
			sc[j] = false
			spc[j] = math.Inf(1)
		}
		for i := range sr {
			sr[i] = false
		}

		numRemaining := nc
		sink := -1
		i := cur
		for sink == -1 {
			index := -1
			lowest := math.Inf(1)
			sr[i] = true

			for it := 0; it < numRemaining; it++ {
				j := remaining[it]
				r := minVal + cost[i*nc+j] - u[i] - v[j]
				if r < spc[j] {
					path[j] = i
					spc[j] = r
				}
				// Prefer unassigned columns on ties so paths end early.
				if spc[j] < lowest || (spc[j] == lowest && row4col[j] == -1) {
					lowest = spc[j]
					index = it
				}
			}

			minVal = lowest
			if math.IsInf(minVal, 1) {
				return nil, eris.Wrapf(ErrInfeasible, "no finite augmenting path for row %d", cur)
			}

			j := remaining[index]
			if row4col[j] == -1 {
				sink = j
			} else {
				i = row4col[j]
			}
			sc[j] = true
			numRemaining--
			remaining[index] = remaining[numRemaining]
		}

		u[cur] += minVal
		for i := 0; i < nr; i++ {
			if sr[i] && i != cur {
				u[i] += minVal - spc[col4row[i]]
			}
		}
		for j := 0; j < nc; j++ {
			if sc[j] {
				v[j] -= minVal - spc[j]
			}
		}

		j := sink
		for {
			i := path[j]
			row4col[j] = i
			col4row[i], j = j, col4row[i]
			if i == cur {
				break
			}
		}
	}
	return col4row, nil
}

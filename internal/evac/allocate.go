package evac

import (
	"fmt"

	"github.com/rotisserie/eris"
	"gonum.org/v1/gonum/mat"

	"github.com/mr1hm/go-evac-planner/internal/assignment"
	"github.com/mr1hm/go-evac-planner/internal/models"
	"github.com/mr1hm/go-evac-planner/internal/raster"
)

// AllocateResources pairs rows of the allocation cost structure with
// resource units by maximizing total value. The cost values are the priority
// field scaled by 1/totalTime, so a zero total time is a division error in
// every mode.
//
// In AllocationCorrected mode the matrix is len(routes) x units with entry
// (i, j) = priority(origin_i) / totalTime, and the result maps route index to
// unit index. AllocationStrict passes the flattened scaled field to the
// solver unchanged and fails with ErrOptimizerInfeasible.
func AllocateResources(priority *mat.Dense, routes []models.Route, totalTime float64, units int, mode AllocationMode) (map[int]int, error) {
	rows, cols, err := shape(StageAllocation, priority)
	if err != nil {
		return nil, err
	}
	if totalTime == 0 {
		return nil, stageErr(StageAllocation, eris.Wrap(ErrDivisionByZero, "evacuation time estimate is 0"))
	}
	if units < 0 {
		return nil, stageErr(StageAllocation, eris.Wrapf(ErrInvalidInput, "resource unit count is %d", units))
	}

	switch mode {
	case AllocationStrict:
		flat := raster.Values(priority)
		for i := range flat {
			flat[i] /= totalTime
		}
		res, err := assignment.SolveArray(flat, []int{len(flat)}, true)
		if err != nil {
			return nil, stageErr(StageAllocation, fmt.Errorf("%w: %w", ErrOptimizerInfeasible, err))
		}
		return res.Pairs(), nil

	case AllocationCorrected:
		if len(routes) == 0 || units == 0 {
			return map[int]int{}, nil
		}
		cost := mat.NewDense(len(routes), units, nil)
		for i, r := range routes {
			if !raster.Contains(rows, cols, r.Origin) {
				return nil, cellErr(StageAllocation, r.Origin, i, eris.Wrap(ErrInvalidInput, "route origin outside grid"))
			}
			v := priority.At(r.Origin.Row, r.Origin.Col) / totalTime
			for j := 0; j < units; j++ {
				cost.Set(i, j, v)
			}
		}
		res, err := assignment.Solve(cost, true)
		if err != nil {
			return nil, stageErr(StageAllocation, fmt.Errorf("%w: %w", ErrOptimizerInfeasible, err))
		}
		return res.Pairs(), nil

	default:
		return nil, stageErr(StageAllocation, eris.Wrapf(ErrInvalidInput, "unknown allocation mode %q", mode))
	}
}

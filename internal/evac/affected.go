package evac

import (
	"fmt"

	"gonum.org/v1/gonum/mat"

	"github.com/mr1hm/go-evac-planner/internal/raster"
)

// IdentifyAffected keeps the population of cells whose threat is strictly
// greater than the pct-th percentile of the threat field, and zeroes the
// rest. A constant field therefore has no affected cells. The threshold is
// returned alongside the mask.
func IdentifyAffected(threat, population *mat.Dense, pct float64) (*mat.Dense, float64, error) {
	rows, cols, err := shape(StageAffected, threat, population)
	if err != nil {
		return nil, 0, err
	}
	threshold, err := raster.Percentile(threat, pct)
	if err != nil {
		return nil, 0, stageErr(StageAffected, fmt.Errorf("%w: %w", ErrInvalidInput, err))
	}

	mask := mat.NewDense(rows, cols, nil)
	mask.Apply(func(i, j int, _ float64) float64 {
		if threat.At(i, j) > threshold {
			return population.At(i, j)
		}
		return 0
	}, mask)
	return mask, threshold, nil
}

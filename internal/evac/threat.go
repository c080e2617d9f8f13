package evac

import (
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"

	"github.com/mr1hm/go-evac-planner/internal/models"
)

// AssessThreat returns the weighted average of the hazard rasters, cell by
// cell. Each value is a convex combination of the four inputs at that cell.
func AssessThreat(h models.HazardInputs, w Weights) (*mat.Dense, error) {
	rows, cols, err := shape(StageThreat, h.Rainfall, h.LandslideRisk, h.SoilSaturation, h.SlopeAngle)
	if err != nil {
		return nil, err
	}
	if err := w.validate(); err != nil {
		return nil, stageErr(StageThreat, err)
	}

	out := mat.NewDense(rows, cols, nil)
	scaled := mat.NewDense(rows, cols, nil)
	for k, f := range []*mat.Dense{h.Rainfall, h.LandslideRisk, h.SoilSaturation, h.SlopeAngle} {
		scaled.Scale(w[k], f)
		out.Add(out, scaled)
	}

	sum := floats.Sum(w[:])
	out.Apply(func(_, _ int, v float64) float64 { return v / sum }, out)
	return out, nil
}

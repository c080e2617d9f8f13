package evac

import (
	"io"
	"log/slog"
	"math/rand"

	"gonum.org/v1/gonum/mat"

	"github.com/mr1hm/go-evac-planner/internal/models"
)

func fill(rows, cols int, v float64) *mat.Dense {
	m := mat.NewDense(rows, cols, nil)
	m.Apply(func(_, _ int, _ float64) float64 { return v }, m)
	return m
}

func randomGrid(rng *rand.Rand, rows, cols int, lo, hi float64) *mat.Dense {
	m := mat.NewDense(rows, cols, nil)
	m.Apply(func(_, _ int, _ float64) float64 { return lo + rng.Float64()*(hi-lo) }, m)
	return m
}

func quietLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// twoByTwo is a 2x2 region with one populated corner and a single safe zone
// in the opposite corner. threat is the value of every hazard at (0, 0) and
// rest the value everywhere else.
func twoByTwo(threat, rest float64) models.Region {
	hazard := func() *mat.Dense {
		return mat.NewDense(2, 2, []float64{threat, rest, rest, rest})
	}
	return models.Region{
		Hazards: models.HazardInputs{
			Rainfall:       hazard(),
			LandslideRisk:  hazard(),
			SoilSaturation: hazard(),
			SlopeAngle:     hazard(),
		},
		PopulationDensity:  mat.NewDense(2, 2, []float64{100, 0, 0, 0}),
		SafeZones:          []models.Cell{{Row: 1, Col: 1}},
		RoadNetwork:        fill(2, 2, 1),
		VulnerabilityIndex: fill(2, 2, 1),
		RoadCapacity:       fill(2, 2, 1),
		AvailableResources: models.ResourcePool{"vehicles": 2, "personnel": 1},
	}
}

func randomRegion(seed int64, rows, cols int) models.Region {
	rng := rand.New(rand.NewSource(seed))
	pop := mat.NewDense(rows, cols, nil)
	pop.Apply(func(_, _ int, _ float64) float64 { return float64(rng.Intn(1000)) }, pop)
	capacity := mat.NewDense(rows, cols, nil)
	capacity.Apply(func(_, _ int, _ float64) float64 { return float64(1 + rng.Intn(4)) }, capacity)

	return models.Region{
		Hazards: models.HazardInputs{
			Rainfall:       randomGrid(rng, rows, cols, 0, 1),
			LandslideRisk:  randomGrid(rng, rows, cols, 0, 1),
			SoilSaturation: randomGrid(rng, rows, cols, 0, 1),
			SlopeAngle:     randomGrid(rng, rows, cols, 0, 1),
		},
		PopulationDensity: pop,
		SafeZones: []models.Cell{
			{Row: 1, Col: 1}, {Row: rows - 2, Col: cols - 2},
			{Row: 1, Col: cols - 2}, {Row: rows - 2, Col: 1},
		},
		RoadNetwork:        randomGrid(rng, rows, cols, 0.05, 1),
		VulnerabilityIndex: randomGrid(rng, rows, cols, 0, 1),
		RoadCapacity:       capacity,
		AvailableResources: models.ResourcePool{"vehicles": 5, "personnel": 8, "shelters": 2},
	}
}

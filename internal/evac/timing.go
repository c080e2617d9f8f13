package evac

import (
	"github.com/rotisserie/eris"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"

	"github.com/mr1hm/go-evac-planner/internal/models"
	"github.com/mr1hm/go-evac-planner/internal/raster"
)

// EstimateTime returns the per-route durations and their sum:
//
//	time = distance / capacity(origin) * population(origin) / peoplePerVehicle
//
// No routes gives a total of 0.
func EstimateTime(routes []models.Route, population, capacity *mat.Dense, peoplePerVehicle float64) (float64, []float64, error) {
	rows, cols, err := shape(StageTime, population, capacity)
	if err != nil {
		return 0, nil, err
	}
	if peoplePerVehicle <= 0 {
		return 0, nil, stageErr(StageTime, eris.Wrapf(ErrInvalidInput, "people per vehicle is %v", peoplePerVehicle))
	}

	times := make([]float64, len(routes))
	for i, r := range routes {
		if !raster.Contains(rows, cols, r.Origin) {
			return 0, nil, cellErr(StageTime, r.Origin, i, eris.Wrap(ErrInvalidInput, "route origin outside grid"))
		}
		rc := capacity.At(r.Origin.Row, r.Origin.Col)
		if rc == 0 {
			return 0, nil, cellErr(StageTime, r.Origin, i, eris.Wrap(ErrDivisionByZero, "road capacity is 0"))
		}
		pop := population.At(r.Origin.Row, r.Origin.Col)
		times[i] = (r.Distance() / rc) * (pop / peoplePerVehicle)
	}
	return floats.Sum(times), times, nil
}

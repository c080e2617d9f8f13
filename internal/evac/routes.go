package evac

import (
	"github.com/rotisserie/eris"
	"gonum.org/v1/gonum/mat"

	"github.com/mr1hm/go-evac-planner/internal/models"
	"github.com/mr1hm/go-evac-planner/internal/raster"
)

// AssignRoutes pairs every cell with a positive affected population with the
// safe zone of least cost, where
//
//	cost(origin, zone) = distance(origin, zone) / road(origin)
//
// This is a nearest-candidate choice over the fixed zone list, not a graph
// search. Ties go to the zone listed first. Routes come back in raster scan
// order of their origins.
func AssignRoutes(affected *mat.Dense, zones []models.Cell, road *mat.Dense) ([]models.Route, error) {
	rows, cols, err := shape(StageRoutes, affected, road)
	if err != nil {
		return nil, err
	}

	origins := raster.Positive(affected)
	if len(origins) == 0 {
		return nil, nil
	}
	if len(zones) == 0 {
		return nil, stageErr(StageRoutes, eris.Wrapf(ErrInvalidInput, "no safe zones for %d affected cells", len(origins)))
	}

	for i, z := range zones {
		if !raster.Contains(rows, cols, z) {
			return nil, stageErr(StageRoutes, eris.Wrapf(ErrInvalidInput, "safe zone %d (%d, %d) outside %dx%d grid", i, z.Row, z.Col, rows, cols))
		}
	}

	routes := make([]models.Route, 0, len(origins))
	for idx, origin := range origins {
		rv := road.At(origin.Row, origin.Col)
		if rv == 0 {
			return nil, cellErr(StageRoutes, origin, idx, eris.Wrap(ErrDivisionByZero, "road network value is 0"))
		}

		best := zones[0]
		bestCost := origin.Distance(best) / rv
		for _, z := range zones[1:] {
			if c := origin.Distance(z) / rv; c < bestCost {
				best, bestCost = z, c
			}
		}
		routes = append(routes, models.Route{Origin: origin, Destination: best})
	}
	return routes, nil
}

// Package evac computes an evacuation plan from a static region snapshot.
//
// Planning runs six stages in order, each a pure function of the region and
// of earlier results: threat scoring, affected-area extraction, route
// assignment, priority scoring, time estimation and resource allocation.
// Any stage error aborts the run; no partial plan is returned.
package evac

import (
	"log/slog"
	"math"
	"time"

	"github.com/rotisserie/eris"
	"gonum.org/v1/gonum/mat"

	"github.com/mr1hm/go-evac-planner/internal/models"
	"github.com/mr1hm/go-evac-planner/internal/raster"
)

// Planner plans evacuations for one region. It never writes to the region's
// rasters, so separate Planners may share a Region across goroutines.
type Planner struct {
	region           models.Region
	weights          Weights
	percentile       float64
	peoplePerVehicle float64
	mode             AllocationMode
	logger           *slog.Logger
}

// NewPlanner creates a Planner with the default calibration, adjusted by opts.
func NewPlanner(region models.Region, opts ...Option) (*Planner, error) {
	p := &Planner{
		region:           region,
		weights:          DefaultWeights,
		percentile:       DefaultPercentile,
		peoplePerVehicle: DefaultPeoplePerVehicle,
		mode:             AllocationCorrected,
		logger:           slog.Default(),
	}
	for _, opt := range opts {
		opt(p)
	}

	if err := p.weights.validate(); err != nil {
		return nil, err
	}
	if p.percentile < 0 || p.percentile > 100 {
		return nil, eris.Wrapf(ErrInvalidInput, "percentile %v out of range [0, 100]", p.percentile)
	}
	if p.peoplePerVehicle <= 0 {
		return nil, eris.Wrapf(ErrInvalidInput, "people per vehicle must be positive, got %v", p.peoplePerVehicle)
	}
	if _, err := ParseAllocationMode(string(p.mode)); err != nil {
		return nil, eris.Wrap(ErrInvalidInput, err.Error())
	}
	return p, nil
}

// Plan runs the full pipeline.
func (p *Planner) Plan() (*Plan, error) {
	start := time.Now()
	r := p.region
	if err := Validate(r); err != nil {
		return nil, err
	}

	threat, err := AssessThreat(r.Hazards, p.weights)
	if err != nil {
		return nil, err
	}
	p.logStage(StageThreat, start)

	t := time.Now()
	affected, threshold, err := IdentifyAffected(threat, r.PopulationDensity, p.percentile)
	if err != nil {
		return nil, err
	}
	p.logStage(StageAffected, t, "threshold", threshold)

	t = time.Now()
	routes, err := AssignRoutes(affected, r.SafeZones, r.RoadNetwork)
	if err != nil {
		return nil, err
	}
	p.logStage(StageRoutes, t, "routes", len(routes))
	if len(routes) == 0 {
		p.logger.Warn("no affected cells", "threshold", threshold)
	}

	t = time.Now()
	priority, err := Prioritize(affected, threat, r.VulnerabilityIndex)
	if err != nil {
		return nil, err
	}
	p.logStage(StagePriority, t)

	t = time.Now()
	total, routeTimes, err := EstimateTime(routes, r.PopulationDensity, r.RoadCapacity, p.peoplePerVehicle)
	if err != nil {
		return nil, err
	}
	p.logStage(StageTime, t, "evacuation_time", total)

	t = time.Now()
	units := r.AvailableResources.Units()
	allocation, err := AllocateResources(priority, routes, total, len(units), p.mode)
	if err != nil {
		return nil, err
	}
	p.logStage(StageAllocation, t, "mode", string(p.mode), "units", len(units), "assigned", len(allocation))

	p.logger.Info("evacuation plan computed",
		"routes", len(routes),
		"evacuation_time", total,
		"duration", time.Since(start),
	)

	return &Plan{
		threat:         threat,
		threshold:      threshold,
		affected:       affected,
		routes:         routes,
		priority:       priority,
		routeTimes:     routeTimes,
		evacuationTime: total,
		allocation:     allocation,
		units:          units,
		mode:           p.mode,
	}, nil
}

func (p *Planner) logStage(stage Stage, since time.Time, attrs ...any) {
	args := append([]any{"stage", string(stage), "duration", time.Since(since)}, attrs...)
	p.logger.Debug("stage complete", args...)
}

// Validate checks a region before any stage runs. Every raster must be
// present, finite and of one shape. Population must be whole non-negative
// counts, safe zones must lie inside the grid, and resource counts must be
// non-negative with a total that fits in an int.
func Validate(r models.Region) error {
	grids := []struct {
		name string
		m    *mat.Dense
	}{
		{"rainfall", r.Hazards.Rainfall},
		{"landslide_risk", r.Hazards.LandslideRisk},
		{"soil_saturation", r.Hazards.SoilSaturation},
		{"slope_angle", r.Hazards.SlopeAngle},
		{"population_density", r.PopulationDensity},
		{"road_network", r.RoadNetwork},
		{"vulnerability_index", r.VulnerabilityIndex},
		{"road_capacity", r.RoadCapacity},
	}

	for _, g := range grids {
		if rows, cols := raster.Dims(g.m); rows == 0 || cols == 0 {
			return stageErr(StageValidation, eris.Wrapf(ErrInvalidInput, "%s is missing or empty", g.name))
		}
		if err := raster.CheckFinite(g.m); err != nil {
			return stageErr(StageValidation, eris.Wrapf(ErrInvalidInput, "%s: %v", g.name, err))
		}
	}
	rows, cols := grids[0].m.Dims()
	for _, g := range grids[1:] {
		if gr, gc := g.m.Dims(); gr != rows || gc != cols {
			return stageErr(StageValidation, eris.Wrapf(ErrShapeMismatch, "%s is %dx%d, %s is %dx%d", g.name, gr, gc, grids[0].name, rows, cols))
		}
	}

	for i := 0; i < rows; i++ {
		for j := 0; j < cols; j++ {
			v := r.PopulationDensity.At(i, j)
			if v < 0 {
				return cellErr(StageValidation, models.Cell{Row: i, Col: j}, -1, eris.Wrap(ErrInvalidInput, "negative population"))
			}
			if v != math.Trunc(v) {
				return cellErr(StageValidation, models.Cell{Row: i, Col: j}, -1, eris.Wrapf(ErrInvalidInput, "population %v is not a whole count", v))
			}
		}
	}
	for i, z := range r.SafeZones {
		if !raster.Contains(rows, cols, z) {
			return stageErr(StageValidation, eris.Wrapf(ErrInvalidInput, "safe zone %d (%d, %d) outside %dx%d grid", i, z.Row, z.Col, rows, cols))
		}
	}
	for kind, n := range r.AvailableResources {
		if n < 0 {
			return stageErr(StageValidation, eris.Wrapf(ErrInvalidInput, "resource %q has negative count %d", kind, n))
		}
	}
	if _, ok := r.AvailableResources.Total(); !ok {
		return stageErr(StageValidation, eris.Wrap(ErrInvalidInput, "resource total overflows"))
	}
	return nil
}

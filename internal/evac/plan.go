package evac

import (
	"maps"
	"slices"

	"gonum.org/v1/gonum/mat"

	"github.com/mr1hm/go-evac-planner/internal/models"
)

// Plan is the result of a planning run. Accessors return copies, so a Plan
// cannot be changed after Planner.Plan returns it.
type Plan struct {
	threat         *mat.Dense
	threshold      float64
	affected       *mat.Dense
	routes         []models.Route
	priority       *mat.Dense
	routeTimes     []float64
	evacuationTime float64
	allocation     map[int]int
	units          []models.ResourceUnit
	mode           AllocationMode
}

// ThreatLevel is the weighted hazard field.
func (p *Plan) ThreatLevel() *mat.Dense { return mat.DenseCopyOf(p.threat) }

// Threshold is the percentile value a cell's threat had to exceed.
func (p *Plan) Threshold() float64 { return p.threshold }

// AffectedAreas holds the population of affected cells and 0 elsewhere.
func (p *Plan) AffectedAreas() *mat.Dense { return mat.DenseCopyOf(p.affected) }

// Routes are in raster scan order of their origins.
func (p *Plan) Routes() []models.Route { return slices.Clone(p.routes) }

func (p *Plan) Priority() *mat.Dense { return mat.DenseCopyOf(p.priority) }

// RouteTimes is parallel to Routes.
func (p *Plan) RouteTimes() []float64 { return slices.Clone(p.routeTimes) }

// EvacuationTime is the sum of RouteTimes.
func (p *Plan) EvacuationTime() float64 { return p.evacuationTime }

// ResourceAllocation maps a route index to an index into ResourceUnits.
func (p *Plan) ResourceAllocation() map[int]int { return maps.Clone(p.allocation) }

func (p *Plan) ResourceUnits() []models.ResourceUnit { return slices.Clone(p.units) }

func (p *Plan) AllocationMode() AllocationMode { return p.mode }

// AffectedCells counts cells with a non-zero affected population.
func (p *Plan) AffectedCells() int { return len(p.routes) }

// AllocatedUnit returns the resource unit assigned to route i, if any.
func (p *Plan) AllocatedUnit(i int) (models.ResourceUnit, bool) {
	j, ok := p.allocation[i]
	if !ok || j < 0 || j >= len(p.units) {
		return models.ResourceUnit{}, false
	}
	return p.units[j], true
}

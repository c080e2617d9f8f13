package api

import (
	"fmt"

	"gonum.org/v1/gonum/mat"

	"github.com/mr1hm/go-evac-planner/internal/models"
)

// PlanRequest is the JSON form of a region. Rasters are row-major nested
// arrays; safe zones are [row, col] pairs.
type PlanRequest struct {
	Rainfall           [][]float64    `json:"rainfall" binding:"required"`
	LandslideRisk      [][]float64    `json:"landslide_risk" binding:"required"`
	SoilSaturation     [][]float64    `json:"soil_saturation" binding:"required"`
	SlopeAngle         [][]float64    `json:"slope_angle" binding:"required"`
	PopulationDensity  [][]float64    `json:"population_density" binding:"required"`
	SafeZones          [][2]int       `json:"safe_zones"`
	RoadNetwork        [][]float64    `json:"road_network" binding:"required"`
	VulnerabilityIndex [][]float64    `json:"vulnerability_index" binding:"required"`
	RoadCapacity       [][]float64    `json:"road_capacity" binding:"required"`
	AvailableResources map[string]int `json:"available_resources"`
	AllocationMode     string         `json:"allocation_mode,omitempty"`
}

// Limits bounds the size of a request.
type Limits struct {
	MaxCells         int // per raster
	MaxResourceUnits int // summed over all kinds
}

// Region converts the request, rejecting ragged or oversized rasters and
// resource totals over the limit. Negative counts are left to evac.Validate.
func (r *PlanRequest) Region(limits Limits) (models.Region, error) {
	var region models.Region
	grids := []struct {
		name string
		src  [][]float64
		dst  **mat.Dense
	}{
		{"rainfall", r.Rainfall, &region.Hazards.Rainfall},
		{"landslide_risk", r.LandslideRisk, &region.Hazards.LandslideRisk},
		{"soil_saturation", r.SoilSaturation, &region.Hazards.SoilSaturation},
		{"slope_angle", r.SlopeAngle, &region.Hazards.SlopeAngle},
		{"population_density", r.PopulationDensity, &region.PopulationDensity},
		{"road_network", r.RoadNetwork, &region.RoadNetwork},
		{"vulnerability_index", r.VulnerabilityIndex, &region.VulnerabilityIndex},
		{"road_capacity", r.RoadCapacity, &region.RoadCapacity},
	}
	for _, g := range grids {
		m, err := toDense(g.src, limits.MaxCells)
		if err != nil {
			return models.Region{}, fmt.Errorf("%s: %w", g.name, err)
		}
		*g.dst = m
	}

	region.SafeZones = make([]models.Cell, len(r.SafeZones))
	for i, z := range r.SafeZones {
		region.SafeZones[i] = models.Cell{Row: z[0], Col: z[1]}
	}
	region.AvailableResources = models.ResourcePool{}
	total := 0
	for k, v := range r.AvailableResources {
		if v > 0 {
			if v > limits.MaxResourceUnits-total {
				return models.Region{}, fmt.Errorf("available_resources: more than %d units", limits.MaxResourceUnits)
			}
			total += v
		}
		region.AvailableResources[k] = v
	}
	return region, nil
}

func toDense(rows [][]float64, maxCells int) (*mat.Dense, error) {
	if len(rows) == 0 || len(rows[0]) == 0 {
		return nil, fmt.Errorf("empty raster")
	}
	nr, nc := len(rows), len(rows[0])
	if nr*nc > maxCells {
		return nil, fmt.Errorf("%dx%d raster exceeds %d cells", nr, nc, maxCells)
	}
	data := make([]float64, 0, nr*nc)
	for i, row := range rows {
		if len(row) != nc {
			return nil, fmt.Errorf("row %d has %d values, want %d", i, len(row), nc)
		}
		data = append(data, row...)
	}
	return mat.NewDense(nr, nc, data), nil
}

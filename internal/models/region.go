package models

import "gonum.org/v1/gonum/mat"

// HazardInputs are the four hazard rasters combined into the threat field.
type HazardInputs struct {
	Rainfall       *mat.Dense
	LandslideRisk  *mat.Dense
	SoilSaturation *mat.Dense
	SlopeAngle     *mat.Dense
}

// Region is the static snapshot a plan is computed from. All rasters share
// one shape. The planner only reads from it.
type Region struct {
	Hazards            HazardInputs
	PopulationDensity  *mat.Dense // non-negative counts
	SafeZones          []Cell
	RoadNetwork        *mat.Dense // strictly positive expected
	VulnerabilityIndex *mat.Dense
	RoadCapacity       *mat.Dense // strictly positive expected
	AvailableResources ResourcePool
}

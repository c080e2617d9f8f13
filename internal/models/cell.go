package models

import "math"

// Cell identifies a grid cell by row and column. It is the join key across
// every raster in a Region.
type Cell struct {
	Row int
	Col int
}

// Distance returns the straight-line distance to o in cell units.
func (c Cell) Distance(o Cell) float64 {
	return math.Hypot(float64(o.Row-c.Row), float64(o.Col-c.Col))
}

// Route pairs an affected origin cell with its assigned safe zone.
type Route struct {
	Origin      Cell
	Destination Cell
}

// Distance returns the straight-line length of the route.
func (r Route) Distance() float64 {
	return r.Origin.Distance(r.Destination)
}

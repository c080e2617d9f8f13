package api

import (
	"strconv"

	"github.com/twpayne/go-geom"
	"github.com/twpayne/go-geom/encoding/geojson"

	"github.com/mr1hm/go-evac-planner/internal/evac"
	"github.com/mr1hm/go-evac-planner/internal/models"
)

// toGeoJSON renders routes as LineStrings and safe zones as Points, in grid
// coordinates with x = column and y = row.
func toGeoJSON(p *evac.Plan, zones []models.Cell) *geojson.FeatureCollection {
	routes := p.Routes()
	times := p.RouteTimes()
	affected, priority := p.AffectedAreas(), p.Priority()
	features := make([]*geojson.Feature, 0, len(routes)+len(zones))

	for i, r := range routes {
		props := map[string]interface{}{
			"kind":       "route",
			"population": affected.At(r.Origin.Row, r.Origin.Col),
			"priority":   priority.At(r.Origin.Row, r.Origin.Col),
			"distance":   r.Distance(),
			"time":       times[i],
		}
		if unit, ok := p.AllocatedUnit(i); ok {
			props["resource"] = unit.String()
		}
		features = append(features, &geojson.Feature{
			ID: "route-" + strconv.Itoa(i),
			Geometry: geom.NewLineStringFlat(geom.XY, []float64{
				float64(r.Origin.Col), float64(r.Origin.Row),
				float64(r.Destination.Col), float64(r.Destination.Row),
			}),
			Properties: props,
		})
	}

	for i, z := range zones {
		features = append(features, &geojson.Feature{
			ID:         "zone-" + strconv.Itoa(i),
			Geometry:   geom.NewPointFlat(geom.XY, []float64{float64(z.Col), float64(z.Row)}),
			Properties: map[string]interface{}{"kind": "safe_zone"},
		})
	}

	return &geojson.FeatureCollection{Features: features}
}

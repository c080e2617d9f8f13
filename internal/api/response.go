package api

import (
	"gonum.org/v1/gonum/mat"

	"github.com/mr1hm/go-evac-planner/internal/evac"
)

type RouteJSON struct {
	Origin      [2]int  `json:"origin"`
	Destination [2]int  `json:"destination"`
	Distance    float64 `json:"distance"`
	Time        float64 `json:"time"`
}

type AllocationJSON struct {
	Route    int    `json:"route"`
	Resource int    `json:"resource"`
	Unit     string `json:"unit"`
}

type PlanResponse struct {
	ThreatLevel        [][]float64      `json:"threat_level"`
	Threshold          float64          `json:"threshold"`
	AffectedAreas      [][]float64      `json:"affected_areas"`
	EvacuationRoutes   []RouteJSON      `json:"evacuation_routes"`
	EvacuationPriority [][]float64      `json:"evacuation_priority"`
	EvacuationTime     float64          `json:"evacuation_time"`
	ResourceAllocation []AllocationJSON `json:"resource_allocation"`
	AllocationMode     string           `json:"allocation_mode"`
}

func toResponse(p *evac.Plan) PlanResponse {
	routes := p.Routes()
	times := p.RouteTimes()
	out := PlanResponse{
		ThreatLevel:        rowsOf(p.ThreatLevel()),
		Threshold:          p.Threshold(),
		AffectedAreas:      rowsOf(p.AffectedAreas()),
		EvacuationRoutes:   make([]RouteJSON, len(routes)),
		EvacuationPriority: rowsOf(p.Priority()),
		EvacuationTime:     p.EvacuationTime(),
		ResourceAllocation: []AllocationJSON{},
		AllocationMode:     string(p.AllocationMode()),
	}
	for i, r := range routes {
		out.EvacuationRoutes[i] = RouteJSON{
			Origin:      [2]int{r.Origin.Row, r.Origin.Col},
			Destination: [2]int{r.Destination.Row, r.Destination.Col},
			Distance:    r.Distance(),
			Time:        times[i],
		}
	}

	alloc := p.ResourceAllocation()
	for i := range routes {
		j, ok := alloc[i]
		if !ok {
			continue
		}
		unit, _ := p.AllocatedUnit(i)
		out.ResourceAllocation = append(out.ResourceAllocation, AllocationJSON{
			Route:    i,
			Resource: j,
			Unit:     unit.String(),
		})
	}
	return out
}

func rowsOf(m *mat.Dense) [][]float64 {
	r, _ := m.Dims()
	out := make([][]float64, r)
	for i := range out {
		out[i] = mat.Row(nil, i, m)
	}
	return out
}

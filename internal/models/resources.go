package models

import (
	"fmt"
	"math"
	"sort"
)

// ResourcePool maps a resource kind (e.g. "vehicles") to its available count.
type ResourcePool map[string]int

// Total returns the number of resource units across all kinds. ok is false
// when a count is negative or the sum does not fit in an int.
func (p ResourcePool) Total() (total int, ok bool) {
	for _, n := range p {
		if n < 0 || n > math.MaxInt-total {
			return 0, false
		}
		total += n
	}
	return total, true
}

// ResourceUnit is a single unit of a resource kind.
type ResourceUnit struct {
	Kind    string
	Ordinal int // 0-based within Kind
}

func (u ResourceUnit) String() string {
	return fmt.Sprintf("%s#%d", u.Kind, u.Ordinal)
}

// Units expands the pool into individual units, kinds in name order. It
// returns nil for a pool whose Total is not ok.
func (p ResourcePool) Units() []ResourceUnit {
	total, ok := p.Total()
	if !ok {
		return nil
	}
	kinds := make([]string, 0, len(p))
	for k := range p {
		kinds = append(kinds, k)
	}
	sort.Strings(kinds)

	units := make([]ResourceUnit, 0, total)
	for _, k := range kinds {
		for i := 0; i < p[k]; i++ {
			units = append(units, ResourceUnit{Kind: k, Ordinal: i})
		}
	}
	return units
}

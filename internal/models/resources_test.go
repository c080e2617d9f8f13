package models

import (
	"math"
	"testing"
)

func TestResourcePool_Total(t *testing.T) {
	tests := []struct {
		name   string
		pool   ResourcePool
		want   int
		wantOK bool
	}{
		{"empty", ResourcePool{}, 0, true},
		{"sum", ResourcePool{"vehicles": 2, "personnel": 3}, 5, true},
		{"negative", ResourcePool{"vehicles": -1}, 0, false},
		{"overflow", ResourcePool{"a": math.MaxInt, "b": 1}, 0, false},
		{"max", ResourcePool{"a": math.MaxInt}, math.MaxInt, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := tt.pool.Total()
			if got != tt.want || ok != tt.wantOK {
				t.Errorf("Total() = %d, %v; want %d, %v", got, ok, tt.want, tt.wantOK)
			}
		})
	}
}

func TestResourcePool_Units(t *testing.T) {
	units := ResourcePool{"vehicles": 2, "boats": 1}.Units()
	want := []string{"boats#0", "vehicles#0", "vehicles#1"}
	if len(units) != len(want) {
		t.Fatalf("got %d units, want %d", len(units), len(want))
	}
	for i, u := range units {
		if u.String() != want[i] {
			t.Errorf("unit %d = %s, want %s", i, u, want[i])
		}
	}
}

func TestResourcePool_UnitsOverflow(t *testing.T) {
	if units := (ResourcePool{"a": math.MaxInt, "b": 1}).Units(); units != nil {
		t.Errorf("expected nil units for an overflowing pool, got %d", len(units))
	}
}

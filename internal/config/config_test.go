package config

import (
	"testing"

	"github.com/mr1hm/go-evac-planner/internal/evac"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if cfg.Server.Port != 8080 {
		t.Errorf("expected port 8080, got %d", cfg.Server.Port)
	}
	if cfg.Server.MaxResourceUnits != 10_000 {
		t.Errorf("expected 10000 max resource units, got %d", cfg.Server.MaxResourceUnits)
	}
	if cfg.Planner.Weights != evac.DefaultWeights {
		t.Errorf("expected default weights, got %v", cfg.Planner.Weights)
	}
	if cfg.Planner.Percentile != 70 {
		t.Errorf("expected percentile 70, got %v", cfg.Planner.Percentile)
	}
	if cfg.Planner.PeoplePerVehicle != 50 {
		t.Errorf("expected 50 people per vehicle, got %v", cfg.Planner.PeoplePerVehicle)
	}
	if cfg.Planner.AllocationMode != evac.AllocationCorrected {
		t.Errorf("expected corrected mode, got %s", cfg.Planner.AllocationMode)
	}
	if len(cfg.Options()) != 4 {
		t.Errorf("expected 4 planner options, got %d", len(cfg.Options()))
	}
}

func TestLoad_FromEnv(t *testing.T) {
	t.Setenv("SERVER_PORT", "9090")
	t.Setenv("THREAT_WEIGHTS", "0.4, 0.2, 0.2, 0.2")
	t.Setenv("ALLOCATION_MODE", "strict")
	t.Setenv("PEOPLE_PER_VEHICLE", "40")
	t.Setenv("LOG_FORMAT", "text")
	t.Setenv("MAX_RESOURCE_UNITS", "500")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if cfg.Server.Port != 9090 {
		t.Errorf("expected port 9090, got %d", cfg.Server.Port)
	}
	if cfg.Planner.Weights != (evac.Weights{0.4, 0.2, 0.2, 0.2}) {
		t.Errorf("unexpected weights %v", cfg.Planner.Weights)
	}
	if cfg.Planner.AllocationMode != evac.AllocationStrict {
		t.Errorf("expected strict mode, got %s", cfg.Planner.AllocationMode)
	}
	if cfg.Planner.PeoplePerVehicle != 40 {
		t.Errorf("expected 40 people per vehicle, got %v", cfg.Planner.PeoplePerVehicle)
	}
	if cfg.Server.MaxResourceUnits != 500 {
		t.Errorf("expected 500 max resource units, got %d", cfg.Server.MaxResourceUnits)
	}
}

func TestLoad_Invalid(t *testing.T) {
	tests := []struct {
		name, key, val string
	}{
		{"port", "SERVER_PORT", "70000"},
		{"log level", "LOG_LEVEL", "verbose"},
		{"log format", "LOG_FORMAT", "xml"},
		{"percentile", "AFFECTED_PERCENTILE", "100"},
		{"people per vehicle", "PEOPLE_PER_VEHICLE", "-5"},
		{"weights count", "THREAT_WEIGHTS", "0.5,0.5"},
		{"weights value", "THREAT_WEIGHTS", "a,b,c,d"},
		{"weights sign", "THREAT_WEIGHTS", "-1,1,1,1"},
		{"mode", "ALLOCATION_MODE", "greedy"},
		{"rate", "RATE_LIMIT_RPS", "0"},
		{"resource units", "MAX_RESOURCE_UNITS", "0"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv(tt.key, tt.val)
			if _, err := Load(); err == nil {
				t.Errorf("expected error for %s=%s", tt.key, tt.val)
			}
		})
	}
}

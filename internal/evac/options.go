package evac

import (
	"log/slog"
	"math"
	"strings"

	"github.com/rotisserie/eris"
)

// AllocationMode selects how the resource allocation cost matrix is built.
type AllocationMode string

const (
	// AllocationCorrected solves a routes x resource-units matrix.
	AllocationCorrected AllocationMode = "corrected"
	// AllocationStrict hands the solver the flattened, time-scaled priority
	// field. The solver needs a 2-d matrix, so this mode always fails at the
	// allocation stage once the time check passes.
	AllocationStrict AllocationMode = "strict"
)

// ParseAllocationMode accepts "corrected" or "strict", case-insensitively.
func ParseAllocationMode(s string) (AllocationMode, error) {
	switch AllocationMode(strings.ToLower(strings.TrimSpace(s))) {
	case AllocationCorrected:
		return AllocationCorrected, nil
	case AllocationStrict:
		return AllocationStrict, nil
	default:
		return "", eris.Errorf("unknown allocation mode %q", s)
	}
}

// Weights are the threat weights for rainfall, landslide risk, soil
// saturation and slope angle, in that order.
type Weights [4]float64

// DefaultWeights are the calibrated hazard weights.
var DefaultWeights = Weights{0.3, 0.3, 0.2, 0.2}

const (
	DefaultPercentile       = 70.0
	DefaultPeoplePerVehicle = 50.0
)

func (w Weights) validate() error {
	sum := 0.0
	for i, v := range w {
		if v < 0 || math.IsNaN(v) || math.IsInf(v, 0) {
			return eris.Wrapf(ErrInvalidInput, "weight %d is %v", i, v)
		}
		sum += v
	}
	if sum <= 0 {
		return eris.Wrap(ErrInvalidInput, "weights must have a positive sum")
	}
	return nil
}

// Option configures a Planner.
type Option func(*Planner)

// WithWeights overrides DefaultWeights.
func WithWeights(w Weights) Option {
	return func(p *Planner) {
		p.weights = w
	}
}

// WithPercentile sets the threat percentile above which cells are affected.
func WithPercentile(pct float64) Option {
	return func(p *Planner) {
		p.percentile = pct
	}
}

// WithPeoplePerVehicle sets the vehicle occupancy used by time estimation.
func WithPeoplePerVehicle(n float64) Option {
	return func(p *Planner) {
		p.peoplePerVehicle = n
	}
}

func WithAllocationMode(m AllocationMode) Option {
	return func(p *Planner) {
		p.mode = m
	}
}

func WithLogger(l *slog.Logger) Option {
	return func(p *Planner) {
		if l != nil {
			p.logger = l
		}
	}
}

package evac

import (
	"errors"
	"fmt"

	"github.com/rotisserie/eris"
	"gonum.org/v1/gonum/mat"

	"github.com/mr1hm/go-evac-planner/internal/models"
	"github.com/mr1hm/go-evac-planner/internal/raster"
)

var (
	ErrShapeMismatch       = eris.New("shape mismatch")
	ErrDivisionByZero      = eris.New("division by zero")
	ErrOptimizerInfeasible = eris.New("optimizer infeasible")
	ErrInvalidInput        = eris.New("invalid input")
)

// Stage names a step of the planning pipeline.
type Stage string

const (
	StageValidation Stage = "validation"
	StageThreat     Stage = "threat_scoring"
	StageAffected   Stage = "affected_extraction"
	StageRoutes     Stage = "route_assignment"
	StagePriority   Stage = "priority_scoring"
	StageTime       Stage = "time_estimation"
	StageAllocation Stage = "resource_allocation"
)

// StageError reports which stage failed and, where one applies, the cell and
// route index involved. Index is -1 when no route is involved.
type StageError struct {
	Stage Stage
	Cell  *models.Cell
	Index int
	Err   error
}

func (e *StageError) Error() string {
	msg := fmt.Sprintf("evac: %s", e.Stage)
	if e.Index >= 0 {
		msg += fmt.Sprintf(": route %d", e.Index)
	}
	if e.Cell != nil {
		msg += fmt.Sprintf(": cell (%d, %d)", e.Cell.Row, e.Cell.Col)
	}
	return msg + ": " + e.Err.Error()
}

func (e *StageError) Unwrap() error {
	return e.Err
}

func stageErr(stage Stage, err error) *StageError {
	return &StageError{Stage: stage, Index: -1, Err: err}
}

func cellErr(stage Stage, cell models.Cell, index int, err error) *StageError {
	return &StageError{Stage: stage, Cell: &cell, Index: index, Err: err}
}

// shape checks that grids are non-empty and share dimensions, mapping raster
// errors onto the planner taxonomy.
func shape(stage Stage, grids ...mat.Matrix) (int, int, error) {
	rows, cols, err := raster.Shape(grids...)
	switch {
	case err == nil:
		return rows, cols, nil
	case errors.Is(err, raster.ErrShape):
		return 0, 0, stageErr(stage, fmt.Errorf("%w: %w", ErrShapeMismatch, err))
	default:
		return 0, 0, stageErr(stage, fmt.Errorf("%w: %w", ErrInvalidInput, err))
	}
}

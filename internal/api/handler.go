package api

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/mr1hm/go-evac-planner/internal/evac"
	"github.com/mr1hm/go-evac-planner/internal/models"
)

type Handler struct {
	limits Limits
	opts   []evac.Option
	logger *slog.Logger
}

// NewHandler serves plans computed with opts. Requests over limits are
// rejected before planning.
func NewHandler(limits Limits, logger *slog.Logger, opts ...evac.Option) *Handler {
	if logger == nil {
		logger = slog.Default()
	}
	return &Handler{
		limits: limits,
		opts:   opts,
		logger: logger,
	}
}

func (h *Handler) RegisterRoutes(r *gin.Engine) {
	r.POST("/api/plans", h.createPlan)
	r.POST("/api/plans/geojson", h.createPlanGeoJSON)
	r.GET("/health", h.health)
}

func (h *Handler) createPlan(c *gin.Context) {
	plan, _, ok := h.plan(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, toResponse(plan))
}

func (h *Handler) createPlanGeoJSON(c *gin.Context) {
	plan, region, ok := h.plan(c)
	if !ok {
		return
	}
	c.Header("Content-Type", "application/geo+json")
	c.JSON(http.StatusOK, toGeoJSON(plan, region.SafeZones))
}

func (h *Handler) health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// plan decodes the request and runs the planner, writing the error response
// itself when it returns false.
func (h *Handler) plan(c *gin.Context) (*evac.Plan, models.Region, bool) {
	var req PlanRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body: " + err.Error()})
		return nil, models.Region{}, false
	}

	region, err := req.Region(h.limits)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return nil, models.Region{}, false
	}

	opts := append([]evac.Option{evac.WithLogger(h.logger)}, h.opts...)
	if req.AllocationMode != "" {
		mode, err := evac.ParseAllocationMode(req.AllocationMode)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return nil, models.Region{}, false
		}
		opts = append(opts, evac.WithAllocationMode(mode))
	}

	planner, err := evac.NewPlanner(region, opts...)
	if err != nil {
		h.logger.Error("planner configuration rejected", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "planner misconfigured"})
		return nil, models.Region{}, false
	}

	plan, err := planner.Plan()
	if err != nil {
		h.logger.Info("planning failed", "error", err)
		c.JSON(statusFor(err), errorBody(err))
		return nil, models.Region{}, false
	}
	return plan, region, true
}

func statusFor(err error) int {
	switch {
	case errors.Is(err, evac.ErrShapeMismatch), errors.Is(err, evac.ErrInvalidInput):
		return http.StatusBadRequest
	case errors.Is(err, evac.ErrDivisionByZero), errors.Is(err, evac.ErrOptimizerInfeasible):
		return http.StatusUnprocessableEntity
	default:
		return http.StatusInternalServerError
	}
}

func errorBody(err error) gin.H {
	body := gin.H{"error": err.Error()}
	var se *evac.StageError
	if errors.As(err, &se) {
		body["stage"] = se.Stage
		if se.Cell != nil {
			body["cell"] = [2]int{se.Cell.Row, se.Cell.Col}
		}
		if se.Index >= 0 {
			body["route"] = se.Index
		}
	}
	return body
}

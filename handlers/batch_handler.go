package handlers

import (
	"context"
	"strconv"

	"github.com/gofiber/fiber/v2"

	"batch-gateway-server/models"
)

// BatchRunner is the batch execution surface the handler needs.
// Implemented by *services.BatchService.
type BatchRunner interface {
	Execute(ctx context.Context, req *models.BatchRequest) (*models.BatchRun, error)
	TryExecute(ctx context.Context, req *models.BatchRequest) (*models.BatchRun, error)
	Query(ctx context.Context, req *models.BatchRequest) (*models.BatchRun, error)
	TryQuery(ctx context.Context, req *models.BatchRequest) (*models.BatchRun, error)
	GetRun(ctx context.Context, id int64) (*models.BatchRun, error)
	ListRuns(ctx context.Context, limit int) ([]models.BatchRunListItem, error)
}

type BatchHandler struct {
	service BatchRunner
}

func NewBatchHandler(svc BatchRunner) *BatchHandler {
	return &BatchHandler{service: svc}
}

// Execute godoc
// @Summary Execute a mutating batch atomically
// @Description Dispatch the calls in order; the first failure aborts the batch and later calls are never dispatched. Effects of earlier calls are not rolled back.
// @Tags batches
// @Accept json
// @Produce json
// @Param batch body models.BatchRequest true "Ordered calls to dispatch"
// @Success 200 {object} models.BatchRun
// @Failure 409 {object} models.BatchRun
// @Router /batches/execute [post]
func (h *BatchHandler) Execute(c *fiber.Ctx) error {
	return h.runBatch(c, h.service.Execute)
}

// TryExecute godoc
// @Summary Execute a mutating batch best-effort
// @Description Dispatch every call in order exactly once, continuing past failures
// @Tags batches
// @Accept json
// @Produce json
// @Param batch body models.BatchRequest true "Ordered calls to dispatch"
// @Success 200 {object} models.BatchRun
// @Router /batches/try-execute [post]
func (h *BatchHandler) TryExecute(c *fiber.Ctx) error {
	return h.runBatch(c, h.service.TryExecute)
}

// Query godoc
// @Summary Run a read-only batch atomically
// @Description Dispatch the calls read-only in order; the first failure aborts the batch without partial results
// @Tags batches
// @Accept json
// @Produce json
// @Param batch body models.BatchRequest true "Ordered calls to dispatch"
// @Success 200 {object} models.BatchRun
// @Failure 409 {object} models.BatchRun
// @Router /batches/query [post]
func (h *BatchHandler) Query(c *fiber.Ctx) error {
	return h.runBatch(c, h.service.Query)
}

// TryQuery godoc
// @Summary Run a read-only batch best-effort
// @Description Dispatch every call read-only; outcomes are index-aligned with the submitted calls and failures surface as success=false entries
// @Tags batches
// @Accept json
// @Produce json
// @Param batch body models.BatchRequest true "Ordered calls to dispatch"
// @Success 200 {object} models.BatchRun
// @Router /batches/try-query [post]
func (h *BatchHandler) TryQuery(c *fiber.Ctx) error {
	return h.runBatch(c, h.service.TryQuery)
}

func (h *BatchHandler) runBatch(c *fiber.Ctx, runFn func(context.Context, *models.BatchRequest) (*models.BatchRun, error)) error {
	var req models.BatchRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request body",
		})
	}

	run, err := runFn(c.Context(), &req)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": err.Error(),
		})
	}

	// Atomic aborts surface as a single batch-level failure
	if run.Status == models.StatusFail {
		return c.Status(fiber.StatusConflict).JSON(run)
	}

	return c.JSON(run)
}

// GetRun godoc
// @Summary Get a recorded batch run
// @Description Get a batch run with its recorded per-call outcomes (query mode)
// @Tags batches
// @Produce json
// @Param id path int true "Batch run ID"
// @Success 200 {object} models.BatchRun
// @Failure 404 {object} map[string]string
// @Router /batches/{id} [get]
func (h *BatchHandler) GetRun(c *fiber.Ctx) error {
	idStr := c.Params("id")
	id, err := strconv.ParseInt(idStr, 10, 64)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid batch run ID",
		})
	}

	run, err := h.service.GetRun(c.Context(), id)
	if err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": err.Error(),
		})
	}

	return c.JSON(run)
}

// ListRuns godoc
// @Summary List recent batch runs
// @Tags batches
// @Produce json
// @Param limit query int false "Number of results to return" default(20)
// @Success 200 {array} models.BatchRunListItem
// @Router /batches [get]
func (h *BatchHandler) ListRuns(c *fiber.Ctx) error {
	limit := c.QueryInt("limit", 20)

	runs, err := h.service.ListRuns(c.Context(), limit)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": err.Error(),
		})
	}

	if runs == nil {
		runs = []models.BatchRunListItem{}
	}

	return c.JSON(runs)
}

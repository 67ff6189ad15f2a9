package handlers

import (
	"strconv"

	"github.com/gofiber/fiber/v2"

	"batch-gateway-server/models"
	"batch-gateway-server/services"
)

type EndpointHandler struct {
	service *services.EndpointService
}

func NewEndpointHandler(svc *services.EndpointService) *EndpointHandler {
	return &EndpointHandler{service: svc}
}

// CreateEndpoint godoc
// @Summary Register a new endpoint
// @Description Register an invocation target batches can address by name
// @Tags endpoints
// @Accept json
// @Produce json
// @Param endpoint body models.CreateEndpointRequest true "Endpoint to register"
// @Success 200 {object} models.Endpoint
// @Failure 400 {object} map[string]string
// @Router /endpoints [post]
func (h *EndpointHandler) CreateEndpoint(c *fiber.Ctx) error {
	var req models.CreateEndpointRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request body",
		})
	}

	// Validation
	if req.Name == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "name is required",
		})
	}
	if req.Kind == "" {
		req.Kind = models.EndpointKindHTTP
	}

	ep, err := h.service.CreateEndpoint(c.Context(), &req)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": err.Error(),
		})
	}

	return c.JSON(ep)
}

// ListEndpoints godoc
// @Summary List all endpoints
// @Tags endpoints
// @Produce json
// @Success 200 {array} models.EndpointListItem
// @Router /endpoints [get]
func (h *EndpointHandler) ListEndpoints(c *fiber.Ctx) error {
	endpoints, err := h.service.ListEndpoints(c.Context())
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": err.Error(),
		})
	}

	if endpoints == nil {
		endpoints = []models.EndpointListItem{}
	}

	return c.JSON(endpoints)
}

// GetEndpoint godoc
// @Summary Get endpoint details
// @Tags endpoints
// @Produce json
// @Param id path int true "Endpoint ID"
// @Success 200 {object} models.Endpoint
// @Failure 404 {object} map[string]string
// @Router /endpoints/{id} [get]
func (h *EndpointHandler) GetEndpoint(c *fiber.Ctx) error {
	idStr := c.Params("id")
	id, err := strconv.ParseInt(idStr, 10, 64)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid endpoint ID",
		})
	}

	ep, err := h.service.GetEndpoint(c.Context(), id)
	if err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": err.Error(),
		})
	}

	return c.JSON(ep)
}

// DeleteEndpoint godoc
// @Summary Delete an endpoint registration
// @Tags endpoints
// @Param id path int true "Endpoint ID"
// @Success 204
// @Failure 404 {object} map[string]string
// @Router /endpoints/{id} [delete]
func (h *EndpointHandler) DeleteEndpoint(c *fiber.Ctx) error {
	idStr := c.Params("id")
	id, err := strconv.ParseInt(idStr, 10, 64)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid endpoint ID",
		})
	}

	if err := h.service.DeleteEndpoint(c.Context(), id); err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": err.Error(),
		})
	}

	return c.SendStatus(fiber.StatusNoContent)
}

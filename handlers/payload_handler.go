package handlers

import (
	"github.com/gofiber/fiber/v2"

	"batch-gateway-server/services"
)

type PayloadHandler struct {
	store services.PayloadStore
}

func NewPayloadHandler(store services.PayloadStore) *PayloadHandler {
	return &PayloadHandler{store: store}
}

// UploadPayload godoc
// @Summary Upload a payload blob
// @Description Store an opaque payload once and reference it from batch calls via payload_key
// @Tags payloads
// @Accept octet-stream
// @Produce json
// @Param payload body string true "Raw payload bytes"
// @Success 200 {object} map[string]string
// @Failure 400 {object} map[string]string
// @Router /payloads [post]
func (h *PayloadHandler) UploadPayload(c *fiber.Ctx) error {
	payload := c.Body()
	if len(payload) == 0 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "payload is required",
		})
	}

	key := services.GeneratePayloadKey()
	if err := h.store.SavePayload(c.Context(), key, payload); err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": err.Error(),
		})
	}

	return c.JSON(fiber.Map{"key": key})
}

// GetPayload godoc
// @Summary Download a stored payload blob
// @Tags payloads
// @Produce octet-stream
// @Param key path string true "Payload key"
// @Success 200 {string} string
// @Failure 404 {object} map[string]string
// @Router /payloads/{key} [get]
func (h *PayloadHandler) GetPayload(c *fiber.Ctx) error {
	key := c.Params("*")
	if key == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "payload key is required",
		})
	}

	payload, err := h.store.GetPayload(c.Context(), key)
	if err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": err.Error(),
		})
	}

	c.Set("Content-Type", "application/octet-stream")
	return c.Send(payload)
}

// DeletePayload godoc
// @Summary Delete a stored payload blob
// @Tags payloads
// @Param key path string true "Payload key"
// @Success 204
// @Failure 404 {object} map[string]string
// @Router /payloads/{key} [delete]
func (h *PayloadHandler) DeletePayload(c *fiber.Ctx) error {
	key := c.Params("*")
	if key == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "payload key is required",
		})
	}

	if err := h.store.DeletePayload(c.Context(), key); err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": err.Error(),
		})
	}

	return c.SendStatus(fiber.StatusNoContent)
}

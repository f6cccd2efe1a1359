package handlers

import (
	"errors"
	"log/slog"

	"github.com/gofiber/fiber/v2"
	"github.com/maitri-app/maitri-backend/internal/dto"
	"github.com/maitri-app/maitri-backend/internal/services"
)

type UploadHandler struct {
	storageService *services.StorageService
}

func NewUploadHandler(storageService *services.StorageService) *UploadHandler {
	return &UploadHandler{storageService: storageService}
}

// Presign handles POST /api/upload: returns a short-lived S3 PUT URL plus
// the public URL the client submits as the report's imageUrl.
func (h *UploadHandler) Presign(c *fiber.Ctx) error {
	var req dto.UploadRequest
	if err := c.BodyParser(&req); err != nil && !errors.Is(err, fiber.ErrUnprocessableEntity) {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: true, Message: "Invalid request body",
		})
	}

	resp, err := h.storageService.PresignUpload(c.Context(), req.ContentType)
	if err != nil {
		if errors.Is(err, services.ErrStorageNotConfigured) {
			return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
				Error: true, Message: "Image storage is not configured. Please contact the administrator.",
			})
		}
		slog.Error("presign upload failed", "error", err)
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Error: true, Message: "Failed to prepare upload",
		})
	}

	return c.JSON(resp)
}

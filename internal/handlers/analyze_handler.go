package handlers

import (
	"errors"
	"log/slog"

	"github.com/gofiber/fiber/v2"
	"github.com/maitri-app/maitri-backend/internal/dto"
	"github.com/maitri-app/maitri-backend/internal/services"
)

type AnalyzeHandler struct {
	analysisService *services.AnalysisService
}

func NewAnalyzeHandler(analysisService *services.AnalysisService) *AnalyzeHandler {
	return &AnalyzeHandler{analysisService: analysisService}
}

type analyzeRequest struct {
	Image string `json:"image"`
}

// Analyze handles POST /api/analyze: classifies an image into the injury
// assessment used to gate report submission. Upstream failures get a
// generic message; the detail is logged server-side only.
func (h *AnalyzeHandler) Analyze(c *fiber.Ctx) error {
	var req analyzeRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: true, Message: "Invalid request body",
		})
	}

	result, err := h.analysisService.Analyze(req.Image)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrImageRequired):
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
				Error: true, Message: err.Error(),
			})
		case errors.Is(err, services.ErrAINotConfigured):
			return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
				Error: true, Message: "AI analysis is not configured. Please contact the administrator.",
			})
		}
		slog.Error("image analysis failed", "error", err)
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Error: true, Message: "Failed to analyze image",
		})
	}

	return c.JSON(result)
}

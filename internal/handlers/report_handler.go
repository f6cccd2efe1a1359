package handlers

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/maitri-app/maitri-backend/internal/dto"
	"github.com/maitri-app/maitri-backend/internal/services"
)

type ReportHandler struct {
	reportService     *services.ReportService
	engagementService *services.EngagementService
}

func NewReportHandler(reportService *services.ReportService, engagementService *services.EngagementService) *ReportHandler {
	return &ReportHandler{reportService: reportService, engagementService: engagementService}
}

// CreateReport handles POST /api/reports. The submitting device's user is
// created lazily; the report starts at pending.
func (h *ReportHandler) CreateReport(c *fiber.Ctx) error {
	var req dto.CreateReportRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: true, Message: "Invalid request body",
		})
	}

	report, err := h.reportService.Submit(&req)
	if err != nil {
		if errors.Is(err, services.ErrDeviceIDRequired) || errors.Is(err, services.ErrImageURLRequired) ||
			errors.Is(err, services.ErrInvalidLatitude) || errors.Is(err, services.ErrInvalidLongitude) ||
			errors.Is(err, services.ErrInvalidAnalysis) {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
				Error: true, Message: err.Error(),
			})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Error: true, Message: "Failed to create report",
		})
	}

	return c.Status(fiber.StatusCreated).JSON(report)
}

// ListReports handles GET /api/reports: every report joined with its owner,
// likes, and comments, newest first. Optional ?mine=<deviceId> and
// ?status=<status> filters narrow the feed server-side.
func (h *ReportHandler) ListReports(c *fiber.Ctx) error {
	reports, err := h.reportService.List(c.Query("mine"), c.Query("status"))
	if err != nil {
		if errors.Is(err, services.ErrInvalidStatus) {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
				Error: true, Message: err.Error(),
			})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Error: true, Message: "Failed to fetch reports",
		})
	}

	return c.JSON(reports)
}

// ToggleLike handles POST /api/reports/:id/like. A like for the pair is
// created if absent and deleted if present; the response carries the
// resulting state.
func (h *ReportHandler) ToggleLike(c *fiber.Ctx) error {
	reportID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: true, Message: "Invalid report ID",
		})
	}

	var req dto.ToggleLikeRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: true, Message: "Invalid request body",
		})
	}

	liked, count, err := h.engagementService.ToggleLike(req.DeviceID, reportID)
	if err != nil {
		return h.engagementError(c, err, "Failed to toggle like")
	}

	return c.JSON(dto.LikeStateResponse{Liked: liked, Count: count})
}

// GetLikeState handles GET /api/reports/:id/like?deviceId=. It exists so
// clients don't have to infer state from their last toggle response.
func (h *ReportHandler) GetLikeState(c *fiber.Ctx) error {
	reportID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: true, Message: "Invalid report ID",
		})
	}

	liked, count, err := h.engagementService.LikeState(c.Query("deviceId"), reportID)
	if err != nil {
		return h.engagementError(c, err, "Failed to fetch like state")
	}

	return c.JSON(dto.LikeStateResponse{Liked: liked, Count: count})
}

// AddComment handles POST /api/reports/:id/comment.
func (h *ReportHandler) AddComment(c *fiber.Ctx) error {
	reportID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: true, Message: "Invalid report ID",
		})
	}

	var req dto.CreateCommentRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: true, Message: "Invalid request body",
		})
	}

	comment, err := h.engagementService.AddComment(req.DeviceID, reportID, req.Text)
	if err != nil {
		return h.engagementError(c, err, "Failed to create comment")
	}

	return c.Status(fiber.StatusCreated).JSON(comment)
}

func (h *ReportHandler) engagementError(c *fiber.Ctx, err error, fallback string) error {
	switch {
	case errors.Is(err, services.ErrDeviceIDRequired) || errors.Is(err, services.ErrTextRequired):
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: true, Message: err.Error(),
		})
	case errors.Is(err, services.ErrUserNotFound) || errors.Is(err, services.ErrReportNotFound):
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{
			Error: true, Message: err.Error(),
		})
	}
	return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
		Error: true, Message: fallback,
	})
}

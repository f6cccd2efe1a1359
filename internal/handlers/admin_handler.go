package handlers

import (
	"errors"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/maitri-app/maitri-backend/internal/dto"
	"github.com/maitri-app/maitri-backend/internal/services"
)

// SessionCookieName is the admin session cookie. Its value is a signed,
// expiring token verified statelessly; clearing the cookie or waiting out
// the expiry are the only ways a session ends.
const SessionCookieName = "admin_session"

type AdminHandler struct {
	adminService  *services.AdminService
	reportService *services.ReportService
	sessionTTL    time.Duration
}

func NewAdminHandler(adminService *services.AdminService, reportService *services.ReportService, sessionTTL time.Duration) *AdminHandler {
	return &AdminHandler{
		adminService:  adminService,
		reportService: reportService,
		sessionTTL:    sessionTTL,
	}
}

// Login handles POST /api/admin/login: checks the shared credential pair
// and sets the session cookie. 500 when the server has no credentials
// configured, 401 on mismatch.
func (h *AdminHandler) Login(c *fiber.Ctx) error {
	var req dto.AdminLoginRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: true, Message: "Invalid request body",
		})
	}

	token, err := h.adminService.Login(req.Username, req.Password)
	if err != nil {
		if errors.Is(err, services.ErrAdminNotConfigured) {
			return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
				Error: true, Message: err.Error(),
			})
		}
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{
			Error: true, Message: services.ErrInvalidAdminCredentials.Error(),
		})
	}

	c.Cookie(&fiber.Cookie{
		Name:     SessionCookieName,
		Value:    token,
		Path:     "/",
		MaxAge:   int(h.sessionTTL.Seconds()),
		HTTPOnly: true,
		SameSite: fiber.CookieSameSiteLaxMode,
	})

	var deviceID *string
	if req.DeviceID != "" {
		deviceID = &req.DeviceID
	}
	return c.JSON(dto.AdminLoginResponse{Success: true, DeviceID: deviceID})
}

// Logout handles POST /api/admin/logout: clears the cookie (empty value,
// zero lifetime).
func (h *AdminHandler) Logout(c *fiber.Ctx) error {
	c.Cookie(&fiber.Cookie{
		Name:     SessionCookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		Expires:  time.Now().Add(-time.Hour),
		HTTPOnly: true,
		SameSite: fiber.CookieSameSiteLaxMode,
	})
	return c.JSON(fiber.Map{"success": true})
}

// Session handles GET /api/admin/session. It only inspects the cookie;
// credentials are never re-validated here.
func (h *AdminHandler) Session(c *fiber.Ctx) error {
	err := h.adminService.VerifySession(c.Cookies(SessionCookieName))
	return c.JSON(dto.AdminSessionResponse{Authenticated: err == nil})
}

// UpdateReportStatus handles PUT /api/admin/reports/:id/status.
func (h *AdminHandler) UpdateReportStatus(c *fiber.Ctx) error {
	reportID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: true, Message: "Invalid report ID",
		})
	}

	var req dto.UpdateReportStatusRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: true, Message: "Invalid request body",
		})
	}

	report, err := h.reportService.UpdateStatus(reportID, req.Status)
	if err != nil {
		if errors.Is(err, services.ErrInvalidStatus) {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
				Error: true, Message: err.Error(),
			})
		}
		if errors.Is(err, services.ErrReportNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{
				Error: true, Message: err.Error(),
			})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Error: true, Message: "Failed to update report status",
		})
	}

	return c.JSON(report)
}

// Stats handles GET /api/admin/stats: report totals per status for the
// admin dashboard.
func (h *AdminHandler) Stats(c *fiber.Ctx) error {
	stats, err := h.reportService.Stats()
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Error: true, Message: "Failed to fetch stats",
		})
	}
	return c.JSON(stats)
}

package routes

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	"github.com/maitri-app/maitri-backend/internal/config"
	"github.com/maitri-app/maitri-backend/internal/handlers"
	"github.com/maitri-app/maitri-backend/internal/middleware"
)

func Setup(
	app *fiber.App,
	cfg *config.Config,
	healthHandler *handlers.HealthHandler,
	reportHandler *handlers.ReportHandler,
	adminHandler *handlers.AdminHandler,
	analyzeHandler *handlers.AnalyzeHandler,
	uploadHandler *handlers.UploadHandler,
) {
	api := app.Group("/api")

	// General API rate limiter: 60 req/min per IP
	api.Use(limiter.New(limiter.Config{
		Max:               60,
		Expiration:        1 * time.Minute,
		LimiterMiddleware: limiter.SlidingWindow{},
		KeyGenerator:      func(c *fiber.Ctx) string { return c.IP() },
	}))

	api.Get("/health", healthHandler.Check)

	// Reports and engagement — device identity travels in the payload,
	// so no auth middleware at this layer
	api.Post("/reports", reportHandler.CreateReport)
	api.Get("/reports", reportHandler.ListReports)
	api.Post("/reports/:id/like", reportHandler.ToggleLike)
	api.Get("/reports/:id/like", reportHandler.GetLikeState)
	api.Post("/reports/:id/comment", reportHandler.AddComment)

	// Classification and image upload
	api.Post("/analyze", analyzeHandler.Analyze)
	api.Post("/upload", uploadHandler.Presign)

	// Admin session lifecycle — stricter rate limit on login: 10 req/min per IP
	adminAuth := api.Group("/admin")
	adminAuth.Post("/login", limiter.New(limiter.Config{
		Max:               10,
		Expiration:        1 * time.Minute,
		LimiterMiddleware: limiter.SlidingWindow{},
		KeyGenerator:      func(c *fiber.Ctx) string { return c.IP() },
	}), adminHandler.Login)
	adminAuth.Post("/logout", adminHandler.Logout)
	adminAuth.Get("/session", adminHandler.Session)

	// Moderation affordances (session cookie required)
	admin := api.Group("/admin", middleware.AdminRequired(cfg))
	admin.Put("/reports/:id/status", adminHandler.UpdateReportStatus)
	admin.Get("/stats", adminHandler.Stats)
}

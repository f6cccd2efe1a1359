package middleware

import (
	jwtware "github.com/gofiber/contrib/jwt"
	"github.com/gofiber/fiber/v2"
	"github.com/maitri-app/maitri-backend/internal/config"
	"github.com/maitri-app/maitri-backend/internal/dto"
)

// AdminRequired gates moderation routes on the signed admin session cookie.
// The cookie token is the entire session: a valid signature and unexpired
// exp claim is proof, with no server-side lookup.
func AdminRequired(cfg *config.Config) fiber.Handler {
	return jwtware.New(jwtware.Config{
		SigningKey:  jwtware.SigningKey{Key: []byte(cfg.SessionSecret)},
		TokenLookup: "cookie:admin_session",
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{
				Error:   true,
				Message: "Unauthorized: admin session required",
			})
		},
	})
}

package middlewares

import (
	"github.com/gofiber/fiber/v2"

	"staffhub_backend/internals/middlewares/logger"
)

// SetupMiddlewares registers the app-wide middleware chain in order:
// recovery first, then CORS, request logging and the global rate limit.
// Route-specific limiters and the auth guard are attached per group.
func SetupMiddlewares(app *fiber.App) {
	app.Use(RecoveryMiddleware())
	app.Use(CorsMiddleware())
	app.Use(logger.LoggerMiddleware())
	app.Use(GlobalRateLimiter())
}

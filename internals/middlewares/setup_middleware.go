package middlewares

import (
	"github.com/gofiber/fiber/v2"

	appLogger "mentorku_backend/internals/middlewares/logger"
)

// SetupMiddlewares memasang middleware dasar dengan urutan yang benar:
// recovery paling luar, lalu logger, lalu CORS.
func SetupMiddlewares(app *fiber.App) {
	app.Use(RecoveryMiddleware())
	app.Use(appLogger.LoggerMiddleware())
	app.Use(CorsMiddleware())
}

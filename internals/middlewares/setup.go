package middlewares

import (
	"github.com/gofiber/fiber/v2"

	"risesocial_backend/internals/middlewares/logger"
)

// SetupMiddlewares memasang middleware dasar dengan urutan yang benar:
// recovery paling luar, lalu CORS, logging. Rate limiter dipasang
// per-group di route supaya webhook punya budget sendiri.
func SetupMiddlewares(app *fiber.App) {
	app.Use(RecoveryMiddleware())
	app.Use(CorsMiddleware())
	app.Use(logger.LoggerMiddleware())
}

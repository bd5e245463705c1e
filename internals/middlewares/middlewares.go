package middlewares

import (
	"github.com/gofiber/fiber/v2"
)

// SetupMiddlewares aplica os middlewares globais na ordem correta
func SetupMiddlewares(app *fiber.App) {
	app.Use(RecoveryMiddleware())
	app.Use(CorsMiddleware())
}

package route

import (
	"github.com/gofiber/fiber/v2"

	"clubfit_backend/internals/features/classes/controller"
	"clubfit_backend/internals/features/classes/service"
)

// WeeklyPublicRoutes registra a visão semanal aberta (sem autenticação).
func WeeklyPublicRoutes(api fiber.Router, svc *service.WeeklyService) {
	ctrl := controller.NewWeeklyController(svc)
	api.Get("/weekly-classes", ctrl.GetWeeklyClasses)
}

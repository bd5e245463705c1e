package route

import (
	"github.com/gofiber/fiber/v2"

	"clubfit_backend/internals/features/schedules/controller"
	"clubfit_backend/internals/features/schedules/service"
)

// ScheduleUserRoutes expõe as visões de leitura para qualquer usuário
// autenticado (grade ativa e histórico).
func ScheduleUserRoutes(api fiber.Router, svc *service.LifecycleService) {
	ctrl := controller.NewClassScheduleController(svc)

	schedules := api.Group("/class-schedules")
	schedules.Get("/active", ctrl.GetActive)
	schedules.Get("/history", ctrl.GetHistory)
}

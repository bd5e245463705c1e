package route

import (
	"github.com/gofiber/fiber/v2"

	"clubfit_backend/internals/constants"
	"clubfit_backend/internals/features/schedules/controller"
	"clubfit_backend/internals/features/schedules/service"
	"clubfit_backend/internals/middlewares/auth"
)

// ScheduleAdminRoutes registra o CRUD completo do ciclo de vida das
// grades (admin e gerente).
func ScheduleAdminRoutes(api fiber.Router, svc *service.LifecycleService) {
	ctrl := controller.NewClassScheduleController(svc)

	schedules := api.Group("/class-schedules",
		auth.RequireRoles("grades de aula", constants.ManagerAndAbove...),
	)

	// Rotas fixas antes das parametrizadas, senão "/active" casa com "/:id".
	schedules.Get("/active", ctrl.GetActive)
	schedules.Get("/history", ctrl.GetHistory)

	schedules.Post("/", ctrl.CreateSchedule)
	schedules.Get("/", ctrl.GetAll)
	schedules.Get("/:id", ctrl.GetByID)
	schedules.Put("/:id", ctrl.UpdateSchedule)
	schedules.Post("/:id/duplicate", ctrl.DuplicateSchedule)
	schedules.Patch("/:id/status", ctrl.ChangeStatus)
	schedules.Delete("/:id", ctrl.DeleteSchedule)
}

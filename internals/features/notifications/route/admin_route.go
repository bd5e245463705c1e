package route

import (
	"github.com/gofiber/fiber/v2"

	"clubfit_backend/internals/constants"
	"clubfit_backend/internals/features/notifications/controller"
	"clubfit_backend/internals/features/notifications/service"
	"clubfit_backend/internals/middlewares/auth"
)

// NotificationAdminRoutes registra as rotas de histórico e comparativo
// de notificações (admin e gerente).
func NotificationAdminRoutes(api fiber.Router, dispatcher *service.NotificationDispatcher) {
	ctrl := controller.NewNotificationController(dispatcher)

	notifications := api.Group("/schedule-notifications",
		auth.RequireRoles("notificações de grade", constants.ManagerAndAbove...),
	)
	notifications.Get("/", ctrl.GetAll)
	notifications.Get("/changes", ctrl.GetScheduleChanges)
}

package controller

import (
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"clubfit_backend/internals/features/notifications/dto"
	"clubfit_backend/internals/features/notifications/service"
	helper "clubfit_backend/internals/helpers"
)

type NotificationController struct {
	Dispatcher *service.NotificationDispatcher
}

func NewNotificationController(dispatcher *service.NotificationDispatcher) *NotificationController {
	return &NotificationController{Dispatcher: dispatcher}
}

// 📩 GET /api/a/schedule-notifications
func (ctrl *NotificationController) GetAll(c *fiber.Ctx) error {
	notifications, err := ctrl.Dispatcher.ListNotifications(c.Context())
	if err != nil {
		return helper.JsonFromError(c, err)
	}
	return helper.JsonList(c, "Notificações encontradas", dto.ToNotificationResponseList(notifications))
}

// 🔍 GET /api/a/schedule-notifications/changes?new_id=...&previous_id=...&email_to=...
//
// Compara duas grades sob demanda; com email_to, também dispara o e-mail
// e grava o registro. previous_id é opcional; sem ele o despachante
// reconstrói a baseline sozinho.
func (ctrl *NotificationController) GetScheduleChanges(c *fiber.Ctx) error {
	newID, err := uuid.Parse(c.Query("new_id"))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Parâmetro new_id inválido ou ausente")
	}

	var previousID *uuid.UUID
	if raw := c.Query("previous_id"); raw != "" {
		parsed, err := uuid.Parse(raw)
		if err != nil {
			return helper.JsonError(c, fiber.StatusBadRequest, "Parâmetro previous_id inválido")
		}
		previousID = &parsed
	}

	var emailTo *string
	if raw := c.Query("email_to"); raw != "" {
		emailTo = &raw
	}

	resp, err := ctrl.Dispatcher.GetScheduleChanges(c.Context(), previousID, newID, emailTo)
	if err != nil {
		return helper.JsonFromError(c, err)
	}
	return helper.JsonOK(c, "Comparativo de grades gerado", resp)
}

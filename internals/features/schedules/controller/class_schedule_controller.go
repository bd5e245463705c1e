package controller

import (
	"errors"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"clubfit_backend/internals/features/schedules/dto"
	"clubfit_backend/internals/features/schedules/model"
	"clubfit_backend/internals/features/schedules/service"
	helper "clubfit_backend/internals/helpers"
)

type ClassScheduleController struct {
	Service *service.LifecycleService
}

func NewClassScheduleController(svc *service.LifecycleService) *ClassScheduleController {
	return &ClassScheduleController{Service: svc}
}

// ➕ POST /api/a/class-schedules
func (ctrl *ClassScheduleController) CreateSchedule(c *fiber.Ctx) error {
	actor, err := helper.ActorFromContext(c)
	if err != nil {
		return helper.JsonFromError(c, err)
	}

	var req dto.ScheduleRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Corpo da requisição inválido")
	}

	schedule, err := ctrl.Service.Create(c.Context(), &req, actor)
	if err != nil {
		return jsonServiceError(c, err)
	}
	return helper.JsonCreated(c, "Grade de aulas criada", dto.ToScheduleResponse(schedule))
}

// 📄 GET /api/a/class-schedules?status=
func (ctrl *ClassScheduleController) GetAll(c *fiber.Ctx) error {
	var statusFilter *model.ScheduleStatus
	if raw := c.Query("status"); raw != "" {
		parsed, err := model.ParseScheduleStatus(raw)
		if err != nil {
			return helper.JsonError(c, fiber.StatusBadRequest, "Status inválido: "+raw)
		}
		statusFilter = &parsed
	}

	schedules, err := ctrl.Service.List(c.Context(), statusFilter)
	if err != nil {
		return helper.JsonFromError(c, err)
	}
	return helper.JsonList(c, "Grades encontradas", dto.ToScheduleResponseList(schedules))
}

// 🔍 GET /api/a/class-schedules/:id
func (ctrl *ClassScheduleController) GetByID(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return helper.JsonFromError(c, err)
	}

	schedule, err := ctrl.Service.Get(c.Context(), id)
	if err != nil {
		return helper.JsonFromError(c, err)
	}
	return helper.JsonOK(c, "Grade encontrada", dto.ToScheduleResponse(schedule))
}

// ✏️ PUT /api/a/class-schedules/:id
func (ctrl *ClassScheduleController) UpdateSchedule(c *fiber.Ctx) error {
	actor, err := helper.ActorFromContext(c)
	if err != nil {
		return helper.JsonFromError(c, err)
	}

	id, err := parseID(c)
	if err != nil {
		return helper.JsonFromError(c, err)
	}

	var req dto.ScheduleRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Corpo da requisição inválido")
	}

	schedule, err := ctrl.Service.Update(c.Context(), id, &req, actor)
	if err != nil {
		return jsonServiceError(c, err)
	}
	return helper.JsonUpdated(c, "Grade atualizada", dto.ToScheduleResponse(schedule))
}

// 🧬 POST /api/a/class-schedules/:id/duplicate
func (ctrl *ClassScheduleController) DuplicateSchedule(c *fiber.Ctx) error {
	actor, err := helper.ActorFromContext(c)
	if err != nil {
		return helper.JsonFromError(c, err)
	}

	id, err := parseID(c)
	if err != nil {
		return helper.JsonFromError(c, err)
	}

	// Corpo é opcional: sem new_title o serviço gera "<título> (Nova Versão)".
	var req dto.DuplicateRequest
	if len(c.Body()) > 0 {
		if err := c.BodyParser(&req); err != nil {
			return helper.JsonError(c, fiber.StatusBadRequest, "Corpo da requisição inválido")
		}
	}

	schedule, err := ctrl.Service.Duplicate(c.Context(), id, req.NewTitle, actor)
	if err != nil {
		return helper.JsonFromError(c, err)
	}
	return helper.JsonCreated(c, "Grade duplicada", dto.ToScheduleResponse(schedule))
}

// 🔁 PATCH /api/a/class-schedules/:id/status
func (ctrl *ClassScheduleController) ChangeStatus(c *fiber.Ctx) error {
	actor, err := helper.ActorFromContext(c)
	if err != nil {
		return helper.JsonFromError(c, err)
	}

	id, err := parseID(c)
	if err != nil {
		return helper.JsonFromError(c, err)
	}

	var req dto.ChangeStatusRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Corpo da requisição inválido")
	}
	target, err := model.ParseScheduleStatus(req.Status)
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Status inválido: "+req.Status)
	}

	schedule, err := ctrl.Service.ChangeStatus(c.Context(), id, target, req.Note, req.ActivationDate, actor)
	if err != nil {
		return helper.JsonFromError(c, err)
	}
	return helper.JsonUpdated(c, "Status da grade atualizado", dto.ToScheduleResponse(schedule))
}

// 🗑️ DELETE /api/a/class-schedules/:id
func (ctrl *ClassScheduleController) DeleteSchedule(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return helper.JsonFromError(c, err)
	}

	if err := ctrl.Service.Delete(c.Context(), id); err != nil {
		return helper.JsonFromError(c, err)
	}
	return helper.JsonDeleted(c, "Grade excluída", fiber.Map{"id": id})
}

// ⭐ GET /api/a/class-schedules/active (também exposto em /api/u)
func (ctrl *ClassScheduleController) GetActive(c *fiber.Ctx) error {
	schedule, err := ctrl.Service.GetActive(c.Context())
	if err != nil {
		return helper.JsonFromError(c, err)
	}
	return helper.JsonOK(c, "Grade ativa", dto.ToScheduleResponse(schedule))
}

// 🕘 GET /api/a/class-schedules/history
func (ctrl *ClassScheduleController) GetHistory(c *fiber.Ctx) error {
	schedules, err := ctrl.Service.History(c.Context())
	if err != nil {
		return helper.JsonFromError(c, err)
	}
	return helper.JsonList(c, "Histórico de grades", dto.ToScheduleResponseList(schedules))
}

// jsonServiceError separa erro de validação (422 com campos) dos demais.
func jsonServiceError(c *fiber.Ctx, err error) error {
	var ve validator.ValidationErrors
	if errors.As(err, &ve) {
		return helper.JsonValidationError(c, err)
	}
	return helper.JsonFromError(c, err)
}

func parseID(c *fiber.Ctx) (uuid.UUID, error) {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return uuid.Nil, fiber.NewError(fiber.StatusBadRequest, "ID inválido: "+c.Params("id"))
	}
	return id, nil
}

package controller

import (
	"time"

	"github.com/gofiber/fiber/v2"

	"clubfit_backend/internals/features/classes/service"
	helper "clubfit_backend/internals/helpers"
)

type WeeklyController struct {
	Service *service.WeeklyService
}

func NewWeeklyController(svc *service.WeeklyService) *WeeklyController {
	return &WeeklyController{Service: svc}
}

// 🗓️ GET /api/public/weekly-classes?date=YYYY-MM-DD
//
// Sem date, usa a semana corrente.
func (ctrl *WeeklyController) GetWeeklyClasses(c *fiber.Ctx) error {
	ref := time.Now()
	if raw := c.Query("date"); raw != "" {
		parsed, err := helper.ParseFlexibleDate(raw)
		if err != nil {
			return helper.JsonError(c, fiber.StatusBadRequest, "Parâmetro date inválido (use YYYY-MM-DD)")
		}
		ref = parsed
	}

	resp, err := ctrl.Service.WeeklyClasses(c.Context(), ref)
	if err != nil {
		return helper.JsonFromError(c, err)
	}
	return helper.JsonOK(c, "Aulas da semana", resp)
}

package service

import (
	"github.com/gofiber/fiber/v2"

	"clubfit_backend/internals/features/schedules/model"
)

/* ===============================
   Plano de transição de status
=================================*/

type TransitionKind int

const (
	// Atualização simples de status + log.
	TransitionPlain TransitionKind = iota
	// Promove para ATIVO; rebaixa o ATIVO vigente para SUBSTITUIDO.
	TransitionActivate
	// Promove para APROVADO; rebaixa outro APROVADO para PENDENTE.
	TransitionApprove
)

// TransitionPlan concentra as regras da máquina de estados: o que muda
// na grade alvo, e se/como alguma outra grade precisa ser rebaixada.
// As invariantes (≤1 ATIVO, ≤1 APROVADO) derivam dos rebaixamentos
// declarados aqui, não de if/else espalhado pelos call sites.
type TransitionPlan struct {
	From model.ScheduleStatus
	To   model.ScheduleStatus
	Kind TransitionKind

	// Status aplicado à grade concorrente rebaixada, quando houver.
	DemoteTo model.ScheduleStatus
}

// PlanTransition valida a mudança pedida e devolve o plano.
func PlanTransition(current, target model.ScheduleStatus) (*TransitionPlan, error) {
	if !target.Valid() {
		return nil, fiber.NewError(fiber.StatusBadRequest, "Status inválido: "+string(target))
	}
	if target == current {
		return nil, fiber.NewError(fiber.StatusBadRequest, "A grade já está com este status")
	}

	plan := &TransitionPlan{From: current, To: target, Kind: TransitionPlain}
	switch target {
	case model.StatusAtivo:
		plan.Kind = TransitionActivate
		plan.DemoteTo = model.StatusSubstituido
	case model.StatusAprovado:
		plan.Kind = TransitionApprove
		plan.DemoteTo = model.StatusPendente
	}
	return plan, nil
}

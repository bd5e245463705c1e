package model

import "fmt"

/* =========================
   Enums
========================= */

// ScheduleStatus é o ciclo de vida da grade de aulas. As transições são
// validadas num único lugar (service.PlanTransition), não espalhadas
// por if/else de string.
type ScheduleStatus string

const (
	StatusRascunho    ScheduleStatus = "RASCUNHO"
	StatusPendente    ScheduleStatus = "PENDENTE"
	StatusAprovado    ScheduleStatus = "APROVADO"
	StatusAtivo       ScheduleStatus = "ATIVO"
	StatusSubstituido ScheduleStatus = "SUBSTITUIDO"
	StatusRejeitado   ScheduleStatus = "REJEITADO"
)

func (s ScheduleStatus) Valid() bool {
	switch s {
	case StatusRascunho, StatusPendente, StatusAprovado, StatusAtivo, StatusSubstituido, StatusRejeitado:
		return true
	}
	return false
}

func ParseScheduleStatus(raw string) (ScheduleStatus, error) {
	s := ScheduleStatus(raw)
	if !s.Valid() {
		return "", fmt.Errorf("status inválido: %q", raw)
	}
	return s, nil
}

// Deletável apenas antes de entrar no fluxo de aprovação (ou após rejeição).
func (s ScheduleStatus) Deletable() bool {
	return s == StatusRascunho || s == StatusRejeitado
}

// ClassCategory classifica a aula: solo (TERRA), piscina (AGUA) ou
// EXPRESS: aulas curtas sem custo, geridas só pela grade interna.
type ClassCategory string

const (
	CategoryTerra   ClassCategory = "TERRA"
	CategoryAgua    ClassCategory = "AGUA"
	CategoryExpress ClassCategory = "EXPRESS"
)

func (c ClassCategory) Valid() bool {
	switch c {
	case CategoryTerra, CategoryAgua, CategoryExpress:
		return true
	}
	return false
}

// ChangeType marca o tipo de mudança detectada entre duas grades.
type ChangeType string

const (
	ChangeAdded    ChangeType = "ADDED"
	ChangeRemoved  ChangeType = "REMOVED"
	ChangeModified ChangeType = "MODIFIED"
)

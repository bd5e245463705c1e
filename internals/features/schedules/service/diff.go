package service

import (
	"fmt"
	"sort"

	"clubfit_backend/internals/features/schedules/model"
)

/* ===============================
   Diff engine (função pura)
=================================*/

// ClassChange descreve uma mudança entre duas versões da grade.
// Slot é a aula do lado atual (para REMOVED, a aula que saiu).
// Prev só é preenchido em MODIFIED.
type ClassChange struct {
	Type          model.ChangeType      `json:"type"`
	Slot          model.ClassSlotModel  `json:"slot"`
	Prev          *model.ClassSlotModel `json:"prev,omitempty"`
	ChangedFields []string              `json:"changed_fields,omitempty"`
}

// Chave de identidade de uma aula entre versões: nome + dia + horário.
// Match exato, sem fuzzy.
func slotKey(s *model.ClassSlotModel) string {
	return fmt.Sprintf("%s|%d|%s", s.ClassSlotName, s.ClassSlotWeekday, s.ClassSlotStartTime)
}

// CompareClasses compara duas listas de aulas e devolve as mudanças.
// Lista vazia = nada mudou (o chamador usa isso para suprimir o e-mail).
// A saída é determinística: ordenada por dia, horário e nome.
func CompareClasses(previous, current []model.ClassSlotModel) []ClassChange {
	prevByKey := make(map[string]*model.ClassSlotModel, len(previous))
	for i := range previous {
		prevByKey[slotKey(&previous[i])] = &previous[i]
	}

	changes := make([]ClassChange, 0)
	matched := make(map[string]struct{}, len(current))

	for i := range current {
		curr := &current[i]
		key := slotKey(curr)
		prev, ok := prevByKey[key]
		if !ok {
			changes = append(changes, ClassChange{Type: model.ChangeAdded, Slot: *curr})
			continue
		}
		matched[key] = struct{}{}

		fields := changedFields(prev, curr)
		if len(fields) > 0 {
			prevCopy := *prev
			changes = append(changes, ClassChange{
				Type:          model.ChangeModified,
				Slot:          *curr,
				Prev:          &prevCopy,
				ChangedFields: fields,
			})
		}
	}

	for i := range previous {
		prev := &previous[i]
		if _, ok := matched[slotKey(prev)]; ok {
			continue
		}
		changes = append(changes, ClassChange{Type: model.ChangeRemoved, Slot: *prev})
	}

	sort.SliceStable(changes, func(i, j int) bool {
		a, b := &changes[i].Slot, &changes[j].Slot
		if a.ClassSlotWeekday != b.ClassSlotWeekday {
			return a.ClassSlotWeekday < b.ClassSlotWeekday
		}
		if a.ClassSlotStartTime != b.ClassSlotStartTime {
			return a.ClassSlotStartTime < b.ClassSlotStartTime
		}
		return a.ClassSlotName < b.ClassSlotName
	})

	return changes
}

func changedFields(prev, curr *model.ClassSlotModel) []string {
	var fields []string
	if prev.ClassSlotDurationMin != curr.ClassSlotDurationMin {
		fields = append(fields, "duration_min")
	}
	if prev.ClassSlotRoom != curr.ClassSlotRoom {
		fields = append(fields, "room")
	}
	if prev.ClassSlotInstructor != curr.ClassSlotInstructor {
		fields = append(fields, "instructor")
	}
	if prev.ClassSlotIntensity != curr.ClassSlotIntensity {
		fields = append(fields, "intensity")
	}
	if prev.ClassSlotCategory != curr.ClassSlotCategory {
		fields = append(fields, "category")
	}
	return fields
}

// NonExpress filtra as aulas EXPRESS: o diff e os e-mails cobrem só
// as aulas TERRA/AGUA publicadas no site.
func NonExpress(slots []model.ClassSlotModel) []model.ClassSlotModel {
	out := make([]model.ClassSlotModel, 0, len(slots))
	for _, s := range slots {
		if !s.IsExpress() {
			out = append(out, s)
		}
	}
	return out
}

package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"clubfit_backend/internals/features/schedules/model"
)

func slot(name string, weekday int, start string, mutate ...func(*model.ClassSlotModel)) model.ClassSlotModel {
	s := model.ClassSlotModel{
		ClassSlotName:        name,
		ClassSlotCategory:    model.CategoryTerra,
		ClassSlotWeekday:     weekday,
		ClassSlotStartTime:   start,
		ClassSlotDurationMin: 60,
		ClassSlotRoom:        "Sala 1",
		ClassSlotInstructor:  "Carla",
		ClassSlotIntensity:   "Moderada",
	}
	for _, fn := range mutate {
		fn(&s)
	}
	return s
}

func TestCompareClassesIdenticalListsProduceNoChanges(t *testing.T) {
	a := []model.ClassSlotModel{
		slot("Pilates", 1, "08:00"),
		slot("Yoga", 3, "18:30"),
	}
	b := []model.ClassSlotModel{
		slot("Yoga", 3, "18:30"),
		slot("Pilates", 1, "08:00"),
	}

	assert.Empty(t, CompareClasses(a, b))
	assert.Empty(t, CompareClasses(a, a))
}

func TestCompareClassesEmptyPreviousMarksAllAdded(t *testing.T) {
	current := []model.ClassSlotModel{
		slot("Pilates", 1, "08:00"),
		slot("Yoga", 3, "18:30"),
	}

	changes := CompareClasses(nil, current)
	require.Len(t, changes, 2)
	for _, ch := range changes {
		assert.Equal(t, model.ChangeAdded, ch.Type)
		assert.Nil(t, ch.Prev)
	}
}

func TestCompareClassesEmptyCurrentMarksAllRemoved(t *testing.T) {
	previous := []model.ClassSlotModel{
		slot("Pilates", 1, "08:00"),
		slot("Yoga", 3, "18:30"),
	}

	changes := CompareClasses(previous, nil)
	require.Len(t, changes, 2)
	for _, ch := range changes {
		assert.Equal(t, model.ChangeRemoved, ch.Type)
	}
}

func TestCompareClassesSameKeyWithFieldChangeIsModified(t *testing.T) {
	previous := []model.ClassSlotModel{slot("Pilates", 1, "08:00")}
	current := []model.ClassSlotModel{
		slot("Pilates", 1, "08:00", func(s *model.ClassSlotModel) {
			s.ClassSlotRoom = "Sala 2"
			s.ClassSlotDurationMin = 45
		}),
	}

	changes := CompareClasses(previous, current)
	require.Len(t, changes, 1, "mesma chave não pode virar REMOVED+ADDED")

	ch := changes[0]
	assert.Equal(t, model.ChangeModified, ch.Type)
	require.NotNil(t, ch.Prev)
	assert.Equal(t, "Sala 1", ch.Prev.ClassSlotRoom)
	assert.Equal(t, "Sala 2", ch.Slot.ClassSlotRoom)
	assert.ElementsMatch(t, []string{"duration_min", "room"}, ch.ChangedFields)
}

func TestCompareClassesKeyChangeIsRemovePlusAdd(t *testing.T) {
	// Mudou o horário → identidade diferente, vira par REMOVED/ADDED.
	previous := []model.ClassSlotModel{slot("Pilates", 1, "08:00")}
	current := []model.ClassSlotModel{slot("Pilates", 1, "09:00")}

	changes := CompareClasses(previous, current)
	require.Len(t, changes, 2)
	assert.Equal(t, model.ChangeRemoved, changes[0].Type)
	assert.Equal(t, "08:00", changes[0].Slot.ClassSlotStartTime)
	assert.Equal(t, model.ChangeAdded, changes[1].Type)
	assert.Equal(t, "09:00", changes[1].Slot.ClassSlotStartTime)
}

func TestCompareClassesOutputIsDeterministic(t *testing.T) {
	previous := []model.ClassSlotModel{
		slot("Zumba", 5, "19:00"),
		slot("Pilates", 1, "08:00"),
	}
	current := []model.ClassSlotModel{
		slot("Yoga", 3, "18:30"),
		slot("Alongamento", 3, "18:30"),
		slot("Pilates", 1, "08:00", func(s *model.ClassSlotModel) { s.ClassSlotInstructor = "Bruno" }),
	}

	first := CompareClasses(previous, current)
	for i := 0; i < 10; i++ {
		assert.Equal(t, first, CompareClasses(previous, current))
	}

	// Ordenação: dia, horário, nome.
	require.Len(t, first, 4)
	assert.Equal(t, "Pilates", first[0].Slot.ClassSlotName)
	assert.Equal(t, "Alongamento", first[1].Slot.ClassSlotName)
	assert.Equal(t, "Yoga", first[2].Slot.ClassSlotName)
	assert.Equal(t, "Zumba", first[3].Slot.ClassSlotName)
}

func TestNonExpressFiltersExpressSlots(t *testing.T) {
	slots := []model.ClassSlotModel{
		slot("Pilates", 1, "08:00"),
		slot("Express Abdômen", 1, "12:15", func(s *model.ClassSlotModel) { s.ClassSlotCategory = model.CategoryExpress }),
		slot("Hidroginástica", 2, "09:00", func(s *model.ClassSlotModel) { s.ClassSlotCategory = model.CategoryAgua }),
	}

	filtered := NonExpress(slots)
	require.Len(t, filtered, 2)
	assert.Equal(t, "Pilates", filtered[0].ClassSlotName)
	assert.Equal(t, "Hidroginástica", filtered[1].ClassSlotName)
}

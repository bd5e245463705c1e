package service

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"clubfit_backend/internals/features/classes/dto"
	scheduleModel "clubfit_backend/internals/features/schedules/model"
	"clubfit_backend/internals/helpers/ovg"
)

/* ===============================
   Infra de teste
=================================*/

type fakeOVGClient struct {
	classes []ovg.RawClass
	err     error
	calls   int
}

func (f *fakeOVGClient) FetchWeek(ctx context.Context, monday time.Time) ([]ovg.RawClass, error) {
	f.calls++
	return f.classes, f.err
}

func newWeeklyService(t *testing.T, client ovg.Client) (*WeeklyService, *gorm.DB) {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", uuid.NewString())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{Logger: logger.Default.LogMode(logger.Silent)})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(
		&scheduleModel.ClassScheduleModel{},
		&scheduleModel.ClassSlotModel{},
	))
	return NewWeeklyService(db, client, nil, 30*time.Minute), db
}

// Semana de referência fixa: segunda 2026-08-24.
var testMonday = time.Date(2026, 8, 24, 0, 0, 0, 0, time.UTC)

func rawClass(title string, dayOffset int, start, end, room string) ovg.RawClass {
	day := testMonday.AddDate(0, 0, dayOffset)
	return ovg.RawClass{
		Title:         title,
		Start:         fmt.Sprintf("%sT%s:00Z", day.Format("2006-01-02"), start),
		End:           fmt.Sprintf("%sT%s:00Z", day.Format("2006-01-02"), end),
		Room:          room,
		Instructor:    "Carla",
		IntensityText: "Moderada",
	}
}

func seedActiveScheduleWithExpress(t *testing.T, db *gorm.DB, slots ...scheduleModel.ClassSlotModel) {
	t.Helper()

	schedule := &scheduleModel.ClassScheduleModel{
		ClassScheduleTitle:        "Grade Ativa",
		ClassScheduleStatus:       scheduleModel.StatusAtivo,
		ClassScheduleCreatedBy:    "Paula Gestora",
		ClassScheduleCreatorEmail: "paula@clubfit.com.br",
	}
	require.NoError(t, db.Create(schedule).Error)
	for i := range slots {
		slots[i].ClassSlotScheduleID = schedule.ClassScheduleID
	}
	require.NoError(t, db.Create(&slots).Error)
}

func expressSlot(name string, weekday int, start string, duration int) scheduleModel.ClassSlotModel {
	return scheduleModel.ClassSlotModel{
		ClassSlotName:        name,
		ClassSlotCategory:    scheduleModel.CategoryExpress,
		ClassSlotWeekday:     weekday,
		ClassSlotStartTime:   start,
		ClassSlotDurationMin: duration,
		ClassSlotRoom:        "Sala 2",
		ClassSlotInstructor:  "Bruno",
		ClassSlotIntensity:   "Alta",
	}
}

/* ===============================
   Agregação semanal
=================================*/

func TestWeeklyClassesBucketsMondayFirst(t *testing.T) {
	client := &fakeOVGClient{classes: []ovg.RawClass{
		rawClass("Spinning", 0, "07:00", "07:45", "Sala 1"),       // segunda
		rawClass("Hidroginástica", 2, "09:00", "09:50", "Piscina"), // quarta
		rawClass("Natação Livre", 6, "10:00", "11:00", "Piscina"),  // domingo
	}}
	svc, _ := newWeeklyService(t, client)

	resp, err := svc.WeeklyClasses(context.Background(), testMonday.AddDate(0, 0, 3))
	require.NoError(t, err)

	assert.Equal(t, "2026-08-24", resp.WeekStart)
	require.Len(t, resp.Days, 7)

	// Índice 0 = segunda, 6 = domingo; Weekday carrega a convenção do calendário.
	assert.Equal(t, 1, resp.Days[0].Weekday)
	assert.Equal(t, 0, resp.Days[6].Weekday)

	require.Len(t, resp.Days[0].Classes, 1)
	spinning := resp.Days[0].Classes[0]
	assert.Equal(t, "Spinning", spinning.Name)
	assert.Equal(t, "07:00", spinning.StartTime)
	assert.Equal(t, "07:45", spinning.EndTime)
	assert.Equal(t, 45, spinning.DurationMin)
	assert.Equal(t, scheduleModel.CategoryTerra, spinning.Category)
	assert.Equal(t, dto.SourceOVG, spinning.Source)

	require.Len(t, resp.Days[2].Classes, 1)
	assert.Equal(t, scheduleModel.CategoryAgua, resp.Days[2].Classes[0].Category)

	require.Len(t, resp.Days[6].Classes, 1)
	assert.Equal(t, "Natação Livre", resp.Days[6].Classes[0].Name)
}

func TestWeeklyClassesSkipsExpressOnEmptyDays(t *testing.T) {
	// Terça sem aula externa (feriado); segunda com.
	client := &fakeOVGClient{classes: []ovg.RawClass{
		rawClass("Spinning", 0, "07:00", "07:45", "Sala 1"),
	}}
	svc, db := newWeeklyService(t, client)

	seedActiveScheduleWithExpress(t, db,
		expressSlot("Express Segunda", 1, "12:15", 15), // weekday 1 = segunda
		expressSlot("Express Terça", 2, "12:15", 15),   // weekday 2 = terça
	)

	resp, err := svc.WeeklyClasses(context.Background(), testMonday)
	require.NoError(t, err)

	// Segunda: aula externa + EXPRESS injetada, ordenadas por horário.
	require.Len(t, resp.Days[0].Classes, 2)
	assert.Equal(t, "Spinning", resp.Days[0].Classes[0].Name)
	injected := resp.Days[0].Classes[1]
	assert.Equal(t, "Express Segunda", injected.Name)
	assert.Equal(t, "12:30", injected.EndTime)
	assert.Equal(t, dto.SourceClubFit, injected.Source)
	assert.Equal(t, 3, injected.Intensity)

	// Terça vazia continua vazia: sem EXPRESS em dia fechado.
	assert.Empty(t, resp.Days[1].Classes)
}

func TestWeeklyClassesUsesCacheForSameWeek(t *testing.T) {
	client := &fakeOVGClient{classes: []ovg.RawClass{
		rawClass("Spinning", 0, "07:00", "07:45", "Sala 1"),
	}}
	svc, _ := newWeeklyService(t, client)

	_, err := svc.WeeklyClasses(context.Background(), testMonday)
	require.NoError(t, err)

	// Qualquer dia da mesma semana cai na mesma chave.
	_, err = svc.WeeklyClasses(context.Background(), testMonday.AddDate(0, 0, 5))
	require.NoError(t, err)

	assert.Equal(t, 1, client.calls)
}

func TestWeeklyClassesSurfacesOVGFailure(t *testing.T) {
	client := &fakeOVGClient{err: fmt.Errorf("timeout")}
	svc, _ := newWeeklyService(t, client)

	_, err := svc.WeeklyClasses(context.Background(), testMonday)
	require.Error(t, err)
}

func TestWeeklyClassesDiscardsMalformedEntries(t *testing.T) {
	client := &fakeOVGClient{classes: []ovg.RawClass{
		{Title: "Quebrada", Start: "ontem", End: "hoje"},
		rawClass("Spinning", 0, "07:00", "07:45", "Sala 1"),
	}}
	svc, _ := newWeeklyService(t, client)

	resp, err := svc.WeeklyClasses(context.Background(), testMonday)
	require.NoError(t, err)

	var total int
	for _, day := range resp.Days {
		total += len(day.Classes)
	}
	assert.Equal(t, 1, total)
}

/* ===============================
   Classificação
=================================*/

func TestClassifyCategoryByKeywords(t *testing.T) {
	assert.Equal(t, scheduleModel.CategoryAgua, classifyCategory("Hidroginástica", "Piscina 1"))
	assert.Equal(t, scheduleModel.CategoryAgua, classifyCategory("Aqua Jump", "Área Externa"))
	assert.Equal(t, scheduleModel.CategoryTerra, classifyCategory("Pilates", "Sala 3"))
	assert.Equal(t, scheduleModel.CategoryTerra, classifyCategory("Spinning", ""))
}

func TestIntensityLevelMapping(t *testing.T) {
	cases := []struct {
		text string
		want int
	}{
		{"Leve", 1},
		{"baixa", 1},
		{"Moderada", 2},
		{"média", 2},
		{"Alta", 3},
		{"muito alta", 4},
		{"Máxima", 4},
		{"3", 3},
		{"", 2},
		{"sei lá", 2},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, intensityLevel(tc.text), "texto %q", tc.text)
	}
}

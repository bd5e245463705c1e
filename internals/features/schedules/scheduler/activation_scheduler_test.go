package scheduler

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

	"clubfit_backend/internals/features/schedules/dto"
	"clubfit_backend/internals/features/schedules/model"
	"clubfit_backend/internals/features/schedules/service"
	helper "clubfit_backend/internals/helpers"
)

type noopDispatcher struct{}

func (noopDispatcher) NotifyStatusChange(ctx context.Context, schedule *model.ClassScheduleModel, newStatus model.ScheduleStatus, actor helper.Actor, note *string) error {
	return nil
}

func (noopDispatcher) SendScheduleChanges(ctx context.Context, previousID, newID uuid.UUID, actor helper.Actor) error {
	return nil
}

func (noopDispatcher) RegisterInitialSchedule(ctx context.Context, scheduleID uuid.UUID) error {
	return nil
}

func newSweepService(t *testing.T) (*service.LifecycleService, *gorm.DB) {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", uuid.NewString())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{Logger: logger.Default.LogMode(logger.Silent)})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(
		&model.ClassScheduleModel{},
		&model.ClassSlotModel{},
		&model.ScheduleStatusLogModel{},
	))
	return service.NewLifecycleService(db, noopDispatcher{}), db
}

func approvedSchedule(t *testing.T, svc *service.LifecycleService, title, activationDate string) uuid.UUID {
	t.Helper()
	ctx := context.Background()
	actor := helper.SystemActor()

	schedule, err := svc.Create(ctx, &dto.ScheduleRequest{
		Title: title,
		Slots: []dto.ClassSlotInput{
			{Name: "Pilates", Category: "TERRA", Weekday: 1, StartTime: "08:00", DurationMin: 60,
				Room: "Sala 1", Instructor: "Carla", Intensity: "Moderada"},
		},
	}, actor)
	require.NoError(t, err)

	_, err = svc.ChangeStatus(ctx, schedule.ClassScheduleID, model.StatusAprovado, nil, &activationDate, actor)
	require.NoError(t, err)
	return schedule.ClassScheduleID
}

func TestRunActivationSweepPromotesDueSchedule(t *testing.T) {
	svc, db := newSweepService(t)

	yesterday := time.Now().AddDate(0, 0, -1).Format("2006-01-02")
	id := approvedSchedule(t, svc, "Grade vencida", yesterday)

	RunActivationSweep(context.Background(), svc, time.Now())

	var schedule model.ClassScheduleModel
	require.NoError(t, db.Where("class_schedule_id = ?", id).First(&schedule).Error)
	assert.Equal(t, model.StatusAtivo, schedule.ClassScheduleStatus)

	// A varredura passa pelo mesmo caminho da ativação manual: log gravado
	// com o ator de sistema.
	var logs []model.ScheduleStatusLogModel
	require.NoError(t, db.
		Where("schedule_status_log_schedule_id = ? AND schedule_status_log_new_status = ?", id, model.StatusAtivo).
		Find(&logs).Error)
	require.Len(t, logs, 1)
	assert.Equal(t, helper.SystemActor().Name, logs[0].ScheduleStatusLogChangedBy)
}

func TestRunActivationSweepIgnoresFutureSchedule(t *testing.T) {
	svc, db := newSweepService(t)

	nextWeek := time.Now().AddDate(0, 0, 7).Format("2006-01-02")
	id := approvedSchedule(t, svc, "Grade agendada", nextWeek)

	RunActivationSweep(context.Background(), svc, time.Now())

	var schedule model.ClassScheduleModel
	require.NoError(t, db.Where("class_schedule_id = ?", id).First(&schedule).Error)
	assert.Equal(t, model.StatusAprovado, schedule.ClassScheduleStatus)
}

func TestRunActivationSweepIsEmptySafe(t *testing.T) {
	svc, _ := newSweepService(t)
	RunActivationSweep(context.Background(), svc, time.Now())
}

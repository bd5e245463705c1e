package service

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"clubfit_backend/internals/features/notifications/model"
	scheduleModel "clubfit_backend/internals/features/schedules/model"
	userModel "clubfit_backend/internals/features/users/model"
	helper "clubfit_backend/internals/helpers"
	"clubfit_backend/internals/helpers/mailer"
)

/* ===============================
   Infra de teste
=================================*/

type fakeMailer struct {
	mu       sync.Mutex
	messages []mailer.Message
	fail     bool
}

func (f *fakeMailer) Send(ctx context.Context, msg mailer.Message) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.fail {
		return fmt.Errorf("smtp indisponível")
	}
	f.messages = append(f.messages, msg)
	return nil
}

func (f *fakeMailer) sent() []mailer.Message {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]mailer.Message, len(f.messages))
	copy(out, f.messages)
	return out
}

type fakeDirectory struct {
	users []userModel.UserModel
}

func (f *fakeDirectory) ListNotifiables(ctx context.Context) ([]userModel.UserModel, error) {
	return f.users, nil
}

func newTestDispatcher(t *testing.T) (*NotificationDispatcher, *fakeMailer, *gorm.DB) {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", uuid.NewString())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{Logger: logger.Default.LogMode(logger.Silent)})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(
		&scheduleModel.ClassScheduleModel{},
		&scheduleModel.ClassSlotModel{},
		&model.ScheduleNotificationModel{},
		&model.ScheduleClassChangeModel{},
	))

	mail := &fakeMailer{}
	directory := &fakeDirectory{users: []userModel.UserModel{
		{UserName: "Ana Admin", UserEmail: "ana@clubfit.com.br", UserRole: "admin"},
		{UserName: "Gil Gerente", UserEmail: "gil@clubfit.com.br", UserRole: "gerente"},
	}}
	return NewNotificationDispatcher(db, mail, directory), mail, db
}

func seedSchedule(t *testing.T, db *gorm.DB, title string, slots ...scheduleModel.ClassSlotModel) uuid.UUID {
	t.Helper()

	schedule := &scheduleModel.ClassScheduleModel{
		ClassScheduleTitle:        title,
		ClassScheduleStatus:       scheduleModel.StatusAtivo,
		ClassScheduleCreatedBy:    "Paula Gestora",
		ClassScheduleCreatorEmail: "paula@clubfit.com.br",
	}
	require.NoError(t, db.Create(schedule).Error)
	for i := range slots {
		slots[i].ClassSlotScheduleID = schedule.ClassScheduleID
	}
	if len(slots) > 0 {
		require.NoError(t, db.Create(&slots).Error)
	}
	return schedule.ClassScheduleID
}

func terra(name string, weekday int, start, room string) scheduleModel.ClassSlotModel {
	return scheduleModel.ClassSlotModel{
		ClassSlotName:        name,
		ClassSlotCategory:    scheduleModel.CategoryTerra,
		ClassSlotWeekday:     weekday,
		ClassSlotStartTime:   start,
		ClassSlotDurationMin: 60,
		ClassSlotRoom:        room,
		ClassSlotInstructor:  "Carla",
		ClassSlotIntensity:   "Moderada",
	}
}

func express(name string, weekday int, start string) scheduleModel.ClassSlotModel {
	s := terra(name, weekday, start, "Sala 2")
	s.ClassSlotCategory = scheduleModel.CategoryExpress
	return s
}

/* ===============================
   SendScheduleChanges / RegisterInitialSchedule
=================================*/

func TestSendScheduleChangesSuppressesEmailWhenIdentical(t *testing.T) {
	d, mail, db := newTestDispatcher(t)

	prev := seedSchedule(t, db, "Grade A", terra("Pilates", 1, "08:00", "Sala 1"))
	curr := seedSchedule(t, db, "Grade B", terra("Pilates", 1, "08:00", "Sala 1"))

	require.NoError(t, d.SendScheduleChanges(context.Background(), prev, curr, helper.SystemActor()))

	assert.Empty(t, mail.sent())
	var count int64
	db.Model(&model.ScheduleNotificationModel{}).Count(&count)
	assert.Zero(t, count, "sem diferenças, nada é registrado")
}

func TestSendScheduleChangesIgnoresExpressSlots(t *testing.T) {
	d, mail, db := newTestDispatcher(t)

	// A única diferença é uma aula EXPRESS, invisível para o diff.
	prev := seedSchedule(t, db, "Grade A", terra("Pilates", 1, "08:00", "Sala 1"))
	curr := seedSchedule(t, db, "Grade B",
		terra("Pilates", 1, "08:00", "Sala 1"),
		express("Express Abdômen", 1, "12:15"))

	require.NoError(t, d.SendScheduleChanges(context.Background(), prev, curr, helper.SystemActor()))
	assert.Empty(t, mail.sent())
}

func TestSendScheduleChangesPersistsNotificationWithChangeRows(t *testing.T) {
	d, mail, db := newTestDispatcher(t)

	prev := seedSchedule(t, db, "Grade Janeiro",
		terra("Pilates", 1, "08:00", "Sala 1"),
		terra("Zumba", 5, "19:00", "Sala 1"))
	curr := seedSchedule(t, db, "Grade Fevereiro",
		terra("Pilates", 1, "08:00", "Sala 2"), // sala mudou
		terra("Yoga", 3, "18:30", "Sala 3"))    // nova; Zumba saiu

	require.NoError(t, d.SendScheduleChanges(context.Background(), prev, curr, helper.SystemActor()))

	sent := mail.sent()
	require.Len(t, sent, 1)
	assert.Contains(t, sent[0].Subject, "Grade Fevereiro")
	assert.Contains(t, sent[0].HTML, "Yoga")
	assert.Contains(t, sent[0].HTML, "Zumba")
	assert.Contains(t, sent[0].HTML, "Sala 1 → Sala 2")

	var notifications []model.ScheduleNotificationModel
	require.NoError(t, db.Preload("Changes").Find(&notifications).Error)
	require.Len(t, notifications, 1)

	n := notifications[0]
	require.NotNil(t, n.ScheduleNotificationPreviousScheduleID)
	assert.Equal(t, prev, *n.ScheduleNotificationPreviousScheduleID)
	assert.Equal(t, curr, n.ScheduleNotificationNewScheduleID)
	assert.NotEmpty(t, n.ScheduleNotificationPayload)

	byType := map[scheduleModel.ChangeType]int{}
	for _, ch := range n.Changes {
		byType[ch.ScheduleClassChangeType]++
		if ch.ScheduleClassChangeType == scheduleModel.ChangeModified {
			require.NotNil(t, ch.ScheduleClassChangePrevRoom)
			assert.Equal(t, "Sala 1", *ch.ScheduleClassChangePrevRoom)
		}
	}
	assert.Equal(t, 1, byType[scheduleModel.ChangeAdded])
	assert.Equal(t, 1, byType[scheduleModel.ChangeRemoved])
	assert.Equal(t, 1, byType[scheduleModel.ChangeModified])
}

func TestRegisterInitialScheduleMarksEverythingAdded(t *testing.T) {
	d, mail, db := newTestDispatcher(t)

	curr := seedSchedule(t, db, "Primeira Grade",
		terra("Pilates", 1, "08:00", "Sala 1"),
		terra("Yoga", 3, "18:30", "Sala 3"),
		express("Express Abdômen", 1, "12:15"))

	require.NoError(t, d.RegisterInitialSchedule(context.Background(), curr))

	sent := mail.sent()
	require.Len(t, sent, 1)
	assert.Contains(t, sent[0].Subject, "Primeira grade ativada")

	var notifications []model.ScheduleNotificationModel
	require.NoError(t, db.Preload("Changes").Find(&notifications).Error)
	require.Len(t, notifications, 1)

	n := notifications[0]
	assert.Nil(t, n.ScheduleNotificationPreviousScheduleID)
	require.Len(t, n.Changes, 2, "EXPRESS fica de fora do registro")
	for _, ch := range n.Changes {
		assert.Equal(t, scheduleModel.ChangeAdded, ch.ScheduleClassChangeType)
	}
}

/* ===============================
   GetScheduleChanges: fallback de baseline
=================================*/

func TestGetScheduleChangesReconstructsBaselineFromLastNotification(t *testing.T) {
	d, _, db := newTestDispatcher(t)

	// Registro antigo no lugar da grade anterior (já excluída do banco).
	old := seedSchedule(t, db, "Grade Antiga", terra("Pilates", 1, "08:00", "Sala 1"))
	require.NoError(t, d.RegisterInitialSchedule(context.Background(), old))
	require.NoError(t, db.Where("class_schedule_id = ?", old).Delete(&scheduleModel.ClassScheduleModel{}).Error)

	curr := seedSchedule(t, db, "Grade Nova",
		terra("Pilates", 1, "08:00", "Sala 1"),
		terra("Yoga", 3, "18:30", "Sala 3"))

	resp, err := d.GetScheduleChanges(context.Background(), nil, curr, nil)
	require.NoError(t, err)

	assert.True(t, resp.HasChanges)
	require.Len(t, resp.Days, 7)

	// O Pilates já estava na baseline reconstruída; só a Yoga é nova.
	var added int
	for _, day := range resp.Days {
		added += len(day.Added)
		assert.Empty(t, day.Removed)
		assert.Empty(t, day.Modified)
	}
	assert.Equal(t, 1, added)
	assert.Equal(t, "Yoga", resp.Days[3].Added[0].Name)
}

func TestGetScheduleChangesWithoutAnyBaselineMarksAllAdded(t *testing.T) {
	d, _, db := newTestDispatcher(t)

	curr := seedSchedule(t, db, "Grade Única",
		terra("Pilates", 1, "08:00", "Sala 1"),
		terra("Yoga", 3, "18:30", "Sala 3"))

	resp, err := d.GetScheduleChanges(context.Background(), nil, curr, nil)
	require.NoError(t, err)

	var added int
	for _, day := range resp.Days {
		added += len(day.Added)
	}
	assert.Equal(t, 2, added)
}

func TestGetScheduleChangesSendsEmailWhenRequested(t *testing.T) {
	d, mail, db := newTestDispatcher(t)

	prev := seedSchedule(t, db, "Grade A", terra("Pilates", 1, "08:00", "Sala 1"))
	curr := seedSchedule(t, db, "Grade B", terra("Pilates", 1, "09:00", "Sala 1"))

	to := "diretoria@clubfit.com.br"
	_, err := d.GetScheduleChanges(context.Background(), &prev, curr, &to)
	require.NoError(t, err)

	sent := mail.sent()
	require.Len(t, sent, 1)
	assert.Equal(t, []string{to}, sent[0].To)

	var count int64
	db.Model(&model.ScheduleNotificationModel{}).Count(&count)
	assert.EqualValues(t, 1, count)
}

func TestGetScheduleChangesSurfacesMailerFailure(t *testing.T) {
	d, mail, db := newTestDispatcher(t)
	mail.fail = true

	prev := seedSchedule(t, db, "Grade A", terra("Pilates", 1, "08:00", "Sala 1"))
	curr := seedSchedule(t, db, "Grade B", terra("Pilates", 1, "09:00", "Sala 1"))

	to := "diretoria@clubfit.com.br"
	_, err := d.GetScheduleChanges(context.Background(), &prev, curr, &to)
	require.Error(t, err, "envio explícito falhou: o chamador precisa saber")

	var count int64
	db.Model(&model.ScheduleNotificationModel{}).Count(&count)
	assert.Zero(t, count)
}

func TestGetScheduleChangesUnknownNewScheduleIs404(t *testing.T) {
	d, _, _ := newTestDispatcher(t)

	_, err := d.GetScheduleChanges(context.Background(), nil, uuid.New(), nil)
	require.Error(t, err)
	assert.True(t, strings.Contains(err.Error(), "não encontrada"))
}

/* ===============================
   NotifyStatusChange
=================================*/

func TestNotifyStatusChangeFansOutToAllRecipients(t *testing.T) {
	d, mail, db := newTestDispatcher(t)

	id := seedSchedule(t, db, "Grade X", terra("Pilates", 1, "08:00", "Sala 1"))
	var schedule scheduleModel.ClassScheduleModel
	require.NoError(t, db.Where("class_schedule_id = ?", id).First(&schedule).Error)
	schedule.ClassScheduleStatus = scheduleModel.StatusPendente

	note := "Pronta para revisão"
	err := d.NotifyStatusChange(context.Background(), &schedule, scheduleModel.StatusAprovado, helper.SystemActor(), &note)
	require.NoError(t, err)

	sent := mail.sent()
	require.Len(t, sent, 2)
	assert.Equal(t, []string{"ana@clubfit.com.br"}, sent[0].To)
	assert.Equal(t, []string{"gil@clubfit.com.br"}, sent[1].To)
	assert.Contains(t, sent[0].HTML, "Pronta para revisão")
	assert.Contains(t, sent[0].Subject, "PENDENTE → APROVADO")
}

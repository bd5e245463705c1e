package service

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/bytedance/sonic"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"clubfit_backend/internals/configs"
	"clubfit_backend/internals/features/notifications/dto"
	"clubfit_backend/internals/features/notifications/model"
	scheduleModel "clubfit_backend/internals/features/schedules/model"
	scheduleService "clubfit_backend/internals/features/schedules/service"
	userService "clubfit_backend/internals/features/users/service"
	helper "clubfit_backend/internals/helpers"
	"clubfit_backend/internals/helpers/mailer"
)

// Tempo máximo por envio de e-mail: um SMTP lento não pode travar nem a
// request nem o lote do cron.
const sendTimeout = 15 * time.Second

type NotificationDispatcher struct {
	db        *gorm.DB
	mailer    mailer.Mailer
	directory userService.Directory
}

// O despachante satisfaz o contrato best-effort do ciclo de vida.
var _ scheduleService.Dispatcher = (*NotificationDispatcher)(nil)

func NewNotificationDispatcher(db *gorm.DB, m mailer.Mailer, directory userService.Directory) *NotificationDispatcher {
	return &NotificationDispatcher{db: db, mailer: m, directory: directory}
}

/* ===============================
   Aviso de mudança de status (fan-out)
=================================*/

// NotifyStatusChange envia um e-mail por admin/gerente. Falha de um
// destinatário não bloqueia os demais nem sobe para o chamador.
func (d *NotificationDispatcher) NotifyStatusChange(ctx context.Context, schedule *scheduleModel.ClassScheduleModel, newStatus scheduleModel.ScheduleStatus, actor helper.Actor, note *string) error {
	recipients, err := d.directory.ListNotifiables(ctx)
	if err != nil {
		return fmt.Errorf("listar destinatários: %w", err)
	}
	if len(recipients) == 0 {
		log.Printf("[NOTIFY] nenhum admin/gerente cadastrado — aviso de status pulado")
		return nil
	}

	html, err := renderStatusChangeEmail(schedule.ClassScheduleTitle, schedule.ClassScheduleStatus, newStatus, actor, note)
	if err != nil {
		return fmt.Errorf("renderizar aviso de status: %w", err)
	}
	subject := fmt.Sprintf("[ClubFit] Grade %q: %s → %s", schedule.ClassScheduleTitle, schedule.ClassScheduleStatus, newStatus)

	for _, r := range recipients {
		sendCtx, cancel := context.WithTimeout(ctx, sendTimeout)
		err := d.mailer.Send(sendCtx, mailer.Message{To: []string{r.UserEmail}, Subject: subject, HTML: html})
		cancel()
		if err != nil {
			log.Printf("[NOTIFY] aviso de status para %s falhou (ignorado): %v", r.UserEmail, err)
		}
	}
	return nil
}

/* ===============================
   Diff entre grades + e-mail + registro
=================================*/

// SendScheduleChanges compara as aulas não-EXPRESS das duas grades e,
// havendo diferenças, envia o resumo e grava o registro durável.
func (d *NotificationDispatcher) SendScheduleChanges(ctx context.Context, previousID, newID uuid.UUID, actor helper.Actor) error {
	prev, prevSlots, err := d.loadNonExpress(ctx, previousID)
	if err != nil {
		return err
	}
	curr, currSlots, err := d.loadNonExpress(ctx, newID)
	if err != nil {
		return err
	}

	changes := scheduleService.CompareClasses(prevSlots, currSlots)
	if len(changes) == 0 {
		log.Printf("[NOTIFY] grades %s e %s idênticas — e-mail suprimido", previousID, newID)
		return nil
	}

	html, err := renderDiffEmail(prev.ClassScheduleTitle, curr.ClassScheduleTitle, changes)
	if err != nil {
		return fmt.Errorf("renderizar diff: %w", err)
	}
	subject := fmt.Sprintf("[ClubFit] Mudanças na grade de aulas: %s", curr.ClassScheduleTitle)
	recipient := d.sendToMailbox(ctx, subject, html)

	return d.persistNotification(ctx, &previousID, &prev.ClassScheduleTitle, curr, recipient, html, changes)
}

// RegisterInitialSchedule é o caso especial da primeira ativação: sem
// antecessor, todas as aulas entram como ADDED e o e-mail é o aviso
// simples de "primeira grade no ar".
func (d *NotificationDispatcher) RegisterInitialSchedule(ctx context.Context, scheduleID uuid.UUID) error {
	curr, currSlots, err := d.loadNonExpress(ctx, scheduleID)
	if err != nil {
		return err
	}

	changes := scheduleService.CompareClasses(nil, currSlots)

	html, err := renderInitialScheduleEmail(curr.ClassScheduleTitle, len(currSlots))
	if err != nil {
		return fmt.Errorf("renderizar e-mail inicial: %w", err)
	}
	subject := fmt.Sprintf("[ClubFit] Primeira grade ativada: %s", curr.ClassScheduleTitle)
	recipient := d.sendToMailbox(ctx, subject, html)

	return d.persistNotification(ctx, nil, nil, curr, recipient, html, changes)
}

/* ===============================
   Diff sob demanda (painel)
=================================*/

// GetScheduleChanges compara duas grades sob demanda, agrupando por dia
// da semana. Se a grade anterior não existir mais, reconstrói a baseline
// a partir do último registro de notificação (heurística: as entradas
// ADDED/MODIFIED viram a "lista anterior"); sem registro algum, tudo
// conta como ADDED. Ao contrário das notificações de transição, erros
// aqui SOBEM: o diff/e-mail é o próprio propósito do endpoint.
func (d *NotificationDispatcher) GetScheduleChanges(ctx context.Context, previousID *uuid.UUID, newID uuid.UUID, emailTo *string) (*dto.ScheduleChangesResponse, error) {
	curr, currSlots, err := d.loadNonExpress(ctx, newID)
	if err != nil {
		return nil, err
	}

	var (
		baseline      []scheduleModel.ClassSlotModel
		baselineTitle *string
		baselineID    *uuid.UUID
		hasBaseline   bool
	)

	if previousID != nil {
		if prev, prevSlots, err := d.loadNonExpress(ctx, *previousID); err == nil {
			baseline = prevSlots
			baselineTitle = &prev.ClassScheduleTitle
			baselineID = previousID
			hasBaseline = true
		} else if fe := new(fiber.Error); !errors.As(err, &fe) || fe.Code != fiber.StatusNotFound {
			return nil, err
		}
	}
	if !hasBaseline {
		if slots, title, ok, err := d.baselineFromLastNotification(ctx); err != nil {
			return nil, err
		} else if ok {
			baseline = slots
			baselineTitle = title
			hasBaseline = true
		}
	}

	changes := scheduleService.CompareClasses(baseline, currSlots)

	resp := &dto.ScheduleChangesResponse{
		PreviousScheduleID: baselineID,
		PreviousTitle:      baselineTitle,
		NewScheduleID:      curr.ClassScheduleID,
		NewTitle:           curr.ClassScheduleTitle,
		Days:               dto.GroupChangesByWeekday(changes),
		HasChanges:         len(changes) > 0,
	}

	if emailTo != nil && *emailTo != "" {
		var html, subject string
		if hasBaseline {
			prevTitle := "(grade anterior)"
			if baselineTitle != nil {
				prevTitle = *baselineTitle
			}
			html, err = renderDiffEmail(prevTitle, curr.ClassScheduleTitle, changes)
			subject = fmt.Sprintf("[ClubFit] Mudanças na grade de aulas: %s", curr.ClassScheduleTitle)
		} else {
			html, err = renderInitialScheduleEmail(curr.ClassScheduleTitle, len(currSlots))
			subject = fmt.Sprintf("[ClubFit] Primeira grade ativada: %s", curr.ClassScheduleTitle)
		}
		if err != nil {
			return nil, fmt.Errorf("renderizar e-mail: %w", err)
		}

		sendCtx, cancel := context.WithTimeout(ctx, sendTimeout)
		err = d.mailer.Send(sendCtx, mailer.Message{To: []string{*emailTo}, Subject: subject, HTML: html})
		cancel()
		if err != nil {
			return nil, fiber.NewError(fiber.StatusBadGateway, "Falha ao enviar o e-mail: "+err.Error())
		}
		if err := d.persistNotification(ctx, baselineID, baselineTitle, curr, *emailTo, html, changes); err != nil {
			return nil, err
		}
	}

	return resp, nil
}

// ListNotifications devolve o histórico de e-mails registrados.
func (d *NotificationDispatcher) ListNotifications(ctx context.Context) ([]model.ScheduleNotificationModel, error) {
	var notifications []model.ScheduleNotificationModel
	err := d.db.WithContext(ctx).
		Preload("Changes").
		Order("schedule_notification_sent_at DESC").
		Find(&notifications).Error
	if err != nil {
		log.Printf("[NOTIFY] listar notificações falhou: %v", err)
		return nil, fiber.NewError(fiber.StatusInternalServerError, "Falha ao listar notificações")
	}
	return notifications, nil
}

/* ===============================
   Internos
=================================*/

func (d *NotificationDispatcher) loadNonExpress(ctx context.Context, id uuid.UUID) (*scheduleModel.ClassScheduleModel, []scheduleModel.ClassSlotModel, error) {
	var schedule scheduleModel.ClassScheduleModel
	err := d.db.WithContext(ctx).
		Preload("Slots").
		Where("class_schedule_id = ?", id).
		First(&schedule).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil, fiber.NewError(fiber.StatusNotFound, "Grade de aulas não encontrada: "+id.String())
		}
		return nil, nil, fmt.Errorf("carregar grade %s: %w", id, err)
	}
	return &schedule, scheduleService.NonExpress(schedule.Slots), nil
}

// sendToMailbox manda para a caixa configurada; devolve o destinatário
// gravado no registro. Envio é best-effort aqui; o registro durável é
// gravado de qualquer forma, porque ele é a baseline de comparações futuras.
func (d *NotificationDispatcher) sendToMailbox(ctx context.Context, subject, html string) string {
	recipient := configs.NotifyEmail
	if recipient == "" {
		recipient = "console"
	}

	sendCtx, cancel := context.WithTimeout(ctx, sendTimeout)
	defer cancel()
	if err := d.mailer.Send(sendCtx, mailer.Message{To: []string{recipient}, Subject: subject, HTML: html}); err != nil {
		log.Printf("[NOTIFY] envio para %s falhou (ignorado): %v", recipient, err)
	}
	return recipient
}

func (d *NotificationDispatcher) persistNotification(ctx context.Context, previousID *uuid.UUID, previousTitle *string, curr *scheduleModel.ClassScheduleModel, recipient, html string, changes []scheduleService.ClassChange) error {
	payload, err := sonic.Marshal(changes)
	if err != nil {
		return fmt.Errorf("serializar payload do diff: %w", err)
	}

	notification := &model.ScheduleNotificationModel{
		ScheduleNotificationPreviousScheduleID: previousID,
		ScheduleNotificationNewScheduleID:      curr.ClassScheduleID,
		ScheduleNotificationPreviousTitle:      previousTitle,
		ScheduleNotificationNewTitle:           curr.ClassScheduleTitle,
		ScheduleNotificationRecipientEmail:     recipient,
		ScheduleNotificationEmailHTML:          html,
		ScheduleNotificationPayload:            datatypes.JSON(payload),
	}

	err = d.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(notification).Error; err != nil {
			return err
		}
		rows := changeRows(notification.ScheduleNotificationID, changes)
		if len(rows) == 0 {
			return nil
		}
		return tx.Create(&rows).Error
	})
	if err != nil {
		return fmt.Errorf("gravar registro de notificação: %w", err)
	}
	return nil
}

func changeRows(notificationID uuid.UUID, changes []scheduleService.ClassChange) []model.ScheduleClassChangeModel {
	rows := make([]model.ScheduleClassChangeModel, 0, len(changes))
	for _, ch := range changes {
		row := model.ScheduleClassChangeModel{
			ScheduleClassChangeNotificationID: notificationID,
			ScheduleClassChangeType:           ch.Type,
			ScheduleClassChangeClassName:      ch.Slot.ClassSlotName,
			ScheduleClassChangeCategory:       ch.Slot.ClassSlotCategory,
			ScheduleClassChangeWeekday:        ch.Slot.ClassSlotWeekday,
			ScheduleClassChangeStartTime:      ch.Slot.ClassSlotStartTime,
			ScheduleClassChangeDurationMin:    ch.Slot.ClassSlotDurationMin,
			ScheduleClassChangeRoom:           ch.Slot.ClassSlotRoom,
			ScheduleClassChangeInstructor:     ch.Slot.ClassSlotInstructor,
			ScheduleClassChangeIntensity:      ch.Slot.ClassSlotIntensity,
		}
		if ch.Type == scheduleModel.ChangeModified && ch.Prev != nil {
			row.ScheduleClassChangePrevDurationMin = intPtr(ch.Prev.ClassSlotDurationMin)
			row.ScheduleClassChangePrevRoom = strPtr(ch.Prev.ClassSlotRoom)
			row.ScheduleClassChangePrevInstructor = strPtr(ch.Prev.ClassSlotInstructor)
			row.ScheduleClassChangePrevIntensity = strPtr(ch.Prev.ClassSlotIntensity)
			row.ScheduleClassChangePrevCategory = categoryPtr(ch.Prev.ClassSlotCategory)
		}
		rows = append(rows, row)
	}
	return rows
}

// baselineFromLastNotification reconstrói a "lista anterior" sintética a
// partir do último registro: entradas ADDED e MODIFIED viram aulas.
// É uma aproximação do que estava no ar e pode divergir se notificações
// foram suprimidas ou saíram fora de ordem.
func (d *NotificationDispatcher) baselineFromLastNotification(ctx context.Context) ([]scheduleModel.ClassSlotModel, *string, bool, error) {
	var last model.ScheduleNotificationModel
	err := d.db.WithContext(ctx).
		Preload("Changes").
		Order("schedule_notification_sent_at DESC").
		First(&last).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil, false, nil
		}
		return nil, nil, false, fmt.Errorf("carregar última notificação: %w", err)
	}

	slots := make([]scheduleModel.ClassSlotModel, 0, len(last.Changes))
	for _, ch := range last.Changes {
		if ch.ScheduleClassChangeType == scheduleModel.ChangeRemoved {
			continue
		}
		slots = append(slots, scheduleModel.ClassSlotModel{
			ClassSlotName:        ch.ScheduleClassChangeClassName,
			ClassSlotCategory:    ch.ScheduleClassChangeCategory,
			ClassSlotWeekday:     ch.ScheduleClassChangeWeekday,
			ClassSlotStartTime:   ch.ScheduleClassChangeStartTime,
			ClassSlotDurationMin: ch.ScheduleClassChangeDurationMin,
			ClassSlotRoom:        ch.ScheduleClassChangeRoom,
			ClassSlotInstructor:  ch.ScheduleClassChangeInstructor,
			ClassSlotIntensity:   ch.ScheduleClassChangeIntensity,
		})
	}

	title := &last.ScheduleNotificationNewTitle
	return slots, title, true, nil
}

func intPtr(v int) *int { return &v }

func strPtr(v string) *string { return &v }

func categoryPtr(v scheduleModel.ClassCategory) *scheduleModel.ClassCategory { return &v }

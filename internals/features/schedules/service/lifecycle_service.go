package service

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"clubfit_backend/internals/features/schedules/dto"
	"clubfit_backend/internals/features/schedules/model"
	helper "clubfit_backend/internals/helpers"
)

const minSlotDuration = 15 // minutos

// Dispatcher é o que o ciclo de vida precisa do lado de notificações.
// Toda chamada é best-effort: falha aqui nunca desfaz uma transição
// já commitada.
type Dispatcher interface {
	NotifyStatusChange(ctx context.Context, schedule *model.ClassScheduleModel, newStatus model.ScheduleStatus, actor helper.Actor, note *string) error
	SendScheduleChanges(ctx context.Context, previousID, newID uuid.UUID, actor helper.Actor) error
	RegisterInitialSchedule(ctx context.Context, scheduleID uuid.UUID) error
}

type LifecycleService struct {
	db         *gorm.DB
	dispatcher Dispatcher
	validate   *validator.Validate
}

func NewLifecycleService(db *gorm.DB, dispatcher Dispatcher) *LifecycleService {
	return &LifecycleService{
		db:         db,
		dispatcher: dispatcher,
		validate:   validator.New(),
	}
}

/* ===============================
   Create / Update / Duplicate
=================================*/

func (s *LifecycleService) Create(ctx context.Context, req *dto.ScheduleRequest, actor helper.Actor) (*model.ClassScheduleModel, error) {
	if err := s.validate.Struct(req); err != nil {
		return nil, err
	}
	slots, err := buildSlots(req.Slots)
	if err != nil {
		return nil, err
	}

	budget := req.Budget
	if budget == nil {
		budget = computeBudget(slots)
	}

	schedule := &model.ClassScheduleModel{
		ClassScheduleTitle:        strings.TrimSpace(req.Title),
		ClassScheduleDescription:  req.Description,
		ClassScheduleBudget:       budget,
		ClassScheduleStatus:       model.StatusRascunho,
		ClassScheduleIsOriginal:   true,
		ClassScheduleCreatedBy:    actor.DisplayName(),
		ClassScheduleCreatorEmail: actor.Email,
	}

	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(schedule).Error; err != nil {
			return err
		}
		for i := range slots {
			slots[i].ClassSlotScheduleID = schedule.ClassScheduleID
		}
		if len(slots) > 0 {
			if err := tx.Create(&slots).Error; err != nil {
				return err
			}
		}
		return tx.Create(&model.ScheduleStatusLogModel{
			ScheduleStatusLogScheduleID:   schedule.ClassScheduleID,
			ScheduleStatusLogNewStatus:    model.StatusRascunho,
			ScheduleStatusLogChangedBy:    actor.DisplayName(),
			ScheduleStatusLogChangerEmail: actor.Email,
			ScheduleStatusLogNote:         strPtr("Grade criada"),
		}).Error
	})
	if err != nil {
		log.Printf("[LIFECYCLE] criar grade falhou: %v", err)
		return nil, fiber.NewError(fiber.StatusInternalServerError, "Falha ao criar a grade de aulas")
	}

	return s.Get(ctx, schedule.ClassScheduleID)
}

func (s *LifecycleService) Update(ctx context.Context, id uuid.UUID, req *dto.ScheduleRequest, actor helper.Actor) (*model.ClassScheduleModel, error) {
	if err := s.validate.Struct(req); err != nil {
		return nil, err
	}

	schedule, err := s.loadSchedule(ctx, id)
	if err != nil {
		return nil, err
	}

	slots, err := buildSlots(req.Slots)
	if err != nil {
		return nil, err
	}
	budget := req.Budget
	if budget == nil {
		budget = computeBudget(slots)
	}

	// Editar uma grade ATIVA é permitido (o site muda na hora), mas fica
	// registrado: edições in-place não disparam diff nem e-mail.
	if schedule.ClassScheduleStatus == model.StatusAtivo {
		log.Printf("[WARN] [LIFECYCLE] grade ATIVA %s editada in-place por %s", id, actor.DisplayName())
	}

	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		// Substituição em bloco: apaga todas as aulas e recria.
		if err := tx.Where("class_slot_schedule_id = ?", id).
			Delete(&model.ClassSlotModel{}).Error; err != nil {
			return err
		}
		for i := range slots {
			slots[i].ClassSlotScheduleID = id
		}
		if len(slots) > 0 {
			if err := tx.Create(&slots).Error; err != nil {
				return err
			}
		}
		return tx.Model(&model.ClassScheduleModel{}).
			Where("class_schedule_id = ?", id).
			Updates(map[string]interface{}{
				"class_schedule_title":       strings.TrimSpace(req.Title),
				"class_schedule_description": req.Description,
				"class_schedule_budget":      budget,
				"class_schedule_updated_by":  actor.DisplayName(),
			}).Error
	})
	if err != nil {
		log.Printf("[LIFECYCLE] atualizar grade %s falhou: %v", id, err)
		return nil, fiber.NewError(fiber.StatusInternalServerError, "Falha ao atualizar a grade de aulas")
	}

	return s.Get(ctx, id)
}

func (s *LifecycleService) Duplicate(ctx context.Context, sourceID uuid.UUID, newTitle *string, actor helper.Actor) (*model.ClassScheduleModel, error) {
	source, err := s.loadSchedule(ctx, sourceID)
	if err != nil {
		return nil, err
	}

	var slots []model.ClassSlotModel
	if err := s.db.WithContext(ctx).
		Where("class_slot_schedule_id = ?", sourceID).
		Find(&slots).Error; err != nil {
		return nil, fiber.NewError(fiber.StatusInternalServerError, "Falha ao carregar as aulas da grade original")
	}

	title := fmt.Sprintf("%s (Nova Versão)", source.ClassScheduleTitle)
	if newTitle != nil && strings.TrimSpace(*newTitle) != "" {
		title = strings.TrimSpace(*newTitle)
	}

	dup := &model.ClassScheduleModel{
		ClassScheduleTitle:        title,
		ClassScheduleDescription:  source.ClassScheduleDescription,
		ClassScheduleBudget:       source.ClassScheduleBudget,
		ClassScheduleStatus:       model.StatusRascunho,
		ClassScheduleIsOriginal:   false,
		ClassScheduleOriginalID:   &source.ClassScheduleID,
		ClassScheduleCreatedBy:    actor.DisplayName(),
		ClassScheduleCreatorEmail: actor.Email,
	}

	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(dup).Error; err != nil {
			return err
		}
		for i := range slots {
			slots[i].ClassSlotID = uuid.Nil // novas PKs via BeforeCreate
			slots[i].ClassSlotScheduleID = dup.ClassScheduleID
		}
		if len(slots) > 0 {
			if err := tx.Create(&slots).Error; err != nil {
				return err
			}
		}
		note := fmt.Sprintf("Duplicada a partir de %q", source.ClassScheduleTitle)
		return tx.Create(&model.ScheduleStatusLogModel{
			ScheduleStatusLogScheduleID:   dup.ClassScheduleID,
			ScheduleStatusLogNewStatus:    model.StatusRascunho,
			ScheduleStatusLogChangedBy:    actor.DisplayName(),
			ScheduleStatusLogChangerEmail: actor.Email,
			ScheduleStatusLogNote:         &note,
		}).Error
	})
	if err != nil {
		log.Printf("[LIFECYCLE] duplicar grade %s falhou: %v", sourceID, err)
		return nil, fiber.NewError(fiber.StatusInternalServerError, "Falha ao duplicar a grade")
	}

	return s.Get(ctx, dup.ClassScheduleID)
}

/* ===============================
   ChangeStatus: núcleo da máquina de estados
=================================*/

func (s *LifecycleService) ChangeStatus(ctx context.Context, id uuid.UUID, target model.ScheduleStatus, note *string, activationDateRaw *string, actor helper.Actor) (*model.ClassScheduleModel, error) {
	schedule, err := s.loadSchedule(ctx, id)
	if err != nil {
		return nil, err
	}

	plan, err := PlanTransition(schedule.ClassScheduleStatus, target)
	if err != nil {
		return nil, err
	}

	// Data de ativação agendada só faz sentido na aprovação; parse antes
	// de mutar para falhar cedo.
	var activationDate *time.Time
	if plan.Kind == TransitionApprove && activationDateRaw != nil && strings.TrimSpace(*activationDateRaw) != "" {
		t, err := helper.ParseFlexibleDate(*activationDateRaw)
		if err != nil {
			return nil, fiber.NewError(fiber.StatusBadRequest, err.Error())
		}
		activationDate = &t
	}

	// Aviso prévio aos admins/gerentes: assíncrono e best-effort.
	s.notifyAsync(schedule, target, actor, note)

	switch plan.Kind {
	case TransitionActivate:
		err = s.activate(ctx, schedule, plan, note, actor)
	case TransitionApprove:
		err = s.approve(ctx, schedule, plan, note, activationDate, actor)
	default:
		err = s.plainTransition(ctx, schedule, target, note, actor)
	}
	if err != nil {
		return nil, err
	}

	return s.Get(ctx, id)
}

// activate rebaixa a grade ATIVA vigente (se houver) e promove a alvo,
// tudo numa transação. Diff + e-mail só depois do commit.
func (s *LifecycleService) activate(ctx context.Context, schedule *model.ClassScheduleModel, plan *TransitionPlan, note *string, actor helper.Actor) error {
	now := time.Now()

	var oldActive *model.ClassScheduleModel
	var found model.ClassScheduleModel
	err := s.db.WithContext(ctx).
		Where("class_schedule_status = ? AND class_schedule_id <> ?", model.StatusAtivo, schedule.ClassScheduleID).
		First(&found).Error
	switch {
	case err == nil:
		oldActive = &found
	case errors.Is(err, gorm.ErrRecordNotFound):
		// primeira ativação de todas
	default:
		log.Printf("[LIFECYCLE] buscar grade ativa falhou: %v", err)
		return fiber.NewError(fiber.StatusInternalServerError, "Falha ao verificar a grade ativa")
	}

	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if oldActive != nil {
			if err := tx.Model(&model.ClassScheduleModel{}).
				Where("class_schedule_id = ?", oldActive.ClassScheduleID).
				Updates(map[string]interface{}{
					"class_schedule_status":            plan.DemoteTo,
					"class_schedule_deactivation_date": now,
				}).Error; err != nil {
				return err
			}
			demoteNote := fmt.Sprintf("Substituída pela ativação de %q", schedule.ClassScheduleTitle)
			if err := tx.Create(&model.ScheduleStatusLogModel{
				ScheduleStatusLogScheduleID:     oldActive.ClassScheduleID,
				ScheduleStatusLogPreviousStatus: statusPtr(model.StatusAtivo),
				ScheduleStatusLogNewStatus:      plan.DemoteTo,
				ScheduleStatusLogChangedBy:      actor.DisplayName(),
				ScheduleStatusLogChangerEmail:   actor.Email,
				ScheduleStatusLogNote:           &demoteNote,
			}).Error; err != nil {
				return err
			}
		}

		updates := map[string]interface{}{
			"class_schedule_status":          model.StatusAtivo,
			"class_schedule_activation_date": now,
		}
		if oldActive != nil {
			updates["class_schedule_superseded_id"] = oldActive.ClassScheduleID
		}
		if err := tx.Model(&model.ClassScheduleModel{}).
			Where("class_schedule_id = ?", schedule.ClassScheduleID).
			Updates(updates).Error; err != nil {
			return err
		}
		return tx.Create(&model.ScheduleStatusLogModel{
			ScheduleStatusLogScheduleID:     schedule.ClassScheduleID,
			ScheduleStatusLogPreviousStatus: statusPtr(plan.From),
			ScheduleStatusLogNewStatus:      model.StatusAtivo,
			ScheduleStatusLogChangedBy:      actor.DisplayName(),
			ScheduleStatusLogChangerEmail:   actor.Email,
			ScheduleStatusLogNote:           note,
		}).Error
	})
	if err != nil {
		log.Printf("[LIFECYCLE] ativação da grade %s falhou: %v", schedule.ClassScheduleID, err)
		return fiber.NewError(fiber.StatusInternalServerError, "Falha ao ativar a grade")
	}

	// Pós-commit: diff + notificação, fora da transação e best-effort.
	if oldActive != nil {
		prevID := oldActive.ClassScheduleID
		s.dispatchAsync("diff de mudanças", func(ctx context.Context) error {
			return s.dispatcher.SendScheduleChanges(ctx, prevID, schedule.ClassScheduleID, actor)
		})
	} else {
		s.dispatchAsync("registro da grade inicial", func(ctx context.Context) error {
			return s.dispatcher.RegisterInitialSchedule(ctx, schedule.ClassScheduleID)
		})
	}
	return nil
}

// approve garante no máximo um APROVADO: o concorrente volta para
// PENDENTE e perde a data de ativação agendada.
func (s *LifecycleService) approve(ctx context.Context, schedule *model.ClassScheduleModel, plan *TransitionPlan, note *string, activationDate *time.Time, actor helper.Actor) error {
	now := time.Now()

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var other model.ClassScheduleModel
		err := tx.Where("class_schedule_status = ? AND class_schedule_id <> ?", model.StatusAprovado, schedule.ClassScheduleID).
			First(&other).Error
		if err == nil {
			if err := tx.Model(&model.ClassScheduleModel{}).
				Where("class_schedule_id = ?", other.ClassScheduleID).
				Updates(map[string]interface{}{
					"class_schedule_status":          plan.DemoteTo,
					"class_schedule_activation_date": nil,
				}).Error; err != nil {
				return err
			}
			demoteNote := fmt.Sprintf("Preterida pela aprovação de %q", schedule.ClassScheduleTitle)
			if err := tx.Create(&model.ScheduleStatusLogModel{
				ScheduleStatusLogScheduleID:     other.ClassScheduleID,
				ScheduleStatusLogPreviousStatus: statusPtr(model.StatusAprovado),
				ScheduleStatusLogNewStatus:      plan.DemoteTo,
				ScheduleStatusLogChangedBy:      actor.DisplayName(),
				ScheduleStatusLogChangerEmail:   actor.Email,
				ScheduleStatusLogNote:           &demoteNote,
			}).Error; err != nil {
				return err
			}
		} else if !errors.Is(err, gorm.ErrRecordNotFound) {
			return err
		}

		if err := tx.Model(&model.ClassScheduleModel{}).
			Where("class_schedule_id = ?", schedule.ClassScheduleID).
			Updates(map[string]interface{}{
				"class_schedule_status":          model.StatusAprovado,
				"class_schedule_approved_by":     actor.DisplayName(),
				"class_schedule_approver_email":  actor.Email,
				"class_schedule_approval_date":   now,
				"class_schedule_approval_note":   note,
				"class_schedule_activation_date": activationDate,
			}).Error; err != nil {
			return err
		}
		return tx.Create(&model.ScheduleStatusLogModel{
			ScheduleStatusLogScheduleID:     schedule.ClassScheduleID,
			ScheduleStatusLogPreviousStatus: statusPtr(plan.From),
			ScheduleStatusLogNewStatus:      model.StatusAprovado,
			ScheduleStatusLogChangedBy:      actor.DisplayName(),
			ScheduleStatusLogChangerEmail:   actor.Email,
			ScheduleStatusLogNote:           note,
		}).Error
	})
	if err != nil {
		log.Printf("[LIFECYCLE] aprovação da grade %s falhou: %v", schedule.ClassScheduleID, err)
		return fiber.NewError(fiber.StatusInternalServerError, "Falha ao aprovar a grade")
	}
	return nil
}

func (s *LifecycleService) plainTransition(ctx context.Context, schedule *model.ClassScheduleModel, target model.ScheduleStatus, note *string, actor helper.Actor) error {
	updates := map[string]interface{}{
		"class_schedule_status": target,
	}
	if target == model.StatusRejeitado {
		updates["class_schedule_approved_by"] = actor.DisplayName()
		updates["class_schedule_approver_email"] = actor.Email
		updates["class_schedule_approval_date"] = time.Now()
		updates["class_schedule_approval_note"] = note
	}

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&model.ClassScheduleModel{}).
			Where("class_schedule_id = ?", schedule.ClassScheduleID).
			Updates(updates).Error; err != nil {
			return err
		}
		return tx.Create(&model.ScheduleStatusLogModel{
			ScheduleStatusLogScheduleID:     schedule.ClassScheduleID,
			ScheduleStatusLogPreviousStatus: statusPtr(schedule.ClassScheduleStatus),
			ScheduleStatusLogNewStatus:      target,
			ScheduleStatusLogChangedBy:      actor.DisplayName(),
			ScheduleStatusLogChangerEmail:   actor.Email,
			ScheduleStatusLogNote:           note,
		}).Error
	})
	if err != nil {
		log.Printf("[LIFECYCLE] transição %s→%s da grade %s falhou: %v",
			schedule.ClassScheduleStatus, target, schedule.ClassScheduleID, err)
		return fiber.NewError(fiber.StatusInternalServerError, "Falha ao mudar o status da grade")
	}
	return nil
}

/* ===============================
   Delete
=================================*/

func (s *LifecycleService) Delete(ctx context.Context, id uuid.UUID) error {
	schedule, err := s.loadSchedule(ctx, id)
	if err != nil {
		return err
	}
	if !schedule.ClassScheduleStatus.Deletable() {
		return fiber.NewError(fiber.StatusBadRequest,
			"Só é possível excluir grades em RASCUNHO ou REJEITADO")
	}

	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("class_slot_schedule_id = ?", id).
			Delete(&model.ClassSlotModel{}).Error; err != nil {
			return err
		}
		if err := tx.Where("schedule_status_log_schedule_id = ?", id).
			Delete(&model.ScheduleStatusLogModel{}).Error; err != nil {
			return err
		}
		return tx.Where("class_schedule_id = ?", id).
			Delete(&model.ClassScheduleModel{}).Error
	})
	if err != nil {
		log.Printf("[LIFECYCLE] excluir grade %s falhou: %v", id, err)
		return fiber.NewError(fiber.StatusInternalServerError, "Falha ao excluir a grade")
	}
	return nil
}

/* ===============================
   Queries
=================================*/

func (s *LifecycleService) List(ctx context.Context, statusFilter *model.ScheduleStatus) ([]model.ClassScheduleModel, error) {
	q := s.db.WithContext(ctx).
		Preload("Slots", orderSlots).
		Order("CASE WHEN class_schedule_status = 'ATIVO' THEN 0 ELSE 1 END").
		Order("class_schedule_updated_at DESC")
	if statusFilter != nil {
		q = q.Where("class_schedule_status = ?", *statusFilter)
	}

	var schedules []model.ClassScheduleModel
	if err := q.Find(&schedules).Error; err != nil {
		log.Printf("[LIFECYCLE] listar grades falhou: %v", err)
		return nil, fiber.NewError(fiber.StatusInternalServerError, "Falha ao listar as grades")
	}
	return schedules, nil
}

func (s *LifecycleService) Get(ctx context.Context, id uuid.UUID) (*model.ClassScheduleModel, error) {
	var schedule model.ClassScheduleModel
	err := s.db.WithContext(ctx).
		Preload("Slots", orderSlots).
		Preload("StatusLog", func(db *gorm.DB) *gorm.DB {
			return db.Order("schedule_status_log_created_at ASC")
		}).
		Preload("Original").
		Preload("Versions").
		Where("class_schedule_id = ?", id).
		First(&schedule).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fiber.NewError(fiber.StatusNotFound, "Grade de aulas não encontrada")
		}
		log.Printf("[LIFECYCLE] carregar grade %s falhou: %v", id, err)
		return nil, fiber.NewError(fiber.StatusInternalServerError, "Falha ao carregar a grade")
	}

	// Vínculos de substituição (não são associações GORM diretas).
	if schedule.ClassScheduleSupersededID != nil {
		var old model.ClassScheduleModel
		if err := s.db.WithContext(ctx).
			Where("class_schedule_id = ?", *schedule.ClassScheduleSupersededID).
			First(&old).Error; err == nil {
			schedule.Superseded = &old
		}
	}
	var successor model.ClassScheduleModel
	if err := s.db.WithContext(ctx).
		Where("class_schedule_superseded_id = ?", id).
		First(&successor).Error; err == nil {
		schedule.SupersededBy = &successor
	}

	return &schedule, nil
}

// GetActive devolve a única grade ATIVA, ou 404 se nenhuma estiver no ar.
func (s *LifecycleService) GetActive(ctx context.Context) (*model.ClassScheduleModel, error) {
	var schedule model.ClassScheduleModel
	err := s.db.WithContext(ctx).
		Preload("Slots", orderSlots).
		Where("class_schedule_status = ?", model.StatusAtivo).
		First(&schedule).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fiber.NewError(fiber.StatusNotFound, "Nenhuma grade ativa no momento")
		}
		log.Printf("[LIFECYCLE] carregar grade ativa falhou: %v", err)
		return nil, fiber.NewError(fiber.StatusInternalServerError, "Falha ao carregar a grade ativa")
	}
	return &schedule, nil
}

// History devolve as grades que já estiveram no ar (ATIVO + SUBSTITUIDO),
// com apenas as entradas de log relativas a ativação/substituição.
func (s *LifecycleService) History(ctx context.Context) ([]model.ClassScheduleModel, error) {
	var schedules []model.ClassScheduleModel
	err := s.db.WithContext(ctx).
		Preload("Slots", orderSlots).
		Preload("StatusLog", func(db *gorm.DB) *gorm.DB {
			return db.Where("schedule_status_log_new_status IN ?",
				[]model.ScheduleStatus{model.StatusAtivo, model.StatusSubstituido}).
				Order("schedule_status_log_created_at ASC")
		}).
		Where("class_schedule_status IN ?",
			[]model.ScheduleStatus{model.StatusAtivo, model.StatusSubstituido}).
		Order("class_schedule_activation_date DESC").
		Find(&schedules).Error
	if err != nil {
		log.Printf("[LIFECYCLE] histórico de grades falhou: %v", err)
		return nil, fiber.NewError(fiber.StatusInternalServerError, "Falha ao carregar o histórico")
	}
	return schedules, nil
}

// DueForActivation lista as APROVADAS com ativação agendada já vencida.
// Usada pelo cron de ativação.
func (s *LifecycleService) DueForActivation(ctx context.Context, now time.Time) ([]model.ClassScheduleModel, error) {
	var schedules []model.ClassScheduleModel
	err := s.db.WithContext(ctx).
		Where("class_schedule_status = ? AND class_schedule_activation_date IS NOT NULL AND class_schedule_activation_date <= ?",
			model.StatusAprovado, now).
		Find(&schedules).Error
	return schedules, err
}

/* ===============================
   Internos
=================================*/

func (s *LifecycleService) loadSchedule(ctx context.Context, id uuid.UUID) (*model.ClassScheduleModel, error) {
	var schedule model.ClassScheduleModel
	err := s.db.WithContext(ctx).
		Where("class_schedule_id = ?", id).
		First(&schedule).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fiber.NewError(fiber.StatusNotFound, "Grade de aulas não encontrada")
		}
		log.Printf("[LIFECYCLE] carregar grade %s falhou: %v", id, err)
		return nil, fiber.NewError(fiber.StatusInternalServerError, "Falha ao carregar a grade")
	}
	return &schedule, nil
}

// notifyAsync dispara o aviso de mudança de status sem segurar a request.
func (s *LifecycleService) notifyAsync(schedule *model.ClassScheduleModel, target model.ScheduleStatus, actor helper.Actor, note *string) {
	snapshot := *schedule
	go func() {
		defer func() {
			if r := recover(); r != nil {
				log.Printf("[NOTIFY] panic no aviso de status: %v", r)
			}
		}()
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		if err := s.dispatcher.NotifyStatusChange(ctx, &snapshot, target, actor, note); err != nil {
			log.Printf("[NOTIFY] aviso de status falhou (ignorado): %v", err)
		}
	}()
}

// dispatchAsync roda uma etapa de notificação pós-commit com timeout
// próprio; qualquer erro é apenas logado.
func (s *LifecycleService) dispatchAsync(what string, fn func(ctx context.Context) error) {
	go func() {
		defer func() {
			if r := recover(); r != nil {
				log.Printf("[NOTIFY] panic em %s: %v", what, r)
			}
		}()
		ctx, cancel := context.WithTimeout(context.Background(), 60*time.Second)
		defer cancel()
		if err := fn(ctx); err != nil {
			log.Printf("[NOTIFY] %s falhou (ignorado): %v", what, err)
		}
	}()
}

func orderSlots(db *gorm.DB) *gorm.DB {
	return db.Order("class_slot_weekday ASC").Order("class_slot_start_time ASC")
}

func buildSlots(inputs []dto.ClassSlotInput) ([]model.ClassSlotModel, error) {
	slots := make([]model.ClassSlotModel, 0, len(inputs))
	for i, in := range inputs {
		name := strings.TrimSpace(in.Name)
		if name == "" {
			return nil, fiber.NewError(fiber.StatusBadRequest, fmt.Sprintf("Aula %d: nome obrigatório", i+1))
		}
		category := model.ClassCategory(strings.ToUpper(strings.TrimSpace(in.Category)))
		if !category.Valid() {
			return nil, fiber.NewError(fiber.StatusBadRequest, fmt.Sprintf("Aula %q: categoria inválida %q", name, in.Category))
		}
		if !helper.ValidWeekday(in.Weekday) {
			return nil, fiber.NewError(fiber.StatusBadRequest, fmt.Sprintf("Aula %q: dia da semana inválido %d", name, in.Weekday))
		}
		if !helper.ValidHHMM(in.StartTime) {
			return nil, fiber.NewError(fiber.StatusBadRequest, fmt.Sprintf("Aula %q: horário inválido %q (use HH:MM)", name, in.StartTime))
		}
		if in.DurationMin < minSlotDuration {
			return nil, fiber.NewError(fiber.StatusBadRequest, fmt.Sprintf("Aula %q: duração mínima é %d minutos", name, minSlotDuration))
		}
		if strings.TrimSpace(in.Room) == "" || strings.TrimSpace(in.Instructor) == "" || strings.TrimSpace(in.Intensity) == "" {
			return nil, fiber.NewError(fiber.StatusBadRequest, fmt.Sprintf("Aula %q: sala, professor e intensidade são obrigatórios", name))
		}

		cost := in.Cost
		if category == model.CategoryExpress {
			cost = nil // EXPRESS nunca tem custo
		}

		slots = append(slots, model.ClassSlotModel{
			ClassSlotName:        name,
			ClassSlotCategory:    category,
			ClassSlotWeekday:     in.Weekday,
			ClassSlotStartTime:   in.StartTime,
			ClassSlotDurationMin: in.DurationMin,
			ClassSlotRoom:        strings.TrimSpace(in.Room),
			ClassSlotInstructor:  strings.TrimSpace(in.Instructor),
			ClassSlotIntensity:   strings.TrimSpace(in.Intensity),
			ClassSlotCost:        cost,
		})
	}
	return slots, nil
}

// computeBudget soma o custo das aulas não-EXPRESS.
func computeBudget(slots []model.ClassSlotModel) *float64 {
	total := 0.0
	for _, s := range slots {
		if s.IsExpress() || s.ClassSlotCost == nil {
			continue
		}
		total += *s.ClassSlotCost
	}
	return &total
}

func strPtr(s string) *string { return &s }

func statusPtr(s model.ScheduleStatus) *model.ScheduleStatus { return &s }

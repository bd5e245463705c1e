package dto

import (
	"time"

	"github.com/google/uuid"

	"clubfit_backend/internals/features/notifications/model"
	scheduleDTO "clubfit_backend/internals/features/schedules/dto"
	scheduleModel "clubfit_backend/internals/features/schedules/model"
	scheduleService "clubfit_backend/internals/features/schedules/service"
	helper "clubfit_backend/internals/helpers"
)

/* ===============================
   Responses: registros de notificação
=================================*/

type ClassChangeResponse struct {
	ID          uuid.UUID                   `json:"id"`
	Type        scheduleModel.ChangeType    `json:"type"`
	ClassName   string                      `json:"class_name"`
	Category    scheduleModel.ClassCategory `json:"category"`
	Weekday     int                         `json:"weekday"`
	StartTime   string                      `json:"start_time"`
	DurationMin int                         `json:"duration_min"`
	Room        string                      `json:"room"`
	Instructor  string                      `json:"instructor"`
	Intensity   string                      `json:"intensity"`

	PrevDurationMin *int                         `json:"prev_duration_min,omitempty"`
	PrevRoom        *string                      `json:"prev_room,omitempty"`
	PrevInstructor  *string                      `json:"prev_instructor,omitempty"`
	PrevIntensity   *string                      `json:"prev_intensity,omitempty"`
	PrevCategory    *scheduleModel.ClassCategory `json:"prev_category,omitempty"`
}

type NotificationResponse struct {
	ID                 uuid.UUID             `json:"id"`
	PreviousScheduleID *uuid.UUID            `json:"previous_schedule_id,omitempty"`
	NewScheduleID      uuid.UUID             `json:"new_schedule_id"`
	PreviousTitle      *string               `json:"previous_title,omitempty"`
	NewTitle           string                `json:"new_title"`
	RecipientEmail     string                `json:"recipient_email"`
	SentAt             time.Time             `json:"sent_at"`
	Changes            []ClassChangeResponse `json:"changes,omitempty"`
}

func ToClassChangeResponse(m *model.ScheduleClassChangeModel) ClassChangeResponse {
	return ClassChangeResponse{
		ID:              m.ScheduleClassChangeID,
		Type:            m.ScheduleClassChangeType,
		ClassName:       m.ScheduleClassChangeClassName,
		Category:        m.ScheduleClassChangeCategory,
		Weekday:         m.ScheduleClassChangeWeekday,
		StartTime:       m.ScheduleClassChangeStartTime,
		DurationMin:     m.ScheduleClassChangeDurationMin,
		Room:            m.ScheduleClassChangeRoom,
		Instructor:      m.ScheduleClassChangeInstructor,
		Intensity:       m.ScheduleClassChangeIntensity,
		PrevDurationMin: m.ScheduleClassChangePrevDurationMin,
		PrevRoom:        m.ScheduleClassChangePrevRoom,
		PrevInstructor:  m.ScheduleClassChangePrevInstructor,
		PrevIntensity:   m.ScheduleClassChangePrevIntensity,
		PrevCategory:    m.ScheduleClassChangePrevCategory,
	}
}

func ToNotificationResponse(m *model.ScheduleNotificationModel) *NotificationResponse {
	resp := &NotificationResponse{
		ID:                 m.ScheduleNotificationID,
		PreviousScheduleID: m.ScheduleNotificationPreviousScheduleID,
		NewScheduleID:      m.ScheduleNotificationNewScheduleID,
		PreviousTitle:      m.ScheduleNotificationPreviousTitle,
		NewTitle:           m.ScheduleNotificationNewTitle,
		RecipientEmail:     m.ScheduleNotificationRecipientEmail,
		SentAt:             m.ScheduleNotificationSentAt,
		Changes:            make([]ClassChangeResponse, 0, len(m.Changes)),
	}
	for i := range m.Changes {
		resp.Changes = append(resp.Changes, ToClassChangeResponse(&m.Changes[i]))
	}
	return resp
}

func ToNotificationResponseList(models []model.ScheduleNotificationModel) []NotificationResponse {
	result := make([]NotificationResponse, 0, len(models))
	for i := range models {
		result = append(result, *ToNotificationResponse(&models[i]))
	}
	return result
}

/* ===============================
   Responses: diff agrupado por dia
=================================*/

type ModifiedClassResponse struct {
	Current       scheduleDTO.ClassSlotResponse `json:"current"`
	Previous      scheduleDTO.ClassSlotResponse `json:"previous"`
	ChangedFields []string                      `json:"changed_fields"`
}

type WeekdayChangesResponse struct {
	Weekday     int                             `json:"weekday"`
	WeekdayName string                          `json:"weekday_name"`
	Added       []scheduleDTO.ClassSlotResponse `json:"added"`
	Removed     []scheduleDTO.ClassSlotResponse `json:"removed"`
	Modified    []ModifiedClassResponse         `json:"modified"`
	HasChanges  bool                            `json:"has_changes"`
}

type ScheduleChangesResponse struct {
	PreviousScheduleID *uuid.UUID               `json:"previous_schedule_id,omitempty"`
	PreviousTitle      *string                  `json:"previous_title,omitempty"`
	NewScheduleID      uuid.UUID                `json:"new_schedule_id"`
	NewTitle           string                   `json:"new_title"`
	Days               []WeekdayChangesResponse `json:"days"` // sempre 7 entradas (0..6)
	HasChanges         bool                     `json:"has_changes"`
}

// GroupChangesByWeekday espalha o diff nos sete dias da semana para o
// consumo compacto do painel.
func GroupChangesByWeekday(changes []scheduleService.ClassChange) []WeekdayChangesResponse {
	days := make([]WeekdayChangesResponse, 7)
	for wd := 0; wd < 7; wd++ {
		days[wd] = WeekdayChangesResponse{
			Weekday:     wd,
			WeekdayName: helper.WeekdayName(wd),
			Added:       []scheduleDTO.ClassSlotResponse{},
			Removed:     []scheduleDTO.ClassSlotResponse{},
			Modified:    []ModifiedClassResponse{},
		}
	}

	for _, ch := range changes {
		wd := ch.Slot.ClassSlotWeekday
		if wd < 0 || wd > 6 {
			continue
		}
		switch ch.Type {
		case scheduleModel.ChangeAdded:
			days[wd].Added = append(days[wd].Added, scheduleDTO.ToClassSlotResponse(&ch.Slot))
		case scheduleModel.ChangeRemoved:
			days[wd].Removed = append(days[wd].Removed, scheduleDTO.ToClassSlotResponse(&ch.Slot))
		case scheduleModel.ChangeModified:
			days[wd].Modified = append(days[wd].Modified, ModifiedClassResponse{
				Current:       scheduleDTO.ToClassSlotResponse(&ch.Slot),
				Previous:      scheduleDTO.ToClassSlotResponse(ch.Prev),
				ChangedFields: ch.ChangedFields,
			})
		}
		days[wd].HasChanges = true
	}
	return days
}

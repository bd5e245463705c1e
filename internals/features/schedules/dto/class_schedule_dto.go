package dto

import (
	"time"

	"github.com/google/uuid"

	"clubfit_backend/internals/features/schedules/model"
)

/* ===============================
   Requests
=================================*/

// 🔹 Aula enviada pelo painel (create/update substituem a lista inteira)
type ClassSlotInput struct {
	Name        string   `json:"name" validate:"required"`
	Category    string   `json:"category" validate:"required"`
	Weekday     int      `json:"weekday" validate:"min=0,max=6"`
	StartTime   string   `json:"start_time" validate:"required"`
	DurationMin int      `json:"duration_min" validate:"required"`
	Room        string   `json:"room" validate:"required"`
	Instructor  string   `json:"instructor" validate:"required"`
	Intensity   string   `json:"intensity" validate:"required"`
	Cost        *float64 `json:"cost"`
}

// 🔹 Create e update compartilham o mesmo corpo
type ScheduleRequest struct {
	Title       string           `json:"title" validate:"required"`
	Description *string          `json:"description"`
	Budget      *float64         `json:"budget"`
	Slots       []ClassSlotInput `json:"slots" validate:"dive"`
}

type DuplicateRequest struct {
	NewTitle *string `json:"new_title"`
}

type ChangeStatusRequest struct {
	Status         string  `json:"status" validate:"required"`
	Note           *string `json:"note"`
	ActivationDate *string `json:"activation_date"` // RFC3339 ou YYYY-MM-DD
}

/* ===============================
   Responses
=================================*/

type ClassSlotResponse struct {
	ID          uuid.UUID           `json:"id"`
	Name        string              `json:"name"`
	Category    model.ClassCategory `json:"category"`
	Weekday     int                 `json:"weekday"`
	StartTime   string              `json:"start_time"`
	DurationMin int                 `json:"duration_min"`
	Room        string              `json:"room"`
	Instructor  string              `json:"instructor"`
	Intensity   string              `json:"intensity"`
	Cost        *float64            `json:"cost,omitempty"`
}

type StatusLogResponse struct {
	ID             uuid.UUID             `json:"id"`
	PreviousStatus *model.ScheduleStatus `json:"previous_status,omitempty"`
	NewStatus      model.ScheduleStatus  `json:"new_status"`
	ChangedBy      string                `json:"changed_by"`
	ChangerEmail   string                `json:"changer_email"`
	Note           *string               `json:"note,omitempty"`
	CreatedAt      string                `json:"created_at"`
}

type ScheduleSummaryResponse struct {
	ID     uuid.UUID            `json:"id"`
	Title  string               `json:"title"`
	Status model.ScheduleStatus `json:"status"`
}

type ScheduleResponse struct {
	ID          uuid.UUID            `json:"id"`
	Title       string               `json:"title"`
	Description *string              `json:"description,omitempty"`
	Budget      *float64             `json:"budget,omitempty"`
	Status      model.ScheduleStatus `json:"status"`

	IsOriginal bool       `json:"is_original"`
	OriginalID *uuid.UUID `json:"original_id,omitempty"`

	CreatedBy    string  `json:"created_by"`
	CreatorEmail string  `json:"creator_email"`
	UpdatedBy    *string `json:"updated_by,omitempty"`

	ApprovedBy    *string    `json:"approved_by,omitempty"`
	ApproverEmail *string    `json:"approver_email,omitempty"`
	ApprovalDate  *time.Time `json:"approval_date,omitempty"`
	ApprovalNote  *string    `json:"approval_note,omitempty"`

	ActivationDate   *time.Time `json:"activation_date,omitempty"`
	DeactivationDate *time.Time `json:"deactivation_date,omitempty"`
	SupersededID     *uuid.UUID `json:"superseded_id,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	Slots        []ClassSlotResponse       `json:"slots"`
	StatusLog    []StatusLogResponse       `json:"status_log,omitempty"`
	Original     *ScheduleSummaryResponse  `json:"original,omitempty"`
	Versions     []ScheduleSummaryResponse `json:"versions,omitempty"`
	Superseded   *ScheduleSummaryResponse  `json:"superseded,omitempty"`
	SupersededBy *ScheduleSummaryResponse  `json:"superseded_by,omitempty"`
}

/* ===============================
   Converters
=================================*/

func ToClassSlotResponse(m *model.ClassSlotModel) ClassSlotResponse {
	return ClassSlotResponse{
		ID:          m.ClassSlotID,
		Name:        m.ClassSlotName,
		Category:    m.ClassSlotCategory,
		Weekday:     m.ClassSlotWeekday,
		StartTime:   m.ClassSlotStartTime,
		DurationMin: m.ClassSlotDurationMin,
		Room:        m.ClassSlotRoom,
		Instructor:  m.ClassSlotInstructor,
		Intensity:   m.ClassSlotIntensity,
		Cost:        m.ClassSlotCost,
	}
}

func ToStatusLogResponse(m *model.ScheduleStatusLogModel) StatusLogResponse {
	return StatusLogResponse{
		ID:             m.ScheduleStatusLogID,
		PreviousStatus: m.ScheduleStatusLogPreviousStatus,
		NewStatus:      m.ScheduleStatusLogNewStatus,
		ChangedBy:      m.ScheduleStatusLogChangedBy,
		ChangerEmail:   m.ScheduleStatusLogChangerEmail,
		Note:           m.ScheduleStatusLogNote,
		CreatedAt:      m.ScheduleStatusLogCreatedAt.Format(time.RFC3339),
	}
}

func toSummary(m *model.ClassScheduleModel) *ScheduleSummaryResponse {
	if m == nil {
		return nil
	}
	return &ScheduleSummaryResponse{
		ID:     m.ClassScheduleID,
		Title:  m.ClassScheduleTitle,
		Status: m.ClassScheduleStatus,
	}
}

func ToScheduleResponse(m *model.ClassScheduleModel) *ScheduleResponse {
	resp := &ScheduleResponse{
		ID:               m.ClassScheduleID,
		Title:            m.ClassScheduleTitle,
		Description:      m.ClassScheduleDescription,
		Budget:           m.ClassScheduleBudget,
		Status:           m.ClassScheduleStatus,
		IsOriginal:       m.ClassScheduleIsOriginal,
		OriginalID:       m.ClassScheduleOriginalID,
		CreatedBy:        m.ClassScheduleCreatedBy,
		CreatorEmail:     m.ClassScheduleCreatorEmail,
		UpdatedBy:        m.ClassScheduleUpdatedBy,
		ApprovedBy:       m.ClassScheduleApprovedBy,
		ApproverEmail:    m.ClassScheduleApproverEmail,
		ApprovalDate:     m.ClassScheduleApprovalDate,
		ApprovalNote:     m.ClassScheduleApprovalNote,
		ActivationDate:   m.ClassScheduleActivationDate,
		DeactivationDate: m.ClassScheduleDeactivationDate,
		SupersededID:     m.ClassScheduleSupersededID,
		CreatedAt:        m.ClassScheduleCreatedAt,
		UpdatedAt:        m.ClassScheduleUpdatedAt,
		Slots:            make([]ClassSlotResponse, 0, len(m.Slots)),
		Original:         toSummary(m.Original),
		Superseded:       toSummary(m.Superseded),
		SupersededBy:     toSummary(m.SupersededBy),
	}
	for i := range m.Slots {
		resp.Slots = append(resp.Slots, ToClassSlotResponse(&m.Slots[i]))
	}
	for i := range m.StatusLog {
		resp.StatusLog = append(resp.StatusLog, ToStatusLogResponse(&m.StatusLog[i]))
	}
	for i := range m.Versions {
		resp.Versions = append(resp.Versions, *toSummary(&m.Versions[i]))
	}
	return resp
}

func ToScheduleResponseList(models []model.ClassScheduleModel) []ScheduleResponse {
	result := make([]ScheduleResponse, 0, len(models))
	for i := range models {
		result = append(result, *ToScheduleResponse(&models[i]))
	}
	return result
}

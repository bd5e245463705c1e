package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

/* =========================
   Model: ClassScheduleModel
========================= */

type ClassScheduleModel struct {
	// PK
	ClassScheduleID uuid.UUID `gorm:"type:uuid;primaryKey;column:class_schedule_id" json:"class_schedule_id"`

	ClassScheduleTitle       string  `gorm:"column:class_schedule_title;type:varchar(255);not null" json:"class_schedule_title"`
	ClassScheduleDescription *string `gorm:"column:class_schedule_description;type:text" json:"class_schedule_description,omitempty"`

	// Orçamento mensal: soma dos custos das aulas não-EXPRESS quando não informado.
	ClassScheduleBudget *float64 `gorm:"column:class_schedule_budget;type:numeric(12,2)" json:"class_schedule_budget,omitempty"`

	ClassScheduleStatus ScheduleStatus `gorm:"column:class_schedule_status;type:varchar(20);not null;default:'RASCUNHO';index:idx_class_schedules_status" json:"class_schedule_status"`

	// Versionamento: duplicatas apontam para a grade original.
	ClassScheduleIsOriginal bool       `gorm:"column:class_schedule_is_original;not null;default:true" json:"class_schedule_is_original"`
	ClassScheduleOriginalID *uuid.UUID `gorm:"column:class_schedule_original_id;type:uuid;index" json:"class_schedule_original_id,omitempty"`

	// Autoria
	ClassScheduleCreatedBy    string  `gorm:"column:class_schedule_created_by;type:varchar(255);not null" json:"class_schedule_created_by"`
	ClassScheduleCreatorEmail string  `gorm:"column:class_schedule_creator_email;type:varchar(255);not null" json:"class_schedule_creator_email"`
	ClassScheduleUpdatedBy    *string `gorm:"column:class_schedule_updated_by;type:varchar(255)" json:"class_schedule_updated_by,omitempty"`

	// Aprovação
	ClassScheduleApprovedBy    *string    `gorm:"column:class_schedule_approved_by;type:varchar(255)" json:"class_schedule_approved_by,omitempty"`
	ClassScheduleApproverEmail *string    `gorm:"column:class_schedule_approver_email;type:varchar(255)" json:"class_schedule_approver_email,omitempty"`
	ClassScheduleApprovalDate  *time.Time `gorm:"column:class_schedule_approval_date;type:timestamptz" json:"class_schedule_approval_date,omitempty"`
	ClassScheduleApprovalNote  *string    `gorm:"column:class_schedule_approval_note;type:text" json:"class_schedule_approval_note,omitempty"`

	// Ativação: activation_date preenchida num APROVADO = ativação agendada.
	ClassScheduleActivationDate   *time.Time `gorm:"column:class_schedule_activation_date;type:timestamptz" json:"class_schedule_activation_date,omitempty"`
	ClassScheduleDeactivationDate *time.Time `gorm:"column:class_schedule_deactivation_date;type:timestamptz" json:"class_schedule_deactivation_date,omitempty"`

	// Quem esta grade substituiu ao ser ativada.
	ClassScheduleSupersededID *uuid.UUID `gorm:"column:class_schedule_superseded_id;type:uuid" json:"class_schedule_superseded_id,omitempty"`

	// Timestamps
	ClassScheduleCreatedAt time.Time `gorm:"column:class_schedule_created_at;autoCreateTime" json:"class_schedule_created_at"`
	ClassScheduleUpdatedAt time.Time `gorm:"column:class_schedule_updated_at;autoUpdateTime" json:"class_schedule_updated_at"`

	// Relações
	Slots     []ClassSlotModel         `gorm:"foreignKey:ClassSlotScheduleID;references:ClassScheduleID;constraint:OnDelete:CASCADE" json:"slots,omitempty"`
	StatusLog []ScheduleStatusLogModel `gorm:"foreignKey:ScheduleStatusLogScheduleID;references:ClassScheduleID;constraint:OnDelete:CASCADE" json:"status_log,omitempty"`
	Original  *ClassScheduleModel      `gorm:"foreignKey:ClassScheduleOriginalID;references:ClassScheduleID" json:"original,omitempty"`
	Versions  []ClassScheduleModel     `gorm:"foreignKey:ClassScheduleOriginalID;references:ClassScheduleID" json:"versions,omitempty"`

	// Preenchidos pelo service no Get (não são colunas).
	Superseded   *ClassScheduleModel `gorm:"-" json:"superseded,omitempty"`    // grade que esta substituiu
	SupersededBy *ClassScheduleModel `gorm:"-" json:"superseded_by,omitempty"` // grade que substituiu esta
}

func (ClassScheduleModel) TableName() string { return "class_schedules" }

func (cs *ClassScheduleModel) BeforeCreate(tx *gorm.DB) error {
	if cs.ClassScheduleID == uuid.Nil {
		cs.ClassScheduleID = uuid.New()
	}
	return nil
}

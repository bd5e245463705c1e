package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

/* =========================
   Model: ScheduleStatusLogModel
========================= */

// Trilha de auditoria append-only: uma linha por transição de status.
// Nunca é alterada nem apagada (exceto no cascade do delete da grade).
type ScheduleStatusLogModel struct {
	ScheduleStatusLogID         uuid.UUID `gorm:"type:uuid;primaryKey;column:schedule_status_log_id" json:"schedule_status_log_id"`
	ScheduleStatusLogScheduleID uuid.UUID `gorm:"column:schedule_status_log_schedule_id;type:uuid;not null;index:idx_schedule_status_logs_schedule_id" json:"schedule_status_log_schedule_id"`

	ScheduleStatusLogPreviousStatus *ScheduleStatus `gorm:"column:schedule_status_log_previous_status;type:varchar(20)" json:"schedule_status_log_previous_status,omitempty"`
	ScheduleStatusLogNewStatus      ScheduleStatus  `gorm:"column:schedule_status_log_new_status;type:varchar(20);not null" json:"schedule_status_log_new_status"`

	ScheduleStatusLogChangedBy    string  `gorm:"column:schedule_status_log_changed_by;type:varchar(255);not null" json:"schedule_status_log_changed_by"`
	ScheduleStatusLogChangerEmail string  `gorm:"column:schedule_status_log_changer_email;type:varchar(255);not null" json:"schedule_status_log_changer_email"`
	ScheduleStatusLogNote         *string `gorm:"column:schedule_status_log_note;type:text" json:"schedule_status_log_note,omitempty"`

	ScheduleStatusLogCreatedAt time.Time `gorm:"column:schedule_status_log_created_at;autoCreateTime" json:"schedule_status_log_created_at"`
}

func (ScheduleStatusLogModel) TableName() string { return "schedule_status_logs" }

func (l *ScheduleStatusLogModel) BeforeCreate(tx *gorm.DB) error {
	if l.ScheduleStatusLogID == uuid.Nil {
		l.ScheduleStatusLogID = uuid.New()
	}
	return nil
}

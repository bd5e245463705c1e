package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	scheduleModel "clubfit_backend/internals/features/schedules/model"
)

/* =========================
   Model: ScheduleNotificationModel
========================= */

// Registro durável de cada e-mail de mudança enviado (ou simulado).
// Também serve de baseline de comparação quando a grade anterior
// já não existe no banco.
type ScheduleNotificationModel struct {
	ScheduleNotificationID uuid.UUID `gorm:"type:uuid;primaryKey;column:schedule_notification_id" json:"schedule_notification_id"`

	ScheduleNotificationPreviousScheduleID *uuid.UUID `gorm:"column:schedule_notification_previous_schedule_id;type:uuid" json:"schedule_notification_previous_schedule_id,omitempty"`
	ScheduleNotificationNewScheduleID      uuid.UUID  `gorm:"column:schedule_notification_new_schedule_id;type:uuid;not null;index" json:"schedule_notification_new_schedule_id"`

	ScheduleNotificationPreviousTitle *string `gorm:"column:schedule_notification_previous_title;type:varchar(255)" json:"schedule_notification_previous_title,omitempty"`
	ScheduleNotificationNewTitle      string  `gorm:"column:schedule_notification_new_title;type:varchar(255);not null" json:"schedule_notification_new_title"`

	ScheduleNotificationRecipientEmail string `gorm:"column:schedule_notification_recipient_email;type:varchar(255);not null" json:"schedule_notification_recipient_email"`
	ScheduleNotificationEmailHTML      string `gorm:"column:schedule_notification_email_html;type:text" json:"schedule_notification_email_html"`

	// Snapshot JSONB do diff calculado, para inspeção e reprocessamento.
	ScheduleNotificationPayload datatypes.JSON `gorm:"column:schedule_notification_payload;type:jsonb" json:"schedule_notification_payload,omitempty"`

	ScheduleNotificationSentAt time.Time `gorm:"column:schedule_notification_sent_at;autoCreateTime" json:"schedule_notification_sent_at"`

	Changes []ScheduleClassChangeModel `gorm:"foreignKey:ScheduleClassChangeNotificationID;references:ScheduleNotificationID;constraint:OnDelete:CASCADE" json:"changes,omitempty"`
}

func (ScheduleNotificationModel) TableName() string { return "schedule_notifications" }

func (n *ScheduleNotificationModel) BeforeCreate(tx *gorm.DB) error {
	if n.ScheduleNotificationID == uuid.Nil {
		n.ScheduleNotificationID = uuid.New()
	}
	return nil
}

/* =========================
   Model: ScheduleClassChangeModel
========================= */

type ScheduleClassChangeModel struct {
	ScheduleClassChangeID             uuid.UUID `gorm:"type:uuid;primaryKey;column:schedule_class_change_id" json:"schedule_class_change_id"`
	ScheduleClassChangeNotificationID uuid.UUID `gorm:"column:schedule_class_change_notification_id;type:uuid;not null;index" json:"schedule_class_change_notification_id"`

	ScheduleClassChangeType scheduleModel.ChangeType `gorm:"column:schedule_class_change_type;type:varchar(10);not null" json:"schedule_class_change_type"`

	// Estado atual da aula (para REMOVED, o estado que saiu da grade).
	ScheduleClassChangeClassName   string                      `gorm:"column:schedule_class_change_class_name;type:varchar(255);not null" json:"schedule_class_change_class_name"`
	ScheduleClassChangeCategory    scheduleModel.ClassCategory `gorm:"column:schedule_class_change_category;type:varchar(10);not null" json:"schedule_class_change_category"`
	ScheduleClassChangeWeekday     int                         `gorm:"column:schedule_class_change_weekday;not null" json:"schedule_class_change_weekday"`
	ScheduleClassChangeStartTime   string                      `gorm:"column:schedule_class_change_start_time;type:varchar(5);not null" json:"schedule_class_change_start_time"`
	ScheduleClassChangeDurationMin int                         `gorm:"column:schedule_class_change_duration_min;not null" json:"schedule_class_change_duration_min"`
	ScheduleClassChangeRoom        string                      `gorm:"column:schedule_class_change_room;type:varchar(100)" json:"schedule_class_change_room"`
	ScheduleClassChangeInstructor  string                      `gorm:"column:schedule_class_change_instructor;type:varchar(255)" json:"schedule_class_change_instructor"`
	ScheduleClassChangeIntensity   string                      `gorm:"column:schedule_class_change_intensity;type:varchar(100)" json:"schedule_class_change_intensity"`

	// Campos prev_* preenchidos apenas para MODIFIED.
	ScheduleClassChangePrevDurationMin *int                         `gorm:"column:schedule_class_change_prev_duration_min" json:"schedule_class_change_prev_duration_min,omitempty"`
	ScheduleClassChangePrevRoom        *string                      `gorm:"column:schedule_class_change_prev_room;type:varchar(100)" json:"schedule_class_change_prev_room,omitempty"`
	ScheduleClassChangePrevInstructor  *string                      `gorm:"column:schedule_class_change_prev_instructor;type:varchar(255)" json:"schedule_class_change_prev_instructor,omitempty"`
	ScheduleClassChangePrevIntensity   *string                      `gorm:"column:schedule_class_change_prev_intensity;type:varchar(100)" json:"schedule_class_change_prev_intensity,omitempty"`
	ScheduleClassChangePrevCategory    *scheduleModel.ClassCategory `gorm:"column:schedule_class_change_prev_category;type:varchar(10)" json:"schedule_class_change_prev_category,omitempty"`
}

func (ScheduleClassChangeModel) TableName() string { return "schedule_class_changes" }

func (cc *ScheduleClassChangeModel) BeforeCreate(tx *gorm.DB) error {
	if cc.ScheduleClassChangeID == uuid.Nil {
		cc.ScheduleClassChangeID = uuid.New()
	}
	return nil
}

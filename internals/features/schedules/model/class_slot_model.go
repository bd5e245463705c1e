package model

import (
	"github.com/google/uuid"
	"gorm.io/gorm"
)

/* =========================
   Model: ClassSlotModel
========================= */

// ClassSlotModel é uma aula dentro da grade. As aulas são substituídas
// em bloco (delete + recreate) na edição da grade, nunca alteradas
// individualmente.
type ClassSlotModel struct {
	ClassSlotID         uuid.UUID `gorm:"type:uuid;primaryKey;column:class_slot_id" json:"class_slot_id"`
	ClassSlotScheduleID uuid.UUID `gorm:"column:class_slot_schedule_id;type:uuid;not null;index:idx_class_slots_schedule_id" json:"class_slot_schedule_id"`

	ClassSlotName     string        `gorm:"column:class_slot_name;type:varchar(255);not null" json:"class_slot_name"`
	ClassSlotCategory ClassCategory `gorm:"column:class_slot_category;type:varchar(10);not null" json:"class_slot_category"`

	// 0=domingo .. 6=sábado
	ClassSlotWeekday     int    `gorm:"column:class_slot_weekday;not null" json:"class_slot_weekday"`
	ClassSlotStartTime   string `gorm:"column:class_slot_start_time;type:varchar(5);not null" json:"class_slot_start_time"` // "HH:MM"
	ClassSlotDurationMin int    `gorm:"column:class_slot_duration_min;not null" json:"class_slot_duration_min"`

	ClassSlotRoom       string `gorm:"column:class_slot_room;type:varchar(100);not null" json:"class_slot_room"`
	ClassSlotInstructor string `gorm:"column:class_slot_instructor;type:varchar(255);not null" json:"class_slot_instructor"`
	ClassSlotIntensity  string `gorm:"column:class_slot_intensity;type:varchar(100);not null" json:"class_slot_intensity"`

	// Sempre NULL para EXPRESS.
	ClassSlotCost *float64 `gorm:"column:class_slot_cost;type:numeric(12,2)" json:"class_slot_cost,omitempty"`
}

func (ClassSlotModel) TableName() string { return "class_slots" }

func (s *ClassSlotModel) BeforeCreate(tx *gorm.DB) error {
	if s.ClassSlotID == uuid.Nil {
		s.ClassSlotID = uuid.New()
	}
	return nil
}

// IsExpress evita espalhar comparação de enum pelos services.
func (s ClassSlotModel) IsExpress() bool {
	return s.ClassSlotCategory == CategoryExpress
}

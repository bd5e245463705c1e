package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

/* =========================
   Model: UserModel
========================= */

// UserModel é a projeção local dos usuários do provedor de identidade.
// Usada apenas para o fan-out de notificações (admin/gerente); criação
// e autenticação acontecem no provedor externo.
type UserModel struct {
	UserID    uuid.UUID `gorm:"type:uuid;primaryKey;column:user_id" json:"user_id"`
	UserName  string    `gorm:"column:user_name;type:varchar(255);not null" json:"user_name"`
	UserEmail string    `gorm:"column:user_email;type:varchar(255);not null;uniqueIndex" json:"user_email"`
	UserRole  string    `gorm:"column:user_role;type:varchar(20);not null;default:'user';index" json:"user_role"`

	UserCreatedAt time.Time `gorm:"column:user_created_at;autoCreateTime" json:"user_created_at"`
	UserUpdatedAt time.Time `gorm:"column:user_updated_at;autoUpdateTime" json:"user_updated_at"`
}

func (UserModel) TableName() string { return "users" }

func (u *UserModel) BeforeCreate(tx *gorm.DB) error {
	if u.UserID == uuid.Nil {
		u.UserID = uuid.New()
	}
	return nil
}

package service

import (
	"context"

	"gorm.io/gorm"

	"clubfit_backend/internals/constants"
	"clubfit_backend/internals/features/users/model"
)

// Directory lista os destinatários administrativos para o fan-out de
// notificações de mudança de status.
type Directory interface {
	ListNotifiables(ctx context.Context) ([]model.UserModel, error)
}

type gormDirectory struct {
	db *gorm.DB
}

func NewDirectory(db *gorm.DB) Directory {
	return &gormDirectory{db: db}
}

func (d *gormDirectory) ListNotifiables(ctx context.Context) ([]model.UserModel, error) {
	var users []model.UserModel
	err := d.db.WithContext(ctx).
		Where("user_role IN ?", constants.ManagerAndAbove).
		Order("user_name ASC").
		Find(&users).Error
	return users, err
}

package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/Rajyalaxmi29/incamp-dept-hub/internal/model"
)

type alertRepo struct {
	db *gorm.DB
}

// NewAlertRepo 创建 AlertRepository 实例
func NewAlertRepo(db *gorm.DB) AlertRepository {
	return &alertRepo{db: db}
}

func (r *alertRepo) Create(ctx context.Context, alert *model.Alert) error {
	return translateError(r.db.WithContext(ctx).Create(alert).Error)
}

func (r *alertRepo) List(ctx context.Context) ([]model.Alert, error) {
	var list []model.Alert
	err := r.db.WithContext(ctx).
		Order("raised_at DESC").
		Find(&list).Error
	return list, err
}

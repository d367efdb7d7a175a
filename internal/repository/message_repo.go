package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/Rajyalaxmi29/incamp-dept-hub/internal/model"
)

type messageRepo struct {
	db *gorm.DB
}

// NewMessageRepo 创建 MessageRepository 实例
func NewMessageRepo(db *gorm.DB) MessageRepository {
	return &messageRepo{db: db}
}

func (r *messageRepo) Create(ctx context.Context, msg *model.Message) error {
	return translateError(r.db.WithContext(ctx).Create(msg).Error)
}

func (r *messageRepo) List(ctx context.Context) ([]model.Message, error) {
	var list []model.Message
	err := r.db.WithContext(ctx).
		Order("sent_at ASC").
		Find(&list).Error
	return list, err
}

func (r *messageRepo) ListByPS(ctx context.Context, psID string) ([]model.Message, error) {
	var list []model.Message
	err := r.db.WithContext(ctx).
		Where("ps_id = ?", psID).
		Order("sent_at ASC").
		Find(&list).Error
	return list, err
}

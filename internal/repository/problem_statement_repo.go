package repository

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"gorm.io/gorm"

	"github.com/Rajyalaxmi29/incamp-dept-hub/internal/model"
	pkgerrors "github.com/Rajyalaxmi29/incamp-dept-hub/pkg/errors"
)

type problemStatementRepo struct {
	db *gorm.DB
}

// NewProblemStatementRepo 创建 ProblemStatementRepository 实例
func NewProblemStatementRepo(db *gorm.DB) ProblemStatementRepository {
	return &problemStatementRepo{db: db}
}

func (r *problemStatementRepo) Create(ctx context.Context, ps *model.ProblemStatement) error {
	return translateError(r.db.WithContext(ctx).Create(ps).Error)
}

func (r *problemStatementRepo) GetByID(ctx context.Context, id string) (*model.ProblemStatement, error) {
	var ps model.ProblemStatement
	err := r.db.WithContext(ctx).
		Where("ps_id = ?", id).
		First(&ps).Error
	if err != nil {
		return nil, translateError(err)
	}
	return &ps, nil
}

func (r *problemStatementRepo) List(ctx context.Context) ([]model.ProblemStatement, error) {
	var list []model.ProblemStatement
	err := r.db.WithContext(ctx).
		Order("last_updated DESC").
		Order("ps_id ASC").
		Find(&list).Error
	return list, err
}

func (r *problemStatementRepo) Count(ctx context.Context) (int64, error) {
	var n int64
	err := r.db.WithContext(ctx).Model(&model.ProblemStatement{}).Count(&n).Error
	return n, err
}

func (r *problemStatementRepo) Update(ctx context.Context, ps *model.ProblemStatement, expected model.Status) error {
	res := r.db.WithContext(ctx).
		Model(&model.ProblemStatement{}).
		Where("ps_id = ? AND status = ?", ps.PSID, expected).
		Updates(map[string]interface{}{
			"title":         ps.Title,
			"category":      ps.Category,
			"theme":         ps.Theme,
			"description":   ps.Description,
			"faculty_owner": ps.FacultyOwner,
			"last_updated":  ps.LastUpdated,
		})
	return r.checkAffected(ctx, ps.PSID, res)
}

func (r *problemStatementRepo) DeleteDraft(ctx context.Context, id string) error {
	res := r.db.WithContext(ctx).
		Where("ps_id = ? AND status = ?", id, model.StatusDraft).
		Delete(&model.ProblemStatement{})
	return r.checkAffected(ctx, id, res)
}

func (r *problemStatementRepo) Transition(ctx context.Context, t model.StatusTransition) error {
	return r.transition(ctx, r.db, t)
}

func (r *problemStatementRepo) TransitionBatch(ctx context.Context, ts []model.StatusTransition) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for _, t := range ts {
			if err := r.transition(ctx, tx, t); err != nil {
				return err
			}
		}
		return nil
	})
}

func (r *problemStatementRepo) TransitionWithMessage(ctx context.Context, t model.StatusTransition, msg *model.Message) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := r.transition(ctx, tx, t); err != nil {
			return err
		}
		return translateError(tx.WithContext(ctx).Create(msg).Error)
	})
}

func (r *problemStatementRepo) transition(ctx context.Context, db *gorm.DB, t model.StatusTransition) error {
	updates := map[string]interface{}{
		"status":       t.To,
		"last_updated": t.On,
	}
	if t.AssignedSPOC != "" {
		updates["assigned_spoc"] = t.AssignedSPOC
	}

	res := db.WithContext(ctx).
		Model(&model.ProblemStatement{}).
		Where("ps_id = ? AND status = ?", t.PSID, t.From).
		Updates(updates)
	return r.checkAffected(ctx, t.PSID, res)
}

// checkAffected 区分「记录不存在」与「状态已变更」
func (r *problemStatementRepo) checkAffected(ctx context.Context, id string, res *gorm.DB) error {
	if res.Error != nil {
		return translateError(res.Error)
	}
	if res.RowsAffected == 1 {
		return nil
	}

	var n int64
	if err := r.db.WithContext(ctx).Model(&model.ProblemStatement{}).Where("ps_id = ?", id).Count(&n).Error; err != nil {
		return err
	}
	if n == 0 {
		return pkgerrors.ErrRecordNotFound
	}
	return pkgerrors.ErrStatusConflict
}

func (r *problemStatementRepo) NextID(ctx context.Context, year int) (string, error) {
	prefix := fmt.Sprintf("PS-%d-", year)

	var ids []string
	err := r.db.WithContext(ctx).
		Model(&model.ProblemStatement{}).
		Where("ps_id LIKE ?", prefix+"%").
		Pluck("ps_id", &ids).Error
	if err != nil {
		return "", err
	}
	return nextSequenceID(prefix, ids), nil
}

// nextSequenceID 取同前缀最大序号 +1，序号至少三位
func nextSequenceID(prefix string, ids []string) string {
	max := 0
	for _, id := range ids {
		n, err := strconv.Atoi(strings.TrimPrefix(id, prefix))
		if err == nil && n > max {
			max = n
		}
	}
	return fmt.Sprintf("%s%03d", prefix, max+1)
}

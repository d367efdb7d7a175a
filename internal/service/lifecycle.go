package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/Rajyalaxmi29/incamp-dept-hub/internal/model"
	"github.com/Rajyalaxmi29/incamp-dept-hub/internal/repository"
	pkgerrors "github.com/Rajyalaxmi29/incamp-dept-hub/pkg/errors"
	"github.com/Rajyalaxmi29/incamp-dept-hub/pkg/metrics"
)

// planTransition 按迁移表计算 event 作用后的状态，生成比较交换指令
func planTransition(ps *model.ProblemStatement, event model.Event, on time.Time) (model.StatusTransition, error) {
	to, ok := ps.Status.Next(event)
	if !ok {
		return model.StatusTransition{}, fmt.Errorf("%w: %s 状态不支持 %s", ErrInvalidTransition, ps.Status, event)
	}
	if on.Before(ps.LastUpdated) {
		on = ps.LastUpdated
	}
	return model.StatusTransition{PSID: ps.PSID, From: ps.Status, To: to, On: on}, nil
}

// applyTransition 执行单条状态迁移
func applyTransition(ctx context.Context, repo *repository.Repository, t model.StatusTransition) error {
	if err := repo.ProblemStatement.Transition(ctx, t); err != nil {
		return translateTransitionError(err)
	}
	metrics.RecordTransition(string(t.From), string(t.To))
	return nil
}

func translateTransitionError(err error) error {
	if errors.Is(err, pkgerrors.ErrRecordNotFound) {
		return ErrProblemStatementNotFound
	}
	return err
}

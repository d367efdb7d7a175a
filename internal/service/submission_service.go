package service

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"go.uber.org/zap"

	"github.com/Rajyalaxmi29/incamp-dept-hub/config"
	"github.com/Rajyalaxmi29/incamp-dept-hub/internal/dto"
	"github.com/Rajyalaxmi29/incamp-dept-hub/internal/model"
	"github.com/Rajyalaxmi29/incamp-dept-hub/internal/repository"
	"github.com/Rajyalaxmi29/incamp-dept-hub/pkg/metrics"
)

var ErrNothingToSubmit = errors.New("没有可提交的问题陈述")

// maxAttachmentSize 单个支撑文档上限 10MB
const maxAttachmentSize = 10 << 20

var allowedAttachmentExt = map[string]bool{
	".pdf":  true,
	".doc":  true,
	".docx": true,
	".xlsx": true,
}

// SubmissionService 批量提交业务接口
type SubmissionService interface {
	// Readiness 返回可提交集合，集合非空时允许提交
	Readiness(ctx context.Context) (*dto.ReadinessResponse, error)
	// Submit 将可提交集合整体迁移到 submitted，任一失败则全部不生效
	Submit(ctx context.Context, userID string, req *dto.SubmitRequest) (*dto.SubmitResponse, error)
}

type submissionService struct {
	portal *config.PortalConfig
	repo   *repository.Repository
	cal    *calendar
	logger *zap.Logger
}

// NewSubmissionService 创建 SubmissionService 实例
func NewSubmissionService(portal *config.PortalConfig, repo *repository.Repository, cal *calendar, logger *zap.Logger) SubmissionService {
	return &submissionService{portal: portal, repo: repo, cal: cal, logger: logger}
}

func (s *submissionService) Readiness(ctx context.Context) (*dto.ReadinessResponse, error) {
	list, err := s.repo.ProblemStatement.List(ctx)
	if err != nil {
		s.logger.Error("查询问题陈述列表失败", zap.Error(err))
		return nil, err
	}

	ready := ReadySet(list)
	return &dto.ReadinessResponse{
		Ready:             toProblemStatementResponses(ready),
		Count:             len(ready),
		Enabled:           len(ready) > 0,
		DeadlineDate:      s.cal.DeadlineString(),
		DaysUntilDeadline: s.cal.DaysUntilDeadline(),
	}, nil
}

func (s *submissionService) Submit(ctx context.Context, userID string, req *dto.SubmitRequest) (*dto.SubmitResponse, error) {
	if err := validateAttachments(req.Attachments); err != nil {
		return nil, err
	}

	list, err := s.repo.ProblemStatement.List(ctx)
	if err != nil {
		s.logger.Error("查询问题陈述列表失败", zap.Error(err))
		return nil, err
	}
	ready := ReadySet(list)
	if len(ready) == 0 {
		return nil, ErrNothingToSubmit
	}

	spoc, err := s.resolveSPOC(ctx, userID)
	if err != nil {
		return nil, err
	}

	// 1. 逐条计算迁移，draft 需通过必填字段守卫
	now := s.cal.Today()
	batch := make([]model.StatusTransition, 0, len(ready))
	for i := range ready {
		ps := &ready[i]
		if ps.Status == model.StatusDraft {
			if missing := ps.MissingSubmitFields(); len(missing) > 0 {
				return nil, newValidationError(ps.PSID, "缺少必填字段: "+strings.Join(missing, ", "))
			}
		}

		event, _ := ps.Status.SubmitEvent()
		t, err := planTransition(ps, event, now)
		if err != nil {
			return nil, err
		}
		if ps.AssignedSPOC == "" || ps.AssignedSPOC == model.Unassigned {
			t.AssignedSPOC = spoc
		}
		batch = append(batch, t)
	}

	// 2. 整批比较交换
	if err := s.repo.ProblemStatement.TransitionBatch(ctx, batch); err != nil {
		s.logger.Warn("批量提交失败", zap.Int("count", len(batch)), zap.Error(err))
		return nil, fmt.Errorf("批量提交失败: %w", translateTransitionError(err))
	}

	ids := make([]string, 0, len(batch))
	for _, t := range batch {
		metrics.RecordTransition(string(t.From), string(t.To))
		ids = append(ids, t.PSID)
	}
	s.logger.Info("批量提交完成",
		zap.Strings("ids", ids),
		zap.Int("attachments", len(req.Attachments)),
	)

	return &dto.SubmitResponse{
		Submitted:   ids,
		Count:       len(ids),
		SubmittedAt: now.Format(model.DateLayout),
	}, nil
}

// resolveSPOC 优先使用配置的默认 SPOC，否则为提交人姓名
func (s *submissionService) resolveSPOC(ctx context.Context, userID string) (string, error) {
	if spoc := strings.TrimSpace(s.portal.DefaultSPOC); spoc != "" {
		return spoc, nil
	}
	user, err := s.repo.User.GetByID(ctx, userID)
	if err != nil {
		s.logger.Error("查询提交人失败", zap.String("user_id", userID), zap.Error(err))
		return "", ErrUserNotFound
	}
	return user.Name, nil
}

func validateAttachments(list []dto.AttachmentMeta) error {
	for i, a := range list {
		field := fmt.Sprintf("attachments[%d]", i)
		ext := strings.ToLower(filepath.Ext(a.FileName))
		if !allowedAttachmentExt[ext] {
			return newValidationError(field, "仅支持 PDF、DOC、DOCX、XLSX 文件")
		}
		if a.Size > maxAttachmentSize {
			return newValidationError(field, "文件大小不能超过 10MB")
		}
	}
	return nil
}

package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/Rajyalaxmi29/incamp-dept-hub/internal/dto"
	"github.com/Rajyalaxmi29/incamp-dept-hub/internal/model"
	"github.com/Rajyalaxmi29/incamp-dept-hub/internal/repository"
	pkgerrors "github.com/Rajyalaxmi29/incamp-dept-hub/pkg/errors"
)

// createIDAttempts 新建时 ID 冲突的重试次数
const createIDAttempts = 3

// ProblemStatementService 问题陈述业务接口
type ProblemStatementService interface {
	List(ctx context.Context, req *dto.ListProblemStatementsRequest) (*dto.ProblemStatementListResponse, error)
	GetByID(ctx context.Context, id string) (*dto.ProblemStatementResponse, error)
	Create(ctx context.Context, req *dto.CreateProblemStatementRequest) (*dto.ProblemStatementResponse, error)
	Update(ctx context.Context, id string, req *dto.UpdateProblemStatementRequest) (*dto.ProblemStatementResponse, error)
	Delete(ctx context.Context, id string) error
}

type problemStatementService struct {
	repo   *repository.Repository
	cal    *calendar
	logger *zap.Logger
}

// NewProblemStatementService 创建 ProblemStatementService 实例
func NewProblemStatementService(repo *repository.Repository, cal *calendar, logger *zap.Logger) ProblemStatementService {
	return &problemStatementService{repo: repo, cal: cal, logger: logger}
}

func (s *problemStatementService) List(ctx context.Context, req *dto.ListProblemStatementsRequest) (*dto.ProblemStatementListResponse, error) {
	list, err := s.repo.ProblemStatement.List(ctx)
	if err != nil {
		s.logger.Error("查询问题陈述列表失败", zap.Error(err))
		return nil, err
	}

	items := toProblemStatementResponses(FilterProblemStatements(list, req.Q))
	return &dto.ProblemStatementListResponse{
		Items: items,
		Total: len(items),
		Query: req.Q,
	}, nil
}

func (s *problemStatementService) GetByID(ctx context.Context, id string) (*dto.ProblemStatementResponse, error) {
	ps, err := s.get(ctx, id)
	if err != nil {
		return nil, err
	}
	resp := toProblemStatementResponse(ps)
	return &resp, nil
}

func (s *problemStatementService) get(ctx context.Context, id string) (*model.ProblemStatement, error) {
	ps, err := s.repo.ProblemStatement.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, pkgerrors.ErrRecordNotFound) {
			return nil, ErrProblemStatementNotFound
		}
		s.logger.Error("查询问题陈述失败", zap.String("id", id), zap.Error(err))
		return nil, err
	}
	return ps, nil
}

func (s *problemStatementService) Create(ctx context.Context, req *dto.CreateProblemStatementRequest) (*dto.ProblemStatementResponse, error) {
	ps := model.ProblemStatement{
		Title:        strings.TrimSpace(req.Title),
		Category:     strings.TrimSpace(req.Category),
		Theme:        strings.TrimSpace(req.Theme),
		FacultyOwner: strings.TrimSpace(req.FacultyOwner),
		Description:  strings.TrimSpace(req.Description),
		AssignedSPOC: model.Unassigned,
		Status:       model.StatusDraft,
	}
	if err := validateDraftFields(&ps); err != nil {
		return nil, err
	}

	today := s.cal.Today()
	ps.CreatedAt = today
	ps.LastUpdated = today

	// ID 由序号生成，并发新建时可能冲突，重新取号即可
	for attempt := 0; ; attempt++ {
		id, err := s.repo.ProblemStatement.NextID(ctx, today.Year())
		if err != nil {
			s.logger.Error("生成问题陈述 ID 失败", zap.Error(err))
			return nil, err
		}
		ps.PSID = id

		err = s.repo.ProblemStatement.Create(ctx, &ps)
		if err == nil {
			break
		}
		if errors.Is(err, pkgerrors.ErrDuplicateID) && attempt+1 < createIDAttempts {
			continue
		}
		s.logger.Error("创建问题陈述失败", zap.String("id", id), zap.Error(err))
		return nil, fmt.Errorf("创建问题陈述失败: %w", err)
	}

	s.logger.Info("已创建问题陈述", zap.String("id", ps.PSID))
	resp := toProblemStatementResponse(&ps)
	return &resp, nil
}

func (s *problemStatementService) Update(ctx context.Context, id string, req *dto.UpdateProblemStatementRequest) (*dto.ProblemStatementResponse, error) {
	ps, err := s.get(ctx, id)
	if err != nil {
		return nil, err
	}
	if !ps.Status.Editable() {
		return nil, ErrPermissionDenied
	}

	expected := ps.Status
	apply := func(dst *string, v *string) {
		if v != nil {
			*dst = strings.TrimSpace(*v)
		}
	}
	apply(&ps.Title, req.Title)
	apply(&ps.Category, req.Category)
	apply(&ps.Theme, req.Theme)
	apply(&ps.FacultyOwner, req.FacultyOwner)
	apply(&ps.Description, req.Description)
	if err := validateDraftFields(ps); err != nil {
		return nil, err
	}

	if today := s.cal.Today(); today.After(ps.LastUpdated) {
		ps.LastUpdated = today
	}

	if err := s.repo.ProblemStatement.Update(ctx, ps, expected); err != nil {
		return nil, s.translateWriteError(id, err)
	}

	s.logger.Info("已更新问题陈述", zap.String("id", id))
	resp := toProblemStatementResponse(ps)
	return &resp, nil
}

func (s *problemStatementService) Delete(ctx context.Context, id string) error {
	ps, err := s.get(ctx, id)
	if err != nil {
		return err
	}
	if !ps.Status.Deletable() {
		return ErrPermissionDenied
	}

	if err := s.repo.ProblemStatement.DeleteDraft(ctx, id); err != nil {
		return s.translateWriteError(id, err)
	}

	s.logger.Info("已删除问题陈述", zap.String("id", id))
	return nil
}

// translateWriteError 比较交换失败说明状态已变更，按权限不足处理
func (s *problemStatementService) translateWriteError(id string, err error) error {
	switch {
	case errors.Is(err, pkgerrors.ErrRecordNotFound):
		return ErrProblemStatementNotFound
	case errors.Is(err, pkgerrors.ErrStatusConflict):
		return ErrPermissionDenied
	}
	s.logger.Error("写入问题陈述失败", zap.String("id", id), zap.Error(err))
	return err
}

// validateDraftFields 保存草稿时要求标题、分类、描述非空
func validateDraftFields(ps *model.ProblemStatement) error {
	switch {
	case ps.Title == "":
		return newValidationError("title", "标题不能为空")
	case ps.Category == "":
		return newValidationError("category", "分类不能为空")
	case ps.Description == "":
		return newValidationError("description", "描述不能为空")
	}
	return nil
}

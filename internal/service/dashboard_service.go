package service

import (
	"context"

	"go.uber.org/zap"

	"github.com/Rajyalaxmi29/incamp-dept-hub/config"
	"github.com/Rajyalaxmi29/incamp-dept-hub/internal/dto"
	"github.com/Rajyalaxmi29/incamp-dept-hub/internal/repository"
)

// DashboardService 仪表盘业务接口
type DashboardService interface {
	Get(ctx context.Context) (*dto.DashboardResponse, error)
}

type dashboardService struct {
	portal *config.PortalConfig
	repo   *repository.Repository
	cal    *calendar
	logger *zap.Logger
}

// NewDashboardService 创建 DashboardService 实例
func NewDashboardService(portal *config.PortalConfig, repo *repository.Repository, cal *calendar, logger *zap.Logger) DashboardService {
	return &dashboardService{portal: portal, repo: repo, cal: cal, logger: logger}
}

func (s *dashboardService) Get(ctx context.Context) (*dto.DashboardResponse, error) {
	list, err := s.repo.ProblemStatement.List(ctx)
	if err != nil {
		s.logger.Error("查询问题陈述列表失败", zap.Error(err))
		return nil, err
	}
	alerts, err := s.repo.Alert.List(ctx)
	if err != nil {
		s.logger.Error("查询提醒失败", zap.Error(err))
		return nil, err
	}

	return &dto.DashboardResponse{
		Metrics: AggregateMetrics(list, s.cal.DaysUntilDeadline(), s.cal.DeadlineString()),
		Stages:  BuildStages(list),
		Recent:  toProblemStatementResponses(RecentProblemStatements(list, s.portal.RecentLimit)),
		Alerts:  toAlertResponses(alerts),
	}, nil
}

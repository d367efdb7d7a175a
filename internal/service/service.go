package service

import (
	"go.uber.org/zap"

	"github.com/Rajyalaxmi29/incamp-dept-hub/config"
	"github.com/Rajyalaxmi29/incamp-dept-hub/internal/repository"
	"github.com/Rajyalaxmi29/incamp-dept-hub/pkg/jwt"
)

// Service 所有 Service 的聚合入口
type Service struct {
	Auth             AuthService
	ProblemStatement ProblemStatementService
	Submission       SubmissionService
	Dashboard        DashboardService
	Message          MessageService
	Review           ReviewService
}

// NewService 创建 Service 聚合，blacklist 为 nil 时不使用 Token 黑名单
func NewService(
	cfg *config.Config,
	repo *repository.Repository,
	jwtMgr *jwt.Manager,
	blacklist TokenBlacklist,
	logger *zap.Logger,
) *Service {
	cal := newCalendar(&cfg.Portal)
	return &Service{
		Auth:             NewAuthService(&cfg.Auth, repo, jwtMgr, NewSessionSlot(), blacklist, logger),
		ProblemStatement: NewProblemStatementService(repo, cal, logger),
		Submission:       NewSubmissionService(&cfg.Portal, repo, cal, logger),
		Dashboard:        NewDashboardService(&cfg.Portal, repo, cal, logger),
		Message:          NewMessageService(repo, cal, logger),
		Review:           NewReviewService(repo, cal, logger),
	}
}

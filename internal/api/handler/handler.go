package handler

import (
	"github.com/Rajyalaxmi29/incamp-dept-hub/config"
	"github.com/Rajyalaxmi29/incamp-dept-hub/internal/service"
)

// Handler 所有 Handler 的聚合入口
type Handler struct {
	Auth             *AuthHandler
	ProblemStatement *ProblemStatementHandler
	Submission       *SubmissionHandler
	Dashboard        *DashboardHandler
	Message          *MessageHandler
	Review           *ReviewHandler
}

// NewHandler 创建 Handler 聚合
func NewHandler(svc *service.Service, authCfg *config.AuthConfig) *Handler {
	return &Handler{
		Auth:             NewAuthHandler(svc.Auth, authCfg),
		ProblemStatement: NewProblemStatementHandler(svc.ProblemStatement),
		Submission:       NewSubmissionHandler(svc.Submission),
		Dashboard:        NewDashboardHandler(svc.Dashboard),
		Message:          NewMessageHandler(svc.Message),
		Review:           NewReviewHandler(svc.Review),
	}
}

package handler

import (
	"errors"

	"github.com/gin-gonic/gin"

	"github.com/Rajyalaxmi29/incamp-dept-hub/internal/dto"
	"github.com/Rajyalaxmi29/incamp-dept-hub/internal/service"
	pkgerrors "github.com/Rajyalaxmi29/incamp-dept-hub/pkg/errors"
	"github.com/Rajyalaxmi29/incamp-dept-hub/pkg/response"
)

// SubmissionHandler 批量提交 HTTP 处理器
type SubmissionHandler struct {
	submissionSvc service.SubmissionService
}

// NewSubmissionHandler 创建 SubmissionHandler
func NewSubmissionHandler(submissionSvc service.SubmissionService) *SubmissionHandler {
	return &SubmissionHandler{submissionSvc: submissionSvc}
}

// Readiness 可提交集合
// GET /submit
func (h *SubmissionHandler) Readiness(c *gin.Context) {
	result, err := h.submissionSvc.Readiness(c.Request.Context())
	if err != nil {
		h.handleSubmissionError(c, err)
		return
	}
	response.OK(c, result)
}

// Submit 批量提交到机构
// POST /submit（请求体可省略）
func (h *SubmissionHandler) Submit(c *gin.Context) {
	userID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	var req dto.SubmitRequest
	if c.Request.ContentLength != 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			response.BindFailed(c)
			return
		}
	}

	result, err := h.submissionSvc.Submit(c.Request.Context(), userID, &req)
	if err != nil {
		h.handleSubmissionError(c, err)
		return
	}
	response.OK(c, result)
}

func (h *SubmissionHandler) handleSubmissionError(c *gin.Context, err error) {
	if writeValidationError(c, 13002, err) {
		return
	}
	switch {
	case errors.Is(err, service.ErrNothingToSubmit):
		response.Conflict(c, 13001, "没有可提交的问题陈述")
	case errors.Is(err, pkgerrors.ErrStatusConflict):
		response.Conflict(c, 13003, "记录状态已被其他操作修改，请刷新后重试")
	case errors.Is(err, service.ErrInvalidTransition):
		response.Conflict(c, 13004, "非法的状态迁移")
	case errors.Is(err, service.ErrUserNotFound):
		response.NotFound(c, 15001, "用户不存在")
	default:
		response.InternalError(c)
	}
}

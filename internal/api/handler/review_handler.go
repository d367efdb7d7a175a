package handler

import (
	"errors"

	"github.com/gin-gonic/gin"

	"github.com/Rajyalaxmi29/incamp-dept-hub/internal/dto"
	"github.com/Rajyalaxmi29/incamp-dept-hub/internal/service"
	pkgerrors "github.com/Rajyalaxmi29/incamp-dept-hub/pkg/errors"
	"github.com/Rajyalaxmi29/incamp-dept-hub/pkg/response"
)

const (
	contentTypeXLSX = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
	contentTypeICS  = "text/calendar; charset=utf-8"
)

// ReviewHandler 审核跟踪与机构审核 HTTP 处理器
type ReviewHandler struct {
	reviewSvc service.ReviewService
}

// NewReviewHandler 创建 ReviewHandler
func NewReviewHandler(reviewSvc service.ReviewService) *ReviewHandler {
	return &ReviewHandler{reviewSvc: reviewSvc}
}

// List 审核列表与指标
// GET /reviews
func (h *ReviewHandler) List(c *gin.Context) {
	result, err := h.reviewSvc.List(c.Request.Context())
	if err != nil {
		h.handleReviewError(c, err)
		return
	}
	response.OK(c, result)
}

// ExportXLSX 导出审核列表
// GET /reviews/export.xlsx
func (h *ReviewHandler) ExportXLSX(c *gin.Context) {
	buf, filename, err := h.reviewSvc.ExportXLSX(c.Request.Context())
	if err != nil {
		h.handleReviewError(c, err)
		return
	}

	response.Attachment(c, contentTypeXLSX, filename, buf.Bytes())
}

// DeadlineICS 截止日日历
// GET /reviews/deadline.ics
func (h *ReviewHandler) DeadlineICS(c *gin.Context) {
	data, filename, err := h.reviewSvc.DeadlineICS(c.Request.Context())
	if err != nil {
		h.handleReviewError(c, err)
		return
	}

	response.Attachment(c, contentTypeICS, filename, data)
}

// BeginReview 机构开始审核
// POST /institution/problem-statements/:id/begin-review
func (h *ReviewHandler) BeginReview(c *gin.Context) {
	result, err := h.reviewSvc.BeginReview(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.handleReviewError(c, err)
		return
	}
	response.OK(c, result)
}

// Approve 机构批准
// POST /institution/problem-statements/:id/approve
func (h *ReviewHandler) Approve(c *gin.Context) {
	result, err := h.reviewSvc.Approve(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.handleReviewError(c, err)
		return
	}
	response.OK(c, result)
}

// RequestRevision 机构退回修改
// POST /institution/problem-statements/:id/request-revision
func (h *ReviewHandler) RequestRevision(c *gin.Context) {
	userID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	var req dto.RequestRevisionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BindFailed(c)
		return
	}

	result, err := h.reviewSvc.RequestRevision(c.Request.Context(), userID, c.Param("id"), &req)
	if err != nil {
		h.handleReviewError(c, err)
		return
	}
	response.OK(c, result)
}

func (h *ReviewHandler) handleReviewError(c *gin.Context, err error) {
	if writeValidationError(c, 12001, err) {
		return
	}
	switch {
	case errors.Is(err, service.ErrProblemStatementNotFound):
		response.NotFound(c, 12002, "问题陈述不存在")
	case errors.Is(err, service.ErrInvalidTransition):
		response.Conflict(c, 12004, "非法的状态迁移")
	case errors.Is(err, pkgerrors.ErrStatusConflict):
		response.Conflict(c, 12005, "记录状态已被其他操作修改，请刷新后重试")
	case errors.Is(err, service.ErrUserNotFound):
		response.NotFound(c, 15001, "用户不存在")
	case errors.Is(err, service.ErrExportNoItems):
		response.NotFound(c, 16001, "暂无已提交的问题陈述")
	case errors.Is(err, service.ErrExportGenerateFail):
		response.InternalError(c)
	default:
		response.InternalError(c)
	}
}

package handler

import (
	"errors"

	"github.com/gin-gonic/gin"

	"github.com/Rajyalaxmi29/incamp-dept-hub/internal/dto"
	"github.com/Rajyalaxmi29/incamp-dept-hub/internal/service"
	pkgerrors "github.com/Rajyalaxmi29/incamp-dept-hub/pkg/errors"
	"github.com/Rajyalaxmi29/incamp-dept-hub/pkg/response"
)

// ProblemStatementHandler 问题陈述 HTTP 处理器
type ProblemStatementHandler struct {
	psSvc service.ProblemStatementService
}

// NewProblemStatementHandler 创建 ProblemStatementHandler
func NewProblemStatementHandler(psSvc service.ProblemStatementService) *ProblemStatementHandler {
	return &ProblemStatementHandler{psSvc: psSvc}
}

// List 列表与搜索
// GET /problem-statements?q=
func (h *ProblemStatementHandler) List(c *gin.Context) {
	var req dto.ListProblemStatementsRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		response.BindFailed(c)
		return
	}

	result, err := h.psSvc.List(c.Request.Context(), &req)
	if err != nil {
		h.handlePSError(c, err)
		return
	}
	response.OK(c, result)
}

// Get 详情
// GET /problem-statements/:id
func (h *ProblemStatementHandler) Get(c *gin.Context) {
	result, err := h.psSvc.GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.handlePSError(c, err)
		return
	}
	response.OK(c, result)
}

// Create 新建草稿
// POST /problem-statements
func (h *ProblemStatementHandler) Create(c *gin.Context) {
	var req dto.CreateProblemStatementRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BindFailed(c)
		return
	}

	result, err := h.psSvc.Create(c.Request.Context(), &req)
	if err != nil {
		h.handlePSError(c, err)
		return
	}
	response.Created(c, result)
}

// Update 编辑（仅 draft / revision_needed）
// PUT /problem-statements/:id
func (h *ProblemStatementHandler) Update(c *gin.Context) {
	var req dto.UpdateProblemStatementRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BindFailed(c)
		return
	}

	result, err := h.psSvc.Update(c.Request.Context(), c.Param("id"), &req)
	if err != nil {
		h.handlePSError(c, err)
		return
	}
	response.OK(c, result)
}

// Delete 删除（仅 draft）
// DELETE /problem-statements/:id
func (h *ProblemStatementHandler) Delete(c *gin.Context) {
	if err := h.psSvc.Delete(c.Request.Context(), c.Param("id")); err != nil {
		h.handlePSError(c, err)
		return
	}
	response.OK(c, nil)
}

func (h *ProblemStatementHandler) handlePSError(c *gin.Context, err error) {
	if writeValidationError(c, 12001, err) {
		return
	}
	switch {
	case errors.Is(err, service.ErrProblemStatementNotFound):
		response.NotFound(c, 12002, "问题陈述不存在")
	case errors.Is(err, service.ErrPermissionDenied):
		response.Forbidden(c, 12003, "当前状态不允许该操作")
	case errors.Is(err, service.ErrInvalidTransition):
		response.Conflict(c, 12004, "非法的状态迁移")
	case errors.Is(err, pkgerrors.ErrStatusConflict):
		response.Conflict(c, 12005, "记录状态已被其他操作修改，请刷新后重试")
	default:
		response.InternalError(c)
	}
}

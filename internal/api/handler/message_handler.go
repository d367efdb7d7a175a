package handler

import (
	"errors"

	"github.com/gin-gonic/gin"

	"github.com/Rajyalaxmi29/incamp-dept-hub/internal/dto"
	"github.com/Rajyalaxmi29/incamp-dept-hub/internal/service"
	"github.com/Rajyalaxmi29/incamp-dept-hub/pkg/response"
)

// MessageHandler 消息会话 HTTP 处理器
type MessageHandler struct {
	messageSvc service.MessageService
}

// NewMessageHandler 创建 MessageHandler
func NewMessageHandler(messageSvc service.MessageService) *MessageHandler {
	return &MessageHandler{messageSvc: messageSvc}
}

// Threads 会话列表
// GET /messages
func (h *MessageHandler) Threads(c *gin.Context) {
	result, err := h.messageSvc.Threads(c.Request.Context())
	if err != nil {
		h.handleMessageError(c, err)
		return
	}
	response.OK(c, result)
}

// Thread 单个会话
// GET /messages/:psId
func (h *MessageHandler) Thread(c *gin.Context) {
	result, err := h.messageSvc.Thread(c.Request.Context(), c.Param("psId"))
	if err != nil {
		h.handleMessageError(c, err)
		return
	}
	response.OK(c, result)
}

// Reply 回复
// POST /messages/:psId
func (h *MessageHandler) Reply(c *gin.Context) {
	userID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	var req dto.ReplyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BindFailed(c)
		return
	}

	result, err := h.messageSvc.Reply(c.Request.Context(), userID, c.Param("psId"), &req)
	if err != nil {
		h.handleMessageError(c, err)
		return
	}
	response.Created(c, result)
}

func (h *MessageHandler) handleMessageError(c *gin.Context, err error) {
	if writeValidationError(c, 14001, err) {
		return
	}
	switch {
	case errors.Is(err, service.ErrProblemStatementNotFound):
		response.NotFound(c, 14002, "问题陈述不存在")
	case errors.Is(err, service.ErrUserNotFound):
		response.NotFound(c, 15001, "用户不存在")
	default:
		response.InternalError(c)
	}
}

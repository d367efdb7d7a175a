package response

import (
	"net/http"
	"net/url"

	"github.com/gin-gonic/gin"
)

// Response 统一响应结构
// code=0 表示成功；错误时 details 携带出错字段或问题陈述 ID
type Response struct {
	Code    int         `json:"code"`
	Message string      `json:"message"`
	Data    interface{} `json:"data,omitempty"`
	Details string      `json:"details,omitempty"`
}

// 跨模块共用的业务码，各模块专属码在 handler 的 handleXxxError 中定义
const (
	CodeOK              = 0
	CodeBindFailed      = 10001
	CodeForbidden       = 10003
	CodeRateLimited     = 10004
	CodeBodyTooLarge    = 10005
	CodeUnauthenticated = 11003
	CodeInternal        = 50000
)

// OK 200
func OK(c *gin.Context, data interface{}) {
	c.JSON(http.StatusOK, Response{Code: CodeOK, Message: "success", Data: data})
}

// Created 201，用于新建草稿与回复消息
func Created(c *gin.Context, data interface{}) {
	c.JSON(http.StatusCreated, Response{Code: CodeOK, Message: "success", Data: data})
}

// Attachment 以下载方式返回导出文件（xlsx / ics）
func Attachment(c *gin.Context, contentType, filename string, data []byte) {
	c.Header("Content-Description", "File Transfer")
	c.Header("Content-Disposition", "attachment; filename*=UTF-8''"+url.PathEscape(filename))
	c.Data(http.StatusOK, contentType, data)
}

// ── 错误响应 ──

// Error 通用错误响应
func Error(c *gin.Context, httpStatus int, code int, message string) {
	c.JSON(httpStatus, Response{Code: code, Message: message})
}

// ErrorWithDetails 带详情的错误响应
func ErrorWithDetails(c *gin.Context, httpStatus int, code int, message, details string) {
	c.JSON(httpStatus, Response{Code: code, Message: message, Details: details})
}

// Invalid 422 字段级校验失败，field 写入 details
func Invalid(c *gin.Context, code int, field, message string) {
	ErrorWithDetails(c, http.StatusUnprocessableEntity, code, message, field)
}

// BindFailed 400 请求体或查询参数无法绑定
func BindFailed(c *gin.Context) {
	Error(c, http.StatusBadRequest, CodeBindFailed, "参数校验失败")
}

// Unauthenticated 401 无有效会话
func Unauthenticated(c *gin.Context) {
	Error(c, http.StatusUnauthorized, CodeUnauthenticated, "未登录或会话已过期")
}

// ── 常见快捷方式 ──

// BadRequest 400
func BadRequest(c *gin.Context, code int, message string) {
	Error(c, http.StatusBadRequest, code, message)
}

// Unauthorized 401
func Unauthorized(c *gin.Context, code int, message string) {
	Error(c, http.StatusUnauthorized, code, message)
}

// Forbidden 403
func Forbidden(c *gin.Context, code int, message string) {
	Error(c, http.StatusForbidden, code, message)
}

// NotFound 404
func NotFound(c *gin.Context, code int, message string) {
	Error(c, http.StatusNotFound, code, message)
}

// Conflict 409：状态迁移冲突、并发修改、无可提交记录
func Conflict(c *gin.Context, code int, message string) {
	Error(c, http.StatusConflict, code, message)
}

// InternalError 500
func InternalError(c *gin.Context) {
	Error(c, http.StatusInternalServerError, CodeInternal, "服务器内部错误")
}

package handler

import (
	"errors"

	"github.com/gin-gonic/gin"

	"github.com/Rajyalaxmi29/incamp-dept-hub/internal/api/middleware"
	"github.com/Rajyalaxmi29/incamp-dept-hub/internal/model"
	"github.com/Rajyalaxmi29/incamp-dept-hub/internal/service"
	"github.com/Rajyalaxmi29/incamp-dept-hub/pkg/response"
)

// MustGetUserID 从 Gin 上下文中安全提取 user_id。
// 中间件未注入时写入 401 响应，调用方应在 ok=false 时直接 return。
func MustGetUserID(c *gin.Context) (string, bool) {
	uid := c.GetString(middleware.UserIDKey)
	if uid == "" {
		response.Unauthenticated(c)
		return "", false
	}
	return uid, true
}

// GetSession 提取当前会话，未登录返回 nil
func GetSession(c *gin.Context) *model.Session {
	v, ok := c.Get(middleware.SessionKey)
	if !ok {
		return nil
	}
	sess, _ := v.(*model.Session)
	return sess
}

// writeValidationError 字段级校验错误，字段名放在 details
func writeValidationError(c *gin.Context, code int, err error) bool {
	var verr *service.ValidationError
	if !errors.As(err, &verr) {
		return false
	}
	response.Invalid(c, code, verr.Field, verr.Message)
	return true
}

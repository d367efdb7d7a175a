package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/Rajyalaxmi29/incamp-dept-hub/internal/model"
	"github.com/Rajyalaxmi29/incamp-dept-hub/pkg/response"
)

// SessionCookieName 会话 Cookie 名
const SessionCookieName = "session_token"

// LoginPath 未认证 GET 请求的重定向目标
const LoginPath = "/login"

// 上下文键
const (
	SessionKey      = "session"
	UserIDKey       = "user_id"
	RoleKey         = "role"
	DepartmentIDKey = "department_id"
)

// SessionAuthenticator 校验 Token 并返回当前会话
type SessionAuthenticator interface {
	Authenticate(ctx context.Context, token string) (*model.Session, error)
}

// SessionAuth 会话认证中间件
// Token 取自 Authorization: Bearer <token> 或 session_token Cookie
// 未认证时 GET 重定向到 /login，其余方法返回 401
func SessionAuth(auth SessionAuthenticator) gin.HandlerFunc {
	return func(c *gin.Context) {
		sess := resolveSession(c, auth)
		if sess == nil {
			if c.Request.Method == http.MethodGet {
				c.Redirect(http.StatusFound, LoginPath)
			} else {
				response.Unauthenticated(c)
			}
			c.Abort()
			return
		}

		setSession(c, sess)
		c.Next()
	}
}

// OptionalSession 存在有效会话时注入上下文，否则直接放行
func OptionalSession(auth SessionAuthenticator) gin.HandlerFunc {
	return func(c *gin.Context) {
		if sess := resolveSession(c, auth); sess != nil {
			setSession(c, sess)
		}
		c.Next()
	}
}

// RoleAuth 角色权限中间件
// 检查当前用户是否具有指定角色之一
func RoleAuth(allowedRoles ...string) gin.HandlerFunc {
	return func(c *gin.Context) {
		role := c.GetString(RoleKey)
		if role == "" {
			response.Unauthenticated(c)
			c.Abort()
			return
		}

		for _, r := range allowedRoles {
			if role == r {
				c.Next()
				return
			}
		}

		response.Forbidden(c, response.CodeForbidden, "无权限访问")
		c.Abort()
	}
}

// BearerOrCookie 提取请求携带的会话 Token
func BearerOrCookie(c *gin.Context) string {
	if h := c.GetHeader("Authorization"); h != "" {
		parts := strings.SplitN(h, " ", 2)
		if len(parts) == 2 && strings.EqualFold(parts[0], "Bearer") {
			return strings.TrimSpace(parts[1])
		}
		return ""
	}
	if v, err := c.Cookie(SessionCookieName); err == nil {
		return v
	}
	return ""
}

func resolveSession(c *gin.Context, auth SessionAuthenticator) *model.Session {
	token := BearerOrCookie(c)
	if token == "" {
		return nil
	}
	sess, err := auth.Authenticate(c.Request.Context(), token)
	if err != nil {
		return nil
	}
	return sess
}

func setSession(c *gin.Context, sess *model.Session) {
	c.Set(SessionKey, sess)
	c.Set(UserIDKey, sess.UserID)
	c.Set(RoleKey, sess.Role)
	c.Set(DepartmentIDKey, sess.DepartmentID)
}

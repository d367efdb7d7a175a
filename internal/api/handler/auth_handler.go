package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Rajyalaxmi29/incamp-dept-hub/config"
	"github.com/Rajyalaxmi29/incamp-dept-hub/internal/api/middleware"
	"github.com/Rajyalaxmi29/incamp-dept-hub/internal/dto"
	"github.com/Rajyalaxmi29/incamp-dept-hub/internal/service"
	"github.com/Rajyalaxmi29/incamp-dept-hub/pkg/response"
)

// AuthHandler 会话与个人资料 HTTP 处理器
type AuthHandler struct {
	authSvc service.AuthService
	cfg     *config.AuthConfig
}

// NewAuthHandler 创建 AuthHandler
func NewAuthHandler(authSvc service.AuthService, cfg *config.AuthConfig) *AuthHandler {
	return &AuthHandler{authSvc: authSvc, cfg: cfg}
}

// SessionStatus 会话状态
// GET /login
func (h *AuthHandler) SessionStatus(c *gin.Context) {
	sess := GetSession(c)
	if sess == nil {
		response.OK(c, dto.SessionStatusResponse{Authenticated: false})
		return
	}

	user, err := h.authSvc.GetProfile(c.Request.Context(), sess.UserID)
	if err != nil {
		h.handleAuthError(c, err)
		return
	}
	response.OK(c, dto.SessionStatusResponse{
		Authenticated: true,
		User:          user,
		Redirect:      "/dashboard",
	})
}

// Login 登录
// POST /login
func (h *AuthHandler) Login(c *gin.Context) {
	var req dto.LoginRequest
	if err := c.ShouldBind(&req); err != nil {
		response.BindFailed(c)
		return
	}

	result, err := h.authSvc.Login(c.Request.Context(), &req)
	if err != nil {
		h.handleAuthError(c, err)
		return
	}

	h.setSessionCookie(c, result.Token, int(h.cfg.SessionTTL.Seconds()))
	response.OK(c, result)
}

// Logout 注销，重复调用无副作用
// POST /logout
func (h *AuthHandler) Logout(c *gin.Context) {
	if err := h.authSvc.Logout(c.Request.Context(), GetSession(c)); err != nil {
		response.InternalError(c)
		return
	}

	h.setSessionCookie(c, "", -1)
	response.OK(c, nil)
}

// GetProfile 当前用户资料
// GET /profile
func (h *AuthHandler) GetProfile(c *gin.Context) {
	userID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	user, err := h.authSvc.GetProfile(c.Request.Context(), userID)
	if err != nil {
		h.handleAuthError(c, err)
		return
	}
	response.OK(c, user)
}

// ChangePassword 修改密码
// PUT /profile/password
func (h *AuthHandler) ChangePassword(c *gin.Context) {
	userID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	var req dto.ChangePasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BindFailed(c)
		return
	}

	if err := h.authSvc.ChangePassword(c.Request.Context(), userID, &req); err != nil {
		if errors.Is(err, service.ErrInvalidCredentials) {
			response.BadRequest(c, 15003, "当前密码错误")
			return
		}
		h.handleAuthError(c, err)
		return
	}
	response.OK(c, nil)
}

func (h *AuthHandler) setSessionCookie(c *gin.Context, value string, maxAge int) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(middleware.SessionCookieName, value, maxAge, "/", h.cfg.Cookie.Domain, h.cfg.Cookie.Secure, true)
}

func (h *AuthHandler) handleAuthError(c *gin.Context, err error) {
	if writeValidationError(c, 15002, err) {
		return
	}
	switch {
	case errors.Is(err, service.ErrInvalidCredentials):
		response.Unauthorized(c, 11001, "邮箱或密码错误")
	case errors.Is(err, service.ErrLoginTimeout):
		response.Error(c, http.StatusGatewayTimeout, 11002, "登录超时，请稍后重试")
	case errors.Is(err, service.ErrSessionInvalid):
		response.Unauthenticated(c)
	case errors.Is(err, service.ErrUserNotFound):
		response.NotFound(c, 15001, "用户不存在")
	default:
		response.InternalError(c)
	}
}

package service

import (
	"context"
	"errors"
	"strings"
	"sync"
	"time"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"github.com/Rajyalaxmi29/incamp-dept-hub/config"
	"github.com/Rajyalaxmi29/incamp-dept-hub/internal/dto"
	"github.com/Rajyalaxmi29/incamp-dept-hub/internal/model"
	"github.com/Rajyalaxmi29/incamp-dept-hub/internal/repository"
	pkgerrors "github.com/Rajyalaxmi29/incamp-dept-hub/pkg/errors"
	"github.com/Rajyalaxmi29/incamp-dept-hub/pkg/jwt"
	"github.com/Rajyalaxmi29/incamp-dept-hub/pkg/metrics"
)

var (
	ErrInvalidCredentials = errors.New("邮箱或密码错误")
	ErrLoginTimeout       = errors.New("登录超时，请稍后重试")
	ErrSessionInvalid     = errors.New("会话无效或已过期")
	ErrUserNotFound       = errors.New("用户不存在")
)

// TokenBlacklist 已注销 Token 的黑名单（Redis 实现）
type TokenBlacklist interface {
	BlacklistToken(ctx context.Context, jti string, ttl time.Duration) error
	IsBlacklisted(ctx context.Context, jti string) (bool, error)
}

// AuthService 会话与个人资料业务接口
type AuthService interface {
	Login(ctx context.Context, req *dto.LoginRequest) (*dto.LoginResponse, error)
	Logout(ctx context.Context, sess *model.Session) error
	// Authenticate 校验 Token 并返回槽位中的当前会话
	Authenticate(ctx context.Context, token string) (*model.Session, error)
	GetProfile(ctx context.Context, userID string) (*dto.UserResponse, error)
	ChangePassword(ctx context.Context, userID string, req *dto.ChangePasswordRequest) error
}

type authService struct {
	cfg       *config.AuthConfig
	repo      *repository.Repository
	jwtMgr    *jwt.Manager
	verifier  CredentialVerifier
	slot      *SessionSlot
	blacklist TokenBlacklist // 可为 nil
	logger    *zap.Logger

	loginMu sync.Mutex // 串行化登录，保证槽位按完成顺序写入
}

// NewAuthService 创建 AuthService 实例，blacklist 为 nil 时仅依赖会话槽位
func NewAuthService(
	cfg *config.AuthConfig,
	repo *repository.Repository,
	jwtMgr *jwt.Manager,
	slot *SessionSlot,
	blacklist TokenBlacklist,
	logger *zap.Logger,
) AuthService {
	return &authService{
		cfg:       cfg,
		repo:      repo,
		jwtMgr:    jwtMgr,
		verifier:  NewCredentialVerifier(cfg, repo.User),
		slot:      slot,
		blacklist: blacklist,
		logger:    logger,
	}
}

func (s *authService) Login(ctx context.Context, req *dto.LoginRequest) (*dto.LoginResponse, error) {
	email := strings.TrimSpace(req.Email)
	if email == "" || req.Password == "" {
		metrics.RecordLogin("rejected")
		return nil, ErrInvalidCredentials
	}

	s.loginMu.Lock()
	defer s.loginMu.Unlock()

	// 1. 校验凭据（受登录超时约束）
	vctx, cancel := context.WithTimeout(ctx, s.cfg.LoginTimeout)
	defer cancel()

	user, err := s.verifier.Verify(vctx, email, req.Password)
	if err != nil {
		switch {
		case errors.Is(err, ErrInvalidCredentials):
			metrics.RecordLogin("rejected")
			return nil, ErrInvalidCredentials
		case errors.Is(err, context.DeadlineExceeded):
			metrics.RecordLogin("timeout")
			s.logger.Warn("登录校验超时", zap.String("email", email), zap.Duration("timeout", s.cfg.LoginTimeout))
			return nil, ErrLoginTimeout
		}
		metrics.RecordLogin("error")
		s.logger.Error("登录校验失败", zap.String("email", email), zap.Error(err))
		return nil, err
	}

	// 2. 签发会话 Token
	tok, err := s.jwtMgr.GenerateSessionToken(user.UserID, user.Role, user.DepartmentID)
	if err != nil {
		metrics.RecordLogin("error")
		s.logger.Error("签发会话 Token 失败", zap.Error(err))
		return nil, err
	}

	// 3. 写入槽位，旧会话失效
	old := s.slot.Replace(&model.Session{
		JTI:          tok.JTI,
		UserID:       user.UserID,
		Role:         user.Role,
		DepartmentID: user.DepartmentID,
		IssuedAt:     time.Now(),
		ExpiresAt:    tok.ExpiresAt,
	})
	if old != nil {
		s.revoke(ctx, old)
	}

	metrics.RecordLogin("success")
	s.logger.Info("登录成功", zap.String("user_id", user.UserID))

	return &dto.LoginResponse{
		Token:     tok.Token,
		ExpiresAt: tok.ExpiresAt.Format(time.RFC3339),
		User:      toUserResponse(user),
	}, nil
}

func (s *authService) Logout(ctx context.Context, sess *model.Session) error {
	if sess == nil {
		return nil
	}
	if s.slot.Clear(sess.JTI) {
		s.logger.Info("已注销", zap.String("user_id", sess.UserID))
	}
	s.revoke(ctx, sess)
	return nil
}

// revoke 将会话 JTI 写入黑名单，失败仅记录日志（槽位已失效）
func (s *authService) revoke(ctx context.Context, sess *model.Session) {
	if s.blacklist == nil {
		return
	}
	ttl := time.Until(sess.ExpiresAt)
	if ttl <= 0 {
		return
	}
	if err := s.blacklist.BlacklistToken(ctx, sess.JTI, ttl); err != nil {
		s.logger.Warn("写入 Token 黑名单失败", zap.String("user_id", sess.UserID), zap.Error(err))
	}
}

func (s *authService) Authenticate(ctx context.Context, token string) (*model.Session, error) {
	claims, err := s.jwtMgr.ParseToken(token)
	if err != nil {
		return nil, ErrSessionInvalid
	}

	if s.blacklist != nil {
		revoked, err := s.blacklist.IsBlacklisted(ctx, claims.ID)
		if err != nil {
			s.logger.Warn("查询 Token 黑名单失败", zap.Error(err))
		} else if revoked {
			return nil, ErrSessionInvalid
		}
	}

	sess, ok := s.slot.Lookup(claims.ID, time.Now())
	if !ok {
		return nil, ErrSessionInvalid
	}
	return sess, nil
}

func (s *authService) GetProfile(ctx context.Context, userID string) (*dto.UserResponse, error) {
	user, err := s.repo.User.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, pkgerrors.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		s.logger.Error("查询用户失败", zap.String("user_id", userID), zap.Error(err))
		return nil, err
	}

	resp := toUserResponse(user)
	return &resp, nil
}

func (s *authService) ChangePassword(ctx context.Context, userID string, req *dto.ChangePasswordRequest) error {
	if req.NewPassword != req.ConfirmPassword {
		return newValidationError("confirm_password", "两次输入的新密码不一致")
	}

	user, err := s.repo.User.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, pkgerrors.ErrRecordNotFound) {
			return ErrUserNotFound
		}
		s.logger.Error("查询用户失败", zap.String("user_id", userID), zap.Error(err))
		return err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.CurrentPassword)); err != nil {
		return ErrInvalidCredentials
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.NewPassword), bcrypt.DefaultCost)
	if err != nil {
		s.logger.Error("生成密码哈希失败", zap.Error(err))
		return err
	}

	if err := s.repo.User.UpdatePassword(ctx, userID, string(hash)); err != nil {
		s.logger.Error("更新密码失败", zap.String("user_id", userID), zap.Error(err))
		return err
	}
	return nil
}

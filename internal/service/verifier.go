package service

import (
	"context"
	"errors"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/Rajyalaxmi29/incamp-dept-hub/config"
	"github.com/Rajyalaxmi29/incamp-dept-hub/internal/model"
	"github.com/Rajyalaxmi29/incamp-dept-hub/internal/repository"
	pkgerrors "github.com/Rajyalaxmi29/incamp-dept-hub/pkg/errors"
)

// CredentialVerifier 凭据校验器
// 失败返回 ErrInvalidCredentials；ctx 超时返回 context.DeadlineExceeded
type CredentialVerifier interface {
	Verify(ctx context.Context, email, password string) (*model.User, error)
}

// NewCredentialVerifier 按 auth.mode 选择校验器
func NewCredentialVerifier(cfg *config.AuthConfig, users repository.UserRepository) CredentialVerifier {
	if cfg.Mode == "password" {
		return &passwordVerifier{users: users}
	}
	return &mockVerifier{users: users, delay: cfg.MockDelay, email: cfg.MockUserEmail}
}

// mockVerifier 演示模式：任意非空凭据在固定延迟后解析为预置的部门管理员
type mockVerifier struct {
	users repository.UserRepository
	delay time.Duration
	email string
}

func (v *mockVerifier) Verify(ctx context.Context, email, password string) (*model.User, error) {
	if email == "" || password == "" {
		return nil, ErrInvalidCredentials
	}

	timer := time.NewTimer(v.delay)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	case <-timer.C:
	}

	user, err := v.users.GetByEmail(ctx, v.email)
	if err != nil {
		if errors.Is(err, pkgerrors.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return user, nil
}

// passwordVerifier 查库并以 bcrypt 校验密码
type passwordVerifier struct {
	users repository.UserRepository
}

func (v *passwordVerifier) Verify(ctx context.Context, email, password string) (*model.User, error) {
	user, err := v.users.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, pkgerrors.ErrRecordNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return nil, ErrInvalidCredentials
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return user, nil
}

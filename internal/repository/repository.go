package repository

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/Rajyalaxmi29/incamp-dept-hub/internal/model"
	pkgerrors "github.com/Rajyalaxmi29/incamp-dept-hub/pkg/errors"
)

// Repository 所有 Repository 的聚合入口
type Repository struct {
	ProblemStatement ProblemStatementRepository
	Message          MessageRepository
	Alert            AlertRepository
	User             UserRepository
	Department       DepartmentRepository
}

// NewRepository 创建基于 PostgreSQL 的 Repository 聚合
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{
		ProblemStatement: NewProblemStatementRepo(db),
		Message:          NewMessageRepo(db),
		Alert:            NewAlertRepo(db),
		User:             NewUserRepo(db),
		Department:       NewDepartmentRepo(db),
	}
}

// ── 数据访问接口 ──

// ProblemStatementRepository 问题陈述数据访问接口
// 所有状态写入均为比较交换：仅当记录当前状态等于预期状态时才生效
type ProblemStatementRepository interface {
	Create(ctx context.Context, ps *model.ProblemStatement) error
	GetByID(ctx context.Context, id string) (*model.ProblemStatement, error)
	// List 按 last_updated 倒序返回全部记录
	List(ctx context.Context) ([]model.ProblemStatement, error)
	Count(ctx context.Context) (int64, error)
	// Update 写入可编辑字段，要求当前状态仍为 expected
	Update(ctx context.Context, ps *model.ProblemStatement, expected model.Status) error
	// DeleteDraft 删除 draft 记录；非 draft 返回 ErrStatusConflict
	DeleteDraft(ctx context.Context, id string) error
	Transition(ctx context.Context, t model.StatusTransition) error
	// TransitionBatch 全部成功或全部不生效
	TransitionBatch(ctx context.Context, ts []model.StatusTransition) error
	// TransitionWithMessage 状态迁移与消息写入在同一事务内完成
	TransitionWithMessage(ctx context.Context, t model.StatusTransition, msg *model.Message) error
	// NextID 生成 PS-<year>-<seq> 形式的下一个 ID
	NextID(ctx context.Context, year int) (string, error)
}

// MessageRepository 消息数据访问接口
type MessageRepository interface {
	Create(ctx context.Context, msg *model.Message) error
	// List 按时间升序返回全部消息
	List(ctx context.Context) ([]model.Message, error)
	ListByPS(ctx context.Context, psID string) ([]model.Message, error)
}

// AlertRepository 提醒数据访问接口
type AlertRepository interface {
	Create(ctx context.Context, alert *model.Alert) error
	// List 按时间倒序返回全部提醒
	List(ctx context.Context) ([]model.Alert, error)
}

// UserRepository 用户数据访问接口
type UserRepository interface {
	Create(ctx context.Context, user *model.User) error
	GetByID(ctx context.Context, id string) (*model.User, error)
	GetByEmail(ctx context.Context, email string) (*model.User, error)
	UpdatePassword(ctx context.Context, id, passwordHash string) error
}

// DepartmentRepository 部门数据访问接口
type DepartmentRepository interface {
	Create(ctx context.Context, dept *model.Department) error
	GetByID(ctx context.Context, id string) (*model.Department, error)
}

// translateError 将 gorm 错误统一为存储层错误
func translateError(err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return pkgerrors.ErrRecordNotFound
	}
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return pkgerrors.ErrDuplicateID
	}
	return err
}

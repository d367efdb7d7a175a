package service

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/Rajyalaxmi29/incamp-dept-hub/internal/dto"
	"github.com/Rajyalaxmi29/incamp-dept-hub/internal/model"
	"github.com/Rajyalaxmi29/incamp-dept-hub/internal/repository"
	pkgerrors "github.com/Rajyalaxmi29/incamp-dept-hub/pkg/errors"
)

// MessageService 消息会话业务接口
type MessageService interface {
	Threads(ctx context.Context) (*dto.ThreadListResponse, error)
	// Thread 查看单个会话，不改变已读状态
	Thread(ctx context.Context, psID string) (*dto.ThreadResponse, error)
	// Reply 以部门管理员身份追加回复
	Reply(ctx context.Context, userID, psID string, req *dto.ReplyRequest) (*dto.MessageResponse, error)
}

type messageService struct {
	repo   *repository.Repository
	cal    *calendar
	logger *zap.Logger
}

// NewMessageService 创建 MessageService 实例
func NewMessageService(repo *repository.Repository, cal *calendar, logger *zap.Logger) MessageService {
	return &messageService{repo: repo, cal: cal, logger: logger}
}

func (s *messageService) Threads(ctx context.Context) (*dto.ThreadListResponse, error) {
	msgs, err := s.repo.Message.List(ctx)
	if err != nil {
		s.logger.Error("查询消息失败", zap.Error(err))
		return nil, err
	}

	threads := GroupThreads(msgs)
	resp := &dto.ThreadListResponse{Threads: make([]dto.ThreadSummary, 0, len(threads))}
	for i := range threads {
		t := &threads[i]
		last := t.Latest()
		resp.Threads = append(resp.Threads, dto.ThreadSummary{
			PSID:         t.PSID,
			PSTitle:      t.PSTitle,
			MessageCount: len(t.Messages),
			UnreadCount:  t.Unread,
			LastMessage:  toMessageResponse(&last),
		})
		resp.TotalUnread += t.Unread
	}
	return resp, nil
}

func (s *messageService) Thread(ctx context.Context, psID string) (*dto.ThreadResponse, error) {
	msgs, err := s.repo.Message.ListByPS(ctx, psID)
	if err != nil {
		s.logger.Error("查询会话失败", zap.String("ps_id", psID), zap.Error(err))
		return nil, err
	}

	resp := &dto.ThreadResponse{PSID: psID, Messages: make([]dto.MessageResponse, 0, len(msgs))}
	if len(msgs) == 0 {
		// 无消息时以问题陈述是否存在区分空会话与 NotFound
		ps, err := s.repo.ProblemStatement.GetByID(ctx, psID)
		if err != nil {
			if errors.Is(err, pkgerrors.ErrRecordNotFound) {
				return nil, ErrProblemStatementNotFound
			}
			return nil, err
		}
		resp.PSTitle = ps.Title
		return resp, nil
	}

	threads := GroupThreads(msgs)
	t := &threads[0]
	resp.PSTitle = t.PSTitle
	resp.UnreadCount = t.Unread
	for i := range t.Messages {
		resp.Messages = append(resp.Messages, toMessageResponse(&t.Messages[i]))
	}
	return resp, nil
}

func (s *messageService) Reply(ctx context.Context, userID, psID string, req *dto.ReplyRequest) (*dto.MessageResponse, error) {
	content := strings.TrimSpace(req.Content)
	if content == "" {
		return nil, newValidationError("content", "回复内容不能为空")
	}

	ps, err := s.repo.ProblemStatement.GetByID(ctx, psID)
	if err != nil {
		if errors.Is(err, pkgerrors.ErrRecordNotFound) {
			return nil, ErrProblemStatementNotFound
		}
		s.logger.Error("查询问题陈述失败", zap.String("ps_id", psID), zap.Error(err))
		return nil, err
	}

	user, err := s.repo.User.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, pkgerrors.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}

	msg := &model.Message{
		MessageID:  "msg_" + uuid.NewString(),
		PSID:       ps.PSID,
		PSTitle:    ps.Title,
		Sender:     user.Name,
		SenderRole: model.SenderDepartmentAdmin,
		Content:    content,
		Timestamp:  s.cal.Now(),
		IsRead:     true,
	}
	if err := s.repo.Message.Create(ctx, msg); err != nil {
		s.logger.Error("写入回复失败", zap.String("ps_id", psID), zap.Error(err))
		return nil, err
	}

	resp := toMessageResponse(msg)
	return &resp, nil
}

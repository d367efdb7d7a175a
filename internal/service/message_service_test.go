package service

import (
	"context"
	"errors"
	"testing"

	"github.com/Rajyalaxmi29/incamp-dept-hub/internal/dto"
	"github.com/Rajyalaxmi29/incamp-dept-hub/internal/model"
	"github.com/Rajyalaxmi29/incamp-dept-hub/internal/repository"
)

func TestThreads(t *testing.T) {
	env := newTestEnv(t)

	resp, err := env.messages().Threads(context.Background())
	if err != nil {
		t.Fatalf("Threads 失败: %v", err)
	}
	if len(resp.Threads) != 3 {
		t.Fatalf("期望 3 个会话，实际 %d", len(resp.Threads))
	}
	order := []string{"PS-2024-001", "PS-2024-002", "PS-2024-004"}
	for i, id := range order {
		if resp.Threads[i].PSID != id {
			t.Errorf("会话 %d: 期望 %s，实际 %s", i, id, resp.Threads[i].PSID)
		}
	}
	if resp.TotalUnread != 2 {
		t.Errorf("期望总未读 2，实际 %d", resp.TotalUnread)
	}
}

func TestThread_DoesNotMarkRead(t *testing.T) {
	env := newTestEnv(t)
	svc := env.messages()
	ctx := context.Background()

	for i := 0; i < 2; i++ {
		resp, err := svc.Thread(ctx, "PS-2024-004")
		if err != nil {
			t.Fatalf("Thread 失败: %v", err)
		}
		if resp.UnreadCount != 1 || resp.Messages[0].IsRead {
			t.Errorf("查看会话不应改变已读状态: %+v", resp)
		}
	}
}

func TestThread_EmptyAndUnknown(t *testing.T) {
	env := newTestEnv(t)
	svc := env.messages()
	ctx := context.Background()

	resp, err := svc.Thread(ctx, "PS-2024-003")
	if err != nil {
		t.Fatalf("无消息的问题陈述应返回空会话: %v", err)
	}
	if len(resp.Messages) != 0 || resp.PSTitle != "Campus Waste Segregation Platform" {
		t.Errorf("空会话错误: %+v", resp)
	}

	if _, err := svc.Thread(ctx, "PS-2099-001"); !errors.Is(err, ErrProblemStatementNotFound) {
		t.Errorf("期望 ErrProblemStatementNotFound，实际 %v", err)
	}
}

func TestReply(t *testing.T) {
	env := newTestEnv(t)
	svc := env.messages()
	ctx := context.Background()
	uid := repository.SeedDepartmentAdminID

	msg, err := svc.Reply(ctx, uid, "PS-2024-004", &dto.ReplyRequest{Content: "  Updated the budget section.  "})
	if err != nil {
		t.Fatalf("Reply 失败: %v", err)
	}
	if msg.Content != "Updated the budget section." || !msg.IsRead {
		t.Errorf("回复内容错误: %+v", msg)
	}
	if msg.SenderRole != string(model.SenderDepartmentAdmin) || msg.Sender != "Dr. Rajesh Kumar" {
		t.Errorf("回复发送方错误: %+v", msg)
	}
	if msg.PSTitle != "Virtual Lab Experiment Simulator" {
		t.Errorf("回复应携带问题陈述标题，实际 %q", msg.PSTitle)
	}

	thread, _ := svc.Thread(ctx, "PS-2024-004")
	if len(thread.Messages) != 2 || thread.Messages[0].ID != "msg_001" || thread.Messages[1].ID != msg.ID {
		t.Errorf("回复应追加到会话末尾: %+v", thread.Messages)
	}

	threads, _ := svc.Threads(ctx)
	if threads.Threads[0].PSID != "PS-2024-004" {
		t.Errorf("回复后该会话应成为最近活动，实际 %s", threads.Threads[0].PSID)
	}
}

func TestReply_Errors(t *testing.T) {
	env := newTestEnv(t)
	svc := env.messages()
	ctx := context.Background()
	uid := repository.SeedDepartmentAdminID

	if _, err := svc.Reply(ctx, uid, "PS-2024-004", &dto.ReplyRequest{Content: " \n\t "}); !errors.Is(err, ErrValidation) {
		t.Errorf("空白内容应返回 ErrValidation，实际 %v", err)
	}
	if _, err := svc.Reply(ctx, uid, "PS-2099-001", &dto.ReplyRequest{Content: "hi"}); !errors.Is(err, ErrProblemStatementNotFound) {
		t.Errorf("未知问题陈述应返回 ErrProblemStatementNotFound，实际 %v", err)
	}

	msgs, _ := env.repo.Message.List(ctx)
	if len(msgs) != 3 {
		t.Errorf("失败的回复不应写入消息，实际 %d 条", len(msgs))
	}
}

package redis

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"go.uber.org/zap"

	"github.com/Rajyalaxmi29/incamp-dept-hub/config"
)

func newTestClient(t *testing.T) (*Client, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	c, err := NewClient(&config.RedisConfig{Addr: mr.Addr()}, zap.NewNop())
	if err != nil {
		t.Fatalf("NewClient 应成功: %v", err)
	}
	t.Cleanup(func() { _ = c.Close() })
	return c, mr
}

func TestBlacklistToken(t *testing.T) {
	c, mr := newTestClient(t)
	ctx := context.Background()

	if err := c.BlacklistToken(ctx, "jti-1", time.Minute); err != nil {
		t.Fatalf("BlacklistToken 应成功: %v", err)
	}

	ok, err := c.IsBlacklisted(ctx, "jti-1")
	if err != nil || !ok {
		t.Errorf("期望 jti-1 在黑名单中，ok=%v err=%v", ok, err)
	}

	ok, _ = c.IsBlacklisted(ctx, "jti-2")
	if ok {
		t.Error("jti-2 不应在黑名单中")
	}

	mr.FastForward(2 * time.Minute)
	ok, _ = c.IsBlacklisted(ctx, "jti-1")
	if ok {
		t.Error("过期后 jti-1 不应仍在黑名单中")
	}
}

func TestBlacklistToken_ExpiredTTL(t *testing.T) {
	c, mr := newTestClient(t)

	if err := c.BlacklistToken(context.Background(), "jti-x", 0); err != nil {
		t.Fatalf("TTL<=0 时应直接返回 nil: %v", err)
	}
	if mr.Exists(blacklistPrefix + "jti-x") {
		t.Error("TTL<=0 时不应写入黑名单")
	}
}

func TestCheckRateLimit(t *testing.T) {
	c, _ := newTestClient(t)
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		ok, err := c.CheckRateLimit(ctx, "rl:test", 3, time.Minute)
		if err != nil {
			t.Fatalf("CheckRateLimit 失败: %v", err)
		}
		if !ok {
			t.Fatalf("第 %d 次请求应放行", i+1)
		}
	}

	ok, err := c.CheckRateLimit(ctx, "rl:test", 3, time.Minute)
	if err != nil {
		t.Fatalf("CheckRateLimit 失败: %v", err)
	}
	if ok {
		t.Error("超过限额的请求应被拒绝")
	}
}

func TestNewClient_Unreachable(t *testing.T) {
	_, err := NewClient(&config.RedisConfig{Addr: "127.0.0.1:1"}, zap.NewNop())
	if err == nil {
		t.Error("无法连接时应返回错误")
	}
}

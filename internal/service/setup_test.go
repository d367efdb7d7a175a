package service

import (
	"context"
	"testing"
	"time"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"github.com/Rajyalaxmi29/incamp-dept-hub/config"
	"github.com/Rajyalaxmi29/incamp-dept-hub/internal/repository"
	"github.com/Rajyalaxmi29/incamp-dept-hub/pkg/jwt"
)

const testPassword = "incamp@2024"

// fixedNow 2024-01-29，距截止日 2024-02-05 共 7 天
var fixedNow = time.Date(2024, 1, 29, 10, 0, 0, 0, time.UTC)

func testConfig() *config.Config {
	return &config.Config{
		Auth: config.AuthConfig{
			JWTSecret:     "test-secret-key-for-unit-testing",
			SessionTTL:    time.Hour,
			Mode:          "mock",
			MockDelay:     10 * time.Millisecond,
			MockUserEmail: "rajesh.kumar@university.edu",
			LoginTimeout:  time.Second,
		},
		Portal: config.PortalConfig{
			Deadline:    "2024-02-05",
			Timezone:    "UTC",
			RecentLimit: 5,
		},
	}
}

type testEnv struct {
	cfg  *config.Config
	repo *repository.Repository
	cal  *calendar
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	cfg := testConfig()

	hash, err := bcrypt.GenerateFromPassword([]byte(testPassword), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("生成密码哈希失败: %v", err)
	}
	repo := repository.NewMemoryRepository()
	if _, err := repo.Seed(context.Background(), string(hash), time.UTC); err != nil {
		t.Fatalf("Seed 失败: %v", err)
	}

	cal := newCalendar(&cfg.Portal)
	cal.now = func() time.Time { return fixedNow }

	return &testEnv{cfg: cfg, repo: repo, cal: cal}
}

func (e *testEnv) auth(blacklist TokenBlacklist) AuthService {
	return NewAuthService(&e.cfg.Auth, e.repo, jwt.NewManager(&e.cfg.Auth), NewSessionSlot(), blacklist, zap.NewNop())
}

func (e *testEnv) problemStatements() ProblemStatementService {
	return NewProblemStatementService(e.repo, e.cal, zap.NewNop())
}

func (e *testEnv) submission() SubmissionService {
	return NewSubmissionService(&e.cfg.Portal, e.repo, e.cal, zap.NewNop())
}

func (e *testEnv) dashboard() DashboardService {
	return NewDashboardService(&e.cfg.Portal, e.repo, e.cal, zap.NewNop())
}

func (e *testEnv) messages() MessageService {
	return NewMessageService(e.repo, e.cal, zap.NewNop())
}

func (e *testEnv) reviews() ReviewService {
	return NewReviewService(e.repo, e.cal, zap.NewNop())
}

package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/Rajyalaxmi29/incamp-dept-hub/config"
	"github.com/Rajyalaxmi29/incamp-dept-hub/internal/dto"
	"github.com/Rajyalaxmi29/incamp-dept-hub/internal/model"
	"github.com/Rajyalaxmi29/incamp-dept-hub/internal/service"
	pkgerrors "github.com/Rajyalaxmi29/incamp-dept-hub/pkg/errors"
	"github.com/Rajyalaxmi29/incamp-dept-hub/pkg/response"
)

func init() {
	gin.SetMode(gin.TestMode)
}

// ═══════════════════════════════════════════════════════════
// Mock Services
// ═══════════════════════════════════════════════════════════

// ── Mock AuthService ──

type mockAuthService struct {
	loginResult   *dto.LoginResponse
	loginErr      error
	logoutErr     error
	logoutCalls   int
	profileResult *dto.UserResponse
	profileErr    error
	changePassErr error
}

func (m *mockAuthService) Login(_ context.Context, _ *dto.LoginRequest) (*dto.LoginResponse, error) {
	return m.loginResult, m.loginErr
}
func (m *mockAuthService) Logout(_ context.Context, _ *model.Session) error {
	m.logoutCalls++
	return m.logoutErr
}
func (m *mockAuthService) Authenticate(_ context.Context, _ string) (*model.Session, error) {
	return nil, service.ErrSessionInvalid
}
func (m *mockAuthService) GetProfile(_ context.Context, _ string) (*dto.UserResponse, error) {
	return m.profileResult, m.profileErr
}
func (m *mockAuthService) ChangePassword(_ context.Context, _ string, _ *dto.ChangePasswordRequest) error {
	return m.changePassErr
}

// ── Mock ProblemStatementService ──

type mockPSService struct {
	listResult *dto.ProblemStatementListResponse
	listQuery  string
	getResult  *dto.ProblemStatementResponse
	getErr     error
	createErr  error
	updateErr  error
	deleteErr  error
}

func (m *mockPSService) List(_ context.Context, req *dto.ListProblemStatementsRequest) (*dto.ProblemStatementListResponse, error) {
	m.listQuery = req.Q
	return m.listResult, nil
}
func (m *mockPSService) GetByID(_ context.Context, _ string) (*dto.ProblemStatementResponse, error) {
	return m.getResult, m.getErr
}
func (m *mockPSService) Create(_ context.Context, req *dto.CreateProblemStatementRequest) (*dto.ProblemStatementResponse, error) {
	if m.createErr != nil {
		return nil, m.createErr
	}
	return &dto.ProblemStatementResponse{ID: "PS-2024-007", Title: req.Title, Status: string(model.StatusDraft)}, nil
}
func (m *mockPSService) Update(_ context.Context, id string, _ *dto.UpdateProblemStatementRequest) (*dto.ProblemStatementResponse, error) {
	if m.updateErr != nil {
		return nil, m.updateErr
	}
	return &dto.ProblemStatementResponse{ID: id}, nil
}
func (m *mockPSService) Delete(_ context.Context, _ string) error {
	return m.deleteErr
}

// ── Mock SubmissionService ──

type mockSubmissionService struct {
	readiness   *dto.ReadinessResponse
	submitReq   *dto.SubmitRequest
	submitUser  string
	submitErr   error
	submitCount int
}

func (m *mockSubmissionService) Readiness(_ context.Context) (*dto.ReadinessResponse, error) {
	return m.readiness, nil
}
func (m *mockSubmissionService) Submit(_ context.Context, userID string, req *dto.SubmitRequest) (*dto.SubmitResponse, error) {
	m.submitUser = userID
	m.submitReq = req
	if m.submitErr != nil {
		return nil, m.submitErr
	}
	return &dto.SubmitResponse{Count: m.submitCount}, nil
}

// ── Mock DashboardService ──

type mockDashboardService struct {
	result *dto.DashboardResponse
	err    error
}

func (m *mockDashboardService) Get(_ context.Context) (*dto.DashboardResponse, error) {
	return m.result, m.err
}

// ── Mock MessageService ──

type mockMessageService struct {
	threadErr error
	replyErr  error
	replyPS   string
}

func (m *mockMessageService) Threads(_ context.Context) (*dto.ThreadListResponse, error) {
	return &dto.ThreadListResponse{TotalUnread: 2}, nil
}
func (m *mockMessageService) Thread(_ context.Context, psID string) (*dto.ThreadResponse, error) {
	if m.threadErr != nil {
		return nil, m.threadErr
	}
	return &dto.ThreadResponse{}, nil
}
func (m *mockMessageService) Reply(_ context.Context, _ string, psID string, req *dto.ReplyRequest) (*dto.MessageResponse, error) {
	m.replyPS = psID
	if m.replyErr != nil {
		return nil, m.replyErr
	}
	return &dto.MessageResponse{ID: "msg_x", PSID: psID, Content: req.Content, IsRead: true}, nil
}

// ── Mock ReviewService ──

type mockReviewService struct {
	transitionErr error
	exportErr     error
	icsErr        error
	feedback      string
}

func (m *mockReviewService) List(_ context.Context) (*dto.ReviewListResponse, error) {
	return &dto.ReviewListResponse{}, nil
}
func (m *mockReviewService) BeginReview(_ context.Context, id string) (*dto.ProblemStatementResponse, error) {
	if m.transitionErr != nil {
		return nil, m.transitionErr
	}
	return &dto.ProblemStatementResponse{ID: id, Status: string(model.StatusPendingReview)}, nil
}
func (m *mockReviewService) Approve(_ context.Context, id string) (*dto.ProblemStatementResponse, error) {
	if m.transitionErr != nil {
		return nil, m.transitionErr
	}
	return &dto.ProblemStatementResponse{ID: id, Status: string(model.StatusApproved)}, nil
}
func (m *mockReviewService) RequestRevision(_ context.Context, _, id string, req *dto.RequestRevisionRequest) (*dto.ProblemStatementResponse, error) {
	m.feedback = req.Feedback
	if m.transitionErr != nil {
		return nil, m.transitionErr
	}
	return &dto.ProblemStatementResponse{ID: id, Status: string(model.StatusRevisionNeeded)}, nil
}
func (m *mockReviewService) ExportXLSX(_ context.Context) (*bytes.Buffer, string, error) {
	if m.exportErr != nil {
		return nil, "", m.exportErr
	}
	return bytes.NewBufferString("PK-fake-xlsx"), "reviews_2024-01-29.xlsx", nil
}
func (m *mockReviewService) DeadlineICS(_ context.Context) ([]byte, string, error) {
	if m.icsErr != nil {
		return nil, "", m.icsErr
	}
	return []byte("BEGIN:VCALENDAR\r\nEND:VCALENDAR\r\n"), "deadline_2024-02-05.ics", nil
}

// ═══════════════════════════════════════════════════════════
// Helpers
// ═══════════════════════════════════════════════════════════

func testAuthConfig() *config.AuthConfig {
	return &config.AuthConfig{
		SessionTTL: time.Hour,
		Cookie:     config.CookieConfig{Secure: true, Domain: "portal.example.edu"},
	}
}

// withAuth 模拟 SessionAuth 中间件注入的上下文
func withAuth(c *gin.Context) {
	c.Set("user_id", "usr_001")
	c.Set("role", model.RoleDepartmentAdmin)
	c.Set("department_id", "dept_cse")
	c.Set("session", &model.Session{
		JTI:       "test-jti",
		UserID:    "usr_001",
		Role:      model.RoleDepartmentAdmin,
		ExpiresAt: time.Now().Add(time.Hour),
	})
}

func jsonBody(v interface{}) io.Reader {
	b, _ := json.Marshal(v)
	return bytes.NewReader(b)
}

func parseResponse(w *httptest.ResponseRecorder) response.Response {
	var resp response.Response
	json.Unmarshal(w.Body.Bytes(), &resp)
	return resp
}

// serve 以给定中间件链执行单个路由
func serve(method, route, target string, body io.Reader, handlers ...gin.HandlerFunc) *httptest.ResponseRecorder {
	r := gin.New()
	r.Handle(method, route, handlers...)

	req := httptest.NewRequest(method, target, body)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

// ═══════════════════════════════════════════════════════════
// AuthHandler Tests
// ═══════════════════════════════════════════════════════════

func TestAuthHandler_Login_Success(t *testing.T) {
	mock := &mockAuthService{
		loginResult: &dto.LoginResponse{
			Token:     "session-token",
			ExpiresAt: "2024-01-29T11:00:00Z",
			User:      dto.UserResponse{ID: "usr_001", Name: "Dr. Rajesh Kumar"},
		},
	}
	h := NewAuthHandler(mock, testAuthConfig())

	w := serve("POST", "/login", "/login", jsonBody(dto.LoginRequest{
		Email:    "rajesh.kumar@university.edu",
		Password: "anything",
	}), h.Login)

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	if resp := parseResponse(w); resp.Code != 0 {
		t.Errorf("expected code 0, got %d", resp.Code)
	}

	var found *http.Cookie
	for _, c := range w.Result().Cookies() {
		if c.Name == "session_token" {
			found = c
		}
	}
	if found == nil {
		t.Fatal("expected session_token cookie to be set")
	}
	if found.Value != "session-token" {
		t.Errorf("cookie value = %q", found.Value)
	}
	if !found.HttpOnly || !found.Secure {
		t.Errorf("cookie should be HttpOnly and Secure: %+v", found)
	}
	if found.MaxAge != 3600 {
		t.Errorf("cookie MaxAge = %d, want 3600", found.MaxAge)
	}
}

func TestAuthHandler_Login_FormBody(t *testing.T) {
	mock := &mockAuthService{loginResult: &dto.LoginResponse{Token: "t"}}
	h := NewAuthHandler(mock, testAuthConfig())

	r := gin.New()
	r.POST("/login", h.Login)
	req := httptest.NewRequest("POST", "/login", strings.NewReader("email=a%40b.edu&password=x"))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Errorf("expected 200, got %d", w.Code)
	}
}

func TestAuthHandler_Login_BadJSON(t *testing.T) {
	h := NewAuthHandler(&mockAuthService{}, testAuthConfig())

	w := serve("POST", "/login", "/login", strings.NewReader("{invalid"), h.Login)

	if w.Code != http.StatusBadRequest {
		t.Errorf("expected 400, got %d", w.Code)
	}
	if resp := parseResponse(w); resp.Code != 10001 {
		t.Errorf("expected code 10001, got %d", resp.Code)
	}
}

func TestAuthHandler_Login_ErrorMapping(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
		wantCode   int
	}{
		{"InvalidCredentials", service.ErrInvalidCredentials, http.StatusUnauthorized, 11001},
		{"Timeout", service.ErrLoginTimeout, http.StatusGatewayTimeout, 11002},
		{"Unknown", fmt.Errorf("boom"), http.StatusInternalServerError, 50000},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := NewAuthHandler(&mockAuthService{loginErr: tt.err}, testAuthConfig())
			w := serve("POST", "/login", "/login", jsonBody(dto.LoginRequest{}), h.Login)

			if w.Code != tt.wantStatus {
				t.Errorf("expected %d, got %d", tt.wantStatus, w.Code)
			}
			if resp := parseResponse(w); resp.Code != tt.wantCode {
				t.Errorf("expected code %d, got %d", tt.wantCode, resp.Code)
			}
			if len(w.Result().Cookies()) != 0 {
				t.Error("failed login must not set a cookie")
			}
		})
	}
}

func TestAuthHandler_SessionStatus(t *testing.T) {
	mock := &mockAuthService{profileResult: &dto.UserResponse{ID: "usr_001"}}
	h := NewAuthHandler(mock, testAuthConfig())

	t.Run("Anonymous", func(t *testing.T) {
		w := serve("GET", "/login", "/login", nil, h.SessionStatus)
		if w.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d", w.Code)
		}
		if !strings.Contains(w.Body.String(), `"authenticated":false`) {
			t.Errorf("unexpected body: %s", w.Body.String())
		}
	})

	t.Run("LoggedIn", func(t *testing.T) {
		w := serve("GET", "/login", "/login", nil, withAuth, h.SessionStatus)
		body := w.Body.String()
		if !strings.Contains(body, `"authenticated":true`) || !strings.Contains(body, `"redirect":"/dashboard"`) {
			t.Errorf("unexpected body: %s", body)
		}
	})
}

func TestAuthHandler_Logout_ClearsCookie(t *testing.T) {
	mock := &mockAuthService{}
	h := NewAuthHandler(mock, testAuthConfig())

	w := serve("POST", "/logout", "/logout", nil, withAuth, h.Logout)

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	if mock.logoutCalls != 1 {
		t.Errorf("expected Logout called once, got %d", mock.logoutCalls)
	}
	cleared := false
	for _, c := range w.Result().Cookies() {
		if c.Name == "session_token" && c.MaxAge < 0 {
			cleared = true
		}
	}
	if !cleared {
		t.Error("expected session_token cookie to be cleared")
	}
}

func TestAuthHandler_Logout_WithoutSession(t *testing.T) {
	h := NewAuthHandler(&mockAuthService{}, testAuthConfig())

	w := serve("POST", "/logout", "/logout", nil, h.Logout)

	if w.Code != http.StatusOK {
		t.Errorf("logout without session should succeed, got %d", w.Code)
	}
}

func TestAuthHandler_GetProfile_Unauthenticated(t *testing.T) {
	h := NewAuthHandler(&mockAuthService{}, testAuthConfig())

	w := serve("GET", "/profile", "/profile", nil, h.GetProfile)

	if w.Code != http.StatusUnauthorized {
		t.Errorf("expected 401, got %d", w.Code)
	}
}

func TestAuthHandler_ChangePassword_Errors(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
		wantCode   int
	}{
		{"WrongCurrent", service.ErrInvalidCredentials, http.StatusBadRequest, 15003},
		{"Validation", &service.ValidationError{Field: "confirm_password", Message: "两次输入的新密码不一致"}, http.StatusUnprocessableEntity, 15002},
		{"UserGone", service.ErrUserNotFound, http.StatusNotFound, 15001},
	}

	body := dto.ChangePasswordRequest{CurrentPassword: "old-password", NewPassword: "new-password", ConfirmPassword: "new-password"}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := NewAuthHandler(&mockAuthService{changePassErr: tt.err}, testAuthConfig())
			w := serve("PUT", "/profile/password", "/profile/password", jsonBody(body), withAuth, h.ChangePassword)

			if w.Code != tt.wantStatus {
				t.Errorf("expected %d, got %d", tt.wantStatus, w.Code)
			}
			resp := parseResponse(w)
			if resp.Code != tt.wantCode {
				t.Errorf("expected code %d, got %d", tt.wantCode, resp.Code)
			}
		})
	}
}

func TestAuthHandler_ChangePassword_ShortPassword(t *testing.T) {
	h := NewAuthHandler(&mockAuthService{}, testAuthConfig())
	body := dto.ChangePasswordRequest{CurrentPassword: "old", NewPassword: "short", ConfirmPassword: "short"}

	w := serve("PUT", "/profile/password", "/profile/password", jsonBody(body), withAuth, h.ChangePassword)

	if w.Code != http.StatusBadRequest {
		t.Errorf("expected 400, got %d", w.Code)
	}
}

// ═══════════════════════════════════════════════════════════
// ProblemStatementHandler Tests
// ═══════════════════════════════════════════════════════════

func TestProblemStatementHandler_List_PassesQuery(t *testing.T) {
	mock := &mockPSService{listResult: &dto.ProblemStatementListResponse{Total: 1}}
	h := NewProblemStatementHandler(mock)

	w := serve("GET", "/problem-statements", "/problem-statements?q=edtech", nil, h.List)

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	if mock.listQuery != "edtech" {
		t.Errorf("query = %q, want edtech", mock.listQuery)
	}
}

func TestProblemStatementHandler_Create(t *testing.T) {
	h := NewProblemStatementHandler(&mockPSService{})

	w := serve("POST", "/problem-statements", "/problem-statements", jsonBody(dto.CreateProblemStatementRequest{
		Title:       "Library Seat Finder",
		Category:    "Operations",
		Description: "Find free seats",
	}), h.Create)

	if w.Code != http.StatusCreated {
		t.Errorf("expected 201, got %d", w.Code)
	}
}

func TestProblemStatementHandler_Create_Validation(t *testing.T) {
	mock := &mockPSService{createErr: &service.ValidationError{Field: "title", Message: "标题不能为空"}}
	h := NewProblemStatementHandler(mock)

	w := serve("POST", "/problem-statements", "/problem-statements", jsonBody(dto.CreateProblemStatementRequest{}), h.Create)

	if w.Code != http.StatusUnprocessableEntity {
		t.Errorf("expected 422, got %d", w.Code)
	}
	resp := parseResponse(w)
	if resp.Code != 12001 || resp.Details != "title" {
		t.Errorf("unexpected response: %+v", resp)
	}
}

func TestProblemStatementHandler_ErrorMapping(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
		wantCode   int
	}{
		{"NotFound", service.ErrProblemStatementNotFound, http.StatusNotFound, 12002},
		{"PermissionDenied", service.ErrPermissionDenied, http.StatusForbidden, 12003},
		{"InvalidTransition", service.ErrInvalidTransition, http.StatusConflict, 12004},
		{"StatusConflict", pkgerrors.ErrStatusConflict, http.StatusConflict, 12005},
		{"Wrapped", fmt.Errorf("删除失败: %w", service.ErrPermissionDenied), http.StatusForbidden, 12003},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := NewProblemStatementHandler(&mockPSService{deleteErr: tt.err})
			w := serve("DELETE", "/problem-statements/:id", "/problem-statements/PS-2024-001", nil, h.Delete)

			if w.Code != tt.wantStatus {
				t.Errorf("expected %d, got %d", tt.wantStatus, w.Code)
			}
			if resp := parseResponse(w); resp.Code != tt.wantCode {
				t.Errorf("expected code %d, got %d", tt.wantCode, resp.Code)
			}
		})
	}
}

func TestProblemStatementHandler_Update_BadJSON(t *testing.T) {
	h := NewProblemStatementHandler(&mockPSService{})

	w := serve("PUT", "/problem-statements/:id", "/problem-statements/PS-2024-005", strings.NewReader("{"), h.Update)

	if w.Code != http.StatusBadRequest {
		t.Errorf("expected 400, got %d", w.Code)
	}
}

// ═══════════════════════════════════════════════════════════
// SubmissionHandler Tests
// ═══════════════════════════════════════════════════════════

func TestSubmissionHandler_Submit_EmptyBody(t *testing.T) {
	mock := &mockSubmissionService{submitCount: 3}
	h := NewSubmissionHandler(mock)

	w := serve("POST", "/submit", "/submit", nil, withAuth, h.Submit)

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}
	if mock.submitUser != "usr_001" {
		t.Errorf("submitter = %q", mock.submitUser)
	}
	if mock.submitReq == nil || len(mock.submitReq.Attachments) != 0 {
		t.Errorf("expected empty request, got %+v", mock.submitReq)
	}
}

func TestSubmissionHandler_Submit_WithAttachments(t *testing.T) {
	mock := &mockSubmissionService{submitCount: 1}
	h := NewSubmissionHandler(mock)

	body := dto.SubmitRequest{Attachments: []dto.AttachmentMeta{{FileName: "brief.pdf", Size: 2048}}}
	w := serve("POST", "/submit", "/submit", jsonBody(body), withAuth, h.Submit)

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	if len(mock.submitReq.Attachments) != 1 || mock.submitReq.Attachments[0].FileName != "brief.pdf" {
		t.Errorf("attachments not forwarded: %+v", mock.submitReq.Attachments)
	}
}

func TestSubmissionHandler_ErrorMapping(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
		wantCode   int
	}{
		{"NothingToSubmit", service.ErrNothingToSubmit, http.StatusConflict, 13001},
		{"MissingFields", &service.ValidationError{Field: "PS-2024-006", Message: "缺少必填字段: description"}, http.StatusUnprocessableEntity, 13002},
		{"Conflict", fmt.Errorf("批量提交失败: %w", pkgerrors.ErrStatusConflict), http.StatusConflict, 13003},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := NewSubmissionHandler(&mockSubmissionService{submitErr: tt.err})
			w := serve("POST", "/submit", "/submit", nil, withAuth, h.Submit)

			if w.Code != tt.wantStatus {
				t.Errorf("expected %d, got %d", tt.wantStatus, w.Code)
			}
			if resp := parseResponse(w); resp.Code != tt.wantCode {
				t.Errorf("expected code %d, got %d", tt.wantCode, resp.Code)
			}
		})
	}
}

func TestSubmissionHandler_Readiness(t *testing.T) {
	mock := &mockSubmissionService{readiness: &dto.ReadinessResponse{Count: 3, Enabled: true}}
	h := NewSubmissionHandler(mock)

	w := serve("GET", "/submit", "/submit", nil, h.Readiness)

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	if !strings.Contains(w.Body.String(), `"enabled":true`) {
		t.Errorf("unexpected body: %s", w.Body.String())
	}
}

// ═══════════════════════════════════════════════════════════
// DashboardHandler Tests
// ═══════════════════════════════════════════════════════════

func TestDashboardHandler_Get(t *testing.T) {
	h := NewDashboardHandler(&mockDashboardService{result: &dto.DashboardResponse{}})
	if w := serve("GET", "/dashboard", "/dashboard", nil, h.Get); w.Code != http.StatusOK {
		t.Errorf("expected 200, got %d", w.Code)
	}

	h = NewDashboardHandler(&mockDashboardService{err: fmt.Errorf("db down")})
	if w := serve("GET", "/dashboard", "/dashboard", nil, h.Get); w.Code != http.StatusInternalServerError {
		t.Errorf("expected 500, got %d", w.Code)
	}
}

// ═══════════════════════════════════════════════════════════
// MessageHandler Tests
// ═══════════════════════════════════════════════════════════

func TestMessageHandler_Reply(t *testing.T) {
	mock := &mockMessageService{}
	h := NewMessageHandler(mock)

	w := serve("POST", "/messages/:psId", "/messages/PS-2024-004", jsonBody(dto.ReplyRequest{Content: "已更新"}), withAuth, h.Reply)

	if w.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d", w.Code)
	}
	if mock.replyPS != "PS-2024-004" {
		t.Errorf("psId = %q", mock.replyPS)
	}
}

func TestMessageHandler_ErrorMapping(t *testing.T) {
	h := NewMessageHandler(&mockMessageService{threadErr: service.ErrProblemStatementNotFound})
	w := serve("GET", "/messages/:psId", "/messages/PS-9999-999", nil, h.Thread)
	if w.Code != http.StatusNotFound || parseResponse(w).Code != 14002 {
		t.Errorf("unexpected response %d %s", w.Code, w.Body.String())
	}

	h = NewMessageHandler(&mockMessageService{replyErr: &service.ValidationError{Field: "content", Message: "回复内容不能为空"}})
	w = serve("POST", "/messages/:psId", "/messages/PS-2024-004", jsonBody(dto.ReplyRequest{}), withAuth, h.Reply)
	if w.Code != http.StatusUnprocessableEntity || parseResponse(w).Code != 14001 {
		t.Errorf("unexpected response %d %s", w.Code, w.Body.String())
	}
}

// ═══════════════════════════════════════════════════════════
// ReviewHandler Tests
// ═══════════════════════════════════════════════════════════

func TestReviewHandler_ExportXLSX(t *testing.T) {
	h := NewReviewHandler(&mockReviewService{})

	w := serve("GET", "/reviews/export.xlsx", "/reviews/export.xlsx", nil, h.ExportXLSX)

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	if ct := w.Header().Get("Content-Type"); ct != contentTypeXLSX {
		t.Errorf("Content-Type = %q", ct)
	}
	if cd := w.Header().Get("Content-Disposition"); !strings.Contains(cd, "reviews_2024-01-29.xlsx") {
		t.Errorf("Content-Disposition = %q", cd)
	}
}

func TestReviewHandler_DeadlineICS(t *testing.T) {
	h := NewReviewHandler(&mockReviewService{})

	w := serve("GET", "/reviews/deadline.ics", "/reviews/deadline.ics", nil, h.DeadlineICS)

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	if !strings.HasPrefix(w.Body.String(), "BEGIN:VCALENDAR") {
		t.Errorf("unexpected body: %q", w.Body.String())
	}
	if cd := w.Header().Get("Content-Disposition"); !strings.Contains(cd, "deadline_2024-02-05.ics") {
		t.Errorf("Content-Disposition = %q", cd)
	}
}

func TestReviewHandler_ExportNoItems(t *testing.T) {
	h := NewReviewHandler(&mockReviewService{exportErr: service.ErrExportNoItems})

	w := serve("GET", "/reviews/export.xlsx", "/reviews/export.xlsx", nil, h.ExportXLSX)

	if w.Code != http.StatusNotFound || parseResponse(w).Code != 16001 {
		t.Errorf("unexpected response %d %s", w.Code, w.Body.String())
	}
}

func TestReviewHandler_RequestRevision(t *testing.T) {
	mock := &mockReviewService{}
	h := NewReviewHandler(mock)

	w := serve("POST", "/institution/problem-statements/:id/request-revision",
		"/institution/problem-statements/PS-2024-002/request-revision",
		jsonBody(dto.RequestRevisionRequest{Feedback: "补充预算"}), withAuth, h.RequestRevision)

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	if mock.feedback != "补充预算" {
		t.Errorf("feedback = %q", mock.feedback)
	}
}

func TestReviewHandler_TransitionErrors(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
		wantCode   int
	}{
		{"NotFound", service.ErrProblemStatementNotFound, http.StatusNotFound, 12002},
		{"Invalid", service.ErrInvalidTransition, http.StatusConflict, 12004},
		{"Conflict", pkgerrors.ErrStatusConflict, http.StatusConflict, 12005},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := NewReviewHandler(&mockReviewService{transitionErr: tt.err})
			w := serve("POST", "/institution/problem-statements/:id/approve",
				"/institution/problem-statements/PS-2024-003/approve", nil, h.Approve)

			if w.Code != tt.wantStatus {
				t.Errorf("expected %d, got %d", tt.wantStatus, w.Code)
			}
			if resp := parseResponse(w); resp.Code != tt.wantCode {
				t.Errorf("expected code %d, got %d", tt.wantCode, resp.Code)
			}
		})
	}
}

package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/zolt46/work-time-back/internal/dto"
	"github.com/zolt46/work-time-back/internal/model"
	"github.com/zolt46/work-time-back/internal/service"
	"github.com/zolt46/work-time-back/pkg/jwt"
	"github.com/zolt46/work-time-back/pkg/response"
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
	refreshResult *dto.RefreshResponse
	refreshErr    error
	logoutErr     error
	meResult      *dto.UserResponse
	meErr         error
	changePassErr error
}

func (m *mockAuthService) Login(_ context.Context, _ *dto.LoginRequest) (*dto.LoginResponse, error) {
	return m.loginResult, m.loginErr
}
func (m *mockAuthService) Refresh(_ context.Context, _ *dto.RefreshRequest) (*dto.RefreshResponse, error) {
	return m.refreshResult, m.refreshErr
}
func (m *mockAuthService) Logout(_ context.Context, _ *jwt.Claims) error {
	return m.logoutErr
}
func (m *mockAuthService) Me(_ context.Context, _ string) (*dto.UserResponse, error) {
	return m.meResult, m.meErr
}
func (m *mockAuthService) ChangePassword(_ context.Context, _ string, _ *dto.ChangePasswordRequest) error {
	return m.changePassErr
}

// ── Mock ScheduleService ──

type mockScheduleService struct {
	weekResult     []dto.ScheduleEvent
	weekErr        error
	weekGotUserID  string
	baseResult     []dto.ScheduleEvent
	baseErr        error
	shiftsResult   []dto.GridShift
	shiftsErr      error
	ensureResult   *dto.GridShift
	ensureErr      error
	assignResult   *dto.AssignmentResponse
	assignErr      error
	bulkResult     []dto.AssignmentResponse
	bulkErr        error
	deleteErr      error
	globalResult   []dto.GlobalAssignmentItem
	globalErr      error
	myAssignResult []dto.AssignmentResponse
	myAssignErr    error
}

func (m *mockScheduleService) WeekEvents(_ context.Context, _ time.Time, userID string) ([]dto.ScheduleEvent, error) {
	m.weekGotUserID = userID
	return m.weekResult, m.weekErr
}
func (m *mockScheduleService) WeekBaseEvents(_ context.Context, _ time.Time, _ string) ([]dto.ScheduleEvent, error) {
	return m.baseResult, m.baseErr
}
func (m *mockScheduleService) ListShifts(_ context.Context) ([]dto.GridShift, error) {
	return m.shiftsResult, m.shiftsErr
}
func (m *mockScheduleService) EnsureSlot(_ context.Context, _ *dto.EnsureSlotRequest) (*dto.GridShift, error) {
	return m.ensureResult, m.ensureErr
}
func (m *mockScheduleService) AssignSlot(_ context.Context, _ *dto.AssignSlotRequest, _ string) (*dto.AssignmentResponse, error) {
	return m.assignResult, m.assignErr
}
func (m *mockScheduleService) BulkAssign(_ context.Context, _ *dto.BulkAssignRequest, _ string) ([]dto.AssignmentResponse, error) {
	return m.bulkResult, m.bulkErr
}
func (m *mockScheduleService) DeleteAssignment(_ context.Context, _ string, _ string) error {
	return m.deleteErr
}
func (m *mockScheduleService) GlobalAssignments(_ context.Context, _, _ string) ([]dto.GlobalAssignmentItem, error) {
	return m.globalResult, m.globalErr
}
func (m *mockScheduleService) MyAssignments(_ context.Context, _ string) ([]dto.AssignmentResponse, error) {
	return m.myAssignResult, m.myAssignErr
}

// ── Mock RequestService ──

type mockRequestService struct {
	submitResult  []dto.RequestResponse
	submitErr     error
	approveResult *dto.RequestResponse
	approveErr    error
	rejectResult  *dto.RequestResponse
	rejectErr     error
	cancelResult  *dto.RequestResponse
	cancelErr     error
	myResult      []dto.RequestResponse
	myErr         error
	pendingResult []dto.RequestResponse
	pendingErr    error
	userResult    []dto.RequestResponse
	userErr       error
}

func (m *mockRequestService) Submit(_ context.Context, _ string, _ *dto.SubmitRequestRequest) ([]dto.RequestResponse, error) {
	return m.submitResult, m.submitErr
}
func (m *mockRequestService) Approve(_ context.Context, _, _ string) (*dto.RequestResponse, error) {
	return m.approveResult, m.approveErr
}
func (m *mockRequestService) Reject(_ context.Context, _, _ string) (*dto.RequestResponse, error) {
	return m.rejectResult, m.rejectErr
}
func (m *mockRequestService) Cancel(_ context.Context, _, _, _, _ string) (*dto.RequestResponse, error) {
	return m.cancelResult, m.cancelErr
}
func (m *mockRequestService) MyRequests(_ context.Context, _ string) ([]dto.RequestResponse, error) {
	return m.myResult, m.myErr
}
func (m *mockRequestService) PendingRequests(_ context.Context) ([]dto.RequestResponse, error) {
	return m.pendingResult, m.pendingErr
}
func (m *mockRequestService) UserRequests(_ context.Context, _ string) ([]dto.RequestResponse, error) {
	return m.userResult, m.userErr
}

// ── Mock ExportService ──

type mockExportService struct {
	buf       *bytes.Buffer
	filename  string
	err       error
	gotUserID string
}

func (m *mockExportService) ExportWeekXlsx(_ context.Context, _ time.Time, userID string) (*bytes.Buffer, string, error) {
	m.gotUserID = userID
	return m.buf, m.filename, m.err
}
func (m *mockExportService) ExportWeekICS(_ context.Context, _ time.Time, userID string) (*bytes.Buffer, string, error) {
	m.gotUserID = userID
	return m.buf, m.filename, m.err
}

// ═══════════════════════════════════════════════════════════
// Test Helpers
// ═══════════════════════════════════════════════════════════

func setupRecorder() *httptest.ResponseRecorder {
	return httptest.NewRecorder()
}

// setAuth 模拟 JWT 中间件注入的上下文
func setAuth(c *gin.Context, userID, role string) {
	c.Set("user_id", userID)
	c.Set("role", role)
	c.Set("claims", &jwt.Claims{UserID: userID, Role: role, TokenType: "access"})
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

// ═══════════════════════════════════════════════════════════
// AuthHandler Tests
// ═══════════════════════════════════════════════════════════

func TestAuthHandler_Login_Success(t *testing.T) {
	mock := &mockAuthService{
		loginResult: &dto.LoginResponse{
			AccessToken:  "test-access-token",
			RefreshToken: "test-refresh-token",
			TokenType:    "bearer",
		},
	}
	h := NewAuthHandler(mock)

	w := setupRecorder()
	req := httptest.NewRequest("POST", "/auth/login", jsonBody(dto.LoginRequest{
		LoginID:  "alice",
		Password: "Test1234",
	}))
	req.Header.Set("Content-Type", "application/json")

	r := gin.New()
	r.POST("/auth/login", h.Login)
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Errorf("expected 200, got %d", w.Code)
	}
	resp := parseResponse(w)
	if resp.Code != 0 {
		t.Errorf("expected code 0, got %d", resp.Code)
	}
}

func TestAuthHandler_Login_BadJSON(t *testing.T) {
	mock := &mockAuthService{}
	h := NewAuthHandler(mock)

	w := setupRecorder()
	req := httptest.NewRequest("POST", "/auth/login", bytes.NewReader([]byte("invalid json")))
	req.Header.Set("Content-Type", "application/json")

	r := gin.New()
	r.POST("/auth/login", h.Login)
	r.ServeHTTP(w, req)

	if w.Code != http.StatusBadRequest {
		t.Errorf("expected 400, got %d", w.Code)
	}
}

func TestAuthHandler_Login_InvalidCredentials(t *testing.T) {
	mock := &mockAuthService{loginErr: service.ErrInvalidCredentials}
	h := NewAuthHandler(mock)

	w := setupRecorder()
	req := httptest.NewRequest("POST", "/auth/login", jsonBody(dto.LoginRequest{
		LoginID:  "alice",
		Password: "wrong",
	}))
	req.Header.Set("Content-Type", "application/json")

	r := gin.New()
	r.POST("/auth/login", h.Login)
	r.ServeHTTP(w, req)

	if w.Code != http.StatusUnauthorized {
		t.Errorf("expected 401, got %d", w.Code)
	}
	resp := parseResponse(w)
	if resp.Code != 11001 {
		t.Errorf("expected error code 11001, got %d", resp.Code)
	}
}

func TestAuthHandler_Login_Inactive(t *testing.T) {
	mock := &mockAuthService{loginErr: service.ErrUserInactive}
	h := NewAuthHandler(mock)

	w := setupRecorder()
	req := httptest.NewRequest("POST", "/auth/login", jsonBody(dto.LoginRequest{
		LoginID:  "alice",
		Password: "Test1234",
	}))
	req.Header.Set("Content-Type", "application/json")

	r := gin.New()
	r.POST("/auth/login", h.Login)
	r.ServeHTTP(w, req)

	if w.Code != http.StatusForbidden {
		t.Errorf("expected 403, got %d", w.Code)
	}
	resp := parseResponse(w)
	if resp.Code != 11002 {
		t.Errorf("expected error code 11002, got %d", resp.Code)
	}
}

func TestAuthHandler_Refresh_Success(t *testing.T) {
	mock := &mockAuthService{
		refreshResult: &dto.RefreshResponse{
			AccessToken:  "new-access",
			RefreshToken: "new-refresh",
			TokenType:    "bearer",
		},
	}
	h := NewAuthHandler(mock)

	w := setupRecorder()
	req := httptest.NewRequest("POST", "/auth/refresh", jsonBody(dto.RefreshRequest{
		RefreshToken: "old-refresh",
	}))
	req.Header.Set("Content-Type", "application/json")

	r := gin.New()
	r.POST("/auth/refresh", h.Refresh)
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Errorf("expected 200, got %d", w.Code)
	}
}

func TestAuthHandler_Refresh_MissingToken(t *testing.T) {
	mock := &mockAuthService{}
	h := NewAuthHandler(mock)

	w := setupRecorder()
	req := httptest.NewRequest("POST", "/auth/refresh", jsonBody(map[string]string{}))
	req.Header.Set("Content-Type", "application/json")

	r := gin.New()
	r.POST("/auth/refresh", h.Refresh)
	r.ServeHTTP(w, req)

	if w.Code != http.StatusBadRequest {
		t.Errorf("expected 400, got %d", w.Code)
	}
}

func TestAuthHandler_GetCurrentUser_Success(t *testing.T) {
	mock := &mockAuthService{
		meResult: &dto.UserResponse{
			UserID: "user-1",
			Name:   "测试用户",
		},
	}
	h := NewAuthHandler(mock)

	w := setupRecorder()
	req := httptest.NewRequest("GET", "/auth/me", nil)

	r := gin.New()
	r.GET("/auth/me", func(c *gin.Context) {
		setAuth(c, "user-1", model.RoleMember)
		h.GetCurrentUser(c)
	})
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Errorf("expected 200, got %d", w.Code)
	}
}

func TestAuthHandler_GetCurrentUser_Unauthenticated(t *testing.T) {
	mock := &mockAuthService{}
	h := NewAuthHandler(mock)

	w := setupRecorder()
	req := httptest.NewRequest("GET", "/auth/me", nil)

	r := gin.New()
	r.GET("/auth/me", h.GetCurrentUser)
	r.ServeHTTP(w, req)

	if w.Code != http.StatusUnauthorized {
		t.Errorf("expected 401, got %d", w.Code)
	}
	resp := parseResponse(w)
	if resp.Code != 10002 {
		t.Errorf("expected error code 10002, got %d", resp.Code)
	}
}

func TestAuthHandler_ChangePassword_WrongOldPassword(t *testing.T) {
	mock := &mockAuthService{changePassErr: service.ErrOldPasswordWrong}
	h := NewAuthHandler(mock)

	w := setupRecorder()
	req := httptest.NewRequest("PUT", "/auth/password", jsonBody(dto.ChangePasswordRequest{
		OldPassword: "Old12345",
		NewPassword: "New12345",
	}))
	req.Header.Set("Content-Type", "application/json")

	r := gin.New()
	r.PUT("/auth/password", func(c *gin.Context) {
		setAuth(c, "user-1", model.RoleMember)
		h.ChangePassword(c)
	})
	r.ServeHTTP(w, req)

	if w.Code != http.StatusBadRequest {
		t.Errorf("expected 400, got %d", w.Code)
	}
	resp := parseResponse(w)
	if resp.Code != 11004 {
		t.Errorf("expected error code 11004, got %d", resp.Code)
	}
}

func TestAuthHandler_Logout_Success(t *testing.T) {
	mock := &mockAuthService{}
	h := NewAuthHandler(mock)

	w := setupRecorder()
	req := httptest.NewRequest("POST", "/auth/logout", nil)

	r := gin.New()
	r.POST("/auth/logout", func(c *gin.Context) {
		setAuth(c, "user-1", model.RoleMember)
		h.Logout(c)
	})
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Errorf("expected 200, got %d", w.Code)
	}
}

// ═══════════════════════════════════════════════════════════
// ScheduleHandler Tests
// ═══════════════════════════════════════════════════════════

func TestScheduleHandler_GetWeekEvents_MemberForcedToSelf(t *testing.T) {
	mock := &mockScheduleService{weekResult: []dto.ScheduleEvent{}}
	h := NewScheduleHandler(mock)

	w := setupRecorder()
	// MEMBER 指定他人 user_id 时应被强制为本人
	req := httptest.NewRequest("GET", "/schedule/week?start=2024-01-08&user_id=someone-else", nil)

	r := gin.New()
	r.GET("/schedule/week", func(c *gin.Context) {
		setAuth(c, "mem-1", model.RoleMember)
		h.GetWeekEvents(c)
	})
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Errorf("expected 200, got %d", w.Code)
	}
	if mock.weekGotUserID != "mem-1" {
		t.Errorf("expected member filter forced to mem-1, got %q", mock.weekGotUserID)
	}
}

func TestScheduleHandler_GetWeekEvents_OperatorKeepsFilter(t *testing.T) {
	mock := &mockScheduleService{weekResult: []dto.ScheduleEvent{}}
	h := NewScheduleHandler(mock)

	w := setupRecorder()
	req := httptest.NewRequest("GET", "/schedule/week?start=2024-01-08&user_id=mem-2", nil)

	r := gin.New()
	r.GET("/schedule/week", func(c *gin.Context) {
		setAuth(c, "op-1", model.RoleOperator)
		h.GetWeekEvents(c)
	})
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Errorf("expected 200, got %d", w.Code)
	}
	if mock.weekGotUserID != "mem-2" {
		t.Errorf("expected operator filter preserved, got %q", mock.weekGotUserID)
	}
}

func TestScheduleHandler_GetWeekEvents_BadStartDate(t *testing.T) {
	mock := &mockScheduleService{}
	h := NewScheduleHandler(mock)

	w := setupRecorder()
	req := httptest.NewRequest("GET", "/schedule/week?start=08-01-2024", nil)

	r := gin.New()
	r.GET("/schedule/week", func(c *gin.Context) {
		setAuth(c, "op-1", model.RoleOperator)
		h.GetWeekEvents(c)
	})
	r.ServeHTTP(w, req)

	if w.Code != http.StatusBadRequest {
		t.Errorf("expected 400, got %d", w.Code)
	}
}

func TestScheduleHandler_AssignSlot_Success(t *testing.T) {
	mock := &mockScheduleService{
		assignResult: &dto.AssignmentResponse{
			UserShiftID: "us-1",
			UserID:      "mem-1",
			ShiftID:     "shift-1",
			ValidFrom:   "2024-01-08",
		},
	}
	h := NewScheduleHandler(mock)

	w := setupRecorder()
	req := httptest.NewRequest("POST", "/assignments", jsonBody(dto.AssignSlotRequest{
		UserID:    "mem-1",
		Weekday:   0,
		StartHour: 9,
		ValidFrom: "2024-01-08",
	}))
	req.Header.Set("Content-Type", "application/json")

	r := gin.New()
	r.POST("/assignments", func(c *gin.Context) {
		setAuth(c, "op-1", model.RoleOperator)
		h.AssignSlot(c)
	})
	r.ServeHTTP(w, req)

	if w.Code != http.StatusCreated {
		t.Errorf("expected 201, got %d", w.Code)
	}
}

func TestScheduleHandler_AssignSlot_BadJSON(t *testing.T) {
	mock := &mockScheduleService{}
	h := NewScheduleHandler(mock)

	w := setupRecorder()
	req := httptest.NewRequest("POST", "/assignments", bytes.NewReader([]byte("bad")))
	req.Header.Set("Content-Type", "application/json")

	r := gin.New()
	r.POST("/assignments", func(c *gin.Context) {
		setAuth(c, "op-1", model.RoleOperator)
		h.AssignSlot(c)
	})
	r.ServeHTTP(w, req)

	if w.Code != http.StatusBadRequest {
		t.Errorf("expected 400, got %d", w.Code)
	}
}

func TestScheduleHandler_ErrorMapping(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
		wantCode   int
	}{
		{"ShiftNotFound", service.ErrShiftNotFound, 404, 30001},
		{"AssignmentNotFound", service.ErrAssignmentNotFound, 404, 30002},
		{"AssignmentExists", service.ErrAssignmentExists, 409, 30003},
		{"InvalidWeekday", service.ErrInvalidWeekday, 400, 30004},
		{"OutsideOperatingHours", service.ErrOutsideOperatingHours, 400, 30004},
		{"TargetNotMember", service.ErrAssignTargetNotMember, 400, 30005},
		{"UserNotFound", service.ErrUserNotFound, 404, 20001},
		{"InternalError", errors.New("unknown"), 500, 50000},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mock := &mockScheduleService{assignErr: tt.err}
			h := NewScheduleHandler(mock)

			w := setupRecorder()
			req := httptest.NewRequest("POST", "/assignments", jsonBody(dto.AssignSlotRequest{
				UserID:    "mem-1",
				ValidFrom: "2024-01-08",
			}))
			req.Header.Set("Content-Type", "application/json")

			r := gin.New()
			r.POST("/assignments", func(c *gin.Context) {
				setAuth(c, "op-1", model.RoleOperator)
				h.AssignSlot(c)
			})
			r.ServeHTTP(w, req)

			if w.Code != tt.wantStatus {
				t.Errorf("expected status %d, got %d", tt.wantStatus, w.Code)
			}
			resp := parseResponse(w)
			if resp.Code != tt.wantCode {
				t.Errorf("expected code %d, got %d", tt.wantCode, resp.Code)
			}
		})
	}
}

// ═══════════════════════════════════════════════════════════
// RequestHandler Tests
// ═══════════════════════════════════════════════════════════

func TestRequestHandler_Submit_Success(t *testing.T) {
	mock := &mockRequestService{
		submitResult: []dto.RequestResponse{
			{ShiftRequestID: "req-1", Status: model.RequestStatusPending},
		},
	}
	h := NewRequestHandler(mock)

	w := setupRecorder()
	req := httptest.NewRequest("POST", "/requests", jsonBody(dto.SubmitRequestRequest{
		Type:           model.RequestTypeAbsence,
		TargetDate:     "2024-01-08",
		TargetShiftIDs: []string{"shift-1"},
	}))
	req.Header.Set("Content-Type", "application/json")

	r := gin.New()
	r.POST("/requests", func(c *gin.Context) {
		setAuth(c, "mem-1", model.RoleMember)
		h.SubmitRequest(c)
	})
	r.ServeHTTP(w, req)

	if w.Code != http.StatusCreated {
		t.Errorf("expected 201, got %d", w.Code)
	}
}

func TestRequestHandler_Submit_BadJSON(t *testing.T) {
	mock := &mockRequestService{}
	h := NewRequestHandler(mock)

	w := setupRecorder()
	req := httptest.NewRequest("POST", "/requests", bytes.NewReader([]byte("bad")))
	req.Header.Set("Content-Type", "application/json")

	r := gin.New()
	r.POST("/requests", func(c *gin.Context) {
		setAuth(c, "mem-1", model.RoleMember)
		h.SubmitRequest(c)
	})
	r.ServeHTTP(w, req)

	if w.Code != http.StatusBadRequest {
		t.Errorf("expected 400, got %d", w.Code)
	}
}

func TestRequestHandler_Cancel_Success(t *testing.T) {
	mock := &mockRequestService{
		cancelResult: &dto.RequestResponse{
			ShiftRequestID: "req-1",
			Status:         model.RequestStatusCancelled,
		},
	}
	h := NewRequestHandler(mock)

	w := setupRecorder()
	req := httptest.NewRequest("POST", "/requests/req-1/cancel", jsonBody(dto.CancelRequestRequest{
		Reason: "计划有变",
	}))
	req.Header.Set("Content-Type", "application/json")

	r := gin.New()
	r.POST("/requests/:id/cancel", func(c *gin.Context) {
		setAuth(c, "mem-1", model.RoleMember)
		h.CancelRequest(c)
	})
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Errorf("expected 200, got %d", w.Code)
	}
}

func TestRequestHandler_ErrorMapping(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
		wantCode   int
	}{
		{"NotFound", service.ErrRequestNotFound, 404, 40001},
		{"Forbidden", service.ErrRequestForbidden, 403, 40002},
		{"NotPending", service.ErrRequestNotPending, 409, 40003},
		{"Terminal", service.ErrRequestTerminal, 409, 40003},
		{"Duplicate", service.ErrDuplicateRequest, 409, 40004},
		{"AbsenceWithoutDuty", service.ErrAbsenceWithoutDuty, 400, 40005},
		{"ExtraAlreadyOnDuty", service.ErrExtraAlreadyOnDuty, 400, 40005},
		{"InternalError", errors.New("unknown"), 500, 50000},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mock := &mockRequestService{approveErr: tt.err}
			h := NewRequestHandler(mock)

			w := setupRecorder()
			req := httptest.NewRequest("POST", "/requests/req-1/approve", nil)

			r := gin.New()
			r.POST("/requests/:id/approve", func(c *gin.Context) {
				setAuth(c, "op-1", model.RoleOperator)
				h.ApproveRequest(c)
			})
			r.ServeHTTP(w, req)

			if w.Code != tt.wantStatus {
				t.Errorf("expected status %d, got %d", tt.wantStatus, w.Code)
			}
			resp := parseResponse(w)
			if resp.Code != tt.wantCode {
				t.Errorf("expected code %d, got %d", tt.wantCode, resp.Code)
			}
		})
	}
}

// ═══════════════════════════════════════════════════════════
// ExportHandler Tests
// ═══════════════════════════════════════════════════════════

func TestExportHandler_Xlsx_Success(t *testing.T) {
	mock := &mockExportService{
		buf:      bytes.NewBufferString("excel content"),
		filename: "值班表_2024-01-08.xlsx",
	}
	h := NewExportHandler(mock)

	w := setupRecorder()
	req := httptest.NewRequest("GET", "/export/week/xlsx?start=2024-01-08", nil)

	r := gin.New()
	r.GET("/export/week/xlsx", func(c *gin.Context) {
		setAuth(c, "op-1", model.RoleOperator)
		h.ExportWeekXlsx(c)
	})
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Errorf("expected 200, got %d", w.Code)
	}
	ct := w.Header().Get("Content-Type")
	if ct != "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet" {
		t.Errorf("unexpected content type: %s", ct)
	}
	cd := w.Header().Get("Content-Disposition")
	if cd == "" {
		t.Error("expected Content-Disposition header")
	}
}

func TestExportHandler_ICS_MemberForcedToSelf(t *testing.T) {
	mock := &mockExportService{
		buf:      bytes.NewBufferString("BEGIN:VCALENDAR"),
		filename: "schedule_2024-01-08.ics",
	}
	h := NewExportHandler(mock)

	w := setupRecorder()
	req := httptest.NewRequest("GET", "/export/week/ics?start=2024-01-08&user_id=someone-else", nil)

	r := gin.New()
	r.GET("/export/week/ics", func(c *gin.Context) {
		setAuth(c, "mem-1", model.RoleMember)
		h.ExportWeekICS(c)
	})
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Errorf("expected 200, got %d", w.Code)
	}
	if mock.gotUserID != "mem-1" {
		t.Errorf("expected member export forced to mem-1, got %q", mock.gotUserID)
	}
}

func TestExportHandler_EmptyWeek(t *testing.T) {
	mock := &mockExportService{err: service.ErrExportNoEvents}
	h := NewExportHandler(mock)

	w := setupRecorder()
	req := httptest.NewRequest("GET", "/export/week/xlsx?start=2024-01-08", nil)

	r := gin.New()
	r.GET("/export/week/xlsx", func(c *gin.Context) {
		setAuth(c, "op-1", model.RoleOperator)
		h.ExportWeekXlsx(c)
	})
	r.ServeHTTP(w, req)

	if w.Code != http.StatusNotFound {
		t.Errorf("expected 404, got %d", w.Code)
	}
	resp := parseResponse(w)
	if resp.Code != 90001 {
		t.Errorf("expected error code 90001, got %d", resp.Code)
	}
}

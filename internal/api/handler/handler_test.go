package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"

	"github.com/Cameron2125/HackathonApp/internal/calendar"
	"github.com/Cameron2125/HackathonApp/internal/docstore"
	"github.com/Cameron2125/HackathonApp/internal/dto"
	"github.com/Cameron2125/HackathonApp/internal/service"
	"github.com/Cameron2125/HackathonApp/pkg/response"
)

func init() {
	gin.SetMode(gin.TestMode)
	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		_ = docstore.RegisterRules(v)
	}
}

// ═══════════════════════════════════════════════════════════
// Mock Services
// ═══════════════════════════════════════════════════════════

// ── Mock CalendarService ──

type mockCalendarService struct {
	agendaResult *dto.AgendaResponse
	agendaErr    error
	viewResult   *dto.ViewResponse
	viewErr      error
	lastViewReq  *dto.ViewRequest
	stripResult  *dto.DayStripResponse
	stripErr     error
	now          calendar.NowIndicator
	exportBody   []byte
	exportName   string
	exportErr    error
}

func (m *mockCalendarService) GetAgenda(_ context.Context, _ string) (*dto.AgendaResponse, error) {
	return m.agendaResult, m.agendaErr
}
func (m *mockCalendarService) GetEvents(_ context.Context, _ string) (*dto.EventsResponse, error) {
	return &dto.EventsResponse{}, nil
}
func (m *mockCalendarService) GetView(_ context.Context, _ string, req *dto.ViewRequest) (*dto.ViewResponse, error) {
	m.lastViewReq = req
	return m.viewResult, m.viewErr
}
func (m *mockCalendarService) GetNowIndicator() calendar.NowIndicator {
	return m.now
}
func (m *mockCalendarService) WatchNow(ctx context.Context, fn func(calendar.NowIndicator)) error {
	fn(m.now)
	return nil
}
func (m *mockCalendarService) GetDayStrip(_ *dto.DayStripRequest) (*dto.DayStripResponse, error) {
	return m.stripResult, m.stripErr
}
func (m *mockCalendarService) ExportICS(_ context.Context, _ string) ([]byte, string, error) {
	return m.exportBody, m.exportName, m.exportErr
}
func (m *mockCalendarService) ExportWeekExcel(_ context.Context, _, _ string) ([]byte, string, error) {
	return m.exportBody, m.exportName, m.exportErr
}

// ── Mock ClassService ──

type mockClassService struct {
	createResult *dto.ClassResponse
	createErr    error
	deleteErr    error
	importResult *dto.ImportICSResponse
	importErr    error
	importedBody string
}

func (m *mockClassService) Create(_ context.Context, _ string, _ *dto.CreateClassRequest) (*dto.ClassResponse, error) {
	return m.createResult, m.createErr
}
func (m *mockClassService) List(_ context.Context, _ string) ([]dto.ClassResponse, error) {
	return []dto.ClassResponse{}, nil
}
func (m *mockClassService) Delete(_ context.Context, _, _ string) error {
	return m.deleteErr
}
func (m *mockClassService) ImportICS(_ context.Context, _ string, r io.Reader) (*dto.ImportICSResponse, error) {
	b, _ := io.ReadAll(r)
	m.importedBody = string(b)
	return m.importResult, m.importErr
}

// ── Mock AssignmentService ──

type mockAssignmentService struct {
	toggleResult *dto.AssignmentResponse
	toggleErr    error
	lastComplete bool
}

func (m *mockAssignmentService) Create(_ context.Context, _ string, req *dto.CreateAssignmentRequest) (*dto.AssignmentResponse, error) {
	return &dto.AssignmentResponse{ID: "a1", Name: req.Name, DueDate: req.DueDate}, nil
}
func (m *mockAssignmentService) List(_ context.Context, _ string) ([]dto.AssignmentResponse, error) {
	return nil, nil
}
func (m *mockAssignmentService) ToggleComplete(_ context.Context, _, _ string, completed bool) (*dto.AssignmentResponse, error) {
	m.lastComplete = completed
	return m.toggleResult, m.toggleErr
}

// ── Mock ForumService ──

type mockForumService struct {
	voteResult *dto.VoteQuestionResponse
	voteErr    error
	seedErr    error
}

func (m *mockForumService) ListCommunities(_ context.Context) ([]dto.CommunityResponse, error) {
	return nil, nil
}
func (m *mockForumService) ListQuestions(_ context.Context, _ string) ([]dto.QuestionResponse, error) {
	return nil, nil
}
func (m *mockForumService) AskQuestion(_ context.Context, _, cid string, req *dto.AskQuestionRequest) (*dto.QuestionResponse, error) {
	return &dto.QuestionResponse{ID: "q1", CommunityID: cid, Question: req.Question}, nil
}
func (m *mockForumService) VoteQuestion(_ context.Context, _ string, _ *dto.VoteQuestionRequest) (*dto.VoteQuestionResponse, error) {
	return m.voteResult, m.voteErr
}
func (m *mockForumService) MarkAnswered(_ context.Context, _, _ string, _ *dto.MarkAnsweredRequest) (*dto.QuestionResponse, error) {
	return &dto.QuestionResponse{}, nil
}
func (m *mockForumService) ListMessages(_ context.Context, _ string) ([]dto.MessageResponse, error) {
	return nil, nil
}
func (m *mockForumService) PostMessage(_ context.Context, _, _ string, _ *dto.PostMessageRequest) (*dto.MessageResponse, error) {
	return &dto.MessageResponse{}, nil
}
func (m *mockForumService) VoteMessage(_ context.Context, _ string, _ *dto.VoteMessageRequest) (*dto.MessageResponse, error) {
	return &dto.MessageResponse{}, nil
}
func (m *mockForumService) RemoveMessage(_ context.Context, _, _ string) error {
	return nil
}
func (m *mockForumService) SeedQuestions(_ context.Context, _ string) (*dto.SeedQuestionsResponse, error) {
	if m.seedErr != nil {
		return nil, m.seedErr
	}
	return &dto.SeedQuestionsResponse{Seeded: 3}, nil
}

// ── Mock UserService ──

type mockUserService struct {
	getResult *dto.ProfileResponse
	getErr    error
}

func (m *mockUserService) GetProfile(_ context.Context, _ string) (*dto.ProfileResponse, error) {
	return m.getResult, m.getErr
}
func (m *mockUserService) UpsertProfile(_ context.Context, id string, req *dto.UpsertProfileRequest) (*dto.ProfileResponse, error) {
	return &dto.ProfileResponse{ID: id, Name: req.Name}, nil
}

// ═══════════════════════════════════════════════════════════
// Test Helpers
// ═══════════════════════════════════════════════════════════

// withAuth 模拟 JWTAuth 注入 user_id
func withAuth(h gin.HandlerFunc) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set("user_id", "test-user-id")
		h(c)
	}
}

func serve(method, path, pattern string, h gin.HandlerFunc, body io.Reader, contentType string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	req := httptest.NewRequest(method, path, body)
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	r := gin.New()
	r.Handle(method, pattern, h)
	r.ServeHTTP(w, req)
	return w
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
// Auth context
// ═══════════════════════════════════════════════════════════

func TestMustGetUserID_Missing(t *testing.T) {
	h := NewCalendarHandler(&mockCalendarService{})
	w := serve("GET", "/calendar/agenda", "/calendar/agenda", h.GetAgenda, nil, "")

	if w.Code != http.StatusUnauthorized {
		t.Errorf("expected 401, got %d", w.Code)
	}
	if resp := parseResponse(w); resp.Code != response.CodeUnauthenticated {
		t.Errorf("expected code %d, got %d", response.CodeUnauthenticated, resp.Code)
	}
}

// ═══════════════════════════════════════════════════════════
// CalendarHandler Tests
// ═══════════════════════════════════════════════════════════

func TestCalendarHandler_GetAgenda_Success(t *testing.T) {
	mock := &mockCalendarService{agendaResult: &dto.AgendaResponse{From: "2024-01-01", To: "2024-01-07"}}
	h := NewCalendarHandler(mock)

	w := serve("GET", "/calendar/agenda", "/calendar/agenda", withAuth(h.GetAgenda), nil, "")

	if w.Code != http.StatusOK {
		t.Errorf("expected 200, got %d", w.Code)
	}
	if resp := parseResponse(w); resp.Code != 0 {
		t.Errorf("expected code 0, got %d", resp.Code)
	}
}

func TestCalendarHandler_GetView_BindsQuery(t *testing.T) {
	mock := &mockCalendarService{viewResult: &dto.ViewResponse{Mode: "week"}}
	h := NewCalendarHandler(mock)

	w := serve("GET", "/calendar/view?mode=week&date=2024-01-03", "/calendar/view", withAuth(h.GetView), nil, "")

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	if mock.lastViewReq == nil || mock.lastViewReq.Mode != "week" || mock.lastViewReq.Date != "2024-01-03" {
		t.Errorf("expected bound query, got %+v", mock.lastViewReq)
	}
}

func TestCalendarHandler_GetView_ModePassedThroughUnbound(t *testing.T) {
	// 大小写由服务层解析，绑定阶段不做枚举校验
	mock := &mockCalendarService{viewResult: &dto.ViewResponse{Mode: "day"}}
	h := NewCalendarHandler(mock)

	w := serve("GET", "/calendar/view?mode=DAY", "/calendar/view", withAuth(h.GetView), nil, "")

	if w.Code != http.StatusOK {
		t.Errorf("expected 200, got %d", w.Code)
	}
	if mock.lastViewReq == nil || mock.lastViewReq.Mode != "DAY" {
		t.Errorf("expected mode DAY forwarded, got %+v", mock.lastViewReq)
	}
}

func TestCalendarHandler_GetDayStrip_LengthTooLarge(t *testing.T) {
	h := NewCalendarHandler(&mockCalendarService{stripResult: &dto.DayStripResponse{}})

	w := serve("GET", "/calendar/day-strip?length=200000000", "/calendar/day-strip", h.GetDayStrip, nil, "")

	if w.Code != http.StatusBadRequest {
		t.Errorf("expected 400, got %d", w.Code)
	}
}

func TestCalendarHandler_ErrorMapping(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
		wantCode   int
	}{
		{"InvalidDate", service.ErrCalendarInvalidDate, 400, 20001},
		{"InvalidMode", service.ErrCalendarInvalidMode, 400, 20002},
		{"Malformed", calendar.ErrMalformedInput, 422, 20003},
		{"InternalError", errors.New("unknown"), 500, 50000},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := NewCalendarHandler(&mockCalendarService{viewErr: tt.err})
			w := serve("GET", "/calendar/view", "/calendar/view", withAuth(h.GetView), nil, "")

			if w.Code != tt.wantStatus {
				t.Errorf("expected status %d, got %d", tt.wantStatus, w.Code)
			}
			if resp := parseResponse(w); resp.Code != tt.wantCode {
				t.Errorf("expected code %d, got %d", tt.wantCode, resp.Code)
			}
		})
	}
}

func TestCalendarHandler_GetDayStrip_NegativeIndex(t *testing.T) {
	h := NewCalendarHandler(&mockCalendarService{stripResult: &dto.DayStripResponse{}})

	w := serve("GET", "/calendar/day-strip?visible_index=-1", "/calendar/day-strip", h.GetDayStrip, nil, "")

	if w.Code != http.StatusBadRequest {
		t.Errorf("expected 400, got %d", w.Code)
	}
}

func TestCalendarHandler_StreamNow(t *testing.T) {
	at := time.Date(2024, 1, 1, 9, 30, 0, 0, time.UTC)
	h := NewCalendarHandler(&mockCalendarService{now: calendar.NowIndicator{At: at, Offset: 570}})

	w := serve("GET", "/calendar/now/stream", "/calendar/now/stream", h.StreamNow, nil, "")

	if ct := w.Header().Get("Content-Type"); !strings.HasPrefix(ct, "text/event-stream") {
		t.Errorf("expected text/event-stream, got %q", ct)
	}
	body := w.Body.String()
	if !strings.Contains(body, "event:now") || !strings.Contains(body, `"offset":570`) {
		t.Errorf("unexpected stream body: %s", body)
	}
}

// ═══════════════════════════════════════════════════════════
// ExportHandler Tests
// ═══════════════════════════════════════════════════════════

func TestExportHandler_ICS_Success(t *testing.T) {
	mock := &mockCalendarService{exportBody: []byte("BEGIN:VCALENDAR"), exportName: "planner_20240101.ics"}
	h := NewExportHandler(mock)

	w := serve("GET", "/calendar/export.ics", "/calendar/export.ics", withAuth(h.ExportICS), nil, "")

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	if ct := w.Header().Get("Content-Type"); !strings.HasPrefix(ct, "text/calendar") {
		t.Errorf("expected text/calendar, got %q", ct)
	}
	if cd := w.Header().Get("Content-Disposition"); !strings.Contains(cd, "planner_20240101.ics") {
		t.Errorf("expected filename in Content-Disposition, got %q", cd)
	}
	if w.Body.String() != "BEGIN:VCALENDAR" {
		t.Errorf("unexpected body %q", w.Body.String())
	}
}

func TestExportHandler_NoEvents(t *testing.T) {
	h := NewExportHandler(&mockCalendarService{exportErr: service.ErrExportNoEvents})

	w := serve("GET", "/calendar/export.xlsx", "/calendar/export.xlsx", withAuth(h.ExportWeekExcel), nil, "")

	if w.Code != http.StatusNotFound {
		t.Errorf("expected 404, got %d", w.Code)
	}
	if resp := parseResponse(w); resp.Code != 20101 {
		t.Errorf("expected code 20101, got %d", resp.Code)
	}
}

// ═══════════════════════════════════════════════════════════
// ClassHandler Tests
// ═══════════════════════════════════════════════════════════

func TestClassHandler_CreateClass_Success(t *testing.T) {
	mock := &mockClassService{createResult: &dto.ClassResponse{ID: "c1", Name: "Math"}}
	h := NewClassHandler(mock)

	w := serve("POST", "/classes", "/classes", withAuth(h.CreateClass), jsonBody(dto.CreateClassRequest{
		Name:       "Math",
		DaysOfWeek: []string{"M", "W"},
		StartTime:  "09:30",
	}), "application/json")

	if w.Code != http.StatusCreated {
		t.Errorf("expected 201, got %d", w.Code)
	}
}

func TestClassHandler_CreateClass_InvalidWeekday(t *testing.T) {
	h := NewClassHandler(&mockClassService{})

	w := serve("POST", "/classes", "/classes", withAuth(h.CreateClass), jsonBody(dto.CreateClassRequest{
		Name:       "Math",
		DaysOfWeek: []string{"Monday"},
		StartTime:  "09:30",
	}), "application/json")

	if w.Code != http.StatusBadRequest {
		t.Errorf("expected 400, got %d", w.Code)
	}
}

func TestClassHandler_CreateClass_InvalidTime(t *testing.T) {
	h := NewClassHandler(&mockClassService{})

	w := serve("POST", "/classes", "/classes", withAuth(h.CreateClass), jsonBody(dto.CreateClassRequest{
		Name:       "Math",
		DaysOfWeek: []string{"M"},
		StartTime:  "9:30am",
	}), "application/json")

	if w.Code != http.StatusBadRequest {
		t.Errorf("expected 400, got %d", w.Code)
	}
}

func TestClassHandler_DeleteClass_ErrorMapping(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
		wantCode   int
	}{
		{"NotFound", service.ErrClassNotFound, 404, 30001},
		{"NotOwner", service.ErrNotOwner, 403, response.CodeForbidden},
		{"InternalError", errors.New("unknown"), 500, 50000},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := NewClassHandler(&mockClassService{deleteErr: tt.err})
			w := serve("DELETE", "/classes/c1", "/classes/:id", withAuth(h.DeleteClass), nil, "")

			if w.Code != tt.wantStatus {
				t.Errorf("expected status %d, got %d", tt.wantStatus, w.Code)
			}
			if resp := parseResponse(w); resp.Code != tt.wantCode {
				t.Errorf("expected code %d, got %d", tt.wantCode, resp.Code)
			}
		})
	}
}

func TestClassHandler_ImportICS_RawBody(t *testing.T) {
	mock := &mockClassService{importResult: &dto.ImportICSResponse{ImportedCount: 1}}
	h := NewClassHandler(mock)

	w := serve("POST", "/classes/import", "/classes/import", withAuth(h.ImportICS),
		strings.NewReader("BEGIN:VCALENDAR"), "text/calendar")

	if w.Code != http.StatusCreated {
		t.Errorf("expected 201, got %d", w.Code)
	}
	if mock.importedBody != "BEGIN:VCALENDAR" {
		t.Errorf("expected raw body forwarded, got %q", mock.importedBody)
	}
}

func TestClassHandler_ImportICS_Multipart(t *testing.T) {
	mock := &mockClassService{importResult: &dto.ImportICSResponse{ImportedCount: 1}}
	h := NewClassHandler(mock)

	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	fw, _ := mw.CreateFormFile("file", "schedule.ics")
	fw.Write([]byte("BEGIN:VCALENDAR"))
	mw.Close()

	w := serve("POST", "/classes/import", "/classes/import", withAuth(h.ImportICS), &buf, mw.FormDataContentType())

	if w.Code != http.StatusCreated {
		t.Errorf("expected 201, got %d", w.Code)
	}
	if mock.importedBody != "BEGIN:VCALENDAR" {
		t.Errorf("expected file content forwarded, got %q", mock.importedBody)
	}
}

func TestClassHandler_ImportICS_Errors(t *testing.T) {
	h := NewClassHandler(&mockClassService{importErr: service.ErrICSEmpty})

	w := serve("POST", "/classes/import", "/classes/import", withAuth(h.ImportICS),
		strings.NewReader("BEGIN:VCALENDAR"), "text/calendar")
	if resp := parseResponse(w); w.Code != http.StatusBadRequest || resp.Code != 30102 {
		t.Errorf("expected 400/30102, got %d/%d", w.Code, resp.Code)
	}

	w = serve("POST", "/classes/import", "/classes/import", withAuth(h.ImportICS), nil, "")
	if resp := parseResponse(w); w.Code != http.StatusBadRequest || resp.Code != 30100 {
		t.Errorf("expected 400/30100 without file, got %d/%d", w.Code, resp.Code)
	}
}

// ═══════════════════════════════════════════════════════════
// AssignmentHandler Tests
// ═══════════════════════════════════════════════════════════

func TestAssignmentHandler_CreateAssignment_BadDueDate(t *testing.T) {
	h := NewAssignmentHandler(&mockAssignmentService{})

	w := serve("POST", "/assignments", "/assignments", withAuth(h.CreateAssignment), jsonBody(dto.CreateAssignmentRequest{
		Name:    "Essay",
		DueDate: "tomorrow",
	}), "application/json")

	if w.Code != http.StatusBadRequest {
		t.Errorf("expected 400, got %d", w.Code)
	}
}

func TestAssignmentHandler_SetCompletion(t *testing.T) {
	mock := &mockAssignmentService{toggleResult: &dto.AssignmentResponse{ID: "a1", Completed: true}}
	h := NewAssignmentHandler(mock)

	w := serve("PUT", "/assignments/a1/completion", "/assignments/:id/completion", withAuth(h.SetCompletion),
		strings.NewReader(`{"completed": true}`), "application/json")

	if w.Code != http.StatusOK {
		t.Errorf("expected 200, got %d", w.Code)
	}
	if !mock.lastComplete {
		t.Error("expected completed=true forwarded")
	}

	// completed 缺失
	w = serve("PUT", "/assignments/a1/completion", "/assignments/:id/completion", withAuth(h.SetCompletion),
		strings.NewReader(`{}`), "application/json")
	if w.Code != http.StatusBadRequest {
		t.Errorf("expected 400 without completed, got %d", w.Code)
	}
}

func TestAssignmentHandler_SetCompletion_NotFound(t *testing.T) {
	h := NewAssignmentHandler(&mockAssignmentService{toggleErr: service.ErrAssignmentNotFound})

	w := serve("PUT", "/assignments/x/completion", "/assignments/:id/completion", withAuth(h.SetCompletion),
		strings.NewReader(`{"completed": false}`), "application/json")

	if resp := parseResponse(w); w.Code != http.StatusNotFound || resp.Code != 30201 {
		t.Errorf("expected 404/30201, got %d/%d", w.Code, resp.Code)
	}
}

// ═══════════════════════════════════════════════════════════
// ForumHandler Tests
// ═══════════════════════════════════════════════════════════

func TestForumHandler_VoteQuestion_Removed(t *testing.T) {
	h := NewForumHandler(&mockForumService{voteResult: &dto.VoteQuestionResponse{Removed: true}})

	w := serve("POST", "/questions/q1/votes", "/questions/:id/votes", h.VoteQuestion,
		jsonBody(dto.VoteQuestionRequest{Direction: "down"}), "application/json")

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	data, _ := json.Marshal(parseResponse(w).Data)
	if !strings.Contains(string(data), `"removed":true`) {
		t.Errorf("expected removed=true, got %s", data)
	}
}

func TestForumHandler_VoteQuestion_BadDirection(t *testing.T) {
	h := NewForumHandler(&mockForumService{})

	w := serve("POST", "/questions/q1/votes", "/questions/:id/votes", h.VoteQuestion,
		jsonBody(map[string]string{"direction": "sideways"}), "application/json")

	if w.Code != http.StatusBadRequest {
		t.Errorf("expected 400, got %d", w.Code)
	}
}

func TestForumHandler_ErrorMapping(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
		wantCode   int
	}{
		{"QuestionNotFound", service.ErrQuestionNotFound, 404, 40101},
		{"MessageNotFound", service.ErrMessageNotFound, 404, 40201},
		{"CommunityNotFound", service.ErrCommunityNotFound, 404, 40001},
		{"NotEmpty", service.ErrCommunityNotEmpty, 409, 40002},
		{"InternalError", errors.New("unknown"), 500, 50000},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := NewForumHandler(&mockForumService{seedErr: tt.err})
			w := serve("POST", "/communities/100/questions/seed", "/communities/:id/questions/seed", h.SeedQuestions, nil, "")

			if w.Code != tt.wantStatus {
				t.Errorf("expected status %d, got %d", tt.wantStatus, w.Code)
			}
			if resp := parseResponse(w); resp.Code != tt.wantCode {
				t.Errorf("expected code %d, got %d", tt.wantCode, resp.Code)
			}
		})
	}
}

func TestForumHandler_AskQuestion(t *testing.T) {
	h := NewForumHandler(&mockForumService{})

	w := serve("POST", "/communities/100/questions", "/communities/:id/questions", withAuth(h.AskQuestion),
		jsonBody(dto.AskQuestionRequest{Question: "Where is the library?"}), "application/json")
	if w.Code != http.StatusCreated {
		t.Errorf("expected 201, got %d", w.Code)
	}

	w = serve("POST", "/communities/100/questions", "/communities/:id/questions", withAuth(h.AskQuestion),
		jsonBody(dto.AskQuestionRequest{}), "application/json")
	if w.Code != http.StatusBadRequest {
		t.Errorf("expected 400 for empty question, got %d", w.Code)
	}
}

// ═══════════════════════════════════════════════════════════
// UserHandler Tests
// ═══════════════════════════════════════════════════════════

func TestUserHandler_GetProfile_NotFound(t *testing.T) {
	h := NewUserHandler(&mockUserService{getErr: service.ErrUserProfileNotFound})

	w := serve("GET", "/users/me", "/users/me", withAuth(h.GetProfile), nil, "")

	if resp := parseResponse(w); w.Code != http.StatusNotFound || resp.Code != 11001 {
		t.Errorf("expected 404/11001, got %d/%d", w.Code, resp.Code)
	}
}

func TestUserHandler_UpsertProfile_BadEmail(t *testing.T) {
	h := NewUserHandler(&mockUserService{})

	w := serve("PUT", "/users/me", "/users/me", withAuth(h.UpsertProfile),
		jsonBody(dto.UpsertProfileRequest{Email: "not-an-email"}), "application/json")

	if w.Code != http.StatusBadRequest {
		t.Errorf("expected 400, got %d", w.Code)
	}
}

// ═══════════════════════════════════════════════════════════
// Body limit
// ═══════════════════════════════════════════════════════════

func TestRespondBindError_BodyTooLarge(t *testing.T) {
	h := NewForumHandler(&mockForumService{})

	w := httptest.NewRecorder()
	req := httptest.NewRequest("POST", "/communities/100/questions",
		strings.NewReader(`{"question":"`+strings.Repeat("x", 2048)+`"}`))
	req.Header.Set("Content-Type", "application/json")

	r := gin.New()
	r.POST("/communities/:id/questions", func(c *gin.Context) {
		c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, 64)
		c.Set("user_id", "u1")
		h.AskQuestion(c)
	})
	r.ServeHTTP(w, req)

	if w.Code != http.StatusRequestEntityTooLarge {
		t.Errorf("expected 413, got %d", w.Code)
	}
	if resp := parseResponse(w); resp.Code != response.CodeBodyTooLarge {
		t.Errorf("expected code %d, got %d", response.CodeBodyTooLarge, resp.Code)
	}
}

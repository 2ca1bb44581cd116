package router

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/Cameron2125/HackathonApp/config"
	"github.com/Cameron2125/HackathonApp/internal/api/handler"
	"github.com/Cameron2125/HackathonApp/internal/docstore"
	"github.com/Cameron2125/HackathonApp/internal/repository"
	"github.com/Cameron2125/HackathonApp/internal/service"
	"github.com/Cameron2125/HackathonApp/pkg/jwt"
	"github.com/Cameron2125/HackathonApp/pkg/response"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func testConfig() *config.Config {
	return &config.Config{
		Server: config.ServerConfig{
			Port:         8080,
			MaxBodyBytes: 1 << 20,
			CORS:         config.CORSConfig{AllowOrigins: []string{"*"}},
		},
		Auth: config.AuthConfig{
			JWTSecret:      "router-test-secret",
			AccessTokenTTL: time.Hour,
			Issuer:         "planner-test",
		},
		Calendar: config.CalendarConfig{
			Timezone:             "UTC",
			RowHeight:            60,
			DefaultClassDuration: time.Hour,
			WindowDays:           7,
			DayStripBatch:        30,
			DayStripThreshold:    7,
			NowRefreshInterval:   time.Minute,
		},
		Forum: config.ForumConfig{
			RemovalMargin:    5,
			DefaultCommunity: "100",
			RateLimit:        30,
			RateWindow:       time.Minute,
		},
	}
}

// setupEngine 内存存储 + 无 Redis 的完整路由
func setupEngine(t *testing.T) (*gin.Engine, string) {
	t.Helper()
	cfg := testConfig()
	logger := zap.NewNop()

	repo := repository.NewRepository(docstore.NewMemoryStore(), logger)
	svc, err := service.NewService(cfg, repo, logger)
	if err != nil {
		t.Fatalf("初始化服务失败: %v", err)
	}
	jwtMgr := jwt.NewManager(&cfg.Auth)

	engine, err := Setup(cfg, handler.NewHandler(svc), jwtMgr, nil, logger)
	if err != nil {
		t.Fatalf("初始化路由失败: %v", err)
	}

	token, err := jwtMgr.GenerateAccessToken("uid-1", "a@school.edu")
	if err != nil {
		t.Fatalf("签发 token 失败: %v", err)
	}
	return engine, token
}

func do(engine *gin.Engine, method, path, token, body string) *httptest.ResponseRecorder {
	var req *http.Request
	if body != "" {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, path, nil)
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	engine.ServeHTTP(w, req)
	return w
}

func TestHealth(t *testing.T) {
	engine, _ := setupEngine(t)

	w := do(engine, "GET", "/health", "", "")
	if w.Code != http.StatusOK {
		t.Errorf("期望 200，实际 %d", w.Code)
	}
	if w.Header().Get("X-Request-ID") == "" {
		t.Error("期望响应携带 X-Request-ID")
	}
}

func TestAPI_RequiresAuth(t *testing.T) {
	engine, _ := setupEngine(t)

	w := do(engine, "GET", "/api/v1/calendar/agenda", "", "")
	if w.Code != http.StatusUnauthorized {
		t.Errorf("期望 401，实际 %d", w.Code)
	}
}

func TestAPI_ClassRoundTrip(t *testing.T) {
	engine, token := setupEngine(t)

	w := do(engine, "POST", "/api/v1/classes", token,
		`{"name":"Math","days_of_week":["M","W"],"start_time":"09:30","end_time":"10:45"}`)
	if w.Code != http.StatusCreated {
		t.Fatalf("创建课程期望 201，实际 %d: %s", w.Code, w.Body.String())
	}

	w = do(engine, "POST", "/api/v1/classes", token,
		`{"name":"Math","days_of_week":["Monday"],"start_time":"09:30"}`)
	if w.Code != http.StatusBadRequest {
		t.Errorf("非法星期码期望 400，实际 %d", w.Code)
	}

	w = do(engine, "GET", "/api/v1/calendar/events", token, "")
	if w.Code != http.StatusOK {
		t.Fatalf("期望 200，实际 %d", w.Code)
	}
	var resp response.Response
	json.Unmarshal(w.Body.Bytes(), &resp)
	data, _ := json.Marshal(resp.Data)
	if !strings.Contains(string(data), "Math") {
		t.Errorf("事件列表应包含 Math，实际 %s", data)
	}
}

func TestAPI_ForumSeed(t *testing.T) {
	engine, token := setupEngine(t)

	w := do(engine, "POST", "/api/v1/communities/100/questions/seed", token, "")
	if w.Code != http.StatusCreated {
		t.Fatalf("期望 201，实际 %d: %s", w.Code, w.Body.String())
	}

	w = do(engine, "POST", "/api/v1/communities/100/questions/seed", token, "")
	if w.Code != http.StatusConflict {
		t.Errorf("重复初始化期望 409，实际 %d", w.Code)
	}

	w = do(engine, "GET", "/api/v1/communities/100/questions", token, "")
	if w.Code != http.StatusOK {
		t.Errorf("期望 200，实际 %d", w.Code)
	}
}

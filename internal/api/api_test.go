package api_test

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/guestbook-api/internal/api"
	"github.com/guestbook-api/internal/auth"
	"github.com/guestbook-api/internal/config"
	"github.com/guestbook-api/internal/metrics"
	"github.com/guestbook-api/internal/mocks"
	"github.com/guestbook-api/internal/models"
	"github.com/guestbook-api/internal/ratelimit"
	"github.com/guestbook-api/internal/repository"
	"github.com/guestbook-api/internal/service"
	"github.com/rs/zerolog"
)

const adminKey = "let-me-in"

type testEnv struct {
	router     *gin.Engine
	repo       *mocks.MockPostRepository
	dispatcher *mocks.MockDispatcher
	metrics    *metrics.Metrics
	issuer     *auth.Issuer
}

type fakeDB struct{ err error }

func (f fakeDB) HealthCheck(context.Context) error { return f.err }

func testConfig() *config.Config {
	return &config.Config{
		Server: config.ServerConfig{
			Port:           "8080",
			RequestTimeout: 5 * time.Second,
			AllowedOrigin:  "*",
		},
		Auth: config.AuthConfig{
			AdminKey:  adminKey,
			JWTSecret: "0123456789abcdef0123456789abcdef",
			TokenTTL:  time.Hour,
			Issuer:    "guestbook-api",
		},
	}
}

func setupTestRouter(writeMax int) *testEnv {
	gin.SetMode(gin.TestMode)

	repo := mocks.NewMockPostRepository()
	dispatcher := &mocks.MockDispatcher{}
	m := metrics.New()
	log := zerolog.Nop()
	cfg := testConfig()

	services := service.NewServices(&repository.Repositories{Post: repo}, dispatcher, m, log)
	issuer := auth.NewIssuer(cfg.Auth)

	router := api.NewRouter(&api.Dependencies{
		Services:       services,
		Issuer:         issuer,
		WriteLimiter:   ratelimit.New(writeMax, 15*time.Minute),
		GeneralLimiter: ratelimit.New(1000, time.Minute),
		Metrics:        m,
		DB:             fakeDB{},
	}, cfg, log)

	return &testEnv{router: router, repo: repo, dispatcher: dispatcher, metrics: m, issuer: issuer}
}

func (e *testEnv) do(method, path string, body interface{}, headers map[string]string) *httptest.ResponseRecorder {
	var reader *bytes.Reader
	if body != nil {
		raw, _ := json.Marshal(body)
		reader = bytes.NewReader(raw)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	for k, v := range headers {
		req.Header.Set(k, v)
	}

	w := httptest.NewRecorder()
	e.router.ServeHTTP(w, req)
	return w
}

func (e *testEnv) adminToken(t *testing.T) map[string]string {
	t.Helper()
	tok, err := e.issuer.Login(adminKey)
	if err != nil {
		t.Fatalf("Login failed: %v", err)
	}
	return map[string]string{"Authorization": "Bearer " + tok.Token}
}

func decode(t *testing.T, w *httptest.ResponseRecorder, v interface{}) {
	t.Helper()
	if err := json.Unmarshal(w.Body.Bytes(), v); err != nil {
		t.Fatalf("Failed to decode response %q: %v", w.Body.String(), err)
	}
}

func TestHealthEndpoint(t *testing.T) {
	env := setupTestRouter(5)

	w := env.do("GET", "/health", nil, nil)
	if w.Code != http.StatusOK {
		t.Errorf("Expected status 200, got %d", w.Code)
	}

	var response map[string]interface{}
	decode(t, w, &response)

	if response["status"] != "healthy" {
		t.Errorf("Expected status 'healthy', got %v", response["status"])
	}
	if response["service"] != "guestbook-api" {
		t.Errorf("Expected service name, got %v", response["service"])
	}
	if response["database"] != "up" {
		t.Errorf("Expected database 'up', got %v", response["database"])
	}
}

func TestHealthEndpoint_DatabaseDown(t *testing.T) {
	gin.SetMode(gin.TestMode)
	router := api.NewRouter(&api.Dependencies{
		Services: service.NewServices(&repository.Repositories{Post: mocks.NewMockPostRepository()}, &mocks.MockDispatcher{}, nil, zerolog.Nop()),
		DB:       fakeDB{err: errors.New("connection refused")},
	}, testConfig(), zerolog.Nop())

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest("GET", "/health", nil))

	if w.Code != http.StatusServiceUnavailable {
		t.Errorf("Expected status 503, got %d", w.Code)
	}
}

func TestMetricsEndpoint(t *testing.T) {
	env := setupTestRouter(5)
	env.do("POST", "/v1/posts", map[string]string{"name": "Alice", "message": "Hi"}, nil)

	w := env.do("GET", "/metrics", nil, nil)
	if w.Code != http.StatusOK {
		t.Fatalf("Expected status 200, got %d", w.Code)
	}

	body := w.Body.String()
	for _, want := range []string{
		"guestbook_http_requests_total",
		"guestbook_posts_created_total 1",
		`guestbook_rate_limit_decisions_total{limiter="write",result="allowed"} 1`,
	} {
		if !strings.Contains(body, want) {
			t.Errorf("Expected metrics to contain %q", want)
		}
	}
}

func TestHelloEndpoint(t *testing.T) {
	env := setupTestRouter(5)

	w := env.do("GET", "/v1/hello?text=world", nil, nil)
	if w.Code != http.StatusOK {
		t.Fatalf("Expected status 200, got %d", w.Code)
	}

	var response models.Greeting
	decode(t, w, &response)
	if response.Greeting != "Hello world" {
		t.Errorf("Expected 'Hello world', got %q", response.Greeting)
	}
}

func TestCreatePost(t *testing.T) {
	env := setupTestRouter(5)

	w := env.do("POST", "/v1/posts", map[string]string{"name": "Alice", "message": "Lovely site"}, nil)
	if w.Code != http.StatusCreated {
		t.Fatalf("Expected status 201, got %d: %s", w.Code, w.Body.String())
	}

	var post models.Post
	decode(t, w, &post)
	if post.ID != 1 || post.Name != "Alice" {
		t.Errorf("Unexpected post: %+v", post)
	}
	if post.ModerationStatus != models.StatusPending {
		t.Errorf("Expected PENDING, got %s", post.ModerationStatus)
	}
	if post.AvatarURL == "" {
		t.Error("Expected avatar URL")
	}
	if len(env.dispatcher.Dispatched()) != 1 {
		t.Error("Expected one notification")
	}
	if w.Header().Get("X-RateLimit-Limit") != "5" || w.Header().Get("X-RateLimit-Remaining") != "4" {
		t.Errorf("Unexpected rate limit headers: %v", w.Header())
	}
}

func TestCreatePost_ValidationError(t *testing.T) {
	env := setupTestRouter(5)

	w := env.do("POST", "/v1/posts", map[string]string{"name": "", "message": strings.Repeat("a", 501)}, nil)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("Expected status 400, got %d", w.Code)
	}

	var response struct {
		Code   string `json:"code"`
		Fields []struct {
			Field   string `json:"field"`
			Message string `json:"message"`
		} `json:"fields"`
	}
	decode(t, w, &response)

	if response.Code != "VALIDATION_ERROR" {
		t.Errorf("Expected VALIDATION_ERROR, got %s", response.Code)
	}
	if len(response.Fields) != 2 || response.Fields[0].Field != "name" || response.Fields[1].Field != "message" {
		t.Errorf("Unexpected fields: %+v", response.Fields)
	}
	if len(env.repo.Posts) != 0 {
		t.Error("Expected no row to be created")
	}
}

func TestCreatePost_MalformedJSON(t *testing.T) {
	env := setupTestRouter(5)

	req := httptest.NewRequest("POST", "/v1/posts", strings.NewReader("{not json"))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	env.router.ServeHTTP(w, req)

	if w.Code != http.StatusBadRequest {
		t.Errorf("Expected status 400, got %d", w.Code)
	}
	if !strings.Contains(w.Body.String(), "BAD_REQUEST") {
		t.Errorf("Expected BAD_REQUEST code, got %s", w.Body.String())
	}
}

func TestCreatePost_RateLimited(t *testing.T) {
	env := setupTestRouter(2)
	body := map[string]string{"name": "A", "message": "b"}
	client := map[string]string{"X-Forwarded-For": "203.0.113.7, 10.0.0.1"}

	for i := 0; i < 2; i++ {
		if w := env.do("POST", "/v1/posts", body, client); w.Code != http.StatusCreated {
			t.Fatalf("Request %d: expected 201, got %d", i+1, w.Code)
		}
	}

	w := env.do("POST", "/v1/posts", body, client)
	if w.Code != http.StatusTooManyRequests {
		t.Fatalf("Expected status 429, got %d", w.Code)
	}

	var response map[string]interface{}
	decode(t, w, &response)
	if response["code"] != "RATE_LIMITED" {
		t.Errorf("Expected RATE_LIMITED, got %v", response["code"])
	}
	if response["error"] != "too many requests, please try again later" {
		t.Errorf("Unexpected error message: %v", response["error"])
	}
	if w.Header().Get("X-RateLimit-Remaining") != "0" {
		t.Errorf("Expected remaining 0, got %s", w.Header().Get("X-RateLimit-Remaining"))
	}
	if retry, err := strconv.Atoi(w.Header().Get("Retry-After")); err != nil || retry < 1 {
		t.Errorf("Expected positive Retry-After, got %q", w.Header().Get("Retry-After"))
	}
	if resetAt, ok := response["resetAt"].(string); !ok {
		t.Errorf("Expected resetAt in body, got %v", response["resetAt"])
	} else if _, err := time.Parse(time.RFC3339, resetAt); err != nil {
		t.Errorf("Expected RFC3339 resetAt, got %q", resetAt)
	}
	if len(env.repo.Posts) != 2 {
		t.Errorf("Denied request must not create a row, got %d posts", len(env.repo.Posts))
	}

	// other clients are unaffected
	other := map[string]string{"X-Real-IP": "198.51.100.9"}
	if w := env.do("POST", "/v1/posts", body, other); w.Code != http.StatusCreated {
		t.Errorf("Expected other client to be admitted, got %d", w.Code)
	}
}

func TestRateLimit_SharedAcrossWrites(t *testing.T) {
	env := setupTestRouter(2)
	env.repo.Seed(1, models.StatusApproved)
	client := map[string]string{"X-Forwarded-For": "203.0.113.8"}

	env.do("PUT", "/v1/posts/1", map[string]string{"name": "A", "message": "b"}, client)
	env.do("POST", "/v1/posts", map[string]string{"name": "A", "message": "b"}, client)

	w := env.do("DELETE", "/v1/posts/1", nil, client)
	if w.Code != http.StatusTooManyRequests {
		t.Errorf("Expected delete to be rate limited, got %d", w.Code)
	}
	if _, ok := env.repo.Posts[1]; !ok {
		t.Error("Rate limited delete must not remove the row")
	}

	// reads are not subject to the write limiter
	if w := env.do("GET", "/v1/posts", nil, client); w.Code != http.StatusOK {
		t.Errorf("Expected reads to pass, got %d", w.Code)
	}
}

func TestReadsNotThrottledWithDefaultConfig(t *testing.T) {
	gin.SetMode(gin.TestMode)
	t.Setenv("RATE_LIMIT_GENERAL_ENABLED", "")
	t.Setenv("ADMIN_KEY", "")

	defaults, err := config.Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if defaults.RateLimit.GeneralEnabled {
		t.Fatal("General limiter should be disabled by default")
	}

	repo := mocks.NewMockPostRepository()
	repo.Seed(3, models.StatusApproved)
	services := service.NewServices(&repository.Repositories{Post: repo}, &mocks.MockDispatcher{}, nil, zerolog.Nop())
	router := api.NewRouter(&api.Dependencies{
		Services:     services,
		WriteLimiter: ratelimit.New(defaults.RateLimit.WriteMax, defaults.RateLimit.WriteWindow),
	}, testConfig(), zerolog.Nop())

	paths := []string{"/v1/posts", "/v1/posts/latest", "/v1/hello?text=x"}
	for i := 0; i < defaults.RateLimit.GeneralMax+20; i++ {
		for _, path := range paths {
			req := httptest.NewRequest("GET", path, nil)
			req.Header.Set("X-Forwarded-For", "203.0.113.9")
			w := httptest.NewRecorder()
			router.ServeHTTP(w, req)

			if w.Code != http.StatusOK {
				t.Fatalf("Request %d to %s: expected 200, got %d", i+1, path, w.Code)
			}
			if w.Header().Get("X-RateLimit-Limit") != "" {
				t.Fatalf("Reads should not carry rate limit headers, got %q on %s", w.Header().Get("X-RateLimit-Limit"), path)
			}
		}
	}
}

func TestListPosts_Pagination(t *testing.T) {
	env := setupTestRouter(5)
	env.repo.Seed(11, models.StatusApproved)
	env.repo.Seed(2, models.StatusPending)

	w := env.do("GET", "/v1/posts?limit=10", nil, nil)
	if w.Code != http.StatusOK {
		t.Fatalf("Expected status 200, got %d", w.Code)
	}

	var page models.PostPage
	decode(t, w, &page)
	if len(page.Posts) != 10 || page.Posts[0].ID != 11 || page.Posts[9].ID != 2 {
		t.Errorf("Unexpected first page: %d posts", len(page.Posts))
	}
	if page.NextCursor == nil || *page.NextCursor != 2 {
		t.Fatalf("Expected nextCursor 2, got %v", page.NextCursor)
	}

	w = env.do("GET", "/v1/posts?limit=10&cursor=2", nil, nil)
	var next models.PostPage
	decode(t, w, &next)
	if len(next.Posts) != 1 || next.Posts[0].ID != 1 {
		t.Errorf("Expected [1], got %d posts", len(next.Posts))
	}
	if next.NextCursor != nil {
		t.Errorf("Expected no nextCursor, got %d", *next.NextCursor)
	}
	if !strings.Contains(w.Body.String(), `"nextCursor":null`) {
		t.Errorf("Expected explicit null nextCursor, got %s", w.Body.String())
	}
}

func TestListPosts_BadParams(t *testing.T) {
	env := setupTestRouter(5)

	tests := []struct {
		query string
		code  int
	}{
		{"?limit=abc", http.StatusBadRequest},
		{"?limit=101", http.StatusBadRequest},
		{"?cursor=abc", http.StatusBadRequest},
		{"?cursor=-5", http.StatusOK},
		{"?limit=100", http.StatusOK},
	}

	for _, tt := range tests {
		t.Run(tt.query, func(t *testing.T) {
			w := env.do("GET", "/v1/posts"+tt.query, nil, nil)
			if w.Code != tt.code {
				t.Errorf("Expected %d, got %d: %s", tt.code, w.Code, w.Body.String())
			}
		})
	}
}

func TestGetLatest(t *testing.T) {
	env := setupTestRouter(5)

	w := env.do("GET", "/v1/posts/latest", nil, nil)
	if w.Code != http.StatusOK || strings.TrimSpace(w.Body.String()) != "null" {
		t.Errorf("Expected null latest, got %d %s", w.Code, w.Body.String())
	}

	env.repo.Seed(2, models.StatusPending)
	w = env.do("GET", "/v1/posts/latest", nil, nil)
	var post models.Post
	decode(t, w, &post)
	if post.ID != 2 {
		t.Errorf("Expected latest id 2, got %d", post.ID)
	}
}

func TestUpdateAndDeletePost(t *testing.T) {
	env := setupTestRouter(10)
	env.repo.Seed(1, models.StatusApproved)

	w := env.do("PUT", "/v1/posts/1", map[string]string{"name": "Edited", "message": "New text"}, nil)
	if w.Code != http.StatusOK {
		t.Fatalf("Expected status 200, got %d", w.Code)
	}
	var post models.Post
	decode(t, w, &post)
	if post.Name != "Edited" || post.Message != "New text" {
		t.Errorf("Unexpected update: %+v", post)
	}

	if w := env.do("PUT", "/v1/posts/99", map[string]string{"name": "A", "message": "b"}, nil); w.Code != http.StatusNotFound {
		t.Errorf("Expected 404, got %d", w.Code)
	}
	if w := env.do("PUT", "/v1/posts/abc", map[string]string{"name": "A", "message": "b"}, nil); w.Code != http.StatusBadRequest {
		t.Errorf("Expected 400 for non-numeric id, got %d", w.Code)
	}

	if w := env.do("DELETE", "/v1/posts/1", nil, nil); w.Code != http.StatusOK {
		t.Errorf("Expected 200, got %d", w.Code)
	}
	w = env.do("DELETE", "/v1/posts/1", nil, nil)
	if w.Code != http.StatusNotFound {
		t.Errorf("Expected 404 on second delete, got %d", w.Code)
	}
	if !strings.Contains(w.Body.String(), "NOT_FOUND") {
		t.Errorf("Expected NOT_FOUND code, got %s", w.Body.String())
	}
}

func TestAvatarSeed(t *testing.T) {
	env := setupTestRouter(5)

	w := env.do("GET", "/v1/avatars/seed", nil, nil)
	var seed models.AvatarSeed
	decode(t, w, &seed)
	if seed.Seed == "" || !strings.HasPrefix(seed.AvatarURL, "https://api.dicebear.com/9.x/adventurer/svg?seed=") {
		t.Errorf("Unexpected avatar seed: %+v", seed)
	}
}

func TestAdminLogin(t *testing.T) {
	env := setupTestRouter(5)

	w := env.do("POST", "/v1/admin/login", map[string]string{"key": "wrong"}, nil)
	if w.Code != http.StatusUnauthorized {
		t.Errorf("Expected 401 for wrong key, got %d", w.Code)
	}

	w = env.do("POST", "/v1/admin/login", map[string]string{"key": adminKey}, nil)
	if w.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d", w.Code)
	}
	var tok auth.Token
	decode(t, w, &tok)
	if tok.Token == "" {
		t.Fatal("Expected token")
	}

	w = env.do("GET", "/v1/admin/stats", nil, map[string]string{"Authorization": "Bearer " + tok.Token})
	if w.Code != http.StatusOK {
		t.Errorf("Expected issued token to grant access, got %d", w.Code)
	}
}

func TestAdminLogin_Disabled(t *testing.T) {
	gin.SetMode(gin.TestMode)
	cfg := testConfig()
	cfg.Auth.AdminKey = ""

	router := api.NewRouter(&api.Dependencies{
		Services: service.NewServices(&repository.Repositories{Post: mocks.NewMockPostRepository()}, &mocks.MockDispatcher{}, nil, zerolog.Nop()),
		Issuer:   auth.NewIssuer(cfg.Auth),
	}, cfg, zerolog.Nop())

	req := httptest.NewRequest("POST", "/v1/admin/login", strings.NewReader(`{"key":""}`))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	if w.Code != http.StatusServiceUnavailable {
		t.Errorf("Expected 503, got %d", w.Code)
	}
}

func TestAdminEndpoints_RequireToken(t *testing.T) {
	env := setupTestRouter(5)

	endpoints := []struct{ method, path string }{
		{"GET", "/v1/admin/posts"},
		{"PATCH", "/v1/admin/posts/1"},
		{"GET", "/v1/admin/stats"},
	}
	headers := []map[string]string{
		nil,
		{"Authorization": "Bearer not-a-token"},
		{"Authorization": "Basic " + adminKey},
	}

	for _, ep := range endpoints {
		for _, h := range headers {
			w := env.do(ep.method, ep.path, map[string]string{"status": "APPROVED"}, h)
			if w.Code != http.StatusUnauthorized {
				t.Errorf("%s %s with %v: expected 401, got %d", ep.method, ep.path, h, w.Code)
			}
		}
	}
}

func TestModeration(t *testing.T) {
	env := setupTestRouter(5)
	env.repo.Seed(3, models.StatusPending)
	env.repo.Seed(1, models.StatusApproved)
	token := env.adminToken(t)

	w := env.do("GET", "/v1/admin/posts?status=PENDING", nil, token)
	if w.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d", w.Code)
	}
	var page models.PostPage
	decode(t, w, &page)
	if len(page.Posts) != 3 {
		t.Errorf("Expected 3 pending posts, got %d", len(page.Posts))
	}

	w = env.do("GET", "/v1/admin/posts?status=bogus", nil, token)
	if w.Code != http.StatusBadRequest {
		t.Errorf("Expected 400 for invalid status, got %d", w.Code)
	}

	w = env.do("PATCH", "/v1/admin/posts/1", map[string]string{"status": "APPROVED"}, token)
	if w.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d", w.Code)
	}
	var post models.Post
	decode(t, w, &post)
	if post.ModerationStatus != models.StatusApproved {
		t.Errorf("Expected APPROVED, got %s", post.ModerationStatus)
	}

	if w := env.do("PATCH", "/v1/admin/posts/42", map[string]string{"status": "APPROVED"}, token); w.Code != http.StatusNotFound {
		t.Errorf("Expected 404, got %d", w.Code)
	}

	w = env.do("GET", "/v1/admin/stats", nil, token)
	var stats models.ModerationStats
	decode(t, w, &stats)
	if stats != (models.ModerationStats{Pending: 2, Approved: 2, Rejected: 0, Total: 4}) {
		t.Errorf("Unexpected stats: %+v", stats)
	}

	// approved post is now public
	w = env.do("GET", "/v1/posts", nil, nil)
	decode(t, w, &page)
	if len(page.Posts) != 2 {
		t.Errorf("Expected 2 public posts, got %d", len(page.Posts))
	}
}

func TestServiceErrorMapping(t *testing.T) {
	gin.SetMode(gin.TestMode)
	postSvc := mocks.NewMockPostService()
	router := api.NewRouter(&api.Dependencies{
		Services: &service.Services{Post: postSvc, Moderation: mocks.NewMockModerationService()},
	}, testConfig(), zerolog.Nop())

	tests := []struct {
		name string
		err  error
		code int
	}{
		{"not found", service.ErrPostNotFound, http.StatusNotFound},
		{"wrapped not found", errors.Join(errors.New("lookup"), service.ErrPostNotFound), http.StatusNotFound},
		{"rate limited", service.ErrRateLimited, http.StatusTooManyRequests},
		{"rate limited with reset", &service.RateLimitError{ResetAt: time.Now().Add(time.Minute)}, http.StatusTooManyRequests},
		{"timeout", context.DeadlineExceeded, http.StatusGatewayTimeout},
		{"store failure", errors.New("connection reset"), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			postSvc.DeleteFunc = func(context.Context, int64) (*models.Post, error) { return nil, tt.err }

			w := httptest.NewRecorder()
			router.ServeHTTP(w, httptest.NewRequest("DELETE", "/v1/posts/1", nil))
			if w.Code != tt.code {
				t.Errorf("Expected %d, got %d", tt.code, w.Code)
			}
			if tt.code == http.StatusInternalServerError && strings.Contains(w.Body.String(), "connection reset") {
				t.Error("Internal errors must not leak to clients")
			}
		})
	}
}

func TestCORSPreflight(t *testing.T) {
	env := setupTestRouter(5)

	w := env.do("OPTIONS", "/v1/posts", nil, nil)
	if w.Code != http.StatusNoContent {
		t.Errorf("Expected 204, got %d", w.Code)
	}
	if w.Header().Get("Access-Control-Allow-Origin") != "*" {
		t.Errorf("Expected CORS header, got %q", w.Header().Get("Access-Control-Allow-Origin"))
	}
}

func TestRequestID(t *testing.T) {
	env := setupTestRouter(5)

	w := env.do("GET", "/v1/hello", nil, map[string]string{"X-Request-ID": "abc-123"})
	if w.Header().Get("X-Request-ID") != "abc-123" {
		t.Errorf("Expected request id to be echoed, got %q", w.Header().Get("X-Request-ID"))
	}

	w = env.do("GET", "/v1/hello", nil, nil)
	if len(w.Header().Get("X-Request-ID")) != 36 {
		t.Errorf("Expected generated uuid, got %q", w.Header().Get("X-Request-ID"))
	}
}

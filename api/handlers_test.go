package api

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"

	"claudeboard/config"
	"claudeboard/notifications"
	"claudeboard/store"
)

func newTestRouter(t *testing.T) (*gin.Engine, config.Paths, *notifications.Service) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	cfg := config.Config{ClaudeDir: t.TempDir()}
	paths := cfg.Paths()
	for _, dir := range []string{paths.Plans, paths.Tasks, paths.Todos, paths.Projects} {
		if err := os.MkdirAll(dir, 0755); err != nil {
			t.Fatal(err)
		}
	}

	notif := notifications.NewService()
	t.Cleanup(notif.Shutdown)

	r := gin.New()
	SetupRoutes(r, NewHandlers(store.New(paths), notif))
	return r, paths, notif
}

func doGET(t *testing.T, r *gin.Engine, path string) *httptest.ResponseRecorder {
	t.Helper()
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, path, nil)
	r.ServeHTTP(w, req)
	return w
}

func TestHealth(t *testing.T) {
	r, _, _ := newTestRouter(t)

	w := doGET(t, r, "/api/health")
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", w.Code)
	}
	var body map[string]string
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatal(err)
	}
	if body["status"] != "ok" {
		t.Errorf("body = %v", body)
	}
}

func TestGetPlan(t *testing.T) {
	r, paths, _ := newTestRouter(t)
	if err := os.WriteFile(filepath.Join(paths.Plans, "launch.md"), []byte("# Launch\n\nSteps.\n"), 0644); err != nil {
		t.Fatal(err)
	}

	w := doGET(t, r, "/api/plans/launch.md")
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", w.Code)
	}
	var plan store.Plan
	if err := json.Unmarshal(w.Body.Bytes(), &plan); err != nil {
		t.Fatal(err)
	}
	if plan.Title != "Launch" || !strings.Contains(plan.Content, "Steps.") {
		t.Errorf("plan = %+v", plan)
	}

	w = doGET(t, r, "/api/plans/absent.md")
	if w.Code != http.StatusNotFound {
		t.Fatalf("status = %d, want 404", w.Code)
	}
	var errBody map[string]string
	if err := json.Unmarshal(w.Body.Bytes(), &errBody); err != nil {
		t.Fatal(err)
	}
	if errBody["error"] != "Plan not found" {
		t.Errorf("error body = %v", errBody)
	}
}

func TestListEndpointsReturnEmptyArrays(t *testing.T) {
	r, _, _ := newTestRouter(t)

	// Empty collections serialize as [], never null
	for _, path := range []string{"/api/plans", "/api/tasks", "/api/todos", "/api/sessions", "/api/projects", "/api/memory"} {
		w := doGET(t, r, path)
		if w.Code != http.StatusOK {
			t.Errorf("GET %s status = %d, want 200", path, w.Code)
			continue
		}
		if body := strings.TrimSpace(w.Body.String()); body != "[]" {
			t.Errorf("GET %s body = %q, want []", path, body)
		}
	}
}

func TestGetMemoryFileTraversal(t *testing.T) {
	r, paths, _ := newTestRouter(t)
	if err := os.MkdirAll(filepath.Join(paths.Projects, "-home-u-app", "memory"), 0755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(paths.Projects, "-home-u-app", "memory", "MEMORY.md"), []byte("# Index\n"), 0644); err != nil {
		t.Fatal(err)
	}
	// A real file outside the memory root that a probe might aim for
	if err := os.WriteFile(filepath.Join(paths.Claude, "settings.json"), []byte("{}"), 0644); err != nil {
		t.Fatal(err)
	}

	w := doGET(t, r, "/api/memory/-home-u-app/MEMORY.md")
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", w.Code)
	}

	// Traversal reads as a plain 404, indistinguishable from a missing file
	gin.SetMode(gin.TestMode)
	rec := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(rec)
	c.Request = httptest.NewRequest(http.MethodGet, "/", nil)
	c.Params = gin.Params{
		{Key: "projectDir", Value: ".."},
		{Key: "filename", Value: "settings.json"},
	}
	h := NewHandlers(store.New(paths), notifications.NewService())
	h.GetMemoryFile(c)
	if rec.Code != http.StatusNotFound {
		t.Errorf("traversal status = %d, want 404", rec.Code)
	}
	var errBody map[string]string
	if err := json.Unmarshal(rec.Body.Bytes(), &errBody); err != nil {
		t.Fatal(err)
	}
	if errBody["error"] != "Memory file not found" {
		t.Errorf("error body = %v", errBody)
	}
}

func TestSearchEmptyQuery(t *testing.T) {
	r, paths, _ := newTestRouter(t)
	if err := os.WriteFile(filepath.Join(paths.Plans, "a.md"), []byte("# Anything\n"), 0644); err != nil {
		t.Fatal(err)
	}

	for _, path := range []string{"/api/search", "/api/search?q=", "/api/search?q=%20%20"} {
		w := doGET(t, r, path)
		if w.Code != http.StatusOK {
			t.Errorf("GET %s status = %d, want 200", path, w.Code)
			continue
		}
		if body := strings.TrimSpace(w.Body.String()); body != "[]" {
			t.Errorf("GET %s body = %q, want []", path, body)
		}
	}

	w := doGET(t, r, "/api/search?q=anything")
	var results []store.SearchResult
	if err := json.Unmarshal(w.Body.Bytes(), &results); err != nil {
		t.Fatal(err)
	}
	if len(results) != 1 || results[0].Type != "plan" {
		t.Errorf("results = %+v", results)
	}
}

func TestStatsSummary(t *testing.T) {
	r, paths, _ := newTestRouter(t)
	cache := `{"totalSessions": 4, "totalMessages": 40, "dailyActivity": [{"date": "2026-02-01", "messageCount": 40, "sessionCount": 4, "toolCallCount": 8}]}`
	if err := os.WriteFile(paths.StatsCache, []byte(cache), 0644); err != nil {
		t.Fatal(err)
	}

	w := doGET(t, r, "/api/stats/summary")
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", w.Code)
	}
	var summary store.StatsSummary
	if err := json.Unmarshal(w.Body.Bytes(), &summary); err != nil {
		t.Fatal(err)
	}
	want := store.StatsSummary{
		TotalSessions:          4,
		TotalMessages:          40,
		TotalToolCalls:         8,
		AvgMessagesPerSession:  10,
		AvgToolCallsPerSession: 2,
	}
	if summary != want {
		t.Errorf("summary = %+v, want %+v", summary, want)
	}
}

func TestEventsHandshake(t *testing.T) {
	r, _, notif := newTestRouter(t)

	// Pre-cancelled context: the handler writes the handshake, enters its
	// loop, and returns on the first select pass.
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/events", nil).WithContext(ctx)
	r.ServeHTTP(w, req)

	if ct := w.Header().Get("Content-Type"); ct != "text/event-stream" {
		t.Errorf("content type = %q", ct)
	}
	if !strings.Contains(w.Body.String(), `data: {"type":"connected"}`) {
		t.Errorf("body = %q, want connected handshake", w.Body.String())
	}
	if notif.SubscriberCount() != 0 {
		t.Errorf("subscriber count = %d after disconnect, want 0", notif.SubscriberCount())
	}
}

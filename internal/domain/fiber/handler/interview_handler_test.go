package handler

import (
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/prepwise/interview-api/internal/model"
	"github.com/prepwise/interview-api/internal/repository"
	"github.com/prepwise/interview-api/internal/service"
	"github.com/prepwise/interview-api/internal/usecase"
	"github.com/tidwall/gjson"
	"go.uber.org/zap"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func newTestApp(t *testing.T) *fiber.App {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	if err := db.AutoMigrate(&model.Interview{}); err != nil {
		t.Fatalf("migrate: %v", err)
	}

	repo := repository.NewInterviewRepository(db)
	retry := service.NewRetryPolicy(zap.NewNop())
	retry.BaseDelay = time.Millisecond
	uc := usecase.NewInterviewUsecase(repo, nil, service.NewCannedService(), nil, retry, zap.NewNop())

	app := fiber.New()
	NewInterviewHandler(uc).RegisterRoutes(app)
	return app
}

func doJSON(t *testing.T, app *fiber.App, method, path, userID, body string) (int, string) {
	t.Helper()
	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	if userID != "" {
		req.Header.Set("X-User-ID", userID)
	}

	resp, err := app.Test(req, -1)
	if err != nil {
		t.Fatalf("%s %s: %v", method, path, err)
	}
	defer resp.Body.Close()
	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		t.Fatalf("read body: %v", err)
	}
	return resp.StatusCode, string(raw)
}

func TestRoutesRequireIdentity(t *testing.T) {
	app := newTestApp(t)
	status, _ := doJSON(t, app, http.MethodGet, "/api/interviews/history", "", "")
	if status != fiber.StatusUnauthorized {
		t.Fatalf("expected 401 without identity header, got %d", status)
	}
}

func TestSeedTopicsRequiresIdentity(t *testing.T) {
	app := newTestApp(t)
	status, _ := doJSON(t, app, http.MethodPost, "/api/admin/seed-topics", "", "")
	if status != fiber.StatusUnauthorized {
		t.Fatalf("expected 401 without identity header, got %d", status)
	}
}

func TestStartValidationError(t *testing.T) {
	app := newTestApp(t)
	status, body := doJSON(t, app, http.MethodPost, "/api/interviews/start", "user-1",
		`{"domain":"JavaScript","difficulty":"impossible"}`)
	if status != fiber.StatusBadRequest {
		t.Fatalf("expected 400, got %d: %s", status, body)
	}
	if gjson.Get(body, "success").Bool() {
		t.Fatalf("expected error envelope: %s", body)
	}
}

func TestSubmitUnknownInterview(t *testing.T) {
	app := newTestApp(t)
	status, _ := doJSON(t, app, http.MethodPost, "/api/interviews/submit", "user-1",
		`{"interviewId":"1f1e9d26-0000-0000-0000-000000000000","answers":["a","b","c","d","e"]}`)
	if status != fiber.StatusNotFound {
		t.Fatalf("expected 404, got %d", status)
	}
}

func TestFullInterviewFlow(t *testing.T) {
	app := newTestApp(t)

	status, body := doJSON(t, app, http.MethodPost, "/api/interviews/start", "user-1",
		`{"domain":"JavaScript","difficulty":"easy"}`)
	if status != fiber.StatusCreated {
		t.Fatalf("start: expected 201, got %d: %s", status, body)
	}
	interviewID := gjson.Get(body, "data.interviewId").String()
	if interviewID == "" {
		t.Fatalf("missing interviewId in response: %s", body)
	}
	if n := gjson.Get(body, "data.questions.#").Int(); n != 5 {
		t.Fatalf("expected 5 questions, got %d: %s", n, body)
	}

	submitBody := `{"interviewId":"` + interviewID + `","answers":["short answer here","short answer here","short answer here","short answer here","short answer here"]}`

	// A non-owner must be rejected without side effects.
	status, _ = doJSON(t, app, http.MethodPost, "/api/interviews/submit", "intruder", submitBody)
	if status != fiber.StatusForbidden {
		t.Fatalf("expected 403 for non-owner, got %d", status)
	}

	status, body = doJSON(t, app, http.MethodPost, "/api/interviews/submit", "user-1", submitBody)
	if status != fiber.StatusOK {
		t.Fatalf("submit: expected 200, got %d: %s", status, body)
	}
	if n := gjson.Get(body, "data.scores.#").Int(); n != 5 {
		t.Fatalf("expected 5 scores, got %d: %s", n, body)
	}
	if overall := gjson.Get(body, "data.overallScore").Float(); overall < 0 || overall > 100 {
		t.Fatalf("overall score out of range: %v", overall)
	}
	if gjson.Get(body, "data.feedback").String() == "" {
		t.Fatalf("expected feedback in response: %s", body)
	}

	// Resubmission conflicts.
	status, _ = doJSON(t, app, http.MethodPost, "/api/interviews/submit", "user-1", submitBody)
	if status != fiber.StatusConflict {
		t.Fatalf("expected 409 on resubmission, got %d", status)
	}

	status, body = doJSON(t, app, http.MethodGet, "/api/interviews/history", "user-1", "")
	if status != fiber.StatusOK {
		t.Fatalf("history: expected 200, got %d: %s", status, body)
	}
	if n := gjson.Get(body, "data.statistics.totalInterviews").Int(); n != 1 {
		t.Fatalf("expected 1 interview in history, got %d: %s", n, body)
	}
	if s := gjson.Get(body, "data.interviews.0.status").String(); s != model.StatusCompleted {
		t.Fatalf("expected completed interview in history, got %q", s)
	}
	if gjson.Get(body, "pagination.total_items").Int() != 1 {
		t.Fatalf("expected pagination metadata: %s", body)
	}
}

func TestHistoryPagination(t *testing.T) {
	app := newTestApp(t)

	for i := 0; i < 3; i++ {
		status, _ := doJSON(t, app, http.MethodPost, "/api/interviews/start", "user-1",
			`{"domain":"React","difficulty":"medium"}`)
		if status != fiber.StatusCreated {
			t.Fatalf("start %d failed with %d", i, status)
		}
	}

	status, body := doJSON(t, app, http.MethodGet, "/api/interviews/history?page=2&page_size=2", "user-1", "")
	if status != fiber.StatusOK {
		t.Fatalf("expected 200, got %d", status)
	}
	if n := gjson.Get(body, "data.interviews.#").Int(); n != 1 {
		t.Fatalf("expected 1 interview on page 2, got %d: %s", n, body)
	}
	if gjson.Get(body, "pagination.has_more").Bool() {
		t.Fatalf("page 2 of 2 must not report more: %s", body)
	}
	if n := gjson.Get(body, "data.statistics.totalInterviews").Int(); n != 3 {
		t.Fatalf("statistics must cover all interviews, got %d", n)
	}
}

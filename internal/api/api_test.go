package api_test

import (
	"bufio"
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"

	"github.com/interviewer/backend/internal/api"
	"github.com/interviewer/backend/internal/content"
	"github.com/interviewer/backend/internal/domain/guide"
	"github.com/interviewer/backend/internal/domain/statistics"
	"github.com/interviewer/backend/internal/logger"
	"github.com/interviewer/backend/internal/metrics"
	"github.com/interviewer/backend/internal/migration"
	"github.com/interviewer/backend/internal/service"
	"github.com/interviewer/backend/internal/store"
)

type firstPick struct{}

func (firstPick) Float64() float64 { return 0 }
func (firstPick) IntN(int) int     { return 0 }

func testGuide() *guide.Guide {
	return &guide.Guide{
		Name:       "Go",
		SourceFile: "go.json",
		Chapters: []guide.Chapter{
			{Number: 1, Title: "Basics", Questions: []guide.Question{
				{Number: 1, NumberInChapter: 1, ChapterNumber: 1, Title: "Slices"},
				{Number: 2, NumberInChapter: 2, ChapterNumber: 1, Title: "Maps"},
			}},
			{Number: 2, Title: "Runtime", Questions: []guide.Question{
				{Number: 3, NumberInChapter: 1, ChapterNumber: 2, Title: "Scheduler"},
			}},
		},
	}
}

func newServer(t *testing.T) http.Handler {
	t.Helper()
	log := logger.Nop()
	m := metrics.New()

	rel, err := store.OpenSQLite(filepath.Join(t.TempDir(), "api.db"), log)
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	t.Cleanup(func() { rel.Close() })

	kv := store.NewMemoryKV()
	src := content.NewMemorySource(testGuide())
	flag := store.NewMigrationFlag(kv)
	doc := store.NewDocumentStore(kv, src, log)
	adapter := store.NewAdapter(flag, doc, rel, src, m, log)
	engine := migration.NewEngine(src, doc, rel, flag, m, log)
	interviews := service.NewInterviewService(adapter, firstPick{}, m, log)

	mux := http.NewServeMux()
	api.RegisterRoutes(mux, api.NewHandler(adapter, interviews, engine, m, log))
	return api.Logging(log, m)(api.CORS(mux))
}

func do(t *testing.T, h http.Handler, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	var r *http.Request
	if body == "" {
		r = httptest.NewRequest(method, path, nil)
	} else {
		r = httptest.NewRequest(method, path, strings.NewReader(body))
		r.Header.Set("Content-Type", "application/json")
	}
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, r)
	return rec
}

func decode[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	if err := json.NewDecoder(rec.Body).Decode(&v); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	return v
}

func TestHealth(t *testing.T) {
	h := newServer(t)
	rec := do(t, h, "GET", "/health", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	body := decode[map[string]string](t, rec)
	if body["backend"] != store.BackendDocument {
		t.Errorf("expected document backend, got %q", body["backend"])
	}
}

func TestGuides(t *testing.T) {
	h := newServer(t)

	rec := do(t, h, "GET", "/guides", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	list := decode[[]guide.Summary](t, rec)
	if len(list) != 1 || list[0].TotalQuestions != 3 {
		t.Errorf("unexpected catalogue: %+v", list)
	}

	if rec := do(t, h, "GET", "/guides/Go", ""); rec.Code != http.StatusOK {
		t.Errorf("expected 200, got %d", rec.Code)
	}
	if rec := do(t, h, "GET", "/guides/Rust", ""); rec.Code != http.StatusNotFound {
		t.Errorf("expected 404, got %d", rec.Code)
	}
}

func TestScoring(t *testing.T) {
	h := newServer(t)

	if rec := do(t, h, "GET", "/guides/Go/statistics", ""); rec.Code != http.StatusNotFound {
		t.Errorf("expected 404 before initialization, got %d", rec.Code)
	}
	rec := do(t, h, "POST", "/guides/Go/statistics", "")
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", rec.Code, rec.Body)
	}

	rec = do(t, h, "PUT", "/guides/Go/chapters/1/questions/1/score", `{"score": 5}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body)
	}
	rec = do(t, h, "PUT", "/guides/Go/chapters/1/questions/2/score", `{"score": 3}`)
	p := decode[statistics.PositionStatistic](t, rec)
	if p.Chapters[0].ChapterScore != 4 || p.Chapters[0].AnsweredCount != 2 {
		t.Errorf("expected 4.0 over 2 answers, got %+v", p.Chapters[0])
	}

	tests := []struct {
		name   string
		path   string
		body   string
		status int
	}{
		{"fractional score", "/guides/Go/chapters/1/questions/1/score", `{"score": 5.5}`, http.StatusBadRequest},
		{"score too high", "/guides/Go/chapters/1/questions/1/score", `{"score": 6}`, http.StatusBadRequest},
		{"negative score", "/guides/Go/chapters/1/questions/1/score", `{"score": -1}`, http.StatusBadRequest},
		{"missing score", "/guides/Go/chapters/1/questions/1/score", `{}`, http.StatusBadRequest},
		{"bad chapter", "/guides/Go/chapters/one/questions/1/score", `{"score": 1}`, http.StatusBadRequest},
		{"unknown chapter", "/guides/Go/chapters/9/questions/1/score", `{"score": 1}`, http.StatusNotFound},
		{"unknown guide", "/guides/Rust/chapters/1/questions/1/score", `{"score": 1}`, http.StatusNotFound},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if rec := do(t, h, "PUT", tt.path, tt.body); rec.Code != tt.status {
				t.Errorf("expected %d, got %d: %s", tt.status, rec.Code, rec.Body)
			}
		})
	}

	rec = do(t, h, "GET", "/guides/Go/weak-questions?threshold=4", "")
	weak := decode[api.WeakQuestionsResponse](t, rec)
	if len(weak.Questions) != 1 || weak.Questions[0].QuestionNumber != 2 {
		t.Errorf("expected question 2 as weak, got %+v", weak.Questions)
	}
	if rec := do(t, h, "GET", "/guides/Go/weak-questions?threshold=x", ""); rec.Code != http.StatusBadRequest {
		t.Errorf("expected 400 for a bad threshold, got %d", rec.Code)
	}

	if rec := do(t, h, "DELETE", "/guides/Go/chapters/1/questions/2/score", ""); rec.Code != http.StatusNoContent {
		t.Errorf("expected 204, got %d", rec.Code)
	}
	if rec := do(t, h, "DELETE", "/guides/Go/chapters/1/statistics", ""); rec.Code != http.StatusNoContent {
		t.Errorf("expected 204, got %d", rec.Code)
	}
	if rec := do(t, h, "DELETE", "/guides/Go/statistics", ""); rec.Code != http.StatusNoContent {
		t.Errorf("expected 204, got %d", rec.Code)
	}

	p = decode[statistics.PositionStatistic](t, do(t, h, "GET", "/guides/Go/statistics", ""))
	if p.TotalAnswered != 0 || p.OverallScore != 0 {
		t.Errorf("expected zeroed statistics, got %v/%d", p.OverallScore, p.TotalAnswered)
	}
}

func TestInterviewFlow(t *testing.T) {
	h := newServer(t)

	rec := do(t, h, "POST", "/interviews", `{"guideName": "Go", "chapterFilter": 999}`)
	if rec.Code != http.StatusUnprocessableEntity {
		t.Errorf("expected 422 for an unmatched chapter, got %d", rec.Code)
	}
	if rec := do(t, h, "POST", "/interviews", `{}`); rec.Code != http.StatusBadRequest {
		t.Errorf("expected 400 without a guide, got %d", rec.Code)
	}

	rec = do(t, h, "POST", "/interviews", `{"guideName": "Go"}`)
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", rec.Code, rec.Body)
	}
	snap := decode[service.Snapshot](t, rec)
	base := "/interviews/" + snap.ID

	if rec := do(t, h, "POST", base+"/answers", `{"score": 2}`); rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body)
	}
	if rec := do(t, h, "POST", base+"/answers", `{"score": 9}`); rec.Code != http.StatusBadRequest {
		t.Errorf("expected 400, got %d", rec.Code)
	}
	for _, action := range []string{"/pause", "/resume", "/next", "/next", "/next"} {
		if rec := do(t, h, "POST", base+action, ""); rec.Code != http.StatusOK {
			t.Fatalf("%s: expected 200, got %d", action, rec.Code)
		}
	}

	snap = decode[service.Snapshot](t, do(t, h, "GET", base, ""))
	if snap.State != "idle" || snap.Stats.QuestionsAnswered != 1 {
		t.Errorf("expected an exhausted session with one answer, got %+v", snap)
	}
	if rec := do(t, h, "POST", base+"/next", ""); rec.Code != http.StatusConflict {
		t.Errorf("expected 409 on an idle session, got %d", rec.Code)
	}

	if rec := do(t, h, "DELETE", base, ""); rec.Code != http.StatusOK {
		t.Errorf("expected 200, got %d", rec.Code)
	}
	if rec := do(t, h, "GET", base, ""); rec.Code != http.StatusNotFound {
		t.Errorf("expected 404 after exit, got %d", rec.Code)
	}

	p := decode[statistics.PositionStatistic](t, do(t, h, "GET", "/guides/Go/statistics", ""))
	if p.TotalAnswered != 1 {
		t.Errorf("expected the interview answer stored, got %d", p.TotalAnswered)
	}
}

func TestMigrationEndpoints(t *testing.T) {
	h := newServer(t)

	if rec := do(t, h, "PUT", "/guides/Go/chapters/2/questions/3/score", `{"score": 1}`); rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	rec := do(t, h, "POST", "/migration", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	var last api.MigrationEvent
	lines := 0
	sc := bufio.NewScanner(rec.Body)
	for sc.Scan() {
		if err := json.Unmarshal(sc.Bytes(), &last); err != nil {
			t.Fatalf("line %d: %v", lines, err)
		}
		lines++
	}
	if last.Type != "result" || last.Result == nil || !last.Result.Success {
		t.Fatalf("expected a successful result as the last line, got %+v", last)
	}
	if lines < 6 {
		t.Errorf("expected progress events before the result, got %d lines", lines)
	}

	st := decode[migration.Status](t, do(t, h, "GET", "/migration", ""))
	if st.Backend != store.BackendSQLite || st.Counts.Answered != 1 {
		t.Errorf("unexpected status after migration: %+v", st)
	}

	rec = do(t, h, "GET", "/migration/export", "")
	if rec.Code != http.StatusOK || !bytes.HasPrefix(rec.Body.Bytes(), []byte("SQLite format 3")) {
		t.Fatalf("expected a sqlite snapshot, got %d", rec.Code)
	}
	snapshot := rec.Body.Bytes()

	st = decode[migration.Status](t, do(t, h, "POST", "/migration/rollback", ""))
	if st.Backend != store.BackendDocument {
		t.Errorf("expected document backend after rollback, got %s", st.Backend)
	}

	r := httptest.NewRequest("POST", "/migration/import", bytes.NewReader(snapshot))
	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, r)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body)
	}
	st = decode[migration.Status](t, rec)
	if st.Backend != store.BackendSQLite || st.Counts.Guides != 1 {
		t.Errorf("unexpected status after import: %+v", st)
	}

	if rec := do(t, h, "POST", "/migration/import", "garbage"); rec.Code != http.StatusBadRequest {
		t.Errorf("expected 400 for a bad snapshot, got %d", rec.Code)
	}
}

func TestCORSPreflight(t *testing.T) {
	h := newServer(t)
	r := httptest.NewRequest(http.MethodOptions, "/guides", nil)
	r.Header.Set("Origin", "http://localhost:5173")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, r)

	if rec.Code != http.StatusNoContent {
		t.Errorf("expected 204, got %d", rec.Code)
	}
	if got := rec.Header().Get("Access-Control-Allow-Origin"); got != "*" {
		t.Errorf("unexpected allow-origin header: %q", got)
	}
}

package server

import (
	"context"
	"encoding/csv"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/claude/clab/internal/config"
	"github.com/claude/clab/internal/models"
	"github.com/claude/clab/internal/progress"
	"github.com/claude/clab/internal/service"
	"github.com/claude/clab/internal/storage"
)

func newTestServer(t *testing.T, apiKey string) (*Server, *service.Service) {
	t.Helper()
	svc := service.New(context.Background(), storage.NewMemory(), discardLogger())
	opts := Options{
		APIKey:   apiKey,
		Calendar: config.CalendarConfig{Start: "2026-10-19", Hour: 7},
	}
	return New(svc, opts, discardLogger()), svc
}

func withPlan(t *testing.T) *Server {
	t.Helper()
	srv, svc := newTestServer(t, "")
	if _, err := svc.GeneratePlan(context.Background(), models.DefaultUserConfig()); err != nil {
		t.Fatalf("GeneratePlan: %v", err)
	}
	return srv
}

func do(t *testing.T, h http.Handler, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, path, nil)
	} else {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	}
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func decode[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	if err := json.NewDecoder(rec.Body).Decode(&v); err != nil {
		t.Fatalf("decode error: %v", err)
	}
	return v
}

// TestHandleMeDefault verifies /api/v1/me returns the local identity when
// no Tailscale client is configured.
func TestHandleMeDefault(t *testing.T) {
	srv, _ := newTestServer(t, "")
	rec := do(t, srv, http.MethodGet, "/api/v1/me", "")

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	info := decode[UserInfo](t, rec)
	if info.Login != "local" {
		t.Errorf("login = %q, want %q", info.Login, "local")
	}
}

// TestNoPlanIsNotFound verifies plan reads before generation return 404.
func TestNoPlanIsNotFound(t *testing.T) {
	srv, _ := newTestServer(t, "")
	for _, path := range []string{"/api/v1/plan", "/api/v1/plan/weeks/1", "/api/v1/stats", "/api/v1/export/plan.csv"} {
		if rec := do(t, srv, http.MethodGet, path, ""); rec.Code != http.StatusNotFound {
			t.Errorf("GET %s = %d, want 404", path, rec.Code)
		}
	}
}

// TestGeneratePlan verifies posting a profile builds and persists a plan.
func TestGeneratePlan(t *testing.T) {
	srv, _ := newTestServer(t, "")
	cfg := models.DefaultUserConfig()
	cfg.DurationWeeks = 8
	body, _ := json.Marshal(cfg)

	rec := do(t, srv, http.MethodPost, "/api/v1/plan", string(body))
	if rec.Code != http.StatusCreated {
		t.Fatalf("status = %d, body %s", rec.Code, rec.Body)
	}
	if weeks := decode[[]models.WeekBlock](t, rec); len(weeks) != 8 {
		t.Errorf("got %d weeks, want 8", len(weeks))
	}

	st := decode[models.AppState](t, do(t, srv, http.MethodGet, "/api/v1/state", ""))
	if st.Step != models.StepResult || st.UserData.DurationWeeks != 8 {
		t.Errorf("state step=%q weeks=%d", st.Step, st.UserData.DurationWeeks)
	}
}

// TestGeneratePlanStoredProfile verifies an empty body uses the stored profile.
func TestGeneratePlanStoredProfile(t *testing.T) {
	srv, _ := newTestServer(t, "")
	rec := do(t, srv, http.MethodPost, "/api/v1/plan", "")
	if rec.Code != http.StatusCreated {
		t.Fatalf("status = %d, body %s", rec.Code, rec.Body)
	}
	if weeks := decode[[]models.WeekBlock](t, rec); len(weeks) != models.DefaultDurationWeeks {
		t.Errorf("got %d weeks", len(weeks))
	}
}

// TestValidationErrors verifies bad input maps to 400.
func TestValidationErrors(t *testing.T) {
	srv := withPlan(t)
	tests := []struct {
		name, method, path, body string
	}{
		{"bad json", http.MethodPost, "/api/v1/plan", "{"},
		{"invalid profile", http.MethodPut, "/api/v1/profile", `{"targetDistance":"10k","goalTime":0,"durationWeeks":10,"difficultyFactor":1,"strengthFocus":"force"}`},
		{"bad week", http.MethodGet, "/api/v1/plan/weeks/abc", ""},
		{"day out of range", http.MethodPost, "/api/v1/plan/weeks/1/swap", `{"a":0,"b":9}`},
		{"unknown day", http.MethodPost, "/api/v1/plan/weeks/1/swap", `{"a":"Lundi","b":"Funday"}`},
		{"unknown action", http.MethodPost, "/api/v1/plan/weeks/1/feedback", `{"action":"sideways"}`},
		{"bad tab", http.MethodPut, "/api/v1/view", `{"activeTab":"home"}`},
		{"bad pace week", http.MethodGet, "/api/v1/paces?week=x", ""},
		{"bad hour", http.MethodGet, "/api/v1/export/plan.ics?hour=25", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := do(t, srv, tt.method, tt.path, tt.body)
			if rec.Code != http.StatusBadRequest {
				t.Errorf("status = %d, want 400 (body %s)", rec.Code, rec.Body)
			}
		})
	}
}

// TestNotFoundErrors verifies unknown weeks and ids map to 404.
func TestNotFoundErrors(t *testing.T) {
	srv := withPlan(t)
	tests := []struct {
		method, path, body string
	}{
		{http.MethodGet, "/api/v1/plan/weeks/11", ""},
		{http.MethodPost, "/api/v1/plan/weeks/0/schedule/reset", ""},
		{http.MethodPost, "/api/v1/sessions/w99-r1/toggle", ""},
		{http.MethodPost, "/api/v1/exercises/w1-r1-ex-99/toggle", ""},
		{http.MethodGet, "/api/v1/paces?week=11", ""},
		{http.MethodPut, "/api/v1/view", `{"activeTab":"plan","expandedWeek":42}`},
	}
	for _, tt := range tests {
		if rec := do(t, srv, tt.method, tt.path, tt.body); rec.Code != http.StatusNotFound {
			t.Errorf("%s %s = %d, want 404", tt.method, tt.path, rec.Code)
		}
	}
}

// TestSwapAndReset verifies a swap by name and index, then its reset.
func TestSwapAndReset(t *testing.T) {
	srv := withPlan(t)
	before := decode[models.WeekBlock](t, do(t, srv, http.MethodGet, "/api/v1/plan/weeks/2", ""))

	rec := do(t, srv, http.MethodPost, "/api/v1/plan/weeks/2/swap", `{"a":"Lundi","b":3}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("swap status = %d, body %s", rec.Code, rec.Body)
	}
	swapped := decode[models.WeekBlock](t, rec)
	if diff := cmp.Diff(before.Schedule[3].SessionIDs, swapped.Schedule[0].SessionIDs); diff != "" {
		t.Errorf("monday after swap (-want +got):\n%s", diff)
	}
	if swapped.Schedule[0].Day != "Lundi" {
		t.Errorf("day name moved: %q", swapped.Schedule[0].Day)
	}

	rec = do(t, srv, http.MethodPost, "/api/v1/plan/weeks/2/schedule/reset", "")
	reset := decode[models.WeekBlock](t, rec)
	if diff := cmp.Diff(before.Schedule, reset.Schedule); diff != "" {
		t.Errorf("schedule after reset (-want +got):\n%s", diff)
	}
}

// TestToggleAndStats verifies completion flows into the stats.
func TestToggleAndStats(t *testing.T) {
	srv := withPlan(t)

	rec := do(t, srv, http.MethodPost, "/api/v1/sessions/w1-r1/toggle", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("toggle status = %d", rec.Code)
	}
	if got := decode[map[string]any](t, rec); got["done"] != true {
		t.Errorf("toggle = %v", got)
	}

	sum := decode[progress.Summary](t, do(t, srv, http.MethodGet, "/api/v1/stats", ""))
	if sum.SessionsDone != 1 || sum.TotalSessions == 0 {
		t.Errorf("stats = %+v", sum)
	}

	if rec := do(t, srv, http.MethodPost, "/api/v1/exercises/w1-r1-ex-0/toggle", ""); rec.Code != http.StatusOK {
		t.Errorf("exercise toggle status = %d", rec.Code)
	}
	if rec := do(t, srv, http.MethodPost, "/api/v1/plan/weeks/1/progress/reset", ""); rec.Code != http.StatusNoContent {
		t.Errorf("progress reset status = %d", rec.Code)
	}
	sum = decode[progress.Summary](t, do(t, srv, http.MethodGet, "/api/v1/stats", ""))
	if sum.SessionsDone != 0 {
		t.Errorf("sessions done after reset = %d", sum.SessionsDone)
	}
}

// TestFeedback verifies a harder verdict moves the factor and opens the next week.
func TestFeedback(t *testing.T) {
	srv := withPlan(t)
	rec := do(t, srv, http.MethodPost, "/api/v1/plan/weeks/3/feedback", `{"action":"harder"}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body %s", rec.Code, rec.Body)
	}
	out := decode[progress.Outcome](t, rec)
	if out.Factor != 0.95 || out.NextWeek == nil || *out.NextWeek != 4 {
		t.Errorf("outcome = %+v", out)
	}
}

// TestPaces verifies the pace endpoint defaults to week 1.
func TestPaces(t *testing.T) {
	srv, _ := newTestServer(t, "")
	rec := do(t, srv, http.MethodGet, "/api/v1/paces", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	ps := decode[models.PaceSet](t, rec)
	if ps.Race == "" || ps.ValEasy <= ps.ValInterval {
		t.Errorf("paces = %+v", ps)
	}
}

// TestViewAndReset verifies view changes persist and DELETE restores defaults.
func TestViewAndReset(t *testing.T) {
	srv := withPlan(t)
	if rec := do(t, srv, http.MethodPut, "/api/v1/view", `{"activeTab":"stats","expandedWeek":null}`); rec.Code != http.StatusNoContent {
		t.Fatalf("view status = %d, body %s", rec.Code, rec.Body)
	}
	st := decode[models.AppState](t, do(t, srv, http.MethodGet, "/api/v1/state", ""))
	if st.ActiveTab != models.TabStats || st.ExpandedWeek != nil {
		t.Errorf("state tab=%q expanded=%v", st.ActiveTab, st.ExpandedWeek)
	}

	if rec := do(t, srv, http.MethodDelete, "/api/v1/state", ""); rec.Code != http.StatusNoContent {
		t.Fatalf("delete status = %d", rec.Code)
	}
	st = decode[models.AppState](t, do(t, srv, http.MethodGet, "/api/v1/state", ""))
	if st.Step != models.StepInput || len(st.Plan) != 0 {
		t.Errorf("state after reset = %+v", st)
	}
}

// TestMutationsRequireKey verifies the API key guards writes but not reads.
func TestMutationsRequireKey(t *testing.T) {
	srv, _ := newTestServer(t, "secret")

	if rec := do(t, srv, http.MethodPost, "/api/v1/plan", ""); rec.Code != http.StatusUnauthorized {
		t.Errorf("unauthenticated POST = %d, want 401", rec.Code)
	}
	if rec := do(t, srv, http.MethodGet, "/api/v1/state", ""); rec.Code != http.StatusOK {
		t.Errorf("GET state = %d, want 200", rec.Code)
	}

	req := httptest.NewRequest(http.MethodPost, "/api/v1/plan", nil)
	req.Header.Set("X-API-Key", "secret")
	rec := httptest.NewRecorder()
	srv.ServeHTTP(rec, req)
	if rec.Code != http.StatusCreated {
		t.Errorf("authenticated POST = %d, want 201", rec.Code)
	}
}

// TestExportICS verifies the calendar is anchored on the configured Monday.
func TestExportICS(t *testing.T) {
	srv := withPlan(t)
	rec := do(t, srv, http.MethodGet, "/api/v1/export/plan.ics", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	if ct := rec.Header().Get("Content-Type"); !strings.HasPrefix(ct, "text/calendar") {
		t.Errorf("content type = %q", ct)
	}
	body := rec.Body.String()
	if !strings.HasPrefix(body, "BEGIN:VCALENDAR") || !strings.Contains(body, "DTSTART:202610") {
		t.Errorf("unexpected calendar head %q", body[:min(len(body), 200)])
	}
}

// TestExportCSV verifies one row per session plus the header.
func TestExportCSV(t *testing.T) {
	srv := withPlan(t)
	weeks := decode[[]models.WeekBlock](t, do(t, srv, http.MethodGet, "/api/v1/plan", ""))
	total := 0
	for _, w := range weeks {
		total += len(w.Sessions)
	}

	rec := do(t, srv, http.MethodGet, "/api/v1/export/plan.csv", "")
	records, err := csv.NewReader(rec.Body).ReadAll()
	if err != nil {
		t.Fatalf("reading csv: %v", err)
	}
	if len(records) != total+1 {
		t.Errorf("got %d records, want %d", len(records), total+1)
	}
}

// TestExportXLSX verifies the workbook is served as a zip archive.
func TestExportXLSX(t *testing.T) {
	srv := withPlan(t)
	rec := do(t, srv, http.MethodGet, "/api/v1/export/plan.xlsx", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	if !strings.HasPrefix(rec.Body.String(), "PK") {
		t.Error("workbook is not a zip archive")
	}
}

// TestMCPMounted verifies the MCP handler is reachable at /mcp.
func TestMCPMounted(t *testing.T) {
	svc := service.New(context.Background(), storage.NewMemory(), discardLogger())
	var hit bool
	mcp := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hit = true
		w.WriteHeader(http.StatusAccepted)
	})
	srv := New(svc, Options{MCP: mcp}, discardLogger())

	rec := do(t, srv, http.MethodPost, "/mcp", `{}`)
	if !hit || rec.Code != http.StatusAccepted {
		t.Errorf("hit=%v status=%d", hit, rec.Code)
	}
}

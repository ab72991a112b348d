package server

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/claude/clab/internal/models"
	"github.com/claude/clab/internal/pace"
	"github.com/claude/clab/internal/progress"
	"github.com/claude/clab/internal/schedule"
	"github.com/claude/clab/internal/service"
)

func (s *Server) handleMe(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, userInfoFromContext(r))
}

func (s *Server) handleState(w http.ResponseWriter, r *http.Request) {
	st, err := s.svc.State(r.Context())
	if err != nil {
		s.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, st)
}

func (s *Server) handleUpdateProfile(w http.ResponseWriter, r *http.Request) {
	var cfg models.UserConfig
	if err := json.NewDecoder(r.Body).Decode(&cfg); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid JSON: " + err.Error()})
		return
	}
	saved, err := s.svc.UpdateProfile(r.Context(), cfg)
	if err != nil {
		s.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, saved)
}

// handleGeneratePlan builds a plan from the posted profile, or from the
// stored one when the body is empty.
func (s *Server) handleGeneratePlan(w http.ResponseWriter, r *http.Request) {
	cfg, err := s.svc.Profile(r.Context())
	if err != nil {
		s.writeError(w, err)
		return
	}
	if r.ContentLength != 0 {
		if err := json.NewDecoder(r.Body).Decode(&cfg); err != nil {
			writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid JSON: " + err.Error()})
			return
		}
	}
	weeks, err := s.svc.GeneratePlan(r.Context(), cfg)
	if err != nil {
		s.writeError(w, err)
		return
	}
	s.log.Info("plan requested", "user", userInfoFromContext(r).Login, "weeks", len(weeks))
	writeJSON(w, http.StatusCreated, weeks)
}

func (s *Server) handleGetPlan(w http.ResponseWriter, r *http.Request) {
	weeks, err := s.svc.Plan(r.Context())
	if err != nil {
		s.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, weeks)
}

func (s *Server) handleGetWeek(w http.ResponseWriter, r *http.Request) {
	n, ok := weekParam(w, r)
	if !ok {
		return
	}
	week, err := s.svc.Week(r.Context(), n)
	if err != nil {
		s.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, week)
}

type swapRequest struct {
	A any `json:"a"`
	B any `json:"b"`
}

func (s *Server) handleSwapDays(w http.ResponseWriter, r *http.Request) {
	n, ok := weekParam(w, r)
	if !ok {
		return
	}
	var req swapRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid JSON: " + err.Error()})
		return
	}
	a, err := dayArg(req.A)
	if err != nil {
		s.writeError(w, err)
		return
	}
	b, err := dayArg(req.B)
	if err != nil {
		s.writeError(w, err)
		return
	}
	week, err := s.svc.SwapDays(r.Context(), n, a, b)
	if err != nil {
		s.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, week)
}

// dayArg accepts a weekday index or name.
func dayArg(v any) (int, error) {
	switch d := v.(type) {
	case float64:
		return schedule.DayIndex(strconv.FormatFloat(d, 'f', -1, 64))
	case string:
		return schedule.DayIndex(d)
	default:
		return 0, fmt.Errorf("%w: %v", schedule.ErrUnknownDay, v)
	}
}

func (s *Server) handleResetSchedule(w http.ResponseWriter, r *http.Request) {
	n, ok := weekParam(w, r)
	if !ok {
		return
	}
	week, err := s.svc.ResetSchedule(r.Context(), n)
	if err != nil {
		s.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, week)
}

func (s *Server) handleResetProgress(w http.ResponseWriter, r *http.Request) {
	n, ok := weekParam(w, r)
	if !ok {
		return
	}
	if err := s.svc.ResetWeekProgress(r.Context(), n); err != nil {
		s.writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleFeedback(w http.ResponseWriter, r *http.Request) {
	n, ok := weekParam(w, r)
	if !ok {
		return
	}
	var req struct {
		Action string `json:"action"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid JSON: " + err.Error()})
		return
	}
	action, err := progress.ParseAction(req.Action)
	if err != nil {
		s.writeError(w, err)
		return
	}
	out, err := s.svc.Feedback(r.Context(), n, action)
	if err != nil {
		s.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, out)
}

func (s *Server) handleToggleSession(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	done, err := s.svc.ToggleSession(r.Context(), id)
	if err != nil {
		s.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"id": id, "done": done})
}

func (s *Server) handleToggleExercise(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	done, err := s.svc.ToggleExercise(r.Context(), id)
	if err != nil {
		s.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"id": id, "done": done})
}

func (s *Server) handleStats(w http.ResponseWriter, r *http.Request) {
	sum, err := s.svc.Stats(r.Context())
	if err != nil {
		s.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, sum)
}

func (s *Server) handlePaces(w http.ResponseWriter, r *http.Request) {
	week := 1
	if v := r.URL.Query().Get("week"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			writeJSON(w, http.StatusBadRequest, map[string]string{"error": "week must be an integer"})
			return
		}
		week = n
	}
	ps, err := s.svc.Paces(r.Context(), week)
	if err != nil {
		s.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, ps)
}

type viewRequest struct {
	ActiveTab    models.Tab `json:"activeTab"`
	ExpandedWeek *int       `json:"expandedWeek"`
}

func (s *Server) handleSetView(w http.ResponseWriter, r *http.Request) {
	var req viewRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid JSON: " + err.Error()})
		return
	}
	if err := s.svc.SetView(r.Context(), req.ActiveTab, req.ExpandedWeek); err != nil {
		s.writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleResetState(w http.ResponseWriter, r *http.Request) {
	if err := s.svc.Reset(r.Context()); err != nil {
		s.writeError(w, err)
		return
	}
	s.log.Info("state cleared", "user", userInfoFromContext(r).Login)
	w.WriteHeader(http.StatusNoContent)
}

func weekParam(w http.ResponseWriter, r *http.Request) (int, bool) {
	n, err := strconv.Atoi(chi.URLParam(r, "week"))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid week number"})
		return 0, false
	}
	return n, true
}

// statusFor maps domain errors to HTTP status codes.
func statusFor(err error) int {
	switch {
	case errors.Is(err, models.ErrInvalidConfig),
		errors.Is(err, schedule.ErrDayOutOfRange),
		errors.Is(err, schedule.ErrUnknownDay),
		errors.Is(err, progress.ErrUnknownAction),
		errors.Is(err, pace.ErrInvalidDistance):
		return http.StatusBadRequest
	case errors.Is(err, service.ErrNoPlan),
		errors.Is(err, service.ErrWeekNotFound),
		errors.Is(err, service.ErrUnknownSession),
		errors.Is(err, service.ErrUnknownExercise):
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}

func (s *Server) writeError(w http.ResponseWriter, err error) {
	status := statusFor(err)
	if status == http.StatusInternalServerError {
		s.log.Error("request failed", "error", err)
	}
	writeJSON(w, status, map[string]string{"error": err.Error()})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

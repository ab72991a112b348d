package server

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/claude/clab/internal/config"
	"github.com/claude/clab/internal/export"
)

// calendarStart picks the Monday of week 1: the ?start query, then the
// configured date, then the coming Monday.
func (s *Server) calendarStart(r *http.Request) (time.Time, int, error) {
	hour := s.calendar.Hour
	if v := r.URL.Query().Get("hour"); v != "" {
		h, err := strconv.Atoi(v)
		if err != nil || h < 0 || h > 23 {
			return time.Time{}, 0, errBadHour
		}
		hour = h
	}
	if v := r.URL.Query().Get("start"); v != "" {
		start, err := time.ParseInLocation(config.DateLayout, v, time.Local)
		return start, hour, err
	}
	start, err := s.calendar.StartDate()
	if err != nil {
		return time.Time{}, 0, err
	}
	if start.IsZero() {
		start = export.NextMonday(time.Now())
	}
	return start, hour, nil
}

var errBadHour = errors.New("hour must be between 0 and 23")

func (s *Server) handleExportICS(w http.ResponseWriter, r *http.Request) {
	weeks, err := s.svc.Plan(r.Context())
	if err != nil {
		s.writeError(w, err)
		return
	}
	start, hour, err := s.calendarStart(r)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		return
	}
	w.Header().Set("Content-Type", "text/calendar; charset=utf-8")
	w.Header().Set("Content-Disposition", `attachment; filename="plan.ics"`)
	w.Write([]byte(export.ICS(weeks, start, hour)))
}

func (s *Server) handleExportXLSX(w http.ResponseWriter, r *http.Request) {
	weeks, err := s.svc.Plan(r.Context())
	if err != nil {
		s.writeError(w, err)
		return
	}
	f, err := export.XLSX(weeks)
	if err != nil {
		s.writeError(w, err)
		return
	}
	defer f.Close()
	w.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	w.Header().Set("Content-Disposition", `attachment; filename="plan.xlsx"`)
	if err := f.Write(w); err != nil {
		s.log.Error("writing workbook", "error", err)
	}
}

func (s *Server) handleExportCSV(w http.ResponseWriter, r *http.Request) {
	weeks, err := s.svc.Plan(r.Context())
	if err != nil {
		s.writeError(w, err)
		return
	}
	w.Header().Set("Content-Type", "text/csv; charset=utf-8")
	w.Header().Set("Content-Disposition", `attachment; filename="plan.csv"`)
	if err := export.CSV(w, weeks); err != nil {
		s.log.Error("writing csv", "error", err)
	}
}

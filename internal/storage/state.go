package storage

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/claude/clab/internal/models"
)

// rawState defers decoding so that one bad field does not discard the rest.
type rawState struct {
	Step               json.RawMessage `json:"step"`
	ActiveTab          json.RawMessage `json:"activeTab"`
	UserData           json.RawMessage `json:"userData"`
	Plan               json.RawMessage `json:"plan"`
	ExpandedWeek       json.RawMessage `json:"expandedWeek"`
	CompletedSessions  json.RawMessage `json:"completedSessions"`
	CompletedExercises json.RawMessage `json:"completedExercises"`
}

// LoadState reads the persisted state. A missing blob yields the defaults.
// Unreadable or invalid fields fall back to their default individually and
// are logged; LoadState never fails.
func LoadState(ctx context.Context, s Store, log *slog.Logger) models.AppState {
	state := models.DefaultAppState()

	data, err := s.Load(ctx)
	if err != nil {
		log.Warn("state unreadable, using defaults", "error", err)
		return state
	}
	if len(data) == 0 {
		return state
	}

	var raw rawState
	if err := json.Unmarshal(data, &raw); err != nil {
		log.Warn("state corrupt, using defaults", "error", err)
		return state
	}

	decodeField(log, "step", raw.Step, &state.Step)
	if state.Step != models.StepInput && state.Step != models.StepResult {
		log.Warn("invalid step in state", "step", state.Step)
		state.Step = models.StepInput
	}

	decodeField(log, "activeTab", raw.ActiveTab, &state.ActiveTab)
	if !state.ActiveTab.Valid() {
		log.Warn("invalid tab in state", "tab", state.ActiveTab)
		state.ActiveTab = models.TabPlan
	}

	var user models.UserConfig
	if decodeField(log, "userData", raw.UserData, &user) {
		if err := user.Validate(); err != nil {
			log.Warn("stored profile invalid, using defaults", "error", err)
		} else {
			state.UserData = user
		}
	}

	var plan []models.WeekBlock
	if decodeField(log, "plan", raw.Plan, &plan) && plan != nil {
		state.Plan = plan
	}

	if string(raw.ExpandedWeek) == "null" {
		state.ExpandedWeek = nil
	} else {
		var week int
		if decodeField(log, "expandedWeek", raw.ExpandedWeek, &week) {
			state.ExpandedWeek = &week
		}
	}

	var ids []string
	if decodeField(log, "completedSessions", raw.CompletedSessions, &ids) && ids != nil {
		state.CompletedSessions = ids
	}
	ids = nil
	if decodeField(log, "completedExercises", raw.CompletedExercises, &ids) && ids != nil {
		state.CompletedExercises = ids
	}

	if state.Step == models.StepResult && len(state.Plan) == 0 {
		state.Step = models.StepInput
	}
	return state
}

// decodeField unmarshals one field into dst and reports whether it did.
func decodeField(log *slog.Logger, name string, raw json.RawMessage, dst any) bool {
	if len(raw) == 0 || string(raw) == "null" {
		return false
	}
	if err := json.Unmarshal(raw, dst); err != nil {
		log.Warn("state field corrupt, using default", "field", name, "error", err)
		return false
	}
	return true
}

// SaveState writes the whole state.
func SaveState(ctx context.Context, s Store, state models.AppState) error {
	data, err := json.Marshal(state)
	if err != nil {
		return fmt.Errorf("encoding state: %w", err)
	}
	return s.Save(ctx, data)
}

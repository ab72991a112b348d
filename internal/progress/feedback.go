package progress

import (
	"errors"
	"fmt"
	"math"

	"github.com/claude/clab/internal/models"
)

// Action is the athlete's verdict on a finished week.
type Action string

const (
	ActionEasier Action = "easier"
	ActionKeep   Action = "keep"
	ActionHarder Action = "harder"
)

// FactorStep is how much one feedback moves the difficulty factor.
const FactorStep = 0.05

var ErrUnknownAction = errors.New("unknown feedback action")

// Message levels.
const (
	LevelWarning = "warning"
	LevelSuccess = "success"
)

// Outcome is the result of applying feedback to a week.
type Outcome struct {
	Factor   float64 `json:"difficultyFactor"`
	Message  string  `json:"message"`
	Level    string  `json:"level"`
	NextWeek *int    `json:"nextWeek"`
	Changed  bool    `json:"changed"`
}

// ParseAction validates a raw action string.
func ParseAction(s string) (Action, error) {
	switch a := Action(s); a {
	case ActionEasier, ActionKeep, ActionHarder:
		return a, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownAction, s)
}

// Feedback applies action on week of a plan of total weeks. Easier slows the
// remaining plan by FactorStep, harder speeds it up but never below
// models.MinDifficultyFactor.
func Feedback(factor float64, action Action, week, total int) (Outcome, error) {
	out := Outcome{Factor: factor, Level: LevelSuccess}
	switch action {
	case ActionEasier:
		out.Factor = round2(factor + FactorStep)
		out.Message = "Plan adapté : Allures ralenties de 5% pour la suite (récupération)."
		out.Level = LevelWarning
	case ActionHarder:
		out.Factor = math.Max(models.MinDifficultyFactor, round2(factor-FactorStep))
		out.Message = "Plan adapté : Allures accélérées de 5% pour la suite (performance) !"
	case ActionKeep:
		out.Message = "Semaine validée ! Maintien de la progression prévue."
	default:
		return Outcome{}, fmt.Errorf("%w: %q", ErrUnknownAction, action)
	}
	out.Changed = out.Factor != factor
	if week < total {
		next := week + 1
		out.NextWeek = &next
	}
	return out, nil
}

func round2(f float64) float64 {
	return math.Round(f*100) / 100
}

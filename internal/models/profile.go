package models

import (
	"errors"
	"fmt"
)

// ErrInvalidConfig is wrapped by every UserConfig validation error.
var ErrInvalidConfig = errors.New("invalid user config")

// Bounds accepted by UserConfig.Validate.
const (
	MinWeeks             = 4
	MaxWeeks             = 52
	MaxProgressionStart  = 30
	MinDifficultyFactor  = 0.8
	MaxSessionsPerWeek   = 7
	DefaultDifficulty    = 1.0
	DefaultProgression   = 15
	DefaultDurationWeeks = 10
)

// A hyrox week keeps Sunday for the engine run. WODs and gym sessions each
// need one of the other six days, and the bonus runs that do not find an
// empty day may double up only once when every gym session loads the legs.
const (
	HyroxTrainingDays    = 6
	MaxHyroxWeekSessions = HyroxTrainingDays + 1
)

// UserConfig is everything the athlete enters before a plan is generated.
type UserConfig struct {
	Name                  string        `json:"name"`
	Weight                float64       `json:"weight"`
	TargetDistance        Distance      `json:"targetDistance"`
	GoalTime              float64       `json:"goalTime"`
	DurationWeeks         int           `json:"durationWeeks"`
	ProgressionStart      float64       `json:"progressionStart"`
	DifficultyFactor      float64       `json:"difficultyFactor"`
	RunDaysPerWeek        int           `json:"runDaysPerWeek"`
	StrengthDaysPerWeek   int           `json:"strengthDaysPerWeek"`
	HyroxSessionsPerWeek  int           `json:"hyroxSessionsPerWeek"`
	ExtraRunSessions      int           `json:"extraRunSessions"`
	ExtraStrengthSessions int           `json:"extraStrengthSessions"`
	StrengthFocus         StrengthFocus `json:"strengthFocus"`
}

// DefaultUserConfig returns the profile shown on first launch.
func DefaultUserConfig() UserConfig {
	return UserConfig{
		Name:                  "Charles",
		Weight:                75,
		TargetDistance:        Distance10K,
		GoalTime:              50,
		DurationWeeks:         DefaultDurationWeeks,
		ProgressionStart:      DefaultProgression,
		DifficultyFactor:      DefaultDifficulty,
		RunDaysPerWeek:        3,
		StrengthDaysPerWeek:   3,
		HyroxSessionsPerWeek:  3,
		ExtraRunSessions:      0,
		ExtraStrengthSessions: 1,
		StrengthFocus:         FocusHypertrophy,
	}
}

// IsHyrox reports whether the plan targets a hyrox race.
func (c UserConfig) IsHyrox() bool {
	return c.TargetDistance == DistanceHyrox
}

// Validate rejects out-of-range input rather than clamping it.
func (c UserConfig) Validate() error {
	if !c.TargetDistance.Valid() {
		return fmt.Errorf("%w: unknown target distance %q", ErrInvalidConfig, c.TargetDistance)
	}
	if !c.StrengthFocus.Valid() {
		return fmt.Errorf("%w: unknown strength focus %q", ErrInvalidConfig, c.StrengthFocus)
	}
	if c.GoalTime <= 0 {
		return fmt.Errorf("%w: goal time must be positive", ErrInvalidConfig)
	}
	if c.DurationWeeks < MinWeeks || c.DurationWeeks > MaxWeeks {
		return fmt.Errorf("%w: duration must be between %d and %d weeks", ErrInvalidConfig, MinWeeks, MaxWeeks)
	}
	if c.ProgressionStart < 0 || c.ProgressionStart > MaxProgressionStart {
		return fmt.Errorf("%w: progression start must be between 0 and %d", ErrInvalidConfig, MaxProgressionStart)
	}
	if c.DifficultyFactor < MinDifficultyFactor {
		return fmt.Errorf("%w: difficulty factor must be at least %.1f", ErrInvalidConfig, MinDifficultyFactor)
	}
	if c.Weight < 0 {
		return fmt.Errorf("%w: weight must not be negative", ErrInvalidConfig)
	}
	counts := []struct {
		name string
		v    int
	}{
		{"runDaysPerWeek", c.RunDaysPerWeek},
		{"strengthDaysPerWeek", c.StrengthDaysPerWeek},
		{"hyroxSessionsPerWeek", c.HyroxSessionsPerWeek},
		{"extraRunSessions", c.ExtraRunSessions},
		{"extraStrengthSessions", c.ExtraStrengthSessions},
	}
	for _, n := range counts {
		if n.v < 0 || n.v > MaxSessionsPerWeek {
			return fmt.Errorf("%w: %s must be between 0 and %d", ErrInvalidConfig, n.name, MaxSessionsPerWeek)
		}
	}
	if c.IsHyrox() {
		days := c.HyroxSessionsPerWeek + c.ExtraStrengthSessions
		if days > HyroxTrainingDays {
			return fmt.Errorf("%w: hyroxSessionsPerWeek plus extraStrengthSessions must not exceed %d",
				ErrInvalidConfig, HyroxTrainingDays)
		}
		if days+c.ExtraRunSessions > MaxHyroxWeekSessions {
			return fmt.Errorf("%w: a hyrox week holds at most %d sessions besides the engine run",
				ErrInvalidConfig, MaxHyroxWeekSessions)
		}
	}
	return nil
}

// Package pace derives weekly training paces from a race goal.
//
// Paces start slower than goal pace by progressionStart percent and converge
// linearly to the goal on the final week. All values are minutes per km.
package pace

import (
	"errors"
	"fmt"
	"math"

	"github.com/claude/clab/internal/models"
)

// ErrInvalidDistance is returned for a non-positive race distance.
var ErrInvalidDistance = errors.New("distance must be positive")

// easySpread is the width of the easy-pace band in min/km.
const easySpread = 0.5

// Ratios scales race pace into the three training zones.
type Ratios struct {
	Easy      float64
	Threshold float64
	Interval  float64
}

// RatiosFor returns the zone ratios of the distance bucket containing km.
func RatiosFor(km float64) Ratios {
	switch {
	case km <= 7.5:
		return Ratios{Easy: 1.45, Threshold: 1.15, Interval: 0.95}
	case km <= 15:
		return Ratios{Easy: 1.30, Threshold: 1.05, Interval: 0.92}
	case km <= 30:
		return Ratios{Easy: 1.25, Threshold: 1.02, Interval: 0.90}
	default:
		return Ratios{Easy: 1.20, Threshold: 0.96, Interval: 0.88}
	}
}

// RatiosForDistance is RatiosFor keyed by race. Hyrox runs use the
// marathon ratios.
func RatiosForDistance(d models.Distance) Ratios {
	if d == models.DistanceHyrox {
		return RatiosFor(models.DistanceMarathon.Km())
	}
	return RatiosFor(d.Km())
}

// ProgressRatio is 0 on week 1 and 1 on the final week.
func ProgressRatio(week, totalWeeks int) float64 {
	return float64(week-1) / float64(max(1, totalWeeks-1))
}

// Factor returns the slowdown multiplier applied to race pace on a week.
func Factor(week, totalWeeks int, progressionStart float64) float64 {
	start := 1 + progressionStart/100
	return start - ProgressRatio(week, totalWeeks)*(start-1)
}

// Compute returns the paces of one week.
func Compute(week, totalWeeks int, goalTime, progressionStart, difficultyFactor, distanceKm float64) (models.PaceSet, error) {
	return compute(week, totalWeeks, goalTime, progressionStart, difficultyFactor, distanceKm, RatiosFor(distanceKm))
}

// ForConfig computes the paces of week for a user profile.
func ForConfig(cfg models.UserConfig, week int) (models.PaceSet, error) {
	d := cfg.TargetDistance
	return compute(week, cfg.DurationWeeks, cfg.GoalTime, cfg.ProgressionStart, cfg.DifficultyFactor, d.Km(), RatiosForDistance(d))
}

func compute(week, totalWeeks int, goalTime, progressionStart, difficultyFactor, distanceKm float64, r Ratios) (models.PaceSet, error) {
	if distanceKm <= 0 {
		return models.PaceSet{}, ErrInvalidDistance
	}

	race := goalTime * difficultyFactor / distanceKm
	factor := Factor(week, totalWeeks, progressionStart)
	current := race * factor

	easy := current * r.Easy
	threshold := current * r.Threshold
	interval := current * r.Interval

	return models.PaceSet{
		Race:         Format(current),
		Threshold:    Format(threshold),
		Interval:     Format(interval),
		Easy:         Format(easy),
		EasyRange:    Format(easy) + " - " + Format(easy+easySpread),
		Gap:          int(math.Round((factor - 1) * 100)),
		ValRace:      current,
		ValThreshold: threshold,
		ValInterval:  interval,
		ValEasy:      easy,
	}, nil
}

// Format renders a pace as m:ss.
func Format(minPerKm float64) string {
	whole := math.Floor(minPerKm)
	sec := int(math.Round((minPerKm - whole) * 60))
	m := int(whole)
	if sec == 60 {
		m++
		sec = 0
	}
	return fmt.Sprintf("%d:%02d", m, sec)
}

// Distance returns how far minutes at pace covers, in km.
func Distance(minutes, minPerKm float64) float64 {
	if minPerKm <= 0 {
		return 0
	}
	return minutes / minPerKm
}

// FormatDistance renders km with one decimal.
func FormatDistance(km float64) string {
	return fmt.Sprintf("%.1f km", km)
}

package progress

import (
	"math"

	"github.com/claude/clab/internal/models"
)

// Summary aggregates completed work over a plan.
type Summary struct {
	Progress      int       `json:"progress"`
	SessionsDone  int       `json:"sessionsDone"`
	TotalSessions int       `json:"totalSessions"`
	TotalKm       float64   `json:"totalKm"`
	Intensity     Buckets   `json:"intensityBuckets"`
	WeeklyVolume  []int     `json:"weeklyVolume"`
	WeeklyLoad    []int     `json:"weeklyLoad"`
	WeeklyDone    []bool    `json:"weeklyDone"`
	PlannedVolume []int     `json:"plannedVolume"`
	Zones         ZoneShare `json:"zones"`
}

// Buckets splits completed minutes into easy and hard work.
type Buckets struct {
	Low  int `json:"low"`
	High int `json:"high"`
}

// ZoneShare is the low/high split of completed minutes in percent.
type ZoneShare struct {
	LowPercent  int `json:"lowPercent"`
	HighPercent int `json:"highPercent"`
}

// loadFactor weights weekly minutes into a training load by position in a
// four-week block.
func loadFactor(weekIndex int) float64 {
	switch weekIndex % 4 {
	case 0:
		return 0.7
	case 1:
		return 0.9
	default:
		return 0.8
	}
}

// Stats computes the summary of plan given the completion state.
func Stats(plan []models.WeekBlock, t *Tracker) Summary {
	sum := Summary{
		WeeklyVolume:  make([]int, len(plan)),
		WeeklyLoad:    make([]int, len(plan)),
		WeeklyDone:    make([]bool, len(plan)),
		PlannedVolume: make([]int, len(plan)),
	}
	km := 0.0
	for i, w := range plan {
		sum.PlannedVolume[i] = w.TotalMinutes()
		sum.WeeklyDone[i] = t.WeekComplete(w)
		for _, s := range w.Sessions {
			sum.TotalSessions++
			if !t.Done(s) {
				continue
			}
			sum.SessionsDone++
			sum.WeeklyVolume[i] += s.DurationMin
			if s.Intensity == models.IntensityLow {
				sum.Intensity.Low += s.DurationMin
			} else {
				sum.Intensity.High += s.DurationMin
			}
			if s.Category == models.CategoryRun {
				km += s.DistanceKm
			}
		}
		sum.WeeklyLoad[i] = int(math.Round(float64(sum.WeeklyVolume[i]) * loadFactor(i)))
	}
	if sum.TotalSessions > 0 {
		sum.Progress = int(math.Round(float64(sum.SessionsDone) * 100 / float64(sum.TotalSessions)))
	}
	sum.TotalKm = math.Round(km*10) / 10
	if total := sum.Intensity.Low + sum.Intensity.High; total > 0 {
		sum.Zones.LowPercent = int(math.Round(float64(sum.Intensity.Low) * 100 / float64(total)))
		sum.Zones.HighPercent = 100 - sum.Zones.LowPercent
	}
	return sum
}

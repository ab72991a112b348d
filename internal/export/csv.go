package export

import (
	"cmp"
	"encoding/csv"
	"fmt"
	"io"
	"slices"
	"strings"

	"github.com/claude/clab/internal/models"
	"github.com/claude/clab/internal/schedule"
)

// Row is one session flattened for tabular output.
type Row struct {
	ID         string
	Week       int
	Day        string
	Category   models.Category
	Type       string
	Minutes    int
	Distance   string
	PaceTarget string
	RPE        int
	Intensity  models.Intensity
	Exercises  string
}

func (r Row) values() []any {
	return []any{r.ID, r.Week, r.Day, string(r.Category), r.Type, r.Minutes,
		r.Distance, r.PaceTarget, r.RPE, string(r.Intensity), r.Exercises}
}

func (r Row) record() []string {
	return []string{r.ID, fmt.Sprint(r.Week), r.Day, string(r.Category), r.Type, fmt.Sprint(r.Minutes),
		r.Distance, r.PaceTarget, fmt.Sprint(r.RPE), string(r.Intensity), r.Exercises}
}

// Rows flattens the plan in week then calendar order. Sessions missing from
// the calendar keep their nominal day label.
func Rows(plan []models.WeekBlock) []Row {
	var out []Row
	for _, w := range plan {
		days := dayIndex(w)
		ordered := append([]models.Session(nil), w.Sessions...)
		pos := func(s models.Session) int {
			if d, ok := days[s.ID]; ok {
				return d
			}
			return len(schedule.Days)
		}
		slices.SortStableFunc(ordered, func(a, b models.Session) int {
			return cmp.Compare(pos(a), pos(b))
		})
		for _, s := range ordered {
			day := s.Day
			if d, ok := days[s.ID]; ok {
				day = schedule.Days[d]
			}
			names := make([]string, len(s.Exercises))
			for i, e := range s.Exercises {
				names[i] = e.Name
			}
			out = append(out, Row{
				ID:         s.ID,
				Week:       w.WeekNumber,
				Day:        day,
				Category:   s.Category,
				Type:       s.Type,
				Minutes:    s.DurationMin,
				Distance:   s.Distance,
				PaceTarget: s.PaceTarget,
				RPE:        s.RPE,
				Intensity:  s.Intensity,
				Exercises:  strings.Join(names, " | "),
			})
		}
	}
	return out
}

// CSV writes one line per session with a header.
func CSV(w io.Writer, plan []models.WeekBlock) error {
	writer := csv.NewWriter(w)

	if err := writer.Write(sessionHeaders); err != nil {
		return fmt.Errorf("failed to write header: %w", err)
	}
	for _, r := range Rows(plan) {
		if err := writer.Write(r.record()); err != nil {
			return fmt.Errorf("failed to write row: %w", err)
		}
	}
	writer.Flush()
	return writer.Error()
}

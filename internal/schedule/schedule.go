// Package schedule lays a week's sessions out on the seven weekdays.
//
// Placement is deterministic: the long run anchors Sunday, the quality run
// Tuesday, easy runs Thursday and Saturday, and gym work fills what is left
// without ever stacking strength on a leg day.
package schedule

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/claude/clab/internal/models"
)

// Weekday indexes into Days.
const (
	Monday = iota
	Tuesday
	Wednesday
	Thursday
	Friday
	Saturday
	Sunday
)

// Days are the weekday names in calendar order.
var Days = [7]string{"Lundi", "Mardi", "Mercredi", "Jeudi", "Vendredi", "Samedi", "Dimanche"}

var englishDays = [7]string{"monday", "tuesday", "wednesday", "thursday", "friday", "saturday", "sunday"}

var (
	ErrDayOutOfRange = errors.New("day index out of range")
	ErrUnknownDay    = errors.New("unknown day")
)

// Day focus labels.
const (
	FocusAerobic    = "Volume Aérobie"
	FocusKey        = "Intensité Clé"
	FocusAssimilate = "Assimilation"
	FocusActive     = "Récup Active"
	FocusStrength   = "Force"
	FocusHypertro   = "Hypertrophie"
	FocusStreet     = "Street Workout"
	FocusRace       = "Compétition"
	FocusEngine     = "Moteur Aérobie"
	FocusHyrox      = "Spécifique Hyrox"
	FocusBonus      = "Volume Bonus"
	FocusActivation = "Activation"
	FocusDefault    = "Entraînement"
	FocusRest       = "Récupération"
	RestActivity    = "Repos"
)

var (
	otherGymOrder   = []int{Monday, Wednesday, Friday, Saturday, Thursday}
	doubleOrder     = []int{Thursday, Saturday, Wednesday}
	fallbackOrder   = []int{Wednesday, Monday, Friday, Saturday, Thursday, Tuesday, Sunday}
	wodOrder        = []int{Tuesday, Thursday, Saturday, Wednesday, Monday, Friday}
	hyroxGymOrder   = []int{Monday, Friday, Wednesday, Thursday, Saturday, Tuesday}
	hyroxRunOrder   = []int{Wednesday, Monday, Friday, Thursday, Saturday, Tuesday}
	hyroxRunDoubles = []int{Monday, Friday, Wednesday, Thursday, Saturday, Tuesday}
)

type slot struct {
	ids      []string
	types    []string
	focus    string
	legs     bool
	wods     int
	runs     int
	strength int
}

type board struct {
	days   [7]slot
	placed map[string]bool
}

func newBoard() *board {
	return &board{placed: make(map[string]bool)}
}

func (b *board) put(day int, s models.Session, focus string) {
	sl := &b.days[day]
	sl.ids = append(sl.ids, s.ID)
	sl.types = append(sl.types, s.Type)
	if sl.focus == "" {
		sl.focus = focus
	}
	if s.HasTag(models.TagLegs) {
		sl.legs = true
	}
	switch s.Category {
	case models.CategoryRun:
		sl.runs++
	case models.CategoryHyrox:
		sl.wods++
	default:
		sl.strength++
	}
	b.placed[s.ID] = true
}

func (b *board) empty(day int) bool {
	return len(b.days[day].ids) == 0
}

// firstEmpty returns the first empty day of order, or -1.
func (b *board) firstEmpty(order []int) int {
	for _, d := range order {
		if b.empty(d) {
			return d
		}
	}
	return -1
}

func (b *board) result() []models.ScheduleDay {
	out := make([]models.ScheduleDay, len(Days))
	for i, name := range Days {
		sl := b.days[i]
		day := models.ScheduleDay{
			Day:        name,
			Activity:   RestActivity,
			Focus:      FocusRest,
			SessionIDs: []string{},
		}
		if len(sl.ids) > 0 {
			day.Activity = strings.Join(sl.types, " + ")
			day.Focus = sl.focus
			if day.Focus == "" {
				day.Focus = FocusDefault
			}
			day.SessionIDs = append(day.SessionIDs, sl.ids...)
		}
		out[i] = day
	}
	return out
}

// fallback places a leftover session on the least-loaded day, ties broken
// by fallbackOrder. Days holding leg or hyrox work are avoided, and gym work
// prefers days without other gym work.
func (b *board) fallback(s models.Session, focus string) {
	gymWork := s.Category != models.CategoryRun
	filters := []func(slot) bool{
		func(sl slot) bool { return !sl.legs && sl.wods == 0 && (!gymWork || sl.strength == 0) },
		func(sl slot) bool { return !sl.legs && sl.wods == 0 },
		func(slot) bool { return true },
	}
	for _, ok := range filters {
		best := -1
		for _, d := range fallbackOrder {
			if !ok(b.days[d]) {
				continue
			}
			if best == -1 || len(b.days[d].ids) < len(b.days[best].ids) {
				best = d
			}
		}
		if best >= 0 {
			b.put(best, s, focus)
			return
		}
	}
}

// Build returns the seven-day calendar of a week. Every session id appears
// on exactly one day.
func Build(sessions []models.Session, hyrox bool) []models.ScheduleDay {
	b := newBoard()
	if hyrox {
		buildHyrox(b, sessions)
	} else {
		buildRunning(b, sessions)
	}
	for _, s := range sessions {
		if !b.placed[s.ID] {
			b.fallback(s, focusFor(s))
		}
	}
	return b.result()
}

func buildRunning(b *board, sessions []models.Session) {
	var runs, gyms []models.Session
	for _, s := range sessions {
		if s.Category == models.CategoryRun {
			runs = append(runs, s)
		} else {
			gyms = append(gyms, s)
		}
	}

	if anchor, ok := findAnchor(runs, models.TagLong); ok {
		b.put(Sunday, anchor, anchorFocus(anchor))
	}

	for _, s := range runs {
		if b.placed[s.ID] {
			continue
		}
		if s.Intensity == models.IntensityMedium || s.Intensity == models.IntensityHigh {
			b.put(Tuesday, s, FocusKey)
			break
		}
	}

	easyDays := []struct {
		day   int
		focus string
	}{{Thursday, FocusAssimilate}, {Saturday, FocusActive}}
	next := 0
	for _, s := range runs {
		if b.placed[s.ID] || next == len(easyDays) {
			continue
		}
		focus := easyDays[next].focus
		if s.HasTag(models.TagActivation) {
			focus = FocusActivation
		}
		b.put(easyDays[next].day, s, focus)
		next++
	}

	for _, s := range gyms {
		if !s.HasTag(models.TagLegs) {
			continue
		}
		switch {
		case b.empty(Friday):
			b.put(Friday, s, FocusStrength)
		case b.days[Thursday].runs > 0 && !b.days[Thursday].legs:
			b.put(Thursday, s, FocusStrength)
		case b.empty(Monday):
			b.put(Monday, s, FocusStrength)
		}
		break
	}

	for _, s := range gyms {
		if b.placed[s.ID] {
			continue
		}
		if d := b.firstEmpty(otherGymOrder); d >= 0 {
			b.put(d, s, focusFor(s))
		}
	}

	for _, s := range gyms {
		if b.placed[s.ID] {
			continue
		}
		for _, d := range doubleOrder {
			sl := b.days[d]
			if len(sl.ids) == 1 && sl.runs == 1 && !sl.legs {
				b.put(d, s, focusFor(s))
				break
			}
		}
	}
}

func buildHyrox(b *board, sessions []models.Session) {
	if anchor, ok := findAnchor(sessions, models.TagEngine); ok {
		b.put(Sunday, anchor, anchorFocus(anchor))
	}

	for _, s := range sessions {
		if !b.placed[s.ID] && s.HasTag(models.TagActivation) && b.empty(Thursday) {
			b.put(Thursday, s, FocusActivation)
		}
	}

	for _, s := range sessions {
		if b.placed[s.ID] || s.Category != models.CategoryHyrox {
			continue
		}
		if d := b.firstEmpty(wodOrder); d >= 0 {
			b.put(d, s, FocusHyrox)
		}
	}

	for _, s := range sessions {
		if b.placed[s.ID] || s.Category != models.CategoryStrength {
			continue
		}
		if d := b.firstEmpty(hyroxGymOrder); d >= 0 {
			b.put(d, s, focusFor(s))
		}
	}

	for _, s := range sessions {
		if b.placed[s.ID] || s.Category != models.CategoryRun {
			continue
		}
		if d := b.firstEmpty(hyroxRunOrder); d >= 0 {
			b.put(d, s, FocusBonus)
			continue
		}
		for _, d := range hyroxRunDoubles {
			sl := b.days[d]
			if len(sl.ids) == 1 && sl.strength == 1 && !sl.legs {
				b.put(d, s, FocusBonus)
				break
			}
		}
	}
}

// findAnchor returns the race session if there is one, else the first
// session tagged tag.
func findAnchor(sessions []models.Session, tag string) (models.Session, bool) {
	for _, s := range sessions {
		if s.HasTag(models.TagRace) {
			return s, true
		}
	}
	for _, s := range sessions {
		if s.HasTag(tag) {
			return s, true
		}
	}
	return models.Session{}, false
}

func anchorFocus(s models.Session) string {
	switch {
	case s.HasTag(models.TagRace):
		return FocusRace
	case s.HasTag(models.TagEngine):
		return FocusEngine
	default:
		return FocusAerobic
	}
}

func focusFor(s models.Session) string {
	switch s.Category {
	case models.CategoryHyrox:
		return FocusHyrox
	case models.CategoryRun:
		if s.HasTag(models.TagBonus) {
			return FocusBonus
		}
		return FocusDefault
	}
	switch {
	case s.HasTag(string(models.FocusForce)):
		return FocusStrength
	case s.HasTag(string(models.FocusStreetWorkout)):
		return FocusStreet
	default:
		return FocusHypertro
	}
}

// IsHyrox reports whether a week was generated in hyrox mode.
func IsHyrox(sessions []models.Session) bool {
	for _, s := range sessions {
		if s.Category == models.CategoryHyrox || s.HasTag(models.TagEngine) {
			return true
		}
	}
	return false
}

// Reset rebuilds the week's calendar from its sessions, discarding swaps.
func Reset(week *models.WeekBlock) {
	week.Schedule = Build(week.Sessions, IsHyrox(week.Sessions))
}

// Swap exchanges the contents of two days. Day names stay in place.
func Swap(days []models.ScheduleDay, a, b int) error {
	if a < 0 || a >= len(days) || b < 0 || b >= len(days) {
		return fmt.Errorf("%w: %d, %d", ErrDayOutOfRange, a, b)
	}
	days[a].Activity, days[b].Activity = days[b].Activity, days[a].Activity
	days[a].Focus, days[b].Focus = days[b].Focus, days[a].Focus
	days[a].SessionIDs, days[b].SessionIDs = days[b].SessionIDs, days[a].SessionIDs
	return nil
}

// DayIndex resolves "3", "Jeudi" or "thursday" to a weekday index.
func DayIndex(s string) (int, error) {
	s = strings.TrimSpace(s)
	if n, err := strconv.Atoi(s); err == nil {
		if n < 0 || n >= len(Days) {
			return 0, fmt.Errorf("%w: %d", ErrDayOutOfRange, n)
		}
		return n, nil
	}
	for i := range Days {
		if strings.EqualFold(s, Days[i]) || strings.EqualFold(s, englishDays[i]) {
			return i, nil
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownDay, s)
}

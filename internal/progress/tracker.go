// Package progress tracks completed sessions and exercises and derives
// statistics from them.
package progress

import (
	"slices"

	"github.com/claude/clab/internal/models"
)

// Tracker holds the two completion sets. The zero value is not usable; use
// NewTracker.
type Tracker struct {
	sessions  map[string]struct{}
	exercises map[string]struct{}
}

// NewTracker seeds a tracker from persisted id lists.
func NewTracker(sessions, exercises []string) *Tracker {
	t := &Tracker{
		sessions:  make(map[string]struct{}, len(sessions)),
		exercises: make(map[string]struct{}, len(exercises)),
	}
	for _, id := range sessions {
		t.sessions[id] = struct{}{}
	}
	for _, id := range exercises {
		t.exercises[id] = struct{}{}
	}
	return t
}

func toggle(set map[string]struct{}, id string) bool {
	if _, ok := set[id]; ok {
		delete(set, id)
		return false
	}
	set[id] = struct{}{}
	return true
}

// ToggleSession flips a session and reports whether it is now done.
func (t *Tracker) ToggleSession(id string) bool { return toggle(t.sessions, id) }

// ToggleExercise flips an exercise and reports whether it is now done.
func (t *Tracker) ToggleExercise(id string) bool { return toggle(t.exercises, id) }

func (t *Tracker) MarkSession(id string)   { t.sessions[id] = struct{}{} }
func (t *Tracker) UnmarkSession(id string) { delete(t.sessions, id) }
func (t *Tracker) MarkExercise(id string)  { t.exercises[id] = struct{}{} }
func (t *Tracker) UnmarkExercise(id string) {
	delete(t.exercises, id)
}

func (t *Tracker) SessionDone(id string) bool {
	_, ok := t.sessions[id]
	return ok
}

func (t *Tracker) ExerciseDone(id string) bool {
	_, ok := t.exercises[id]
	return ok
}

// DoneViaExercises reports whether every exercise of s is checked. A session
// without exercises is never done this way.
func (t *Tracker) DoneViaExercises(s models.Session) bool {
	if len(s.Exercises) == 0 {
		return false
	}
	for i := range s.Exercises {
		if !t.ExerciseDone(s.ExerciseID(i)) {
			return false
		}
	}
	return true
}

// Done reports whether s counts as completed by either route.
func (t *Tracker) Done(s models.Session) bool {
	return t.SessionDone(s.ID) || t.DoneViaExercises(s)
}

// ResetWeek clears the week's sessions and their exercises. Other weeks are
// untouched.
func (t *Tracker) ResetWeek(w models.WeekBlock) {
	for _, s := range w.Sessions {
		delete(t.sessions, s.ID)
		for i := range s.Exercises {
			delete(t.exercises, s.ExerciseID(i))
		}
	}
}

// WeekComplete reports whether every session of w is done.
func (t *Tracker) WeekComplete(w models.WeekBlock) bool {
	if len(w.Sessions) == 0 {
		return false
	}
	for _, s := range w.Sessions {
		if !t.Done(s) {
			return false
		}
	}
	return true
}

// Clear empties both sets.
func (t *Tracker) Clear() {
	clear(t.sessions)
	clear(t.exercises)
}

// Sessions returns the completed session ids, sorted.
func (t *Tracker) Sessions() []string { return sorted(t.sessions) }

// Exercises returns the completed exercise ids, sorted.
func (t *Tracker) Exercises() []string { return sorted(t.exercises) }

func sorted(set map[string]struct{}) []string {
	out := make([]string, 0, len(set))
	for id := range set {
		out = append(out, id)
	}
	slices.Sort(out)
	return out
}

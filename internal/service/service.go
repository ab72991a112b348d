// Package service owns the application state and applies every user action
// to it, persisting the whole state after each change.
package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"github.com/claude/clab/internal/models"
	"github.com/claude/clab/internal/pace"
	"github.com/claude/clab/internal/plan"
	"github.com/claude/clab/internal/progress"
	"github.com/claude/clab/internal/schedule"
	"github.com/claude/clab/internal/storage"
)

var (
	ErrNoPlan          = errors.New("no plan generated")
	ErrWeekNotFound    = errors.New("week not found")
	ErrUnknownSession  = errors.New("unknown session")
	ErrUnknownExercise = errors.New("unknown exercise")
)

// Service is safe for concurrent use. Writes are last-write-wins.
type Service struct {
	mu      sync.Mutex
	store   storage.Store
	log     *slog.Logger
	state   models.AppState
	tracker *progress.Tracker
}

// New loads the persisted state from store.
func New(ctx context.Context, store storage.Store, log *slog.Logger) *Service {
	st := storage.LoadState(ctx, store, log)
	return &Service{
		store:   store,
		log:     log,
		state:   st,
		tracker: progress.NewTracker(st.CompletedSessions, st.CompletedExercises),
	}
}

// persist writes the full state. Callers hold mu.
func (s *Service) persist(ctx context.Context) error {
	s.state.CompletedSessions = s.tracker.Sessions()
	s.state.CompletedExercises = s.tracker.Exercises()
	if err := storage.SaveState(ctx, s.store, s.state); err != nil {
		s.log.Error("saving state", "error", err)
		return fmt.Errorf("saving state: %w", err)
	}
	return nil
}

// State returns a snapshot of the whole application state.
func (s *Service) State(context.Context) (models.AppState, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	st := s.state
	st.Plan = append([]models.WeekBlock{}, s.state.Plan...)
	st.CompletedSessions = s.tracker.Sessions()
	st.CompletedExercises = s.tracker.Exercises()
	return st, nil
}

// Profile returns the current user configuration.
func (s *Service) Profile(context.Context) (models.UserConfig, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state.UserData, nil
}

// UpdateProfile stores cfg without regenerating the plan.
func (s *Service) UpdateProfile(ctx context.Context, cfg models.UserConfig) (models.UserConfig, error) {
	if err := cfg.Validate(); err != nil {
		return models.UserConfig{}, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state.UserData = cfg
	return cfg, s.persist(ctx)
}

// GeneratePlan replaces the plan with one built from cfg. Completion state
// is kept; ids are stable across regenerations.
func (s *Service) GeneratePlan(ctx context.Context, cfg models.UserConfig) ([]models.WeekBlock, error) {
	weeks, err := plan.Generate(cfg)
	if err != nil {
		return nil, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	first := 1
	s.state.UserData = cfg
	s.state.Plan = weeks
	s.state.Step = models.StepResult
	s.state.ExpandedWeek = &first
	s.log.Info("plan generated", "weeks", len(weeks), "distance", cfg.TargetDistance, "focus", cfg.StrengthFocus)
	return append([]models.WeekBlock(nil), weeks...), s.persist(ctx)
}

func (s *Service) Plan(context.Context) ([]models.WeekBlock, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if len(s.state.Plan) == 0 {
		return nil, ErrNoPlan
	}
	return append([]models.WeekBlock(nil), s.state.Plan...), nil
}

func (s *Service) Week(_ context.Context, n int) (models.WeekBlock, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	i, err := s.weekIndex(n)
	if err != nil {
		return models.WeekBlock{}, err
	}
	return s.state.Plan[i], nil
}

// weekIndex locates week n in the plan. Callers hold mu.
func (s *Service) weekIndex(n int) (int, error) {
	if len(s.state.Plan) == 0 {
		return 0, ErrNoPlan
	}
	for i, w := range s.state.Plan {
		if w.WeekNumber == n {
			return i, nil
		}
	}
	return 0, fmt.Errorf("%w: %d", ErrWeekNotFound, n)
}

// SwapDays exchanges two days of a week's calendar.
func (s *Service) SwapDays(ctx context.Context, week, a, b int) (models.WeekBlock, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	i, err := s.weekIndex(week)
	if err != nil {
		return models.WeekBlock{}, err
	}
	days := append([]models.ScheduleDay(nil), s.state.Plan[i].Schedule...)
	if err := schedule.Swap(days, a, b); err != nil {
		return models.WeekBlock{}, err
	}
	s.state.Plan[i].Schedule = days
	return s.state.Plan[i], s.persist(ctx)
}

// ResetSchedule rebuilds a week's calendar, discarding swaps.
func (s *Service) ResetSchedule(ctx context.Context, week int) (models.WeekBlock, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	i, err := s.weekIndex(week)
	if err != nil {
		return models.WeekBlock{}, err
	}
	schedule.Reset(&s.state.Plan[i])
	return s.state.Plan[i], s.persist(ctx)
}

// ToggleSession flips a session and reports whether it is now done.
func (s *Service) ToggleSession(ctx context.Context, id string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.hasSession(id) {
		return false, fmt.Errorf("%w: %s", ErrUnknownSession, id)
	}
	done := s.tracker.ToggleSession(id)
	return done, s.persist(ctx)
}

// ToggleExercise flips an exercise and reports whether it is now done.
func (s *Service) ToggleExercise(ctx context.Context, id string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.hasExercise(id) {
		return false, fmt.Errorf("%w: %s", ErrUnknownExercise, id)
	}
	done := s.tracker.ToggleExercise(id)
	return done, s.persist(ctx)
}

func (s *Service) hasSession(id string) bool {
	for _, w := range s.state.Plan {
		if _, ok := w.Session(id); ok {
			return true
		}
	}
	return false
}

func (s *Service) hasExercise(id string) bool {
	for _, w := range s.state.Plan {
		for _, sess := range w.Sessions {
			for i := range sess.Exercises {
				if sess.ExerciseID(i) == id {
					return true
				}
			}
		}
	}
	return false
}

// ResetWeekProgress clears completion of one week only.
func (s *Service) ResetWeekProgress(ctx context.Context, week int) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	i, err := s.weekIndex(week)
	if err != nil {
		return err
	}
	s.tracker.ResetWeek(s.state.Plan[i])
	return s.persist(ctx)
}

// Feedback applies the athlete's verdict on a week. A changed difficulty
// factor regenerates the weeks after it.
func (s *Service) Feedback(ctx context.Context, week int, action progress.Action) (progress.Outcome, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, err := s.weekIndex(week); err != nil {
		return progress.Outcome{}, err
	}
	cfg := s.state.UserData
	out, err := progress.Feedback(cfg.DifficultyFactor, action, week, len(s.state.Plan))
	if err != nil {
		return progress.Outcome{}, err
	}
	if out.Changed {
		cfg.DifficultyFactor = out.Factor
		weeks, err := plan.Adapt(s.state.Plan, cfg, week)
		if err != nil {
			return progress.Outcome{}, err
		}
		s.state.UserData = cfg
		s.state.Plan = weeks
		s.log.Info("plan adapted", "week", week, "action", action, "factor", out.Factor)
	}
	s.state.ExpandedWeek = out.NextWeek
	return out, s.persist(ctx)
}

// Stats summarises completed work.
func (s *Service) Stats(context.Context) (progress.Summary, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if len(s.state.Plan) == 0 {
		return progress.Summary{}, ErrNoPlan
	}
	return progress.Stats(s.state.Plan, s.tracker), nil
}

// Paces returns the paces of a week under the current profile.
func (s *Service) Paces(_ context.Context, week int) (models.PaceSet, error) {
	s.mu.Lock()
	cfg := s.state.UserData
	s.mu.Unlock()
	if week < 1 || week > cfg.DurationWeeks {
		return models.PaceSet{}, fmt.Errorf("%w: %d", ErrWeekNotFound, week)
	}
	return pace.ForConfig(cfg, week)
}

// SetView records the active tab and the expanded week (nil collapses).
func (s *Service) SetView(ctx context.Context, tab models.Tab, expanded *int) error {
	if !tab.Valid() {
		return fmt.Errorf("%w: unknown tab %q", models.ErrInvalidConfig, tab)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if expanded != nil {
		if _, err := s.weekIndex(*expanded); err != nil {
			return err
		}
		w := *expanded
		expanded = &w
	}
	s.state.ActiveTab = tab
	s.state.ExpandedWeek = expanded
	return s.persist(ctx)
}

// Reset wipes storage and returns to the first-launch state.
func (s *Service) Reset(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.store.Clear(ctx); err != nil {
		return fmt.Errorf("clearing state: %w", err)
	}
	s.state = models.DefaultAppState()
	s.tracker.Clear()
	s.log.Info("state reset")
	return nil
}

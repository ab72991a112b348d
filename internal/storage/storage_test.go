package storage

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/claude/clab/internal/config"
	"github.com/claude/clab/internal/models"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// exerciseStore runs the Store contract against s.
func exerciseStore(t *testing.T, s Store) {
	t.Helper()
	ctx := context.Background()

	data, err := s.Load(ctx)
	if err != nil || data != nil {
		t.Fatalf("empty Load = %q, %v; want nil, nil", data, err)
	}

	if err := s.Save(ctx, []byte(`{"step":"input"}`)); err != nil {
		t.Fatalf("Save: %v", err)
	}
	if err := s.Save(ctx, []byte(`{"step":"result"}`)); err != nil {
		t.Fatalf("second Save: %v", err)
	}
	data, err = s.Load(ctx)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if string(data) != `{"step":"result"}` {
		t.Errorf("Load = %s, want last write", data)
	}

	if err := s.Clear(ctx); err != nil {
		t.Fatalf("Clear: %v", err)
	}
	if data, _ := s.Load(ctx); data != nil {
		t.Errorf("Load after Clear = %s", data)
	}
}

// TestMemoryStore verifies the in-process store honours the Store contract.
func TestMemoryStore(t *testing.T) {
	exerciseStore(t, NewMemory())
}

// TestSQLiteStore verifies the sqlite store migrates and round-trips the blob.
func TestSQLiteStore(t *testing.T) {
	path := filepath.Join(t.TempDir(), "data", "clab.db")
	s, err := OpenSQLite(context.Background(), path)
	if err != nil {
		t.Fatalf("OpenSQLite: %v", err)
	}
	defer s.Close()
	exerciseStore(t, s)
}

// TestSQLiteReopen verifies data survives closing and reopening the file.
func TestSQLiteReopen(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "clab.db")

	s, err := OpenSQLite(ctx, path)
	if err != nil {
		t.Fatalf("OpenSQLite: %v", err)
	}
	if err := s.Save(ctx, []byte(`{"activeTab":"stats"}`)); err != nil {
		t.Fatal(err)
	}
	s.Close()

	s, err = OpenSQLite(ctx, path)
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}
	defer s.Close()
	data, err := s.Load(ctx)
	if err != nil || string(data) != `{"activeTab":"stats"}` {
		t.Errorf("Load = %s, %v", data, err)
	}
}

// TestPostgresStore runs the contract against a real database when
// CLAB_TEST_POSTGRES_DSN is set.
func TestPostgresStore(t *testing.T) {
	dsn := os.Getenv("CLAB_TEST_POSTGRES_DSN")
	if dsn == "" {
		t.Skip("CLAB_TEST_POSTGRES_DSN not set")
	}
	s, err := OpenPostgres(context.Background(), dsn)
	if err != nil {
		t.Fatalf("OpenPostgres: %v", err)
	}
	defer s.Close()
	if err := s.Clear(context.Background()); err != nil {
		t.Fatal(err)
	}
	exerciseStore(t, s)
}

// TestOpenUnknownDriver verifies an unsupported driver is refused.
func TestOpenUnknownDriver(t *testing.T) {
	_, err := Open(context.Background(), config.StorageConfig{Driver: "mongo"}, discardLogger())
	if !errors.Is(err, ErrUnknownDriver) {
		t.Fatalf("err = %v, want ErrUnknownDriver", err)
	}
	if err := RunMigrations(config.StorageConfig{Driver: "mongo"}); !errors.Is(err, ErrUnknownDriver) {
		t.Fatalf("RunMigrations err = %v", err)
	}
}

// TestOpenMemory verifies driver "memory" needs no schema.
func TestOpenMemory(t *testing.T) {
	s, err := Open(context.Background(), config.StorageConfig{Driver: config.DriverMemory}, discardLogger())
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	if _, ok := s.(*Memory); !ok {
		t.Errorf("got %T, want *Memory", s)
	}
	if err := RunMigrations(config.StorageConfig{Driver: config.DriverMemory}); err != nil {
		t.Errorf("RunMigrations: %v", err)
	}
}

// TestLoadStateMissing verifies a fresh store yields the default state.
func TestLoadStateMissing(t *testing.T) {
	got := LoadState(context.Background(), NewMemory(), discardLogger())
	if diff := cmp.Diff(models.DefaultAppState(), got); diff != "" {
		t.Errorf("state mismatch (-want +got):\n%s", diff)
	}
}

// TestStateRoundTrip verifies SaveState and LoadState agree.
func TestStateRoundTrip(t *testing.T) {
	ctx := context.Background()
	s := NewMemory()

	week := 4
	want := models.DefaultAppState()
	want.Step = models.StepResult
	want.ActiveTab = models.TabStats
	want.ExpandedWeek = &week
	want.Plan = []models.WeekBlock{{WeekNumber: 1, Focus: "ADAPTATION", Sessions: []models.Session{{ID: "w1-r1", RPE: 3}}}}
	want.CompletedSessions = []string{"w1-r1"}
	want.CompletedExercises = []string{"w1-r1-ex-0"}

	if err := SaveState(ctx, s, want); err != nil {
		t.Fatalf("SaveState: %v", err)
	}
	got := LoadState(ctx, s, discardLogger())
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("state mismatch (-want +got):\n%s", diff)
	}
}

// TestLoadStateCorrupt verifies broken blobs and fields fall back to defaults.
func TestLoadStateCorrupt(t *testing.T) {
	tests := []struct {
		name  string
		blob  string
		check func(t *testing.T, st models.AppState)
	}{
		{
			name: "not json",
			blob: "{oops",
			check: func(t *testing.T, st models.AppState) {
				if diff := cmp.Diff(models.DefaultAppState(), st); diff != "" {
					t.Errorf("(-want +got):\n%s", diff)
				}
			},
		},
		{
			name: "bad tab keeps other fields",
			blob: `{"activeTab":"graphs","completedSessions":["w1-r1"]}`,
			check: func(t *testing.T, st models.AppState) {
				if st.ActiveTab != models.TabPlan {
					t.Errorf("tab = %q", st.ActiveTab)
				}
				if !cmp.Equal(st.CompletedSessions, []string{"w1-r1"}) {
					t.Errorf("sessions = %v", st.CompletedSessions)
				}
			},
		},
		{
			name: "invalid profile",
			blob: `{"userData":{"targetDistance":"10k","goalTime":0,"durationWeeks":10}}`,
			check: func(t *testing.T, st models.AppState) {
				if st.UserData != models.DefaultUserConfig() {
					t.Errorf("userData = %+v", st.UserData)
				}
			},
		},
		{
			name: "wrong field type",
			blob: `{"completedExercises":"all","expandedWeek":"two"}`,
			check: func(t *testing.T, st models.AppState) {
				if st.CompletedExercises == nil || len(st.CompletedExercises) != 0 {
					t.Errorf("exercises = %v", st.CompletedExercises)
				}
				if st.ExpandedWeek == nil || *st.ExpandedWeek != 1 {
					t.Errorf("expandedWeek = %v", st.ExpandedWeek)
				}
			},
		},
		{
			name: "collapsed week",
			blob: `{"expandedWeek":null}`,
			check: func(t *testing.T, st models.AppState) {
				if st.ExpandedWeek != nil {
					t.Errorf("expandedWeek = %d, want nil", *st.ExpandedWeek)
				}
			},
		},
		{
			name: "result without plan",
			blob: `{"step":"result","plan":[]}`,
			check: func(t *testing.T, st models.AppState) {
				if st.Step != models.StepInput {
					t.Errorf("step = %q", st.Step)
				}
			},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := NewMemory()
			if err := s.Save(context.Background(), []byte(tt.blob)); err != nil {
				t.Fatal(err)
			}
			tt.check(t, LoadState(context.Background(), s, discardLogger()))
		})
	}
}

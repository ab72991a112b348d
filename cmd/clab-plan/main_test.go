package main

import (
	"bytes"
	"encoding/json"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/claude/clab/internal/models"
)

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	app := newApp()
	app.Writer = &out
	app.ErrWriter = io.Discard
	err := app.Run(append([]string{"clab-plan"}, args...))
	return out.String(), err
}

// TestPacesCommand verifies one line per week plus the header.
func TestPacesCommand(t *testing.T) {
	out, err := run(t, "--weeks", "6", "--goal", "50", "paces")
	if err != nil {
		t.Fatal(err)
	}
	lines := strings.Split(strings.TrimSpace(out), "\n")
	if len(lines) != 7 {
		t.Fatalf("got %d lines, want 7:\n%s", len(lines), out)
	}
	if !strings.Contains(lines[6], "5:00") {
		t.Errorf("last week should race at 5:00: %q", lines[6])
	}
}

// TestGenerateJSON verifies the JSON plan honours the profile flags.
func TestGenerateJSON(t *testing.T) {
	out, err := run(t, "--distance", "hyrox", "--goal", "90", "--weeks", "8", "generate", "--json")
	if err != nil {
		t.Fatal(err)
	}
	var weeks []models.WeekBlock
	if err := json.Unmarshal([]byte(out), &weeks); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(weeks) != 8 {
		t.Fatalf("got %d weeks, want 8", len(weeks))
	}
	found := false
	for _, s := range weeks[0].Sessions {
		if s.Category == models.CategoryHyrox {
			found = true
		}
	}
	if !found {
		t.Error("hyrox plan has no hyrox sessions in week 1")
	}
}

// TestProfileFile verifies explicit flags override the profile file.
func TestProfileFile(t *testing.T) {
	cfg := models.DefaultUserConfig()
	cfg.DurationWeeks = 12
	cfg.TargetDistance = models.Distance5K
	data, _ := json.Marshal(cfg)
	path := filepath.Join(t.TempDir(), "profile.json")
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatal(err)
	}

	out, err := run(t, "--profile", path, "--weeks", "5", "generate", "--json")
	if err != nil {
		t.Fatal(err)
	}
	var weeks []models.WeekBlock
	if err := json.Unmarshal([]byte(out), &weeks); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(weeks) != 5 {
		t.Errorf("got %d weeks, want 5", len(weeks))
	}
	last := weeks[len(weeks)-1]
	race, ok := last.Session("w5-race")
	if !ok || race.Distance != models.Distance5K.RaceDistance() {
		t.Errorf("race session = %+v", race)
	}
}

// TestInvalidProfile verifies validation errors stop the command.
func TestInvalidProfile(t *testing.T) {
	if _, err := run(t, "--weeks", "2", "paces"); err == nil {
		t.Error("expected error for a 2-week plan")
	}
	if _, err := run(t, "--focus", "yoga", "generate"); err == nil {
		t.Error("expected error for an unknown focus")
	}
}

// TestExportFormats verifies each export format writes its file and that
// rejected arguments create no file.
func TestExportFormats(t *testing.T) {
	dir := t.TempDir()
	tests := []struct {
		format, prefix string
	}{
		{"ics", "BEGIN:VCALENDAR"},
		{"csv", "ID,Semaine"},
		{"xlsx", "PK"},
	}
	for _, tt := range tests {
		t.Run(tt.format, func(t *testing.T) {
			path := filepath.Join(dir, "plan."+tt.format)
			if _, err := run(t, "export", "--format", tt.format, "--start", "2026-10-19", "-o", path); err != nil {
				t.Fatal(err)
			}
			data, err := os.ReadFile(path)
			if err != nil {
				t.Fatal(err)
			}
			if !bytes.HasPrefix(data, []byte(tt.prefix)) {
				t.Errorf("file starts with %q", data[:min(len(data), 20)])
			}
		})
	}

	bad := filepath.Join(dir, "plan.pdf")
	if _, err := run(t, "export", "--format", "pdf", "-o", bad); err == nil {
		t.Error("expected error for unknown format")
	}
	if _, err := os.Stat(bad); !os.IsNotExist(err) {
		t.Errorf("unknown format left %s behind: %v", bad, err)
	}

	late := filepath.Join(dir, "late.ics")
	if _, err := run(t, "export", "--hour", "24", "-o", late); err == nil {
		t.Error("expected error for hour 24")
	}
	if _, err := os.Stat(late); !os.IsNotExist(err) {
		t.Errorf("invalid hour left %s behind: %v", late, err)
	}
}

package catalog

import (
	"testing"

	"github.com/claude/clab/internal/models"
)

// TestDefaultHasEveryProtocol verifies every key the generator relies on is present.
func TestDefaultHasEveryProtocol(t *testing.T) {
	c := Default()
	for _, key := range []string{
		RunSteady, RunIntervalShort, RunIntervalLong, RunPyramid, RunThreshold, RunTempo,
		RunRacePace, RunHills, RunLong, RunRecovery, RunActivation, RunEngine,
	} {
		if len(c.RunProtocol(key)) == 0 {
			t.Errorf("run protocol %q missing", key)
		}
	}

	splits := map[models.StrengthFocus][]string{
		models.FocusForce:         {"legs", "upper", "full"},
		models.FocusHypertrophy:   {"push", "pull", "legs", "shoulders_arms", "chest_back"},
		models.FocusStreetWorkout: {"push", "pull", "legs", "skills", "core"},
	}
	for focus, keys := range splits {
		for _, key := range keys {
			if len(c.StrengthSplit(focus, key)) == 0 {
				t.Errorf("strength %s/%s missing", focus, key)
			}
		}
	}

	for _, key := range []string{"sled_strength", "functional_endurance", "erg_power", "compromised_legs", "race_simulation"} {
		if len(c.HyroxWorkout(key)) == 0 {
			t.Errorf("hyrox workout %q missing", key)
		}
	}
}

// TestAccessorsReturnCopies verifies callers cannot mutate the shared library.
func TestAccessorsReturnCopies(t *testing.T) {
	c := Default()
	list := c.RunProtocol(RunSteady)
	list[0].Name = "mutated"
	if c.RunProtocol(RunSteady)[0].Name == "mutated" {
		t.Error("RunProtocol returned shared slice")
	}
}

// TestQuantityKinds verifies YAML integers decode as counts and text as labels.
func TestQuantityKinds(t *testing.T) {
	squat := Default().StrengthSplit(models.FocusForce, "legs")[0]
	if squat.Sets != models.Count(5) {
		t.Errorf("back squat sets = %+v, want count 5", squat.Sets)
	}
	if squat.Reps != models.Text("3-5") {
		t.Errorf("back squat reps = %+v, want text 3-5", squat.Reps)
	}
	warmup := Default().RunProtocol(RunSteady)[0]
	if warmup.Sets.Kind != models.QuantityDuration || warmup.Sets.Label != "10 min" {
		t.Errorf("warmup sets = %+v", warmup.Sets)
	}
}

// TestParseRejectsBadRPE verifies entries outside the 1-10 scale are refused.
func TestParseRejectsBadRPE(t *testing.T) {
	src := `
run:
  steady:
    - name: Footing
      sets: 1
      reps: Continu
      rpe: 11
`
	if _, err := Parse([]byte(src)); err == nil {
		t.Fatal("expected error for rpe 11")
	}
}

// TestParseRejectsEmptyProtocol verifies a key with no exercises is refused.
func TestParseRejectsEmptyProtocol(t *testing.T) {
	if _, err := Parse([]byte("hyrox:\n  erg_power: []\n")); err == nil {
		t.Fatal("expected error for empty protocol")
	}
}

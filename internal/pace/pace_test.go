package pace

import (
	"errors"
	"math"
	"testing"

	"github.com/claude/clab/internal/models"
)

const eps = 1e-9

// TestComputeFinalWeekIsGoalPace verifies paces converge exactly on goal pace in the last week.
func TestComputeFinalWeekIsGoalPace(t *testing.T) {
	p, err := Compute(10, 10, 50, 15, 1.0, 10)
	if err != nil {
		t.Fatal(err)
	}
	if p.ValRace != 5.0 {
		t.Errorf("valRace = %v, want 5", p.ValRace)
	}
	if p.Race != "5:00" {
		t.Errorf("race = %q, want 5:00", p.Race)
	}
	if p.Gap != 0 {
		t.Errorf("gap = %d, want 0", p.Gap)
	}
	if p.Easy != "6:30" || p.EasyRange != "6:30 - 7:00" {
		t.Errorf("easy = %q range = %q", p.Easy, p.EasyRange)
	}
	if p.Threshold != "5:15" {
		t.Errorf("threshold = %q, want 5:15", p.Threshold)
	}
	if p.Interval != "4:36" {
		t.Errorf("interval = %q, want 4:36", p.Interval)
	}
}

// TestComputeFirstWeekSlowdown verifies week 1 runs progressionStart percent slower than goal.
func TestComputeFirstWeekSlowdown(t *testing.T) {
	p, err := Compute(1, 10, 50, 15, 1.0, 10)
	if err != nil {
		t.Fatal(err)
	}
	if math.Abs(p.ValRace-5.75) > eps {
		t.Errorf("valRace = %v, want 5.75", p.ValRace)
	}
	if p.Race != "5:45" {
		t.Errorf("race = %q, want 5:45", p.Race)
	}
	if p.Gap != 15 {
		t.Errorf("gap = %d, want 15", p.Gap)
	}
}

// TestComputeMonotoneProgression verifies race pace never slows as weeks advance.
func TestComputeMonotoneProgression(t *testing.T) {
	for _, weeks := range []int{4, 8, 12, 16} {
		prev := math.Inf(1)
		for w := 1; w <= weeks; w++ {
			p, err := Compute(w, weeks, 95, 20, 1.05, 21.0975)
			if err != nil {
				t.Fatal(err)
			}
			if p.ValRace > prev+eps {
				t.Errorf("weeks=%d week %d: %v slower than %v", weeks, w, p.ValRace, prev)
			}
			prev = p.ValRace
		}
	}
}

// TestComputeZoneOrdering verifies interval is the fastest zone and easy the
// slowest for every distance bucket.
func TestComputeZoneOrdering(t *testing.T) {
	for _, km := range []float64{5, 10, 21.0975, 42.195} {
		p, err := Compute(3, 10, 60, 10, 1.0, km)
		if err != nil {
			t.Fatal(err)
		}
		if !(p.ValInterval < p.ValThreshold && p.ValInterval < p.ValRace) {
			t.Errorf("km=%v: interval %v not fastest", km, p.ValInterval)
		}
		if !(p.ValEasy > p.ValThreshold && p.ValEasy > p.ValRace) {
			t.Errorf("km=%v: easy %v not slowest", km, p.ValEasy)
		}
	}
}

// TestComputeDifficultyFactor verifies the factor scales every pace.
func TestComputeDifficultyFactor(t *testing.T) {
	base, _ := Compute(5, 10, 50, 15, 1.0, 10)
	hard, _ := Compute(5, 10, 50, 15, 1.1, 10)
	if math.Abs(hard.ValRace-base.ValRace*1.1) > eps {
		t.Errorf("race %v, want %v", hard.ValRace, base.ValRace*1.1)
	}
}

// TestComputeSingleWeek verifies a one-week plan does not divide by zero.
func TestComputeSingleWeek(t *testing.T) {
	p, err := Compute(1, 1, 25, 10, 1.0, 5)
	if err != nil {
		t.Fatal(err)
	}
	if math.Abs(p.ValRace-5.5) > eps {
		t.Errorf("valRace = %v, want 5.5", p.ValRace)
	}
}

// TestComputeInvalidDistance verifies non-positive distances are rejected.
func TestComputeInvalidDistance(t *testing.T) {
	for _, km := range []float64{0, -5} {
		if _, err := Compute(1, 10, 50, 15, 1, km); !errors.Is(err, ErrInvalidDistance) {
			t.Errorf("km=%v: err = %v, want ErrInvalidDistance", km, err)
		}
	}
}

// TestRatiosFor verifies the bucket table.
func TestRatiosFor(t *testing.T) {
	tests := []struct {
		km   float64
		want Ratios
	}{
		{5, Ratios{1.45, 1.15, 0.95}},
		{10, Ratios{1.30, 1.05, 0.92}},
		{21.0975, Ratios{1.25, 1.02, 0.90}},
		{42.195, Ratios{1.20, 0.96, 0.88}},
	}
	for _, tt := range tests {
		if got := RatiosFor(tt.km); got != tt.want {
			t.Errorf("RatiosFor(%v) = %+v, want %+v", tt.km, got, tt.want)
		}
	}
	if got := RatiosForDistance(models.DistanceHyrox); got != RatiosFor(42.195) {
		t.Errorf("hyrox ratios = %+v", got)
	}
}

// TestFormat verifies m:ss rendering including the 60-second carry.
func TestFormat(t *testing.T) {
	tests := []struct {
		in   float64
		want string
	}{
		{5, "5:00"},
		{5.5, "5:30"},
		{4.25, "4:15"},
		{4.999, "5:00"},
		{12.1, "12:06"},
	}
	for _, tt := range tests {
		if got := Format(tt.in); got != tt.want {
			t.Errorf("Format(%v) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

// TestDistance verifies minutes at pace become one-decimal km.
func TestDistance(t *testing.T) {
	if got := FormatDistance(Distance(45, 6.5)); got != "6.9 km" {
		t.Errorf("got %q, want 6.9 km", got)
	}
	if got := Distance(30, 0); got != 0 {
		t.Errorf("zero pace distance = %v", got)
	}
}

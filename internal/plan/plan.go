// Package plan turns a user profile into a full multi-week training plan.
package plan

import (
	"fmt"
	"math"

	"github.com/claude/clab/internal/catalog"
	"github.com/claude/clab/internal/models"
	"github.com/claude/clab/internal/pace"
	"github.com/claude/clab/internal/schedule"
)

// Session day labels of the race week.
const (
	DayWakeUp = "J-3"
	DayRace   = "JOUR J"
)

// generator carries the split rotation counters of a single Generate call.
type generator struct {
	cfg models.UserConfig
	cat *catalog.Catalog

	hypertrophyIdx int
	streetIdx      int
	hyroxIdx       int
}

// Generate builds every week of the plan. The result is complete or an
// error is returned; there is no partial plan.
func Generate(cfg models.UserConfig) ([]models.WeekBlock, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	g := &generator{cfg: cfg, cat: catalog.Default()}

	weeks := make([]models.WeekBlock, 0, cfg.DurationWeeks)
	for i := 1; i <= cfg.DurationWeeks; i++ {
		w, err := g.week(i)
		if err != nil {
			return nil, fmt.Errorf("week %d: %w", i, err)
		}
		weeks = append(weeks, w)
	}
	return weeks, nil
}

// Adapt regenerates the plan for cfg, typically after a difficulty change.
// Weeks up to and including fromWeek are kept as they were. Later weeks
// keep their current calendar when their session ids are unchanged.
func Adapt(prev []models.WeekBlock, cfg models.UserConfig, fromWeek int) ([]models.WeekBlock, error) {
	fresh, err := Generate(cfg)
	if err != nil {
		return nil, err
	}
	for i := range fresh {
		if i >= len(prev) {
			break
		}
		if fresh[i].WeekNumber <= fromWeek {
			fresh[i] = prev[i]
			continue
		}
		if sameIDs(prev[i].SessionIDs(), fresh[i].SessionIDs()) {
			fresh[i].Schedule = prev[i].Schedule
		}
	}
	return fresh, nil
}

func sameIDs(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func (g *generator) week(i int) (models.WeekBlock, error) {
	p, err := pace.ForConfig(g.cfg, i)
	if err != nil {
		return models.WeekBlock{}, err
	}
	ph := Classify(i, g.cfg.DurationWeeks)

	var sessions []models.Session
	if g.cfg.IsHyrox() {
		sessions = g.hyroxWeek(i, ph, p)
	} else {
		sessions = g.runningWeek(i, ph, p)
	}

	return models.WeekBlock{
		WeekNumber:  i,
		Focus:       ph.Focus(),
		VolumeLabel: ph.VolumeLabel(),
		Sessions:    sessions,
		Schedule:    schedule.Build(sessions, g.cfg.IsHyrox()),
	}, nil
}

func (g *generator) runningWeek(i int, ph Phase, p models.PaceSet) []models.Session {
	var out []models.Session
	if ph.Race {
		out = append(out,
			g.run(wakeUp, sessionID(i, "r1"), DayWakeUp, p, models.TagActivation),
			g.race(i, p))
	} else {
		out = append(out, g.runs(i, ph, p)...)
	}

	n := g.cfg.StrengthDaysPerWeek
	if ph.Taper {
		n = max(0, n-2)
	}
	for k := 1; k <= n; k++ {
		out = append(out, g.strength(i, k, n))
	}
	return out
}

func (g *generator) runs(i int, ph Phase, p models.PaceSet) []models.Session {
	days := max(1, g.cfg.RunDaysPerWeek)

	first := easyRun
	var tags []string
	if i%2 == 1 {
		first.name = "Endurance + Lignes Droites"
		first.desc = "Footing en aisance puis 6 lignes droites de 80 m en accélération progressive."
		tags = append(tags, models.TagStrides)
	}
	out := []models.Session{g.run(first, sessionID(i, "r1"), "Jeudi", p, tags...)}

	if days >= 2 {
		var q workout
		if ph.Adaptation {
			q = adaptationCycle[i%len(adaptationCycle)]
		} else {
			cycle := qualityCycle(g.cfg.TargetDistance)
			q = cycle[i%len(cycle)]
		}
		out = append(out, g.run(q, sessionID(i, "r2"), "Mardi", p))
	}
	if days >= 3 {
		out = append(out, g.run(g.longRun(i, ph), sessionID(i, "r3"), "Dimanche", p, models.TagLong))
	}
	if days >= 4 {
		out = append(out, g.run(recoveryRun, sessionID(i, "r4"), "Samedi", p))
	}
	return out
}

// longRun returns the long run template of week i with its duration set.
func (g *generator) longRun(i int, ph Phase) workout {
	var minutes float64
	recovery := false
	switch g.cfg.TargetDistance {
	case models.Distance5K:
		switch {
		case ph.Adaptation:
			minutes = float64(40 + 5*i)
		case ph.Taper:
			minutes = 45
		default:
			minutes = float64(60 + (i%2)*10)
		}
	case models.DistanceHalf:
		if ph.Taper {
			minutes = 60
		} else {
			minutes = math.Min(130, float64(70+5*(i-1)))
		}
	case models.DistanceMarathon:
		minutes = math.Min(150, float64(80+10*(i-1)))
		switch {
		case ph.Taper:
			minutes *= 0.6
		case !ph.Adaptation && i%3 == 0:
			minutes *= 0.7
			recovery = true
		}
	default:
		switch {
		case ph.Adaptation:
			minutes = float64(50 + 5*i)
		case ph.Taper:
			minutes = 50
		default:
			minutes = float64(75 + (i%2)*10)
		}
	}
	m := int(math.Round(minutes))

	w := workout{
		name: "Sortie Longue", structure: models.StructureSteady, intensity: models.IntensityLow,
		minutes: m, rpe: 4, protocol: catalog.RunLong, target: zoneEasy,
		parts:   []part{{float64(m), zoneEasy}},
		desc:    "Sortie longue en endurance fondamentale, allure conversationnelle.",
		science: "Le volume continu développe l'endurance musculaire et le stockage du glycogène.",
		advice:  "Toujours en fin de semaine, jamais après une séance jambes.",
	}
	// Recovery weeks stay easy from start to finish.
	if i%3 == 0 && !ph.Adaptation && !ph.Taper && !recovery && m > 30 {
		w.name = "Sortie Longue + Final"
		w.intensity = models.IntensityMedium
		w.rpe = 6
		w.target = zoneRace
		w.parts = []part{{float64(m - 15), zoneEasy}, {15, zoneRace}}
		w.desc = "Sortie longue dont les 15 dernières minutes se courent à allure course."
		w.science = "Courir vite sur des jambes fatiguées simule la fin de course."
	}
	return w
}

func (g *generator) run(w workout, id, day string, p models.PaceSet, tags ...string) models.Session {
	dist, km := w.distance(p)
	return models.Session{
		ID:             id,
		Day:            day,
		Category:       models.CategoryRun,
		Type:           w.name,
		Structure:      w.structure,
		Intensity:      w.intensity,
		Duration:       formatDuration(w.minutes),
		DurationMin:    w.minutes,
		Distance:       dist,
		DistanceKm:     km,
		PaceTarget:     w.target.target(p),
		PaceGap:        p.Gap,
		RPE:            w.rpe,
		Description:    w.desc,
		ScienceNote:    w.science,
		PlanningAdvice: w.advice,
		Exercises:      g.cat.RunProtocol(w.protocol),
		Tags:           tags,
	}
}

// race is the competition itself. It has no exercises and is completed at
// session level only.
func (g *generator) race(i int, p models.PaceSet) models.Session {
	d := g.cfg.TargetDistance
	minutes := max(1, int(math.Round(g.cfg.GoalTime)))
	s := models.Session{
		ID:             sessionID(i, "race"),
		Day:            DayRace,
		Category:       models.CategoryRun,
		Type:           "COMPÉTITION",
		Structure:      models.StructureSteady,
		Intensity:      models.IntensityHigh,
		Duration:       formatDuration(minutes),
		DurationMin:    minutes,
		Distance:       d.RaceDistance(),
		DistanceKm:     d.Km(),
		PaceTarget:     p.Race,
		PaceGap:        p.Gap,
		RPE:            10,
		Description:    fmt.Sprintf("Objectif %s en %s.", d.Label(), formatDuration(minutes)),
		ScienceNote:    "Le travail est fait : fraîcheur et régularité font la performance.",
		PlanningAdvice: "Partez prudemment, accélérez sur le dernier tiers.",
		Exercises:      []models.ExerciseTemplate{},
		Tags:           []string{models.TagRace},
	}
	if d == models.DistanceHyrox {
		s.Type = "COMPÉTITION HYROX"
		s.Structure = models.StructureInterval
		s.DistanceKm = 8
		s.Tags = append(s.Tags, models.TagEngine)
		s.Description = fmt.Sprintf("8 x 1 km et 8 stations en %s.", formatDuration(minutes))
		s.PlanningAdvice = "Gérez les runs, gagnez du temps sur les transitions."
	}
	return s
}

func sessionID(week int, slot string) string {
	return fmt.Sprintf("w%d-%s", week, slot)
}

// formatDuration renders minutes as "45 min" or "1h30".
func formatDuration(minutes int) string {
	if minutes < 60 {
		return fmt.Sprintf("%d min", minutes)
	}
	return fmt.Sprintf("%dh%02d", minutes/60, minutes%60)
}

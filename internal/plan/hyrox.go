package plan

import (
	"fmt"

	"github.com/claude/clab/internal/models"
)

type wod struct {
	key     string
	label   string
	legs    bool
	minutes int
	rpe     int
	desc    string
	science string
}

var hyroxWODs = []wod{
	{"sled_strength", "Sled & Force", true, 60, 8,
		"Poussée et traction de traîneau lourdes, fentes lestées.",
		"La force maximale des jambes conditionne les stations sled."},
	{"functional_endurance", "Endurance Fonctionnelle", false, 60, 8,
		"Circuit burpees, wall balls et farmers carry à rythme constant.",
		"Entraîne la capacité à enchaîner les stations sans exploser le cardio."},
	{"erg_power", "Ergo Power", false, 60, 8,
		"Intervalles SkiErg et rameur à puissance élevée.",
		"Développe la puissance aérobie du haut du corps."},
	{"compromised_legs", "Compromised Legs", true, 60, 8,
		"Alternance run et fentes ou wall balls sur jambes fatiguées.",
		"Habitue à courir juste après une station jambes."},
	{"race_simulation", "Simulation Course", true, 75, 9,
		"Enchaînement run et stations au format compétition.",
		"Répétition générale : pacing, transitions et gestion de l'effort."},
}

func (g *generator) hyroxWeek(i int, ph Phase, p models.PaceSet) []models.Session {
	var out []models.Session
	if ph.Race {
		out = append(out,
			g.run(wakeUp, sessionID(i, "r1"), DayWakeUp, p, models.TagActivation),
			g.race(i, p))
	} else {
		engine := runEngine
		if ph.Adaptation {
			engine = runEngineBase
		}
		out = append(out, g.run(engine, sessionID(i, "r1"), "Dimanche", p, models.TagEngine))
	}

	n := g.cfg.HyroxSessionsPerWeek
	if ph.Taper && n >= 1 {
		n = max(1, n-1)
	}
	for k := 1; k <= n; k++ {
		out = append(out, g.wod(i, k))
	}

	if !ph.Race {
		for k := 1; k <= g.cfg.ExtraRunSessions; k++ {
			out = append(out, g.run(bonusRun, sessionID(i, fmt.Sprintf("x%d", k)), "Flexible", p, models.TagBonus))
		}
	}

	extra := g.cfg.ExtraStrengthSessions
	if ph.Taper {
		extra = max(0, extra-1)
	}
	for k := 1; k <= extra; k++ {
		out = append(out, g.strength(i, k, extra))
	}
	return out
}

func (g *generator) wod(week, k int) models.Session {
	w := hyroxWODs[g.hyroxIdx%len(hyroxWODs)]
	g.hyroxIdx++

	var tags []string
	if w.legs {
		tags = append(tags, models.TagLegs)
	}
	return models.Session{
		ID:             sessionID(week, fmt.Sprintf("h%d", k)),
		Day:            "Flexible",
		Category:       models.CategoryHyrox,
		Type:           fmt.Sprintf("HYROX %d : %s", k, w.label),
		Structure:      models.StructureInterval,
		Intensity:      models.IntensityHigh,
		Duration:       formatDuration(w.minutes),
		DurationMin:    w.minutes,
		Distance:       "Varié",
		PaceTarget:     "Effort (RPE 8-9)",
		RPE:            w.rpe,
		Description:    w.desc,
		ScienceNote:    w.science,
		PlanningAdvice: "Jamais deux WODs le même jour.",
		Exercises:      g.cat.HyroxWorkout(w.key),
		Tags:           tags,
	}
}

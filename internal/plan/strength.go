package plan

import (
	"fmt"

	"github.com/claude/clab/internal/models"
)

type split struct {
	key     string
	label   string
	legs    bool
	minutes int
	rpe     int
	science string
}

var hypertrophySplits = []split{
	{"push", "Push (Pecs / Épaules / Triceps)", false, 75, 8, "Tension mécanique et volume modéré : le moteur de la prise de masse."},
	{"pull", "Pull (Dos / Biceps)", false, 75, 8, "Un dos fort protège la posture de course."},
	{"legs", "Jambes", true, 75, 8, "Des quadriceps et ischios plus forts encaissent mieux l'impact."},
	{"shoulders_arms", "Épaules & Bras", false, 60, 7, "Volume ciblé sur les petits groupes, récupération rapide."},
	{"chest_back", "Pecs & Dos", false, 75, 8, "Antagonistes en superset pour plus de densité."},
}

var streetSplits = []split{
	{"push", "Push (Dips / Pompes)", false, 60, 8, "Le poids du corps comme charge : force relative avant tout."},
	{"pull", "Pull (Tractions)", false, 60, 8, "Les tractions développent le dos et la force de préhension."},
	{"legs", "Jambes (Pistols / Squats)", true, 60, 8, "Travail unilatéral : équilibre et stabilité de cheville."},
	{"skills", "Skills (Figures)", false, 60, 7, "Apprentissage moteur : qualité avant quantité."},
	{"core", "Core & Gainage", false, 45, 6, "Un tronc solide transmet la force et limite les compensations."},
}

var forceSplits = []split{
	{"legs", "Force Jambes", true, 90, 8, "Charges lourdes, peu de répétitions : recrutement neural maximal."},
	{"upper", "Force Haut du Corps", false, 90, 8, "Développé et tirages lourds pour la force maximale."},
	{"full", "Force Full Body", true, 90, 8, "Mouvements polyarticulaires lourds sur tout le corps."},
}

// strengthSplit picks the split of the k-th of n strength sessions in a
// week. Hypertrophy and street workout rotate across the whole plan; force
// assigns by position, and every session past the third is full body.
func (g *generator) strengthSplit(k, n int) split {
	switch g.cfg.StrengthFocus {
	case models.FocusForce:
		if n == 1 {
			return forceSplits[2]
		}
		return forceSplits[min(k-1, len(forceSplits)-1)]
	case models.FocusStreetWorkout:
		s := streetSplits[g.streetIdx%len(streetSplits)]
		g.streetIdx++
		return s
	default:
		s := hypertrophySplits[g.hypertrophyIdx%len(hypertrophySplits)]
		g.hypertrophyIdx++
		return s
	}
}

func (g *generator) strength(week, k, n int) models.Session {
	sp := g.strengthSplit(k, n)
	tags := []string{string(g.cfg.StrengthFocus)}
	if sp.legs {
		tags = append(tags, models.TagLegs)
	}
	return models.Session{
		ID:             sessionID(week, fmt.Sprintf("s%d", k)),
		Day:            "Flexible",
		Category:       models.CategoryStrength,
		Type:           fmt.Sprintf("GYM %d : %s", k, sp.label),
		Structure:      models.StructurePyramid,
		Intensity:      models.IntensityHigh,
		Duration:       formatDuration(sp.minutes),
		DurationMin:    sp.minutes,
		Distance:       "-",
		PaceTarget:     "-",
		RPE:            sp.rpe,
		Description:    fmt.Sprintf("Séance %s.", sp.label),
		ScienceNote:    sp.science,
		PlanningAdvice: strengthAdvice(sp.legs),
		Exercises:      g.cat.StrengthSplit(g.cfg.StrengthFocus, sp.key),
		Tags:           tags,
	}
}

func strengthAdvice(legs bool) string {
	if legs {
		return "Au moins 48h avant la sortie longue ou la séance clé."
	}
	return "Compatible avec un footing facile le même jour."
}

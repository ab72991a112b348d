package plan

// Week classification boundaries.
const (
	// AdaptationPercent of the plan, rounded up, is spent in adaptation.
	AdaptationPercent = 30
	// TaperWeeks is the length of the taper, race week included.
	TaperWeeks = 2
)

// Phase describes where a week sits in the plan. Adaptation and taper never
// overlap for plans of MinWeeks or more.
type Phase struct {
	Adaptation bool
	Taper      bool
	Race       bool
}

// AdaptationWeeks returns ceil(total * AdaptationPercent / 100).
func AdaptationWeeks(total int) int {
	return (total*AdaptationPercent + 99) / 100
}

// Classify returns the phase of week (1-based) in a plan of total weeks.
func Classify(week, total int) Phase {
	return Phase{
		Adaptation: week <= AdaptationWeeks(total),
		Taper:      week > total-TaperWeeks,
		Race:       week == total,
	}
}

// Focus is the headline shown on the week card.
func (p Phase) Focus() string {
	switch {
	case p.Race:
		return "OBJECTIF"
	case p.Taper:
		return "AFFÛTAGE"
	case p.Adaptation:
		return "ADAPTATION"
	default:
		return "DÉVELOPPEMENT"
	}
}

func (p Phase) VolumeLabel() string {
	switch {
	case p.Adaptation:
		return "Volume bas"
	case p.Taper:
		return "Récupération"
	default:
		return "Charge haute"
	}
}

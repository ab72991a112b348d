package plan

import (
	"math"

	"github.com/claude/clab/internal/catalog"
	"github.com/claude/clab/internal/models"
	"github.com/claude/clab/internal/pace"
)

// zone selects which pace of the week a running block uses.
type zone int

const (
	zoneEasy zone = iota
	zoneThreshold
	zoneInterval
	zoneRace
	zoneEffort
)

func (z zone) value(p models.PaceSet) float64 {
	switch z {
	case zoneThreshold:
		return p.ValThreshold
	case zoneInterval:
		return p.ValInterval
	case zoneRace:
		return p.ValRace
	default:
		return p.ValEasy
	}
}

func (z zone) target(p models.PaceSet) string {
	switch z {
	case zoneThreshold:
		return p.Threshold
	case zoneInterval:
		return p.Interval
	case zoneRace:
		return p.Race
	case zoneEffort:
		return "Effort (RPE 8-9)"
	default:
		return p.EasyRange
	}
}

type part struct {
	minutes float64
	zone    zone
}

// workout is a running session template. A nil parts list means the
// distance cannot be estimated (hills).
type workout struct {
	name      string
	structure models.Structure
	intensity models.Intensity
	minutes   int
	rpe       int
	protocol  string
	target    zone
	parts     []part
	desc      string
	science   string
	advice    string
}

var (
	easyRun = workout{
		name: "Endurance Fondamentale", structure: models.StructureSteady, intensity: models.IntensityLow,
		minutes: 45, rpe: 3, protocol: catalog.RunSteady, target: zoneEasy,
		parts:   []part{{45, zoneEasy}},
		desc:    "Footing en aisance respiratoire totale.",
		science: "Développe la densité mitochondriale et la capillarisation sans coût de récupération.",
		advice:  "Placez-la le lendemain d'une séance intense.",
	}
	fartlek = workout{
		name: "Fartlek 30/30", structure: models.StructureInterval, intensity: models.IntensityMedium,
		minutes: 45, rpe: 7, protocol: catalog.RunIntervalShort, target: zoneInterval,
		parts:   []part{{15, zoneEasy}, {15, zoneInterval}, {15, zoneEasy}},
		desc:    "Alternance 30 secondes vite / 30 secondes lent, sans chronomètre strict.",
		science: "Première exposition à la vitesse : recrutement des fibres rapides avec une charge modérée.",
		advice:  "Gardez au moins 48h avant la sortie longue.",
	}
	hillsAdapt = workout{
		name: "Renforcement Côtes", structure: models.StructureHills, intensity: models.IntensityHigh,
		minutes: 40, rpe: 8, protocol: catalog.RunHills, target: zoneEffort,
		desc:    "Montées courtes et dynamiques, récupération en descente.",
		science: "La pente impose la force sans l'impact de la vitesse : tendons et mollets se renforcent.",
		advice:  "Évitez de la coller à une séance jambes.",
	}
	pyramid = workout{
		name: "Pyramide Fartlek", structure: models.StructurePyramid, intensity: models.IntensityMedium,
		minutes: 45, rpe: 7, protocol: catalog.RunPyramid, target: zoneThreshold,
		parts:   []part{{15, zoneEasy}, {20, zoneThreshold}, {10, zoneEasy}},
		desc:    "Paliers 1-2-3-2-1 minutes avec récupération égale.",
		science: "Apprend à changer de rythme et habitue le corps à tamponner le lactate.",
		advice:  "Séance clé de la semaine, arrivez reposé.",
	}
	vmaShort = workout{
		name: "VMA Courte 30/30", structure: models.StructureInterval, intensity: models.IntensityHigh,
		minutes: 50, rpe: 8, protocol: catalog.RunIntervalShort, target: zoneInterval,
		parts:   []part{{20, zoneEasy}, {20, zoneInterval}, {10, zoneEasy}},
		desc:    "Deux blocs de 30/30 à allure VMA.",
		science: "Élève la consommation maximale d'oxygène par accumulation de temps proche de VO2max.",
		advice:  "Jamais la veille d'une sortie longue.",
	}
	thresholdSplit = workout{
		name: "Seuil Fractionné", structure: models.StructureThreshold, intensity: models.IntensityHigh,
		minutes: 60, rpe: 8, protocol: catalog.RunThreshold, target: zoneThreshold,
		parts:   []part{{20, zoneEasy}, {24, zoneThreshold}, {16, zoneEasy}},
		desc:    "Trois blocs de 8 minutes au seuil.",
		science: "Repousse le seuil lactique : vous tiendrez plus longtemps une allure rapide.",
		advice:  "Séance clé, 48h de récupération derrière.",
	}
	hillsQuality = workout{
		name: "Côtes", structure: models.StructureHills, intensity: models.IntensityHigh,
		minutes: 45, rpe: 8, protocol: catalog.RunHills, target: zoneEffort,
		desc:    "Côtes de 30 à 45 secondes, montée explosive.",
		science: "Puissance et économie de course : la foulée devient plus réactive.",
		advice:  "Évitez de la coller à une séance jambes.",
	}
	vmaLong = workout{
		name: "VMA Longue", structure: models.StructureInterval, intensity: models.IntensityHigh,
		minutes: 55, rpe: 9, protocol: catalog.RunIntervalLong, target: zoneInterval,
		parts:   []part{{20, zoneEasy}, {25, zoneInterval}, {10, zoneEasy}},
		desc:    "Fractions de 1000 m à 95% de VMA.",
		science: "Temps passé à VO2max maximal : le stimulus le plus puissant pour la vitesse spécifique.",
		advice:  "La séance la plus dure du cycle, dormez bien la veille.",
	}
	tempo = workout{
		name: "Tempo Continu", structure: models.StructureSteady, intensity: models.IntensityMedium,
		minutes: 50, rpe: 7, protocol: catalog.RunTempo, target: zoneThreshold,
		parts:   []part{{50, zoneThreshold}},
		desc:    "Un bloc continu à allure seuil.",
		science: "Améliore la clairance du lactate et la tolérance mentale à l'effort soutenu.",
		advice:  "Régularité avant tout.",
	}
	halfPace = workout{
		name: "Allure Semi", structure: models.StructureThreshold, intensity: models.IntensityHigh,
		minutes: 60, rpe: 7, protocol: catalog.RunRacePace, target: zoneRace,
		parts:   []part{{20, zoneEasy}, {30, zoneRace}, {10, zoneEasy}},
		desc:    "Blocs à l'allure visée le jour J.",
		science: "Spécificité : le corps mémorise l'allure cible et son coût énergétique.",
		advice:  "Testez votre ravitaillement de course.",
	}
	marathonPace = workout{
		name: "Allure Marathon", structure: models.StructureSteady, intensity: models.IntensityMedium,
		minutes: 75, rpe: 6, protocol: catalog.RunRacePace, target: zoneRace,
		parts:   []part{{15, zoneEasy}, {50, zoneRace}, {10, zoneEasy}},
		desc:    "Longs blocs à l'allure marathon.",
		science: "Habitue l'organisme à utiliser les graisses à allure course.",
		advice:  "Répétez gels et boissons du jour J.",
	}
	recoveryRun = workout{
		name: "Footing Récupération", structure: models.StructureSteady, intensity: models.IntensityLow,
		minutes: 40, rpe: 2, protocol: catalog.RunRecovery, target: zoneEasy,
		parts:   []part{{40, zoneEasy}},
		desc:    "Footing très lent, au feeling.",
		science: "Augmente le flux sanguin pour évacuer les déchets sans ajouter de stress.",
		advice:  "Le lendemain de la sortie longue ou de la séance clé.",
	}
	wakeUp = workout{
		name: "Réveil Neuromusculaire", structure: models.StructureInterval, intensity: models.IntensityLow,
		minutes: 20, rpe: 3, protocol: catalog.RunActivation, target: zoneRace,
		parts:   []part{{20, zoneEasy}},
		desc:    "Footing court avec quelques accélérations.",
		science: "Maintient la réactivité nerveuse sans entamer les réserves.",
		advice:  "Trois jours avant la course.",
	}
	runEngine = workout{
		name: "Run Engine", structure: models.StructureInterval, intensity: models.IntensityHigh,
		minutes: 55, rpe: 7, protocol: catalog.RunEngine, target: zoneRace,
		parts:   []part{{15, zoneEasy}, {30, zoneRace}, {10, zoneEasy}},
		desc:    "Kilomètres à l'allure Hyrox avec récupération courte.",
		science: "Reproduit la succession de 8 x 1 km du format Hyrox.",
		advice:  "Séance course de référence de la semaine.",
	}
	runEngineBase = workout{
		name: "Run Engine Aérobie", structure: models.StructureSteady, intensity: models.IntensityMedium,
		minutes: 50, rpe: 5, protocol: catalog.RunSteady, target: zoneEasy,
		parts:   []part{{50, zoneEasy}},
		desc:    "Footing long et régulier pour construire le moteur.",
		science: "La base aérobie conditionne la récupération entre les stations.",
		advice:  "Ne cherchez pas la vitesse.",
	}
	bonusRun = workout{
		name: "Footing Bonus", structure: models.StructureSteady, intensity: models.IntensityLow,
		minutes: 40, rpe: 2, protocol: catalog.RunRecovery, target: zoneEasy,
		parts:   []part{{40, zoneEasy}},
		desc:    "Volume facile supplémentaire.",
		science: "Du volume aérobie à faible coût pour soutenir les WODs.",
		advice:  "Peut se doubler avec une séance de musculation.",
	}
)

// adaptationCycle is indexed by week % 3.
var adaptationCycle = []workout{pyramid, fartlek, hillsAdapt}

// qualityCycle returns the developmental quality rotation of a distance,
// indexed by week modulo its length.
func qualityCycle(d models.Distance) []workout {
	switch d {
	case models.Distance5K:
		return []workout{vmaLong, vmaShort, thresholdSplit}
	case models.DistanceHalf:
		return []workout{halfPace, thresholdSplit, tempo}
	case models.DistanceMarathon:
		return []workout{marathonPace, tempo, thresholdSplit}
	default:
		return []workout{vmaLong, vmaShort, thresholdSplit, hillsQuality}
	}
}

// distance sums the estimated kilometres of a workout's parts.
func (w workout) distance(p models.PaceSet) (string, float64) {
	if len(w.parts) == 0 {
		return "Varié", 0
	}
	km := 0.0
	for _, pt := range w.parts {
		km += pace.Distance(pt.minutes, pt.zone.value(p))
	}
	return pace.FormatDistance(km), math.Round(km*10) / 10
}

package models

import "fmt"

// Distance is the target race of a plan.
type Distance string

const (
	Distance5K       Distance = "5k"
	Distance10K      Distance = "10k"
	DistanceHalf     Distance = "21k"
	DistanceMarathon Distance = "42k"
	DistanceHyrox    Distance = "hyrox"
)

// hyroxPaceKm is the distance used to derive running paces from a hyrox
// finish time: 8 km of running take roughly half of the race.
const hyroxPaceKm = 16.0

// Km returns the race distance in kilometres used by the pace model.
func (d Distance) Km() float64 {
	switch d {
	case Distance5K:
		return 5
	case DistanceHalf:
		return 21.0975
	case DistanceMarathon:
		return 42.195
	case DistanceHyrox:
		return hyroxPaceKm
	default:
		return 10
	}
}

// Label returns the display name of the race.
func (d Distance) Label() string {
	switch d {
	case Distance5K:
		return "5 KM"
	case DistanceHalf:
		return "SEMI-MARATHON"
	case DistanceMarathon:
		return "MARATHON"
	case DistanceHyrox:
		return "HYROX"
	default:
		return "10 KM"
	}
}

// RaceDistance is the printable competition distance.
func (d Distance) RaceDistance() string {
	switch d {
	case DistanceHyrox:
		return "8 km + 8 stations"
	case DistanceHalf:
		return "21.1 km"
	case DistanceMarathon:
		return "42.2 km"
	default:
		return fmt.Sprintf("%.0f km", d.Km())
	}
}

// Valid reports whether d is a known distance.
func (d Distance) Valid() bool {
	switch d {
	case Distance5K, Distance10K, DistanceHalf, DistanceMarathon, DistanceHyrox:
		return true
	}
	return false
}

// StrengthFocus selects the gym programme.
type StrengthFocus string

const (
	FocusForce         StrengthFocus = "force"
	FocusHypertrophy   StrengthFocus = "hypertrophy"
	FocusStreetWorkout StrengthFocus = "street_workout"
)

func (f StrengthFocus) Valid() bool {
	switch f {
	case FocusForce, FocusHypertrophy, FocusStreetWorkout:
		return true
	}
	return false
}

// Category is the broad kind of a session.
type Category string

const (
	CategoryRun      Category = "run"
	CategoryStrength Category = "strength"
	CategoryHyrox    Category = "hyrox"
)

type Structure string

const (
	StructureSteady    Structure = "steady"
	StructureInterval  Structure = "interval"
	StructureThreshold Structure = "threshold"
	StructureHills     Structure = "hills"
	StructurePyramid   Structure = "pyramid"
)

type Intensity string

const (
	IntensityLow    Intensity = "low"
	IntensityMedium Intensity = "medium"
	IntensityHigh   Intensity = "high"
)

// Session tags used by the scheduler.
const (
	TagLegs       = "legs"
	TagLong       = "long"
	TagRace       = "race"
	TagActivation = "activation"
	TagEngine     = "engine"
	TagBonus      = "bonus"
	TagStrides    = "strides"
)

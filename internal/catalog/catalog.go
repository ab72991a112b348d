// Package catalog holds the static library of running protocols, gym splits
// and hyrox workouts that sessions are assembled from.
package catalog

import (
	_ "embed"
	"fmt"
	"sync"

	"github.com/claude/clab/internal/models"
	"gopkg.in/yaml.v3"
)

//go:embed protocols.yaml
var protocolsYAML []byte

// Run protocol keys.
const (
	RunSteady        = "steady"
	RunIntervalShort = "interval_short"
	RunIntervalLong  = "interval_long"
	RunPyramid       = "pyramid"
	RunThreshold     = "threshold"
	RunTempo         = "tempo"
	RunRacePace      = "race_pace"
	RunHills         = "hills"
	RunLong          = "long_run"
	RunRecovery      = "recovery"
	RunActivation    = "activation"
	RunEngine        = "run_engine"
)

// Catalog is the parsed protocol library.
type Catalog struct {
	Run      map[string][]models.ExerciseTemplate                          `yaml:"run" json:"run"`
	Strength map[models.StrengthFocus]map[string][]models.ExerciseTemplate `yaml:"strength" json:"strength"`
	Hyrox    map[string][]models.ExerciseTemplate                          `yaml:"hyrox" json:"hyrox"`
}

var (
	defaultOnce sync.Once
	defaultCat  *Catalog
)

// Default returns the embedded catalog. A malformed embed is a build defect
// and panics.
func Default() *Catalog {
	defaultOnce.Do(func() {
		c, err := Parse(protocolsYAML)
		if err != nil {
			panic(fmt.Sprintf("catalog: embedded protocols: %v", err))
		}
		defaultCat = c
	})
	return defaultCat
}

// Parse decodes a protocol library and checks every entry is usable.
func Parse(data []byte) (*Catalog, error) {
	var c Catalog
	if err := yaml.Unmarshal(data, &c); err != nil {
		return nil, fmt.Errorf("parsing protocols: %w", err)
	}
	for key, list := range c.Run {
		if err := checkList("run."+key, list); err != nil {
			return nil, err
		}
	}
	for focus, splits := range c.Strength {
		for key, list := range splits {
			if err := checkList(fmt.Sprintf("strength.%s.%s", focus, key), list); err != nil {
				return nil, err
			}
		}
	}
	for key, list := range c.Hyrox {
		if err := checkList("hyrox."+key, list); err != nil {
			return nil, err
		}
	}
	return &c, nil
}

func checkList(path string, list []models.ExerciseTemplate) error {
	if len(list) == 0 {
		return fmt.Errorf("%s: empty protocol", path)
	}
	for i, e := range list {
		if e.Name == "" {
			return fmt.Errorf("%s[%d]: missing name", path, i)
		}
		if e.RPE < 1 || e.RPE > 10 {
			return fmt.Errorf("%s[%d] %s: rpe %d out of range", path, i, e.Name, e.RPE)
		}
	}
	return nil
}

// RunProtocol returns a copy of a running protocol. Unknown keys return nil.
func (c *Catalog) RunProtocol(key string) []models.ExerciseTemplate {
	return clone(c.Run[key])
}

// StrengthSplit returns a copy of a gym split.
func (c *Catalog) StrengthSplit(focus models.StrengthFocus, split string) []models.ExerciseTemplate {
	return clone(c.Strength[focus][split])
}

// HyroxWorkout returns a copy of a hyrox workout.
func (c *Catalog) HyroxWorkout(key string) []models.ExerciseTemplate {
	return clone(c.Hyrox[key])
}

func clone(list []models.ExerciseTemplate) []models.ExerciseTemplate {
	if list == nil {
		return nil
	}
	out := make([]models.ExerciseTemplate, len(list))
	copy(out, list)
	return out
}

// Package automation runs scripted scenarios: a sequence of scene
// configurations applied to one simulator, each stepped for a while.
package automation

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"

	"cogentcore.org/core/math32"
	"github.com/mohammed-7/habitat-sim/internal/config"
	"github.com/mohammed-7/habitat-sim/internal/sim"
	"gopkg.in/yaml.v3"
)

var ErrEmptyScenario = errors.New("automation: scenario has no steps")

type Scenario struct {
	Name        string         `yaml:"name"`
	Description string         `yaml:"description"`
	Steps       []ScenarioStep `yaml:"steps"`
}

// ScenarioStep starts from Preset ("dataset/name") or Config (a yaml file)
// or the default configuration, in that order, and applies the overrides
// that are set.
type ScenarioStep struct {
	Preset        string  `yaml:"preset"`
	Config        string  `yaml:"config"`
	Scene         string  `yaml:"scene"`
	Headless      *bool   `yaml:"headless"`
	EnablePhysics *bool   `yaml:"enable_physics"`
	PhysicsConfig string  `yaml:"physics_config"`
	Width         int     `yaml:"width"`
	Height        int     `yaml:"height"`
	Seed          *uint32 `yaml:"seed"`

	Duration   float64 `yaml:"duration"`
	Dt         float64 `yaml:"dt"`
	Objects    int     `yaml:"objects"`
	DropHeight float32 `yaml:"drop_height"`
}

// StepResult describes the simulator after a step ran. Reused is set when
// the step's configuration matched the previous one and no scene was loaded.
type StepResult struct {
	Index       int
	Scene       string
	SceneID     int
	SceneGraphs int
	Reused      bool
	Objects     int
	WorldTime   float64
}

func LoadScenario(path string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var scenario Scenario
	if err := yaml.Unmarshal(data, &scenario); err != nil {
		return nil, fmt.Errorf("parse scenario %s: %w", path, err)
	}
	if len(scenario.Steps) == 0 {
		return nil, ErrEmptyScenario
	}
	return &scenario, nil
}

// Configuration builds the simulator configuration of the step.
func (st ScenarioStep) Configuration() (*config.SimulatorConfiguration, error) {
	var cfg *config.SimulatorConfiguration
	switch {
	case st.Preset != "":
		dataset, name, _ := strings.Cut(st.Preset, "/")
		cfg = config.GetPreset(dataset, name)
		if cfg == nil {
			return nil, fmt.Errorf("unknown preset %q", st.Preset)
		}
	case st.Config != "":
		loaded, err := config.Load(st.Config)
		if err != nil {
			return nil, err
		}
		cfg = loaded
	default:
		cfg = config.DefaultConfig()
	}

	if st.Scene != "" {
		cfg.Scene.ID = st.Scene
	}
	if st.Headless != nil {
		cfg.CreateRenderer = !*st.Headless
	}
	if st.EnablePhysics != nil {
		cfg.EnablePhysics = *st.EnablePhysics
	}
	if st.PhysicsConfig != "" {
		cfg.PhysicsConfigFile = st.PhysicsConfig
	}
	if st.Width > 0 {
		cfg.Width = st.Width
	}
	if st.Height > 0 {
		cfg.Height = st.Height
	}
	return cfg, nil
}

// RunScenario builds a simulator from the first step and reconfigures it for
// every later one. The simulator is returned open so callers can inspect or
// record it; the caller closes it.
func RunScenario(ctx context.Context, scenario *Scenario, opts ...sim.Option) (*sim.Simulator, []StepResult, error) {
	if scenario == nil || len(scenario.Steps) == 0 {
		return nil, nil, ErrEmptyScenario
	}

	var s *sim.Simulator
	results := make([]StepResult, 0, len(scenario.Steps))
	for i, step := range scenario.Steps {
		cfg, err := step.Configuration()
		if err != nil {
			return s, results, fmt.Errorf("step %d: %w", i+1, err)
		}

		graphsBefore := 0
		if s == nil {
			s, err = sim.New(ctx, cfg, opts...)
		} else {
			graphsBefore = len(s.SceneIDs())
			err = s.Reconfigure(ctx, cfg)
		}
		if err != nil {
			return s, results, fmt.Errorf("step %d: %w", i+1, err)
		}
		if step.Seed != nil {
			s.Seed(*step.Seed)
		}

		sceneID := s.ActiveSceneID()
		for n := 0; n < step.Objects; n++ {
			id := s.AddObject(0, sceneID)
			if id == sim.IDUndefined {
				break
			}
			s.SetTranslation(math32.Vec3(float32(n), step.DropHeight, 0), id, sceneID)
		}

		if step.Duration > 0 {
			dt := step.Dt
			if dt <= 0 {
				dt = sim.DefaultStepDt
			}
			if err := s.Run(ctx, dt, step.Duration, nil); err != nil {
				return s, results, fmt.Errorf("step %d: %w", i+1, err)
			}
		}

		results = append(results, StepResult{
			Index:       i,
			Scene:       cfg.Scene.ID,
			SceneID:     sceneID,
			SceneGraphs: len(s.SceneIDs()),
			Reused:      i > 0 && len(s.SceneIDs()) == graphsBefore,
			Objects:     len(s.ExistingObjectIDs(sceneID)),
			WorldTime:   s.WorldTime(),
		})
	}
	return s, results, nil
}

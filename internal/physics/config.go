package physics

import (
	"fmt"
	"os"

	"cogentcore.org/core/math32"
	"gopkg.in/yaml.v3"
)

const (
	DefaultTimestep     = 1.0 / 240.0
	DefaultMaxSubsteps  = 64
	DefaultIntegrator   = "semi_implicit_euler"
	DefaultObjectMass   = 1.0
	DefaultObjectExtent = 0.1
)

// ObjectTemplate is one entry of the object library. Objects [0, n) of the
// library can be instanced.
type ObjectTemplate struct {
	Name        string     `yaml:"name"`
	Mesh        string     `yaml:"mesh"`
	Mass        float64    `yaml:"mass"`
	HalfExtents [3]float32 `yaml:"half_extents"`
	Restitution float64    `yaml:"restitution"`
}

func (o ObjectTemplate) Bounds() math32.Box3 {
	e := o.HalfExtents
	return math32.B3(-e[0], -e[1], -e[2], e[0], e[1], e[2])
}

type Config struct {
	Timestep    float64          `yaml:"timestep"`
	MaxSubsteps int              `yaml:"max_substeps"`
	Gravity     [3]float32       `yaml:"gravity"`
	Integrator  string           `yaml:"integrator"`
	Objects     []ObjectTemplate `yaml:"objects"`
}

func DefaultConfig() *Config {
	return &Config{
		Timestep:    DefaultTimestep,
		MaxSubsteps: DefaultMaxSubsteps,
		Gravity:     [3]float32{0, -9.8, 0},
		Integrator:  DefaultIntegrator,
	}
}

func (c *Config) GravityVector() math32.Vector3 {
	return math32.Vec3(c.Gravity[0], c.Gravity[1], c.Gravity[2])
}

// LoadConfig reads a physics scene config. Missing object masses and extents
// are filled with defaults.
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse physics config %s: %w", path, err)
	}
	for i := range cfg.Objects {
		o := &cfg.Objects[i]
		if o.Mass <= 0 {
			o.Mass = DefaultObjectMass
		}
		if o.HalfExtents == [3]float32{} {
			o.HalfExtents = [3]float32{DefaultObjectExtent, DefaultObjectExtent, DefaultObjectExtent}
		}
	}
	if cfg.Timestep <= 0 {
		return nil, fmt.Errorf("physics config %s: timestep must be positive, got %g", path, cfg.Timestep)
	}
	return cfg, nil
}

func SaveConfig(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

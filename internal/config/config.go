package config

import (
	"errors"
	"fmt"
	"maps"
	"os"

	"gopkg.in/yaml.v3"
)

const (
	DefaultWidth         = 640
	DefaultHeight        = 480
	DefaultAgentID       = 0
	DefaultCameraUUID    = "rgba_camera"
	DefaultSceneUp       = "0,1,0"
	DefaultSceneFront    = "0,0,-1"
	DefaultSceneUnit     = 1.0
	DefaultPhysicsConfig = "data/default.phys_scene_config.yaml"
)

// SceneConfiguration locates the scene asset. Filepaths holds optional
// per-role overrides such as "mesh" and "house".
type SceneConfiguration struct {
	Dataset        string            `yaml:"dataset"`
	ID             string            `yaml:"id"`
	Filepaths      map[string]string `yaml:"filepaths,omitempty"`
	SceneUpDir     string            `yaml:"scene_up_dir"`
	SceneFrontDir  string            `yaml:"scene_front_dir"`
	SceneScaleUnit float64           `yaml:"scene_scale_unit"`
}

func (s SceneConfiguration) Equal(o SceneConfiguration) bool {
	return s.Dataset == o.Dataset &&
		s.ID == o.ID &&
		maps.Equal(s.Filepaths, o.Filepaths) &&
		s.SceneUpDir == o.SceneUpDir &&
		s.SceneFrontDir == o.SceneFrontDir &&
		s.SceneScaleUnit == o.SceneScaleUnit
}

// Filepath returns the override for role, if any.
func (s SceneConfiguration) Filepath(role string) (string, bool) {
	p, ok := s.Filepaths[role]
	return p, ok
}

type SimulatorConfiguration struct {
	Scene             SceneConfiguration `yaml:"scene"`
	DefaultAgentID    int                `yaml:"default_agent_id"`
	DefaultCameraUUID string             `yaml:"default_camera_uuid"`
	GPUDeviceID       int                `yaml:"gpu_device_id"`
	Width             int                `yaml:"width"`
	Height            int                `yaml:"height"`
	CompressTextures  bool               `yaml:"compress_textures"`
	CreateRenderer    bool               `yaml:"create_renderer"`
	EnablePhysics     bool               `yaml:"enable_physics"`
	PhysicsConfigFile string             `yaml:"physics_config_file"`
}

// Equal compares every field, including the scene file path map. A nil
// receiver equals only a nil argument.
func (c *SimulatorConfiguration) Equal(o *SimulatorConfiguration) bool {
	if c == nil || o == nil {
		return c == o
	}
	return c.Scene.Equal(o.Scene) &&
		c.DefaultAgentID == o.DefaultAgentID &&
		c.DefaultCameraUUID == o.DefaultCameraUUID &&
		c.GPUDeviceID == o.GPUDeviceID &&
		c.Width == o.Width &&
		c.Height == o.Height &&
		c.CompressTextures == o.CompressTextures &&
		c.CreateRenderer == o.CreateRenderer &&
		c.EnablePhysics == o.EnablePhysics &&
		c.PhysicsConfigFile == o.PhysicsConfigFile
}

// Clone returns a deep copy so the stored snapshot cannot be mutated through
// the caller's map.
func (c *SimulatorConfiguration) Clone() *SimulatorConfiguration {
	if c == nil {
		return nil
	}
	out := *c
	if c.Scene.Filepaths != nil {
		out.Scene.Filepaths = maps.Clone(c.Scene.Filepaths)
	}
	return &out
}

var (
	ErrInvalidSize   = errors.New("config: framebuffer size must be positive")
	ErrInvalidDevice = errors.New("config: gpu device id must not be negative")
)

func (c *SimulatorConfiguration) Validate() error {
	if c.GPUDeviceID < 0 {
		return fmt.Errorf("%w: %d", ErrInvalidDevice, c.GPUDeviceID)
	}
	if c.CreateRenderer && (c.Width <= 0 || c.Height <= 0) {
		return fmt.Errorf("%w: %dx%d", ErrInvalidSize, c.Width, c.Height)
	}
	return nil
}

func DefaultConfig() *SimulatorConfiguration {
	return &SimulatorConfiguration{
		Scene: SceneConfiguration{
			SceneUpDir:     DefaultSceneUp,
			SceneFrontDir:  DefaultSceneFront,
			SceneScaleUnit: DefaultSceneUnit,
		},
		DefaultAgentID:    DefaultAgentID,
		DefaultCameraUUID: DefaultCameraUUID,
		Width:             DefaultWidth,
		Height:            DefaultHeight,
		CreateRenderer:    true,
		PhysicsConfigFile: DefaultPhysicsConfig,
	}
}

func Load(path string) (*SimulatorConfiguration, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	return cfg, nil
}

func Save(path string, cfg *SimulatorConfiguration) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

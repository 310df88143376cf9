package assets

import (
	"github.com/mohammed-7/habitat-sim/internal/config"
	"github.com/mohammed-7/habitat-sim/internal/pathutil"
)

const (
	HouseExtension       = ".house"
	SemanticMeshSuffix   = "_semantic.ply"
	defaultUnitsToMeters = 1.0
)

// Info describes one asset file and the frame it is authored in.
type Info struct {
	Type     Type
	Filepath string
	Up       string
	Front    string
	Units    float64
}

func FromPath(path string) Info {
	return Info{Type: Classify(path), Filepath: path, Units: defaultUnitsToMeters}
}

// Descriptor is the set of files a scene configuration resolves to.
type Descriptor struct {
	Scene            Info
	HousePath        string
	SemanticMeshPath string
}

// Resolve derives the mesh, house and semantic mesh paths from cfg. Explicit
// "mesh" and "house" file paths override the derived ones.
func Resolve(cfg config.SceneConfiguration) Descriptor {
	mesh := cfg.ID
	if p, ok := cfg.Filepath("mesh"); ok {
		mesh = p
	}
	house := pathutil.ChangeExtension(mesh, HouseExtension)
	if p, ok := cfg.Filepath("house"); ok {
		house = p
	}

	info := FromPath(mesh)
	info.Up = cfg.SceneUpDir
	info.Front = cfg.SceneFrontDir
	if cfg.SceneScaleUnit > 0 {
		info.Units = cfg.SceneScaleUnit
	}
	return Descriptor{
		Scene:            info,
		HousePath:        house,
		SemanticMeshPath: pathutil.RemoveExtension(house) + SemanticMeshSuffix,
	}
}

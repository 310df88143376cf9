package assets

import (
	"fmt"
	"image/color"
	"os"

	"cogentcore.org/core/math32"
	"gopkg.in/yaml.v3"
)

// SceneFile is the yaml scene format: one static shell plus instanced
// drawables.
type SceneFile struct {
	Name    string        `yaml:"name"`
	Bounds  [6]float32    `yaml:"bounds"`
	Color   [3]uint8      `yaml:"color"`
	Objects []SceneObject `yaml:"objects"`
}

type SceneObject struct {
	Mesh        string     `yaml:"mesh"`
	Position    [3]float32 `yaml:"position"`
	Rotation    [3]float32 `yaml:"rotation"`
	HalfExtents [3]float32 `yaml:"half_extents"`
	ObjectID    uint32     `yaml:"object_id"`
	Color       [3]uint8   `yaml:"color"`
}

func (o SceneObject) bounds() math32.Box3 {
	e := o.HalfExtents
	if e == [3]float32{} {
		e = [3]float32{0.5, 0.5, 0.5}
	}
	return math32.B3(-e[0], -e[1], -e[2], e[0], e[1], e[2])
}

// rotationQuat reads Rotation as euler angles in degrees.
func (o SceneObject) rotationQuat() math32.Quat {
	r := o.Rotation
	return math32.NewQuatEuler(math32.Vec3(r[0], r[1], r[2]).MulScalar(math32.DegToRadFactor))
}

func (f *SceneFile) shellBounds() math32.Box3 {
	b := f.Bounds
	return math32.B3(b[0], b[1], b[2], b[3], b[4], b[5])
}

func rgba(c [3]uint8) color.RGBA {
	if c == [3]uint8{} {
		return color.RGBA{R: 200, G: 200, B: 200, A: 255}
	}
	return color.RGBA{R: c[0], G: c[1], B: c[2], A: 255}
}

func ReadSceneFile(path string) (*SceneFile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var f SceneFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("parse scene %s: %w", path, err)
	}
	return &f, nil
}

func WriteSceneFile(path string, f *SceneFile) error {
	data, err := yaml.Marshal(f)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

package sensor

import (
	"fmt"
	"maps"
	"strconv"
)

type Type int

const (
	TypeNone Type = iota
	TypeColor
	TypeDepth
	TypeNormal
	TypeSemantic
	TypePath
	TypeGoal
	TypeForce
	TypeTensor
	TypeText
)

var typeNames = [...]string{"none", "color", "depth", "normal", "semantic", "path", "goal", "force", "tensor", "text"}

func (t Type) String() string {
	if t < 0 || int(t) >= len(typeNames) {
		return fmt.Sprintf("Type(%d)", int(t))
	}
	return typeNames[t]
}

func ParseType(s string) (Type, error) {
	for i, name := range typeNames {
		if name == s {
			return Type(i), nil
		}
	}
	return TypeNone, fmt.Errorf("unknown sensor type: %s", s)
}

type ObservationSpaceType int

const (
	SpaceNone ObservationSpaceType = iota
	SpaceTensor
	SpaceText
)

type DataType int

const (
	DTUint8 DataType = iota
	DTUint32
	DTFloat32
)

// Spec configures a sensor. Resolution is H x W.
type Spec struct {
	UUID             string            `yaml:"uuid"`
	Type             Type              `yaml:"type"`
	Subtype          string            `yaml:"subtype"`
	Parameters       map[string]string `yaml:"parameters"`
	Position         [3]float32        `yaml:"position"`
	Orientation      [3]float32        `yaml:"orientation"`
	Resolution       [2]int            `yaml:"resolution"`
	Channels         int               `yaml:"channels"`
	Encoding         string            `yaml:"encoding"`
	ObservationSpace string            `yaml:"observation_space"`
	GPU2GPUTransfer  bool              `yaml:"gpu2gpu_transfer"`
}

func DefaultSpec() *Spec {
	return &Spec{
		UUID:    "rgba_camera",
		Type:    TypeColor,
		Subtype: "pinhole",
		Parameters: map[string]string{
			"near": "0.01",
			"far":  "1000",
			"hfov": "90",
		},
		Position:   [3]float32{0, 1.5, 0},
		Resolution: [2]int{84, 84},
		Channels:   4,
		Encoding:   "rgba_uint8",
	}
}

func (s *Spec) Equal(o *Spec) bool {
	if s == nil || o == nil {
		return s == o
	}
	return s.UUID == o.UUID &&
		s.Type == o.Type &&
		s.Subtype == o.Subtype &&
		maps.Equal(s.Parameters, o.Parameters) &&
		s.Position == o.Position &&
		s.Orientation == o.Orientation &&
		s.Resolution == o.Resolution &&
		s.Channels == o.Channels &&
		s.Encoding == o.Encoding &&
		s.ObservationSpace == o.ObservationSpace &&
		s.GPU2GPUTransfer == o.GPU2GPUTransfer
}

// Float parses parameter name, falling back to def when absent.
func (s *Spec) Float(name string, def float32) (float32, error) {
	raw, ok := s.Parameters[name]
	if !ok {
		return def, nil
	}
	v, err := strconv.ParseFloat(raw, 32)
	if err != nil {
		return def, fmt.Errorf("%w: %s=%q", ErrInvalidParameter, name, raw)
	}
	return float32(v), nil
}

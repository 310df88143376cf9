package sensor

import (
	"fmt"

	"cogentcore.org/core/math32"
	"github.com/mohammed-7/habitat-sim/internal/gfx"
	"github.com/mohammed-7/habitat-sim/internal/scene"
)

// Simulator is the part of the simulator a sensor reads from.
type Simulator interface {
	Renderer() *gfx.Renderer
	ActiveSceneGraph() (*scene.SceneGraph, error)
	ActiveSemanticSceneGraph() (*scene.SceneGraph, error)
}

// Observation holds one reading. Only the buffer matching the sensor type is
// filled; Shape describes it.
type Observation struct {
	Color    []uint8
	Depth    []float32
	ObjectID []uint32
	Shape    []int
}

type ObservationSpace struct {
	SpaceType ObservationSpaceType
	DataType  DataType
	Shape     []int
}

// Sensor is implemented by *Base and *PinholeCamera only.
type Sensor interface {
	Spec() *Spec
	Node() *scene.Node
	FramebufferSize() gfx.Size
	SetTransformationFromSpec()

	IsVisualSensor() bool
	SetProjectionMatrix(cam *gfx.RenderCamera)
	Observation(sim Simulator, obs *Observation) error
	ObservationSpace(space *ObservationSpace) bool
	DepthUnprojection() (math32.Vector2, bool)

	HasRenderTarget() bool
	BindRenderTarget(tgt *gfx.RenderTarget) error
	RenderTarget() (*gfx.RenderTarget, error)

	sealed()
}

// Base is a non-visual sensor and the shared part of every sensor.
type Base struct {
	node *scene.Node
	spec *Spec
	tgt  *gfx.RenderTarget
}

var _ Sensor = (*Base)(nil)

// NewBase attaches a sensor to node. The node is marked as a sensor node.
func NewBase(node *scene.Node, spec *Spec) *Base {
	b := &Base{node: node, spec: spec}
	node.SetType(scene.NodeSensor)
	node.AddFeature(b)
	b.SetTransformationFromSpec()
	return b
}

func (b *Base) sealed() {}

func (b *Base) Spec() *Spec       { return b.spec }
func (b *Base) Node() *scene.Node { return b.node }

// FramebufferSize converts the H x W resolution to W x H.
func (b *Base) FramebufferSize() gfx.Size {
	return gfx.Size{W: b.spec.Resolution[1], H: b.spec.Resolution[0]}
}

// SetTransformationFromSpec places the node at the spec position, then rotates
// it about X, Y and Z by the spec orientation in radians.
func (b *Base) SetTransformationFromSpec() {
	b.node.SetTranslation(math32.Vec3(b.spec.Position[0], b.spec.Position[1], b.spec.Position[2]))
	b.node.SetRotation(math32.Quat{W: 1})
	o := b.spec.Orientation
	b.node.RotateXLocal(o[0])
	b.node.RotateYLocal(o[1])
	b.node.RotateLocal(math32.Vec3(0, 0, 1), o[2])
}

func (b *Base) IsVisualSensor() bool                      { return false }
func (b *Base) SetProjectionMatrix(cam *gfx.RenderCamera) {}
func (b *Base) DepthUnprojection() (math32.Vector2, bool) { return math32.Vector2{}, false }

func (b *Base) Observation(sim Simulator, obs *Observation) error {
	return fmt.Errorf("%w: %s", ErrNotVisual, b.spec.UUID)
}

func (b *Base) ObservationSpace(space *ObservationSpace) bool { return false }

func (b *Base) HasRenderTarget() bool { return b.tgt != nil }

// BindRenderTarget fails unless tgt has exactly the sensor framebuffer size.
func (b *Base) BindRenderTarget(tgt *gfx.RenderTarget) error {
	if tgt == nil {
		return fmt.Errorf("%w: %s", ErrNoRenderTarget, b.spec.UUID)
	}
	if got, want := tgt.FramebufferSize(), b.FramebufferSize(); got != want {
		return fmt.Errorf("%w: target %v, sensor %v", ErrRenderTargetSize, got, want)
	}
	b.tgt = tgt
	return nil
}

func (b *Base) RenderTarget() (*gfx.RenderTarget, error) {
	if b.tgt == nil {
		return nil, fmt.Errorf("%w: %s", ErrNoRenderTarget, b.spec.UUID)
	}
	return b.tgt, nil
}

// NewRenderTarget allocates a target sized for s. Depth sensors get a target
// that unprojects on readback.
func NewRenderTarget(s Sensor) *gfx.RenderTarget {
	if s.Spec().Type == TypeDepth {
		if unproj, ok := s.DepthUnprojection(); ok {
			return gfx.NewRenderTarget(s.FramebufferSize(), &unproj)
		}
	}
	return gfx.NewRenderTarget(s.FramebufferSize(), nil)
}

// New builds the variant matching spec: a pinhole camera for color, depth and
// semantic pinhole specs, a non-visual sensor otherwise. node is left as it was
// when the spec parameters are invalid.
func New(node *scene.Node, spec *Spec) (Sensor, error) {
	if !isPinhole(spec) {
		return NewBase(node, spec), nil
	}
	if _, _, _, err := pinholeParameters(spec); err != nil {
		return nil, err
	}
	return NewPinholeCamera(NewBase(node, spec))
}

func isPinhole(spec *Spec) bool {
	if spec.Subtype != "pinhole" {
		return false
	}
	switch spec.Type {
	case TypeColor, TypeDepth, TypeSemantic:
		return true
	}
	return false
}

package sensor

import (
	"errors"
	"math"
	"testing"

	"cogentcore.org/core/math32"
	"github.com/mohammed-7/habitat-sim/internal/gfx"
	"github.com/mohammed-7/habitat-sim/internal/scene"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeSim struct {
	renderer *gfx.Renderer
	main     *scene.SceneGraph
	semantic *scene.SceneGraph
}

func (f *fakeSim) Renderer() *gfx.Renderer                       { return f.renderer }
func (f *fakeSim) ActiveSceneGraph() (*scene.SceneGraph, error)  { return f.main, nil }
func (f *fakeSim) ActiveSemanticSceneGraph() (*scene.SceneGraph, error) {
	if f.semantic == nil {
		return nil, errors.New("no semantic graph")
	}
	return f.semantic, nil
}

func newFakeSim() *fakeSim {
	main := scene.NewSceneGraph()
	box := main.RootNode().CreateChild()
	box.SetTranslation(math32.Vec3(0, 1.5, -5))
	d := scene.NewDrawable(box, "box", math32.B3(-1, -1, -1, 1, 1, 1), main.Drawables())
	d.ObjectID = 3
	return &fakeSim{renderer: gfx.NewRenderer(64, 48), main: main}
}

func TestDefaultSpec(t *testing.T) {
	spec := DefaultSpec()
	assert.Equal(t, "rgba_camera", spec.UUID)
	assert.Equal(t, TypeColor, spec.Type)
	assert.Equal(t, "pinhole", spec.Subtype)
	assert.Equal(t, [2]int{84, 84}, spec.Resolution)
	assert.Equal(t, [3]float32{0, 1.5, 0}, spec.Position)
	assert.Equal(t, "90", spec.Parameters["hfov"])
	assert.True(t, spec.Equal(DefaultSpec()))

	other := DefaultSpec()
	other.Parameters["far"] = "10"
	assert.False(t, spec.Equal(other))
}

func TestTypeString(t *testing.T) {
	assert.Equal(t, "depth", TypeDepth.String())
	ty, err := ParseType("semantic")
	require.NoError(t, err)
	assert.Equal(t, TypeSemantic, ty)
	_, err = ParseType("lidar")
	assert.Error(t, err)
	assert.Equal(t, 9, int(TypeText))
}

func TestFramebufferSizeSwapsResolution(t *testing.T) {
	spec := DefaultSpec()
	spec.Resolution = [2]int{480, 640}
	s := NewBase(scene.NewNode(), spec)
	assert.Equal(t, gfx.Size{W: 640, H: 480}, s.FramebufferSize())
}

func TestBindRenderTargetSizeMismatch(t *testing.T) {
	spec := DefaultSpec()
	spec.Resolution = [2]int{48, 64}
	s, err := New(scene.NewNode(), spec)
	require.NoError(t, err)

	err = s.BindRenderTarget(gfx.NewRenderTarget(gfx.Size{W: 48, H: 64}, nil))
	assert.True(t, errors.Is(err, ErrRenderTargetSize))
	assert.False(t, s.HasRenderTarget())

	_, err = s.RenderTarget()
	assert.True(t, errors.Is(err, ErrNoRenderTarget))

	var obs Observation
	err = s.Observation(newFakeSim(), &obs)
	assert.True(t, errors.Is(err, ErrNoRenderTarget), "read without target fails")

	require.NoError(t, s.BindRenderTarget(NewRenderTarget(s)))
	assert.True(t, s.HasRenderTarget())
}

func TestDepthObservation(t *testing.T) {
	spec := DefaultSpec()
	spec.UUID = "depth"
	spec.Type = TypeDepth
	spec.Resolution = [2]int{48, 64}
	spec.Parameters["near"] = "0.1"
	spec.Parameters["far"] = "100"

	root := scene.NewSceneGraph().RootNode()
	s, err := New(root.CreateChild(), spec)
	require.NoError(t, err)
	require.True(t, s.IsVisualSensor())
	require.NoError(t, s.BindRenderTarget(NewRenderTarget(s)))

	var obs Observation
	require.NoError(t, s.Observation(newFakeSim(), &obs))
	assert.Equal(t, []int{48, 64, 1}, obs.Shape)
	require.Len(t, obs.Depth, 48*64)

	center := 24*64 + 32
	assert.InDelta(t, 4.0, obs.Depth[center], 0.05)
	assert.Equal(t, float32(0), obs.Depth[0], "background unprojects to 0")
}

func TestColorObservationChannels(t *testing.T) {
	spec := DefaultSpec()
	spec.Channels = 3
	spec.Resolution = [2]int{48, 64}
	s, err := New(scene.NewNode(), spec)
	require.NoError(t, err)
	require.NoError(t, s.BindRenderTarget(NewRenderTarget(s)))

	var obs Observation
	require.NoError(t, s.Observation(newFakeSim(), &obs))
	assert.Len(t, obs.Color, 48*64*3)
	assert.Equal(t, []int{48, 64, 3}, obs.Shape)
}

func TestSemanticObservationUsesSemanticGraph(t *testing.T) {
	spec := DefaultSpec()
	spec.Type = TypeSemantic
	spec.Resolution = [2]int{48, 64}
	s, err := New(scene.NewNode(), spec)
	require.NoError(t, err)
	require.NoError(t, s.BindRenderTarget(NewRenderTarget(s)))

	sim := newFakeSim()
	var obs Observation
	assert.Error(t, s.Observation(sim, &obs))

	sim.semantic = sim.main
	require.NoError(t, s.Observation(sim, &obs))
	assert.Equal(t, uint32(3), obs.ObjectID[24*64+32])
}

func TestObservationWithoutRenderer(t *testing.T) {
	s, err := New(scene.NewNode(), DefaultSpec())
	require.NoError(t, err)
	require.NoError(t, s.BindRenderTarget(NewRenderTarget(s)))

	sim := newFakeSim()
	sim.renderer = nil
	var obs Observation
	assert.ErrorIs(t, s.Observation(sim, &obs), ErrNoRenderer)
}

func TestNonVisualSensor(t *testing.T) {
	spec := DefaultSpec()
	spec.Type = TypeForce
	spec.Subtype = ""
	s, err := New(scene.NewNode(), spec)
	require.NoError(t, err)
	assert.False(t, s.IsVisualSensor())

	_, ok := s.DepthUnprojection()
	assert.False(t, ok)
	var space ObservationSpace
	assert.False(t, s.ObservationSpace(&space))
	var obs Observation
	assert.ErrorIs(t, s.Observation(newFakeSim(), &obs), ErrNotVisual)
}

func TestPinholeDepthUnprojection(t *testing.T) {
	spec := DefaultSpec()
	spec.Parameters = map[string]string{"near": "1", "far": "3", "hfov": "90"}
	s, err := New(scene.NewNode(), spec)
	require.NoError(t, err)

	unproj, ok := s.DepthUnprojection()
	require.True(t, ok)
	// a = f/(n-f), b = fn/(n-f)
	assert.InDelta(t, -1.5, unproj.X, 1e-5)
	assert.InDelta(t, -1.5, unproj.Y, 1e-5)
}

func TestInvalidParameters(t *testing.T) {
	spec := DefaultSpec()
	spec.Parameters["hfov"] = "wide"
	_, err := New(scene.NewNode(), spec)
	assert.ErrorIs(t, err, ErrInvalidParameter)

	spec = DefaultSpec()
	spec.Parameters["far"] = "0.001"
	_, err = New(scene.NewNode(), spec)
	assert.ErrorIs(t, err, ErrInvalidParameter)

	spec = DefaultSpec()
	spec.Parameters["hfov"] = "180"
	_, err = New(scene.NewNode(), spec)
	assert.ErrorIs(t, err, ErrInvalidParameter)
}

func TestInvalidParametersLeaveNodeUntouched(t *testing.T) {
	spec := DefaultSpec()
	spec.Parameters["near"] = "oops"
	n := scene.NewNode()
	_, err := New(n, spec)
	require.ErrorIs(t, err, ErrInvalidParameter)
	assert.NotEqual(t, scene.NodeSensor, n.Type())
	assert.Empty(t, n.Features())
	assert.Equal(t, math32.Vector3{}, n.Translation())
}

func TestBindNilRenderTarget(t *testing.T) {
	s, err := New(scene.NewNode(), DefaultSpec())
	require.NoError(t, err)
	assert.ErrorIs(t, s.BindRenderTarget(nil), ErrNoRenderTarget)
	assert.False(t, s.HasRenderTarget())
}

func TestSetTransformationFromSpec(t *testing.T) {
	spec := DefaultSpec()
	spec.Orientation = [3]float32{0, math.Pi / 2, 0}
	n := scene.NewNode()
	s := NewBase(n, spec)

	assert.Equal(t, math32.Vec3(0, 1.5, 0), n.Translation())
	assert.Equal(t, scene.NodeSensor, n.Type())
	fwd := math32.Vec3(0, 0, -1).MulQuat(n.Rotation())
	assert.InDelta(t, -1, fwd.X, 1e-5)
	assert.Same(t, n, s.Node())
}

func TestSuite(t *testing.T) {
	suite := NewSuite()
	a := NewBase(scene.NewNode(), DefaultSpec())
	depthSpec := DefaultSpec()
	depthSpec.UUID = "depth"
	b := NewBase(scene.NewNode(), depthSpec)

	suite.Add(a)
	suite.Add(b)
	assert.Equal(t, 2, suite.Len())
	assert.Equal(t, []string{"depth", "rgba_camera"}, suite.UUIDs())

	got, ok := suite.Get("depth")
	require.True(t, ok)
	assert.Same(t, b, got.(*Base))

	_, ok = suite.Get("missing")
	assert.False(t, ok)

	suite.Clear()
	assert.Equal(t, 0, suite.Len())
}

package controls

import (
	"errors"
	"math"
	"testing"

	"cogentcore.org/core/math32"
	"github.com/mohammed-7/habitat-sim/internal/scene"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func assertVec(t *testing.T, want, got math32.Vector3, delta float64) {
	t.Helper()
	assert.InDelta(t, want.X, got.X, delta)
	assert.InDelta(t, want.Y, got.Y, delta)
	assert.InDelta(t, want.Z, got.Z, delta)
}

func TestDeterministicActions(t *testing.T) {
	tests := []struct {
		name   string
		amount float32
		want   math32.Vector3
	}{
		{"moveForward", 0.25, math32.Vec3(0, 0, -0.25)},
		{"moveBackward", 0.25, math32.Vec3(0, 0, 0.25)},
		{"moveLeft", 1, math32.Vec3(-1, 0, 0)},
		{"moveRight", 1, math32.Vec3(1, 0, 0)},
		{"moveUp", 2, math32.Vec3(0, 2, 0)},
		{"moveDown", 2, math32.Vec3(0, -2, 0)},
	}
	c := NewObjectControls(0)
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			n := scene.NewNode()
			require.NoError(t, c.Action(n, tt.name, tt.amount))
			assertVec(t, tt.want, n.Translation(), 1e-6)
		})
	}
}

func TestTurnThenMove(t *testing.T) {
	c := NewObjectControls(0)
	n := scene.NewNode()
	require.NoError(t, c.Action(n, "turnLeft", 90))
	require.NoError(t, c.Action(n, "moveForward", 1))
	assertVec(t, math32.Vec3(-1, 0, 0), n.Translation(), 1e-5)

	require.NoError(t, c.Action(n, "turnRight", 180))
	require.NoError(t, c.Action(n, "moveForward", 2))
	assertVec(t, math32.Vec3(1, 0, 0), n.Translation(), 1e-5)
}

func TestLookUpDown(t *testing.T) {
	c := NewObjectControls(0)
	n := scene.NewNode()
	require.NoError(t, c.Action(n, "lookUp", 30))
	require.NoError(t, c.Action(n, "lookDown", 30))
	q := n.Rotation()
	assert.InDelta(t, 1, math.Abs(float64(q.W)), 1e-6)
}

func TestUnknownAction(t *testing.T) {
	c := NewObjectControls(0)
	err := c.Action(scene.NewNode(), "jump", 1)
	assert.True(t, errors.Is(err, ErrUnknownAction))
	err = c.NoisyAction(scene.NewNode(), "jump", DefaultNoisySpec(1))
	assert.True(t, errors.Is(err, ErrUnknownAction))
}

func TestRegister(t *testing.T) {
	c := NewObjectControls(0)
	c.Register("spin", func(n *scene.Node, amount float32) { n.RotateYLocal(amount) })
	assert.Contains(t, c.Names(), "spin")
	assert.NoError(t, c.Action(scene.NewNode(), "spin", 1))
}

func TestNoisySpecValidate(t *testing.T) {
	assert.NoError(t, DefaultNoisySpec(0.25).Validate())
	assert.NoError(t, NoisyActuationSpec{Amount: 1}.Validate(), "zero value selects defaults")

	s := DefaultNoisySpec(1)
	s.Robot = "Roomba"
	assert.True(t, errors.Is(s.Validate(), ErrUnknownRobot))
	s = DefaultNoisySpec(1)
	s.Controller = "PID"
	assert.True(t, errors.Is(s.Validate(), ErrUnknownController))
	assert.Equal(t, []string{"LoCoBot", "LoCoBot-Lite"}, Robots())
}

func TestNoisyWithoutNoiseIsExact(t *testing.T) {
	c := NewObjectControls(1)
	spec := DefaultNoisySpec(0.25)
	spec.NoiseMultiplier = 0

	n := scene.NewNode()
	require.NoError(t, c.NoisyAction(n, "pyrobotNoisyMoveForward", spec))
	assertVec(t, math32.Vec3(0, 0, -0.25), n.Translation(), 1e-6)

	spec.Amount = 90
	require.NoError(t, c.NoisyAction(n, "pyrobotNoisyTurnLeft", spec))
	require.NoError(t, c.Action(n, "moveForward", 1))
	assertVec(t, math32.Vec3(-1, 0, -0.25), n.Translation(), 1e-5)
}

func TestNoisyIsSeeded(t *testing.T) {
	run := func(seed int64) math32.Vector3 {
		c := NewObjectControls(seed)
		n := scene.NewNode()
		for i := 0; i < 10; i++ {
			require.NoError(t, c.NoisyAction(n, "pyrobotNoisyMoveForward", DefaultNoisySpec(0.25)))
			require.NoError(t, c.NoisyAction(n, "pyrobotNoisyTurnRight", DefaultNoisySpec(10)))
		}
		return n.Translation()
	}
	assert.Equal(t, run(7), run(7))
	assert.NotEqual(t, run(7), run(8))

	c := NewObjectControls(3)
	a := scene.NewNode()
	require.NoError(t, c.NoisyAction(a, "pyrobotNoisyMoveForward", DefaultNoisySpec(0.25)))
	c.Seed(3)
	b := scene.NewNode()
	require.NoError(t, c.NoisyAction(b, "pyrobotNoisyMoveForward", DefaultNoisySpec(0.25)))
	assert.Equal(t, a.Translation(), b.Translation())
}

func TestNoisyMoveAlwaysProgresses(t *testing.T) {
	c := NewObjectControls(42)
	for i := 0; i < 200; i++ {
		n := scene.NewNode()
		require.NoError(t, c.NoisyAction(n, "pyrobotNoisyMoveBackward", DefaultNoisySpec(0.25)))
		// truncation keeps at least 5% of the commanded motion
		assert.Greater(t, n.Translation().Z, float32(0.25*0.05-1e-6))
	}
}

func TestTruncatedGaussianBounds(t *testing.T) {
	c := NewObjectControls(5)
	g := gauss([]float64{1}, []float64{0.04})
	for i := 0; i < 500; i++ {
		v := g.sample(c.rng, []bound{{lo: 0.9, set: true}})[0]
		assert.GreaterOrEqual(t, v, 0.9)
		assert.LessOrEqual(t, v, 1+3*0.2+1e-9)
	}
	z := gauss([]float64{0.5}, []float64{0})
	assert.Equal(t, 0.5, z.sample(c.rng, nil)[0])
}

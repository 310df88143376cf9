package physics

import (
	"math"

	"cogentcore.org/core/math32"
	"github.com/mohammed-7/habitat-sim/internal/scene"
)

// angMotionMax caps the rotation taken in one substep.
const angMotionMax = math.Pi / 4

// Body is an instanced library object. Pose and velocities are in world space.
type Body struct {
	ID       int
	Template ObjectTemplate

	Pos    math32.Vector3
	Quat   math32.Quat
	LinVel math32.Vector3
	AngVel math32.Vector3

	force  math32.Vector3
	torque math32.Vector3

	invMass    float32
	invInertia math32.Vector3

	node     *scene.Node
	drawable *scene.Drawable
	group    *scene.DrawableGroup
}

func newBody(id int, tpl ObjectTemplate) *Body {
	b := &Body{ID: id, Template: tpl, Quat: math32.Quat{W: 1}}
	if tpl.Mass > 0 {
		m := float32(tpl.Mass)
		b.invMass = 1 / m
		// solid box, half extents e: I = m/3 (e1^2 + e2^2)
		e := tpl.HalfExtents
		ix := m / 3 * (e[1]*e[1] + e[2]*e[2])
		iy := m / 3 * (e[0]*e[0] + e[2]*e[2])
		iz := m / 3 * (e[0]*e[0] + e[1]*e[1])
		b.invInertia = math32.Vec3(inv(ix), inv(iy), inv(iz))
	}
	return b
}

func inv(v float32) float32 {
	if v == 0 {
		return 0
	}
	return 1 / v
}

func conj(q math32.Quat) math32.Quat {
	return math32.Quat{X: -q.X, Y: -q.Y, Z: -q.Z, W: q.W}
}

func (b *Body) Node() *scene.Node { return b.node }

// applyForce accumulates force at relPos, an offset from the center of mass
// in world orientation.
func (b *Body) applyForce(force, relPos math32.Vector3) {
	b.force.SetAdd(force)
	b.torque.SetAdd(relPos.Cross(force))
}

func (b *Body) clearForces() {
	b.force = math32.Vector3{}
	b.torque = math32.Vector3{}
}

// angularAcceleration maps the accumulated world torque through the diagonal
// body-frame inertia.
func (b *Body) angularAcceleration() math32.Vector3 {
	local := b.torque.MulQuat(conj(b.Quat))
	local = local.Mul(b.invInertia)
	return local.MulQuat(b.Quat)
}

// stepRotation advances Quat by AngVel over step seconds.
func (b *Body) stepRotation(step float32) {
	ang := b.AngVel.Length()
	if ang < 1e-6 {
		return
	}
	if ang*step > angMotionMax {
		ang = angMotionMax / step
	}
	dq := math32.NewQuatAxisAngle(b.AngVel.Normal(), ang*step)
	b.Quat = dq.Mul(b.Quat)
	b.Quat.Normalize()
}

// sync copies the pose onto the paired scene node.
func (b *Body) sync() {
	if b.node == nil {
		return
	}
	b.node.SetTranslation(b.Pos)
	b.node.SetRotation(b.Quat)
}

// bottom is the lowest world-space y of the body's bounds.
func (b *Body) bottom() float32 {
	var m math32.Matrix4
	m.SetTransform(b.Pos, b.Quat, math32.Vec3(1, 1, 1))
	return b.Template.Bounds().MulMatrix4(&m).Min.Y
}

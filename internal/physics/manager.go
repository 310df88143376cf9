package physics

import (
	"cogentcore.org/core/math32"
	"github.com/mohammed-7/habitat-sim/internal/scene"
)

// IDUndefined is returned by AddObject when nothing was instanced.
const IDUndefined = -1

// Manager is what a simulator needs from a physics world. All object ids are
// local to one Manager.
type Manager interface {
	AddObject(libIndex int, drawables *scene.DrawableGroup) int
	RemoveObject(id int)
	ExistingObjectIDs() []int
	NumObjects() int

	ApplyForce(id int, force, relPos math32.Vector3)
	ApplyTorque(id int, torque math32.Vector3)

	SetTransformation(id int, m math32.Matrix4)
	Transformation(id int) math32.Matrix4
	SetTranslation(id int, v math32.Vector3)
	Translation(id int) math32.Vector3
	SetRotation(id int, q math32.Quat)
	Rotation(id int) math32.Quat

	StepPhysics(dt float64)
	WorldTime() float64
	Reset()
}

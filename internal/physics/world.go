package physics

import (
	"math"
	"sort"

	"cogentcore.org/core/math32"
	"github.com/mohammed-7/habitat-sim/internal/dynamo"
	"github.com/mohammed-7/habitat-sim/internal/scene"
)

// World is the reference rigid-body Manager. Bodies do not collide with each
// other; dynamic bodies rest on the floor of the static scene when one has
// been added.
type World struct {
	cfg   *Config
	integ dynamo.Integrator

	root      *scene.Node
	templates []ObjectTemplate

	bodies  map[int]*Body
	freeIDs []int
	nextID  int

	floor    float32
	hasFloor bool

	time    float64
	lastErr error
}

var _ Manager = (*World)(nil)

func NewWorld(cfg *Config) (*World, error) {
	if cfg == nil {
		cfg = DefaultConfig()
	}
	integ, err := NewIntegrator(cfg.Integrator)
	if err != nil {
		return nil, err
	}
	return &World{
		cfg:       cfg,
		integ:     integ,
		templates: append([]ObjectTemplate(nil), cfg.Objects...),
		bodies:    make(map[int]*Body),
	}, nil
}

// Init binds the world to the root node bodies are created under.
func (w *World) Init(root *scene.Node) {
	w.root = root
}

func (w *World) Config() *Config { return w.cfg }

// RegisterTemplates appends to the object library and returns the new size.
func (w *World) RegisterTemplates(tpls ...ObjectTemplate) int {
	w.templates = append(w.templates, tpls...)
	return len(w.templates)
}

func (w *World) LibrarySize() int { return len(w.templates) }

// AddStaticMesh registers static scene geometry. Its lowest point becomes the
// floor dynamic bodies rest on.
func (w *World) AddStaticMesh(node *scene.Node, bounds math32.Box3) {
	m := node.AbsoluteTransformation()
	low := bounds.MulMatrix4(&m).Min.Y
	if !w.hasFloor || low < w.floor {
		w.floor = low
	}
	w.hasFloor = true
}

func (w *World) allocID() int {
	if n := len(w.freeIDs); n > 0 {
		id := w.freeIDs[n-1]
		w.freeIDs = w.freeIDs[:n-1]
		return id
	}
	id := w.nextID
	w.nextID++
	return id
}

// AddObject instances library entry libIndex and pairs it with a drawable in
// drawables. It returns IDUndefined for an index outside the library.
func (w *World) AddObject(libIndex int, drawables *scene.DrawableGroup) int {
	if libIndex < 0 || libIndex >= len(w.templates) {
		return IDUndefined
	}
	if w.root == nil {
		w.root = scene.NewNode()
	}
	tpl := w.templates[libIndex]
	id := w.allocID()
	b := newBody(id, tpl)
	b.node = w.root.CreateChild()
	b.group = drawables
	b.drawable = scene.NewDrawable(b.node, tpl.Mesh, tpl.Bounds(), drawables)
	b.drawable.ObjectID = uint32(id)
	w.bodies[id] = b
	return id
}

func (w *World) RemoveObject(id int) {
	b, ok := w.bodies[id]
	if !ok {
		return
	}
	if b.group != nil {
		b.group.Remove(b.drawable)
	}
	b.node.RemoveFeature(b.drawable)
	b.node.Detach()
	delete(w.bodies, id)
	w.freeIDs = append(w.freeIDs, id)
}

// ExistingObjectIDs returns live ids in ascending order.
func (w *World) ExistingObjectIDs() []int {
	ids := make([]int, 0, len(w.bodies))
	for id := range w.bodies {
		ids = append(ids, id)
	}
	sort.Ints(ids)
	return ids
}

func (w *World) NumObjects() int { return len(w.bodies) }

// Body returns the live body for id.
func (w *World) Body(id int) (*Body, bool) {
	b, ok := w.bodies[id]
	return b, ok
}

func (w *World) ApplyForce(id int, force, relPos math32.Vector3) {
	if b, ok := w.bodies[id]; ok {
		b.applyForce(force, relPos)
	}
}

func (w *World) ApplyTorque(id int, torque math32.Vector3) {
	if b, ok := w.bodies[id]; ok {
		b.torque.SetAdd(torque)
	}
}

func (w *World) SetTransformation(id int, m math32.Matrix4) {
	b, ok := w.bodies[id]
	if !ok {
		return
	}
	b.Pos = math32.Vec3(m[12], m[13], m[14])
	var q math32.Quat
	q.SetFromRotationMatrix(&m)
	q.Normalize()
	b.Quat = q
	b.sync()
}

func (w *World) Transformation(id int) math32.Matrix4 {
	var m math32.Matrix4
	b, ok := w.bodies[id]
	if !ok {
		m.SetIdentity()
		return m
	}
	m.SetTransform(b.Pos, b.Quat, math32.Vec3(1, 1, 1))
	return m
}

func (w *World) SetTranslation(id int, v math32.Vector3) {
	if b, ok := w.bodies[id]; ok {
		b.Pos = v
		b.sync()
	}
}

func (w *World) Translation(id int) math32.Vector3 {
	if b, ok := w.bodies[id]; ok {
		return b.Pos
	}
	return math32.Vector3{}
}

func (w *World) SetRotation(id int, q math32.Quat) {
	if b, ok := w.bodies[id]; ok {
		q.Normalize()
		b.Quat = q
		b.sync()
	}
}

func (w *World) Rotation(id int) math32.Quat {
	if b, ok := w.bodies[id]; ok {
		return b.Quat
	}
	return math32.Quat{W: 1}
}

// substeps splits dt into fixed timestep pieces, capped at MaxSubsteps.
func (w *World) substeps(dt float64) (int, float64) {
	n := int(math.Ceil(dt/w.cfg.Timestep - 1e-9))
	if n < 1 {
		n = 1
	}
	if w.cfg.MaxSubsteps > 0 && n > w.cfg.MaxSubsteps {
		n = w.cfg.MaxSubsteps
	}
	return n, dt / float64(n)
}

// StepPhysics advances the world by dt. Forces applied since the last step act
// for the whole of dt and are then cleared.
func (w *World) StepPhysics(dt float64) {
	if dt <= 0 {
		return
	}
	n, h := w.substeps(dt)
	gravity := w.cfg.GravityVector()
	ids := w.ExistingObjectIDs()

	for i := 0; i < n; i++ {
		t := w.time + float64(i)*h
		for _, id := range ids {
			b := w.bodies[id]
			if b.invMass == 0 {
				continue
			}
			w.stepBody(b, gravity, t, h)
		}
	}

	w.time += dt
	for _, id := range ids {
		b := w.bodies[id]
		b.clearForces()
		b.sync()
	}
}

func (w *World) stepBody(b *Body, gravity math32.Vector3, t, h float64) {
	sys := dynamo.ConstantAcceleration{Acc: gravity.Add(b.force.MulScalar(b.invMass))}
	x := w.integ.Step(sys, dynamo.BodyState(b.Pos, b.LinVel), t, h)
	if !x.IsValid() {
		w.lastErr = &dynamo.StepError{ObjectID: b.ID, Time: t, State: x, Wrapped: dynamo.ErrInvalidState}
		return
	}
	b.Pos, b.LinVel = x.Position(), x.Velocity()

	b.AngVel.SetAdd(b.angularAcceleration().MulScalar(float32(h)))
	b.stepRotation(float32(h))

	if w.hasFloor {
		if pen := w.floor - b.bottom(); pen > 0 {
			b.Pos.Y += pen
			if b.LinVel.Y < 0 {
				b.LinVel.Y = -b.LinVel.Y * float32(b.Template.Restitution)
			}
		}
	}
}

// Err reports the last integration failure, if any. The offending body keeps
// its previous state.
func (w *World) Err() error { return w.lastErr }

func (w *World) WorldTime() float64 { return w.time }

// Reset rewinds world time and drops pending forces. Poses and velocities are
// kept.
func (w *World) Reset() {
	w.time = 0
	w.lastErr = nil
	for _, b := range w.bodies {
		b.clearForces()
	}
}

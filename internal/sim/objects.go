package sim

import (
	"cogentcore.org/core/math32"
	"github.com/mohammed-7/habitat-sim/internal/physics"
)

const (
	// IDUndefined is returned by AddObject when nothing was added.
	IDUndefined = physics.IDUndefined

	// NoTime is the world time reported when no physics world is bound.
	NoTime = 0.0

	DefaultStepDt = 1.0 / 60.0
)

// Object operations below are silent no-ops returning a fixed default unless a
// physics world is bound and sceneID is an allocated scene graph id.

func (s *Simulator) addressable(sceneID int) bool {
	return s.physics != nil && sceneID >= 0 && sceneID < len(s.sceneIDs)
}

// AddObject instances physics library entry libIndex and pairs it with a
// drawable in the drawables of sceneID.
func (s *Simulator) AddObject(libIndex, sceneID int) int {
	if !s.addressable(sceneID) {
		return IDUndefined
	}
	g, err := s.graph(sceneID)
	if err != nil {
		return IDUndefined
	}
	id := s.physics.AddObject(libIndex, g.Drawables())
	s.metrics.SetObjects(s.physics.NumObjects())
	return id
}

func (s *Simulator) RemoveObject(objectID, sceneID int) {
	if s.addressable(sceneID) {
		s.physics.RemoveObject(objectID)
		s.metrics.SetObjects(s.physics.NumObjects())
	}
}

// ExistingObjectIDs returns nil unless sceneID is addressable.
func (s *Simulator) ExistingObjectIDs(sceneID int) []int {
	if !s.addressable(sceneID) {
		return nil
	}
	return s.physics.ExistingObjectIDs()
}

// PhysicsObjectLibrarySize is the number of instantiable library objects of
// the last physics scene load.
func (s *Simulator) PhysicsObjectLibrarySize() int {
	if s.physics == nil {
		return 0
	}
	return s.loader.NumLibraryObjects()
}

func (s *Simulator) ApplyForce(force, relPos math32.Vector3, objectID, sceneID int) {
	if s.addressable(sceneID) {
		s.physics.ApplyForce(objectID, force, relPos)
	}
}

func (s *Simulator) ApplyTorque(torque math32.Vector3, objectID, sceneID int) {
	if s.addressable(sceneID) {
		s.physics.ApplyTorque(objectID, torque)
	}
}

func (s *Simulator) SetTransformation(m math32.Matrix4, objectID, sceneID int) {
	if s.addressable(sceneID) {
		s.physics.SetTransformation(objectID, m)
	}
}

func (s *Simulator) Transformation(objectID, sceneID int) math32.Matrix4 {
	if s.addressable(sceneID) {
		return s.physics.Transformation(objectID)
	}
	var m math32.Matrix4
	m.SetIdentity()
	return m
}

func (s *Simulator) SetTranslation(v math32.Vector3, objectID, sceneID int) {
	if s.addressable(sceneID) {
		s.physics.SetTranslation(objectID, v)
	}
}

func (s *Simulator) Translation(objectID, sceneID int) math32.Vector3 {
	if s.addressable(sceneID) {
		return s.physics.Translation(objectID)
	}
	return math32.Vector3{}
}

func (s *Simulator) SetRotation(q math32.Quat, objectID, sceneID int) {
	if s.addressable(sceneID) {
		s.physics.SetRotation(objectID, q)
	}
}

func (s *Simulator) Rotation(objectID, sceneID int) math32.Quat {
	if s.addressable(sceneID) {
		return s.physics.Rotation(objectID)
	}
	return math32.Quat{W: 1}
}

// StepWorld advances physics by dt and returns the world time.
func (s *Simulator) StepWorld(dt float64) float64 {
	if s.physics != nil {
		s.physics.StepPhysics(dt)
		s.metrics.RecordWorldStep(s.physics.NumObjects())
	}
	return s.WorldTime()
}

func (s *Simulator) WorldTime() float64 {
	if s.physics == nil {
		return NoTime
	}
	return s.physics.WorldTime()
}

// Package physics is the rigid-body world bound to a simulator's primary
// scene graph.
//
// A [World] owns an object id namespace local to itself. Bodies are
// instantiated from an object library read from a yaml config file and each
// body is paired with a drawable in the scene graph it was added against:
//
//	w := physics.NewWorld(cfg)
//	w.Init(root)
//	id := w.AddObject(0, graph.Drawables())
//	w.ApplyForce(id, math32.Vec3(0, 10, 0), math32.Vector3{})
//	w.StepPhysics(1.0 / 60.0)
//
// Linear motion is advanced by a [dynamo.Integrator] chosen by name; angular
// motion steps the orientation quaternion from angular velocity.
//
// # Reset
//
// [World.Reset] sets world time to zero and clears accumulated forces.
// Poses and velocities are left as they are.
package physics

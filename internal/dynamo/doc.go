// Package dynamo provides the state-vector primitives shared by the rigid-body
// world and its integrators.
//
// A body's linear state is packed as a [State] of six values, position then
// velocity. A [System] supplies the time derivative of that state and an
// [Integrator] advances it by one fixed substep.
//
// # Thread Safety
//
// Integrators may keep scratch buffers and are NOT safe for concurrent use.
// Each physics world owns its own instance.
package dynamo

// Package viz draws a running simulator in the terminal.
//
// [Model] is a Bubble Tea program that steps a [sim.Simulator] and shows one
// of three views:
//
//   - top: drawable footprints and object trails on a braille [Canvas]
//   - 3d: drawable bounds as an orbiting wireframe
//   - depth: a [DepthHeatmap] of the depth sensor attached to the agent
//
// # Key Bindings
//
//	Space - Pause/Resume stepping
//	R     - Reset world time
//	O     - Drop a library object
//	WASD  - Move the agent (N toggles noisy actuation)
//	Tab   - Cycle views
//	T     - Cycle color themes
//	?     - Show help overlay
package viz

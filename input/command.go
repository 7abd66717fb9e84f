// Package input merges keyboard, pointer, touch and action events into one
// unified command per simulation tick.
package input

import "github.com/go-gl/mathgl/mgl32"

// Command is the unified per-tick pilot intent. It is produced fresh by each
// Poll and never mutated afterwards; the force stage and the propulsion
// controller each consume it once.
type Command struct {
	// Move holds the lateral (X), forward (Y) and vertical (Z) axes,
	// each in [-1, 1] before the external response scale is applied.
	Move mgl32.Vec3

	// Look holds the yaw/pitch deltas for this tick. Unbounded but small;
	// pointer deltas are one-shot and already consumed from the snapshot.
	Look mgl32.Vec2

	PlasmaRequested bool
	Ascend          bool
	Descend         bool
	EmergencyCut    bool
}

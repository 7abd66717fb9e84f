// Package components defines ECS components for the scene shell.
package components

// Position is a world-space position.
type Position struct {
	X, Y, Z float32
}

// Velocity is a world-space velocity.
type Velocity struct {
	X, Y, Z float32
}

// Spin is a slow tumble applied to drifting debris.
type Spin struct {
	Angle float32 // radians
	Rate  float32 // radians per second
}

// Debris marks a scene debris entity and carries its render size.
type Debris struct {
	Size float32
}

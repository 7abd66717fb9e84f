package input

import "github.com/go-gl/mathgl/mgl32"

// Snapshot is the per-tick accumulation of raw device events. The capture
// layer (or a test) fills one in between ticks; Poll consumes it
// synchronously, so no listener ever mutates shared state mid-frame.
type Snapshot struct {
	// Held-key state, desktop mode.
	Left, Right   bool
	Forward, Back bool
	Ascend        bool
	Descend       bool

	// PointerDelta is the pointer movement accumulated since the last poll.
	// It is a one-shot value: Poll zeroes it after reading.
	PointerDelta mgl32.Vec2

	// PointerCaptured reports whether the pointer was captured when the
	// delta was accumulated. A poll before capture is a missed sample.
	PointerCaptured bool

	// Virtual joysticks, touch mode.
	MoveStick Stick
	LookStick Stick

	// Action edges.
	PlasmaToggle bool
	EmergencyCut bool
}

// Stick is a virtual joystick reading.
type Stick struct {
	Value  mgl32.Vec2
	Active bool
}

// clamped returns the stick value clamped radially to the unit disk.
// The clamp is radial, not per-axis, so diagonals keep their direction.
func (s Stick) clamped() mgl32.Vec2 {
	if l := s.Value.Len(); l > 1 {
		return s.Value.Mul(1 / l)
	}
	return s.Value
}

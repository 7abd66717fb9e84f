package game

import (
	rl "github.com/gen2brain/raylib-go/raylib"
	"github.com/go-gl/mathgl/mgl32"

	"github.com/skellen-games/gravwing/fusion"
	"github.com/skellen-games/gravwing/input"
)

// probeTouch is the one-time capability probe deciding the control mode.
// Mode never changes after this.
func probeTouch() bool {
	return rl.GetTouchPointCount() > 0
}

// captureSnapshot accumulates this frame's raw device events into the
// per-tick snapshot consumed synchronously by the aggregator.
func (g *Game) captureSnapshot() {
	switch g.aggregator.Mode() {
	case input.ModeTouch:
		g.captureTouch()
	default:
		g.captureDesktop()
	}

	// Action edges are shared across modes.
	g.snap.PlasmaToggle = rl.IsKeyPressed(rl.KeyTab)
	g.snap.EmergencyCut = rl.IsKeyPressed(rl.KeyX)

	// Gamepad attitude axes stand in for device-orientation samples on
	// desktop builds; absent a pad the filter simply never updates.
	if rl.IsGamepadAvailable(0) {
		g.filter.Offer(fusion.Sample{
			Alpha: rl.GetGamepadAxisMovement(0, rl.GamepadAxisRightX) * 30,
			Beta:  rl.GetGamepadAxisMovement(0, rl.GamepadAxisRightY) * 30,
		})
	}
}

// captureDesktop reads held keys and the pointer delta.
func (g *Game) captureDesktop() {
	g.snap.Left = rl.IsKeyDown(rl.KeyA)
	g.snap.Right = rl.IsKeyDown(rl.KeyD)
	g.snap.Forward = rl.IsKeyDown(rl.KeyW)
	g.snap.Back = rl.IsKeyDown(rl.KeyS)
	g.snap.Ascend = rl.IsKeyDown(rl.KeySpace)
	g.snap.Descend = rl.IsKeyDown(rl.KeyLeftShift)

	// Pointer deltas accumulate until the poll consumes them.
	delta := rl.GetMouseDelta()
	g.snap.PointerDelta = g.snap.PointerDelta.Add(mgl32.Vec2{delta.X, delta.Y})
	g.snap.PointerCaptured = rl.IsCursorHidden()
}

// captureTouch maps the first two touch points onto the move (left half of
// the screen) and look (right half) virtual joysticks. Stick vectors are
// measured from each side's anchor point in screen-height units.
func (g *Game) captureTouch() {
	count := rl.GetTouchPointCount()
	half := float32(rl.GetScreenWidth()) / 2
	radius := float32(rl.GetScreenHeight()) * 0.2

	g.snap.MoveStick = input.Stick{}
	g.snap.LookStick = input.Stick{}

	for i := int32(0); i < int32(count); i++ {
		p := rl.GetTouchPosition(i)
		anchorY := float32(rl.GetScreenHeight()) * 0.7
		if p.X < half {
			anchorX := half * 0.5
			g.snap.MoveStick = input.Stick{
				Value: mgl32.Vec2{
					(p.X - anchorX) / radius,
					-(p.Y - anchorY) / radius,
				},
				Active: true,
			}
		} else {
			anchorX := half * 1.5
			g.snap.LookStick = input.Stick{
				Value: mgl32.Vec2{
					(p.X - anchorX) / radius,
					(p.Y - anchorY) / radius,
				},
				Active: true,
			}
		}
	}

	g.snap.Ascend = rl.IsKeyDown(rl.KeySpace)
	g.snap.Descend = rl.IsKeyDown(rl.KeyLeftShift)
}

// handleShellKeys processes keys that belong to the shell, not the pilot.
func (g *Game) handleShellKeys() {
	if rl.IsKeyPressed(rl.KeyP) {
		g.paused = !g.paused
	}
	if rl.IsKeyPressed(rl.KeyF1) {
		g.panel.Toggle()
	}
	if rl.IsKeyPressed(rl.KeyF11) {
		rl.ToggleFullscreen()
	}

	// Click to capture the pointer, Esc releases it. Polls before capture
	// are missed look samples, not errors.
	if rl.IsMouseButtonPressed(rl.MouseButtonLeft) && !rl.IsCursorHidden() {
		rl.DisableCursor()
	}
	if rl.IsKeyPressed(rl.KeyEscape) && rl.IsCursorHidden() {
		rl.EnableCursor()
	}
}

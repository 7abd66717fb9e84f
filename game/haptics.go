package game

import (
	"log/slog"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/skellen-games/gravwing/propulsion"
)

// notifyHaptics fires gamepad rumble on drive state edges. Fire-and-forget:
// nothing is read back, and without a pad it is a no-op.
func (g *Game) notifyHaptics(drive propulsion.Snapshot) {
	if g.opts.Headless || !rl.IsGamepadAvailable(0) {
		return
	}

	// Activation commit: short, firm pulse.
	if drive.IsActive && !g.lastDrive.IsActive {
		rl.SetGamepadVibration(0, 0.6, 0.6, 0.15)
	}

	// Thermal throttle onset: longer low rumble.
	if drive.Throttling && !g.lastDrive.Throttling {
		rl.SetGamepadVibration(0, 0.3, 0.8, 0.4)
	}
}

// logOutputError reports a telemetry write failure without failing the frame.
func logOutputError(what string, err error) {
	slog.Error("telemetry output failed", "what", what, "error", err)
}

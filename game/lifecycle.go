package game

import (
	"log/slog"
	"math"

	rl "github.com/gen2brain/raylib-go/raylib"
	"github.com/go-gl/mathgl/mgl32"

	"github.com/skellen-games/gravwing/config"
	"github.com/skellen-games/gravwing/fusion"
)

// Update runs one graphical frame: capture events, advance the simulation
// with a clamped dt, and track the chase camera.
func (g *Game) Update() {
	g.handleShellKeys()
	g.captureSnapshot()

	if g.paused {
		return
	}

	// Clamp dt before anything downstream sees it; the core assumes the
	// bound as a precondition.
	dt := rl.GetFrameTime()
	if max := config.Cfg().Derived.MaxDT32; dt > max {
		dt = max
	}

	g.step(dt)

	g.cam.Update(g.body.Position, g.body.Orientation[1], dt)
}

// UpdateHeadless runs one fixed-dt tick with the scripted input profile.
// No raylib calls anywhere on this path.
func (g *Game) UpdateHeadless() {
	g.scriptSnapshot()
	g.step(config.Cfg().Derived.DT32)
}

// scriptSnapshot drives the headless profile: thrust bursts, a slow sine
// sweep on look, plasma cycling, and synthetic orientation samples. Exists
// so tuning runs and CI exercise the whole pipeline deterministically.
func (g *Game) scriptSnapshot() {
	t := g.simTime

	phase := int(t/4) % 4
	g.snap.Forward = phase == 0 || phase == 2
	g.snap.Right = phase == 1
	g.snap.Left = phase == 3
	g.snap.Ascend = phase == 2
	g.snap.Descend = false

	g.snap.PointerCaptured = true
	g.snap.PointerDelta = g.snap.PointerDelta.Add(mgl32.Vec2{
		float32(math.Sin(t*0.7)) * 6,
		float32(math.Cos(t*0.4)) * 3,
	})

	// Cycle the drive: on at 1s, off at 20s, repeat.
	cycle := math.Mod(t, 30)
	prev := math.Mod(t-float64(config.Cfg().Sim.DT), 30)
	g.snap.PlasmaToggle = (prev < 1 && cycle >= 1) || (prev < 20 && cycle >= 20)
	g.snap.EmergencyCut = false

	g.filter.Offer(fusion.Sample{
		Alpha: float32(math.Sin(t*0.3)) * 15,
		Beta:  float32(math.Cos(t*0.5)) * 10,
	})
}

// Unload flushes telemetry output and logs the session summary.
func (g *Game) Unload() {
	if err := g.output.Close(); err != nil {
		slog.Error("closing telemetry output", "error", err)
	}
	slog.Info("session ended",
		"ticks", g.tick,
		"sim_time", g.simTime,
		"baseline", g.pilot.State().Baseline,
	)
}

package game

import (
	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/skellen-games/gravwing/config"
	"github.com/skellen-games/gravwing/ui"
)

// Draw renders the scene and HUD for one frame.
func (g *Game) Draw() {
	rl.BeginDrawing()
	rl.ClearBackground(rl.Color{R: 8, G: 10, B: 18, A: 255})

	cam := rl.Camera3D{
		Position: rl.Vector3{
			X: g.cam.Position.X(),
			Y: g.cam.Position.Y(),
			Z: g.cam.Position.Z(),
		},
		Target: rl.Vector3{
			X: g.body.Position.X(),
			Y: g.body.Position.Y(),
			Z: g.body.Position.Z(),
		},
		Up:         rl.Vector3{Y: 1},
		Fovy:       60,
		Projection: rl.CameraPerspective,
	}

	rl.BeginMode3D(cam)
	g.drawScene()
	rl.EndMode3D()

	g.drawHUD()
	g.drawTuningPanel()

	rl.EndDrawing()
}

// drawTuningPanel renders the raygui sliders and pushes adjusted gains into
// the controller.
func (g *Game) drawTuningPanel() {
	if !g.panel.Visible() {
		return
	}
	drive := g.drive.Snapshot()
	t := g.panel.Draw(int32(config.Cfg().Screen.Width), ui.Tuning{
		StabilizationStrength: drive.Stabilization,
		ActivationTime:        g.drive.ActivationTime(),
		ResponseScale:         g.responseScale,
	})
	g.drive.SetStabilizationStrength(t.StabilizationStrength)
	g.drive.SetActivationTime(t.ActivationTime)
	if t.ResponseScale != g.responseScale {
		g.SetResponseScale(t.ResponseScale)
	}
}

// drawScene renders the debris field and the craft.
func (g *Game) drawScene() {
	rl.DrawGrid(40, 10)

	// Debris cubes from the ECS world.
	query := g.debrisFilter.Query()
	for query.Next() {
		pos, _, spin, debris := query.Get()
		center := rl.Vector3{X: pos.X, Y: pos.Y, Z: pos.Z}
		size := debris.Size * (0.9 + 0.1*float32(1+spin.Angle/7)) // subtle tumble shimmer
		rl.DrawCube(center, size, size, size, rl.Fade(rl.Gray, 0.8))
		rl.DrawCubeWires(center, size, size, size, rl.DarkGray)
	}

	// The craft, with a drive glow scaled by power.
	craft := rl.Vector3{
		X: g.body.Position.X(),
		Y: g.body.Position.Y(),
		Z: g.body.Position.Z(),
	}
	rl.DrawCube(craft, 2, 0.8, 3, rl.LightGray)
	rl.DrawCubeWires(craft, 2, 0.8, 3, rl.White)

	power := g.drive.Power()
	if power > 0.01 {
		glow := rl.Fade(rl.SkyBlue, 0.3+0.5*power)
		rl.DrawSphere(rl.Vector3{X: craft.X, Y: craft.Y - 0.8, Z: craft.Z}, 0.6+power, glow)
	}
}

// drawHUD polls telemetry and renders the overlay.
func (g *Game) drawHUD() {
	cfg := config.Cfg()
	g.hud.Draw(ui.HUDData{
		Drive:    g.drive.Snapshot(),
		Pilot:    g.pilot.State(),
		Mode:     g.aggregator.Mode().String(),
		Tick:     g.tick,
		FPS:      rl.GetFPS(),
		Paused:   g.paused,
		ScreenW:  int32(cfg.Screen.Width),
		ScreenH:  int32(cfg.Screen.Height),
		Response: g.responseScale,
	})
}

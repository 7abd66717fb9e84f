// Package ui renders the pilot-facing HUD. Presentation only: it polls the
// core's telemetry once per frame and never feeds anything back.
package ui

import (
	"fmt"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/skellen-games/gravwing/propulsion"
	"github.com/skellen-games/gravwing/workload"
)

// HUDData holds everything the HUD needs for one frame.
type HUDData struct {
	Drive    propulsion.Snapshot
	Pilot    workload.State
	Mode     string
	Tick     int32
	FPS      int32
	Paused   bool
	ScreenW  int32
	ScreenH  int32
	Response float32 // external response scale, shown when != 1
}

// HUD renders the heads-up display.
type HUD struct{}

// NewHUD creates a HUD renderer.
func NewHUD() *HUD {
	return &HUD{}
}

// Draw renders the HUD.
func (h *HUD) Draw(data HUDData) {
	rl.DrawText("GRAVWING", 10, 10, 20, rl.White)
	rl.DrawText(
		fmt.Sprintf("Tick: %d | FPS: %d | Mode: %s", data.Tick, data.FPS, data.Mode),
		10, 35, 16, rl.LightGray,
	)

	// Drive state line
	state := "IDLE"
	switch {
	case data.Drive.IsActivating:
		state = "SPOOLING"
	case data.Drive.IsActive:
		state = "ACTIVE"
	}
	if data.Drive.Throttling {
		state += " [THERMAL]"
	}
	rl.DrawText(
		fmt.Sprintf("Drive: %s | Mass: %.0f kg | Draw: %.0f kW",
			state, data.Drive.Mass, data.Drive.PowerConsumption),
		10, 55, 16, rl.LightGray,
	)

	// Power and heat bars
	drawBar(10, 80, 200, 14, data.Drive.Power, rl.SkyBlue, "PWR")
	heatColor := rl.Orange
	if data.Drive.Throttling {
		heatColor = rl.Red
	}
	drawBar(10, 100, 200, 14, data.Drive.Heat, heatColor, "TMP")
	drawBar(10, 120, 200, 14, data.Pilot.Stress, rl.Yellow, "WKL")

	if data.Response != 1 {
		rl.DrawText(
			fmt.Sprintf("TEMPORAL DRAG x%.2f", data.Response),
			10, 142, 16, rl.Purple,
		)
	}

	if data.Paused {
		rl.DrawText("PAUSED", data.ScreenW/2-40, data.ScreenH/2-10, 20, rl.Yellow)
	}
}

// drawBar renders a labelled horizontal gauge with value in [0, 1].
func drawBar(x, y, w, hgt int32, value float32, color rl.Color, label string) {
	if value < 0 {
		value = 0
	}
	if value > 1 {
		value = 1
	}
	rl.DrawRectangle(x+38, y, w, hgt, rl.Fade(rl.DarkGray, 0.6))
	rl.DrawRectangle(x+38, y, int32(float32(w)*value), hgt, color)
	rl.DrawRectangleLines(x+38, y, w, hgt, rl.Gray)
	rl.DrawText(label, x, y+1, 12, rl.LightGray)
}

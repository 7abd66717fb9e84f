package ui

import (
	"fmt"

	gui "github.com/gen2brain/raylib-go/raygui"
	rl "github.com/gen2brain/raylib-go/raylib"
)

// Tuning holds the live-adjustable controller gains exposed by the panel.
type Tuning struct {
	StabilizationStrength float32
	ActivationTime        float32
	ResponseScale         float32
}

// TuningPanel renders raygui sliders for the controller gains. Toggled with
// a key in the shell; hidden by default.
type TuningPanel struct {
	visible bool
}

// NewTuningPanel creates a hidden tuning panel.
func NewTuningPanel() *TuningPanel {
	return &TuningPanel{}
}

// Toggle switches panel visibility and reports the new state.
func (p *TuningPanel) Toggle() bool {
	p.visible = !p.visible
	return p.visible
}

// Visible reports whether the panel is shown.
func (p *TuningPanel) Visible() bool {
	return p.visible
}

// Draw renders the sliders and returns the possibly adjusted tuning.
func (p *TuningPanel) Draw(screenW int32, t Tuning) Tuning {
	if !p.visible {
		return t
	}

	panelX := float32(screenW - 300)
	panelY := float32(10)

	rl.DrawText("Drive Tuning", int32(panelX), int32(panelY), 20, rl.White)
	panelY += 30

	rl.DrawText("Stabilization strength", int32(panelX), int32(panelY), 14, rl.Gray)
	panelY += 18
	t.StabilizationStrength = gui.SliderBar(
		rl.Rectangle{X: panelX, Y: panelY, Width: 220, Height: 20},
		"0", "10",
		t.StabilizationStrength, 0, 10,
	)
	rl.DrawText(fmt.Sprintf("%.2f", t.StabilizationStrength), int32(panelX+230), int32(panelY+2), 16, rl.LightGray)
	panelY += 30

	rl.DrawText("Activation time (s)", int32(panelX), int32(panelY), 14, rl.Gray)
	panelY += 18
	t.ActivationTime = gui.SliderBar(
		rl.Rectangle{X: panelX, Y: panelY, Width: 220, Height: 20},
		"0.5", "10",
		t.ActivationTime, 0.5, 10,
	)
	rl.DrawText(fmt.Sprintf("%.1f", t.ActivationTime), int32(panelX+230), int32(panelY+2), 16, rl.LightGray)
	panelY += 30

	rl.DrawText("Response scale", int32(panelX), int32(panelY), 14, rl.Gray)
	panelY += 18
	t.ResponseScale = gui.SliderBar(
		rl.Rectangle{X: panelX, Y: panelY, Width: 220, Height: 20},
		"0.1", "2",
		t.ResponseScale, 0.1, 2,
	)
	rl.DrawText(fmt.Sprintf("%.2f", t.ResponseScale), int32(panelX+230), int32(panelY+2), 16, rl.LightGray)

	return t
}

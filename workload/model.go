// Package workload models pilot stress from input intensity and derives the
// adaptive sensitivity gain applied to look/move commands.
package workload

import "github.com/skellen-games/gravwing/config"

// State is the per-session workload estimate.
type State struct {
	// Stress is the low-pass filtered workload level in [0, 1].
	Stress float32

	// AdaptiveSensitivity is the gain multiplier handed to the input
	// aggregator. Higher stress lowers it to damp overcorrection.
	AdaptiveSensitivity float32

	// Baseline is the slowly learned performance baseline. It only ever
	// ratchets upward, capped by config.
	Baseline float32
}

// Model updates the workload state once per tick from the aggregator's
// instantaneous input intensity.
type Model struct {
	state State

	stressGain      float32
	stressRate      float32
	sensitivityDrop float32
	learningRate    float32
	baselineCap     float32
}

// NewModel creates a workload model from the loaded config.
func NewModel() *Model {
	cfg := config.Cfg().Workload
	m := &Model{
		stressGain:      float32(cfg.StressGain),
		stressRate:      float32(cfg.StressRate),
		sensitivityDrop: float32(cfg.SensitivityDrop),
		learningRate:    float32(cfg.LearningRate),
		baselineCap:     float32(cfg.BaselineCap),
	}
	m.state.Baseline = 1
	m.state.AdaptiveSensitivity = 1
	return m
}

// Tick advances the model by dt. Stress chases the intensity-derived target
// smoothly, never jumping; the baseline grows only while the pilot is calm.
func (m *Model) Tick(dt, intensity float32) State {
	target := intensity * m.stressGain
	if target > 1 {
		target = 1
	}
	m.state.Stress += (target - m.state.Stress) * dt * m.stressRate

	// Proficiency ratchet: grows under low stress, never decreases.
	if m.state.Stress < 0.5 {
		m.state.Baseline += m.learningRate * dt
		if m.state.Baseline > m.baselineCap {
			m.state.Baseline = m.baselineCap
		}
	}

	m.state.AdaptiveSensitivity = m.state.Baseline * (1 - m.state.Stress*m.sensitivityDrop)
	return m.state
}

// State returns the current workload state without advancing it.
func (m *Model) State() State {
	return m.state
}

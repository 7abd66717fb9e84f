// Package fusion smooths noisy device orientation samples into a stable
// three-axis attitude estimate with a constant-gain predictor-corrector.
package fusion

import (
	"github.com/go-gl/mathgl/mgl32"

	"github.com/skellen-games/gravwing/config"
)

// Sample is one raw orientation/motion reading from the device. Samples are
// transient: the filter keeps at most the latest one between ticks.
type Sample struct {
	// Orientation angles in degrees.
	Alpha, Beta, Gamma float32

	// Motion readings, carried for consumers that want the raw values.
	Acceleration mgl32.Vec3
	RotationRate mgl32.Vec3
}

// State is the fused estimate: filtered orientation and its predicted rate.
// The rate terms are advanced by prediction but never corrected; consumers
// depend on the filter's resulting response curve, so that stays as is.
type State struct {
	Pos mgl32.Vec3
	Vel mgl32.Vec3
}

// Filter fuses orientation samples arriving on the device's own schedule
// into the per-tick estimate. The three axes are filtered independently.
type Filter struct {
	state State

	q float32 // process noise
	r float32 // measurement noise

	pending    Sample
	hasPending bool
}

// NewFilter creates a filter with the configured noise constants.
func NewFilter() *Filter {
	cfg := config.Cfg().Fusion
	return &Filter{
		q: float32(cfg.ProcessNoise),
		r: float32(cfg.MeasurementNoise),
	}
}

// Offer stores a sample for the next Update. Arrivals between ticks are
// last-write-wins; earlier unconsumed samples are dropped.
func (f *Filter) Offer(s Sample) {
	f.pending = s
	f.hasPending = true
}

// Update advances the estimate by dt and folds in the pending sample, if
// any. With no sample the state just coasts on its predicted rate, which is
// zero at session start: a denied sensor leaves the estimate frozen.
func (f *Filter) Update(dt float32) State {
	// Predict
	f.state.Pos = f.state.Pos.Add(f.state.Vel.Mul(dt))

	// Correct with the fixed gain k = Q/(Q+R). Q and R are constants, so
	// the gain never re-estimates.
	if f.hasPending {
		k := f.q / (f.q + f.r)
		meas := mgl32.Vec3{f.pending.Alpha, f.pending.Beta, f.pending.Gamma}
		f.state.Pos = f.state.Pos.Add(meas.Sub(f.state.Pos).Mul(k))
		f.hasPending = false
	}

	return f.state
}

// State returns the current estimate without advancing it.
func (f *Filter) State() State {
	return f.state
}

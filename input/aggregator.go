package input

import (
	"github.com/go-gl/mathgl/mgl32"

	"github.com/skellen-games/gravwing/config"
)

// Mode selects which device channels feed the aggregator. It is decided once
// at startup from a capability probe and fixed for the session.
type Mode uint8

const (
	ModeDesktop Mode = iota
	ModeTouch
)

// String returns the mode name.
func (m Mode) String() string {
	if m == ModeTouch {
		return "touch"
	}
	return "desktop"
}

// Aggregator merges the per-tick snapshot into a Command. It owns the touch
// stick persistence (spring-back on release) and the input intensity metric
// consumed by the workload model.
type Aggregator struct {
	mode Mode

	lookSensitivity float32
	keyWeight       float32
	intensityMax    float32
	touchDeadzone   float32

	// adaptive is the workload-derived sensitivity multiplier, updated
	// once per tick after the model runs.
	adaptive float32

	// responseScale is an externally injected gain on look/move magnitude
	// (the encounter system's temporal lag factor). The aggregator applies
	// it without knowing its source.
	responseScale float32

	// Touch stick values persist between ticks while the finger is down.
	moveHeld mgl32.Vec2
	lookHeld mgl32.Vec2

	lastIntensity float32
}

// NewAggregator creates an aggregator for the given mode using the loaded
// config's input parameters.
func NewAggregator(mode Mode) *Aggregator {
	cfg := config.Cfg().Input
	return &Aggregator{
		mode:            mode,
		lookSensitivity: float32(cfg.LookSensitivity),
		keyWeight:       float32(cfg.KeyWeight),
		intensityMax:    float32(cfg.IntensityMax),
		touchDeadzone:   float32(cfg.TouchDeadzone),
		adaptive:        1,
		responseScale:   1,
	}
}

// Mode returns the aggregator's fixed control mode.
func (a *Aggregator) Mode() Mode {
	return a.mode
}

// SetAdaptiveSensitivity sets the workload-derived look/move gain multiplier.
func (a *Aggregator) SetAdaptiveSensitivity(s float32) {
	a.adaptive = s
}

// SetResponseScale sets the external response gain. 1 is nominal.
func (a *Aggregator) SetResponseScale(s float32) {
	a.responseScale = s
}

// Poll merges the snapshot into a fresh Command. Called once per tick.
// The snapshot's pointer delta is zeroed after being read.
func (a *Aggregator) Poll(snap *Snapshot) Command {
	var cmd Command
	switch a.mode {
	case ModeTouch:
		cmd = a.pollTouch(snap)
	default:
		cmd = a.pollDesktop(snap)
	}

	cmd.PlasmaRequested = snap.PlasmaToggle
	cmd.Ascend = snap.Ascend
	cmd.Descend = snap.Descend
	cmd.EmergencyCut = snap.EmergencyCut

	a.lastIntensity = a.intensity(snap)

	// Pointer deltas are a one-shot per-frame signal.
	snap.PointerDelta = mgl32.Vec2{}

	return cmd
}

// pollDesktop maps held-key state directly to signed unit axes and scales
// the pointer delta. No smoothing between press state and axis value.
func (a *Aggregator) pollDesktop(snap *Snapshot) Command {
	var cmd Command
	cmd.Move = mgl32.Vec3{
		axis(snap.Right, snap.Left),
		axis(snap.Forward, snap.Back),
		axis(snap.Ascend, snap.Descend),
	}.Mul(a.responseScale)

	// A poll before pointer capture is a missed sample, not an error.
	if snap.PointerCaptured {
		gain := a.lookSensitivity * a.adaptive * a.responseScale
		cmd.Look = snap.PointerDelta.Mul(gain)
	}
	return cmd
}

// pollTouch reads the two virtual joysticks. Stick values persist while a
// finger holds them and spring back to zero on release.
func (a *Aggregator) pollTouch(snap *Snapshot) Command {
	if snap.MoveStick.Active {
		a.moveHeld = deadzone(snap.MoveStick.clamped(), a.touchDeadzone)
	} else {
		a.moveHeld = mgl32.Vec2{}
	}
	if snap.LookStick.Active {
		a.lookHeld = deadzone(snap.LookStick.clamped(), a.touchDeadzone)
	} else {
		a.lookHeld = mgl32.Vec2{}
	}

	var cmd Command
	cmd.Move = mgl32.Vec3{
		a.moveHeld.X(),
		a.moveHeld.Y(),
		axis(snap.Ascend, snap.Descend),
	}.Mul(a.responseScale)
	cmd.Look = a.lookHeld.Mul(a.adaptive * a.responseScale)
	return cmd
}

// Intensity returns the instantaneous input intensity computed by the last
// Poll: held keys x weight, plus look-delta magnitude, plus touch vector
// magnitudes, clamped to the configured ceiling.
func (a *Aggregator) Intensity() float32 {
	return a.lastIntensity
}

func (a *Aggregator) intensity(snap *Snapshot) float32 {
	var sum float32
	for _, held := range []bool{
		snap.Left, snap.Right, snap.Forward, snap.Back,
		snap.Ascend, snap.Descend,
	} {
		if held {
			sum += a.keyWeight
		}
	}
	if snap.PointerCaptured {
		sum += snap.PointerDelta.Len()
	}
	sum += a.moveHeld.Len() + a.lookHeld.Len()
	if sum > a.intensityMax {
		sum = a.intensityMax
	}
	return sum
}

// axis converts a positive/negative key pair into a signed unit value.
func axis(pos, neg bool) float32 {
	var v float32
	if pos {
		v++
	}
	if neg {
		v--
	}
	return v
}

// deadzone zeroes a stick vector whose magnitude is below the threshold.
func deadzone(v mgl32.Vec2, threshold float32) mgl32.Vec2 {
	if v.Len() < threshold {
		return mgl32.Vec2{}
	}
	return v
}

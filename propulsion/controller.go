// Package propulsion owns the plasma drive state machine: power ramp, mass
// reduction, thermal accumulation and throttling, and gyroscopic
// stabilization of the controlled body.
package propulsion

import (
	"log/slog"
	"math"

	"github.com/go-gl/mathgl/mgl32"

	"github.com/skellen-games/gravwing/config"
	"github.com/skellen-games/gravwing/physics"
)

// pow32 is float32 exponentiation for the per-tick damping factor.
func pow32(base, exp float32) float32 {
	return float32(math.Pow(float64(base), float64(exp)))
}

// State machine thresholds. Commits are level-triggered: a power level
// oscillating around a threshold re-triggers the transition, and no
// hysteresis is applied.
const (
	commitHigh = 0.95 // activating -> active above this
	commitLow  = 0.05 // -> idle below this while ramping down

	// Stabilization only runs with meaningful power behind it.
	minStabilizePower = 0.1

	// Thermal throttle: above this fraction of max heat the target power
	// is cut by the factor every tick the condition holds.
	throttleFraction = 0.9
	throttleFactor   = 0.95

	// Yaw keeps half authority so the pilot can still turn under
	// stabilization.
	yawAuthority = 0.5

	// Seconds between repeated thermal warnings in the log.
	warnInterval = 1.0
)

// Params holds the drive's tuning constants.
type Params struct {
	ActivationTime        float32 // ramp time constant, seconds
	BaseMass              float32
	MassReduction         float32 // fraction of base mass removed at full power
	MaxHeat               float32
	HeatRate              float32 // heat gain scale, x power^2 per second
	CoolRate              float32 // exponential cooling rate per second
	StabilizationStrength float32
	MaxTorque             float32
	Damping               float32 // angular velocity retained per second
	RatedDraw             float32 // consumption at full power
}

// DefaultParams builds Params from the loaded config.
func DefaultParams() Params {
	p := config.Cfg().Propulsion
	c := config.Cfg().Craft
	return Params{
		ActivationTime:        float32(p.ActivationTime),
		BaseMass:              float32(c.BaseMass),
		MassReduction:         float32(p.MassReduction),
		MaxHeat:               float32(p.MaxHeat),
		HeatRate:              float32(p.HeatRate),
		CoolRate:              float32(p.CoolRate),
		StabilizationStrength: float32(p.StabilizationStrength),
		MaxTorque:             float32(p.MaxTorque),
		Damping:               float32(p.Damping),
		RatedDraw:             float32(p.RatedDraw),
	}
}

// Snapshot is the telemetry view of the drive, polled once per frame by the
// presentation layer.
type Snapshot struct {
	Power            float32 // [0, 1]
	TargetPower      float32 // [0, 1]
	Heat             float32 // fraction of max heat, [0, 1]
	IsActive         bool
	IsActivating     bool
	Throttling       bool
	Mass             float32
	PowerConsumption float32
	Stabilization    float32 // effective counter-torque gain
}

// Controller is the plasma drive state machine. It holds the only
// authoritative power/heat state; the body's mass and the applied
// stabilization torque are derived from it every tick.
type Controller struct {
	params Params
	body   physics.RigidBody

	power       float32
	targetPower float32
	activating  bool
	active      bool
	heat        float32
	throttling  bool

	warnIn float32 // countdown to the next thermal warning
}

// New creates a controller driving the given body. A nil body is allowed:
// physics writes are skipped until one is attached.
func New(body physics.RigidBody, params Params) *Controller {
	return &Controller{params: params, body: body}
}

// AttachBody sets the controlled body. Passing nil detaches it.
func (c *Controller) AttachBody(body physics.RigidBody) {
	c.body = body
}

// Activate starts the power ramp toward full. No-op while activating or
// already active.
func (c *Controller) Activate() {
	if c.activating || c.active {
		return
	}
	c.targetPower = 1
	c.activating = true
}

// Deactivate starts the ramp back down. No-op when already idle.
func (c *Controller) Deactivate() {
	if !c.activating && !c.active && c.targetPower == 0 && c.power == 0 {
		return
	}
	c.targetPower = 0
	c.activating = false
	c.active = false
}

// EmergencyShutdown zeroes the drive instantly, bypassing the ramp, and
// resets the body's mass. The only non-interpolated operation here; always
// caller-invoked, never auto-triggered.
func (c *Controller) EmergencyShutdown() {
	c.power = 0
	c.targetPower = 0
	c.activating = false
	c.active = false
	c.throttling = false
	if c.body != nil {
		c.body.SetMass(c.params.BaseMass)
	}
}

// Update advances the drive by dt and applies mass and stabilization torque
// to the body. dt is assumed already clamped by the frame loop.
func (c *Controller) Update(dt float32) {
	c.ramp(dt)
	c.updateHeat(dt)
	c.applyMass()
	c.stabilize(dt)
}

// ramp advances power toward target with a first-order approach and commits
// the level-triggered state transitions.
func (c *Controller) ramp(dt float32) {
	c.power += (c.targetPower - c.power) / c.params.ActivationTime * dt
	c.power = mgl32.Clamp(c.power, 0, 1)

	if c.activating && c.power > commitHigh {
		c.active = true
		c.activating = false
		slog.Info("plasma drive online", "power", c.power)
	}
	if !c.activating && c.active && c.power < commitLow {
		c.active = false
		slog.Info("plasma drive offline", "power", c.power)
	}
}

// updateHeat accumulates heat quadratically in power, cools exponentially,
// and applies the continuous thermal throttle. Overheat is a recoverable
// warning condition, never a hard stop.
func (c *Controller) updateHeat(dt float32) {
	c.heat += c.power * c.power * c.params.HeatRate * dt
	c.heat -= c.heat * c.params.CoolRate * dt
	c.heat = mgl32.Clamp(c.heat, 0, c.params.MaxHeat)

	c.warnIn -= dt
	c.throttling = c.heat > throttleFraction*c.params.MaxHeat
	if c.throttling {
		// Cumulative cut: repeats every tick the regime holds.
		c.targetPower *= throttleFactor
		if c.warnIn <= 0 {
			slog.Warn("thermal throttle engaged",
				"heat", c.heat,
				"max_heat", c.params.MaxHeat,
				"target_power", c.targetPower,
			)
			c.warnIn = warnInterval
		}
	}
}

// applyMass writes the derived mass to the body. Mass is a pure function of
// power; at zero power it degrades to the base mass.
func (c *Controller) applyMass() {
	if c.body == nil {
		return
	}
	c.body.SetMass(c.Mass())
}

// stabilize applies the gyroscopic counter-torque and damps the body's
// angular velocity. Skipped below the minimum power and without a body.
func (c *Controller) stabilize(dt float32) {
	if c.body == nil || c.power < minStabilizePower {
		return
	}

	w := c.body.AngularVelocity()
	strength := c.params.StabilizationStrength
	torque := mgl32.Vec3{
		-w.X() * strength,
		-w.Y() * strength * yawAuthority, // preserve pilot turn authority
		-w.Z() * strength,
	}

	// Cap magnitude by uniform scaling so direction is preserved.
	if l := torque.Len(); l > c.params.MaxTorque {
		torque = torque.Mul(c.params.MaxTorque / l)
	}
	c.body.AddTorque(torque)

	factor := pow32(c.params.Damping, dt)
	c.body.SetAngularVelocity(w.Mul(factor))
}

// Mass returns base mass reduced in proportion to current power.
func (c *Controller) Mass() float32 {
	return c.params.BaseMass * (1 - c.power*c.params.MassReduction)
}

// Power returns the current plasma power in [0, 1].
func (c *Controller) Power() float32 {
	return c.power
}

// Snapshot returns the telemetry view of the drive.
func (c *Controller) Snapshot() Snapshot {
	return Snapshot{
		Power:            c.power,
		TargetPower:      c.targetPower,
		Heat:             c.heat / c.params.MaxHeat,
		IsActive:         c.active,
		IsActivating:     c.activating,
		Throttling:       c.throttling,
		Mass:             c.Mass(),
		PowerConsumption: c.power * c.params.RatedDraw,
		Stabilization:    c.params.StabilizationStrength,
	}
}

// SetStabilizationStrength adjusts the counter-torque gain at runtime.
func (c *Controller) SetStabilizationStrength(s float32) {
	c.params.StabilizationStrength = s
}

// ActivationTime returns the current ramp time constant.
func (c *Controller) ActivationTime() float32 {
	return c.params.ActivationTime
}

// SetActivationTime adjusts the ramp time constant at runtime.
func (c *Controller) SetActivationTime(t float32) {
	if t > 0 {
		c.params.ActivationTime = t
	}
}

package propulsion

import (
	"math"
	"math/rand"
	"testing"

	"github.com/go-gl/mathgl/mgl32"

	"github.com/skellen-games/gravwing/physics"
)

func testParams() Params {
	return Params{
		ActivationTime:        1.0,
		BaseMass:              1000,
		MassReduction:         0.6,
		MaxHeat:               100,
		HeatRate:              50,
		CoolRate:              0.1,
		StabilizationStrength: 2,
		MaxTorque:             50,
		Damping:               0.92,
		RatedDraw:             850,
	}
}

// recordingBody captures what the controller writes without integrating.
type recordingBody struct {
	angVel mgl32.Vec3
	torque mgl32.Vec3
	mass   float32
}

func (b *recordingBody) AngularVelocity() mgl32.Vec3     { return b.angVel }
func (b *recordingBody) SetAngularVelocity(w mgl32.Vec3) { b.angVel = w }
func (b *recordingBody) AddForce(mgl32.Vec3)             {}
func (b *recordingBody) AddTorque(t mgl32.Vec3)          { b.torque = b.torque.Add(t) }
func (b *recordingBody) Mass() float32                   { return b.mass }
func (b *recordingBody) SetMass(m float32)               { b.mass = m }

func TestRampMonotonicAndConverges(t *testing.T) {
	p := testParams()
	p.MaxHeat = 1e9 // keep the throttle out of this test
	c := New(nil, p)
	c.Activate()

	const dt = 0.01
	bound := float64(p.ActivationTime) * math.Log(20) * 1.02

	prev := float32(0)
	elapsed := 0.0
	for c.Power() <= 0.95 {
		c.Update(dt)
		elapsed += dt
		if c.Power() < prev {
			t.Fatalf("power decreased during ramp: %f -> %f", prev, c.Power())
		}
		prev = c.Power()
		if elapsed > bound {
			t.Fatalf("power %f did not reach 0.95 within %.2fs", c.Power(), bound)
		}
	}

	// Keep running well past convergence; power must never exceed 1.
	for i := 0; i < 2000; i++ {
		c.Update(dt)
		if c.Power() > 1 {
			t.Fatalf("power exceeded 1: %f", c.Power())
		}
	}
}

func TestMassIsPureFunctionOfPower(t *testing.T) {
	// Two controllers with different histories but equal power must derive
	// the same mass.
	a := New(nil, testParams())
	a.Activate()
	for i := 0; i < 50; i++ {
		a.Update(0.016)
	}
	a.power = 0.5

	b := New(nil, testParams())
	b.power = 0.5

	if a.Mass() != b.Mass() {
		t.Errorf("mass differs for equal power: %f vs %f", a.Mass(), b.Mass())
	}
	want := float32(1000 * (1 - 0.5*0.6))
	if a.Mass() != want {
		t.Errorf("mass = %f, want %f", a.Mass(), want)
	}
}

func TestMassDegradesToBaseAtZeroPower(t *testing.T) {
	body := &recordingBody{}
	c := New(body, testParams())
	c.Update(0.016)
	if body.mass != testParams().BaseMass {
		t.Errorf("idle mass = %f, want base mass %f", body.mass, testParams().BaseMass)
	}
}

func TestHeatStaysBounded(t *testing.T) {
	p := testParams()
	c := New(nil, p)
	rng := rand.New(rand.NewSource(7))

	for i := 0; i < 20000; i++ {
		switch rng.Intn(20) {
		case 0:
			c.Activate()
		case 1:
			c.Deactivate()
		}
		dt := rng.Float32() * 0.033
		c.Update(dt)

		if c.heat < 0 || c.heat > p.MaxHeat {
			t.Fatalf("heat %f left [0, %f] at step %d", c.heat, p.MaxHeat, i)
		}
	}
}

func TestThermalThrottleIsContinuous(t *testing.T) {
	p := testParams()
	c := New(nil, p)
	c.Activate()

	// Hold heat in the throttle regime; target must strictly decrease
	// every tick, not once.
	for i := 0; i < 10; i++ {
		c.heat = 0.95 * p.MaxHeat
		before := c.targetPower
		c.Update(0.016)
		if c.targetPower >= before {
			t.Fatalf("tick %d: target %f did not decrease from %f", i, c.targetPower, before)
		}
		if !c.throttling {
			t.Fatalf("tick %d: throttling flag not set", i)
		}
	}
}

func TestStabilizationTorqueClamped(t *testing.T) {
	angVels := []mgl32.Vec3{
		{100, -50, 80},
		{1e6, 1e6, 1e6},
		{0.01, 0, 0},
	}
	for _, w := range angVels {
		p := testParams()
		body := &recordingBody{angVel: w}
		c := New(body, p)
		c.power = 1
		c.Update(0.016)

		if mag := body.torque.Len(); mag > p.MaxTorque*1.0001 {
			t.Errorf("angVel %v: torque magnitude %f exceeds cap %f", w, mag, p.MaxTorque)
		}
	}
}

func TestStabilizationPreservesTorqueDirection(t *testing.T) {
	p := testParams()
	body := &recordingBody{angVel: mgl32.Vec3{100, 0, 0}}
	c := New(body, p)
	c.power = 1
	c.Update(0.016)

	if body.torque.X() >= 0 {
		t.Errorf("counter-torque should oppose spin, got %v", body.torque)
	}
	if body.torque.Y() != 0 || body.torque.Z() != 0 {
		t.Errorf("torque should stay on the spun axis, got %v", body.torque)
	}
}

func TestYawKeepsHalfAuthority(t *testing.T) {
	p := testParams()
	p.MaxTorque = 1e9 // no clamp; compare raw gains
	body := &recordingBody{angVel: mgl32.Vec3{1, 1, 0}}
	c := New(body, p)
	c.power = 1
	c.Update(0.016)

	pitch := -body.torque.X()
	yaw := -body.torque.Y()
	if math.Abs(float64(yaw-pitch/2)) > 1e-5 {
		t.Errorf("yaw torque %f should be half of pitch torque %f", yaw, pitch)
	}
}

func TestStabilizationSkippedBelowMinPower(t *testing.T) {
	body := &recordingBody{angVel: mgl32.Vec3{5, 5, 5}}
	c := New(body, testParams())
	c.power = 0.05
	c.Update(0.016)

	if body.torque != (mgl32.Vec3{}) {
		t.Errorf("torque applied below minimum power: %v", body.torque)
	}
	if body.angVel != (mgl32.Vec3{5, 5, 5}) {
		t.Errorf("angular velocity damped below minimum power: %v", body.angVel)
	}
}

func TestAngularVelocityDamping(t *testing.T) {
	p := testParams()
	body := &recordingBody{angVel: mgl32.Vec3{0, 0, 2}}
	c := New(body, p)
	c.power = 1

	dt := float32(0.5)
	c.Update(dt)

	want := 2 * float32(math.Pow(float64(p.Damping), float64(dt)))
	if math.Abs(float64(body.angVel.Z()-want)) > 1e-5 {
		t.Errorf("damped angular velocity = %f, want %f", body.angVel.Z(), want)
	}
}

func TestActivationEndToEnd(t *testing.T) {
	// Three time constants at dt=0.1: power ~ 1-e^-3 and the drive commits.
	p := testParams()
	c := New(nil, p)
	c.Activate()

	if !c.Snapshot().IsActivating {
		t.Fatal("activate did not set the activating flag")
	}

	for i := 0; i < 30; i++ {
		c.Update(0.1)
	}

	snap := c.Snapshot()
	if math.Abs(float64(snap.Power)-(1-math.Exp(-3))) > 0.02 {
		t.Errorf("power after 3 time constants = %f, want ~%f", snap.Power, 1-math.Exp(-3))
	}
	if !snap.IsActive || snap.IsActivating {
		t.Errorf("drive should have committed to active: %+v", snap)
	}
}

func TestDeactivateRampsDown(t *testing.T) {
	c := New(nil, testParams())
	c.Activate()
	for i := 0; i < 60; i++ {
		c.Update(0.1)
	}
	if !c.Snapshot().IsActive {
		t.Fatal("drive never became active")
	}

	c.Deactivate()
	if snap := c.Snapshot(); snap.IsActive || snap.IsActivating {
		t.Errorf("deactivate should clear both flags immediately: %+v", snap)
	}
	for i := 0; i < 100; i++ {
		c.Update(0.1)
	}
	if p := c.Power(); p > 0.05 {
		t.Errorf("power did not ramp down: %f", p)
	}
}

func TestEmergencyShutdownMidRamp(t *testing.T) {
	body := &recordingBody{}
	p := testParams()
	c := New(body, p)
	c.Activate()

	for c.Power() < 0.6 {
		c.Update(0.05)
	}

	c.EmergencyShutdown()

	snap := c.Snapshot()
	if snap.Power != 0 || snap.TargetPower != 0 {
		t.Errorf("shutdown left power %f target %f", snap.Power, snap.TargetPower)
	}
	if snap.IsActive || snap.IsActivating {
		t.Errorf("shutdown left state flags set: %+v", snap)
	}
	if body.mass != p.BaseMass {
		t.Errorf("shutdown left mass %f, want base %f", body.mass, p.BaseMass)
	}

	// No further ramp without a fresh activate.
	c.Update(0.1)
	if c.Power() != 0 {
		t.Errorf("power crept back after shutdown: %f", c.Power())
	}
}

func TestActivateIsNoOpWhileRunning(t *testing.T) {
	c := New(nil, testParams())
	c.Activate()
	c.Update(0.1)
	power := c.Power()

	c.Activate() // no-op: already activating
	if c.targetPower != 1 || c.Power() != power {
		t.Error("second activate changed state")
	}
}

func TestPowerConsumptionScalesWithPower(t *testing.T) {
	p := testParams()
	c := New(nil, p)
	c.power = 0.5
	if got := c.Snapshot().PowerConsumption; got != 0.5*p.RatedDraw {
		t.Errorf("consumption = %f, want %f", got, 0.5*p.RatedDraw)
	}
}

func TestNilBodyIsSafe(t *testing.T) {
	c := New(nil, testParams())
	c.Activate()
	for i := 0; i < 100; i++ {
		c.Update(0.016)
	}
	c.EmergencyShutdown()
}

func TestRealBodyIntegration(t *testing.T) {
	// A spun-up drive over a real body should bleed off tumble.
	body := physics.NewBody(1000, 0.4)
	body.SetAngularVelocity(mgl32.Vec3{1.5, -1, 0.5})

	p := testParams()
	p.ActivationTime = 0.2
	p.MaxHeat = 1e9 // keep the throttle from cutting power mid-settle
	c := New(body, p)
	c.Activate()

	initial := body.AngularVelocity().Len()
	for i := 0; i < 2000; i++ {
		c.Update(0.016)
		body.Step(0.016)
	}
	if final := body.AngularVelocity().Len(); final > initial*0.1 {
		t.Errorf("stabilization failed to damp tumble: %f -> %f", initial, final)
	}
}

package physics

import (
	"math"
	"testing"

	"github.com/go-gl/mathgl/mgl32"
)

func TestForceIntegration(t *testing.T) {
	b := NewBody(10, 0.4)
	b.AddForce(mgl32.Vec3{100, 0, 0})
	b.Step(0.1)

	// a = F/m = 10; semi-implicit: velocity first, then position.
	if got := b.Velocity.X(); math.Abs(float64(got-1)) > 1e-5 {
		t.Errorf("velocity = %f, want 1", got)
	}
	if got := b.Position.X(); math.Abs(float64(got-0.1)) > 1e-5 {
		t.Errorf("position = %f, want 0.1", got)
	}
}

func TestAccumulatorsClearAfterStep(t *testing.T) {
	b := NewBody(10, 0.4)
	b.AddForce(mgl32.Vec3{100, 0, 0})
	b.AddTorque(mgl32.Vec3{0, 4, 0})
	b.Step(0.1)

	v, w := b.Velocity, b.angVel
	b.Step(0.1)
	if b.Velocity != v || b.angVel != w {
		t.Error("cleared accumulators still accelerated the body")
	}
}

func TestForcesAccumulate(t *testing.T) {
	b := NewBody(1, 1)
	b.AddForce(mgl32.Vec3{1, 0, 0})
	b.AddForce(mgl32.Vec3{2, 0, 0})
	b.Step(1)
	if got := b.Velocity.X(); got != 3 {
		t.Errorf("velocity = %f, want 3 from summed forces", got)
	}
}

func TestTorqueUsesInertia(t *testing.T) {
	b := NewBody(10, 0.5) // inertia 5
	b.AddTorque(mgl32.Vec3{10, 0, 0})
	b.Step(0.1)
	if got := b.angVel.X(); math.Abs(float64(got-0.2)) > 1e-5 {
		t.Errorf("angular velocity = %f, want 0.2", got)
	}
}

func TestSetMassRecomputesInertia(t *testing.T) {
	b := NewBody(10, 0.5)
	b.SetMass(20)
	if b.Mass() != 20 {
		t.Fatalf("mass = %f", b.Mass())
	}
	if b.inertia != 10 {
		t.Errorf("inertia = %f, want 10", b.inertia)
	}
}

func TestZeroMassIsSafe(t *testing.T) {
	b := NewBody(0, 0.4)
	b.AddForce(mgl32.Vec3{100, 0, 0})
	b.AddTorque(mgl32.Vec3{5, 0, 0})
	b.Step(0.1) // must not divide by zero

	if b.Velocity != (mgl32.Vec3{}) {
		t.Errorf("massless body gained velocity: %v", b.Velocity)
	}
}

func TestOrientationWraps(t *testing.T) {
	b := NewBody(1, 1)
	b.SetAngularVelocity(mgl32.Vec3{0, 10, 0})
	for i := 0; i < 100; i++ {
		b.Step(0.1)
	}
	for i := 0; i < 3; i++ {
		if a := b.Orientation[i]; a < -math.Pi || a > math.Pi {
			t.Errorf("orientation[%d] = %f outside [-pi, pi]", i, a)
		}
	}
}

func TestWrapAngle(t *testing.T) {
	tests := []struct {
		in, want float32
	}{
		{0, 0},
		{math.Pi / 2, math.Pi / 2},
		{2 * math.Pi, 0},
		{-3 * math.Pi, -math.Pi},
	}
	for _, tt := range tests {
		if got := wrapAngle(tt.in); math.Abs(float64(got-tt.want)) > 1e-5 {
			t.Errorf("wrapAngle(%f) = %f, want %f", tt.in, got, tt.want)
		}
	}
}

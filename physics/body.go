// Package physics defines the narrow rigid-body surface the control core
// writes through, plus a simple body implementation for the shell and tests.
// Contact resolution and broad-phase collision live outside this module.
package physics

import (
	"math"

	"github.com/go-gl/mathgl/mgl32"
)

// RigidBody is the narrow interface between the control core and the
// physics engine's body. The core reads angular velocity and writes
// force/torque/mass; it never steps the simulation itself.
type RigidBody interface {
	AngularVelocity() mgl32.Vec3
	SetAngularVelocity(mgl32.Vec3)
	AddForce(mgl32.Vec3)
	AddTorque(mgl32.Vec3)
	Mass() float32
	SetMass(float32)
}

// Body is a free-floating rigid body with force/torque accumulators. One
// writer per tick, read-before-write: the controller reads angular velocity,
// then accumulates torque, then the owner calls Step.
type Body struct {
	Position    mgl32.Vec3
	Velocity    mgl32.Vec3
	Orientation mgl32.Vec3 // pitch, yaw, roll in radians
	angVel      mgl32.Vec3

	mass         float32
	inertia      float32 // scalar moment of inertia, recomputed with mass
	inertiaScale float32

	force  mgl32.Vec3
	torque mgl32.Vec3
}

// NewBody creates a body with the given mass. The inertia scale relates the
// scalar moment of inertia to mass; SetMass keeps the two consistent.
func NewBody(mass, inertiaScale float32) *Body {
	b := &Body{inertiaScale: inertiaScale}
	b.SetMass(mass)
	return b
}

// AngularVelocity returns the current angular velocity.
func (b *Body) AngularVelocity() mgl32.Vec3 {
	return b.angVel
}

// SetAngularVelocity overwrites the angular velocity.
func (b *Body) SetAngularVelocity(w mgl32.Vec3) {
	b.angVel = w
}

// AddForce accumulates a force for the next step.
func (b *Body) AddForce(f mgl32.Vec3) {
	b.force = b.force.Add(f)
}

// AddTorque accumulates a torque for the next step.
func (b *Body) AddTorque(t mgl32.Vec3) {
	b.torque = b.torque.Add(t)
}

// Mass returns the current mass.
func (b *Body) Mass() float32 {
	return b.mass
}

// SetMass updates mass and recomputes the moment of inertia.
func (b *Body) SetMass(m float32) {
	b.mass = m
	b.inertia = m * b.inertiaScale
	if b.inertia <= 0 {
		b.inertia = 1
	}
}

// Step integrates accumulated forces and torques over dt and clears the
// accumulators. Semi-implicit Euler.
func (b *Body) Step(dt float32) {
	if b.mass > 0 {
		b.Velocity = b.Velocity.Add(b.force.Mul(dt / b.mass))
	}
	b.Position = b.Position.Add(b.Velocity.Mul(dt))

	b.angVel = b.angVel.Add(b.torque.Mul(dt / b.inertia))
	b.Orientation = b.Orientation.Add(b.angVel.Mul(dt))
	for i := 0; i < 3; i++ {
		b.Orientation[i] = wrapAngle(b.Orientation[i])
	}

	b.force = mgl32.Vec3{}
	b.torque = mgl32.Vec3{}
}

// wrapAngle wraps an angle to [-pi, pi].
func wrapAngle(a float32) float32 {
	for a > math.Pi {
		a -= 2 * math.Pi
	}
	for a < -math.Pi {
		a += 2 * math.Pi
	}
	return a
}

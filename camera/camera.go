// Package camera provides a smoothed chase camera for the controlled craft.
package camera

import (
	"math"

	"github.com/go-gl/mathgl/mgl32"
)

// Chase follows a target position and yaw at a fixed offset, with
// exponential smoothing so quick attitude changes don't snap the view.
type Chase struct {
	// Position is the smoothed camera position in world coordinates.
	Position mgl32.Vec3

	// Distance behind and height above the target.
	Distance float32
	Height   float32

	// Stiffness is the follow rate per second; higher snaps faster.
	Stiffness float32
}

// New creates a chase camera with the given offsets.
func New(distance, height float32) *Chase {
	return &Chase{
		Distance:  distance,
		Height:    height,
		Stiffness: 4,
	}
}

// Update moves the camera toward its desired pose behind the target.
// yaw is the target's heading in radians.
func (c *Chase) Update(target mgl32.Vec3, yaw, dt float32) {
	sin, cos := float32(math.Sin(float64(yaw))), float32(math.Cos(float64(yaw)))
	desired := mgl32.Vec3{
		target.X() - sin*c.Distance,
		target.Y() + c.Height,
		target.Z() - cos*c.Distance,
	}

	t := c.Stiffness * dt
	if t > 1 {
		t = 1
	}
	c.Position = c.Position.Add(desired.Sub(c.Position).Mul(t))
}

// Snap places the camera immediately at its desired pose.
func (c *Chase) Snap(target mgl32.Vec3, yaw float32) {
	c.Position = mgl32.Vec3{}
	c.Update(target, yaw, 1e9)
}

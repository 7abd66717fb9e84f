// Package systems contains ECS systems for the scene shell.
package systems

import (
	"math"

	"github.com/mlange-42/ark/ecs"

	"github.com/skellen-games/gravwing/components"
)

// Bounds is the cubic drift volume, centered on the origin.
type Bounds struct {
	Extent float32 // half-width per axis
}

// DriftSystem advances debris entities: positions integrate velocity, spins
// advance, and anything leaving the volume wraps to the opposite face.
type DriftSystem struct {
	filter ecs.Filter3[components.Position, components.Velocity, components.Spin]
	bounds Bounds
}

// NewDriftSystem creates a drift system over the given world.
func NewDriftSystem(w *ecs.World, bounds Bounds) *DriftSystem {
	return &DriftSystem{
		filter: *ecs.NewFilter3[components.Position, components.Velocity, components.Spin](w),
		bounds: bounds,
	}
}

// Update runs one tick of debris drift.
func (s *DriftSystem) Update(dt float32) {
	e := s.bounds.Extent
	query := s.filter.Query()
	for query.Next() {
		pos, vel, spin := query.Get()

		pos.X = wrap(pos.X+vel.X*dt, e)
		pos.Y = wrap(pos.Y+vel.Y*dt, e)
		pos.Z = wrap(pos.Z+vel.Z*dt, e)

		spin.Angle += spin.Rate * dt
		if spin.Angle > 2*math.Pi {
			spin.Angle -= 2 * math.Pi
		}
	}
}

// wrap folds a coordinate back into [-extent, extent].
func wrap(v, extent float32) float32 {
	if v < -extent {
		return v + 2*extent
	}
	if v > extent {
		return v - 2*extent
	}
	return v
}

// Package main searches for stabilization gains that settle a disturbed
// craft quickly without saturating the torque clamp.
package main

import (
	"flag"
	"fmt"
	"log"
	"math"

	"github.com/go-gl/mathgl/mgl32"
	"gonum.org/v1/gonum/optimize"

	"github.com/skellen-games/gravwing/config"
	"github.com/skellen-games/gravwing/physics"
	"github.com/skellen-games/gravwing/propulsion"
)

func main() {
	configPath := flag.String("config", "", "Base config YAML file (empty = use defaults)")
	maxEvals := flag.Int("max-evals", 400, "Maximum objective evaluations")
	horizon := flag.Float64("horizon", 12.0, "Simulated seconds per evaluation")
	flag.Parse()

	if err := config.Init(*configPath); err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	dt := config.Cfg().Derived.DT32
	steps := int(*horizon / float64(dt))

	problem := optimize.Problem{
		Func: func(x []float64) float64 {
			return settleCost(float32(x[0]), float32(x[1]), dt, steps)
		},
	}

	x0 := []float64{
		config.Cfg().Propulsion.StabilizationStrength,
		config.Cfg().Propulsion.Damping,
	}
	settings := &optimize.Settings{FuncEvaluations: *maxEvals}

	result, err := optimize.Minimize(problem, x0, settings, &optimize.NelderMead{})
	if err != nil {
		log.Fatalf("optimization failed: %v", err)
	}

	fmt.Printf("best stabilization_strength: %.4f\n", result.X[0])
	fmt.Printf("best damping:                %.4f\n", result.X[1])
	fmt.Printf("cost: %.4f (settle seconds + penalties)\n", result.F)
}

// settleCost spins up a drive over a disturbed body and measures how long
// the tumble takes to die down. Out-of-range gains are penalized rather than
// rejected so the simplex can walk back in.
func settleCost(strength, damping float32, dt float32, steps int) float64 {
	if strength < 0 || damping <= 0 || damping > 1 {
		return 1e6
	}

	params := propulsion.DefaultParams()
	params.StabilizationStrength = strength
	params.Damping = damping
	// Short spool so the evaluation measures stabilization, not the ramp.
	params.ActivationTime = 0.2

	body := physics.NewBody(params.BaseMass, float32(config.Cfg().Craft.InertiaScale))
	body.SetAngularVelocity(mgl32.Vec3{2.0, 1.5, -1.0})

	ctrl := propulsion.New(body, params)
	ctrl.Activate()

	settled := float64(steps) * float64(dt)
	settledAt := -1.0
	var residual float64

	for i := 0; i < steps; i++ {
		ctrl.Update(dt)
		body.Step(dt)

		mag := float64(body.AngularVelocity().Len())
		t := float64(i+1) * float64(dt)
		if settledAt < 0 && mag < 0.05 {
			settledAt = t
		}
		if settledAt >= 0 && mag >= 0.05 {
			settledAt = -1 // regression; keep looking
		}
		residual = mag
	}

	if settledAt >= 0 {
		settled = settledAt
	}

	// Residual tumble at the horizon dominates when it never settles.
	return settled + 10*residual + 0.05*math.Abs(float64(strength))
}

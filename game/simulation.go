package game

import (
	"math"

	"github.com/go-gl/mathgl/mgl32"

	"github.com/skellen-games/gravwing/config"
	"github.com/skellen-games/gravwing/input"
	"github.com/skellen-games/gravwing/telemetry"
)

// tiltGain converts fused attitude degrees into a steering torque share.
// Only meaningful when orientation samples are actually arriving.
const tiltGain = 0.004

// step runs one simulation tick: aggregate input, update the pilot model,
// hand forces/torques to the body, advance the drive, then step the body and
// record telemetry. dt is already clamped by the caller.
func (g *Game) step(dt float32) {
	cfg := config.Cfg()

	// Input aggregation and workload feedback.
	cmd := g.aggregator.Poll(&g.snap)
	intensity := g.aggregator.Intensity()
	pilot := g.pilot.Tick(dt, intensity)
	g.aggregator.SetAdaptiveSensitivity(pilot.AdaptiveSensitivity)

	// Fused attitude estimate; frozen at zero without sensor delivery.
	est := g.filter.Update(dt)

	// Input-to-intent mapping for the drive triggers.
	if cmd.EmergencyCut {
		g.drive.EmergencyShutdown()
	} else if cmd.PlasmaRequested {
		snap := g.drive.Snapshot()
		if snap.IsActive || snap.IsActivating {
			g.drive.Deactivate()
		} else {
			g.drive.Activate()
		}
	}

	// Forces in the craft's yaw frame. Heading is the body's component 1
	// angle, the same axis the look torque and stabilization act on.
	yaw := g.body.Orientation[1]
	sin, cos := sincos(yaw)
	forward := mgl32.Vec3{sin, 0, cos}
	right := mgl32.Vec3{cos, 0, -sin}

	thrust := float32(cfg.Craft.Thrust)
	vertical := float32(cfg.Craft.VerticalThrust)
	force := right.Mul(cmd.Move.X() * thrust).
		Add(forward.Mul(cmd.Move.Y() * thrust)).
		Add(mgl32.Vec3{0, cmd.Move.Z() * vertical, 0})
	g.body.AddForce(force)

	// Look deltas and sensor tilt become torque around yaw/pitch.
	lookTorque := float32(cfg.Craft.LookTorque)
	g.body.AddTorque(mgl32.Vec3{
		cmd.Look.Y()*lookTorque + est.Pos.Y()*tiltGain*lookTorque,
		cmd.Look.X()*lookTorque + est.Pos.X()*tiltGain*lookTorque,
		0,
	})

	// Drive: mass, heat, stabilization torque onto the same body.
	g.drive.Update(dt)

	// Physics step is owned here, outside the core.
	g.body.Step(dt)
	g.drift.Update(dt)

	g.recordTelemetry(cmd, intensity)

	g.tick++
	g.simTime += float64(dt)
}

// recordTelemetry samples the frame and flushes window stats when due.
func (g *Game) recordTelemetry(cmd input.Command, intensity float32) {
	drive := g.drive.Snapshot()
	pilot := g.pilot.State()

	fs := telemetry.FrameStats{
		Tick:        g.tick,
		SimTime:     g.simTime,
		Power:       drive.Power,
		TargetPower: drive.TargetPower,
		Heat:        drive.Heat,
		Mass:        drive.Mass,
		Consumption: drive.PowerConsumption,
		Active:      drive.IsActive,
		Throttling:  drive.Throttling,
		Stress:      pilot.Stress,
		Sensitivity: pilot.AdaptiveSensitivity,
		Baseline:    pilot.Baseline,
		Intensity:   intensity,
		MoveMag:     cmd.Move.Len(),
		LookMag:     cmd.Look.Len(),
		AngVelMag:   g.body.AngularVelocity().Len(),
	}

	if err := g.output.WriteFrame(fs); err != nil {
		logOutputError("flight frame", err)
	}

	if ws, ok := g.collector.Record(fs); ok {
		if g.opts.LogStats {
			ws.Log()
		}
		if err := g.output.WriteWindow(ws); err != nil {
			logOutputError("window stats", err)
		}
	}

	g.notifyHaptics(drive)
	g.lastDrive = drive
}

func sincos(a float32) (sin, cos float32) {
	s, c := math.Sincos(float64(a))
	return float32(s), float32(c)
}

// Package game wires the control core to raylib input capture, the ark
// scene world, telemetry, and the HUD. Nothing in here is consumed by the
// core packages; the dependency points the other way.
package game

import (
	"math/rand"

	"github.com/mlange-42/ark/ecs"

	"github.com/skellen-games/gravwing/camera"
	"github.com/skellen-games/gravwing/components"
	"github.com/skellen-games/gravwing/config"
	"github.com/skellen-games/gravwing/fusion"
	"github.com/skellen-games/gravwing/input"
	"github.com/skellen-games/gravwing/physics"
	"github.com/skellen-games/gravwing/propulsion"
	"github.com/skellen-games/gravwing/systems"
	"github.com/skellen-games/gravwing/telemetry"
	"github.com/skellen-games/gravwing/ui"
	"github.com/skellen-games/gravwing/workload"
)

// Options configures a game instance.
type Options struct {
	Seed           int64
	Headless       bool
	TouchMode      bool // force touch controls instead of probing
	LogStats       bool
	StatsWindowSec float64
	OutputDir      string
}

// Game holds the complete session state.
type Game struct {
	opts Options

	world        *ecs.World
	rng          *rand.Rand
	debrisMapper *ecs.Map4[components.Position, components.Velocity, components.Spin, components.Debris]
	debrisFilter *ecs.Filter4[components.Position, components.Velocity, components.Spin, components.Debris]
	drift        *systems.DriftSystem

	// Control core
	body       *physics.Body
	aggregator *input.Aggregator
	filter     *fusion.Filter
	pilot      *workload.Model
	drive      *propulsion.Controller

	// Telemetry
	collector *telemetry.Collector
	output    *telemetry.OutputManager

	// Presentation
	hud   *ui.HUD
	panel *ui.TuningPanel
	cam   *camera.Chase

	// Per-tick raw event snapshot, consumed by Poll
	snap input.Snapshot

	// lastDrive is the previous frame's drive snapshot, kept to detect
	// activation/throttle edges for haptics.
	lastDrive propulsion.Snapshot

	responseScale float32

	tick    int32
	simTime float64
	paused  bool
}

// NewGame creates a game with the given options. Config must be initialized.
func NewGame(opts Options) *Game {
	cfg := config.Cfg()

	world := ecs.NewWorld()

	mode := input.ModeDesktop
	if opts.TouchMode || (!opts.Headless && probeTouch()) {
		mode = input.ModeTouch
	}

	statsWindow := opts.StatsWindowSec
	if statsWindow <= 0 {
		statsWindow = cfg.Telemetry.StatsWindow
	}

	body := physics.NewBody(float32(cfg.Craft.BaseMass), float32(cfg.Craft.InertiaScale))

	g := &Game{
		opts:          opts,
		world:         world,
		rng:           rand.New(rand.NewSource(opts.Seed)),
		debrisMapper:  ecs.NewMap4[components.Position, components.Velocity, components.Spin, components.Debris](world),
		debrisFilter:  ecs.NewFilter4[components.Position, components.Velocity, components.Spin, components.Debris](world),
		drift:         systems.NewDriftSystem(world, systems.Bounds{Extent: float32(cfg.Debris.Extent)}),
		body:          body,
		aggregator:    input.NewAggregator(mode),
		filter:        fusion.NewFilter(),
		pilot:         workload.NewModel(),
		drive:         propulsion.New(body, propulsion.DefaultParams()),
		collector:     telemetry.NewCollector(statsWindow, cfg.Derived.DT32),
		hud:           ui.NewHUD(),
		panel:         ui.NewTuningPanel(),
		cam:           camera.New(18, 8),
		responseScale: 1,
	}

	g.spawnDebris()

	// Start behind the craft instead of sweeping in from the origin.
	g.cam.Snap(body.Position, body.Orientation[1])

	return g
}

// SetOutput attaches a telemetry output manager (nil disables file output).
func (g *Game) SetOutput(om *telemetry.OutputManager) {
	g.output = om
}

// Tick returns the current simulation tick.
func (g *Game) Tick() int32 {
	return g.tick
}

// SetResponseScale injects the external temporal lag factor applied to
// look/move responsiveness. The core applies it without knowing its source.
func (g *Game) SetResponseScale(s float32) {
	g.responseScale = s
	g.aggregator.SetResponseScale(s)
}

// spawnDebris fills the drift volume with slow-tumbling debris entities.
func (g *Game) spawnDebris() {
	cfg := config.Cfg().Debris
	extent := float32(cfg.Extent)
	maxSpeed := float32(cfg.MaxSpeed)

	for i := 0; i < cfg.Count; i++ {
		pos := components.Position{
			X: (g.rng.Float32()*2 - 1) * extent,
			Y: (g.rng.Float32()*2 - 1) * extent,
			Z: (g.rng.Float32()*2 - 1) * extent,
		}
		vel := components.Velocity{
			X: (g.rng.Float32()*2 - 1) * maxSpeed,
			Y: (g.rng.Float32()*2 - 1) * maxSpeed,
			Z: (g.rng.Float32()*2 - 1) * maxSpeed,
		}
		spin := components.Spin{Rate: (g.rng.Float32()*2 - 1) * 0.8}
		debris := components.Debris{Size: 0.5 + g.rng.Float32()*2.5}
		g.debrisMapper.NewEntity(&pos, &vel, &spin, &debris)
	}
}

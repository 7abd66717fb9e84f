// Package telemetry records per-frame flight stats and aggregates them into
// time windows for logging and CSV output.
package telemetry

// FrameStats is one tick's worth of flight telemetry, sampled after the
// controller and workload model have run.
type FrameStats struct {
	Tick    int32   `csv:"tick"`
	SimTime float64 `csv:"sim_time"`

	// Drive
	Power       float32 `csv:"power"`
	TargetPower float32 `csv:"target_power"`
	Heat        float32 `csv:"heat"`
	Mass        float32 `csv:"mass"`
	Consumption float32 `csv:"consumption"`
	Active      bool    `csv:"active"`
	Throttling  bool    `csv:"throttling"`

	// Pilot
	Stress      float32 `csv:"stress"`
	Sensitivity float32 `csv:"sensitivity"`
	Baseline    float32 `csv:"baseline"`
	Intensity   float32 `csv:"intensity"`
	MoveMag     float32 `csv:"move_mag"`
	LookMag     float32 `csv:"look_mag"`

	// Body
	AngVelMag float32 `csv:"angvel_mag"`
}

// Collector buffers frame stats and closes a window every configured number
// of simulation seconds.
type Collector struct {
	windowTicks int32
	dt          float32

	windowStartTick int32
	frames          []FrameStats
}

// NewCollector creates a collector with the given window length in
// simulation seconds and seconds per tick.
func NewCollector(windowSec float64, dt float32) *Collector {
	ticks := int32(windowSec / float64(dt))
	if ticks < 1 {
		ticks = 1
	}
	return &Collector{
		windowTicks: ticks,
		dt:          dt,
		frames:      make([]FrameStats, 0, ticks),
	}
}

// Record adds one frame of stats. When the frame closes the current window,
// the aggregated WindowStats is returned with ok=true and a new window
// starts.
func (c *Collector) Record(fs FrameStats) (WindowStats, bool) {
	c.frames = append(c.frames, fs)
	if fs.Tick-c.windowStartTick+1 < c.windowTicks {
		return WindowStats{}, false
	}

	ws := aggregate(c.frames, c.windowStartTick, fs.Tick, float64(fs.Tick+1)*float64(c.dt))
	c.windowStartTick = fs.Tick + 1
	c.frames = c.frames[:0]
	return ws, true
}

// Pending returns the number of frames buffered in the open window.
func (c *Collector) Pending() int {
	return len(c.frames)
}

package telemetry

import (
	"log/slog"
	"sort"

	"gonum.org/v1/gonum/stat"
)

// WindowStats holds aggregated flight statistics for one time window.
type WindowStats struct {
	WindowStartTick int32   `csv:"-"`
	WindowEndTick   int32   `csv:"window_end"`
	SimTimeSec      float64 `csv:"sim_time"`

	PowerMean float64 `csv:"power_mean"`
	PowerStd  float64 `csv:"power_std"`

	HeatMean float64 `csv:"heat_mean"`
	HeatMax  float64 `csv:"heat_max"`

	StressMean float64 `csv:"stress_mean"`
	StressP90  float64 `csv:"stress_p90"`

	IntensityMean float64 `csv:"intensity_mean"`
	AngVelMean    float64 `csv:"angvel_mean"`
	AngVelP90     float64 `csv:"angvel_p90"`

	ActiveFrac     float64 `csv:"active_frac"`
	ThrottlingFrac float64 `csv:"throttling_frac"`
}

// aggregate reduces a window of frames to WindowStats.
func aggregate(frames []FrameStats, startTick, endTick int32, simTime float64) WindowStats {
	ws := WindowStats{
		WindowStartTick: startTick,
		WindowEndTick:   endTick,
		SimTimeSec:      simTime,
	}
	if len(frames) == 0 {
		return ws
	}

	power := make([]float64, len(frames))
	heat := make([]float64, len(frames))
	stress := make([]float64, len(frames))
	intensity := make([]float64, len(frames))
	angVel := make([]float64, len(frames))
	activeCount := 0
	throttlingCount := 0

	for i, f := range frames {
		power[i] = float64(f.Power)
		heat[i] = float64(f.Heat)
		stress[i] = float64(f.Stress)
		intensity[i] = float64(f.Intensity)
		angVel[i] = float64(f.AngVelMag)
		if f.Active {
			activeCount++
		}
		if f.Throttling {
			throttlingCount++
		}
	}

	ws.PowerMean = stat.Mean(power, nil)
	ws.PowerStd = stat.StdDev(power, nil)
	ws.HeatMean = stat.Mean(heat, nil)
	ws.HeatMax = maxOf(heat)
	ws.StressMean = stat.Mean(stress, nil)
	ws.StressP90 = quantile(stress, 0.9)
	ws.IntensityMean = stat.Mean(intensity, nil)
	ws.AngVelMean = stat.Mean(angVel, nil)
	ws.AngVelP90 = quantile(angVel, 0.9)
	ws.ActiveFrac = float64(activeCount) / float64(len(frames))
	ws.ThrottlingFrac = float64(throttlingCount) / float64(len(frames))

	return ws
}

// quantile sorts a copy of xs and returns the empirical p-quantile.
func quantile(xs []float64, p float64) float64 {
	sorted := make([]float64, len(xs))
	copy(sorted, xs)
	sort.Float64s(sorted)
	return stat.Quantile(p, stat.Empirical, sorted, nil)
}

func maxOf(xs []float64) float64 {
	m := xs[0]
	for _, x := range xs[1:] {
		if x > m {
			m = x
		}
	}
	return m
}

// Log emits the window via slog at info level.
func (ws WindowStats) Log() {
	slog.Info("flight window",
		"window_end", ws.WindowEndTick,
		"sim_time", ws.SimTimeSec,
		"power_mean", ws.PowerMean,
		"heat_mean", ws.HeatMean,
		"heat_max", ws.HeatMax,
		"stress_mean", ws.StressMean,
		"active_frac", ws.ActiveFrac,
		"throttling_frac", ws.ThrottlingFrac,
	)
}

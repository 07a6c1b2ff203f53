package telemetry

import (
	"log/slog"
	"sort"
	"time"

	"gonum.org/v1/gonum/stat"
)

// WindowStats holds aggregated statistics for a time window.
type WindowStats struct {
	WindowStartFrame uint64  `csv:"-"`
	WindowEndFrame   uint64  `csv:"window_end"`
	ElapsedSec       float64 `csv:"elapsed_sec"`

	// Pool at window end
	Particles int    `csv:"particles"`
	Resets    uint64 `csv:"resets"` // Cumulative since the last rebuild

	// Lifecycle events during window
	Rebuilds    int `csv:"rebuilds"`
	Pauses      int `csv:"pauses"`
	Resumes     int `csv:"resumes"`
	MotionStops int `csv:"motion_stops"`

	// Update+draw cost per frame, microseconds
	FrameMeanUS float64 `csv:"frame_mean_us"`
	FrameStdUS  float64 `csv:"frame_std_us"`
	FrameP50US  float64 `csv:"frame_p50_us"`
	FrameP95US  float64 `csv:"frame_p95_us"`

	State string `csv:"state"`
}

// ComputeFrameStats calculates mean, standard deviation and percentiles of frame
// durations in microseconds. Returns zeros for an empty slice.
func ComputeFrameStats(durations []time.Duration) (mean, std, p50, p95 float64) {
	n := len(durations)
	if n == 0 {
		return 0, 0, 0, 0
	}

	values := make([]float64, n)
	for i, d := range durations {
		values[i] = float64(d) / float64(time.Microsecond)
	}

	if n == 1 {
		mean = values[0]
	} else {
		mean, std = stat.MeanStdDev(values, nil)
	}

	// Quantile requires sorted input
	sort.Float64s(values)
	p50 = stat.Quantile(0.50, stat.Empirical, values, nil)
	p95 = stat.Quantile(0.95, stat.Empirical, values, nil)

	return mean, std, p50, p95
}

// LogValue implements slog.LogValuer for structured logging.
func (s WindowStats) LogValue() slog.Value {
	return slog.GroupValue(
		slog.Uint64("window_start", s.WindowStartFrame),
		slog.Uint64("window_end", s.WindowEndFrame),
		slog.Float64("elapsed_sec", s.ElapsedSec),
		slog.Int("particles", s.Particles),
		slog.Uint64("resets", s.Resets),
		slog.Int("rebuilds", s.Rebuilds),
		slog.Int("pauses", s.Pauses),
		slog.Int("resumes", s.Resumes),
		slog.Int("motion_stops", s.MotionStops),
		slog.Float64("frame_mean_us", s.FrameMeanUS),
		slog.Float64("frame_std_us", s.FrameStdUS),
		slog.Float64("frame_p50_us", s.FrameP50US),
		slog.Float64("frame_p95_us", s.FrameP95US),
		slog.String("state", s.State),
	)
}

// LogStats logs the window stats using slog.
func (s WindowStats) LogStats() {
	slog.Info("stats", "window", s)
}

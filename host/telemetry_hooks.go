package host

import (
	"log/slog"

	"github.com/pthm-cable/glyphdrift/telemetry"
)

// StatsCallback receives each flushed stats window.
type StatsCallback func(telemetry.WindowStats)

// SetStatsCallback registers fn to receive every flushed window.
func (h *Host) SetStatsCallback(fn StatsCallback) {
	h.statsCallback = fn
}

// flushTelemetry closes the current stats window once it has elapsed.
func (h *Host) flushTelemetry() {
	now := h.now()
	if !h.collector.ShouldFlush(now) {
		return
	}

	var (
		particles int
		resets    uint64
	)
	if f := h.anim.Field(); f != nil {
		particles = f.Len()
		resets = f.Resets()
	}

	stats := h.collector.Flush(now, particles, resets, h.anim.State().String())
	perfStats := h.perf.Stats()

	if h.statsCallback != nil {
		h.statsCallback(stats)
	}

	if h.logStats {
		stats.LogStats()
		perfStats.LogStats()
	}

	if h.outputManager != nil {
		if err := h.outputManager.WriteStats(stats); err != nil {
			slog.Error("failed to write stats", "error", err)
		}
		if err := h.outputManager.WritePerf(perfStats, stats.WindowEndFrame); err != nil {
			slog.Error("failed to write perf", "error", err)
		}
	}
}

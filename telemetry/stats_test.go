package telemetry

import (
	"math"
	"testing"
	"time"
)

func TestComputeFrameStats(t *testing.T) {
	durations := make([]time.Duration, 0, 10)
	for i := 10; i >= 1; i-- {
		durations = append(durations, time.Duration(i)*time.Microsecond)
	}

	mean, std, p50, p95 := ComputeFrameStats(durations)

	if math.Abs(mean-5.5) > 0.001 {
		t.Errorf("mean = %v, want 5.5", mean)
	}
	// Sample standard deviation of 1..10
	if math.Abs(std-3.0277) > 0.001 {
		t.Errorf("std = %v, want ~3.0277", std)
	}
	if p50 != 5 {
		t.Errorf("p50 = %v, want 5", p50)
	}
	if p95 != 10 {
		t.Errorf("p95 = %v, want 10", p95)
	}

	// Input order is left untouched
	if durations[0] != 10*time.Microsecond {
		t.Error("ComputeFrameStats reordered its input")
	}
}

func TestComputeFrameStatsEdgeCases(t *testing.T) {
	tests := []struct {
		name      string
		durations []time.Duration
		wantMean  float64
		wantStd   float64
	}{
		{"empty", nil, 0, 0},
		{"single", []time.Duration{7 * time.Microsecond}, 7, 0},
		{"constant", []time.Duration{3 * time.Microsecond, 3 * time.Microsecond, 3 * time.Microsecond}, 3, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mean, std, _, _ := ComputeFrameStats(tt.durations)
			if math.Abs(mean-tt.wantMean) > 0.001 {
				t.Errorf("mean = %v, want %v", mean, tt.wantMean)
			}
			if math.Abs(std-tt.wantStd) > 0.001 {
				t.Errorf("std = %v, want %v", std, tt.wantStd)
			}
		})
	}
}

func TestCollectorFlush(t *testing.T) {
	start := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	c := NewCollector(2, 100, start)

	for i := 0; i < 4; i++ {
		c.RecordFrame(time.Duration(i+1) * time.Microsecond)
	}
	c.RecordEvent(EventRebuild)
	c.RecordEvent(EventPause)
	c.RecordEvent(EventResume)
	c.RecordEvent(EventMotionStop)
	c.RecordEvent(EventMotionStop)

	if c.ShouldFlush(start.Add(time.Second)) {
		t.Error("window should not flush before 2s")
	}
	now := start.Add(2 * time.Second)
	if !c.ShouldFlush(now) {
		t.Fatal("window should flush at 2s")
	}

	stats := c.Flush(now, 50, 12, "running")

	if stats.WindowStartFrame != 0 || stats.WindowEndFrame != 4 {
		t.Errorf("window frames = [%d, %d], want [0, 4]", stats.WindowStartFrame, stats.WindowEndFrame)
	}
	if stats.Rebuilds != 1 || stats.Pauses != 1 || stats.Resumes != 1 || stats.MotionStops != 2 {
		t.Errorf("unexpected event counts: %+v", stats)
	}
	if math.Abs(stats.FrameMeanUS-2.5) > 0.001 {
		t.Errorf("frame mean = %v, want 2.5", stats.FrameMeanUS)
	}
	if stats.Particles != 50 || stats.Resets != 12 || stats.State != "running" {
		t.Errorf("unexpected pool fields: %+v", stats)
	}

	// Counters reset for the next window
	next := c.Flush(now.Add(2*time.Second), 50, 12, "running")
	if next.Rebuilds != 0 || next.MotionStops != 0 || next.FrameMeanUS != 0 {
		t.Errorf("expected cleared window, got %+v", next)
	}
	if next.WindowStartFrame != 4 {
		t.Errorf("next window start = %d, want 4", next.WindowStartFrame)
	}
}

func TestCollectorHistoryBound(t *testing.T) {
	c := NewCollector(1, 3, time.Time{})
	for i := 0; i < 10; i++ {
		c.RecordFrame(time.Duration(i) * time.Microsecond)
	}
	if c.Frames() != 10 {
		t.Errorf("expected 10 frames counted, got %d", c.Frames())
	}

	stats := c.Flush(time.Time{}.Add(time.Second), 0, 0, "stopped")
	// Only the last three durations (7, 8, 9) remain
	if math.Abs(stats.FrameMeanUS-8) > 0.001 {
		t.Errorf("frame mean = %v, want 8", stats.FrameMeanUS)
	}
}

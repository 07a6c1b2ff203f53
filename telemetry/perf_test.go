package telemetry

import (
	"testing"
	"time"
)

func TestPerfCollector_BasicTiming(t *testing.T) {
	pc := NewPerfCollector(10)

	for i := 0; i < 5; i++ {
		pc.BeginFrame()
		pc.StartPhase(PhaseAdvance)
		time.Sleep(100 * time.Microsecond)
		pc.StartPhase(PhaseRender)
		time.Sleep(200 * time.Microsecond)
		if cost := pc.EndFrame(); cost <= 0 {
			t.Errorf("expected positive frame cost, got %v", cost)
		}
	}

	stats := pc.Stats()

	if stats.AvgCost <= 0 {
		t.Error("expected positive average frame cost")
	}
	if _, ok := stats.PhaseAvg[PhaseAdvance]; !ok {
		t.Error("expected advance phase to be tracked")
	}
	if _, ok := stats.PhaseAvg[PhaseRender]; !ok {
		t.Error("expected render phase to be tracked")
	}
	if stats.MinCost > stats.MaxCost {
		t.Errorf("min cost %v > max cost %v", stats.MinCost, stats.MaxCost)
	}
}

func TestPerfCollector_RollingWindow(t *testing.T) {
	pc := NewPerfCollector(5)

	for i := 0; i < 10; i++ {
		pc.BeginFrame()
		pc.StartPhase(PhaseAdvance)
		time.Sleep(10 * time.Microsecond)
		pc.EndFrame()
	}

	stats := pc.Stats()

	if stats.AvgCost <= 0 {
		t.Error("expected positive average cost after window filled")
	}
	if stats.FramesPerSecond <= 0 {
		t.Error("expected positive frames per second")
	}
}

func TestPerfCollector_PhasePercentages(t *testing.T) {
	pc := NewPerfCollector(10)

	for i := 0; i < 5; i++ {
		pc.BeginFrame()
		pc.StartPhase(PhaseAdvance)
		time.Sleep(10 * time.Microsecond)
		pc.StartPhase(PhaseRender)
		time.Sleep(500 * time.Microsecond)
		pc.EndFrame()
	}

	stats := pc.Stats()

	advancePct := stats.PhasePct[PhaseAdvance]
	renderPct := stats.PhasePct[PhaseRender]
	if renderPct <= advancePct {
		t.Errorf("expected render (%v%%) > advance (%v%%)", renderPct, advancePct)
	}

	row := stats.ToCSV(42)
	if row.WindowEnd != 42 {
		t.Errorf("expected window end 42, got %d", row.WindowEnd)
	}
	if row.RenderPct != renderPct {
		t.Errorf("csv render pct %v, want %v", row.RenderPct, renderPct)
	}
}

func TestPerfCollector_EmptyStats(t *testing.T) {
	pc := NewPerfCollector(10)

	stats := pc.Stats()

	if stats.AvgCost != 0 {
		t.Error("expected zero avg cost for empty collector")
	}
	if stats.PhaseAvg == nil {
		t.Error("expected non-nil PhaseAvg map")
	}
	if stats.PhasePct == nil {
		t.Error("expected non-nil PhasePct map")
	}
}

func TestPerfCollector_FrameTiming(t *testing.T) {
	pc := NewPerfCollector(10)

	// First call establishes baseline
	pc.RecordFrame()
	time.Sleep(16 * time.Millisecond)
	pc.RecordFrame()

	stats := pc.Stats()

	if stats.FrameDuration < 15*time.Millisecond {
		t.Errorf("expected frame duration >= 15ms, got %v", stats.FrameDuration)
	}
	// Sleep may overshoot, so only bound from above loosely
	if stats.FPS <= 0 || stats.FPS > 70 {
		t.Errorf("expected FPS in (0, 70] with 16ms frame time, got %v", stats.FPS)
	}
}

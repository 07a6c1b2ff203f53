package telemetry

import (
	"log/slog"
	"time"
)

// Phase names for one animation frame.
const (
	PhaseAdvance = "advance"
	PhaseRender  = "render"
)

// Phases lists the frame phases in execution order.
var Phases = []string{PhaseAdvance, PhaseRender}

// PerfSample holds timing data for a single frame.
type PerfSample struct {
	Cost   time.Duration
	Phases map[string]time.Duration
}

// PerfCollector tracks per-frame update and draw cost over a rolling window.
type PerfCollector struct {
	windowSize    int
	samples       []PerfSample
	writeIndex    int
	sampleCount   int
	currentPhases map[string]time.Duration
	frameStart    time.Time
	phaseStart    time.Time
	lastPhase     string

	// Display frame timing
	lastFrameTime time.Time
	frameDuration time.Duration
}

// NewPerfCollector creates a new performance collector.
// windowSize: number of frames to average over (e.g., 60 for 1 second at 60fps).
func NewPerfCollector(windowSize int) *PerfCollector {
	if windowSize < 1 {
		windowSize = 60
	}
	return &PerfCollector{
		windowSize:    windowSize,
		samples:       make([]PerfSample, windowSize),
		currentPhases: make(map[string]time.Duration),
	}
}

// BeginFrame begins timing a new animation frame.
func (p *PerfCollector) BeginFrame() {
	p.frameStart = time.Now()
	p.currentPhases = make(map[string]time.Duration)
	p.lastPhase = ""
}

// StartPhase begins timing a specific phase.
func (p *PerfCollector) StartPhase(phase string) {
	now := time.Now()
	// End previous phase if any
	if p.lastPhase != "" {
		p.currentPhases[p.lastPhase] += now.Sub(p.phaseStart)
	}
	p.phaseStart = now
	p.lastPhase = phase
}

// EndFrame finishes timing the current frame, records the sample and returns the
// frame's total duration.
func (p *PerfCollector) EndFrame() time.Duration {
	now := time.Now()
	// End final phase
	if p.lastPhase != "" {
		p.currentPhases[p.lastPhase] += now.Sub(p.phaseStart)
	}

	sample := PerfSample{
		Cost:   now.Sub(p.frameStart),
		Phases: p.currentPhases,
	}

	p.samples[p.writeIndex] = sample
	p.writeIndex = (p.writeIndex + 1) % p.windowSize
	if p.sampleCount < p.windowSize {
		p.sampleCount++
	}
	return sample.Cost
}

// RecordFrame records the interval between display refreshes.
func (p *PerfCollector) RecordFrame() {
	now := time.Now()
	if !p.lastFrameTime.IsZero() {
		p.frameDuration = now.Sub(p.lastFrameTime)
	}
	p.lastFrameTime = now
}

// PerfStats holds aggregated performance statistics.
type PerfStats struct {
	// Frame cost
	AvgCost time.Duration
	MinCost time.Duration
	MaxCost time.Duration

	// Phase breakdown (average durations)
	PhaseAvg map[string]time.Duration

	// Phase percentages of total frame cost
	PhasePct map[string]float64

	// Frames per second the update and draw cost alone would allow
	FramesPerSecond float64

	// Display refresh timing
	FrameDuration time.Duration
	FPS           float64
}

// Stats computes aggregated statistics over the current window.
func (p *PerfCollector) Stats() PerfStats {
	// Frame timing is always available (independent of cost samples)
	var fps float64
	if p.frameDuration > 0 {
		fps = float64(time.Second) / float64(p.frameDuration)
	}

	if p.sampleCount == 0 {
		return PerfStats{
			PhaseAvg:      make(map[string]time.Duration),
			PhasePct:      make(map[string]float64),
			FrameDuration: p.frameDuration,
			FPS:           fps,
		}
	}

	var totalCost time.Duration
	var minCost, maxCost time.Duration
	phaseSum := make(map[string]time.Duration)

	// Iterate over valid samples
	for i := 0; i < p.sampleCount; i++ {
		s := p.samples[i]
		totalCost += s.Cost

		if i == 0 || s.Cost < minCost {
			minCost = s.Cost
		}
		if s.Cost > maxCost {
			maxCost = s.Cost
		}

		for phase, dur := range s.Phases {
			phaseSum[phase] += dur
		}
	}

	avgCost := totalCost / time.Duration(p.sampleCount)

	// Calculate phase averages and percentages
	phaseAvg := make(map[string]time.Duration)
	phasePct := make(map[string]float64)
	for phase, sum := range phaseSum {
		phaseAvg[phase] = sum / time.Duration(p.sampleCount)
		if avgCost > 0 {
			phasePct[phase] = float64(phaseAvg[phase]) / float64(avgCost) * 100
		}
	}

	// Calculate throughput
	var framesPerSec float64
	if avgCost > 0 {
		framesPerSec = float64(time.Second) / float64(avgCost)
	}

	return PerfStats{
		AvgCost:         avgCost,
		MinCost:         minCost,
		MaxCost:         maxCost,
		PhaseAvg:        phaseAvg,
		PhasePct:        phasePct,
		FramesPerSecond: framesPerSec,
		FrameDuration:   p.frameDuration,
		FPS:             fps,
	}
}

// LogStats logs performance statistics.
func (s PerfStats) LogStats() {
	attrs := []any{
		"avg_cost_us", s.AvgCost.Microseconds(),
		"min_cost_us", s.MinCost.Microseconds(),
		"max_cost_us", s.MaxCost.Microseconds(),
		"frames_per_sec", int(s.FramesPerSecond),
	}

	if s.FPS > 0 {
		attrs = append(attrs, "fps", int(s.FPS))
	}

	for _, phase := range Phases {
		if pct, ok := s.PhasePct[phase]; ok && pct > 0.1 {
			attrs = append(attrs, phase+"_pct", int(pct*10)/10.0)
		}
	}

	slog.Info("perf", attrs...)
}

// LogValue implements slog.LogValuer for structured logging.
func (s PerfStats) LogValue() slog.Value {
	attrs := []slog.Attr{
		slog.Int64("avg_cost_us", s.AvgCost.Microseconds()),
		slog.Int64("min_cost_us", s.MinCost.Microseconds()),
		slog.Int64("max_cost_us", s.MaxCost.Microseconds()),
		slog.Float64("frames_per_sec", s.FramesPerSecond),
	}

	if s.FPS > 0 {
		attrs = append(attrs, slog.Float64("fps", s.FPS))
	}

	for phase, pct := range s.PhasePct {
		attrs = append(attrs, slog.Float64(phase+"_pct", pct))
	}

	return slog.GroupValue(attrs...)
}

// PerfStatsCSV is a flat struct for CSV export of performance stats.
type PerfStatsCSV struct {
	WindowEnd    uint64  `csv:"window_end"`
	AvgCostUS    int64   `csv:"avg_cost_us"`
	MinCostUS    int64   `csv:"min_cost_us"`
	MaxCostUS    int64   `csv:"max_cost_us"`
	FramesPerSec float64 `csv:"frames_per_sec"`
	FPS          float64 `csv:"fps"`
	AdvancePct   float64 `csv:"advance_pct"`
	RenderPct    float64 `csv:"render_pct"`
}

// ToCSV converts PerfStats to a flat CSV-friendly struct.
func (s PerfStats) ToCSV(windowEnd uint64) PerfStatsCSV {
	return PerfStatsCSV{
		WindowEnd:    windowEnd,
		AvgCostUS:    s.AvgCost.Microseconds(),
		MinCostUS:    s.MinCost.Microseconds(),
		MaxCostUS:    s.MaxCost.Microseconds(),
		FramesPerSec: s.FramesPerSecond,
		FPS:          s.FPS,
		AdvancePct:   s.PhasePct[PhaseAdvance],
		RenderPct:    s.PhasePct[PhaseRender],
	}
}

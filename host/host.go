// Package host runs the glyph field in a resizable raylib window, or headless on a
// manual clock. It translates window events into animator calls and drives the
// frame clock once per display refresh.
package host

import (
	"log/slog"
	"math/rand"
	"time"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/glyphdrift/animator"
	"github.com/pthm-cable/glyphdrift/config"
	"github.com/pthm-cable/glyphdrift/frameclock"
	"github.com/pthm-cable/glyphdrift/headless"
	"github.com/pthm-cable/glyphdrift/motion"
	"github.com/pthm-cable/glyphdrift/renderer"
	"github.com/pthm-cable/glyphdrift/telemetry"
	"github.com/pthm-cable/glyphdrift/ui"
)

// Options configures a Host.
type Options struct {
	Seed           int64
	LogStats       bool
	StatsWindowSec float64 // 0 = use config
	OutputDir      string  // empty = no CSV output
	Headless       bool
	ReducedMotion  bool // initial preference, ORed with config
}

// Host owns the window-side state around one animator.
type Host struct {
	cfg   *config.Config
	clock *frameclock.Clock
	time  *frameclock.ManualTime // headless only
	anim  *animator.Animator

	surface    *renderer.GlyphSurface // graphical only
	recorder   *headless.Surface      // headless only
	preference *motion.Preference
	hud        *ui.HUD
	hudColors  []rl.Color

	perf          *telemetry.PerfCollector
	collector     *telemetry.Collector
	outputManager *telemetry.OutputManager
	statsCallback StatsCallback
	logStats      bool

	frameInterval   time.Duration
	simulatedHidden bool
	windowHidden    bool
	lastReduced     bool
	updates         uint64
}

// New builds a host. In graphical mode the raylib window must already be open.
func New(opts Options) *Host {
	cfg := config.Cfg()

	h := &Host{
		cfg:        cfg,
		logStats:   opts.LogStats,
		preference: motion.NewPreference(opts.ReducedMotion || cfg.Motion.ReducedMotion, cfg.Motion.EnvVar),
		perf:       telemetry.NewPerfCollector(cfg.Telemetry.PerfWindow),
	}

	fps := cfg.Screen.TargetFPS
	if fps <= 0 {
		fps = 60
	}
	h.frameInterval = time.Second / time.Duration(fps)

	var (
		surface   animator.Surface
		container animator.Container
	)
	if opts.Headless {
		h.time = frameclock.NewManualTime(time.Unix(0, 0))
		h.clock = frameclock.New(h.time)
		h.recorder = headless.NewSurface(0, 0)
		surface = h.recorder
		container = headless.NewContainer(cfg.Screen.Width, cfg.Screen.Height)
	} else {
		h.clock = frameclock.New(frameclock.NewSystemTime())
		h.surface = renderer.NewGlyphSurface(
			rl.GetScreenWidth(), rl.GetScreenHeight(),
			cfg.Font.Path, cfg.Font.BaseSize, cfg.Derived.Runes, cfg.Font.Spacing,
		)
		surface = h.surface
		container = windowContainer{}
		h.hud = ui.NewHUD(10, 10)
		for _, c := range cfg.Derived.Active.Colors {
			h.hudColors = append(h.hudColors, rl.Color{R: c.R, G: c.G, B: c.B, A: uint8(c.A * 255)})
		}
	}

	statsWindow := cfg.Telemetry.StatsWindow
	if opts.StatsWindowSec > 0 {
		statsWindow = opts.StatsWindowSec
	}
	h.collector = telemetry.NewCollector(statsWindow, cfg.Telemetry.FrameHistory, h.now())

	if opts.OutputDir != "" {
		om, err := telemetry.NewOutputManager(opts.OutputDir)
		if err != nil {
			slog.Error("failed to create output manager", "error", err)
		} else {
			h.outputManager = om
			if err := om.WriteConfig(cfg); err != nil {
				slog.Error("failed to write config snapshot", "error", err)
			}
		}
	}

	seed := opts.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}

	h.anim = animator.New(animator.Options{
		Surface:       surface,
		Container:     container,
		Scheduler:     h.clock,
		ReducedMotion: h.preference,
		Profile:       cfg.Derived.Active,
		Debounce:      cfg.Derived.Debounce,
		Rand:          rand.New(rand.NewSource(seed)),
		Logger:        slog.Default().With("component", "animator"),
		Perf:          h.perf,
		Observer:      h.collector,
	})
	h.lastReduced = h.preference.Active()
	h.anim.Start()

	slog.Info("field started",
		"profile", cfg.Profile,
		"particles", cfg.Derived.Active.ParticleCount,
		"headless", opts.Headless,
		"reduced_motion", h.lastReduced,
		"seed", seed,
	)
	return h
}

// Animator returns the driven animator.
func (h *Host) Animator() *animator.Animator {
	return h.anim
}

// Recorder returns the in-memory surface in headless mode, nil otherwise.
func (h *Host) Recorder() *headless.Surface {
	return h.recorder
}

// Updates returns the number of host updates (display refreshes) processed.
func (h *Host) Updates() uint64 {
	return h.updates
}

// Unload releases GPU resources and closes output files.
func (h *Host) Unload() {
	h.anim.Dispose()
	if h.surface != nil {
		h.surface.Unload()
	}
	if h.outputManager != nil {
		if err := h.outputManager.Close(); err != nil {
			slog.Error("failed to close output", "error", err)
		}
	}
}

func (h *Host) now() time.Time {
	if h.time != nil {
		return h.time.Now()
	}
	return time.Now()
}

// windowContainer measures the raylib window's client area.
type windowContainer struct{}

func (windowContainer) Size() (int, int, bool) {
	w, hgt := rl.GetScreenWidth(), rl.GetScreenHeight()
	if w <= 0 || hgt <= 0 {
		return 0, 0, false
	}
	return w, hgt, true
}

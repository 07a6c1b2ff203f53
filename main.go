package main

import (
	"flag"
	"io"
	"log/slog"
	"os"
	"time"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/glyphdrift/config"
	"github.com/pthm-cable/glyphdrift/host"
	"github.com/pthm-cable/glyphdrift/terminal"
)

func main() {
	// CLI flags
	configPath := flag.String("config", "", "Path to config.yaml (empty = use defaults)")
	profile := flag.String("profile", "", "Particle profile to use (empty = use config)")
	headless := flag.Bool("headless", false, "Run without graphics")
	term := flag.Bool("terminal", false, "Render into the terminal instead of a window")
	logFile := flag.String("log-file", "", "Write logs to this file instead of stdout")
	logStats := flag.Bool("log-stats", false, "Output stats via slog")
	statsWindow := flag.Float64("stats-window", 0, "Stats window size in seconds (0 = use config)")
	outputDir := flag.String("output-dir", "", "Output directory for CSV logs and config snapshot")
	seed := flag.Int64("seed", 0, "RNG seed (0 = time-based)")
	maxFrames := flag.Int("frames", 0, "Stop after N display frames (0 = unlimited)")
	reducedMotion := flag.Bool("reduced-motion", false, "Start with reduced motion requested")

	flag.Parse()

	// Set up slog (JSON to stdout for structured logging)
	logOut := io.Writer(os.Stdout)
	if *logFile != "" {
		f, err := os.Create(*logFile)
		if err != nil {
			slog.Error("failed to open log file", "error", err)
			os.Exit(1)
		}
		defer f.Close()
		logOut = f
	} else if *term {
		// The terminal is the canvas
		logOut = io.Discard
	}
	logger := slog.New(slog.NewJSONHandler(logOut, nil))
	slog.SetDefault(logger)

	// Initialize config before anything else
	if err := config.Init(*configPath); err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}
	cfg := config.Cfg()

	if *profile != "" {
		if err := cfg.UseProfile(*profile); err != nil {
			slog.Error("failed to select profile", "error", err, "available", cfg.ProfileNames())
			os.Exit(1)
		}
	}

	// Set up seed
	rngSeed := *seed
	if rngSeed == 0 {
		rngSeed = time.Now().UnixNano()
	}

	opts := host.Options{
		Seed:           rngSeed,
		LogStats:       *logStats,
		StatsWindowSec: *statsWindow,
		OutputDir:      *outputDir,
		Headless:       *headless,
		ReducedMotion:  *reducedMotion,
	}

	if *term {
		err := terminal.Run(terminal.Options{
			Seed:          rngSeed,
			ReducedMotion: *reducedMotion,
			MaxFrames:     *maxFrames,
		})
		if err != nil {
			slog.Error("terminal run failed", "error", err)
			os.Exit(1)
		}
		return
	}

	if *headless {
		// Headless mode - manual clock, in-memory surface, no raylib needed
		if *maxFrames <= 0 {
			slog.Error("headless mode requires -frames")
			os.Exit(1)
		}

		h := host.New(opts)
		defer h.Unload()

		slog.Info("starting headless run",
			"seed", rngSeed,
			"profile", cfg.Profile,
			"frames", *maxFrames,
		)

		for int(h.Updates()) < *maxFrames {
			h.UpdateHeadless()
		}

		anim := h.Animator()
		slog.Info("max frames reached",
			"updates", h.Updates(),
			"frames", anim.Frames(),
			"state", anim.State().String(),
			"resets", anim.Field().Resets(),
		)
		return
	}

	// Graphical mode
	rl.SetConfigFlags(rl.FlagWindowResizable)
	rl.InitWindow(int32(cfg.Screen.Width), int32(cfg.Screen.Height), cfg.Screen.Title)
	defer rl.CloseWindow()

	rl.SetTargetFPS(int32(cfg.Screen.TargetFPS))

	h := host.New(opts)
	defer h.Unload()

	for !rl.WindowShouldClose() {
		h.Update()
		h.Draw()

		if *maxFrames > 0 && int(h.Updates()) >= *maxFrames {
			break
		}
	}
}

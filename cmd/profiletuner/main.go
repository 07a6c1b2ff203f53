// Profile tuner - interactive glyph field preview with sliders.
//
// Usage: go run ./cmd/profiletuner [-config config.yaml] [-profile rich] [-out tuned.yaml]
package main

import (
	"flag"
	"fmt"
	"log/slog"
	"math/rand"
	"os"
	"time"

	gui "github.com/gen2brain/raylib-go/raygui"
	rl "github.com/gen2brain/raylib-go/raylib"
	"gopkg.in/yaml.v3"

	"github.com/pthm-cable/glyphdrift/animator"
	"github.com/pthm-cable/glyphdrift/config"
	"github.com/pthm-cable/glyphdrift/frameclock"
	"github.com/pthm-cable/glyphdrift/renderer"
)

const (
	windowWidth  = 1180
	windowHeight = 720
	previewW     = 800
	previewH     = 700
	panelWidth   = windowWidth - previewW - 30
)

// slider describes one tunable profile field.
type slider struct {
	label    string
	min, max float32
	format   string
	get      func(p *config.ProfileConfig) float64
	set      func(p *config.ProfileConfig, v float64)
}

var sliders = []slider{
	{"Particle count", 0, 200, "%.0f",
		func(p *config.ProfileConfig) float64 { return float64(p.ParticleCount) },
		func(p *config.ProfileConfig, v float64) { p.ParticleCount = int(v) }},
	{"Speed base", 0.05, 3, "%.2f",
		func(p *config.ProfileConfig) float64 { return p.SpeedBase },
		func(p *config.ProfileConfig, v float64) { p.SpeedBase = v }},
	{"Speed min", 0.05, 2, "%.2f",
		func(p *config.ProfileConfig) float64 { return p.SpeedMin },
		func(p *config.ProfileConfig, v float64) { p.SpeedMin = v }},
	{"Speed spread", 0, 2, "%.2f",
		func(p *config.ProfileConfig) float64 { return p.SpeedSpread },
		func(p *config.ProfileConfig, v float64) { p.SpeedSpread = v }},
	{"Size min (px)", 4, 48, "%.0f",
		func(p *config.ProfileConfig) float64 { return p.SizeMin },
		func(p *config.ProfileConfig, v float64) { p.SizeMin = v }},
	{"Size spread (px)", 0, 60, "%.0f",
		func(p *config.ProfileConfig) float64 { return p.SizeSpread },
		func(p *config.ProfileConfig, v float64) { p.SizeSpread = v }},
	{"Rotation max (rad/frame)", 0, 0.1, "%.3f",
		func(p *config.ProfileConfig) float64 { return p.RotationSpeedMax },
		func(p *config.ProfileConfig, v float64) { p.RotationSpeedMax = v }},
	{"Margin (px)", 0, 150, "%.0f",
		func(p *config.ProfileConfig) float64 { return p.Margin },
		func(p *config.ProfileConfig, v float64) { p.Margin = v }},
}

// fixedContainer sizes the preview surface.
type fixedContainer struct{ w, h int }

func (c fixedContainer) Size() (int, int, bool) { return c.w, c.h, true }

func main() {
	configPath := flag.String("config", "", "Path to config.yaml (empty = use defaults)")
	profileName := flag.String("profile", "", "Profile to tune (empty = use config)")
	outPath := flag.String("out", "tuned.yaml", "Where Save writes the tuned config")
	flag.Parse()

	if err := config.Init(*configPath); err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}
	cfg := config.Cfg()
	if *profileName != "" {
		if err := cfg.UseProfile(*profileName); err != nil {
			slog.Error("failed to select profile", "error", err)
			os.Exit(1)
		}
	}

	rl.InitWindow(windowWidth, windowHeight, "Glyph Profile Tuner")
	defer rl.CloseWindow()
	rl.SetTargetFPS(int32(cfg.Screen.TargetFPS))

	original := cfg.Derived.Active
	params := original
	seed := int64(12345)

	clock := frameclock.New(frameclock.NewSystemTime())
	surface := renderer.NewGlyphSurface(previewW, previewH, cfg.Font.Path, cfg.Font.BaseSize, cfg.Derived.Runes, cfg.Font.Spacing)
	defer surface.Unload()

	var anim *animator.Animator
	restart := func() {
		if anim != nil {
			anim.Dispose()
		}
		anim = animator.New(animator.Options{
			Surface:   surface,
			Container: fixedContainer{previewW, previewH},
			Scheduler: clock,
			Profile:   params,
			Debounce:  cfg.Derived.Debounce,
			Rand:      rand.New(rand.NewSource(seed)),
		})
		anim.Start()
	}
	restart()

	status := ""
	bg := cfg.Screen.Background

	for !rl.WindowShouldClose() {
		clock.Tick()

		rl.BeginDrawing()
		rl.ClearBackground(rl.RayWhite)

		rl.DrawRectangle(10, 10, previewW, previewH, rl.Color{R: bg.R, G: bg.G, B: bg.B, A: uint8(bg.A * 255)})
		surface.Draw(10, 10)
		rl.DrawRectangleLines(10, 10, previewW, previewH, rl.DarkGray)

		panelX := float32(previewW + 20)
		panelY := float32(10)

		rl.DrawText("Profile: "+cfg.Profile, int32(panelX), int32(panelY), 20, rl.DarkGray)
		panelY += 35

		changed := false
		for _, s := range sliders {
			rl.DrawText(s.label, int32(panelX), int32(panelY), 14, rl.Gray)
			panelY += 18
			cur := float32(s.get(&params))
			next := gui.SliderBar(
				rl.Rectangle{X: panelX, Y: panelY, Width: float32(panelWidth - 80), Height: 20},
				"", "",
				cur, s.min, s.max,
			)
			rl.DrawText(fmt.Sprintf(s.format, cur), int32(panelX+float32(panelWidth-70)), int32(panelY+2), 16, rl.DarkGray)
			if next != cur {
				s.set(&params, float64(next))
				changed = true
			}
			panelY += 35
		}

		if changed {
			if err := params.Validate(); err != nil {
				status = err.Error()
			} else {
				status = ""
				restart()
			}
		}

		if gui.Button(rl.Rectangle{X: panelX, Y: panelY, Width: 120, Height: 30}, "Reseed") {
			seed = time.Now().UnixNano()
			restart()
		}
		if gui.Button(rl.Rectangle{X: panelX + 130, Y: panelY, Width: 120, Height: 30}, "Reset All") {
			params = original
			restart()
		}
		panelY += 40

		if gui.Button(rl.Rectangle{X: panelX, Y: panelY, Width: 250, Height: 30}, "Save "+*outPath) {
			cfg.Profiles[cfg.Profile] = params
			if err := cfg.UseProfile(cfg.Profile); err != nil {
				status = err.Error()
			} else if err := cfg.WriteYAML(*outPath); err != nil {
				status = err.Error()
			} else {
				status = "saved " + *outPath
				slog.Info("tuned profile saved", "path", *outPath, "profile", cfg.Profile)
			}
		}
		panelY += 45

		rl.DrawText(fmt.Sprintf("Particles: %d  Recycled: %d", anim.Field().Len(), anim.Field().Resets()), int32(panelX), int32(panelY), 14, rl.DarkGray)
		panelY += 20
		if status != "" {
			rl.DrawText(status, int32(panelX), int32(panelY), 14, rl.Maroon)
		}

		rl.DrawText("Press C to copy profile YAML to clipboard", int32(panelX), int32(windowHeight-30), 12, rl.LightGray)

		if rl.IsKeyPressed(rl.KeyC) {
			data, err := yaml.Marshal(map[string]config.ProfileConfig{cfg.Profile: params})
			if err != nil {
				status = err.Error()
			} else {
				rl.SetClipboardText(string(data))
				status = "copied"
			}
		}

		rl.EndDrawing()
	}

	anim.Dispose()
}

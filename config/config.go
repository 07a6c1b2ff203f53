// Package config provides configuration loading and access for the glyph field.
package config

import (
	_ "embed"
	"fmt"
	"os"
	"sort"
	"time"

	"gopkg.in/yaml.v3"
)

//go:embed defaults.yaml
var defaultsYAML []byte

// Config holds all animator configuration parameters.
type Config struct {
	Screen    ScreenConfig             `yaml:"screen"`
	Profile   string                   `yaml:"profile"` // Name of the active profile
	Profiles  map[string]ProfileConfig `yaml:"profiles"`
	Resize    ResizeConfig             `yaml:"resize"`
	Motion    MotionConfig             `yaml:"motion"`
	Font      FontConfig               `yaml:"font"`
	Terminal  TerminalConfig           `yaml:"terminal"`
	Telemetry TelemetryConfig          `yaml:"telemetry"`

	// Derived values computed after loading
	Derived DerivedConfig `yaml:"-"`
}

// ScreenConfig holds display settings for the host window.
type ScreenConfig struct {
	Width      int    `yaml:"width"`
	Height     int    `yaml:"height"`
	TargetFPS  int    `yaml:"target_fps"`
	Title      string `yaml:"title"`
	Background RGBA   `yaml:"background"`
}

// ProfileConfig is one set of tunables for the particle field.
type ProfileConfig struct {
	ParticleCount    int      `yaml:"particle_count"`
	SpeedBase        float64  `yaml:"speed_base"` // Multiplier applied to every spawn speed
	SpeedMin         float64  `yaml:"speed_min"`  // speed = (rand*spread + min) * base
	SpeedSpread      float64  `yaml:"speed_spread"`
	SizeMin          float64  `yaml:"size_min"` // Font size in pixels
	SizeSpread       float64  `yaml:"size_spread"`
	RotationSpeedMax float64  `yaml:"rotation_speed_max"` // Radians per frame, either direction
	Margin           float64  `yaml:"margin"`             // Reset threshold above the top edge and re-entry offset below the bottom
	TrackOpacity     bool     `yaml:"track_opacity"`
	OpacityMin       float64  `yaml:"opacity_min"`
	OpacityMax       float64  `yaml:"opacity_max"`
	Symbols          []string `yaml:"symbols"`
	Colors           []RGBA   `yaml:"colors"`
}

// RGBA is a fill color with a fractional alpha, as in CSS rgba().
type RGBA struct {
	R uint8   `yaml:"r"`
	G uint8   `yaml:"g"`
	B uint8   `yaml:"b"`
	A float64 `yaml:"a"` // 0..1
}

// ResizeConfig holds resize handling parameters.
type ResizeConfig struct {
	DebounceMS int `yaml:"debounce_ms"`
}

// MotionConfig holds accessibility settings.
type MotionConfig struct {
	ReducedMotion bool   `yaml:"reduced_motion"` // Initial preference value
	EnvVar        string `yaml:"env_var"`        // Environment variable that forces reduced motion when set
}

// FontConfig holds glyph font settings.
type FontConfig struct {
	Path     string  `yaml:"path"`      // TTF/OTF path (empty = raylib default font)
	BaseSize int     `yaml:"base_size"` // Atlas rasterization size
	Spacing  float64 `yaml:"spacing"`
}

// TerminalConfig holds settings for the terminal host.
type TerminalConfig struct {
	CellWidth  float64 `yaml:"cell_width"`  // Pixels per terminal column
	CellHeight float64 `yaml:"cell_height"` // Pixels per terminal row
	AlphaBoost float64 `yaml:"alpha_boost"` // Terminal cells cannot blend, so faint colors are scaled up
}

// TelemetryConfig holds telemetry parameters.
type TelemetryConfig struct {
	PerfWindow   int     `yaml:"perf_window"`   // Frames in the rolling perf window
	StatsWindow  float64 `yaml:"stats_window"`  // Seconds between stats log lines
	FrameHistory int     `yaml:"frame_history"` // Frame durations kept for percentile stats
}

// DerivedConfig holds computed values derived from the loaded config.
type DerivedConfig struct {
	Active   ProfileConfig // Resolved active profile
	Debounce time.Duration // Resize.DebounceMS as a duration
	Runes    []rune        // Unique runes across all profile symbols (font atlas)
}

// global holds the loaded configuration.
var global *Config

// Init loads configuration from the given path, or uses embedded defaults if path is empty.
// Must be called before Cfg().
func Init(path string) error {
	cfg, err := Load(path)
	if err != nil {
		return err
	}
	global = cfg
	return nil
}

// MustInit is like Init but panics on error.
func MustInit(path string) {
	if err := Init(path); err != nil {
		panic(fmt.Sprintf("config: failed to initialize: %v", err))
	}
}

// Cfg returns the global configuration. Panics if Init was not called.
func Cfg() *Config {
	if global == nil {
		panic("config: Cfg() called before Init()")
	}
	return global
}

// Load loads configuration from a YAML file, merging with embedded defaults.
// If path is empty, only embedded defaults are used.
func Load(path string) (*Config, error) {
	cfg := &Config{}
	if err := yaml.Unmarshal(defaultsYAML, cfg); err != nil {
		return nil, fmt.Errorf("parsing embedded defaults: %w", err)
	}

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("reading config file: %w", err)
		}
		// Only overwrites fields present in file
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parsing config file: %w", err)
		}
	}

	if err := cfg.computeDerived(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// UseProfile switches the active profile and recomputes derived values.
func (c *Config) UseProfile(name string) error {
	prev := c.Profile
	c.Profile = name
	if err := c.computeDerived(); err != nil {
		c.Profile = prev
		return err
	}
	return nil
}

// ProfileNames returns the configured profile names in sorted order.
func (c *Config) ProfileNames() []string {
	names := make([]string, 0, len(c.Profiles))
	for name := range c.Profiles {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// computeDerived resolves the active profile and fills in derived values.
func (c *Config) computeDerived() error {
	p, ok := c.Profiles[c.Profile]
	if !ok {
		return fmt.Errorf("unknown profile %q", c.Profile)
	}
	if err := p.Validate(); err != nil {
		return fmt.Errorf("profile %q: %w", c.Profile, err)
	}
	c.Derived.Active = p
	c.Derived.Debounce = time.Duration(c.Resize.DebounceMS) * time.Millisecond

	seen := make(map[rune]bool)
	c.Derived.Runes = c.Derived.Runes[:0]
	for _, name := range c.ProfileNames() {
		for _, sym := range c.Profiles[name].Symbols {
			for _, r := range sym {
				if !seen[r] {
					seen[r] = true
					c.Derived.Runes = append(c.Derived.Runes, r)
				}
			}
		}
	}
	return nil
}

// Validate checks that the profile can spawn particles.
func (p ProfileConfig) Validate() error {
	switch {
	case p.ParticleCount < 0:
		return fmt.Errorf("particle_count must be >= 0, got %d", p.ParticleCount)
	case len(p.Symbols) == 0:
		return fmt.Errorf("symbols must not be empty")
	case len(p.Colors) == 0:
		return fmt.Errorf("colors must not be empty")
	case p.SpeedBase <= 0 || p.SpeedMin <= 0 || p.SpeedSpread < 0:
		return fmt.Errorf("speed must be positive (base=%v min=%v spread=%v)", p.SpeedBase, p.SpeedMin, p.SpeedSpread)
	case p.SizeMin <= 0 || p.SizeSpread < 0:
		return fmt.Errorf("size must be positive (min=%v spread=%v)", p.SizeMin, p.SizeSpread)
	case p.Margin < 0:
		return fmt.Errorf("margin must be >= 0, got %v", p.Margin)
	case p.TrackOpacity && (p.OpacityMin < 0 || p.OpacityMax > 1 || p.OpacityMin > p.OpacityMax):
		return fmt.Errorf("opacity range [%v, %v] must lie within [0, 1]", p.OpacityMin, p.OpacityMax)
	}
	return nil
}

// WriteYAML writes the configuration to a YAML file.
func (c *Config) WriteYAML(path string) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("writing config file: %w", err)
	}
	return nil
}

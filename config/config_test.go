package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load(\"\") error: %v", err)
	}

	if cfg.Profile != "hero" {
		t.Errorf("expected default profile hero, got %q", cfg.Profile)
	}

	p := cfg.Derived.Active
	if p.ParticleCount != 50 {
		t.Errorf("expected 50 particles, got %d", p.ParticleCount)
	}
	if len(p.Symbols) != 32 {
		t.Errorf("expected 32 symbols, got %d", len(p.Symbols))
	}
	if len(p.Colors) != 3 {
		t.Errorf("expected 3 colors, got %d", len(p.Colors))
	}
	if p.Margin != 50 {
		t.Errorf("expected margin 50, got %v", p.Margin)
	}
	if p.TrackOpacity {
		t.Error("hero profile should not track opacity")
	}
	if cfg.Derived.Debounce != 200*time.Millisecond {
		t.Errorf("expected 200ms debounce, got %v", cfg.Derived.Debounce)
	}
}

func TestDerivedRunesUnique(t *testing.T) {
	cfg, err := Load("")
	if err != nil {
		t.Fatal(err)
	}

	seen := make(map[rune]bool)
	for _, r := range cfg.Derived.Runes {
		if seen[r] {
			t.Fatalf("rune %q listed twice", r)
		}
		seen[r] = true
	}
	for _, r := range "π∑</>∂" {
		if !seen[r] {
			t.Errorf("expected rune %q in atlas set", r)
		}
	}
}

func TestLoadUserOverride(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	data := []byte("profile: rich\nresize:\n  debounce_ms: 50\n")
	if err := os.WriteFile(path, data, 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load error: %v", err)
	}

	if !cfg.Derived.Active.TrackOpacity {
		t.Error("rich profile should track opacity")
	}
	if cfg.Derived.Debounce != 50*time.Millisecond {
		t.Errorf("expected 50ms debounce, got %v", cfg.Derived.Debounce)
	}
	// Untouched sections keep their defaults
	if cfg.Screen.TargetFPS != 60 {
		t.Errorf("expected default target fps 60, got %d", cfg.Screen.TargetFPS)
	}
}

func TestLoadErrors(t *testing.T) {
	dir := t.TempDir()

	unknown := filepath.Join(dir, "unknown.yaml")
	if err := os.WriteFile(unknown, []byte("profile: nope\n"), 0644); err != nil {
		t.Fatal(err)
	}
	malformed := filepath.Join(dir, "bad.yaml")
	if err := os.WriteFile(malformed, []byte("profile: [\n"), 0644); err != nil {
		t.Fatal(err)
	}

	tests := []struct {
		name string
		path string
	}{
		{"missing file", filepath.Join(dir, "missing.yaml")},
		{"unknown profile", unknown},
		{"malformed yaml", malformed},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := Load(tt.path); err == nil {
				t.Errorf("expected error for %s", tt.name)
			}
		})
	}
}

func TestProfileValidate(t *testing.T) {
	valid := ProfileConfig{
		ParticleCount: 10,
		SpeedBase:     1,
		SpeedMin:      0.5,
		SizeMin:       12,
		Symbols:       []string{"π"},
		Colors:        []RGBA{{A: 0.1}},
	}

	tests := []struct {
		name    string
		mutate  func(p *ProfileConfig)
		wantErr bool
	}{
		{"valid", func(p *ProfileConfig) {}, false},
		{"zero particles", func(p *ProfileConfig) { p.ParticleCount = 0 }, false},
		{"negative particles", func(p *ProfileConfig) { p.ParticleCount = -1 }, true},
		{"no symbols", func(p *ProfileConfig) { p.Symbols = nil }, true},
		{"no colors", func(p *ProfileConfig) { p.Colors = nil }, true},
		{"zero speed", func(p *ProfileConfig) { p.SpeedMin = 0 }, true},
		{"zero size", func(p *ProfileConfig) { p.SizeMin = 0 }, true},
		{"negative margin", func(p *ProfileConfig) { p.Margin = -1 }, true},
		{"inverted opacity", func(p *ProfileConfig) {
			p.TrackOpacity = true
			p.OpacityMin, p.OpacityMax = 0.8, 0.2
		}, true},
		{"untracked opacity ignored", func(p *ProfileConfig) {
			p.OpacityMin, p.OpacityMax = 0.8, 0.2
		}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := valid
			tt.mutate(&p)
			err := p.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestUseProfile(t *testing.T) {
	cfg, err := Load("")
	if err != nil {
		t.Fatal(err)
	}

	if err := cfg.UseProfile("rich"); err != nil {
		t.Fatalf("UseProfile(rich): %v", err)
	}
	if cfg.Derived.Active.ParticleCount != 35 {
		t.Errorf("expected rich particle count 35, got %d", cfg.Derived.Active.ParticleCount)
	}

	if err := cfg.UseProfile("missing"); err == nil {
		t.Error("expected error for missing profile")
	}
	if cfg.Profile != "rich" {
		t.Errorf("failed switch should keep previous profile, got %q", cfg.Profile)
	}
}

func TestWriteYAMLRoundtrip(t *testing.T) {
	cfg, err := Load("")
	if err != nil {
		t.Fatal(err)
	}
	if err := cfg.UseProfile("rich"); err != nil {
		t.Fatal(err)
	}

	path := filepath.Join(t.TempDir(), "snapshot.yaml")
	if err := cfg.WriteYAML(path); err != nil {
		t.Fatalf("WriteYAML: %v", err)
	}

	loaded, err := Load(path)
	if err != nil {
		t.Fatalf("reloading snapshot: %v", err)
	}
	if loaded.Profile != "rich" {
		t.Errorf("expected snapshot profile rich, got %q", loaded.Profile)
	}
}

// Package ui draws the heads-up display over the glyph field.
package ui

import rl "github.com/gen2brain/raylib-go/raylib"

// Theme holds UI styling constants.
type Theme struct {
	PanelBg        rl.Color
	PanelBorder    rl.Color
	SectionHeader  rl.Color
	LabelColor     rl.Color
	ValueColor     rl.Color
	WarnColor      rl.Color
	BarBg          rl.Color
	BarFill        rl.Color
	Padding        int32
	LineHeight     int32
	LabelWidth     int32
	BarHeight      int32
	FontSize       int32
	HeaderFontSize int32
	ButtonWidth    float32
	ButtonHeight   float32
}

// DefaultTheme returns the default UI theme.
func DefaultTheme() Theme {
	return Theme{
		PanelBg:        rl.Color{R: 20, G: 25, B: 30, A: 220},
		PanelBorder:    rl.Color{R: 60, G: 70, B: 80, A: 255},
		SectionHeader:  rl.Yellow,
		LabelColor:     rl.LightGray,
		ValueColor:     rl.RayWhite,
		WarnColor:      rl.Color{R: 230, G: 160, B: 80, A: 255},
		BarBg:          rl.Color{R: 40, G: 40, B: 40, A: 255},
		BarFill:        rl.Color{R: 100, G: 150, B: 200, A: 255},
		Padding:        10,
		LineHeight:     16,
		LabelWidth:     70,
		BarHeight:      10,
		FontSize:       12,
		HeaderFontSize: 14,
		ButtonWidth:    110,
		ButtonHeight:   24,
	}
}

// HUDData holds everything the HUD shows for one frame.
type HUDData struct {
	Title         string
	State         string
	Profile       string
	Particles     int
	Resets        uint64
	Rebuilds      uint64
	FPS           int32
	FrameCostUS   float64
	PhasePct      map[string]float64
	Phases        []string
	Colors        []rl.Color
	ReducedMotion bool
	Hidden        bool
	Width, Height int
}

// HUDActions reports the buttons pressed this frame.
type HUDActions struct {
	ToggleReducedMotion bool
	ToggleHidden        bool
}

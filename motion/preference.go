// Package motion holds the user's reduced-motion preference.
package motion

import (
	"os"
	"strings"
)

// Preference is the reduced-motion signal. It is on when toggled by the user or when
// the configured environment variable holds a truthy value, and is re-read on every
// call so a change takes effect on the next frame.
type Preference struct {
	toggled bool
	envVar  string
	lookup  func(string) (string, bool)
}

// NewPreference creates a preference with an initial toggle position.
func NewPreference(initial bool, envVar string) *Preference {
	return &Preference{toggled: initial, envVar: envVar, lookup: os.LookupEnv}
}

// Toggle flips the user toggle and returns the new effective value.
func (p *Preference) Toggle() bool {
	p.toggled = !p.toggled
	return p.Active()
}

// Toggled reports the user toggle alone.
func (p *Preference) Toggled() bool {
	return p.toggled
}

// Active reports whether motion should be reduced.
func (p *Preference) Active() bool {
	if p.toggled {
		return true
	}
	if p.envVar == "" {
		return false
	}
	v, ok := p.lookup(p.envVar)
	if !ok {
		return false
	}
	switch strings.ToLower(strings.TrimSpace(v)) {
	case "", "0", "false", "no", "off":
		return false
	}
	return true
}

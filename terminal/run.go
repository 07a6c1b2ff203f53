package terminal

import (
	"fmt"
	"log/slog"
	"math/rand"
	"time"

	"github.com/gdamore/tcell/v2"

	"github.com/pthm-cable/glyphdrift/animator"
	"github.com/pthm-cable/glyphdrift/config"
	"github.com/pthm-cable/glyphdrift/frameclock"
	"github.com/pthm-cable/glyphdrift/motion"
)

// Options configures a terminal run.
type Options struct {
	Seed          int64
	ReducedMotion bool
	MaxFrames     int // 0 = until quit
}

// Run takes over the terminal and animates the field until Escape, Ctrl-C or q.
// Terminal focus changes pause and resume the animation; resizes are debounced.
func Run(opts Options) error {
	screen, err := tcell.NewScreen()
	if err != nil {
		return fmt.Errorf("creating screen: %w", err)
	}
	if err := screen.Init(); err != nil {
		return fmt.Errorf("initializing screen: %w", err)
	}
	defer screen.Fini()
	screen.EnableFocus()

	cfg := config.Cfg()
	tc := cfg.Terminal

	seed := opts.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}

	surface := NewSurface(screen, tc.CellWidth, tc.CellHeight, cfg.Screen.Background, tc.AlphaBoost)
	preference := motion.NewPreference(opts.ReducedMotion || cfg.Motion.ReducedMotion, cfg.Motion.EnvVar)
	clock := frameclock.New(frameclock.NewSystemTime())

	anim := animator.New(animator.Options{
		Surface:       surface,
		Container:     NewContainer(screen, surface.cellW, surface.cellH),
		Scheduler:     clock,
		ReducedMotion: preference,
		Profile:       cfg.Derived.Active,
		Debounce:      cfg.Derived.Debounce,
		Rand:          rand.New(rand.NewSource(seed)),
		Logger:        slog.Default().With("component", "animator"),
	})
	defer anim.Dispose()
	anim.Start()

	fps := cfg.Screen.TargetFPS
	if fps <= 0 {
		fps = 60
	}
	ticker := time.NewTicker(time.Second / time.Duration(fps))
	defer ticker.Stop()

	eventChan := make(chan tcell.Event, 100)
	go func() {
		for {
			ev := screen.PollEvent()
			if ev == nil {
				// Screen finalized
				return
			}
			eventChan <- ev
		}
	}()

	slog.Info("terminal run started", "profile", cfg.Profile, "seed", seed)

	reduced := preference.Active()
	frames := 0
	for {
		select {
		case ev := <-eventChan:
			switch ev := ev.(type) {
			case *tcell.EventKey:
				if ev.Key() == tcell.KeyEscape || ev.Key() == tcell.KeyCtrlC {
					return nil
				}
				if ev.Key() == tcell.KeyRune {
					switch ev.Rune() {
					case 'q':
						return nil
					case 'm':
						slog.Info("reduced motion toggled", "reduced_motion", preference.Toggle())
					}
				}
			case *tcell.EventResize:
				screen.Sync()
				anim.HandleResize()
			case *tcell.EventFocus:
				anim.HandleVisibilityChange(!ev.Focused)
			}

		case <-ticker.C:
			now := preference.Active()
			if reduced && !now {
				anim.Start()
			}
			reduced = now

			clock.Tick()
			screen.Show()

			frames++
			if opts.MaxFrames > 0 && frames >= opts.MaxFrames {
				return nil
			}
		}
	}
}

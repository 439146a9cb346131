// Package game implements the fixed-step simulation loop.
package game

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/Faultbox/midgard-nav/internal/config"
	"github.com/Faultbox/midgard-nav/internal/game/world"
	"github.com/Faultbox/midgard-nav/pkg/math"
)

// Summary reports how a run ended.
type Summary struct {
	Frames       int
	Simulated    time.Duration
	Idle         bool // Script finished and the character came to rest
	Position     math.Vec3
	Interactions map[string]int
}

// Game drives a scene with a fixed timestep.
type Game struct {
	scene    *world.Scene
	dt       float32
	frames   int // Frame budget
	statusAt int // Frames between status logs
	log      *zap.Logger
}

// New creates a game running scene at the configured rate and duration.
func New(cfg *config.Config, scene *world.Scene, log *zap.Logger) (*Game, error) {
	if scene == nil {
		return nil, fmt.Errorf("game: nil scene")
	}
	sim := cfg.Simulation
	if sim.FPS <= 0 {
		return nil, fmt.Errorf("game: fps must be positive, got %d", sim.FPS)
	}
	if log == nil {
		log = zap.NewNop()
	}

	g := &Game{
		scene:    scene,
		dt:       1 / float32(sim.FPS),
		frames:   int(sim.Duration.Seconds() * float64(sim.FPS)),
		statusAt: sim.FPS,
		log:      log,
	}

	log.Info("game initialized",
		zap.Int("fps", sim.FPS),
		zap.Duration("duration", sim.Duration),
		zap.Int("frames", g.frames),
	)
	return g, nil
}

// Run ticks the scene until the frame budget is spent, the scene idles or
// ctx is cancelled. Cancellation returns the summary so far with ctx's error.
func (g *Game) Run(ctx context.Context) (Summary, error) {
	g.log.Info("starting simulation loop")

	idle := false
	for frame := 0; frame < g.frames; frame++ {
		if err := ctx.Err(); err != nil {
			g.log.Warn("simulation cancelled", zap.Int("frame", frame))
			return g.summary(false), err
		}

		g.scene.Tick(g.dt)

		if (frame+1)%g.statusAt == 0 {
			g.logStatus()
		}
		if g.scene.Idle() {
			idle = true
			break
		}
	}

	s := g.summary(idle)
	g.log.Info("simulation finished",
		zap.Int("frames", s.Frames),
		zap.Duration("simulated", s.Simulated),
		zap.Bool("idle", s.Idle),
		zap.Stringer("position", s.Position),
	)
	return s, nil
}

func (g *Game) logStatus() {
	c := g.scene.Controller
	g.log.Debug("status",
		zap.Float64("t", g.scene.Elapsed()),
		zap.Stringer("position", g.scene.Body.Position),
		zap.Stringer("regime", c.Regime()),
		zap.Stringer("sequence", c.Sequence()),
		zap.Float32("speed", g.scene.Animator.Speed()),
		zap.Float32("remaining", g.scene.Agent.RemainingDistance()),
		zap.Bool("input", c.InputEnabled()),
	)
}

func (g *Game) summary(idle bool) Summary {
	interactions := make(map[string]int, len(g.scene.Interactables))
	for name, it := range g.scene.Interactables {
		interactions[name] = it.Interactions
	}
	return Summary{
		Frames:       g.scene.Frame(),
		Simulated:    time.Duration(g.scene.Elapsed() * float64(time.Second)),
		Idle:         idle,
		Position:     g.scene.Body.Position,
		Interactions: interactions,
	}
}

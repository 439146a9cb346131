package world

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/Faultbox/midgard-nav/internal/config"
	"github.com/Faultbox/midgard-nav/internal/engine/character"
	"github.com/Faultbox/midgard-nav/internal/game/entity"
	"github.com/Faultbox/midgard-nav/internal/game/input"
	"github.com/Faultbox/midgard-nav/internal/game/movement"
	"github.com/Faultbox/midgard-nav/pkg/math"
)

// idleSpeed is the animator speed below which the character counts as standing.
const idleSpeed = 0.01

// Scene wires one character, its providers and the scenario's interactables.
type Scene struct {
	Scenario   *Scenario
	Body       *math.Transform
	Agent      *Agent
	Animator   *character.Animator
	Controller *movement.Controller
	Dispatcher *input.Dispatcher

	Interactables map[string]*entity.Interactable

	log       *zap.Logger
	elapsed   float64 // Simulated seconds
	frame     int
	nextClick int
}

// NewScene builds a scene from a validated scenario.
func NewScene(sc *Scenario, cfg *config.Config, log *zap.Logger) (*Scene, error) {
	if log == nil {
		log = zap.NewNop()
	}

	spawn := math.NewTransform(sc.Spawn.Vec3(), sc.SpawnYaw)
	body := &spawn

	agent := NewAgent(sc.NavGrid(), body, AgentConfigFrom(cfg.Navigation), log.Named("agent"))
	animator := character.NewAnimator(body, character.AnimatorConfigFrom(cfg.Animation), log.Named("animator"))

	controller, err := movement.New(movement.Deps{
		Body:     body,
		Agent:    agent,
		Animator: animator,
		NavMesh:  agent,
		Logger:   log.Named("movement"),
	}, movement.SettingsFromConfig(cfg))
	if err != nil {
		return nil, fmt.Errorf("creating controller: %w", err)
	}

	s := &Scene{
		Scenario:      sc,
		Body:          body,
		Agent:         agent,
		Animator:      animator,
		Controller:    controller,
		Dispatcher:    input.NewDispatcher(controller, sc.Spawn[1], log.Named("input")),
		Interactables: make(map[string]*entity.Interactable, len(sc.Interactables)),
		log:           log,
	}

	for _, spec := range sc.Interactables {
		it := entity.New(spec.Name, spec.Position.Vec3(), spec.Size.Vec3(),
			math.NewTransform(spec.Anchor.Vec3(), spec.AnchorYaw), log.Named("entity"))

		for _, r := range spec.Reactions {
			if r.Animate != "" {
				animator.AddClip(character.Clip{
					Name:     r.Animate,
					Tag:      r.Tag,
					Duration: float32(r.Duration.Seconds()),
				})
				it.AddReaction(entity.AnimationReaction{Animator: animator, Trigger: r.Animate})
				continue
			}
			it.AddReaction(entity.TextReaction{Message: r.Say})
		}

		s.Interactables[spec.Name] = it
		s.Dispatcher.Add(it)
	}

	log.Info("scene ready",
		zap.String("scenario", sc.Name),
		zap.Int("width", sc.NavGrid().Width),
		zap.Int("height", sc.NavGrid().Height),
		zap.Int("interactables", len(s.Interactables)),
		zap.Int("clicks", len(sc.Clicks)),
	)
	return s, nil
}

// Tick advances the scene by dt seconds. Clicks due at the start of the
// frame are handled before the controller runs. The agent steps last, so a
// destination set this frame is still pending when the controller sees it.
func (s *Scene) Tick(dt float32) {
	s.deliverClicks()

	s.Controller.Update(dt)
	s.Animator.Update(dt)
	s.Controller.OnAnimatorMove(dt)
	s.Agent.Update(dt)

	s.elapsed += float64(dt)
	s.frame++
}

func (s *Scene) deliverClicks() {
	for s.nextClick < len(s.Scenario.Clicks) {
		click := s.Scenario.Clicks[s.nextClick]
		if click.At.Seconds() > s.elapsed {
			return
		}
		s.nextClick++

		enabled := s.Controller.InputEnabled()
		var res input.ClickResult
		if click.Ground != nil {
			res = s.Dispatcher.ClickAt(click.Ground.Vec3())
		} else {
			res = s.Dispatcher.ClickAt(s.Interactables[click.Interactable].Position)
		}
		s.log.Info("click",
			zap.Duration("at", click.At),
			zap.Stringer("kind", res.Kind),
			zap.Stringer("point", res.Point),
			zap.Bool("input_enabled", enabled),
		)
	}
}

// ClicksRemaining returns how many scripted clicks are still to be delivered.
func (s *Scene) ClicksRemaining() int {
	return len(s.Scenario.Clicks) - s.nextClick
}

// Idle reports whether the script is exhausted and the character is standing
// still with input enabled.
func (s *Scene) Idle() bool {
	if s.ClicksRemaining() > 0 || s.Agent.PathPending() {
		return false
	}
	if !s.Controller.InputEnabled() || s.Controller.Sequence() != movement.SequenceIdle {
		return false
	}
	if s.Animator.Speed() > idleSpeed {
		return false
	}
	return s.Controller.Regime() == movement.RegimeStopping || s.Agent.DesiredVelocity().IsZero()
}

// Elapsed returns the simulated time in seconds.
func (s *Scene) Elapsed() float64 {
	return s.elapsed
}

// Frame returns the number of ticks run.
func (s *Scene) Frame() int {
	return s.frame
}

// Package character provides the animation state and root motion of the controlled character.
package character

import (
	"go.uber.org/zap"

	"github.com/Faultbox/midgard-nav/internal/config"
	"github.com/Faultbox/midgard-nav/pkg/math"
)

// LocomotionState is the name of the default idle/walk/run blend state.
const LocomotionState = "Locomotion"

// DefaultInteractionTag tags clips registered without an explicit tag.
const DefaultInteractionTag = "Interaction"

// Clip is a one-shot animation entered by a trigger of the same name.
type Clip struct {
	Name     string
	Tag      string
	Duration float32 // Seconds before returning to locomotion
}

// AnimatorConfig holds animator settings.
type AnimatorConfig struct {
	LocomotionTag   string
	RootMotionScale float32
}

// AnimatorConfigFrom converts loaded configuration.
func AnimatorConfigFrom(cfg config.AnimationConfig) AnimatorConfig {
	return AnimatorConfig{
		LocomotionTag:   cfg.LocomotionTag,
		RootMotionScale: cfg.RootMotionScale,
	}
}

// Animator blends locomotion from a damped speed parameter and plays
// triggered one-shot clips. Root motion is produced only while in locomotion.
type Animator struct {
	cfg   AnimatorConfig
	body  *math.Transform
	clips map[string]Clip
	log   *zap.Logger

	speed         float32
	speedVelocity float32

	state     string
	tag       string
	stateTime float32
	trigger   string
	delta     math.Vec3
}

// NewAnimator creates an animator in the locomotion state.
func NewAnimator(body *math.Transform, cfg AnimatorConfig, log *zap.Logger) *Animator {
	if log == nil {
		log = zap.NewNop()
	}
	if cfg.LocomotionTag == "" {
		cfg.LocomotionTag = LocomotionState
	}
	return &Animator{
		cfg:   cfg,
		body:  body,
		clips: make(map[string]Clip),
		log:   log,
		state: LocomotionState,
		tag:   cfg.LocomotionTag,
	}
}

// AddClip registers a triggerable clip.
func (a *Animator) AddClip(clip Clip) {
	if clip.Tag == "" {
		clip.Tag = DefaultInteractionTag
	}
	a.clips[clip.Name] = clip
}

// SetSpeedParameter damps the speed parameter toward value.
func (a *Animator) SetSpeedParameter(value, dampTime, dt float32) {
	a.speed = math.SmoothDamp(a.speed, value, &a.speedVelocity, dampTime, dt)
}

// Speed returns the current speed parameter.
func (a *Animator) Speed() float32 {
	return a.speed
}

// SetTrigger queues a clip to start on the next Update.
func (a *Animator) SetTrigger(name string) {
	a.trigger = name
}

// CurrentStateTag returns the tag of the playing state.
func (a *Animator) CurrentStateTag() string {
	return a.tag
}

// State returns the name of the playing state.
func (a *Animator) State() string {
	return a.state
}

// MotionDelta returns the root motion of the last Update.
func (a *Animator) MotionDelta() math.Vec3 {
	return a.delta
}

// Update advances state time, consumes a pending trigger and computes root motion.
func (a *Animator) Update(dt float32) {
	if a.trigger != "" {
		a.enter(a.trigger)
		a.trigger = ""
	} else {
		a.stateTime += dt
		if clip, ok := a.clips[a.state]; ok && a.stateTime >= clip.Duration {
			a.log.Debug("clip finished", zap.String("clip", clip.Name))
			a.enterLocomotion()
		}
	}

	if a.state != LocomotionState {
		a.delta = math.Vec3{}
		return
	}
	a.delta = a.body.Forward().Scale(a.speed * dt * a.cfg.RootMotionScale)
}

func (a *Animator) enter(name string) {
	clip, ok := a.clips[name]
	if !ok {
		a.log.Warn("unknown animation trigger", zap.String("trigger", name))
		return
	}
	a.state = clip.Name
	a.tag = clip.Tag
	a.stateTime = 0
	a.log.Debug("clip started", zap.String("clip", clip.Name), zap.String("tag", clip.Tag))
}

func (a *Animator) enterLocomotion() {
	a.state = LocomotionState
	a.tag = a.cfg.LocomotionTag
	a.stateTime = 0
}

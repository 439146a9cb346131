// Package movement implements the click-to-move controller that bridges
// navigation with animation-driven locomotion for one character.
package movement

import (
	"errors"

	"go.uber.org/zap"

	"github.com/Faultbox/midgard-nav/pkg/math"
)

// ErrMissingDependency is returned by New when a required collaborator is nil.
var ErrMissingDependency = errors.New("movement: body, agent and animator are required")

// Regime is the movement phase selected for a frame.
type Regime uint8

const (
	RegimeNone     Regime = iota // Far from the goal and too slow to turn
	RegimeMoving                 // Turning toward the travel direction
	RegimeSlowing                // Inside the stopping radius, approaching directly
	RegimeStopping               // Inside the inner radius, snapped to the goal
)

// String returns the regime name.
func (r Regime) String() string {
	switch r {
	case RegimeMoving:
		return "Moving"
	case RegimeSlowing:
		return "Slowing"
	case RegimeStopping:
		return "Stopping"
	default:
		return "None"
	}
}

// Deps are the collaborators a Controller coordinates.
type Deps struct {
	Body     *math.Transform // Character transform, shared with the agent
	Agent    NavAgent
	Animator Animator
	NavMesh  NavSampler  // Optional; clicks go unsnapped when nil
	Logger   *zap.Logger // Optional
}

// Controller turns clicks into navigation goals and resolves arrival.
// All methods must be called from the frame loop goroutine.
type Controller struct {
	settings Settings
	body     *math.Transform
	agent    NavAgent
	animator Animator
	navMesh  NavSampler
	log      *zap.Logger

	destination  math.Vec3
	interactable Interactable
	inputEnabled bool

	regime   Regime
	sequence SequenceState
	seqTime  float32 // time spent in the current sequence state
}

// New creates a controller whose destination starts at the body's position.
func New(deps Deps, settings Settings) (*Controller, error) {
	if deps.Body == nil || deps.Agent == nil || deps.Animator == nil {
		return nil, ErrMissingDependency
	}
	log := deps.Logger
	if log == nil {
		log = zap.NewNop()
	}
	return &Controller{
		settings:     settings,
		body:         deps.Body,
		agent:        deps.Agent,
		animator:     deps.Animator,
		navMesh:      deps.NavMesh,
		log:          log,
		destination:  deps.Body.Position,
		inputEnabled: true,
	}, nil
}

// Update runs one frame: the interaction wait advances first, then the
// movement regime is classified and the speed fed to the animator.
func (c *Controller) Update(dt float32) {
	c.advanceSequence(dt)

	// Stale path data; try again next frame
	if c.agent.PathPending() {
		return
	}

	speed := c.agent.DesiredVelocity().Length()
	remaining := c.agent.RemainingDistance()
	stopping := c.agent.StoppingDistance()

	regime := RegimeNone
	switch {
	case remaining <= stopping*c.settings.StopDistanceProportion:
		regime = RegimeStopping
		speed = c.stop()
	case remaining <= stopping:
		regime = RegimeSlowing
		speed = c.slow(remaining, stopping, dt)
	case speed > c.settings.TurnSpeedThreshold:
		regime = RegimeMoving
		c.move(dt)
	}

	if regime != c.regime {
		c.log.Debug("regime changed",
			zap.Stringer("from", c.regime),
			zap.Stringer("to", regime),
			zap.Float32("remaining", remaining),
		)
		c.regime = regime
	}

	c.animator.SetSpeedParameter(speed, c.settings.SpeedDampTime, dt)
}

// OnAnimatorMove forwards the animation's root motion to the agent as a velocity.
func (c *Controller) OnAnimatorMove(dt float32) {
	if dt <= 0 {
		return
	}
	c.agent.SetVelocity(c.animator.MotionDelta().Scale(1 / dt))
}

// stop snaps onto the goal and fires an armed interactable.
func (c *Controller) stop() float32 {
	c.agent.Halt()
	c.body.Position = c.destination

	if c.interactable == nil {
		return 0
	}

	target := c.interactable
	_, rotation := target.InteractionAnchor()
	c.body.Rotation = rotation

	// Disarm and block input before firing so the interaction can never repeat.
	c.interactable = nil
	c.beginSequence()
	target.Interact()
	c.log.Info("interaction triggered", zap.Stringer("position", c.body.Position))

	return 0
}

// slow walks straight at the goal with speed and rotation converging on arrival.
func (c *Controller) slow(remaining, stopping, dt float32) float32 {
	c.agent.Halt()
	c.body.Position = c.body.Position.MoveTowards(c.destination, c.settings.SlowingSpeed*dt)

	// 0 at the stopping radius, 1 at the goal
	proportional := 1 - remaining/stopping
	speed := math.Lerp(c.settings.SlowingSpeed, 0, proportional)

	target := c.body.Rotation
	if c.interactable != nil {
		_, target = c.interactable.InteractionAnchor()
	}
	// The distance ratio doubles as the rotation blend factor.
	c.body.Rotation = c.body.Rotation.Lerp(target, proportional)

	return speed
}

// move turns toward the agent's desired velocity.
func (c *Controller) move(dt float32) {
	target := math.LookRotation(c.agent.DesiredVelocity(), math.Up)
	c.body.Rotation = c.body.Rotation.Lerp(target, c.settings.TurnSmoothing*dt)
}

// Destination returns the last commanded goal.
func (c *Controller) Destination() math.Vec3 {
	return c.destination
}

// CurrentInteractable returns the armed interactable, or nil.
func (c *Controller) CurrentInteractable() Interactable {
	return c.interactable
}

// InputEnabled reports whether clicks are currently accepted.
func (c *Controller) InputEnabled() bool {
	return c.inputEnabled
}

// Regime returns the regime selected by the last evaluated frame.
func (c *Controller) Regime() Regime {
	return c.regime
}

// Settings returns the controller tunables.
func (c *Controller) Settings() Settings {
	return c.settings
}

package movement

import (
	"github.com/Faultbox/midgard-nav/pkg/math"
)

// NavAgent is the navigation provider steering the character along a path.
type NavAgent interface {
	// PathPending reports whether a requested path is still being computed.
	PathPending() bool
	// DesiredVelocity is the direction and speed the agent wants to travel.
	DesiredVelocity() math.Vec3
	// RemainingDistance is the distance left along the current path.
	RemainingDistance() float32
	// StoppingDistance is the radius around the goal at which the agent considers itself arrived.
	StoppingDistance() float32
	// SetDestination requests a new path.
	SetDestination(p math.Vec3)
	// Halt stops the agent from moving the character.
	Halt()
	// Resume lets the agent move the character again.
	Resume()
	// SetVelocity overrides the agent's actual velocity.
	SetVelocity(v math.Vec3)
}

// NavSampler snaps arbitrary points onto the navigable surface.
type NavSampler interface {
	// SamplePosition returns the nearest navigable point within maxDistance of p.
	SamplePosition(p math.Vec3, maxDistance float32) (math.Vec3, bool)
}

// Animator is the animation provider driving the character's locomotion blend.
type Animator interface {
	// SetSpeedParameter moves the speed blend parameter toward value with damping.
	SetSpeedParameter(value, dampTime, dt float32)
	// CurrentStateTag is the tag of the state currently playing.
	CurrentStateTag() string
	// MotionDelta is the root motion displacement produced by the last animation step.
	MotionDelta() math.Vec3
}

// Interactable is a world object the character walks up to and interacts with.
// The controller only references interactables; it never owns them.
type Interactable interface {
	// InteractionAnchor is where the character must stand and which way it must face.
	InteractionAnchor() (math.Vec3, math.Quat)
	// Interact fires the object's interaction.
	Interact()
}

package movement

import (
	"go.uber.org/zap"
)

// SequenceState is the phase of the post-interaction input suspension.
type SequenceState uint8

const (
	SequenceIdle          SequenceState = iota // Input accepted
	SequenceDelay                              // Holding input for the fixed delay
	SequenceWaitAnimation                      // Polling for the locomotion tag
)

// String returns the state name.
func (s SequenceState) String() string {
	switch s {
	case SequenceDelay:
		return "Delay"
	case SequenceWaitAnimation:
		return "WaitAnimation"
	default:
		return "Idle"
	}
}

// Sequence returns the current suspension state.
func (c *Controller) Sequence() SequenceState {
	return c.sequence
}

// beginSequence suspends input. Only reachable while input is enabled, so at
// most one sequence runs at a time.
func (c *Controller) beginSequence() {
	c.inputEnabled = false
	c.sequence = SequenceDelay
	c.seqTime = 0
}

// advanceSequence steps the suspension once per frame. It is not cancellable.
func (c *Controller) advanceSequence(dt float32) {
	switch c.sequence {
	case SequenceDelay:
		c.seqTime += dt
		if c.seqTime < c.settings.InputHoldDelay {
			return
		}
		c.sequence = SequenceWaitAnimation
		c.seqTime = 0
		// The tag is checked on the same frame the delay expires.
		c.pollAnimation()

	case SequenceWaitAnimation:
		c.seqTime += dt
		c.pollAnimation()
	}
}

func (c *Controller) pollAnimation() {
	if c.animator.CurrentStateTag() == c.settings.LocomotionTag {
		c.endSequence()
		c.log.Info("interaction finished, input resumed")
		return
	}

	if c.settings.InteractionTimeout > 0 && c.seqTime >= c.settings.InteractionTimeout {
		c.endSequence()
		c.log.Warn("interaction animation never returned to locomotion, input resumed",
			zap.String("tag", c.animator.CurrentStateTag()),
			zap.Float32("waited", c.seqTime),
		)
	}
}

func (c *Controller) endSequence() {
	c.sequence = SequenceIdle
	c.seqTime = 0
	c.inputEnabled = true
}

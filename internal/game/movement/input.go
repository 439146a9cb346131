package movement

import (
	"go.uber.org/zap"

	"github.com/Faultbox/midgard-nav/pkg/math"
)

// OnGroundClick sends the character to a clicked ground point.
// The point is snapped onto the navigable surface when one lies within the
// sample distance; otherwise the raw point is used.
func (c *Controller) OnGroundClick(hit math.Vec3) {
	if !c.inputEnabled {
		c.log.Debug("ground click ignored, input suspended", zap.Stringer("hit", hit))
		return
	}

	c.interactable = nil

	dest := hit
	if c.navMesh != nil {
		if p, ok := c.navMesh.SamplePosition(hit, c.settings.NavMeshSampleDistance); ok {
			dest = p
		} else {
			c.log.Debug("click off navigable surface, using raw point", zap.Stringer("hit", hit))
		}
	}

	c.setGoal(dest)
}

// OnInteractableClick sends the character to an interactable's anchor and
// arms it to fire on arrival.
func (c *Controller) OnInteractableClick(target Interactable) {
	if !c.inputEnabled {
		c.log.Debug("interactable click ignored, input suspended")
		return
	}
	if target == nil {
		return
	}

	c.interactable = target
	anchor, _ := target.InteractionAnchor()
	c.setGoal(anchor)
}

func (c *Controller) setGoal(dest math.Vec3) {
	c.destination = dest
	c.agent.SetDestination(dest)
	c.agent.Resume()
	c.log.Debug("destination set",
		zap.Stringer("destination", dest),
		zap.Bool("interactable", c.interactable != nil),
	)
}

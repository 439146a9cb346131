// Package input routes pointer clicks to the movement controller.
package input

import (
	"go.uber.org/zap"

	"github.com/Faultbox/midgard-nav/internal/engine/picking"
	"github.com/Faultbox/midgard-nav/internal/game/movement"
	"github.com/Faultbox/midgard-nav/pkg/math"
)

// ClickHeight is how far above a world point ClickAt starts its ray.
const ClickHeight = 100

// Handler receives resolved clicks.
type Handler interface {
	OnGroundClick(hit math.Vec3)
	OnInteractableClick(target movement.Interactable)
}

// Target is a clickable interactable.
type Target interface {
	movement.Interactable
	Bounds() picking.AABB
}

// ClickKind identifies what a click resolved to.
type ClickKind int

const (
	ClickMissed ClickKind = iota
	ClickGround
	ClickInteractable
)

// String returns the kind name.
func (k ClickKind) String() string {
	switch k {
	case ClickGround:
		return "ground"
	case ClickInteractable:
		return "interactable"
	default:
		return "missed"
	}
}

// ClickResult describes a dispatched click.
type ClickResult struct {
	Kind   ClickKind
	Point  math.Vec3 // Hit point on the ground or the target's volume
	Target Target
}

// Dispatcher resolves clicks against interactables first, then the ground plane.
type Dispatcher struct {
	handler Handler
	targets []Target
	groundY float32
	log     *zap.Logger
}

// NewDispatcher creates a dispatcher with a ground plane at groundY.
func NewDispatcher(handler Handler, groundY float32, log *zap.Logger) *Dispatcher {
	if log == nil {
		log = zap.NewNop()
	}
	return &Dispatcher{
		handler: handler,
		groundY: groundY,
		log:     log,
	}
}

// Add registers a clickable target.
func (d *Dispatcher) Add(t Target) {
	d.targets = append(d.targets, t)
}

// Targets returns the registered targets.
func (d *Dispatcher) Targets() []Target {
	return d.targets
}

// Click casts r and forwards the nearest hit to the handler.
func (d *Dispatcher) Click(r picking.Ray) ClickResult {
	var (
		nearest Target
		bestT   float32
	)
	for _, t := range d.targets {
		dist, ok := r.IntersectAABB(t.Bounds())
		if !ok {
			continue
		}
		if nearest == nil || dist < bestT {
			nearest, bestT = t, dist
		}
	}

	if nearest != nil {
		d.log.Debug("click on interactable", zap.Float32("distance", bestT))
		d.handler.OnInteractableClick(nearest)
		return ClickResult{Kind: ClickInteractable, Point: r.At(bestT), Target: nearest}
	}

	hit, ok := r.IntersectPlaneY(d.groundY)
	if !ok {
		d.log.Debug("click missed")
		return ClickResult{Kind: ClickMissed}
	}
	d.log.Debug("click on ground", zap.Stringer("hit", hit))
	d.handler.OnGroundClick(hit)
	return ClickResult{Kind: ClickGround, Point: hit}
}

// ClickAt clicks straight down onto a world point.
func (d *Dispatcher) ClickAt(point math.Vec3) ClickResult {
	return d.Click(picking.DownRay(point, ClickHeight))
}

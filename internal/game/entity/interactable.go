// Package entity implements world objects the character can interact with.
package entity

import (
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/Faultbox/midgard-nav/internal/engine/picking"
	"github.com/Faultbox/midgard-nav/pkg/math"
)

// Reaction is one effect run when an interactable fires.
type Reaction interface {
	React(i *Interactable)
}

// Triggerer receives animation triggers.
type Triggerer interface {
	SetTrigger(name string)
}

// AnimationReaction plays a one-shot clip on the character.
type AnimationReaction struct {
	Animator Triggerer
	Trigger  string
}

// React fires the trigger.
func (r AnimationReaction) React(i *Interactable) {
	if r.Animator == nil {
		return
	}
	r.Animator.SetTrigger(r.Trigger)
	i.log.Debug("animation reaction", zap.String("trigger", r.Trigger))
}

// TextReaction logs a line of text, standing in for a speech bubble.
type TextReaction struct {
	Message string
}

// React logs the message.
func (r TextReaction) React(i *Interactable) {
	i.log.Info(r.Message, zap.String("speaker", i.Name))
}

// Interactable is a clickable object with an anchor the character walks to.
type Interactable struct {
	ID       uuid.UUID
	Name     string
	Position math.Vec3 // Center of the object
	Size     math.Vec3 // Full extents of the click volume
	Anchor   math.Transform

	Reactions    []Reaction
	Interactions int // Times Interact has fired

	log *zap.Logger
}

// New creates an interactable with a fresh ID.
func New(name string, position, size math.Vec3, anchor math.Transform, log *zap.Logger) *Interactable {
	if log == nil {
		log = zap.NewNop()
	}
	id := uuid.New()
	return &Interactable{
		ID:       id,
		Name:     name,
		Position: position,
		Size:     size,
		Anchor:   anchor,
		log:      log.With(zap.String("interactable", name), zap.String("id", id.String())),
	}
}

// AddReaction appends a reaction; reactions run in insertion order.
func (i *Interactable) AddReaction(r Reaction) {
	i.Reactions = append(i.Reactions, r)
}

// Bounds returns the click volume.
func (i *Interactable) Bounds() picking.AABB {
	return picking.BoxAround(i.Position, i.Size)
}

// InteractionAnchor returns where to stand and which way to face.
func (i *Interactable) InteractionAnchor() (math.Vec3, math.Quat) {
	return i.Anchor.Position, i.Anchor.Rotation
}

// Interact runs every reaction.
func (i *Interactable) Interact() {
	i.Interactions++
	i.log.Info("interact", zap.Int("count", i.Interactions))
	for _, r := range i.Reactions {
		r.React(i)
	}
}

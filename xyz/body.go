// Copyright (c) 2019, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package xyz

// PhysicsWorld is the physics simulation that bodies are registered with.
type PhysicsWorld interface {

	// RemoveBody unregisters the body from the simulation.
	// It is called when the owning entity is destroyed.
	RemoveBody(b *Body)
}

// Body is the physical payload of an [Entity]. Its Transform is bound
// under the entity's Transform (or a frame below it), and is where the
// simulation reads and writes the body pose.
type Body struct {

	// Transform places the body relative to the frame it is bound to.
	Transform Transform

	// Mode is how the body takes part in simulation.
	Mode BodyModes

	// Friction coefficient of the body surface.
	Friction float32

	// Proxy is the simulation's handle for this body, set while registered.
	Proxy any

	entity *Entity
}

// NewBody returns a new dynamic Body.
func NewBody() *Body {
	b := &Body{Friction: 0.5}
	b.Transform.reset()
	b.Transform.Tag = "body"
	b.Transform.owner = b
	return b
}

// Entity returns the entity this body belongs to, nil if none.
func (b *Body) Entity() *Entity {
	return b.entity
}

// IsDynamic returns whether the body is registered and moved by the simulation.
func (b *Body) IsDynamic() bool {
	return b.Proxy != nil && b.Mode == BodyDynamic
}

// IsStatic returns whether the body is registered and never moves.
func (b *Body) IsStatic() bool {
	return b.Proxy != nil && b.Mode == BodyStatic
}

// IsKinematic returns whether the body is registered and moved by the scene graph.
func (b *Body) IsKinematic() bool {
	return b.Proxy != nil && b.Mode == BodyKinematic
}

// SwitchToDynamic makes a kinematic body dynamic. Other bodies are unchanged.
func (b *Body) SwitchToDynamic() {
	if b.IsKinematic() {
		b.Mode = BodyDynamic
	}
}

// SwitchToKinematic makes a dynamic body kinematic. Other bodies are unchanged.
func (b *Body) SwitchToKinematic() {
	if b.IsDynamic() {
		b.Mode = BodyKinematic
	}
}

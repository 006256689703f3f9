// Copyright (c) 2019, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package xyz

import (
	"slices"

	"github.com/google/uuid"
	"github.com/urdfar/scenecore/math32"
	"go.uber.org/zap"
)

// Entity is a node of the scene graph. It exclusively owns its
// [Transform], its child entities, its [Renderable] payloads and an
// optional [Body]. An Entity without a parent is a scene root.
//
// Changing the parent of an Entity always rebinds its Transform to
// the parent's Transform, so the two hierarchies stay in lock step.
type Entity struct {

	// Name is used for lookup and descriptions.
	Name string

	// Transform is the spatial node of this entity.
	Transform Transform `copier:"-"`

	// OnDestroy, if set, is called at the end of [Entity.Destroy].
	OnDestroy func(e *Entity) `copier:"-"`

	id          uuid.UUID
	parent      *Entity
	children    []*Entity
	renderables []*Renderable
	body        *Body
	destroyed   bool
}

// NewEntity returns a new root Entity with the given name and
// an identity transform.
func NewEntity(name string) *Entity {
	e := &Entity{Name: name, id: uuid.New()}
	e.Transform.reset()
	e.Transform.Tag = name
	e.Transform.owner = e
	return e
}

// ID returns the unique identifier of the entity.
func (e *Entity) ID() uuid.UUID {
	return e.id
}

// Parent returns the parent entity, nil for a scene root.
func (e *Entity) Parent() *Entity {
	return e.parent
}

// IsRoot returns whether the entity has no parent.
func (e *Entity) IsRoot() bool {
	return e.parent == nil
}

// Root returns the scene root above this entity, which may be itself.
func (e *Entity) Root() *Entity {
	r := e
	for r.parent != nil {
		r = r.parent
	}
	return r
}

// Children returns the child entities. The slice must not be modified.
func (e *Entity) Children() []*Entity {
	return e.children
}

// NumChildren returns the number of child entities.
func (e *Entity) NumChildren() int {
	return len(e.children)
}

// Child returns the child entity at the given index.
func (e *Entity) Child(i int) *Entity {
	return e.children[i]
}

// IsDestroyed returns whether [Entity.Destroy] has been called.
func (e *Entity) IsDestroyed() bool {
	return e.destroyed
}

// HasAncestor returns whether anc is this entity or one of its ancestors.
func (e *Entity) HasAncestor(anc *Entity) bool {
	for n := e; n != nil; n = n.parent {
		if n == anc {
			return true
		}
	}
	return false
}

// SetParent makes par the parent of this entity: it is removed from the
// children of its former parent, appended to those of par, and its
// Transform is bound under the Transform of par. A nil par makes it a
// scene root. The local transform is kept, not the world pose; see
// [Entity.SetParentKeepWorld]. Cycles and destroyed entities are
// logged and ignored.
func (e *Entity) SetParent(par *Entity) {
	if e.destroyed || (par != nil && par.destroyed) {
		logger.Warn("xyz.Entity: SetParent on a destroyed entity, ignored", zap.String("entity", e.Name))
		return
	}
	if par != nil && par.HasAncestor(e) {
		logger.Warn("xyz.Entity: SetParent would create a cycle, ignored",
			zap.String("entity", e.Name), zap.String("parent", par.Name))
		return
	}
	if e.parent != nil {
		e.parent.removeChild(e)
		e.parent = nil
	}
	if par == nil {
		e.Transform.SetParent(nil)
		return
	}
	e.parent = par
	par.children = append(par.children, e)
	e.Transform.SetParent(&par.Transform)
}

// SetParentKeepWorld is [Entity.SetParent] followed by restoring the
// world pose the entity had before, for re-anchoring an object without
// it visibly moving.
func (e *Entity) SetParentKeepWorld(par *Entity) {
	pos := e.Transform.WorldPos()
	quat := e.Transform.WorldQuat()
	scale := e.Transform.WorldScale()
	e.SetParent(par)
	if e.parent == par {
		e.Transform.SetWorldTransforms(pos, quat, scale)
	}
}

// AddChild makes kid a child of this entity, returning kid.
func (e *Entity) AddChild(kid *Entity) *Entity {
	kid.SetParent(e)
	return kid
}

// NewChild returns a new child entity with the given name.
func (e *Entity) NewChild(name string) *Entity {
	return e.AddChild(NewEntity(name))
}

func (e *Entity) removeChild(kid *Entity) {
	if i := slices.Index(e.children, kid); i >= 0 {
		e.children = slices.Delete(e.children, i, i+1)
	}
}

//////// 	Payloads

// Renderables returns the drawable payloads. The slice must not be modified.
func (e *Entity) Renderables() []*Renderable {
	return e.renderables
}

// RenderablesByTag returns the drawable payloads with the given tag.
func (e *Entity) RenderablesByTag(tag string) []*Renderable {
	var rs []*Renderable
	for _, r := range e.renderables {
		if r.Tag == tag {
			rs = append(rs, r)
		}
	}
	return rs
}

// AddRenderable adds r as a payload under the given tag, binding its
// Transform under this entity's Transform.
func (e *Entity) AddRenderable(r *Renderable, tag string) *Renderable {
	return e.AddRenderableUnder(r, tag, &e.Transform)
}

// AddRenderableUnder adds r as a payload under the given tag, binding its
// Transform under frame, which must be this entity's Transform or a node
// below it that does not belong to a child entity.
func (e *Entity) AddRenderableUnder(r *Renderable, tag string, frame *Transform) *Renderable {
	if r.entity != nil && r.entity != e {
		r.entity.removeRenderable(r)
	}
	r.Tag = tag
	r.Transform.Tag = tag
	r.Transform.SetParent(frame)
	if r.entity != e {
		r.entity = e
		e.renderables = append(e.renderables, r)
	}
	return r
}

// RemoveRenderable removes r from the payloads, returning false
// if it is not one of them. Its Transform becomes a root.
func (e *Entity) RemoveRenderable(r *Renderable) bool {
	if r.entity != e {
		return false
	}
	e.removeRenderable(r)
	r.Transform.SetParent(nil)
	return true
}

func (e *Entity) removeRenderable(r *Renderable) {
	if i := slices.Index(e.renderables, r); i >= 0 {
		e.renderables = slices.Delete(e.renderables, i, i+1)
	}
	r.entity = nil
}

// Body returns the physical body, nil if none.
func (e *Entity) Body() *Body {
	return e.body
}

// AttachBody sets the physical body, binding its Transform under this
// entity's Transform. Any previous body is detached first and left
// orphaned. A nil body just detaches.
func (e *Entity) AttachBody(b *Body) {
	e.AttachBodyUnder(b, &e.Transform)
}

// AttachBodyUnder is [Entity.AttachBody] binding the body's Transform
// under the given frame below this entity's Transform.
func (e *Entity) AttachBodyUnder(b *Body, frame *Transform) {
	if e.body != nil {
		old := e.body
		e.body = nil
		old.entity = nil
		old.Transform.SetParent(nil)
	}
	if b == nil {
		return
	}
	if b.entity != nil && b.entity != e {
		b.entity.AttachBody(nil)
	}
	b.entity = e
	e.body = b
	b.Transform.SetParent(frame)
}

//////// 	Lifecycle

// Destroy detaches the entity from its parent, destroys its children
// depth first, releases its body through world when both are non-nil,
// and drops its payloads. Calling it again does nothing.
func (e *Entity) Destroy(world PhysicsWorld) {
	if e.destroyed {
		return
	}
	e.SetParent(nil)
	e.destroyed = true
	for len(e.children) > 0 {
		e.children[0].Destroy(world)
	}
	for _, r := range e.renderables {
		r.entity = nil
		r.Transform.SetParent(nil)
	}
	e.renderables = nil
	if e.body != nil {
		b := e.body
		e.AttachBody(nil)
		if world != nil {
			world.RemoveBody(b)
		}
	}
	logger.Debug("xyz.Entity: destroyed", zap.String("entity", e.Name), zap.Stringer("id", e.id))
	if e.OnDestroy != nil {
		e.OnDestroy(e)
	}
}

//////// 	Spatial queries

// BoundingBox returns the axis aligned box, in this entity's frame, that
// encloses the boxes of all renderables and child entities. It is empty
// if there is no geometry below the entity.
func (e *Entity) BoundingBox() math32.Box3 {
	bb := math32.B3Empty()
	for _, r := range e.renderables {
		rb := r.BoundingBox()
		if rb.IsEmpty() {
			continue
		}
		m := relativeMatrix(&r.Transform, &e.Transform)
		bb.ExpandByBox(rb.MulMatrix4(&m))
	}
	for _, kid := range e.children {
		kb := kid.BoundingBox()
		if kb.IsEmpty() {
			continue
		}
		m := relativeMatrix(&kid.Transform, &e.Transform)
		bb.ExpandByBox(kb.MulMatrix4(&m))
	}
	return bb
}

// WorldBoundingBox returns the bounding box in world coordinates.
func (e *Entity) WorldBoundingBox() math32.Box3 {
	m := e.Transform.WorldMatrix()
	return e.BoundingBox().MulMatrix4(&m)
}

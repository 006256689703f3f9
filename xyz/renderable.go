// Copyright (c) 2019, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package xyz

import (
	"github.com/jinzhu/copier"
	"github.com/urdfar/scenecore/math32"
	"go.uber.org/zap"
)

// Renderable is a drawable payload of an [Entity]. Its Transform is
// bound under the entity's Transform (or a frame below it), so it follows
// the entity's pose without being part of the entity hierarchy.
type Renderable struct {

	// Transform places the mesh relative to the frame it is bound to.
	Transform Transform `copier:"-"`

	// Tag distinguishes payloads of one entity, such as "visual" and "collision".
	Tag string

	// Mesh is the shared mesh drawn by this payload.
	Mesh *MeshInfo `copier:"-"`

	// Visible is whether renderers should draw this payload.
	Visible bool

	entity *Entity
}

// NewRenderable returns a new visible Renderable for the given mesh.
func NewRenderable(mesh *MeshInfo) *Renderable {
	r := &Renderable{Mesh: mesh, Visible: true}
	r.Transform.reset()
	r.Transform.owner = r
	return r
}

// Entity returns the entity this payload belongs to, nil if none.
func (r *Renderable) Entity() *Entity {
	return r.entity
}

// SetVisible sets whether renderers should draw this payload.
func (r *Renderable) SetVisible(visible bool) *Renderable {
	r.Visible = visible
	return r
}

// BoundingBox returns the mesh-local bounding box, empty if there is no mesh.
func (r *Renderable) BoundingBox() math32.Box3 {
	if r.Mesh == nil {
		return math32.B3Empty()
	}
	return r.Mesh.BBox
}

// WorldPose returns the world position, orientation and scale of the payload.
func (r *Renderable) WorldPose() (math32.Vector3, math32.Quat, math32.Vector3) {
	return r.Transform.WorldPos(), r.Transform.WorldQuat(), r.Transform.WorldScale()
}

// Clone returns an unbound copy of the payload sharing the same mesh,
// with the same local transform.
func (r *Renderable) Clone() *Renderable {
	nr := NewRenderable(r.Mesh)
	if err := copier.CopyWithOption(nr, r, copier.Option{CaseSensitive: true}); err != nil {
		logger.Error("xyz.Renderable: Clone", zap.Error(err))
	}
	nr.Transform.copyLocal(&r.Transform)
	return nr
}

// copyLocal copies the local values and flags of other.
func (tf *Transform) copyLocal(other *Transform) {
	tf.Tag = other.Tag
	tf.pos = other.pos
	tf.quat = other.quat
	tf.scale = other.scale
	tf.inheritQuat = other.inheritQuat
	tf.inheritScale = other.inheritScale
	tf.needUpdate()
}

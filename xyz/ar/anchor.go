// Copyright (c) 2019, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package ar places scene graph entities on anchors tracked by an
// augmented reality session.
package ar

import (
	"github.com/urdfar/scenecore/math32"
	"github.com/urdfar/scenecore/xyz"
)

// PickRadius is the radius of the sphere used by [AnchorEntity.Intersects].
const PickRadius = 0.2

// Anchor is a pose tracked by the augmented reality session.
type Anchor interface {

	// Pose returns the current world position and orientation of the anchor.
	Pose() (math32.Vector3, math32.Quat)

	// Detach stops tracking the anchor.
	Detach()
}

// FixedAnchor is an [Anchor] with a pose set by the application.
type FixedAnchor struct {
	Pos      math32.Vector3
	Quat     math32.Quat
	Detached bool
}

// Pose returns the fixed pose.
func (fa *FixedAnchor) Pose() (math32.Vector3, math32.Quat) {
	return fa.Pos, fa.Quat
}

// Detach marks the anchor detached.
func (fa *FixedAnchor) Detach() {
	fa.Detached = true
}

// AnchorEntity is a scene root whose pose follows an [Anchor].
// Destroying it detaches the anchor.
type AnchorEntity struct {
	*xyz.Entity

	anchor Anchor
}

// NewAnchorEntity returns a new entity following the given anchor.
func NewAnchorEntity(name string, anchor Anchor) *AnchorEntity {
	ae := &AnchorEntity{Entity: xyz.NewEntity(name), anchor: anchor}
	ae.OnDestroy = func(e *xyz.Entity) {
		if ae.anchor != nil {
			ae.anchor.Detach()
		}
	}
	ae.Sync()
	return ae
}

// Anchor returns the anchor followed by the entity.
func (ae *AnchorEntity) Anchor() Anchor {
	return ae.anchor
}

// Sync sets the local pose of the entity from the anchor. It is
// called once per frame before drawing.
func (ae *AnchorEntity) Sync() {
	if ae.anchor == nil {
		return
	}
	pos, quat := ae.anchor.Pose()
	ae.Transform.SetPos(pos).SetQuat(quat)
}

// ReplaceAnchor detaches the current anchor and follows the given one.
func (ae *AnchorEntity) ReplaceAnchor(anchor Anchor) {
	if ae.anchor != nil {
		ae.anchor.Detach()
	}
	ae.anchor = anchor
	ae.Sync()
}

// Intersects returns whether the ray passes within [PickRadius] of the
// mean world position of the nodes directly below the entity.
func (ae *AnchorEntity) Intersects(ray *math32.Ray) bool {
	kids := ae.Transform.Children()
	if len(kids) == 0 {
		return false
	}
	var mean math32.Vector3
	for _, kid := range kids {
		mean.SetAdd(kid.WorldPos())
	}
	mean = mean.DivScalar(float32(len(kids)))
	_, ok := ray.IntersectSphere(mean, PickRadius)
	return ok
}

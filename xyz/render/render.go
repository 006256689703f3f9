// Copyright (c) 2019, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package render turns a scene graph into the flat list of draw items
// and OpenGL style matrices that a renderer consumes.
package render

import (
	"github.com/go-gl/mathgl/mgl32"
	"github.com/urdfar/scenecore/math32"
	"github.com/urdfar/scenecore/xyz"
)

// Item is one renderable to draw, with its model matrix.
type Item struct {
	Entity     *xyz.Entity
	Renderable *xyz.Renderable
	Model      mgl32.Mat4
}

// Collect returns the visible renderables with a mesh at or below root,
// in depth-first order, with their world matrices.
func Collect(root *xyz.Entity) []Item {
	var items []Item
	root.WalkDown(func(e *xyz.Entity) bool {
		for _, r := range e.Renderables() {
			if !r.Visible || r.Mesh == nil {
				continue
			}
			items = append(items, Item{Entity: e, Renderable: r, Model: ToGL(r.Transform.WorldMatrix())})
		}
		return xyz.Continue
	})
	return items
}

// ToGL returns the matrix in mathgl form. Both are column-major.
func ToGL(m math32.Matrix4) mgl32.Mat4 {
	return mgl32.Mat4(m)
}

// FromGL returns the mathgl matrix as a [math32.Matrix4].
func FromGL(m mgl32.Mat4) math32.Matrix4 {
	return math32.Matrix4(m)
}

// ModelArray appends the model matrices of the items to dst as 16
// floats each, in OpenGL column-major order, ready for upload.
func ModelArray(items []Item, dst []float32) []float32 {
	for i := range items {
		dst = append(dst, items[i].Model[:]...)
	}
	return dst
}

// Camera is a perspective camera looking at a target.
type Camera struct {
	Eye    mgl32.Vec3
	Target mgl32.Vec3
	Up     mgl32.Vec3

	// FOV is the vertical field of view in degrees.
	FOV float32

	Near float32
	Far  float32
}

// NewCamera returns a camera at eye looking at target with Y up.
func NewCamera(eye, target math32.Vector3) *Camera {
	return &Camera{
		Eye:    mgl32.Vec3{eye.X, eye.Y, eye.Z},
		Target: mgl32.Vec3{target.X, target.Y, target.Z},
		Up:     mgl32.Vec3{0, 1, 0},
		FOV:    50,
		Near:   0.01,
		Far:    1000,
	}
}

// View returns the view matrix.
func (cm *Camera) View() mgl32.Mat4 {
	return mgl32.LookAtV(cm.Eye, cm.Target, cm.Up)
}

// Projection returns the projection matrix for the given aspect ratio.
func (cm *Camera) Projection(aspect float32) mgl32.Mat4 {
	return mgl32.Perspective(mgl32.DegToRad(cm.FOV), aspect, cm.Near, cm.Far)
}

// MVP returns the model-view-projection matrix of the item.
func (cm *Camera) MVP(it Item, aspect float32) mgl32.Mat4 {
	return cm.Projection(aspect).Mul4(cm.View()).Mul4(it.Model)
}

// InView returns whether the world bounding box of the item's mesh
// is at least partly within the camera frustum.
func (cm *Camera) InView(it Item, aspect float32) bool {
	bb := it.Renderable.BoundingBox()
	if bb.IsEmpty() {
		return false
	}
	mvp := cm.MVP(it, aspect)
	var cs [8]mgl32.Vec3
	for i := range cs {
		p := bb.Min
		if i&1 != 0 {
			p.X = bb.Max.X
		}
		if i&2 != 0 {
			p.Y = bb.Max.Y
		}
		if i&4 != 0 {
			p.Z = bb.Max.Z
		}
		cs[i] = mgl32.Vec3{p.X, p.Y, p.Z}
	}
	// outside if all corners are beyond the same clip plane
	for axis := 0; axis < 3; axis++ {
		allBelow, allAbove := true, true
		for _, c := range cs {
			h := mvp.Mul4x1(c.Vec4(1))
			if h[axis] >= -h[3] {
				allBelow = false
			}
			if h[axis] <= h[3] {
				allAbove = false
			}
		}
		if allBelow || allAbove {
			return false
		}
	}
	return true
}

// Copyright (c) 2019, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package xyz

import (
	"fmt"
	"slices"

	"github.com/urdfar/scenecore/math32"
	"go.uber.org/zap"
)

// Transform is a node in the spatial hierarchy. It holds a local
// position, orientation and scale relative to its parent, and caches
// the composed world values, which are recomputed lazily after any
// change to this node or one of its ancestors.
//
// Parent and child links are non-owning: the [Entity], [Renderable]
// or [Body] that embeds the Transform owns it.
// Use [NewTransform] to make a standalone Transform.
type Transform struct {

	// Tag is an optional label, shown in descriptions.
	Tag string

	pos   math32.Vector3
	quat  math32.Quat
	scale math32.Vector3

	worldPos   math32.Vector3
	worldQuat  math32.Quat
	worldScale math32.Vector3

	// dirty means the world values must be recomputed.
	// A dirty node never has a clean descendant.
	dirty bool

	inheritQuat  bool
	inheritScale bool

	parent   *Transform
	children []*Transform

	// owner is the Entity, Renderable or Body holding this node, if any.
	owner any
}

// NewTransform returns a new root Transform with the identity local transform.
func NewTransform() *Transform {
	tf := &Transform{}
	tf.reset()
	return tf
}

// reset sets the identity local transform and default flags.
// It must only be called on an unlinked node.
func (tf *Transform) reset() {
	tf.pos = math32.Vector3{}
	tf.quat = math32.NewQuatIdentity()
	tf.scale = math32.Vector3Scalar(1)
	tf.worldPos = math32.Vector3{}
	tf.worldQuat = math32.NewQuatIdentity()
	tf.worldScale = math32.Vector3Scalar(1)
	tf.dirty = true
	tf.inheritQuat = true
	tf.inheritScale = true
}

//////// 	Structure

// Parent returns the parent node, nil for a root.
func (tf *Transform) Parent() *Transform {
	return tf.parent
}

// Children returns the child nodes. The slice must not be modified.
func (tf *Transform) Children() []*Transform {
	return tf.children
}

// NumChildren returns the number of child nodes.
func (tf *Transform) NumChildren() int {
	return len(tf.children)
}

// Owner returns the [Entity], [Renderable] or [Body] holding this node,
// or nil for a bare frame.
func (tf *Transform) Owner() any {
	return tf.owner
}

// HasAncestor returns whether anc is this node or one of its ancestors.
func (tf *Transform) HasAncestor(anc *Transform) bool {
	for n := tf; n != nil; n = n.parent {
		if n == anc {
			return true
		}
	}
	return false
}

// SetParent makes par the parent of this node, removing it from its
// former parent and appending it to the children of par. A nil par
// makes this node a root. The local values are kept, so the world pose
// generally changes. Attempts to create a cycle are logged and ignored.
func (tf *Transform) SetParent(par *Transform) *Transform {
	if par != nil && par.HasAncestor(tf) {
		logger.Warn("xyz.Transform: SetParent would create a cycle, ignored",
			zap.String("node", tf.Tag), zap.String("parent", par.Tag))
		return tf
	}
	if tf.parent != nil {
		tf.parent.removeChild(tf)
	}
	tf.parent = par
	if par != nil {
		par.children = append(par.children, tf)
	}
	tf.needUpdate()
	return tf
}

func (tf *Transform) removeChild(kid *Transform) {
	if i := slices.Index(tf.children, kid); i >= 0 {
		tf.children = slices.Delete(tf.children, i, i+1)
	}
}

//////// 	Local values

// Pos returns the local position.
func (tf *Transform) Pos() math32.Vector3 {
	return tf.pos
}

// Quat returns the local orientation.
func (tf *Transform) Quat() math32.Quat {
	return tf.quat
}

// Scale returns the local scale.
func (tf *Transform) Scale() math32.Vector3 {
	return tf.scale
}

// SetPos sets the local position.
func (tf *Transform) SetPos(pos math32.Vector3) *Transform {
	tf.pos = pos
	tf.needUpdate()
	return tf
}

// SetPosXYZ sets the local position from components.
func (tf *Transform) SetPosXYZ(x, y, z float32) *Transform {
	return tf.SetPos(math32.Vec3(x, y, z))
}

// SetQuat sets the local orientation.
func (tf *Transform) SetQuat(q math32.Quat) *Transform {
	tf.quat = q
	tf.needUpdate()
	return tf
}

// SetScale sets the local scale.
func (tf *Transform) SetScale(scale math32.Vector3) *Transform {
	tf.scale = scale
	tf.needUpdate()
	return tf
}

// SetScaleXYZ sets the local scale from components.
func (tf *Transform) SetScaleXYZ(x, y, z float32) *Transform {
	return tf.SetScale(math32.Vec3(x, y, z))
}

// ScaleBy multiplies the local scale component-wise by s.
func (tf *Transform) ScaleBy(s math32.Vector3) *Transform {
	return tf.SetScale(tf.scale.Mul(s))
}

// ResetQuat sets the local orientation to the identity.
func (tf *Transform) ResetQuat() *Transform {
	return tf.SetQuat(math32.NewQuatIdentity())
}

// InheritQuat returns whether the parent's world orientation is
// composed into this node's world orientation.
func (tf *Transform) InheritQuat() bool {
	return tf.inheritQuat
}

// SetInheritQuat sets whether the parent's world orientation is
// composed into this node's world orientation.
func (tf *Transform) SetInheritQuat(inherit bool) *Transform {
	tf.inheritQuat = inherit
	tf.needUpdate()
	return tf
}

// InheritScale returns whether the parent's world scale is
// composed into this node's world scale.
func (tf *Transform) InheritScale() bool {
	return tf.inheritScale
}

// SetInheritScale sets whether the parent's world scale is
// composed into this node's world scale.
func (tf *Transform) SetInheritScale(inherit bool) *Transform {
	tf.inheritScale = inherit
	tf.needUpdate()
	return tf
}

// LocalMatrix returns the matrix of the local values.
func (tf *Transform) LocalMatrix() math32.Matrix4 {
	var m math32.Matrix4
	m.SetTransform(tf.pos, tf.quat, tf.scale)
	return m
}

// SetLocalMatrix sets the local values by decomposing the given
// affine matrix, which must not contain shear.
func (tf *Transform) SetLocalMatrix(m math32.Matrix4) *Transform {
	tf.pos, tf.quat, tf.scale = m.Decompose()
	tf.needUpdate()
	return tf
}

//////// 	Relative motion

// Translate moves the node by delta, expressed in the given space.
// In [SpaceLocal] the delta is rotated by the local orientation;
// in [SpaceParent] it is added as is; in [SpaceWorld] it is mapped
// through the inverse of the parent's world orientation and scale,
// so that the world position moves by exactly delta.
func (tf *Transform) Translate(delta math32.Vector3, space TransformSpaces) *Transform {
	switch space {
	case SpaceLocal:
		tf.pos.SetAdd(delta.MulQuat(tf.quat))
	case SpaceParent:
		tf.pos.SetAdd(delta)
	case SpaceWorld:
		if tf.parent == nil {
			tf.pos.SetAdd(delta)
			break
		}
		pq := tf.parent.WorldQuat()
		ps := tf.parent.WorldScale()
		tf.pos.SetAdd(delta.MulQuat(pq.Inverse()).Div(ps))
	}
	tf.needUpdate()
	return tf
}

// TranslateXYZ is [Transform.Translate] with delta components.
func (tf *Transform) TranslateXYZ(x, y, z float32, space TransformSpaces) *Transform {
	return tf.Translate(math32.Vec3(x, y, z), space)
}

// Rotate rotates the node by q, expressed in the given space.
// In [SpaceLocal] q is applied after the local orientation (about the
// node's own axes), in [SpaceParent] before it (about the parent's axes),
// and in [SpaceWorld] about the world axes.
func (tf *Transform) Rotate(q math32.Quat, space TransformSpaces) *Transform {
	switch space {
	case SpaceLocal:
		tf.quat = tf.quat.Mul(q)
	case SpaceParent:
		tf.quat = q.Mul(tf.quat)
	case SpaceWorld:
		wq := tf.WorldQuat()
		tf.quat = tf.quat.Mul(wq.Inverse()).Mul(q).Mul(wq)
	}
	tf.quat.Normalize()
	tf.needUpdate()
	return tf
}

// RotateOnAxis rotates by angle (radians) about the given axis,
// expressed in the given space.
func (tf *Transform) RotateOnAxis(axis math32.Vector3, angle float32, space TransformSpaces) *Transform {
	return tf.Rotate(math32.NewQuatAxisAngle(axis, angle), space)
}

// Yaw rotates by angle (radians) about the Y axis of the given space.
func (tf *Transform) Yaw(angle float32, space TransformSpaces) *Transform {
	return tf.RotateOnAxis(math32.Vec3(0, 1, 0), angle, space)
}

// Pitch rotates by angle (radians) about the X axis of the given space.
func (tf *Transform) Pitch(angle float32, space TransformSpaces) *Transform {
	return tf.RotateOnAxis(math32.Vec3(1, 0, 0), angle, space)
}

// Roll rotates by angle (radians) about the Z axis of the given space.
func (tf *Transform) Roll(angle float32, space TransformSpaces) *Transform {
	return tf.RotateOnAxis(math32.Vec3(0, 0, 1), angle, space)
}

//////// 	World values

// IsDirty returns whether the cached world values are stale.
func (tf *Transform) IsDirty() bool {
	return tf.dirty
}

// WorldPos returns the world position.
func (tf *Transform) WorldPos() math32.Vector3 {
	tf.update()
	return tf.worldPos
}

// WorldQuat returns the world orientation.
func (tf *Transform) WorldQuat() math32.Quat {
	tf.update()
	return tf.worldQuat
}

// WorldScale returns the world scale.
func (tf *Transform) WorldScale() math32.Vector3 {
	tf.update()
	return tf.worldScale
}

// WorldMatrix returns the matrix of the world values, which
// scales, then rotates, then translates.
func (tf *Transform) WorldMatrix() math32.Matrix4 {
	tf.update()
	var m math32.Matrix4
	m.SetTransform(tf.worldPos, tf.worldQuat, tf.worldScale)
	return m
}

// SetWorldTransforms sets the local values so that the world values
// become the given ones under the current parent pose. The orientation
// and scale are solved relative to the parent only when they are inherited.
func (tf *Transform) SetWorldTransforms(pos math32.Vector3, quat math32.Quat, scale math32.Vector3) *Transform {
	if tf.parent == nil {
		tf.pos = pos
		tf.quat = quat
		tf.scale = scale
		tf.needUpdate()
		return tf
	}
	pp := tf.parent.WorldPos()
	pqi := tf.parent.WorldQuat().Inverse()
	ps := tf.parent.WorldScale()
	if tf.inheritScale {
		tf.scale = scale.Div(ps)
	} else {
		tf.scale = scale
	}
	if tf.inheritQuat {
		tf.quat = pqi.Mul(quat)
		tf.quat.Normalize()
	} else {
		tf.quat = quat
	}
	tf.pos = pos.Sub(pp).MulQuat(pqi).Div(ps)
	tf.needUpdate()
	return tf
}

// SetWorldPose is [Transform.SetWorldTransforms] with a unit world scale.
func (tf *Transform) SetWorldPose(pos math32.Vector3, quat math32.Quat) *Transform {
	return tf.SetWorldTransforms(pos, quat, math32.Vector3Scalar(1))
}

// needUpdate marks this node and all of its descendants dirty.
// Descendants that are already dirty are skipped along with their
// subtrees, which are then dirty too.
func (tf *Transform) needUpdate() {
	tf.dirty = true
	stack := slices.Clone(tf.children)
	for len(stack) > 0 {
		n := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		if n.dirty {
			continue
		}
		n.dirty = true
		stack = append(stack, n.children...)
	}
}

// update recomputes the world values if dirty, first resolving
// any dirty ancestors from the top down.
func (tf *Transform) update() {
	if !tf.dirty {
		return
	}
	var chain []*Transform
	for n := tf; n != nil && n.dirty; n = n.parent {
		chain = append(chain, n)
	}
	for i := len(chain) - 1; i >= 0; i-- {
		chain[i].compose()
	}
}

// compose computes the world values from the parent's clean world values.
func (tf *Transform) compose() {
	par := tf.parent
	if par == nil {
		tf.worldPos = tf.pos
		tf.worldQuat = tf.quat
		tf.worldScale = tf.scale
		tf.dirty = false
		return
	}
	if tf.inheritQuat {
		tf.worldQuat = par.worldQuat.Mul(tf.quat)
		tf.worldQuat.Normalize()
	} else {
		tf.worldQuat = tf.quat
	}
	if tf.inheritScale {
		tf.worldScale = par.worldScale.Mul(tf.scale)
	} else {
		tf.worldScale = tf.scale
	}
	tf.worldPos = par.worldScale.Mul(tf.pos).MulQuat(par.worldQuat).Add(par.worldPos)
	tf.dirty = false
}

// RelativePose returns the position, orientation and scale of this node
// in the frame of anc, composing local values with the same rules as the
// world values. If anc is not an ancestor, it is the world pose.
func (tf *Transform) RelativePose(anc *Transform) (pos math32.Vector3, quat math32.Quat, scale math32.Vector3) {
	var chain []*Transform
	for n := tf; n != nil && n != anc; n = n.parent {
		chain = append(chain, n)
	}
	quat = math32.NewQuatIdentity()
	scale = math32.Vector3Scalar(1)
	for i := len(chain) - 1; i >= 0; i-- {
		n := chain[i]
		np := scale.Mul(n.pos).MulQuat(quat).Add(pos)
		if n.inheritQuat {
			quat = quat.Mul(n.quat)
			quat.Normalize()
		} else {
			quat = n.quat
		}
		if n.inheritScale {
			scale = scale.Mul(n.scale)
		} else {
			scale = n.scale
		}
		pos = np
	}
	return
}

// relativeMatrix returns the matrix taking points in the frame of tf
// into the frame of anc.
func relativeMatrix(tf, anc *Transform) math32.Matrix4 {
	var m math32.Matrix4
	m.SetTransform(tf.RelativePose(anc))
	return m
}

// String returns the local and world values of the node.
func (tf *Transform) String() string {
	return fmt.Sprintf("pos: %v quat: %v scale: %v | world pos: %v quat: %v scale: %v",
		tf.pos, tf.quat, tf.scale, tf.WorldPos(), tf.WorldQuat(), tf.WorldScale())
}

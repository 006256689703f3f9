// Copyright (c) 2019, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package physics

import (
	"github.com/urdfar/scenecore/math32"
	"github.com/urdfar/scenecore/xyz"
)

// MotionState transfers poses between a body in the scene graph
// and the simulation, converting units by Scale.
type MotionState struct {
	Body *xyz.Body

	// Scale is the number of simulation units per scene unit.
	Scale float32
}

// WorldTransform returns the world pose of the body in simulation units.
func (ms *MotionState) WorldTransform() (math32.Vector3, math32.Quat) {
	tf := &ms.Body.Transform
	return tf.WorldPos().MulScalar(ms.Scale), tf.WorldQuat()
}

// SetWorldTransform moves the scene graph so that the body gets the
// given world pose, in simulation units. It is the frame the body is
// bound to (normally its entity) that moves, keeping the body's own
// local offset within that frame, and keeping the frame's world scale.
func (ms *MotionState) SetWorldTransform(pos math32.Vector3, quat math32.Quat) {
	tf := &ms.Body.Transform
	pos = pos.DivScalar(ms.Scale)
	target := tf.Parent()
	if target == nil {
		tf.SetWorldTransforms(pos, quat, tf.WorldScale())
		return
	}
	tq := quat.Mul(tf.Quat().Inverse())
	tq.Normalize()
	ts := target.WorldScale()
	tp := pos.Sub(tf.Pos().Mul(ts).MulQuat(tq))
	target.SetWorldTransforms(tp, tq, ts)
}

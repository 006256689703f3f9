// Copyright (c) 2019, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package motion animates scene graph transforms: tweens toward target
// poses, and playback of recorded pose timelines.
package motion

import (
	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"
	"github.com/urdfar/scenecore/math32"
	"github.com/urdfar/scenecore/xyz"
)

// PoseTween animates the local position, orientation and scale of a
// [xyz.Transform] toward target values. Call Update(dt) each frame.
// If the transform belongs to an entity that is destroyed, the tween
// stops immediately.
type PoseTween struct {
	Done bool

	target *xyz.Transform
	pos    [3]*gween.Tween
	scale  [3]*gween.Tween
	rot    *gween.Tween

	fromQuat math32.Quat
	toQuat   math32.Quat
}

// TweenPose returns a tween moving tf to the given local pose over
// duration seconds using the easing function, which defaults to linear.
func TweenPose(tf *xyz.Transform, pos math32.Vector3, quat math32.Quat, scale math32.Vector3, duration float32, fn ease.TweenFunc) *PoseTween {
	if fn == nil {
		fn = ease.Linear
	}
	p0 := tf.Pos()
	s0 := tf.Scale()
	pt := &PoseTween{target: tf, fromQuat: tf.Quat(), toQuat: quat}
	pt.pos = [3]*gween.Tween{
		gween.New(p0.X, pos.X, duration, fn),
		gween.New(p0.Y, pos.Y, duration, fn),
		gween.New(p0.Z, pos.Z, duration, fn),
	}
	pt.scale = [3]*gween.Tween{
		gween.New(s0.X, scale.X, duration, fn),
		gween.New(s0.Y, scale.Y, duration, fn),
		gween.New(s0.Z, scale.Z, duration, fn),
	}
	pt.rot = gween.New(0, 1, duration, fn)
	if duration <= 0 {
		tf.SetPos(pos).SetQuat(quat).SetScale(scale)
		pt.Done = true
	}
	return pt
}

// TweenPos returns a tween moving tf to the given local position,
// keeping its orientation and scale.
func TweenPos(tf *xyz.Transform, pos math32.Vector3, duration float32, fn ease.TweenFunc) *PoseTween {
	return TweenPose(tf, pos, tf.Quat(), tf.Scale(), duration, fn)
}

// TweenQuat returns a tween rotating tf to the given local orientation,
// keeping its position and scale.
func TweenQuat(tf *xyz.Transform, quat math32.Quat, duration float32, fn ease.TweenFunc) *PoseTween {
	return TweenPose(tf, tf.Pos(), quat, tf.Scale(), duration, fn)
}

// Update advances the tween by dt seconds and writes the values
// to the transform.
func (pt *PoseTween) Update(dt float32) {
	if pt.Done {
		return
	}
	if e, ok := pt.target.Owner().(*xyz.Entity); ok && e.IsDestroyed() {
		pt.Done = true
		return
	}
	allDone := true
	var pos, scale [3]float32
	for i := 0; i < 3; i++ {
		v, finished := pt.pos[i].Update(dt)
		pos[i] = v
		allDone = allDone && finished
		v, finished = pt.scale[i].Update(dt)
		scale[i] = v
		allDone = allDone && finished
	}
	t, finished := pt.rot.Update(dt)
	allDone = allDone && finished
	quat := pt.fromQuat.Slerp(pt.toQuat, t)
	if finished {
		quat = pt.toQuat
	}
	pt.target.SetPos(math32.Vec3(pos[0], pos[1], pos[2])).
		SetQuat(quat).
		SetScale(math32.Vec3(scale[0], scale[1], scale[2]))
	pt.Done = allDone
}

// Copyright (c) 2019, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package physics

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/urdfar/scenecore/base/tolassert"
	"github.com/urdfar/scenecore/math32"
	"github.com/urdfar/scenecore/xyz"
)

const tol = float32(1.0e-4)

func testWorld() *World {
	w := NewWorld(nil)
	w.Scale = 1
	w.Gravity = math32.Vec3(0, -10, 0)
	w.FixedStep = 0.5
	return w
}

func TestWorldFall(t *testing.T) {
	w := testWorld()
	e := xyz.NewEntity("ball")
	b := xyz.NewBody()
	b.Transform.SetPosXYZ(0, 1, 0)
	e.AttachBody(b)
	rb := w.Add(b, 1)
	assert.Equal(t, rb, b.Proxy)
	assert.True(t, b.IsDynamic())
	assert.Equal(t, 1, w.Len())
	assert.Same(t, rb, w.Add(b, 1))
	assert.Equal(t, 1, w.Len())

	assert.Equal(t, 2, w.Step(1))
	tolassert.EqualVector3(t, math32.Vec3(0, -7.5, 0), e.Transform.WorldPos(), tol)
	tolassert.EqualVector3(t, math32.Vec3(0, -6.5, 0), b.Transform.WorldPos(), tol)
	// the body keeps its local offset
	assert.Equal(t, math32.Vec3(0, 1, 0), b.Transform.Pos())

	// partial steps accumulate
	assert.Equal(t, 0, w.Step(0.25))
	assert.Equal(t, 1, w.Step(0.25))
}

func TestWorldModes(t *testing.T) {
	w := testWorld()
	st := xyz.NewEntity("static")
	sb := xyz.NewBody()
	sb.Mode = xyz.BodyStatic
	st.AttachBody(sb)
	w.Add(sb, 0)

	kin := xyz.NewEntity("kinematic")
	kb := xyz.NewBody()
	kb.Mode = xyz.BodyKinematic
	kin.AttachBody(kb)
	krb := w.Add(kb, 1)

	kin.Transform.SetPosXYZ(3, 0, 0)
	w.Step(0.5)
	tolassert.EqualVector3(t, math32.Vec3(3, 0, 0), krb.State.Pos, tol)
	assert.Equal(t, math32.Vector3{}, st.Transform.WorldPos())
	assert.True(t, sb.IsStatic())
	assert.True(t, kb.IsKinematic())

	kb.SwitchToDynamic()
	krb.State.LinVel = math32.Vector3{}
	w.Gravity = math32.Vector3{}
	krb.State.AngVel = math32.Vec3(0, 1, 0)
	w.Step(0.5)
	tolassert.EqualQuat(t, math32.NewQuatAxisAngle(math32.Vec3(0, 1, 0), 0.5), kin.Transform.WorldQuat(), tol)
}

func TestMotionStateOffset(t *testing.T) {
	par := xyz.NewEntity("parent")
	par.Transform.SetPosXYZ(1, 2, 3).Roll(0.4, xyz.SpaceLocal)
	e := par.NewChild("e")
	b := xyz.NewBody()
	b.Transform.SetPosXYZ(1, 0, 0).Yaw(0.3, xyz.SpaceLocal)
	e.AttachBody(b)

	ms := MotionState{Body: b, Scale: 10}
	pos := math32.Vec3(5, -1, 2)
	quat := math32.NewQuatAxisAngle(math32.Vec3(1, 1, 0), 0.8)
	ms.SetWorldTransform(pos.MulScalar(10), quat)
	tolassert.EqualVector3(t, pos, b.Transform.WorldPos(), tol)
	tolassert.EqualQuat(t, quat, b.Transform.WorldQuat(), tol)
	assert.Equal(t, par, e.Parent())

	wp, wq := ms.WorldTransform()
	tolassert.EqualVector3(t, pos.MulScalar(10), wp, 1.0e-3)
	tolassert.EqualQuat(t, quat, wq, tol)

	// an unbound body moves itself
	free := xyz.NewBody()
	fm := MotionState{Body: free, Scale: 1}
	fm.SetWorldTransform(pos, quat)
	tolassert.EqualVector3(t, pos, free.Transform.WorldPos(), tol)
}

func TestWorldDestroy(t *testing.T) {
	w := testWorld()
	root := xyz.NewEntity("root")
	kid := root.NewChild("kid")
	b1 := xyz.NewBody()
	b2 := xyz.NewBody()
	root.AttachBody(b1)
	kid.AttachBody(b2)
	w.Add(b1, 1)
	rb2 := w.Add(b2, 1)
	require.Equal(t, 2, w.Len())
	assert.Equal(t, rb2, w.Rigid(rb2.ID))

	root.Destroy(w)
	assert.Equal(t, 0, w.Len())
	assert.Nil(t, b1.Proxy)
	assert.Nil(t, b2.Proxy)
	assert.Nil(t, w.Rigid(rb2.ID))
	w.RemoveBody(b1)
	assert.Equal(t, 0, w.Step(0.1))
}

func TestRayTest(t *testing.T) {
	w := testWorld()
	near := xyz.NewEntity("near")
	near.Transform.SetPosXYZ(0, 0, 2)
	near.AddRenderable(xyz.NewRenderable(xyz.NewBox("box", math32.Vec3(1, 1, 1))), "visual")
	nb := xyz.NewBody()
	near.AttachBody(nb)
	w.Add(nb, 0)

	far := xyz.NewEntity("far")
	far.AddRenderable(xyz.NewRenderable(xyz.NewBox("box", math32.Vec3(1, 1, 1))), "visual")
	fb := xyz.NewBody()
	far.AttachBody(fb)
	w.Add(fb, 0)

	assert.Same(t, nb, w.RayTest(math32.NewRay(math32.Vec3(0, 0, 10), math32.Vec3(0, 0, -1))))
	assert.Nil(t, w.RayTest(math32.NewRay(math32.Vec3(5, 0, 10), math32.Vec3(0, 0, -1))))
}

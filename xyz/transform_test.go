// Copyright (c) 2019, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package xyz

import (
	"math/rand"
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"

	"github.com/urdfar/scenecore/base/tolassert"
	"github.com/urdfar/scenecore/math32"
)

const tol = float32(1.0e-4)

func TestTransformDefaults(t *testing.T) {
	tf := NewTransform()
	assert.True(t, tf.IsDirty())
	assert.True(t, tf.InheritQuat())
	assert.True(t, tf.InheritScale())
	assert.Equal(t, math32.Vector3{}, tf.WorldPos())
	assert.True(t, tf.WorldQuat().IsIdentity())
	assert.Equal(t, math32.Vector3Scalar(1), tf.WorldScale())
	assert.False(t, tf.IsDirty())
	assert.Nil(t, tf.Parent())
}

func TestTransformRootIdentity(t *testing.T) {
	tf := NewTransform()
	q := math32.NewQuatAxisAngle(math32.Vec3(1, 0, 1), 0.3)
	tf.SetPosXYZ(1, 2, 3).SetQuat(q).SetScaleXYZ(2, 2, 0.5)
	assert.Equal(t, tf.Pos(), tf.WorldPos())
	assert.Equal(t, tf.Quat(), tf.WorldQuat())
	assert.Equal(t, tf.Scale(), tf.WorldScale())
}

func TestTransformIdempotentRead(t *testing.T) {
	par := NewTransform().SetPosXYZ(1, 0, 0).Yaw(0.5, SpaceLocal)
	kid := NewTransform().SetParent(par).SetPosXYZ(0, 1, 2)
	p1 := kid.WorldPos()
	q1 := kid.WorldQuat()
	p2 := kid.WorldPos()
	q2 := kid.WorldQuat()
	assert.Equal(t, p1, p2)
	assert.Equal(t, q1, q2)
	assert.False(t, kid.IsDirty())
	assert.False(t, par.IsDirty())
}

func chain(n int) []*Transform {
	nodes := make([]*Transform, n)
	for i := range nodes {
		nodes[i] = NewTransform()
		if i > 0 {
			nodes[i].SetParent(nodes[i-1])
		}
	}
	return nodes
}

func TestTransformDirtyPropagation(t *testing.T) {
	nodes := chain(6)
	side := NewTransform().SetParent(nodes[2])
	for _, n := range nodes {
		n.WorldPos()
	}
	side.WorldPos()
	for _, n := range nodes {
		assert.False(t, n.IsDirty())
	}

	nodes[2].SetPosXYZ(1, 0, 0)
	assert.False(t, nodes[0].IsDirty())
	assert.False(t, nodes[1].IsDirty())
	for _, n := range nodes[2:] {
		assert.True(t, n.IsDirty())
	}
	assert.True(t, side.IsDirty())

	// reading a deep node cleans its chain but not its siblings
	tolassert.EqualVector3(t, math32.Vec3(1, 0, 0), nodes[5].WorldPos(), tol)
	for _, n := range nodes {
		assert.False(t, n.IsDirty())
	}
	assert.True(t, side.IsDirty())

	// a dirty intermediate does not hide deeper nodes
	nodes[4].SetPosXYZ(0, 1, 0)
	nodes[1].SetPosXYZ(0, 0, 1)
	for _, n := range nodes[1:] {
		assert.True(t, n.IsDirty())
	}
	tolassert.EqualVector3(t, math32.Vec3(1, 1, 1), nodes[5].WorldPos(), tol)
}

func TestTransformParentChildConsistency(t *testing.T) {
	a := NewTransform()
	b := NewTransform()
	c := NewTransform().SetParent(a)
	assert.Equal(t, []*Transform{c}, a.Children())
	c.SetParent(b)
	assert.Equal(t, 0, a.NumChildren())
	assert.Equal(t, []*Transform{c}, b.Children())
	assert.Equal(t, b, c.Parent())
	c.SetParent(nil)
	assert.Equal(t, 0, b.NumChildren())
	assert.Nil(t, c.Parent())
}

func TestTransformCycleRejected(t *testing.T) {
	nodes := chain(3)
	nodes[0].SetParent(nodes[2])
	assert.Nil(t, nodes[0].Parent())
	nodes[1].SetParent(nodes[1])
	assert.Equal(t, nodes[0], nodes[1].Parent())
	assert.Equal(t, []*Transform{nodes[2]}, nodes[1].Children())
}

func randVec(rnd *rand.Rand, lo, hi float32) math32.Vector3 {
	f := func() float32 { return lo + rnd.Float32()*(hi-lo) }
	return math32.Vec3(f(), f(), f())
}

func randQuat(rnd *rand.Rand) math32.Quat {
	return math32.NewQuatAxisAngle(randVec(rnd, -1, 1).Add(math32.Vec3(0, 0, 0.01)), rnd.Float32()*6)
}

func TestTransformCompositionLaw(t *testing.T) {
	rnd := rand.New(rand.NewSource(1))
	for i := 0; i < 50; i++ {
		par := NewTransform()
		par.SetPos(randVec(rnd, -5, 5)).SetQuat(randQuat(rnd)).SetScale(randVec(rnd, 0.5, 2))
		kid := NewTransform().SetParent(par)
		kid.SetPos(randVec(rnd, -5, 5)).SetQuat(randQuat(rnd)).SetScale(randVec(rnd, 0.5, 2))

		pq := par.Quat()
		ps := par.Scale()
		exp := kid.Pos().Mul(ps).MulQuat(pq).Add(par.Pos())
		tolassert.EqualVector3(t, exp, kid.WorldPos(), tol)
		tolassert.EqualQuat(t, pq.Mul(kid.Quat()), kid.WorldQuat(), tol)
		tolassert.EqualVector3(t, ps.Mul(kid.Scale()), kid.WorldScale(), tol)

		// independent check with mathgl
		gq := mgl32.Quat{W: pq.W, V: mgl32.Vec3{pq.X, pq.Y, pq.Z}}
		kp := kid.Pos().Mul(ps)
		gv := gq.Rotate(mgl32.Vec3{kp.X, kp.Y, kp.Z}).Add(mgl32.Vec3{par.Pos().X, par.Pos().Y, par.Pos().Z})
		tolassert.EqualVector3(t, math32.Vec3(gv[0], gv[1], gv[2]), kid.WorldPos(), tol)
	}
}

func TestWorldMatrix(t *testing.T) {
	// with a uniform parent scale, the world matrix is the product
	// of the parent world matrix and the local matrix
	par := NewTransform().SetPosXYZ(1, -2, 0.5).Pitch(0.6, SpaceLocal).SetScaleXYZ(1.5, 1.5, 1.5)
	kid := NewTransform().SetParent(par).SetPosXYZ(0, 2, -1).Yaw(-1.2, SpaceLocal).SetScaleXYZ(1, 2, 3)
	wm := kid.WorldMatrix()
	pm := par.WorldMatrix()
	lm := kid.LocalMatrix()
	cm := pm.Mul(&lm)
	assert.True(t, wm.IsEqualTol(&cm, tol))
	p := math32.Vec3(0.3, 0.2, -0.1)
	tolassert.EqualVector3(t, kid.WorldPos(), math32.Vector3{}.MulMatrix4AsPoint(&wm), tol)
	tolassert.EqualVector3(t, p.MulMatrix4AsPoint(&cm), p.MulMatrix4AsPoint(&wm), tol)
}

func TestTransformNoInherit(t *testing.T) {
	par := NewTransform().Yaw(1, SpaceLocal).SetScaleXYZ(2, 2, 2)
	kid := NewTransform().SetParent(par).SetPosXYZ(1, 0, 0)
	kid.SetInheritQuat(false).SetInheritScale(false)
	assert.True(t, kid.WorldQuat().IsIdentity())
	assert.Equal(t, math32.Vector3Scalar(1), kid.WorldScale())
	// the position still goes through the parent frame
	tolassert.EqualVector3(t, math32.Vec3(2, 0, 0).MulQuat(par.Quat()), kid.WorldPos(), tol)
}

func TestTranslateSpaces(t *testing.T) {
	par := NewTransform().Yaw(math32.DegToRad(90), SpaceLocal).SetScaleXYZ(2, 2, 2)
	kid := NewTransform().SetParent(par).Roll(math32.DegToRad(90), SpaceLocal)

	kid.Translate(math32.Vec3(1, 0, 0), SpaceParent)
	tolassert.EqualVector3(t, math32.Vec3(1, 0, 0), kid.Pos(), tol)

	kid.SetPos(math32.Vector3{})
	kid.Translate(math32.Vec3(1, 0, 0), SpaceLocal)
	tolassert.EqualVector3(t, math32.Vec3(0, 1, 0), kid.Pos(), tol)

	kid.SetPos(math32.Vector3{})
	w0 := kid.WorldPos()
	d := math32.Vec3(0.5, -1, 3)
	kid.Translate(d, SpaceWorld)
	tolassert.EqualVector3(t, w0.Add(d), kid.WorldPos(), tol)

	root := NewTransform()
	root.Translate(d, SpaceWorld)
	assert.Equal(t, d, root.Pos())
}

func TestTranslateWorldEquivalence(t *testing.T) {
	rnd := rand.New(rand.NewSource(2))
	for i := 0; i < 20; i++ {
		nodes := chain(3)
		for _, n := range nodes {
			n.SetPos(randVec(rnd, -3, 3)).SetQuat(randQuat(rnd)).SetScale(randVec(rnd, 0.5, 2))
		}
		leaf := nodes[2]
		w0 := leaf.WorldPos()
		d := randVec(rnd, -2, 2)
		leaf.Translate(d, SpaceWorld)
		tolassert.EqualVector3(t, w0.Add(d), leaf.WorldPos(), tol)
	}
}

func TestRotateSpaces(t *testing.T) {
	// 90 degrees about Y takes +X to -Z
	tf := NewTransform()
	tf.Rotate(math32.NewQuatAxisAngle(math32.Vec3(0, 1, 0), math32.DegToRad(90)), SpaceLocal)
	tolassert.EqualVector3(t, math32.Vec3(0, 0, -1), math32.Vec3(1, 0, 0).MulQuat(tf.WorldQuat()), tol)

	ry := math32.NewQuatAxisAngle(math32.Vec3(0, 1, 0), 0.7)
	rx := math32.NewQuatAxisAngle(math32.Vec3(1, 0, 0), 0.4)

	a := NewTransform().SetQuat(ry).Rotate(rx, SpaceLocal)
	tolassert.EqualQuat(t, ry.Mul(rx), a.Quat(), tol)

	b := NewTransform().SetQuat(ry).Rotate(rx, SpaceParent)
	tolassert.EqualQuat(t, rx.Mul(ry), b.Quat(), tol)

	par := NewTransform().SetQuat(math32.NewQuatAxisAngle(math32.Vec3(0, 0, 1), 1.1))
	kid := NewTransform().SetParent(par).SetQuat(ry)
	w0 := kid.WorldQuat()
	kid.Rotate(rx, SpaceWorld)
	tolassert.EqualQuat(t, rx.Mul(w0), kid.WorldQuat(), tol)
}

func TestSetWorldTransforms(t *testing.T) {
	rnd := rand.New(rand.NewSource(3))
	for i := 0; i < 20; i++ {
		nodes := chain(3)
		for _, n := range nodes {
			n.SetPos(randVec(rnd, -3, 3)).SetQuat(randQuat(rnd)).SetScaleXYZ(1.5, 1.5, 1.5)
		}
		leaf := nodes[2]
		pos := randVec(rnd, -4, 4)
		quat := randQuat(rnd)
		scale := randVec(rnd, 0.5, 2)
		leaf.SetWorldTransforms(pos, quat, scale)
		tolassert.EqualVector3(t, pos, leaf.WorldPos(), tol)
		tolassert.EqualQuat(t, quat, leaf.WorldQuat(), tol)
		tolassert.EqualVector3(t, scale, leaf.WorldScale(), tol)
	}

	root := NewTransform()
	root.SetWorldPose(math32.Vec3(1, 2, 3), math32.NewQuatIdentity())
	assert.Equal(t, math32.Vec3(1, 2, 3), root.Pos())
	assert.Equal(t, math32.Vector3Scalar(1), root.Scale())
}

func TestSetLocalMatrix(t *testing.T) {
	var m math32.Matrix4
	q := math32.NewQuatAxisAngle(math32.Vec3(0, 1, 1), 0.9)
	m.SetTransform(math32.Vec3(3, 2, 1), q, math32.Vec3(1, 2, 3))
	tf := NewTransform().SetLocalMatrix(m)
	tolassert.EqualVector3(t, math32.Vec3(3, 2, 1), tf.Pos(), tol)
	tolassert.EqualQuat(t, q, tf.Quat(), tol)
	tolassert.EqualVector3(t, math32.Vec3(1, 2, 3), tf.Scale(), tol)
	lm := tf.LocalMatrix()
	assert.True(t, lm.IsEqualTol(&m, tol))
}

func TestTransformSpacesText(t *testing.T) {
	assert.Equal(t, "World", SpaceWorld.String())
	var sp TransformSpaces
	assert.NoError(t, sp.UnmarshalText([]byte("parent")))
	assert.Equal(t, SpaceParent, sp)
	assert.Error(t, sp.UnmarshalText([]byte("orbit")))
	assert.Equal(t, "TransformSpaces(7)", TransformSpaces(7).String())

	var bm BodyModes
	assert.NoError(t, bm.SetString("Kinematic"))
	assert.Equal(t, BodyKinematic, bm)
	txt, err := BodyStatic.MarshalText()
	assert.NoError(t, err)
	assert.Equal(t, "Static", string(txt))
}

func TestRelativePose(t *testing.T) {
	root := NewTransform()
	root.SetPosXYZ(5, 0, 0).SetScaleXYZ(3, 3, 3)
	mid := NewTransform().SetParent(root)
	mid.SetPosXYZ(0, 1, 0).SetScaleXYZ(2, 2, 2)
	mid.Yaw(math32.Pi/2, SpaceLocal)
	leaf := NewTransform().SetParent(mid)
	leaf.SetPosXYZ(1, 0, 0)

	pos, quat, scale := leaf.RelativePose(root)
	tolassert.EqualVector3(t, math32.Vec3(0, 1, -2), pos, tol)
	tolassert.EqualQuat(t, mid.Quat(), quat, tol)
	tolassert.EqualVector3(t, math32.Vector3Scalar(2), scale, tol)

	pos, quat, scale = leaf.RelativePose(nil)
	tolassert.EqualVector3(t, leaf.WorldPos(), pos, tol)
	tolassert.EqualQuat(t, leaf.WorldQuat(), quat, tol)
	tolassert.EqualVector3(t, leaf.WorldScale(), scale, tol)

	pos, _, _ = leaf.RelativePose(leaf)
	assert.Equal(t, math32.Vector3{}, pos)
}

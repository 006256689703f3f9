// Copyright 2021 Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package math32_test

import (
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"

	. "github.com/urdfar/scenecore/math32"
	"github.com/urdfar/scenecore/base/tolassert"
)

const StandardTol = float32(1.0e-5)

func TestQuatRotate(t *testing.T) {
	q := NewQuatAxisAngle(Vec3(0, 1, 0), DegToRad(90))
	tolassert.EqualVector3(t, Vec3(0, 0, -1), Vec3(1, 0, 0).MulQuat(q), StandardTol)

	q = NewQuatAxisAngle(Vec3(0, 0, 1), DegToRad(90))
	tolassert.EqualVector3(t, Vec3(0, 1, 0), Vec3(1, 0, 0).MulQuat(q), StandardTol)

	// matches mathgl
	axis := Vec3(1, 2, 3).Normal()
	q = NewQuatAxisAngle(axis, 0.7)
	gq := mgl32.QuatRotate(0.7, mgl32.Vec3{axis.X, axis.Y, axis.Z})
	gv := gq.Rotate(mgl32.Vec3{0.5, -1, 2})
	tolassert.EqualVector3(t, Vec3(gv[0], gv[1], gv[2]), Vec3(0.5, -1, 2).MulQuat(q), StandardTol)
}

func TestQuatMul(t *testing.T) {
	a := NewQuatAxisAngle(Vec3(0, 1, 0), 0.4)
	b := NewQuatAxisAngle(Vec3(1, 0, 0), -1.1)
	v := Vec3(0.3, 0.2, -0.9)
	// (a*b) rotates by b first, then a
	tolassert.EqualVector3(t, v.MulQuat(b).MulQuat(a), v.MulQuat(a.Mul(b)), StandardTol)

	ga := mgl32.QuatRotate(0.4, mgl32.Vec3{0, 1, 0})
	gb := mgl32.QuatRotate(-1.1, mgl32.Vec3{1, 0, 0})
	gm := ga.Mul(gb)
	m := a.Mul(b)
	tolassert.EqualTol(t, gm.W, m.W, StandardTol)
	tolassert.EqualTol(t, gm.V[0], m.X, StandardTol)
	tolassert.EqualTol(t, gm.V[1], m.Y, StandardTol)
	tolassert.EqualTol(t, gm.V[2], m.Z, StandardTol)

	id := a.Mul(a.Inverse())
	tolassert.EqualQuat(t, NewQuatIdentity(), id, StandardTol)
}

func TestQuatNormalize(t *testing.T) {
	q := NewQuat(0, 0, 0, 0)
	q.Normalize()
	assert.True(t, q.IsIdentity())

	q = NewQuat(0, 2, 0, 0)
	q.Normalize()
	assert.Equal(t, NewQuat(0, 1, 0, 0), q)
	assert.Equal(t, Quat{}, Quat{}.Inverse())
}

func TestQuatEuler(t *testing.T) {
	e := Vec3(0.3, -0.5, 1.2)
	q := NewQuatEuler(e)
	tolassert.EqualVector3(t, e, q.ToEuler(), 1.0e-4)

	ax, ang := NewQuatAxisAngle(Vec3(0, 0, 2), 0.5).ToAxisAngle()
	tolassert.EqualVector3(t, Vec3(0, 0, 1), ax, StandardTol)
	tolassert.EqualTol(t, 0.5, ang, StandardTol)
}

func TestQuatSlerp(t *testing.T) {
	a := NewQuatIdentity()
	b := NewQuatAxisAngle(Vec3(0, 1, 0), DegToRad(90))
	h := a.Slerp(b, 0.5)
	tolassert.EqualQuat(t, NewQuatAxisAngle(Vec3(0, 1, 0), DegToRad(45)), h, StandardTol)
	assert.Equal(t, a, a.Slerp(b, 0))
	assert.Equal(t, b, a.Slerp(b, 1))
}

func TestMatrix4Transform(t *testing.T) {
	pos := Vec3(1, 2, 3)
	q := NewQuatAxisAngle(Vec3(1, 1, 0), 0.8)
	sc := Vec3(2, 3, 4)

	var m Matrix4
	m.SetTransform(pos, q, sc)

	gm := mgl32.Translate3D(1, 2, 3).Mul4(mgl32.QuatRotate(0.8, mgl32.Vec3{1, 1, 0}.Normalize()).Mat4()).Mul4(mgl32.Scale3D(2, 3, 4))
	for i := range m {
		tolassert.EqualTol(t, gm[i], m[i], 1.0e-4)
	}

	p := Vec3(-1, 0.5, 2)
	tolassert.EqualVector3(t, p.Mul(sc).MulQuat(q).Add(pos), p.MulMatrix4AsPoint(&m), 1.0e-4)

	dp, dq, ds := m.Decompose()
	tolassert.EqualVector3(t, pos, dp, 1.0e-4)
	tolassert.EqualQuat(t, q, dq, 1.0e-4)
	tolassert.EqualVector3(t, sc, ds, 1.0e-4)
}

func TestMatrix4Mul(t *testing.T) {
	var a, b Matrix4
	a.SetTransform(Vec3(1, 0, 0), NewQuatAxisAngle(Vec3(0, 0, 1), 0.3), Vec3(1, 1, 1))
	b.SetTransform(Vec3(0, 2, 0), NewQuatAxisAngle(Vec3(0, 1, 0), -0.6), Vec3(2, 2, 2))
	ab := a.Mul(&b)
	p := Vec3(0.25, 1, -3)
	tolassert.EqualVector3(t, p.MulMatrix4AsPoint(&b).MulMatrix4AsPoint(&a), p.MulMatrix4AsPoint(&ab), 1.0e-4)

	id := Identity4()
	r := a.Mul(&id)
	assert.True(t, a.IsEqualTol(&r, 0))
}

func TestBox3(t *testing.T) {
	b := B3Empty()
	assert.True(t, b.IsEmpty())
	assert.Equal(t, "[empty]", b.String())

	b.ExpandByBox(B3Empty())
	assert.True(t, b.IsEmpty())

	b.ExpandByPoint(Vec3(1, 2, 3))
	b.ExpandByPoint(Vec3(-1, 0, 5))
	assert.Equal(t, B3(-1, 0, 3, 1, 2, 5), b)
	assert.Equal(t, Vec3(0, 1, 4), b.Center())
	assert.Equal(t, Vec3(2, 2, 2), b.Size())
	assert.True(t, b.ContainsPoint(Vec3(0, 1, 4)))
	assert.False(t, b.ContainsPoint(Vec3(0, 1, 6)))
	assert.True(t, b.IntersectsBox(B3(0, 0, 0, 1, 1, 4)))

	u := b.Union(B3(5, 5, 5, 6, 6, 6))
	assert.Equal(t, B3(-1, 0, 3, 6, 6, 6), u)

	var m Matrix4
	m.SetTransform(Vec3(10, 0, 0), NewQuatAxisAngle(Vec3(0, 0, 1), DegToRad(90)), Vec3(1, 1, 1))
	hb := B3HalfExtents(Vec3(1, 2, 3)).MulMatrix4(&m)
	tolassert.EqualVector3(t, Vec3(8, -1, -3), hb.Min, StandardTol)
	tolassert.EqualVector3(t, Vec3(12, 1, 3), hb.Max, StandardTol)

	assert.True(t, B3Empty().MulMatrix4(&m).IsEmpty())
}

func TestRay(t *testing.T) {
	ray := NewRay(Vec3(0, 0, 5), Vec3(0, 0, -2))
	assert.Equal(t, Vec3(0, 0, -1), ray.Dir)

	p, ok := ray.IntersectSphere(Vec3(0, 0, 0), 1)
	assert.True(t, ok)
	tolassert.EqualVector3(t, Vec3(0, 0, 1), p, StandardTol)

	_, ok = ray.IntersectSphere(Vec3(3, 0, 0), 1)
	assert.False(t, ok)

	_, ok = ray.IntersectSphere(Vec3(0, 0, 10), 1)
	assert.False(t, ok)

	p, ok = ray.IntersectPlane(Vec3(0, 0, 1), 0)
	assert.True(t, ok)
	tolassert.EqualVector3(t, Vec3(0, 0, 0), p, StandardTol)

	_, ok = ray.IntersectPlane(Vec3(0, 0, 1), -10)
	assert.False(t, ok)

	ray = NewRay(Vec3(0.5, 0.5, 5), Vec3(0, 0, -1))
	p, ok = ray.IntersectBox(B3(0, 0, 0, 1, 1, 1))
	assert.True(t, ok)
	tolassert.EqualVector3(t, Vec3(0.5, 0.5, 1), p, StandardTol)

	_, ok = ray.IntersectBox(B3(2, 2, 0, 3, 3, 1))
	assert.False(t, ok)
}

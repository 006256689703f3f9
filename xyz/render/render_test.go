// Copyright (c) 2019, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package render

import (
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/urdfar/scenecore/base/tolassert"
	"github.com/urdfar/scenecore/math32"
	"github.com/urdfar/scenecore/xyz"
)

func testScene() (*xyz.Entity, *xyz.Renderable, *xyz.Renderable) {
	root := xyz.NewEntity("root")
	root.Transform.SetPosXYZ(1, 0, 0)
	box := xyz.NewBox("box", math32.Vec3(1, 1, 1))
	a := root.AddRenderable(xyz.NewRenderable(box), "visual")
	root.AddRenderable(xyz.NewRenderable(box).SetVisible(false), "collision")
	root.AddRenderable(xyz.NewRenderable(nil), "marker")
	kid := root.NewChild("kid")
	kid.Transform.SetPosXYZ(0, 2, 0).Yaw(math32.DegToRad(90), xyz.SpaceLocal)
	b := kid.AddRenderable(xyz.NewRenderable(box), "visual")
	return root, a, b
}

func TestCollect(t *testing.T) {
	root, a, b := testScene()
	items := Collect(root)
	require.Len(t, items, 2)
	assert.Same(t, a, items[0].Renderable)
	assert.Same(t, b, items[1].Renderable)
	assert.Equal(t, "kid", items[1].Entity.Name)

	// translation in elements 12..14
	assert.Equal(t, float32(1), items[0].Model[12])
	m := items[1].Model
	assert.Equal(t, mgl32.Vec3{1, 2, 0}, m.Col(3).Vec3())
	p := m.Mul4x1(mgl32.Vec4{1, 0, 0, 1})
	tolassert.EqualVector3(t, math32.Vec3(1, 2, -1), math32.Vec3(p[0], p[1], p[2]), 1.0e-5)

	arr := ModelArray(items, nil)
	require.Len(t, arr, 32)
	assert.Equal(t, items[1].Model[:], arr[16:])

	wm := b.Transform.WorldMatrix()
	assert.Equal(t, wm, FromGL(ToGL(wm)))
}

func TestCamera(t *testing.T) {
	root, _, _ := testScene()
	items := Collect(root)
	cam := NewCamera(math32.Vec3(0, 0, 10), math32.Vec3(1, 0, 0))
	assert.True(t, cam.InView(items[0], 1))

	behind := NewCamera(math32.Vec3(0, 0, 10), math32.Vec3(0, 0, 20))
	assert.False(t, behind.InView(items[0], 1))

	mvp := cam.MVP(items[0], 1)
	c := mvp.Mul4x1(mgl32.Vec4{0, 0, 0, 1})
	// the model origin is at the look-at target, the screen center
	tolassert.EqualTol(t, 0, c[0]/c[3], 1.0e-5)
	tolassert.EqualTol(t, 0, c[1]/c[3], 1.0e-5)
}

// Copyright (c) 2019, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package yamlscene

import (
	"bytes"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/urdfar/scenecore/base/tolassert"
	"github.com/urdfar/scenecore/math32"
	"github.com/urdfar/scenecore/xyz"
	"go.uber.org/zap"
)

const robotYAML = `
meshes:
  - {name: link, shape: box, min: {x: -0.02, y: -0.02, z: -0.02}, max: {x: 0.02, y: 0.02, z: 0.02}}
entities:
  - name: base
    pos: {x: 0, y: 1, z: 0}
    euler: {x: 0, y: 90, z: 0}
    renderables:
      - {mesh: link, tag: visual}
    body: {mode: Kinematic, friction: 0.8}
    children:
      - name: arm
        pos: {x: 1, y: 0, z: 0}
        inherit_scale: false
        frames:
          - tag: origin
            pos: {x: 0, y: 0.5, z: 0}
            renderables:
              - {mesh: link, tag: visual, visible: false}
`

func newLibrary() *xyz.Library {
	lib := xyz.NewLibrary(zap.NewNop())
	lib.Init()
	return lib
}

func TestLoad(t *testing.T) {
	lib := newLibrary()
	roots, err := Load(strings.NewReader(robotYAML), lib)
	require.NoError(t, err)
	require.Len(t, roots, 1)
	assert.Equal(t, 1, lib.Len())

	base := roots[0]
	assert.Equal(t, "base", base.Name)
	tolassert.EqualVector3(t, math32.Vec3(0, 1, 0), base.Transform.Pos(), 1e-5)
	tolassert.EqualQuat(t, math32.NewQuatAxisAngle(math32.Vec3(0, 1, 0), math32.Pi/2), base.Transform.Quat(), 1e-5)

	require.Len(t, base.Renderables(), 1)
	assert.Equal(t, "visual", base.Renderables()[0].Tag)
	assert.True(t, base.Renderables()[0].Visible)

	require.NotNil(t, base.Body())
	assert.Equal(t, xyz.BodyKinematic, base.Body().Mode)
	assert.InDelta(t, 0.8, base.Body().Friction, 1e-6)

	require.Equal(t, 1, base.NumChildren())
	arm := base.Child(0)
	assert.Equal(t, "arm", arm.Name)
	assert.False(t, arm.Transform.InheritScale())
	assert.True(t, arm.Transform.InheritQuat())
	require.Len(t, arm.Renderables(), 1)
	vis := arm.Renderables()[0]
	assert.False(t, vis.Visible)
	origin := vis.Transform.Parent()
	require.NotNil(t, origin)
	assert.Equal(t, "origin", origin.Tag)
	assert.Same(t, &arm.Transform, origin.Parent())

	// arm sits at base + R_y(90)*(1,0,0) = (0,1,-1); the origin frame adds 0.5 in y.
	tolassert.EqualVector3(t, math32.Vec3(0, 1.5, -1), vis.Transform.WorldPos(), 1e-5)
}

func TestLoadErrors(t *testing.T) {
	_, err := Load(strings.NewReader("entities: [{name: a, renderables: [{mesh: nope}]}]"), newLibrary())
	assert.ErrorIs(t, err, xyz.ErrMeshNotFound)

	_, err = Load(strings.NewReader("entities: [{name: a, renderables: [{tag: visual}]}]"), newLibrary())
	assert.ErrorIs(t, err, ErrNoMesh)

	_, err = Load(strings.NewReader("entities: [{name: a, body: {mode: Floating}}]"), newLibrary())
	assert.Error(t, err)

	_, err = Load(strings.NewReader("entities: {"), newLibrary())
	assert.Error(t, err)
}

func TestSaveRoundTrip(t *testing.T) {
	lib := newLibrary()
	roots, err := Load(strings.NewReader(robotYAML), lib)
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, Save(&buf, roots...))
	out := buf.String()
	assert.Contains(t, out, "mode: Kinematic")
	assert.Contains(t, out, "inherit_scale: false")
	assert.NotContains(t, out, "inherit_quat")
	assert.NotContains(t, out, "euler")

	again, err := Load(&buf, newLibrary())
	require.NoError(t, err)
	require.Len(t, again, 1)
	arm := again[0].Child(0)
	require.Len(t, arm.Renderables(), 1)
	vis := arm.Renderables()[0]
	assert.False(t, vis.Visible)
	assert.Equal(t, "origin", vis.Transform.Parent().Tag)
	tolassert.EqualVector3(t, math32.Vec3(0, 1.5, -1), vis.Transform.WorldPos(), 1e-5)
	want, got := roots[0].WorldBoundingBox(), again[0].WorldBoundingBox()
	tolassert.EqualVector3(t, want.Min, got.Min, 1e-5)
	tolassert.EqualVector3(t, want.Max, got.Max, 1e-5)
}

func TestNewDocumentSharesMeshes(t *testing.T) {
	box := xyz.NewBox("box", math32.Vector3Scalar(1))
	a := xyz.NewEntity("a")
	a.AddRenderable(xyz.NewRenderable(box), "visual")
	a.NewChild("b").AddRenderable(xyz.NewRenderable(box), "collision")

	doc := NewDocument(a)
	require.Len(t, doc.Meshes, 1)
	assert.Equal(t, "box", doc.Meshes[0].Name)
	require.Len(t, doc.Entities, 1)
	assert.Nil(t, doc.Entities[0].Pos)
	assert.Nil(t, doc.Entities[0].Quat)
	assert.Nil(t, doc.Entities[0].Scale)
	require.Len(t, doc.Entities[0].Children, 1)
	assert.Equal(t, "collision", doc.Entities[0].Children[0].Renderables[0].Tag)
}

func TestSaveFile(t *testing.T) {
	fn := filepath.Join(t.TempDir(), "scene.yaml")
	a := xyz.NewEntity("a")
	a.Transform.SetPosXYZ(1, 2, 3)
	require.NoError(t, SaveFile(fn, a))

	roots, err := Open(fn, newLibrary())
	require.NoError(t, err)
	require.Len(t, roots, 1)
	tolassert.EqualVector3(t, math32.Vec3(1, 2, 3), roots[0].Transform.WorldPos(), 1e-5)

	_, err = Open(filepath.Join(t.TempDir(), "missing.yaml"), newLibrary())
	assert.Error(t, err)
}

func TestLoadBodyDefaults(t *testing.T) {
	roots, err := Load(strings.NewReader("entities: [{name: a, body: {mode: Static}}]"), newLibrary())
	require.NoError(t, err)
	b := roots[0].Body()
	require.NotNil(t, b)
	assert.Equal(t, xyz.BodyStatic, b.Mode)
	assert.InDelta(t, 0.5, b.Friction, 1e-6)
}

// Copyright (c) 2019, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package gltfscene converts between glTF documents and scene graphs.
// Nodes become entities, and meshes become renderables whose bounding
// boxes come from the POSITION accessors.
package gltfscene

import (
	"fmt"
	"io"

	"github.com/pkg/errors"
	"github.com/qmuntal/gltf"
	"github.com/qmuntal/gltf/modeler"
	"github.com/urdfar/scenecore/math32"
	"github.com/urdfar/scenecore/xyz"
)

// VisualTag is the tag given to imported renderables.
const VisualTag = "visual"

// ErrNodeReused is returned when a node is reachable from more than
// one parent, which a tree cannot represent.
var ErrNodeReused = errors.New("node has more than one parent")

// Decode reads a glTF or GLB document and imports it.
func Decode(r io.Reader, lib *xyz.Library) ([]*xyz.Entity, error) {
	doc := &gltf.Document{}
	if err := gltf.NewDecoder(r).Decode(doc); err != nil {
		return nil, errors.Wrap(err, "gltfscene: decoding")
	}
	return Import(doc, lib)
}

// Open reads the glTF document in the given file and imports it.
func Open(filename string, lib *xyz.Library) ([]*xyz.Entity, error) {
	doc, err := gltf.Open(filename)
	if err != nil {
		return nil, errors.Wrapf(err, "gltfscene: %s", filename)
	}
	return Import(doc, lib)
}

// Import makes entities for the nodes of the default scene, or of the
// first scene if there is no default, or of all parentless nodes if the
// document has no scenes. Meshes are added to lib.
func Import(doc *gltf.Document, lib *xyz.Library) ([]*xyz.Entity, error) {
	meshes := make([]*xyz.MeshInfo, len(doc.Meshes))
	for i, gm := range doc.Meshes {
		ms, err := importMesh(doc, i, gm)
		if err != nil {
			return nil, err
		}
		meshes[i] = lib.Add(ms)
	}
	im := &importer{doc: doc, meshes: meshes, used: make([]bool, len(doc.Nodes))}
	var roots []*xyz.Entity
	for _, ni := range rootNodes(doc) {
		e, err := im.node(ni)
		if err != nil {
			for _, r := range roots {
				r.Destroy(nil)
			}
			return nil, err
		}
		roots = append(roots, e)
	}
	return roots, nil
}

func rootNodes(doc *gltf.Document) []uint32 {
	switch {
	case doc.Scene != nil && int(*doc.Scene) < len(doc.Scenes):
		return doc.Scenes[*doc.Scene].Nodes
	case len(doc.Scenes) > 0:
		return doc.Scenes[0].Nodes
	}
	child := make([]bool, len(doc.Nodes))
	for _, n := range doc.Nodes {
		for _, c := range n.Children {
			if int(c) < len(child) {
				child[c] = true
			}
		}
	}
	var roots []uint32
	for i := range doc.Nodes {
		if !child[i] {
			roots = append(roots, uint32(i))
		}
	}
	return roots
}

type importer struct {
	doc    *gltf.Document
	meshes []*xyz.MeshInfo
	used   []bool
}

func (im *importer) node(ni uint32) (*xyz.Entity, error) {
	if int(ni) >= len(im.doc.Nodes) {
		return nil, errors.Errorf("gltfscene: node index %d out of range", ni)
	}
	if im.used[ni] {
		return nil, errors.Wrapf(ErrNodeReused, "gltfscene: node %d", ni)
	}
	im.used[ni] = true
	gn := im.doc.Nodes[ni]
	name := gn.Name
	if name == "" {
		name = fmt.Sprintf("node_%d", ni)
	}
	e := xyz.NewEntity(name)
	setNodeTransform(&e.Transform, gn)
	if gn.Mesh != nil {
		if int(*gn.Mesh) >= len(im.meshes) {
			e.Destroy(nil)
			return nil, errors.Errorf("gltfscene: node %q: mesh index %d out of range", name, *gn.Mesh)
		}
		e.AddRenderable(xyz.NewRenderable(im.meshes[*gn.Mesh]), VisualTag)
	}
	for _, ci := range gn.Children {
		kid, err := im.node(ci)
		if err != nil {
			e.Destroy(nil)
			return nil, err
		}
		kid.SetParent(e)
	}
	return e, nil
}

// setNodeTransform sets the local transform from the node's matrix, if
// it is not the identity, or else from its TRS values. Zero rotation and
// zero scale are treated as unset.
func setNodeTransform(tf *xyz.Transform, gn *gltf.Node) {
	m := math32.Matrix4(matrixOf(gn.Matrix))
	if m != (math32.Matrix4{}) && m != math32.Identity4() {
		tf.SetLocalMatrix(m)
		return
	}
	tf.SetPos(vec3Of(gn.Translation[:]))
	if q := quatOf(gn.Rotation); !q.IsNil() {
		tf.SetQuat(q.Normal())
	}
	if s := vec3Of(gn.Scale[:]); !s.IsNil() {
		tf.SetScale(s)
	}
}

func importMesh(doc *gltf.Document, i int, gm *gltf.Mesh) (*xyz.MeshInfo, error) {
	name := gm.Name
	if name == "" {
		name = fmt.Sprintf("mesh_%d", i)
	}
	bb := math32.B3Empty()
	for _, prim := range gm.Primitives {
		ai, has := prim.Attributes["POSITION"]
		if !has {
			continue
		}
		if int(ai) >= len(doc.Accessors) {
			return nil, errors.Errorf("gltfscene: mesh %q: accessor index %d out of range", name, ai)
		}
		acc := doc.Accessors[ai]
		if len(acc.Min) >= 3 && len(acc.Max) >= 3 {
			bb.ExpandByPoint(vec3Of(acc.Min))
			bb.ExpandByPoint(vec3Of(acc.Max))
			continue
		}
		pos, err := modeler.ReadPosition(doc, acc, nil)
		if err != nil {
			return nil, errors.Wrapf(err, "gltfscene: mesh %q", name)
		}
		for _, p := range pos {
			bb.ExpandByPoint(math32.Vec3(p[0], p[1], p[2]))
		}
	}
	ms := xyz.NewMesh(xyz.MeshName(name), bb)
	ms.Shape = "gltf"
	return ms, nil
}

type float interface {
	~float32 | ~float64
}

func vec3Of[T float](v []T) math32.Vector3 {
	return math32.Vec3(float32(v[0]), float32(v[1]), float32(v[2]))
}

func quatOf[T float](v [4]T) math32.Quat {
	return math32.NewQuat(float32(v[0]), float32(v[1]), float32(v[2]), float32(v[3]))
}

func matrixOf[T float](v [16]T) [16]float32 {
	var m [16]float32
	for i, x := range v {
		m[i] = float32(x)
	}
	return m
}

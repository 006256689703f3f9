// Copyright (c) 2019, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package gltfscene

import (
	"io"
	"path/filepath"
	"strings"

	"github.com/pkg/errors"
	"github.com/qmuntal/gltf"
	"github.com/qmuntal/gltf/modeler"
	"github.com/urdfar/scenecore/math32"
	"github.com/urdfar/scenecore/xyz"
)

// boxIndices are the triangles of a box whose corners are numbered
// by the bits of their x, y and z extents.
var boxIndices = []uint32{
	0, 2, 1, 1, 2, 3, // -x
	4, 5, 6, 5, 7, 6, // +x
	0, 1, 4, 1, 5, 4, // -y
	2, 6, 3, 3, 6, 7, // +y
	0, 4, 2, 2, 4, 6, // -z
	1, 3, 5, 3, 7, 5, // +z
}

// Export returns a document with one scene holding the given entity
// trees. Each mesh is written once, as the box of its extent, and each
// renderable becomes a child node carrying its pose in the entity frame.
func Export(roots ...*xyz.Entity) *gltf.Document {
	ex := &exporter{doc: gltf.NewDocument(), meshes: map[*xyz.MeshInfo]uint32{}}
	for _, r := range roots {
		ex.doc.Scenes[0].Nodes = append(ex.doc.Scenes[0].Nodes, ex.entity(r))
	}
	return ex.doc
}

// Encode writes the entity trees as a glTF document, binary if asBinary.
func Encode(w io.Writer, asBinary bool, roots ...*xyz.Entity) error {
	enc := gltf.NewEncoder(w)
	enc.AsBinary = asBinary
	return errors.Wrap(enc.Encode(Export(roots...)), "gltfscene: encoding")
}

// SaveFile writes the entity trees to the given file, as a binary GLB
// file if its extension is .glb, or else as a glTF file with its
// buffers embedded.
func SaveFile(filename string, roots ...*xyz.Entity) error {
	doc := Export(roots...)
	if strings.EqualFold(filepath.Ext(filename), ".glb") {
		return errors.Wrapf(gltf.SaveBinary(doc, filename), "gltfscene: %s", filename)
	}
	for _, b := range doc.Buffers {
		b.EmbeddedResource()
	}
	return errors.Wrapf(gltf.Save(doc, filename), "gltfscene: %s", filename)
}

type exporter struct {
	doc    *gltf.Document
	meshes map[*xyz.MeshInfo]uint32
}

func (ex *exporter) entity(e *xyz.Entity) uint32 {
	gn := &gltf.Node{Name: e.Name}
	setNodeTRS(gn, e.Transform.Pos(), e.Transform.Quat(), e.Transform.Scale())
	ni := ex.addNode(gn)
	for _, r := range e.Renderables() {
		if r.Mesh == nil {
			continue
		}
		pos, quat, scale := r.Transform.RelativePose(&e.Transform)
		rn := &gltf.Node{Name: r.Tag, Mesh: gltf.Index(ex.mesh(r.Mesh))}
		setNodeTRS(rn, pos, quat, scale)
		gn.Children = append(gn.Children, ex.addNode(rn))
	}
	for _, kid := range e.Children() {
		gn.Children = append(gn.Children, ex.entity(kid))
	}
	return ni
}

func (ex *exporter) addNode(gn *gltf.Node) uint32 {
	ex.doc.Nodes = append(ex.doc.Nodes, gn)
	return uint32(len(ex.doc.Nodes) - 1)
}

func (ex *exporter) mesh(ms *xyz.MeshInfo) uint32 {
	if mi, has := ex.meshes[ms]; has {
		return mi
	}
	bb := ms.BBox
	if bb.IsEmpty() {
		bb = math32.Box3{}
	}
	corners := make([][3]float32, 8)
	for i := range corners {
		c := bb.Min
		if i&4 != 0 {
			c.X = bb.Max.X
		}
		if i&2 != 0 {
			c.Y = bb.Max.Y
		}
		if i&1 != 0 {
			c.Z = bb.Max.Z
		}
		corners[i] = [3]float32{c.X, c.Y, c.Z}
	}
	pos := modeler.WritePosition(ex.doc, corners)
	ind := modeler.WriteIndices(ex.doc, boxIndices)
	ex.doc.Meshes = append(ex.doc.Meshes, &gltf.Mesh{
		Name: string(ms.Name),
		Primitives: []*gltf.Primitive{{
			Indices:    gltf.Index(ind),
			Attributes: map[string]uint32{"POSITION": pos},
		}},
	})
	mi := uint32(len(ex.doc.Meshes) - 1)
	ex.meshes[ms] = mi
	return mi
}

func setNodeTRS(gn *gltf.Node, pos math32.Vector3, quat math32.Quat, scale math32.Vector3) {
	gn.Translation = [3]float32{pos.X, pos.Y, pos.Z}
	gn.Rotation = [4]float32{quat.X, quat.Y, quat.Z, quat.W}
	gn.Scale = [3]float32{scale.X, scale.Y, scale.Z}
}

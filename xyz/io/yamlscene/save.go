// Copyright (c) 2019, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package yamlscene

import (
	"io"
	"os"

	"github.com/pkg/errors"
	"github.com/urdfar/scenecore/math32"
	"github.com/urdfar/scenecore/xyz"
	"gopkg.in/yaml.v3"
)

// Save writes the entity trees below the given roots as a scene document.
func Save(w io.Writer, roots ...*xyz.Entity) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(NewDocument(roots...)); err != nil {
		return errors.Wrap(err, "yamlscene: encoding")
	}
	return errors.Wrap(enc.Close(), "yamlscene: encoding")
}

// SaveFile writes the scene document to the given file.
func SaveFile(filename string, roots ...*xyz.Entity) error {
	f, err := os.Create(filename)
	if err != nil {
		return errors.Wrap(err, "yamlscene")
	}
	if err := Save(f, roots...); err != nil {
		f.Close()
		return err
	}
	return errors.Wrap(f.Close(), "yamlscene")
}

// NewDocument returns the document describing the given entity trees,
// listing each mesh they use once, in order of first use.
func NewDocument(roots ...*xyz.Entity) *Document {
	doc := &Document{}
	seen := map[*xyz.MeshInfo]bool{}
	for _, r := range roots {
		doc.Entities = append(doc.Entities, describeEntity(r, doc, seen))
	}
	return doc
}

func describeEntity(e *xyz.Entity, doc *Document, seen map[*xyz.MeshInfo]bool) Entity {
	de := Entity{Name: e.Name, Pose: poseOf(&e.Transform)}
	if !e.Transform.InheritQuat() {
		de.InheritQuat = new(bool)
	}
	if !e.Transform.InheritScale() {
		de.InheritScale = new(bool)
	}
	de.Renderables, de.Frames = describeFrame(&e.Transform, doc, seen)
	if b := e.Body(); b != nil {
		friction := b.Friction
		de.Body = &Body{Mode: b.Mode, Friction: &friction, Pose: poseOf(&b.Transform)}
	}
	for _, kid := range e.Children() {
		de.Children = append(de.Children, describeEntity(kid, doc, seen))
	}
	return de
}

func describeFrame(frame *xyz.Transform, doc *Document, seen map[*xyz.MeshInfo]bool) ([]Renderable, []Frame) {
	var rs []Renderable
	var fs []Frame
	for _, kid := range frame.Children() {
		switch ow := kid.Owner().(type) {
		case *xyz.Renderable:
			if ow.Mesh == nil {
				continue
			}
			if !seen[ow.Mesh] {
				seen[ow.Mesh] = true
				doc.Meshes = append(doc.Meshes, Mesh{Name: string(ow.Mesh.Name), Shape: ow.Mesh.Shape, Min: ow.Mesh.BBox.Min, Max: ow.Mesh.BBox.Max})
			}
			dr := Renderable{Mesh: string(ow.Mesh.Name), Tag: ow.Tag, Pose: poseOf(kid)}
			if !ow.Visible {
				dr.Visible = new(bool)
			}
			rs = append(rs, dr)
		case nil:
			df := Frame{Tag: kid.Tag, Pose: poseOf(kid)}
			df.Renderables, df.Frames = describeFrame(kid, doc, seen)
			fs = append(fs, df)
		}
	}
	return rs, fs
}

// poseOf returns the local pose, leaving out identity values.
func poseOf(tf *xyz.Transform) Pose {
	var ps Pose
	if p := tf.Pos(); !p.IsNil() {
		ps.Pos = &p
	}
	if q := tf.Quat(); !q.IsIdentity() {
		ps.Quat = &q
	}
	if s := tf.Scale(); s != math32.Vector3Scalar(1) {
		ps.Scale = &s
	}
	return ps
}

// Copyright (c) 2019, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package yamlscene reads and writes scene graphs as YAML documents.
//
// A document lists the meshes by name and extent, and the entity trees:
//
//	meshes:
//	  - {name: box, shape: box, min: {x: -1, y: -1, z: -1}, max: {x: 1, y: 1, z: 1}}
//	entities:
//	  - name: root
//	    pos: {x: 0, y: 1, z: 0}
//	    euler: {x: 0, y: 90, z: 0}
//	    renderables:
//	      - {mesh: box, tag: visual}
//	    body: {mode: Dynamic, friction: 0.5}
//	    children: [...]
//
// Orientations are given either as a quaternion (quat) or as Euler
// angles in degrees (euler). Frames are bare transforms below an entity
// that hold renderables, such as a visual origin.
package yamlscene

import (
	"io"
	"os"

	"github.com/pkg/errors"
	"github.com/urdfar/scenecore/math32"
	"github.com/urdfar/scenecore/xyz"
	"gopkg.in/yaml.v3"
)

// ErrNoMesh is returned for a renderable that names no mesh.
var ErrNoMesh = errors.New("renderable has no mesh")

// Document is the top level of a scene file.
type Document struct {
	Meshes   []Mesh   `yaml:"meshes,omitempty"`
	Entities []Entity `yaml:"entities"`
}

// Mesh describes a mesh by its name and bounding box.
type Mesh struct {
	Name  string         `yaml:"name"`
	Shape string         `yaml:"shape,omitempty"`
	Min   math32.Vector3 `yaml:"min"`
	Max   math32.Vector3 `yaml:"max"`
}

// Pose is a local transform. Missing values are the identity.
type Pose struct {
	Pos   *math32.Vector3 `yaml:"pos,omitempty"`
	Quat  *math32.Quat    `yaml:"quat,omitempty"`
	Euler *math32.Vector3 `yaml:"euler,omitempty"`
	Scale *math32.Vector3 `yaml:"scale,omitempty"`
}

// Entity describes an entity and its subtree.
type Entity struct {
	Name         string `yaml:"name"`
	Pose         `yaml:",inline"`
	InheritQuat  *bool        `yaml:"inherit_quat,omitempty"`
	InheritScale *bool        `yaml:"inherit_scale,omitempty"`
	Renderables  []Renderable `yaml:"renderables,omitempty"`
	Frames       []Frame      `yaml:"frames,omitempty"`
	Body         *Body        `yaml:"body,omitempty"`
	Children     []Entity     `yaml:"children,omitempty"`
}

// Frame is a bare transform holding renderables.
type Frame struct {
	Tag         string `yaml:"tag,omitempty"`
	Pose        `yaml:",inline"`
	Renderables []Renderable `yaml:"renderables,omitempty"`
	Frames      []Frame      `yaml:"frames,omitempty"`
}

// Renderable describes a drawable payload.
type Renderable struct {
	Mesh    string `yaml:"mesh"`
	Tag     string `yaml:"tag,omitempty"`
	Visible *bool  `yaml:"visible,omitempty"`
	Pose    `yaml:",inline"`
}

// Body describes a physical payload.
type Body struct {
	Mode     xyz.BodyModes `yaml:"mode"`
	Friction *float32      `yaml:"friction,omitempty"`
	Pose     `yaml:",inline"`
}

// Load reads a scene document, adding its meshes to lib and
// returning the root entities.
func Load(r io.Reader, lib *xyz.Library) ([]*xyz.Entity, error) {
	doc := &Document{}
	if err := yaml.NewDecoder(r).Decode(doc); err != nil {
		return nil, errors.Wrap(err, "yamlscene: decoding")
	}
	return Build(doc, lib)
}

// Open reads the scene document in the given file.
func Open(filename string, lib *xyz.Library) ([]*xyz.Entity, error) {
	f, err := os.Open(filename)
	if err != nil {
		return nil, errors.Wrap(err, "yamlscene")
	}
	defer f.Close()
	roots, err := Load(f, lib)
	return roots, errors.Wrapf(err, "yamlscene: %s", filename)
}

// Build makes the entities of a decoded document, adding its meshes to lib.
func Build(doc *Document, lib *xyz.Library) ([]*xyz.Entity, error) {
	for _, ms := range doc.Meshes {
		mi := xyz.NewMesh(xyz.MeshName(ms.Name), math32.Box3{Min: ms.Min, Max: ms.Max})
		mi.Shape = ms.Shape
		lib.Add(mi)
	}
	roots := make([]*xyz.Entity, 0, len(doc.Entities))
	for i := range doc.Entities {
		e, err := buildEntity(&doc.Entities[i], lib)
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

func buildEntity(de *Entity, lib *xyz.Library) (*xyz.Entity, error) {
	e := xyz.NewEntity(de.Name)
	de.Pose.apply(&e.Transform)
	if de.InheritQuat != nil {
		e.Transform.SetInheritQuat(*de.InheritQuat)
	}
	if de.InheritScale != nil {
		e.Transform.SetInheritScale(*de.InheritScale)
	}
	if err := buildPayloads(e, &e.Transform, de.Renderables, de.Frames, lib); err != nil {
		e.Destroy(nil)
		return nil, errors.Wrapf(err, "entity %q", de.Name)
	}
	if de.Body != nil {
		b := xyz.NewBody()
		b.Mode = de.Body.Mode
		if de.Body.Friction != nil {
			b.Friction = *de.Body.Friction
		}
		de.Body.Pose.apply(&b.Transform)
		e.AttachBody(b)
	}
	for i := range de.Children {
		kid, err := buildEntity(&de.Children[i], lib)
		if err != nil {
			e.Destroy(nil)
			return nil, errors.Wrapf(err, "entity %q", de.Name)
		}
		kid.SetParent(e)
	}
	return e, nil
}

func buildPayloads(e *xyz.Entity, frame *xyz.Transform, rs []Renderable, fs []Frame, lib *xyz.Library) error {
	for i := range rs {
		dr := &rs[i]
		if dr.Mesh == "" {
			return errors.Wrapf(ErrNoMesh, "renderable %d", i)
		}
		ms, err := lib.Mesh(xyz.MeshName(dr.Mesh))
		if err != nil {
			return err
		}
		r := xyz.NewRenderable(ms)
		if dr.Visible != nil {
			r.Visible = *dr.Visible
		}
		dr.Pose.apply(&r.Transform)
		e.AddRenderableUnder(r, dr.Tag, frame)
	}
	for i := range fs {
		df := &fs[i]
		tf := xyz.NewTransform()
		tf.Tag = df.Tag
		df.Pose.apply(tf)
		tf.SetParent(frame)
		if err := buildPayloads(e, tf, df.Renderables, df.Frames, lib); err != nil {
			return errors.Wrapf(err, "frame %q", df.Tag)
		}
	}
	return nil
}

func (ps *Pose) apply(tf *xyz.Transform) {
	if ps.Pos != nil {
		tf.SetPos(*ps.Pos)
	}
	switch {
	case ps.Quat != nil:
		tf.SetQuat(ps.Quat.Normal())
	case ps.Euler != nil:
		tf.SetQuat(math32.NewQuatEuler(ps.Euler.MulScalar(math32.DegToRadFactor)))
	}
	if ps.Scale != nil {
		tf.SetScale(*ps.Scale)
	}
}

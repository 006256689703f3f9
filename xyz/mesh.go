// Copyright (c) 2019, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package xyz

import (
	"github.com/urdfar/scenecore/math32"
)

// MeshName is the unique name of a mesh in a [Library].
type MeshName string

// MeshInfo describes shared mesh geometry by its extent. The vertex
// data lives with the renderer; the scene graph only needs the box.
type MeshInfo struct {

	// Name is the unique name of the mesh in its library.
	Name MeshName

	// Shape is a short description of the generating primitive, if any.
	Shape string

	// BBox is the bounding box in mesh-local coordinates.
	BBox math32.Box3
}

// NewMesh returns a mesh with the given name and box.
func NewMesh(name MeshName, bbox math32.Box3) *MeshInfo {
	return &MeshInfo{Name: name, BBox: bbox}
}

// NewBox returns a box mesh centered on the origin with the given full size.
func NewBox(name MeshName, size math32.Vector3) *MeshInfo {
	return &MeshInfo{Name: name, Shape: "box", BBox: math32.B3HalfExtents(size.MulScalar(0.5))}
}

// NewSphere returns a sphere mesh centered on the origin.
func NewSphere(name MeshName, radius float32) *MeshInfo {
	return &MeshInfo{Name: name, Shape: "sphere", BBox: math32.B3HalfExtents(math32.Vector3Scalar(radius))}
}

// NewCylinder returns a cylinder mesh centered on the origin
// with its axis along Y.
func NewCylinder(name MeshName, radius, height float32) *MeshInfo {
	return &MeshInfo{Name: name, Shape: "cylinder", BBox: math32.B3HalfExtents(math32.Vec3(radius, height/2, radius))}
}

// NewEllipsoid returns an ellipsoid mesh centered on the origin
// with the given radii.
func NewEllipsoid(name MeshName, radii math32.Vector3) *MeshInfo {
	return &MeshInfo{Name: name, Shape: "ellipsoid", BBox: math32.B3HalfExtents(radii)}
}

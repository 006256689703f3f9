// Copyright 2019 Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Initially copied from G3N: github.com/g3n/engine/math32
// Copyright 2016 The G3N Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.
// with modifications needed to suit Cogent Core functionality.

package math32

// Ray represents an oriented 3D line segment defined by an origin point and a direction vector.
type Ray struct {
	Origin Vector3
	Dir    Vector3
}

// NewRay creates and returns a pointer to a Ray object with
// the specified origin and direction vectors.
// The direction is normalized.
func NewRay(origin, dir Vector3) *Ray {
	return &Ray{Origin: origin, Dir: dir.Normal()}
}

// At returns the point along the ray at distance t from the origin.
func (ray *Ray) At(t float32) Vector3 {
	return ray.Dir.MulScalar(t).Add(ray.Origin)
}

// IntersectSphere returns the nearest intersection point of this ray
// with the sphere of the given center and radius, if any.
// A ray starting inside the sphere hits its far side.
func (ray *Ray) IntersectSphere(center Vector3, radius float32) (Vector3, bool) {
	v1 := center.Sub(ray.Origin)
	tca := v1.Dot(ray.Dir)
	d2 := v1.Dot(v1) - tca*tca
	radius2 := radius * radius
	if d2 > radius2 {
		return Vector3{}, false
	}
	thc := Sqrt(radius2 - d2)
	t0 := tca - thc
	t1 := tca + thc
	if t0 < 0 && t1 < 0 {
		return Vector3{}, false
	}
	if t0 < 0 {
		return ray.At(t1), true
	}
	return ray.At(t0), true
}

// IntersectPlane returns the intersection point of this ray with the
// plane of the given normal and signed distance from the origin
// (points p with normal.Dot(p) + constant == 0).
func (ray *Ray) IntersectPlane(normal Vector3, constant float32) (Vector3, bool) {
	denom := normal.Dot(ray.Dir)
	if denom == 0 {
		if normal.Dot(ray.Origin)+constant == 0 {
			return ray.Origin, true
		}
		return Vector3{}, false
	}
	t := -(ray.Origin.Dot(normal) + constant) / denom
	if t < 0 {
		return Vector3{}, false
	}
	return ray.At(t), true
}

// IntersectBox returns the nearest intersection point of this ray
// with the given axis aligned box, if any.
func (ray *Ray) IntersectBox(box Box3) (Vector3, bool) {
	if box.IsEmpty() {
		return Vector3{}, false
	}
	var tmin, tmax, tymin, tymax, tzmin, tzmax float32

	invdirx := 1 / ray.Dir.X
	invdiry := 1 / ray.Dir.Y
	invdirz := 1 / ray.Dir.Z

	origin := ray.Origin
	if invdirx >= 0 {
		tmin = (box.Min.X - origin.X) * invdirx
		tmax = (box.Max.X - origin.X) * invdirx
	} else {
		tmin = (box.Max.X - origin.X) * invdirx
		tmax = (box.Min.X - origin.X) * invdirx
	}
	if invdiry >= 0 {
		tymin = (box.Min.Y - origin.Y) * invdiry
		tymax = (box.Max.Y - origin.Y) * invdiry
	} else {
		tymin = (box.Max.Y - origin.Y) * invdiry
		tymax = (box.Min.Y - origin.Y) * invdiry
	}
	if tmin > tymax || tymin > tmax {
		return Vector3{}, false
	}
	if tymin > tmin || IsNaN(tmin) {
		tmin = tymin
	}
	if tymax < tmax || IsNaN(tmax) {
		tmax = tymax
	}
	if invdirz >= 0 {
		tzmin = (box.Min.Z - origin.Z) * invdirz
		tzmax = (box.Max.Z - origin.Z) * invdirz
	} else {
		tzmin = (box.Max.Z - origin.Z) * invdirz
		tzmax = (box.Min.Z - origin.Z) * invdirz
	}
	if tmin > tzmax || tzmin > tmax {
		return Vector3{}, false
	}
	if tzmin > tmin || IsNaN(tmin) {
		tmin = tzmin
	}
	if tzmax < tmax || IsNaN(tmax) {
		tmax = tzmax
	}
	// box is behind the ray
	if tmax < 0 {
		return Vector3{}, false
	}
	if tmin >= 0 {
		return ray.At(tmin), true
	}
	return ray.At(tmax), true
}

// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package tolassert provides functions for asserting the equality of numbers
// and vectors with tolerance.
package tolassert

import (
	"github.com/urdfar/scenecore/math32"
	"github.com/stretchr/testify/assert"
)

// EqualTol asserts that the given two numbers are equal within the given tolerance.
func EqualTol[T ~float32 | ~float64](t assert.TestingT, expected, actual, tolerance T, msgAndArgs ...any) bool {
	if h, ok := t.(interface{ Helper() }); ok {
		h.Helper()
	}
	return assert.InDelta(t, float64(expected), float64(actual), float64(tolerance), msgAndArgs...)
}

// EqualVector3 asserts that the given vectors are equal within the given tolerance.
func EqualVector3(t assert.TestingT, expected, actual math32.Vector3, tolerance float32, msgAndArgs ...any) bool {
	if h, ok := t.(interface{ Helper() }); ok {
		h.Helper()
	}
	if expected.IsEqualTol(actual, tolerance) {
		return true
	}
	return assert.Fail(t, "vectors not equal within tolerance",
		append([]any{"expected %v, actual %v (tol %g)", expected, actual, tolerance}, msgAndArgs...)...)
}

// EqualQuat asserts that the given quaternions describe the same rotation
// within the given tolerance.
func EqualQuat(t assert.TestingT, expected, actual math32.Quat, tolerance float32, msgAndArgs ...any) bool {
	if h, ok := t.(interface{ Helper() }); ok {
		h.Helper()
	}
	if expected.IsEqualTol(actual, tolerance) {
		return true
	}
	return assert.Fail(t, "quaternions not equal within tolerance",
		append([]any{"expected %v, actual %v (tol %g)", expected, actual, tolerance}, msgAndArgs...)...)
}

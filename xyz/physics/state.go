// Copyright (c) 2019, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package physics is a simple rigid body integrator that drives
// [xyz.Body] payloads of a scene graph, reading the pose of kinematic
// bodies from the graph and writing simulated poses back into it.
// It does no collision detection.
package physics

import (
	"math"

	"github.com/urdfar/scenecore/math32"
)

// State contains the basic physical state including position, orientation, velocity,
// in simulation units.
type State struct {

	// position of center of mass of object
	Pos math32.Vector3

	// rotation specified as a Quat
	Quat math32.Quat

	// linear velocity
	LinVel math32.Vector3

	// angular velocity, as axis times radians per second
	AngVel math32.Vector3
}

// Defaults sets defaults only if current values are nil
func (ps *State) Defaults() {
	if ps.Quat.IsNil() {
		ps.Quat.SetIdentity()
	}
}

// AngMotionMax is maximum angular motion that can be taken per update
const AngMotionMax = math.Pi / 4

// StepByAngVel steps the Quat rotation from angular velocity
func (ps *State) StepByAngVel(step float32) {
	ang := ps.AngVel.Length()
	if ang < 1.0e-6 {
		return
	}
	// limit the angular motion
	if ang*step > AngMotionMax {
		ang = AngMotionMax / step
	}
	dq := math32.NewQuatAxisAngle(ps.AngVel, ang*step)
	ps.Quat = dq.Mul(ps.Quat)
	ps.Quat.Normalize()
}

// StepByLinVel steps the Pos from the linear velocity
func (ps *State) StepByLinVel(step float32) {
	ps.Pos.SetAdd(ps.LinVel.MulScalar(step))
}

// Move moves (translates) Pos by given amount, and sets the LinVel to the given
// delta -- this can be useful for Scripted motion to track movement.
func (ps *State) Move(delta math32.Vector3) {
	ps.LinVel = delta
	ps.Pos.SetAdd(delta)
}

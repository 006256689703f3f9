// Copyright (c) 2019, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package xyz

import (
	"strconv"
	"strings"

	"github.com/pkg/errors"
)

// TransformSpaces are the frames in which a translation or rotation
// delta can be expressed.
type TransformSpaces int32

const (
	// SpaceLocal expresses deltas in the node's own frame.
	SpaceLocal TransformSpaces = iota

	// SpaceParent expresses deltas in the parent's frame,
	// in which the local values are defined.
	SpaceParent

	// SpaceWorld expresses deltas in the absolute scene frame.
	SpaceWorld

	TransformSpacesN
)

var transformSpacesNames = [...]string{"Local", "Parent", "World"}

// String returns the name of the space.
func (i TransformSpaces) String() string {
	if i < 0 || i >= TransformSpacesN {
		return "TransformSpaces(" + strconv.Itoa(int(i)) + ")"
	}
	return transformSpacesNames[i]
}

// SetString sets the space from its name, case insensitive.
func (i *TransformSpaces) SetString(s string) error {
	for j, nm := range transformSpacesNames {
		if strings.EqualFold(nm, s) {
			*i = TransformSpaces(j)
			return nil
		}
	}
	return errors.Errorf("%q is not a valid value for type TransformSpaces", s)
}

// MarshalText implements the [encoding.TextMarshaler] interface.
func (i TransformSpaces) MarshalText() ([]byte, error) {
	return []byte(i.String()), nil
}

// UnmarshalText implements the [encoding.TextUnmarshaler] interface.
func (i *TransformSpaces) UnmarshalText(text []byte) error {
	return i.SetString(string(text))
}

// BodyModes are the ways a physical body takes part in simulation.
type BodyModes int32

const (
	// BodyDynamic bodies are moved by the simulation, which writes
	// their pose back into the scene graph.
	BodyDynamic BodyModes = iota

	// BodyStatic bodies never move.
	BodyStatic

	// BodyKinematic bodies are moved by the scene graph, and the
	// simulation reads their pose from it.
	BodyKinematic

	BodyModesN
)

var bodyModesNames = [...]string{"Dynamic", "Static", "Kinematic"}

// String returns the name of the mode.
func (i BodyModes) String() string {
	if i < 0 || i >= BodyModesN {
		return "BodyModes(" + strconv.Itoa(int(i)) + ")"
	}
	return bodyModesNames[i]
}

// SetString sets the mode from its name, case insensitive.
func (i *BodyModes) SetString(s string) error {
	for j, nm := range bodyModesNames {
		if strings.EqualFold(nm, s) {
			*i = BodyModes(j)
			return nil
		}
	}
	return errors.Errorf("%q is not a valid value for type BodyModes", s)
}

// MarshalText implements the [encoding.TextMarshaler] interface.
func (i BodyModes) MarshalText() ([]byte, error) {
	return []byte(i.String()), nil
}

// UnmarshalText implements the [encoding.TextUnmarshaler] interface.
func (i *BodyModes) UnmarshalText(text []byte) error {
	return i.SetString(string(text))
}

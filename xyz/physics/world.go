// Copyright (c) 2019, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package physics

import (
	"slices"

	"github.com/google/uuid"
	"github.com/urdfar/scenecore/math32"
	"github.com/urdfar/scenecore/xyz"
	"go.uber.org/zap"
)

// DefaultScale is the default number of simulation units per scene unit.
const DefaultScale = 100

// Rigid is the simulation record of a registered body,
// stored as the body's Proxy.
type Rigid struct {
	ID    uuid.UUID
	Body  *xyz.Body
	Mass  float32
	State State

	motion MotionState
}

// World is the simulation. It implements [xyz.PhysicsWorld].
type World struct {

	// Gravity acceleration, in simulation units.
	Gravity math32.Vector3

	// Scale is the number of simulation units per scene unit.
	Scale float32

	// FixedStep is the duration of one integration step in seconds.
	FixedStep float32

	// MaxSubSteps limits the steps taken by one call to [World.Step].
	MaxSubSteps int

	rigids []*Rigid
	byID   map[uuid.UUID]*Rigid
	acc    float32
	log    *zap.Logger
}

var _ xyz.PhysicsWorld = (*World)(nil)

// NewWorld returns a new empty world with earth gravity, logging to lg,
// which may be nil.
func NewWorld(lg *zap.Logger) *World {
	if lg == nil {
		lg = zap.NewNop()
	}
	return &World{
		Gravity:     math32.Vec3(0, -9.81*DefaultScale, 0),
		Scale:       DefaultScale,
		FixedStep:   0.006,
		MaxSubSteps: 100,
		byID:        make(map[uuid.UUID]*Rigid),
		log:         lg,
	}
}

// Len returns the number of registered bodies.
func (w *World) Len() int {
	return len(w.rigids)
}

// Rigid returns the record with the given ID, or nil.
func (w *World) Rigid(id uuid.UUID) *Rigid {
	return w.byID[id]
}

// Add registers the body with the given mass, initializing its state
// from its current world pose. Adding a registered body returns its
// existing record.
func (w *World) Add(b *xyz.Body, mass float32) *Rigid {
	if rb, ok := b.Proxy.(*Rigid); ok && w.byID[rb.ID] == rb {
		return rb
	}
	rb := &Rigid{ID: uuid.New(), Body: b, Mass: mass}
	rb.motion = MotionState{Body: b, Scale: w.Scale}
	rb.State.Pos, rb.State.Quat = rb.motion.WorldTransform()
	b.Proxy = rb
	w.rigids = append(w.rigids, rb)
	w.byID[rb.ID] = rb
	w.log.Debug("physics.World: body added", zap.Stringer("id", rb.ID), zap.Stringer("mode", b.Mode))
	return rb
}

// RemoveBody unregisters the body. Unknown bodies are ignored.
func (w *World) RemoveBody(b *xyz.Body) {
	rb, ok := b.Proxy.(*Rigid)
	if !ok || w.byID[rb.ID] != rb {
		return
	}
	delete(w.byID, rb.ID)
	if i := slices.Index(w.rigids, rb); i >= 0 {
		w.rigids = slices.Delete(w.rigids, i, i+1)
	}
	b.Proxy = nil
	w.log.Debug("physics.World: body removed", zap.Stringer("id", rb.ID))
}

// Step advances the simulation by elapsed seconds in fixed steps,
// returning the number of steps taken. Time beyond MaxSubSteps
// steps is dropped.
func (w *World) Step(elapsed float32) int {
	w.acc += elapsed
	n := 0
	for w.acc >= w.FixedStep && n < w.MaxSubSteps {
		w.step(w.FixedStep)
		w.acc -= w.FixedStep
		n++
	}
	if n == w.MaxSubSteps {
		w.acc = 0
	}
	return n
}

func (w *World) step(dt float32) {
	for _, rb := range w.rigids {
		switch rb.Body.Mode {
		case xyz.BodyKinematic:
			rb.State.Pos, rb.State.Quat = rb.motion.WorldTransform()
		case xyz.BodyDynamic:
			if rb.Mass > 0 {
				rb.State.LinVel.SetAdd(w.Gravity.MulScalar(dt))
			}
			rb.State.StepByLinVel(dt)
			rb.State.StepByAngVel(dt)
			rb.motion.SetWorldTransform(rb.State.Pos, rb.State.Quat)
		}
	}
}

// RayTest returns the nearest registered body whose entity's world
// bounding box is hit by the ray, or nil.
func (w *World) RayTest(ray *math32.Ray) *xyz.Body {
	var hit *xyz.Body
	best := math32.Infinity
	for _, rb := range w.rigids {
		e := rb.Body.Entity()
		if e == nil {
			continue
		}
		p, ok := ray.IntersectBox(e.WorldBoundingBox())
		if !ok {
			continue
		}
		if d := p.DistanceTo(ray.Origin); d < best {
			best = d
			hit = rb.Body
		}
	}
	return hit
}

// Copyright (c) 2019, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package motion

import (
	"io"
	"slices"

	"github.com/pkg/errors"
	"github.com/urdfar/scenecore/math32"
	"github.com/urdfar/scenecore/xyz"
	"go.uber.org/zap"
	"gopkg.in/yaml.v3"
)

// Pose is a recorded local pose of a named entity.
// A nil (all zero) Quat keeps the current orientation.
type Pose struct {
	Entity string         `yaml:"entity"`
	Pos    math32.Vector3 `yaml:"pos"`
	Quat   math32.Quat    `yaml:"quat"`
}

// Frame is the set of poses recorded at one time, in seconds
// from the start of the recording.
type Frame struct {
	Time  float32 `yaml:"time"`
	Poses []Pose  `yaml:"poses"`
}

// Timeline is a recording: static poses applied once at the start,
// and frames applied in time order.
type Timeline struct {
	Static []Pose  `yaml:"static"`
	Frames []Frame `yaml:"frames"`
}

// ReadTimeline decodes a YAML timeline. Frames are sorted by time.
func ReadTimeline(r io.Reader) (*Timeline, error) {
	tl := &Timeline{}
	if err := yaml.NewDecoder(r).Decode(tl); err != nil {
		return nil, errors.Wrap(err, "motion: decoding timeline")
	}
	slices.SortStableFunc(tl.Frames, func(a, b Frame) int {
		switch {
		case a.Time < b.Time:
			return -1
		case a.Time > b.Time:
			return 1
		}
		return 0
	})
	return tl, nil
}

// Player replays a [Timeline] onto the entities below a root, looking
// them up by name, and loops when it reaches the end.
type Player struct {
	Timeline *Timeline

	// Loop restarts playback after the last frame.
	Loop bool

	root    *xyz.Entity
	index   int
	elapsed float32
	running bool
	log     *zap.Logger
}

// NewPlayer returns a looping player of tl onto the entities below root.
func NewPlayer(root *xyz.Entity, tl *Timeline, lg *zap.Logger) *Player {
	if lg == nil {
		lg = zap.NewNop()
	}
	return &Player{Timeline: tl, Loop: true, root: root, log: lg}
}

// IsRunning returns whether the player has been started and not stopped or finished.
func (pl *Player) IsRunning() bool {
	return pl.running
}

// Start applies the static poses and the first frame.
func (pl *Player) Start() {
	pl.apply(pl.Timeline.Static)
	pl.index = 0
	pl.elapsed = 0
	pl.running = len(pl.Timeline.Frames) > 0
	if pl.running {
		pl.apply(pl.Timeline.Frames[0].Poses)
	}
}

// Stop stops playback, leaving the entities where they are.
func (pl *Player) Stop() {
	pl.running = false
}

// Update advances playback by dt seconds, applying every frame that
// became due, and returns how many were applied. A looping player
// restarts on the update after its last frame.
func (pl *Player) Update(dt float32) int {
	if !pl.running {
		return 0
	}
	frames := pl.Timeline.Frames
	last := len(frames) - 1
	if pl.index >= last {
		if !pl.Loop {
			pl.running = false
			return 0
		}
		pl.Start()
		return 1
	}
	pl.elapsed += dt
	n := 0
	for pl.index < last && frames[pl.index+1].Time-frames[0].Time <= pl.elapsed {
		pl.index++
		pl.apply(frames[pl.index].Poses)
		n++
	}
	if pl.index >= last && !pl.Loop {
		pl.running = false
	}
	return n
}

func (pl *Player) apply(poses []Pose) {
	for _, p := range poses {
		e := pl.root.FindByName(p.Entity)
		if e == nil {
			pl.log.Warn("motion.Player: unknown entity", zap.String("entity", p.Entity))
			continue
		}
		e.Transform.SetPos(p.Pos)
		if !p.Quat.IsNil() {
			e.Transform.SetQuat(p.Quat.Normal())
		}
	}
}

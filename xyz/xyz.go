// Copyright (c) 2019, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package xyz is a scene graph of entities whose spatial [Transform]
// nodes form a hierarchy of local poses composed into cached world
// poses. Each [Entity] owns its transform, child entities, drawable
// [Renderable] payloads and an optional physical [Body].
//
// The package does no locking: all mutation and queries are expected
// on a single update thread. Work from other goroutines is handed over
// through a [CommandQueue].
package xyz

import "go.uber.org/zap"

var logger = zap.NewNop()

// SetLogger sets the logger used by the scene graph, for example to
// report rejected reparenting. A nil logger disables logging.
func SetLogger(lg *zap.Logger) {
	if lg == nil {
		lg = zap.NewNop()
	}
	logger = lg
}

// Walk return values, as in a tree walk function.
const (
	// Continue = true can be returned from tree iteration functions to continue
	// processing down the tree, as compared to Break = false which stops this branch.
	Continue = true

	// Break = false can be returned from tree iteration functions to stop processing
	// this branch of the tree.
	Break = false
)

// Copyright (c) 2019, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package xyz

import (
	"context"
	"sync/atomic"
)

// CommandQueue is a bounded queue of scene graph commands posted from
// other goroutines, such as network or sensor callbacks, and run on the
// update thread by [CommandQueue.Drain]. It is owned by the application,
// not by the scene graph.
type CommandQueue struct {
	ch      chan func()
	dropped atomic.Uint64
}

// NewCommandQueue returns a new queue holding up to size commands.
func NewCommandQueue(size int) *CommandQueue {
	if size < 1 {
		size = 1
	}
	return &CommandQueue{ch: make(chan func(), size)}
}

// Post queues the command, waiting for room until ctx is done,
// in which case it returns the context error.
func (q *CommandQueue) Post(ctx context.Context, cmd func()) error {
	select {
	case q.ch <- cmd:
		return nil
	case <-ctx.Done():
		q.dropped.Add(1)
		return ctx.Err()
	}
}

// TryPost queues the command if there is room, returning false otherwise.
func (q *CommandQueue) TryPost(cmd func()) bool {
	select {
	case q.ch <- cmd:
		return true
	default:
		q.dropped.Add(1)
		return false
	}
}

// Drain runs all queued commands in order on the calling goroutine,
// returning how many were run. Commands posted while draining are
// left for the next call once the initial count has been run.
func (q *CommandQueue) Drain() int {
	n := len(q.ch)
	for i := 0; i < n; i++ {
		cmd := <-q.ch
		cmd()
	}
	return n
}

// Len returns the number of queued commands.
func (q *CommandQueue) Len() int {
	return len(q.ch)
}

// Dropped returns the number of commands that could not be queued.
func (q *CommandQueue) Dropped() uint64 {
	return q.dropped.Load()
}

// Copyright (c) 2018, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package xyz

import (
	"slices"

	"github.com/google/uuid"
)

// WalkUp calls the given function on the entity and all of its parents,
// sequentially in the current goroutine. It stops walking if the function
// returns [Break] and keeps walking if it returns [Continue]. It returns
// whether walking was finished (false if it was aborted with [Break]).
func (e *Entity) WalkUp(fun func(e *Entity) bool) bool {
	for cur := e; cur != nil; cur = cur.parent {
		if !fun(cur) {
			return false
		}
	}
	return true
}

// WalkDown calls the given function on the entity and all of its
// descendants in depth-first pre-order, sequentially in the current
// goroutine. It stops walking the current branch of the tree if the
// function returns [Break] and keeps walking if it returns [Continue].
// It is non-recursive. Children added by the function are visited;
// the function must not destroy entities.
func (e *Entity) WalkDown(fun func(e *Entity) bool) {
	stack := []*Entity{e}
	for len(stack) > 0 {
		cur := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		if !fun(cur) {
			continue
		}
		for i := len(cur.children) - 1; i >= 0; i-- {
			stack = append(stack, cur.children[i])
		}
	}
}

// WalkDownPost iterates in a depth-first manner over the children, calling
// shouldContinue on each node to test if processing should proceed (if it returns
// [Break] then that branch of the tree is not further processed),
// and then calls the given function after all of a node's children
// have been iterated over. In effect, this means that the given function
// is called for deeper nodes first. Children are visited in a snapshot
// of their order, so the function may destroy the node it is given.
func (e *Entity) WalkDownPost(shouldContinue func(e *Entity) bool, fun func(e *Entity) bool) {
	type frame struct {
		e    *Entity
		kids []*Entity
		next int
	}
	if !shouldContinue(e) {
		fun(e)
		return
	}
	stack := []*frame{{e: e, kids: slices.Clone(e.children)}}
	for len(stack) > 0 {
		top := stack[len(stack)-1]
		if top.next < len(top.kids) {
			kid := top.kids[top.next]
			top.next++
			if shouldContinue(kid) {
				stack = append(stack, &frame{e: kid, kids: slices.Clone(kid.children)})
			} else {
				fun(kid)
			}
			continue
		}
		stack = stack[:len(stack)-1]
		fun(top.e)
	}
}

// Depth returns the number of ancestors of the entity.
func (e *Entity) Depth() int {
	d := 0
	for cur := e.parent; cur != nil; cur = cur.parent {
		d++
	}
	return d
}

// FindByName returns the first entity in pre-order at or below
// this one with the given name, or nil.
func (e *Entity) FindByName(name string) *Entity {
	return e.findFirst(func(x *Entity) bool { return x.Name == name })
}

// FindByID returns the entity at or below this one with the given ID, or nil.
func (e *Entity) FindByID(id uuid.UUID) *Entity {
	return e.findFirst(func(x *Entity) bool { return x.id == id })
}

func (e *Entity) findFirst(match func(x *Entity) bool) *Entity {
	var found *Entity
	e.WalkDown(func(x *Entity) bool {
		if found != nil {
			return Break
		}
		if match(x) {
			found = x
			return Break
		}
		return Continue
	})
	return found
}

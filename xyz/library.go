// Copyright (c) 2023, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package xyz

import (
	"slices"

	"github.com/pkg/errors"
	"go.uber.org/zap"
)

// ErrMeshNotFound is returned for unknown mesh names.
var ErrMeshNotFound = errors.New("mesh not found")

// Library is the registry of shared meshes, keyed by unique name and
// kept in the order added. Its lifetime follows the graphics context:
// [Library.Init] when it is created and [Library.Teardown] when it goes away.
type Library struct {
	meshes map[MeshName]int
	order  []*MeshInfo
	log    *zap.Logger
}

// NewLibrary returns a new initialized Library logging to lg,
// which may be nil.
func NewLibrary(lg *zap.Logger) *Library {
	if lg == nil {
		lg = zap.NewNop()
	}
	lb := &Library{log: lg}
	lb.Init()
	return lb
}

// Init initializes the library if it isn't already.
func (lb *Library) Init() {
	if lb.meshes == nil {
		lb.meshes = make(map[MeshName]int)
	}
	if lb.log == nil {
		lb.log = zap.NewNop()
	}
}

// Teardown releases all meshes. The library can be used again after [Library.Init].
func (lb *Library) Teardown() {
	lb.log.Debug("xyz.Library: teardown", zap.Int("meshes", len(lb.order)))
	lb.meshes = nil
	lb.order = nil
}

// Len returns the number of meshes.
func (lb *Library) Len() int {
	if lb == nil {
		return 0
	}
	return len(lb.order)
}

// Add adds the mesh, replacing any existing mesh with the same name
// at its existing position.
func (lb *Library) Add(ms *MeshInfo) *MeshInfo {
	lb.Init()
	if idx, has := lb.meshes[ms.Name]; has {
		lb.order[idx] = ms
		return ms
	}
	lb.meshes[ms.Name] = len(lb.order)
	lb.order = append(lb.order, ms)
	return ms
}

// Mesh returns the mesh with the given name, or an error
// wrapping [ErrMeshNotFound].
func (lb *Library) Mesh(name MeshName) (*MeshInfo, error) {
	if idx, has := lb.meshes[name]; has {
		return lb.order[idx], nil
	}
	return nil, errors.Wrapf(ErrMeshNotFound, "xyz.Library: %q", name)
}

// Delete removes the mesh with the given name, returning false if
// it is not found. Renderables using it keep their pointer.
func (lb *Library) Delete(name MeshName) bool {
	idx, has := lb.meshes[name]
	if !has {
		return false
	}
	for o := idx + 1; o < len(lb.order); o++ {
		lb.meshes[lb.order[o].Name] = o - 1
	}
	delete(lb.meshes, name)
	lb.order = slices.Delete(lb.order, idx, idx+1)
	return true
}

// Meshes returns all meshes in the order added.
func (lb *Library) Meshes() []*MeshInfo {
	return slices.Clone(lb.order)
}

// Names returns the mesh names in the order added.
func (lb *Library) Names() []MeshName {
	nms := make([]MeshName, len(lb.order))
	for i, ms := range lb.order {
		nms[i] = ms.Name
	}
	return nms
}

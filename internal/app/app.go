// Copyright (c) 2023, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package app holds the services and scene file operations
// of the scenedump tool.
package app

import (
	"context"
	"path/filepath"
	"strings"

	"github.com/google/wire"
	"github.com/pkg/errors"
	"github.com/urdfar/scenecore/base/logx"
	"github.com/urdfar/scenecore/xyz"
	"github.com/urdfar/scenecore/xyz/io/gltfscene"
	"github.com/urdfar/scenecore/xyz/io/yamlscene"
	"github.com/urdfar/scenecore/xyz/physics"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// ErrUnknownFormat is returned for files whose extension names
// no supported scene format.
var ErrUnknownFormat = errors.New("unknown scene file format")

// ProviderSet provides an [App] from a [Config].
var ProviderSet = wire.NewSet(ProvideLogger, ProvideLibrary, ProvideWorld, NewApp)

// App is the set of services used by the scenedump commands.
type App struct {
	Config  *Config
	Log     *zap.Logger
	Library *xyz.Library
	World   *physics.World
}

// NewApp returns a new App using the given services.
func NewApp(cfg *Config, lg *zap.Logger, lib *xyz.Library, world *physics.World) *App {
	return &App{Config: cfg, Log: lg, Library: lib, World: world}
}

// ProvideLogger returns the logger configured by cfg, and makes it
// the logger of the scene graph packages.
func ProvideLogger(cfg *Config) (*zap.Logger, error) {
	level, err := logx.ParseLevel(cfg.LogLevel)
	if err != nil {
		return nil, err
	}
	lg, err := logx.New(level, cfg.LogEncoding)
	if err != nil {
		return nil, err
	}
	xyz.SetLogger(lg)
	return lg, nil
}

// ProvideLibrary returns an initialized mesh library,
// and the function that tears it down.
func ProvideLibrary(lg *zap.Logger) (*xyz.Library, func()) {
	lib := xyz.NewLibrary(lg)
	lib.Init()
	return lib, lib.Teardown
}

// ProvideWorld returns a new physics world.
func ProvideWorld(lg *zap.Logger) *physics.World {
	return physics.NewWorld(lg)
}

func formatOf(filename string) string {
	return strings.ToLower(filepath.Ext(filename))
}

// Load reads the scene in the given YAML, glTF or GLB file,
// adding its meshes to the library.
func (a *App) Load(filename string) ([]*xyz.Entity, error) {
	switch formatOf(filename) {
	case ".yaml", ".yml":
		return yamlscene.Open(filename, a.Library)
	case ".gltf", ".glb":
		return gltfscene.Open(filename, a.Library)
	}
	return nil, errors.Wrap(ErrUnknownFormat, filename)
}

// Save writes the entity trees to the given file, in the format
// named by its extension.
func (a *App) Save(filename string, roots []*xyz.Entity) error {
	switch formatOf(filename) {
	case ".yaml", ".yml":
		return yamlscene.SaveFile(filename, roots...)
	case ".gltf", ".glb":
		return gltfscene.SaveFile(filename, roots...)
	}
	return errors.Wrap(ErrUnknownFormat, filename)
}

// SaveAll writes the entity trees to each of the given files
// concurrently, returning the first error. Saving only reads local
// values, so the trees must not be changed until it returns.
func (a *App) SaveAll(ctx context.Context, filenames []string, roots []*xyz.Entity) error {
	g, ctx := errgroup.WithContext(ctx)
	for _, fn := range filenames {
		fn := fn
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			return a.Save(fn, roots)
		})
	}
	return g.Wait()
}

// Release destroys the entity trees, unregistering their bodies.
func (a *App) Release(roots []*xyz.Entity) {
	for _, r := range roots {
		r.Destroy(a.World)
	}
}

// Simulate registers every body below the roots with the world and
// steps it for the given number of seconds, returning the steps taken.
// Dynamic bodies get unit mass.
func (a *App) Simulate(roots []*xyz.Entity, seconds float32) int {
	for _, r := range roots {
		r.WalkDown(func(e *xyz.Entity) bool {
			if b := e.Body(); b != nil {
				a.World.Add(b, 1)
			}
			return xyz.Continue
		})
	}
	steps := 0
	for seconds > 0 {
		dt := min(seconds, a.World.FixedStep*float32(a.World.MaxSubSteps))
		steps += a.World.Step(dt)
		seconds -= dt
	}
	a.Log.Debug("app: simulated", zap.Int("steps", steps), zap.Int("bodies", a.World.Len()))
	return steps
}

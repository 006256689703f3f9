// Copyright (c) 2023, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package app

import (
	"context"
	"io"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/pkg/errors"
	"github.com/urdfar/scenecore/xyz"
	"go.uber.org/zap"
)

// Watch dumps the scene in the given file to w, and dumps it again
// each time the file changes, until ctx is done. The directory is
// watched so that editors replacing the file are seen. Load errors
// are logged and watching continues.
func (a *App) Watch(ctx context.Context, filename string, w io.Writer) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return errors.Wrap(err, "app: watch")
	}
	defer watcher.Close()
	path, err := filepath.Abs(filename)
	if err != nil {
		return errors.Wrap(err, "app: watch")
	}
	if err := watcher.Add(filepath.Dir(path)); err != nil {
		return errors.Wrap(err, "app: watch")
	}

	var roots []*xyz.Entity
	reload := func() {
		a.Release(roots)
		roots = nil
		nr, err := a.Load(path)
		if err != nil {
			a.Log.Warn("app: watch: load failed", zap.String("file", path), zap.Error(err))
			return
		}
		roots = nr
		if a.Config.Simulate > 0 {
			a.Simulate(roots, a.Config.Simulate)
		}
		if err := a.Dump(w, roots); err != nil {
			a.Log.Warn("app: watch: dump failed", zap.Error(err))
		}
	}
	defer func() { a.Release(roots) }()
	reload()

	timer := time.NewTimer(0)
	if !timer.Stop() {
		<-timer.C
	}
	defer timer.Stop()
	for {
		select {
		case <-ctx.Done():
			return nil
		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(event.Name) != path {
				continue
			}
			if event.Op&(fsnotify.Create|fsnotify.Write|fsnotify.Rename) == 0 {
				continue
			}
			a.Log.Debug("app: watch: changed", zap.String("file", path), zap.Stringer("op", event.Op))
			timer.Reset(a.Config.Debounce())
		case <-timer.C:
			reload()
		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			a.Log.Warn("app: watch", zap.Error(err))
		}
	}
}

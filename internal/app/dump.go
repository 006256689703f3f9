// Copyright (c) 2023, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package app

import (
	"fmt"
	"io"
	"strings"

	"github.com/davecgh/go-spew/spew"
	"github.com/muesli/termenv"
	"github.com/pkg/errors"
	"github.com/urdfar/scenecore/math32"
	"github.com/urdfar/scenecore/xyz"
	"github.com/urdfar/scenecore/xyz/io/yamlscene"
)

var spewConfig = &spew.ConfigState{
	Indent:                  "  ",
	DisableCapacities:       true,
	DisablePointerAddresses: true,
	SortKeys:                true,
}

// Dump prints the entity trees to w in the configured format.
func (a *App) Dump(w io.Writer, roots []*xyz.Entity) error {
	switch a.Config.Format {
	case FormatYAML:
		return yamlscene.Save(w, roots...)
	case FormatRaw:
		spewConfig.Fdump(w, yamlscene.NewDocument(roots...))
		return nil
	}
	d := &textDumper{out: termenv.NewOutput(w), prec: a.Config.Precision}
	for _, r := range roots {
		d.entity(r)
	}
	return errors.Wrap(d.err, "app: dump")
}

// textDumper prints one line per entity with its world pose and
// world bounding box, indented by depth.
type textDumper struct {
	out  *termenv.Output
	prec int
	err  error
}

func (d *textDumper) entity(root *xyz.Entity) {
	base := root.Depth()
	root.WalkDown(func(e *xyz.Entity) bool {
		if d.err != nil {
			return xyz.Break
		}
		tf := &e.Transform
		bb := e.WorldBoundingBox()
		bbs := "empty"
		if !bb.IsEmpty() {
			bbs = d.vec(bb.Min) + " " + d.vec(bb.Max)
		}
		q := tf.WorldQuat()
		_, d.err = fmt.Fprintf(d.out, "%s%s pos %s quat (%.*f, %.*f, %.*f, %.*f) scale %s bbox %s\n",
			strings.Repeat("  ", e.Depth()-base), d.out.String(e.Name).Bold(),
			d.vec(tf.WorldPos()), d.prec, q.X, d.prec, q.Y, d.prec, q.Z, d.prec, q.W,
			d.vec(tf.WorldScale()), bbs)
		return xyz.Continue
	})
}

func (d *textDumper) vec(v math32.Vector3) string {
	return fmt.Sprintf("(%.*f, %.*f, %.*f)", d.prec, v.X, d.prec, v.Y, d.prec, v.Z)
}

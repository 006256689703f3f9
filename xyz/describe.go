// Copyright (c) 2019, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package xyz

import (
	"fmt"
	"strings"
)

// Describe returns an indented listing of the entity and everything
// below it: entities, payloads and bare frames, with their transforms.
func (e *Entity) Describe() string {
	var b strings.Builder
	describeTransform(&b, &e.Transform, 0)
	return b.String()
}

func describeTransform(b *strings.Builder, tf *Transform, depth int) {
	ind := strings.Repeat("\t", depth)
	switch ow := tf.owner.(type) {
	case *Entity:
		fmt.Fprintf(b, "%sEntity %q [%s]", ind, ow.Name, ow.id.String()[:8])
		if ow.destroyed {
			b.WriteString(" (destroyed)")
		}
	case *Renderable:
		mesh := "<none>"
		if ow.Mesh != nil {
			mesh = string(ow.Mesh.Name)
		}
		fmt.Fprintf(b, "%sRenderable %q mesh: %s visible: %v", ind, ow.Tag, mesh, ow.Visible)
	case *Body:
		fmt.Fprintf(b, "%sBody %s friction: %g", ind, ow.Mode, ow.Friction)
	default:
		fmt.Fprintf(b, "%sFrame %q", ind, tf.Tag)
	}
	fmt.Fprintf(b, "\n%s  %s\n", ind, tf.String())
	for _, kid := range tf.children {
		describeTransform(b, kid, depth+1)
	}
}

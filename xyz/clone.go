// Copyright (c) 2019, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package xyz

// Clone returns a deep copy of the entity and its descendants as a new
// scene root with new IDs. Local transforms, renderables and bare frames
// holding renderables are copied. Bodies and destroy hooks are not, as
// they are bound to a particular simulation or owner.
func (e *Entity) Clone() *Entity {
	ne := NewEntity(e.Name)
	ne.Transform.copyLocal(&e.Transform)
	cloneFrames(e, &e.Transform, ne, &ne.Transform)
	return ne
}

// cloneFrames copies the payloads and child entities bound under
// the given source frame to the destination frame.
func cloneFrames(src *Entity, sf *Transform, dst *Entity, df *Transform) {
	for _, kid := range sf.children {
		switch ow := kid.owner.(type) {
		case *Entity:
			ow.Clone().SetParent(dst)
		case *Renderable:
			if ow.entity == src {
				dst.AddRenderableUnder(ow.Clone(), ow.Tag, df)
			}
		case *Body:
			// not cloned
		default:
			nf := NewTransform()
			nf.copyLocal(kid)
			nf.SetParent(df)
			cloneFrames(src, kid, dst, nf)
		}
	}
}

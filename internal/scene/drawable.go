package scene

import (
	"image/color"

	"cogentcore.org/core/math32"
)

// Drawable marks a node as participating in rendering. Bounds are expressed in
// the node's local frame.
type Drawable struct {
	node     *Node
	Mesh     string
	Bounds   math32.Box3
	ObjectID uint32
	Color    color.RGBA
}

// NewDrawable attaches a drawable to node and adds it to group when group is
// not nil.
func NewDrawable(node *Node, mesh string, bounds math32.Box3, group *DrawableGroup) *Drawable {
	d := &Drawable{
		node:   node,
		Mesh:   mesh,
		Bounds: bounds,
		Color:  color.RGBA{R: 200, G: 200, B: 200, A: 255},
	}
	node.AddFeature(d)
	if group != nil {
		group.Add(d)
	}
	return d
}

func (d *Drawable) Node() *Node { return d.node }

// DrawableGroup is the ordered set of drawables of one scene graph.
type DrawableGroup struct {
	items []*Drawable
}

func (g *DrawableGroup) Add(d *Drawable) {
	g.items = append(g.items, d)
}

// Remove drops d from the group. It reports whether d was a member.
func (g *DrawableGroup) Remove(d *Drawable) bool {
	for i, have := range g.items {
		if have == d {
			g.items = append(g.items[:i], g.items[i+1:]...)
			return true
		}
	}
	return false
}

func (g *DrawableGroup) Len() int { return len(g.items) }

// Drawables returns a snapshot of the group.
func (g *DrawableGroup) Drawables() []*Drawable {
	return append([]*Drawable(nil), g.items...)
}

// Each calls fn for every drawable in insertion order.
func (g *DrawableGroup) Each(fn func(*Drawable)) {
	for _, d := range g.items {
		fn(d)
	}
}

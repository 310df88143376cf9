package viz

import (
	"sort"

	"cogentcore.org/core/math32"
	"github.com/mohammed-7/habitat-sim/internal/scene"
)

// Camera orbits a target point and projects to canvas dots.
type Camera struct {
	Target   math32.Vector3
	Distance float32
	Yaw      float32
	Pitch    float32
	Near     float32
	Zoom     float32
}

func NewCamera() *Camera {
	return &Camera{Distance: 15, Pitch: -0.5, Near: 0.1, Zoom: 1}
}

func (c *Camera) RotateX(a float32) { c.Pitch = math32.Clamp(c.Pitch+a, -1.5, 1.5) }
func (c *Camera) RotateY(a float32) { c.Yaw += a }
func (c *Camera) ZoomIn()           { c.Zoom = math32.Min(10, c.Zoom*1.2) }
func (c *Camera) ZoomOut()          { c.Zoom = math32.Max(0.1, c.Zoom/1.2) }

// view transforms p into camera space. The camera looks down -Z.
func (c *Camera) view(p math32.Vector3) math32.Vector3 {
	rel := p.Sub(c.Target)
	yaw := math32.NewQuatAxisAngle(math32.Vec3(0, 1, 0), -c.Yaw)
	pitch := math32.NewQuatAxisAngle(math32.Vec3(1, 0, 0), -c.Pitch)
	rel = rel.MulQuat(yaw).MulQuat(pitch)
	rel.Z -= c.Distance
	return rel
}

// Project returns the dot under p, its view depth, and whether it lies in
// front of the camera and on the canvas.
func (c *Camera) Project(p math32.Vector3, sw, sh int) (int, int, float32, bool) {
	v := c.view(p)
	if -v.Z < c.Near {
		return 0, 0, 0, false
	}
	scale := c.Distance / -v.Z * c.Zoom
	pScale := float32(min(sw, sh)) / 3.0 / c.Distance * 4
	sx := int(v.X*scale*pScale) + sw/2
	sy := int(-v.Y*scale*pScale) + sh/2
	return sx, sy, -v.Z, sx >= 0 && sx < sw && sy >= 0 && sy < sh
}

type Edge struct {
	Start, End math32.Vector3
}

type Wireframe struct{ Edges []Edge }

func NewWireframe() *Wireframe                   { return &Wireframe{Edges: make([]Edge, 0)} }
func (w *Wireframe) AddEdge(s, e math32.Vector3) { w.Edges = append(w.Edges, Edge{s, e}) }
func (w *Wireframe) Clear()                      { w.Edges = w.Edges[:0] }

var boxEdges = [12][2]int{{0, 1}, {1, 3}, {3, 2}, {2, 0}, {4, 5}, {5, 7}, {7, 6}, {6, 4}, {0, 4}, {1, 5}, {2, 6}, {3, 7}}

// AddBox adds the twelve edges of b transformed by m.
func (w *Wireframe) AddBox(b math32.Box3, m math32.Matrix4) {
	var v [8]math32.Vector3
	for i := range v {
		p := b.Min
		if i&1 != 0 {
			p.X = b.Max.X
		}
		if i&2 != 0 {
			p.Y = b.Max.Y
		}
		if i&4 != 0 {
			p.Z = b.Max.Z
		}
		v[i] = p.MulMatrix4(&m)
	}
	for _, e := range boxEdges {
		w.AddEdge(v[e[0]], v[e[1]])
	}
}

// SceneWireframe outlines the bounds of every drawable in g.
func SceneWireframe(g *scene.SceneGraph) *Wireframe {
	w := NewWireframe()
	g.Drawables().Each(func(d *scene.Drawable) {
		w.AddBox(d.Bounds, d.Node().AbsoluteTransformation())
	})
	return w
}

func AxesWireframe(l float32) *Wireframe {
	w := NewWireframe()
	w.AddEdge(math32.Vector3{}, math32.Vec3(l, 0, 0))
	w.AddEdge(math32.Vector3{}, math32.Vec3(0, l, 0))
	w.AddEdge(math32.Vector3{}, math32.Vec3(0, 0, l))
	return w
}

type projectedEdge struct {
	x1, y1, x2, y2 int
	depth          float32
}

// Render3D draws the wireframe far to near.
func Render3D(c *Canvas, w *Wireframe, cam *Camera) {
	if c == nil || w == nil || cam == nil {
		return
	}
	cw, ch := c.Dots()
	proj := make([]projectedEdge, 0, len(w.Edges))
	for _, e := range w.Edges {
		x1, y1, d1, v1 := cam.Project(e.Start, cw, ch)
		x2, y2, d2, v2 := cam.Project(e.End, cw, ch)
		if (v1 || v2) && d1 > 0 && d2 > 0 {
			proj = append(proj, projectedEdge{x1, y1, x2, y2, (d1 + d2) / 2})
		}
	}
	sort.Slice(proj, func(i, j int) bool { return proj[i].depth > proj[j].depth })
	for _, e := range proj {
		c.DrawLine(e.x1, e.y1, e.x2, e.y2)
	}
}

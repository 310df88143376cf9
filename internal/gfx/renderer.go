package gfx

import (
	"cogentcore.org/core/math32"
	"github.com/mohammed-7/habitat-sim/internal/scene"
)

// Renderer rasterizes each drawable as the screen rectangle covered by its
// projected bounds, at the depth of its nearest visible corner.
type Renderer struct {
	size Size
}

func NewRenderer(width, height int) *Renderer {
	return &Renderer{size: Size{W: width, H: height}}
}

func (r *Renderer) Size() Size { return r.size }

func (r *Renderer) SetSize(width, height int) {
	r.size = Size{W: width, H: height}
}

// Draw renders graph as seen by camera into target.
func (r *Renderer) Draw(camera *RenderCamera, graph *scene.SceneGraph, target *RenderTarget) {
	target.RenderEnter()
	defer target.RenderExit()

	proj, view := camera.ProjectionMatrix(), camera.CameraMatrix()
	vp := proj.Mul(&view)
	graph.Drawables().Each(func(d *scene.Drawable) {
		model := d.Node().AbsoluteTransformation()
		r.drawBounds(target, vp.Mul(&model), d)
	})
}

func (r *Renderer) drawBounds(target *RenderTarget, mvp *math32.Matrix4, d *scene.Drawable) {
	b := d.Bounds
	corners := [8]math32.Vector3{
		math32.Vec3(b.Min.X, b.Min.Y, b.Min.Z), math32.Vec3(b.Max.X, b.Min.Y, b.Min.Z),
		math32.Vec3(b.Min.X, b.Max.Y, b.Min.Z), math32.Vec3(b.Max.X, b.Max.Y, b.Min.Z),
		math32.Vec3(b.Min.X, b.Min.Y, b.Max.Z), math32.Vec3(b.Max.X, b.Min.Y, b.Max.Z),
		math32.Vec3(b.Min.X, b.Max.Y, b.Max.Z), math32.Vec3(b.Max.X, b.Max.Y, b.Max.Z),
	}

	screen := math32.B3Empty()
	visible := false
	for _, c := range corners {
		clip := math32.Vector4FromVector3(c, 1).MulMatrix4(mvp)
		if clip.W <= 0 {
			continue
		}
		ndc := clip.PerspDiv()
		if ndc.Z < -1 || ndc.Z > 1 {
			continue
		}
		screen.ExpandByPoint(ndc)
		visible = true
	}
	if !visible {
		return
	}

	size := target.FramebufferSize()
	x0, x1 := toPixel(screen.Min.X, size.W), toPixel(screen.Max.X, size.W)
	// ndc y points up, rows go down
	y0, y1 := toPixel(-screen.Max.Y, size.H), toPixel(-screen.Min.Y, size.H)
	depth := 0.5*screen.Min.Z + 0.5

	c := d.Color
	for y := max(y0, 0); y <= min(y1, size.H-1); y++ {
		for x := max(x0, 0); x <= min(x1, size.W-1); x++ {
			target.fragment(x, y, depth, c.R, c.G, c.B, c.A, d.ObjectID)
		}
	}
}

func toPixel(ndc float32, n int) int {
	return int(math32.Floor((ndc + 1) * 0.5 * float32(n)))
}

package gfx

import (
	"cogentcore.org/core/math32"
	"github.com/mohammed-7/habitat-sim/internal/scene"
)

// RenderCamera is a camera feature attached to a scene node. The node's
// absolute transform is the camera pose; the camera looks down -Z.
type RenderCamera struct {
	node       *scene.Node
	projection math32.Matrix4
	width      int
	height     int
}

func NewRenderCamera(node *scene.Node) *RenderCamera {
	c := &RenderCamera{node: node}
	c.projection.SetIdentity()
	node.AddFeature(c)
	return c
}

func (c *RenderCamera) Node() *scene.Node { return c.node }

// SetProjectionMatrix sets a perspective projection with horizontal field of
// view hfov in degrees, mapping depth to [-1, 1] between near and far.
func (c *RenderCamera) SetProjectionMatrix(width, height int, near, far, hfov float32) *RenderCamera {
	c.width, c.height = width, height
	c.projection = Perspective(math32.DegToRad(hfov), float32(width)/float32(height), near, far)
	return c
}

func (c *RenderCamera) ProjectionMatrix() math32.Matrix4 { return c.projection }

func (c *RenderCamera) Viewport() (int, int) { return c.width, c.height }

// CameraMatrix is the world to camera transform.
func (c *RenderCamera) CameraMatrix() math32.Matrix4 {
	world := c.node.AbsoluteTransformation()
	inv, err := world.Inverse()
	if err != nil {
		var m math32.Matrix4
		m.SetIdentity()
		return m
	}
	return *inv
}

// Perspective builds a GL-convention projection from a horizontal fov in
// radians and a width/height aspect ratio.
func Perspective(hfov, aspect, near, far float32) math32.Matrix4 {
	vfov := 2 * math32.Atan(math32.Tan(hfov/2)/aspect)
	var m math32.Matrix4
	m.SetPerspective(math32.RadToDeg(vfov), aspect, near, far)
	return m
}

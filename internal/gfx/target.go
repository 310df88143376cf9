package gfx

import (
	"errors"
	"fmt"
	"image"

	"cogentcore.org/core/math32"
)

var (
	ErrBufferSize = errors.New("gfx: buffer size does not match framebuffer")
	ErrRendering  = errors.New("gfx: render target is between RenderEnter and RenderExit")
)

// Size is a framebuffer size in the W x H convention.
type Size struct {
	W, H int
}

func (s Size) Pixels() int { return s.W * s.H }

func (s Size) String() string { return fmt.Sprintf("%dx%d", s.W, s.H) }

// RenderTarget holds the color, depth and object id attachments of one
// offscreen framebuffer. Rows are stored top to bottom.
type RenderTarget struct {
	size     Size
	color    []uint8
	depth    []float32
	objectID []uint32

	unproj    math32.Vector2
	hasUnproj bool
	rendering bool
}

// NewRenderTarget allocates a target. When unproj is not nil, depth readback
// returns linear depth.
func NewRenderTarget(size Size, unproj *math32.Vector2) *RenderTarget {
	t := &RenderTarget{
		size:     size,
		color:    make([]uint8, 4*size.Pixels()),
		depth:    make([]float32, size.Pixels()),
		objectID: make([]uint32, size.Pixels()),
	}
	if unproj != nil {
		t.unproj, t.hasUnproj = *unproj, true
	}
	t.clear()
	return t
}

func (t *RenderTarget) FramebufferSize() Size { return t.size }

func (t *RenderTarget) DepthUnprojection() (math32.Vector2, bool) {
	return t.unproj, t.hasUnproj
}

func (t *RenderTarget) clear() {
	for i := range t.color {
		t.color[i] = 0
	}
	for i := range t.depth {
		t.depth[i] = 1.0
		t.objectID[i] = 0
	}
}

// RenderEnter clears every attachment before drawing.
func (t *RenderTarget) RenderEnter() {
	t.clear()
	t.rendering = true
}

func (t *RenderTarget) RenderExit() {
	t.rendering = false
}

func (t *RenderTarget) checkRead(n, want int) error {
	if t.rendering {
		return ErrRendering
	}
	if n != want {
		return fmt.Errorf("%w: got %d values, want %d", ErrBufferSize, n, want)
	}
	return nil
}

// ReadFrameRgba copies the color attachment, 4 bytes per pixel.
func (t *RenderTarget) ReadFrameRgba(dst []uint8) error {
	if err := t.checkRead(len(dst), len(t.color)); err != nil {
		return err
	}
	copy(dst, t.color)
	return nil
}

// ReadFrameDepth copies the depth attachment, unprojected when the target was
// created with coefficients.
func (t *RenderTarget) ReadFrameDepth(dst []float32) error {
	if err := t.checkRead(len(dst), len(t.depth)); err != nil {
		return err
	}
	copy(dst, t.depth)
	if t.hasUnproj {
		UnprojectDepth(t.unproj, dst)
	}
	return nil
}

func (t *RenderTarget) ReadFrameObjectID(dst []uint32) error {
	if err := t.checkRead(len(dst), len(t.objectID)); err != nil {
		return err
	}
	copy(dst, t.objectID)
	return nil
}

// Image returns a copy of the color attachment.
func (t *RenderTarget) Image() *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, t.size.W, t.size.H))
	copy(img.Pix, t.color)
	return img
}

// fragment writes one pixel if depth d passes the less-than test.
func (t *RenderTarget) fragment(x, y int, d float32, r, g, b, a uint8, id uint32) {
	i := y*t.size.W + x
	if d >= t.depth[i] {
		return
	}
	t.depth[i] = d
	t.objectID[i] = id
	c := t.color[4*i : 4*i+4]
	c[0], c[1], c[2], c[3] = r, g, b, a
}

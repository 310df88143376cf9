package sensor

import (
	"fmt"

	"cogentcore.org/core/math32"
	"github.com/mohammed-7/habitat-sim/internal/gfx"
)

const (
	defaultNear = 0.01
	defaultFar  = 1000
	defaultHFOV = 90
)

// PinholeCamera is the visual sensor. Its projection comes from the near, far
// and hfov parameters.
type PinholeCamera struct {
	*Base
	near, far, hfov float32
	camera          *gfx.RenderCamera
}

var _ Sensor = (*PinholeCamera)(nil)

func NewPinholeCamera(base *Base) (*PinholeCamera, error) {
	near, far, hfov, err := pinholeParameters(base.Spec())
	if err != nil {
		return nil, err
	}
	p := &PinholeCamera{Base: base, near: near, far: far, hfov: hfov}
	p.camera = gfx.NewRenderCamera(base.Node())
	p.SetProjectionMatrix(p.camera)
	return p, nil
}

func pinholeParameters(spec *Spec) (near, far, hfov float32, err error) {
	if near, err = spec.Float("near", defaultNear); err != nil {
		return
	}
	if far, err = spec.Float("far", defaultFar); err != nil {
		return
	}
	if hfov, err = spec.Float("hfov", defaultHFOV); err != nil {
		return
	}
	if near <= 0 || far <= near {
		err = fmt.Errorf("%w: near=%g far=%g", ErrInvalidParameter, near, far)
	} else if hfov <= 0 || hfov >= 180 {
		err = fmt.Errorf("%w: hfov=%g", ErrInvalidParameter, hfov)
	}
	return
}

func (p *PinholeCamera) IsVisualSensor() bool { return true }

func (p *PinholeCamera) SetProjectionMatrix(cam *gfx.RenderCamera) {
	size := p.FramebufferSize()
	cam.SetProjectionMatrix(size.W, size.H, p.near, p.far, p.hfov)
}

func (p *PinholeCamera) RenderCamera() *gfx.RenderCamera { return p.camera }

func (p *PinholeCamera) DepthUnprojection() (math32.Vector2, bool) {
	return gfx.CalculateDepthUnprojection(p.camera.ProjectionMatrix()), true
}

func (p *PinholeCamera) ObservationSpace(space *ObservationSpace) bool {
	r := p.Spec().Resolution
	space.SpaceType = SpaceTensor
	switch p.Spec().Type {
	case TypeDepth:
		space.DataType = DTFloat32
		space.Shape = []int{r[0], r[1], 1}
	case TypeSemantic:
		space.DataType = DTUint32
		space.Shape = []int{r[0], r[1], 1}
	default:
		space.DataType = DTUint8
		space.Shape = []int{r[0], r[1], p.Spec().Channels}
	}
	return true
}

// Observation renders the active graph (the semantic graph for semantic
// sensors) into the bound target and reads it back.
func (p *PinholeCamera) Observation(sim Simulator, obs *Observation) error {
	tgt, err := p.RenderTarget()
	if err != nil {
		return err
	}
	r := sim.Renderer()
	if r == nil {
		return ErrNoRenderer
	}

	spec := p.Spec()
	graph, err := sim.ActiveSceneGraph()
	if spec.Type == TypeSemantic {
		graph, err = sim.ActiveSemanticSceneGraph()
	}
	if err != nil {
		return err
	}

	p.SetProjectionMatrix(p.camera)
	r.Draw(p.camera, graph, tgt)

	var space ObservationSpace
	p.ObservationSpace(&space)
	obs.Shape = space.Shape
	n := tgt.FramebufferSize().Pixels()

	switch spec.Type {
	case TypeDepth:
		obs.Depth = grow(obs.Depth, n)
		return tgt.ReadFrameDepth(obs.Depth)
	case TypeSemantic:
		obs.ObjectID = grow(obs.ObjectID, n)
		return tgt.ReadFrameObjectID(obs.ObjectID)
	default:
		rgba := make([]uint8, 4*n)
		if err := tgt.ReadFrameRgba(rgba); err != nil {
			return err
		}
		obs.Color = channels(rgba, spec.Channels)
		return nil
	}
}

func grow[T any](buf []T, n int) []T {
	if cap(buf) >= n {
		return buf[:n]
	}
	return make([]T, n)
}

// channels keeps the first c of every 4 bytes.
func channels(rgba []uint8, c int) []uint8 {
	if c >= 4 || c <= 0 {
		return rgba
	}
	out := make([]uint8, 0, len(rgba)/4*c)
	for i := 0; i+4 <= len(rgba); i += 4 {
		out = append(out, rgba[i:i+c]...)
	}
	return out
}

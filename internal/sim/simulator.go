// Package sim is the simulator orchestration core. A Simulator owns the scene
// graphs, the renderer, the physics world and the semantic scene, and keeps
// them consistent across Reconfigure calls.
package sim

import (
	"context"
	"fmt"

	"github.com/mohammed-7/habitat-sim/internal/assets"
	"github.com/mohammed-7/habitat-sim/internal/config"
	"github.com/mohammed-7/habitat-sim/internal/controls"
	"github.com/mohammed-7/habitat-sim/internal/gfx"
	"github.com/mohammed-7/habitat-sim/internal/logging"
	"github.com/mohammed-7/habitat-sim/internal/observability"
	"github.com/mohammed-7/habitat-sim/internal/pathutil"
	"github.com/mohammed-7/habitat-sim/internal/physics"
	"github.com/mohammed-7/habitat-sim/internal/scene"
	"github.com/mohammed-7/habitat-sim/internal/semantic"
	"github.com/mohammed-7/habitat-sim/internal/sensor"
	"go.opentelemetry.io/otel/trace"
)

// Simulator is not safe for concurrent use. Scene graphs allocated by earlier
// reconfigures are kept and stay addressable for the life of the simulator.
type Simulator struct {
	cfg *config.SimulatorConfiguration

	log     logging.Logger
	metrics *observability.SimulatorCollector
	tracer  trace.Tracer
	prober  pathutil.Prober
	loader  assets.Loader

	graphs                *scene.Manager
	sceneIDs              []int
	activeSceneID         int
	activeSemanticSceneID int

	gpu      *gfx.WindowlessContext
	renderer *gfx.Renderer
	physics  physics.Manager
	semantic *semantic.Scene
	sensors  *sensor.Suite
	controls *controls.ObjectControls
	seed     uint32
}

var _ sensor.Simulator = (*Simulator)(nil)

type Option func(*Simulator)

func WithLogger(l logging.Logger) Option {
	return func(s *Simulator) { s.log = l }
}

func WithMetrics(c *observability.SimulatorCollector) Option {
	return func(s *Simulator) { s.metrics = c }
}

func WithTracer(t trace.Tracer) Option {
	return func(s *Simulator) { s.tracer = t }
}

// WithProber replaces the filesystem probe used to find companion files.
func WithProber(p pathutil.Prober) Option {
	return func(s *Simulator) { s.prober = p }
}

func WithLoader(l assets.Loader) Option {
	return func(s *Simulator) { s.loader = l }
}

// New builds a simulator and applies cfg.
func New(ctx context.Context, cfg *config.SimulatorConfiguration, opts ...Option) (*Simulator, error) {
	s := &Simulator{
		activeSceneID:         -1,
		activeSemanticSceneID: -1,
		graphs:                scene.NewManager(),
		semantic:              semantic.New(),
		sensors:               sensor.NewSuite(),
		controls:              controls.NewObjectControls(0),
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.log == nil {
		s.log = logging.Noop()
	}
	if s.tracer == nil {
		s.tracer = observability.Tracer()
	}
	if s.prober == nil {
		s.prober = pathutil.OS{}
	}
	if s.loader == nil {
		s.loader = assets.NewResourceManager(s.prober, s.log)
	}

	if err := s.Reconfigure(ctx, cfg); err != nil {
		s.Close()
		return nil, err
	}
	return s, nil
}

// Close releases the rendering context. The simulator must not be used
// afterwards.
func (s *Simulator) Close() {
	if s.gpu != nil {
		s.gpu.Release()
		s.gpu = nil
	}
	s.renderer = nil
}

// Config returns a copy of the current configuration.
func (s *Simulator) Config() *config.SimulatorConfiguration { return s.cfg.Clone() }

func (s *Simulator) Renderer() *gfx.Renderer            { return s.renderer }
func (s *Simulator) PhysicsManager() physics.Manager    { return s.physics }
func (s *Simulator) SemanticScene() *semantic.Scene     { return s.semantic }
func (s *Simulator) Sensors() *sensor.Suite             { return s.sensors }
func (s *Simulator) Controls() *controls.ObjectControls { return s.controls }
func (s *Simulator) RenderingContext() *gfx.WindowlessContext {
	return s.gpu
}

func (s *Simulator) ActiveSceneID() int         { return s.activeSceneID }
func (s *Simulator) ActiveSemanticSceneID() int { return s.activeSemanticSceneID }

// SceneIDs lists every scene graph allocated so far in allocation order.
func (s *Simulator) SceneIDs() []int { return append([]int(nil), s.sceneIDs...) }

func (s *Simulator) graph(id int) (*scene.SceneGraph, error) {
	if id < 0 || id >= len(s.sceneIDs) {
		return nil, fmt.Errorf("%w: %d of %d", ErrOutOfRange, id, len(s.sceneIDs))
	}
	return s.graphs.SceneGraph(s.sceneIDs[id])
}

func (s *Simulator) ActiveSceneGraph() (*scene.SceneGraph, error) {
	return s.graph(s.activeSceneID)
}

// ActiveSemanticSceneGraph fails with ErrOutOfRange when the current scene has
// no semantic graph.
func (s *Simulator) ActiveSemanticSceneGraph() (*scene.SceneGraph, error) {
	return s.graph(s.activeSemanticSceneID)
}

// Seed reseeds every random source owned by the simulator.
func (s *Simulator) Seed(v uint32) {
	s.seed = v
	s.controls.Seed(int64(v))
}

func (s *Simulator) CurrentSeed() uint32 { return s.seed }

package sim

import (
	"context"
	"fmt"
	"time"

	"github.com/mohammed-7/habitat-sim/internal/assets"
	"github.com/mohammed-7/habitat-sim/internal/config"
	"github.com/mohammed-7/habitat-sim/internal/gfx"
	"github.com/mohammed-7/habitat-sim/internal/logging"
	"github.com/mohammed-7/habitat-sim/internal/observability"
	"github.com/mohammed-7/habitat-sim/internal/semantic"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
)

// houseFormat selects the semantic annotation loader for a scene.
type houseFormat int

const (
	noHouse houseFormat = iota
	mp3dHouse
	suncgHouse
)

func (f houseFormat) String() string {
	switch f {
	case mp3dHouse:
		return "mp3d"
	case suncgHouse:
		return "suncg"
	default:
		return "none"
	}
}

type houseLoader func(desc assets.Descriptor, out *semantic.Scene) error

var houseLoaders = map[houseFormat]houseLoader{
	mp3dHouse: func(desc assets.Descriptor, out *semantic.Scene) error {
		return semantic.LoadMp3dHouse(desc.HousePath, out, semantic.ZUpToYUp())
	},
	suncgHouse: func(desc assets.Descriptor, out *semantic.Scene) error {
		return semantic.LoadSuncgHouse(desc.Scene.Filepath, out)
	},
}

// houseFormatFor picks exactly one format. A companion .house file wins over
// a SUNCG scene classification.
func (s *Simulator) houseFormatFor(desc assets.Descriptor) houseFormat {
	switch {
	case s.prober.Exists(desc.HousePath):
		return mp3dHouse
	case desc.Scene.Type == assets.SuncgScene:
		return suncgHouse
	default:
		return noHouse
	}
}

// Reconfigure applies cfg. A cfg equal to the current configuration only
// resets the simulation. Otherwise a new scene graph is allocated and the
// scene loaded into it; on failure the simulator is left in an undefined
// state and must be rebuilt.
func (s *Simulator) Reconfigure(ctx context.Context, cfg *config.SimulatorConfiguration) error {
	ctx, span := s.tracer.Start(ctx, "Simulator.Reconfigure")
	defer span.End()

	if cfg == nil {
		return ErrNilConfig
	}
	if s.cfg != nil && s.cfg.Equal(cfg) {
		span.SetAttributes(attribute.Bool("short_circuit", true))
		s.log.Debug(ctx, "configuration unchanged, resetting")
		s.metrics.RecordReconfigure(observability.OutcomeShortCircuit)
		s.Reset()
		return nil
	}
	if err := cfg.Validate(); err != nil {
		s.metrics.RecordReconfigure(observability.OutcomeFailed)
		span.SetStatus(codes.Error, err.Error())
		return fmt.Errorf("sim: %w", err)
	}

	s.cfg = cfg.Clone()
	desc := assets.Resolve(s.cfg.Scene)
	span.SetAttributes(
		attribute.String("scene", desc.Scene.Filepath),
		attribute.String("asset_type", desc.Scene.Type.String()),
	)

	s.activeSceneID = s.allocGraph()
	s.activeSemanticSceneID = -1
	s.physics = nil
	s.sensors.Clear()

	if s.cfg.CreateRenderer {
		if err := s.buildRenderer(ctx, desc); err != nil {
			s.metrics.RecordReconfigure(observability.OutcomeFailed)
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())
			s.log.Error(ctx, "reconfigure failed",
				logging.String("scene", desc.Scene.Filepath), logging.Err(err))
			return err
		}
	}

	s.rebuildSemanticScene(ctx, desc)
	s.Reset()

	s.metrics.RecordReconfigure(observability.OutcomeLoaded)
	s.metrics.SetSceneGraphs(len(s.sceneIDs))
	s.log.Info(ctx, "simulator reconfigured",
		logging.String("scene", desc.Scene.Filepath),
		logging.String("asset_type", desc.Scene.Type.String()),
		logging.Int("active_scene", s.activeSceneID),
		logging.Int("active_semantic_scene", s.activeSemanticSceneID),
		logging.Bool("physics", s.physics != nil),
		logging.Int("scene_graphs", len(s.sceneIDs)))
	return nil
}

func (s *Simulator) allocGraph() int {
	id := s.graphs.InitSceneGraph()
	s.sceneIDs = append(s.sceneIDs, id)
	return id
}

func (s *Simulator) buildRenderer(ctx context.Context, desc assets.Descriptor) error {
	// the context outlives reconfigures and is only released by Close
	if s.gpu == nil {
		gpu, err := gfx.AcquireContext(s.cfg.GPUDeviceID)
		if err != nil {
			return &ConfigurationError{Scene: desc.Scene.Filepath, Err: err}
		}
		s.gpu = gpu
	}
	s.renderer = gfx.NewRenderer(s.cfg.Width, s.cfg.Height)
	s.loader.CompressTextures(s.cfg.CompressTextures)

	if err := s.loadPrimary(ctx, desc); err != nil {
		return &ConfigurationError{Scene: desc.Scene.Filepath, Err: err}
	}

	if s.prober.Exists(desc.HousePath) && s.prober.Exists(desc.SemanticMeshPath) {
		s.loadSemanticMesh(ctx, desc)
	}
	if desc.Scene.Type.HasEmbeddedSemantics() {
		s.activeSemanticSceneID = s.activeSceneID
	}
	return nil
}

func (s *Simulator) loadPrimary(ctx context.Context, desc assets.Descriptor) error {
	ctx, span := s.tracer.Start(ctx, "Simulator.LoadScene")
	defer span.End()

	g, err := s.graph(s.activeSceneID)
	if err != nil {
		return err
	}
	start := time.Now()
	defer func() { s.metrics.ObserveLoad(desc.Scene.Type.String(), time.Since(start)) }()

	if !s.cfg.EnablePhysics {
		return s.loader.LoadScene(ctx, desc.Scene, g.RootNode(), g.Drawables())
	}
	world, err := s.loader.LoadPhysicsScene(ctx, desc.Scene, g.RootNode(), g.Drawables(), s.cfg.PhysicsConfigFile)
	if err != nil {
		return err
	}
	s.physics = world
	s.metrics.SetObjects(world.NumObjects())
	return nil
}

// loadSemanticMesh fills a second graph with the semantic mesh. Failure is
// logged and leaves the graph empty.
func (s *Simulator) loadSemanticMesh(ctx context.Context, desc assets.Descriptor) {
	ctx, span := s.tracer.Start(ctx, "Simulator.LoadSemanticMesh")
	defer span.End()

	id := s.allocGraph()
	s.activeSemanticSceneID = id
	g, err := s.graph(id)
	if err == nil {
		err = s.loader.LoadScene(ctx, assets.FromPath(desc.SemanticMeshPath), g.RootNode(), g.Drawables())
	}
	if err != nil {
		span.RecordError(err)
		s.log.Error(ctx, "cannot load semantic mesh",
			logging.String("path", desc.SemanticMeshPath), logging.Err(err))
	}
}

func (s *Simulator) rebuildSemanticScene(ctx context.Context, desc assets.Descriptor) {
	s.semantic = semantic.New()
	format := s.houseFormatFor(desc)
	load, ok := houseLoaders[format]
	if !ok {
		return
	}
	s.log.Info(ctx, "loading semantic annotations", logging.String("format", format.String()))
	if err := load(desc, s.semantic); err != nil {
		s.log.Warn(ctx, "semantic annotations not loaded",
			logging.String("format", format.String()), logging.Err(err))
	}
}

// Reset rewinds the physics world if one is bound. Assets and scene graphs are
// untouched.
func (s *Simulator) Reset() {
	if s.physics != nil {
		s.physics.Reset()
	}
}

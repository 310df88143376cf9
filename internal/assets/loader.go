package assets

import (
	"context"
	"errors"
	"fmt"

	"cogentcore.org/core/math32"
	"github.com/mohammed-7/habitat-sim/internal/logging"
	"github.com/mohammed-7/habitat-sim/internal/pathutil"
	"github.com/mohammed-7/habitat-sim/internal/physics"
	"github.com/mohammed-7/habitat-sim/internal/scene"
)

var (
	ErrNotFound    = errors.New("assets: file not found")
	ErrUnsupported = errors.New("assets: unsupported asset type")
)

// Loader populates a scene graph from an asset.
type Loader interface {
	CompressTextures(enabled bool)

	// LoadScene adds rendering-only geometry under root.
	LoadScene(ctx context.Context, info Info, root *scene.Node, drawables *scene.DrawableGroup) error

	// LoadPhysicsScene adds geometry under root and returns a physics world
	// built from physicsConfig in which the geometry is static.
	LoadPhysicsScene(ctx context.Context, info Info, root *scene.Node, drawables *scene.DrawableGroup, physicsConfig string) (physics.Manager, error)

	NumLibraryObjects() int
}

// defaultMeshBounds stands in for the extent of a mesh whose geometry is not
// decoded.
var defaultMeshBounds = math32.B3(-5, 0, -5, 5, 3, 5)

// ResourceManager is the file-backed Loader.
type ResourceManager struct {
	prober   pathutil.Prober
	log      logging.Logger
	compress bool
	library  int
}

var _ Loader = (*ResourceManager)(nil)

func NewResourceManager(prober pathutil.Prober, log logging.Logger) *ResourceManager {
	if prober == nil {
		prober = pathutil.OS{}
	}
	if log == nil {
		log = logging.Noop()
	}
	return &ResourceManager{prober: prober, log: log}
}

func (r *ResourceManager) CompressTextures(enabled bool) { r.compress = enabled }

func (r *ResourceManager) TexturesCompressed() bool { return r.compress }

func (r *ResourceManager) NumLibraryObjects() int { return r.library }

func (r *ResourceManager) LoadScene(ctx context.Context, info Info, root *scene.Node, drawables *scene.DrawableGroup) error {
	_, err := r.load(ctx, info, root, drawables)
	return err
}

func (r *ResourceManager) LoadPhysicsScene(ctx context.Context, info Info, root *scene.Node, drawables *scene.DrawableGroup, physicsConfig string) (physics.Manager, error) {
	cfg := physics.DefaultConfig()
	if physicsConfig != "" && r.prober.Exists(physicsConfig) {
		loaded, err := physics.LoadConfig(physicsConfig)
		if err != nil {
			return nil, err
		}
		cfg = loaded
	} else if physicsConfig != "" {
		r.log.Warn(ctx, "physics config not found, using defaults", logging.String("path", physicsConfig))
	}

	world, err := physics.NewWorld(cfg)
	if err != nil {
		return nil, err
	}
	world.Init(root)

	shells, err := r.load(ctx, info, root, drawables)
	if err != nil {
		return nil, err
	}
	for _, d := range shells {
		world.AddStaticMesh(d.Node(), d.Bounds)
	}
	r.library = world.LibrarySize()
	r.log.Info(ctx, "physics world initialised",
		logging.Int("library_objects", r.library),
		logging.String("integrator", cfg.Integrator),
		logging.Float("timestep", cfg.Timestep))
	return world, nil
}

// load returns the static drawables it created.
func (r *ResourceManager) load(ctx context.Context, info Info, root *scene.Node, drawables *scene.DrawableGroup) ([]*scene.Drawable, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if !r.prober.Exists(info.Filepath) {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, info.Filepath)
	}

	switch info.Type {
	case SceneDescriptor:
		return r.loadDescriptor(info, root, drawables)
	case Navmesh:
		return nil, fmt.Errorf("%w: %s is a navmesh", ErrUnsupported, info.Filepath)
	default:
		node := root.CreateChild()
		d := scene.NewDrawable(node, info.Filepath, defaultMeshBounds, drawables)
		r.log.Debug(ctx, "mesh loaded",
			logging.String("path", info.Filepath),
			logging.String("type", info.Type.String()))
		return []*scene.Drawable{d}, nil
	}
}

func (r *ResourceManager) loadDescriptor(info Info, root *scene.Node, drawables *scene.DrawableGroup) ([]*scene.Drawable, error) {
	f, err := ReadSceneFile(info.Filepath)
	if err != nil {
		return nil, err
	}

	shellNode := root.CreateChild()
	shell := scene.NewDrawable(shellNode, f.Name, f.shellBounds(), drawables)
	shell.Color = rgba(f.Color)

	for _, o := range f.Objects {
		node := root.CreateChild()
		node.SetTranslation(math32.Vec3(o.Position[0], o.Position[1], o.Position[2]))
		node.SetRotation(o.rotationQuat())
		d := scene.NewDrawable(node, o.Mesh, o.bounds(), drawables)
		d.ObjectID = o.ObjectID
		d.Color = rgba(o.Color)
	}
	return []*scene.Drawable{shell}, nil
}

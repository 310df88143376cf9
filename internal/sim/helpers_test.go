package sim

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"cogentcore.org/core/math32"
	"github.com/mohammed-7/habitat-sim/internal/assets"
	"github.com/mohammed-7/habitat-sim/internal/config"
	"github.com/mohammed-7/habitat-sim/internal/gfx"
	"github.com/mohammed-7/habitat-sim/internal/physics"
	"github.com/mohammed-7/habitat-sim/internal/scene"
)

// countingLoader records every load and builds a one-template physics world.
type countingLoader struct {
	loads        int
	physicsLoads int
	infos        []assets.Info
	err          error
	compress     bool
	library      int
}

func (l *countingLoader) CompressTextures(enabled bool) { l.compress = enabled }
func (l *countingLoader) NumLibraryObjects() int        { return l.library }

func (l *countingLoader) LoadScene(_ context.Context, info assets.Info, root *scene.Node, drawables *scene.DrawableGroup) error {
	l.loads++
	l.infos = append(l.infos, info)
	if l.err != nil {
		return l.err
	}
	scene.NewDrawable(root.CreateChild(), info.Filepath, math32.B3(-1, 0, -1, 1, 1, 1), drawables)
	return nil
}

func (l *countingLoader) LoadPhysicsScene(ctx context.Context, info assets.Info, root *scene.Node, drawables *scene.DrawableGroup, _ string) (physics.Manager, error) {
	l.physicsLoads++
	if err := l.LoadScene(ctx, info, root, drawables); err != nil {
		return nil, err
	}
	cfg := physics.DefaultConfig()
	cfg.Objects = []physics.ObjectTemplate{
		{Name: "cube", Mesh: "cube.glb", Mass: 1, HalfExtents: [3]float32{0.5, 0.5, 0.5}},
	}
	w, err := physics.NewWorld(cfg)
	if err != nil {
		return nil, err
	}
	w.Init(root)
	l.library = w.LibrarySize()
	return w, nil
}

func testConfig(sceneID string, withPhysics bool) *config.SimulatorConfiguration {
	cfg := config.DefaultConfig()
	cfg.Scene.ID = sceneID
	cfg.Width, cfg.Height = 64, 48
	cfg.EnablePhysics = withPhysics
	return cfg
}

func newTestSim(t *testing.T, cfg *config.SimulatorConfiguration, opts ...Option) (*Simulator, *countingLoader) {
	t.Helper()
	loader := &countingLoader{}
	opts = append([]Option{WithLoader(loader)}, opts...)
	s, err := New(context.Background(), cfg, opts...)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	t.Cleanup(func() {
		s.Close()
		gfx.ShutdownContexts()
	})
	return s, loader
}

func writeFile(t *testing.T, dir, name, body string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(body), 0644); err != nil {
		t.Fatal(err)
	}
	return path
}

const boxScene = `name: box-room
objects:
  - mesh: box.glb
    position: [0, 1.5, -5]
    half_extents: [0.5, 0.5, 0.5]
    object_id: 7
`

const roomScene = `name: room
bounds: [-10, 0, -10, 10, 3, 10]
`

const physicsConfig = `timestep: 0.005
integrator: semi_implicit_euler
objects:
  - name: cube
    mesh: cube.glb
    mass: 1
    half_extents: [0.5, 0.5, 0.5]
  - name: sphere
    mesh: sphere.glb
`

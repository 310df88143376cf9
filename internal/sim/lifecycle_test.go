package sim

import (
	"context"
	"os"
	"path/filepath"

	"cogentcore.org/core/math32"
	"github.com/mohammed-7/habitat-sim/internal/assets"
	"github.com/mohammed-7/habitat-sim/internal/config"
	"github.com/mohammed-7/habitat-sim/internal/gfx"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

var _ = Describe("Simulator lifecycle", func() {
	var (
		ctx    context.Context
		dir    string
		cfg    *config.SimulatorConfiguration
		s      *Simulator
		create = func(path, body string) string {
			p := filepath.Join(dir, path)
			Expect(os.WriteFile(p, []byte(body), 0644)).To(Succeed())
			return p
		}
	)

	BeforeEach(func() {
		ctx = context.Background()
		dir = GinkgoT().TempDir()
		cfg = testConfig(create("room.scene.yaml", roomScene), true)
		cfg.PhysicsConfigFile = create("phys.yaml", physicsConfig)
	})

	AfterEach(func() {
		if s != nil {
			s.Close()
			s = nil
		}
		gfx.ShutdownContexts()
	})

	Context("with physics enabled", func() {
		BeforeEach(func() {
			var err error
			s, err = New(ctx, cfg)
			Expect(err).NotTo(HaveOccurred())
		})

		It("loads the object library from the physics config", func() {
			Expect(s.PhysicsObjectLibrarySize()).To(Equal(2))
			Expect(s.WorldTime()).To(BeZero())
		})

		It("drops an object onto the room floor", func() {
			id := s.AddObject(0, s.ActiveSceneID())
			Expect(id).To(Equal(0))
			s.SetTranslation(math32.Vec3(0, 2, 0), id, 0)

			Expect(s.Run(ctx, DefaultStepDt, 3, nil)).To(Succeed())
			Expect(s.WorldTime()).To(BeNumerically("~", 3, 1e-6))
			Expect(s.Translation(id, 0).Y).To(BeNumerically("~", 0.5, 1e-3))
		})

		It("pairs new bodies with drawables in the addressed graph", func() {
			g, err := s.ActiveSceneGraph()
			Expect(err).NotTo(HaveOccurred())
			before := g.Drawables().Len()
			s.AddObject(1, 0)
			Expect(g.Drawables().Len()).To(Equal(before + 1))
		})

		It("only resets on an identical reconfigure", func() {
			id := s.AddObject(0, 0)
			s.StepWorld(1)
			pos := s.Translation(id, 0)

			Expect(s.Reconfigure(ctx, cfg.Clone())).To(Succeed())
			Expect(s.SceneIDs()).To(HaveLen(1))
			Expect(s.WorldTime()).To(BeZero())
			Expect(s.Translation(id, 0)).To(Equal(pos))
		})

		It("unbinds physics when a new configuration disables it", func() {
			s.AddObject(0, 0)
			next := cfg.Clone()
			next.EnablePhysics = false
			Expect(s.Reconfigure(ctx, next)).To(Succeed())

			Expect(s.PhysicsManager()).To(BeNil())
			Expect(s.SceneIDs()).To(Equal([]int{0, 1}))
			Expect(s.AddObject(0, 1)).To(Equal(IDUndefined))
			Expect(s.StepWorld(1)).To(Equal(NoTime))
		})

		It("stops a run when the callback asks", func() {
			steps := 0
			Expect(s.Run(ctx, DefaultStepDt, 1, func(float64) bool {
				steps++
				return steps < 10
			})).To(Succeed())
			Expect(steps).To(Equal(10))
		})

		It("honors context cancellation between steps", func() {
			cctx, cancel := context.WithCancel(ctx)
			cancel()
			Expect(s.Run(cctx, DefaultStepDt, 1, nil)).To(MatchError(context.Canceled))
		})
	})

	Context("with a missing scene file", func() {
		It("fails with a configuration error", func() {
			bad := cfg.Clone()
			bad.Scene.ID = filepath.Join(dir, "missing.glb")
			_, err := New(ctx, bad)
			Expect(err).To(MatchError(ErrLoadFailed))
			Expect(err).To(MatchError(assets.ErrNotFound))
		})
	})

	Context("with a Matterport house", func() {
		It("builds the semantic scene from the companion house file", func() {
			mesh := create("17DR.glb", "")
			create("17DR.house", `ASCII 1.1
L 0 1 floor 0 0 0 0 0 0 10 10 3 0 0 0 0 0
R 0 0 0 0 k 2 2 1 0 0 0 4 4 3 2.5 0 0 0 0
C 0 3 chair 3 chair 0 0 0 0 0
O 0 0 0 1 1 0.5 1 0 0 0 1 0 0.2 0.2 0.5 0 0 0 0 0 0 0 0
`)
			c := cfg.Clone()
			c.Scene.ID = mesh
			c.EnablePhysics = false
			var err error
			s, err = New(ctx, c)
			Expect(err).NotTo(HaveOccurred())

			sc := s.SemanticScene()
			Expect(sc.Levels).To(HaveLen(1))
			Expect(sc.Objects).To(HaveLen(1))
			Expect(sc.Objects[0].Category.Name("")).To(Equal("chair"))
			Expect(s.ActiveSemanticSceneID()).To(Equal(-1), "no semantic mesh on disk")
		})
	})

	Context("as an ensemble", func() {
		It("steps every member to the same world time", func() {
			e, err := NewEnsemble(ctx, cfg, 3, 10, nil)
			Expect(err).NotTo(HaveOccurred())
			defer e.Close()

			times, err := e.Run(ctx, DefaultStepDt, 0.5, func(_ int, m *Simulator) {
				m.AddObject(0, 0)
			})
			Expect(err).NotTo(HaveOccurred())
			Expect(times).To(HaveLen(3))
			for i, t := range times {
				Expect(t).To(BeNumerically("~", 0.5, 1e-6))
				Expect(e.Simulators()[i].CurrentSeed()).To(Equal(uint32(10 + i)))
				Expect(e.Simulators()[i].ExistingObjectIDs(0)).To(HaveLen(1))
			}
		})
	})
})

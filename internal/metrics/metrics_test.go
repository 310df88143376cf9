package metrics

import (
	"testing"

	"cogentcore.org/core/math32"
	"github.com/mohammed-7/habitat-sim/internal/physics"
	"github.com/mohammed-7/habitat-sim/internal/scene"
)

func fallingWorld(t *testing.T) *physics.World {
	t.Helper()
	cfg := physics.DefaultConfig()
	cfg.Integrator = "rk4"
	cfg.Objects = []physics.ObjectTemplate{
		{Name: "cube", Mesh: "cube.glb", Mass: 2, HalfExtents: [3]float32{0.5, 0.5, 0.5}},
	}
	w, err := physics.NewWorld(cfg)
	if err != nil {
		t.Fatal(err)
	}
	g := scene.NewSceneGraph()
	w.Init(g.RootNode())
	id := w.AddObject(0, g.Drawables())
	w.SetTranslation(id, math32.Vec3(0, 2, 0))
	return w
}

func near(a, b, tol float64) bool {
	d := a - b
	return d < tol && -d < tol
}

func TestEnergyAtRest(t *testing.T) {
	w := fallingWorld(t)
	e := NewEnergy()
	e.Observe(w, 0)
	if !near(e.Value(), 39.2, 1e-4) {
		t.Errorf("want potential energy 39.2, got %f", e.Value())
	}
	e.Reset()
	if e.Value() != 0 {
		t.Errorf("expected zero after reset, got %f", e.Value())
	}
}

func TestEnergyDriftFreeFall(t *testing.T) {
	w := fallingWorld(t)
	d := NewEnergyDrift()
	d.Observe(w, 0)
	for i := 0; i < 30; i++ {
		w.StepPhysics(1.0 / 60)
		d.Observe(w, w.WorldTime())
	}
	if d.Value() > 1e-3 {
		t.Errorf("free fall should conserve energy, drift %f", d.Value())
	}
}

func TestSettledAndMeanSpeed(t *testing.T) {
	w := fallingWorld(t)
	settled := NewSettled(0.05)
	speed := NewMeanSpeed()
	ms := []Metric{settled, speed}

	for _, m := range ms {
		m.Observe(w, 0)
	}
	if settled.Value() != 1 {
		t.Errorf("body at rest should count as settled, got %f", settled.Value())
	}

	w.StepPhysics(0.5)
	for _, m := range ms {
		m.Observe(w, 0.5)
	}
	if settled.Value() != 0.5 {
		t.Errorf("want half the samples settled, got %f", settled.Value())
	}
	if !near(speed.Value(), 2.45, 1e-3) {
		t.Errorf("want mean speed 2.45, got %f", speed.Value())
	}

	vals := Values(ms)
	if len(vals) != 2 || vals["settled"] != settled.Value() {
		t.Errorf("unexpected values %v", vals)
	}
}

func TestDefaultNames(t *testing.T) {
	seen := map[string]bool{}
	for _, m := range Default() {
		if seen[m.Name()] {
			t.Errorf("duplicate metric %s", m.Name())
		}
		seen[m.Name()] = true
	}
	if len(seen) != 4 {
		t.Errorf("want 4 metrics, got %d", len(seen))
	}
}

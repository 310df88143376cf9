// Package metrics observes a physics world while it steps and reduces what it
// saw to one number per metric.
package metrics

import (
	"math"

	"github.com/mohammed-7/habitat-sim/internal/physics"
)

// Metric accumulates over calls to Observe until Reset.
type Metric interface {
	Name() string
	Observe(w *physics.World, t float64)
	Value() float64
	Reset()
}

// mechanicalEnergy is the translational kinetic plus gravitational potential
// energy of every dynamic body, with zero potential at the origin.
func mechanicalEnergy(w *physics.World) float64 {
	g := w.Config().GravityVector()
	total := 0.0
	for _, id := range w.ExistingObjectIDs() {
		b, ok := w.Body(id)
		if !ok || b.Template.Mass <= 0 {
			continue
		}
		m := b.Template.Mass
		v := float64(b.LinVel.Length())
		total += 0.5*m*v*v - m*float64(g.Dot(b.Pos))
	}
	return total
}

type Energy struct {
	samples int
	total   float64
}

func NewEnergy() *Energy { return &Energy{} }

func (e *Energy) Name() string { return "energy" }

func (e *Energy) Observe(w *physics.World, t float64) {
	e.total += mechanicalEnergy(w)
	e.samples++
}

// Value is the mean energy over all observations.
func (e *Energy) Value() float64 {
	if e.samples == 0 {
		return 0
	}
	return e.total / float64(e.samples)
}

func (e *Energy) Reset() { *e = Energy{} }

// EnergyDrift tracks the largest relative change from the first observed
// energy. Bounces and applied forces show up as drift.
type EnergyDrift struct {
	initial  float64
	maxDrift float64
	samples  int
}

func NewEnergyDrift() *EnergyDrift { return &EnergyDrift{} }

func (e *EnergyDrift) Name() string { return "energy_drift" }

func (e *EnergyDrift) Observe(w *physics.World, t float64) {
	energy := mechanicalEnergy(w)
	if e.samples == 0 {
		e.initial = energy
	}
	e.samples++
	if e.initial != 0 {
		e.maxDrift = math.Max(e.maxDrift, math.Abs(energy-e.initial)/math.Abs(e.initial))
	}
}

func (e *EnergyDrift) Value() float64 { return e.maxDrift }

func (e *EnergyDrift) Reset() { *e = EnergyDrift{} }

// Settled is the fraction of observations in which every body moved slower
// than threshold.
type Settled struct {
	threshold float32
	moving    int
	samples   int
}

func NewSettled(threshold float32) *Settled { return &Settled{threshold: threshold} }

func (s *Settled) Name() string { return "settled" }

func (s *Settled) Observe(w *physics.World, t float64) {
	s.samples++
	for _, id := range w.ExistingObjectIDs() {
		if b, ok := w.Body(id); ok && b.LinVel.Length() > s.threshold {
			s.moving++
			return
		}
	}
}

func (s *Settled) Value() float64 {
	if s.samples == 0 {
		return 1
	}
	return 1 - float64(s.moving)/float64(s.samples)
}

func (s *Settled) Reset() { s.moving, s.samples = 0, 0 }

type MeanSpeed struct {
	sum     float64
	samples int
}

func NewMeanSpeed() *MeanSpeed { return &MeanSpeed{} }

func (m *MeanSpeed) Name() string { return "mean_speed" }

func (m *MeanSpeed) Observe(w *physics.World, t float64) {
	for _, id := range w.ExistingObjectIDs() {
		if b, ok := w.Body(id); ok {
			m.sum += float64(b.LinVel.Length())
			m.samples++
		}
	}
}

func (m *MeanSpeed) Value() float64 {
	if m.samples == 0 {
		return 0
	}
	return m.sum / float64(m.samples)
}

func (m *MeanSpeed) Reset() { *m = MeanSpeed{} }

// Default is the set a recorded run carries.
func Default() []Metric {
	return []Metric{NewEnergy(), NewEnergyDrift(), NewSettled(0.05), NewMeanSpeed()}
}

// Values collects the current value of every metric by name.
func Values(ms []Metric) map[string]float64 {
	out := make(map[string]float64, len(ms))
	for _, m := range ms {
		out[m.Name()] = m.Value()
	}
	return out
}

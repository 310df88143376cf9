// Package observability carries the simulator's Prometheus metrics and
// OpenTelemetry tracing setup.
package observability

import (
	"fmt"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Reconfigure outcomes.
const (
	OutcomeLoaded       = "loaded"
	OutcomeShortCircuit = "short_circuit"
	OutcomeFailed       = "failed"
)

// SimulatorCollector bundles the simulator metrics. All methods are safe on a
// nil receiver.
type SimulatorCollector struct {
	gatherer prometheus.Gatherer

	Reconfigures  *prometheus.CounterVec
	LoadDurations *prometheus.HistogramVec
	SceneGraphs   prometheus.Gauge
	WorldSteps    prometheus.Counter
	Objects       prometheus.Gauge
	Observations  *prometheus.CounterVec
}

// NewSimulatorCollector registers simulator metrics against reg, defaulting to
// the global registry when nil. Metrics already registered by an earlier
// collector are reused.
func NewSimulatorCollector(reg prometheus.Registerer) (*SimulatorCollector, error) {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	gatherer := prometheus.DefaultGatherer
	if g, ok := reg.(prometheus.Gatherer); ok {
		gatherer = g
	}

	reconfigures, err := register(reg, prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "habitat_reconfigure_total",
		Help: "Simulator reconfigure calls, labeled by outcome.",
	}, []string{"outcome"}), "habitat_reconfigure_total")
	if err != nil {
		return nil, err
	}
	loads, err := register(reg, prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "habitat_scene_load_duration_seconds",
		Help:    "Scene load latency in seconds, labeled by asset type.",
		Buckets: []float64{0.001, 0.005, 0.01, 0.05, 0.1, 0.5, 1, 5, 10, 30},
	}, []string{"asset_type"}), "habitat_scene_load_duration_seconds")
	if err != nil {
		return nil, err
	}
	graphs, err := register(reg, prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "habitat_scene_graphs",
		Help: "Scene graphs allocated by the simulator.",
	}), "habitat_scene_graphs")
	if err != nil {
		return nil, err
	}
	steps, err := register(reg, prometheus.NewCounter(prometheus.CounterOpts{
		Name: "habitat_world_steps_total",
		Help: "Physics world steps taken.",
	}), "habitat_world_steps_total")
	if err != nil {
		return nil, err
	}
	objects, err := register(reg, prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "habitat_physics_objects",
		Help: "Live physics objects in the active scene.",
	}), "habitat_physics_objects")
	if err != nil {
		return nil, err
	}
	obs, err := register(reg, prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "habitat_observations_total",
		Help: "Sensor observations drawn, labeled by sensor type.",
	}, []string{"sensor_type"}), "habitat_observations_total")
	if err != nil {
		return nil, err
	}

	return &SimulatorCollector{
		gatherer:      gatherer,
		Reconfigures:  reconfigures,
		LoadDurations: loads,
		SceneGraphs:   graphs,
		WorldSteps:    steps,
		Objects:       objects,
		Observations:  obs,
	}, nil
}

func (c *SimulatorCollector) RecordReconfigure(outcome string) {
	if c == nil {
		return
	}
	c.Reconfigures.WithLabelValues(outcome).Inc()
}

func (c *SimulatorCollector) ObserveLoad(assetType string, d time.Duration) {
	if c == nil {
		return
	}
	c.LoadDurations.WithLabelValues(assetType).Observe(d.Seconds())
}

func (c *SimulatorCollector) SetSceneGraphs(n int) {
	if c == nil {
		return
	}
	c.SceneGraphs.Set(float64(n))
}

func (c *SimulatorCollector) RecordWorldStep(objects int) {
	if c == nil {
		return
	}
	c.WorldSteps.Inc()
	c.Objects.Set(float64(objects))
}

func (c *SimulatorCollector) SetObjects(n int) {
	if c == nil {
		return
	}
	c.Objects.Set(float64(n))
}

func (c *SimulatorCollector) RecordObservation(sensorType string) {
	if c == nil {
		return
	}
	c.Observations.WithLabelValues(sensorType).Inc()
}

// Handler exposes a /metrics handler over the collector's gatherer.
func (c *SimulatorCollector) Handler() http.Handler {
	gatherer := prometheus.DefaultGatherer
	if c != nil && c.gatherer != nil {
		gatherer = c.gatherer
	}
	return promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{})
}

func register[C prometheus.Collector](reg prometheus.Registerer, c C, name string) (C, error) {
	if err := reg.Register(c); err != nil {
		if are, ok := err.(prometheus.AlreadyRegisteredError); ok {
			if existing, ok := are.ExistingCollector.(C); ok {
				return existing, nil
			}
			return c, fmt.Errorf("collector %s already registered with incompatible type", name)
		}
		return c, err
	}
	return c, nil
}

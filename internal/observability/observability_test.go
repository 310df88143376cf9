package observability

import (
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/trace/noop"
)

func TestCollectorRecords(t *testing.T) {
	reg := prometheus.NewRegistry()
	c, err := NewSimulatorCollector(reg)
	if err != nil {
		t.Fatalf("NewSimulatorCollector: %v", err)
	}

	c.RecordReconfigure(OutcomeLoaded)
	c.RecordReconfigure(OutcomeShortCircuit)
	c.RecordReconfigure(OutcomeShortCircuit)
	c.ObserveLoad("mp3d_mesh", 20*time.Millisecond)
	c.SetSceneGraphs(2)
	c.RecordWorldStep(3)
	c.RecordObservation("depth")

	if got := testutil.ToFloat64(c.Reconfigures.WithLabelValues(OutcomeShortCircuit)); got != 2 {
		t.Fatalf("short circuits = %v, want 2", got)
	}
	if got := testutil.ToFloat64(c.SceneGraphs); got != 2 {
		t.Fatalf("scene graphs = %v, want 2", got)
	}
	if got := testutil.ToFloat64(c.Objects); got != 3 {
		t.Fatalf("objects = %v, want 3", got)
	}
	if got := testutil.CollectAndCount(c.LoadDurations); got != 1 {
		t.Fatalf("load duration series = %d, want 1", got)
	}
}

func TestCollectorReusesRegistration(t *testing.T) {
	reg := prometheus.NewRegistry()
	a, err := NewSimulatorCollector(reg)
	if err != nil {
		t.Fatalf("first: %v", err)
	}
	b, err := NewSimulatorCollector(reg)
	if err != nil {
		t.Fatalf("second collector should reuse metrics: %v", err)
	}
	a.RecordWorldStep(0)
	if got := testutil.ToFloat64(b.WorldSteps); got != 1 {
		t.Fatalf("shared world steps = %v, want 1", got)
	}
}

func TestNilCollectorIsSafe(t *testing.T) {
	var c *SimulatorCollector
	c.RecordReconfigure(OutcomeFailed)
	c.ObserveLoad("x", time.Second)
	c.SetSceneGraphs(1)
	c.RecordWorldStep(1)
	c.SetObjects(1)
	c.RecordObservation("color")
	if c.Handler() == nil {
		t.Fatal("nil collector should still expose a handler")
	}
}

func TestMetricsHandler(t *testing.T) {
	reg := prometheus.NewRegistry()
	c, err := NewSimulatorCollector(reg)
	if err != nil {
		t.Fatal(err)
	}
	c.RecordReconfigure(OutcomeLoaded)
	c.SetSceneGraphs(4)

	rr := httptest.NewRecorder()
	c.Handler().ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	if rr.Code != http.StatusOK {
		t.Fatalf("/metrics status = %d", rr.Code)
	}
	body := rr.Body.String()
	for _, m := range []string{"habitat_reconfigure_total", "habitat_scene_graphs 4"} {
		if !strings.Contains(body, m) {
			t.Fatalf("expected %q in /metrics output:\n%s", m, body)
		}
	}
}

func TestInitTracingDisabled(t *testing.T) {
	shutdown, err := InitTracing(context.Background(), TracingConfig{}, nil)
	if err != nil {
		t.Fatal(err)
	}
	_, span := Tracer().Start(context.Background(), "noop")
	if span.SpanContext().IsValid() {
		t.Fatal("noop provider should produce invalid span contexts")
	}
	span.End()
	ShutdownWithTimeout(context.Background(), shutdown, nil)
}

func TestInitTracingStdout(t *testing.T) {
	var buf bytes.Buffer
	shutdown, err := InitTracing(context.Background(), TracingConfig{
		Enabled:     true,
		ServiceName: "test",
		Exporter:    "stdout",
		SampleRatio: 1,
		Writer:      &buf,
	}, nil)
	if err != nil {
		t.Fatal(err)
	}
	defer otel.SetTracerProvider(noop.NewTracerProvider())

	_, span := Tracer().Start(context.Background(), "Simulator.Reconfigure")
	span.End()
	ShutdownWithTimeout(context.Background(), shutdown, nil)

	if !strings.Contains(buf.String(), "Simulator.Reconfigure") {
		t.Fatalf("expected exported span, got %q", buf.String())
	}
}

func TestInitTracingUnknownExporter(t *testing.T) {
	if _, err := InitTracing(context.Background(), TracingConfig{Enabled: true, Exporter: "zipkin"}, nil); err == nil {
		t.Fatal("expected error for unsupported exporter")
	}
}

func TestTracingConfigFromEnv(t *testing.T) {
	t.Setenv("HABITAT_TRACING_ENABLED", "TRUE")
	t.Setenv("HABITAT_TRACING_SAMPLE_RATIO", "0.25")
	t.Setenv("HABITAT_TRACING_EXPORTER", "")
	cfg := TracingConfigFromEnv()
	if !cfg.Enabled || cfg.SampleRatio != 0.25 || cfg.Exporter != "stdout" || cfg.ServiceName != "habitat-sim" {
		t.Fatalf("unexpected config %+v", cfg)
	}
}

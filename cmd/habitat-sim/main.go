package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"sort"
	"strings"
	"syscall"
	"text/tabwriter"
	"time"

	"cogentcore.org/core/math32"
	"github.com/guptarohit/asciigraph"
	"github.com/mohammed-7/habitat-sim/internal/automation"
	"github.com/mohammed-7/habitat-sim/internal/config"
	"github.com/mohammed-7/habitat-sim/internal/controls"
	"github.com/mohammed-7/habitat-sim/internal/export"
	"github.com/mohammed-7/habitat-sim/internal/logging"
	"github.com/mohammed-7/habitat-sim/internal/metrics"
	"github.com/mohammed-7/habitat-sim/internal/observability"
	"github.com/mohammed-7/habitat-sim/internal/physics"
	"github.com/mohammed-7/habitat-sim/internal/sensor"
	"github.com/mohammed-7/habitat-sim/internal/sim"
	"github.com/mohammed-7/habitat-sim/internal/storage"
	"github.com/mohammed-7/habitat-sim/internal/tui"
	"github.com/mohammed-7/habitat-sim/internal/viz"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"
)

var (
	dataDir string
	dt       float64
	duration float64
	seed     uint32

	configFile    string
	preset        string
	width         int
	height        int
	headless      bool
	enablePhysics bool
	physicsConfig string
	houseFile     string
	gpuDevice     int

	numObjects  int
	dropHeight  float32
	sampleEvery int
	sensors     []string
	imageFormat string
	live        bool
	frameRate   int

	svgOut  string
	svgSize int

	members       int
	memberObjects int
	metricAddr    string
	// 0 serves until interrupted
	serveFor float64
)

const libraryObject = 0

func main() {
	rootCmd := &cobra.Command{
		Use:           "habitat-sim",
		Short:         "scene loading and sensor simulation for embodied agents",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.PersistentFlags().StringVar(&dataDir, "data", ".habitat", "data directory")

	runCmd := &cobra.Command{
		Use:   "run [scene]",
		Short: "run simulation and record it",
		Args:  cobra.MaximumNArgs(1),
		RunE:  runSimulation,
	}
	sceneFlags(runCmd)
	runCmd.Flags().Float64Var(&dt, "dt", sim.DefaultStepDt, "timestep")
	runCmd.Flags().Float64Var(&duration, "time", 2.0, "duration")
	runCmd.Flags().IntVar(&numObjects, "objects", 0, "library objects to drop")
	runCmd.Flags().Float32Var(&dropHeight, "drop-height", 2.0, "initial object height")
	runCmd.Flags().IntVar(&sampleEvery, "sample-every", 10, "steps between trajectory samples")
	runCmd.Flags().StringSliceVar(&sensors, "sensor", nil, "sensors to observe at the end (color, depth, semantic)")
	runCmd.Flags().StringVar(&imageFormat, "format", storage.FormatPNG, "color frame format (png, bmp, tiff)")
	runCmd.Flags().BoolVar(&live, "live", false, "draw objects while running")
	runCmd.Flags().IntVar(&frameRate, "fps", 30, "frame rate for --live")

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "list runs",
		RunE:  listRuns,
	}

	plotCmd := &cobra.Command{
		Use:   "plot [run_id]",
		Short: "plot object heights of a run",
		Args:  cobra.ExactArgs(1),
		RunE:  plotRun,
	}

	exportCmd := &cobra.Command{
		Use:   "export [run_id]",
		Short: "export run metadata",
		Args:  cobra.ExactArgs(1),
		RunE:  exportRun,
	}

	exportJSONCmd := &cobra.Command{
		Use:   "export-json [run_id]",
		Short: "export a run with its trajectory as json",
		Args:  cobra.ExactArgs(1),
		RunE:  exportRunJSON,
	}

	depthCmd := &cobra.Command{
		Use:   "depth [run_id] [sensor]",
		Short: "show a recorded depth frame",
		Args:  cobra.ExactArgs(2),
		RunE:  showDepth,
	}

	svgCmd := &cobra.Command{
		Use:   "svg [run_id]",
		Short: "draw recorded object paths as svg",
		Args:  cobra.ExactArgs(1),
		RunE:  exportSVG,
	}
	svgCmd.Flags().StringVarP(&svgOut, "output", "o", "", "output file (default stdout)")
	svgCmd.Flags().IntVar(&svgSize, "size", 600, "image size in pixels")

	liveCmd := &cobra.Command{
		Use:   "live [scene]",
		Short: "interactive terminal view",
		Args:  cobra.MaximumNArgs(1),
		RunE:  runLive,
	}
	sceneFlags(liveCmd)
	liveCmd.Flags().Float64Var(&dt, "dt", sim.DefaultStepDt, "timestep")

	presetsCmd := &cobra.Command{
		Use:   "presets [dataset]",
		Short: "list datasets or their presets",
		Args:  cobra.MaximumNArgs(1),
		RunE:  listPresets,
	}

	semanticCmd := &cobra.Command{
		Use:   "semantic [scene]",
		Short: "print the semantic hierarchy of a scene",
		Args:  cobra.MaximumNArgs(1),
		RunE:  printSemantic,
	}
	sceneFlags(semanticCmd)

	actionsCmd := &cobra.Command{
		Use:   "actions",
		Short: "list agent actions and noise models",
		RunE:  listActions,
	}

	ensembleCmd := &cobra.Command{
		Use:   "ensemble [scene]",
		Short: "run seeded copies of a scene in parallel",
		Args:  cobra.MaximumNArgs(1),
		RunE:  runEnsemble,
	}
	sceneFlags(ensembleCmd)
	ensembleCmd.Flags().IntVar(&members, "members", 4, "number of simulators")
	ensembleCmd.Flags().Float64Var(&dt, "dt", sim.DefaultStepDt, "timestep")
	ensembleCmd.Flags().Float64Var(&duration, "time", 2.0, "duration")
	ensembleCmd.Flags().IntVar(&memberObjects, "objects", 1, "library objects per member")
	ensembleCmd.Flags().Float32Var(&dropHeight, "drop-height", 2.0, "initial object height")

	scenarioCmd := &cobra.Command{
		Use:   "scenario [file]",
		Short: "run a scripted sequence of scene configurations",
		Args:  cobra.ExactArgs(1),
		RunE:  runScenario,
	}

	serveCmd := &cobra.Command{
		Use:   "serve-metrics [scene]",
		Short: "step a scene and expose prometheus metrics",
		Args:  cobra.MaximumNArgs(1),
		RunE:  serveMetrics,
	}
	sceneFlags(serveCmd)
	serveCmd.Flags().StringVar(&metricAddr, "addr", ":9090", "listen address")
	serveCmd.Flags().Float64Var(&dt, "dt", sim.DefaultStepDt, "timestep")
	serveCmd.Flags().Float64Var(&serveFor, "time", 0, "stop after this much world time (0 runs until interrupted)")

	rootCmd.AddCommand(runCmd, listCmd, plotCmd, exportCmd, exportJSONCmd, svgCmd, depthCmd,
		liveCmd, presetsCmd, semanticCmd, actionsCmd, ensembleCmd, scenarioCmd, serveCmd)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	err := rootCmd.ExecuteContext(ctx)
	stop()
	if err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

// sceneFlags registers the flags that shape a simulator configuration.
func sceneFlags(cmd *cobra.Command) {
	cmd.Flags().StringVar(&configFile, "config", "", "config file path (yaml)")
	cmd.Flags().StringVar(&preset, "preset", "", "use preset configuration (dataset/name)")
	cmd.Flags().IntVar(&width, "width", config.DefaultWidth, "framebuffer width")
	cmd.Flags().IntVar(&height, "height", config.DefaultHeight, "framebuffer height")
	cmd.Flags().BoolVar(&headless, "headless", false, "skip the renderer")
	cmd.Flags().BoolVar(&enablePhysics, "physics", false, "enable physics")
	cmd.Flags().StringVar(&physicsConfig, "physics-config", config.DefaultPhysicsConfig, "physics config file")
	cmd.Flags().StringVar(&houseFile, "house", "", "semantic house file override")
	cmd.Flags().IntVar(&gpuDevice, "gpu", 0, "gpu device id")
	cmd.Flags().Uint32Var(&seed, "seed", uint32(time.Now().UnixNano()), "random seed")
}

// resolveConfig builds the configuration from --preset or --config, then
// applies the positional scene and any flags the user set explicitly.
func resolveConfig(cmd *cobra.Command, args []string) (*config.SimulatorConfiguration, error) {
	var cfg *config.SimulatorConfiguration
	switch {
	case preset != "":
		dataset, name, ok := strings.Cut(preset, "/")
		if !ok {
			return nil, fmt.Errorf("preset must be dataset/name, got %q", preset)
		}
		cfg = config.GetPreset(dataset, name)
		if cfg == nil {
			return nil, fmt.Errorf("unknown preset: %s (try: habitat-sim presets %s)", preset, dataset)
		}
	case configFile != "":
		loaded, err := config.Load(configFile)
		if err != nil {
			return nil, err
		}
		cfg = loaded
	default:
		cfg = config.DefaultConfig()
	}

	if len(args) > 0 {
		cfg.Scene.ID = args[0]
	}
	if cfg.Scene.ID == "" {
		return nil, errors.New("no scene given")
	}

	flags := cmd.Flags()
	if flags.Changed("width") {
		cfg.Width = width
	}
	if flags.Changed("height") {
		cfg.Height = height
	}
	if flags.Changed("headless") {
		cfg.CreateRenderer = !headless
	}
	if flags.Changed("physics") {
		cfg.EnablePhysics = enablePhysics
	}
	if flags.Changed("physics-config") {
		cfg.PhysicsConfigFile = physicsConfig
	}
	if flags.Changed("gpu") {
		cfg.GPUDeviceID = gpuDevice
	}
	if houseFile != "" {
		if cfg.Scene.Filepaths == nil {
			cfg.Scene.Filepaths = make(map[string]string)
		}
		cfg.Scene.Filepaths["house"] = houseFile
	}
	return cfg, nil
}

// openSimulator initializes tracing and builds a simulator from the command's
// flags. The returned cleanup closes both.
func openSimulator(cmd *cobra.Command, args []string, opts ...sim.Option) (*sim.Simulator, logging.Logger, func(), error) {
	ctx := cmd.Context()
	log := logging.NewFromEnv()

	cfg, err := resolveConfig(cmd, args)
	if err != nil {
		return nil, log, nil, err
	}

	shutdown, err := observability.InitTracing(ctx, observability.TracingConfigFromEnv(), log)
	if err != nil {
		return nil, log, nil, fmt.Errorf("tracing: %w", err)
	}

	opts = append([]sim.Option{sim.WithLogger(log), sim.WithTracer(observability.Tracer())}, opts...)
	s, err := sim.New(ctx, cfg, opts...)
	if err != nil {
		observability.ShutdownWithTimeout(ctx, shutdown, log)
		return nil, log, nil, err
	}
	s.Seed(seed)

	cleanup := func() {
		s.Close()
		observability.ShutdownWithTimeout(context.WithoutCancel(ctx), shutdown, log)
	}
	return s, log, cleanup, nil
}

// dropObjects adds n library objects in a row above the origin.
func dropObjects(s *sim.Simulator, n int, y float32) []int {
	sceneID := s.ActiveSceneID()
	var ids []int
	for i := 0; i < n; i++ {
		id := s.AddObject(libraryObject, sceneID)
		if id == sim.IDUndefined {
			break
		}
		x := float32(i) - float32(n-1)/2
		s.SetTranslation(math32.Vec3(x, y, 0), id, sceneID)
		ids = append(ids, id)
	}
	return ids
}

func sensorSpec(name string, cfg *config.SimulatorConfiguration) (*sensor.Spec, error) {
	typ, err := sensor.ParseType(name)
	if err != nil {
		return nil, err
	}
	spec := sensor.DefaultSpec()
	spec.UUID = name
	spec.Type = typ
	spec.Resolution = [2]int{cfg.Height, cfg.Width}
	spec.Channels = 1
	if typ == sensor.TypeColor {
		spec.Channels = 4
	}
	return spec, nil
}

func runSimulation(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	s, log, cleanup, err := openSimulator(cmd, args)
	if err != nil {
		return err
	}
	defer cleanup()
	cfg := s.Config()

	var frames []storage.Frame
	if len(sensors) > 0 && s.Renderer() == nil {
		log.Warn(ctx, "sensors need a renderer, skipping", logging.Any("sensors", sensors))
	} else {
		for _, name := range sensors {
			spec, err := sensorSpec(name, cfg)
			if err != nil {
				return err
			}
			if _, err := s.AddSensor(spec); err != nil {
				return fmt.Errorf("add sensor %s: %w", name, err)
			}
			frames = append(frames, storage.Frame{UUID: spec.UUID, Type: spec.Type, Obs: &sensor.Observation{}})
		}
	}

	ids := dropObjects(s, numObjects, dropHeight)
	if len(ids) < numObjects {
		log.Warn(ctx, "fewer objects added than requested",
			logging.Int("requested", numObjects), logging.Int("added", len(ids)))
	}

	sceneID := s.ActiveSceneID()
	world, _ := s.PhysicsManager().(*physics.World)
	runMetrics := metrics.Default()
	var trajectory []storage.Sample
	record := func(t float64) {
		if world != nil {
			for _, m := range runMetrics {
				m.Observe(world, t)
			}
		}
		for _, id := range s.ExistingObjectIDs(sceneID) {
			p := s.Translation(id, sceneID)
			trajectory = append(trajectory, storage.Sample{Time: t, ObjectID: id, Position: [3]float32{p.X, p.Y, p.Z}})
		}
	}
	record(s.WorldTime())

	var renderer *tui.LiveRenderer
	if live {
		renderer = tui.NewLiveRenderer(s, os.Stdout, frameRate, 5)
		renderer.Start()
	}

	steps := 0
	every := max(sampleEvery, 1)
	start := time.Now()
	err = s.Run(ctx, dt, duration, func(t float64) bool {
		steps++
		if steps%every == 0 {
			record(t)
		}
		if renderer != nil {
			return renderer.OnStep(t)
		}
		return true
	})
	if renderer != nil {
		renderer.Stop()
	}
	if err != nil {
		return err
	}
	elapsed := time.Since(start)

	for _, f := range frames {
		if err := s.Observe(f.UUID, f.Obs); err != nil {
			return fmt.Errorf("observe %s: %w", f.UUID, err)
		}
	}

	rec := &storage.Recording{
		Config:      cfg,
		Seed:        s.CurrentSeed(),
		Dt:          dt,
		Duration:    duration,
		WorldTime:   s.WorldTime(),
		ImageFormat: imageFormat,
		Frames:      frames,
		Trajectory:  trajectory,
		Metrics: map[string]float64{
			"steps":        float64(steps),
			"objects":      float64(len(s.ExistingObjectIDs(sceneID))),
			"scene_graphs": float64(len(s.SceneIDs())),
			"library":      float64(s.PhysicsObjectLibrarySize()),
			"wall_seconds": elapsed.Seconds(),
		},
	}
	if world != nil {
		for name, v := range metrics.Values(runMetrics) {
			rec.Metrics[name] = v
		}
	}
	if sem := s.SemanticScene(); sem != nil {
		_, _, objects, _ := sem.Counts()
		rec.Metrics["semantic_objects"] = float64(objects)
	}

	st := storage.New(dataDir)
	if err := st.Init(); err != nil {
		return err
	}
	runID, err := st.Save(rec)
	if err != nil {
		return err
	}

	fmt.Printf("run: %s\n", runID)
	fmt.Printf("world time: %.3fs in %d steps (%s)\n", s.WorldTime(), steps, elapsed.Round(time.Millisecond))
	fmt.Printf("objects: %d, frames: %d\n", len(s.ExistingObjectIDs(sceneID)), len(frames))
	return nil
}

func listRuns(cmd *cobra.Command, args []string) error {
	st := storage.New(dataDir)
	runs, err := st.List()
	if err != nil {
		return err
	}
	if len(runs) == 0 {
		fmt.Println("no runs found")
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tSCENE\tWORLD TIME\tFRAMES\tCREATED")
	for _, r := range runs {
		fmt.Fprintf(w, "%s\t%s\t%.3fs\t%d\t%s\n", r.ID, r.Scene, r.WorldTime, len(r.Frames), r.Timestamp.Format(time.DateTime))
	}
	return w.Flush()
}

func plotRun(cmd *cobra.Command, args []string) error {
	st := storage.New(dataDir)
	samples, err := st.LoadTrajectory(args[0])
	if err != nil {
		return err
	}

	series := make(map[int][]float64)
	for _, smp := range samples {
		series[smp.ObjectID] = append(series[smp.ObjectID], float64(smp.Position[1]))
	}
	if len(series) == 0 {
		fmt.Println("run has no object trajectory")
		return nil
	}

	ids := make([]int, 0, len(series))
	for id := range series {
		ids = append(ids, id)
	}
	sort.Ints(ids)
	for _, id := range ids {
		ys := series[id]
		if len(ys) < 2 {
			continue
		}
		graph := asciigraph.Plot(ys,
			asciigraph.Height(10),
			asciigraph.Width(80),
			asciigraph.Caption(fmt.Sprintf("object %d height", id)),
		)
		fmt.Println(graph)
		fmt.Println()
	}
	return nil
}

func exportRun(cmd *cobra.Command, args []string) error {
	st := storage.New(dataDir)
	meta, err := st.Load(args[0])
	if err != nil {
		return err
	}
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(meta)
}

func exportRunJSON(cmd *cobra.Command, args []string) error {
	st := storage.New(dataDir)
	meta, err := st.Load(args[0])
	if err != nil {
		return err
	}
	cfg, err := st.LoadConfig(args[0])
	if err != nil {
		return err
	}
	trajectory, err := st.LoadTrajectory(args[0])
	if err != nil {
		return err
	}
	return storage.ExportJSON(os.Stdout, &storage.Recording{
		Config:     cfg,
		Seed:       meta.Seed,
		Dt:         meta.Dt,
		Duration:   meta.Duration,
		WorldTime:  meta.WorldTime,
		Trajectory: trajectory,
		Metrics:    meta.Metrics,
	})
}

func exportSVG(cmd *cobra.Command, args []string) error {
	st := storage.New(dataDir)
	samples, err := st.LoadTrajectory(args[0])
	if err != nil {
		return err
	}
	out := export.TrajectoriesToSVG(samples, svgSize, svgSize)
	if out == "" {
		return fmt.Errorf("run %s has no object paths to draw", args[0])
	}
	if svgOut == "" {
		fmt.Println(out)
		return nil
	}
	if err := os.WriteFile(svgOut, []byte(out), 0644); err != nil {
		return err
	}
	fmt.Printf("wrote %s\n", svgOut)
	return nil
}

func showDepth(cmd *cobra.Command, args []string) error {
	st := storage.New(dataDir)
	depth, w, h, err := st.LoadDepth(args[0], args[1])
	if err != nil {
		return err
	}
	fmt.Print(viz.DepthHeatmap(depth, w, h, 80, 0, viz.CurrentTheme))
	return nil
}

func runLive(cmd *cobra.Command, args []string) error {
	s, _, cleanup, err := openSimulator(cmd, args)
	if err != nil {
		return err
	}
	defer cleanup()
	return viz.Run(s, dt, s.Config().Scene.ID)
}

func listPresets(cmd *cobra.Command, args []string) error {
	if len(args) == 0 {
		fmt.Println("datasets:")
		for _, ds := range config.ListDatasets() {
			fmt.Printf("  %s: %s\n", ds, strings.Join(config.ListPresets(ds), ", "))
		}
		return nil
	}
	names := config.ListPresets(args[0])
	if names == nil {
		return fmt.Errorf("unknown dataset: %s", args[0])
	}
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "PRESET\tSCENE\tSIZE\tPHYSICS")
	for _, name := range names {
		p := config.GetPreset(args[0], name)
		fmt.Fprintf(w, "%s/%s\t%s\t%dx%d\t%t\n", args[0], name, p.Scene.ID, p.Width, p.Height, p.EnablePhysics)
	}
	return w.Flush()
}

func printSemantic(cmd *cobra.Command, args []string) error {
	s, _, cleanup, err := openSimulator(cmd, args)
	if err != nil {
		return err
	}
	defer cleanup()

	sem := s.SemanticScene()
	if sem == nil || sem.Empty() {
		fmt.Println("scene has no semantic annotations")
		return nil
	}
	levels, regions, objects, categories := sem.Counts()
	fmt.Printf("levels: %d, regions: %d, objects: %d, categories: %d\n\n", levels, regions, objects, categories)

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tKIND\tCATEGORY\tCENTER")
	for _, r := range sem.Regions {
		c := r.AABB.Center()
		fmt.Fprintf(w, "%s\tregion\t%s\t%.2f,%.2f,%.2f\n", r.ID(), categoryName(r.Category), c.X, c.Y, c.Z)
	}
	for _, o := range sem.Objects {
		c := o.OBB.Center
		fmt.Fprintf(w, "%s\tobject\t%s\t%.2f,%.2f,%.2f\n", o.ID(), categoryName(o.Category), c.X, c.Y, c.Z)
	}
	return w.Flush()
}

func categoryName(c interface{ Name(string) string }) string {
	if c == nil {
		return "-"
	}
	return c.Name("")
}

func listActions(cmd *cobra.Command, args []string) error {
	ctrl := controls.NewObjectControls(0)
	fmt.Println("actions:")
	for _, name := range ctrl.Names() {
		fmt.Printf("  %s\n", name)
	}
	fmt.Println("noisy actions:")
	for _, name := range controls.NoisyNames() {
		fmt.Printf("  %s\n", name)
	}
	fmt.Println("noise models:")
	for _, robot := range controls.Robots() {
		fmt.Printf("  %s\n", robot)
	}
	return nil
}

func runEnsemble(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	log := logging.NewFromEnv()
	cfg, err := resolveConfig(cmd, args)
	if err != nil {
		return err
	}

	e, err := sim.NewEnsemble(ctx, cfg, members, seed, func(i int) []sim.Option {
		return []sim.Option{sim.WithLogger(log.With(logging.Int("member", i)))}
	})
	if err != nil {
		return err
	}
	defer e.Close()

	start := time.Now()
	times, err := e.Run(ctx, dt, duration, func(_ int, s *sim.Simulator) {
		dropObjects(s, memberObjects, dropHeight)
	})
	if err != nil {
		return err
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "MEMBER\tSEED\tWORLD TIME\tOBJECTS\tMEAN HEIGHT")
	for i, s := range e.Simulators() {
		sceneID := s.ActiveSceneID()
		ids := s.ExistingObjectIDs(sceneID)
		mean := 0.0
		for _, id := range ids {
			mean += float64(s.Translation(id, sceneID).Y)
		}
		if len(ids) > 0 {
			mean /= float64(len(ids))
		}
		fmt.Fprintf(w, "%d\t%d\t%.3fs\t%d\t%.3f\n", i, s.CurrentSeed(), times[i], len(ids), mean)
	}
	if err := w.Flush(); err != nil {
		return err
	}
	fmt.Printf("\n%d members in %s\n", members, time.Since(start).Round(time.Millisecond))
	return nil
}

func runScenario(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	log := logging.NewFromEnv()
	sc, err := automation.LoadScenario(args[0])
	if err != nil {
		return err
	}

	shutdown, err := observability.InitTracing(ctx, observability.TracingConfigFromEnv(), log)
	if err != nil {
		return fmt.Errorf("tracing: %w", err)
	}
	defer observability.ShutdownWithTimeout(context.WithoutCancel(ctx), shutdown, log)

	s, results, err := automation.RunScenario(ctx, sc, sim.WithLogger(log), sim.WithTracer(observability.Tracer()))
	if s != nil {
		defer s.Close()
	}

	fmt.Printf("scenario: %s\n", sc.Name)
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "STEP\tSCENE\tGRAPH\tREUSED\tOBJECTS\tWORLD TIME")
	for _, r := range results {
		fmt.Fprintf(w, "%d\t%s\t%d/%d\t%t\t%d\t%.3fs\n", r.Index+1, r.Scene, r.SceneID, r.SceneGraphs, r.Reused, r.Objects, r.WorldTime)
	}
	if ferr := w.Flush(); err == nil {
		err = ferr
	}
	return err
}

func serveMetrics(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	if dt <= 0 {
		return fmt.Errorf("dt must be positive, got %f", dt)
	}
	reg := prometheus.NewRegistry()
	collector, err := observability.NewSimulatorCollector(reg)
	if err != nil {
		return err
	}

	s, log, cleanup, err := openSimulator(cmd, args, sim.WithMetrics(collector))
	if err != nil {
		return err
	}
	defer cleanup()
	dropObjects(s, 1, dropHeight)

	mux := http.NewServeMux()
	mux.Handle("/metrics", collector.Handler())
	srv := &http.Server{Addr: metricAddr, Handler: mux, ReadHeaderTimeout: 5 * time.Second}
	serveErr := make(chan error, 1)
	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serveErr <- err
		}
		close(serveErr)
	}()
	log.Info(ctx, "serving metrics", logging.String("addr", metricAddr))

	ticker := time.NewTicker(time.Duration(dt * float64(time.Second)))
	defer ticker.Stop()
loop:
	for {
		select {
		case <-ctx.Done():
			break loop
		case err := <-serveErr:
			return err
		case <-ticker.C:
			if t := s.StepWorld(dt); serveFor > 0 && t >= serveFor {
				break loop
			}
		}
	}

	shutdownCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), 5*time.Second)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}

package viz

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"cogentcore.org/core/math32"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/guptarohit/asciigraph"
	"github.com/mohammed-7/habitat-sim/internal/controls"
	"github.com/mohammed-7/habitat-sim/internal/scene"
	"github.com/mohammed-7/habitat-sim/internal/sensor"
	"github.com/mohammed-7/habitat-sim/internal/sim"
)

const (
	width           = 72
	height          = 22
	historyCapacity = 600
	trailCapacity   = 120

	// DepthSensorUUID is the sensor the depth view observes through.
	DepthSensorUUID = "viz_depth"
)

type ViewMode int

const (
	ViewTop ViewMode = iota
	View3D
	ViewDepth
)

func (v ViewMode) String() string {
	switch v {
	case View3D:
		return "3d"
	case ViewDepth:
		return "depth"
	default:
		return "top"
	}
}

type TickMsg time.Time

// Model steps a simulator and draws it. The agent node is the depth sensor's
// node and is driven by the movement keys.
type Model struct {
	sim     *sim.Simulator
	title   string
	dt      float64
	running bool
	mode    ViewMode

	canvas *Canvas
	camera *Camera
	bounds math32.Box3

	agent   *scene.Node
	noisy   bool
	obs     sensor.Observation
	hasObs  bool
	trails  map[int][]math32.Vector3
	heights []float64

	status   string
	lastErr  error
	showHelp bool
}

// NewModel prepares a live view of s. When s has a renderer a depth sensor is
// attached to the active scene.
func NewModel(s *sim.Simulator, dt float64, title string) (Model, error) {
	g, err := s.ActiveSceneGraph()
	if err != nil {
		return Model{}, err
	}
	m := Model{
		sim:     s,
		title:   title,
		dt:      dt,
		running: true,
		canvas:  NewCanvas(width, height),
		camera:  NewCamera(),
		bounds:  sceneBounds(g),
		trails:  make(map[int][]math32.Vector3),
		heights: make([]float64, 0, historyCapacity),
	}
	m.camera.Target = m.bounds.Center()
	m.camera.Distance = max(m.bounds.Size().Length(), 1)

	if s.Renderer() != nil {
		spec := sensor.DefaultSpec()
		spec.UUID = DepthSensorUUID
		spec.Type = sensor.TypeDepth
		spec.Resolution = [2]int{2 * height, width}
		spec.Channels = 1
		sn, err := s.AddSensor(spec)
		if err != nil {
			return Model{}, fmt.Errorf("attach depth sensor: %w", err)
		}
		m.agent = sn.Node()
	}
	return m, nil
}

// sceneBounds is the world-space union of every drawable in g, padded so
// objects on the edge stay visible.
func sceneBounds(g *scene.SceneGraph) math32.Box3 {
	b := math32.B3Empty()
	g.Drawables().Each(func(d *scene.Drawable) {
		m := d.Node().AbsoluteTransformation()
		b.ExpandByBox(d.Bounds.MulMatrix4(&m))
	})
	if b.IsEmpty() {
		return math32.B3(-5, 0, -5, 5, 3, 5)
	}
	b.ExpandByScalar(0.5)
	return b
}

func tick() tea.Cmd {
	return tea.Tick(time.Second/60, func(t time.Time) tea.Msg { return TickMsg(t) })
}

func (m Model) Init() tea.Cmd { return tick() }

var moveKeys = map[string]string{
	"w": "moveForward",
	"s": "moveBackward",
	"a": "turnLeft",
	"d": "turnRight",
	"e": "moveUp",
	"c": "moveDown",
}

var noisyKeys = map[string]string{
	"w": "pyrobotNoisyMoveForward",
	"s": "pyrobotNoisyMoveBackward",
	"a": "pyrobotNoisyTurnLeft",
	"d": "pyrobotNoisyTurnRight",
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch key := msg.String(); key {
		case "q", "ctrl+c":
			return m, tea.Quit
		case " ":
			m.running = !m.running
		case "r":
			m.reset()
		case "o":
			m.addObject()
		case "f":
			m.kick()
		case "tab":
			m.mode = (m.mode + 1) % 3
		case "n":
			m.noisy = !m.noisy
		case "t":
			NextTheme()
		case "?":
			m.showHelp = !m.showHelp
		case "left":
			m.camera.RotateY(0.1)
		case "right":
			m.camera.RotateY(-0.1)
		case "up":
			m.camera.RotateX(0.1)
		case "down":
			m.camera.RotateX(-0.1)
		case "+", "=":
			m.camera.ZoomIn()
		case "-", "_":
			m.camera.ZoomOut()
		default:
			m.move(key)
		}
		m.observe()
	case TickMsg:
		if m.running {
			m.step()
		}
		return m, tick()
	}
	return m, nil
}

func (m *Model) move(key string) {
	if m.agent == nil {
		return
	}
	ctrl := m.sim.Controls()
	if m.noisy {
		if name, ok := noisyKeys[key]; ok {
			amount := float32(0.25)
			if strings.Contains(name, "Turn") {
				amount = 10
			}
			m.lastErr = ctrl.NoisyAction(m.agent, name, controls.DefaultNoisySpec(amount))
			return
		}
	}
	name, ok := moveKeys[key]
	if !ok {
		return
	}
	amount := float32(0.25)
	if strings.HasPrefix(name, "turn") {
		amount = 10
	}
	m.lastErr = ctrl.Action(m.agent, name, amount)
}

// addObject drops library object 0 above the scene center.
func (m *Model) addObject() {
	if m.sim.PhysicsObjectLibrarySize() == 0 {
		m.status = "no physics object library"
		return
	}
	id := m.sim.AddObject(0, m.sim.ActiveSceneID())
	if id == sim.IDUndefined {
		m.status = "add object failed"
		return
	}
	c := m.bounds.Center()
	c.Y = m.bounds.Max.Y
	m.sim.SetTranslation(c, id, m.sim.ActiveSceneID())
	m.status = fmt.Sprintf("added object %d", id)
}

// kick pushes every object upward.
func (m *Model) kick() {
	sceneID := m.sim.ActiveSceneID()
	for _, id := range m.sim.ExistingObjectIDs(sceneID) {
		m.sim.ApplyForce(math32.Vec3(0, 400, 0), math32.Vector3{}, id, sceneID)
	}
}

func (m *Model) step() {
	m.sim.StepWorld(m.dt)
	sceneID := m.sim.ActiveSceneID()
	ids := m.sim.ExistingObjectIDs(sceneID)

	mean := 0.0
	for _, id := range ids {
		p := m.sim.Translation(id, sceneID)
		trail := append(m.trails[id], p)
		if len(trail) > trailCapacity {
			trail = trail[1:]
		}
		m.trails[id] = trail
		mean += float64(p.Y)
	}
	for id := range m.trails {
		if !containsID(ids, id) {
			delete(m.trails, id)
		}
	}
	if len(ids) > 0 {
		m.heights = append(m.heights, mean/float64(len(ids)))
		if len(m.heights) > historyCapacity {
			m.heights = m.heights[1:]
		}
	}
	if m.mode == ViewDepth {
		m.observe()
	}
}

func containsID(ids []int, id int) bool {
	i := sort.SearchInts(ids, id)
	return i < len(ids) && ids[i] == id
}

func (m *Model) observe() {
	if m.agent == nil {
		return
	}
	if err := m.sim.Observe(DepthSensorUUID, &m.obs); err != nil {
		m.lastErr = err
		m.hasObs = false
		return
	}
	m.hasObs = true
}

// reset rewinds world time and clears the plotted history. Poses are kept.
func (m *Model) reset() {
	m.sim.Reset()
	m.trails = make(map[int][]math32.Vector3)
	m.heights = m.heights[:0]
	m.lastErr = nil
	m.status = "reset"
}

func (m *Model) draw() string {
	m.canvas.Clear()
	g, err := m.sim.ActiveSceneGraph()
	if err != nil {
		return err.Error()
	}
	switch m.mode {
	case View3D:
		Render3D(m.canvas, SceneWireframe(g), m.camera)
	case ViewDepth:
		if !m.hasObs || len(m.obs.Shape) < 2 {
			return "no depth observation"
		}
		return DepthHeatmap(m.obs.Depth, m.obs.Shape[1], m.obs.Shape[0], width, 0, CurrentTheme)
	default:
		vp := NewViewport(m.canvas, m.bounds)
		g.Drawables().Each(func(d *scene.Drawable) {
			mat := d.Node().AbsoluteTransformation()
			vp.Footprint(d.Bounds.MulMatrix4(&mat))
		})
		for _, trail := range m.trails {
			vp.Path(trail)
		}
		if m.agent != nil {
			vp.Point(m.agent.AbsoluteTranslation())
		}
	}
	return m.canvas.String()
}

func (m Model) View() string {
	canvasView := canvasStyle.Render(m.draw())

	var s strings.Builder
	s.WriteString(headerStyle.Render(GradientText(strings.ToUpper(m.title), CurrentTheme.Primary, CurrentTheme.Secondary)) + "\n")
	switch {
	case m.lastErr != nil:
		s.WriteString(StatusError.Render("ERROR") + " " + m.lastErr.Error() + "\n\n")
	case m.running:
		s.WriteString(StatusRunning.Render("RUNNING") + "\n\n")
	default:
		s.WriteString(StatusPaused.Render("PAUSED") + "\n\n")
	}

	if len(m.heights) > 1 {
		chart := asciigraph.Plot(m.heights, asciigraph.Height(4), asciigraph.Width(30), asciigraph.Caption("mean height"))
		s.WriteString(graphStyle.Render(chart) + "\n\n")
	}

	sceneID := m.sim.ActiveSceneID()
	row := func(label, value string) {
		s.WriteString(labelStyle.Render(label) + valueStyle.Render(value) + "\n")
	}
	row("Time", fmt.Sprintf("%.2fs", m.sim.WorldTime()))
	row("Scene", fmt.Sprintf("%d of %d", sceneID, len(m.sim.SceneIDs())))
	row("Objects", fmt.Sprintf("%d", len(m.sim.ExistingObjectIDs(sceneID))))
	row("Library", fmt.Sprintf("%d", m.sim.PhysicsObjectLibrarySize()))
	row("View", m.mode.String())
	row("Actuation", map[bool]string{false: "exact", true: "noisy"}[m.noisy])
	if sem := m.sim.SemanticScene(); sem != nil && !sem.Empty() {
		lv, rg, ob, _ := sem.Counts()
		row("Semantic", fmt.Sprintf("%d/%d/%d", lv, rg, ob))
	}
	if m.status != "" {
		s.WriteString("\n" + valueStyle.Render(m.status) + "\n")
	}
	s.WriteString(helpStyle.Render("SP:Pause R:Reset Q:Quit TAB:View\nO:Add F:Kick WASD:Move N:Noise ?:Help"))

	mainView := lipgloss.JoinHorizontal(lipgloss.Top, canvasView, statsStyle.Render(s.String()))
	if m.showHelp {
		return helpText + "\n" + mainView
	}
	return mainView
}

const helpText = `
  Space      pause or resume stepping
  R          reset world time
  O          drop a library object
  F          push every object upward
  W/S        move the agent forward or back
  A/D        turn the agent
  E/C        move the agent up or down
  N          toggle noisy actuation
  Tab        cycle top, 3d and depth views
  Arrows +-  orbit and zoom the 3d view
  T          cycle themes
  Q          quit
`

// Run opens the live view full screen until the user quits.
func Run(s *sim.Simulator, dt float64, title string) error {
	m, err := NewModel(s, dt, title)
	if err != nil {
		return err
	}
	_, err = tea.NewProgram(m, tea.WithAltScreen()).Run()
	return err
}

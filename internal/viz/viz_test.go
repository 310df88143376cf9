package viz

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"cogentcore.org/core/math32"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/mohammed-7/habitat-sim/internal/config"
	"github.com/mohammed-7/habitat-sim/internal/gfx"
	"github.com/mohammed-7/habitat-sim/internal/scene"
	"github.com/mohammed-7/habitat-sim/internal/sim"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCanvasSetUnset(t *testing.T) {
	c := NewCanvas(2, 1)
	w, h := c.Dots()
	assert.Equal(t, 4, w)
	assert.Equal(t, 4, h)

	c.Set(0, 0)
	c.Set(3, 3)
	assert.True(t, c.IsSet(0, 0))
	assert.Equal(t, rune(0x2801), c.Grid[0][0])
	assert.Equal(t, rune(0x2880), c.Grid[0][1])

	c.Unset(0, 0)
	assert.False(t, c.IsSet(0, 0))
	assert.Equal(t, rune(brailleBlank), c.Grid[0][0])

	// out of range is ignored
	c.Set(-1, 0)
	c.Set(100, 100)
	assert.False(t, c.IsSet(100, 100))

	c.Clear()
	assert.Equal(t, string([]rune{brailleBlank, brailleBlank})+"\n", c.String())
}

func TestCanvasDrawLine(t *testing.T) {
	c := NewCanvas(4, 1)
	c.DrawLine(0, 0, 7, 0)
	for x := 0; x < 8; x++ {
		assert.True(t, c.IsSet(x, 0), "dot %d", x)
	}
	assert.False(t, c.IsSet(0, 1))
}

func TestViewportMapsCorners(t *testing.T) {
	c := NewCanvas(10, 5)
	vp := NewViewport(c, math32.B3(-1, 0, -1, 1, 1, 1))

	x, y := vp.Dot(math32.Vec3(-1, 0, -1))
	assert.Equal(t, 0, x)
	assert.Equal(t, 0, y)

	x, y = vp.Dot(math32.Vec3(1, 0, 1))
	assert.Equal(t, 19, x)
	assert.Equal(t, 19, y)

	// height is ignored
	x2, y2 := vp.Dot(math32.Vec3(1, 5, 1))
	assert.Equal(t, x, x2)
	assert.Equal(t, y, y2)

	vp.Footprint(math32.B3(-1, 0, -1, 1, 1, 1))
	assert.True(t, c.IsSet(0, 0))
	assert.True(t, c.IsSet(19, 19))
	assert.False(t, c.IsSet(10, 10))
}

func TestRender3DDrawsScene(t *testing.T) {
	g := scene.NewSceneGraph()
	n := g.RootNode().CreateChild()
	scene.NewDrawable(n, "box.glb", math32.B3(-1, -1, -1, 1, 1, 1), g.Drawables())

	w := SceneWireframe(g)
	assert.Len(t, w.Edges, 12)

	c := NewCanvas(40, 20)
	cam := NewCamera()
	cam.Distance = 6
	Render3D(c, w, cam)
	assert.NotEqual(t, NewCanvas(40, 20).String(), c.String())

	// a camera looking away draws nothing
	c.Clear()
	cam.Target = math32.Vec3(0, 0, -100)
	cam.Distance = 1
	Render3D(c, w, cam)
	assert.Equal(t, NewCanvas(40, 20).String(), c.String())
}

func TestCameraCenterProjectsToMiddle(t *testing.T) {
	cam := NewCamera()
	cam.Pitch = 0
	x, y, d, ok := cam.Project(math32.Vector3{}, 80, 40)
	require.True(t, ok)
	assert.Equal(t, 40, x)
	assert.Equal(t, 20, y)
	assert.InDelta(t, cam.Distance, d, 1e-5)
}

func TestDepthHeatmap(t *testing.T) {
	depth := []float32{
		0, 1, 2, 4,
		0, 1, 2, 4,
	}
	out := DepthHeatmap(depth, 4, 2, 4, 0, ThemeOcean)
	lines := strings.Split(strings.TrimSuffix(out, "\n"), "\n")
	assert.Len(t, lines, 1)
	assert.Equal(t, 4, strings.Count(out, "▀"))

	assert.Equal(t, "", DepthHeatmap(depth[:3], 4, 2, 4, 0, ThemeOcean))
	assert.Equal(t, "", DepthHeatmap(depth, 4, 2, 0, 0, ThemeOcean))
}

func TestDepthColor(t *testing.T) {
	th := ThemeOcean
	assert.Equal(t, th.Background, depthColor(0, 10, th))
	assert.Equal(t, th.Near, depthColor(1e-9, 10, th))
	assert.Equal(t, th.Far, depthColor(10, 10, th))
	assert.Equal(t, th.Far, depthColor(20, 10, th), "clamped past far")
}

func TestThemes(t *testing.T) {
	defer SetTheme(CurrentTheme.Name)

	assert.Equal(t, ThemeCyberpunk, GetTheme("missing"))
	SetTheme("retro")
	assert.Equal(t, "retro", CurrentTheme.Name)
	NextTheme()
	assert.Equal(t, "ocean", CurrentTheme.Name)
	NextTheme()
	assert.Equal(t, "cyberpunk", CurrentTheme.Name)
}

func TestSparkline(t *testing.T) {
	assert.Equal(t, "────", Sparkline(nil, 4))
	out := Sparkline([]float64{0, 1, 2, 3}, 4)
	assert.Contains(t, out, "▁")
	assert.Contains(t, out, "█")
}

func TestHexRoundTrip(t *testing.T) {
	r, g, b := parseHex("#0a80ff")
	assert.Equal(t, [3]int{10, 128, 255}, [3]int{r, g, b})
	assert.Equal(t, "#0a80ff", hexColor(r, g, b))
	assert.Equal(t, "#ff0000", hexColor(300, -1, 0))
}

const roomScene = `name: room
bounds: [-5, 0, -5, 5, 3, 5]
`

const physicsConfig = `timestep: 0.005
objects:
  - name: cube
    mesh: cube.glb
    mass: 1
    half_extents: [0.25, 0.25, 0.25]
`

func newLiveModel(t *testing.T) (Model, *sim.Simulator) {
	t.Helper()
	dir := t.TempDir()
	scenePath := filepath.Join(dir, "room.scene.yaml")
	physPath := filepath.Join(dir, "phys.yaml")
	require.NoError(t, os.WriteFile(scenePath, []byte(roomScene), 0644))
	require.NoError(t, os.WriteFile(physPath, []byte(physicsConfig), 0644))

	cfg := config.DefaultConfig()
	cfg.Scene.ID = scenePath
	cfg.Width, cfg.Height = 64, 48
	cfg.EnablePhysics = true
	cfg.PhysicsConfigFile = physPath

	s, err := sim.New(context.Background(), cfg)
	require.NoError(t, err)
	t.Cleanup(func() {
		s.Close()
		gfx.ShutdownContexts()
	})

	m, err := NewModel(s, sim.DefaultStepDt, "room")
	require.NoError(t, err)
	return m, s
}

func key(r rune) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}}
}

func update(m Model, msg tea.Msg) Model {
	next, _ := m.Update(msg)
	return next.(Model)
}

func TestLiveModelSteps(t *testing.T) {
	m, s := newLiveModel(t)
	require.NotNil(t, m.agent, "renderer present, depth sensor attached")
	_, ok := s.Sensors().Get(DepthSensorUUID)
	assert.True(t, ok)

	m = update(m, key('o'))
	require.Len(t, s.ExistingObjectIDs(s.ActiveSceneID()), 1)

	for i := 0; i < 30; i++ {
		m = update(m, TickMsg{})
	}
	assert.InDelta(t, 0.5, s.WorldTime(), 1e-6)
	assert.Len(t, m.heights, 30)
	assert.Len(t, m.trails, 1)
	assert.Less(t, m.heights[29], m.heights[0], "object falls")

	view := m.View()
	assert.Contains(t, view, "Objects")
	assert.Contains(t, view, "RUNNING")
	assert.Contains(t, view, "mean height")
}

func TestLiveModelPauseAndReset(t *testing.T) {
	m, s := newLiveModel(t)
	m = update(m, tea.KeyMsg{Type: tea.KeySpace})
	assert.False(t, m.running)
	m = update(m, TickMsg{})
	assert.Equal(t, 0.0, s.WorldTime())
	assert.Contains(t, m.View(), "PAUSED")

	m = update(m, tea.KeyMsg{Type: tea.KeySpace})
	m = update(m, key('o'))
	m = update(m, TickMsg{})
	assert.Greater(t, s.WorldTime(), 0.0)

	m = update(m, key('r'))
	assert.Equal(t, 0.0, s.WorldTime())
	assert.Empty(t, m.heights)
	assert.Len(t, s.ExistingObjectIDs(s.ActiveSceneID()), 1, "reset keeps objects")
}

func TestLiveModelMovesAgent(t *testing.T) {
	m, _ := newLiveModel(t)
	start := m.agent.AbsoluteTranslation()

	m = update(m, key('w'))
	require.NoError(t, m.lastErr)
	moved := m.agent.AbsoluteTranslation()
	assert.InDelta(t, start.Z-0.25, moved.Z, 1e-5)

	m = update(m, key('n'))
	assert.True(t, m.noisy)
	m = update(m, key('w'))
	require.NoError(t, m.lastErr)
	assert.NotEqual(t, moved, m.agent.AbsoluteTranslation())
}

func TestLiveModelViews(t *testing.T) {
	m, _ := newLiveModel(t)
	tab := tea.KeyMsg{Type: tea.KeyTab}

	assert.Equal(t, ViewTop, m.mode)
	m = update(m, tab)
	assert.Equal(t, View3D, m.mode)
	assert.NotEmpty(t, m.View())

	m = update(m, tab)
	assert.Equal(t, ViewDepth, m.mode)
	require.NoError(t, m.lastErr)
	assert.True(t, m.hasObs, "key presses refresh the observation")
	assert.Contains(t, m.View(), "▀")

	m = update(m, tab)
	assert.Equal(t, ViewTop, m.mode)
}

func TestLiveModelQuits(t *testing.T) {
	m, _ := newLiveModel(t)
	_, cmd := m.Update(key('q'))
	require.NotNil(t, cmd)
	assert.Equal(t, tea.Quit(), cmd())
}

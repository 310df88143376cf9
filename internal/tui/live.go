package tui

import (
	"fmt"
	"io"
	"strings"
	"time"

	"cogentcore.org/core/math32"
	"github.com/mohammed-7/habitat-sim/internal/sim"
)

const (
	width       = 70
	height      = 20
	clearScreen = "\033[2J\033[H"
	hideCursor  = "\033[?25l"
	showCursor  = "\033[?25h"
)

// LiveRenderer prints a top-down view of a simulator's objects at most
// frameRate times a second. It is meant as the callback of sim.Run.
type LiveRenderer struct {
	sim       *sim.Simulator
	out       io.Writer
	frameRate int
	lastFrame time.Time
	canvas    [][]rune
	area      math32.Box2
	trail     []struct{ x, y int }
	frames    int
}

// NewLiveRenderer draws the XZ square [-extent, extent] around the origin.
func NewLiveRenderer(s *sim.Simulator, out io.Writer, frameRate int, extent float32) *LiveRenderer {
	canvas := make([][]rune, height)
	for i := range canvas {
		canvas[i] = make([]rune, width)
	}
	if frameRate <= 0 {
		frameRate = 30
	}
	return &LiveRenderer{
		sim:       s,
		out:       out,
		frameRate: frameRate,
		canvas:    canvas,
		area:      math32.B2(-extent, -extent, extent, extent),
		trail:     make([]struct{ x, y int }, 0, 50),
	}
}

// OnStep redraws when a frame is due. It always asks the run to continue.
func (r *LiveRenderer) OnStep(t float64) bool {
	if time.Since(r.lastFrame) < time.Second/time.Duration(r.frameRate) {
		return true
	}
	r.lastFrame = time.Now()
	r.clear()
	r.drawObjects()
	r.render(t)
	return true
}

func (r *LiveRenderer) Frames() int { return r.frames }

func (r *LiveRenderer) clear() {
	for y := range r.canvas {
		for x := range r.canvas[y] {
			r.canvas[y][x] = ' '
		}
	}
}

func (r *LiveRenderer) set(x, y int, c rune) {
	if x >= 0 && x < width && y >= 0 && y < height {
		r.canvas[y][x] = c
	}
}

// cell maps world XZ onto the character grid. -Z is up.
func (r *LiveRenderer) cell(p math32.Vector3) (int, int) {
	size := r.area.Size()
	fx := (p.X - r.area.Min.X) / size.X
	fz := (p.Z - r.area.Min.Y) / size.Y
	return int(fx * float32(width-1)), int(fz * float32(height-1))
}

func (r *LiveRenderer) drawObjects() {
	sceneID := r.sim.ActiveSceneID()
	ids := r.sim.ExistingObjectIDs(sceneID)
	for i, pt := range r.trail {
		if i < len(r.trail)/2 {
			r.set(pt.x, pt.y, '.')
		} else {
			r.set(pt.x, pt.y, 'o')
		}
	}
	for _, id := range ids {
		x, y := r.cell(r.sim.Translation(id, sceneID))
		r.trail = append(r.trail, struct{ x, y int }{x, y})
		if len(r.trail) > 40 {
			r.trail = r.trail[1:]
		}
		r.set(x, y, 'O')
	}
	if len(ids) == 0 {
		r.set(width/2, height/2, '+')
	}
}

func (r *LiveRenderer) render(t float64) {
	var b strings.Builder
	b.WriteString(clearScreen)
	b.WriteString(fmt.Sprintf("  scene %d  t=%.2fs\n", r.sim.ActiveSceneID(), t))
	b.WriteString("  " + strings.Repeat("-", width) + "\n")

	for _, row := range r.canvas {
		b.WriteString("  ")
		b.WriteString(string(row))
		b.WriteString("\n")
	}

	b.WriteString("  " + strings.Repeat("-", width) + "\n")

	sceneID := r.sim.ActiveSceneID()
	info := "  "
	for i, id := range r.sim.ExistingObjectIDs(sceneID) {
		if i >= 4 {
			break
		}
		p := r.sim.Translation(id, sceneID)
		info += fmt.Sprintf("#%d=(%.2f %.2f %.2f) ", id, p.X, p.Y, p.Z)
	}
	b.WriteString(info + "\n")

	fmt.Fprint(r.out, b.String())
	r.frames++
}

func (r *LiveRenderer) Start() { fmt.Fprint(r.out, hideCursor) }
func (r *LiveRenderer) Stop()  { fmt.Fprint(r.out, showCursor) }

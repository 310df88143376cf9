package viz

import (
	"strings"

	"cogentcore.org/core/math32"
)

// Braille Patterns: 2x4 dots
// 1 4
// 2 5
// 3 6
// 7 8
//
// Unicode offset 0x2800
var pixelMap = [4][2]int{
	{0x1, 0x8},
	{0x2, 0x10},
	{0x4, 0x20},
	{0x40, 0x80},
}

const brailleBlank = 0x2800

type Canvas struct {
	Width, Height int
	Grid          [][]rune
}

func NewCanvas(w, h int) *Canvas {
	c := &Canvas{
		Width:  w,
		Height: h,
		Grid:   make([][]rune, h),
	}
	for i := range c.Grid {
		c.Grid[i] = make([]rune, w)
	}
	c.Clear()
	return c
}

// Dots is the canvas size in sub-pixels.
func (c *Canvas) Dots() (int, int) { return c.Width * 2, c.Height * 4 }

// Set sets the sub-pixel at (x, y).
func (c *Canvas) Set(x, y int) {
	row, col, ok := c.cell(x, y)
	if !ok {
		return
	}
	c.Grid[row][col] |= rune(pixelMap[y%4][x%2])
}

func (c *Canvas) Unset(x, y int) {
	row, col, ok := c.cell(x, y)
	if !ok {
		return
	}
	c.Grid[row][col] &^= rune(pixelMap[y%4][x%2])
}

// IsSet reports whether the sub-pixel at (x, y) is lit.
func (c *Canvas) IsSet(x, y int) bool {
	row, col, ok := c.cell(x, y)
	if !ok {
		return false
	}
	return c.Grid[row][col]&rune(pixelMap[y%4][x%2]) != 0
}

func (c *Canvas) cell(x, y int) (int, int, bool) {
	if x < 0 || y < 0 {
		return 0, 0, false
	}
	col, row := x/2, y/4
	if col >= c.Width || row >= c.Height {
		return 0, 0, false
	}
	return row, col, true
}

func (c *Canvas) Clear() {
	for i := range c.Grid {
		for j := range c.Grid[i] {
			c.Grid[i][j] = brailleBlank
		}
	}
}

// DrawLine draws a line using Bresenham's algorithm
func (c *Canvas) DrawLine(x0, y0, x1, y1 int) {
	dx := absInt(x1 - x0)
	dy := absInt(y1 - y0)
	sx := -1
	if x0 < x1 {
		sx = 1
	}
	sy := -1
	if y0 < y1 {
		sy = 1
	}
	err := dx - dy

	for {
		c.Set(x0, y0)
		if x0 == x1 && y0 == y1 {
			break
		}
		e2 := 2 * err
		if e2 > -dy {
			err -= dy
			x0 += sx
		}
		if e2 < dx {
			err += dx
			y0 += sy
		}
	}
}

func (c *Canvas) DrawRect(x0, y0, x1, y1 int) {
	c.DrawLine(x0, y0, x1, y0)
	c.DrawLine(x1, y0, x1, y1)
	c.DrawLine(x1, y1, x0, y1)
	c.DrawLine(x0, y1, x0, y0)
}

func (c *Canvas) String() string {
	var b strings.Builder
	for _, row := range c.Grid {
		b.WriteString(string(row) + "\n")
	}
	return b.String()
}

func absInt(x int) int {
	if x < 0 {
		return -x
	}
	return x
}

// Viewport maps the world XZ plane onto canvas dots, looking down -Y. World
// -Z is up on screen.
type Viewport struct {
	Bounds math32.Box3
	canvas *Canvas
}

func NewViewport(c *Canvas, bounds math32.Box3) *Viewport {
	return &Viewport{Bounds: bounds, canvas: c}
}

// Dot returns the sub-pixel under world point p.
func (v *Viewport) Dot(p math32.Vector3) (int, int) {
	w, h := v.canvas.Dots()
	size := v.Bounds.Size()
	if size.X <= 0 || size.Z <= 0 {
		return w / 2, h / 2
	}
	fx := (p.X - v.Bounds.Min.X) / size.X
	fz := (p.Z - v.Bounds.Min.Z) / size.Z
	x := int(math32.Floor(fx * float32(w-1)))
	y := int(math32.Floor(fz * float32(h-1)))
	return x, y
}

func (v *Viewport) Point(p math32.Vector3) {
	v.canvas.Set(v.Dot(p))
}

// Footprint outlines the XZ extent of a world-space box.
func (v *Viewport) Footprint(b math32.Box3) {
	x0, y0 := v.Dot(b.Min)
	x1, y1 := v.Dot(b.Max)
	v.canvas.DrawRect(x0, y0, x1, y1)
}

// Path joins consecutive points with lines.
func (v *Viewport) Path(pts []math32.Vector3) {
	for i := 1; i < len(pts); i++ {
		x0, y0 := v.Dot(pts[i-1])
		x1, y1 := v.Dot(pts[i])
		v.canvas.DrawLine(x0, y0, x1, y1)
	}
	if len(pts) == 1 {
		v.Point(pts[0])
	}
}

// Package export renders terminal canvases and recorded object paths as SVG.
package export

import (
	"fmt"
	"sort"
	"strings"

	"github.com/mohammed-7/habitat-sim/internal/storage"
	"github.com/mohammed-7/habitat-sim/internal/viz"
)

// braille dot bits by [row][column] inside one cell
var dotBits = [4][2]rune{
	{0x01, 0x08},
	{0x02, 0x10},
	{0x04, 0x20},
	{0x40, 0x80},
}

var pathColors = []string{"#00ffff", "#ff00ff", "#ffcc00", "#00ff88", "#ff4444", "#4488ff"}

func header(sb *strings.Builder, w, h float64, bg string) {
	fmt.Fprintf(sb, `<?xml version="1.0" encoding="UTF-8"?>
<svg xmlns="http://www.w3.org/2000/svg" width="%.0f" height="%.0f" viewBox="0 0 %.0f %.0f">
<rect width="100%%" height="100%%" fill="%s"/>
`, w, h, w, h, bg)
}

// CanvasToSVG draws every set dot of c as a circle, scale pixels apart.
func CanvasToSVG(c *viz.Canvas, scale float64, th viz.Theme) string {
	if c == nil || scale <= 0 {
		return ""
	}
	var sb strings.Builder
	header(&sb, float64(c.Width)*scale*2, float64(c.Height)*scale*4, string(th.Background))
	fmt.Fprintf(&sb, "<g fill=\"%s\">\n", th.Primary)

	r := scale * 0.4
	for row := 0; row < c.Height; row++ {
		for col := 0; col < c.Width; col++ {
			pattern := c.Grid[row][col] - 0x2800
			if pattern <= 0 {
				continue
			}
			for dy := 0; dy < 4; dy++ {
				for dx := 0; dx < 2; dx++ {
					if pattern&dotBits[dy][dx] == 0 {
						continue
					}
					cx := (float64(col*2+dx) + 0.5) * scale
					cy := (float64(row*4+dy) + 0.5) * scale
					fmt.Fprintf(&sb, "<circle cx=\"%.1f\" cy=\"%.1f\" r=\"%.1f\"/>\n", cx, cy, r)
				}
			}
		}
	}
	sb.WriteString("</g>\n</svg>")
	return sb.String()
}

// TrajectoriesToSVG plots the XZ path of every object in samples, seen from
// above with -Z up. Objects with fewer than two samples are skipped. It
// returns "" when nothing can be drawn.
func TrajectoriesToSVG(samples []storage.Sample, width, height int) string {
	paths := make(map[int][][2]float64)
	for _, s := range samples {
		paths[s.ObjectID] = append(paths[s.ObjectID], [2]float64{float64(s.Position[0]), float64(s.Position[2])})
	}
	ids := make([]int, 0, len(paths))
	for id, pts := range paths {
		if len(pts) >= 2 {
			ids = append(ids, id)
		}
	}
	if len(ids) == 0 || width <= 0 || height <= 0 {
		return ""
	}
	sort.Ints(ids)

	minX, maxX := paths[ids[0]][0][0], paths[ids[0]][0][0]
	minZ, maxZ := paths[ids[0]][0][1], paths[ids[0]][0][1]
	for _, id := range ids {
		for _, p := range paths[id] {
			minX, maxX = min(minX, p[0]), max(maxX, p[0])
			minZ, maxZ = min(minZ, p[1]), max(maxZ, p[1])
		}
	}
	rangeX, rangeZ := maxX-minX, maxZ-minZ
	if rangeX == 0 {
		rangeX = 1
	}
	if rangeZ == 0 {
		rangeZ = 1
	}
	minX -= rangeX * 0.1
	minZ -= rangeZ * 0.1
	rangeX *= 1.2
	rangeZ *= 1.2

	var sb strings.Builder
	header(&sb, float64(width), float64(height), "#0a0a0a")
	for i, id := range ids {
		fmt.Fprintf(&sb, "<path id=\"object-%d\" fill=\"none\" stroke=\"%s\" stroke-width=\"1.5\" d=\"", id, pathColors[i%len(pathColors)])
		for j, p := range paths[id] {
			x := (p[0] - minX) / rangeX * float64(width)
			y := (p[1] - minZ) / rangeZ * float64(height)
			if j == 0 {
				fmt.Fprintf(&sb, "M%.1f,%.1f", x, y)
			} else {
				fmt.Fprintf(&sb, " L%.1f,%.1f", x, y)
			}
		}
		sb.WriteString("\"/>\n")
	}
	sb.WriteString("</svg>")
	return sb.String()
}

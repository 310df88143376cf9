package viz

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// depthColor maps a linear depth onto the theme ramp. Zero depth means the
// ray hit nothing and takes the background color.
func depthColor(d, far float32, th Theme) lipgloss.Color {
	if d <= 0 || far <= 0 {
		return th.Background
	}
	t := float64(d / far)
	if t > 1 {
		t = 1
	}
	return lerpColor(th.Near, th.Far, t)
}

// DepthHeatmap renders a row-major w x h depth buffer into at most cols
// terminal cells per row. Each cell shows two source rows with an upper half
// block. far <= 0 scales to the largest depth in the buffer.
func DepthHeatmap(depth []float32, w, h, cols int, far float32, th Theme) string {
	if w <= 0 || h <= 0 || len(depth) < w*h || cols <= 0 {
		return ""
	}
	if far <= 0 {
		for _, d := range depth[:w*h] {
			far = max(far, d)
		}
	}
	cols = min(cols, w)
	rows := max(1, h*cols/w/2)

	sample := func(cx, cy int) float32 {
		x := cx * w / cols
		y := min(cy*h/(2*rows), h-1)
		return depth[y*w+x]
	}

	var b strings.Builder
	for r := 0; r < rows; r++ {
		for c := 0; c < cols; c++ {
			top := depthColor(sample(c, 2*r), far, th)
			bottom := depthColor(sample(c, 2*r+1), far, th)
			b.WriteString(lipgloss.NewStyle().Foreground(top).Background(bottom).Render("▀"))
		}
		b.WriteByte('\n')
	}
	return b.String()
}

package gfx

import "cogentcore.org/core/math32"

// CalculateDepthUnprojection returns the coefficients that turn a depth
// buffer value into linear depth for projection p. Entries are read column
// major: a = (p[2][2] - 1) / 2, b = p[3][2] / 2.
func CalculateDepthUnprojection(p math32.Matrix4) math32.Vector2 {
	return math32.Vec2(0.5*(p[2*4+2]-1), 0.5*p[3*4+2])
}

// UnprojectDepth converts depth in place. Pixels still holding the clear value
// 1.0 become 0.
func UnprojectDepth(unproj math32.Vector2, depth []float32) {
	for i, d := range depth {
		// the buffer is cleared to exactly 1.0
		if d == 1.0 {
			depth[i] = 0
			continue
		}
		depth[i] = unproj.Y / (d + unproj.X)
	}
}

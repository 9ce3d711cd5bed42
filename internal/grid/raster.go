package grid

import (
	"math"

	"panocam/internal/mathutil"
)

// RasterizeWorldTriangle adds v to every cell covered by the world-space
// triangle. Repeated calls accumulate.
func (g *Grid) RasterizeWorldTriangle(p0, p1, p2 mathutil.Vec2, v float64) {
	g.RasterizeGridTriangle(g.WorldToGrid(p0), g.WorldToGrid(p1), g.WorldToGrid(p2), v)
}

// RasterizeGridTriangle adds v once to each cell whose centre lies inside
// the triangle or that an edge passes through. Degenerate triangles (for
// example a vertical wall seen from above) still mark their edges.
func (g *Grid) RasterizeGridTriangle(a, b, c mathutil.Vec2, v float64) {
	minX := max(0, cellOf(math.Min(math.Min(a[0], b[0]), c[0])))
	maxX := min(g.xres-1, cellOf(math.Max(math.Max(a[0], b[0]), c[0])))
	minY := max(0, cellOf(math.Min(math.Min(a[1], b[1]), c[1])))
	maxY := min(g.yres-1, cellOf(math.Max(math.Max(a[1], b[1]), c[1])))
	if minX > maxX || minY > maxY {
		return
	}

	w := maxX - minX + 1
	h := maxY - minY + 1
	covered := make([]bool, w*h)
	mark := func(x, y int) {
		if x < minX || x > maxX || y < minY || y > maxY {
			return
		}
		covered[(y-minY)*w+(x-minX)] = true
	}

	// Barycentric interior test at cell centres
	det := (b[1]-c[1])*(a[0]-c[0]) + (c[0]-b[0])*(a[1]-c[1])
	if math.Abs(det) > 1e-12 {
		invDet := 1.0 / det
		dy12 := b[1] - c[1]
		dx21 := c[0] - b[0]
		dy20 := c[1] - a[1]
		dx02 := a[0] - c[0]
		for y := minY; y <= maxY; y++ {
			dsy := float64(y) - c[1]
			for x := minX; x <= maxX; x++ {
				dsx := float64(x) - c[0]
				w0 := (dy12*dsx + dx21*dsy) * invDet
				w1 := (dy20*dsx + dx02*dsy) * invDet
				w2 := 1.0 - w0 - w1
				if w0 < -1e-9 || w1 < -1e-9 || w2 < -1e-9 {
					continue
				}
				mark(x, y)
			}
		}
	}

	// Edges
	for _, e := range [3][2]mathutil.Vec2{{a, b}, {b, c}, {c, a}} {
		p, q := e[0], e[1]
		steps := int(math.Ceil(2*math.Max(math.Abs(q[0]-p[0]), math.Abs(q[1]-p[1])))) + 1
		for i := 0; i <= steps; i++ {
			t := float64(i) / float64(steps)
			mark(cellOf(p[0]+t*(q[0]-p[0])), cellOf(p[1]+t*(q[1]-p[1])))
		}
	}

	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			if covered[y*w+x] {
				g.values[(y+minY)*g.xres+x+minX] += v
			}
		}
	}
}

// cellOf returns the index of the cell whose centre is nearest to coordinate c.
func cellOf(c float64) int {
	return int(math.Floor(c + 0.5))
}

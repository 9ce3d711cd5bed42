package raster

import "math"

// Vertex is a projected vertex: pixel coordinates plus inverse depth.
type Vertex struct {
	X, Y float64
	InvZ float64
}

// RasterizeTriangle writes index into every pixel whose centre lies inside
// the triangle and is nearer than the current z-buffer value. Inverse depth
// is interpolated linearly in screen space, which is perspective-correct.
// Pixels with InvZ below minInvZ (beyond the far plane) are skipped.
//
// This is the hot path; no allocations in the pixel loop.
func RasterizeTriangle(fb *FrameBuffer, v0, v1, v2 Vertex, index int32, minInvZ float64) {
	x0, y0, z0 := v0.X, v0.Y, v0.InvZ
	x1, y1, z1 := v1.X, v1.Y, v1.InvZ
	x2, y2, z2 := v2.X, v2.Y, v2.InvZ

	// Bounding box over pixel centres
	minX := int(math.Floor(math.Min(math.Min(x0, x1), x2) - 0.5))
	maxX := int(math.Ceil(math.Max(math.Max(x0, x1), x2) - 0.5))
	minY := int(math.Floor(math.Min(math.Min(y0, y1), y2) - 0.5))
	maxY := int(math.Ceil(math.Max(math.Max(y0, y1), y2) - 0.5))

	if minX < 0 {
		minX = 0
	}
	if maxX > fb.Width-1 {
		maxX = fb.Width - 1
	}
	if minY < 0 {
		minY = 0
	}
	if maxY > fb.Height-1 {
		maxY = fb.Height - 1
	}
	if minX > maxX || minY > maxY {
		return
	}

	// Barycentric setup
	det := (y1-y2)*(x0-x2) + (x2-x1)*(y0-y2)
	if det > -1e-12 && det < 1e-12 {
		return
	}
	invDet := 1.0 / det

	// Precompute edge deltas
	dy12 := y1 - y2
	dx21 := x2 - x1
	dy20 := y2 - y0
	dx02 := x0 - x2

	for sy := minY; sy <= maxY; sy++ {
		dsy := float64(sy) + 0.5 - y2
		rowOff := sy * fb.Width
		for sx := minX; sx <= maxX; sx++ {
			dsx := float64(sx) + 0.5 - x2
			w0 := (dy12*dsx + dx21*dsy) * invDet
			w1 := (dy20*dsx + dx02*dsy) * invDet
			w2 := 1.0 - w0 - w1

			if w0 < -1e-9 || w1 < -1e-9 || w2 < -1e-9 {
				continue
			}

			z := w0*z0 + w1*z1 + w2*z2
			if z < minInvZ {
				continue
			}
			zIdx := rowOff + sx
			if z <= fb.ZBuf[zIdx] {
				continue
			}
			fb.ZBuf[zIdx] = z
			fb.Index[zIdx] = index
		}
	}
}

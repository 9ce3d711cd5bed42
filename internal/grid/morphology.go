package grid

import "math"

const sdtInf = 1e20

// SquaredDistanceTransform replaces every cell with the squared grid
// distance to the nearest non-zero cell (non-zero cells become 0). A grid
// with no non-zero cells is filled with a value larger than any in-grid
// squared distance.
func (g *Grid) SquaredDistanceTransform() {
	found := false
	for i, v := range g.values {
		if v != 0 {
			g.values[i] = 0
			found = true
		} else {
			g.values[i] = sdtInf
		}
	}
	if !found {
		far := float64(g.xres*g.xres + g.yres*g.yres)
		for i := range g.values {
			g.values[i] = far
		}
		return
	}

	n := max(g.xres, g.yres)
	f := make([]float64, n)
	d := make([]float64, n)
	v := make([]int, n)
	z := make([]float64, n+1)

	// Columns first, then rows (Felzenszwalb & Huttenlocher, exact EDT).
	for x := 0; x < g.xres; x++ {
		for y := 0; y < g.yres; y++ {
			f[y] = g.values[y*g.xres+x]
		}
		dt1d(f[:g.yres], d[:g.yres], v, z)
		for y := 0; y < g.yres; y++ {
			g.values[y*g.xres+x] = d[y]
		}
	}
	for y := 0; y < g.yres; y++ {
		row := g.values[y*g.xres : (y+1)*g.xres]
		copy(f, row)
		dt1d(f[:g.xres], d[:g.xres], v, z)
		copy(row, d[:g.xres])
	}
}

// dt1d computes the 1D squared distance transform of sampled function f
// into d. v and z are scratch buffers of length >= len(f) and len(f)+1.
func dt1d(f, d []float64, v []int, z []float64) {
	n := len(f)
	if n == 0 {
		return
	}
	k := 0
	v[0] = 0
	z[0] = math.Inf(-1)
	z[1] = math.Inf(1)
	for q := 1; q < n; q++ {
		fq := f[q] + float64(q*q)
		s := (fq - (f[v[k]] + float64(v[k]*v[k]))) / float64(2*q-2*v[k])
		for s <= z[k] {
			k--
			s = (fq - (f[v[k]] + float64(v[k]*v[k]))) / float64(2*q-2*v[k])
		}
		k++
		v[k] = q
		z[k] = s
		z[k+1] = math.Inf(1)
	}
	k = 0
	for q := 0; q < n; q++ {
		for z[k+1] < float64(q) {
			k++
		}
		dq := float64(q - v[k])
		d[q] = dq*dq + f[v[k]]
	}
}

// Dilate sets every cell within grid distance r of a non-zero cell to 1 and
// all remaining cells to 0.
func (g *Grid) Dilate(r float64) {
	g.SquaredDistanceTransform()
	g.Threshold(r*r, 1, 0)
}

// Package grid implements a 2D scalar grid anchored to a world-space box,
// with the raster and morphology operations used to build placement fields.
package grid

import (
	"math"

	"panocam/internal/mathutil"
)

// Box2 is an axis-aligned rectangle in world units.
type Box2 struct {
	Min, Max mathutil.Vec2
}

func (b Box2) XLength() float64 { return b.Max[0] - b.Min[0] }
func (b Box2) YLength() float64 { return b.Max[1] - b.Min[1] }

// Contains reports whether p lies in the closed box.
func (b Box2) Contains(p mathutil.Vec2) bool {
	return p[0] >= b.Min[0] && p[0] <= b.Max[0] && p[1] >= b.Min[1] && p[1] <= b.Max[1]
}

// Grid holds XRes*YRes float64 cells, row-major by y. The world box maps
// onto cell centres 0..XRes-1 and 0..YRes-1 with a single isotropic scale.
type Grid struct {
	xres, yres int
	values     []float64
	box        Box2

	scale       float64 // world -> grid
	worldCenter mathutil.Vec2
	gridCenter  mathutil.Vec2
}

// New allocates a zeroed grid covering box.
func New(xres, yres int, box Box2) *Grid {
	g := &Grid{
		xres:   xres,
		yres:   yres,
		values: make([]float64, xres*yres),
		box:    box,
	}

	xs, ys := 1.0, 1.0
	if box.XLength() > 0 && xres > 1 {
		xs = float64(xres-1) / box.XLength()
	}
	if box.YLength() > 0 && yres > 1 {
		ys = float64(yres-1) / box.YLength()
	}
	g.scale = math.Min(xs, ys)
	g.worldCenter = box.Min.Add(box.Max).Scale(0.5)
	g.gridCenter = mathutil.Vec2{float64(xres-1) / 2, float64(yres-1) / 2}
	return g
}

func (g *Grid) XRes() int { return g.xres }
func (g *Grid) YRes() int { return g.yres }
func (g *Grid) NCells() int { return len(g.values) }
func (g *Grid) WorldBox() Box2 { return g.box }
func (g *Grid) Values() []float64 { return g.values }

// WorldToGridScale converts a world length to grid cells.
func (g *Grid) WorldToGridScale() float64 { return g.scale }

// GridToWorldScale is the world size of one cell.
func (g *Grid) GridToWorldScale() float64 { return 1 / g.scale }

func (g *Grid) WorldToGrid(p mathutil.Vec2) mathutil.Vec2 {
	return p.Sub(g.worldCenter).Scale(g.scale).Add(g.gridCenter)
}

func (g *Grid) GridToWorld(p mathutil.Vec2) mathutil.Vec2 {
	return p.Sub(g.gridCenter).Scale(1 / g.scale).Add(g.worldCenter)
}

// WorldPosition returns the world coordinates of cell (ix, iy).
func (g *Grid) WorldPosition(ix, iy int) mathutil.Vec2 {
	return g.GridToWorld(mathutil.Vec2{float64(ix), float64(iy)})
}

func (g *Grid) Value(ix, iy int) float64 {
	return g.values[iy*g.xres+ix]
}

func (g *Grid) SetValue(ix, iy int, v float64) {
	g.values[iy*g.xres+ix] = v
}

// Clone returns an independent copy.
func (g *Grid) Clone() *Grid {
	c := *g
	c.values = append([]float64(nil), g.values...)
	return &c
}

// Threshold sets every cell <= t to low and every other cell to high.
func (g *Grid) Threshold(t, low, high float64) {
	for i, v := range g.values {
		if v <= t {
			g.values[i] = low
		} else {
			g.values[i] = high
		}
	}
}

// Count returns the number of cells for which pred holds.
func (g *Grid) Count(pred func(float64) bool) int {
	n := 0
	for _, v := range g.values {
		if pred(v) {
			n++
		}
	}
	return n
}

// MaxCell returns the cell with the largest strictly positive value,
// scanning x-major. ok is false when no cell is positive.
func (g *Grid) MaxCell() (ix, iy int, value float64, ok bool) {
	ix, iy = -1, -1
	for x := 0; x < g.xres; x++ {
		for y := 0; y < g.yres; y++ {
			v := g.values[y*g.xres+x]
			if v > value {
				ix, iy, value = x, y, v
			}
		}
	}
	return ix, iy, value, ix >= 0
}

// FillCircle replaces every cell within grid radius r of (cx, cy) with v.
// The cell containing the centre is always replaced, even for r < 1.
func (g *Grid) FillCircle(cx, cy int, r, v float64) {
	if cx >= 0 && cx < g.xres && cy >= 0 && cy < g.yres {
		g.values[cy*g.xres+cx] = v
	}
	if r <= 0 {
		return
	}
	ri := int(math.Ceil(r))
	r2 := r * r
	for dy := -ri; dy <= ri; dy++ {
		y := cy + dy
		if y < 0 || y >= g.yres {
			continue
		}
		for dx := -ri; dx <= ri; dx++ {
			x := cx + dx
			if x < 0 || x >= g.xres {
				continue
			}
			if float64(dx*dx+dy*dy) <= r2 {
				g.values[y*g.xres+x] = v
			}
		}
	}
}

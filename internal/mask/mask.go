// Package mask builds the 2D desirability field used to pick viewpoints
// inside a room: positive values are free floor, larger further from any
// obstacle; zero means never place a camera there.
package mask

import (
	"errors"

	"panocam/internal/grid"
	"panocam/internal/mathutil"
	"panocam/internal/scene"
)

// Heights of the floor slab and obstacle band above the room's lowest point.
const (
	FloorSlabHeight    = 0.1
	ObstacleBandHeight = 2.0

	// MinSpacing is the grid spacing used when no obstacle clearance is requested.
	MinSpacing = 0.05

	// MinResolution is the smallest usable grid size on either axis.
	MinResolution = 3
)

// ErrRoomTooSmall is returned when the room footprint yields fewer than
// MinResolution cells on either axis.
var ErrRoomTooSmall = errors.New("room too small for requested obstacle clearance")

// Params controls field construction.
type Params struct {
	// MinObstacleDistance is the clearance, in world units, kept from any
	// obstacle or from the edge of the floor.
	MinObstacleDistance float64
}

// Spacing returns the grid cell size for p.
func (p Params) Spacing() float64 {
	s := 0.5 * p.MinObstacleDistance
	if s == 0 {
		s = MinSpacing
	}
	return s
}

// Footprint projects a 3D box onto the field plane. Grid x runs along world
// Z and grid y along world X.
func Footprint(b mathutil.Box3) grid.Box2 {
	return grid.Box2{
		Min: mathutil.Vec2{b.Min[2], b.Min[0]},
		Max: mathutil.Vec2{b.Max[2], b.Max[0]},
	}
}

// FieldPoint projects a world point onto the field plane.
func FieldPoint(p mathutil.Vec3) mathutil.Vec2 {
	return mathutil.Vec2{p[2], p[0]}
}

// Build returns the desirability field for room.
func Build(room *scene.Node, p Params) (*grid.Grid, error) {
	world := room.BBox()
	if world.IsEmpty() {
		return nil, ErrRoomTooSmall
	}

	floor := world
	floor.Max[1] = world.Min[1] + FloorSlabHeight
	obstacles := world
	obstacles.Min[1] = world.Min[1] + FloorSlabHeight
	obstacles.Max[1] = world.Min[1] + ObstacleBandHeight

	box := Footprint(world)
	spacing := p.Spacing()
	xres := int(box.XLength() / spacing)
	yres := int(box.YLength() / spacing)
	if xres < MinResolution || yres < MinResolution {
		return nil, ErrRoomTooSmall
	}
	g := grid.New(xres, yres, box)

	// Floor reads 0, everything else 1
	Rasterize(g, room, floor)
	g.Threshold(0.5, 1, 0)

	Rasterize(g, room, obstacles)

	g.Dilate(p.MinObstacleDistance / spacing)
	g.SquaredDistanceTransform()
	return g, nil
}

// Rasterize adds the footprint of every triangle under n that overlaps
// region. Ground and ceiling nodes are skipped, as are triangles with a
// vertex outside the grid.
func Rasterize(g *grid.Grid, n *scene.Node, region mathutil.Box3) {
	if n.HasPrefix("Ground") || n.HasPrefix("Ceiling") {
		return
	}
	if !region.Intersects(n.BBox()) {
		return
	}

	wb := g.WorldBox()
	for _, tri := range n.Triangles() {
		if !region.Intersects(tri.BBox()) {
			continue
		}
		p0, p1, p2 := FieldPoint(tri[0]), FieldPoint(tri[1]), FieldPoint(tri[2])
		if !wb.Contains(p0) || !wb.Contains(p1) || !wb.Contains(p2) {
			continue
		}
		g.RasterizeWorldTriangle(p0, p1, p2, 1)
	}

	for _, c := range n.Children() {
		Rasterize(g, c, region)
	}
}

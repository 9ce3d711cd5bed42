package render

import (
	"math"

	"panocam/internal/camera"
	"panocam/internal/mathutil"
	"panocam/internal/raster"
	"panocam/internal/scene"
)

// RayCaster casts one ray per pixel centre against every node's triangles.
type RayCaster struct {
	scene *scene.Scene
	boxes []mathutil.Box3 // bounds of each node's own triangles
}

func NewRayCaster(s *scene.Scene) *RayCaster {
	boxes := make([]mathutil.Box3, s.NNodes())
	for i, n := range s.Nodes() {
		b := mathutil.EmptyBox()
		for _, t := range n.Triangles() {
			b = b.Union(t.BBox())
		}
		boxes[i] = b
	}
	return &RayCaster{scene: s, boxes: boxes}
}

func (r *RayCaster) Render(cam camera.Camera, width, height int) *raster.IndexImage {
	img := raster.NewIndexImage(width, height)
	for iy := 0; iy < height; iy++ {
		for ix := 0; ix < width; ix++ {
			dir := cam.WorldRay(float64(ix)+0.5, float64(iy)+0.5, width, height)
			if index, ok := r.Cast(cam, dir); ok {
				img.Set(ix, iy, int32(index))
			}
		}
	}
	return img
}

// Cast returns the index of the nearest node hit along dir whose depth
// along the view axis lies within the camera's clip range.
func (r *RayCaster) Cast(cam camera.Camera, dir mathutil.Vec3) (int, bool) {
	depthPerT := dir.Dot(cam.Towards)
	if depthPerT <= 0 {
		return 0, false
	}
	tMin := cam.Near / depthPerT
	best := cam.Far / depthPerT
	hit := -1

	for i, n := range r.scene.Nodes() {
		if _, ok := r.boxes[i].IntersectRay(cam.Origin, dir, best); !ok {
			continue
		}
		for _, tri := range n.Triangles() {
			t, ok := intersectTriangle(cam.Origin, dir, tri)
			if !ok || t < tMin || t >= best {
				continue
			}
			best = t
			hit = i
		}
	}
	return hit, hit >= 0
}

// intersectTriangle is the Möller–Trumbore ray/triangle test, double-sided.
func intersectTriangle(o, d mathutil.Vec3, tri scene.Triangle) (float64, bool) {
	e1 := tri[1].Sub(tri[0])
	e2 := tri[2].Sub(tri[0])
	p := d.Cross(e2)
	det := e1.Dot(p)
	if math.Abs(det) < 1e-12 {
		return 0, false
	}
	inv := 1 / det
	s := o.Sub(tri[0])
	u := s.Dot(p) * inv
	if u < -1e-9 || u > 1+1e-9 {
		return 0, false
	}
	q := s.Cross(e1)
	v := d.Dot(q) * inv
	if v < -1e-9 || u+v > 1+1e-9 {
		return 0, false
	}
	return e2.Dot(q) * inv, true
}

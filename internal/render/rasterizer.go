package render

import (
	"panocam/internal/camera"
	"panocam/internal/mathutil"
	"panocam/internal/raster"
	"panocam/internal/scene"
)

// Rasterizer draws every scene triangle with its node index through a
// perspective projection and z-buffer, the way a GL pipeline would.
type Rasterizer struct {
	scene *scene.Scene
}

func NewRasterizer(s *scene.Scene) *Rasterizer {
	return &Rasterizer{scene: s}
}

func (r *Rasterizer) Render(cam camera.Camera, width, height int) *raster.IndexImage {
	fb := raster.NewFrameBuffer(width, height)
	minInvZ := 0.0
	if cam.Far > 0 {
		minInvZ = 1 / cam.Far
	}

	var poly [4]mathutil.Vec3
	for _, node := range r.scene.Nodes() {
		index := int32(node.Index())
		for _, tri := range node.Triangles() {
			in := [3]mathutil.Vec3{
				cam.ToCamera(tri[0]),
				cam.ToCamera(tri[1]),
				cam.ToCamera(tri[2]),
			}
			if in[0][2] > cam.Far && in[1][2] > cam.Far && in[2][2] > cam.Far {
				continue
			}
			n := clipNear(in, cam.Near, &poly)
			if n < 3 {
				continue
			}

			var verts [4]raster.Vertex
			for i := 0; i < n; i++ {
				x, y := cam.ProjectCamera(poly[i], width, height)
				verts[i] = raster.Vertex{X: x, Y: y, InvZ: 1 / poly[i][2]}
			}
			// Fan triangulation of the clipped polygon
			for i := 1; i+1 < n; i++ {
				raster.RasterizeTriangle(fb, verts[0], verts[i], verts[i+1], index, minInvZ)
			}
		}
	}
	return fb.Image()
}

// clipNear clips a camera-space triangle against the plane z = near and
// writes the resulting convex polygon (0, 3 or 4 vertices) into out.
func clipNear(in [3]mathutil.Vec3, near float64, out *[4]mathutil.Vec3) int {
	n := 0
	for i := 0; i < 3; i++ {
		a := in[i]
		b := in[(i+1)%3]
		aIn := a[2] >= near
		bIn := b[2] >= near
		if aIn {
			out[n] = a
			n++
		}
		if aIn != bIn {
			t := (near - a[2]) / (b[2] - a[2])
			p := a.Add(b.Sub(a).Scale(t))
			p[2] = near
			out[n] = p
			n++
		}
	}
	return n
}

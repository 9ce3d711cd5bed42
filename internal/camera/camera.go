// Package camera defines the camera record produced by placement and the
// pinhole geometry shared by the renderers and the output writers.
package camera

import (
	"fmt"
	"math"

	"panocam/internal/mathutil"
)

// Camera is a pinhole camera pose plus its coverage score. XFOV and YFOV
// are half angles in radians. Towards, Up and Right() form an orthonormal
// right-handed basis.
type Camera struct {
	Name    string
	Origin  mathutil.Vec3
	Towards mathutil.Vec3
	Up      mathutil.Vec3
	XFOV    float64
	YFOV    float64
	Near    float64
	Far     float64
	Score   float64
}

// FOV returns the horizontal and vertical half angles for an image of the
// given size and a focal length in pixels.
func FOV(width, height int, focalLength float64) (xfov, yfov float64) {
	return math.Atan(0.5 * float64(width) / focalLength), math.Atan(0.5 * float64(height) / focalLength)
}

// LookDir builds a camera at origin looking along towards, re-orthogonalising
// up against the world +Y axis.
func LookDir(origin, towards mathutil.Vec3, xfov, yfov, near, far float64) Camera {
	towards = towards.Normalize()
	right := towards.Cross(mathutil.PosY).Normalize()
	up := right.Cross(towards).Normalize()
	return Camera{
		Origin:  origin,
		Towards: towards,
		Up:      up,
		XFOV:    xfov,
		YFOV:    yfov,
		Near:    near,
		Far:     far,
	}
}

// Right returns towards × up.
func (c Camera) Right() mathutil.Vec3 {
	return c.Towards.Cross(c.Up)
}

// PanoramaName encodes room, panorama index and direction index.
func PanoramaName(room string, panorama, direction int) string {
	return fmt.Sprintf("%s#%d#%d", room, panorama, direction)
}

// NewPanorama returns n cameras at eye whose horizontal directions are
// evenly spaced over 360° starting at baseAngle (radians, from +X toward
// +Z). tilt is the downward component of the unnormalised view direction.
func NewPanorama(eye mathutil.Vec3, n int, baseAngle, tilt, xfov, yfov, near, far float64) []Camera {
	cams := make([]Camera, 0, n)
	for i := 0; i < n; i++ {
		angle := baseAngle + float64(i)*2*math.Pi/float64(n)
		dir := mathutil.HorizontalDir(angle)
		towards := mathutil.Vec3{dir[0], -tilt, dir[2]}
		cams = append(cams, LookDir(eye, towards, xfov, yfov, near, far))
	}
	return cams
}

// ToCamera transforms a world point into camera space: x along right,
// y along up, z along towards (depth).
func (c Camera) ToCamera(p mathutil.Vec3) mathutil.Vec3 {
	d := p.Sub(c.Origin)
	return mathutil.Vec3{d.Dot(c.Right()), d.Dot(c.Up), d.Dot(c.Towards)}
}

// ProjectCamera maps a camera-space point with positive depth to continuous
// pixel coordinates, y growing downward from the top row.
func (c Camera) ProjectCamera(p mathutil.Vec3, width, height int) (x, y float64) {
	sx := p[0] / (p[2] * math.Tan(c.XFOV))
	sy := p[1] / (p[2] * math.Tan(c.YFOV))
	return (sx + 1) * 0.5 * float64(width), (1 - sy) * 0.5 * float64(height)
}

// WorldRay returns the unit direction of the ray through continuous pixel
// coordinates (x, y). Its dot product with Towards is the depth per unit t.
func (c Camera) WorldRay(x, y float64, width, height int) mathutil.Vec3 {
	sx := 2*x/float64(width) - 1
	sy := 1 - 2*y/float64(height)
	d := c.Towards.
		Add(c.Right().Scale(sx * math.Tan(c.XFOV))).
		Add(c.Up.Scale(sy * math.Tan(c.YFOV)))
	return d.Normalize()
}

// Rotation returns the camera-to-world rotation with columns right, up and
// backward.
func (c Camera) Rotation() mathutil.Mat3 {
	return mathutil.Mat3Columns(c.Right(), c.Up, c.Towards.Neg())
}

// Extrinsics returns the 3×4 camera-to-world matrix [R | origin].
func (c Camera) Extrinsics() [3][4]float64 {
	r := c.Rotation()
	var m [3][4]float64
	for i := 0; i < 3; i++ {
		m[i] = [4]float64{r[i*3], r[i*3+1], r[i*3+2], c.Origin[i]}
	}
	return m
}

// Intrinsics returns the 3×3 pinhole matrix for an image of the given size
// with the principal point at the image centre.
func (c Camera) Intrinsics(width, height int) [3][3]float64 {
	fx := 0.5 * float64(width) / math.Tan(c.XFOV)
	fy := 0.5 * float64(height) / math.Tan(c.YFOV)
	cx := 0.5 * float64(width)
	cy := 0.5 * float64(height)
	return [3][3]float64{
		{fx, 0, cx},
		{0, fy, cy},
		{0, 0, 1},
	}
}

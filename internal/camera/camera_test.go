package camera

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"panocam/internal/mathutil"
)

func assertOrthonormal(t *testing.T, c Camera) {
	t.Helper()
	r := c.Right()
	assert.InDelta(t, 1, c.Towards.Len(), 1e-9)
	assert.InDelta(t, 1, c.Up.Len(), 1e-9)
	assert.InDelta(t, 1, r.Len(), 1e-9)
	assert.InDelta(t, 0, c.Towards.Dot(c.Up), 1e-9)
	assert.InDelta(t, 0, c.Towards.Dot(r), 1e-9)
	assert.InDelta(t, 0, c.Up.Dot(r), 1e-9)

	rot := c.Rotation()
	assert.InDelta(t, 1, rot.Det(), 1e-9, "basis must be right-handed")
	id := mathutil.Mat3Mul(rot.Transpose(), rot)
	for i, v := range mathutil.Mat3Identity() {
		assert.InDelta(t, v, id[i], 1e-9)
	}
}

func TestFOV(t *testing.T) {
	xfov, yfov := FOV(160, 256, 80)
	assert.InDelta(t, math.Pi/4, xfov, 1e-12)
	assert.InDelta(t, math.Atan(1.6), yfov, 1e-12)
}

func TestNewPanoramaRing(t *testing.T) {
	eye := mathutil.Vec3{1, 1.5, 2}
	xfov, yfov := FOV(160, 256, 80)
	cams := NewPanorama(eye, 4, 0, 0, xfov, yfov, 0.01, 100)
	require.Len(t, cams, 4)

	want := []mathutil.Vec3{{1, 0, 0}, {0, 0, 1}, {-1, 0, 0}, {0, 0, -1}}
	for i, c := range cams {
		assert.Equal(t, eye, c.Origin)
		for k := 0; k < 3; k++ {
			assert.InDelta(t, want[i][k], c.Towards[k], 1e-12)
		}
		assert.InDelta(t, 1, c.Up[1], 1e-12)
		assertOrthonormal(t, c)
	}
}

func TestNewPanoramaTiltedStaysOrthonormal(t *testing.T) {
	for _, n := range []int{1, 3, 4, 7, 12} {
		for _, tilt := range []float64{-0.5, 0, 0.2, 1.5} {
			for _, c := range NewPanorama(mathutil.Vec3{}, n, 0.3, tilt, 0.5, 0.7, 0.1, 10) {
				assertOrthonormal(t, c)
				if tilt > 0 {
					assert.Less(t, c.Towards[1], 0.0)
				}
			}
		}
	}
}

func TestProjectAndWorldRayAgree(t *testing.T) {
	xfov, yfov := FOV(64, 48, 40)
	c := LookDir(mathutil.Vec3{0, 1, 0}, mathutil.Vec3{0.3, -0.2, 1}, xfov, yfov, 0.01, 100)

	for _, px := range [][2]float64{{0.5, 0.5}, {32, 24}, {10.5, 40.5}, {63.5, 1.5}} {
		d := c.WorldRay(px[0], px[1], 64, 48)
		p := c.Origin.Add(d.Scale(3.7))
		x, y := c.ProjectCamera(c.ToCamera(p), 64, 48)
		assert.InDelta(t, px[0], x, 1e-9)
		assert.InDelta(t, px[1], y, 1e-9)
	}

	centre := c.WorldRay(32, 24, 64, 48)
	assert.InDelta(t, 1, centre.Dot(c.Towards), 1e-12)
}

func TestExtrinsicsAndIntrinsics(t *testing.T) {
	xfov, yfov := FOV(160, 256, 80)
	c := LookDir(mathutil.Vec3{1, 2, 3}, mathutil.PosX, xfov, yfov, 0.1, 10)

	e := c.Extrinsics()
	assert.Equal(t, [4]float64{0, 0, -1, 1}, roundRow(e[0]))
	assert.Equal(t, [4]float64{0, 1, 0, 2}, roundRow(e[1]))
	assert.Equal(t, [4]float64{1, 0, 0, 3}, roundRow(e[2]))

	k := c.Intrinsics(160, 256)
	assert.InDelta(t, 80, k[0][0], 1e-9)
	assert.InDelta(t, 80, k[1][1], 1e-9)
	assert.Equal(t, 80.0, k[0][2])
	assert.Equal(t, 128.0, k[1][2])
	assert.Equal(t, 1.0, k[2][2])
}

func TestPanoramaName(t *testing.T) {
	assert.Equal(t, "Room#0_1#2#3", PanoramaName("Room#0_1", 2, 3))
}

func roundRow(r [4]float64) [4]float64 {
	for i, v := range r {
		r[i] = math.Round(v*1e9) / 1e9
		if r[i] == 0 {
			r[i] = 0 // drop negative zero
		}
	}
	return r
}

package mathutil

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestHorizontalDir(t *testing.T) {
	d := HorizontalDir(0)
	assert.InDelta(t, 1, d[0], 1e-12)
	assert.InDelta(t, 0, d[2], 1e-12)

	d = HorizontalDir(math.Pi / 2)
	assert.InDelta(t, 0, d[0], 1e-12)
	assert.InDelta(t, 0, d[1], 1e-12)
	assert.InDelta(t, 1, d[2], 1e-12)
}

func TestBoxUnionAndIntersect(t *testing.T) {
	b := EmptyBox()
	assert.True(t, b.IsEmpty())

	b = b.UnionPoint(Vec3{0, 0, 0}).UnionPoint(Vec3{1, 2, 3})
	assert.False(t, b.IsEmpty())
	assert.Equal(t, Vec3{1, 2, 3}, b.Size())
	assert.InDelta(t, 0.5*math.Sqrt(14), b.DiagonalRadius(), 1e-12)

	assert.True(t, b.Intersects(Box3{Min: Vec3{1, 2, 3}, Max: Vec3{4, 4, 4}}))
	assert.False(t, b.Intersects(Box3{Min: Vec3{1.1, 0, 0}, Max: Vec3{2, 1, 1}}))
	assert.False(t, b.Intersects(EmptyBox()))
}

func TestBoxIntersectRay(t *testing.T) {
	b := Box3{Min: Vec3{-1, -1, 4}, Max: Vec3{1, 1, 6}}

	tHit, ok := b.IntersectRay(Vec3{}, PosZ, 100)
	assert.True(t, ok)
	assert.InDelta(t, 4, tHit, 1e-12)

	_, ok = b.IntersectRay(Vec3{}, PosZ, 3)
	assert.False(t, ok)

	_, ok = b.IntersectRay(Vec3{}, PosX, 100)
	assert.False(t, ok)
}

func TestMat3Columns(t *testing.T) {
	m := Mat3Columns(PosX, PosY, PosZ)
	assert.Equal(t, Mat3Identity(), m)
	assert.InDelta(t, 1, RotY(0.3).Det(), 1e-12)
	assert.Equal(t, m, m.Transpose())
}

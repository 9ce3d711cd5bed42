package mathutil

import "math"

// RotY returns a 3×3 rotation matrix around the Y axis. Angle in radians.
func RotY(a float64) Mat3 {
	c, s := math.Cos(a), math.Sin(a)
	return Mat3{
		c, 0, s,
		0, 1, 0,
		-s, 0, c,
	}
}

// Deg2Rad converts degrees to radians.
func Deg2Rad(d float64) float64 {
	return d * math.Pi / 180
}

// HorizontalDir returns the unit vector in the XZ plane at angle a from +X,
// turning toward +Z.
func HorizontalDir(a float64) Vec3 {
	return RotY(-a).MulVec3(PosX)
}

package mathutil

import "math"

// Box3 is an axis-aligned bounding box. The zero value is not empty;
// use EmptyBox to start an accumulation.
type Box3 struct {
	Min, Max Vec3
}

// EmptyBox returns a box that contains nothing and absorbs the first Union.
func EmptyBox() Box3 {
	inf := math.Inf(1)
	return Box3{Min: Vec3{inf, inf, inf}, Max: Vec3{-inf, -inf, -inf}}
}

func (b Box3) IsEmpty() bool {
	return b.Min[0] > b.Max[0] || b.Min[1] > b.Max[1] || b.Min[2] > b.Max[2]
}

func (b Box3) Union(o Box3) Box3 {
	if o.IsEmpty() {
		return b
	}
	if b.IsEmpty() {
		return o
	}
	return Box3{Min: b.Min.Min(o.Min), Max: b.Max.Max(o.Max)}
}

func (b Box3) UnionPoint(p Vec3) Box3 {
	if b.IsEmpty() {
		return Box3{Min: p, Max: p}
	}
	return Box3{Min: b.Min.Min(p), Max: b.Max.Max(p)}
}

// Intersects reports whether the closed boxes overlap.
func (b Box3) Intersects(o Box3) bool {
	if b.IsEmpty() || o.IsEmpty() {
		return false
	}
	for k := 0; k < 3; k++ {
		if b.Min[k] > o.Max[k] || o.Min[k] > b.Max[k] {
			return false
		}
	}
	return true
}

func (b Box3) Size() Vec3 {
	if b.IsEmpty() {
		return Vec3{}
	}
	return b.Max.Sub(b.Min)
}

func (b Box3) Center() Vec3 {
	return b.Min.Add(b.Max).Scale(0.5)
}

// DiagonalRadius is half the length of the box diagonal.
func (b Box3) DiagonalRadius() float64 {
	return 0.5 * b.Size().Len()
}

// IntersectRay returns the parametric entry distance of the ray o + t*d
// with the box, using the slab method. ok is false on a miss or when the
// box lies entirely behind tMax.
func (b Box3) IntersectRay(o, d Vec3, tMax float64) (t float64, ok bool) {
	tmin, tmax := 0.0, tMax
	for k := 0; k < 3; k++ {
		if math.Abs(d[k]) < 1e-15 {
			if o[k] < b.Min[k] || o[k] > b.Max[k] {
				return 0, false
			}
			continue
		}
		inv := 1.0 / d[k]
		t0 := (b.Min[k] - o[k]) * inv
		t1 := (b.Max[k] - o[k]) * inv
		if t0 > t1 {
			t0, t1 = t1, t0
		}
		if t0 > tmin {
			tmin = t0
		}
		if t1 < tmax {
			tmax = t1
		}
		if tmin > tmax {
			return 0, false
		}
	}
	return tmin, true
}

package math

import "math"

// DVec3 is a double-precision 3D vector. It is used where float32 would lose
// too much precision, such as accumulating angle-weighted normals over many
// small triangles.
type DVec3 struct {
	X, Y, Z float64
}

// DVec3FromVec3 promotes a single-precision vector.
func DVec3FromVec3(v Vec3) DVec3 {
	return DVec3{float64(v.X), float64(v.Y), float64(v.Z)}
}

// Vec3 demotes to single precision.
func (v DVec3) Vec3() Vec3 {
	return Vec3{float32(v.X), float32(v.Y), float32(v.Z)}
}

// Add returns v + other.
func (v DVec3) Add(other DVec3) DVec3 {
	return DVec3{v.X + other.X, v.Y + other.Y, v.Z + other.Z}
}

// Scale returns v * scalar.
func (v DVec3) Scale(s float64) DVec3 {
	return DVec3{v.X * s, v.Y * s, v.Z * s}
}

// Dot returns the dot product.
func (v DVec3) Dot(other DVec3) float64 {
	return v.X*other.X + v.Y*other.Y + v.Z*other.Z
}

// Cross returns the cross product.
func (v DVec3) Cross(other DVec3) DVec3 {
	return DVec3{
		v.Y*other.Z - v.Z*other.Y,
		v.Z*other.X - v.X*other.Z,
		v.X*other.Y - v.Y*other.X,
	}
}

// Length returns the magnitude.
func (v DVec3) Length() float64 {
	return math.Sqrt(v.X*v.X + v.Y*v.Y + v.Z*v.Z)
}

// NormalizeOrZero returns a unit vector, or the zero vector if v has zero or
// negligible length. It never produces NaN components.
func (v DVec3) NormalizeOrZero() DVec3 {
	l := v.Length()
	if l == 0 || math.IsNaN(l) || math.IsInf(l, 0) {
		return DVec3{}
	}
	return DVec3{v.X / l, v.Y / l, v.Z / l}
}

// AngleBetween returns the angle between v and other in radians, in [0, pi].
// Returns 0 if either vector has zero length, so degenerate edge vectors
// contribute a zero weight instead of NaN.
func (v DVec3) AngleBetween(other DVec3) float64 {
	ll := v.Length() * other.Length()
	if ll == 0 {
		return 0
	}
	cos := v.Dot(other) / ll
	if cos > 1 {
		cos = 1
	} else if cos < -1 {
		cos = -1
	}
	return math.Acos(cos)
}

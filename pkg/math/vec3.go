// Package math provides the vector, matrix and quaternion types used by the
// scene graph and the camera.
package math

import (
	"errors"

	"github.com/chewxy/math32"
)

// ErrZeroLength is returned when a vector too short to carry a direction
// is normalized.
var ErrZeroLength = errors.New("zero-length vector")

// minLength is the shortest vector NormalizeChecked accepts.
const minLength = 1e-8

// Vec3 is a 3D vector.
type Vec3 struct {
	X, Y, Z float32
}

// WorldUp is the fixed up axis of the world.
var WorldUp = Vec3{0, 1, 0}

// Add returns v + other.
func (v Vec3) Add(other Vec3) Vec3 {
	return Vec3{v.X + other.X, v.Y + other.Y, v.Z + other.Z}
}

// Sub returns v - other.
func (v Vec3) Sub(other Vec3) Vec3 {
	return Vec3{v.X - other.X, v.Y - other.Y, v.Z - other.Z}
}

// Scale returns v * scalar.
func (v Vec3) Scale(s float32) Vec3 {
	return Vec3{v.X * s, v.Y * s, v.Z * s}
}

// Negate returns -v.
func (v Vec3) Negate() Vec3 {
	return Vec3{-v.X, -v.Y, -v.Z}
}

// Dot returns the dot product.
func (v Vec3) Dot(other Vec3) float32 {
	return v.X*other.X + v.Y*other.Y + v.Z*other.Z
}

// Cross returns the cross product.
func (v Vec3) Cross(other Vec3) Vec3 {
	return Vec3{
		v.Y*other.Z - v.Z*other.Y,
		v.Z*other.X - v.X*other.Z,
		v.X*other.Y - v.Y*other.X,
	}
}

// Length returns the magnitude.
func (v Vec3) Length() float32 {
	return math32.Sqrt(v.X*v.X + v.Y*v.Y + v.Z*v.Z)
}

// Normalize returns a unit vector.
// A zero vector normalizes to the zero vector; use NormalizeChecked when the
// input is not known to be non-zero.
func (v Vec3) Normalize() Vec3 {
	l := v.Length()
	if l == 0 {
		return Vec3{}
	}
	return Vec3{v.X / l, v.Y / l, v.Z / l}
}

// NormalizeChecked returns a unit vector or ErrZeroLength.
func (v Vec3) NormalizeChecked() (Vec3, error) {
	l := v.Length()
	if l < minLength || math32.IsNaN(l) || math32.IsInf(l, 0) {
		return Vec3{}, ErrZeroLength
	}
	return Vec3{v.X / l, v.Y / l, v.Z / l}, nil
}

// Distance returns the distance to another point.
func (v Vec3) Distance(other Vec3) float32 {
	return v.Sub(other).Length()
}

// ApproxEqual reports whether every component differs by at most eps.
func (v Vec3) ApproxEqual(other Vec3, eps float32) bool {
	return math32.Abs(v.X-other.X) <= eps &&
		math32.Abs(v.Y-other.Y) <= eps &&
		math32.Abs(v.Z-other.Z) <= eps
}

// Array returns the vector as a [3]float32, the layout GL uniforms expect.
func (v Vec3) Array() [3]float32 {
	return [3]float32{v.X, v.Y, v.Z}
}

// Normalize is the free-function form of Vec3.Normalize.
func Normalize(v Vec3) Vec3 {
	return v.Normalize()
}

// Cross is the free-function form of Vec3.Cross.
func Cross(a, b Vec3) Vec3 {
	return a.Cross(b)
}

// Dot is the free-function form of Vec3.Dot.
func Dot(a, b Vec3) float32 {
	return a.Dot(b)
}

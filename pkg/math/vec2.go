// Package math provides the vector, matrix and curve types shared by the
// terrain generator and the viewer.
package math

import "math"

// Vec2 is a 2D vector. On the terrain plane X maps to world X and Y maps to
// world Z.
type Vec2 struct {
	X, Y float32
}

// Add returns v + other.
func (v Vec2) Add(other Vec2) Vec2 {
	return Vec2{v.X + other.X, v.Y + other.Y}
}

// Sub returns v - other.
func (v Vec2) Sub(other Vec2) Vec2 {
	return Vec2{v.X - other.X, v.Y - other.Y}
}

// Scale returns v * scalar.
func (v Vec2) Scale(s float32) Vec2 {
	return Vec2{v.X * s, v.Y * s}
}

// Dot returns the dot product.
func (v Vec2) Dot(other Vec2) float32 {
	return v.X*other.X + v.Y*other.Y
}

// SqrLength returns the squared magnitude.
func (v Vec2) SqrLength() float32 {
	return v.X*v.X + v.Y*v.Y
}

// Length returns the magnitude.
func (v Vec2) Length() float32 {
	return float32(math.Sqrt(float64(v.SqrLength())))
}

// Normalize returns a unit vector.
func (v Vec2) Normalize() Vec2 {
	l := v.Length()
	if l == 0 {
		return Vec2{}
	}
	return Vec2{v.X / l, v.Y / l}
}

// Distance returns the distance to another point.
func (v Vec2) Distance(other Vec2) float32 {
	return v.Sub(other).Length()
}

// SqrDistance returns the squared distance to another point.
func (v Vec2) SqrDistance(other Vec2) float32 {
	return v.Sub(other).SqrLength()
}

// Round rounds both components to the nearest integer, halves away from zero.
func (v Vec2) Round() (int, int) {
	return int(math.Round(float64(v.X))), int(math.Round(float64(v.Y)))
}

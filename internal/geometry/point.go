// Package geometry provides the plane arithmetic used by the glyph layout.
//
// Coordinates follow image conventions: x grows to the right, y grows down,
// and angles are measured in radians from +x toward +y.
package geometry

import "math"

// Point is a position or offset in the plane.
type Point struct {
	X, Y float64
}

// Pt is shorthand for Point{X: x, Y: y}.
func Pt(x, y float64) Point {
	return Point{X: x, Y: y}
}

// Polar returns the point at the given angle and distance from the origin.
func Polar(angle, distance float64) Point {
	return Point{X: math.Cos(angle) * distance, Y: math.Sin(angle) * distance}
}

// Add returns p+q.
func (p Point) Add(q Point) Point {
	return Point{X: p.X + q.X, Y: p.Y + q.Y}
}

// Sub returns p-q.
func (p Point) Sub(q Point) Point {
	return Point{X: p.X - q.X, Y: p.Y - q.Y}
}

// Mul scales p by k.
func (p Point) Mul(k float64) Point {
	return Point{X: p.X * k, Y: p.Y * k}
}

// Distance returns the distance from the origin.
func (p Point) Distance() float64 {
	return math.Hypot(p.X, p.Y)
}

// Direction returns the angle of p around the origin.
func (p Point) Direction() float64 {
	return math.Atan2(p.Y, p.X)
}

// Rotate turns p around the origin by angle.
func (p Point) Rotate(angle float64) Point {
	sin, cos := math.Sincos(angle)
	return Point{X: p.X*cos - p.Y*sin, Y: p.X*sin + p.Y*cos}
}

// Perp returns p turned a quarter turn toward +y.
func (p Point) Perp() Point {
	return Point{X: -p.Y, Y: p.X}
}

// RotateInto expresses p in a frame whose x axis points along base.
func RotateInto(p Point, base float64) Point {
	return p.Rotate(-base)
}

// Clamp limits v to the closed interval [lo, hi].
func Clamp(v, lo, hi float64) float64 {
	return math.Min(math.Max(v, lo), hi)
}

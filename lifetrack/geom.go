package lifetrack

import (
	"image"
	"math"
)

// Rectangle is an axis-aligned box in image coordinates
type Rectangle struct {
	X      float64
	Y      float64
	Width  float64
	Height float64
}

func NewRect(x, y, width, height float64) Rectangle {
	return Rectangle{
		X:      x,
		Y:      y,
		Width:  width,
		Height: height,
	}
}

func NewRectFrom(rect image.Rectangle) Rectangle {
	return Rectangle{
		X:      float64(rect.Min.X),
		Y:      float64(rect.Min.Y),
		Width:  float64(rect.Dx()),
		Height: float64(rect.Dy()),
	}
}

// IsEmpty reports whether the rectangle has negative extent on any axis.
// Zero-height or zero-width boxes are valid (a horizontal filament has one).
func (r Rectangle) IsEmpty() bool {
	return r.Width < 0 || r.Height < 0
}

// Expand grows the rectangle by margin on every side
func (r Rectangle) Expand(margin float64) Rectangle {
	return Rectangle{
		X:      r.X - margin,
		Y:      r.Y - margin,
		Width:  r.Width + 2*margin,
		Height: r.Height + 2*margin,
	}
}

// Overlaps reports whether the two boxes share at least a boundary point
func (r Rectangle) Overlaps(other Rectangle) bool {
	return r.X <= other.X+other.Width &&
		other.X <= r.X+r.Width &&
		r.Y <= other.Y+other.Height &&
		other.Y <= r.Y+r.Height
}

// Union returns the smallest rectangle containing both
func (r Rectangle) Union(other Rectangle) Rectangle {
	x0 := math.Min(r.X, other.X)
	y0 := math.Min(r.Y, other.Y)
	x1 := math.Max(r.X+r.Width, other.X+other.Width)
	y1 := math.Max(r.Y+r.Height, other.Y+other.Height)
	return Rectangle{X: x0, Y: y0, Width: x1 - x0, Height: y1 - y0}
}

// Center returns the middle point of the rectangle
func (r Rectangle) Center() Point {
	return Point{
		X: r.X + r.Width/2.0,
		Y: r.Y + r.Height/2.0,
	}
}

// Point is a position in pixel coordinates
type Point struct {
	X float64
	Y float64
}

// NewPoint creates point at (x, y)
func NewPoint(x, y float64) Point {
	return Point{
		X: x,
		Y: y,
	}
}

// NewPointFrom converts pixel index to a point
func NewPointFrom(point image.Point) Point {
	return Point{
		X: float64(point.X),
		Y: float64(point.Y),
	}
}

func euclideanDistance(p1, p2 Point) float64 {
	return math.Sqrt(math.Pow(p1.X-p2.X, 2) + math.Pow(p1.Y-p2.Y, 2))
}

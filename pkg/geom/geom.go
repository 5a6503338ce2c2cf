// Package geom provides integer schematic geometry: points, boxes, segment
// queries and orientation angles. Coordinates are internal units (IU).
package geom

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/spatial/r2"
)

// Point is a location or a displacement in internal units.
type Point struct {
	X, Y int
}

// Pt is shorthand for Point{x, y}.
func Pt(x, y int) Point { return Point{X: x, Y: y} }

func (p Point) Add(q Point) Point { return Point{p.X + q.X, p.Y + q.Y} }
func (p Point) Sub(q Point) Point { return Point{p.X - q.X, p.Y - q.Y} }
func (p Point) Neg() Point        { return Point{-p.X, -p.Y} }
func (p Point) IsZero() bool      { return p.X == 0 && p.Y == 0 }

// Scale multiplies both components by k.
func (p Point) Scale(k int) Point { return Point{p.X * k, p.Y * k} }

// Length returns the euclidean length of p taken as a vector.
func (p Point) Length() float64 {
	return math.Hypot(float64(p.X), float64(p.Y))
}

// Cross returns the z component of the cross product of p and q.
func (p Point) Cross(q Point) int64 {
	return int64(p.X)*int64(q.Y) - int64(p.Y)*int64(q.X)
}

func (p Point) String() string { return fmt.Sprintf("(%d,%d)", p.X, p.Y) }

// Less orders points by X then Y.
func (p Point) Less(q Point) bool {
	if p.X != q.X {
		return p.X < q.X
	}
	return p.Y < q.Y
}

func vec(p Point) r2.Vec { return r2.Vec{X: float64(p.X), Y: float64(p.Y)} }

func round(v r2.Vec) Point {
	return Point{int(math.Round(v.X)), int(math.Round(v.Y))}
}

// NearestPoint returns the point of the closed segment a-b closest to p,
// rounded to internal units.
func NearestPoint(a, b, p Point) Point {
	if a == b {
		return a
	}
	va, vb, vp := vec(a), vec(b), vec(p)
	d := r2.Sub(vb, va)
	t := r2.Dot(r2.Sub(vp, va), d) / r2.Dot(d, d)
	switch {
	case t <= 0:
		return a
	case t >= 1:
		return b
	}
	return round(r2.Add(va, r2.Scale(t, d)))
}

// DistanceToSegment returns the distance from p to the closed segment a-b.
func DistanceToSegment(a, b, p Point) float64 {
	n := NearestPoint(a, b, p)
	return r2.Norm(r2.Sub(vec(p), vec(n)))
}

// OnSegment reports whether p lies exactly on the closed segment a-b.
func OnSegment(a, b, p Point) bool {
	if a.Sub(p).Cross(b.Sub(p)) != 0 {
		return false
	}
	return min(a.X, b.X) <= p.X && p.X <= max(a.X, b.X) &&
		min(a.Y, b.Y) <= p.Y && p.Y <= max(a.Y, b.Y)
}

// HitSegment reports whether p is within accuracy of the segment a-b.
func HitSegment(a, b, p Point, accuracy int) bool {
	if accuracy <= 0 {
		return OnSegment(a, b, p)
	}
	return DistanceToSegment(a, b, p) <= float64(accuracy)
}

// Collinear reports whether the segments a1-b1 and a2-b2 lie on one line.
func Collinear(a1, b1, a2, b2 Point) bool {
	d := b1.Sub(a1)
	return d.Cross(a2.Sub(a1)) == 0 && d.Cross(b2.Sub(a1)) == 0
}

// Sign returns -1, 0 or 1.
func Sign(v int) int {
	switch {
	case v < 0:
		return -1
	case v > 0:
		return 1
	}
	return 0
}

// Abs returns |v|.
func Abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}

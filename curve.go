package glyph

import "math"

// Curve types for outline flattening.
// Based on kurbo patterns, adapted for Go idioms.

// maxFlattenDepth bounds subdivision so non-finite input terminates.
const maxFlattenDepth = 16

// Rect is an axis-aligned rectangle. Min holds the smallest coordinates.
type Rect struct {
	Min, Max Vec2
}

// EmptyRect returns a rectangle that any Extend call replaces.
func EmptyRect() Rect {
	inf := math.Inf(1)
	return Rect{Min: Vec2{X: inf, Y: inf}, Max: Vec2{X: -inf, Y: -inf}}
}

// Extend returns the smallest rectangle containing r and p.
func (r Rect) Extend(p Vec2) Rect {
	return Rect{
		Min: Vec2{X: math.Min(r.Min.X, p.X), Y: math.Min(r.Min.Y, p.Y)},
		Max: Vec2{X: math.Max(r.Max.X, p.X), Y: math.Max(r.Max.Y, p.Y)},
	}
}

// IsEmpty reports whether r contains no point.
func (r Rect) IsEmpty() bool {
	return r.Min.X > r.Max.X || r.Min.Y > r.Max.Y
}

// Width returns the width of the rectangle.
func (r Rect) Width() float64 { return r.Max.X - r.Min.X }

// Height returns the height of the rectangle.
func (r Rect) Height() float64 { return r.Max.Y - r.Min.Y }

// Bounds returns the bounding box of every point of contours, off-curve
// control points included.
func Bounds(contours []Contour) Rect {
	r := EmptyRect()
	for _, c := range contours {
		for _, p := range c {
			r = r.Extend(p.Vec2())
		}
	}
	return r
}

// QuadBez is a quadratic Bezier curve. P1 is the control point.
type QuadBez struct {
	P0, P1, P2 Vec2
}

// Eval evaluates the curve at parameter t (0 to 1).
func (q QuadBez) Eval(t float64) Vec2 {
	mt := 1.0 - t
	// (1-t)^2 * P0 + 2(1-t)t * P1 + t^2 * P2
	return Vec2{
		X: mt*mt*q.P0.X + 2*mt*t*q.P1.X + t*t*q.P2.X,
		Y: mt*mt*q.P0.Y + 2*mt*t*q.P1.Y + t*t*q.P2.Y,
	}
}

// Subdivide splits the curve at t=0.5 using de Casteljau.
func (q QuadBez) Subdivide() (QuadBez, QuadBez) {
	mid := q.Eval(0.5)
	return QuadBez{P0: q.P0, P1: q.P0.Lerp(q.P1, 0.5), P2: mid},
		QuadBez{P0: mid, P1: q.P1.Lerp(q.P2, 0.5), P2: q.P2}
}

// CubicBez is a cubic Bezier curve. P1 and P2 are control points.
type CubicBez struct {
	P0, P1, P2, P3 Vec2
}

// Eval evaluates the curve at parameter t (0 to 1).
func (c CubicBez) Eval(t float64) Vec2 {
	mt := 1.0 - t
	mt2 := mt * mt
	t2 := t * t
	return Vec2{
		X: mt2*mt*c.P0.X + 3*mt2*t*c.P1.X + 3*mt*t2*c.P2.X + t2*t*c.P3.X,
		Y: mt2*mt*c.P0.Y + 3*mt2*t*c.P1.Y + 3*mt*t2*c.P2.Y + t2*t*c.P3.Y,
	}
}

// Subdivide splits the curve at t=0.5 using de Casteljau.
func (c CubicBez) Subdivide() (CubicBez, CubicBez) {
	p01 := c.P0.Lerp(c.P1, 0.5)
	p12 := c.P1.Lerp(c.P2, 0.5)
	p23 := c.P2.Lerp(c.P3, 0.5)
	p012 := p01.Lerp(p12, 0.5)
	p123 := p12.Lerp(p23, 0.5)
	mid := p012.Lerp(p123, 0.5)

	return CubicBez{P0: c.P0, P1: p01, P2: p012, P3: mid},
		CubicBez{P0: mid, P1: p123, P2: p23, P3: c.P3}
}

// cubicFlatness returns 16 times the squared maximum distance from the
// control points to the chord, as an upper bound.
func cubicFlatness(c CubicBez) float64 {
	ux := 3.0*c.P1.X - 2.0*c.P0.X - c.P3.X
	uy := 3.0*c.P1.Y - 2.0*c.P0.Y - c.P3.Y
	vx := 3.0*c.P2.X - c.P0.X - 2.0*c.P3.X
	vy := 3.0*c.P2.Y - c.P0.Y - 2.0*c.P3.Y

	return math.Max(ux*ux+uy*uy, vx*vx+vy*vy)
}

// FlattenQuad calls fn with the end point of every line segment
// approximating the quadratic p0-p1-p2 within tolerance. p0 is not emitted.
func FlattenQuad(p0, p1, p2 Vec2, tolerance float64, fn func(Vec2)) {
	flattenQuadRecursive(QuadBez{P0: p0, P1: p1, P2: p2}, tolerance*tolerance, 0, fn)
}

func flattenQuadRecursive(q QuadBez, toleranceSq float64, depth int, fn func(Vec2)) {
	// Flatness test: distance from control point to chord midpoint
	d := q.P1.Sub(q.P0.Lerp(q.P2, 0.5))
	if depth >= maxFlattenDepth || d.Dot(d) <= toleranceSq {
		fn(q.P2)
		return
	}
	q1, q2 := q.Subdivide()
	flattenQuadRecursive(q1, toleranceSq, depth+1, fn)
	flattenQuadRecursive(q2, toleranceSq, depth+1, fn)
}

// FlattenCubic calls fn with the end point of every line segment
// approximating the cubic p0-p1-p2-p3 within tolerance. p0 is not emitted.
func FlattenCubic(p0, p1, p2, p3 Vec2, tolerance float64, fn func(Vec2)) {
	flattenCubicRecursive(CubicBez{P0: p0, P1: p1, P2: p2, P3: p3}, tolerance*tolerance, 0, fn)
}

func flattenCubicRecursive(c CubicBez, toleranceSq float64, depth int, fn func(Vec2)) {
	if depth >= maxFlattenDepth || cubicFlatness(c) <= toleranceSq*16 {
		fn(c.P3)
		return
	}
	c1, c2 := c.Subdivide()
	flattenCubicRecursive(c1, toleranceSq, depth+1, fn)
	flattenCubicRecursive(c2, toleranceSq, depth+1, fn)
}

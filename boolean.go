package glyph

import (
	"sync/atomic"

	"github.com/gogpu/glyph/internal/boolean"
)

// BooleanResolution is the flattening tolerance used when contours enter
// the boolean engine.
const BooleanResolution = 1.0 / 4

// FillRule selects how winding numbers decide insideness.
type FillRule uint8

const (
	// NonZero fills points with a non-zero winding number.
	NonZero FillRule = iota
	// EvenOdd fills points with an odd winding number.
	EvenOdd
)

// Polygon is a closed polyline; the closing edge is implicit.
type Polygon []Vec2

// BooleanEngine is the polygon boolean primitive used by Boolean nodes.
type BooleanEngine interface {
	// RemoveOverlap resolves self-intersections and overlaps in polys.
	RemoveOverlap(polys []Polygon, rule FillRule) []Polygon

	// Combine applies op to the regions of a and b.
	Combine(op BooleanOp, a, b []Polygon, ruleA, ruleB FillRule) []Polygon
}

type engineBox struct {
	engine BooleanEngine
}

var enginePtr atomic.Pointer[engineBox]

func init() {
	enginePtr.Store(&engineBox{engine: polygonEngine{}})
}

// SetBooleanEngine replaces the boolean primitive. Pass nil to restore the
// built-in engine.
func SetBooleanEngine(e BooleanEngine) {
	if e == nil {
		e = polygonEngine{}
	}
	enginePtr.Store(&engineBox{engine: e})
	primitiveEpoch.Add(1)
}

// ActiveBooleanEngine returns the boolean primitive currently in use.
func ActiveBooleanEngine() BooleanEngine {
	return enginePtr.Load().engine
}

// polygonEngine adapts internal/boolean.
type polygonEngine struct{}

func (polygonEngine) RemoveOverlap(polys []Polygon, rule FillRule) []Polygon {
	return fromInternal(boolean.RemoveOverlap(toInternal(polys), internalRule(rule)))
}

func (polygonEngine) Combine(op BooleanOp, a, b []Polygon, ruleA, ruleB FillRule) []Polygon {
	return fromInternal(boolean.Combine(internalOp(op),
		toInternal(a), toInternal(b), internalRule(ruleA), internalRule(ruleB)))
}

func internalRule(r FillRule) boolean.FillRule {
	if r == EvenOdd {
		return boolean.EvenOdd
	}
	return boolean.NonZero
}

func internalOp(op BooleanOp) boolean.Op {
	switch op {
	case Intersection:
		return boolean.Intersection
	case Difference:
		return boolean.Difference
	case Xor:
		return boolean.Xor
	default:
		return boolean.Union
	}
}

func toInternal(polys []Polygon) []boolean.Polygon {
	out := make([]boolean.Polygon, len(polys))
	for i, poly := range polys {
		p := make(boolean.Polygon, len(poly))
		for j, v := range poly {
			p[j] = boolean.Point{X: v.X, Y: v.Y}
		}
		out[i] = p
	}
	return out
}

func fromInternal(polys []boolean.Polygon) []Polygon {
	out := make([]Polygon, len(polys))
	for i, poly := range polys {
		p := make(Polygon, len(poly))
		for j, v := range poly {
			p[j] = Vec2{X: v.X, Y: v.Y}
		}
		out[i] = p
	}
	return out
}

// ContoursToPolygons flattens contours into polygons, subdividing curved
// segments until they deviate from their chords by at most tolerance.
func ContoursToPolygons(contours []Contour, tolerance float64) []Polygon {
	out := make([]Polygon, 0, len(contours))
	for _, c := range contours {
		if poly := flattenContour(c, tolerance); len(poly) > 0 {
			out = append(out, poly)
		}
	}
	return out
}

// polygonsToContours turns polygons into contours of corner points.
func polygonsToContours(polys []Polygon) []Contour {
	out := make([]Contour, 0, len(polys))
	for _, poly := range polys {
		c := make(Contour, len(poly))
		for i, v := range poly {
			c[i] = Point{Type: Corner, X: v.X, Y: v.Y}
		}
		out = append(out, c)
	}
	return out
}

// flattenContour walks a closed contour starting at its first on-curve
// point. Runs of Quadratic points imply on-curve midpoints; a CubicStart,
// CubicEnd pair forms a cubic segment.
func flattenContour(c Contour, tolerance float64) Polygon {
	n := len(c)
	start := -1
	for i, p := range c {
		if p.Type.OnCurve() {
			start = i
			break
		}
	}
	if start < 0 {
		poly := make(Polygon, n)
		for i, p := range c {
			poly[i] = p.Vec2()
		}
		return poly
	}

	poly := Polygon{c[start].Vec2()}
	add := func(v Vec2) { poly = append(poly, v) }
	cur := c[start].Vec2()
	var off []Point
	for k := 1; k <= n; k++ {
		p := c[(start+k)%n]
		if !p.Type.OnCurve() {
			off = append(off, p)
			continue
		}
		end := p.Vec2()
		switch {
		case len(off) == 0:
			add(end)
		case len(off) == 2 && off[0].Type == CubicStart && off[1].Type == CubicEnd:
			FlattenCubic(cur, off[0].Vec2(), off[1].Vec2(), end, tolerance, add)
		default:
			for i, q := range off {
				to := end
				if i+1 < len(off) {
					to = q.Vec2().Lerp(off[i+1].Vec2(), 0.5)
				}
				FlattenQuad(cur, q.Vec2(), to, tolerance, add)
				cur = to
			}
		}
		cur = end
		off = off[:0]
	}
	// The walk ends back on the start point.
	if len(poly) > 1 && poly[len(poly)-1] == poly[0] {
		poly = poly[:len(poly)-1]
	}
	return poly
}

package boolean

import (
	"math"

	clipper "github.com/ctessum/go.clipper"
)

// Scale is the number of integer grid steps per unit.
const Scale = 1 << 16

// limit bounds input coordinates so scaled values stay inside Clipper's
// 62-bit coordinate range.
const limit = 1 << 40

// Point is a 2D coordinate (internal copy to avoid an import cycle with glyph).
type Point struct {
	X, Y float64
}

// Polygon is a closed polyline; the closing edge is implicit.
type Polygon []Point

// Area returns the signed area (positive for counter-clockwise, y up).
func (p Polygon) Area() float64 {
	var sum float64
	for i := range p {
		j := (i + 1) % len(p)
		sum += p[i].X*p[j].Y - p[j].X*p[i].Y
	}
	return sum / 2
}

// FillRule decides which winding numbers count as inside.
type FillRule int

const (
	// NonZero fills points with a non-zero winding number.
	NonZero FillRule = iota
	// EvenOdd fills points with an odd winding number.
	EvenOdd
)

func (r FillRule) clipper() clipper.PolyFillType {
	if r == EvenOdd {
		return clipper.PftEvenOdd
	}
	return clipper.PftNonZero
}

// Op is a boolean operator.
type Op int

const (
	// Union keeps points inside either operand.
	Union Op = iota
	// Intersection keeps points inside both operands.
	Intersection
	// Difference keeps points inside the first operand but not the second.
	Difference
	// Xor keeps points inside exactly one operand.
	Xor
)

func (op Op) clipper() clipper.ClipType {
	switch op {
	case Intersection:
		return clipper.CtIntersection
	case Difference:
		return clipper.CtDifference
	case Xor:
		return clipper.CtXor
	default:
		return clipper.CtUnion
	}
}

// RemoveOverlap resolves self-intersections and overlaps among polys,
// returning the boundary of the region filled under rule.
func RemoveOverlap(polys []Polygon, rule FillRule) []Polygon {
	subject := toPaths(polys)
	if len(subject) == 0 {
		return nil
	}
	return execute(clipper.CtUnion, subject, nil, rule.clipper(), rule.clipper())
}

// Combine applies op to the regions filled by a (under ruleA) and b
// (under ruleB).
func Combine(op Op, a, b []Polygon, ruleA, ruleB FillRule) []Polygon {
	subject, clip := toPaths(a), toPaths(b)
	if len(subject) == 0 && len(clip) == 0 {
		return nil
	}
	return execute(op.clipper(), subject, clip, ruleA.clipper(), ruleB.clipper())
}

func execute(ct clipper.ClipType, subject, clip clipper.Paths, fillA, fillB clipper.PolyFillType) []Polygon {
	c := clipper.NewClipper(0)
	if len(subject) > 0 {
		c.AddPaths(subject, clipper.PtSubject, true)
	}
	if len(clip) > 0 {
		c.AddPaths(clip, clipper.PtClip, true)
	}
	solution, ok := c.Execute1(ct, fillA, fillB)
	if !ok {
		return nil
	}
	return fromPaths(solution)
}

// toPaths scales polygons onto the integer grid. Polygons with fewer than
// three points or with coordinates outside the grid range are skipped.
func toPaths(polys []Polygon) clipper.Paths {
	paths := make(clipper.Paths, 0, len(polys))
	for _, poly := range polys {
		if len(poly) < 3 || !inRange(poly) {
			continue
		}
		path := make(clipper.Path, len(poly))
		for i, p := range poly {
			path[i] = &clipper.IntPoint{X: snap(p.X), Y: snap(p.Y)}
		}
		paths = append(paths, path)
	}
	return paths
}

func inRange(poly Polygon) bool {
	for _, p := range poly {
		if !(math.Abs(p.X) <= limit && math.Abs(p.Y) <= limit) {
			return false
		}
	}
	return true
}

func snap(v float64) clipper.CInt {
	return clipper.CInt(math.Round(v * Scale))
}

func fromPaths(paths clipper.Paths) []Polygon {
	out := make([]Polygon, 0, len(paths))
	for _, path := range paths {
		if len(path) < 3 {
			continue
		}
		poly := make(Polygon, len(path))
		for i, p := range path {
			poly[i] = Point{X: float64(p.X) / Scale, Y: float64(p.Y) / Scale}
		}
		out = append(out, poly)
	}
	return out
}

package spline

import "math"

// Vec is a 2D vector (internal copy to avoid an import cycle with glyph).
type Vec struct {
	X, Y float64
}

func (v Vec) add(w Vec) Vec       { return Vec{X: v.X + w.X, Y: v.Y + w.Y} }
func (v Vec) sub(w Vec) Vec       { return Vec{X: v.X - w.X, Y: v.Y - w.Y} }
func (v Vec) scale(s float64) Vec { return Vec{X: v.X * s, Y: v.Y * s} }
func (v Vec) cross(w Vec) float64 { return v.X*w.Y - v.Y*w.X }
func (v Vec) length() float64     { return math.Hypot(v.X, v.Y) }

// Kind is the continuity class of a knot.
type Kind uint8

const (
	// Smooth4 requires curvature continuity.
	Smooth4 Kind = iota
	// Smooth2 requires tangent continuity only.
	Smooth2
	// Corner has independent incoming and outgoing tangents.
	Corner
	// Left starts a straight edge.
	Left
	// Right ends a straight edge.
	Right
)

// Knot is a control point of the spline.
type Knot struct {
	Kind Kind
	X, Y float64
}

func (k Knot) pos() Vec { return Vec{X: k.X, Y: k.Y} }

// Tangent holds the resolved tangent directions at a knot. In and Out are
// equal for every kind except Corner. Magnitudes are derivatives with
// respect to chord length, so they are close to 1 on well-behaved input.
type Tangent struct {
	In, Out Vec
}

// Sink receives the emitted outline.
type Sink interface {
	MoveTo(x, y float64)
	LineTo(x, y float64)
	CubicTo(c1x, c1y, c2x, c2y, x, y float64)
	Close()
}

// Stats reports how a solve went.
type Stats struct {
	Iterations int
	Converged  bool
	// ZeroChords counts segments whose endpoints coincide.
	ZeroChords int
}

// Default solver limits.
const (
	DefaultMaxIterations = 256
	DefaultTolerance     = 1e-12
)

// Solver resolves knot tangents and emits Bezier segments.
// A Solver holds only configuration and is safe for concurrent use.
type Solver struct {
	maxIterations int
	tolerance     float64
}

// New creates a solver with the default limits.
func New() *Solver {
	return &Solver{
		maxIterations: DefaultMaxIterations,
		tolerance:     DefaultTolerance,
	}
}

// SetMaxIterations sets the Gauss-Seidel sweep ceiling.
func (s *Solver) SetMaxIterations(n int) {
	if n > 0 {
		s.maxIterations = n
	}
}

// chords holds the per-segment chord lengths and unit directions.
type chords struct {
	h    []float64
	d    []Vec
	zero int
}

func segmentCount(n int, closed bool) int {
	if n < 2 {
		return 0
	}
	if closed {
		return n
	}
	return n - 1
}

func buildChords(knots []Knot, closed bool) chords {
	n := len(knots)
	m := segmentCount(n, closed)
	c := chords{h: make([]float64, m), d: make([]Vec, m)}
	for k := 0; k < m; k++ {
		delta := knots[(k+1)%n].pos().sub(knots[k].pos())
		h := delta.length()
		c.h[k] = h
		if h > 0 {
			c.d[k] = delta.scale(1 / h)
		} else {
			c.zero++
		}
	}
	return c
}

// neighbours returns the indices of the segments before and after knot i,
// or -1 when the segment does not exist.
func neighbours(i, n int, closed bool) (prev, next int) {
	prev, next = i-1, i
	if closed {
		if prev < 0 {
			prev = n - 1
		}
		return prev, next
	}
	if i == n-1 {
		next = -1
	}
	return prev, next
}

// Solve computes the tangents at every knot.
func (s *Solver) Solve(knots []Knot, closed bool) ([]Tangent, Stats) {
	n := len(knots)
	tangents := make([]Tangent, n)
	if n < 2 {
		return tangents, Stats{Converged: true}
	}
	c := buildChords(knots, closed)
	stats := Stats{ZeroChords: c.zero}

	for i := range knots {
		prev, next := neighbours(i, n, closed)
		t := bessel(c, prev, next)
		tangents[i] = Tangent{In: t, Out: t}
	}

	for iter := 1; iter <= s.maxIterations; iter++ {
		var delta float64
		for i := range knots {
			updated := s.relax(knots, tangents, c, i, closed)
			delta = math.Max(delta, updated.In.sub(tangents[i].In).length())
			delta = math.Max(delta, updated.Out.sub(tangents[i].Out).length())
			tangents[i] = updated
		}
		stats.Iterations = iter
		if delta <= s.tolerance {
			stats.Converged = true
			break
		}
	}
	return tangents, stats
}

// bessel returns the chord-weighted average of the adjacent chord directions.
func bessel(c chords, prev, next int) Vec {
	switch {
	case prev < 0 && next < 0:
		return Vec{}
	case prev < 0:
		return c.d[next]
	case next < 0:
		return c.d[prev]
	}
	hp, hn := c.h[prev], c.h[next]
	if hp+hn == 0 {
		return Vec{}
	}
	return c.d[prev].scale(hn).add(c.d[next].scale(hp)).scale(1 / (hp + hn))
}

// relax computes one Gauss-Seidel update of the tangents at knot i.
func (s *Solver) relax(knots []Knot, tangents []Tangent, c chords, i int, closed bool) Tangent {
	n := len(knots)
	prev, next := neighbours(i, n, closed)
	hasPrev := prev >= 0 && c.h[prev] > 0
	hasNext := next >= 0 && c.h[next] > 0

	switch knots[i].Kind {
	case Left:
		if hasNext {
			return Tangent{In: c.d[next], Out: c.d[next]}
		}
		if hasPrev {
			return Tangent{In: c.d[prev], Out: c.d[prev]}
		}
		return Tangent{}
	case Right:
		if hasPrev {
			return Tangent{In: c.d[prev], Out: c.d[prev]}
		}
		if hasNext {
			return Tangent{In: c.d[next], Out: c.d[next]}
		}
		return Tangent{}
	}

	// Corners and path ends take the natural end condition on each side.
	if knots[i].Kind == Corner || !hasPrev || !hasNext {
		var in, out Vec
		if hasPrev {
			before := tangents[(i-1+n)%n].Out
			in = c.d[prev].scale(3).sub(before).scale(0.5)
		}
		if hasNext {
			after := tangents[(i+1)%n].In
			out = c.d[next].scale(3).sub(after).scale(0.5)
		}
		if !hasPrev {
			in = out
		}
		if !hasNext {
			out = in
		}
		if knots[i].Kind != Corner {
			return Tangent{In: in, Out: in}
		}
		return Tangent{In: in, Out: out}
	}

	if knots[i].Kind == Smooth2 {
		t := bessel(c, prev, next)
		return Tangent{In: t, Out: t}
	}

	// C2 continuity for chord-length Hermite segments:
	// hn*m[i-1] + 2(hp+hn)*m[i] + hp*m[i+1] = 3(hn*dp + hp*dn)
	hp, hn := c.h[prev], c.h[next]
	before := tangents[(i-1+n)%n].Out
	after := tangents[(i+1)%n].In
	rhs := c.d[prev].scale(3 * hn).add(c.d[next].scale(3 * hp))
	m := rhs.sub(before.scale(hn)).sub(after.scale(hp)).scale(1 / (2 * (hp + hn)))
	return Tangent{In: m, Out: m}
}

// Segment is one cubic piece of the spline.
type Segment struct {
	P0, C1, C2, P1 Vec
}

// Straight reports whether both control points lie within precision of the
// chord P0-P1.
func (s Segment) Straight(precision float64) bool {
	chord := s.P1.sub(s.P0)
	h := chord.length()
	if h == 0 {
		return s.C1.sub(s.P0).length() <= precision && s.C2.sub(s.P0).length() <= precision
	}
	d1 := math.Abs(chord.cross(s.C1.sub(s.P0))) / h
	d2 := math.Abs(chord.cross(s.C2.sub(s.P0))) / h
	return d1 <= precision && d2 <= precision
}

// Segments returns the cubic segments of the spline for resolved tangents.
func Segments(knots []Knot, tangents []Tangent, closed bool) []Segment {
	n := len(knots)
	m := segmentCount(n, closed)
	segs := make([]Segment, 0, m)
	for k := 0; k < m; k++ {
		j := (k + 1) % n
		p0, p1 := knots[k].pos(), knots[j].pos()
		h := p1.sub(p0).length()
		segs = append(segs, Segment{
			P0: p0,
			C1: p0.add(tangents[k].Out.scale(h / 3)),
			C2: p1.sub(tangents[j].In.scale(h / 3)),
			P1: p1,
		})
	}
	return segs
}

// Emit solves the spline and writes it to sink. Segments whose control
// points deviate from the chord by at most precision are emitted as lines.
func (s *Solver) Emit(knots []Knot, closed bool, sink Sink, precision float64) Stats {
	if len(knots) == 0 {
		return Stats{Converged: true}
	}
	tangents, stats := s.Solve(knots, closed)
	sink.MoveTo(knots[0].X, knots[0].Y)
	for _, seg := range Segments(knots, tangents, closed) {
		if seg.Straight(precision) {
			sink.LineTo(seg.P1.X, seg.P1.Y)
			continue
		}
		sink.CubicTo(seg.C1.X, seg.C1.Y, seg.C2.X, seg.C2.Y, seg.P1.X, seg.P1.Y)
	}
	if closed {
		sink.Close()
	}
	return stats
}

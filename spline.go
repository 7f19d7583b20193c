package glyph

import (
	"sync/atomic"

	"github.com/gogpu/glyph/internal/spline"
)

// SplinePrecision is the tolerance used for every spline emission: a segment
// whose control points lie within this distance of its chord is emitted as
// a straight line.
const SplinePrecision = 1.0 / 64

// ResolvedKnot is a knot annotated with its resolved tangents. In and Out
// differ only at corners.
type ResolvedKnot struct {
	Knot
	In, Out Vec2
}

// SegmentSink accumulates emitted outline segments.
type SegmentSink interface {
	MoveTo(p Vec2)
	LineTo(p Vec2)
	CubicTo(c1, c2, p Vec2)
	Close()
}

// SplineSolver is the spline primitive that turns knot sequences into
// tangents and Bezier outlines.
type SplineSolver interface {
	// ResolveContinuity returns the knots with their resolved tangents.
	ResolveContinuity(knots []Knot, closed bool) ([]ResolvedKnot, error)

	// ExpandToBezier emits the outline through the knots into sink.
	ExpandToBezier(knots []Knot, closed bool, sink SegmentSink, precision float64) error
}

type solverBox struct {
	solver SplineSolver
}

var solverPtr atomic.Pointer[solverBox]

func init() {
	solverPtr.Store(&solverBox{solver: hermiteSolver{inner: spline.New()}})
}

// primitiveEpoch counts replacements of the spline solver and the boolean
// engine.
var primitiveEpoch atomic.Uint64

// PrimitiveEpoch changes every time SetSplineSolver or SetBooleanEngine is
// called. Caches of resolved contours include it in their keys.
func PrimitiveEpoch() uint64 { return primitiveEpoch.Load() }

// SetSplineSolver replaces the spline primitive used by Spline shapes and the
// stroke engine. Pass nil to restore the built-in solver. Shapes that already
// memoized their contours keep them.
func SetSplineSolver(s SplineSolver) {
	if s == nil {
		s = hermiteSolver{inner: spline.New()}
	}
	solverPtr.Store(&solverBox{solver: s})
	primitiveEpoch.Add(1)
}

// ActiveSplineSolver returns the spline primitive currently in use.
func ActiveSplineSolver() SplineSolver {
	return solverPtr.Load().solver
}

// hermiteSolver adapts internal/spline to the SplineSolver interface.
type hermiteSolver struct {
	inner *spline.Solver
}

func toSplineKnots(knots []Knot) []spline.Knot {
	out := make([]spline.Knot, len(knots))
	for i, k := range knots {
		out[i] = spline.Knot{Kind: splineKind(k.Type), X: k.X, Y: k.Y}
	}
	return out
}

func splineKind(t PointType) spline.Kind {
	switch t {
	case G4:
		return spline.Smooth4
	case G2:
		return spline.Smooth2
	case Left:
		return spline.Left
	case Right:
		return spline.Right
	default:
		return spline.Corner
	}
}

func logSolve(stats spline.Stats, n int) {
	if !stats.Converged {
		Logger().Warn("spline: solve did not converge",
			"knots", n, "iterations", stats.Iterations)
	}
	if stats.ZeroChords > 0 {
		Logger().Warn("spline: coincident knots", "knots", n, "zeroChords", stats.ZeroChords)
	}
}

func (h hermiteSolver) ResolveContinuity(knots []Knot, closed bool) ([]ResolvedKnot, error) {
	tangents, stats := h.inner.Solve(toSplineKnots(knots), closed)
	logSolve(stats, len(knots))
	out := make([]ResolvedKnot, len(knots))
	for i, k := range knots {
		out[i] = ResolvedKnot{
			Knot: k,
			In:   Vec2{X: tangents[i].In.X, Y: tangents[i].In.Y},
			Out:  Vec2{X: tangents[i].Out.X, Y: tangents[i].Out.Y},
		}
	}
	return out, nil
}

func (h hermiteSolver) ExpandToBezier(knots []Knot, closed bool, sink SegmentSink, precision float64) error {
	stats := h.inner.Emit(toSplineKnots(knots), closed, sinkAdapter{sink}, precision)
	logSolve(stats, len(knots))
	return nil
}

type sinkAdapter struct {
	sink SegmentSink
}

func (a sinkAdapter) MoveTo(x, y float64) { a.sink.MoveTo(Vec2{X: x, Y: y}) }
func (a sinkAdapter) LineTo(x, y float64) { a.sink.LineTo(Vec2{X: x, Y: y}) }
func (a sinkAdapter) CubicTo(c1x, c1y, c2x, c2y, x, y float64) {
	a.sink.CubicTo(Vec2{X: c1x, Y: c1y}, Vec2{X: c2x, Y: c2y}, Vec2{X: x, Y: y})
}
func (a sinkAdapter) Close() { a.sink.Close() }

// ContourSink collects emitted segments into contours, mapping every point
// through a transform.
type ContourSink struct {
	gizmo    Transform
	contours []Contour
	current  Contour
}

// NewContourSink creates a sink that applies gizmo to every point.
func NewContourSink(gizmo Transform) *ContourSink {
	return &ContourSink{gizmo: gizmo}
}

func (s *ContourSink) point(t PointType, p Vec2) Point {
	v := s.gizmo.Apply(p)
	return Point{Type: t, X: v.X, Y: v.Y}
}

// MoveTo starts a new contour.
func (s *ContourSink) MoveTo(p Vec2) {
	s.flush()
	s.current = Contour{s.point(Corner, p)}
}

// LineTo appends an on-curve point.
func (s *ContourSink) LineTo(p Vec2) {
	s.current = append(s.current, s.point(Corner, p))
}

// CubicTo appends two off-curve points and an on-curve point.
func (s *ContourSink) CubicTo(c1, c2, p Vec2) {
	s.current = append(s.current,
		s.point(CubicStart, c1),
		s.point(CubicEnd, c2),
		s.point(Corner, p))
}

// Close ends the current contour, dropping a final point that repeats the
// first one.
func (s *ContourSink) Close() {
	if n := len(s.current); n > 1 {
		first, last := s.current[0], s.current[n-1]
		if last.Type == Corner && first.X == last.X && first.Y == last.Y {
			s.current = s.current[:n-1]
		}
	}
	s.flush()
}

func (s *ContourSink) flush() {
	if len(s.current) > 0 {
		s.contours = append(s.contours, s.current)
	}
	s.current = nil
}

// Contours returns the collected contours, including an unterminated one.
func (s *ContourSink) Contours() []Contour {
	s.flush()
	return s.contours
}

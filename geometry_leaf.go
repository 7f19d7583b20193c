package glyph

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// Outline is a leaf holding explicit contour points.
type Outline struct {
	points []Point
}

// NewOutline creates an outline from a copy of points.
func NewOutline(points []Point) *Outline {
	return &Outline{points: append([]Point(nil), points...)}
}

// Points returns a copy of the outline's points.
func (o *Outline) Points() []Point {
	return append([]Point(nil), o.points...)
}

func (o *Outline) isGeometry() {}

// Contours returns the points as a single contour.
func (o *Outline) Contours() ([]Contour, error) {
	if o.IsEmpty() {
		return nil, nil
	}
	return []Contour{o.Points()}, nil
}

func (o *Outline) References() ([]Reference, bool) { return nil, false }

func (o *Outline) FilterTag(func(Tag) bool) Geometry { return o }

func (o *Outline) IsEmpty() bool { return len(o.points) == 0 }

func (o *Outline) Complexity() int {
	for _, p := range o.points {
		if !p.IsFinite() {
			return InfiniteComplexity
		}
	}
	return len(o.points)
}

func (o *Outline) UnlinkReferences() Geometry { return o }

func (o *Outline) ShapeString() (string, bool) {
	var b strings.Builder
	b.WriteString("Contour{")
	for _, p := range o.points {
		formatPoint(&b, p.Type, p.X, p.Y)
	}
	b.WriteByte('}')
	return b.String(), true
}

// Spline is a leaf holding spline knots rendered through a gizmo transform.
// Its contours are resolved with the active SplineSolver on first use.
type Spline struct {
	knots  []Knot
	closed bool
	gizmo  Transform
	memo   lazyContours
}

// NewSpline creates a spline shape from a copy of knots.
func NewSpline(knots []Knot, closed bool, gizmo Transform) *Spline {
	return &Spline{
		knots:  append([]Knot(nil), knots...),
		closed: closed,
		gizmo:  gizmo,
	}
}

// Knots returns a copy of the knots in gizmo space.
func (s *Spline) Knots() []Knot { return append([]Knot(nil), s.knots...) }

// Closed reports whether the spline is a closed loop.
func (s *Spline) Closed() bool { return s.closed }

// Gizmo returns the transform applied to emitted points.
func (s *Spline) Gizmo() Transform { return s.gizmo }

func (s *Spline) isGeometry() {}

// Contours resolves the spline. Degenerate splines fail with
// ErrDegenerateStroke.
func (s *Spline) Contours() ([]Contour, error) {
	if s.IsEmpty() {
		return nil, nil
	}
	return s.memo.get(s.resolve)
}

func (s *Spline) resolve() ([]Contour, error) {
	if c := s.Complexity(); c >= InfiniteComplexity {
		return nil, fmt.Errorf("%w: %d knots", ErrDegenerateStroke, len(s.knots))
	}
	sink := NewContourSink(s.gizmo)
	if err := ActiveSplineSolver().ExpandToBezier(s.knots, s.closed, sink, SplinePrecision); err != nil {
		return nil, err
	}
	return sink.Contours(), nil
}

func (s *Spline) References() ([]Reference, bool) { return nil, false }

func (s *Spline) FilterTag(func(Tag) bool) Geometry { return s }

func (s *Spline) IsEmpty() bool { return len(s.knots) == 0 }

// Complexity returns the knot count. Knots sharing fewer than two distinct
// positions, a non-finite knot or a non-finite gizmo are degenerate.
// Positions are compared on the shape-string grid.
func (s *Spline) Complexity() int {
	if len(s.knots) == 0 {
		return 0
	}
	if !s.gizmo.IsFinite() {
		return InfiniteComplexity
	}
	distinct := false
	for _, k := range s.knots {
		if !k.IsFinite() {
			return InfiniteComplexity
		}
		distinct = distinct || !samePosition(k, s.knots[0])
	}
	if !distinct {
		return InfiniteComplexity
	}
	return len(s.knots)
}

func samePosition(a, b Knot) bool {
	return math.Round(a.X*0x10000) == math.Round(b.X*0x10000) &&
		math.Round(a.Y*0x10000) == math.Round(b.Y*0x10000)
}

func (s *Spline) UnlinkReferences() Geometry { return s }

func (s *Spline) ShapeString() (string, bool) {
	var b strings.Builder
	b.WriteString("Spline{{")
	for _, k := range s.knots {
		formatPoint(&b, k.Type, k.X, k.Y)
	}
	b.WriteString("};")
	b.WriteString(strconv.FormatBool(s.closed))
	b.WriteString(";{")
	formatTransform(&b, s.gizmo)
	b.WriteString("}}")
	return b.String(), true
}

package stroke

import (
	"fmt"

	"github.com/gogpu/glyph"
)

// Default stroke parameters.
const (
	DefaultStroke    = 72
	DefaultContrast  = 1
	DefaultSuperness = 2.35
)

// normalIterations is the number of rail-midpoint refinements.
const normalIterations = 2

// Stroker expands knot scripts with fixed ambient parameters. A Stroker is
// immutable and safe for concurrent use.
type Stroker struct {
	gizmo     glyph.Transform
	stroke    float64
	contrast  float64
	superness float64
	solver    glyph.SplineSolver
}

// Option configures a Stroker.
type Option func(*Stroker)

// WithTransform sets the gizmo: the transform rails are rendered into.
func WithTransform(t glyph.Transform) Option {
	return func(s *Stroker) { s.gizmo = t }
}

// WithStroke sets the ambient stroke width.
func WithStroke(w float64) Option {
	return func(s *Stroker) { s.stroke = w }
}

// WithContrast sets the ratio of vertical to horizontal offset.
func WithContrast(c float64) Option {
	return func(s *Stroker) { s.contrast = c }
}

// WithSuperness sets the superellipse exponent used by arcs.
func WithSuperness(e float64) Option {
	return func(s *Stroker) { s.superness = e }
}

// WithSolver pins the spline primitive. Without it the solver active at
// expansion time is used.
func WithSolver(sv glyph.SplineSolver) Option {
	return func(s *Stroker) { s.solver = sv }
}

// NewStroker creates a Stroker.
func NewStroker(opts ...Option) *Stroker {
	s := &Stroker{
		gizmo:     glyph.Identity(),
		stroke:    DefaultStroke,
		contrast:  DefaultContrast,
		superness: DefaultSuperness,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *Stroker) splineSolver() glyph.SplineSolver {
	if s.solver != nil {
		return s.solver
	}
	return glyph.ActiveSplineSolver()
}

// Result is an expanded stroke.
type Result struct {
	// Geometry is the stroke outline, in gizmo space.
	Geometry glyph.Geometry
	// Knots are the placed center knots, in script space.
	Knots []glyph.Knot
	// LHS and RHS are the final rails, in gizmo space.
	LHS, RHS []glyph.Knot
}

// Dispiro expands a knot script into a variable-width stroke.
//
// Scripts whose knots occupy fewer than two distinct positions, or that
// hold non-finite coordinates, do not fail here: the result is a Spline
// through the center knots whose complexity is the sentinel, so
// glyph.MeasureComplexity reports glyph.ErrDegenerateStroke.
//
// The gizmo must be invertible. A singular gizmo fails with an error
// wrapping glyph.ErrSingularTransform.
func (s *Stroker) Dispiro(items ...Item) (*Result, error) {
	if _, err := s.gizmo.Inverse(); err != nil {
		return nil, fmt.Errorf("stroke: gizmo: %w", err)
	}
	c := newContext(s)
	sc, err := parseScript(c, items)
	if err != nil {
		return nil, err
	}
	for _, k := range sc.knots {
		c.place(k)
	}
	knots := c.controlKnots()

	if center := glyph.NewSpline(knots, sc.closed, s.gizmo); center.Complexity() >= glyph.InfiniteComplexity {
		glyph.Logger().Warn("stroke: degenerate script", "knots", len(knots))
		return &Result{Geometry: center, Knots: knots}, nil
	}

	solver := s.splineSolver()
	resolved, err := solver.ResolveContinuity(knots, sc.closed)
	if err != nil {
		return nil, fmt.Errorf("stroke: resolve center: %w", err)
	}
	c.setTangents(resolved)

	for i := 0; i < normalIterations; i++ {
		mids, err := c.pass2Knots(c.contrast)
		if err != nil {
			return nil, fmt.Errorf("stroke: refine normals: %w", err)
		}
		resolved, err = solver.ResolveContinuity(mids, sc.closed)
		if err != nil {
			return nil, fmt.Errorf("stroke: refine normals: %w", err)
		}
		c.setTangents(resolved)
	}
	if n := c.degenerateTangents(); n > 0 {
		glyph.Logger().Warn("stroke: degenerate tangents", "count", n)
	}

	lhs, rhs := c.expand(c.contrast)
	res := &Result{Knots: knots, LHS: lhs, RHS: rhs}
	if sc.closed {
		res.Geometry = glyph.NewCombined(
			glyph.NewSpline(dropClosing(lhs), true, glyph.Identity()),
			glyph.NewSpline(reverseKnots(dropClosing(rhs)), true, glyph.Identity()),
		)
	} else {
		res.Geometry = glyph.NewSpline(capRails(lhs, rhs), true, glyph.Identity())
	}
	glyph.Logger().Debug("stroke: expanded", "knots", len(knots), "closed", sc.closed)
	return res, nil
}

// Outline builds a spline-outline shape through the script's knots with
// the ambient gizmo. Knot actions are ignored.
func (s *Stroker) Outline(items ...Item) (*glyph.Spline, error) {
	sc, err := parseScript(newContext(s), items)
	if err != nil {
		return nil, err
	}
	knots := make([]glyph.Knot, len(sc.knots))
	for i, k := range sc.knots {
		knots[i] = k.knot()
	}
	return glyph.NewSpline(knots, sc.closed, s.gizmo), nil
}

func (c *Context) degenerateTangents() int {
	n := 0
	for _, k := range c.knots {
		if !k.hasHeading && k.tangent.Length() == 0 {
			n++
		}
	}
	return n
}

// dropClosing removes a final knot that repeats the first.
func dropClosing(rail []glyph.Knot) []glyph.Knot {
	n := len(rail)
	if n > 1 && rail[n-1].Vec2().Approx(rail[0].Vec2(), 1e-9) {
		return rail[:n-1]
	}
	return rail
}

func reverseKnots(knots []glyph.Knot) []glyph.Knot {
	out := make([]glyph.Knot, len(knots))
	for i, k := range knots {
		out[len(knots)-1-i] = k
	}
	return out
}

// capRails joins the left rail and the reversed right rail into one closed
// path. The rail ends become corners so the caps stay sharp.
func capRails(lhs, rhs []glyph.Knot) []glyph.Knot {
	l := append([]glyph.Knot(nil), lhs...)
	r := reverseKnots(rhs)
	l[0].Type, l[len(l)-1].Type = glyph.Corner, glyph.Corner
	r[0].Type, r[len(r)-1].Type = glyph.Corner, glyph.Corner
	return append(l, r...)
}

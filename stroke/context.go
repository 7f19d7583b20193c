package stroke

import (
	"math"

	"github.com/gogpu/glyph"
)

// Cardinal headings for the heading actions.
var (
	Upward    = glyph.V2(0, 1)
	Downward  = glyph.V2(0, -1)
	Leftward  = glyph.V2(-1, 0)
	Rightward = glyph.V2(1, 0)
)

// controlKnot is a placed knot with its stroke state. Positions and
// tangents are in script space; rails are produced in gizmo space.
type controlKnot struct {
	glyph.Knot
	d1, d2      float64
	heading     glyph.Vec2
	hasHeading  bool
	unimportant bool
	tangent     glyph.Vec2
}

// Context is the state an Action operates on: ambient parameters, the
// knots placed so far and the widths new knots inherit.
type Context struct {
	gizmo     glyph.Transform
	stroke    float64
	contrast  float64
	superness float64
	closed    bool

	knots                []controlKnot
	defaultD1, defaultD2 float64
}

func newContext(s *Stroker) *Context {
	return &Context{
		gizmo:     s.gizmo,
		stroke:    s.stroke,
		contrast:  s.contrast,
		superness: s.superness,
		defaultD1: s.stroke / 2,
		defaultD2: s.stroke / 2,
	}
}

// Gizmo returns the transform rails are rendered into.
func (c *Context) Gizmo() glyph.Transform { return c.gizmo }

// Stroke returns the ambient stroke width.
func (c *Context) Stroke() float64 { return c.stroke }

// Superness returns the ambient superellipse exponent.
func (c *Context) Superness() float64 { return c.superness }

// Contrast returns the contrast in effect.
func (c *Context) Contrast() float64 { return c.contrast }

func (c *Context) last() *controlKnot {
	if len(c.knots) == 0 {
		return nil
	}
	return &c.knots[len(c.knots)-1]
}

// SetWidth assigns the left and right widths of the last knot. Knots
// placed later inherit them.
func (c *Context) SetWidth(l, r float64) {
	c.defaultD1, c.defaultD2 = l, r
	if k := c.last(); k != nil {
		k.d1, k.d2 = l, r
	}
}

// HeadsTo fixes the direction of travel at the last knot, overriding the
// tangent found by the spline.
func (c *Context) HeadsTo(d glyph.Vec2) {
	if k := c.last(); k != nil {
		k.heading, k.hasHeading = d, true
	}
}

// SetUnimportant excludes the last knot from rail fitting: its rail points
// are interpolated from its important neighbours.
func (c *Context) SetUnimportant() {
	if k := c.last(); k != nil {
		k.unimportant = true
	}
}

// SetType changes the continuity class of the last knot.
func (c *Context) SetType(t glyph.PointType) {
	if k := c.last(); k != nil {
		k.Type = t
	}
}

// DisableContrast makes the rest of the expansion use contrast 1.
func (c *Context) DisableContrast() { c.contrast = 1 }

func (c *Context) place(k Control) {
	c.knots = append(c.knots, controlKnot{
		Knot: k.knot(),
		d1:   c.defaultD1,
		d2:   c.defaultD2,
	})
	c.SetType(k.Type)
	if k.Action != nil {
		k.Action(c)
	}
}

func (c *Context) controlKnots() []glyph.Knot {
	out := make([]glyph.Knot, len(c.knots))
	for i, k := range c.knots {
		out[i] = k.Knot
	}
	return out
}

// setTangents records resolved tangents. Each knot takes its incoming
// tangent, except the first, which takes its outgoing one on open and
// closed paths alike. Its rail normal follows the segment leaving it; on
// open paths there is no incoming segment at all.
func (c *Context) setTangents(resolved []glyph.ResolvedKnot) {
	for i := range c.knots {
		if i == 0 {
			c.knots[i].tangent = resolved[i].Out
			continue
		}
		c.knots[i].tangent = resolved[i].In
	}
}

// normal returns the unit left normal of knot k in gizmo space.
func (c *Context) normal(k *controlKnot) glyph.Vec2 {
	d := k.tangent
	if k.hasHeading {
		d = k.heading
	}
	return c.gizmo.ApplyOffset(d).Normalize().Perp()
}

// expand computes both rails in gizmo space.
func (c *Context) expand(contrast float64) (lhs, rhs []glyph.Knot) {
	lhs = make([]glyph.Knot, len(c.knots))
	rhs = make([]glyph.Knot, len(c.knots))
	for i := range c.knots {
		k := &c.knots[i]
		n := c.normal(k)
		o := glyph.V2(n.X, contrast*n.Y)
		p := c.gizmo.Apply(k.Vec2())
		l := p.Add(o.Mul(k.d1))
		r := p.Sub(o.Mul(k.d2))
		lhs[i] = glyph.Knot{Type: k.Type, X: l.X, Y: l.Y}
		rhs[i] = glyph.Knot{Type: k.Type.Reverse(), X: r.X, Y: r.Y}
	}
	c.interpolateUnimportant(lhs, rhs)
	return lhs, rhs
}

// pass2Knots returns the rail midpoints in script space.
func (c *Context) pass2Knots(contrast float64) ([]glyph.Knot, error) {
	lhs, rhs := c.expand(contrast)
	mids := make([]glyph.Knot, len(c.knots))
	for i := range c.knots {
		m := lhs[i].Vec2().Lerp(rhs[i].Vec2(), 0.5)
		p, err := c.gizmo.Unapply(m)
		if err != nil {
			return nil, err
		}
		mids[i] = glyph.Knot{Type: c.knots[i].Type, X: p.X, Y: p.Y}
	}
	return mids, nil
}

// neighbour walks from i in direction step to the nearest important knot.
func (c *Context) neighbour(i, step int) (int, bool) {
	n := len(c.knots)
	for j, seen := i+step, 1; seen < n; j, seen = j+step, seen+1 {
		if !c.closed && (j < 0 || j >= n) {
			return 0, false
		}
		j = (j + n) % n
		if !c.knots[j].unimportant {
			return j, true
		}
	}
	return 0, false
}

// interpolateUnimportant places the rail points of unimportant knots
// between those of their important neighbours, axis by axis.
func (c *Context) interpolateUnimportant(lhs, rhs []glyph.Knot) {
	for j := range c.knots {
		if !c.knots[j].unimportant {
			continue
		}
		before, ok1 := c.neighbour(j, -1)
		after, ok2 := c.neighbour(j, +1)
		if !ok1 || !ok2 || before == after {
			continue
		}
		pb := c.gizmo.Apply(c.knots[before].Vec2())
		pj := c.gizmo.Apply(c.knots[j].Vec2())
		pa := c.gizmo.Apply(c.knots[after].Vec2())

		da, db := pj.Sub(pb).Length(), pa.Sub(pj).Length()
		chord := 0.5
		if da+db > 0 {
			chord = da / (da + db)
		}
		rx := axisRatio(pb.X, pj.X, pa.X, chord)
		ry := axisRatio(pb.Y, pj.Y, pa.Y, chord)

		lhs[j].X = mix(lhs[before].X, lhs[after].X, rx)
		lhs[j].Y = mix(lhs[before].Y, lhs[after].Y, ry)
		rhs[j].X = mix(rhs[before].X, rhs[after].X, rx)
		rhs[j].Y = mix(rhs[before].Y, rhs[after].Y, ry)
	}
}

func axisRatio(a, x, b, fallback float64) float64 {
	if math.Abs(b-a) < 1e-9 {
		return fallback
	}
	return (x - a) / (b - a)
}

func mix(a, b, t float64) float64 {
	return a + (b-a)*t
}

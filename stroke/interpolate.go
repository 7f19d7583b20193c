package stroke

import (
	"math"
	"sync"

	"github.com/gogpu/glyph"
)

// Interpolation is a placeholder knot resolved from the concrete knots
// immediately before and after it (cyclically) during flattening.
type Interpolation struct {
	resolve func(c *Context, before, after Control) []Item
}

func (Interpolation) isItem() {}

// NewInterpolation creates an interpolation from a resolver. The resolver
// may return further interpolations; they are resolved in a later pass.
func NewInterpolation(resolve func(c *Context, before, after Control) []Item) Interpolation {
	return Interpolation{resolve: resolve}
}

// Ratio is a blend position between two knots, per axis. T is the curve
// parameter the ratio was sampled at, when Timed.
type Ratio struct {
	X, Y  float64
	T     float64
	Timed bool
}

type interpConfig struct {
	action   Action
	blend    func(t float64) Action
	knotType glyph.PointType
}

// InterpOption configures the knots an interpolation produces.
type InterpOption func(*interpConfig)

// WithAction sets the action of produced knots instead of Unimportant.
func WithAction(a Action) InterpOption {
	return func(c *interpConfig) { c.action = a }
}

// WithBlend derives the action of each produced knot from its curve
// parameter. It applies to ratios sampled from a curve.
func WithBlend(blend func(t float64) Action) InterpOption {
	return func(c *interpConfig) { c.blend = blend }
}

// WithKnotType sets the type of produced knots.
func WithKnotType(t glyph.PointType) InterpOption {
	return func(c *interpConfig) { c.knotType = t }
}

func configure(defaultType glyph.PointType, opts []InterpOption) interpConfig {
	cfg := interpConfig{knotType: defaultType}
	for _, opt := range opts {
		opt(&cfg)
	}
	return cfg
}

func (cfg interpConfig) actionFor(r Ratio) Action {
	switch {
	case cfg.blend != nil && r.Timed:
		return cfg.blend(r.T)
	case cfg.action != nil:
		return cfg.action
	default:
		return Unimportant
	}
}

func blendKnot(t glyph.PointType, before, after Control, rx, ry float64, a Action) Control {
	return Control{
		Type:   t,
		X:      mix(before.X, after.X, rx),
		Y:      mix(before.Y, after.Y, ry),
		Action: a,
	}
}

// AlsoThru places a g4 knot at ratios (rx, ry) between its neighbours.
func AlsoThru(rx, ry float64, opts ...InterpOption) Interpolation {
	cfg := configure(glyph.G4, opts)
	return NewInterpolation(func(_ *Context, before, after Control) []Item {
		return []Item{blendKnot(cfg.knotType, before, after, rx, ry, cfg.actionFor(Ratio{}))}
	})
}

// AlsoThruG2 is AlsoThru with a g2 knot.
func AlsoThruG2(rx, ry float64, opts ...InterpOption) Interpolation {
	return AlsoThru(rx, ry, append([]InterpOption{WithKnotType(glyph.G2)}, opts...)...)
}

// SNeck places two g2 knots around the midpoint, pushed apart by (px, py)
// sixths, with width sw split by ps so the stroke swaps sides through the
// neck.
func SNeck(px, py, sw, ps float64) Interpolation {
	return NewInterpolation(func(_ *Context, before, after Control) []Item {
		return []Item{
			blendKnot(glyph.G2, before, after, 0.5-px/6, 0.5-py/6, Widths(sw*ps, sw*(1-ps))),
			blendKnot(glyph.G2, before, after, 0.5+px/6, 0.5+py/6, Widths(sw*(1-ps), sw*ps)),
		}
	})
}

// AlsoThruThem places one knot per ratio, g2 unless WithKnotType says
// otherwise.
func AlsoThruThem(ratios []Ratio, opts ...InterpOption) Interpolation {
	cfg := configure(glyph.G2, opts)
	rs := append([]Ratio(nil), ratios...)
	return NewInterpolation(func(_ *Context, before, after Control) []Item {
		items := make([]Item, len(rs))
		for i, r := range rs {
			items[i] = blendKnot(cfg.knotType, before, after, r.X, r.Y, cfg.actionFor(r))
		}
		return items
	})
}

// DefaultBezierSamples is the sample count used by BezControls and
// QuadControls when none is given.
const DefaultBezierSamples = 3

func bez3(a, b, c, d, t float64) float64 {
	mt := 1 - t
	return mt*mt*mt*a + 3*mt*mt*t*b + 3*mt*t*t*c + t*t*t*d
}

func bezRatios(x1, y1, x2, y2 float64, samples int) []Ratio {
	if samples <= 0 {
		samples = DefaultBezierSamples
	}
	var rs []Ratio
	for j := 1; j < samples; j++ {
		t := float64(j) / float64(samples)
		rs = append(rs, Ratio{X: bez3(0, x1, x2, 1, t), Y: bez3(0, y1, y2, 1, t), T: t, Timed: true})
	}
	return rs
}

// BezControls samples the cubic whose normalized control points are
// (x1, y1) and (x2, y2), placing samples-1 knots between the neighbours.
func BezControls(x1, y1, x2, y2 float64, samples int, opts ...InterpOption) Interpolation {
	return AlsoThruThem(bezRatios(x1, y1, x2, y2, samples), opts...)
}

// QuadControls samples the quadratic whose normalized control point is
// (x1, y1).
func QuadControls(x1, y1 float64, samples int, opts ...InterpOption) Interpolation {
	return AlsoThruThem(bezRatios(x1*2/3, y1*2/3, mix(1, x1, 2.0/3), mix(1, y1, 2.0/3), samples), opts...)
}

// DefaultArcSteps is the arc sample count used when none is given.
const DefaultArcSteps = 6

type arcKey struct {
	samples   int
	superness float64
}

type arcRatios struct {
	hv, vh []Ratio
}

// arcCache memoizes ratios built with the ambient superness.
var arcCache sync.Map // arcKey -> arcRatios

func buildArc(samples int, superness float64) arcRatios {
	var a arcRatios
	for j := 1; j < samples; j++ {
		theta := float64(j+1) / float64(samples+2) * math.Pi / 2
		c := math.Pow(math.Cos(theta), 2/superness)
		s := math.Pow(math.Sin(theta), 2/superness)
		a.hv = append(a.hv, Ratio{X: s, Y: 1 - c})
		a.vh = append(a.vh, Ratio{X: 1 - c, Y: s})
	}
	return a
}

func arcFor(c *Context, samples int, superness float64) arcRatios {
	if samples <= 0 {
		samples = DefaultArcSteps
	}
	if superness > 0 {
		return buildArc(samples, superness)
	}
	key := arcKey{samples: samples, superness: c.Superness()}
	if v, ok := arcCache.Load(key); ok {
		return v.(arcRatios)
	}
	v, _ := arcCache.LoadOrStore(key, buildArc(samples, key.superness))
	return v.(arcRatios)
}

// ArcHV samples a superellipse quadrant that leaves horizontally and
// arrives vertically. samples <= 0 uses DefaultArcSteps; superness <= 0
// uses the ambient superness.
func ArcHV(samples int, superness float64) Interpolation {
	return NewInterpolation(func(c *Context, before, after Control) []Item {
		return AlsoThruThem(arcFor(c, samples, superness).hv).resolve(c, before, after)
	})
}

// ArcVH samples a superellipse quadrant that leaves vertically and arrives
// horizontally.
func ArcVH(samples int, superness float64) Interpolation {
	return NewInterpolation(func(c *Context, before, after Control) []Item {
		return AlsoThruThem(arcFor(c, samples, superness).vh).resolve(c, before, after)
	})
}

// ComplexThru resolves several interpolations between the same neighbours,
// in order.
func ComplexThru(interps ...Interpolation) Interpolation {
	return NewInterpolation(func(c *Context, before, after Control) []Item {
		var items []Item
		for _, in := range interps {
			items = append(items, Group(in.resolve(c, before, after)))
		}
		return items
	})
}

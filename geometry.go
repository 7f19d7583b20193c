package glyph

import (
	"fmt"
	"math"
	"strconv"
	"strings"
	"sync/atomic"
)

// InfiniteComplexity is the complexity reported for degenerate geometry:
// too few knots or non-finite coordinates.
const InfiniteComplexity = 0xffff

// Tag is an opaque label attached to geometry by Tagged. Tags must be
// comparable.
type Tag any

// Reference is a positional use of another glyph.
type Reference struct {
	Glyph *Glyph
	X, Y  float64
}

// Geometry is an immutable node of a glyph shape tree.
//
// The set of implementations is closed: *Outline, *Spline, *Ref, *Tagged,
// *Transformed, *Combined and *Boolean. Derived values are memoized inside
// nodes, so a node may be shared between goroutines.
type Geometry interface {
	// Contours resolves the node to contours in its own coordinate space.
	// The returned slices may be shared with a memo and must not be modified.
	Contours() ([]Contour, error)

	// References returns the node as a list of positioned glyph references.
	// ok is false unless the node is a pure translate-only composition of
	// references.
	References() (refs []Reference, ok bool)

	// FilterTag drops every Tagged node whose tag is rejected by keep.
	// It returns nil when the node itself is rejected.
	FilterTag(keep func(Tag) bool) Geometry

	// IsEmpty reports whether the node resolves to nothing.
	IsEmpty() bool

	// Complexity returns the point or knot count, or InfiniteComplexity for
	// degenerate geometry.
	Complexity() int

	// UnlinkReferences replaces every Ref with a transformed copy of its
	// target geometry.
	UnlinkReferences() Geometry

	// ShapeString returns the canonical serialization used for hashing.
	// ok is false when some part of the tree cannot be serialized.
	ShapeString() (s string, ok bool)

	isGeometry()
}

// MeasureComplexity returns g's complexity, failing with ErrDegenerateStroke
// when g is degenerate.
func MeasureComplexity(g Geometry) (int, error) {
	c := g.Complexity()
	if c >= InfiniteComplexity {
		return c, ErrDegenerateStroke
	}
	return c, nil
}

// CombineWith returns the concatenation of a and b. A Combined a is extended
// rather than nested, as is a Combined b.
func CombineWith(a, b Geometry) *Combined {
	var parts []Geometry
	if ca, ok := a.(*Combined); ok {
		parts = append(parts, ca.parts...)
	} else {
		parts = append(parts, a)
	}
	if cb, ok := b.(*Combined); ok {
		parts = append(parts, cb.parts...)
	} else {
		parts = append(parts, b)
	}
	return &Combined{parts: parts}
}

// TransformGeometry applies t to g. The identity is elided, and a
// translation of a translated node collapses into a single Transformed.
func TransformGeometry(g Geometry, t Transform) Geometry {
	if t.IsIdentity() {
		return g
	}
	if inner, ok := g.(*Transformed); ok && t.IsTranslate() && inner.transform.IsTranslate() {
		return NewTransformed(inner.geom, Translate(inner.transform.X+t.X, inner.transform.Y+t.Y))
	}
	return NewTransformed(g, t)
}

// sumComplexity adds child complexities, saturating at InfiniteComplexity.
func sumComplexity(parts []Geometry) int {
	total := 0
	for _, p := range parts {
		total += p.Complexity()
		if total >= InfiniteComplexity {
			return InfiniteComplexity
		}
	}
	return total
}

// contourMemo holds a resolved result. Both fields are immutable once stored.
type contourMemo struct {
	contours []Contour
	err      error
}

// lazyContours computes contours at most once per winner. Concurrent callers
// may each compute, but only the first stored result is ever returned.
type lazyContours struct {
	p atomic.Pointer[contourMemo]
}

func (l *lazyContours) get(compute func() ([]Contour, error)) ([]Contour, error) {
	if m := l.p.Load(); m != nil {
		return m.contours, m.err
	}
	m := &contourMemo{}
	m.contours, m.err = compute()
	if !l.p.CompareAndSwap(nil, m) {
		m = l.p.Load()
		Logger().Debug("glyph: discarded duplicate memo")
	}
	return m.contours, m.err
}

// formatN writes x on the 1/65536 grid.
func formatN(b *strings.Builder, x float64) {
	if !isFinite(x) {
		b.WriteString(strconv.FormatFloat(x, 'g', -1, 64))
		return
	}
	v := math.Round(x * 0x10000)
	if v == 0 {
		v = 0 // drop negative zero
	}
	b.WriteString(strconv.FormatFloat(v, 'f', 0, 64))
}

func formatPoint(b *strings.Builder, t PointType, x, y float64) {
	b.WriteByte('(')
	b.WriteString(t.String())
	b.WriteByte(';')
	formatN(b, x)
	b.WriteByte(';')
	formatN(b, y)
	b.WriteByte(')')
}

func formatTransform(b *strings.Builder, t Transform) {
	for i, v := range [...]float64{t.XX, t.XY, t.YX, t.YY, t.X, t.Y} {
		if i > 0 {
			b.WriteByte(',')
		}
		formatN(b, v)
	}
}

// joinShapes serializes parts separated by commas.
func joinShapes(b *strings.Builder, parts []Geometry) bool {
	for i, p := range parts {
		s, ok := p.ShapeString()
		if !ok {
			return false
		}
		if i > 0 {
			b.WriteByte(',')
		}
		b.WriteString(s)
	}
	return true
}

// unresolvable wraps a participant failure.
func unresolvable(what string, err error) error {
	return fmt.Errorf("%w: %s: %w", ErrUnresolvableComposite, what, err)
}

package glyph

import (
	"fmt"
	"strings"
)

// Combined concatenates the contours of its parts without boolean
// semantics.
type Combined struct {
	parts []Geometry
}

// NewCombined creates a combination of parts, in order.
func NewCombined(parts ...Geometry) *Combined {
	return &Combined{parts: append([]Geometry(nil), parts...)}
}

// Parts returns a copy of the parts.
func (c *Combined) Parts() []Geometry { return append([]Geometry(nil), c.parts...) }

func (c *Combined) isGeometry() {}

func (c *Combined) Contours() ([]Contour, error) {
	var out []Contour
	for _, p := range c.parts {
		cs, err := p.Contours()
		if err != nil {
			return nil, err
		}
		out = append(out, cs...)
	}
	return out, nil
}

func (c *Combined) References() ([]Reference, bool) {
	out := []Reference{}
	for _, p := range c.parts {
		refs, ok := p.References()
		if !ok {
			return nil, false
		}
		out = append(out, refs...)
	}
	return out, true
}

func (c *Combined) FilterTag(keep func(Tag) bool) Geometry {
	var kept []Geometry
	for _, p := range c.parts {
		if fp := p.FilterTag(keep); fp != nil {
			kept = append(kept, fp)
		}
	}
	return &Combined{parts: kept}
}

func (c *Combined) IsEmpty() bool {
	for _, p := range c.parts {
		if !p.IsEmpty() {
			return false
		}
	}
	return true
}

func (c *Combined) Complexity() int { return sumComplexity(c.parts) }

// UnlinkReferences unlinks every part, splicing parts that unlink to a
// Combined.
func (c *Combined) UnlinkReferences() Geometry {
	var parts []Geometry
	for _, p := range c.parts {
		u := p.UnlinkReferences()
		if inner, ok := u.(*Combined); ok {
			parts = append(parts, inner.parts...)
			continue
		}
		parts = append(parts, u)
	}
	return &Combined{parts: parts}
}

func (c *Combined) ShapeString() (string, bool) {
	var b strings.Builder
	b.WriteString("Combine{")
	if !joinShapes(&b, c.parts) {
		return "", false
	}
	b.WriteByte('}')
	return b.String(), true
}

// BooleanOp selects the set operation of a Boolean node.
type BooleanOp uint8

const (
	Union BooleanOp = iota
	Intersection
	Difference
	Xor
)

func (op BooleanOp) String() string {
	switch op {
	case Union:
		return "union"
	case Intersection:
		return "intersection"
	case Difference:
		return "difference"
	case Xor:
		return "xor"
	default:
		return fmt.Sprintf("BooleanOp(%d)", uint8(op))
	}
}

// Boolean composes its operands with a set operation. A lone operand has
// its self-overlaps removed; further operands are folded left with the
// operator. Both sides use the non-zero fill rule.
type Boolean struct {
	op       BooleanOp
	operands []Geometry
	memo     lazyContours
}

// NewBoolean creates a boolean composition of operands, in order.
func NewBoolean(op BooleanOp, operands ...Geometry) *Boolean {
	return &Boolean{op: op, operands: append([]Geometry(nil), operands...)}
}

// Op returns the operator.
func (g *Boolean) Op() BooleanOp { return g.op }

// Operands returns a copy of the operands.
func (g *Boolean) Operands() []Geometry { return append([]Geometry(nil), g.operands...) }

func (g *Boolean) isGeometry() {}

// Contours resolves the composition once; the result is memoized.
func (g *Boolean) Contours() ([]Contour, error) {
	return g.memo.get(g.resolve)
}

func (g *Boolean) resolve() ([]Contour, error) {
	if len(g.operands) == 0 {
		return nil, nil
	}
	engine := ActiveBooleanEngine()
	acc, err := operandPolygons(g.operands[0], 0)
	if err != nil {
		return nil, err
	}
	if len(g.operands) == 1 {
		acc = engine.RemoveOverlap(acc, NonZero)
	}
	for i, operand := range g.operands[1:] {
		next, err := operandPolygons(operand, i+1)
		if err != nil {
			return nil, err
		}
		acc = engine.Combine(g.op, acc, next, NonZero, NonZero)
	}
	Logger().Debug("glyph: boolean resolved",
		"op", g.op.String(), "operands", len(g.operands), "contours", len(acc))
	return polygonsToContours(acc), nil
}

func operandPolygons(g Geometry, index int) ([]Polygon, error) {
	cs, err := g.Contours()
	if err != nil {
		return nil, unresolvable(fmt.Sprintf("boolean operand %d", index), err)
	}
	return ContoursToPolygons(cs, BooleanResolution), nil
}

func (g *Boolean) References() ([]Reference, bool) { return nil, false }

func (g *Boolean) FilterTag(keep func(Tag) bool) Geometry {
	var kept []Geometry
	for _, o := range g.operands {
		if fo := o.FilterTag(keep); fo != nil {
			kept = append(kept, fo)
		}
	}
	return &Boolean{op: g.op, operands: kept}
}

func (g *Boolean) IsEmpty() bool {
	for _, o := range g.operands {
		if !o.IsEmpty() {
			return false
		}
	}
	return true
}

func (g *Boolean) Complexity() int { return sumComplexity(g.operands) }

// UnlinkReferences unlinks every operand. No operands unlink to an empty
// Combined and a single operand to itself.
func (g *Boolean) UnlinkReferences() Geometry {
	switch len(g.operands) {
	case 0:
		return &Combined{}
	case 1:
		return g.operands[0].UnlinkReferences()
	}
	operands := make([]Geometry, len(g.operands))
	for i, o := range g.operands {
		operands[i] = o.UnlinkReferences()
	}
	return &Boolean{op: g.op, operands: operands}
}

func (g *Boolean) ShapeString() (string, bool) {
	var b strings.Builder
	b.WriteString("Boolean{")
	b.WriteString(g.op.String())
	b.WriteByte(';')
	if !joinShapes(&b, g.operands) {
		return "", false
	}
	b.WriteByte('}')
	return b.String(), true
}

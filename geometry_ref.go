package glyph

import (
	"fmt"
	"strings"
)

// Ref places another glyph's geometry at an offset. It holds a lookup
// relation only: the target glyph is owned by the registry.
type Ref struct {
	target *Glyph
	x, y   float64
}

// NewRef creates a reference to target translated by (dx, dy). It fails with
// ErrInvalidReference when target or its geometry is nil.
func NewRef(target *Glyph, dx, dy float64) (*Ref, error) {
	if target == nil {
		return nil, fmt.Errorf("%w: nil glyph", ErrInvalidReference)
	}
	if target.Geometry == nil {
		return nil, fmt.Errorf("%w: glyph %q has no geometry", ErrInvalidReference, target.Name)
	}
	return &Ref{target: target, x: dx, y: dy}, nil
}

// RefByName looks name up in reg and references it.
func RefByName(reg Registry, name string, dx, dy float64) (*Ref, error) {
	g := reg.Lookup(name)
	if g == nil {
		return nil, fmt.Errorf("%w: glyph %q not found", ErrInvalidReference, name)
	}
	return NewRef(g, dx, dy)
}

// Target returns the referenced glyph.
func (r *Ref) Target() *Glyph { return r.target }

// Offset returns the translation applied to the target.
func (r *Ref) Offset() Vec2 { return Vec2{X: r.x, Y: r.y} }

func (r *Ref) unwrap() Geometry {
	return NewTransformed(r.target.Geometry, Translate(r.x, r.y))
}

func (r *Ref) isGeometry() {}

func (r *Ref) Contours() ([]Contour, error) {
	if r.IsEmpty() {
		return nil, nil
	}
	cs, err := r.unwrap().Contours()
	if err != nil {
		return nil, unresolvable("reference to "+r.target.Name, err)
	}
	return cs, nil
}

func (r *Ref) References() ([]Reference, bool) {
	if r.IsEmpty() {
		return []Reference{}, true
	}
	return []Reference{{Glyph: r.target, X: r.x, Y: r.y}}, true
}

func (r *Ref) FilterTag(keep func(Tag) bool) Geometry {
	if r.IsEmpty() {
		return nil
	}
	return r.unwrap().FilterTag(keep)
}

func (r *Ref) IsEmpty() bool {
	return r.target == nil || r.target.Geometry == nil || r.target.Geometry.IsEmpty()
}

func (r *Ref) Complexity() int {
	if !isFinite(r.x) || !isFinite(r.y) {
		return InfiniteComplexity
	}
	return r.target.Geometry.Complexity()
}

func (r *Ref) UnlinkReferences() Geometry { return r.unwrap().UnlinkReferences() }

func (r *Ref) ShapeString() (string, bool) {
	target, ok := r.target.Geometry.ShapeString()
	if !ok {
		return "", false
	}
	var b strings.Builder
	b.WriteString("Reference{")
	b.WriteString(target)
	b.WriteByte(';')
	formatN(&b, r.x)
	b.WriteByte(';')
	formatN(&b, r.y)
	b.WriteByte('}')
	return b.String(), true
}

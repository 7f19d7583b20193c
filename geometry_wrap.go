package glyph

import "strings"

// Tagged labels a node for feature-conditional inclusion.
type Tagged struct {
	geom Geometry
	tag  Tag
}

// NewTagged wraps g with tag.
func NewTagged(g Geometry, tag Tag) *Tagged {
	return &Tagged{geom: g, tag: tag}
}

// Tag returns the label.
func (t *Tagged) Tag() Tag { return t.tag }

// Geometry returns the wrapped node.
func (t *Tagged) Geometry() Geometry { return t.geom }

func (t *Tagged) isGeometry() {}

func (t *Tagged) Contours() ([]Contour, error)     { return t.geom.Contours() }
func (t *Tagged) References() ([]Reference, bool) { return t.geom.References() }

// FilterTag rejects the node when keep rejects its tag; otherwise the
// wrapped node is filtered and re-tagged.
func (t *Tagged) FilterTag(keep func(Tag) bool) Geometry {
	if !keep(t.tag) {
		return nil
	}
	inner := t.geom.FilterTag(keep)
	if inner == nil {
		return nil
	}
	return NewTagged(inner, t.tag)
}

func (t *Tagged) IsEmpty() bool   { return t.geom.IsEmpty() }
func (t *Tagged) Complexity() int { return t.geom.Complexity() }

// UnlinkReferences drops the tag.
func (t *Tagged) UnlinkReferences() Geometry { return t.geom.UnlinkReferences() }

// ShapeString is that of the wrapped node: tags do not change shape.
func (t *Tagged) ShapeString() (string, bool) { return t.geom.ShapeString() }

// Transformed maps a node through an affine transform.
type Transformed struct {
	geom      Geometry
	transform Transform
}

// NewTransformed wraps g with t. Use TransformGeometry to get the collapsed
// form.
func NewTransformed(g Geometry, t Transform) *Transformed {
	return &Transformed{geom: g, transform: t}
}

// Geometry returns the wrapped node.
func (t *Transformed) Geometry() Geometry { return t.geom }

// Transform returns the applied transform.
func (t *Transformed) Transform() Transform { return t.transform }

func (t *Transformed) isGeometry() {}

func (t *Transformed) Contours() ([]Contour, error) {
	cs, err := t.geom.Contours()
	if err != nil {
		return nil, err
	}
	out := make([]Contour, len(cs))
	for i, c := range cs {
		mapped := make(Contour, len(c))
		for j, p := range c {
			mapped[j] = t.transform.ApplyPoint(p)
		}
		out[i] = mapped
	}
	return out, nil
}

func (t *Transformed) References() ([]Reference, bool) {
	if !t.transform.IsTranslate() {
		return nil, false
	}
	refs, ok := t.geom.References()
	if !ok {
		return nil, false
	}
	out := make([]Reference, len(refs))
	for i, r := range refs {
		out[i] = Reference{Glyph: r.Glyph, X: r.X + t.transform.X, Y: r.Y + t.transform.Y}
	}
	return out, true
}

func (t *Transformed) FilterTag(keep func(Tag) bool) Geometry {
	inner := t.geom.FilterTag(keep)
	if inner == nil {
		return nil
	}
	return NewTransformed(inner, t.transform)
}

func (t *Transformed) IsEmpty() bool { return t.geom.IsEmpty() }

// Complexity is that of the wrapped node, or the sentinel when the
// transform has a non-finite entry.
func (t *Transformed) Complexity() int {
	if !t.transform.IsFinite() {
		return InfiniteComplexity
	}
	return t.geom.Complexity()
}

// UnlinkReferences unlinks the wrapped node, eliding an identity transform
// and summing nested translations.
func (t *Transformed) UnlinkReferences() Geometry {
	unwrapped := t.geom.UnlinkReferences()
	if t.transform.IsIdentity() {
		return unwrapped
	}
	if inner, ok := unwrapped.(*Transformed); ok && t.transform.IsTranslate() && inner.transform.IsTranslate() {
		return NewTransformed(inner.geom, Translate(
			t.transform.X+inner.transform.X,
			t.transform.Y+inner.transform.Y))
	}
	return NewTransformed(unwrapped, t.transform)
}

// ShapeString includes the transform entries. An identity transform
// serializes as the wrapped node alone.
func (t *Transformed) ShapeString() (string, bool) {
	target, ok := t.geom.ShapeString()
	if !ok {
		return "", false
	}
	if t.transform.IsIdentity() {
		return target, true
	}
	var b strings.Builder
	b.WriteString("Transformed{")
	b.WriteString(target)
	b.WriteByte(';')
	formatTransform(&b, t.transform)
	b.WriteByte('}')
	return b.String(), true
}

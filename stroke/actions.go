package stroke

import "github.com/gogpu/glyph"

// Widths sets the left and right widths of the knot it is attached to.
func Widths(l, r float64) Action {
	return func(c *Context) { c.SetWidth(l, r) }
}

func ambient(c *Context, w float64) float64 {
	if w <= 0 {
		return c.Stroke()
	}
	return w
}

// WidthsLHS puts the whole width on the left of the path. A width <= 0
// means the ambient stroke width.
func WidthsLHS(w float64) Action {
	return func(c *Context) { c.SetWidth(ambient(c, w), 0) }
}

// WidthsRHS puts the whole width on the right of the path.
func WidthsRHS(w float64) Action {
	return func(c *Context) { c.SetWidth(0, ambient(c, w)) }
}

// WidthsCenter centers the width on the path.
func WidthsCenter(w float64) Action {
	return func(c *Context) {
		w := ambient(c, w)
		c.SetWidth(w/2, w/2)
	}
}

// Heading fixes the direction of travel at the knot.
func Heading(d glyph.Vec2) Action {
	return func(c *Context) { c.HeadsTo(d) }
}

// WidthsHeading combines Widths and Heading.
func WidthsHeading(l, r float64, d glyph.Vec2) Action {
	return chain([]Action{Widths(l, r), Heading(d)})
}

// LHSHeading combines WidthsLHS and Heading.
func LHSHeading(w float64, d glyph.Vec2) Action {
	return chain([]Action{WidthsLHS(w), Heading(d)})
}

// RHSHeading combines WidthsRHS and Heading.
func RHSHeading(w float64, d glyph.Vec2) Action {
	return chain([]Action{WidthsRHS(w), Heading(d)})
}

// CenterHeading combines WidthsCenter and Heading.
func CenterHeading(w float64, d glyph.Vec2) Action {
	return chain([]Action{WidthsCenter(w), Heading(d)})
}

// DisableContrast expands the rest of the stroke with contrast 1.
func DisableContrast() Action {
	return func(c *Context) { c.DisableContrast() }
}

var (
	// Unimportant excludes a knot from rail fitting.
	Unimportant Action = func(c *Context) { c.SetUnimportant() }
	// Important marks a knot as taking part in rail fitting. It is a no-op.
	Important Action = func(*Context) {}
)

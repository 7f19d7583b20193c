package glyph

import "fmt"

// Transform is an immutable 2D affine map. Coordinates map as:
//
//	x' = x*XX + y*YX + X
//	y' = x*XY + y*YY + Y
//
// A Transform applied to geometry must be invertible (Det() != 0).
type Transform struct {
	XX, YX float64
	XY, YY float64
	X, Y   float64
}

// NewTransform creates a transform from its six entries.
func NewTransform(xx, yx, xy, yy, x, y float64) Transform {
	return Transform{XX: xx, YX: yx, XY: xy, YY: yy, X: x, Y: y}
}

// Identity returns the identity transform.
func Identity() Transform {
	return Transform{XX: 1, YY: 1}
}

// Translate returns a translation by (dx, dy).
func Translate(dx, dy float64) Transform {
	return Transform{XX: 1, YY: 1, X: dx, Y: dy}
}

// Scale returns a scaling transform.
func Scale(sx, sy float64) Transform {
	return Transform{XX: sx, YY: sy}
}

// Apply maps a point.
func (t Transform) Apply(p Vec2) Vec2 {
	return Vec2{
		X: p.X*t.XX + p.Y*t.YX + t.X,
		Y: p.X*t.XY + p.Y*t.YY + t.Y,
	}
}

// ApplyPoint maps a typed point, keeping its type.
func (t Transform) ApplyPoint(p Point) Point {
	v := t.Apply(p.Vec2())
	return Point{Type: p.Type, X: v.X, Y: v.Y}
}

// ApplyOffset maps a direction or width vector through the linear part only.
func (t Transform) ApplyOffset(d Vec2) Vec2 {
	return Vec2{
		X: d.X*t.XX + d.Y*t.YX,
		Y: d.X*t.XY + d.Y*t.YY,
	}
}

// Det returns the determinant of the linear part.
func (t Transform) Det() float64 {
	return t.XX*t.YY - t.XY*t.YX
}

func (t Transform) checkInvertible() error {
	det := t.Det()
	if det == 0 || !isFinite(det) {
		return fmt.Errorf("%w: det=%v", ErrSingularTransform, det)
	}
	return nil
}

// Unapply maps a point back through the inverse transform (Cramer's rule).
func (t Transform) Unapply(p Vec2) (Vec2, error) {
	if err := t.checkInvertible(); err != nil {
		return Vec2{}, err
	}
	dx := p.X - t.X
	dy := p.Y - t.Y
	det := t.Det()
	return Vec2{
		X: (dx*t.YY - dy*t.YX) / det,
		Y: (dy*t.XX - dx*t.XY) / det,
	}, nil
}

// Inverse returns the inverse transform.
func (t Transform) Inverse() (Transform, error) {
	if err := t.checkInvertible(); err != nil {
		return Transform{}, err
	}
	det := t.Det()
	return Transform{
		XX: t.YY / det,
		YX: -t.YX / det,
		XY: -t.XY / det,
		YY: t.XX / det,
		X:  -(t.X*t.YY - t.Y*t.YX) / det,
		Y:  -(-t.X*t.XY + t.Y*t.XX) / det,
	}, nil
}

// Then returns the transform that applies t first and then next.
func (t Transform) Then(next Transform) Transform {
	return Transform{
		XX: t.XX*next.XX + t.XY*next.YX,
		YX: t.YX*next.XX + t.YY*next.YX,
		XY: t.XX*next.XY + t.XY*next.YY,
		YY: t.YX*next.XY + t.YY*next.YY,
		X:  t.X*next.XX + t.Y*next.YX + next.X,
		Y:  t.X*next.XY + t.Y*next.YY + next.Y,
	}
}

// IsTranslate reports whether the linear part is exactly the identity.
// Exact comparison is intended: it only gates structural shortcuts.
func (t Transform) IsTranslate() bool {
	return t.XX == 1 && t.YY == 1 && t.XY == 0 && t.YX == 0
}

// IsIdentity reports whether t is exactly the identity.
func (t Transform) IsIdentity() bool {
	return t.IsTranslate() && t.X == 0 && t.Y == 0
}

// IsFinite reports whether every entry is finite.
func (t Transform) IsFinite() bool {
	return isFinite(t.XX) && isFinite(t.YX) && isFinite(t.XY) &&
		isFinite(t.YY) && isFinite(t.X) && isFinite(t.Y)
}

func (t Transform) String() string {
	return fmt.Sprintf("[[%g %g] [%g %g]] + [[%g] [%g]]", t.XX, t.XY, t.YX, t.YY, t.X, t.Y)
}

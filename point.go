package glyph

// PointType is the continuity class of a knot or the role of a contour point.
type PointType uint8

const (
	// G4 is a curvature-continuous knot.
	G4 PointType = iota
	// G2 is a tangent-continuous knot.
	G2
	// Corner is a knot without continuity constraints. Resolved contours use
	// it for every on-curve point.
	Corner
	// Left marks the start of a straight edge.
	Left
	// Right marks the end of a straight edge.
	Right
	// Close terminates a closed knot script.
	Close
	// End terminates an open knot script.
	End
	// Quadratic is the off-curve control point of a quadratic segment.
	Quadratic
	// CubicStart is the first off-curve control point of a cubic segment.
	CubicStart
	// CubicEnd is the second off-curve control point of a cubic segment.
	CubicEnd
)

// String returns the canonical tag used in shape strings.
func (t PointType) String() string {
	switch t {
	case G4:
		return "g4"
	case G2:
		return "g2"
	case Corner:
		return "corner"
	case Left:
		return "left"
	case Right:
		return "right"
	case Close:
		return "close"
	case End:
		return "end"
	case Quadratic:
		return "quadratic"
	case CubicStart:
		return "cubic-start"
	case CubicEnd:
		return "cubic-end"
	default:
		return "unknown"
	}
}

// Reverse returns the type a knot takes when its path is traversed backwards.
// Straight-edge markers swap sides; every other type is unchanged.
func (t PointType) Reverse() PointType {
	switch t {
	case Left:
		return Right
	case Right:
		return Left
	default:
		return t
	}
}

// OnCurve reports whether points of this type lie on the outline.
func (t PointType) OnCurve() bool {
	return t != Quadratic && t != CubicStart && t != CubicEnd
}

// Point is a typed coordinate inside a resolved contour.
type Point struct {
	Type PointType
	X, Y float64
}

// Pt creates an on-curve corner point.
func Pt(x, y float64) Point {
	return Point{Type: Corner, X: x, Y: y}
}

// Vec2 returns the coordinate of the point.
func (p Point) Vec2() Vec2 {
	return Vec2{X: p.X, Y: p.Y}
}

// IsFinite reports whether both coordinates are finite.
func (p Point) IsFinite() bool {
	return isFinite(p.X) && isFinite(p.Y)
}

// Contour is a closed sequence of points. Off-curve points carry the
// Quadratic, CubicStart or CubicEnd types.
type Contour []Point

// Knot is a spline control point: a position plus its continuity class.
type Knot struct {
	Type PointType
	X, Y float64
}

// Vec2 returns the position of the knot.
func (k Knot) Vec2() Vec2 {
	return Vec2{X: k.X, Y: k.Y}
}

// IsFinite reports whether both coordinates are finite.
func (k Knot) IsFinite() bool {
	return isFinite(k.X) && isFinite(k.Y)
}

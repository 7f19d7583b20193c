// Package stroke expands knot scripts into glyph outlines.
//
// A knot script is a list of [Item] values: concrete knots ([Control]),
// placeholders resolved from their neighbours ([Interpolation]), deferred
// setup callbacks ([Action]), nested lists ([Group]) and an optional
// trailing [Marker] that decides whether the path is closed.
//
// # Expansion
//
// [Stroker.Dispiro] turns a script into a variable-width stroke:
//
//  1. Leading actions run against the expansion [Context].
//  2. The trailing marker is removed and interpolations are resolved.
//  3. Knots are placed; each knot's action runs right after it is placed,
//     typically assigning widths or a heading.
//  4. The spline through the knots fixes a tangent per knot.
//  5. Twice, the rails are expanded and the spline through their midpoints
//     refines the tangents. The count is fixed and not adaptive.
//  6. The final left and right rails are produced. Closed paths yield two
//     closed splines; open paths are capped with corners and joined into a
//     single closed spline.
//
// Rail offsets follow the contrast model: for a unit normal n the offset
// vector is (n.x, contrast*n.y), so a contrast below 1 thins horizontal
// strokes.
//
// # Example
//
//	s := stroke.NewStroker(stroke.WithStroke(80))
//	res, err := s.Dispiro(
//		stroke.WidthsCenter(0),
//		stroke.Flat(100, 0),
//		stroke.Curl(100, 700),
//		stroke.End(),
//	)
package stroke

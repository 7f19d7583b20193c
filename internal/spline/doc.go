// Package spline provides the interpolating spline used to turn knot
// sequences into Bezier outlines.
//
// # Algorithm Overview
//
// Each segment between consecutive knots is a cubic Hermite curve
// parametrized by chord length. The unknowns are the tangent vectors at the
// knots; every knot contributes one equation chosen by its continuity class:
//
//   - Smooth4: second-derivative continuity across the knot (C2 equation)
//   - Smooth2: Bessel tangent from the two adjacent chords (tangent continuity only)
//   - Corner: independent incoming and outgoing tangents, each taking the
//     natural (zero second derivative) end condition of its segment
//   - Left: tangent along the following chord (start of a straight edge)
//   - Right: tangent along the preceding chord (end of a straight edge)
//
// The coupled system is solved by Gauss-Seidel sweeps with a fixed
// iteration ceiling, so NaN or pathological input terminates instead of
// looping. Emission produces one cubic per segment, or a line when the
// control points lie within the precision of the chord.
//
// # Usage
//
//	s := spline.New()
//	tangents, stats := s.Solve(knots, true)
//	s.Emit(knots, true, sink, 1.0/64)
package spline

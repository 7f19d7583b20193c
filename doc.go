// Package glyph describes glyph shapes as an immutable geometry tree and
// resolves them into closed contours.
//
// # Overview
//
// A glyph's shape is a Geometry. Leaves carry outlines (Outline) or
// spline knots (Spline). Interior nodes combine (Combined), compose with a
// boolean operation (Boolean), transform (Transformed), tag (Tagged) or
// reference another registered glyph (Ref). Every node can be reduced to
// contours with Contours:
//
//	dot := glyph.NewOutline([]glyph.Point{
//		glyph.Pt(0, 0), glyph.Pt(80, 0), glyph.Pt(80, 80), glyph.Pt(0, 80),
//	})
//	store := glyph.NewStore()
//	_ = store.Add(&glyph.Glyph{Name: "dot", Geometry: dot})
//
//	above, _ := glyph.RefByName(store, "dot", 0, 600)
//	contours, err := above.Contours()
//
// Splines are expanded to Bézier contours by the active SplineSolver; the
// stroke package builds them from pen paths with varying widths.
//
// # Coordinate System
//
// Coordinates are in font units with y pointing up. Transform maps
// (x, y) to (xx*x + yx*y + x0, xy*x + yy*y + y0).
//
// # Fingerprints
//
// Geometry that does not depend on the registry has a canonical shape
// string. Fingerprint hashes it so identical shapes can share cached
// contours; see the cache package.
//
// # Logging
//
// The package is silent by default. SetLogger installs an slog.Logger
// that receives diagnostics from this package and its subpackages.
package glyph

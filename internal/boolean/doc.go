// Package boolean runs polygon boolean operations under winding-number fill
// rules on top of the Clipper library (github.com/ctessum/go.clipper).
//
// Coordinates are snapped to a fixed grid of 1/Scale units before clipping,
// the same grid shape strings are written on, so equal inputs give equal
// outputs regardless of float noise below the grid.
//
// Outer boundaries come out counter-clockwise (positive area, y up) and
// holes clockwise. Collinear vertices are dropped.
package boolean

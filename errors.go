package glyph

import "errors"

// Sentinel errors for geometry construction and resolution.
var (
	// ErrSingularTransform is returned when an inverse of a non-invertible
	// transform is requested.
	ErrSingularTransform = errors.New("glyph: singular transform")

	// ErrMalformedKnotScript is returned for knot scripts that cannot be
	// flattened: cyclic or unresolvable interpolations, or empty paths.
	ErrMalformedKnotScript = errors.New("glyph: malformed knot script")

	// ErrDegenerateStroke is returned when a shape has too few knots or
	// non-finite coordinates.
	ErrDegenerateStroke = errors.New("glyph: degenerate stroke")

	// ErrInvalidReference is returned when a reference target is missing or
	// has no geometry.
	ErrInvalidReference = errors.New("glyph: invalid reference")

	// ErrUnresolvableComposite is returned when a boolean or reference
	// participant failed to flatten.
	ErrUnresolvableComposite = errors.New("glyph: unresolvable composite")

	// ErrDuplicateGlyph is returned when a glyph name is registered twice.
	ErrDuplicateGlyph = errors.New("glyph: duplicate glyph name")
)

// GlyphError attaches the identity of the glyph being built to a failure.
type GlyphError struct {
	Glyph string
	Err   error
}

func (e *GlyphError) Error() string {
	return "glyph " + e.Glyph + ": " + e.Err.Error()
}

func (e *GlyphError) Unwrap() error {
	return e.Err
}

// Package fontimport loads glyph outlines from OpenType and TrueType fonts
// into the geometry tree, so existing fonts can seed a glyph store.
package fontimport

import (
	"bytes"
	"errors"
	"fmt"
	"sync"

	"github.com/go-text/typesetting/font"
	"github.com/go-text/typesetting/language"
	"golang.org/x/image/font/sfnt"
	"golang.org/x/image/math/fixed"
	"golang.org/x/text/unicode/runenames"

	"github.com/gogpu/glyph"
)

// ErrGlyphNotFound is returned when the font maps no glyph to a rune.
var ErrGlyphNotFound = errors.New("fontimport: glyph not found")

// Importer converts font glyphs into glyph geometry. Coordinates are in
// font units, y up, unless WithEm rescales them.
//
// Importer is safe for concurrent use.
type Importer struct {
	mu       sync.Mutex // guards face
	face     *font.Face
	outlines *sfnt.Font
	upem     float64
	scale    float64
}

// Option configures an Importer.
type Option func(*Importer)

// WithEm rescales outlines so the em square measures size units.
func WithEm(size float64) Option {
	return func(im *Importer) {
		if size > 0 {
			im.scale = size / im.upem
		}
	}
}

// New parses font data. The cmap is read with go-text/typesetting and the
// outlines with x/image/font/sfnt.
func New(data []byte, opts ...Option) (*Importer, error) {
	face, err := font.ParseTTF(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("fontimport: parse cmap: %w", err)
	}
	outlines, err := sfnt.Parse(data)
	if err != nil {
		return nil, fmt.Errorf("fontimport: parse outlines: %w", err)
	}
	im := &Importer{face: face, outlines: outlines, upem: float64(face.Upem()), scale: 1}
	for _, opt := range opts {
		opt(im)
	}
	return im, nil
}

// UnitsPerEm returns the font's design units per em.
func (im *Importer) UnitsPerEm() float64 { return im.upem }

// Name returns the glyph name used for r.
func Name(r rune) string {
	return fmt.Sprintf("uni%04X", r)
}

// Glyph loads the outline mapped to r. The geometry is one Outline per
// contour, combined and tagged with the rune's script.
func (im *Importer) Glyph(r rune) (*glyph.Glyph, error) {
	im.mu.Lock()
	gid, ok := im.face.NominalGlyph(r)
	advance := im.face.HorizontalAdvance(gid)
	im.mu.Unlock()
	if !ok {
		return nil, fmt.Errorf("%w: %U", ErrGlyphNotFound, r)
	}

	var buf sfnt.Buffer
	ppem := fixed.Int26_6(im.upem * 64)
	segments, err := im.outlines.LoadGlyph(&buf, sfnt.GlyphIndex(gid), ppem, nil)
	if err != nil {
		return nil, fmt.Errorf("fontimport: load %U: %w", r, err)
	}

	contours := im.convert(segments)
	parts := make([]glyph.Geometry, len(contours))
	for i, c := range contours {
		parts[i] = glyph.NewOutline(c)
	}
	script := language.LookupScript(r)
	glyph.Logger().Debug("fontimport: glyph", "rune", string(r), "contours", len(contours), "script", script)

	return &glyph.Glyph{
		Name:        Name(r),
		Geometry:    glyph.NewTagged(glyph.NewCombined(parts...), script),
		Advance:     float64(advance) * im.scale,
		Codepoints:  []rune{r},
		Description: runenames.Name(r),
	}, nil
}

// Import loads every rune into store, skipping runes the font lacks. It
// returns the names of the glyphs added.
func (im *Importer) Import(store *glyph.Store, runes ...rune) ([]string, error) {
	var names []string
	for _, r := range runes {
		g, err := im.Glyph(r)
		if errors.Is(err, ErrGlyphNotFound) {
			glyph.Logger().Warn("fontimport: skipping rune", "rune", fmt.Sprintf("%U", r))
			continue
		}
		if err != nil {
			return names, err
		}
		if err := store.Add(g); err != nil {
			return names, err
		}
		names = append(names, g.Name)
	}
	return names, nil
}

// point converts a 26.6 y-down coordinate to a scaled y-up one.
func (im *Importer) point(t glyph.PointType, p fixed.Point26_6) glyph.Point {
	return glyph.Point{
		Type: t,
		X:    float64(p.X) / 64 * im.scale,
		Y:    -float64(p.Y) / 64 * im.scale,
	}
}

func (im *Importer) convert(segments sfnt.Segments) []glyph.Contour {
	var contours []glyph.Contour
	var cur glyph.Contour
	flush := func() {
		if n := len(cur); n > 1 && cur[n-1] == cur[0] {
			cur = cur[:n-1]
		}
		if len(cur) > 0 {
			contours = append(contours, cur)
		}
		cur = nil
	}
	for _, seg := range segments {
		switch seg.Op {
		case sfnt.SegmentOpMoveTo:
			flush()
			cur = glyph.Contour{im.point(glyph.Corner, seg.Args[0])}
		case sfnt.SegmentOpLineTo:
			cur = append(cur, im.point(glyph.Corner, seg.Args[0]))
		case sfnt.SegmentOpQuadTo:
			cur = append(cur,
				im.point(glyph.Quadratic, seg.Args[0]),
				im.point(glyph.Corner, seg.Args[1]))
		case sfnt.SegmentOpCubeTo:
			cur = append(cur,
				im.point(glyph.CubicStart, seg.Args[0]),
				im.point(glyph.CubicEnd, seg.Args[1]),
				im.point(glyph.Corner, seg.Args[2]))
		}
	}
	flush()
	return contours
}

package fontimport

import (
	"errors"
	"math"
	"testing"

	"github.com/go-text/typesetting/language"
	"golang.org/x/image/font/gofont/goregular"

	"github.com/gogpu/glyph"
)

func newImporter(t *testing.T, opts ...Option) *Importer {
	t.Helper()
	im, err := New(goregular.TTF, opts...)
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	return im
}

func TestGlyph(t *testing.T) {
	im := newImporter(t)
	if im.UnitsPerEm() != 2048 {
		t.Errorf("UnitsPerEm() = %v, want 2048", im.UnitsPerEm())
	}

	tests := []struct {
		r           rune
		name        string
		description string
		contours    int
	}{
		{'A', "uni0041", "LATIN CAPITAL LETTER A", 2},
		{'o', "uni006F", "LATIN SMALL LETTER O", 2},
		{'l', "uni006C", "LATIN SMALL LETTER L", 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g, err := im.Glyph(tt.r)
			if err != nil {
				t.Fatal(err)
			}
			if g.Name != tt.name || g.Description != tt.description {
				t.Errorf("glyph = %q %q, want %q %q", g.Name, g.Description, tt.name, tt.description)
			}
			if len(g.Codepoints) != 1 || g.Codepoints[0] != tt.r {
				t.Errorf("Codepoints = %v", g.Codepoints)
			}
			if g.Advance <= 0 {
				t.Errorf("Advance = %v, want > 0", g.Advance)
			}
			cs, err := g.Geometry.Contours()
			if err != nil {
				t.Fatal(err)
			}
			if len(cs) != tt.contours {
				t.Errorf("contours = %d, want %d", len(cs), tt.contours)
			}
			for i, c := range cs {
				if !c[0].Type.OnCurve() {
					t.Errorf("contour %d starts off-curve", i)
				}
			}
		})
	}
}

func TestGlyphIsFontUp(t *testing.T) {
	g, err := newImporter(t).Glyph('o')
	if err != nil {
		t.Fatal(err)
	}
	cs, _ := g.Geometry.Contours()
	b := glyph.Bounds(cs)
	// The bowl sits on the baseline and rises to the x-height.
	if b.Min.Y < -100 || b.Max.Y < 500 {
		t.Errorf("bounds = %+v, want y in [-100, x-height]", b)
	}
}

func TestGlyphScriptTag(t *testing.T) {
	g, err := newImporter(t).Glyph('A')
	if err != nil {
		t.Fatal(err)
	}
	tagged, ok := g.Geometry.(*glyph.Tagged)
	if !ok {
		t.Fatalf("Geometry = %T, want *glyph.Tagged", g.Geometry)
	}
	if tagged.Tag() != language.Latin {
		t.Errorf("Tag() = %v, want Latin", tagged.Tag())
	}
	if g.Geometry.FilterTag(func(tag glyph.Tag) bool { return tag != language.Latin }) != nil {
		t.Error("filtering out Latin should drop the glyph")
	}
}

func TestWithEm(t *testing.T) {
	native, err := newImporter(t).Glyph('l')
	if err != nil {
		t.Fatal(err)
	}
	scaled, err := newImporter(t, WithEm(1000)).Glyph('l')
	if err != nil {
		t.Fatal(err)
	}
	if want := native.Advance * 1000 / 2048; math.Abs(scaled.Advance-want) > 1e-9 {
		t.Errorf("scaled Advance = %v, want %v", scaled.Advance, want)
	}
	a, _ := native.Geometry.Contours()
	b, _ := scaled.Geometry.Contours()
	if got, want := glyph.Bounds(b).Height(), glyph.Bounds(a).Height()*1000/2048; math.Abs(got-want) > 1e-6 {
		t.Errorf("scaled height = %v, want %v", got, want)
	}
}

func TestGlyphSpaceIsEmpty(t *testing.T) {
	g, err := newImporter(t).Glyph(' ')
	if err != nil {
		t.Fatal(err)
	}
	if !g.Geometry.IsEmpty() {
		t.Error("space should have empty geometry")
	}
	if g.Advance <= 0 {
		t.Errorf("space Advance = %v, want > 0", g.Advance)
	}
}

func TestGlyphNotFound(t *testing.T) {
	_, err := newImporter(t).Glyph('\U0001F600')
	if !errors.Is(err, ErrGlyphNotFound) {
		t.Errorf("error = %v, want ErrGlyphNotFound", err)
	}
}

func TestImport(t *testing.T) {
	store := glyph.NewStore()
	names, err := newImporter(t).Import(store, 'a', '\U0001F600', 'b')
	if err != nil {
		t.Fatal(err)
	}
	if len(names) != 2 || names[0] != "uni0061" || names[1] != "uni0062" {
		t.Errorf("names = %v, want [uni0061 uni0062]", names)
	}
	if store.Lookup("uni0061") == nil {
		t.Error("glyph not registered")
	}

	if _, err := newImporter(t).Import(store, 'a'); !errors.Is(err, glyph.ErrDuplicateGlyph) {
		t.Errorf("re-import error = %v, want ErrDuplicateGlyph", err)
	}
}

func TestNewRejectsGarbage(t *testing.T) {
	if _, err := New([]byte("not a font")); err == nil {
		t.Error("New() accepted garbage")
	}
}

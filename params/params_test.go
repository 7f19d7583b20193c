package params

import (
	"errors"
	"math"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/gogpu/glyph"
	"github.com/gogpu/glyph/build"
	"github.com/gogpu/glyph/stroke"
)

func writeFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "params.toml")
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestDefault(t *testing.T) {
	p := Default()
	if p.Stroke != stroke.DefaultStroke || p.Contrast != stroke.DefaultContrast || p.Superness != stroke.DefaultSuperness {
		t.Errorf("Default() = %+v", p)
	}
	if err := p.Validate(); err != nil {
		t.Errorf("Default().Validate() = %v", err)
	}
	if p.DigestValue() != glyph.DigestSHA256 {
		t.Errorf("DigestValue() = %v, want sha256", p.DigestValue())
	}
}

func TestDecode(t *testing.T) {
	p, err := Decode(strings.NewReader(`
stroke = 80.0
contrast = 0.5
workers = 3
digest = "blake2b"
`))
	if err != nil {
		t.Fatal(err)
	}
	want := Default()
	want.Stroke, want.Contrast, want.Workers, want.Digest = 80, 0.5, 3, "blake2b"
	if p != want {
		t.Errorf("Decode() = %+v, want %+v", p, want)
	}
	if p.DigestValue() != glyph.DigestBLAKE2b {
		t.Errorf("DigestValue() = %v, want blake2b", p.DigestValue())
	}
}

func TestDecodeRejects(t *testing.T) {
	tests := []struct {
		name  string
		input string
	}{
		{"unknown key", "stroek = 10.0\n"},
		{"wrong type", "workers = \"many\"\n"},
		{"syntax", "stroke = = 1\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := Decode(strings.NewReader(tt.input)); err == nil {
				t.Error("Decode() accepted invalid input")
			}
		})
	}
}

func TestLoad(t *testing.T) {
	path := writeFile(t, "stroke = 60.0\nsuperness = 2.0\n")
	t.Setenv("GLYPH_CONTRAST", "0.25")
	t.Setenv("GLYPH_STROKE", "90")

	p, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}
	if p.Stroke != 90 {
		t.Errorf("Stroke = %v, want environment override 90", p.Stroke)
	}
	if p.Contrast != 0.25 {
		t.Errorf("Contrast = %v, want 0.25", p.Contrast)
	}
	if p.Superness != 2 {
		t.Errorf("Superness = %v, want 2 from file", p.Superness)
	}
}

func TestLoadWithoutFile(t *testing.T) {
	t.Setenv("GLYPH_WORKERS", "2")
	p, err := Load("")
	if err != nil {
		t.Fatal(err)
	}
	if p.Workers != 2 || p.Stroke != stroke.DefaultStroke {
		t.Errorf("Load(\"\") = %+v", p)
	}
}

func TestLoadErrors(t *testing.T) {
	t.Run("missing file", func(t *testing.T) {
		if _, err := Load(filepath.Join(t.TempDir(), "absent.toml")); !errors.Is(err, os.ErrNotExist) {
			t.Errorf("error = %v, want os.ErrNotExist", err)
		}
	})
	t.Run("bad environment", func(t *testing.T) {
		t.Setenv("GLYPH_STROKE", "wide")
		if _, err := Load(""); err == nil {
			t.Error("Load() accepted a non-numeric GLYPH_STROKE")
		}
	})
	t.Run("out of range", func(t *testing.T) {
		if _, err := Load(writeFile(t, "contrast = 1.5\n")); !errors.Is(err, ErrInvalid) {
			t.Errorf("error = %v, want ErrInvalid", err)
		}
	})
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		modify func(*Parameters)
	}{
		{"zero stroke", func(p *Parameters) { p.Stroke = 0 }},
		{"negative contrast", func(p *Parameters) { p.Contrast = -0.1 }},
		{"contrast above one", func(p *Parameters) { p.Contrast = 1.01 }},
		{"zero superness", func(p *Parameters) { p.Superness = 0 }},
		{"negative workers", func(p *Parameters) { p.Workers = -1 }},
		{"negative capacity", func(p *Parameters) { p.CacheCapacity = -1 }},
		{"unknown digest", func(p *Parameters) { p.Digest = "md5" }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := Default()
			tt.modify(&p)
			if err := p.Validate(); !errors.Is(err, ErrInvalid) {
				t.Errorf("Validate() = %v, want ErrInvalid", err)
			}
		})
	}
}

func TestStrokerOptions(t *testing.T) {
	p := Default()
	p.Stroke = 40
	s := stroke.NewStroker(p.StrokerOptions()...)
	res, err := s.Dispiro(stroke.Flat(0, 0), stroke.Curl(100, 0), stroke.End())
	if err != nil {
		t.Fatal(err)
	}
	if got := res.LHS[0].Y; math.Abs(got-20) > 1e-9 {
		t.Errorf("left rail y = %v, want 20", got)
	}
}

func TestBuilderOptions(t *testing.T) {
	p := Default()
	p.Digest = "blake2b"
	p.CacheCapacity = 8
	b := build.NewBuilder(glyph.NewStore(), p.BuilderOptions()...)
	if b.Cache().Digest() != glyph.DigestBLAKE2b {
		t.Errorf("cache digest = %v, want blake2b", b.Cache().Digest())
	}
	if got := b.Cache().Stats().Capacity; got != 8 {
		t.Errorf("cache capacity = %d, want 8", got)
	}
}

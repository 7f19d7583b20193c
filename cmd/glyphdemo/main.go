// Command glyphdemo builds a handful of sample glyphs and prints their
// fingerprints, optionally writing them to an SVG sheet.
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"strings"

	"golang.org/x/image/font/gofont/goregular"

	"github.com/gogpu/glyph"
	"github.com/gogpu/glyph/build"
	"github.com/gogpu/glyph/fontimport"
	"github.com/gogpu/glyph/params"
	"github.com/gogpu/glyph/stroke"
)

func main() {
	var (
		paramsFile = flag.String("params", "", "TOML parameter file")
		svgOut     = flag.String("svg", "", "write glyphs to this SVG file")
		importFont = flag.String("import", "", "runes to import from Go Regular before building")
	)
	flag.Parse()

	p, err := params.Load(*paramsFile)
	if err != nil {
		log.Fatalf("Failed to load parameters: %v", err)
	}

	store := glyph.NewStore()
	if *importFont != "" {
		im, err := fontimport.New(goregular.TTF, fontimport.WithEm(1000))
		if err != nil {
			log.Fatalf("Failed to open font: %v", err)
		}
		names, err := im.Import(store, []rune(*importFont)...)
		if err != nil {
			log.Fatalf("Failed to import: %v", err)
		}
		log.Printf("Imported %d glyphs", len(names))
	}

	s := stroke.NewStroker(p.StrokerOptions()...)
	b := build.NewBuilder(store, p.BuilderOptions()...)
	report, err := b.Run(context.Background(), sampleJobs(s))
	if err != nil {
		log.Fatalf("Build failed: %v", err)
	}

	for _, r := range report.Glyphs {
		fmt.Printf("%-8s %s contours=%d complexity=%d cached=%v\n",
			r.Name, r.Fingerprint, r.Contours, r.Complexity, r.CacheHit)
	}
	st := b.Cache().Stats()
	log.Printf("Run %s: %d glyphs in %d levels, %v (cache hit rate %.2f)",
		report.RunID, len(report.Glyphs), report.Levels, report.Duration, st.HitRate)

	if *svgOut != "" {
		if err := writeSVG(*svgOut, store); err != nil {
			log.Fatalf("Failed to save: %v", err)
		}
		log.Printf("Glyphs saved to %s", *svgOut)
	}
}

func strokeJob(s *stroke.Stroker, items ...stroke.Item) func(context.Context, glyph.Registry) (glyph.Geometry, error) {
	return func(context.Context, glyph.Registry) (glyph.Geometry, error) {
		res, err := s.Dispiro(items...)
		if err != nil {
			return nil, err
		}
		return res.Geometry, nil
	}
}

func sampleJobs(s *stroke.Stroker) []build.Job {
	return []build.Job{
		{
			Name: "dot", Advance: 200,
			Build: func(context.Context, glyph.Registry) (glyph.Geometry, error) {
				return glyph.NewOutline([]glyph.Point{
					glyph.Pt(60, 600), glyph.Pt(140, 600), glyph.Pt(140, 680), glyph.Pt(60, 680),
				}), nil
			},
		},
		{
			Name: "stem", Advance: 200, Codepoints: []rune{'ı'},
			Build: strokeJob(s, stroke.Flat(100, 0), stroke.Curl(100, 500), stroke.End()),
		},
		{
			Name: "o", Advance: 560, Codepoints: []rune{'o'},
			Build: strokeJob(s,
				stroke.G4(280, 500), stroke.ArcHV(0, 0),
				stroke.G4(500, 250), stroke.ArcVH(0, 0),
				stroke.G4(280, 0), stroke.ArcHV(0, 0),
				stroke.G4(60, 250), stroke.ArcVH(0, 0),
				stroke.Close()),
		},
		{
			Name: "i", Advance: 200, Codepoints: []rune{'i'}, Deps: []string{"stem", "dot"},
			Build: func(_ context.Context, reg glyph.Registry) (glyph.Geometry, error) {
				stem, err := glyph.RefByName(reg, "stem", 0, 0)
				if err != nil {
					return nil, err
				}
				dot, err := glyph.RefByName(reg, "dot", 0, 0)
				if err != nil {
					return nil, err
				}
				return glyph.NewCombined(stem, dot), nil
			},
		},
		{
			Name: "oslash", Advance: 560, Codepoints: []rune{'ø'}, Deps: []string{"o"},
			Build: func(_ context.Context, reg glyph.Registry) (glyph.Geometry, error) {
				o, err := glyph.RefByName(reg, "o", 0, 0)
				if err != nil {
					return nil, err
				}
				bar, err := s.Dispiro(stroke.Flat(40, -40, stroke.WidthsCenter(40)), stroke.Curl(520, 540), stroke.End())
				if err != nil {
					return nil, err
				}
				return glyph.NewBoolean(glyph.Union, o, bar.Geometry), nil
			},
		},
	}
}

// pathData renders closed contours as SVG path data.
func pathData(contours []glyph.Contour) string {
	var b strings.Builder
	for _, c := range contours {
		if len(c) == 0 {
			continue
		}
		fmt.Fprintf(&b, "M%g %g", c[0].X, c[0].Y)
		var pending []glyph.Point
		for i := 1; i <= len(c); i++ {
			p := c[i%len(c)]
			if !p.Type.OnCurve() {
				pending = append(pending, p)
				continue
			}
			switch len(pending) {
			case 0:
				fmt.Fprintf(&b, "L%g %g", p.X, p.Y)
			case 1:
				fmt.Fprintf(&b, "Q%g %g %g %g", pending[0].X, pending[0].Y, p.X, p.Y)
			default:
				fmt.Fprintf(&b, "C%g %g %g %g %g %g", pending[0].X, pending[0].Y, pending[1].X, pending[1].Y, p.X, p.Y)
			}
			pending = pending[:0]
		}
		b.WriteString("Z")
	}
	return b.String()
}

func writeSVG(path string, store *glyph.Store) error {
	var b strings.Builder
	names := store.Names()
	const cell = 700
	fmt.Fprintf(&b, "<svg xmlns=\"http://www.w3.org/2000/svg\" viewBox=\"0 -%d %d %d\">\n", cell, cell*len(names), cell+100)
	for i, name := range names {
		contours, err := store.Lookup(name).Geometry.Contours()
		if err != nil {
			return fmt.Errorf("%s: %w", name, err)
		}
		fmt.Fprintf(&b, "<path transform=\"translate(%d 0) scale(1 -1)\" fill-rule=\"nonzero\" d=\"%s\"><title>%s</title></path>\n",
			i*cell, pathData(contours), name)
	}
	b.WriteString("</svg>\n")
	return os.WriteFile(path, []byte(b.String()), 0o644)
}

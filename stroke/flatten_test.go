package stroke

import (
	"errors"
	"math"
	"testing"

	"github.com/gogpu/glyph"
)

func parse(t *testing.T, items ...Item) *script {
	t.Helper()
	sc, err := parseScript(newContext(NewStroker()), items)
	if err != nil {
		t.Fatalf("parseScript() error = %v", err)
	}
	return sc
}

func TestParseScriptMarkers(t *testing.T) {
	tests := []struct {
		name   string
		items  []Item
		closed bool
		knots  int
	}{
		{"no marker is open", []Item{G4(0, 0), G4(1, 0)}, false, 2},
		{"end", []Item{G4(0, 0), G4(1, 0), End()}, false, 2},
		{"close", []Item{G4(0, 0), G4(1, 0), G4(1, 1), Close()}, true, 3},
		{"nested groups", []Item{Group{G4(0, 0), Group{G2(1, 0), nil}}, G4(2, 0), Close()}, true, 3},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sc := parse(t, tt.items...)
			if sc.closed != tt.closed {
				t.Errorf("closed = %v, want %v", sc.closed, tt.closed)
			}
			if len(sc.knots) != tt.knots {
				t.Errorf("knots = %d, want %d", len(sc.knots), tt.knots)
			}
		})
	}
}

func TestParseScriptLeadingActions(t *testing.T) {
	c := newContext(NewStroker(WithStroke(10)))
	_, err := parseScript(c, []Item{Widths(3, 4), Heading(Upward), G4(0, 0), G4(1, 0)})
	if err != nil {
		t.Fatal(err)
	}
	if c.defaultD1 != 3 || c.defaultD2 != 4 {
		t.Errorf("default widths = %v/%v, want 3/4", c.defaultD1, c.defaultD2)
	}
	if len(c.knots) != 0 {
		t.Errorf("leading actions placed %d knots", len(c.knots))
	}
}

func TestArcHVBetweenClosedKnots(t *testing.T) {
	sc := parse(t, G4(0, 0), ArcHV(DefaultArcSteps, 0), G4(100, 100), Close())
	if len(sc.knots) != 7 {
		t.Fatalf("knots = %d, want 7", len(sc.knots))
	}
	for i, k := range sc.knots[1:6] {
		if k.Type != glyph.G2 {
			t.Errorf("interior knot %d type = %v, want g2", i, k.Type)
		}
		if k.Action == nil {
			t.Errorf("interior knot %d has no action, want Unimportant", i)
		}
	}
	// Ratios increase monotonically along both axes.
	for i := 1; i < 7; i++ {
		if sc.knots[i].X < sc.knots[i-1].X || sc.knots[i].Y < sc.knots[i-1].Y {
			t.Errorf("knot %d = (%v, %v) goes backwards", i, sc.knots[i].X, sc.knots[i].Y)
		}
	}
}

func TestArcRatios(t *testing.T) {
	a := buildArc(6, 2)
	if len(a.hv) != 5 || len(a.vh) != 5 {
		t.Fatalf("ratios = %d/%d, want 5/5", len(a.hv), len(a.vh))
	}
	theta := 2.0 / 8 * math.Pi / 2
	if got, want := a.hv[0].X, math.Sin(theta); math.Abs(got-want) > 1e-12 {
		t.Errorf("hv[0].X = %v, want %v", got, want)
	}
	if got, want := a.vh[0].X, 1-math.Cos(theta); math.Abs(got-want) > 1e-12 {
		t.Errorf("vh[0].X = %v, want %v", got, want)
	}
	// A circle: superness 2 keeps the samples on the unit quadrant.
	for i, r := range a.hv {
		x, y := r.X, 1-r.Y
		if d := math.Hypot(x, y); math.Abs(d-1) > 1e-12 {
			t.Errorf("hv[%d] radius = %v, want 1", i, d)
		}
	}
}

func TestArcMemoizedForAmbientSuperness(t *testing.T) {
	c := newContext(NewStroker(WithSuperness(3.125)))
	_ = arcFor(c, 4, 0)
	if _, ok := arcCache.Load(arcKey{samples: 4, superness: 3.125}); !ok {
		t.Error("ambient arc ratios not memoized")
	}
	_ = arcFor(c, 5, 2.5)
	if _, ok := arcCache.Load(arcKey{samples: 5, superness: 2.5}); ok {
		t.Error("explicit superness should not be memoized")
	}
}

func TestInterpolationCounts(t *testing.T) {
	tests := []struct {
		name   string
		interp Interpolation
		want   int
	}{
		{"also thru", AlsoThru(0.5, 0.5), 1},
		{"sneck", SNeck(0.5, 0.5, 20, 0.5), 2},
		{"bez default samples", BezControls(0, 0.5, 0.5, 1, 0), 2},
		{"bez four samples", BezControls(0, 0.5, 0.5, 1, 4), 3},
		{"quad", QuadControls(0.5, 0.5, 0), 2},
		{"them", AlsoThruThem([]Ratio{{X: 0.1, Y: 0.1}, {X: 0.2, Y: 0.2}, {X: 0.3, Y: 0.3}}), 3},
		{"arc vh", ArcVH(3, 2), 2},
		{"complex", ComplexThru(AlsoThru(0.25, 0.25), ArcHV(2, 0)), 2},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sc := parse(t, Corner(0, 0), tt.interp, Corner(100, 100), End())
			if got := len(sc.knots) - 2; got != tt.want {
				t.Errorf("interpolated knots = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestAlsoThruOptions(t *testing.T) {
	var got []float64
	blend := func(tm float64) Action {
		got = append(got, tm)
		return Important
	}
	sc := parse(t,
		Corner(0, 0),
		BezControls(0.25, 0.25, 0.75, 0.75, 3, WithBlend(blend), WithKnotType(glyph.Corner)),
		Corner(90, 30),
	)
	if len(got) != 2 || got[0] != 1.0/3 || got[1] != 2.0/3 {
		t.Errorf("blend parameters = %v, want [1/3 2/3]", got)
	}
	for _, k := range sc.knots {
		if k.Type != glyph.Corner {
			t.Errorf("knot type = %v, want corner", k.Type)
		}
	}

	sc = parse(t, Corner(0, 0), AlsoThru(0.5, 0.25), Corner(100, 100))
	if k := sc.knots[1]; k.X != 50 || k.Y != 25 || k.Type != glyph.G4 {
		t.Errorf("AlsoThru knot = %+v, want g4 (50, 25)", k)
	}
	sc = parse(t, Corner(0, 0), AlsoThruG2(0.5, 0.5), Corner(100, 100))
	if sc.knots[1].Type != glyph.G2 {
		t.Errorf("AlsoThruG2 type = %v", sc.knots[1].Type)
	}
}

func TestQuadControlsMidpoint(t *testing.T) {
	// A quadratic with normalized control (0, 1) passes (0.25, 0.75) at t=1/2.
	sc := parse(t, Corner(0, 0), QuadControls(0, 1, 2), Corner(100, 100))
	k := sc.knots[1]
	if math.Abs(k.X-25) > 1e-9 || math.Abs(k.Y-75) > 1e-9 {
		t.Errorf("midpoint = (%v, %v), want (25, 75)", k.X, k.Y)
	}
}

func TestParseScriptMalformed(t *testing.T) {
	tests := []struct {
		name  string
		items []Item
	}{
		{"empty", nil},
		{"only marker", []Item{Close()}},
		{"only actions", []Item{Widths(1, 1), End()}},
		{"only interpolations", []Item{AlsoThru(0.5, 0.5), AlsoThru(0.5, 0.5), Close()}},
		{"adjacent interpolations", []Item{G4(0, 0), AlsoThru(0.5, 0.5), AlsoThru(0.5, 0.5), G4(1, 1)}},
		{"action after knot", []Item{G4(0, 0), Unimportant, G4(1, 1)}},
		{"marker in the middle", []Item{G4(0, 0), Close(), G4(1, 1)}},
		{"zero interpolation", []Item{G4(0, 0), Interpolation{}, G4(1, 1)}},
		{"endless", []Item{G4(0, 0), endless(), G4(1, 1)}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := parseScript(newContext(NewStroker()), tt.items)
			if !errors.Is(err, glyph.ErrMalformedKnotScript) {
				t.Errorf("error = %v, want ErrMalformedKnotScript", err)
			}
		})
	}
}

// endless resolves to a knot followed by itself, forever.
func endless() Interpolation {
	var in Interpolation
	in = NewInterpolation(func(_ *Context, before, _ Control) []Item {
		return []Item{before, in}
	})
	return in
}

func TestAdhesions(t *testing.T) {
	tests := []struct {
		name string
		g    Group
		want [2]glyph.Vec2
	}{
		{"up start", Straight.Up.Start(10, 20), [2]glyph.Vec2{{X: 10, Y: 20}, {X: 10, Y: 20.01}}},
		{"up mid", Straight.Up.Mid(10, 20), [2]glyph.Vec2{{X: 10, Y: 19.995}, {X: 10, Y: 20.005}}},
		{"right end", Corners.Right.End(10, 20), [2]glyph.Vec2{{X: 9.99, Y: 20}, {X: 10, Y: 20}}},
		{"left start", SmoothG4.Left.Start(0, 0), [2]glyph.Vec2{{X: 0, Y: 0}, {X: -0.01, Y: 0}}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if len(tt.g) != 2 {
				t.Fatalf("group size = %d, want 2", len(tt.g))
			}
			for i, it := range tt.g {
				k := it.(Control)
				if !glyph.V2(k.X, k.Y).Approx(tt.want[i], 1e-12) {
					t.Errorf("knot %d = (%v, %v), want %v", i, k.X, k.Y, tt.want[i])
				}
			}
		})
	}

	g := Straight.Down.Mid(0, 0)
	if g[0].(Control).Type != glyph.Left || g[1].(Control).Type != glyph.Right {
		t.Error("Straight should emit a flat knot then a curl knot")
	}
}

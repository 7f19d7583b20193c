package glyph

import (
	"errors"
	"math"
	"testing"
)

func TestTransformApply(t *testing.T) {
	tests := []struct {
		name string
		tr   Transform
		p    Vec2
		want Vec2
	}{
		{"identity", Identity(), V2(3, 4), V2(3, 4)},
		{"translate", Translate(10, -5), V2(1, 1), V2(11, -4)},
		{"scale", Scale(2, 3), V2(1, 1), V2(2, 3)},
		{"shear yx", NewTransform(1, 0.5, 0, 1, 0, 0), V2(0, 2), V2(1, 2)},
		{"shear xy", NewTransform(1, 0, 0.5, 1, 0, 0), V2(2, 0), V2(2, 1)},
		{"rotate 90", NewTransform(0, -1, 1, 0, 0, 0), V2(1, 0), V2(0, 1)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.tr.Apply(tt.p); !got.Approx(tt.want, 1e-12) {
				t.Errorf("%v.Apply(%v) = %v, want %v", tt.tr, tt.p, got, tt.want)
			}
		})
	}
}

func TestTransformApplyOffsetIgnoresTranslation(t *testing.T) {
	tr := NewTransform(2, 0, 0, 3, 100, 200)
	if got := tr.ApplyOffset(V2(1, 1)); !got.Approx(V2(2, 3), 1e-12) {
		t.Errorf("ApplyOffset = %v, want (2, 3)", got)
	}
}

func TestTransformApplyPointKeepsType(t *testing.T) {
	p := Point{Type: CubicStart, X: 1, Y: 2}
	got := Translate(1, 1).ApplyPoint(p)
	if got.Type != CubicStart || got.X != 2 || got.Y != 3 {
		t.Errorf("ApplyPoint = %+v", got)
	}
}

func TestTransformRoundTrip(t *testing.T) {
	transforms := []Transform{
		Identity(),
		Translate(7, -3),
		Scale(2, 0.5),
		NewTransform(0.8, -0.6, 0.6, 0.8, 12, 34),
		NewTransform(1, 0.25, 0, 1, -5, 5),
		NewTransform(3, 1, 2, 1, 0.5, 0.25),
	}
	points := []Vec2{V2(0, 0), V2(1, 0), V2(-3.5, 7.25), V2(1000, -1000)}
	for _, tr := range transforms {
		inv, err := tr.Inverse()
		if err != nil {
			t.Fatalf("%v.Inverse() = %v", tr, err)
		}
		for _, p := range points {
			q := tr.Apply(p)
			if got := inv.Apply(q); !got.Approx(p, 1e-9) {
				t.Errorf("inverse(%v) round trip of %v = %v", tr, p, got)
			}
			got, err := tr.Unapply(q)
			if err != nil {
				t.Fatalf("Unapply() = %v", err)
			}
			if !got.Approx(p, 1e-9) {
				t.Errorf("%v.Unapply(%v) = %v, want %v", tr, q, got, p)
			}
		}
	}
}

func TestTransformSingular(t *testing.T) {
	tests := []struct {
		name string
		tr   Transform
	}{
		{"zero", Transform{}},
		{"collapsed axis", Scale(1, 0)},
		{"parallel columns", NewTransform(1, 2, 2, 4, 0, 0)},
		{"nan", NewTransform(math.NaN(), 0, 0, 1, 0, 0)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := tt.tr.Inverse(); !errors.Is(err, ErrSingularTransform) {
				t.Errorf("Inverse() error = %v, want ErrSingularTransform", err)
			}
			if _, err := tt.tr.Unapply(V2(1, 1)); !errors.Is(err, ErrSingularTransform) {
				t.Errorf("Unapply() error = %v, want ErrSingularTransform", err)
			}
		})
	}
}

func TestTransformThen(t *testing.T) {
	a := NewTransform(2, 0.5, -1, 1, 3, 4)
	b := NewTransform(0, 1, -1, 0, -2, 7)
	p := V2(1.5, -2)
	want := b.Apply(a.Apply(p))
	if got := a.Then(b).Apply(p); !got.Approx(want, 1e-12) {
		t.Errorf("a.Then(b).Apply = %v, want %v", got, want)
	}
}

func TestTransformPredicates(t *testing.T) {
	tests := []struct {
		name      string
		tr        Transform
		translate bool
		identity  bool
	}{
		{"identity", Identity(), true, true},
		{"zero translation", Translate(0, 0), true, true},
		{"translation", Translate(1, 0), true, false},
		{"scale", Scale(2, 2), false, false},
		{"nearly identity", Scale(1+1e-15, 1), false, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.tr.IsTranslate(); got != tt.translate {
				t.Errorf("IsTranslate() = %v, want %v", got, tt.translate)
			}
			if got := tt.tr.IsIdentity(); got != tt.identity {
				t.Errorf("IsIdentity() = %v, want %v", got, tt.identity)
			}
		})
	}
}

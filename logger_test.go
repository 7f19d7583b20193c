package glyph

import (
	"context"
	"log/slog"
	"math"
	"slices"
	"sync"
	"testing"
)

// recorder keeps the messages of every record it handles.
type recorder struct {
	mu       sync.Mutex
	level    slog.Level
	messages []string
}

func (r *recorder) Enabled(_ context.Context, l slog.Level) bool { return l >= r.level }
func (r *recorder) WithAttrs([]slog.Attr) slog.Handler           { return r }
func (r *recorder) WithGroup(string) slog.Handler                { return r }

func (r *recorder) Handle(_ context.Context, rec slog.Record) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.messages = append(r.messages, rec.Message)
	return nil
}

func (r *recorder) seen(msg string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return slices.Contains(r.messages, msg)
}

func installRecorder(t *testing.T, level slog.Level) *recorder {
	t.Helper()
	prev := Logger()
	t.Cleanup(func() { SetLogger(prev) })
	rec := &recorder{level: level}
	SetLogger(slog.New(rec))
	return rec
}

func TestLoggerSilentByDefault(t *testing.T) {
	if Logger().Handler() != slog.DiscardHandler {
		t.Fatalf("default handler = %T, want slog.DiscardHandler", Logger().Handler())
	}
	if Logger().Enabled(context.Background(), slog.LevelError) {
		t.Error("default logger should be disabled")
	}
}

func TestSetLoggerNilRestoresSilence(t *testing.T) {
	installRecorder(t, slog.LevelDebug)
	SetLogger(nil)
	if Logger() != silent {
		t.Error("SetLogger(nil) did not restore the silent logger")
	}
}

func TestGeometryDiagnostics(t *testing.T) {
	tests := []struct {
		name  string
		level slog.Level
		run   func(t *testing.T)
		want  string
	}{
		{
			name:  "boolean summary",
			level: slog.LevelDebug,
			run: func(t *testing.T) {
				mustContours(t, NewBoolean(Union, squareOutline(0, 0, 4), squareOutline(2, 2, 4)))
			},
			want: "glyph: boolean resolved",
		},
		{
			name:  "solver non-convergence",
			level: slog.LevelWarn,
			run: func(t *testing.T) {
				knots := []Knot{{Type: G4, X: math.NaN()}, {Type: G4, X: 10}, {Type: G4, X: 10, Y: 10}}
				if _, err := ActiveSplineSolver().ResolveContinuity(knots, true); err != nil {
					t.Fatal(err)
				}
			},
			want: "spline: solve did not converge",
		},
		{
			name:  "coincident knots",
			level: slog.LevelWarn,
			run: func(t *testing.T) {
				knots := []Knot{{Type: G4}, {Type: G4}, {Type: G4, X: 10}, {Type: G4, Y: 10}}
				if _, err := ActiveSplineSolver().ResolveContinuity(knots, true); err != nil {
					t.Fatal(err)
				}
			},
			want: "spline: coincident knots",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := installRecorder(t, tt.level)
			tt.run(t)
			if !rec.seen(tt.want) {
				t.Errorf("messages = %q, want %q", rec.messages, tt.want)
			}
		})
	}
}

func TestDiagnosticsBelowLevelAreDropped(t *testing.T) {
	rec := installRecorder(t, slog.LevelWarn)
	mustContours(t, NewBoolean(Union, squareOutline(0, 0, 1)))
	if rec.seen("glyph: boolean resolved") {
		t.Error("debug record reached a warn-level handler")
	}
}

func TestSetLoggerWhileResolving(t *testing.T) {
	prev := Logger()
	t.Cleanup(func() { SetLogger(prev) })
	rec := &recorder{level: slog.LevelDebug}

	var wg sync.WaitGroup
	for i := range 32 {
		wg.Add(2)
		go func() {
			defer wg.Done()
			g := NewBoolean(Union, squareOutline(float64(i), 0, 2), squareOutline(float64(i)+1, 1, 2))
			if _, err := g.Contours(); err != nil {
				t.Error(err)
			}
		}()
		go func() {
			defer wg.Done()
			SetLogger(slog.New(rec))
			SetLogger(nil)
		}()
	}
	wg.Wait()
}

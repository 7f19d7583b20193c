package glyph

import (
	"log/slog"
	"sync/atomic"
)

// silent discards every record. Its handler reports itself disabled, so
// log calls skip attribute formatting.
var silent = slog.New(slog.DiscardHandler)

var active atomic.Pointer[slog.Logger]

func init() {
	active.Store(silent)
}

// SetLogger routes diagnostics from glyph, stroke, cache, build and
// fontimport to l. The default discards everything; nil restores it.
// It may be called while other goroutines are logging.
//
// Levels:
//   - [slog.LevelDebug]: cache hits, memo races, boolean and stroke summaries
//   - [slog.LevelInfo]: build start and completion
//   - [slog.LevelWarn]: solver non-convergence, coincident knots, degenerate
//     scripts, skipped font runes
//
// Example:
//
//	glyph.SetLogger(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
//	    Level: slog.LevelDebug,
//	})))
func SetLogger(l *slog.Logger) {
	if l == nil {
		l = silent
	}
	active.Store(l)
}

// Logger returns the logger installed by SetLogger.
func Logger() *slog.Logger {
	return active.Load()
}

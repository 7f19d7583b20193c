// Package build orchestrates glyph construction: jobs are grouped into
// dependency levels, each level is built in parallel, and every resolved
// outline goes through the fingerprint-keyed artifact cache.
package build

import (
	"context"
	"errors"
	"fmt"
	"runtime"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/gogpu/glyph"
	"github.com/gogpu/glyph/cache"
)

// Errors reported for invalid job sets. They arrive wrapped in a
// *glyph.GlyphError naming the offending job.
var (
	ErrInvalidJob        = errors.New("build: invalid job")
	ErrUnknownDependency = errors.New("build: unknown dependency")
	ErrDependencyCycle   = errors.New("build: dependency cycle")
)

// Job describes one glyph to build.
type Job struct {
	Name        string
	Deps        []string
	Advance     float64
	Codepoints  []rune
	Description string

	// Build produces the glyph geometry. The registry holds every glyph of
	// earlier levels, so references to dependencies resolve.
	Build func(ctx context.Context, reg glyph.Registry) (glyph.Geometry, error)
}

// Result reports a built glyph.
type Result struct {
	Name        string
	Level       int
	Fingerprint string
	Contours    int
	Complexity  int
	CacheHit    bool
}

// Report summarizes a run. Glyphs are in job order.
type Report struct {
	RunID    string
	Glyphs   []Result
	Levels   int
	Duration time.Duration
}

// Builder runs jobs against a glyph store.
type Builder struct {
	store   *glyph.Store
	workers int
	digest  glyph.Digest
	cache   *cache.Artifacts
}

// Option configures a Builder.
type Option func(*Builder)

// WithWorkers limits the number of glyphs built concurrently. n <= 0 means
// GOMAXPROCS.
func WithWorkers(n int) Option {
	return func(b *Builder) { b.workers = n }
}

// WithCache shares an artifact cache between builders. The cache's digest
// takes precedence over WithDigest.
func WithCache(c *cache.Artifacts) Option {
	return func(b *Builder) { b.cache = c }
}

// WithDigest selects the fingerprint digest of the builder's own cache.
func WithDigest(d glyph.Digest) Option {
	return func(b *Builder) { b.digest = d }
}

// NewBuilder creates a Builder registering glyphs into store.
func NewBuilder(store *glyph.Store, opts ...Option) *Builder {
	b := &Builder{store: store}
	for _, opt := range opts {
		opt(b)
	}
	if b.workers <= 0 {
		b.workers = runtime.GOMAXPROCS(0)
	}
	if b.cache == nil {
		b.cache = cache.NewArtifacts(cache.DefaultCapacity, b.digest)
	}
	return b
}

// Cache returns the artifact cache in use.
func (b *Builder) Cache() *cache.Artifacts { return b.cache }

// Run builds every job. Any failure stops the run and is returned as a
// *glyph.GlyphError; glyphs of completed levels stay registered.
func (b *Builder) Run(ctx context.Context, jobs []Job) (*Report, error) {
	start := time.Now()
	report := &Report{RunID: uuid.New().String()}
	log := glyph.Logger().With("run", report.RunID)

	levels, err := b.plan(jobs)
	if err != nil {
		return nil, err
	}
	report.Levels = len(levels)
	report.Glyphs = make([]Result, len(jobs))
	log.Info("build: start", "jobs", len(jobs), "levels", len(levels), "workers", b.workers)

	for depth, level := range levels {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		g, gctx := errgroup.WithContext(ctx)
		g.SetLimit(b.workers)
		for _, idx := range level {
			job := jobs[idx]
			g.Go(func() error {
				res, err := b.buildOne(gctx, job)
				if err != nil {
					return &glyph.GlyphError{Glyph: job.Name, Err: err}
				}
				res.Level = depth
				report.Glyphs[idx] = res
				log.Debug("build: glyph", "glyph", job.Name, "fingerprint", res.Fingerprint, "hit", res.CacheHit)
				return nil
			})
		}
		if err := g.Wait(); err != nil {
			log.Warn("build: failed", "level", depth, "err", err)
			return nil, err
		}
	}

	report.Duration = time.Since(start)
	log.Info("build: finished", "glyphs", len(jobs), "duration", report.Duration)
	return report, nil
}

func (b *Builder) buildOne(ctx context.Context, job Job) (Result, error) {
	geom, err := job.Build(ctx, b.store)
	if err != nil {
		return Result{}, err
	}
	if geom == nil {
		return Result{}, fmt.Errorf("%w: no geometry", ErrInvalidJob)
	}
	complexity, err := glyph.MeasureComplexity(geom)
	if err != nil {
		return Result{}, err
	}
	art, err := b.cache.Resolve(geom)
	if err != nil {
		return Result{}, err
	}
	err = b.store.Add(&glyph.Glyph{
		Name:        job.Name,
		Geometry:    geom,
		Advance:     job.Advance,
		Codepoints:  job.Codepoints,
		Description: job.Description,
	})
	if err != nil {
		return Result{}, err
	}
	return Result{
		Name:        job.Name,
		Fingerprint: art.Fingerprint,
		Contours:    len(art.Contours),
		Complexity:  complexity,
		CacheHit:    art.Hit,
	}, nil
}

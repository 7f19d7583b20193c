package build

import (
	"fmt"
	"slices"

	"github.com/gogpu/glyph"
)

// plan validates jobs and groups their indices into dependency levels:
// a job's level is one more than the deepest of its dependencies. Jobs
// keep their input order within a level. Dependencies may name glyphs
// already in the store.
func (b *Builder) plan(jobs []Job) ([][]int, error) {
	index := make(map[string]int, len(jobs))
	for i, job := range jobs {
		if job.Name == "" {
			return nil, &glyph.GlyphError{Glyph: fmt.Sprintf("#%d", i), Err: fmt.Errorf("%w: unnamed", ErrInvalidJob)}
		}
		if job.Build == nil {
			return nil, &glyph.GlyphError{Glyph: job.Name, Err: fmt.Errorf("%w: no build function", ErrInvalidJob)}
		}
		if _, dup := index[job.Name]; dup {
			return nil, &glyph.GlyphError{Glyph: job.Name, Err: glyph.ErrDuplicateGlyph}
		}
		if b.store.Lookup(job.Name) != nil {
			return nil, &glyph.GlyphError{Glyph: job.Name, Err: glyph.ErrDuplicateGlyph}
		}
		index[job.Name] = i
	}

	pending := make([]int, len(jobs))
	dependents := make([][]int, len(jobs))
	for i, job := range jobs {
		for _, dep := range job.Deps {
			j, ok := index[dep]
			if !ok {
				if b.store.Lookup(dep) != nil {
					continue
				}
				return nil, &glyph.GlyphError{Glyph: job.Name, Err: fmt.Errorf("%w: %q", ErrUnknownDependency, dep)}
			}
			pending[i]++
			dependents[j] = append(dependents[j], i)
		}
	}

	var levels [][]int
	var current []int
	for i := range jobs {
		if pending[i] == 0 {
			current = append(current, i)
		}
	}
	placed := 0
	for len(current) > 0 {
		levels = append(levels, current)
		placed += len(current)
		var next []int
		for _, i := range current {
			for _, d := range dependents[i] {
				pending[d]--
				if pending[d] == 0 {
					next = append(next, d)
				}
			}
		}
		slices.Sort(next)
		current = next
	}

	if placed < len(jobs) {
		for i, n := range pending {
			if n > 0 {
				return nil, &glyph.GlyphError{Glyph: jobs[i].Name, Err: ErrDependencyCycle}
			}
		}
	}
	return levels, nil
}

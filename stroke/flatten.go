package stroke

import (
	"fmt"

	"github.com/gogpu/glyph"
)

// script is a flattened knot script.
type script struct {
	knots  []Control
	closed bool
}

func flattenGroups(items []Item, out []Item) []Item {
	for _, it := range items {
		switch v := it.(type) {
		case nil:
		case Group:
			out = flattenGroups(v, out)
		default:
			out = append(out, it)
		}
	}
	return out
}

// parseScript runs the leading actions against c, strips the tail marker
// and resolves every interpolation. Paths are open unless the marker closes
// them.
func parseScript(c *Context, items []Item) (*script, error) {
	flat := flattenGroups(items, nil)
	s := &script{}

	for len(flat) > 0 {
		a, ok := flat[0].(Action)
		if !ok {
			break
		}
		if a != nil {
			a(c)
		}
		flat = flat[1:]
	}
	if n := len(flat); n > 0 {
		if m, ok := flat[n-1].(Marker); ok {
			s.closed = m.Closed
			flat = flat[:n-1]
		}
	}
	c.closed = s.closed

	resolved, err := resolveInterpolations(c, flat)
	if err != nil {
		return nil, err
	}
	for i, it := range resolved {
		k, ok := it.(Control)
		if !ok {
			return nil, fmt.Errorf("%w: unexpected %T at position %d", glyph.ErrMalformedKnotScript, it, i)
		}
		s.knots = append(s.knots, k)
	}
	if len(s.knots) == 0 {
		return nil, fmt.Errorf("%w: no knots", glyph.ErrMalformedKnotScript)
	}
	return s, nil
}

// resolveInterpolations replaces interpolations whose neighbours are
// concrete knots, pass by pass, until none remain.
func resolveInterpolations(c *Context, items []Item) ([]Item, error) {
	limit := len(items) + 1
	for pass := 0; ; pass++ {
		pending := 0
		for _, it := range items {
			if _, ok := it.(Interpolation); ok {
				pending++
			}
		}
		if pending == 0 {
			return items, nil
		}
		if pass >= limit {
			return nil, fmt.Errorf("%w: interpolations unresolved after %d passes", glyph.ErrMalformedKnotScript, pass)
		}

		n := len(items)
		next := make([]Item, 0, n)
		progress := 0
		for i, it := range items {
			in, ok := it.(Interpolation)
			if !ok {
				next = append(next, it)
				continue
			}
			before, okb := items[(i-1+n)%n].(Control)
			after, oka := items[(i+1)%n].(Control)
			if !okb || !oka || in.resolve == nil {
				next = append(next, it)
				continue
			}
			next = flattenGroups(in.resolve(c, before, after), next)
			progress++
		}
		if progress == 0 {
			return nil, fmt.Errorf("%w: %d interpolations without concrete neighbours", glyph.ErrMalformedKnotScript, pending)
		}
		items = next
	}
}

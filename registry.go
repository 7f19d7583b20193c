package glyph

import (
	"errors"
	"sort"
	"sync"
)

// Glyph is a named shape. A glyph is immutable once added to a registry.
type Glyph struct {
	Name        string
	Geometry    Geometry
	Advance     float64
	Codepoints  []rune
	Description string
}

// Registry resolves glyph names for references.
type Registry interface {
	// Lookup returns the glyph called name, or nil.
	Lookup(name string) *Glyph
}

// Store is an in-memory Registry safe for concurrent use.
type Store struct {
	mu     sync.RWMutex
	glyphs map[string]*Glyph
}

// NewStore creates an empty store.
func NewStore() *Store {
	return &Store{glyphs: make(map[string]*Glyph)}
}

// Add registers g. Names must be unique and non-empty.
func (s *Store) Add(g *Glyph) error {
	if g == nil || g.Name == "" {
		return errors.New("glyph: cannot register unnamed glyph")
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.glyphs[g.Name]; ok {
		return &GlyphError{Glyph: g.Name, Err: ErrDuplicateGlyph}
	}
	s.glyphs[g.Name] = g
	return nil
}

// Lookup returns the glyph called name, or nil.
func (s *Store) Lookup(name string) *Glyph {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.glyphs[name]
}

// Len returns the number of glyphs.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.glyphs)
}

// Names returns the registered names in sorted order.
func (s *Store) Names() []string {
	s.mu.RLock()
	names := make([]string, 0, len(s.glyphs))
	for name := range s.glyphs {
		names = append(names, name)
	}
	s.mu.RUnlock()
	sort.Strings(names)
	return names
}

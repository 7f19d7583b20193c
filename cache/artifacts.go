package cache

import (
	"strconv"

	"github.com/gogpu/glyph"
)

// Artifacts caches resolved contours by geometry fingerprint and primitive
// epoch, so replacing the spline solver or boolean engine never serves
// contours resolved by the previous one. Geometry whose shape string is
// unavailable is resolved on every call.
type Artifacts struct {
	digest  glyph.Digest
	entries *Sharded[string, []glyph.Contour]
}

// NewArtifacts creates an artifact cache with the given per-shard capacity
// and fingerprint digest.
func NewArtifacts(capacity int, digest glyph.Digest) *Artifacts {
	return &Artifacts{
		digest:  digest,
		entries: NewSharded[string, []glyph.Contour](capacity, StringHasher),
	}
}

// Digest returns the fingerprint digest in use.
func (a *Artifacts) Digest() glyph.Digest { return a.digest }

// Artifact is a resolved geometry.
type Artifact struct {
	// Fingerprint is empty when the geometry is uncacheable.
	Fingerprint string
	Contours    []glyph.Contour
	Hit         bool
}

// Resolve returns g's contours, reusing a previous resolution of any
// geometry with the same fingerprint. Returned contours are shared and must
// not be modified.
func (a *Artifacts) Resolve(g glyph.Geometry) (Artifact, error) {
	fp, ok := glyph.FingerprintWith(g, a.digest)
	if !ok {
		cs, err := g.Contours()
		return Artifact{Contours: cs}, err
	}
	key := strconv.FormatUint(glyph.PrimitiveEpoch(), 10) + ":" + fp
	cs, hit, err := a.entries.GetOrCompute(key, g.Contours)
	if err != nil {
		return Artifact{}, err
	}
	if hit {
		glyph.Logger().Debug("cache: hit", "fingerprint", fp)
	}
	return Artifact{Fingerprint: fp, Contours: cs, Hit: hit}, nil
}

// Stats returns the underlying cache statistics.
func (a *Artifacts) Stats() Stats { return a.entries.Stats() }

// Package params loads build parameters from a TOML file with environment
// overrides.
//
// A parameter file looks like:
//
//	stroke = 80.0
//	contrast = 0.85
//	superness = 2.35
//	workers = 4
//	cache_capacity = 512
//	digest = "blake2b"
//
// Every key is optional. Environment variables prefixed with GLYPH
// (GLYPH_STROKE, GLYPH_CONTRAST, ...) override the file.
package params

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/kelseyhightower/envconfig"
	"github.com/pelletier/go-toml/v2"

	"github.com/gogpu/glyph"
	"github.com/gogpu/glyph/build"
	"github.com/gogpu/glyph/cache"
	"github.com/gogpu/glyph/stroke"
)

// EnvPrefix is the prefix of environment overrides.
const EnvPrefix = "GLYPH"

// ErrInvalid is returned by Validate.
var ErrInvalid = errors.New("params: invalid parameters")

// Parameters are the ambient values of a build.
type Parameters struct {
	Stroke        float64 `toml:"stroke" envconfig:"STROKE"`
	Contrast      float64 `toml:"contrast" envconfig:"CONTRAST"`
	Superness     float64 `toml:"superness" envconfig:"SUPERNESS"`
	Workers       int     `toml:"workers" envconfig:"WORKERS"`
	CacheCapacity int     `toml:"cache_capacity" envconfig:"CACHE_CAPACITY"`
	Digest        string  `toml:"digest" envconfig:"DIGEST"`
}

// Default returns the built-in parameters.
func Default() Parameters {
	return Parameters{
		Stroke:    stroke.DefaultStroke,
		Contrast:  stroke.DefaultContrast,
		Superness: stroke.DefaultSuperness,
		Digest:    glyph.DigestSHA256.String(),
	}
}

// Decode reads TOML over the defaults. Unknown keys are an error.
func Decode(r io.Reader) (Parameters, error) {
	p := Default()
	dec := toml.NewDecoder(r).DisallowUnknownFields()
	if err := dec.Decode(&p); err != nil {
		var strict *toml.StrictMissingError
		if errors.As(err, &strict) {
			return Parameters{}, fmt.Errorf("params: %s", strict.String())
		}
		return Parameters{}, fmt.Errorf("params: %w", err)
	}
	return p, nil
}

// Load reads the parameter file at path, applies environment overrides and
// validates the result. An empty path means defaults plus environment.
func Load(path string) (Parameters, error) {
	p := Default()
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return Parameters{}, fmt.Errorf("params: %w", err)
		}
		if p, err = Decode(bytes.NewReader(data)); err != nil {
			return Parameters{}, fmt.Errorf("%s: %w", path, err)
		}
	}
	if err := ApplyEnv(&p); err != nil {
		return Parameters{}, err
	}
	if err := p.Validate(); err != nil {
		return Parameters{}, err
	}
	return p, nil
}

// ApplyEnv overrides p with GLYPH_* environment variables. Unset variables
// leave fields untouched.
func ApplyEnv(p *Parameters) error {
	if err := envconfig.Process(EnvPrefix, p); err != nil {
		return fmt.Errorf("params: environment: %w", err)
	}
	return nil
}

// Validate checks ranges: positive stroke and superness, contrast in
// [0, 1], non-negative workers and capacity, and a known digest.
func (p Parameters) Validate() error {
	var errs []error
	if !(p.Stroke > 0) {
		errs = append(errs, fmt.Errorf("stroke %v must be positive", p.Stroke))
	}
	if !(p.Contrast >= 0 && p.Contrast <= 1) {
		errs = append(errs, fmt.Errorf("contrast %v must be in [0, 1]", p.Contrast))
	}
	if !(p.Superness > 0) {
		errs = append(errs, fmt.Errorf("superness %v must be positive", p.Superness))
	}
	if p.Workers < 0 {
		errs = append(errs, fmt.Errorf("workers %d must not be negative", p.Workers))
	}
	if p.CacheCapacity < 0 {
		errs = append(errs, fmt.Errorf("cache_capacity %d must not be negative", p.CacheCapacity))
	}
	if _, err := glyph.ParseDigest(p.Digest); err != nil {
		errs = append(errs, err)
	}
	if len(errs) > 0 {
		return fmt.Errorf("%w: %w", ErrInvalid, errors.Join(errs...))
	}
	return nil
}

// DigestValue returns the parsed digest, SHA-256 when unknown.
func (p Parameters) DigestValue() glyph.Digest {
	d, _ := glyph.ParseDigest(p.Digest)
	return d
}

// StrokerOptions returns stroke options carrying the parameters.
func (p Parameters) StrokerOptions() []stroke.Option {
	return []stroke.Option{
		stroke.WithStroke(p.Stroke),
		stroke.WithContrast(p.Contrast),
		stroke.WithSuperness(p.Superness),
	}
}

// BuilderOptions returns build options carrying the parameters. The
// artifact cache is created here so its capacity applies.
func (p Parameters) BuilderOptions() []build.Option {
	return []build.Option{
		build.WithWorkers(p.Workers),
		build.WithDigest(p.DigestValue()),
		build.WithCache(cache.NewArtifacts(p.CacheCapacity, p.DigestValue())),
	}
}

// Package planet turns unit-sphere directions into elevations. A Generator
// is built once per generation pass from an immutable Config; sampling is
// pure and safe to run from any number of goroutines with no coordination.
package planet

import "github.com/AntonZelenin/planetgen/internal/vec"

// MinElevation and MaxElevation bound every value a Generator returns.
const (
	MinElevation = -2.0
	MaxElevation = 2.0
)

// Generator samples planet elevation. Callers pass unit-length directions;
// results are deterministic for a given direction and config, independent
// of call order, and always within [MinElevation, MaxElevation].
type Generator interface {
	SampleHeight(dir vec.Vec3) float64
}

// New validates cfg and returns the generator variant it selects: the full
// multi-stage pipeline, or the two-layer fallback when UseAdvanced is off.
func New(cfg Config) (Generator, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if cfg.UseAdvanced {
		return newAdvanced(cfg)
	}
	return newSimple(cfg), nil
}

// Package noise provides the deterministic scalar noise fields the terrain
// pipeline is built from: seeded 3D gradient noise plus the octave sums
// (FBM, billow, ridged multifractal) layered on top of it.
//
// A Source is a pure value: two sources constructed with the same parameters
// are interchangeable, and sampling never mutates state, so sources may be
// shared freely across goroutines.
package noise

import (
	"math"

	"github.com/aquilax/go-perlin"

	"github.com/AntonZelenin/planetgen/internal/vec"
)

// Perlin reconstruction parameters for the single-octave gradient primitive.
// Octave composition is done here, not inside go-perlin, so the primitive is
// always built with one iteration.
const (
	gradientAlpha = 2.0
	gradientBeta  = 2.0
)

// Gradient is seeded 3D gradient noise returning values in roughly [-1, 1].
// The zero value is not usable; construct with NewGradient.
type Gradient struct {
	p *perlin.Perlin
}

// NewGradient returns a gradient noise field for the given seed.
func NewGradient(seed int64) Gradient {
	return Gradient{p: perlin.NewPerlin(gradientAlpha, gradientBeta, 1, seed)}
}

// At samples the field at p.
func (g Gradient) At(p vec.Vec3) float64 {
	return g.p.Noise3D(p.X, p.Y, p.Z)
}

// Source is a configured multi-octave noise field. Frequency is the base
// spatial frequency, Lacunarity the per-octave frequency multiplier and
// Persistence the per-octave amplitude multiplier.
type Source struct {
	grad        Gradient
	Frequency   float64
	Lacunarity  float64
	Persistence float64
	Octaves     int
}

// New returns a Source sampling gradient noise seeded with seed.
func New(seed int64, frequency, lacunarity float64, octaves int, persistence float64) Source {
	return Source{
		grad:        NewGradient(seed),
		Frequency:   frequency,
		Lacunarity:  lacunarity,
		Persistence: persistence,
		Octaves:     octaves,
	}
}

// FBM sums Octaves layers of gradient noise at geometrically increasing
// frequency and decreasing amplitude. The sum is normalized by the total
// amplitude so the result stays approximately in [-1, 1] regardless of the
// octave count. Zero octaves yield 0.
func (s Source) FBM(p vec.Vec3) float64 {
	freq := s.Frequency
	amp := 1.0
	var sum, norm float64
	for o := 0; o < s.Octaves; o++ {
		sum += s.grad.At(p.Scale(freq)) * amp
		norm += amp
		freq *= s.Lacunarity
		amp *= s.Persistence
	}
	if norm == 0 {
		return 0
	}
	return sum / norm
}

// Billow is FBM with every octave's contribution remapped through 2*|x|-1,
// producing rounded ridges instead of smooth undulation.
func (s Source) Billow(p vec.Vec3) float64 {
	freq := s.Frequency
	amp := 1.0
	var sum, norm float64
	for o := 0; o < s.Octaves; o++ {
		n := s.grad.At(p.Scale(freq))
		sum += (2*math.Abs(n) - 1) * amp
		norm += amp
		freq *= s.Lacunarity
		amp *= s.Persistence
	}
	if norm == 0 {
		return 0
	}
	return sum / norm
}

// Ridged is a ridged multifractal: each octave's sharpened ridge signal
// feeds the next octave's weight, carving trench-like creases. The output
// is rescaled to approximately [-1, 1].
func (s Source) Ridged(p vec.Vec3) float64 {
	if s.Octaves == 0 {
		return 0
	}
	const (
		offset = 1.0
		gain   = 2.0
	)
	freq := s.Frequency
	weight := 1.0
	amp := 1.0
	var sum float64
	for o := 0; o < s.Octaves; o++ {
		sig := offset - math.Abs(s.grad.At(p.Scale(freq)))
		sig *= sig * weight
		weight = sig * gain
		if weight > 1 {
			weight = 1
		} else if weight < 0 {
			weight = 0
		}
		sum += sig * amp
		freq *= s.Lacunarity
		amp *= s.Persistence
	}
	return sum*1.25 - 1
}

package planet

import (
	"math"

	opensimplex "github.com/ojrac/opensimplex-go"

	"github.com/AntonZelenin/planetgen/internal/shaping"
	"github.com/AntonZelenin/planetgen/internal/vec"
)

// Simple fallback parameters. The fallback trades the warp cascade and
// terrain blending for two plain octave fields, which keeps it cheap enough
// for preview sweeps and gives tests a second pipeline to compare against.
const (
	simpleContinentOctaves = 5
	simpleDetailOctaves    = 4
	simplePersistence      = 0.6

	// Fraction of the detail value folded into the coastline threshold.
	coastlineRoughness = 0.3
)

// Simple is the two-layer fallback generator: a base continent field
// thresholded into land and ocean, roughened by a single detail field.
// Land scales positive, ocean depth negative; output stays within
// [MinElevation, MaxElevation] like the advanced pipeline.
type Simple struct {
	continent simplexOctaves
	detail    simplexOctaves

	seaLevel            float64
	continentAmplitude  float64
	detailAmplitude     float64
	oceanDepthAmplitude float64
}

func newSimple(cfg Config) *Simple {
	return &Simple{
		continent:           newSimplexOctaves(cfg.Seed, cfg.ContinentFrequency, simpleContinentOctaves),
		detail:              newSimplexOctaves(cfg.Seed+1, cfg.DetailFrequency, simpleDetailOctaves),
		seaLevel:            cfg.SeaLevel,
		continentAmplitude:  cfg.ContinentAmplitude,
		detailAmplitude:     cfg.DetailAmplitude,
		oceanDepthAmplitude: cfg.OceanDepthAmplitude,
	}
}

// SampleHeight thresholds the continent field at a detail-roughened sea
// level: above it, elevation grows with the distance over the threshold;
// below it, depth grows with the distance under it.
func (g *Simple) SampleHeight(dir vec.Vec3) float64 {
	cv := g.continent.eval(dir) * g.continentAmplitude
	dv := g.detail.eval(dir) * g.detailAmplitude

	threshold := g.seaLevel + dv*coastlineRoughness

	if cv > threshold {
		h := (cv-threshold)*g.continentAmplitude + dv
		if h < 0 {
			h = 0
		}
		return shaping.Clamp(h, MinElevation, MaxElevation)
	}

	d := (threshold-cv)*g.oceanDepthAmplitude + dv*coastlineRoughness
	if d < 0 {
		d = 0
	}
	return shaping.Clamp(-d, MinElevation, MaxElevation)
}

// simplexOctaves is a normalized octave sum over seeded simplex noise:
// octave o runs at frequency*2^o with amplitude persistence^o, and the sum
// is divided by the total amplitude so it stays in [-1, 1].
type simplexOctaves struct {
	os         opensimplex.Noise
	amplitudes []float64
	frequency  float64
}

func newSimplexOctaves(seed int64, frequency float64, octaves int) simplexOctaves {
	n := simplexOctaves{
		os:         opensimplex.New(seed),
		amplitudes: make([]float64, octaves),
		frequency:  frequency,
	}
	for i := range n.amplitudes {
		n.amplitudes[i] = math.Pow(simplePersistence, float64(i))
	}
	return n
}

func (n simplexOctaves) eval(p vec.Vec3) float64 {
	var sum, norm float64
	for o, amp := range n.amplitudes {
		f := n.frequency * float64(int64(1)<<o)
		sum += amp * n.os.Eval3(p.X*f, p.Y*f, p.Z*f)
		norm += amp
	}
	if norm == 0 {
		return 0
	}
	return sum / norm
}

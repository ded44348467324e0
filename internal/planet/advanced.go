package planet

import (
	"github.com/AntonZelenin/planetgen/internal/noise"
	"github.com/AntonZelenin/planetgen/internal/shaping"
	"github.com/AntonZelenin/planetgen/internal/vec"
)

// Stage seeds are fixed offsets from the base seed so every noise field is
// decorrelated but the whole planet reproduces from one number.
const (
	seedContinent = 0
	seedCarver    = 1
	seedTurb0     = 10
	seedTurb1     = 11
	seedTurb2     = 12
	seedTerrain   = 20
	seedHills     = 30
	seedPlains    = 40
	seedTrench    = 50
)

// Tuned pipeline constants. The frequency multiples and the 0.0625 blend
// half-width are inherited empirical values; renaming them is fine,
// re-deriving them is not.
const (
	continentOctaves    = 14
	carverOctaves       = 11
	carverFrequencyMult = 4.34375
	carveStrength       = 0.375

	turbOctaves = 6

	terrainFrequencyMult = 18.125
	terrainOctaves       = 3

	hillsOctaves    = 6
	hillsAmplitude  = 0.15
	plainsOctaves   = 4
	plainsAmplitude = 0.05
	plainsFreqMult  = 0.5

	plainsThreshold = 0.25
	hillsThreshold  = 0.75
	terrainFalloff  = 0.125

	trenchFrequencyMult = 4.375
	trenchOctaves       = 16
	trenchScale         = 0.25

	seaBlendHalfWidth = 0.0625

	defaultPersistence = 0.5

	// Offsets that decorrelate the three displacement axes of a turbulence
	// layer: the same field sampled far apart behaves as independent noise.
	axisOffset = 100.0
)

// turbFrequencyMults are the per-layer frequency multiples of the warp
// cascade. Displacement power is 1/(freq+1), so higher layers displace less.
var turbFrequencyMults = [3]float64{15.25, 47.25, 95.25}

// Advanced is the full multi-stage terrain pipeline: curved continents,
// valley carving, a three-layer turbulence cascade blended in near sea
// level, hills/plains selection, shelf terracing and ridged ocean trenches.
type Advanced struct {
	continent noise.Source
	carver    noise.Source
	turb      [3]noise.Source
	turbPower [3]float64
	terrain   noise.Source
	hills     noise.Source
	plains    noise.Source
	trench    noise.Source

	curve shaping.Curve
	shelf shaping.Terrace

	seaLevel            float64
	shelfElevation      float64
	terrainOffset       float64
	heightScale         float64
	oceanDepthAmplitude float64
}

func newAdvanced(cfg Config) (*Advanced, error) {
	curve, err := continentCurve(cfg.SeaLevel)
	if err != nil {
		return nil, err
	}

	// Elevation leaves continent-definition space scaled by the height
	// scale, so the shelf terrace levels are scaled the same way.
	heightScale := (1 - cfg.SeaLevel) / 4
	shelf, err := shaping.NewTerrace([]float64{
		-1 * heightScale,
		-0.75 * heightScale,
		cfg.ShelfLevel * heightScale,
		cfg.SeaLevel * heightScale,
		1 * heightScale,
	})
	if err != nil {
		return nil, err
	}

	g := &Advanced{
		continent: noise.New(cfg.Seed+seedContinent, cfg.ContinentFrequency, cfg.ContinentLacunarity, continentOctaves, defaultPersistence),
		carver:    noise.New(cfg.Seed+seedCarver, cfg.ContinentFrequency*carverFrequencyMult, cfg.ContinentLacunarity, carverOctaves, defaultPersistence),
		terrain:   noise.New(cfg.Seed+seedTerrain, cfg.ContinentFrequency*terrainFrequencyMult, cfg.ContinentLacunarity, terrainOctaves, defaultPersistence),
		hills:     noise.New(cfg.Seed+seedHills, cfg.DetailFrequency, cfg.HillsLacunarity, hillsOctaves, defaultPersistence),
		plains:    noise.New(cfg.Seed+seedPlains, cfg.DetailFrequency*plainsFreqMult, cfg.PlainsLacunarity, plainsOctaves, defaultPersistence),
		trench:    noise.New(cfg.Seed+seedTrench, cfg.ContinentFrequency*trenchFrequencyMult, cfg.ContinentLacunarity, trenchOctaves, defaultPersistence),

		curve: curve,
		shelf: shelf,

		seaLevel:            cfg.SeaLevel,
		shelfElevation:      cfg.ShelfLevel * heightScale,
		terrainOffset:       cfg.TerrainOffset,
		heightScale:         heightScale,
		oceanDepthAmplitude: cfg.OceanDepthAmplitude,
	}
	turbSeeds := [3]int64{cfg.Seed + seedTurb0, cfg.Seed + seedTurb1, cfg.Seed + seedTurb2}
	for i := range g.turb {
		freq := cfg.ContinentFrequency * turbFrequencyMults[i]
		g.turb[i] = noise.New(turbSeeds[i], freq, cfg.ContinentLacunarity, turbOctaves, defaultPersistence)
		g.turbPower[i] = 1 / (freq + 1)
	}
	return g, nil
}

// SampleHeight runs the full pipeline for one direction.
func (g *Advanced) SampleHeight(dir vec.Vec3) float64 {
	// Base continent shape with valleys carved out.
	carved := g.continentAt(dir)

	// Warping is worth its cost only near coastlines; deep ocean keeps the
	// smooth base. The blend ramps over a band of one half-width on either
	// side of sea level.
	warpedCarved := g.continentAt(g.Warp(dir))
	blend := shaping.Clamp((carved-(g.seaLevel-seaBlendHalfWidth))/(2*seaBlendHalfWidth), 0, 1)
	continent := shaping.Clamp(shaping.Lerp(carved, warpedCarved, blend), -1, 1)

	// Hills vs plains, chosen by a low-frequency selector field.
	selector := g.terrain.FBM(dir) + g.terrainOffset
	hills := g.hills.Billow(dir) * hillsAmplitude
	plains := g.plains.Billow(dir) * plainsAmplitude
	terrain := shaping.Select(plains, hills, selector, plainsThreshold, hillsThreshold, terrainFalloff)

	elevation := continent*g.heightScale + terrain

	if elevation < g.shelfElevation {
		elevation = g.shelf.Apply(elevation)
		elevation += g.trench.Ridged(dir) * g.oceanDepthAmplitude * trenchScale
	}

	return shaping.Clamp(elevation, MinElevation, MaxElevation)
}

func (g *Advanced) continentAt(p vec.Vec3) float64 {
	base := g.curve.Apply(g.continent.FBM(p))
	return base - g.carver.FBM(p)*carveStrength
}

// Warp runs the three-layer turbulence cascade on a sampling coordinate.
// Each layer displaces by at most its power (1/(freq+1)) per axis, so the
// cascade stays bounded; layer i's output feeds layer i+1.
func (g *Advanced) Warp(p vec.Vec3) vec.Vec3 {
	for i := range g.turb {
		p = g.warpLayer(i, p)
	}
	return p
}

func (g *Advanced) warpLayer(i int, p vec.Vec3) vec.Vec3 {
	t := g.turb[i]
	power := g.turbPower[i]
	dx := t.FBM(p) * power
	dy := t.FBM(p.Add(vec.New(axisOffset, 0, 0))) * power
	dz := t.FBM(p.Add(vec.New(0, axisOffset, 0))) * power
	return p.Add(vec.New(dx, dy, dz))
}

// LayerPower reports the displacement power of cascade layer i.
func (g *Advanced) LayerPower(i int) float64 {
	return g.turbPower[i]
}

// continentCurve builds the elevation response curve that flattens
// sea-level plains and steepens peaks, anchored to the configured sea level.
func continentCurve(seaLevel float64) (shaping.Curve, error) {
	s := seaLevel
	return shaping.NewCurve([]shaping.ControlPoint{
		{In: -2.0 + s, Out: -1.625 + s},
		{In: -1.0 + s, Out: -1.375 + s},
		{In: 0.0 + s, Out: -0.375 + s},
		{In: 0.0625 + s, Out: 0.125 + s},
		{In: 0.125 + s, Out: 0.25 + s},
		{In: 0.25 + s, Out: 1.0 + s},
		{In: 0.5 + s, Out: 0.25 + s},
		{In: 0.75 + s, Out: 0.25 + s},
		{In: 1.0 + s, Out: 0.5 + s},
		{In: 2.0 + s, Out: 0.5 + s},
	})
}

package planet

import "fmt"

// Config is the immutable parameter bundle for one generation pass. All
// fields are read-only once a generator has been constructed from them;
// live retuning means building a new generator from a fresh Config and
// swapping it in, never mutating fields under running samplers.
type Config struct {
	// ContinentFrequency is the base spatial frequency of the continent
	// field on the unit sphere.
	ContinentFrequency float64 `mapstructure:"continent_frequency"`
	// ContinentLacunarity is the per-octave frequency multiplier used by
	// the continent, carver, turbulence and trench fields.
	ContinentLacunarity float64 `mapstructure:"continent_lacunarity"`
	// ContinentAmplitude scales the simple pipeline's continent layer.
	ContinentAmplitude float64 `mapstructure:"continent_amplitude"`
	// SeaLevel is the continent/ocean threshold in continent-definition
	// space, typically in (-0.5, 0.5).
	SeaLevel float64 `mapstructure:"sea_level"`
	// ShelfLevel is where the continental shelf begins, below SeaLevel and
	// above the -0.75 terrace floor.
	ShelfLevel float64 `mapstructure:"shelf_level"`
	// TerrainOffset biases the hills/plains selector field.
	TerrainOffset float64 `mapstructure:"terrain_offset"`
	// DetailFrequency is the base frequency of the hills field; plains run
	// at half of it, and the simple pipeline's detail layer uses it directly.
	DetailFrequency float64 `mapstructure:"detail_frequency"`
	// DetailAmplitude scales the simple pipeline's detail layer.
	DetailAmplitude float64 `mapstructure:"detail_amplitude"`
	// OceanDepthAmplitude scales trench depth variation below the shelf.
	OceanDepthAmplitude float64 `mapstructure:"ocean_depth_amplitude"`
	// HillsLacunarity and PlainsLacunarity drive the billow terrain fields.
	HillsLacunarity  float64 `mapstructure:"hills_lacunarity"`
	PlainsLacunarity float64 `mapstructure:"plains_lacunarity"`
	// Seed is the base seed; every pipeline stage derives its own seed from
	// it at a fixed offset.
	Seed int64 `mapstructure:"seed"`
	// UseAdvanced selects the full multi-stage pipeline; false selects the
	// two-layer fallback.
	UseAdvanced bool `mapstructure:"use_advanced"`
}

// DefaultConfig returns the tuned defaults. The lacunarities and levels are
// empirically tuned values inherited from the classic complex-planet noise
// chain; they are preserved verbatim rather than re-derived.
func DefaultConfig() Config {
	return Config{
		ContinentFrequency:  1.0,
		ContinentLacunarity: 2.208984375,
		ContinentAmplitude:  1.0,
		SeaLevel:            0.0,
		ShelfLevel:          -0.375,
		TerrainOffset:       0.0,
		DetailFrequency:     24.0,
		DetailAmplitude:     0.15,
		OceanDepthAmplitude: 0.5,
		HillsLacunarity:     2.162109375,
		PlainsLacunarity:    2.314453125,
		Seed:                1337,
		UseAdvanced:         true,
	}
}

// SeaElevation returns the configured sea level expressed in output
// elevation units, which is where renderers anchor their color ramps. The
// advanced pipeline scales continent space by (1-SeaLevel)/4 on output;
// the simple pipeline centers its ocean/land split at zero.
func (c Config) SeaElevation() float64 {
	if c.UseAdvanced {
		return c.SeaLevel * (1 - c.SeaLevel) / 4
	}
	return 0
}

// Validate rejects configurations that would produce degenerate noise or
// undefined shaping tables. Validation happens once at construction; the
// sampling path assumes a valid config and never branches on these cases.
func (c Config) Validate() error {
	if c.ContinentFrequency <= 0 {
		return fmt.Errorf("continent_frequency must be positive, got %g", c.ContinentFrequency)
	}
	if c.DetailFrequency <= 0 {
		return fmt.Errorf("detail_frequency must be positive, got %g", c.DetailFrequency)
	}
	if c.ContinentLacunarity <= 1 {
		return fmt.Errorf("continent_lacunarity must be greater than 1, got %g", c.ContinentLacunarity)
	}
	if c.HillsLacunarity <= 1 {
		return fmt.Errorf("hills_lacunarity must be greater than 1, got %g", c.HillsLacunarity)
	}
	if c.PlainsLacunarity <= 1 {
		return fmt.Errorf("plains_lacunarity must be greater than 1, got %g", c.PlainsLacunarity)
	}
	if c.ContinentAmplitude < 0 {
		return fmt.Errorf("continent_amplitude must not be negative, got %g", c.ContinentAmplitude)
	}
	if c.DetailAmplitude < 0 {
		return fmt.Errorf("detail_amplitude must not be negative, got %g", c.DetailAmplitude)
	}
	if c.OceanDepthAmplitude < 0 {
		return fmt.Errorf("ocean_depth_amplitude must not be negative, got %g", c.OceanDepthAmplitude)
	}
	if c.SeaLevel <= -1 || c.SeaLevel >= 1 {
		return fmt.Errorf("sea_level must lie in (-1, 1), got %g", c.SeaLevel)
	}
	// The shelf terrace runs -1, -0.75, shelf, sea, 1 and its levels must
	// stay strictly increasing.
	if c.ShelfLevel <= -0.75 || c.ShelfLevel >= c.SeaLevel {
		return fmt.Errorf("shelf_level must lie in (-0.75, sea_level %g), got %g", c.SeaLevel, c.ShelfLevel)
	}
	return nil
}

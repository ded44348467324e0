package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/AntonZelenin/planetgen/internal/planet"
)

// registerPlanetFlags adds the shared planet parameter flags to a command.
// The viper binding happens per run in bindPlanetFlags: several commands
// carry these flags, and binding from init would leave only the last
// registrant's flag set wired to the shared keys.
func registerPlanetFlags(cmd *cobra.Command) {
	defaults := planet.DefaultConfig()

	cmd.Flags().Int64("seed", defaults.Seed, "Base seed; every noise stage derives from it")
	cmd.Flags().Bool("simple", false, "Use the simple two-layer pipeline instead of the advanced one")
	cmd.Flags().Float64("continent-frequency", defaults.ContinentFrequency, "Base frequency of the continent field")
	cmd.Flags().Float64("continent-lacunarity", defaults.ContinentLacunarity, "Per-octave frequency multiplier for continent noise")
	cmd.Flags().Float64("sea-level", defaults.SeaLevel, "Continent/ocean threshold in (-1, 1)")
	cmd.Flags().Float64("shelf-level", defaults.ShelfLevel, "Continental shelf level, in (-0.75, sea-level)")
	cmd.Flags().Float64("terrain-offset", defaults.TerrainOffset, "Bias for the hills/plains selector")
	cmd.Flags().Float64("detail-frequency", defaults.DetailFrequency, "Base frequency of the hills field")
	cmd.Flags().Float64("ocean-depth-amplitude", defaults.OceanDepthAmplitude, "Trench depth variation scale")

	cmd.PreRunE = func(cmd *cobra.Command, args []string) error {
		return bindPlanetFlags(cmd)
	}
}

// bindPlanetFlags binds the running command's planet flags to the shared
// "planet." viper keys, so a config file can set any of them and flags
// override.
func bindPlanetFlags(cmd *cobra.Command) error {
	bindFlags := []struct {
		key  string
		flag string
	}{
		{"planet.seed", "seed"},
		{"planet.simple", "simple"},
		{"planet.continent_frequency", "continent-frequency"},
		{"planet.continent_lacunarity", "continent-lacunarity"},
		{"planet.sea_level", "sea-level"},
		{"planet.shelf_level", "shelf-level"},
		{"planet.terrain_offset", "terrain-offset"},
		{"planet.detail_frequency", "detail-frequency"},
		{"planet.ocean_depth_amplitude", "ocean-depth-amplitude"},
	}
	for _, bf := range bindFlags {
		if err := viper.BindPFlag(bf.key, cmd.Flags().Lookup(bf.flag)); err != nil {
			return fmt.Errorf("failed to bind flag %s: %w", bf.flag, err)
		}
	}
	return nil
}

// planetConfig assembles and validates the generation config from viper.
func planetConfig() (planet.Config, error) {
	cfg := planet.DefaultConfig()

	cfg.Seed = viper.GetInt64("planet.seed")
	cfg.UseAdvanced = !viper.GetBool("planet.simple")
	cfg.ContinentFrequency = viper.GetFloat64("planet.continent_frequency")
	cfg.ContinentLacunarity = viper.GetFloat64("planet.continent_lacunarity")
	cfg.SeaLevel = viper.GetFloat64("planet.sea_level")
	cfg.ShelfLevel = viper.GetFloat64("planet.shelf_level")
	cfg.TerrainOffset = viper.GetFloat64("planet.terrain_offset")
	cfg.DetailFrequency = viper.GetFloat64("planet.detail_frequency")
	cfg.OceanDepthAmplitude = viper.GetFloat64("planet.ocean_depth_amplitude")

	if err := cfg.Validate(); err != nil {
		return planet.Config{}, fmt.Errorf("invalid planet configuration: %w", err)
	}
	return cfg, nil
}

// modeName names the selected pipeline for metadata and logs.
func modeName(cfg planet.Config) string {
	if cfg.UseAdvanced {
		return "advanced"
	}
	return "simple"
}

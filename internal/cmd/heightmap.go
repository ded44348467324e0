package cmd

import (
	"fmt"
	"image"
	"image/color"
	"path/filepath"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/AntonZelenin/planetgen/internal/cubemap"
	"github.com/AntonZelenin/planetgen/internal/planet"
)

var heightmapCmd = &cobra.Command{
	Use:   "heightmap",
	Short: "Generate cube-face heightmaps",
	Long: `Heightmap samples the planet onto six cube faces and writes one grayscale
PNG per face, the layout consumed by cube-sphere mesh builders. Elevation
is mapped linearly from [-2, 2] to [0, 255].`,
	RunE: runHeightmap,
}

func init() {
	rootCmd.AddCommand(heightmapCmd)

	heightmapCmd.Flags().Float64("radius", 20.0, "Planet radius in world units")
	heightmapCmd.Flags().Float64("cells-per-unit", 2.0, "Heightmap cells per world unit")
	heightmapCmd.Flags().Int("grid-size", 0, "Explicit per-face grid size (overrides radius/cells-per-unit)")

	registerPlanetFlags(heightmapCmd)

	bindFlags := []struct {
		key  string
		flag string
	}{
		{"heightmap.radius", "radius"},
		{"heightmap.cells_per_unit", "cells-per-unit"},
		{"heightmap.grid_size", "grid-size"},
	}
	for _, bf := range bindFlags {
		if err := viper.BindPFlag(bf.key, heightmapCmd.Flags().Lookup(bf.flag)); err != nil {
			panic(fmt.Sprintf("failed to bind flag %s: %v", bf.flag, err))
		}
	}
}

func runHeightmap(cmd *cobra.Command, args []string) error {
	radius := viper.GetFloat64("heightmap.radius")
	cellsPerUnit := viper.GetFloat64("heightmap.cells_per_unit")
	gridSize := viper.GetInt("heightmap.grid_size")
	outputDir := viper.GetString("output-dir")

	if logger == nil {
		initLogging()
	}

	cfg, err := planetConfig()
	if err != nil {
		return err
	}

	gen, err := planet.New(cfg)
	if err != nil {
		return fmt.Errorf("failed to build generator: %w", err)
	}

	if gridSize <= 0 {
		gridSize = cubemap.GridSizeFor(radius, cellsPerUnit)
	}

	logger.Info("Building cube-face heightmaps",
		"mode", modeName(cfg),
		"seed", cfg.Seed,
		"grid_size", gridSize,
	)

	p, err := cubemap.Build(gen, gridSize, radius)
	if err != nil {
		return fmt.Errorf("failed to build heightmaps: %w", err)
	}

	for _, face := range p.Faces {
		img := faceImage(face)
		name := fmt.Sprintf("face_%s.png", faceFileName(face.Face))
		path := filepath.Join(outputDir, name)
		if err := writePNG(path, img); err != nil {
			return err
		}
		logger.Info("Face written", "face", face.Face.String(), "path", path)
	}

	return nil
}

// faceImage maps a face's elevations onto an 8-bit grayscale image.
func faceImage(h cubemap.Heightmap) *image.Gray {
	img := image.NewGray(image.Rect(0, 0, h.Size, h.Size))
	span := planet.MaxElevation - planet.MinElevation
	for y := 0; y < h.Size; y++ {
		for x := 0; x < h.Size; x++ {
			t := (h.At(x, y) - planet.MinElevation) / span
			img.SetGray(x, y, color.Gray{Y: uint8(t * 255)})
		}
	}
	return img
}

// faceFileName gives filesystem-safe face names (+x → px, etc.).
func faceFileName(f cubemap.Face) string {
	names := map[cubemap.Face]string{
		cubemap.PosX: "px",
		cubemap.NegX: "nx",
		cubemap.PosY: "py",
		cubemap.NegY: "ny",
		cubemap.PosZ: "pz",
		cubemap.NegZ: "nz",
	}
	return names[f]
}

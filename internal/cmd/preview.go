package cmd

import (
	"fmt"
	"image"
	"image/png"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/AntonZelenin/planetgen/internal/planet"
	"github.com/AntonZelenin/planetgen/internal/render"
)

var previewCmd = &cobra.Command{
	Use:   "preview",
	Short: "Render a whole-planet preview image",
	Long: `Preview renders the planet as a single equirectangular PNG, useful for
quickly judging a seed or parameter change before committing to a full
tile generation run.`,
	RunE: runPreview,
}

func init() {
	rootCmd.AddCommand(previewCmd)

	previewCmd.Flags().Int("width", 1024, "Image width in pixels (height is width/2)")
	previewCmd.Flags().Bool("shaded", true, "Apply hillshading")
	previewCmd.Flags().Bool("smooth", false, "Apply a light blur+contrast post-filter")
	previewCmd.Flags().Bool("hidpi", false, "Also write a 2x upscaled copy")
	previewCmd.Flags().StringP("out", "o", "", "Output path (default: <output-dir>/preview_<seed>.png)")

	registerPlanetFlags(previewCmd)

	bindFlags := []struct {
		key  string
		flag string
	}{
		{"preview.width", "width"},
		{"preview.shaded", "shaded"},
		{"preview.smooth", "smooth"},
		{"preview.hidpi", "hidpi"},
		{"preview.out", "out"},
	}
	for _, bf := range bindFlags {
		if err := viper.BindPFlag(bf.key, previewCmd.Flags().Lookup(bf.flag)); err != nil {
			panic(fmt.Sprintf("failed to bind flag %s: %v", bf.flag, err))
		}
	}
}

func runPreview(cmd *cobra.Command, args []string) error {
	width := viper.GetInt("preview.width")
	shaded := viper.GetBool("preview.shaded")
	smooth := viper.GetBool("preview.smooth")
	hidpi := viper.GetBool("preview.hidpi")
	outPath := viper.GetString("preview.out")
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

	if outPath == "" {
		outPath = filepath.Join(outputDir, fmt.Sprintf("preview_%d.png", cfg.Seed))
	}

	logger.Info("Rendering preview",
		"mode", modeName(cfg),
		"seed", cfg.Seed,
		"width", width,
		"path", outPath,
	)

	img, err := render.RenderEquirect(gen, cfg.SeaElevation(), width, render.EquirectOptions{
		Shaded: shaded,
		Smooth: smooth,
	})
	if err != nil {
		return fmt.Errorf("failed to render preview: %w", err)
	}

	if err := writePNG(outPath, img); err != nil {
		return err
	}
	logger.Info("Preview written", "path", outPath)

	if hidpi {
		big, err := render.Upscale(img, 2)
		if err != nil {
			return fmt.Errorf("failed to upscale preview: %w", err)
		}
		bigPath := withSuffix(outPath, "@2x")
		if err := writePNG(bigPath, big); err != nil {
			return err
		}
		logger.Info("HiDPI preview written", "path", bigPath)
	}

	return nil
}

func writePNG(path string, img image.Image) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("failed to create output dir: %w", err)
		}
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", path, err)
	}
	defer f.Close()

	if err := png.Encode(f, img); err != nil {
		return fmt.Errorf("failed to encode %s: %w", path, err)
	}
	return nil
}

// withSuffix inserts a suffix before the file extension.
func withSuffix(path, suffix string) string {
	ext := filepath.Ext(path)
	return path[:len(path)-len(ext)] + suffix + ext
}

package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"runtime"
	"strconv"
	"strings"
	"syscall"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/AntonZelenin/planetgen/internal/mbtiles"
	"github.com/AntonZelenin/planetgen/internal/planet"
	"github.com/AntonZelenin/planetgen/internal/render"
	"github.com/AntonZelenin/planetgen/internal/tile"
	"github.com/AntonZelenin/planetgen/internal/worker"
)

var generateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Generate planet elevation tiles",
	Long: `Generate renders planet elevation tiles for a zoom range, either for the
whole planet or for a geographic bounding box, into a folder of PNGs or a
single MBTiles database.`,
	RunE: runGenerate,
}

func init() {
	rootCmd.AddCommand(generateCmd)

	generateCmd.Flags().Int("zoom-min", 0, "Minimum zoom level")
	generateCmd.Flags().Int("zoom-max", 3, "Maximum zoom level")
	generateCmd.Flags().String("bbox", "", "Optional bounding box: minLon,minLat,maxLon,maxLat (default: whole planet)")
	generateCmd.Flags().IntP("workers", "w", 0, "Number of parallel workers (default: number of CPUs)")
	generateCmd.Flags().Bool("progress", true, "Show progress bar")
	generateCmd.Flags().Bool("force", false, "Re-render tiles that already exist")
	generateCmd.Flags().Bool("allow-failures", false, "Continue even if some tiles fail")
	generateCmd.Flags().Int("tile-size", 256, "Tile size in pixels")
	generateCmd.Flags().Bool("shaded", true, "Apply hillshading")
	generateCmd.Flags().String("png-compression", "default", "PNG compression (default, speed, best, none)")
	generateCmd.Flags().String("format", "folder", "Output format: folder or mbtiles")
	generateCmd.Flags().String("output-file", "", "Output file path for MBTiles format (e.g., planet.mbtiles)")

	registerPlanetFlags(generateCmd)

	bindFlags := []struct {
		key  string
		flag string
	}{
		{"generate.zoom_min", "zoom-min"},
		{"generate.zoom_max", "zoom-max"},
		{"generate.bbox", "bbox"},
		{"generate.workers", "workers"},
		{"generate.progress", "progress"},
		{"generate.force", "force"},
		{"generate.allow_failures", "allow-failures"},
		{"generate.tile_size", "tile-size"},
		{"generate.shaded", "shaded"},
		{"generate.png_compression", "png-compression"},
		{"generate.format", "format"},
		{"generate.output_file", "output-file"},
	}
	for _, bf := range bindFlags {
		if err := viper.BindPFlag(bf.key, generateCmd.Flags().Lookup(bf.flag)); err != nil {
			panic(fmt.Sprintf("failed to bind flag %s: %v", bf.flag, err))
		}
	}
}

func runGenerate(cmd *cobra.Command, args []string) error {
	zoomMin := viper.GetInt("generate.zoom_min")
	zoomMax := viper.GetInt("generate.zoom_max")
	bboxStr := viper.GetString("generate.bbox")
	workers := viper.GetInt("generate.workers")
	showProgress := viper.GetBool("generate.progress")
	force := viper.GetBool("generate.force")
	allowFailures := viper.GetBool("generate.allow_failures")
	tileSize := viper.GetInt("generate.tile_size")
	shaded := viper.GetBool("generate.shaded")
	pngCompression := viper.GetString("generate.png_compression")
	format := viper.GetString("generate.format")
	outputFile := viper.GetString("generate.output_file")
	outputDir := viper.GetString("output-dir")

	if logger == nil {
		initLogging()
	}

	if zoomMin < 0 || zoomMax < 0 || zoomMin > zoomMax {
		return fmt.Errorf("invalid zoom range %d-%d", zoomMin, zoomMax)
	}
	if format != "folder" && format != "mbtiles" {
		return fmt.Errorf("invalid format %q: must be 'folder' or 'mbtiles'", format)
	}
	if format == "mbtiles" && outputFile == "" {
		return fmt.Errorf("--output-file is required when using --format=mbtiles")
	}
	if workers <= 0 {
		workers = runtime.NumCPU()
	}

	cfg, err := planetConfig()
	if err != nil {
		return err
	}

	gen, err := planet.New(cfg)
	if err != nil {
		return fmt.Errorf("failed to build generator: %w", err)
	}

	// Tile list: whole planet unless a bbox narrows it.
	var tiles []tile.Coords
	bounds := [4]float64{-180, -85.0511, 180, 85.0511}
	if bboxStr != "" {
		bounds, err = parseBBox(bboxStr)
		if err != nil {
			return fmt.Errorf("invalid bbox: %w", err)
		}
		tiles = tile.TilesInBBox(bounds, zoomMin, zoomMax)
	} else {
		tiles = tile.TilesForZoomRange(zoomMin, zoomMax)
	}

	logger.Info("Starting planet tile generation",
		"mode", modeName(cfg),
		"seed", cfg.Seed,
		"zoom_range", fmt.Sprintf("%d-%d", zoomMin, zoomMax),
		"tiles", len(tiles),
		"workers", workers,
		"format", format,
	)

	var tileWriter render.TileWriter
	var mbtilesWriter *mbtiles.Writer
	if format == "mbtiles" {
		metadata := mbtiles.Metadata{
			Name:        "planetgen",
			Format:      "png",
			Description: "Procedurally generated planet elevation",
			Type:        "baselayer",
			Version:     "1.0",
			Bounds:      bounds,
			Center:      [3]float64{0, 0, float64((zoomMin + zoomMax) / 2)},
			MinZoom:     zoomMin,
			MaxZoom:     zoomMax,
			Seed:        cfg.Seed,
			Mode:        modeName(cfg),
			SeaLevel:    cfg.SeaLevel,
		}

		mbtilesWriter, err = mbtiles.New(outputFile, metadata)
		if err != nil {
			return fmt.Errorf("failed to create MBTiles writer: %w", err)
		}
		defer mbtilesWriter.Close()
		tileWriter = mbtilesWriter

		logger.Info("MBTiles writer created", "path", outputFile)
	}

	renderer, err := render.NewTileRenderer(gen, cfg.SeaElevation(), outputDir, tileSize, logger, render.TileRendererOptions{
		PNGCompression: pngCompression,
		TileWriter:     tileWriter,
		Shaded:         shaded,
	})
	if err != nil {
		return fmt.Errorf("failed to init tile renderer: %w", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	go func() {
		<-sigCh
		logger.Info("Received interrupt signal, cancelling...")
		cancel()
	}()

	tasks := make([]worker.Task, 0, len(tiles))
	for _, coords := range tiles {
		tasks = append(tasks, worker.Task{Coords: coords, Force: force})
	}

	progress := worker.NewProgress(len(tasks), showProgress)

	pool := worker.New(worker.Config{
		Workers:    workers,
		Renderer:   renderer,
		OnProgress: progress.Callback(),
	})

	results := pool.Run(ctx, tasks)
	progress.Done()

	var failedCount int
	for _, r := range results {
		if r.Err != nil {
			failedCount++
			logger.Error("Tile render failed", "coords", r.Task.Coords.String(), "error", r.Err)
		}
	}

	logger.Info(progress.Summary())

	if failedCount > 0 {
		if allowFailures {
			logger.Warn("Some tiles failed to render, continuing due to --allow-failures", "failed_count", failedCount)
		} else {
			return fmt.Errorf("%d tiles failed to render", failedCount)
		}
	}

	if mbtilesWriter != nil {
		if err := mbtilesWriter.Flush(); err != nil {
			return fmt.Errorf("failed to flush MBTiles: %w", err)
		}
		logger.Info("MBTiles generation complete", "path", outputFile)
	}

	return nil
}

// parseBBox parses "minLon,minLat,maxLon,maxLat" into [4]float64.
func parseBBox(s string) ([4]float64, error) {
	parts := strings.Split(s, ",")
	if len(parts) != 4 {
		return [4]float64{}, fmt.Errorf("expected 4 comma-separated values, got %d", len(parts))
	}

	var bbox [4]float64
	for i, part := range parts {
		val, err := strconv.ParseFloat(strings.TrimSpace(part), 64)
		if err != nil {
			return [4]float64{}, fmt.Errorf("invalid number at position %d: %w", i, err)
		}
		bbox[i] = val
	}

	if bbox[0] >= bbox[2] {
		return [4]float64{}, fmt.Errorf("minLon (%.4f) must be < maxLon (%.4f)", bbox[0], bbox[2])
	}
	if bbox[1] >= bbox[3] {
		return [4]float64{}, fmt.Errorf("minLat (%.4f) must be < maxLat (%.4f)", bbox[1], bbox[3])
	}

	return bbox, nil
}

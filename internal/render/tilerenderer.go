package render

import (
	"bytes"
	"context"
	"fmt"
	"image"
	"image/png"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/AntonZelenin/planetgen/internal/planet"
	"github.com/AntonZelenin/planetgen/internal/tile"
)

// TileWriter receives finished tiles instead of the filesystem; the
// mbtiles writer satisfies it.
type TileWriter interface {
	WriteTile(z, x, y int, pngData []byte) error
}

// TileRendererOptions carries the optional knobs for a TileRenderer.
type TileRendererOptions struct {
	// PNGCompression is one of "default", "speed", "best", "none".
	PNGCompression string
	// TileWriter, when set, receives tiles instead of the output directory.
	TileWriter TileWriter
	// Shaded enables hillshading.
	Shaded bool
	// ShadeStrength scales the hillshade contrast; zero means the default.
	ShadeStrength float64
}

const defaultShadeStrength = 14.0

// TileRenderer renders one planet elevation tile at a time: every pixel of
// the tile is mapped to a sphere direction, sampled through the generator,
// colored by the ramp and optionally hillshaded.
type TileRenderer struct {
	gen       planet.Generator
	ramp      Ramp
	writer    TileWriter
	logger    *slog.Logger
	outputDir string
	encoder   png.Encoder
	tileSize  int
	shaded    bool
	shadeStr  float64
}

// NewTileRenderer prepares a renderer for a fixed tile size.
// seaElevation anchors the color ramp (sea level in output units).
func NewTileRenderer(gen planet.Generator, seaElevation float64, outputDir string, tileSize int, logger *slog.Logger, opts TileRendererOptions) (*TileRenderer, error) {
	// Hillshade gradients need at least two pixels per axis.
	if tileSize < 2 {
		return nil, fmt.Errorf("tile size must be at least 2, got %d", tileSize)
	}

	level, err := pngCompressionLevel(opts.PNGCompression)
	if err != nil {
		return nil, err
	}

	strength := opts.ShadeStrength
	if strength <= 0 {
		strength = defaultShadeStrength
	}

	return &TileRenderer{
		gen:       gen,
		ramp:      NewRamp(seaElevation),
		writer:    opts.TileWriter,
		logger:    logger,
		outputDir: outputDir,
		encoder:   png.Encoder{CompressionLevel: level},
		tileSize:  tileSize,
		shaded:    opts.Shaded,
		shadeStr:  strength,
	}, nil
}

func pngCompressionLevel(name string) (png.CompressionLevel, error) {
	switch name {
	case "", "default":
		return png.DefaultCompression, nil
	case "speed":
		return png.BestSpeed, nil
	case "best":
		return png.BestCompression, nil
	case "none":
		return png.NoCompression, nil
	default:
		return 0, fmt.Errorf("invalid png compression %q: must be default, speed, best or none", name)
	}
}

// Render samples and writes one tile. With a TileWriter configured the PNG
// goes there; otherwise it lands in the output directory, skipping tiles
// that already exist unless force is set. Returns the written path (empty
// when a TileWriter consumed the tile).
func (r *TileRenderer) Render(ctx context.Context, coords tile.Coords, force bool) (string, error) {
	var finalPath string
	if r.writer == nil {
		finalPath = filepath.Join(r.outputDir, coords.Path("png"))
		if !force {
			if _, err := os.Stat(finalPath); err == nil {
				r.log().Debug("Tile already exists; skipping", "coords", coords.String(), "path", finalPath)
				return finalPath, nil
			}
		}
		if err := os.MkdirAll(r.outputDir, 0o755); err != nil {
			return "", fmt.Errorf("failed to create output dir: %w", err)
		}
	}

	if err := ctx.Err(); err != nil {
		return "", err
	}

	img := r.RenderImage(coords)

	var buf bytes.Buffer
	if err := r.encoder.Encode(&buf, img); err != nil {
		return "", fmt.Errorf("failed to encode tile %s: %w", coords.String(), err)
	}

	if r.writer != nil {
		if err := r.writer.WriteTile(int(coords.Z), int(coords.X), int(coords.Y), buf.Bytes()); err != nil {
			return "", fmt.Errorf("failed to write tile %s: %w", coords.String(), err)
		}
		return "", nil
	}

	if err := os.WriteFile(finalPath, buf.Bytes(), 0o644); err != nil {
		return "", fmt.Errorf("failed to write tile %s: %w", coords.String(), err)
	}
	return finalPath, nil
}

// RenderImage rasterizes one tile into an RGBA image.
func (r *TileRenderer) RenderImage(coords tile.Coords) *image.RGBA {
	size := r.tileSize
	elev := make([]float64, size*size)
	for y := 0; y < size; y++ {
		for x := 0; x < size; x++ {
			elev[y*size+x] = r.gen.SampleHeight(coords.DirectionAt(x, y, size))
		}
	}

	img := image.NewRGBA(image.Rect(0, 0, size, size))
	for y := 0; y < size; y++ {
		for x := 0; x < size; x++ {
			e := elev[y*size+x]
			c := r.ramp.At(e)
			if r.shaded {
				dzdx, dzdy := gradient(elev, size, size, x, y)
				c = applyShade(c, shadeFactor(dzdx, dzdy, r.shadeStr))
			}
			img.SetRGBA(x, y, c)
		}
	}
	return img
}

// gradient returns central-difference slopes at (x, y) in a w×h grid,
// clamping at the border.
func gradient(elev []float64, w, h, x, y int) (dzdx, dzdy float64) {
	x0, x1 := maxInt(x-1, 0), minInt(x+1, w-1)
	y0, y1 := maxInt(y-1, 0), minInt(y+1, h-1)
	dzdx = (elev[y*w+x1] - elev[y*w+x0]) / float64(x1-x0)
	dzdy = (elev[y1*w+x] - elev[y0*w+x]) / float64(y1-y0)
	return dzdx, dzdy
}

func (r *TileRenderer) log() *slog.Logger {
	if r.logger != nil {
		return r.logger
	}
	return slog.Default()
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}

func minInt(a, b int) int {
	if a < b {
		return a
	}
	return b
}

// Package server serves a generated planet tileset over HTTP so it can be
// browsed with any slippy-map viewer.
package server

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"
	"strings"

	"github.com/AntonZelenin/planetgen/internal/mbtiles"
	"github.com/AntonZelenin/planetgen/internal/tile"
)

// TilesetHandler serves planet tiles from an MBTiles database at
// /tiles/{z}/{x}/{y}.png and the tileset metadata at /metadata.json.
type TilesetHandler struct {
	reader       *mbtiles.Reader
	logger       *slog.Logger
	cacheControl string
}

// TilesetConfig configures the tileset handler.
type TilesetConfig struct {
	MBTilesPath  string
	CacheControl string
}

// NewTilesetHandler opens the tileset and prepares a handler.
func NewTilesetHandler(cfg TilesetConfig, logger *slog.Logger) (*TilesetHandler, error) {
	reader, err := mbtiles.OpenReader(cfg.MBTilesPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open tileset: %w", err)
	}

	return &TilesetHandler{
		reader:       reader,
		logger:       logger,
		cacheControl: cfg.CacheControl,
	}, nil
}

// Register mounts the handler's routes on mux.
func (h *TilesetHandler) Register(mux *http.ServeMux) {
	mux.HandleFunc("/tiles/", h.serveTile)
	mux.HandleFunc("/metadata.json", h.serveMetadata)
}

func (h *TilesetHandler) serveTile(w http.ResponseWriter, r *http.Request) {
	coords, ok := parseTilePath(r.URL.Path)
	if !ok {
		http.NotFound(w, r)
		return
	}

	data, err := h.reader.ReadTile(int(coords.Z), int(coords.X), int(coords.Y))
	if err != nil {
		h.log().Debug("Tile not found", "coords", coords.String(), "error", err)
		http.Error(w, "Tile not found", http.StatusNotFound)
		return
	}

	w.Header().Set("Cache-Control", h.cacheControl)
	w.Header().Set("Content-Type", "image/png")
	if _, err := w.Write(data); err != nil {
		h.log().Error("Failed to write response", "error", err)
	}
}

func (h *TilesetHandler) serveMetadata(w http.ResponseWriter, r *http.Request) {
	meta, err := h.reader.Metadata()
	if err != nil {
		h.log().Error("Failed to read metadata", "error", err)
		http.Error(w, "Failed to read metadata", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(map[string]any{
		"name":      meta.Name,
		"format":    meta.Format,
		"minzoom":   meta.MinZoom,
		"maxzoom":   meta.MaxZoom,
		"seed":      meta.Seed,
		"mode":      meta.Mode,
		"sea_level": meta.SeaLevel,
	}); err != nil {
		h.log().Error("Failed to encode metadata", "error", err)
	}
}

// Close closes the underlying tileset reader.
func (h *TilesetHandler) Close() error {
	return h.reader.Close()
}

func (h *TilesetHandler) log() *slog.Logger {
	if h.logger != nil {
		return h.logger
	}
	return slog.Default()
}

// parseTilePath parses /tiles/{z}/{x}/{y}.png into tile coordinates.
func parseTilePath(requestPath string) (tile.Coords, bool) {
	rest, ok := strings.CutPrefix(requestPath, "/tiles/")
	if !ok {
		return tile.Coords{}, false
	}
	rest, ok = strings.CutSuffix(rest, ".png")
	if !ok {
		return tile.Coords{}, false
	}

	parts := strings.Split(rest, "/")
	if len(parts) != 3 {
		return tile.Coords{}, false
	}

	vals := make([]uint32, 3)
	for i, p := range parts {
		v, err := strconv.ParseUint(p, 10, 32)
		if err != nil {
			return tile.Coords{}, false
		}
		vals[i] = uint32(v)
	}

	c := tile.NewCoords(vals[0], vals[1], vals[2])
	if c.X >= 1<<c.Z || c.Y >= 1<<c.Z {
		return tile.Coords{}, false
	}
	return c, true
}

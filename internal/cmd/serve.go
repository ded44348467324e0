package cmd

import (
	"fmt"
	"net/http"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/AntonZelenin/planetgen/internal/server"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve a generated planet tileset over HTTP",
	Long: `Serve exposes a planet MBTiles tileset at /tiles/{z}/{x}/{y}.png and its
metadata at /metadata.json, so the planet can be browsed with any
slippy-map viewer.`,
	RunE: runServe,
}

func init() {
	rootCmd.AddCommand(serveCmd)

	serveCmd.Flags().String("addr", "127.0.0.1:8080", "Listen address (host:port)")
	serveCmd.Flags().String("tileset", "", "Path to the planet .mbtiles file (required)")
	serveCmd.Flags().String("cache-control", "public, max-age=3600", "Cache-Control header for served tiles")

	mustBind := func(key, name string) {
		if err := viper.BindPFlag(key, serveCmd.Flags().Lookup(name)); err != nil {
			panic(fmt.Sprintf("failed to bind flag: %v", err))
		}
	}
	mustBind("serve.addr", "addr")
	mustBind("serve.tileset", "tileset")
	mustBind("serve.cache_control", "cache-control")
}

func runServe(cmd *cobra.Command, args []string) error {
	if logger == nil {
		initLogging()
	}

	addr := viper.GetString("serve.addr")
	tileset := viper.GetString("serve.tileset")
	cacheControl := viper.GetString("serve.cache_control")

	if tileset == "" {
		return fmt.Errorf("--tileset is required")
	}

	handler, err := server.NewTilesetHandler(server.TilesetConfig{
		MBTilesPath:  tileset,
		CacheControl: cacheControl,
	}, logger)
	if err != nil {
		return fmt.Errorf("failed to open tileset: %w", err)
	}
	defer handler.Close()

	mux := http.NewServeMux()
	handler.Register(mux)

	logger.Info("Serving planet tileset", "addr", addr, "tileset", tileset)
	if err := http.ListenAndServe(addr, mux); err != nil {
		return fmt.Errorf("server failed: %w", err)
	}
	return nil
}

// Package mbtiles reads and writes planet elevation tilesets in the MBTiles
// format (a sqlite database of gzip-compressed PNG tiles), so generated
// planets can be browsed with any standard tile viewer.
package mbtiles

import "fmt"

// Metadata describes a planet tileset. On top of the standard MBTiles
// fields it records the generation parameters needed to reproduce the
// planet: seed, pipeline mode and sea level.
type Metadata struct {
	Name        string // Human-readable tileset identifier
	Format      string // Tile data type (png)
	Description string // Human-readable description
	Type        string // "baselayer" or "overlay"
	Version     string // Version string
	Bounds      [4]float64
	Center      [3]float64
	MinZoom     int
	MaxZoom     int

	// Generation provenance.
	Seed     int64   // Base seed of the generation pass
	Mode     string  // "advanced" or "simple"
	SeaLevel float64 // Sea level the tileset was generated with
}

// ToMap converts Metadata to key/value rows for the metadata table.
// Provenance fields use a "planetgen:" prefix to stay clear of the
// standard MBTiles keys.
func (m Metadata) ToMap() map[string]string {
	result := make(map[string]string)

	if m.Name != "" {
		result["name"] = m.Name
	}
	if m.Format != "" {
		result["format"] = m.Format
	}
	// Zoom 0 is a valid (and common) minimum for whole-planet tilesets, so
	// both zoom keys are always written.
	result["minzoom"] = fmt.Sprintf("%d", m.MinZoom)
	result["maxzoom"] = fmt.Sprintf("%d", m.MaxZoom)
	if m.Bounds != [4]float64{} {
		result["bounds"] = fmt.Sprintf("%.6f,%.6f,%.6f,%.6f",
			m.Bounds[0], m.Bounds[1], m.Bounds[2], m.Bounds[3])
	}
	if m.Center != [3]float64{} {
		result["center"] = fmt.Sprintf("%.6f,%.6f,%d",
			m.Center[0], m.Center[1], int(m.Center[2]))
	}
	if m.Description != "" {
		result["description"] = m.Description
	}
	if m.Type != "" {
		result["type"] = m.Type
	}
	if m.Version != "" {
		result["version"] = m.Version
	}
	if m.Mode != "" {
		result["planetgen:mode"] = m.Mode
	}
	result["planetgen:seed"] = fmt.Sprintf("%d", m.Seed)
	result["planetgen:sea_level"] = fmt.Sprintf("%g", m.SeaLevel)

	return result
}

// Package tile addresses planet elevation tiles in the standard z/x/y web
// map tiling scheme and maps tile pixels onto unit-sphere directions, so
// any slippy-map viewer can browse a generated planet.
package tile

import (
	"fmt"
	"math"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/maptile"

	"github.com/AntonZelenin/planetgen/internal/vec"
)

// Coords represents a tile coordinate in the z/x/y tile system.
type Coords struct {
	Z uint32 // Zoom level
	X uint32 // Column
	Y uint32 // Row
}

// NewCoords creates a new Coords from zoom, x, y values.
func NewCoords(z, x, y uint32) Coords {
	return Coords{Z: z, X: x, Y: y}
}

// String returns the tile coordinate as "z{zoom}_x{x}_y{y}".
func (c Coords) String() string {
	return fmt.Sprintf("z%d_x%d_y%d", c.Z, c.X, c.Y)
}

// Path returns the flat file name for this tile.
func (c Coords) Path(extension string) string {
	return fmt.Sprintf("%s.%s", c.String(), extension)
}

// ParseCoords parses a tile string like "z3_x4_y2" into Coords.
func ParseCoords(s string) (Coords, error) {
	var c Coords
	_, err := fmt.Sscanf(s, "z%d_x%d_y%d", &c.Z, &c.X, &c.Y)
	if err != nil {
		return c, fmt.Errorf("invalid tile coordinate format: %s", s)
	}
	return c, nil
}

// Tile returns the maptile.Tile for this coordinate.
func (c Coords) Tile() maptile.Tile {
	return maptile.New(c.X, c.Y, maptile.Zoom(c.Z))
}

// Bounds returns the tile's geographic bounding box as
// [minLon, minLat, maxLon, maxLat].
func (c Coords) Bounds() [4]float64 {
	bound := c.Tile().Bound()
	return [4]float64{
		bound.Min.Lon(),
		bound.Min.Lat(),
		bound.Max.Lon(),
		bound.Max.Lat(),
	}
}

// Center returns the center point of the tile as (lon, lat).
func (c Coords) Center() (float64, float64) {
	bounds := c.Bounds()
	return (bounds[0] + bounds[2]) / 2.0, (bounds[1] + bounds[3]) / 2.0
}

// LonLatAt returns the geographic coordinate of pixel (px, py) in a
// size×size raster of this tile. Latitude follows the web-mercator pixel
// grid, so rendered tiles line up with standard basemaps.
func (c Coords) LonLatAt(px, py, size int) (float64, float64) {
	n := float64(uint64(1) << c.Z)
	xf := (float64(c.X) + (float64(px)+0.5)/float64(size)) / n
	yf := (float64(c.Y) + (float64(py)+0.5)/float64(size)) / n

	lon := xf*360 - 180
	lat := math.Atan(math.Sinh(math.Pi*(1-2*yf))) * 180 / math.Pi
	return lon, lat
}

// DirectionAt returns the unit-sphere direction through pixel (px, py) of a
// size×size raster of this tile.
func (c Coords) DirectionAt(px, py, size int) vec.Vec3 {
	lon, lat := c.LonLatAt(px, py, size)
	return Direction(lon, lat)
}

// Direction converts geographic (lon, lat) in degrees to a unit direction.
func Direction(lon, lat float64) vec.Vec3 {
	latRad := lat * math.Pi / 180
	lonRad := lon * math.Pi / 180
	cosLat := math.Cos(latRad)
	return vec.New(cosLat*math.Cos(lonRad), math.Sin(latRad), cosLat*math.Sin(lonRad))
}

// TilesForZoomRange returns every tile on the planet for each zoom level in
// [zoomMin, zoomMax].
func TilesForZoomRange(zoomMin, zoomMax int) []Coords {
	var count int
	for z := zoomMin; z <= zoomMax; z++ {
		n := 1 << z
		count += n * n
	}
	tiles := make([]Coords, 0, count)
	for z := zoomMin; z <= zoomMax; z++ {
		n := uint32(1) << z
		for x := uint32(0); x < n; x++ {
			for y := uint32(0); y < n; y++ {
				tiles = append(tiles, NewCoords(uint32(z), x, y))
			}
		}
	}
	return tiles
}

// TilesInBBox returns all tile coordinates within a geographic bounding box
// across a zoom range, computed independently per zoom level.
// bbox: [minLon, minLat, maxLon, maxLat].
func TilesInBBox(bbox [4]float64, zoomMin, zoomMax int) []Coords {
	tiles := make([]Coords, 0, TileCount(bbox, zoomMin, zoomMax))

	minPoint := orb.Point{bbox[0], bbox[1]}
	maxPoint := orb.Point{bbox[2], bbox[3]}

	for z := zoomMin; z <= zoomMax; z++ {
		minX, maxX, minY, maxY := bboxTileSpan(minPoint, maxPoint, maptile.Zoom(z))
		for x := minX; x <= maxX; x++ {
			for y := minY; y <= maxY; y++ {
				tiles = append(tiles, NewCoords(uint32(z), x, y))
			}
		}
	}
	return tiles
}

// TileCount returns the number of tiles TilesInBBox would produce, for
// progress estimation without allocating the list.
func TileCount(bbox [4]float64, zoomMin, zoomMax int) int {
	minPoint := orb.Point{bbox[0], bbox[1]}
	maxPoint := orb.Point{bbox[2], bbox[3]}

	count := 0
	for z := zoomMin; z <= zoomMax; z++ {
		minX, maxX, minY, maxY := bboxTileSpan(minPoint, maxPoint, maptile.Zoom(z))
		count += int(maxX-minX+1) * int(maxY-minY+1)
	}
	return count
}

// bboxTileSpan returns the inclusive tile index span covering both corner
// points at one zoom level. Y is inverted relative to latitude, hence the
// reordering.
func bboxTileSpan(minPoint, maxPoint orb.Point, zoom maptile.Zoom) (minX, maxX, minY, maxY uint32) {
	minTile := maptile.At(minPoint, zoom)
	maxTile := maptile.At(maxPoint, zoom)

	minX, maxX = minTile.X, maxTile.X
	if minX > maxX {
		minX, maxX = maxX, minX
	}
	minY, maxY = minTile.Y, maxTile.Y
	if minY > maxY {
		minY, maxY = maxY, minY
	}
	return minX, maxX, minY, maxY
}

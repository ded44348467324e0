package tile

import (
	"math"
	"testing"
)

func TestCoordsString(t *testing.T) {
	tests := []struct {
		coords   Coords
		expected string
	}{
		{Coords{Z: 3, X: 4, Y: 2}, "z3_x4_y2"},
		{Coords{Z: 0, X: 0, Y: 0}, "z0_x0_y0"},
		{Coords{Z: 8, X: 200, Y: 130}, "z8_x200_y130"},
	}

	for _, tt := range tests {
		t.Run(tt.expected, func(t *testing.T) {
			result := tt.coords.String()
			if result != tt.expected {
				t.Errorf("String() = %s, want %s", result, tt.expected)
			}
		})
	}
}

func TestCoordsPath(t *testing.T) {
	coords := Coords{Z: 3, X: 4, Y: 2}

	tests := []struct {
		ext      string
		expected string
	}{
		{"png", "z3_x4_y2.png"},
		{"json", "z3_x4_y2.json"},
	}

	for _, tt := range tests {
		t.Run(tt.ext, func(t *testing.T) {
			result := coords.Path(tt.ext)
			if result != tt.expected {
				t.Errorf("Path(%s) = %s, want %s", tt.ext, result, tt.expected)
			}
		})
	}
}

func TestParseCoords(t *testing.T) {
	tests := []struct {
		input    string
		expected Coords
		wantErr  bool
	}{
		{"z3_x4_y2", Coords{Z: 3, X: 4, Y: 2}, false},
		{"z0_x0_y0", Coords{Z: 0, X: 0, Y: 0}, false},
		{"z18_x262143_y262143", Coords{Z: 18, X: 262143, Y: 262143}, false},
		{"invalid", Coords{}, true},
		{"z3_x4", Coords{}, true},
		{"3_4_2", Coords{}, true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			result, err := ParseCoords(tt.input)
			if tt.wantErr {
				if err == nil {
					t.Errorf("ParseCoords(%s) expected error, got nil", tt.input)
				}
				return
			}
			if err != nil {
				t.Errorf("ParseCoords(%s) unexpected error: %v", tt.input, err)
				return
			}
			if result != tt.expected {
				t.Errorf("ParseCoords(%s) = %+v, want %+v", tt.input, result, tt.expected)
			}
		})
	}
}

func TestCoordsBounds(t *testing.T) {
	// The single z0 tile covers the whole web-mercator extent.
	bounds := Coords{Z: 0, X: 0, Y: 0}.Bounds()

	if math.Abs(bounds[0]-(-180)) > 1e-6 || math.Abs(bounds[2]-180) > 1e-6 {
		t.Errorf("z0 longitude span = [%.6f, %.6f], want [-180, 180]", bounds[0], bounds[2])
	}
	if math.Abs(bounds[1]-(-85.0511)) > 0.001 || math.Abs(bounds[3]-85.0511) > 0.001 {
		t.Errorf("z0 latitude span = [%.6f, %.6f], want [-85.0511, 85.0511]", bounds[1], bounds[3])
	}

	// Quadrant ordering at z1.
	coords := Coords{Z: 1, X: 1, Y: 0}
	b := coords.Bounds()
	if b[0] < 0 {
		t.Errorf("z1_x1 should be the eastern hemisphere, minLon = %.6f", b[0])
	}
	if b[1] < 0 {
		t.Errorf("z1_y0 should be the northern hemisphere, minLat = %.6f", b[1])
	}
	if b[0] >= b[2] || b[1] >= b[3] {
		t.Errorf("bounds not ordered: %+v", b)
	}
}

func TestCoordsCenter(t *testing.T) {
	coords := Coords{Z: 2, X: 1, Y: 2}
	lon, lat := coords.Center()

	bounds := coords.Bounds()
	if lon < bounds[0] || lon > bounds[2] {
		t.Errorf("center lon %.6f outside bounds [%.6f, %.6f]", lon, bounds[0], bounds[2])
	}
	if lat < bounds[1] || lat > bounds[3] {
		t.Errorf("center lat %.6f outside bounds [%.6f, %.6f]", lat, bounds[1], bounds[3])
	}
}

func TestLonLatAt(t *testing.T) {
	// Pixel centers of the z0 tile stay inside the mercator extent and
	// increase monotonically in longitude.
	c := Coords{Z: 0, X: 0, Y: 0}
	size := 8

	prevLon := -181.0
	for px := 0; px < size; px++ {
		lon, lat := c.LonLatAt(px, size/2, size)
		if lon <= prevLon {
			t.Errorf("longitude not increasing at px=%d: %.6f <= %.6f", px, lon, prevLon)
		}
		prevLon = lon
		if lon < -180 || lon > 180 {
			t.Errorf("lon %.6f out of range at px=%d", lon, px)
		}
		if lat < -85.06 || lat > 85.06 {
			t.Errorf("lat %.6f out of mercator range at px=%d", lat, px)
		}
	}

	// Top row is north, bottom row is south.
	_, latTop := c.LonLatAt(0, 0, size)
	_, latBottom := c.LonLatAt(0, size-1, size)
	if latTop <= latBottom {
		t.Errorf("expected top row north of bottom row: %.4f <= %.4f", latTop, latBottom)
	}
}

func TestDirection(t *testing.T) {
	tests := []struct {
		name     string
		lon, lat float64
		x, y, z  float64
	}{
		{"equator prime meridian", 0, 0, 1, 0, 0},
		{"north pole", 0, 90, 0, 1, 0},
		{"south pole", 0, -90, 0, -1, 0},
		{"equator 90E", 90, 0, 0, 0, 1},
		{"equator 180", 180, 0, -1, 0, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := Direction(tt.lon, tt.lat)
			if math.Abs(d.X-tt.x) > 1e-12 || math.Abs(d.Y-tt.y) > 1e-12 || math.Abs(d.Z-tt.z) > 1e-12 {
				t.Errorf("Direction(%.0f, %.0f) = %+v, want (%.0f, %.0f, %.0f)",
					tt.lon, tt.lat, d, tt.x, tt.y, tt.z)
			}
		})
	}
}

func TestDirectionAtUnitLength(t *testing.T) {
	c := Coords{Z: 2, X: 3, Y: 1}
	size := 16
	for py := 0; py < size; py += 5 {
		for px := 0; px < size; px += 5 {
			d := c.DirectionAt(px, py, size)
			if math.Abs(d.Length()-1) > 1e-12 {
				t.Errorf("direction at (%d, %d) has length %.15f, want 1", px, py, d.Length())
			}
		}
	}
}

func TestTilesForZoomRange(t *testing.T) {
	tests := []struct {
		zoomMin, zoomMax int
		expected         int
	}{
		{0, 0, 1},
		{0, 1, 5},
		{0, 2, 21},
		{2, 2, 16},
	}

	for _, tt := range tests {
		tiles := TilesForZoomRange(tt.zoomMin, tt.zoomMax)
		if len(tiles) != tt.expected {
			t.Errorf("TilesForZoomRange(%d, %d) = %d tiles, want %d",
				tt.zoomMin, tt.zoomMax, len(tiles), tt.expected)
		}
	}

	// No duplicates within a zoom range.
	seen := make(map[Coords]bool)
	for _, c := range TilesForZoomRange(0, 3) {
		if seen[c] {
			t.Errorf("duplicate tile %s", c.String())
		}
		seen[c] = true
	}
}

func TestTilesInBBox(t *testing.T) {
	// Whole planet at z1 must give all 4 tiles.
	bbox := [4]float64{-179.9, -85.0, 179.9, 85.0}
	tiles := TilesInBBox(bbox, 1, 1)
	if len(tiles) != 4 {
		t.Errorf("whole-planet bbox at z1 = %d tiles, want 4", len(tiles))
	}

	// A small box maps to a single tile at a low zoom.
	small := [4]float64{9.0, 52.0, 9.5, 52.3}
	tiles = TilesInBBox(small, 3, 3)
	if len(tiles) != 1 {
		t.Errorf("small bbox at z3 = %d tiles, want 1", len(tiles))
	}

	// Every returned tile intersects the box.
	for _, c := range tiles {
		b := c.Bounds()
		if b[2] < small[0] || b[0] > small[2] || b[3] < small[1] || b[1] > small[3] {
			t.Errorf("tile %s does not intersect bbox", c.String())
		}
	}
}

func TestTileCount(t *testing.T) {
	bbox := [4]float64{-179.9, -85.0, 179.9, 85.0}
	for zMin := 0; zMin <= 2; zMin++ {
		for zMax := zMin; zMax <= 3; zMax++ {
			want := len(TilesInBBox(bbox, zMin, zMax))
			got := TileCount(bbox, zMin, zMax)
			if got != want {
				t.Errorf("TileCount(z%d-%d) = %d, want %d", zMin, zMax, got, want)
			}
		}
	}
}

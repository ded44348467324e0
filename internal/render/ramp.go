// Package render rasterizes planet elevations: hypsometric coloring with
// optional hillshading, web-map tiles, and whole-planet equirectangular
// previews.
package render

import (
	"image/color"

	"github.com/AntonZelenin/planetgen/internal/shaping"
)

// rampStop pins a color to an elevation.
type rampStop struct {
	elev float64
	c    color.RGBA
}

// Ramp maps elevation to a hypsometric color, linearly interpolated
// between stops.
type Ramp struct {
	stops []rampStop
}

// NewRamp builds the default elevation ramp anchored at seaElevation (the
// configured sea level expressed in output elevation units).
func NewRamp(seaElevation float64) Ramp {
	s := seaElevation
	return Ramp{stops: []rampStop{
		{-2.0, color.RGBA{8, 14, 38, 255}},        // abyss
		{s - 0.35, color.RGBA{14, 34, 74, 255}},   // deep ocean
		{s - 0.12, color.RGBA{26, 66, 120, 255}},  // ocean
		{s - 0.02, color.RGBA{64, 118, 170, 255}}, // shelf
		{s, color.RGBA{112, 158, 192, 255}},       // shoreline
		{s + 0.01, color.RGBA{112, 148, 92, 255}}, // coastal plain
		{s + 0.12, color.RGBA{146, 156, 96, 255}}, // lowland
		{s + 0.25, color.RGBA{168, 140, 92, 255}}, // highland
		{s + 0.45, color.RGBA{140, 114, 96, 255}}, // mountain
		{s + 0.65, color.RGBA{182, 176, 170, 255}},
		{2.0, color.RGBA{240, 244, 248, 255}}, // snow
	}}
}

// At returns the color for an elevation.
func (r Ramp) At(elev float64) color.RGBA {
	stops := r.stops
	if elev <= stops[0].elev {
		return stops[0].c
	}
	if elev >= stops[len(stops)-1].elev {
		return stops[len(stops)-1].c
	}
	for i := 0; i < len(stops)-1; i++ {
		lo, hi := stops[i], stops[i+1]
		if elev >= lo.elev && elev <= hi.elev {
			t := (elev - lo.elev) / (hi.elev - lo.elev)
			return lerpColor(lo.c, hi.c, t)
		}
	}
	return stops[len(stops)-1].c
}

func lerpColor(a, b color.RGBA, t float64) color.RGBA {
	return color.RGBA{
		R: uint8(shaping.Lerp(float64(a.R), float64(b.R), t)),
		G: uint8(shaping.Lerp(float64(a.G), float64(b.G), t)),
		B: uint8(shaping.Lerp(float64(a.B), float64(b.B), t)),
		A: 255,
	}
}

// shadeFactor computes a lambertian-ish brightness multiplier from the
// elevation gradient at a grid cell, with light from the northwest.
// dzdx/dzdy are central differences in elevation per cell.
func shadeFactor(dzdx, dzdy, strength float64) float64 {
	// Project the fixed light direction onto the gradient; steeper slopes
	// facing away from the light darken, slopes facing it brighten.
	lit := (-dzdx - dzdy) * strength
	return shaping.Clamp(1+lit, 0.55, 1.35)
}

func applyShade(c color.RGBA, f float64) color.RGBA {
	scale := func(v uint8) uint8 {
		s := float64(v) * f
		if s > 255 {
			s = 255
		}
		return uint8(s)
	}
	return color.RGBA{R: scale(c.R), G: scale(c.G), B: scale(c.B), A: 255}
}

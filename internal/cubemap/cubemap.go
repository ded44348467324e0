// Package cubemap stores planet elevation as six cube-face heightmaps and
// maps face texels onto unit-sphere directions for sampling.
package cubemap

import (
	"fmt"

	"github.com/dgravesa/go-parallel/parallel"

	"github.com/AntonZelenin/planetgen/internal/planet"
	"github.com/AntonZelenin/planetgen/internal/vec"
)

// Face identifies one of the six cube faces.
type Face int

const (
	PosX Face = iota
	NegX
	PosY
	NegY
	PosZ
	NegZ
)

var faceNames = [6]string{"+x", "-x", "+y", "-y", "+z", "-z"}

func (f Face) String() string {
	if f < PosX || f > NegZ {
		return fmt.Sprintf("face(%d)", int(f))
	}
	return faceNames[f]
}

// Direction maps cube-face coordinates (u, v in [-1, 1]) to the unit-sphere
// direction through that texel.
func Direction(f Face, u, v float64) vec.Vec3 {
	var d vec.Vec3
	switch f {
	case PosX:
		d = vec.New(1, v, -u)
	case NegX:
		d = vec.New(-1, v, u)
	case PosY:
		d = vec.New(u, 1, -v)
	case NegY:
		d = vec.New(u, -1, v)
	case PosZ:
		d = vec.New(u, v, 1)
	default:
		d = vec.New(-u, v, -1)
	}
	return d.Normalize()
}

// Heightmap is one face's elevation grid, row-major.
type Heightmap struct {
	Face Face
	Size int
	Data []float64
}

// At returns the elevation at texel (x, y).
func (h Heightmap) At(x, y int) float64 {
	return h.Data[y*h.Size+x]
}

// DirectionAt returns the sphere direction through the center of texel
// (x, y).
func (h Heightmap) DirectionAt(x, y int) vec.Vec3 {
	u := 2*(float64(x)+0.5)/float64(h.Size) - 1
	v := 2*(float64(y)+0.5)/float64(h.Size) - 1
	return Direction(h.Face, u, v)
}

// Planet is a full cube-sphere elevation set.
type Planet struct {
	Faces    [6]Heightmap
	GridSize int
	Radius   float64
}

// GridSizeFor derives the per-face grid size from a planet radius and cell
// density, minimum 2.
func GridSizeFor(radius, cellsPerUnit float64) int {
	n := int(radius*cellsPerUnit) + 1
	if n < 2 {
		n = 2
	}
	return n
}

// Build samples every texel of all six faces through gen. Samples share no
// state, so rows are dispatched across all CPUs.
func Build(gen planet.Generator, gridSize int, radius float64) (Planet, error) {
	if gridSize < 2 {
		return Planet{}, fmt.Errorf("grid size must be at least 2, got %d", gridSize)
	}
	if radius <= 0 {
		return Planet{}, fmt.Errorf("radius must be positive, got %g", radius)
	}

	p := Planet{GridSize: gridSize, Radius: radius}
	for f := PosX; f <= NegZ; f++ {
		h := Heightmap{
			Face: f,
			Size: gridSize,
			Data: make([]float64, gridSize*gridSize),
		}
		parallel.For(gridSize, func(y, _ int) {
			for x := 0; x < gridSize; x++ {
				h.Data[y*gridSize+x] = gen.SampleHeight(h.DirectionAt(x, y))
			}
		})
		p.Faces[f] = h
	}
	return p, nil
}

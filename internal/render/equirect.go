package render

import (
	"fmt"
	"image"
	"math"

	"github.com/disintegration/gift"
	xdraw "golang.org/x/image/draw"

	"github.com/AntonZelenin/planetgen/internal/planet"
	"github.com/AntonZelenin/planetgen/internal/tile"
)

// EquirectOptions configures a whole-planet preview render.
type EquirectOptions struct {
	// Shaded enables hillshading.
	Shaded bool
	// Smooth runs a light blur + contrast pass over the finished image.
	Smooth bool
	// ShadeStrength scales the hillshade contrast; zero means the default.
	ShadeStrength float64
}

// RenderEquirect renders the whole planet into a width×(width/2)
// equirectangular image: x spans longitude -180..180, y latitude 90..-90.
func RenderEquirect(gen planet.Generator, seaElevation float64, width int, opts EquirectOptions) (*image.RGBA, error) {
	if width < 2 {
		return nil, fmt.Errorf("width must be at least 2, got %d", width)
	}
	height := width / 2
	ramp := NewRamp(seaElevation)

	elev := make([]float64, width*height)
	for y := 0; y < height; y++ {
		lat := 90 - (float64(y)+0.5)/float64(height)*180
		for x := 0; x < width; x++ {
			lon := (float64(x)+0.5)/float64(width)*360 - 180
			elev[y*width+x] = gen.SampleHeight(tile.Direction(lon, lat))
		}
	}

	strength := opts.ShadeStrength
	if strength <= 0 {
		strength = defaultShadeStrength
	}

	img := image.NewRGBA(image.Rect(0, 0, width, height))
	for y := 0; y < height; y++ {
		// Longitude cells shrink toward the poles; widen the horizontal
		// gradient accordingly so shading stays isotropic.
		latScale := math.Cos((90 - (float64(y)+0.5)/float64(height)*180) * math.Pi / 180)
		if latScale < 0.05 {
			latScale = 0.05
		}
		for x := 0; x < width; x++ {
			c := ramp.At(elev[y*width+x])
			if opts.Shaded {
				dzdx, dzdy := gradient(elev, width, height, x, y)
				c = applyShade(c, shadeFactor(dzdx/latScale, dzdy, strength))
			}
			img.SetRGBA(x, y, c)
		}
	}

	if opts.Smooth {
		img = smooth(img)
	}
	return img, nil
}

// smooth applies the preview post-filter: a light gaussian to knock down
// per-pixel noise, then a gentle sigmoid to restore contrast.
func smooth(img *image.RGBA) *image.RGBA {
	g := gift.New(
		gift.GaussianBlur(0.8),
		gift.Sigmoid(0.5, 3.0),
	)
	out := image.NewRGBA(g.Bounds(img.Bounds()))
	g.Draw(out, img)
	return out
}

// Upscale resizes an image by an integer factor with Catmull-Rom
// resampling, used for @2x previews.
func Upscale(img image.Image, factor int) (*image.RGBA, error) {
	if factor < 1 {
		return nil, fmt.Errorf("scale factor must be at least 1, got %d", factor)
	}
	b := img.Bounds()
	out := image.NewRGBA(image.Rect(0, 0, b.Dx()*factor, b.Dy()*factor))
	xdraw.CatmullRom.Scale(out, out.Bounds(), img, b, xdraw.Src, nil)
	return out, nil
}

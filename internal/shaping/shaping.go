// Package shaping holds the pure scalar operators that reshape raw noise
// into terrain: control-point curves, terracing and smooth selection.
package shaping

import "fmt"

// ControlPoint maps an input value to an output value on a Curve.
type ControlPoint struct {
	In  float64
	Out float64
}

// Curve piecewise-linearly remaps a scalar through ordered control points.
// Inputs outside the covered range clamp to the first/last output.
type Curve struct {
	points []ControlPoint
}

// NewCurve validates and builds a curve. At least two control points are
// required and inputs must be strictly increasing.
func NewCurve(points []ControlPoint) (Curve, error) {
	if len(points) < 2 {
		return Curve{}, fmt.Errorf("curve requires at least 2 control points, got %d", len(points))
	}
	for i := 1; i < len(points); i++ {
		if points[i].In <= points[i-1].In {
			return Curve{}, fmt.Errorf("curve control point inputs must be strictly increasing: point %d (%.6f) <= point %d (%.6f)",
				i, points[i].In, i-1, points[i-1].In)
		}
	}
	pts := make([]ControlPoint, len(points))
	copy(pts, points)
	return Curve{points: pts}, nil
}

// Apply remaps x through the curve.
func (c Curve) Apply(x float64) float64 {
	pts := c.points
	if x <= pts[0].In {
		return pts[0].Out
	}
	if x >= pts[len(pts)-1].In {
		return pts[len(pts)-1].Out
	}
	for i := 0; i < len(pts)-1; i++ {
		p0, p1 := pts[i], pts[i+1]
		if x >= p0.In && x <= p1.In {
			t := (x - p0.In) / (p1.In - p0.In)
			return Lerp(p0.Out, p1.Out, t)
		}
	}
	return pts[len(pts)-1].Out
}

// Terrace snaps a scalar toward stair-stepped levels, easing inside each
// band with a smoothstep flattened by half so steps read as shelves rather
// than ramps.
type Terrace struct {
	levels []float64
}

// NewTerrace validates and builds a terrace. At least two strictly
// increasing levels are required.
func NewTerrace(levels []float64) (Terrace, error) {
	if len(levels) < 2 {
		return Terrace{}, fmt.Errorf("terrace requires at least 2 levels, got %d", len(levels))
	}
	for i := 1; i < len(levels); i++ {
		if levels[i] <= levels[i-1] {
			return Terrace{}, fmt.Errorf("terrace levels must be strictly increasing: level %d (%.6f) <= level %d (%.6f)",
				i, levels[i], i-1, levels[i-1])
		}
	}
	lv := make([]float64, len(levels))
	copy(lv, levels)
	return Terrace{levels: lv}, nil
}

// Apply terraces x. Values outside the level range pass through unchanged.
func (tr Terrace) Apply(x float64) float64 {
	lv := tr.levels
	for i := 0; i < len(lv)-1; i++ {
		if x >= lv[i] && x <= lv[i+1] {
			t := (x - lv[i]) / (lv[i+1] - lv[i])
			return lv[i] + SmoothStep(t)*(lv[i+1]-lv[i])*0.5
		}
	}
	return x
}

// Select blends between a and b driven by a control field. Below
// lower-falloff the result is exactly a, above upper+falloff exactly b, and
// inside the falloff band the blend weight ramps with a Hermite S-curve.
func Select(a, b, control, lower, upper, falloff float64) float64 {
	if control <= lower-falloff {
		return a
	}
	if control >= upper+falloff {
		return b
	}
	t := (control - (lower - falloff)) / ((upper + falloff) - (lower - falloff))
	return Lerp(a, b, SmoothStep(t))
}

// Lerp linearly interpolates from a to b by t.
func Lerp(a, b, t float64) float64 {
	return a + t*(b-a)
}

// Clamp limits x to [lo, hi].
func Clamp(x, lo, hi float64) float64 {
	if x < lo {
		return lo
	}
	if x > hi {
		return hi
	}
	return x
}

// SmoothStep is the Hermite ease 3t²-2t³ over t in [0, 1].
func SmoothStep(t float64) float64 {
	t = Clamp(t, 0, 1)
	return t * t * (3 - 2*t)
}

package noise

import (
	"math"
	"testing"

	"github.com/AntonZelenin/planetgen/internal/vec"
)

// samplePoints spreads sample positions around the unit sphere plus a few
// off-sphere points, enough to exercise all octants.
func samplePoints() []vec.Vec3 {
	pts := []vec.Vec3{
		vec.New(1, 0, 0),
		vec.New(0, 1, 0),
		vec.New(0, 0, -1),
		vec.New(0.5, -0.3, 0.8),
	}
	for i := 0; i < 100; i++ {
		theta := float64(i) * 0.37
		phi := float64(i) * 0.11
		pts = append(pts, vec.New(
			math.Cos(theta)*math.Cos(phi),
			math.Sin(phi),
			math.Sin(theta)*math.Cos(phi),
		))
	}
	return pts
}

func TestGradientDeterministic(t *testing.T) {
	a := NewGradient(42)
	b := NewGradient(42)

	for _, p := range samplePoints() {
		if a.At(p) != b.At(p) {
			t.Fatalf("same seed produced different values at %+v", p)
		}
	}
}

func TestGradientSeedsDiffer(t *testing.T) {
	a := NewGradient(1)
	b := NewGradient(2)

	var differ int
	pts := samplePoints()
	for _, p := range pts {
		if a.At(p) != b.At(p) {
			differ++
		}
	}
	if differ < len(pts)/2 {
		t.Errorf("seeds 1 and 2 differ at only %d/%d points", differ, len(pts))
	}
}

func TestFBMRange(t *testing.T) {
	src := New(1337, 1.0, 2.0, 6, 0.5)

	for _, p := range samplePoints() {
		v := src.FBM(p)
		if v < -1.1 || v > 1.1 {
			t.Errorf("FBM(%+v) = %.4f, outside expected range", p, v)
		}
		if math.IsNaN(v) || math.IsInf(v, 0) {
			t.Fatalf("FBM(%+v) = %v", p, v)
		}
	}
}

func TestFBMZeroOctaves(t *testing.T) {
	src := New(7, 1.0, 2.0, 0, 0.5)
	if v := src.FBM(vec.New(0.3, 0.4, 0.5)); v != 0 {
		t.Errorf("FBM with 0 octaves = %.6f, want 0", v)
	}
	if v := src.Billow(vec.New(0.3, 0.4, 0.5)); v != 0 {
		t.Errorf("Billow with 0 octaves = %.6f, want 0", v)
	}
	if v := src.Ridged(vec.New(0.3, 0.4, 0.5)); v != 0 {
		t.Errorf("Ridged with 0 octaves = %.6f, want 0", v)
	}
}

func TestFBMDeterministic(t *testing.T) {
	a := New(99, 2.0, 2.2, 8, 0.5)
	b := New(99, 2.0, 2.2, 8, 0.5)

	for _, p := range samplePoints() {
		if a.FBM(p) != b.FBM(p) {
			t.Fatalf("FBM not deterministic at %+v", p)
		}
	}
}

func TestBillowDiffersFromFBM(t *testing.T) {
	src := New(1337, 1.0, 2.0, 6, 0.5)

	var differ int
	pts := samplePoints()
	for _, p := range pts {
		if src.Billow(p) != src.FBM(p) {
			differ++
		}
	}
	if differ < len(pts)/2 {
		t.Errorf("billow matches fbm at %d/%d points", len(pts)-differ, len(pts))
	}
}

func TestBillowRange(t *testing.T) {
	src := New(5, 2.0, 2.0, 6, 0.5)
	for _, p := range samplePoints() {
		v := src.Billow(p)
		if v < -1.1 || v > 1.1 {
			t.Errorf("Billow(%+v) = %.4f, outside expected range", p, v)
		}
	}
}

func TestRidgedRange(t *testing.T) {
	src := New(1337, 1.0, 2.2, 16, 0.5)
	for _, p := range samplePoints() {
		v := src.Ridged(p)
		// Rescale target is roughly [-1, 1]; allow some overshoot.
		if v < -1.5 || v > 1.5 {
			t.Errorf("Ridged(%+v) = %.4f, outside expected range", p, v)
		}
		if math.IsNaN(v) {
			t.Fatalf("Ridged(%+v) is NaN", p)
		}
	}
}

func TestSingleOctaveFBMMatchesGradient(t *testing.T) {
	src := New(11, 1.0, 2.0, 1, 0.5)
	grad := NewGradient(11)

	for _, p := range samplePoints() {
		want := grad.At(p)
		got := src.FBM(p)
		if math.Abs(got-want) > 1e-15 {
			t.Errorf("single-octave FBM = %.15f, want gradient value %.15f", got, want)
		}
	}
}

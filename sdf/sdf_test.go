package sdf

import (
	"math"
	"testing"

	"github.com/fogleman/fauxgl"
)

func TestSphereDistance(t *testing.T) {
	if d := Sphere(fauxgl.V(0, 0, 0), 1); d != -1 {
		t.Fatalf("center: got %g want -1", d)
	}
	if d := Sphere(fauxgl.V(2, 0, 0), 1); d != 1 {
		t.Fatalf("outside: got %g want 1", d)
	}
	if d := Sphere(fauxgl.V(1, 0, 0), 1); d != 0 {
		t.Fatalf("surface: got %g want 0", d)
	}
}

func TestBoxSymmetry(t *testing.T) {
	half := fauxgl.V(0.75, 0.75, 0.75)
	points := []fauxgl.Vector{
		{X: 0.3, Y: -1.2, Z: 0.8},
		{X: 2, Y: 2, Z: 2},
		{X: -0.1, Y: 0.4, Z: -3},
		{X: 0.75, Y: 0.75, Z: 0.75},
		{X: 0, Y: 0, Z: 0},
	}
	for _, p := range points {
		a := Box(p, half)
		b := Box(p.Negate(), half)
		if a != b {
			t.Fatalf("box not symmetric at %+v: %g vs %g", p, a, b)
		}
	}
}

func TestBoxKnownDistances(t *testing.T) {
	half := fauxgl.V(1, 1, 1)
	if d := Box(fauxgl.V(0, 0, 0), half); d != -1 {
		t.Fatalf("center: got %g want -1", d)
	}
	if d := Box(fauxgl.V(2, 0, 0), half); d != 1 {
		t.Fatalf("face: got %g want 1", d)
	}
	if d := Box(fauxgl.V(2, 2, 2), half); math.Abs(d-math.Sqrt(3)) > 1e-12 {
		t.Fatalf("corner: got %g want sqrt(3)", d)
	}
}

func TestSmoothUnionNeverExceedsMin(t *testing.T) {
	for a := -2.0; a <= 2.0; a += 0.25 {
		for b := -2.0; b <= 2.0; b += 0.25 {
			u := SmoothUnion(a, b, BlendRadius)
			if u > math.Min(a, b)+1e-12 {
				t.Fatalf("SmoothUnion(%g, %g) = %g exceeds min %g", a, b, u, math.Min(a, b))
			}
		}
	}
}

func TestSmoothUnionFarApartIsPlainMin(t *testing.T) {
	// |a-b| >= k leaves no blend contribution.
	if u := SmoothUnion(-0.75, 0.5, BlendRadius); u != -0.75 {
		t.Fatalf("got %g want -0.75", u)
	}
	if u := SmoothUnion(3, 0.1, BlendRadius); u != 0.1 {
		t.Fatalf("got %g want 0.1", u)
	}
}

package sdf

import (
	"math"
	"testing"

	"github.com/fogleman/fauxgl"
)

func TestDistanceNeverExceedsHardMin(t *testing.T) {
	times := []float64{0, math.Pi / 4, math.Pi / 2, 1.7, 5.3}
	for _, tm := range times {
		s := NewScene(fauxgl.Color{}, tm)
		offset := fauxgl.V(math.Sin(tm)*oscillation, 0, 0)
		for x := -3.0; x <= 3.0; x += 0.5 {
			for y := -3.0; y <= 3.0; y += 0.5 {
				for z := -3.0; z <= 3.0; z += 0.5 {
					p := fauxgl.V(x, y, z)
					hard := math.Min(Sphere(p, SphereRadius), Box(p.Sub(offset), boxHalf))
					if d := s.Distance(p); d > hard+1e-12 {
						t.Fatalf("time %g point %+v: field %g exceeds hard min %g", tm, p, d, hard)
					}
				}
			}
		}
	}
}

func TestBoxOffsetAtQuarterPeriod(t *testing.T) {
	// sin(pi/2) = 1, so the box center sits at (1.5, 0, 0). The sphere is
	// 0.5 away there, outside the blend radius, so the field is the plain
	// box distance: -0.75 at the box center.
	s := NewScene(fauxgl.Color{}, math.Pi/2)
	if d := s.Distance(fauxgl.V(1.5, 0, 0)); math.Abs(d+0.75) > 1e-12 {
		t.Fatalf("box center: got %g want -0.75", d)
	}
}

func TestDistanceFarField(t *testing.T) {
	// Far along +z the sphere dominates. The two primitive distances stay
	// within BlendRadius of each other even out here, so the smooth union
	// subtracts a correction, bounded by k/4.
	s := NewScene(fauxgl.Color{}, 0)
	d := s.Distance(fauxgl.V(0, 0, 10))
	if d > 9 || d < 9-BlendRadius/4 {
		t.Fatalf("far field %g, want within [%g, 9]", d, 9-BlendRadius/4)
	}
}

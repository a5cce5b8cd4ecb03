package sdf

import (
	"math"
	"testing"

	"github.com/fogleman/fauxgl"
)

func TestNormalIsUnitLength(t *testing.T) {
	s := NewScene(fauxgl.Color{}, 0.3)
	points := []fauxgl.Vector{
		{X: 0, Y: 0, Z: 1},
		{X: 1.2, Y: 0.3, Z: -0.4},
		{X: -0.8, Y: 0.9, Z: 0.1},
		{X: 2.0, Y: 0.5, Z: 0.5},
	}
	for _, p := range points {
		n := s.Normal(p)
		if math.Abs(n.Length()-1) > 1e-9 {
			t.Fatalf("normal at %+v has length %g", p, n.Length())
		}
	}
}

func TestNormalOnSphereFrontFace(t *testing.T) {
	s := NewScene(fauxgl.Color{}, 0)
	hit := s.March(Ray{fauxgl.V(0, 0, 5), fauxgl.V(0, 0, -1)})
	if !hit.OK {
		t.Fatal("expected a hit")
	}
	n := s.Normal(hit.Point)
	if n.Z < 0.99 {
		t.Fatalf("normal %+v, want ~+z", n)
	}
}

func TestNormalPointsAwayFromOffsetBox(t *testing.T) {
	// On the +x face of the box at its oscillation peak the gradient is +x.
	s := NewScene(fauxgl.Color{}, math.Pi/2)
	n := s.Normal(fauxgl.V(2.25, 0, 0))
	if n.X < 0.99 {
		t.Fatalf("normal %+v, want ~+x", n)
	}
}

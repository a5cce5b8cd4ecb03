package sdf

import (
	"math"

	"github.com/fogleman/fauxgl"
)

// oscillation is the horizontal travel of the box in world units.
const oscillation = 1.5

var boxHalf = fauxgl.V(0.75, 0.75, 0.75)

// Scene is the uniform state shared by every fragment of a frame: the
// material color and the animation clock. The host stamps a fresh snapshot
// per frame; fragments only read it, so concurrent invocations need no
// locking.
type Scene struct {
	Color fauxgl.Color
	Time  float64
}

// NewScene returns a scene snapshot for one frame.
func NewScene(color fauxgl.Color, time float64) *Scene {
	return &Scene{Color: color, Time: time}
}

// Distance evaluates the composed field at the world point p: a unit sphere
// at the origin smoothly joined with a box that oscillates along the x axis
// on the scene clock.
func (s *Scene) Distance(p fauxgl.Vector) float64 {
	sphere := Sphere(p, SphereRadius)
	offset := fauxgl.V(math.Sin(s.Time)*oscillation, 0, 0)
	box := Box(p.Sub(offset), boxHalf)
	return SmoothUnion(sphere, box, BlendRadius)
}

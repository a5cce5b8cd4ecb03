package sdf

import (
	"github.com/fogleman/fauxgl"
)

// Ray is a world-space ray. Direction is unit length.
type Ray struct {
	Origin    fauxgl.Vector
	Direction fauxgl.Vector
}

// NewRay builds the ray from the camera through a fragment's world position.
func NewRay(origin, through fauxgl.Vector) Ray {
	return Ray{origin, through.Sub(origin).Normalize()}
}

// At returns the point at parameter t along the ray.
func (r Ray) At(t float64) fauxgl.Vector {
	return r.Origin.Add(r.Direction.MulScalar(t))
}

// Hit is the terminal result of a march. OK is false when the ray left the
// scene without finding a surface; Point and Distance are only meaningful
// when OK is true.
type Hit struct {
	OK       bool
	Point    fauxgl.Vector
	Distance float64
	Steps    int
}

// March sphere-traces the ray through the scene field. Each step advances by
// the sampled distance, which never overshoots an exact field; near the
// blend seam the field underestimates, so the loop is also capped at
// MaxSteps. Always terminates within MaxSteps field evaluations.
func (s *Scene) March(r Ray) Hit {
	t := 0.0
	for i := 0; i < MaxSteps; i++ {
		p := r.At(t)
		d := s.Distance(p)
		if d < HitEpsilon {
			return Hit{OK: true, Point: p, Distance: t, Steps: i + 1}
		}
		t += d
		if t > MaxDistance {
			return Hit{Steps: i + 1}
		}
	}
	return Hit{Steps: MaxSteps}
}

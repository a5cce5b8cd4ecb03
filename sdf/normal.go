package sdf

import (
	"github.com/fogleman/fauxgl"
)

// Normal estimates the surface normal at p by central differences of the
// field, one pair of samples per axis. Six field evaluations per call, so it
// runs once per hit fragment and never inside the march loop.
func (s *Scene) Normal(p fauxgl.Vector) fauxgl.Vector {
	const e = NormalEpsilon
	n := fauxgl.V(
		s.Distance(fauxgl.V(p.X+e, p.Y, p.Z))-s.Distance(fauxgl.V(p.X-e, p.Y, p.Z)),
		s.Distance(fauxgl.V(p.X, p.Y+e, p.Z))-s.Distance(fauxgl.V(p.X, p.Y-e, p.Z)),
		s.Distance(fauxgl.V(p.X, p.Y, p.Z+e))-s.Distance(fauxgl.V(p.X, p.Y, p.Z-e)),
	)
	return n.Normalize()
}

package sdf

import (
	"math"

	"github.com/fogleman/fauxgl"
)

// Tuned constants for the preview scene. The rendered surface depends on the
// exact values, so they are named rather than inlined.
const (
	// SphereRadius is the radius of the fixed sphere at the world origin.
	SphereRadius = 1.0
	// BlendRadius controls how wide the fillet between the two primitives is.
	BlendRadius = 0.5

	// HitEpsilon is the distance below which the marcher reports a surface.
	HitEpsilon = 0.001
	// MaxDistance is how far a ray may travel before it counts as a miss.
	MaxDistance = 20.0
	// MaxSteps caps the march loop; the smooth union underestimates near the
	// blend seam, so distance alone does not bound the iteration count.
	MaxSteps = 128
	// NormalEpsilon is the finite-difference step for normal estimation. It
	// must stay in the same order of magnitude as HitEpsilon.
	NormalEpsilon = 0.001

	// AmbientFloor keeps surfaces facing away from the light from going
	// fully black.
	AmbientFloor = 0.1
)

// Sphere returns the signed distance from p to a sphere of the given radius
// centered at the origin. Negative inside, zero on the surface.
func Sphere(p fauxgl.Vector, radius float64) float64 {
	return p.Length() - radius
}

// Box returns the exact signed distance from p to an axis-aligned box with
// the given half extents, centered at the origin.
func Box(p, half fauxgl.Vector) float64 {
	q := p.Abs().Sub(half)
	outside := q.Max(fauxgl.Vector{}).Length()
	inside := math.Min(math.Max(q.X, math.Max(q.Y, q.Z)), 0)
	return outside + inside
}

// SmoothUnion blends two distances with the polynomial smooth minimum. k is
// the blend radius. The result never exceeds min(a, b); inside the blend
// region it underestimates the true distance, which the marcher tolerates
// through HitEpsilon.
func SmoothUnion(a, b, k float64) float64 {
	h := clamp((k-math.Abs(a-b))/k, 0, 1)
	return math.Min(a, b) - h*h*k/4
}

func clamp(x, lo, hi float64) float64 {
	if x < lo {
		return lo
	}
	if x > hi {
		return hi
	}
	return x
}

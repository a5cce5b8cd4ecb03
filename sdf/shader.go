package sdf

import (
	"math"

	"github.com/fogleman/fauxgl"
)

// lightDirection is the single fixed light of the preview scene.
var lightDirection = fauxgl.V(5, 5, 5).Normalize()

// SDFShader raymarches the scene for every rasterized fragment of the proxy
// mesh. Fragments whose rays miss the surface are discarded, so only the
// implicit surface ends up in the color buffer.
type SDFShader struct {
	Matrix         fauxgl.Matrix
	CameraPosition fauxgl.Vector
	Scene          *Scene
}

// NewSDFShader creates a new SDFShader.
func NewSDFShader(matrix fauxgl.Matrix, cameraPosition fauxgl.Vector, scene *Scene) *SDFShader {
	return &SDFShader{matrix, cameraPosition, scene}
}

// Vertex projects a proxy vertex. Its world position rides along for
// interpolation into Fragment.
func (s *SDFShader) Vertex(v fauxgl.Vertex) fauxgl.Vertex {
	v.Output = s.Matrix.MulPositionW(v.Position)
	return v
}

// Fragment returns the color of one fragment: march from the camera through
// the interpolated world position, then light the hit point with a single
// diffuse term clamped to an ambient floor.
func (s *SDFShader) Fragment(v fauxgl.Vertex) fauxgl.Color {
	hit := s.Scene.March(NewRay(s.CameraPosition, v.Position))
	if !hit.OK {
		return fauxgl.Discard
	}
	normal := s.Scene.Normal(hit.Point)
	diffuse := math.Max(normal.Dot(lightDirection), AmbientFloor)
	c := s.Scene.Color
	return fauxgl.Color{R: c.R * diffuse, G: c.G * diffuse, B: c.B * diffuse, A: 1}
}

package sdf

import (
	"image"
	"image/color"
	"image/color/palette"
	"image/draw"
	"image/gif"
	"image/png"
	"io"

	"github.com/fogleman/fauxgl"
	"github.com/nfnt/resize"
)

// proxyHalfExtent matches the 4-unit cuboid the scene lives inside. Rays
// start from fragments of this cube, so geometry outside it is never seen.
const proxyHalfExtent = 2.0

// animationBackground replaces discarded fragments in GIF output, which has
// no useful alpha channel.
var animationBackground = color.NRGBA{0x30, 0x30, 0x30, 0xff}

// ProxyMesh returns the cube whose rasterized faces seed the per-fragment
// rays.
func ProxyMesh() *fauxgl.Mesh {
	box := fauxgl.Box{
		Min: fauxgl.V(-proxyHalfExtent, -proxyHalfExtent, -proxyHalfExtent),
		Max: fauxgl.V(proxyHalfExtent, proxyHalfExtent, proxyHalfExtent),
	}
	return fauxgl.NewCubeForBox(box)
}

// renderFrame rasterizes one frame at size*scale and downscales it to size.
func renderFrame(scene *Scene, eye, center, up fauxgl.Vector, fovy float64, size, scale int, near, far float64) image.Image {
	aspect := float64(size) / float64(size)
	matrix := fauxgl.LookAt(eye, center, up).Perspective(fovy, aspect, near, far)

	context := fauxgl.NewContext(size*scale, size*scale)
	context.ClearColorBufferWith(fauxgl.Color{})
	context.Shader = NewSDFShader(matrix, eye, scene)
	context.DrawMesh(ProxyMesh())

	im := context.Image()
	if scale > 1 {
		im = resize.Resize(uint(size), uint(size), im, resize.Bilinear)
	}
	return im
}

// GenerateFrameToWriter renders one frame of the scene and encodes it as a
// PNG with transparency where no surface was hit.
func GenerateFrameToWriter(w io.Writer, scene *Scene, eye, center, up fauxgl.Vector, fovy float64, size, scale int, near, far float64) error {
	return png.Encode(w, renderFrame(scene, eye, center, up, fovy, size, scale, near, far))
}

// GenerateAnimationToWriter renders a sequence of frames, advancing the
// scene clock by step seconds each frame, and encodes them as an animated
// GIF. delay is in hundredths of a second per frame. Every frame gets its
// own scene snapshot; the value passed in is never mutated.
func GenerateAnimationToWriter(w io.Writer, scene *Scene, frames, delay int, step float64, eye, center, up fauxgl.Vector, fovy float64, size, scale int, near, far float64) error {
	out := &gif.GIF{
		Image: make([]*image.Paletted, 0, frames),
		Delay: make([]int, 0, frames),
	}
	for i := 0; i < frames; i++ {
		snapshot := *scene
		snapshot.Time = scene.Time + float64(i)*step
		im := renderFrame(&snapshot, eye, center, up, fovy, size, scale, near, far)

		bounds := im.Bounds()
		opaque := image.NewNRGBA(bounds)
		draw.Draw(opaque, bounds, image.NewUniform(animationBackground), image.Point{}, draw.Src)
		draw.Draw(opaque, bounds, im, bounds.Min, draw.Over)

		pimg := image.NewPaletted(bounds, palette.Plan9)
		draw.FloydSteinberg.Draw(pimg, bounds, opaque, bounds.Min)
		out.Image = append(out.Image, pimg)
		out.Delay = append(out.Delay, delay)
	}
	return gif.EncodeAll(w, out)
}

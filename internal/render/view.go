package render

import (
	"image"
	"image/color"
	"image/draw"

	xdraw "golang.org/x/image/draw"
	"golang.org/x/image/math/f64"

	"github.com/example/dotscope/internal/viewport"
)

// View renders the part of src visible through tr into a new size-sized
// image. Display pixel p shows image pixel tr.ToImage(p); areas outside
// the image are filled with bg. Enlargement uses nearest neighbour so
// single image pixels stay sharp under a dot; reduction is bilinear.
func View(src image.Image, tr viewport.Transform, size image.Point, bg color.Color) *image.RGBA {
	dst := image.NewRGBA(image.Rectangle{Max: size})
	draw.Draw(dst, dst.Bounds(), image.NewUniform(bg), image.Point{}, draw.Src)
	if src == nil || size.X <= 0 || size.Y <= 0 {
		return dst
	}
	s := tr.Scale
	m := f64.Aff3{
		s, 0, -float64(tr.Origin.X),
		0, s, -float64(tr.Origin.Y),
	}
	var k xdraw.Transformer = xdraw.NearestNeighbor
	if s < 1 {
		k = xdraw.ApproxBiLinear
	}
	k.Transform(dst, m, src, src.Bounds(), xdraw.Over, nil)
	return dst
}

package render

import (
	"image"
	"image/color"
	"image/draw"
)

// DropShadow darkens the area under rect, shifted by offset and softened
// by a box blur of radius. It is drawn before a panel so the panel
// appears raised above the view.
func DropShadow(dst *image.RGBA, rect image.Rectangle, offset image.Point, radius int, opacity float64) {
	if rect.Empty() || opacity <= 0 {
		return
	}
	if opacity > 1 {
		opacity = 1
	}
	if radius < 0 {
		radius = 0
	}
	padded := rect.Inset(-radius)
	mask := image.NewGray(padded.Sub(padded.Min))
	draw.Draw(mask, rect.Sub(padded.Min), image.NewUniform(color.Gray{Y: 255}), image.Point{}, draw.Src)
	blurred := blurGray(mask, radius)

	a := uint8(opacity*255 + 0.5)
	shadow := image.NewUniform(color.RGBA{A: a})
	draw.DrawMask(dst, padded.Add(offset), shadow, image.Point{}, blurred, image.Point{}, draw.Over)
}

// blurGray applies a separable box blur using running sums.
func blurGray(src *image.Gray, radius int) *image.Gray {
	b := src.Bounds()
	out := image.NewGray(b)
	if radius <= 0 {
		copy(out.Pix, src.Pix)
		return out
	}
	w, h := b.Dx(), b.Dy()
	tmp := image.NewGray(b)
	boxPass(src.Pix, tmp.Pix, w, h, src.Stride, 1, radius)
	boxPass(tmp.Pix, out.Pix, h, w, 1, tmp.Stride, radius)
	return out
}

// boxPass averages along lines of length n; step moves along a line and
// lineStep moves between lines.
func boxPass(in, out []uint8, n, lines, lineStep, step, radius int) {
	prefix := make([]int, n+1)
	for l := 0; l < lines; l++ {
		base := l * lineStep
		for i := 0; i < n; i++ {
			prefix[i+1] = prefix[i] + int(in[base+i*step])
		}
		for i := 0; i < n; i++ {
			i0, i1 := i-radius, i+radius
			if i0 < 0 {
				i0 = 0
			}
			if i1 >= n {
				i1 = n - 1
			}
			out[base+i*step] = uint8((prefix[i1+1] - prefix[i0]) / (i1 - i0 + 1))
		}
	}
}

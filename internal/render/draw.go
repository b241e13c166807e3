// Package render draws the annotation overlay and composes view frames.
package render

import (
	"image"
	"image/color"
	"image/draw"
	"math"
)

func setThickPixel(img *image.RGBA, x, y, thick int, col color.Color) {
	r := thick / 2
	for dx := -r; dx <= r; dx++ {
		for dy := -r; dy <= r; dy++ {
			px := x + dx
			py := y + dy
			if image.Pt(px, py).In(img.Bounds()) {
				img.Set(px, py, col)
			}
		}
	}
}

// DrawLine draws a Bresenham line with the given thickness.
func DrawLine(img *image.RGBA, from, to image.Point, col color.Color, thick int) {
	x0, y0, x1, y1 := from.X, from.Y, to.X, to.Y
	dx := math.Abs(float64(x1 - x0))
	dy := math.Abs(float64(y1 - y0))
	sx := -1
	if x0 < x1 {
		sx = 1
	}
	sy := -1
	if y0 < y1 {
		sy = 1
	}
	err := dx - dy
	for {
		setThickPixel(img, x0, y0, thick, col)
		if x0 == x1 && y0 == y1 {
			break
		}
		e2 := 2 * err
		if e2 > -dy {
			err -= dy
			x0 += sx
		}
		if e2 < dx {
			err += dx
			y0 += sy
		}
	}
}

func drawCircleThin(img *image.RGBA, c image.Point, r int, col color.Color) {
	x := r
	y := 0
	err := 1 - r
	b := img.Bounds()
	for x >= y {
		for _, p := range [8]image.Point{{x, y}, {y, x}, {-y, x}, {-x, y}, {-x, -y}, {-y, -x}, {y, -x}, {x, -y}} {
			q := c.Add(p)
			if q.In(b) {
				img.Set(q.X, q.Y, col)
			}
		}
		y++
		if err < 0 {
			err += 2*y + 1
		} else {
			x--
			err += 2 * (y - x + 1)
		}
	}
}

// DrawCircle draws a circle outline centred at c.
func DrawCircle(img *image.RGBA, c image.Point, r int, col color.Color, thick int) {
	if r < 0 {
		return
	}
	if thick <= 1 {
		drawCircleThin(img, c, r, col)
		return
	}
	start := -thick / 2
	for i := 0; i < thick; i++ {
		if rr := r + start + i; rr >= 0 {
			drawCircleThin(img, c, rr, col)
		}
	}
}

// FillCircle draws a filled disc centred at c.
func FillCircle(img *image.RGBA, c image.Point, r int, col color.Color) {
	clip := image.Rect(c.X-r, c.Y-r, c.X+r+1, c.Y+r+1).Intersect(img.Bounds())
	for y := clip.Min.Y; y < clip.Max.Y; y++ {
		for x := clip.Min.X; x < clip.Max.X; x++ {
			dx, dy := x-c.X, y-c.Y
			if dx*dx+dy*dy <= r*r {
				img.Set(x, y, col)
			}
		}
	}
}

// DrawRect draws the outline of rect.
func DrawRect(img *image.RGBA, rect image.Rectangle, col color.Color, thick int) {
	if rect.Empty() {
		return
	}
	DrawLine(img, rect.Min, image.Pt(rect.Max.X-1, rect.Min.Y), col, thick)
	DrawLine(img, image.Pt(rect.Max.X-1, rect.Min.Y), rect.Max.Sub(image.Pt(1, 1)), col, thick)
	DrawLine(img, rect.Max.Sub(image.Pt(1, 1)), image.Pt(rect.Min.X, rect.Max.Y-1), col, thick)
	DrawLine(img, image.Pt(rect.Min.X, rect.Max.Y-1), rect.Min, col, thick)
}

// DrawDashedRect outlines rect with alternating dashes of c1 and c2 so it
// stays visible on any background.
func DrawDashedRect(img *image.RGBA, rect image.Rectangle, dash int, c1, c2 color.Color) {
	if rect.Empty() || dash <= 0 {
		return
	}
	pick := func(i int) color.Color {
		if (i/dash)%2 == 0 {
			return c1
		}
		return c2
	}
	b := img.Bounds()
	set := func(x, y int, col color.Color) {
		if image.Pt(x, y).In(b) {
			img.Set(x, y, col)
		}
	}
	for i, x := 0, rect.Min.X; x < rect.Max.X; i, x = i+1, x+1 {
		set(x, rect.Min.Y, pick(i))
		set(x, rect.Max.Y-1, pick(i))
	}
	for i, y := 0, rect.Min.Y; y < rect.Max.Y; i, y = i+1, y+1 {
		set(rect.Min.X, y, pick(i))
		set(rect.Max.X-1, y, pick(i))
	}
}

// Fill paints rect with col, blending over what is there.
func Fill(img *image.RGBA, rect image.Rectangle, col color.Color) {
	draw.Draw(img, rect, image.NewUniform(col), image.Point{}, draw.Over)
}

// CropImage returns a copy of rect from img. Parts of rect outside img are
// left transparent.
func CropImage(img *image.RGBA, rect image.Rectangle) *image.RGBA {
	out := image.NewRGBA(image.Rect(0, 0, rect.Dx(), rect.Dy()))
	src := rect.Intersect(img.Bounds())
	if !src.Empty() {
		draw.Draw(out, src.Sub(rect.Min), img, src.Min, draw.Src)
	}
	return out
}

package viewport

import (
	"image"
	"math"
)

// epsilon absorbs binary representation error so that exact multiples such
// as 110/1.1 floor to 100 and not 99.
const epsilon = 1e-9

// Transform converts between display space (pixels of the visible viewport)
// and image space (pixels of the unscaled working raster) for one zoom
// scale and viewport origin. Origin is expressed in scaled image pixels.
type Transform struct {
	Scale  float64
	Origin image.Point
}

// ToImage maps a display point to image space.
func (t Transform) ToImage(p image.Point) image.Point {
	return image.Pt(
		floorDiv(p.X+t.Origin.X, t.Scale),
		floorDiv(p.Y+t.Origin.Y, t.Scale),
	)
}

// ToDisplay maps an image point to display space.
func (t Transform) ToDisplay(p image.Point) image.Point {
	return image.Pt(
		int(math.Floor(float64(p.X)*t.Scale+epsilon))-t.Origin.X,
		int(math.Floor(float64(p.Y)*t.Scale+epsilon))-t.Origin.Y,
	)
}

// ToImageF maps a display point to image space without truncation.
func (t Transform) ToImageF(p image.Point) (x, y float64) {
	return float64(p.X+t.Origin.X) / t.Scale, float64(p.Y+t.Origin.Y) / t.Scale
}

// ToDisplayRect maps an image-space rectangle to display space.
func (t Transform) ToDisplayRect(r image.Rectangle) image.Rectangle {
	return image.Rectangle{Min: t.ToDisplay(r.Min), Max: t.ToDisplay(r.Max)}
}

func floorDiv(v int, scale float64) int {
	return int(math.Floor(float64(v)/scale + epsilon))
}

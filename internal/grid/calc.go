package grid

import (
	"image"
	"math"

	"github.com/example/dotscope/internal/annotation"
)

// Calculator derives angles from image positions for one grid.
type Calculator struct {
	Model Model
	// FieldOfView is the full lens field in degrees. Zero means
	// DefaultFieldOfView.
	FieldOfView float64
}

func (c Calculator) fov() float64 {
	if c.FieldOfView == 0 {
		return DefaultFieldOfView
	}
	return c.FieldOfView
}

// Elevation falls linearly from half the field of view at the centre to
// zero on the circle, and keeps falling outside it.
func (c Calculator) Elevation(p image.Point) float64 {
	half := c.fov() / 2
	d := math.Hypot(float64(p.X-c.Model.Center.X), float64(p.Y-c.Model.Center.Y))
	return half - d/float64(c.Model.Radius)*half
}

// Bearing returns the clockwise angle from the reference ray to the ray
// through p, in [0,360). A dot on the centre has bearing 0. ok is false
// when no reference is set.
func (c Calculator) Bearing(p image.Point) (float64, bool) {
	if c.Model.Azimuth == nil {
		return 0, false
	}
	if p == c.Model.Center {
		return 0, true
	}
	rad := *c.Model.Azimuth * math.Pi / 180
	ref := angleOf(math.Sin(rad), -math.Cos(rad))
	dot := angleOf(float64(p.X-c.Model.Center.X), float64(p.Y-c.Model.Center.Y))
	b := dot - ref
	if b < 0 {
		b += 360
	}
	if b >= 360 {
		b -= 360
	}
	return b, true
}

// Angles returns both derived values for p, or nil when no reference is
// set. It matches the signature annotation.Store.Recompute expects.
func (c Calculator) Angles(p image.Point) *annotation.Angles {
	b, ok := c.Bearing(p)
	if !ok {
		return nil
	}
	return &annotation.Angles{Elevation: c.Elevation(p), Bearing: b}
}

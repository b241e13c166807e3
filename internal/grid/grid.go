// Package grid models the polar reference grid laid over a sky image and
// derives horizon elevation and azimuth bearing for points on it.
package grid

import (
	"errors"
	"fmt"
	"image"
	"math"
)

// DefaultFieldOfView is the full angular field of the lens the grid
// describes, in degrees.
const DefaultFieldOfView = 185.0

// ErrInvalidParameters reports grid input that is non-numeric or out of
// range. A model is never updated with such input.
var ErrInvalidParameters = errors.New("invalid grid parameters")

// Model is the circle and reference direction used to derive angles.
// Azimuth is the bearing of the zero-bearing ray, clockwise from image up;
// nil means no reference has been set yet.
type Model struct {
	Center  image.Point
	Radius  int
	Azimuth *float64
}

// Default returns the grid for a w x h image: centred, with a radius of
// half the image diagonal and no reference direction.
func Default(w, h int) Model {
	r := int(math.Round(math.Hypot(float64(w), float64(h)) / 2))
	if r < 1 {
		r = 1
	}
	return Model{Center: image.Pt(w/2, h/2), Radius: r}
}

// HasReference reports whether a reference direction is set.
func (m Model) HasReference() bool { return m.Azimuth != nil }

// WithAzimuth returns a copy of m using deg as the reference direction.
func (m Model) WithAzimuth(deg float64) Model {
	m.Azimuth = &deg
	return m
}

// Validate checks m against the image bounds.
func (m Model) Validate(bounds image.Rectangle) error {
	if m.Radius <= 0 {
		return fmt.Errorf("%w: radius %d must be positive", ErrInvalidParameters, m.Radius)
	}
	if !m.Center.In(bounds) {
		return fmt.Errorf("%w: center %v outside image %v", ErrInvalidParameters, m.Center, bounds)
	}
	if m.Azimuth != nil {
		if err := checkAzimuth(*m.Azimuth); err != nil {
			return err
		}
	}
	return nil
}

func checkAzimuth(a float64) error {
	if math.IsNaN(a) || a < 0 || a >= 360 {
		return fmt.Errorf("%w: azimuth %g not in [0,360)", ErrInvalidParameters, a)
	}
	return nil
}

// RayEnd returns the end point of the reference ray, one radius from the
// centre. ok is false when no reference is set.
func (m Model) RayEnd() (image.Point, bool) {
	if m.Azimuth == nil {
		return image.Point{}, false
	}
	rad := *m.Azimuth * math.Pi / 180
	dx := math.Sin(rad) * float64(m.Radius)
	dy := -math.Cos(rad) * float64(m.Radius)
	return image.Pt(m.Center.X+int(math.Round(dx)), m.Center.Y+int(math.Round(dy))), true
}

// PointReference returns the azimuth of the ray from center through p.
func PointReference(center, p image.Point) (float64, error) {
	if p == center {
		return 0, fmt.Errorf("%w: reference point coincides with center", ErrInvalidParameters)
	}
	a := angleOf(float64(p.X-center.X), float64(p.Y-center.Y))
	if a < 0 {
		a += 360
	}
	if a >= 360 {
		a -= 360
	}
	return a, nil
}

// angleOf returns the clockwise angle of (dx, dy) from image up in
// degrees, within (-180, 180]. Image y grows downwards.
func angleOf(dx, dy float64) float64 {
	return math.Atan2(dx, -dy) * 180 / math.Pi
}

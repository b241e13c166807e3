package viewport

import (
	"fmt"
	"math"
)

// Default zoom bounds and step ratios. Zooming out coarsens faster than
// zooming in refines, so the two ratios are not inverses of each other.
const (
	DefaultMinZoom      = -10
	DefaultMaxZoom      = 15
	DefaultZoomInRatio  = 1.1
	DefaultZoomOutRatio = 0.9
)

// ZoomTable maps integer zoom levels to scale factors. It is computed once
// and never modified afterwards.
type ZoomTable struct {
	min, max int
	factors  []float64
}

// NewZoomTable precomputes the scale factors for every level in [min, max].
// Level 0 always maps to 1.0 and each step away from 0 multiplies the
// previous factor by inRatio (upwards) or outRatio (downwards).
func NewZoomTable(min, max int, inRatio, outRatio float64) (*ZoomTable, error) {
	if min > 0 || max < 0 {
		return nil, fmt.Errorf("zoom bounds [%d, %d] must contain 0", min, max)
	}
	if inRatio <= 1 {
		return nil, fmt.Errorf("zoom in ratio %v must be greater than 1", inRatio)
	}
	if outRatio <= 0 || outRatio >= 1 {
		return nil, fmt.Errorf("zoom out ratio %v must be between 0 and 1", outRatio)
	}
	t := &ZoomTable{min: min, max: max, factors: make([]float64, max-min+1)}
	t.factors[-min] = 1
	for lvl := 1; lvl <= max; lvl++ {
		t.factors[lvl-min] = t.factors[lvl-1-min] * inRatio
	}
	for lvl := -1; lvl >= min; lvl-- {
		t.factors[lvl-min] = t.factors[lvl+1-min] * outRatio
	}
	return t, nil
}

// DefaultZoomTable returns the table built from the default bounds and ratios.
func DefaultZoomTable() *ZoomTable {
	t, err := NewZoomTable(DefaultMinZoom, DefaultMaxZoom, DefaultZoomInRatio, DefaultZoomOutRatio)
	if err != nil {
		panic(err)
	}
	return t
}

// Min returns the lowest zoom level.
func (t *ZoomTable) Min() int { return t.min }

// Max returns the highest zoom level.
func (t *ZoomTable) Max() int { return t.max }

// Contains reports whether level lies within the table bounds.
func (t *ZoomTable) Contains(level int) bool { return level >= t.min && level <= t.max }

// Scale returns the factor for level. Levels outside the table are clamped
// to the nearest bound.
func (t *ZoomTable) Scale(level int) float64 {
	level = max(t.min, min(t.max, level))
	return t.factors[level-t.min]
}

// Tolerance returns the per-axis rounding slack, in image pixels, of a round
// trip between display and image space at level. Below a scale of 1 a single
// display pixel covers several image pixels.
func (t *ZoomTable) Tolerance(level int) int {
	return max(1, int(math.Ceil(1/t.Scale(level)-1e-9)))
}

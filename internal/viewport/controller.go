package viewport

import (
	"errors"
	"image"
	"math"
)

// ErrZoomBound is returned when a zoom step would leave the zoom table.
var ErrZoomBound = errors.New("zoom bound reached")

// Direction selects the zoom step direction.
type Direction int

const (
	In Direction = iota
	Out
)

func (d Direction) String() string {
	if d == In {
		return "in"
	}
	return "out"
}

// Controller owns the zoom level and viewport origin of a document.
type Controller struct {
	table  *ZoomTable
	level  int
	origin image.Point

	// anchor remembers the exact image-space point under the last zoom
	// anchor so repeated zooms at the same spot do not accumulate
	// truncation error. Any pan or reset forgets it.
	anchor      image.Point
	anchorImgX  float64
	anchorImgY  float64
	anchorValid bool
}

// NewController returns a controller at level 0 and origin (0,0).
func NewController(table *ZoomTable) *Controller {
	if table == nil {
		table = DefaultZoomTable()
	}
	return &Controller{table: table}
}

// Table returns the zoom table used by c.
func (c *Controller) Table() *ZoomTable { return c.table }

// Level returns the current zoom level.
func (c *Controller) Level() int { return c.level }

// Scale returns the scale factor of the current zoom level.
func (c *Controller) Scale() float64 { return c.table.Scale(c.level) }

// Origin returns the current viewport origin.
func (c *Controller) Origin() image.Point { return c.origin }

// Transform returns the coordinate transform for the current state.
func (c *Controller) Transform() Transform {
	return Transform{Scale: c.Scale(), Origin: c.origin}
}

// Tolerance returns the rounding slack at the current zoom level.
func (c *Controller) Tolerance() int { return c.table.Tolerance(c.level) }

// Reset returns to level 0 and origin (0,0).
func (c *Controller) Reset() {
	c.level = 0
	c.origin = image.Point{}
	c.anchorValid = false
}

// Pan moves the viewport by a display-space drag delta. Dragging right
// reveals content to the left. The origin is not clamped.
func (c *Controller) Pan(delta image.Point) {
	if delta == (image.Point{}) {
		return
	}
	c.origin = c.origin.Sub(delta)
	c.anchorValid = false
}

// ZoomBy steps the zoom level once in dir, keeping the image point under
// anchor stationary on screen. At the table bounds it returns ErrZoomBound
// and leaves the state unchanged.
func (c *Controller) ZoomBy(dir Direction, anchor image.Point) error {
	prev := c.Transform().ToImage(anchor)
	ax, ay := c.Transform().ToImageF(anchor)
	if c.anchorValid && c.anchor == anchor {
		ax, ay = c.anchorImgX, c.anchorImgY
	}

	next := c.level + 1
	if dir == Out {
		next = c.level - 1
	}
	if !c.table.Contains(next) {
		return ErrZoomBound
	}
	c.level = next

	s := c.Scale()
	c.origin = image.Pt(
		anchorOrigin(ax, anchor.X, prev.X, s),
		anchorOrigin(ay, anchor.Y, prev.Y, s),
	)
	c.anchor = anchor
	c.anchorImgX, c.anchorImgY = ax, ay
	c.anchorValid = true
	return nil
}

// anchorOrigin picks the origin along one axis that puts image coordinate
// target under display coordinate a at scale s. Below scale 1 several
// origins land on different image pixels; the pick stays within one pixel
// of prev, the pixel under a before the step, and among those is closest
// to target.
func anchorOrigin(target float64, a, prev int, s float64) int {
	base := int(math.Round(target*s)) - a
	span := int(math.Ceil(3*math.Max(s, 1/s))) + 1
	best, bestOK, bestDist := base, false, math.Inf(1)
	for o := base - span; o <= base+span; o++ {
		d := floorDiv(a+o, s) - prev
		ok := d >= -1 && d <= 1
		dist := math.Abs(float64(a+o)/s - target)
		if (ok && !bestOK) || (ok == bestOK && dist < bestDist) {
			best, bestOK, bestDist = o, ok, dist
		}
	}
	return best
}

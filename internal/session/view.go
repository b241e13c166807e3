package session

import (
	"errors"
	"fmt"
	"image"
	"log/slog"
	"math"

	"github.com/example/dotscope/internal/render"
	"github.com/example/dotscope/internal/viewport"
)

// Resize sets the display size and redraws.
func (s *Session) Resize(size image.Point) {
	if size.X <= 0 || size.Y <= 0 || size == s.size {
		return
	}
	s.size = size
	s.Redraw()
}

// Size returns the display size.
func (s *Session) Size() image.Point { return s.size }

// Redraw renders the view raster for the current zoom and pan, rebuilds
// the overlay from the stored dots and publishes the result. The new
// frame replaces the old one only once it is complete.
func (s *Session) Redraw() {
	st := s.settings.Style
	if s.img == nil {
		s.canvas.Begin(render.View(nil, viewport.Transform{}, s.size, st.Background))
		s.Present()
		return
	}
	tr := s.view.Transform()
	s.canvas.Begin(render.View(s.img, tr, s.size, st.Background))

	area := image.Rectangle{Max: s.size}.Inset(-st.DotRadius)
	for _, d := range s.store.All() {
		p := tr.ToDisplay(d.Point())
		if p.In(area) {
			s.canvas.AddDot(d.ID, p, d.Angles == nil)
		}
	}
	s.canvas.SetGrid(nil)
	if s.showGrid {
		g := &render.GridOverlay{
			Center: tr.ToDisplay(s.grid.Center),
			Radius: int(math.Round(float64(s.grid.Radius) * tr.Scale)),
		}
		if end, ok := s.grid.RayEnd(); ok {
			g.RayEnd, g.HasRay = tr.ToDisplay(end), true
		}
		s.canvas.SetGrid(g)
	}
	s.Present()
}

// Present composes the overlay and publishes it without re-rendering the
// raster.
func (s *Session) Present() {
	s.frame = s.canvas.Frame()
	if s.publish != nil {
		s.publish(s.frame)
	}
}

// Press forwards a pointer press in display space to the active tool.
func (s *Session) Press(p image.Point) { s.machine.Press(p) }

// Drag forwards pointer motion with the button held.
func (s *Session) Drag(p image.Point) { s.machine.Drag(p) }

// Release forwards a pointer release.
func (s *Session) Release(p image.Point) {
	if n := s.machine.Release(p); n > 0 {
		s.report(fmt.Sprintf("deleted %d dots", n), "remaining", s.store.Len())
	}
}

// Dragging reports whether a pointer press is in progress.
func (s *Session) Dragging() bool { return s.machine.Dragging() }

// Zoom steps the zoom level keeping the image point under anchor fixed.
// Without an image it does nothing.
func (s *Session) Zoom(dir viewport.Direction, anchor image.Point) error {
	if s.img == nil {
		return nil
	}
	if err := s.view.ZoomBy(dir, anchor); err != nil {
		if errors.Is(err, viewport.ErrZoomBound) {
			slog.Info("zoom", "direction", dir, "level", s.view.Level(), "error", err)
			if s.status != nil {
				s.status(err.Error())
			}
		}
		return err
	}
	slog.Debug("zoom", "direction", dir, "level", s.view.Level(), "origin", s.view.Origin())
	s.Redraw()
	return nil
}

// ZoomCenter zooms anchored at the middle of the display.
func (s *Session) ZoomCenter(dir viewport.Direction) error {
	return s.Zoom(dir, image.Pt(s.size.X/2, s.size.Y/2))
}

// ResetView returns to zoom level zero with no pan.
func (s *Session) ResetView() {
	if s.img == nil {
		return
	}
	s.view.Reset()
	s.Redraw()
}

// ToggleGrid shows or hides the grid overlay and returns the new state.
func (s *Session) ToggleGrid() bool {
	s.showGrid = !s.showGrid
	if s.img != nil {
		s.Redraw()
	}
	return s.showGrid
}

// GridVisible reports whether the grid overlay is shown.
func (s *Session) GridVisible() bool { return s.showGrid }

// Status summarises the view for the status line.
func (s *Session) Status() string {
	if s.img == nil {
		return fmt.Sprintf("no image | tool %s", s.Tool())
	}
	mark := ""
	if s.dirty {
		mark = " *"
	}
	return fmt.Sprintf("%.0f%% | tool %s | %d dots%s", s.view.Scale()*100, s.Tool(), s.store.Len(), mark)
}

// Describe reports the image position under display point p and, when a
// reference is set, its elevation and bearing.
func (s *Session) Describe(p image.Point) string {
	if s.img == nil {
		return ""
	}
	ip := s.view.Transform().ToImage(p)
	if !ip.In(s.img.Bounds()) {
		return ""
	}
	if a := s.calculator().Angles(ip); a != nil {
		return fmt.Sprintf("%d, %d  horizon %.2f  azimuth %.2f", ip.X, ip.Y, a.Elevation, a.Bearing)
	}
	return fmt.Sprintf("%d, %d", ip.X, ip.Y)
}

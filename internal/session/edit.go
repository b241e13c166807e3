package session

import (
	"image"
	"log/slog"

	"github.com/example/dotscope/internal/annotation"
	"github.com/example/dotscope/internal/tool"
)

var _ tool.Target = (*Session)(nil)

// Pan moves the view by delta display pixels.
func (s *Session) Pan(delta image.Point) {
	if s.img == nil {
		return
	}
	s.view.Pan(delta)
}

// PlaceDot stores a dot at display point p, with angles when the grid has
// a reference direction.
func (s *Session) PlaceDot(p image.Point) {
	if s.img == nil {
		return
	}
	ip := s.view.Transform().ToImage(p)
	var angles *annotation.Angles
	if s.grid.HasReference() {
		angles = s.calculator().Angles(ip)
	}
	s.store.Add(ip, angles)
	s.dirty = true
	slog.Debug("dot", "display", p, "image", ip)
}

// Resolve finds the stored dot drawn at display point p.
func (s *Session) Resolve(p image.Point) (annotation.Dot, bool) {
	return s.store.FindNear(s.view.Transform().ToImage(p), s.tolerance())
}

// Dot returns the stored dot with id.
func (s *Session) Dot(id annotation.ID) (annotation.Dot, bool) { return s.store.Get(id) }

// Remove deletes dots from the store.
func (s *Session) Remove(dots []annotation.Dot) {
	for _, d := range dots {
		if s.store.Remove(d) {
			s.dirty = true
		}
	}
}

// RemoveAt highlights the dot drawn at display point p and deletes it once
// the prompter confirms. It reports whether a dot was removed.
func (s *Session) RemoveAt(p image.Point) bool {
	if s.machine.RemoveAt(p) == 0 {
		return false
	}
	s.Redraw()
	return true
}

// Recompute re-derives elevation and bearing for every dot from the
// current grid. Without a reference direction it leaves dots unchanged.
func (s *Session) Recompute() {
	if !s.grid.HasReference() {
		return
	}
	s.store.Recompute(s.calculator().Angles)
	s.dirty = true
}

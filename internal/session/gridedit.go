package session

import (
	"fmt"
	"image"

	"github.com/example/dotscope/internal/grid"
	"github.com/example/dotscope/internal/prompt"
)

// GridSchema is the form used to edit the grid.
func (s *Session) GridSchema() prompt.Schema {
	v := s.grid.FormValues()
	return prompt.Schema{
		Title: "Reference grid",
		Fields: []prompt.Field{
			{Name: grid.FieldCenterX, Label: "Center X", Default: v[grid.FieldCenterX]},
			{Name: grid.FieldCenterY, Label: "Center Y", Default: v[grid.FieldCenterY]},
			{Name: grid.FieldRadius, Label: "Radius", Default: v[grid.FieldRadius]},
			{Name: grid.FieldAzimuth, Label: "Azimuth", Default: v[grid.FieldAzimuth]},
		},
	}
}

// EditGrid asks for grid parameters and applies them. Cancelling changes
// nothing; invalid input is rejected with grid.ErrInvalidParameters and
// the grid is left as it was.
func (s *Session) EditGrid() error {
	if s.img == nil {
		return ErrNoImage
	}
	if s.prompter == nil {
		return fmt.Errorf("no dialog available")
	}
	res, ok := s.prompter.Ask(s.GridSchema())
	if !ok {
		return nil
	}
	m, err := grid.ParseForm(res, s.img.Bounds())
	if err != nil {
		s.warn("grid not changed", err)
		return err
	}
	return s.SetGrid(m)
}

// SetGrid validates and applies m, then re-derives every dot.
func (s *Session) SetGrid(m grid.Model) error {
	if s.img == nil {
		return ErrNoImage
	}
	if err := m.Validate(s.img.Bounds()); err != nil {
		return err
	}
	s.grid = m
	s.gridSaved = true
	s.Recompute()
	s.report("grid updated", "center", m.Center, "radius", m.Radius)
	s.Redraw()
	return nil
}

// SetAzimuth sets the reference direction in degrees.
func (s *Session) SetAzimuth(deg float64) error {
	if s.img == nil {
		return ErrNoImage
	}
	return s.SetGrid(s.grid.WithAzimuth(deg))
}

// SetReferencePoint points the reference direction at display point p.
func (s *Session) SetReferencePoint(p image.Point) error {
	if s.img == nil {
		return ErrNoImage
	}
	a, err := grid.PointReference(s.grid.Center, s.view.Transform().ToImage(p))
	if err != nil {
		return err
	}
	return s.SetAzimuth(a)
}

// Package annotation holds the dots placed on a document and their
// persistence forms.
package annotation

import (
	"fmt"
	"image"
)

// Angles are the elevation and bearing derived for a dot from the polar
// reference grid.
type Angles struct {
	Elevation float64
	Bearing   float64
}

// ID identifies a dot within one Store. IDs are not persisted.
type ID int

// Dot is a point of interest in image space. Angles is nil until the
// reference grid has produced elevation and bearing for it.
type Dot struct {
	ID     ID
	X, Y   int
	Angles *Angles
}

// Point returns the dot position.
func (d Dot) Point() image.Point { return image.Pt(d.X, d.Y) }

// Equal reports whether d and o hold the same position and derived values.
// IDs are ignored.
func (d Dot) Equal(o Dot) bool {
	if d.X != o.X || d.Y != o.Y {
		return false
	}
	if d.Angles == nil || o.Angles == nil {
		return d.Angles == nil && o.Angles == nil
	}
	return *d.Angles == *o.Angles
}

func (d Dot) String() string {
	if d.Angles == nil {
		return fmt.Sprintf("(%d, %d)", d.X, d.Y)
	}
	return fmt.Sprintf("(%d, %d, %.2f, %.2f)", d.X, d.Y, d.Angles.Elevation, d.Angles.Bearing)
}

// Store is an ordered collection of dots. Order only provides stable
// iteration for display and export.
type Store struct {
	dots   []Dot
	nextID ID
}

// NewStore returns a store holding copies of dots, in order.
func NewStore(dots ...Dot) *Store {
	s := &Store{}
	for _, d := range dots {
		s.Add(d.Point(), d.Angles)
	}
	return s
}

// Add appends a dot at p. Any position is accepted and duplicates are kept.
func (s *Store) Add(p image.Point, angles *Angles) ID {
	s.nextID++
	d := Dot{ID: s.nextID, X: p.X, Y: p.Y}
	if angles != nil {
		a := *angles
		d.Angles = &a
	}
	s.dots = append(s.dots, d)
	return d.ID
}

// Len returns the number of stored dots.
func (s *Store) Len() int { return len(s.dots) }

// All returns a copy of the dots in insertion order.
func (s *Store) All() []Dot {
	out := make([]Dot, len(s.dots))
	for i, d := range s.dots {
		out[i] = d.clone()
	}
	return out
}

// Get returns the dot with id.
func (s *Store) Get(id ID) (Dot, bool) {
	for _, d := range s.dots {
		if d.ID == id {
			return d.clone(), true
		}
	}
	return Dot{}, false
}

// FindNear returns the first dot whose x and y each differ from p by at
// most tolerance.
func (s *Store) FindNear(p image.Point, tolerance int) (Dot, bool) {
	for _, d := range s.dots {
		if abs(d.X-p.X) <= tolerance && abs(d.Y-p.Y) <= tolerance {
			return d.clone(), true
		}
	}
	return Dot{}, false
}

// Remove deletes the first dot equal to d, matching by ID when d carries
// one and by value otherwise. It reports whether anything was removed.
func (s *Store) Remove(d Dot) bool {
	for i, cur := range s.dots {
		if (d.ID != 0 && cur.ID == d.ID) || (d.ID == 0 && cur.Equal(d)) {
			s.dots = append(s.dots[:i], s.dots[i+1:]...)
			return true
		}
	}
	return false
}

// Clear removes every dot.
func (s *Store) Clear() { s.dots = nil }

// Replace swaps the contents for copies of dots with fresh IDs.
func (s *Store) Replace(dots []Dot) {
	s.dots = nil
	for _, d := range dots {
		s.Add(d.Point(), d.Angles)
	}
}

// Recompute overwrites the derived angles of every dot in place with the
// result of fn. Positions and order are preserved; dots without angles are
// included.
func (s *Store) Recompute(fn func(image.Point) *Angles) {
	for i := range s.dots {
		a := fn(s.dots[i].Point())
		if a == nil {
			s.dots[i].Angles = nil
			continue
		}
		cp := *a
		s.dots[i].Angles = &cp
	}
}

func (d Dot) clone() Dot {
	if d.Angles != nil {
		a := *d.Angles
		d.Angles = &a
	}
	return d
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}

package tool

import (
	"fmt"
	"image"

	"github.com/example/dotscope/internal/annotation"
	"github.com/example/dotscope/internal/prompt"
)

// Glyph is a drawn dot on the surface, identified by tag and located by
// its display-space centre. Dot is the stored dot it was drawn for, or 0
// when unknown.
type Glyph struct {
	Tag    int
	Center image.Point
	Dot    annotation.ID
}

// Target is the document the machine operates on. Points are in display
// space.
type Target interface {
	Loaded() bool
	Pan(delta image.Point)
	PlaceDot(p image.Point)
	// Dot returns the stored dot with id.
	Dot(id annotation.ID) (annotation.Dot, bool)
	// Resolve maps a glyph centre back to the stored dot.
	Resolve(p image.Point) (annotation.Dot, bool)
	Remove(dots []annotation.Dot)
	// Redraw re-renders the view from document state.
	Redraw()
	// Present publishes overlay changes without re-rendering.
	Present()
}

// Surface is the overlay layer the machine draws transient marks on.
type Surface interface {
	Line(from, to image.Point)
	Marquee(r image.Rectangle)
	ClearMarquee()
	Enclosed(r image.Rectangle) []Glyph
	// At returns the topmost glyph drawn over p.
	At(p image.Point) (Glyph, bool)
	Highlight(tags []int)
	Unhighlight(tags []int)
	Delete(tags []int)
}

// Machine dispatches pointer events for the active mode.
type Machine struct {
	mode     Mode
	target   Target
	surface  Surface
	prompter prompt.Prompter

	active bool
	anchor image.Point
	last   image.Point
}

// NewMachine returns a machine in Move mode.
func NewMachine(t Target, s Surface, p prompt.Prompter) *Machine {
	return &Machine{target: t, surface: s, prompter: p}
}

// Mode returns the active tool.
func (m *Machine) Mode() Mode { return m.mode }

// SetMode switches tool immediately, abandoning any drag in progress.
func (m *Machine) SetMode(mode Mode) {
	if m.active && m.mode == Select {
		m.surface.ClearMarquee()
		m.target.Present()
	}
	m.active = false
	m.mode = mode
}

// SetPrompter replaces the dialog provider.
func (m *Machine) SetPrompter(p prompt.Prompter) { m.prompter = p }

// Dragging reports whether a press has not yet been released.
func (m *Machine) Dragging() bool { return m.active }

func (m *Machine) ignored() bool {
	return m.mode.needsImage() && !m.target.Loaded()
}

// Press starts an interaction at p.
func (m *Machine) Press(p image.Point) {
	if m.ignored() {
		return
	}
	switch m.mode {
	case Dot:
		m.target.PlaceDot(p)
		m.target.Redraw()
		return
	case Move, Line, Select:
		m.active = true
		m.anchor = p
		m.last = p
	}
}

// Drag continues the interaction to p.
func (m *Machine) Drag(p image.Point) {
	if !m.active || m.ignored() {
		return
	}
	switch m.mode {
	case Move:
		delta := p.Sub(m.last)
		m.last = p
		if delta == (image.Point{}) {
			return
		}
		m.target.Pan(delta)
		m.target.Redraw()
	case Line:
		m.surface.Line(m.last, p)
		m.last = p
		m.target.Present()
	case Select:
		m.last = p
		m.surface.Marquee(image.Rectangle{Min: m.anchor, Max: p}.Canon())
		m.target.Present()
	}
}

// Release ends the interaction at p. For Select it returns the number of
// dots removed.
func (m *Machine) Release(p image.Point) int {
	if !m.active {
		return 0
	}
	m.active = false
	if m.ignored() || m.mode != Select {
		return 0
	}
	return m.finishSelect(image.Rectangle{Min: m.anchor, Max: p}.Canon())
}

func (m *Machine) finishSelect(r image.Rectangle) int {
	defer m.target.Present()
	defer m.surface.ClearMarquee()
	return m.confirmDelete(m.surface.Enclosed(r))
}

// RemoveAt asks to delete the dot drawn at p and returns the number of
// dots removed.
func (m *Machine) RemoveAt(p image.Point) int {
	if !m.target.Loaded() {
		return 0
	}
	g, ok := m.surface.At(p)
	if !ok {
		return 0
	}
	defer m.target.Present()
	return m.confirmDelete([]Glyph{g})
}

// confirmDelete highlights the dots behind glyphs and removes them once
// the user agrees. On cancel the highlight is reverted.
func (m *Machine) confirmDelete(glyphs []Glyph) int {
	var tags []int
	var dots []annotation.Dot
	seen := map[annotation.ID]bool{}
	for _, g := range glyphs {
		d, ok := m.resolve(g)
		if !ok || seen[d.ID] {
			continue
		}
		seen[d.ID] = true
		tags = append(tags, g.Tag)
		dots = append(dots, d)
	}
	if len(dots) == 0 {
		return 0
	}
	m.surface.Highlight(tags)
	m.target.Present()
	if m.prompter == nil || !m.prompter.Confirm("Delete dots", deleteMessage(len(dots))) {
		m.surface.Unhighlight(tags)
		return 0
	}
	m.target.Remove(dots)
	m.surface.Delete(tags)
	return len(dots)
}

func (m *Machine) resolve(g Glyph) (annotation.Dot, bool) {
	if g.Dot != 0 {
		if d, ok := m.target.Dot(g.Dot); ok {
			return d, true
		}
	}
	return m.target.Resolve(g.Center)
}

func deleteMessage(n int) string {
	if n == 1 {
		return "Delete the selected dot?"
	}
	return fmt.Sprintf("Delete the %d selected dots?", n)
}

package render

import (
	"image"
	"image/color"
	"image/draw"
	"sort"

	"github.com/example/dotscope/internal/annotation"
	"github.com/example/dotscope/internal/tool"
)

// Style holds the overlay colours and dot size.
type Style struct {
	Dot        color.RGBA // dot with derived angles
	NewDot     color.RGBA // dot still waiting for angles
	Highlight  color.RGBA
	Line       color.RGBA
	Marquee    color.RGBA
	Grid       color.RGBA
	Background color.RGBA
	DotRadius  int
}

// DefaultStyle returns the built-in overlay colours.
func DefaultStyle() Style {
	return Style{
		Dot:        color.RGBA{255, 0, 0, 255},
		NewDot:     color.RGBA{255, 165, 0, 255},
		Highlight:  color.RGBA{0, 255, 255, 255},
		Line:       color.RGBA{255, 255, 0, 255},
		Marquee:    color.RGBA{255, 255, 255, 255},
		Grid:       color.RGBA{0, 255, 0, 200},
		Background: color.RGBA{32, 32, 32, 255},
		DotRadius:  3,
	}
}

// GridOverlay is the reference grid in display space.
type GridOverlay struct {
	Center image.Point
	Radius int
	RayEnd image.Point
	HasRay bool
}

type glyph struct {
	tag         int
	dot         annotation.ID
	center      image.Point
	plain       bool
	highlighted bool
}

type stroke struct{ from, to image.Point }

// Canvas is the display surface: a view raster with tagged dot glyphs,
// transient line strokes, a selection marquee and the grid overlay drawn
// above it. It satisfies tool.Surface.
type Canvas struct {
	style   Style
	base    *image.RGBA
	glyphs  map[int]*glyph
	nextTag int
	strokes []stroke
	marquee *image.Rectangle
	grid    *GridOverlay
}

var _ tool.Surface = (*Canvas)(nil)

// NewCanvas returns an empty canvas.
func NewCanvas(style Style) *Canvas {
	if style.DotRadius <= 0 {
		style.DotRadius = DefaultStyle().DotRadius
	}
	return &Canvas{style: style, glyphs: map[int]*glyph{}}
}

// Style returns the canvas style.
func (c *Canvas) Style() Style { return c.style }

// Begin starts a new frame over base, dropping every glyph, stroke and
// the marquee.
func (c *Canvas) Begin(base *image.RGBA) {
	c.base = base
	c.glyphs = map[int]*glyph{}
	c.strokes = nil
	c.marquee = nil
}

// Bounds returns the display area.
func (c *Canvas) Bounds() image.Rectangle {
	if c.base == nil {
		return image.Rectangle{}
	}
	return c.base.Bounds()
}

// AddDot places a glyph for the stored dot id at p and returns its tag.
// plain marks a dot without derived angles.
func (c *Canvas) AddDot(id annotation.ID, p image.Point, plain bool) int {
	c.nextTag++
	c.glyphs[c.nextTag] = &glyph{tag: c.nextTag, dot: id, center: p, plain: plain}
	return c.nextTag
}

// SetGrid sets or, with nil, removes the grid overlay.
func (c *Canvas) SetGrid(g *GridOverlay) { c.grid = g }

// Line adds a transient stroke.
func (c *Canvas) Line(from, to image.Point) {
	c.strokes = append(c.strokes, stroke{from, to})
}

// Marquee shows the selection rectangle r.
func (c *Canvas) Marquee(r image.Rectangle) { c.marquee = &r }

// ClearMarquee hides the selection rectangle.
func (c *Canvas) ClearMarquee() { c.marquee = nil }

func (c *Canvas) glyphRect(g *glyph) image.Rectangle {
	r := c.style.DotRadius
	return image.Rect(g.center.X-r, g.center.Y-r, g.center.X+r+1, g.center.Y+r+1)
}

// Enclosed returns the glyphs lying wholly inside r, in tag order.
func (c *Canvas) Enclosed(r image.Rectangle) []tool.Glyph {
	var out []tool.Glyph
	for _, g := range c.glyphs {
		if c.glyphRect(g).In(r) {
			out = append(out, g.export())
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Tag < out[j].Tag })
	return out
}

// At returns the most recently added glyph whose disc covers p.
func (c *Canvas) At(p image.Point) (tool.Glyph, bool) {
	var best *glyph
	for _, g := range c.glyphs {
		if p.In(c.glyphRect(g)) && (best == nil || g.tag > best.tag) {
			best = g
		}
	}
	if best == nil {
		return tool.Glyph{}, false
	}
	return best.export(), true
}

func (g *glyph) export() tool.Glyph {
	return tool.Glyph{Tag: g.tag, Center: g.center, Dot: g.dot}
}

// Highlight marks the glyphs with tags.
func (c *Canvas) Highlight(tags []int) { c.setHighlight(tags, true) }

// Unhighlight restores the normal colour of the glyphs with tags.
func (c *Canvas) Unhighlight(tags []int) { c.setHighlight(tags, false) }

func (c *Canvas) setHighlight(tags []int, on bool) {
	for _, t := range tags {
		if g, ok := c.glyphs[t]; ok {
			g.highlighted = on
		}
	}
}

// Delete removes the glyphs with tags.
func (c *Canvas) Delete(tags []int) {
	for _, t := range tags {
		delete(c.glyphs, t)
	}
}

// Highlighted reports whether the glyph with tag is highlighted.
func (c *Canvas) Highlighted(tag int) bool {
	g, ok := c.glyphs[tag]
	return ok && g.highlighted
}

// Len returns the number of glyphs.
func (c *Canvas) Len() int { return len(c.glyphs) }

// Frame composes the overlay onto a copy of the base raster.
func (c *Canvas) Frame() *image.RGBA {
	if c.base == nil {
		return image.NewRGBA(image.Rectangle{})
	}
	out := image.NewRGBA(c.base.Bounds())
	draw.Draw(out, out.Bounds(), c.base, c.base.Bounds().Min, draw.Src)

	if g := c.grid; g != nil {
		DrawCircle(out, g.Center, g.Radius, c.style.Grid, 1)
		FillCircle(out, g.Center, 2, c.style.Grid)
		if g.HasRay {
			DrawLine(out, g.Center, g.RayEnd, c.style.Grid, 1)
		}
	}
	for _, s := range c.strokes {
		DrawLine(out, s.from, s.to, c.style.Line, 2)
	}
	tags := make([]int, 0, len(c.glyphs))
	for t := range c.glyphs {
		tags = append(tags, t)
	}
	sort.Ints(tags)
	for _, t := range tags {
		g := c.glyphs[t]
		col := c.style.Dot
		switch {
		case g.highlighted:
			col = c.style.Highlight
		case g.plain:
			col = c.style.NewDot
		}
		FillCircle(out, g.center, c.style.DotRadius, col)
	}
	if c.marquee != nil {
		DrawDashedRect(out, *c.marquee, 4, c.style.Marquee, color.RGBA{A: 255})
	}
	return out
}

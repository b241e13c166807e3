package render

import (
	"image"
	"image/color"
	"testing"

	"github.com/example/dotscope/internal/viewport"
)

func solid(w, h int, col color.RGBA) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	Fill(img, img.Bounds(), col)
	return img
}

func TestViewIdentity(t *testing.T) {
	src := image.NewRGBA(image.Rect(0, 0, 4, 4))
	src.Set(2, 1, color.RGBA{255, 0, 0, 255})
	out := View(src, viewport.Transform{Scale: 1}, image.Pt(6, 6), color.RGBA{0, 0, 255, 255})
	if got := out.RGBAAt(2, 1); got.R != 255 {
		t.Errorf("expected red at (2,1), got %v", got)
	}
	if got := out.RGBAAt(5, 5); got.B != 255 {
		t.Errorf("expected background outside image, got %v", got)
	}
}

func TestViewZoomAndPan(t *testing.T) {
	src := image.NewRGBA(image.Rect(0, 0, 10, 10))
	src.Set(3, 3, color.RGBA{0, 255, 0, 255})
	tr := viewport.Transform{Scale: 2, Origin: image.Pt(4, 4)}
	out := View(src, tr, image.Pt(10, 10), color.RGBA{A: 255})
	p := tr.ToDisplay(image.Pt(3, 3))
	if got := out.RGBAAt(p.X, p.Y); got.G != 255 {
		t.Errorf("expected green at display %v, got %v", p, got)
	}
	if got := out.RGBAAt(p.X+1, p.Y+1); got.G != 255 {
		t.Errorf("expected the pixel to cover 2x2 display pixels, got %v", got)
	}
}

func TestCanvasEnclosedAndDelete(t *testing.T) {
	c := NewCanvas(DefaultStyle())
	c.Begin(solid(100, 100, color.RGBA{A: 255}))
	a := c.AddDot(1, image.Pt(10, 10), false)
	b := c.AddDot(2, image.Pt(50, 50), true)
	c.AddDot(3, image.Pt(98, 98), false)

	got := c.Enclosed(image.Rect(0, 0, 60, 60))
	if len(got) != 2 || got[0].Tag != a || got[1].Tag != b {
		t.Fatalf("unexpected enclosed glyphs %v", got)
	}
	if got[0].Dot != 1 || got[1].Dot != 2 {
		t.Errorf("glyphs should carry their dot ids, got %v", got)
	}
	if len(c.Enclosed(image.Rect(0, 0, 11, 11))) != 0 {
		t.Error("partially covered glyph should not be enclosed")
	}

	c.Highlight([]int{a})
	if !c.Highlighted(a) || c.Highlighted(b) {
		t.Error("highlight not applied to the right glyph")
	}
	c.Unhighlight([]int{a})
	if c.Highlighted(a) {
		t.Error("highlight not reverted")
	}
	c.Delete([]int{a, b})
	if c.Len() != 1 {
		t.Errorf("expected one glyph left, got %d", c.Len())
	}
}

func TestCanvasAtPicksTopmost(t *testing.T) {
	c := NewCanvas(DefaultStyle())
	c.Begin(solid(100, 100, color.RGBA{A: 255}))
	c.AddDot(7, image.Pt(20, 20), false)
	top := c.AddDot(8, image.Pt(22, 20), false)

	g, ok := c.At(image.Pt(21, 20))
	if !ok || g.Tag != top || g.Dot != 8 {
		t.Fatalf("At = %+v, %v; want tag %d dot 8", g, ok, top)
	}
	if _, ok := c.At(image.Pt(60, 60)); ok {
		t.Error("expected no glyph at an empty spot")
	}
}

func TestCanvasFrameColours(t *testing.T) {
	st := DefaultStyle()
	c := NewCanvas(st)
	base := solid(40, 40, color.RGBA{A: 255})
	c.Begin(base)
	enriched := c.AddDot(1, image.Pt(10, 10), false)
	c.AddDot(2, image.Pt(30, 30), true)
	c.Highlight([]int{enriched})

	f := c.Frame()
	if got := f.RGBAAt(10, 10); got != st.Highlight {
		t.Errorf("expected highlight colour, got %v", got)
	}
	if got := f.RGBAAt(30, 30); got != st.NewDot {
		t.Errorf("expected new dot colour, got %v", got)
	}
	if got := base.RGBAAt(10, 10); got != (color.RGBA{A: 255}) {
		t.Error("frame composition must not modify the base raster")
	}
}

func TestCanvasBeginClearsOverlay(t *testing.T) {
	c := NewCanvas(DefaultStyle())
	c.Begin(solid(20, 20, color.RGBA{A: 255}))
	c.AddDot(1, image.Pt(5, 5), false)
	c.Line(image.Pt(0, 0), image.Pt(10, 10))
	c.Marquee(image.Rect(0, 0, 5, 5))
	c.Begin(solid(20, 20, color.RGBA{A: 255}))
	if c.Len() != 0 || len(c.strokes) != 0 || c.marquee != nil {
		t.Error("Begin should reset the overlay")
	}
}

func TestDropShadowDarkensOffsetArea(t *testing.T) {
	dst := solid(40, 40, color.RGBA{255, 255, 255, 255})
	DropShadow(dst, image.Rect(10, 10, 20, 20), image.Pt(4, 4), 2, 0.5)
	if got := dst.RGBAAt(22, 22); got.R == 255 {
		t.Errorf("expected shadow at (22,22), got %v", got)
	}
	if got := dst.RGBAAt(2, 2); got.R != 255 {
		t.Errorf("expected no shadow far away, got %v", got)
	}
}

func TestCropImage(t *testing.T) {
	src := solid(4, 4, color.RGBA{1, 2, 3, 255})
	out := CropImage(src, image.Rect(2, 2, 6, 6))
	if out.Bounds() != image.Rect(0, 0, 4, 4) {
		t.Fatalf("unexpected bounds %v", out.Bounds())
	}
	if out.RGBAAt(0, 0).A != 255 || out.RGBAAt(3, 3).A != 0 {
		t.Error("expected copied corner and transparent overflow")
	}
}

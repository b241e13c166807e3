package viewport

import (
	"errors"
	"image"
	"math"
	"testing"
)

func TestZoomTableFactors(t *testing.T) {
	tbl := DefaultZoomTable()
	if got := tbl.Scale(0); got != 1 {
		t.Fatalf("scale(0) = %v, want 1", got)
	}
	if got := tbl.Scale(1); math.Abs(got-1.1) > 1e-12 {
		t.Errorf("scale(1) = %v, want 1.1", got)
	}
	if got := tbl.Scale(-1); math.Abs(got-0.9) > 1e-12 {
		t.Errorf("scale(-1) = %v, want 0.9", got)
	}
	for lvl := tbl.Min() + 1; lvl <= tbl.Max(); lvl++ {
		if tbl.Scale(lvl) <= tbl.Scale(lvl-1) {
			t.Fatalf("scale not monotonic at level %d", lvl)
		}
	}
	if tbl.Scale(tbl.Max()+5) != tbl.Scale(tbl.Max()) {
		t.Errorf("levels above max should clamp")
	}
}

func TestNewZoomTableRejectsBadInput(t *testing.T) {
	cases := []struct {
		name            string
		min, max        int
		inRatio, outRat float64
	}{
		{"bounds exclude zero", 1, 5, 1.1, 0.9},
		{"in ratio not growing", -3, 3, 1.0, 0.9},
		{"out ratio not shrinking", -3, 3, 1.1, 1.2},
		{"out ratio zero", -3, 3, 1.1, 0},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := NewZoomTable(tc.min, tc.max, tc.inRatio, tc.outRat); err == nil {
				t.Fatalf("expected error")
			}
		})
	}
}

func TestTransformAtUnitScale(t *testing.T) {
	tr := Transform{Scale: 1}
	p := image.Pt(100, 100)
	if got := tr.ToImage(p); got != p {
		t.Fatalf("ToImage(%v) = %v", p, got)
	}
	tr.Origin = image.Pt(10, -5)
	if got := tr.ToImage(p); got != image.Pt(110, 95) {
		t.Fatalf("ToImage with origin = %v", got)
	}
	if got := tr.ToDisplay(image.Pt(110, 95)); got != p {
		t.Fatalf("ToDisplay = %v", got)
	}
}

func TestTransformFloorsNegative(t *testing.T) {
	tr := Transform{Scale: 2, Origin: image.Pt(-3, -3)}
	if got := tr.ToImage(image.Pt(0, 0)); got != image.Pt(-2, -2) {
		t.Fatalf("ToImage = %v, want (-2,-2)", got)
	}
}

func TestPanMovesOriginAgainstDrag(t *testing.T) {
	c := NewController(nil)
	c.Pan(image.Pt(5, -3))
	if got := c.Origin(); got != image.Pt(-5, 3) {
		t.Fatalf("origin = %v, want (-5,3)", got)
	}
	c.Pan(image.Pt(-20, 0))
	if got := c.Origin(); got != image.Pt(15, 3) {
		t.Fatalf("origin = %v, want (15,3)", got)
	}
}

func TestZoomBoundReached(t *testing.T) {
	tbl, err := NewZoomTable(-2, 2, 1.1, 0.9)
	if err != nil {
		t.Fatal(err)
	}
	c := NewController(tbl)
	p := image.Pt(40, 30)
	for i := 0; i < 2; i++ {
		if err := c.ZoomBy(In, p); err != nil {
			t.Fatalf("zoom %d: %v", i, err)
		}
	}
	origin := c.Origin()
	for i := 0; i < 3; i++ {
		if err := c.ZoomBy(In, p); !errors.Is(err, ErrZoomBound) {
			t.Fatalf("expected ErrZoomBound, got %v", err)
		}
	}
	if c.Level() != 2 || c.Origin() != origin {
		t.Fatalf("state changed at bound: level %d origin %v", c.Level(), c.Origin())
	}
	for c.Level() > -2 {
		if err := c.ZoomBy(Out, p); err != nil {
			t.Fatal(err)
		}
	}
	if err := c.ZoomBy(Out, p); !errors.Is(err, ErrZoomBound) {
		t.Fatalf("expected ErrZoomBound at min, got %v", err)
	}
	if c.Level() != -2 {
		t.Fatalf("level = %d", c.Level())
	}
}

func absInt(v int) int {
	if v < 0 {
		return -v
	}
	return v
}

func within(a, b image.Point, tol int) bool {
	return absInt(a.X-b.X) <= tol && absInt(a.Y-b.Y) <= tol
}

func TestZoomKeepsAnchorStationary(t *testing.T) {
	anchors := []image.Point{{100, 100}, {0, 0}, {317, 45}, {799, 599}}
	for _, p := range anchors {
		c := NewController(nil)
		c.Pan(image.Pt(-13, 27))
		start := c.Transform().ToImage(p)
		prev := start
		for c.Level() < c.Table().Max() {
			if err := c.ZoomBy(In, p); err != nil {
				t.Fatal(err)
			}
			got := c.Transform().ToImage(p)
			if !within(prev, got, 1) || !within(start, got, 1) {
				t.Fatalf("anchor %v drifted at level %d: start %v prev %v now %v", p, c.Level(), start, prev, got)
			}
			prev = got
		}
		for c.Level() > 0 {
			if err := c.ZoomBy(Out, p); err != nil {
				t.Fatal(err)
			}
			got := c.Transform().ToImage(p)
			if !within(start, got, 1) {
				t.Fatalf("anchor %v drifted on the way out at level %d: %v vs %v", p, c.Level(), got, start)
			}
		}
	}
}

func TestZoomOutAnchorWithinLevelTolerance(t *testing.T) {
	c := NewController(nil)
	p := image.Pt(250, 180)
	start := c.Transform().ToImage(p)
	prev := start
	for c.Level() > c.Table().Min() {
		if err := c.ZoomBy(Out, p); err != nil {
			t.Fatal(err)
		}
		got := c.Transform().ToImage(p)
		if !within(prev, got, 1) {
			t.Fatalf("level %d: %v moved more than 1 from %v", c.Level(), got, prev)
		}
		if tol := c.Tolerance(); !within(start, got, tol) {
			t.Fatalf("level %d: %v not within %d of %v", c.Level(), got, tol, start)
		}
		prev = got
	}
	for c.Level() < 0 {
		if err := c.ZoomBy(In, p); err != nil {
			t.Fatal(err)
		}
	}
	if got := c.Transform().ToImage(p); !within(start, got, 1) {
		t.Fatalf("back at level 0: %v vs %v", got, start)
	}
}

func TestZoomStepMovesAnchorAtMostOnePixel(t *testing.T) {
	for x := 0; x < 400; x++ {
		p := image.Pt(x, x/2+3)
		c := NewController(nil)
		prev := c.Transform().ToImage(p)
		step := func(dir Direction) {
			t.Helper()
			if err := c.ZoomBy(dir, p); err != nil {
				t.Fatal(err)
			}
			got := c.Transform().ToImage(p)
			if !within(prev, got, 1) {
				t.Fatalf("anchor %v level %d: %v moved more than 1 from %v", p, c.Level(), got, prev)
			}
			prev = got
		}
		for c.Level() > c.Table().Min() {
			step(Out)
		}
		for c.Level() < c.Table().Max() {
			step(In)
		}
	}
}

func TestRoundTripWithinTolerance(t *testing.T) {
	tbl := DefaultZoomTable()
	dots := []image.Point{{0, 0}, {100, 100}, {799, 599}, {-40, 1200}, {12345, 7}}
	origins := []image.Point{{0, 0}, {37, -112}, {-500, 800}}
	for lvl := tbl.Min(); lvl <= tbl.Max(); lvl++ {
		for _, o := range origins {
			tr := Transform{Scale: tbl.Scale(lvl), Origin: o}
			for _, d := range dots {
				back := tr.ToImage(tr.ToDisplay(d))
				if !within(back, d, tbl.Tolerance(lvl)) {
					t.Fatalf("level %d origin %v: %v -> %v", lvl, o, d, back)
				}
				if lvl >= 0 && !within(back, d, 1) {
					t.Fatalf("level %d origin %v: %v -> %v exceeds 1", lvl, o, d, back)
				}
			}
		}
	}
}

func TestZoomScenarioAtOrigin(t *testing.T) {
	c := NewController(nil)
	p := image.Pt(100, 100)
	if got := c.Transform().ToImage(p); got != p {
		t.Fatalf("ToImage = %v", got)
	}
	if err := c.ZoomBy(In, p); err != nil {
		t.Fatal(err)
	}
	if got := c.Origin(); got != image.Pt(10, 10) {
		t.Fatalf("origin = %v, want (10,10)", got)
	}
	if got := c.Transform().ToImage(p); got != p {
		t.Fatalf("ToImage after zoom = %v", got)
	}
}

func TestResetClearsState(t *testing.T) {
	c := NewController(nil)
	_ = c.ZoomBy(In, image.Pt(5, 5))
	c.Pan(image.Pt(3, 3))
	c.Reset()
	if c.Level() != 0 || c.Origin() != (image.Point{}) {
		t.Fatalf("reset left level %d origin %v", c.Level(), c.Origin())
	}
}

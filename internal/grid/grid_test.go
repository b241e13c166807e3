package grid

import (
	"errors"
	"image"
	"math"
	"path/filepath"
	"testing"
)

func near(a, b float64) bool { return math.Abs(a-b) < 1e-9 }

// angularNear treats 0 and 360 as the same bearing.
func angularNear(a, b float64) bool {
	d := math.Mod(math.Abs(a-b), 360)
	return d < 1e-9 || 360-d < 1e-9
}

func TestDefault(t *testing.T) {
	m := Default(800, 600)
	if m.Center != image.Pt(400, 300) {
		t.Errorf("unexpected center %v", m.Center)
	}
	if m.Radius != 500 {
		t.Errorf("expected half diagonal 500, got %d", m.Radius)
	}
	if m.HasReference() {
		t.Error("default grid should have no reference")
	}
	if err := m.Validate(image.Rect(0, 0, 800, 600)); err != nil {
		t.Errorf("default grid invalid: %v", err)
	}
}

func TestElevationBoundaries(t *testing.T) {
	c := Calculator{Model: Model{Center: image.Pt(0, 0), Radius: 100}}
	cases := []struct {
		p    image.Point
		want float64
	}{
		{image.Pt(0, 0), 92.5},
		{image.Pt(100, 0), 0},
		{image.Pt(0, -200), -92.5},
		{image.Pt(60, 80), 0},
		{image.Pt(0, 50), 46.25},
	}
	for _, tc := range cases {
		if got := c.Elevation(tc.p); !near(got, tc.want) {
			t.Errorf("Elevation(%v) = %v, want %v", tc.p, got, tc.want)
		}
	}
	wide := Calculator{Model: c.Model, FieldOfView: 180}
	if got := wide.Elevation(image.Pt(0, 0)); !near(got, 90) {
		t.Errorf("expected 90 with a 180 degree field, got %v", got)
	}
}

func TestBearing(t *testing.T) {
	m := Model{Center: image.Pt(0, 0), Radius: 100}.WithAzimuth(0)
	c := Calculator{Model: m}
	cases := []struct {
		p    image.Point
		want float64
	}{
		{image.Pt(0, -100), 0},
		{image.Pt(0, -30), 0},
		{image.Pt(100, 0), 90},
		{image.Pt(0, 100), 180},
		{image.Pt(-100, 0), 270},
		{image.Pt(50, -50), 45},
	}
	for _, tc := range cases {
		got, ok := c.Bearing(tc.p)
		if !ok {
			t.Fatal("expected a bearing with a reference set")
		}
		if got < 0 || got >= 360 {
			t.Errorf("Bearing(%v) = %v outside [0,360)", tc.p, got)
		}
		if !angularNear(got, tc.want) {
			t.Errorf("Bearing(%v) = %v, want %v", tc.p, got, tc.want)
		}
	}
}

func TestBearingRotatedReference(t *testing.T) {
	c := Calculator{Model: Model{Center: image.Pt(50, 50), Radius: 40}.WithAzimuth(180)}
	if got, _ := c.Bearing(image.Pt(50, 90)); !angularNear(got, 0) {
		t.Errorf("dot on the ray should be 0, got %v", got)
	}
	if got, _ := c.Bearing(image.Pt(50, 10)); !angularNear(got, 180) {
		t.Errorf("opposite dot should be 180, got %v", got)
	}
	if got, _ := c.Bearing(image.Pt(10, 50)); !angularNear(got, 90) {
		t.Errorf("expected 90, got %v", got)
	}
}

func TestBearingAtCenter(t *testing.T) {
	for _, az := range []float64{0, 45, 180, 300} {
		c := Calculator{Model: Model{Center: image.Pt(20, 30), Radius: 10}.WithAzimuth(az)}
		got, ok := c.Bearing(image.Pt(20, 30))
		if !ok || got != 0 {
			t.Errorf("azimuth %v: bearing at centre = %v, %v; want 0", az, got, ok)
		}
	}
}

func TestAnglesWithoutReference(t *testing.T) {
	c := Calculator{Model: Model{Center: image.Pt(0, 0), Radius: 10}}
	if a := c.Angles(image.Pt(1, 1)); a != nil {
		t.Errorf("expected nil angles, got %+v", a)
	}
	if _, ok := c.Bearing(image.Pt(1, 1)); ok {
		t.Error("expected no bearing")
	}
}

func TestPointReference(t *testing.T) {
	center := image.Pt(100, 100)
	cases := map[image.Point]float64{
		image.Pt(100, 0):   0,
		image.Pt(200, 100): 90,
		image.Pt(100, 150): 180,
		image.Pt(0, 100):   270,
	}
	for p, want := range cases {
		got, err := PointReference(center, p)
		if err != nil {
			t.Fatalf("PointReference(%v): %v", p, err)
		}
		if !near(got, want) {
			t.Errorf("PointReference(%v) = %v, want %v", p, got, want)
		}
	}
	if _, err := PointReference(center, center); !errors.Is(err, ErrInvalidParameters) {
		t.Errorf("expected ErrInvalidParameters, got %v", err)
	}
}

func TestRayEnd(t *testing.T) {
	m := Model{Center: image.Pt(10, 10), Radius: 5}
	if _, ok := m.RayEnd(); ok {
		t.Error("no ray without a reference")
	}
	end, ok := m.WithAzimuth(90).RayEnd()
	if !ok || end != image.Pt(15, 10) {
		t.Errorf("unexpected ray end %v", end)
	}
}

func TestParseForm(t *testing.T) {
	bounds := image.Rect(0, 0, 800, 600)
	m, err := ParseForm(map[string]string{
		FieldCenterX: "400", FieldCenterY: " 300 ", FieldRadius: "250", FieldAzimuth: "12.5",
	}, bounds)
	if err != nil {
		t.Fatalf("ParseForm: %v", err)
	}
	if m.Center != image.Pt(400, 300) || m.Radius != 250 || m.Azimuth == nil || *m.Azimuth != 12.5 {
		t.Errorf("unexpected model %+v", m)
	}

	bad := []map[string]string{
		{FieldCenterX: "abc", FieldCenterY: "1", FieldRadius: "1"},
		{FieldCenterX: "1", FieldCenterY: "1", FieldRadius: "0"},
		{FieldCenterX: "1", FieldCenterY: "1", FieldRadius: "-5"},
		{FieldCenterX: "900", FieldCenterY: "1", FieldRadius: "5"},
		{FieldCenterX: "1", FieldCenterY: "1", FieldRadius: "5", FieldAzimuth: "360"},
		{FieldCenterX: "1", FieldCenterY: "1", FieldRadius: "5", FieldAzimuth: "-1"},
		{FieldCenterX: "1", FieldCenterY: "1", FieldRadius: "5", FieldAzimuth: "north"},
		{FieldCenterX: "1.5", FieldCenterY: "1", FieldRadius: "5"},
	}
	for _, v := range bad {
		if _, err := ParseForm(v, bounds); !errors.Is(err, ErrInvalidParameters) {
			t.Errorf("%v: expected ErrInvalidParameters, got %v", v, err)
		}
	}
}

func TestFormValuesRoundTrip(t *testing.T) {
	bounds := image.Rect(0, 0, 100, 100)
	m := Model{Center: image.Pt(20, 30), Radius: 40}.WithAzimuth(275.25)
	got, err := ParseForm(m.FormValues(), bounds)
	if err != nil {
		t.Fatal(err)
	}
	if got.Center != m.Center || got.Radius != m.Radius || *got.Azimuth != *m.Azimuth {
		t.Errorf("got %+v want %+v", got, m)
	}
}

func TestFileSaveLoad(t *testing.T) {
	dir := t.TempDir()
	path := Path(filepath.Join(dir, "sky.jpg"))
	if filepath.Base(path) != "sky.yaml" {
		t.Fatalf("unexpected path %s", path)
	}
	bounds := image.Rect(0, 0, 100, 100)
	if _, ok, err := Load(path, bounds); ok || err != nil {
		t.Fatalf("missing file: ok=%v err=%v", ok, err)
	}
	m := Model{Center: image.Pt(50, 40), Radius: 30}.WithAzimuth(45)
	if err := Save(path, m); err != nil {
		t.Fatalf("Save: %v", err)
	}
	got, ok, err := Load(path, bounds)
	if err != nil || !ok {
		t.Fatalf("Load: ok=%v err=%v", ok, err)
	}
	if got.Center != m.Center || got.Radius != 30 || got.Azimuth == nil || *got.Azimuth != 45 {
		t.Errorf("unexpected model %+v", got)
	}
	if _, _, err := Load(path, image.Rect(0, 0, 10, 10)); !errors.Is(err, ErrInvalidParameters) {
		t.Errorf("expected out-of-bounds grid to be rejected, got %v", err)
	}
}

package annotation

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func sample() []Dot {
	return []Dot{
		{X: 100, Y: 100},
		{X: 12, Y: -4, Angles: &Angles{Elevation: 45.25, Bearing: 270}},
		{X: 0, Y: 0, Angles: &Angles{Elevation: -3.5, Bearing: 0}},
	}
}

func sameDots(t *testing.T, got, want []Dot) {
	t.Helper()
	if len(got) != len(want) {
		t.Fatalf("expected %d dots, got %d: %v", len(want), len(got), got)
	}
	for i := range want {
		if !got[i].Equal(want[i]) {
			t.Errorf("dot %d: got %v want %v", i, got[i], want[i])
		}
	}
}

func TestMarshalRoundTrip(t *testing.T) {
	data, err := Marshal(sample())
	if err != nil {
		t.Fatalf("Marshal: %v", err)
	}
	if !strings.Contains(string(data), "[100,100]") || !strings.Contains(string(data), "[12,-4,45.25,270]") {
		t.Errorf("unexpected encoding:\n%s", data)
	}
	got, err := Unmarshal(data)
	if err != nil {
		t.Fatalf("Unmarshal: %v", err)
	}
	sameDots(t, got, sample())
}

func TestMarshalKeepsLargeCoordinates(t *testing.T) {
	big := Dot{X: 1<<53 + 1, Y: -(1<<53 + 3), Angles: &Angles{Elevation: 1, Bearing: 2}}
	data, err := Marshal([]Dot{big})
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(data), "[9007199254740993,-9007199254740995,1,2]") {
		t.Errorf("coordinates not written as integers:\n%s", data)
	}
	got, err := Unmarshal(data)
	if err != nil {
		t.Fatalf("Unmarshal: %v", err)
	}
	sameDots(t, got, []Dot{big})
}

func TestMarshalEmpty(t *testing.T) {
	data, err := Marshal(nil)
	if err != nil {
		t.Fatal(err)
	}
	if strings.TrimSpace(string(data)) != "[]" {
		t.Errorf("expected empty array, got %q", data)
	}
}

func TestUnmarshalCorrupt(t *testing.T) {
	cases := map[string]string{
		"syntax":     `[[1,2]`,
		"arity":      `[[1,2,3]]`,
		"fractional": `[[1.5,2]]`,
		"exponent":   `[[1e20,2]]`,
		"overflow":   `[[1,99999999999999999999]]`,
		"quoted":     `[["1",2]]`,
		"null angle": `[[1,2,null,3]]`,
		"object":     `{"x":1}`,
	}
	for name, in := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := Unmarshal([]byte(in))
			if !errors.Is(err, ErrCorrupt) {
				t.Errorf("expected ErrCorrupt, got %v", err)
			}
		})
	}
}

func TestSaveLoad(t *testing.T) {
	dir := t.TempDir()
	path := SidecarPath(filepath.Join(dir, "sky.png"))
	if filepath.Base(path) != "sky.json" {
		t.Fatalf("unexpected sidecar path %s", path)
	}
	dots, _, err := Load(path)
	if err != nil || dots != nil {
		t.Fatalf("missing file should load empty, got %v %v", dots, err)
	}
	written, err := Save(path, sample())
	if err != nil {
		t.Fatalf("Save: %v", err)
	}
	got, data, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	sameDots(t, got, sample())
	if string(data) != string(written) {
		t.Errorf("Load returned %q, Save wrote %q", data, written)
	}

	if err := os.WriteFile(path, []byte("not json"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, _, err := Load(path); !errors.Is(err, ErrCorrupt) {
		t.Errorf("expected ErrCorrupt, got %v", err)
	}
}

func TestDecodeLegacy(t *testing.T) {
	got, err := DecodeLegacy("[(100, 100), (12, -4, 45.25, 270.0), (0, 0, -3.5, 0.0)]\n")
	if err != nil {
		t.Fatalf("DecodeLegacy: %v", err)
	}
	sameDots(t, got, sample())

	if got, err := DecodeLegacy("  "); err != nil || got != nil {
		t.Errorf("blank input should decode to nothing, got %v %v", got, err)
	}
	if _, err := DecodeLegacy("[(1, 2), (3"); !errors.Is(err, ErrCorrupt) {
		t.Errorf("expected ErrCorrupt, got %v", err)
	}
}

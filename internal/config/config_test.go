package config

import (
	"image/color"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestParse(t *testing.T) {
	input := `
save_dir = /tmp/exports
log_file = "/tmp/dotscope.log"

[viewport]
min_zoom = -4
max_zoom = 8
zoom_in_ratio = 1.25

[annotation]
tolerance = 3
dot_radius = 5

[grid]
field_of_view = 180

[notify]
save = true
export = false
copy = true

[colors]
dot = #111111
new_dot: orange
Highlight = #00FF0080
`
	cfg, err := Parse(strings.NewReader(input))
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}

	if cfg.SaveDir != "/tmp/exports" {
		t.Errorf("Expected save_dir '/tmp/exports', got '%s'", cfg.SaveDir)
	}
	if cfg.LogFile != "/tmp/dotscope.log" {
		t.Errorf("Expected unquoted log_file, got '%s'", cfg.LogFile)
	}
	if cfg.Viewport.MinZoom != -4 || cfg.Viewport.MaxZoom != 8 || cfg.Viewport.ZoomInRatio != 1.25 {
		t.Errorf("Unexpected viewport %+v", cfg.Viewport)
	}
	if cfg.Viewport.ZoomOutRatio != 0.9 {
		t.Errorf("Expected default zoom_out_ratio, got %v", cfg.Viewport.ZoomOutRatio)
	}
	if cfg.Annotation.Tolerance != 3 || cfg.Annotation.DotRadius != 5 {
		t.Errorf("Unexpected annotation %+v", cfg.Annotation)
	}
	if cfg.Grid.FieldOfView != 180 {
		t.Errorf("Expected field_of_view 180, got %v", cfg.Grid.FieldOfView)
	}
	if !cfg.Notify.Save || cfg.Notify.Export || !cfg.Notify.Copy {
		t.Errorf("Unexpected notify %+v", cfg.Notify)
	}
	if cfg.Colors.Dot != (color.RGBA{0x11, 0x11, 0x11, 255}) {
		t.Errorf("Unexpected dot color: %+v", cfg.Colors.Dot)
	}
	if cfg.Colors.NewDot != (color.RGBA{255, 165, 0, 255}) {
		t.Errorf("Expected named orange, got %+v", cfg.Colors.NewDot)
	}
	if cfg.Colors.Highlight.A != 0x80 {
		t.Errorf("Expected alpha 0x80, got %+v", cfg.Colors.Highlight)
	}

	table, err := cfg.ZoomTable()
	if err != nil {
		t.Fatalf("ZoomTable: %v", err)
	}
	if table.Min() != -4 || table.Max() != 8 {
		t.Errorf("Unexpected zoom table bounds %d..%d", table.Min(), table.Max())
	}
	if cfg.Style().DotRadius != 5 {
		t.Errorf("Expected dot radius 5 in style")
	}
}

func TestParseErrors(t *testing.T) {
	cases := []string{
		"[notify]\nsave = maybe\n",
		"[viewport]\nmin_zoom = low\n",
		"[annotation]\ndot_radius = 0\n",
		"[grid]\nfield_of_view = -1\n",
		"[colors]\ndot = notacolor\n",
		"[colors]\ndot = #12345\n",
	}
	for _, in := range cases {
		if _, err := Parse(strings.NewReader(in)); err == nil {
			t.Errorf("Expected error for %q", in)
		}
	}
}

func TestZoomTableRejectsBadRatios(t *testing.T) {
	cfg, err := Parse(strings.NewReader("[viewport]\nzoom_out_ratio = 1.5\n"))
	if err != nil {
		t.Fatal(err)
	}
	if _, err := cfg.ZoomTable(); err == nil {
		t.Error("Expected zoom table error")
	}
}

func TestCircular(t *testing.T) {
	input := `save_dir = /home/user/exports

[viewport]
min_zoom = -2
max_zoom = 3

[notify]
save = true
export = true
copy = false

[colors]
grid = #00FF00C8
background = black
`
	cfg, err := Parse(strings.NewReader(input))
	if err != nil {
		t.Fatalf("Initial parse failed: %v", err)
	}

	generated := cfg.String()

	cfg2, err := Parse(strings.NewReader(generated))
	if err != nil {
		t.Fatalf("Circular parse failed: %v", err)
	}

	if cfg.SaveDir != cfg2.SaveDir {
		t.Errorf("SaveDir mismatch: %q vs %q", cfg.SaveDir, cfg2.SaveDir)
	}
	if cfg.Viewport != cfg2.Viewport {
		t.Errorf("Viewport mismatch: %+v vs %+v", cfg.Viewport, cfg2.Viewport)
	}
	if cfg.Notify != cfg2.Notify {
		t.Errorf("Notify mismatch: %+v vs %+v", cfg.Notify, cfg2.Notify)
	}
	if cfg.Colors != cfg2.Colors {
		t.Errorf("Colors mismatch: %+v vs %+v", cfg.Colors, cfg2.Colors)
	}
}

func TestLoaderOverrideAndSave(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "nested", "config.rc")
	cfg := New()
	cfg.SaveDir = dir
	if err := Save(cfg, path); err != nil {
		t.Fatalf("Save: %v", err)
	}
	l := NewLoader("v1.0.0", path)
	if got := l.GetConfigPath(); got != path {
		t.Fatalf("Expected override path, got %q", got)
	}
	loaded, err := l.Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if loaded.SaveDir != dir {
		t.Errorf("Expected save_dir %q, got %q", dir, loaded.SaveDir)
	}

	if err := os.WriteFile(path, []byte("[notify]\nsave = ?\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := l.Load(); err == nil || !strings.Contains(err.Error(), path) {
		t.Errorf("Expected error naming the file, got %v", err)
	}
}

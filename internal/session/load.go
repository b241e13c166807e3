package session

import (
	"errors"
	"fmt"
	"image"
	"image/draw"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"os"

	"github.com/disintegration/imaging"
	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"

	"github.com/example/dotscope/internal/annotation"
	"github.com/example/dotscope/internal/grid"
	"github.com/example/dotscope/internal/tool"
	"github.com/example/dotscope/internal/viewport"
)

// Decode reads an image file.
func Decode(path string) (image.Image, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	img, _, err := image.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("decode %s: %w", path, err)
	}
	return img, nil
}

// Working converts src to the raster dots are placed on. Images with a
// side over MaxSide are shrunk to fit FitWidth x FitHeight.
func Working(src image.Image) *image.RGBA {
	b := src.Bounds()
	if b.Dx() > MaxSide || b.Dy() > MaxSide {
		src = imaging.Fit(src, FitWidth, FitHeight, imaging.Lanczos)
		b = src.Bounds()
	}
	out := image.NewRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
	draw.Draw(out, out.Bounds(), src, b.Min, draw.Src)
	return out
}

// Load opens the image at path with its dot and grid files. If the image
// cannot be read the current document is left untouched. Damaged dot or
// grid files are reported and replaced by empty state.
func (s *Session) Load(path string) error {
	src, err := Decode(path)
	if err != nil {
		return err
	}
	s.Open(src, path)
	return nil
}

// Open installs src as the document for path. View, dots, grid and tool
// all start fresh.
func (s *Session) Open(src image.Image, path string) {
	img := Working(src)
	store := annotation.NewStore()
	var lastWrite []byte
	if path != "" {
		sidecar := annotation.SidecarPath(path)
		dots, data, err := annotation.Load(sidecar)
		switch {
		case errors.Is(err, annotation.ErrCorrupt):
			s.warn("annotation file is damaged, starting with no dots", err)
		case err != nil:
			s.warn("cannot read annotation file", err)
		default:
			store.Replace(dots)
			lastWrite = data
		}
	}

	g := grid.Default(img.Bounds().Dx(), img.Bounds().Dy())
	gridSaved := false
	if path != "" {
		m, ok, err := grid.Load(grid.Path(path), img.Bounds())
		switch {
		case err != nil:
			s.warn("ignoring grid file", err)
		case ok:
			g, gridSaved = m, true
		}
	}

	s.path = path
	s.img = img
	s.orig = src.Bounds().Size()
	s.view = viewport.NewController(s.settings.Zoom)
	s.store = store
	s.grid = g
	s.gridSaved = gridSaved
	s.dirty = false
	s.lastWrite = lastWrite
	s.machine.SetMode(tool.Move)
	if s.size == (image.Point{}) {
		s.size = img.Bounds().Size()
	}
	s.report(fmt.Sprintf("opened %s", path), "size", img.Bounds().Size(), "original", s.orig, "dots", store.Len())
	s.Redraw()
}

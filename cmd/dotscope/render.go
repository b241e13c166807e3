package main

import (
	"fmt"
	"image"
	"image/png"
	"os"

	"github.com/example/dotscope/internal/viewport"
)

type renderCmd struct {
	command
	file   string
	output string
	zoom   int
	anchor string
	pan    string
	width  int
	height int
	grid   bool
}

func parseRenderCmd(args []string, r *root) (*renderCmd, error) {
	c := &renderCmd{command: command{root: r, fs: newFlagSet(r, "render")}}
	c.fs.Usage = usageFunc(c)
	c.fs.StringVar(&c.output, "output", "", "PNG file to write")
	c.fs.IntVar(&c.zoom, "zoom", 0, "zoom level; positive zooms in, negative zooms out")
	c.fs.StringVar(&c.anchor, "anchor", "", "display point x,y kept fixed while zooming (default centre)")
	c.fs.StringVar(&c.pan, "pan", "", "pan dx,dy in display pixels applied after zooming")
	c.fs.IntVar(&c.width, "width", 0, "view width (default image width)")
	c.fs.IntVar(&c.height, "height", 0, "view height (default image height)")
	c.fs.BoolVar(&c.grid, "grid", false, "draw the reference grid")
	if err := parseFlags(c.fs, c, args); err != nil {
		return nil, err
	}
	file, err := c.imageArg(c)
	if err != nil {
		return nil, err
	}
	c.file = file
	if c.output == "" {
		return nil, &UsageError{of: c}
	}
	if c.width < 0 || c.height < 0 {
		return nil, fmt.Errorf("view size must not be negative")
	}
	return c, nil
}

func (c *renderCmd) Run() error {
	s, err := c.newSession(c.file)
	if err != nil {
		return err
	}
	size := s.Size()
	if c.width > 0 {
		size.X = c.width
	}
	if c.height > 0 {
		size.Y = c.height
	}
	s.Resize(size)

	anchor := image.Pt(size.X/2, size.Y/2)
	if c.anchor != "" {
		if anchor, err = parsePoint(c.anchor); err != nil {
			return fmt.Errorf("-anchor: %w", err)
		}
	}
	dir, steps := viewport.In, c.zoom
	if steps < 0 {
		dir, steps = viewport.Out, -steps
	}
	for i := 0; i < steps; i++ {
		if err := s.Zoom(dir, anchor); err != nil {
			return fmt.Errorf("zoom level %d: %w", c.zoom, err)
		}
	}
	if c.pan != "" {
		d, err := parsePoint(c.pan)
		if err != nil {
			return fmt.Errorf("-pan: %w", err)
		}
		s.Pan(d)
	}
	if c.grid {
		s.ToggleGrid()
	}
	s.Redraw()

	f, err := os.Create(c.output)
	if err != nil {
		return err
	}
	if err := png.Encode(f, s.Frame()); err != nil {
		f.Close()
		return fmt.Errorf("failed to encode %s: %w", c.output, err)
	}
	if err := f.Close(); err != nil {
		return err
	}
	fmt.Fprintf(c.stderr, "rendered %s at %.0f%% to %s\n", c.file, s.Viewport().Scale()*100, c.output)
	return nil
}

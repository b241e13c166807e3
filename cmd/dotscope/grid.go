package main

import (
	"flag"
	"fmt"
	"image"
	"strconv"
	"strings"

	"github.com/example/dotscope/internal/grid"
)

type gridCmd struct {
	command
	file      string
	cx, cy    int
	radius    int
	azimuth   float64
	reference string
	set       map[string]bool
}

func parseGridCmd(args []string, r *root) (*gridCmd, error) {
	c := &gridCmd{command: command{root: r, fs: newFlagSet(r, "grid")}}
	c.fs.Usage = usageFunc(c)
	c.fs.IntVar(&c.cx, "cx", 0, "grid centre x")
	c.fs.IntVar(&c.cy, "cy", 0, "grid centre y")
	c.fs.IntVar(&c.radius, "radius", 0, "grid radius in pixels")
	c.fs.Float64Var(&c.azimuth, "azimuth", 0, "reference direction in degrees, clockwise from up")
	c.fs.StringVar(&c.reference, "reference", "", "reference direction as the point x,y the ray passes through")
	if err := parseFlags(c.fs, c, args); err != nil {
		return nil, err
	}
	file, err := c.imageArg(c)
	if err != nil {
		return nil, err
	}
	c.file = file
	c.set = map[string]bool{}
	c.fs.Visit(func(f *flag.Flag) { c.set[f.Name] = true })
	if c.set["azimuth"] && c.set["reference"] {
		return nil, fmt.Errorf("-azimuth and -reference cannot be combined")
	}
	return c, nil
}

func (c *gridCmd) Run() error {
	s, err := c.newSession(c.file)
	if err != nil {
		return err
	}
	if len(c.set) == 0 {
		fmt.Fprintln(c.stdout, describeGrid(s.Grid()))
		return nil
	}

	m := s.Grid()
	if c.set["cx"] {
		m.Center.X = c.cx
	}
	if c.set["cy"] {
		m.Center.Y = c.cy
	}
	if c.set["radius"] {
		m.Radius = c.radius
	}
	if c.set["azimuth"] {
		m = m.WithAzimuth(c.azimuth)
	}
	if c.set["reference"] {
		p, err := parsePoint(c.reference)
		if err != nil {
			return fmt.Errorf("-reference: %w", err)
		}
		a, err := grid.PointReference(m.Center, p)
		if err != nil {
			return err
		}
		m = m.WithAzimuth(a)
	}
	if err := s.SetGrid(m); err != nil {
		return err
	}
	path, err := s.Save()
	if err != nil {
		return err
	}
	c.notifier.Save(path, c.file)
	fmt.Fprintln(c.stdout, describeGrid(s.Grid()))
	fmt.Fprintf(c.stderr, "saved %d dots to %s\n", len(s.Dots()), path)
	return nil
}

func describeGrid(m grid.Model) string {
	az := "none"
	if m.Azimuth != nil {
		az = strconv.FormatFloat(*m.Azimuth, 'f', -1, 64)
	}
	return fmt.Sprintf("center %d,%d radius %d azimuth %s", m.Center.X, m.Center.Y, m.Radius, az)
}

// parsePoint reads "x,y".
func parsePoint(s string) (image.Point, error) {
	xs, ys, ok := strings.Cut(s, ",")
	if !ok {
		return image.Point{}, fmt.Errorf("%q is not x,y", s)
	}
	x, err := strconv.Atoi(strings.TrimSpace(xs))
	if err != nil {
		return image.Point{}, fmt.Errorf("%q is not x,y", s)
	}
	y, err := strconv.Atoi(strings.TrimSpace(ys))
	if err != nil {
		return image.Point{}, fmt.Errorf("%q is not x,y", s)
	}
	return image.Pt(x, y), nil
}

package config

import (
	"fmt"
	"image/color"
	"strings"

	"github.com/example/dotscope/internal/grid"
	"github.com/example/dotscope/internal/render"
	"github.com/example/dotscope/internal/viewport"
)

// Viewport holds the zoom bounds and step ratios.
type Viewport struct {
	MinZoom      int
	MaxZoom      int
	ZoomInRatio  float64
	ZoomOutRatio float64
}

// Annotation holds dot hit-testing and drawing settings.
type Annotation struct {
	Tolerance int
	DotRadius int
}

// Grid holds the lens parameters of the reference grid.
type Grid struct {
	FieldOfView float64
}

// Notify holds notification settings.
type Notify struct {
	Save   bool
	Export bool
	Copy   bool
}

// Colors holds the overlay colours.
type Colors struct {
	Dot        color.RGBA
	NewDot     color.RGBA
	Highlight  color.RGBA
	Line       color.RGBA
	Marquee    color.RGBA
	Grid       color.RGBA
	Background color.RGBA
}

// Config holds the application configuration.
type Config struct {
	LogFile    string
	SaveDir    string
	Viewport   Viewport
	Annotation Annotation
	Grid       Grid
	Notify     Notify
	Colors     Colors
}

// New creates a new Config with defaults.
func New() *Config {
	st := render.DefaultStyle()
	return &Config{
		Viewport: Viewport{
			MinZoom:      viewport.DefaultMinZoom,
			MaxZoom:      viewport.DefaultMaxZoom,
			ZoomInRatio:  viewport.DefaultZoomInRatio,
			ZoomOutRatio: viewport.DefaultZoomOutRatio,
		},
		Annotation: Annotation{Tolerance: 2, DotRadius: st.DotRadius},
		Grid:       Grid{FieldOfView: grid.DefaultFieldOfView},
		Colors: Colors{
			Dot:        st.Dot,
			NewDot:     st.NewDot,
			Highlight:  st.Highlight,
			Line:       st.Line,
			Marquee:    st.Marquee,
			Grid:       st.Grid,
			Background: st.Background,
		},
	}
}

// ZoomTable builds the zoom table described by the viewport section.
func (c *Config) ZoomTable() (*viewport.ZoomTable, error) {
	v := c.Viewport
	t, err := viewport.NewZoomTable(v.MinZoom, v.MaxZoom, v.ZoomInRatio, v.ZoomOutRatio)
	if err != nil {
		return nil, fmt.Errorf("[viewport]: %w", err)
	}
	return t, nil
}

// Style returns the overlay style described by the colors and annotation
// sections.
func (c *Config) Style() render.Style {
	return render.Style{
		Dot:        c.Colors.Dot,
		NewDot:     c.Colors.NewDot,
		Highlight:  c.Colors.Highlight,
		Line:       c.Colors.Line,
		Marquee:    c.Colors.Marquee,
		Grid:       c.Colors.Grid,
		Background: c.Colors.Background,
		DotRadius:  c.Annotation.DotRadius,
	}
}

// String implements fmt.Stringer and returns the configuration in RC format.
func (c *Config) String() string {
	var sb strings.Builder

	if c.LogFile != "" {
		fmt.Fprintf(&sb, "log_file = %s\n", c.LogFile)
	}
	if c.SaveDir != "" {
		fmt.Fprintf(&sb, "save_dir = %s\n", c.SaveDir)
	}
	sb.WriteString("\n")

	sb.WriteString("[viewport]\n")
	fmt.Fprintf(&sb, "min_zoom = %d\n", c.Viewport.MinZoom)
	fmt.Fprintf(&sb, "max_zoom = %d\n", c.Viewport.MaxZoom)
	fmt.Fprintf(&sb, "zoom_in_ratio = %v\n", c.Viewport.ZoomInRatio)
	fmt.Fprintf(&sb, "zoom_out_ratio = %v\n", c.Viewport.ZoomOutRatio)
	sb.WriteString("\n")

	sb.WriteString("[annotation]\n")
	fmt.Fprintf(&sb, "tolerance = %d\n", c.Annotation.Tolerance)
	fmt.Fprintf(&sb, "dot_radius = %d\n", c.Annotation.DotRadius)
	sb.WriteString("\n")

	sb.WriteString("[grid]\n")
	fmt.Fprintf(&sb, "field_of_view = %v\n", c.Grid.FieldOfView)
	sb.WriteString("\n")

	sb.WriteString("[notify]\n")
	fmt.Fprintf(&sb, "save = %v\n", c.Notify.Save)
	fmt.Fprintf(&sb, "export = %v\n", c.Notify.Export)
	fmt.Fprintf(&sb, "copy = %v\n", c.Notify.Copy)
	sb.WriteString("\n")

	sb.WriteString("[colors]\n")
	for _, f := range colorFields(&c.Colors) {
		fmt.Fprintf(&sb, "%s = %s\n", f.key, toHex(*f.col))
	}

	return sb.String()
}

type colorField struct {
	key string
	col *color.RGBA
}

func colorFields(c *Colors) []colorField {
	return []colorField{
		{"dot", &c.Dot},
		{"new_dot", &c.NewDot},
		{"highlight", &c.Highlight},
		{"line", &c.Line},
		{"marquee", &c.Marquee},
		{"grid", &c.Grid},
		{"background", &c.Background},
	}
}

func toHex(c color.RGBA) string {
	if c.A == 255 {
		return fmt.Sprintf("#%02X%02X%02X", c.R, c.G, c.B)
	}
	return fmt.Sprintf("#%02X%02X%02X%02X", c.R, c.G, c.B, c.A)
}

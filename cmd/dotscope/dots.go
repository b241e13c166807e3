package main

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/example/dotscope/internal/annotation"
)

var (
	borderColor = lipgloss.Color("#243141")
	accentColor = lipgloss.Color("#7C3AED")
	dimColor    = lipgloss.AdaptiveColor{Light: "#6B7280", Dark: "#6B7280"}

	boxStyle    = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(borderColor).Padding(0, 1)
	headerStyle = lipgloss.NewStyle().Foreground(accentColor).Bold(true)
	cellStyle   = lipgloss.NewStyle().PaddingLeft(2).Align(lipgloss.Right)
	dimStyle    = lipgloss.NewStyle().Foreground(dimColor)
)

type dotsCmd struct {
	command
	file   string
	format string
}

func parseDotsCmd(args []string, r *root) (*dotsCmd, error) {
	c := &dotsCmd{command: command{root: r, fs: newFlagSet(r, "dots")}}
	c.fs.Usage = usageFunc(c)
	c.fs.StringVar(&c.format, "format", "table", "output format: table, csv or json")
	if err := parseFlags(c.fs, c, args); err != nil {
		return nil, err
	}
	file, err := c.imageArg(c)
	if err != nil {
		return nil, err
	}
	c.file = file
	return c, nil
}

func (c *dotsCmd) Run() error {
	path := annotation.SidecarPath(c.file)
	dots, _, err := annotation.Load(path)
	if err != nil {
		return fmt.Errorf("failed to read %s: %w", path, err)
	}
	switch strings.ToLower(c.format) {
	case "table":
		fmt.Fprintln(c.stdout, formatDots(path, dots))
	case "csv":
		return annotation.WriteTable(c.stdout, dots)
	case "json":
		data, err := annotation.Marshal(dots)
		if err != nil {
			return err
		}
		_, err = c.stdout.Write(data)
		return err
	default:
		return fmt.Errorf("unknown format %q", c.format)
	}
	return nil
}

// formatDots renders dots as a boxed table with right-aligned columns.
func formatDots(title string, dots []annotation.Dot) string {
	if len(dots) == 0 {
		return boxStyle.Render(headerStyle.Render(title) + "\n" + dimStyle.Render("no dots"))
	}
	rows := [][]string{{"#", "X", "Y", "Horizon", "Azimuth"}}
	for i, d := range dots {
		row := []string{strconv.Itoa(i + 1), strconv.Itoa(d.X), strconv.Itoa(d.Y), "-", "-"}
		if d.Angles != nil {
			row[3] = strconv.FormatFloat(d.Angles.Elevation, 'f', 2, 64)
			row[4] = strconv.FormatFloat(d.Angles.Bearing, 'f', 2, 64)
		}
		rows = append(rows, row)
	}
	widths := make([]int, len(rows[0]))
	for _, row := range rows {
		for i, cell := range row {
			widths[i] = max(widths[i], lipgloss.Width(cell))
		}
	}

	lines := make([]string, 0, len(rows)+1)
	lines = append(lines, headerStyle.Render(title))
	for r, row := range rows {
		cells := make([]string, len(row))
		for i, cell := range row {
			st := cellStyle.Width(widths[i] + 2)
			switch {
			case r == 0:
				st = st.Inherit(headerStyle)
			case cell == "-":
				st = st.Inherit(dimStyle)
			}
			cells[i] = st.Render(cell)
		}
		lines = append(lines, lipgloss.JoinHorizontal(lipgloss.Top, cells...))
	}
	summary := fmt.Sprintf("%d dots", len(dots))
	lines = append(lines, dimStyle.Render(summary))
	return boxStyle.Render(lipgloss.JoinVertical(lipgloss.Left, lines...))
}

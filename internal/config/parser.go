package config

import (
	"bufio"
	"fmt"
	"image/color"
	"io"
	"strconv"
	"strings"

	"golang.org/x/image/colornames"
)

// Parse reads configuration from an io.Reader.
func Parse(r io.Reader) (*Config, error) {
	cfg := New()
	scanner := bufio.NewScanner(r)

	var section string
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") || strings.HasPrefix(line, "//") {
			continue
		}

		if strings.HasPrefix(line, "[") && strings.HasSuffix(line, "]") {
			section = strings.ToLower(strings.TrimSpace(line[1 : len(line)-1]))
			continue
		}

		// Key = Value or Key: Value
		var parts []string
		if strings.Contains(line, "=") {
			parts = strings.SplitN(line, "=", 2)
		} else if strings.Contains(line, ":") {
			parts = strings.SplitN(line, ":", 2)
		} else {
			continue
		}

		key := strings.ToLower(strings.TrimSpace(parts[0]))
		value := strings.TrimSpace(parts[1])
		if strings.HasPrefix(value, "\"") && strings.HasSuffix(value, "\"") && len(value) >= 2 {
			value = value[1 : len(value)-1]
		}

		var err error
		switch section {
		case "":
			err = setRootField(cfg, key, value)
		case "viewport":
			err = setViewportField(&cfg.Viewport, key, value)
		case "annotation":
			err = setAnnotationField(&cfg.Annotation, key, value)
		case "grid":
			err = setGridField(&cfg.Grid, key, value)
		case "notify":
			err = setNotifyField(&cfg.Notify, key, value)
		case "colors", "colours":
			err = setColorField(&cfg.Colors, key, value)
		}
		if err != nil {
			name := "root section"
			if section != "" {
				name = "section [" + section + "]"
			}
			return nil, fmt.Errorf("line %d: error in %s: %w", lineNo, name, err)
		}
	}

	return cfg, scanner.Err()
}

func setRootField(cfg *Config, key, value string) error {
	switch key {
	case "log_file":
		cfg.LogFile = value
	case "save_dir":
		cfg.SaveDir = value
	}
	return nil
}

func setViewportField(v *Viewport, key, value string) error {
	var err error
	switch key {
	case "min_zoom":
		v.MinZoom, err = parseInt(key, value)
	case "max_zoom":
		v.MaxZoom, err = parseInt(key, value)
	case "zoom_in_ratio":
		v.ZoomInRatio, err = parseFloat(key, value)
	case "zoom_out_ratio":
		v.ZoomOutRatio, err = parseFloat(key, value)
	}
	return err
}

func setAnnotationField(a *Annotation, key, value string) error {
	var err error
	switch key {
	case "tolerance":
		a.Tolerance, err = parseInt(key, value)
		if err == nil && a.Tolerance < 0 {
			err = fmt.Errorf("tolerance must not be negative")
		}
	case "dot_radius":
		a.DotRadius, err = parseInt(key, value)
		if err == nil && a.DotRadius <= 0 {
			err = fmt.Errorf("dot_radius must be positive")
		}
	}
	return err
}

func setGridField(g *Grid, key, value string) error {
	var err error
	switch key {
	case "field_of_view":
		g.FieldOfView, err = parseFloat(key, value)
		if err == nil && g.FieldOfView <= 0 {
			err = fmt.Errorf("field_of_view must be positive")
		}
	}
	return err
}

func setNotifyField(n *Notify, key, value string) error {
	b, err := strconv.ParseBool(value)
	if err != nil {
		return fmt.Errorf("invalid boolean for key %s: %w", key, err)
	}
	switch key {
	case "save":
		n.Save = b
	case "export":
		n.Export = b
	case "copy":
		n.Copy = b
	}
	return nil
}

func setColorField(c *Colors, key, value string) error {
	for _, f := range colorFields(c) {
		if f.key != key {
			continue
		}
		col, err := ParseColor(value)
		if err != nil {
			return fmt.Errorf("invalid color for key %s: %w", key, err)
		}
		*f.col = col
	}
	return nil
}

func parseInt(key, value string) (int, error) {
	n, err := strconv.Atoi(value)
	if err != nil {
		return 0, fmt.Errorf("invalid integer for key %s: %w", key, err)
	}
	return n, nil
}

func parseFloat(key, value string) (float64, error) {
	f, err := strconv.ParseFloat(value, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid number for key %s: %w", key, err)
	}
	return f, nil
}

// ParseColor accepts #RRGGBB, #RRGGBBAA or an SVG colour name.
func ParseColor(s string) (color.RGBA, error) {
	if !strings.HasPrefix(s, "#") {
		if col, ok := colornames.Map[strings.ToLower(s)]; ok {
			return col, nil
		}
		return color.RGBA{}, fmt.Errorf("unknown color name %q", s)
	}
	hex := strings.TrimPrefix(s, "#")
	switch len(hex) {
	case 6:
		val, err := strconv.ParseUint(hex, 16, 32)
		if err != nil {
			return color.RGBA{}, err
		}
		return color.RGBA{
			R: uint8(val >> 16),
			G: uint8((val >> 8) & 0xFF),
			B: uint8(val & 0xFF),
			A: 255,
		}, nil
	case 8:
		val, err := strconv.ParseUint(hex, 16, 32)
		if err != nil {
			return color.RGBA{}, err
		}
		return color.RGBA{
			R: uint8(val >> 24),
			G: uint8((val >> 16) & 0xFF),
			B: uint8((val >> 8) & 0xFF),
			A: uint8(val & 0xFF),
		}, nil
	}
	return color.RGBA{}, fmt.Errorf("invalid hex length")
}

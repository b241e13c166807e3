package annotation

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
)

// ErrCorrupt marks sidecar content that cannot be decoded into dots.
var ErrCorrupt = errors.New("corrupt annotation data")

// SidecarExt is the extension of the canonical annotation file stored next
// to an image.
const SidecarExt = ".json"

// SidecarPath returns the annotation file path for imagePath: same
// directory and base name, SidecarExt extension.
func SidecarPath(imagePath string) string {
	return withExt(imagePath, SidecarExt)
}

func withExt(path, ext string) string {
	return strings.TrimSuffix(path, filepath.Ext(path)) + ext
}

// Marshal encodes dots as a JSON array of tuples: [x,y] for plain dots and
// [x,y,elevation,bearing] for dots with angles. Coordinates are written as
// integers.
func Marshal(dots []Dot) ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteString("[")
	for i, d := range dots {
		if i > 0 {
			buf.WriteString(",")
		}
		buf.WriteString("\n  [")
		buf.WriteString(strconv.Itoa(d.X))
		buf.WriteString(",")
		buf.WriteString(strconv.Itoa(d.Y))
		if d.Angles != nil {
			for _, v := range []float64{d.Angles.Elevation, d.Angles.Bearing} {
				b, err := json.Marshal(v)
				if err != nil {
					return nil, fmt.Errorf("encode dot %d: %w", i, err)
				}
				buf.WriteString(",")
				buf.Write(b)
			}
		}
		buf.WriteString("]")
	}
	if len(dots) > 0 {
		buf.WriteString("\n")
	}
	buf.WriteString("]\n")
	return buf.Bytes(), nil
}

// Unmarshal decodes the JSON tuple form written by Marshal. Any structural
// problem yields an error wrapping ErrCorrupt.
func Unmarshal(data []byte) ([]Dot, error) {
	var rows [][]json.RawMessage
	if err := json.Unmarshal(data, &rows); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrCorrupt, err)
	}
	dots := make([]Dot, 0, len(rows))
	for i, r := range rows {
		d, err := fromRow(r)
		if err != nil {
			return nil, fmt.Errorf("%w: record %d: %v", ErrCorrupt, i, err)
		}
		dots = append(dots, d)
	}
	return dots, nil
}

func fromRow(r []json.RawMessage) (Dot, error) {
	if len(r) != 2 && len(r) != 4 {
		return Dot{}, fmt.Errorf("has %d fields", len(r))
	}
	x, errX := strconv.Atoi(string(r[0]))
	y, errY := strconv.Atoi(string(r[1]))
	if errX != nil || errY != nil {
		return Dot{}, fmt.Errorf("coordinates %s,%s are not integers", r[0], r[1])
	}
	d := Dot{X: x, Y: y}
	if len(r) == 4 {
		e, errE := strconv.ParseFloat(string(r[2]), 64)
		b, errB := strconv.ParseFloat(string(r[3]), 64)
		if errE != nil || errB != nil {
			return Dot{}, fmt.Errorf("angles %s,%s are not numbers", r[2], r[3])
		}
		d.Angles = &Angles{Elevation: e, Bearing: b}
	}
	return d, nil
}

// Load reads the sidecar at path and returns its dots along with the raw
// file content. A missing file yields no dots and no error.
func Load(path string) ([]Dot, []byte, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, nil, nil
		}
		return nil, nil, err
	}
	dots, err := Unmarshal(data)
	if err != nil {
		return nil, nil, fmt.Errorf("%s: %w", path, err)
	}
	return dots, data, nil
}

// Save writes dots to path, replacing the file atomically. It returns the
// bytes written.
func Save(path string, dots []Dot) ([]byte, error) {
	data, err := Marshal(dots)
	if err != nil {
		return nil, err
	}
	tmp, err := os.CreateTemp(filepath.Dir(path), "."+filepath.Base(path)+".*")
	if err != nil {
		return nil, err
	}
	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		_ = os.Remove(tmp.Name())
		return nil, err
	}
	if err := tmp.Close(); err != nil {
		_ = os.Remove(tmp.Name())
		return nil, err
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		_ = os.Remove(tmp.Name())
		return nil, err
	}
	return data, nil
}

package grid

import (
	"errors"
	"fmt"
	"image"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// FileExt is the extension of the grid file kept next to an image.
const FileExt = ".yaml"

// Path returns the grid file path for imagePath.
func Path(imagePath string) string {
	return strings.TrimSuffix(imagePath, filepath.Ext(imagePath)) + FileExt
}

type pointDoc struct {
	X int `yaml:"x"`
	Y int `yaml:"y"`
}

type fileDoc struct {
	Center  pointDoc `yaml:"center"`
	Radius  int      `yaml:"radius"`
	Azimuth *float64 `yaml:"azimuth,omitempty"`
}

// Marshal encodes m as YAML.
func Marshal(m Model) ([]byte, error) {
	return yaml.Marshal(fileDoc{
		Center:  pointDoc{X: m.Center.X, Y: m.Center.Y},
		Radius:  m.Radius,
		Azimuth: m.Azimuth,
	})
}

// Unmarshal decodes YAML written by Marshal.
func Unmarshal(data []byte) (Model, error) {
	var doc fileDoc
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return Model{}, fmt.Errorf("%w: %v", ErrInvalidParameters, err)
	}
	return Model{
		Center:  image.Pt(doc.Center.X, doc.Center.Y),
		Radius:  doc.Radius,
		Azimuth: doc.Azimuth,
	}, nil
}

// Load reads the grid file at path and validates it against bounds. ok is
// false when the file does not exist.
func Load(path string, bounds image.Rectangle) (m Model, ok bool, err error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return Model{}, false, nil
		}
		return Model{}, false, err
	}
	m, err = Unmarshal(data)
	if err != nil {
		return Model{}, false, fmt.Errorf("%s: %w", path, err)
	}
	if err := m.Validate(bounds); err != nil {
		return Model{}, false, fmt.Errorf("%s: %w", path, err)
	}
	return m, true, nil
}

// Save writes m to path.
func Save(path string, m Model) error {
	data, err := Marshal(m)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o644)
}

package session

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/example/dotscope/internal/annotation"
	"github.com/example/dotscope/internal/grid"
)

// SidecarPath returns the dot file of the open document.
func (s *Session) SidecarPath() string {
	if s.path == "" {
		return ""
	}
	return annotation.SidecarPath(s.path)
}

// Save writes the dots, and the grid once one has been set, next to the
// image. It returns the dot file path.
func (s *Session) Save() (string, error) {
	if s.img == nil || s.path == "" {
		return "", ErrNoImage
	}
	path := s.SidecarPath()
	data, err := annotation.Save(path, s.store.All())
	if err != nil {
		return "", fmt.Errorf("save dots: %w", err)
	}
	s.lastWrite = data
	s.dirty = false
	if s.gridSaved {
		if err := grid.Save(grid.Path(s.path), s.grid); err != nil {
			return path, fmt.Errorf("save grid: %w", err)
		}
	}
	s.report("saved "+path, "dots", s.store.Len())
	return path, nil
}

// TablePath returns where Export writes.
func (s *Session) TablePath() string {
	p := annotation.TablePath(s.path)
	if s.settings.ExportDir != "" {
		p = filepath.Join(s.settings.ExportDir, filepath.Base(p))
	}
	return p
}

// Table returns the dots as a table export.
func (s *Session) Table() (string, error) {
	if s.img == nil {
		return "", ErrNoImage
	}
	return annotation.FormatTable(s.store.All())
}

// Export writes the table export and returns its path.
func (s *Session) Export() (string, error) {
	if s.img == nil || s.path == "" {
		return "", ErrNoImage
	}
	text, err := s.Table()
	if err != nil {
		return "", err
	}
	path := s.TablePath()
	if err := os.WriteFile(path, []byte(text), 0o644); err != nil {
		return "", fmt.Errorf("export: %w", err)
	}
	s.report("exported "+path, "dots", s.store.Len())
	return path, nil
}

// ReloadSidecar re-reads the dot file after it changed on disk. Content
// identical to the last save is ignored. A damaged file leaves the
// current dots in place. Unsaved dots are only replaced once the prompter
// confirms. It reports whether the dots were replaced.
func (s *Session) ReloadSidecar() (bool, error) {
	if s.img == nil || s.path == "" {
		return false, nil
	}
	data, err := os.ReadFile(s.SidecarPath())
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return false, nil
		}
		return false, err
	}
	if bytes.Equal(data, s.lastWrite) {
		return false, nil
	}
	dots, err := annotation.Unmarshal(data)
	if err != nil {
		s.warn("ignoring changed annotation file", err)
		return false, err
	}
	if s.dirty && (s.prompter == nil || !s.prompter.Confirm("Dots changed on disk",
		"The dot file was changed by another program. Discard unsaved dots and load it?")) {
		s.lastWrite = data
		s.report("kept unsaved dots; the dot file changed on disk", "dots", s.store.Len())
		return false, nil
	}
	s.store.Replace(dots)
	s.lastWrite = data
	s.dirty = false
	s.report("reloaded dots", "dots", len(dots))
	s.Redraw()
	return true, nil
}

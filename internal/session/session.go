// Package session owns the state of the open document: working raster,
// viewport, dots, grid and active tool. All methods run on the UI event
// goroutine; none of them lock.
package session

import (
	"errors"
	"image"
	"log/slog"

	"github.com/example/dotscope/internal/annotation"
	"github.com/example/dotscope/internal/grid"
	"github.com/example/dotscope/internal/prompt"
	"github.com/example/dotscope/internal/render"
	"github.com/example/dotscope/internal/tool"
	"github.com/example/dotscope/internal/viewport"
)

// ErrNoImage is returned by operations that need a loaded document.
var ErrNoImage = errors.New("no image loaded")

const (
	// MaxSide is the largest width or height kept at full resolution.
	MaxSide = 1000
	// FitWidth and FitHeight bound the working raster of larger images.
	FitWidth  = 800
	FitHeight = 600
)

// Settings are the per-process parameters a document is opened with.
type Settings struct {
	Zoom        *viewport.ZoomTable
	Tolerance   int
	FieldOfView float64
	Style       render.Style
	// ExportDir receives table exports; empty means next to the image.
	ExportDir string
}

// DefaultSettings returns the built-in settings.
func DefaultSettings() Settings {
	return Settings{
		Zoom:        viewport.DefaultZoomTable(),
		Tolerance:   2,
		FieldOfView: grid.DefaultFieldOfView,
		Style:       render.DefaultStyle(),
	}
}

// Session is the open document.
type Session struct {
	settings Settings
	prompter prompt.Prompter
	publish  func(*image.RGBA)
	status   func(string)

	path  string
	img   *image.RGBA
	orig  image.Point
	view  *viewport.Controller
	store *annotation.Store
	grid  grid.Model

	gridSaved bool
	showGrid  bool
	dirty     bool
	lastWrite []byte

	size    image.Point
	canvas  *render.Canvas
	machine *tool.Machine
	frame   *image.RGBA
}

// Option configures a Session.
type Option func(*Session)

// WithSettings replaces the default settings.
func WithSettings(st Settings) Option { return func(s *Session) { s.settings = st } }

// WithPrompter sets the dialog provider used for confirmations and forms.
func WithPrompter(p prompt.Prompter) Option { return func(s *Session) { s.prompter = p } }

// WithPublish sets a callback receiving every newly composed frame.
func WithPublish(fn func(*image.RGBA)) Option { return func(s *Session) { s.publish = fn } }

// WithStatus sets a callback receiving user-facing status messages.
func WithStatus(fn func(string)) Option { return func(s *Session) { s.status = fn } }

// New returns a session with no document loaded.
func New(opts ...Option) *Session {
	s := &Session{settings: DefaultSettings()}
	for _, o := range opts {
		o(s)
	}
	if s.settings.Zoom == nil {
		s.settings.Zoom = viewport.DefaultZoomTable()
	}
	if s.settings.FieldOfView == 0 {
		s.settings.FieldOfView = grid.DefaultFieldOfView
	}
	s.view = viewport.NewController(s.settings.Zoom)
	s.store = annotation.NewStore()
	s.canvas = render.NewCanvas(s.settings.Style)
	s.machine = tool.NewMachine(s, s.canvas, s.prompter)
	return s
}

// SetPrompter replaces the dialog provider.
func (s *Session) SetPrompter(p prompt.Prompter) {
	s.prompter = p
	s.machine.SetPrompter(p)
}

func (s *Session) report(msg string, args ...any) {
	slog.Info(msg, args...)
	if s.status != nil {
		s.status(msg)
	}
}

func (s *Session) warn(msg string, err error) {
	slog.Warn(msg, "path", s.path, "error", err)
	if s.status != nil {
		s.status(msg + ": " + err.Error())
	}
}

// Loaded reports whether a document is open.
func (s *Session) Loaded() bool { return s.img != nil }

// Path returns the image path of the open document.
func (s *Session) Path() string { return s.path }

// Image returns the working raster.
func (s *Session) Image() *image.RGBA { return s.img }

// OriginalSize returns the size of the image file before any downsizing.
func (s *Session) OriginalSize() image.Point { return s.orig }

// Viewport returns the zoom and pan state.
func (s *Session) Viewport() *viewport.Controller { return s.view }

// Dots returns a copy of the stored dots.
func (s *Session) Dots() []annotation.Dot { return s.store.All() }

// Grid returns the reference grid.
func (s *Session) Grid() grid.Model { return s.grid }

// Dirty reports unsaved dot changes.
func (s *Session) Dirty() bool { return s.dirty }

// Tool returns the active tool.
func (s *Session) Tool() tool.Mode { return s.machine.Mode() }

// SetTool switches the active tool.
func (s *Session) SetTool(m tool.Mode) {
	s.machine.SetMode(m)
	slog.Debug("tool", "mode", m)
}

// Frame returns the last published frame.
func (s *Session) Frame() *image.RGBA { return s.frame }

// Canvas returns the display surface.
func (s *Session) Canvas() *render.Canvas { return s.canvas }

func (s *Session) calculator() grid.Calculator {
	return grid.Calculator{Model: s.grid, FieldOfView: s.settings.FieldOfView}
}

func (s *Session) tolerance() int {
	if t := s.view.Tolerance(); t > s.settings.Tolerance {
		return t
	}
	return s.settings.Tolerance
}

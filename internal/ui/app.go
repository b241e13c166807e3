// Package ui is the desktop window around a session: it turns shiny window
// events into session calls, draws the status bar and asks modal questions
// inside the window.
package ui

import (
	"context"
	"errors"
	"fmt"
	"image"
	"image/draw"
	"log/slog"
	"path/filepath"
	"time"

	"golang.org/x/exp/shiny/driver"
	"golang.org/x/exp/shiny/screen"
	"golang.org/x/mobile/event/key"
	"golang.org/x/mobile/event/lifecycle"
	"golang.org/x/mobile/event/mouse"
	"golang.org/x/mobile/event/paint"
	"golang.org/x/mobile/event/size"

	"github.com/example/dotscope/internal/annotation"
	"github.com/example/dotscope/internal/clipboard"
	"github.com/example/dotscope/internal/notify"
	"github.com/example/dotscope/internal/session"
	"github.com/example/dotscope/internal/tool"
	"github.com/example/dotscope/internal/viewport"
	"github.com/example/dotscope/internal/watch"
)

// resizeEvent applies the latest window size. Several size events queued
// before it collapse into one redraw.
type resizeEvent struct{}

// reloadEvent reports that a watched dot file changed on disk.
type reloadEvent struct{ path string }

// expireEvent repaints once a status message times out.
type expireEvent struct{}

// App is the window shell. All fields are owned by the event goroutine.
type App struct {
	settings session.Settings
	notifier *notify.Notifier
	watcher  *watch.Watcher
	tool     tool.Mode // applied on the first Open
	opened   bool
	showGrid bool
	onClose  func()
	now      func() time.Time

	sess *session.Session
	scr  screen.Screen
	win  screen.Window

	size          image.Point
	resizeQueued  bool
	paintQueued   bool
	pointer       image.Point
	status        statusBar
	dialog        *dialog
	pickReference bool
	pendingReload bool
	closing       bool
}

// Option configures an App.
type Option func(*App)

// WithSettings sets the session settings.
func WithSettings(st session.Settings) Option { return func(a *App) { a.settings = st } }

// WithNotifier sets the notifier used after save, export and copy.
func WithNotifier(n *notify.Notifier) Option { return func(a *App) { a.notifier = n } }

// WithWatcher reloads the dot file when it changes on disk.
func WithWatcher(w *watch.Watcher) Option { return func(a *App) { a.watcher = w } }

// WithTool selects the tool active on start.
func WithTool(m tool.Mode) Option { return func(a *App) { a.tool = m } }

// WithGrid shows the grid overlay on start.
func WithGrid(show bool) Option { return func(a *App) { a.showGrid = show } }

// WithOnClose registers a callback run when the window closes.
func WithOnClose(fn func()) Option { return func(a *App) { a.onClose = fn } }

// New returns a window shell with an empty session.
func New(opts ...Option) *App {
	a := &App{settings: session.DefaultSettings(), now: time.Now}
	for _, o := range opts {
		o(a)
	}
	a.sess = session.New(
		session.WithSettings(a.settings),
		session.WithPrompter(a),
		session.WithPublish(func(*image.RGBA) { a.invalidate() }),
		session.WithStatus(a.setStatus),
	)
	a.sess.SetTool(a.tool)
	return a
}

// Session returns the document the window edits.
func (a *App) Session() *session.Session { return a.sess }

// Open loads the image at path and starts watching its dot file.
func (a *App) Open(path string) error {
	if err := a.sess.Load(path); err != nil {
		return fmt.Errorf("open %s: %w", path, err)
	}
	if !a.opened {
		a.opened = true
		a.sess.SetTool(a.tool)
	}
	if a.showGrid && !a.sess.GridVisible() {
		a.sess.ToggleGrid()
	}
	if a.watcher != nil {
		if err := a.watcher.Set(a.sess.SidecarPath()); err != nil {
			slog.Warn("watch dot file", "path", a.sess.SidecarPath(), "error", err)
		}
	}
	return nil
}

// Run executes the UI loop using shiny's driver.
func (a *App) Run() { driver.Main(a.Main) }

// Main runs the event loop on s until the window is closed.
func (a *App) Main(s screen.Screen) {
	a.scr = s
	width, height := 800, 600
	if img := a.sess.Image(); img != nil {
		width, height = img.Bounds().Dx(), img.Bounds().Dy()
	}
	title := "dotscope"
	if p := a.sess.Path(); p != "" {
		title = filepath.Base(p) + " - dotscope"
	}
	w, err := s.NewWindow(&screen.NewWindowOptions{Width: width, Height: height + statusHeight, Title: title})
	if err != nil {
		slog.Error("new window", "error", err)
		return
	}
	a.win = w
	defer w.Release()
	defer a.notifyClose()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	if a.watcher != nil {
		go a.watcher.Run(ctx, func(path string) { w.Send(reloadEvent{path: path}) })
	}

	for !a.closing {
		a.handle(w.NextEvent())
		if a.pendingReload && a.dialog == nil {
			a.reload()
		}
	}
}

func (a *App) notifyClose() {
	if a.sess.Dirty() {
		slog.Warn("closing with unsaved dots", "path", a.sess.Path(), "dots", len(a.sess.Dots()))
	}
	if a.onClose != nil {
		a.onClose()
	}
}

func (a *App) handle(ev any) {
	switch e := ev.(type) {
	case lifecycle.Event:
		if e.To == lifecycle.StageDead {
			a.closing = true
		}
	case size.Event:
		a.resize(e)
	case resizeEvent:
		a.applyResize()
	case paint.Event:
		a.paint()
	case expireEvent:
		a.invalidate()
	case reloadEvent:
		slog.Debug("dot file changed", "path", e.path)
		a.pendingReload = true
	case mouse.Event:
		a.mouse(e)
	case key.Event:
		if act, ok := actionFor(e); ok {
			a.Do(act)
		}
	case error:
		slog.Error("window", "error", e)
	}
}

// invalidate queues one repaint.
func (a *App) invalidate() {
	if a.win == nil || a.paintQueued {
		return
	}
	a.paintQueued = true
	a.win.Send(paint.Event{})
}

func (a *App) setStatus(msg string) {
	a.status.set(msg, a.now())
	if a.win != nil {
		w := a.win
		time.AfterFunc(messageTimeout, func() { w.Send(expireEvent{}) })
	}
	a.invalidate()
}

func (a *App) bounds() image.Rectangle { return image.Rectangle{Max: a.size} }

// viewSize is the window area left for the image.
func (a *App) viewSize() image.Point {
	v := image.Pt(a.size.X, a.size.Y-statusHeight)
	if v.X < 1 {
		v.X = 1
	}
	if v.Y < 1 {
		v.Y = 1
	}
	return v
}

func (a *App) resize(e size.Event) {
	a.size = image.Pt(e.WidthPx, e.HeightPx)
	if !a.resizeQueued && a.win != nil {
		a.resizeQueued = true
		a.win.Send(resizeEvent{})
	}
}

func (a *App) applyResize() {
	a.resizeQueued = false
	a.sess.Resize(a.viewSize())
	a.invalidate()
}

func (a *App) reload() {
	a.pendingReload = false
	changed, err := a.sess.ReloadSidecar()
	if err != nil && !errors.Is(err, annotation.ErrCorrupt) {
		slog.Warn("reload dot file", "path", a.sess.SidecarPath(), "error", err)
		return
	}
	if changed {
		slog.Info("dot file reloaded", "path", a.sess.SidecarPath(), "dots", len(a.sess.Dots()))
	}
}

func (a *App) paint() {
	a.paintQueued = false
	if a.win == nil || a.size.X <= 0 || a.size.Y <= 0 {
		return
	}
	b, err := a.scr.NewBuffer(a.size)
	if err != nil {
		slog.Error("new buffer", "error", err)
		return
	}
	defer b.Release()
	a.compose(b.RGBA())
	a.win.Upload(image.Point{}, b, b.Bounds())
	a.win.Publish()
}

// compose draws the session frame, the status bar and any open dialog.
func (a *App) compose(dst *image.RGBA) {
	bg := image.NewUniform(a.settings.Style.Background)
	draw.Draw(dst, dst.Bounds(), bg, image.Point{}, draw.Src)
	if f := a.sess.Frame(); f != nil {
		draw.Draw(dst, f.Bounds(), f, f.Bounds().Min, draw.Src)
	}
	view := a.viewSize()
	bar := image.Rect(0, view.Y, dst.Bounds().Dx(), dst.Bounds().Dy())
	a.status.draw(dst, bar, a.summary(), a.readout(), a.now())
	if a.dialog != nil {
		a.dialog.draw(dst)
	}
}

func (a *App) summary() string {
	s := a.sess.Status()
	if a.pickReference {
		s += " | click the reference direction"
	}
	return s
}

func (a *App) readout() string {
	if !a.pointer.In(image.Rectangle{Max: a.viewSize()}) {
		return ""
	}
	return a.sess.Describe(a.pointer)
}

func (a *App) mouse(e mouse.Event) {
	p := image.Pt(int(e.X), int(e.Y))
	if e.Button.IsWheel() {
		if e.Direction == mouse.DirRelease {
			return
		}
		dir := viewport.In
		switch e.Button {
		case mouse.ButtonWheelUp:
		case mouse.ButtonWheelDown:
			dir = viewport.Out
		default:
			return
		}
		if err := a.sess.Zoom(dir, p); err != nil {
			slog.Debug("wheel zoom", "error", err)
		}
		return
	}

	view := image.Rectangle{Max: a.viewSize()}
	switch e.Direction {
	case mouse.DirPress:
		if !p.In(view) {
			return
		}
		switch e.Button {
		case mouse.ButtonLeft:
			if a.pickReference {
				a.pickReference = false
				if err := a.sess.SetReferencePoint(p); err != nil {
					a.setStatus("reference not set: " + err.Error())
				}
				return
			}
			a.sess.Press(p)
		case mouse.ButtonRight:
			if a.sess.RemoveAt(p) {
				a.setStatus("dot removed")
			}
		}
	case mouse.DirRelease:
		if e.Button == mouse.ButtonLeft && a.sess.Dragging() {
			a.sess.Release(clampPoint(p, view))
		}
	case mouse.DirNone:
		a.pointer = p
		if a.sess.Dragging() {
			a.sess.Drag(clampPoint(p, view))
		}
		a.invalidate()
	}
}

func clampPoint(p image.Point, r image.Rectangle) image.Point {
	if r.Empty() {
		return p
	}
	p.X = min(max(p.X, r.Min.X), r.Max.X-1)
	p.Y = min(max(p.Y, r.Min.Y), r.Max.Y-1)
	return p
}

// Do runs a window command.
func (a *App) Do(act Action) {
	switch act {
	case ActionMove:
		a.setTool(tool.Move)
	case ActionDot:
		a.setTool(tool.Dot)
	case ActionLine:
		a.setTool(tool.Line)
	case ActionSelect:
		a.setTool(tool.Select)
	case ActionZoomIn:
		a.zoom(viewport.In)
	case ActionZoomOut:
		a.zoom(viewport.Out)
	case ActionResetView:
		a.sess.ResetView()
	case ActionToggleGrid:
		if a.sess.ToggleGrid() {
			a.setStatus("grid shown")
		} else {
			a.setStatus("grid hidden")
		}
	case ActionEditGrid:
		if err := a.sess.EditGrid(); errors.Is(err, session.ErrNoImage) {
			a.setStatus(err.Error())
		}
	case ActionReference:
		if !a.sess.Loaded() {
			a.setStatus(session.ErrNoImage.Error())
			return
		}
		a.pickReference = true
		a.invalidate()
	case ActionSave:
		a.save()
	case ActionExport:
		a.export()
	case ActionCopyTable:
		a.copyTable()
	case ActionCopyView:
		a.copyView()
	case ActionPanLeft:
		a.pan(image.Pt(panStep, 0))
	case ActionPanRight:
		a.pan(image.Pt(-panStep, 0))
	case ActionPanUp:
		a.pan(image.Pt(0, panStep))
	case ActionPanDown:
		a.pan(image.Pt(0, -panStep))
	case ActionCancel:
		a.pickReference = false
		a.status.clear()
		a.invalidate()
	case ActionQuit:
		if a.sess.Dirty() && !a.Confirm("Unsaved dots", "Quit without saving?") {
			return
		}
		a.closing = true
	default:
		slog.Warn("unknown action", "action", act)
	}
}

func (a *App) setTool(m tool.Mode) {
	a.sess.SetTool(m)
	a.pickReference = false
	a.invalidate()
}

func (a *App) zoom(dir viewport.Direction) {
	if err := a.sess.ZoomCenter(dir); err != nil {
		slog.Debug("zoom", "error", err)
	}
}

func (a *App) pan(delta image.Point) {
	if !a.sess.Loaded() {
		return
	}
	a.sess.Pan(delta)
	a.sess.Redraw()
}

func (a *App) save() {
	path, err := a.sess.Save()
	if err != nil {
		slog.Error("save", "error", err)
		a.setStatus("save failed: " + err.Error())
		return
	}
	a.notifier.Save(path, a.sess.Path())
}

func (a *App) export() {
	path, err := a.sess.Export()
	if err != nil {
		slog.Error("export", "error", err)
		a.setStatus("export failed: " + err.Error())
		return
	}
	a.notifier.Export(path)
}

func (a *App) copyTable() {
	text, err := a.sess.Table()
	if err != nil {
		a.setStatus(err.Error())
		return
	}
	if err := clipboard.WriteText(text); err != nil {
		slog.Error("copy table", "error", err)
		a.setStatus("copy failed: " + err.Error())
		return
	}
	a.setStatus(fmt.Sprintf("copied %d dots", len(a.sess.Dots())))
	a.notifier.Copy("dot table", nil)
}

func (a *App) copyView() {
	frame := a.sess.Frame()
	if frame == nil || !a.sess.Loaded() {
		a.setStatus(session.ErrNoImage.Error())
		return
	}
	if err := clipboard.WriteImage(frame); err != nil {
		slog.Error("copy view", "error", err)
		a.setStatus("copy failed: " + err.Error())
		return
	}
	a.setStatus("copied view")
	a.notifier.Copy("view", frame)
}

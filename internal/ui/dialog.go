package ui

import (
	"image"
	"image/color"
	"image/draw"
	"strings"

	"golang.org/x/mobile/event/key"
	"golang.org/x/mobile/event/lifecycle"
	"golang.org/x/mobile/event/mouse"
	"golang.org/x/mobile/event/paint"
	"golang.org/x/mobile/event/size"

	"github.com/example/dotscope/internal/prompt"
	"github.com/example/dotscope/internal/render"
)

var (
	dialogBackground = color.RGBA{245, 245, 245, 255}
	dialogText       = color.RGBA{20, 20, 20, 255}
	dialogHint       = color.RGBA{110, 110, 110, 255}
	dialogField      = color.RGBA{255, 255, 255, 255}
	dialogFocus      = color.RGBA{40, 110, 220, 255}
	dialogDim        = color.RGBA{0, 0, 0, 110}
)

const (
	dialogPad   = 12
	dialogWidth = 360
)

// dialog is the state of an in-window modal: either a yes/no question or
// a form with one text input per field.
type dialog struct {
	title   string
	message string
	fields  []prompt.Field
	values  []string
	focus   int
}

func confirmDialog(title, message string) *dialog {
	return &dialog{title: title, message: message}
}

func formDialog(s prompt.Schema) *dialog {
	d := &dialog{title: s.Title, fields: s.Fields, values: make([]string, len(s.Fields))}
	for i, f := range s.Fields {
		d.values[i] = f.Default
	}
	return d
}

func (d *dialog) isForm() bool { return len(d.fields) > 0 }

// result returns the entered values keyed by field name.
func (d *dialog) result() prompt.Result {
	r := make(prompt.Result, len(d.fields))
	for i, f := range d.fields {
		r[f.Name] = d.values[i]
	}
	return r
}

// key applies a key press. done is true once the dialog is closed; ok
// tells whether it was accepted.
func (d *dialog) key(e key.Event) (done, ok bool) {
	if e.Direction == key.DirRelease {
		return false, false
	}
	switch e.Code {
	case key.CodeEscape:
		return true, false
	case key.CodeReturnEnter, key.CodeKeypadEnter:
		return true, true
	}
	if !d.isForm() {
		switch e.Rune {
		case 'y', 'Y':
			return true, true
		case 'n', 'N':
			return true, false
		}
		return false, false
	}
	switch e.Code {
	case key.CodeTab, key.CodeDownArrow:
		if e.Modifiers&key.ModShift != 0 {
			d.focus = (d.focus + len(d.fields) - 1) % len(d.fields)
		} else {
			d.focus = (d.focus + 1) % len(d.fields)
		}
		return false, false
	case key.CodeUpArrow:
		d.focus = (d.focus + len(d.fields) - 1) % len(d.fields)
		return false, false
	case key.CodeDeleteBackspace:
		v := []rune(d.values[d.focus])
		if len(v) > 0 {
			d.values[d.focus] = string(v[:len(v)-1])
		}
		return false, false
	}
	if e.Rune >= ' ' && e.Modifiers&(key.ModControl|key.ModMeta) == 0 {
		d.values[d.focus] += string(e.Rune)
	}
	return false, false
}

func (d *dialog) lines() []string {
	if !d.isForm() {
		return strings.Split(d.message, "\n")
	}
	out := make([]string, len(d.fields))
	for i, f := range d.fields {
		out[i] = f.Label
	}
	return out
}

func (d *dialog) hint() string {
	if d.isForm() {
		return "Enter: apply   Tab: next field   Esc: cancel"
	}
	return "Y / Enter: yes   N / Esc: no"
}

// rect returns the panel rectangle centred in bounds.
func (d *dialog) rect(bounds image.Rectangle) image.Rectangle {
	_, lh := render.MeasureText("Ag")
	rows := 2 + len(d.lines())
	if d.isForm() {
		rows = 2 + len(d.fields)
	}
	h := dialogPad*2 + rows*(lh+dialogPad)
	w := dialogWidth
	if tw, _ := render.MeasureText(d.title); tw+2*dialogPad > w {
		w = tw + 2*dialogPad
	}
	for _, l := range d.lines() {
		if lw, _ := render.MeasureText(l); lw+2*dialogPad > w && !d.isForm() {
			w = lw + 2*dialogPad
		}
	}
	c := image.Pt((bounds.Min.X+bounds.Max.X)/2, (bounds.Min.Y+bounds.Max.Y)/2)
	return image.Rect(c.X-w/2, c.Y-h/2, c.X-w/2+w, c.Y-h/2+h)
}

// draw renders the dialog over dst, dimming what is underneath.
func (d *dialog) draw(dst *image.RGBA) {
	b := dst.Bounds()
	draw.Draw(dst, b, image.NewUniform(dialogDim), image.Point{}, draw.Over)
	r := d.rect(b)
	render.DropShadow(dst, r, image.Pt(4, 6), 8, 0.45)
	render.Fill(dst, r, dialogBackground)

	_, lh := render.MeasureText("Ag")
	step := lh + dialogPad
	y := r.Min.Y + dialogPad
	render.DrawText(dst, image.Pt(r.Min.X+dialogPad, y), d.title, dialogText)
	y += step

	if d.isForm() {
		labelW := 0
		for _, f := range d.fields {
			if w, _ := render.MeasureText(f.Label); w > labelW {
				labelW = w
			}
		}
		x := r.Min.X + dialogPad + labelW + dialogPad
		for i, f := range d.fields {
			render.DrawText(dst, image.Pt(r.Min.X+dialogPad, y), f.Label, dialogText)
			box := image.Rect(x, y-3, r.Max.X-dialogPad, y+lh+3)
			render.Fill(dst, box, dialogField)
			border := dialogHint
			text := d.values[i]
			if i == d.focus {
				border = dialogFocus
				text += "|"
			}
			render.DrawRect(dst, box, border, 1)
			render.DrawText(dst, image.Pt(box.Min.X+4, y), text, dialogText)
			y += step
		}
	} else {
		for _, l := range d.lines() {
			render.DrawText(dst, image.Pt(r.Min.X+dialogPad, y), l, dialogText)
			y += step
		}
	}
	render.DrawText(dst, image.Pt(r.Min.X+dialogPad, y), d.hint(), dialogHint)
}

// Confirm implements prompt.Prompter.
func (a *App) Confirm(title, message string) bool {
	return a.runDialog(confirmDialog(title, message))
}

// Ask implements prompt.Prompter.
func (a *App) Ask(s prompt.Schema) (prompt.Result, bool) {
	d := formDialog(s)
	if !a.runDialog(d) {
		return nil, false
	}
	return d.result(), true
}

var _ prompt.Prompter = (*App)(nil)

// runDialog shows d and pumps window events until it is closed. It runs
// on the event goroutine, so the document cannot change underneath it.
func (a *App) runDialog(d *dialog) bool {
	if a.win == nil {
		return false
	}
	a.dialog = d
	defer func() {
		a.dialog = nil
		a.win.Send(paint.Event{})
	}()
	a.win.Send(paint.Event{})
	for {
		switch e := a.win.NextEvent().(type) {
		case lifecycle.Event:
			if e.To == lifecycle.StageDead {
				a.closing = true
				return false
			}
		case size.Event:
			a.resize(e)
		case resizeEvent:
			a.applyResize()
		case paint.Event:
			a.paint()
		case key.Event:
			if done, ok := d.key(e); done {
				return ok
			}
			a.win.Send(paint.Event{})
		case mouse.Event:
			if e.Direction == mouse.DirPress && e.Button == mouse.ButtonLeft {
				if !image.Pt(int(e.X), int(e.Y)).In(d.rect(a.bounds())) {
					return false
				}
			}
		case expireEvent:
			a.win.Send(paint.Event{})
		case reloadEvent:
			a.pendingReload = true
		}
	}
}

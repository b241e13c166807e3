package ui

import (
	"image"
	"image/color"
	"time"

	"github.com/example/dotscope/internal/render"
)

// statusHeight is the height of the bar under the view.
const statusHeight = 24

// messageTimeout is how long a status message stays before the bar falls
// back to the view summary.
const messageTimeout = 4 * time.Second

var (
	statusBackground = color.RGBA{230, 230, 230, 255}
	statusText       = color.RGBA{30, 30, 30, 255}
	statusMessage    = color.RGBA{170, 40, 20, 255}
)

// statusBar holds the transient message shown in the bar.
type statusBar struct {
	message string
	until   time.Time
}

// set shows msg until now+messageTimeout.
func (b *statusBar) set(msg string, now time.Time) {
	b.message = msg
	b.until = now.Add(messageTimeout)
}

// current returns the message if it has not expired.
func (b *statusBar) current(now time.Time) string {
	if b.message == "" || !now.Before(b.until) {
		return ""
	}
	return b.message
}

// clear drops the message.
func (b *statusBar) clear() { b.message, b.until = "", time.Time{} }

// draw renders the bar into r of dst. left is the summary or message,
// right the pointer readout.
func (b *statusBar) draw(dst *image.RGBA, r image.Rectangle, summary, readout string, now time.Time) {
	render.Fill(dst, r, statusBackground)
	render.DrawLine(dst, r.Min, image.Pt(r.Max.X-1, r.Min.Y), statusText, 1)
	_, lh := render.MeasureText("Ag")
	y := r.Min.Y + (r.Dy()-lh)/2

	left, col := summary, statusText
	if msg := b.current(now); msg != "" {
		left, col = msg, statusMessage
	}
	render.DrawText(dst, image.Pt(r.Min.X+6, y), left, col)
	if readout != "" {
		w, _ := render.MeasureText(readout)
		render.DrawText(dst, image.Pt(r.Max.X-w-6, y), readout, statusText)
	}
}

package render

import (
	"image"
	"image/color"
	"log/slog"
	"sync"

	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/font/opentype"
	"golang.org/x/image/math/fixed"
)

// TextSize is the point size of status and dialog text.
const TextSize = 14

var (
	faceOnce sync.Once
	textFace font.Face
)

// Face returns the UI text face. It falls back to the fixed 7x13 face if
// the embedded font cannot be parsed.
func Face() font.Face {
	faceOnce.Do(func() {
		textFace = basicfont.Face7x13
		f, err := opentype.Parse(goregular.TTF)
		if err != nil {
			slog.Warn("parse font", "error", err)
			return
		}
		face, err := opentype.NewFace(f, &opentype.FaceOptions{Size: TextSize, DPI: 72, Hinting: font.HintingFull})
		if err != nil {
			slog.Warn("font face", "error", err)
			return
		}
		textFace = face
	})
	return textFace
}

// MeasureText returns the width and line height of text in Face.
func MeasureText(text string) (width, height int) {
	face := Face()
	d := &font.Drawer{Face: face}
	m := face.Metrics()
	return d.MeasureString(text).Ceil(), m.Ascent.Ceil() + m.Descent.Ceil()
}

// DrawText renders text with its top-left corner at pt.
func DrawText(img *image.RGBA, pt image.Point, text string, col color.Color) {
	face := Face()
	d := &font.Drawer{
		Dst:  img,
		Src:  image.NewUniform(col),
		Face: face,
		Dot:  fixed.P(pt.X, pt.Y+face.Metrics().Ascent.Ceil()),
	}
	d.DrawString(text)
}

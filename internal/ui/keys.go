package ui

import (
	"unicode"

	"golang.org/x/mobile/event/key"
)

// Action names a window command bound to a key.
type Action string

const (
	ActionMove       Action = "move"
	ActionDot        Action = "dot"
	ActionLine       Action = "line"
	ActionSelect     Action = "select"
	ActionZoomIn     Action = "zoom-in"
	ActionZoomOut    Action = "zoom-out"
	ActionResetView  Action = "reset-view"
	ActionToggleGrid Action = "toggle-grid"
	ActionEditGrid   Action = "edit-grid"
	ActionReference  Action = "pick-reference"
	ActionSave       Action = "save"
	ActionExport     Action = "export"
	ActionCopyTable  Action = "copy-table"
	ActionCopyView   Action = "copy-view"
	ActionPanLeft    Action = "pan-left"
	ActionPanRight   Action = "pan-right"
	ActionPanUp      Action = "pan-up"
	ActionPanDown    Action = "pan-down"
	ActionCancel     Action = "cancel"
	ActionQuit       Action = "quit"
)

// KeyShortcut identifies a key press. Rune is lower-cased; Code is used
// for keys without a rune and for chords with Control.
type KeyShortcut struct {
	Rune      rune
	Code      key.Code
	Modifiers key.Modifiers
}

var runeActions = map[rune]Action{
	'm': ActionMove,
	'd': ActionDot,
	'l': ActionLine,
	's': ActionSelect,
	'+': ActionZoomIn,
	'=': ActionZoomIn,
	'-': ActionZoomOut,
	'0': ActionResetView,
	'g': ActionToggleGrid,
	'e': ActionEditGrid,
	'r': ActionReference,
	'q': ActionQuit,
}

var chordActions = map[KeyShortcut]Action{
	{Code: key.CodeS, Modifiers: key.ModControl}:                ActionSave,
	{Code: key.CodeE, Modifiers: key.ModControl}:                ActionExport,
	{Code: key.CodeC, Modifiers: key.ModControl}:                ActionCopyTable,
	{Code: key.CodeC, Modifiers: key.ModControl | key.ModShift}: ActionCopyView,
	{Code: key.CodeQ, Modifiers: key.ModControl}:                ActionQuit,
}

var codeActions = map[key.Code]Action{
	key.CodeLeftArrow:         ActionPanLeft,
	key.CodeRightArrow:        ActionPanRight,
	key.CodeUpArrow:           ActionPanUp,
	key.CodeDownArrow:         ActionPanDown,
	key.CodeKeypadPlusSign:    ActionZoomIn,
	key.CodeKeypadHyphenMinus: ActionZoomOut,
	key.CodeEscape:            ActionCancel,
}

// actionFor maps a key press to its command.
func actionFor(e key.Event) (Action, bool) {
	if e.Direction == key.DirRelease {
		return "", false
	}
	mods := e.Modifiers & (key.ModControl | key.ModShift | key.ModAlt | key.ModMeta)
	if mods&key.ModControl != 0 {
		a, ok := chordActions[KeyShortcut{Code: e.Code, Modifiers: mods}]
		return a, ok
	}
	if a, ok := codeActions[e.Code]; ok {
		return a, true
	}
	if e.Rune > 0 && mods&(key.ModAlt|key.ModMeta) == 0 {
		a, ok := runeActions[unicode.ToLower(e.Rune)]
		return a, ok
	}
	return "", false
}

// panStep is how far the arrow keys move the view, in display pixels.
const panStep = 20

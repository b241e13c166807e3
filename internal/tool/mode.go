// Package tool turns pointer presses, drags and releases into viewport,
// annotation and overlay operations according to the active tool.
package tool

import (
	"fmt"
	"strings"
)

// Mode is the active pointer tool.
type Mode int

const (
	Move Mode = iota
	Dot
	Line
	Select
)

var modeNames = [...]string{"move", "dot", "line", "select"}

func (m Mode) String() string {
	if m < 0 || int(m) >= len(modeNames) {
		return fmt.Sprintf("Mode(%d)", int(m))
	}
	return modeNames[m]
}

// Modes lists every tool in menu order.
func Modes() []Mode { return []Mode{Move, Dot, Line, Select} }

// ParseMode accepts a tool name, case-insensitively.
func ParseMode(s string) (Mode, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	for i, n := range modeNames {
		if n == s {
			return Mode(i), nil
		}
	}
	return Move, fmt.Errorf("unknown tool %q", s)
}

// needsImage reports whether pointer dispatch is ignored with no image.
func (m Mode) needsImage() bool { return m != Move }

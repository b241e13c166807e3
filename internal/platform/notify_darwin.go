//go:build darwin

package platform

import (
	"os/exec"
	"strings"
)

// appleScriptQuote quotes s as an AppleScript string literal.
func appleScriptQuote(s string) string {
	r := strings.NewReplacer(`\`, `\\`, `"`, `\"`)
	return `"` + r.Replace(s) + `"`
}

// Notify posts to Notification Center through osascript. Icons are not
// supported by "display notification".
func Notify(title, body string, opts Options) error {
	script := "display notification " + appleScriptQuote(body) +
		" with title " + appleScriptQuote(title) +
		" subtitle " + appleScriptQuote("dotscope")
	return exec.Command("osascript", "-e", script).Run()
}

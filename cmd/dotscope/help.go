package main

import (
	"bytes"
	"embed"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"sync"
	"text/template"
)

//go:embed templates/*.txt
var helpFS embed.FS

var (
	helpOnce sync.Once
	helpTmpl *template.Template
)

func parseHelpTemplates() {
	helpTmpl = template.Must(template.New("").Funcs(map[string]any{
		"flags": func(fs *flag.FlagSet) []flagInfo {
			result := []flagInfo{}
			if fs == nil {
				return result
			}
			fs.VisitAll(func(f *flag.Flag) {
				result = append(result, flagInfo{f.Name, f.DefValue, f.Usage})
			})
			return result
		},
	}).ParseFS(helpFS, "templates/*.txt"))
}

type flagInfo struct {
	Name     string
	DefValue string
	Usage    string
}

type HelpData interface {
	Program() string
	Template() string
	FlagSet() *flag.FlagSet
}

type UsageError struct {
	of HelpData
}

func (e *UsageError) Error() string {
	help, err := e.renderHelp()
	if err != nil {
		return err.Error()
	}
	return help
}

func (e *UsageError) renderHelp() (string, error) {
	helpOnce.Do(parseHelpTemplates)
	var buf bytes.Buffer
	err := helpTmpl.ExecuteTemplate(&buf, e.of.Template(), e.of)
	if err != nil {
		slog.Error("render help template", "template", e.of.Template(), "error", err)
		return "", err
	}
	return buf.String(), nil
}

// usageFunc prints the rendered help of h to its flag set's output.
func usageFunc(h HelpData) func() {
	return func() {
		var out io.Writer = io.Discard
		if fs := h.FlagSet(); fs != nil {
			out = fs.Output()
		}
		fmt.Fprintln(out, (&UsageError{of: h}).Error())
	}
}

// newFlagSet returns a flag set for the named subcommand that reports
// errors instead of exiting and keeps its help quiet; callers turn
// flag.ErrHelp into a UsageError.
func newFlagSet(r *root, name string) *flag.FlagSet {
	fs := flag.NewFlagSet(r.subcommand(name), flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	return fs
}

// parseFlags parses args into fs, mapping -h to the command's help.
func parseFlags(fs *flag.FlagSet, h HelpData, args []string) error {
	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return &UsageError{of: h}
		}
		return fmt.Errorf("%s: %w", fs.Name(), err)
	}
	return nil
}

func (r *root) Template() string {
	return "root.txt"
}

func (c *viewCmd) Template() string {
	return "view.txt"
}

func (c *dotsCmd) Template() string {
	return "dots.txt"
}

func (c *exportCmd) Template() string {
	return "export.txt"
}

func (c *migrateCmd) Template() string {
	return "migrate.txt"
}

func (c *gridCmd) Template() string {
	return "grid.txt"
}

func (c *renderCmd) Template() string {
	return "render.txt"
}

func (c *configCmd) Template() string {
	return "config.txt"
}

// command is the part shared by every subcommand.
type command struct {
	*root
	fs *flag.FlagSet
}

func (c command) Program() string {
	return c.fs.Name()
}

func (c command) FlagSet() *flag.FlagSet {
	return c.fs
}

// imageArg returns the single image argument.
func (c command) imageArg(h HelpData) (string, error) {
	if c.fs.NArg() != 1 {
		return "", &UsageError{of: h}
	}
	return c.fs.Arg(0), nil
}

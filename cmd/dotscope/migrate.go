package main

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/example/dotscope/internal/annotation"
	"github.com/example/dotscope/internal/clipboard"
)

// readClipboardFn is replaced in tests.
var readClipboardFn = clipboard.ReadText

type migrateCmd struct {
	command
	file     string
	input    string
	from     string
	fromClip bool
	force    bool
	dryRun   bool
}

func parseMigrateCmd(args []string, r *root) (*migrateCmd, error) {
	c := &migrateCmd{command: command{root: r, fs: newFlagSet(r, "migrate")}}
	c.fs.Usage = usageFunc(c)
	c.fs.StringVar(&c.input, "input", "", "file holding the dots to convert")
	c.fs.StringVar(&c.from, "from", "auto", "input format: auto, legacy or table")
	c.fs.BoolVar(&c.fromClip, "from-clipboard", false, "read the dots from the clipboard")
	c.fs.BoolVar(&c.force, "force", false, "replace an existing dot file")
	c.fs.BoolVar(&c.dryRun, "dry-run", false, "print the converted dots instead of saving them")
	if err := parseFlags(c.fs, c, args); err != nil {
		return nil, err
	}
	file, err := c.imageArg(c)
	if err != nil {
		return nil, err
	}
	c.file = file
	if (c.input == "") == !c.fromClip {
		return nil, fmt.Errorf("exactly one of -input or -from-clipboard is required")
	}
	switch c.from {
	case "auto", "legacy", "table":
	default:
		return nil, fmt.Errorf("unknown input format %q", c.from)
	}
	return c, nil
}

func (c *migrateCmd) Run() error {
	text, err := c.read()
	if err != nil {
		return err
	}
	dots, err := decodeDots(text, c.from)
	if err != nil {
		return err
	}
	if c.dryRun {
		data, err := annotation.Marshal(dots)
		if err != nil {
			return err
		}
		_, err = c.stdout.Write(data)
		return err
	}

	path := annotation.SidecarPath(c.file)
	if !c.force {
		if _, err := os.Stat(path); err == nil {
			return fmt.Errorf("%s already exists, use -force to replace it", path)
		} else if !errors.Is(err, os.ErrNotExist) {
			return err
		}
	}
	if _, err := annotation.Save(path, dots); err != nil {
		return fmt.Errorf("failed to save %s: %w", path, err)
	}
	c.notifier.Save(path, c.file)
	fmt.Fprintf(c.stderr, "migrated %d dots to %s\n", len(dots), path)
	return nil
}

func (c *migrateCmd) read() (string, error) {
	if c.fromClip {
		text, err := readClipboardFn()
		if err != nil {
			return "", fmt.Errorf("failed to read clipboard: %w", err)
		}
		return text, nil
	}
	data, err := os.ReadFile(c.input)
	if err != nil {
		return "", err
	}
	return string(data), nil
}

// decodeDots parses text in the given format. "auto" picks the table
// reader when the text starts with the table header.
func decodeDots(text, format string) ([]annotation.Dot, error) {
	if format == "auto" {
		format = "legacy"
		if strings.HasPrefix(strings.ToUpper(strings.TrimSpace(text)), "X,") {
			format = "table"
		}
	}
	if format == "table" {
		return annotation.ReadTable(strings.NewReader(text))
	}
	return annotation.DecodeLegacy(text)
}

package main

import (
	"fmt"
	"os"

	"github.com/example/dotscope/internal/clipboard"
)

type exportCmd struct {
	command
	file     string
	output   string
	toStdout bool
	toClip   bool
}

func parseExportCmd(args []string, r *root) (*exportCmd, error) {
	c := &exportCmd{command: command{root: r, fs: newFlagSet(r, "export")}}
	c.fs.Usage = usageFunc(c)
	c.fs.StringVar(&c.output, "output", "", "table file to write (default <image>.csv, or in save_dir when configured)")
	c.fs.BoolVar(&c.toStdout, "stdout", false, "write the table to standard output instead of a file")
	c.fs.BoolVar(&c.toClip, "clipboard", false, "copy the table to the clipboard instead of writing a file")
	if err := parseFlags(c.fs, c, args); err != nil {
		return nil, err
	}
	file, err := c.imageArg(c)
	if err != nil {
		return nil, err
	}
	c.file = file
	if c.toStdout && c.toClip {
		return nil, fmt.Errorf("-stdout and -clipboard cannot be combined")
	}
	return c, nil
}

func (c *exportCmd) Run() error {
	s, err := c.newSession(c.file)
	if err != nil {
		return err
	}
	switch {
	case c.toStdout:
		text, err := s.Table()
		if err != nil {
			return err
		}
		_, err = fmt.Fprint(c.stdout, text)
		return err
	case c.toClip:
		text, err := s.Table()
		if err != nil {
			return err
		}
		if err := clipboard.WriteText(text); err != nil {
			return fmt.Errorf("failed to copy table: %w", err)
		}
		c.notifier.Copy(fmt.Sprintf("%d dots", len(s.Dots())), nil)
		fmt.Fprintf(c.stderr, "copied %d dots to the clipboard\n", len(s.Dots()))
		return nil
	case c.output != "":
		text, err := s.Table()
		if err != nil {
			return err
		}
		if err := os.WriteFile(c.output, []byte(text), 0o644); err != nil {
			return fmt.Errorf("failed to write %s: %w", c.output, err)
		}
		c.notifier.Export(c.output)
		fmt.Fprintf(c.stderr, "exported %d dots to %s\n", len(s.Dots()), c.output)
		return nil
	}
	path, err := s.Export()
	if err != nil {
		return err
	}
	c.notifier.Export(path)
	fmt.Fprintf(c.stderr, "exported %d dots to %s\n", len(s.Dots()), path)
	return nil
}

package main

import (
	"fmt"

	"github.com/example/dotscope/internal/config"
)

type configCmd struct {
	command
	output string
}

func parseConfigCmd(args []string, r *root) (*configCmd, error) {
	c := &configCmd{command: command{root: r, fs: newFlagSet(r, "config")}}
	c.fs.Usage = usageFunc(c)
	c.fs.StringVar(&c.output, "output", "", "file written by save (default: the loaded configuration file)")
	if err := parseFlags(c.fs, c, args); err != nil {
		return nil, err
	}
	return c, nil
}

func (c *configCmd) Run() error {
	args := c.fs.Args()
	if len(args) != 1 {
		return &UsageError{of: c}
	}

	switch args[0] {
	case "print":
		return c.runPrint()
	case "save":
		return c.runSave()
	default:
		return fmt.Errorf("unknown config command: %s", args[0])
	}
}

func (c *configCmd) runPrint() error {
	_, err := fmt.Fprint(c.stdout, c.root.config.String())
	return err
}

func (c *configCmd) runSave() error {
	path := c.output
	if path == "" {
		// Save over the file that was loaded, or at the XDG location.
		path = config.NewLoader(version, c.configPath).GetConfigPath()
	}
	if path == "" {
		var err error
		if path, err = config.DefaultPath(); err != nil {
			return err
		}
	}
	if err := config.Save(c.root.config, path); err != nil {
		return err
	}
	fmt.Fprintf(c.stderr, "Configuration saved to %s\n", path)
	return nil
}

package main

import (
	"log/slog"

	"github.com/example/dotscope/internal/tool"
	"github.com/example/dotscope/internal/ui"
	"github.com/example/dotscope/internal/watch"
)

type viewCmd struct {
	command
	file     string
	toolName string
	grid     bool
	watch    bool
}

func parseViewCmd(args []string, r *root) (*viewCmd, error) {
	c := &viewCmd{command: command{root: r, fs: newFlagSet(r, "view")}}
	c.fs.Usage = usageFunc(c)
	c.fs.StringVar(&c.toolName, "tool", tool.Move.String(), "tool active on start (move, dot, line, select)")
	c.fs.BoolVar(&c.grid, "grid", false, "show the reference grid on start")
	c.fs.BoolVar(&c.watch, "watch", true, "reload the dots when the dot file changes on disk")
	if err := parseFlags(c.fs, c, args); err != nil {
		return nil, err
	}
	file, err := c.imageArg(c)
	if err != nil {
		return nil, err
	}
	c.file = file
	return c, nil
}

func (c *viewCmd) Run() error {
	mode, err := tool.ParseMode(c.toolName)
	if err != nil {
		return err
	}
	st, err := c.settings()
	if err != nil {
		return err
	}
	opts := []ui.Option{
		ui.WithSettings(st),
		ui.WithNotifier(c.notifier),
		ui.WithTool(mode),
		ui.WithGrid(c.grid),
	}
	if c.watch {
		w, err := watch.New(watch.DefaultDelay)
		if err != nil {
			slog.Warn("dot file watching disabled", "error", err)
		} else {
			defer w.Close()
			opts = append(opts, ui.WithWatcher(w))
		}
	}
	app := ui.New(opts...)
	if err := app.Open(c.file); err != nil {
		return err
	}
	app.Run()
	return nil
}

package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/example/dotscope/internal/config"
	"github.com/example/dotscope/internal/logging"
	"github.com/example/dotscope/internal/notify"
	"github.com/example/dotscope/internal/session"
)

var (
	version            = "dev"
	commit             = ""
	date               = ""
	configPathOverride = ""
)

type runnable interface{ Run() error }

type root struct {
	fs       *flag.FlagSet
	program  string
	config   *config.Config
	notifier *notify.Notifier
	stdout   io.Writer
	stderr   io.Writer

	configPath   string
	logFile      string
	verbose      bool
	saveAlerts   bool
	exportAlerts bool
	copyAlerts   bool
}

func (r *root) Program() string {
	return r.program
}

func (r *root) FlagSet() *flag.FlagSet {
	return r.fs
}

func newRoot() *root {
	r := &root{
		fs:      flag.NewFlagSet("dotscope", flag.ContinueOnError),
		program: "dotscope",
		stdout:  os.Stdout,
		stderr:  os.Stderr,
	}
	r.fs.SetOutput(r.stderr)
	r.fs.StringVar(&r.configPath, "config", configPathOverride, "configuration file to use")
	r.fs.StringVar(&r.logFile, "log", "", "log file (\"-\" disables file logging)")
	r.fs.BoolVar(&r.verbose, "v", false, "print informational messages")
	r.fs.BoolVar(&r.saveAlerts, "notify-save", false, "show a desktop notification after saving dots")
	r.fs.BoolVar(&r.exportAlerts, "notify-export", false, "show a desktop notification after exporting a table")
	r.fs.BoolVar(&r.copyAlerts, "notify-copy", false, "show a desktop notification after copying to the clipboard")
	r.fs.Usage = usageFunc(r)
	return r
}

// setup loads the configuration and applies it under any flags given
// explicitly. Precedence: flag > config > default.
func (r *root) setup() error {
	cfg, err := config.NewLoader(version, r.configPath).Load()
	if err != nil {
		fmt.Fprintf(r.stderr, "warning: failed to load config: %v\n", err)
		cfg = config.New()
	}
	r.config = cfg

	set := map[string]bool{}
	r.fs.Visit(func(f *flag.Flag) { set[f.Name] = true })
	if !set["notify-save"] {
		r.saveAlerts = cfg.Notify.Save
	}
	if !set["notify-export"] {
		r.exportAlerts = cfg.Notify.Export
	}
	if !set["notify-copy"] {
		r.copyAlerts = cfg.Notify.Copy
	}
	if r.logFile == "" {
		r.logFile = cfg.LogFile
	}

	r.notifier = notify.New(notify.LoadPreferences())
	r.notifier.Enable(notify.EventSave, r.saveAlerts)
	r.notifier.Enable(notify.EventExport, r.exportAlerts)
	r.notifier.Enable(notify.EventCopy, r.copyAlerts)
	return nil
}

// settings builds the session settings from the configuration.
func (r *root) settings() (session.Settings, error) {
	st := session.DefaultSettings()
	if r.config == nil {
		return st, nil
	}
	zt, err := r.config.ZoomTable()
	if err != nil {
		return st, err
	}
	st.Zoom = zt
	st.Tolerance = r.config.Annotation.Tolerance
	st.FieldOfView = r.config.Grid.FieldOfView
	st.Style = r.config.Style()
	st.ExportDir = r.config.SaveDir
	return st, nil
}

// newSession returns a session with path loaded.
func (r *root) newSession(path string, opts ...session.Option) (*session.Session, error) {
	st, err := r.settings()
	if err != nil {
		return nil, err
	}
	s := session.New(append([]session.Option{session.WithSettings(st)}, opts...)...)
	if err := s.Load(path); err != nil {
		return nil, fmt.Errorf("failed to open %s: %w", path, err)
	}
	return s, nil
}

func (r *root) subcommand(name string) string {
	return strings.TrimSpace(strings.Join([]string{r.program, name}, " "))
}

func (r *root) Run(args []string) error {
	if err := r.fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return &UsageError{of: r}
		}
		return err
	}
	if r.fs.NArg() < 1 {
		return &UsageError{of: r}
	}
	if err := r.setup(); err != nil {
		return err
	}
	closeLog, err := logging.Init(logging.Options{File: r.logFile, Console: r.stderr, Verbose: r.verbose})
	if err != nil {
		fmt.Fprintf(r.stderr, "warning: file logging disabled: %v\n", err)
		if closeLog, err = logging.Init(logging.Options{File: "-", Console: r.stderr, Verbose: r.verbose}); err != nil {
			return err
		}
	}
	defer closeLog()

	cmdName := r.fs.Arg(0)
	subArgs := r.fs.Args()[1:]
	slog.Debug("command", "name", cmdName, "args", subArgs, "version", version)

	var cmd runnable
	switch cmdName {
	case "view":
		cmd, err = parseViewCmd(subArgs, r)
	case "dots":
		cmd, err = parseDotsCmd(subArgs, r)
	case "export":
		cmd, err = parseExportCmd(subArgs, r)
	case "migrate":
		cmd, err = parseMigrateCmd(subArgs, r)
	case "grid":
		cmd, err = parseGridCmd(subArgs, r)
	case "render":
		cmd, err = parseRenderCmd(subArgs, r)
	case "config":
		cmd, err = parseConfigCmd(subArgs, r)
	case "version":
		cmd = &versionCmd{r: r}
	default:
		err = &UsageError{of: r}
	}
	if err != nil {
		return err
	}
	return cmd.Run()
}

func main() {
	r := newRoot()
	if err := r.Run(os.Args[1:]); err != nil {
		var uerr *UsageError
		if errors.As(err, &uerr) {
			fmt.Fprintln(os.Stderr, uerr.Error())
			os.Exit(2)
		}
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

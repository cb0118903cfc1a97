// Package cli wires javaver's commands together and owns the lifecycle of
// a single invocation: settings, registry load, command, registry save.
package cli

import (
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"javaver/internal/config"
	"javaver/internal/env"
	"javaver/internal/installer"
	"javaver/internal/java"
	"javaver/internal/log"
	"javaver/internal/registry"
	"javaver/internal/switcher"
	"javaver/internal/theme"
)

// App runs javaver commands. The zero value is not usable; use New.
type App struct {
	Stdout io.Writer
	Stderr io.Writer

	// Version is the build version reported by `javaver version`.
	Version string

	// NewStore returns the environment store the switch writes to.
	NewStore func() env.Store

	// Roots replaces the detector's built-in search roots when non-nil.
	Roots []string

	// Interactive reports whether prompts may be shown.
	Interactive func() bool

	// Setenv applies JAVA_HOME to the current process.
	Setenv func(key, value string) error

	// Distributor supplies JDKs for `javaver install`. Defaults to Adoptium.
	Distributor installer.Distributor

	// HTTPClient downloads JDK archives when set.
	HTTPClient *http.Client

	opts     globalOptions
	logger   log.Logger
	out      *theme.Printer
	errOut   *theme.Printer
	settings *config.Settings
	regPath  string
	reg      *registry.Registry
}

type globalOptions struct {
	registryFile string
	configFile   string
	verbose      bool
	debug        bool
	quiet        bool
}

// New returns an App bound to the real terminal and system environment.
func New(version string) *App {
	return &App{
		Stdout:      os.Stdout,
		Stderr:      os.Stderr,
		Version:     version,
		NewStore:    env.NewSystemStore,
		Interactive: isTerminal,
		Setenv:      os.Setenv,
	}
}

func isTerminal() bool {
	return term.IsTerminal(int(os.Stdin.Fd())) && term.IsTerminal(int(os.Stdout.Fd()))
}

// Execute runs one invocation with args and returns the exit code.
func (a *App) Execute(args []string) int {
	a.reset()

	root := a.newRootCmd()
	root.SetArgs(args)
	root.SetOut(a.Stdout)
	root.SetErr(a.Stderr)

	err := root.Execute()
	persistErr := a.saveRegistry()

	if err != nil {
		a.errOut.Error("%s", err)
		if ExitCode(err) == ExitUsage {
			fmt.Fprintf(a.Stderr, "Run '%s --help' for usage.\n", root.Name())
		}
	}
	if persistErr != nil {
		a.errOut.Warn("%s; changes may not survive this session", persistErr)
	}

	switch {
	case err != nil:
		return ExitCode(err)
	case persistErr != nil:
		return ExitPersist
	default:
		return ExitSuccess
	}
}

func (a *App) reset() {
	a.opts = globalOptions{}
	a.logger = log.NewNoop()
	a.out = theme.NewPrinter(a.Stdout, false)
	a.errOut = theme.NewPrinter(a.Stderr, false)
	a.settings = nil
	a.regPath = ""
	a.reg = nil
}

// setup runs after flag parsing for every command.
func (a *App) setup() error {
	level := log.LevelFor(a.opts.quiet, a.opts.verbose, a.opts.debug)
	a.logger = log.NewText(a.Stderr, level)
	log.SetDefault(a.logger)
	a.out = theme.NewPrinter(a.Stdout, a.opts.quiet)

	path := a.opts.configFile
	if path == "" {
		p, err := config.DefaultPath()
		if err != nil {
			return err
		}
		path = p
	}
	s, err := config.Load(path)
	if err != nil {
		return err
	}
	a.settings = s
	a.logger.Debug("settings loaded", "path", path)
	return nil
}

// registry loads the registry on first use. A decode failure leaves the
// App without a registry so the file is never overwritten.
func (a *App) registry() (*registry.Registry, error) {
	if a.reg != nil {
		return a.reg, nil
	}
	path, err := a.settings.RegistryPath(a.opts.registryFile)
	if err != nil {
		return nil, err
	}
	reg, err := registry.Load(path)
	if err != nil {
		return nil, err
	}
	a.logger.Debug("registry loaded", "path", path, "sdks", reg.Len())
	a.regPath = path
	a.reg = reg
	return reg, nil
}

func (a *App) saveRegistry() error {
	if a.reg == nil {
		return nil
	}
	if err := registry.Save(a.reg, a.regPath); err != nil {
		return err
	}
	a.logger.Debug("registry saved", "path", a.regPath)
	return nil
}

func (a *App) detector() *java.Detector {
	opts := []java.Option{java.WithLogger(a.logger)}
	if a.Roots != nil {
		opts = append(opts, java.WithRoots(a.Roots...))
	}
	return java.NewDetector(opts...)
}

func (a *App) interactive() bool {
	return a.Interactive != nil && a.Interactive()
}

func (a *App) newSwitcher(store env.Store) *switcher.Switcher {
	return switcher.New(store, switcher.WithLogger(a.logger))
}

// readPath returns the machine PATH as a list. Failures are logged and
// yield an empty list; callers only use it for display.
func (a *App) readPath() []string {
	value, err := a.NewStore().Read()
	if err != nil {
		a.logger.Warn("failed to read PATH", "error", err)
		return nil
	}
	return switcher.Split(value, string(filepath.ListSeparator))
}

// active returns the SDK whose bin directory leads the machine PATH.
func (a *App) active(reg *registry.Registry) (registry.Entry, bool) {
	return switcher.Active(reg, a.readPath())
}

var errNoCommand = errors.New("no command given")

func usageArgs(fn cobra.PositionalArgs) cobra.PositionalArgs {
	return func(cmd *cobra.Command, args []string) error {
		return newUsageError(fn(cmd, args))
	}
}

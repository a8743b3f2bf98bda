// Package app wires the dispatch pipeline: it owns the App Context (logger,
// options map, task registry), selects the task an invocation asks for,
// runs it, and turns every failure into one error line and exit status 1.
package app

import (
	"fmt"

	"github.com/capiscio/taskrunner/pkg/logger"
	"github.com/capiscio/taskrunner/pkg/options"
	"github.com/capiscio/taskrunner/pkg/task"
	"github.com/google/uuid"
)

// DefaultDebugFlag is the raw argument that enables debug mode.
const DefaultDebugFlag = "--debug"

// Process exit statuses.
const (
	ExitOK      = 0
	ExitFailure = 1
)

// Config describes a host application.
type Config struct {
	// Name identifies the application in help output and debug logs.
	Name string

	// Spec is the parameter spec applied to the raw arguments.
	Spec options.Spec

	// DebugFlag names the raw argument that enables debug mode.
	// Defaults to DefaultDebugFlag.
	DebugFlag string

	// Debug forces debug mode regardless of the raw arguments.
	Debug bool

	// Tasks overrides the task registration table. Nil means
	// task.Registered().
	Tasks []task.Descriptor

	// Logger overrides the console logger.
	Logger logger.Logger

	// LogOptions configures the console logger when Logger is nil. Its Debug
	// field is set from the resolved debug mode.
	LogOptions logger.Options
}

// App is the App Context. One App exists per process; it is passed to every
// task it instantiates.
type App struct {
	name     string
	debug    bool
	log      logger.Logger
	args     *options.Args
	opts     options.Map
	registry *task.Registry
	runID    string
}

var _ task.Context = (*App)(nil)

// New builds the App Context from the raw arguments. The options map and the
// registry are both complete before New returns; no task is instantiated.
func New(cfg Config, args *options.Args) (*App, error) {
	debug := debugMode(cfg, args)

	log := cfg.Logger
	if log == nil {
		log = newLogger(cfg, debug)
	}

	opts, err := options.Build(cfg.Spec, args)
	if err != nil {
		return nil, newError(CodeConfigurationInvalid, err.Error(), err)
	}

	descs := cfg.Tasks
	if descs == nil {
		descs = task.Registered()
	}
	registry := task.NewRegistry(descs...)

	a := &App{
		name:     cfg.Name,
		debug:    debug,
		log:      log,
		args:     args,
		opts:     opts,
		registry: registry,
		runID:    uuid.New().String(),
	}
	a.log.Debug(fmt.Sprintf("%s: %d task(s) registered, run %s", a.name, registry.Len(), a.runID))
	return a, nil
}

func debugMode(cfg Config, args *options.Args) bool {
	flag := cfg.DebugFlag
	if flag == "" {
		flag = DefaultDebugFlag
	}
	return cfg.Debug || options.Truthy(valueOf(args, flag))
}

func valueOf(args *options.Args, name string) any {
	v, _ := args.Get(name)
	return v
}

func newLogger(cfg Config, debug bool) logger.Logger {
	lo := cfg.LogOptions
	lo.Debug = debug
	return logger.New(lo)
}

// Name returns the application name.
func (a *App) Name() string {
	return a.name
}

// IsDebug reports whether debug mode is on.
func (a *App) IsDebug() bool {
	return a.debug
}

// Logger returns the shared logger.
func (a *App) Logger() logger.Logger {
	return a.log
}

// Options returns a copy of the stored options map.
func (a *App) Options() options.Map {
	return a.opts.Clone()
}

// Args returns the raw argument map.
func (a *App) Args() *options.Args {
	return a.args
}

// Registry returns the task registry.
func (a *App) Registry() *task.Registry {
	return a.registry
}

// RunID returns the identifier assigned to this process invocation.
func (a *App) RunID() string {
	return a.runID
}

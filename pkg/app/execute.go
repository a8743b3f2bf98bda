package app

import (
	"errors"
	"io"

	"github.com/capiscio/taskrunner/pkg/grammar"
)

// Execute runs one process invocation: parse argv with g, build the App
// Context from cfg, then select and run the task. Help output goes to out.
// The returned value is the process exit status.
func Execute(cfg Config, g *grammar.Grammar, argv []string, out io.Writer) int {
	args, err := g.Parse(argv, out)
	if errors.Is(err, grammar.ErrHelp) {
		return ExitOK
	}
	if err != nil {
		log := cfg.Logger
		if log == nil {
			log = newLogger(cfg, cfg.Debug)
		}
		log.Error(err.Error())
		return ExitFailure
	}

	debug := debugMode(cfg, args)
	if cfg.Logger == nil {
		cfg.Logger = newLogger(cfg, debug)
	}

	a, err := New(cfg, args)
	if err != nil {
		cfg.Logger.Error(describe(err, debug))
		return ExitFailure
	}
	return a.Run("", nil)
}

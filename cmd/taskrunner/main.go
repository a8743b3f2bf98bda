// Package main is the entry point for the taskrunner CLI.
package main

import (
	"io"
	"os"

	"github.com/capiscio/taskrunner/pkg/app"
	"github.com/capiscio/taskrunner/pkg/config"
	"github.com/capiscio/taskrunner/pkg/grammar"
	"github.com/capiscio/taskrunner/pkg/logger"
	"github.com/capiscio/taskrunner/pkg/options"
)

const appName = "taskrunner"

// version is overridden at build time with -ldflags "-X main.version=...".
var version = "dev"

// paramSpec maps option keys to raw arguments of the grammar below.
var paramSpec = options.Spec{
	options.Arg("out_dir", "--out-dir"),
	options.Arg("all", "--all"),
	options.Arg("debug", "--debug"),
	options.OneOf("format", "--text", "--json"),
}

func newGrammar(cfg config.Config) *grammar.Grammar {
	return grammar.New(appName, "Task runner").
		Describe(`Run one of the registered tasks.

Exactly one task command is selected per invocation. Settings are read from
$TASKRUNNER_CONFIG or ./.taskrunner.toml when present.`).
		Example(`  # List tasks, including those that need the compatibility check
  taskrunner tasks --all

  # Generate a key pair into ./keys and print the public JWK
  taskrunner keygen --out-dir ./keys --json`).
		Command("tasks", "List registered tasks").
		Command("keygen", "Generate an Ed25519 key pair").
		Command("version", "Print version information").
		Flag("all", "Include tasks that require the compatibility check").
		Flag("text", "Plain text output (default)").
		Flag("json", "JSON output").
		Option("out-dir", cfg.Default("out-dir", "."), "Output directory for generated files").
		Flag("debug", "Enable debug logging")
}

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

// run executes one invocation and returns the exit status.
func run(argv []string, stdout, stderr io.Writer) int {
	cfg, err := config.Resolve()
	if err != nil {
		fallback := config.Default()
		config.ApplyEnv(&fallback)
		logger.New(consoleOptions(fallback, stdout, stderr)).Error(err.Error())
		return app.ExitFailure
	}

	return app.Execute(app.Config{
		Name:       appName,
		Spec:       paramSpec,
		Debug:      cfg.Log.Debug,
		LogOptions: consoleOptions(cfg, stdout, stderr),
	}, newGrammar(cfg), argv, stdout)
}

// consoleOptions sends task output to stdout and diagnostics to stderr.
func consoleOptions(cfg config.Config, stdout, stderr io.Writer) logger.Options {
	opts := cfg.LoggerOptions()
	opts.Stdout = stdout
	opts.Out = stderr
	return opts
}

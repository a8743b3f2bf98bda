// Package logger provides the leveled console sink shared by the App
// Context and every task.
//
// Five operations are exposed: Error, Warn, Message, Info and Debug. Error,
// Warn and Debug write colored lines to the diagnostic stream; Message and
// Info write plain lines to the output stream so task results stay machine
// readable. Debug lines are dropped unless the logger was built in debug
// mode.
package logger

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/rs/zerolog"
)

// Logger is the contract tasks and the dispatcher log through.
type Logger interface {
	Error(msg string)
	Warn(msg string)
	Message(msg string)
	Info(msg string)
	Debug(msg string)
}

// Options controls how a Console logger is built.
type Options struct {
	// Out is the diagnostic stream for Error, Warn and Debug.
	// Defaults to os.Stderr.
	Out io.Writer

	// Stdout receives Message and Info lines. Defaults to os.Stdout.
	Stdout io.Writer

	// Debug enables Debug output.
	Debug bool

	// NoColor disables ANSI coloring on the diagnostic stream.
	NoColor bool

	// Timestamp prefixes every line with an RFC 3339 timestamp.
	Timestamp bool
}

// ANSI sequences per level.
const (
	colorReset   = "\x1b[0m"
	colorRed     = "\x1b[1;31m"
	colorYellow  = "\x1b[1;33m"
	colorDarkGry = "\x1b[1;30m"
)

// Console is a Logger backed by two zerolog ConsoleWriters.
type Console struct {
	diag  zerolog.Logger
	out   zerolog.Logger
	debug bool
}

// New creates a Console logger.
func New(opts Options) *Console {
	diagW := opts.Out
	if diagW == nil {
		diagW = os.Stderr
	}
	outW := opts.Stdout
	if outW == nil {
		outW = os.Stdout
	}

	level := zerolog.InfoLevel
	if opts.Debug {
		level = zerolog.DebugLevel
	}

	return &Console{
		diag:  newZerolog(consoleWriter(diagW, opts.NoColor, opts.Timestamp), level, opts.Timestamp),
		out:   newZerolog(consoleWriter(outW, true, opts.Timestamp), level, opts.Timestamp),
		debug: opts.Debug,
	}
}

func newZerolog(w zerolog.ConsoleWriter, level zerolog.Level, timestamp bool) zerolog.Logger {
	ctx := zerolog.New(w).Level(level).With()
	if timestamp {
		ctx = ctx.Timestamp()
	}
	return ctx.Logger()
}

// consoleWriter renders the message alone, optionally after a timestamp.
func consoleWriter(out io.Writer, noColor, timestamp bool) zerolog.ConsoleWriter {
	parts := []string{zerolog.MessageFieldName}
	if timestamp {
		parts = []string{zerolog.TimestampFieldName, zerolog.MessageFieldName}
	}

	return zerolog.ConsoleWriter{
		Out:        out,
		NoColor:    noColor,
		TimeFormat: time.RFC3339,
		PartsOrder: parts,
		FormatMessage: func(i interface{}) string {
			if i == nil {
				return ""
			}
			return fmt.Sprint(i)
		},
		FormatPrepare: func(evt map[string]interface{}) error {
			if noColor {
				return nil
			}
			msg, ok := evt[zerolog.MessageFieldName].(string)
			if !ok || msg == "" {
				return nil
			}
			level, _ := evt[zerolog.LevelFieldName].(string)
			if color := levelColor(level); color != "" {
				evt[zerolog.MessageFieldName] = color + msg + colorReset
			}
			return nil
		},
	}
}

// levelColor maps a zerolog level name to its console color.
func levelColor(level string) string {
	switch level {
	case zerolog.LevelErrorValue:
		return colorRed
	case zerolog.LevelWarnValue:
		return colorYellow
	case zerolog.LevelDebugValue:
		return colorDarkGry
	default:
		return ""
	}
}

// IsDebug reports whether Debug lines are emitted.
func (c *Console) IsDebug() bool {
	return c.debug
}

// Error always writes msg to the diagnostic stream.
func (c *Console) Error(msg string) {
	c.diag.Error().Msg(msg)
}

// Warn always writes msg to the diagnostic stream.
func (c *Console) Warn(msg string) {
	c.diag.Warn().Msg(msg)
}

// Message always writes msg to the output stream. It carries no level so
// it is never filtered.
func (c *Console) Message(msg string) {
	c.out.Log().Msg(msg)
}

// Info always writes msg to the output stream.
func (c *Console) Info(msg string) {
	c.out.Info().Msg(msg)
}

// Debug writes msg to the diagnostic stream only in debug mode.
func (c *Console) Debug(msg string) {
	c.diag.Debug().Msg(msg)
}

// Nop discards everything.
type Nop struct{}

func (Nop) Error(string)   {}
func (Nop) Warn(string)    {}
func (Nop) Message(string) {}
func (Nop) Info(string)    {}
func (Nop) Debug(string)   {}

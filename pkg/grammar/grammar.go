// Package grammar declares a command line grammar and parses argv into the
// raw argument map consumed by the options package.
//
// Commands are positional words and map to boolean keys named after the
// word. Flags ("--name") map to booleans, options ("--name") to strings,
// repeated options to string sequences, and trailing positionals ("<name>")
// to a sequence. Keys appear in the order they were declared.
package grammar

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/capiscio/taskrunner/pkg/options"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

// ErrHelp is returned by Parse when help output was requested and printed.
var ErrHelp = errors.New("help requested")

type kind int

const (
	kindCommand kind = iota
	kindFlag
	kindOption
	kindRepeated
	kindArgs
)

type entry struct {
	kind  kind
	name  string
	usage string
	def   string
}

// key returns the raw argument name for e.
func (e entry) key() string {
	switch e.kind {
	case kindCommand:
		return e.name
	case kindArgs:
		return "<" + e.name + ">"
	default:
		return "--" + e.name
	}
}

// Grammar is a declarative usage description.
type Grammar struct {
	use     string
	short   string
	long    string
	example string
	entries []entry
}

// New creates a grammar for the program named use.
func New(use, short string) *Grammar {
	return &Grammar{use: use, short: short}
}

// Describe sets the long help text.
func (g *Grammar) Describe(long string) *Grammar {
	g.long = long
	return g
}

// Example sets the examples section of the help text.
func (g *Grammar) Example(example string) *Grammar {
	g.example = example
	return g
}

// Command declares a positional command word.
func (g *Grammar) Command(name, usage string) *Grammar {
	g.entries = append(g.entries, entry{kind: kindCommand, name: name, usage: usage})
	return g
}

// Flag declares a boolean --name flag.
func (g *Grammar) Flag(name, usage string) *Grammar {
	g.entries = append(g.entries, entry{kind: kindFlag, name: name, usage: usage})
	return g
}

// Option declares a string --name option. An option that is not given and
// has no default parses to nil.
func (g *Grammar) Option(name, def, usage string) *Grammar {
	g.entries = append(g.entries, entry{kind: kindOption, name: name, usage: usage, def: def})
	return g
}

// Repeated declares a --name option that may be given several times.
func (g *Grammar) Repeated(name, usage string) *Grammar {
	g.entries = append(g.entries, entry{kind: kindRepeated, name: name, usage: usage})
	return g
}

// Args declares the trailing positional arguments as <name>.
func (g *Grammar) Args(name, usage string) *Grammar {
	g.entries = append(g.entries, entry{kind: kindArgs, name: name, usage: usage})
	return g
}

// Keys returns every raw argument name the grammar produces, in declaration
// order.
func (g *Grammar) Keys() []string {
	keys := make([]string, 0, len(g.entries))
	for _, e := range g.entries {
		keys = append(keys, e.key())
	}
	return keys
}

// Parse parses argv. Help output and parse errors are written to out.
func (g *Grammar) Parse(argv []string, out io.Writer) (*options.Args, error) {
	var parsed *options.Args
	cmd := g.cobra(func(c *cobra.Command, positional []string) error {
		args, err := g.collect(c.Flags(), positional)
		if err != nil {
			return err
		}
		parsed = args
		return nil
	})

	if argv == nil {
		argv = []string{}
	}
	cmd.SetArgs(argv)
	cmd.SetOut(out)
	cmd.SetErr(out)

	if err := cmd.Execute(); err != nil {
		return nil, err
	}
	if parsed == nil {
		return nil, ErrHelp
	}
	return parsed, nil
}

// Usage renders the usage text.
func (g *Grammar) Usage() string {
	return g.cobra(nil).UsageString()
}

func (g *Grammar) cobra(run func(*cobra.Command, []string) error) *cobra.Command {
	cmd := &cobra.Command{
		Use:           g.use + g.useSuffix(),
		Short:         g.short,
		Long:          g.long,
		Example:       g.example,
		Args:          cobra.ArbitraryArgs,
		ValidArgs:     g.commandNames(),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE:          run,
	}

	flags := cmd.Flags()
	for _, e := range g.entries {
		switch e.kind {
		case kindFlag:
			flags.Bool(e.name, false, e.usage)
		case kindOption:
			flags.String(e.name, e.def, e.usage)
		case kindRepeated:
			flags.StringArray(e.name, nil, e.usage)
		}
	}
	return cmd
}

// useSuffix renders the positional part of the usage line.
func (g *Grammar) useSuffix() string {
	var b strings.Builder
	if names := g.commandNames(); len(names) > 0 {
		fmt.Fprintf(&b, " (%s)", strings.Join(names, "|"))
	}
	for _, e := range g.entries {
		if e.kind == kindArgs {
			fmt.Fprintf(&b, " [<%s>...]", e.name)
		}
	}
	return b.String()
}

func (g *Grammar) commandNames() []string {
	var names []string
	for _, e := range g.entries {
		if e.kind == kindCommand {
			names = append(names, e.name)
		}
	}
	return names
}

func (g *Grammar) hasArgs() bool {
	for _, e := range g.entries {
		if e.kind == kindArgs {
			return true
		}
	}
	return false
}

// collect builds the raw argument map from the parsed flag set and the
// remaining positionals.
func (g *Grammar) collect(flags *pflag.FlagSet, positional []string) (*options.Args, error) {
	var selected string
	rest := positional
	if commands := g.commandNames(); len(commands) > 0 && len(rest) > 0 {
		if !contains(commands, rest[0]) {
			return nil, fmt.Errorf("unknown command %q", rest[0])
		}
		selected, rest = rest[0], rest[1:]
	}
	if len(rest) > 0 && !g.hasArgs() {
		return nil, fmt.Errorf("unexpected arguments: %s", strings.Join(rest, " "))
	}

	b := options.NewArgsBuilder()
	for _, e := range g.entries {
		switch e.kind {
		case kindCommand:
			b.Set(e.key(), e.name == selected)
		case kindFlag:
			v, err := flags.GetBool(e.name)
			if err != nil {
				return nil, err
			}
			b.Set(e.key(), v)
		case kindOption:
			f := flags.Lookup(e.name)
			if !f.Changed && e.def == "" {
				b.Set(e.key(), nil)
				continue
			}
			b.Set(e.key(), f.Value.String())
		case kindRepeated:
			v, err := flags.GetStringArray(e.name)
			if err != nil {
				return nil, err
			}
			b.Set(e.key(), v)
		case kindArgs:
			b.Set(e.key(), append([]string{}, rest...))
		}
	}
	return b.Build(), nil
}

func contains(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}

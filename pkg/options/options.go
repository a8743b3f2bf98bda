// Package options turns the raw argument map produced by the grammar parser
// into the options map handed to tasks.
//
// A Spec declares, per logical option key, either one raw argument to copy
// verbatim or an ordered group of mutually exclusive flags. Build applies
// the Spec and either returns a complete Map or fails with a *ConfigError.
package options

import (
	"errors"
	"fmt"
)

// ErrArgNotFound is wrapped by every ConfigError.
var ErrArgNotFound = errors.New("argument not found")

// ConfigError reports a Spec entry that references a raw argument the
// grammar never declared.
type ConfigError struct {
	// Key is the option key whose entry failed.
	Key string

	// Arg is the missing raw argument name.
	Arg string
}

// Error implements the error interface.
func (e *ConfigError) Error() string {
	return fmt.Sprintf("params error: argument %q not found for option %q", e.Arg, e.Key)
}

// Unwrap returns ErrArgNotFound for errors.Is.
func (e *ConfigError) Unwrap() error {
	return ErrArgNotFound
}

// Param is one Spec entry. Exactly one of Arg or Group is set.
type Param struct {
	Key   string
	Arg   string
	Group []string
}

// IsGroup reports whether the entry is a mutually exclusive group.
func (p Param) IsGroup() bool {
	return p.Group != nil
}

// Spec is the ordered Parameter Spec.
type Spec []Param

// Arg declares an option copied verbatim from the raw argument name.
func Arg(key, name string) Param {
	return Param{Key: key, Arg: name}
}

// OneOf declares an option resolved to the name of the last truthy flag in
// names.
func OneOf(key string, names ...string) Param {
	group := make([]string, len(names))
	copy(group, names)
	return Param{Key: key, Group: group}
}

// Keys returns the option keys in declaration order.
func (s Spec) Keys() []string {
	keys := make([]string, 0, len(s))
	for _, p := range s {
		keys = append(keys, p.Key)
	}
	return keys
}

// Build applies spec to args. On failure no partial map is returned.
func Build(spec Spec, args *Args) (Map, error) {
	result := make(Map, len(spec))
	for _, p := range spec {
		if !p.IsGroup() {
			v, ok := args.Get(p.Arg)
			if !ok {
				return nil, &ConfigError{Key: p.Key, Arg: p.Arg}
			}
			result[p.Key] = v
			continue
		}

		var selected any
		for _, name := range p.Group {
			v, ok := args.Get(name)
			if !ok {
				return nil, &ConfigError{Key: p.Key, Arg: name}
			}
			// Later truthy flags overwrite earlier ones.
			if Truthy(v) {
				selected = name
			}
		}
		result[p.Key] = selected
	}
	return result, nil
}

// Truthy reports whether a raw argument value counts as set: boolean true,
// a non-empty string, or a non-empty sequence.
func Truthy(v any) bool {
	switch val := v.(type) {
	case bool:
		return val
	case string:
		return val != ""
	case []string:
		return len(val) > 0
	case []any:
		return len(val) > 0
	default:
		return false
	}
}

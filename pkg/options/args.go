package options

// Pair is one raw argument as produced by the grammar parser.
type Pair struct {
	Name  string
	Value any
}

// Args is the Raw Argument Map: argument, option and flag names mapped to a
// bool, a string, a []string, or nil for an option that was never given.
// Iteration order is grammar declaration order. Args is immutable once
// built.
type Args struct {
	names  []string
	values map[string]any
}

// NewArgs builds Args from pairs in order. A repeated name keeps its first
// position and takes the later value.
func NewArgs(pairs ...Pair) *Args {
	b := NewArgsBuilder()
	for _, p := range pairs {
		b.Set(p.Name, p.Value)
	}
	return b.Build()
}

// ArgsBuilder accumulates raw arguments before they are frozen into Args.
type ArgsBuilder struct {
	args *Args
}

// NewArgsBuilder creates an empty builder.
func NewArgsBuilder() *ArgsBuilder {
	return &ArgsBuilder{args: &Args{values: make(map[string]any)}}
}

// Set records a raw argument value.
func (b *ArgsBuilder) Set(name string, value any) *ArgsBuilder {
	if _, ok := b.args.values[name]; !ok {
		b.args.names = append(b.args.names, name)
	}
	b.args.values[name] = copyValue(value)
	return b
}

// Build returns the finished Args. The builder must not be used afterwards.
func (b *ArgsBuilder) Build() *Args {
	a := b.args
	b.args = &Args{values: make(map[string]any)}
	return a
}

// Get returns the value for name and whether name was declared.
func (a *Args) Get(name string) (any, bool) {
	if a == nil {
		return nil, false
	}
	v, ok := a.values[name]
	return copyValue(v), ok
}

// Has reports whether name was declared by the grammar.
func (a *Args) Has(name string) bool {
	if a == nil {
		return false
	}
	_, ok := a.values[name]
	return ok
}

// Bool reports whether name holds boolean true.
func (a *Args) Bool(name string) bool {
	v, _ := a.Get(name)
	b, ok := v.(bool)
	return ok && b
}

// Names returns the argument names in declaration order.
func (a *Args) Names() []string {
	if a == nil {
		return nil
	}
	return append([]string(nil), a.names...)
}

// Len returns the number of declared arguments.
func (a *Args) Len() int {
	if a == nil {
		return 0
	}
	return len(a.names)
}

// Each calls fn for every argument in declaration order until fn returns
// false.
func (a *Args) Each(fn func(name string, value any) bool) {
	if a == nil {
		return
	}
	for _, name := range a.names {
		if !fn(name, copyValue(a.values[name])) {
			return
		}
	}
}

func copyValue(v any) any {
	if s, ok := v.([]string); ok {
		if s == nil {
			return s
		}
		return append(make([]string, 0, len(s)), s...)
	}
	return v
}

package options_test

import (
	"errors"
	"testing"

	"github.com/capiscio/taskrunner/pkg/options"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildCopiesSingleArguments(t *testing.T) {
	args := options.NewArgs(
		options.Pair{Name: "--out-dir", Value: "/tmp/keys"},
		options.Pair{Name: "--all", Value: true},
		options.Pair{Name: "<files>", Value: []string{"a", "b"}},
		options.Pair{Name: "--name", Value: nil},
	)
	spec := options.Spec{
		options.Arg("out_dir", "--out-dir"),
		options.Arg("all", "--all"),
		options.Arg("files", "<files>"),
		options.Arg("name", "--name"),
	}

	got, err := options.Build(spec, args)
	require.NoError(t, err)
	assert.Equal(t, options.Map{
		"out_dir": "/tmp/keys",
		"all":     true,
		"files":   []string{"a", "b"},
		"name":    nil,
	}, got)
}

func TestBuildGroupLastTruthyWins(t *testing.T) {
	tests := []struct {
		name string
		args []options.Pair
		want any
	}{
		{
			name: "both set",
			args: []options.Pair{{Name: "--x", Value: true}, {Name: "--y", Value: true}},
			want: "--y",
		},
		{
			name: "first only",
			args: []options.Pair{{Name: "--x", Value: true}, {Name: "--y", Value: false}},
			want: "--x",
		},
		{
			name: "none set",
			args: []options.Pair{{Name: "--x", Value: false}, {Name: "--y", Value: false}},
			want: nil,
		},
		{
			name: "string and sequence values",
			args: []options.Pair{{Name: "--x", Value: "v"}, {Name: "--y", Value: []string{}}},
			want: "--x",
		},
	}

	spec := options.Spec{options.OneOf("mode", "--x", "--y")}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := options.Build(spec, options.NewArgs(tt.args...))
			require.NoError(t, err)
			assert.Equal(t, options.Map{"mode": tt.want}, got)
		})
	}
}

func TestBuildGroupOrderFollowsSpecNotArgs(t *testing.T) {
	args := options.NewArgs(
		options.Pair{Name: "--y", Value: true},
		options.Pair{Name: "--x", Value: true},
	)

	got, err := options.Build(options.Spec{options.OneOf("mode", "--x", "--y")}, args)
	require.NoError(t, err)
	assert.Equal(t, "--y", got["mode"])

	got, err = options.Build(options.Spec{options.OneOf("mode", "--y", "--x")}, args)
	require.NoError(t, err)
	assert.Equal(t, "--x", got["mode"])
}

func TestBuildMissingArgumentFails(t *testing.T) {
	args := options.NewArgs(options.Pair{Name: "--x", Value: true})

	tests := []struct {
		name    string
		spec    options.Spec
		wantKey string
		wantArg string
	}{
		{"single", options.Spec{options.Arg("out", "--out")}, "out", "--out"},
		{"group", options.Spec{options.OneOf("mode", "--x", "--z")}, "mode", "--z"},
		{
			"after valid entries",
			options.Spec{options.Arg("x", "--x"), options.Arg("missing", "--missing")},
			"missing", "--missing",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := options.Build(tt.spec, args)
			require.Error(t, err)
			assert.Nil(t, got)
			assert.ErrorIs(t, err, options.ErrArgNotFound)

			var cfgErr *options.ConfigError
			require.True(t, errors.As(err, &cfgErr))
			assert.Equal(t, tt.wantKey, cfgErr.Key)
			assert.Equal(t, tt.wantArg, cfgErr.Arg)
			assert.Contains(t, err.Error(), tt.wantArg)
		})
	}
}

func TestBuildIsIdempotent(t *testing.T) {
	args := options.NewArgs(
		options.Pair{Name: "--text", Value: false},
		options.Pair{Name: "--json", Value: true},
		options.Pair{Name: "--out-dir", Value: "."},
	)
	spec := options.Spec{
		options.Arg("out_dir", "--out-dir"),
		options.OneOf("format", "--text", "--json"),
	}

	first, err := options.Build(spec, args)
	require.NoError(t, err)
	second, err := options.Build(spec, args)
	require.NoError(t, err)
	assert.Equal(t, first, second)
	assert.ElementsMatch(t, spec.Keys(), keys(first))
}

func TestTruthy(t *testing.T) {
	tests := []struct {
		value any
		want  bool
	}{
		{true, true},
		{false, false},
		{"x", true},
		{"", false},
		{[]string{"a"}, true},
		{[]string{}, false},
		{nil, false},
		{42, false},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, options.Truthy(tt.value), "value %#v", tt.value)
	}
}

func TestArgsKeepDeclarationOrder(t *testing.T) {
	args := options.NewArgs(
		options.Pair{Name: "build", Value: false},
		options.Pair{Name: "test", Value: true},
		options.Pair{Name: "build", Value: true},
	)

	assert.Equal(t, []string{"build", "test"}, args.Names())
	assert.True(t, args.Bool("build"))
	assert.False(t, args.Has("deploy"))

	var seen []string
	args.Each(func(name string, _ any) bool {
		seen = append(seen, name)
		return true
	})
	assert.Equal(t, []string{"build", "test"}, seen)
}

func TestArgsSequencesAreCopied(t *testing.T) {
	files := []string{"a"}
	args := options.NewArgs(options.Pair{Name: "<files>", Value: files})
	files[0] = "changed"

	v, ok := args.Get("<files>")
	require.True(t, ok)
	assert.Equal(t, []string{"a"}, v)

	v.([]string)[0] = "mutated"
	again, _ := args.Get("<files>")
	assert.Equal(t, []string{"a"}, again)
}

func TestArgsKeepEmptySequences(t *testing.T) {
	args := options.NewArgs(
		options.Pair{Name: "<files>", Value: []string{}},
		options.Pair{Name: "--tag", Value: []string(nil)},
	)

	v, ok := args.Get("<files>")
	require.True(t, ok)
	assert.Equal(t, []string{}, v)
	assert.NotNil(t, v.([]string))

	v, ok = args.Get("--tag")
	require.True(t, ok)
	assert.Nil(t, v.([]string))
}

func keys(m options.Map) []string {
	out := make([]string, 0, len(m))
	for k := range m {
		out = append(out, k)
	}
	return out
}

package generator

import (
	"errors"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/getmockd/oasmock/pkg/schema"
)

func TestDirective_CallForms(t *testing.T) {
	p := newProvider(map[string]any{
		"person.firstName":     "Ada",
		"number.int":           5,
		"helpers.arrayElement": "b",
	})
	gen, _ := testGenerator(p, nil)

	tests := []struct {
		directive string
		want      any
		args      []any
	}{
		{"person.firstName", "Ada", []any{}},
		{"person.firstName()", "Ada", []any{}},
		{"number.int(1,10)", 5, []any{1, 10}},
		{"number.int(1, 10)", 5, []any{1, 10}},
		{`number.int({"min": 1, "max": 10})`, 5, []any{map[string]any{"min": 1, "max": 10}}},
		{`helpers.arrayElement(["a", "b"])`, "b", []any{[]any{"a", "b"}}},
	}
	for _, tt := range tests {
		t.Run(tt.directive, func(t *testing.T) {
			p.calls = nil
			got, err := gen.evalDirective(tt.directive)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
			require.Len(t, p.Calls(), 1)
			assert.Equal(t, tt.args, p.Calls()[0].Args)
		})
	}
}

func TestDirective_Template(t *testing.T) {
	p := newProvider(nil)
	gen, _ := testGenerator(p, nil)

	got, err := gen.evalDirective("{{person.firstName}} {{person.lastName}}")
	require.NoError(t, err)
	assert.Equal(t, "expanded:{{person.firstName}} {{person.lastName}}", got)
	assert.Equal(t, []string{"{{person.firstName}} {{person.lastName}}"}, p.templates)
	assert.Empty(t, p.Calls())
}

func TestDirective_Errors(t *testing.T) {
	p := newProvider(map[string]any{"number.int": 1})
	gen, _ := testGenerator(p, nil)

	tests := []struct {
		directive string
		want      error
	}{
		{"firstName", ErrDirectiveFormat},
		{"person.first-name", ErrDirectiveFormat},
		{".method", ErrDirectiveFormat},
		{"a.b.c", ErrDirectiveFormat},
		{"bogus.method", ErrMethodNotFound},
		{"number.float", ErrMethodNotFound},
		{"number.int(1,)", ErrDirectiveArgs},
		{"number.int(min: 1)", ErrDirectiveArgs},
	}
	for _, tt := range tests {
		t.Run(tt.directive, func(t *testing.T) {
			_, err := gen.evalDirective(tt.directive)
			assert.ErrorIs(t, err, tt.want)
		})
	}
	assert.Empty(t, p.Calls(), "no provider call for an invalid directive")
}

func TestDirective_ProviderError(t *testing.T) {
	boom := errors.New("boom")
	p := newProvider(map[string]any{"number.int": 1})
	p.failWith = boom
	gen, _ := testGenerator(p, nil)

	_, err := gen.evalDirective("number.int(1, 2)")
	assert.ErrorIs(t, err, boom)
	assert.Contains(t, err.Error(), "number.int")
}

func TestDirective_FallbackLogsOneWarning(t *testing.T) {
	for _, directive := range []string{"bogus.method", "not a directive", "number.int([)"} {
		t.Run(directive, func(t *testing.T) {
			p := newProvider(map[string]any{"number.int": 1})
			gen, logs := testGenerator(p, nil)

			got, err := gen.Generate(ctx, (&schema.Node{Type: "string"}).WithFaker(directive), "")
			require.NoError(t, err)
			assert.Equal(t, "string", got)
			assert.Equal(t, 1, logs.Count(slog.LevelWarn))
		})
	}
}

func TestDirective_FallbackToExample(t *testing.T) {
	gen, logs := testGenerator(newProvider(nil), nil)
	n := (&schema.Node{Type: "string", ExampleList: []any{"from list"}}).WithFaker("bogus.method")

	got, err := gen.GenerateBySchema(ctx, n)
	require.NoError(t, err)
	assert.Equal(t, "from list", got)
	assert.Equal(t, 1, logs.Count(slog.LevelWarn))
}

func TestDirective_WinsOverType(t *testing.T) {
	p := newProvider(map[string]any{"person.firstName": "Ada"})
	gen, logs := testGenerator(p, nil)

	got, err := gen.Generate(ctx, (&schema.Node{Type: "integer"}).WithFaker("person.firstName"), "")
	require.NoError(t, err)
	assert.Equal(t, "Ada", got)
	assert.Zero(t, logs.Count(slog.LevelWarn))
}

func TestDirective_EmptyIsIgnored(t *testing.T) {
	gen, logs := testGenerator(newProvider(nil), nil)
	got, err := gen.Generate(ctx, (&schema.Node{Type: "boolean"}).WithFaker(""), "")
	require.NoError(t, err)
	assert.Equal(t, true, got)
	assert.Zero(t, logs.Count(slog.LevelWarn))
}

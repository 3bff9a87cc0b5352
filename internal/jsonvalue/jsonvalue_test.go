package jsonvalue

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse(t *testing.T) {
	v, err := Parse(`{"a": [1, 2.5, "x", true, false, null], "b": {"c": -3}}`)
	require.NoError(t, err)
	assert.Equal(t, map[string]any{
		"a": []any{1, 2.5, "x", true, false, nil},
		"b": map[string]any{"c": -3},
	}, v)
}

func TestParse_Exponent(t *testing.T) {
	v, err := Parse(`1e3`)
	require.NoError(t, err)
	assert.Equal(t, 1000.0, v)
}

func TestParseArgs(t *testing.T) {
	tests := []struct {
		body string
		want []any
	}{
		{"", nil},
		{"   ", nil},
		{"1, 10", []any{1, 10}},
		{`"female"`, []any{"female"}},
		{`{"min": 1, "max": 5}`, []any{map[string]any{"min": 1, "max": 5}}},
		{`["a", "b"]`, []any{[]any{"a", "b"}}},
	}
	for _, tt := range tests {
		t.Run(tt.body, func(t *testing.T) {
			got, err := ParseArgs(tt.body)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParseArgs_Invalid(t *testing.T) {
	for _, body := range []string{"1,", "foo", "{min: 1}", `"unterminated`} {
		_, err := ParseArgs(body)
		assert.Error(t, err, body)
	}
}

func TestValid(t *testing.T) {
	assert.True(t, Valid([]byte(`{"ok": true}`)))
	assert.True(t, Valid([]byte(` [1] `)))
	assert.False(t, Valid([]byte(`name: rex`)))
	assert.False(t, Valid(nil))
}

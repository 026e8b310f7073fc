package pipeline

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExtractJSON(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want string
	}{
		{
			name: "bare object untouched",
			raw:  `{"name": "Acme"}`,
			want: `{"name": "Acme"}`,
		},
		{
			name: "fenced json block",
			raw:  "```json\n{\"name\": \"Acme\"}\n```",
			want: `{"name": "Acme"}`,
		},
		{
			name: "fence without language tag",
			raw:  "```\n[{\"name\": \"Acme\"}]\n```",
			want: `[{"name": "Acme"}]`,
		},
		{
			name: "prose around the object",
			raw:  "Here is the data you asked for:\n{\"a\": 1}\nLet me know if you need more.",
			want: `{"a": 1}`,
		},
		{
			name: "line comments stripped",
			raw:  "{\n  \"a\": 1, // the a field\n  \"b\": 2\n}",
			want: "{\n  \"a\": 1, \n  \"b\": 2\n}",
		},
		{
			name: "urls survive comment stripping",
			raw:  "{\n  \"site\": \"https://acme.com\", // homepage\n  \"b\": 2\n}",
			want: "{\n  \"site\": \"https://acme.com\", \n  \"b\": 2\n}",
		},
		{
			name: "block comments stripped",
			raw:  "{\n  /* quality varies */\n  \"a\": 1\n}",
			want: "{\n  \n  \"a\": 1\n}",
		},
		{
			name: "no json falls through to trimmed text",
			raw:  "  I could not find any information.  ",
			want: "I could not find any information.",
		},
		{
			name: "empty input",
			raw:  "",
			want: "",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ExtractJSON(tt.raw))
		})
	}
}

// A fenced object followed by commentary must come back as a string
// that parses to exactly that object.
func TestExtractJSON_FencedObjectParsesExactly(t *testing.T) {
	raw := "Sure! Here is the structured profile:\n\n```json\n" +
		`{"name": "Acme, Inc.", "fit_score": 8, "sources": ["https://acme.com/about"]}` +
		"\n```\n\nI estimated the fit score from public signals."

	var got map[string]any
	require.NoError(t, json.Unmarshal([]byte(ExtractJSON(raw)), &got))
	assert.Equal(t, map[string]any{
		"name":      "Acme, Inc.",
		"fit_score": float64(8),
		"sources":   []any{"https://acme.com/about"},
	}, got)
}

func TestExtractJSON_NestedBracesUseWidestSpan(t *testing.T) {
	raw := `{"outer": {"inner": [1, 2]}} trailing`
	var got map[string]any
	require.NoError(t, json.Unmarshal([]byte(ExtractJSON(raw)), &got))
	assert.Contains(t, got, "outer")
}

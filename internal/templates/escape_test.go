package templates

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestEscapeHTML(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{"empty", "", ""},
		{"plain", "Jane Doe", "Jane Doe"},
		{"apostrophe kept", "O'Brien", "O'Brien"},
		{"ampersand", "R&D", "R&amp;D"},
		{"tags", "<script>", "&lt;script&gt;"},
		{"quote", `say "hi"`, "say &#34;hi&#34;"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, EscapeHTML(tt.input))
		})
	}
}

func TestEscapeMarkdown(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{"empty", "", ""},
		{"plain", "Go, Python", "Go, Python"},
		{"emphasis", "*bold* _it_", `\*bold\* \_it\_`},
		{"link brackets", "[x]", `\[x\]`},
		{"backslash", `a\b`, `a\\b`},
		{"html", "<b>&", "&lt;b&gt;&amp;"},
		{"hash mid-line untouched", "C# and F#", "C# and F#"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, EscapeMarkdown(tt.input))
		})
	}
}

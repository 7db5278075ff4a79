package llm

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCleanJSONBlock(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{"json fence", "```json\n{\"summary\": \"Engineer\"}\n```", `{"summary": "Engineer"}`},
		{"bare fence", "```\n{\"summary\": \"Engineer\"}\n```", `{"summary": "Engineer"}`},
		{"fence with other tag", "```javascript\n{\"a\": 1}\n```", `{"a": 1}`},
		{"plain", `{"a": 1}`, `{"a": 1}`},
		{"preamble", "Here is the optimized CV:\n{\"optimized_content\": \"# Jane\"}", `{"optimized_content": "# Jane"}`},
		{"array preamble", "Skills:\n[\"Go\", \"SQL\"]", `["Go", "SQL"]`},
		{"trailing prose", "{\"a\": 1}\n\nLet me know if you need changes.", `{"a": 1}`},
		{"escaped quotes", `Result: {"m": "He said \"hi\" {ok}"}`, `{"m": "He said \"hi\" {ok}"}`},
		{"nested", "Out: {\"a\": {\"b\": [1, {\"c\": 2}]}}", `{"a": {"b": [1, {"c": 2}]}}`},
		{"no json", "  sorry, I cannot help  ", "sorry, I cannot help"},
		{"unterminated", `{"a": 1`, `{"a": 1`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, CleanJSONBlock(tt.input))
		})
	}
}

func TestExtractBalanced(t *testing.T) {
	assert.Equal(t, `{"t": "Hello {name}!"}`, extractJSONObject(`{"t": "Hello {name}!"} tail`))
	assert.Equal(t, `[[1, 2], [3]]`, extractJSONArray(`[[1, 2], [3]] extra`))
	assert.Equal(t, "", extractJSONObject(""))
	assert.Equal(t, "", extractJSONObject("not json"))
	assert.Equal(t, "", extractJSONArray(`{"a": 1}`))
}

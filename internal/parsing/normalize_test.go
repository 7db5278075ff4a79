package parsing

import (
	"testing"

	"github.com/jonathan/cvgen/internal/types"
	"github.com/stretchr/testify/assert"
)

func TestNormalizeSkillName(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{"Golang to Go", "Golang", "Go"},
		{"postgres to PostgreSQL", "postgres", "PostgreSQL"},
		{"golang to Go", "golang", "Go"},
		{"GOLANG to Go", "GOLANG", "Go"},
		{"go lang to Go", "go lang", "Go"},
		{"JavaScript normalization", "javascript", "JavaScript"},
		{"JS to JavaScript", "js", "JavaScript"},
		{"JS to JavaScript uppercase", "JS", "JavaScript"},
		{"TypeScript normalization", "typescript", "TypeScript"},
		{"TS to TypeScript", "ts", "TypeScript"},
		{"K8s to Kubernetes", "k8s", "Kubernetes"},
		{"Kubernetes stays Kubernetes", "Kubernetes", "Kubernetes"},
		{"react.js to React", "react.js", "React"},
		{"reactjs to React", "reactjs", "React"},
		{"vue.js to Vue", "vue.js", "Vue"},
		{"node.js stays node.js", "node.js", "Node.js"},
		{"nodejs to Node.js", "nodejs", "Node.js"},
		{"Python stays Python", "Python", "Python"},
		{"python to Python", "python", "Python"},
		{"PYTHON to Python", "PYTHON", "Python"},
		{"Empty string", "", ""},
		{"Whitespace only", "   ", ""},
		{"Multi-word stays as-is", "Distributed Systems", "Distributed Systems"},
		{"Already normalized", "Go", "Go"},
		{"Mixed case single word", "JavaScript", "JavaScript"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := NormalizeSkillName(tt.input)
			assert.Equal(t, tt.expected, result, "should normalize skill name correctly")
		})
	}
}

func TestNormalizeSkills(t *testing.T) {
	tests := []struct {
		name     string
		input    []types.Skill
		expected []types.Skill
	}{
		{
			name:     "Empty input",
			input:    nil,
			expected: nil,
		},
		{
			name: "Normalize skill names",
			input: []types.Skill{
				{Name: "golang", Level: "expert"},
				{Name: "k8s"},
			},
			expected: []types.Skill{
				{Name: "Go", Level: "expert"},
				{Name: "Kubernetes"},
			},
		},
		{
			name: "Deduplicate and merge",
			input: []types.Skill{
				{Name: "Go"},
				{Name: "Golang", Level: "advanced", Category: "Languages"},
				{Name: "   "},
			},
			expected: []types.Skill{
				{Name: "Go", Level: "advanced", Category: "Languages"},
			},
		},
		{
			name: "Acronyms",
			input: []types.Skill{
				{Name: "aws"},
				{Name: "AWS"},
				{Name: "postgres"},
			},
			expected: []types.Skill{
				{Name: "AWS"},
				{Name: "PostgreSQL"},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, NormalizeSkills(tt.input))
		})
	}
}

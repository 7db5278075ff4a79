package steps

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStepRegistry(t *testing.T) {
	expectedSteps := []string{
		LoadProfile, SelectTemplate, RenderMarkdown,
		Optimize, WriteOutput, VerifyPDF,
	}

	for _, stepName := range expectedSteps {
		def, ok := StepRegistry[stepName]
		require.True(t, ok, "Step %s should be in registry", stepName)
		assert.Equal(t, stepName, def.Name)
		assert.NotEmpty(t, def.Category)
	}
}

func TestStepRegistryCategories(t *testing.T) {
	categories := map[string][]string{
		CategoryInput:     {LoadProfile},
		CategoryRendering: {SelectTemplate, RenderMarkdown},
		CategoryAI:        {Optimize},
		CategoryOutput:    {WriteOutput, VerifyPDF},
	}

	for category, stepNames := range categories {
		for _, stepName := range stepNames {
			def, ok := StepRegistry[stepName]
			require.True(t, ok)
			assert.Equal(t, category, def.Category, "Step %s should be in category %s", stepName, category)
		}
	}
}

func TestDependencyError(t *testing.T) {
	err := &DependencyError{
		Step:                "test_step",
		MissingDependencies: []string{"dep1", "dep2"},
	}

	assert.Contains(t, err.Error(), "missing dependencies")
	assert.Contains(t, err.Error(), "test_step")
}

func TestValidateDependencies(t *testing.T) {
	err := ValidateDependencies(map[string]bool{LoadProfile: true}, RenderMarkdown)
	var depErr *DependencyError
	require.ErrorAs(t, err, &depErr)
	assert.Equal(t, []string{SelectTemplate}, depErr.MissingDependencies)

	err = ValidateDependencies(map[string]bool{LoadProfile: true, SelectTemplate: true}, RenderMarkdown)
	assert.NoError(t, err)

	// optional dependencies are not required
	err = ValidateDependencies(map[string]bool{RenderMarkdown: true}, WriteOutput)
	assert.NoError(t, err)
}

func TestValidateDependencies_UnknownStep(t *testing.T) {
	err := ValidateDependencies(nil, "unknown_step")
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "unknown step")
}

func TestPlan(t *testing.T) {
	tests := []struct {
		name      string
		requested []string
		want      []string
	}{
		{
			name:      "write only",
			requested: []string{WriteOutput},
			want:      []string{LoadProfile, SelectTemplate, RenderMarkdown, WriteOutput},
		},
		{
			name:      "optimize orders before write",
			requested: []string{WriteOutput, Optimize},
			want:      []string{LoadProfile, SelectTemplate, RenderMarkdown, Optimize, WriteOutput},
		},
		{
			name:      "verify pulls in write",
			requested: []string{VerifyPDF},
			want:      []string{LoadProfile, SelectTemplate, RenderMarkdown, WriteOutput, VerifyPDF},
		},
		{
			name:      "duplicates collapse",
			requested: []string{WriteOutput, WriteOutput, LoadProfile},
			want:      []string{LoadProfile, SelectTemplate, RenderMarkdown, WriteOutput},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Plan(tt.requested...)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestPlan_UnknownStep(t *testing.T) {
	_, err := Plan(WriteOutput, "render_latex")
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "unknown step: render_latex")
}

package jobs

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/jonathan/cvgen/internal/types"
)

func TestTokenize(t *testing.T) {
	got := Tokenize("The Go team is IN the Cloud, shipping APIs to 42 users and c++.")
	assert.Equal(t, []string{"cloud", "shipping", "apis", "users", "c++"}, got)
}

func TestKeyTerms(t *testing.T) {
	text := "We use C++ and Python. Python services talk to Redis. Observability matters; observability is key."
	terms := KeyTerms(text)

	assert.Equal(t, []string{"python", "c++", "redis"}, terms[:3], "skill phrases come first in list order")
	assert.NotContains(t, terms, "c", "c must not match inside c++")
	assert.Contains(t, terms, "observability")
	assert.NotContains(t, terms, "services", "single mentions are not frequent")

	for _, term := range terms {
		assert.Equal(t, strings.ToLower(term), term)
	}
}

func TestKeyTerms_Limits(t *testing.T) {
	assert.Empty(t, KeyTerms(""))
	assert.Empty(t, KeyTerms("an to of is an to of is"))

	var text string
	for i := 0; i < 60; i++ {
		w := "term" + string(rune('a'+i%26)) + string(rune('a'+i/26))
		text += w + " " + w + " "
	}
	assert.Len(t, KeyTerms(text), MaxKeyTerms)
}

func TestSplitSkills(t *testing.T) {
	terms := []string{"go", "docker", "terraform", "kafka"}

	req, des := SplitSkills("We use Docker. Required: Go. Preferred: Terraform and Kafka.", terms)
	assert.Equal(t, []string{"go", "docker"}, req)
	assert.Equal(t, []string{"terraform", "kafka"}, des)

	req, des = SplitSkills("Go, Docker, Terraform and Kafka", terms)
	assert.Equal(t, terms, req)
	assert.Empty(t, des)

	// Preferred before required
	req, des = SplitSkills("Preferred: Kafka. Required: Go and Terraform.", terms)
	assert.Equal(t, []string{"go", "docker", "terraform"}, req)
	assert.Equal(t, []string{"kafka"}, des)

	// Only a preferred marker
	req, des = SplitSkills("Go and Docker daily. Preferred: Terraform, Go.", terms)
	assert.Equal(t, []string{"go", "docker", "kafka"}, req)
	assert.Equal(t, []string{"terraform"}, des)
}

func TestMatch(t *testing.T) {
	cv := &types.CVData{
		ProfessionalSummary: "Backend engineer working in Go.",
		Skills:              []types.Skill{{Name: "Kubernetes"}, {Name: "PostgreSQL"}},
		Experience: []types.Experience{
			{Employer: "Acme", Title: "Engineer", Responsibilities: []string{"Ran Docker builds"}},
		},
	}
	analysis := &types.JobPostingAnalysis{KeyTerms: []string{"go", "kubernetes", "docker", "terraform"}}

	m := Match(cv, analysis)
	assert.Equal(t, []string{"go", "kubernetes", "docker"}, m.Matched)
	assert.Equal(t, []string{"terraform"}, m.Missing)
	assert.Equal(t, 75.0, m.MatchPercentage)

	empty := Match(cv, &types.JobPostingAnalysis{})
	assert.Equal(t, 0.0, empty.MatchPercentage)
	assert.NotNil(t, empty.Matched)

	third := MatchText("python", []string{"python", "java", "rust"})
	assert.Equal(t, 33.3, third.MatchPercentage)
	assert.Equal(t, 0.0, Match(nil, nil).MatchPercentage)
}

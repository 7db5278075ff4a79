// Package steps provides step definitions and dependency resolution
// for the CV generation pipeline.
package steps

import (
	"fmt"
	"sort"
)

// Step names
const (
	LoadProfile    = "load_profile"
	SelectTemplate = "select_template"
	RenderMarkdown = "render_markdown"
	Optimize       = "optimize"
	WriteOutput    = "write_output"
	VerifyPDF      = "verify_pdf"
)

// Step categories
const (
	CategoryInput     = "input"
	CategoryRendering = "rendering"
	CategoryAI        = "ai"
	CategoryOutput    = "output"
)

// StepDefinition defines metadata for a pipeline step
type StepDefinition struct {
	Name         string
	Category     string
	Dependencies []string
	// Optional steps run before this one when they are part of the plan
	Optional []string
}

// StepResult represents the result of executing a step
type StepResult struct {
	Step     string `json:"step"`
	Status   string `json:"status"`
	Duration int64  `json:"duration_ms"`
	Message  string `json:"message,omitempty"`
}

// Step statuses
const (
	StatusCompleted = "completed"
	StatusSkipped   = "skipped"
	StatusFailed    = "failed"
)

// StepRegistry holds all step definitions
var StepRegistry = map[string]StepDefinition{
	LoadProfile: {
		Name:     LoadProfile,
		Category: CategoryInput,
	},
	SelectTemplate: {
		Name:     SelectTemplate,
		Category: CategoryRendering,
	},
	RenderMarkdown: {
		Name:         RenderMarkdown,
		Category:     CategoryRendering,
		Dependencies: []string{LoadProfile, SelectTemplate},
	},
	Optimize: {
		Name:         Optimize,
		Category:     CategoryAI,
		Dependencies: []string{RenderMarkdown},
	},
	WriteOutput: {
		Name:         WriteOutput,
		Category:     CategoryOutput,
		Dependencies: []string{RenderMarkdown},
		Optional:     []string{Optimize},
	},
	VerifyPDF: {
		Name:         VerifyPDF,
		Category:     CategoryOutput,
		Dependencies: []string{WriteOutput},
	},
}

// DependencyError represents a dependency validation error
type DependencyError struct {
	Step                string
	MissingDependencies []string
}

func (e *DependencyError) Error() string {
	return fmt.Sprintf("step %s has missing dependencies: %v", e.Step, e.MissingDependencies)
}

// ValidateDependencies checks that every required dependency of stepName
// is in completed
func ValidateDependencies(completed map[string]bool, stepName string) error {
	def, ok := StepRegistry[stepName]
	if !ok {
		return fmt.Errorf("unknown step: %s", stepName)
	}

	var missing []string
	for _, dep := range def.Dependencies {
		if !completed[dep] {
			missing = append(missing, dep)
		}
	}
	if len(missing) > 0 {
		return &DependencyError{Step: stepName, MissingDependencies: missing}
	}
	return nil
}

// Plan returns the requested steps plus their required dependencies in an
// executable order. Optional dependencies only order steps that are already
// in the plan. Ties are broken by name so plans are stable.
func Plan(requested ...string) ([]string, error) {
	include := make(map[string]bool)
	var add func(name string) error
	add = func(name string) error {
		def, ok := StepRegistry[name]
		if !ok {
			return fmt.Errorf("unknown step: %s", name)
		}
		if include[name] {
			return nil
		}
		include[name] = true
		for _, dep := range def.Dependencies {
			if err := add(dep); err != nil {
				return err
			}
		}
		return nil
	}
	for _, name := range requested {
		if err := add(name); err != nil {
			return nil, err
		}
	}

	order := make([]string, 0, len(include))
	done := make(map[string]bool, len(include))
	for len(order) < len(include) {
		var ready []string
		for name := range include {
			if done[name] || !satisfied(name, include, done) {
				continue
			}
			ready = append(ready, name)
		}
		if len(ready) == 0 {
			return nil, fmt.Errorf("dependency cycle among steps")
		}
		sort.Strings(ready)
		for _, name := range ready {
			done[name] = true
			order = append(order, name)
		}
	}
	return order, nil
}

func satisfied(name string, include, done map[string]bool) bool {
	def := StepRegistry[name]
	for _, dep := range def.Dependencies {
		if !done[dep] {
			return false
		}
	}
	for _, dep := range def.Optional {
		if include[dep] && !done[dep] {
			return false
		}
	}
	return true
}

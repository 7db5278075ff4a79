package parsing

import (
	"strings"

	"github.com/jonathan/cvgen/internal/types"
)

// skillNormalizations maps common skill name variants to canonical names
var skillNormalizations = map[string]string{
	"golang":     "Go",
	"go lang":    "Go",
	"postgres":   "PostgreSQL",
	"postgresql": "PostgreSQL",
	"aws":        "AWS",
	"gcp":        "GCP",
	"sql":        "SQL",
	"c#":         "C#",
	"c++":        "C++",
	"javascript": "JavaScript",
	"js":         "JavaScript",
	"typescript": "TypeScript",
	"ts":         "TypeScript",
	"k8s":        "Kubernetes",
	"kubernetes": "Kubernetes",
	"react.js":   "React",
	"reactjs":    "React",
	"vue.js":     "Vue",
	"vuejs":      "Vue",
	"node.js":    "Node.js",
	"nodejs":     "Node.js",
}

// NormalizeSkillName normalizes a skill name to its canonical form
func NormalizeSkillName(skillName string) string {
	if skillName == "" {
		return ""
	}

	// Trim whitespace
	normalized := strings.TrimSpace(skillName)

	// Check for exact match in normalization map (case-insensitive)
	lower := strings.ToLower(normalized)
	if canonical, ok := skillNormalizations[lower]; ok {
		return canonical
	}

	// Handle case normalization for common patterns
	// If it's all uppercase, try to find a canonical form
	if normalized == strings.ToUpper(normalized) && len(normalized) > 1 {
		lowerCanonical, ok := skillNormalizations[lower]
		if ok {
			return lowerCanonical
		}
		// For all-caps single words that aren't acronyms, capitalize first letter only
		if !strings.Contains(lower, " ") {
			return strings.ToUpper(normalized[:1]) + strings.ToLower(normalized[1:])
		}
	}

	// For skills starting with lowercase, capitalize first letter if it's a single word
	if normalized != strings.ToUpper(normalized) && normalized != strings.ToLower(normalized) {
		// Already has mixed case, return as-is
		return normalized
	}

	// If all lowercase and single word, capitalize first letter
	if normalized == strings.ToLower(normalized) && !strings.Contains(normalized, " ") && len(normalized) > 0 {
		return strings.ToUpper(normalized[:1]) + normalized[1:]
	}

	return normalized
}

// NormalizeSkills canonicalizes skill names and drops duplicates, keeping the
// first occurrence and filling its level or category from later ones
func NormalizeSkills(skills []types.Skill) []types.Skill {
	if len(skills) == 0 {
		return skills
	}

	normalized := make([]types.Skill, 0, len(skills))
	seen := make(map[string]int) // lowercased canonical name -> index in normalized slice

	for _, sk := range skills {
		name := NormalizeSkillName(sk.Name)
		if name == "" {
			continue
		}

		key := strings.ToLower(name)
		if idx, exists := seen[key]; exists {
			if normalized[idx].Level == "" {
				normalized[idx].Level = sk.Level
			}
			if normalized[idx].Category == "" {
				normalized[idx].Category = sk.Category
			}
			continue
		}

		sk.Name = name
		normalized = append(normalized, sk)
		seen[key] = len(normalized) - 1
	}

	return normalized
}

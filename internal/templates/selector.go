package templates

import (
	"strings"

	"github.com/jonathan/cvgen/internal/types"
)

// sectorTemplates maps CLI sectors to template names
var sectorTemplates = map[string]string{
	"federal":  "federal",
	"state":    "state",
	"private":  "modern",
	"academic": "academic",
	"modern":   "modern",
	"minimal":  "minimal",
	"basic":    "basic",
}

// styleTemplates maps AI generation styles to template names
var styleTemplates = map[string]string{
	"professional": "basic",
	"academic":     "academic",
	"technical":    "modern",
	"executive":    "minimal",
}

// Sectors returns the sector names SectorTemplate recognizes
func Sectors() []string {
	return []string{"federal", "state", "private", "academic", "modern", "minimal", "basic"}
}

// SectorTemplate returns the template name for a sector.
// Unknown sectors fall back to basic.
func SectorTemplate(sector string) string {
	if name, ok := sectorTemplates[strings.ToLower(strings.TrimSpace(sector))]; ok {
		return name
	}
	return DefaultTemplate
}

// StyleTemplate returns the template name for an AI generation style.
// Unknown styles fall back to basic.
func StyleTemplate(style string) string {
	if name, ok := styleTemplates[strings.ToLower(strings.TrimSpace(style))]; ok {
		return name
	}
	return DefaultTemplate
}

// Suggest returns template names that fit the CV, most specific first.
// Basic is always included as the last suggestion.
func Suggest(data *types.CVData) []string {
	var academic, government bool
	if data != nil {
		for _, e := range data.Experience {
			academic = academic || e.IsAcademic()
			government = government || e.IsGovernment()
		}
	}

	var out []string
	if academic {
		out = append(out, "academic")
	}
	if government {
		out = append(out, "federal")
	}
	return append(out, DefaultTemplate)
}

package validation

import (
	"fmt"
	"os"
	"strings"
	"unicode"

	"github.com/jonathan/cvgen/internal/ingestion"
)

const (
	// minContentLength is the text length below which a PDF is not considered to have content
	minContentLength = 50
	// lowContentLength triggers a warning about sparse text
	lowContentLength = 100
	previewLength    = 200
)

// DefaultExpectedSections are looked for in every verified CV
var DefaultExpectedSections = []string{"experience", "education", "skills"}

// Options lists what a PDF is expected to contain
type Options struct {
	Name     string
	Email    string
	Phone    string
	MaxPages int // 0 means no limit
	// ExpectedSections defaults to DefaultExpectedSections when nil
	ExpectedSections []string
}

// Result reports the outcome of verifying one PDF. Issues make the PDF
// invalid for shipping; warnings do not.
type Result struct {
	Path          string   `json:"path"`
	Valid         bool     `json:"valid"`
	HasContent    bool     `json:"has_content"`
	PageCount     int      `json:"page_count"`
	ContentLength int      `json:"content_length"`
	Issues        []string `json:"issues"`
	Warnings      []string `json:"warnings"`
	Text          string   `json:"-"`
}

// OK reports whether the PDF is valid and has no issues
func (r *Result) OK() bool {
	return r.Valid && len(r.Issues) == 0
}

// Preview returns the start of the extracted text
func (r *Result) Preview() string {
	text := strings.Join(strings.Fields(r.Text), " ")
	if len(text) <= previewLength {
		return text
	}
	cut := previewLength
	for cut > 0 && !isRuneStart(text[cut]) {
		cut--
	}
	return text[:cut] + "..."
}

func isRuneStart(b byte) bool { return b&0xC0 != 0x80 }

// VerifyFile reads and verifies the PDF at path. Only a failure to read
// the file is returned as an error; problems with the PDF itself are
// reported on the result.
func VerifyFile(path string, opts Options) (*Result, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, &FileReadError{Path: path, Message: fmt.Sprintf("failed to read %s", path), Cause: err}
	}
	result := Verify(data, opts)
	result.Path = path
	return result, nil
}

// VerifyFiles verifies each path in order and stops at the first file that
// cannot be read
func VerifyFiles(paths []string, opts Options) ([]*Result, error) {
	results := make([]*Result, 0, len(paths))
	for _, p := range paths {
		r, err := VerifyFile(p, opts)
		if err != nil {
			return results, err
		}
		results = append(results, r)
	}
	return results, nil
}

// Verify checks an in-memory PDF
func Verify(data []byte, opts Options) *Result {
	result := &Result{Issues: []string{}, Warnings: []string{}}
	if len(data) == 0 {
		result.Issues = append(result.Issues, "PDF file is empty (0 bytes)")
		return result
	}

	pages, err := CountPDFPages(data)
	if err != nil {
		result.Issues = append(result.Issues, fmt.Sprintf("PDF could not be parsed: %v", err))
		return result
	}
	result.PageCount = pages

	text, err := ingestion.ExtractText(ingestion.FormatPDF, data)
	if err != nil {
		result.Warnings = append(result.Warnings, fmt.Sprintf("could not extract text: %v", err))
	}
	result.Text = text
	result.ContentLength = len(strings.TrimSpace(text))
	result.HasContent = result.ContentLength > minContentLength
	result.Valid = result.HasContent || result.PageCount > 0

	switch {
	case result.ContentLength == 0:
		result.Issues = append(result.Issues, "PDF contains no extractable text")
	case result.ContentLength < lowContentLength:
		result.Warnings = append(result.Warnings, fmt.Sprintf("PDF contains very little text (%d characters)", result.ContentLength))
	}

	if opts.MaxPages > 0 && pages > opts.MaxPages {
		result.Issues = append(result.Issues, fmt.Sprintf("PDF has %d pages, more than the allowed %d", pages, opts.MaxPages))
	}

	if result.ContentLength > 0 {
		checkContent(result, opts)
	}
	return result
}

func checkContent(result *Result, opts Options) {
	lower := strings.ToLower(result.Text)
	squashed := squash(result.Text)

	if strings.Contains(lower, "undefined") || strings.Contains(lower, "<no value>") {
		result.Issues = append(result.Issues, "PDF contains unfilled template values")
	}
	if strings.Contains(lower, "company name") || strings.Contains(lower, "your name") {
		result.Warnings = append(result.Warnings, "PDF may contain placeholder content instead of actual data")
	}

	expected := []struct{ label, value string }{
		{"name", opts.Name},
		{"email", opts.Email},
		{"phone", opts.Phone},
	}
	for _, e := range expected {
		if e.value != "" && !strings.Contains(squashed, squash(e.value)) {
			result.Issues = append(result.Issues, fmt.Sprintf("expected %s %q not found in PDF text", e.label, e.value))
		}
	}

	sections := opts.ExpectedSections
	if sections == nil {
		sections = DefaultExpectedSections
	}
	var missing []string
	for _, s := range sections {
		if !strings.Contains(lower, strings.ToLower(s)) {
			missing = append(missing, s)
		}
	}
	if len(missing) > 0 {
		result.Warnings = append(result.Warnings, "missing expected sections: "+strings.Join(missing, ", "))
	}
}

// squash lower-cases s and drops whitespace, since PDF text extraction does
// not reliably preserve spacing
func squash(s string) string {
	return strings.Map(func(r rune) rune {
		if unicode.IsSpace(r) {
			return -1
		}
		return unicode.ToLower(r)
	}, s)
}

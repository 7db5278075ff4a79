package parsing

import "fmt"

// WarningKind classifies a recoverable problem found while parsing a profile
type WarningKind string

const (
	// WarnUnknownSection is reported for a heading that names no known section
	WarnUnknownSection WarningKind = "unknown_section"
	// WarnEmptySection is reported for a known section that yielded no data
	WarnEmptySection WarningKind = "empty_section"
	// WarnMissingName is reported when no candidate name could be found
	WarnMissingName WarningKind = "missing_name"
	// WarnMissingContact is reported when neither email nor phone was found
	WarnMissingContact WarningKind = "missing_contact"
	// WarnOrphanLine is reported for content that could not be attached to an entry
	WarnOrphanLine WarningKind = "orphan_line"
)

// Warning is a partial parse failure. Parsing continues past every warning.
type Warning struct {
	Kind    WarningKind `json:"kind"`
	Section string      `json:"section,omitempty"`
	Line    int         `json:"line,omitempty"`
	Message string      `json:"message"`
}

func (w Warning) String() string {
	if w.Line > 0 {
		return fmt.Sprintf("line %d: %s", w.Line, w.Message)
	}
	return w.Message
}

// ParseError represents a profile that could not be decoded at all
type ParseError struct {
	Message string
	Cause   error
}

func (e *ParseError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("parse error: %s: %v", e.Message, e.Cause)
	}
	return fmt.Sprintf("parse error: %s", e.Message)
}

func (e *ParseError) Unwrap() error {
	return e.Cause
}

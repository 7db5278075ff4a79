// Package rendering provides functionality to render CVs to HTML and PDF.
package rendering

import "fmt"

// RendererError represents a failure inside a rendering backend
type RendererError struct {
	Backend string
	Message string
	Cause   error
}

func (e *RendererError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("renderer error (%s): %s: %v", e.Backend, e.Message, e.Cause)
	}
	return fmt.Sprintf("renderer error (%s): %s", e.Backend, e.Message)
}

func (e *RendererError) Unwrap() error {
	return e.Cause
}

// IOError represents a failure writing rendered output
type IOError struct {
	Path    string
	Message string
	Cause   error
}

func (e *IOError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("io error: %s: %s: %v", e.Message, e.Path, e.Cause)
	}
	return fmt.Sprintf("io error: %s: %s", e.Message, e.Path)
}

func (e *IOError) Unwrap() error {
	return e.Cause
}

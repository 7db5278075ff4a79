// Package types provides type definitions for structured data used throughout the cvgen system.
//
//nolint:revive // types is a standard Go package name pattern
package types

import (
	"github.com/go-playground/validator/v10"
)

// RenderRequest is the body of an HTML render request
type RenderRequest struct {
	Sector   string      `json:"sector,omitempty"`
	Template string      `json:"template,omitempty"`
	Data     *CVData     `json:"data,omitempty"`
	Markdown string      `json:"markdown,omitempty" validate:"required_without=Data"`
	Options  *PDFOptions `json:"options,omitempty"`
}

// ATSRequest is the body of an ATS analysis request
type ATSRequest struct {
	Content string   `json:"content"`
	JobURL  string   `json:"job_url,omitempty" validate:"omitempty,url"`
	Terms   []string `json:"terms,omitempty"`
}

// JobAnalyzeRequest is the body of a batch job analysis request
type JobAnalyzeRequest struct {
	URLs           []string `json:"urls" validate:"required,min=1,max=25,dive,required"`
	TimeoutSeconds int      `json:"timeout_seconds,omitempty" validate:"omitempty,min=1,max=60"`
}

// ParseProfileRequest is the body of a markdown profile parse request
type ParseProfileRequest struct {
	Markdown string `json:"markdown" validate:"required"`
}

// Validate validates the PDFOptions using the validator.
// Only values a rendering backend cannot express are rejected.
func (o *PDFOptions) Validate() error {
	validate := validator.New()
	return validate.Struct(o)
}

// Validate validates the RenderRequest using the validator.
func (r *RenderRequest) Validate() error {
	validate := validator.New()
	return validate.Struct(r)
}

// Validate validates the ATSRequest using the validator.
func (r *ATSRequest) Validate() error {
	validate := validator.New()
	return validate.Struct(r)
}

// Validate validates the JobAnalyzeRequest using the validator.
func (r *JobAnalyzeRequest) Validate() error {
	validate := validator.New()
	return validate.Struct(r)
}

// Validate validates the ParseProfileRequest using the validator.
func (r *ParseProfileRequest) Validate() error {
	validate := validator.New()
	return validate.Struct(r)
}

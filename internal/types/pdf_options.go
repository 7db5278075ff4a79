// Package types provides type definitions for structured data used throughout the cvgen system.
//
//nolint:revive // types is a standard Go package name pattern
package types

// PaperSize is a supported page size
type PaperSize string

const (
	// PaperLetter is US Letter (8.5in x 11in)
	PaperLetter PaperSize = "Letter"
	// PaperA4 is ISO A4 (8.27in x 11.69in)
	PaperA4 PaperSize = "A4"
	// PaperLegal is US Legal (8.5in x 14in)
	PaperLegal PaperSize = "Legal"
)

// Orientation is the page orientation
type Orientation string

const (
	// Portrait is the default orientation
	Portrait Orientation = "portrait"
	// Landscape swaps page width and height
	Landscape Orientation = "landscape"
)

// Default rendering values
const (
	DefaultMarginInches = 0.5
	DefaultFontFamily   = "Arial, sans-serif"
)

// Margins are page insets in inches
type Margins struct {
	Top    float64 `json:"top" validate:"gte=0"`
	Right  float64 `json:"right" validate:"gte=0"`
	Bottom float64 `json:"bottom" validate:"gte=0"`
	Left   float64 `json:"left" validate:"gte=0"`
}

// PDFOptions is the rendering configuration for HTML and PDF output.
// All fields are optional; zero values resolve to defaults via WithDefaults.
type PDFOptions struct {
	PaperSize           PaperSize   `json:"paper_size,omitempty" validate:"omitempty,oneof=Letter A4 Legal"`
	Margins             *Margins    `json:"margins,omitempty"`
	Orientation         Orientation `json:"orientation,omitempty" validate:"omitempty,oneof=portrait landscape"`
	FontFamily          string      `json:"font_family,omitempty" validate:"omitempty,max=200,excludesall=<>{};\\"`
	IncludeHeaderFooter bool        `json:"include_header_footer,omitempty"`
	HeaderText          string      `json:"header_text,omitempty"`
	FooterText          string      `json:"footer_text,omitempty"`
	Title               string      `json:"title,omitempty"`
	Author              string      `json:"author,omitempty"`

	// Single-page hints. These are accepted and carried to the backend but
	// no fitting algorithm consumes them.
	SinglePage  bool    `json:"single_page,omitempty"`
	Scale       float64 `json:"scale,omitempty" validate:"omitempty,gte=0.1,lte=2"`
	MinFontSize float64 `json:"min_font_size,omitempty" validate:"omitempty,gt=0"`
}

// DefaultMargins returns the default 0.5in margins on every side
func DefaultMargins() Margins {
	return Margins{
		Top:    DefaultMarginInches,
		Right:  DefaultMarginInches,
		Bottom: DefaultMarginInches,
		Left:   DefaultMarginInches,
	}
}

// WithDefaults returns a copy with every unset field resolved.
// A nil receiver yields the full default set.
func (o *PDFOptions) WithDefaults() PDFOptions {
	var out PDFOptions
	if o != nil {
		out = *o
	}
	if out.PaperSize == "" {
		out.PaperSize = PaperLetter
	}
	if out.Orientation == "" {
		out.Orientation = Portrait
	}
	if out.FontFamily == "" {
		out.FontFamily = DefaultFontFamily
	}
	if out.Margins == nil {
		m := DefaultMargins()
		out.Margins = &m
	} else {
		m := *out.Margins
		out.Margins = &m
	}
	return out
}

// PageSizeInches returns the page width and height in inches,
// taking orientation into account.
func (o PDFOptions) PageSizeInches() (width, height float64) {
	switch o.PaperSize {
	case PaperA4:
		width, height = 8.27, 11.69
	case PaperLegal:
		width, height = 8.5, 14
	default:
		width, height = 8.5, 11
	}
	if o.Orientation == Landscape {
		width, height = height, width
	}
	return width, height
}
